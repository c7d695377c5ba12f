package models

// User is a member account.
type User struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	BirthYear int    `json:"birthYear,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedAt Time   `json:"createdAt"`
	UpdatedAt Time   `json:"updatedAt"`
}

// HealthProfile carries body metrics and goals. A user may not have one.
type HealthProfile struct {
	HealthID      int64   `json:"healthId"`
	UserID        int64   `json:"userId"`
	HeightCm      float64 `json:"heightCm"`
	WeightKg      float64 `json:"weightKg"`
	ActivityLevel string  `json:"activityLevel"`
	GoalType      string  `json:"goalType"`
	UpdatedAt     Time    `json:"updatedAt"`
}

// UserDetail is the /users/me payload.
type UserDetail struct {
	User          *User          `json:"user"`
	HealthProfile *HealthProfile `json:"healthProfile"`
}

// LoginResponse is returned by /users/login.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"userId"`
}

// SignupRequest registers a new account. The backend reads the plain password
// from passwordHash and hashes it server side.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"passwordHash"`
	Name      string `json:"name"`
	BirthYear int    `json:"birthYear,omitempty"`
	Gender    string `json:"gender,omitempty"`
}

// UserUpdate changes profile fields other than the password.
type UserUpdate struct {
	Name      string `json:"name,omitempty"`
	BirthYear int    `json:"birthYear,omitempty"`
	Gender    string `json:"gender,omitempty"`
}

// PasswordUpdate is the /users/me/password body.
type PasswordUpdate struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
