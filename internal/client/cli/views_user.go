package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/common"
)

var errLoginRequired = errors.New(msgLoginRequired)

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	return nil
}

// displayName is the name shown on comments, falling back to the email.
func (a *App) displayName() string {
	u := a.session.State().UserInfo
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (a *App) viewLogin(ctx context.Context, _ Navigation, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", a.displayName())
	return a.Open(ctx, RouteHome, nil)
}

func (a *App) viewJoin(ctx context.Context, _ Navigation, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	birthYear, err := GetNumber(a.reader, "Birth year (optional)", a.out, 0)
	if err != nil {
		return err
	}
	gender, err := getSimpleText(a.reader, "Gender M/F (optional)", a.out)
	if err != nil {
		return err
	}

	err = a.session.Register(ctx, models.SignupRequest{
		Email:     email,
		Password:  string(password),
		Name:      name,
		BirthYear: birthYear,
		Gender:    strings.ToUpper(gender),
	})
	if err != nil {
		return err
	}

	a.println("Account created. Please log in.")
	return a.Open(ctx, RouteUserLogin, nil)
}

func (a *App) viewMypage(_ context.Context, _ Navigation, _ []string) error {
	st := a.session.State()
	if st.UserInfo == nil {
		a.println("Profile is not loaded.")
		return nil
	}

	u := st.UserInfo
	a.printf("Email:      %s\n", u.Email)
	a.printf("Name:       %s\n", u.Name)
	if u.BirthYear != 0 {
		a.printf("Birth year: %d\n", u.BirthYear)
	}
	if u.Gender != "" {
		a.printf("Gender:     %s\n", u.Gender)
	}
	a.printf("Joined:     %s\n", u.CreatedAt)

	hp := st.HealthProfile
	if hp == nil {
		a.println("\nNo health profile yet.")
		return nil
	}
	a.println("\nHealth profile")
	a.printf("  height %.1f cm, weight %.1f kg\n", hp.HeightCm, hp.WeightKg)
	a.printf("  activity %s, goal %s\n", orString(hp.ActivityLevel, "-"), orString(hp.GoalType, "-"))
	return nil
}

func (a *App) viewUpdateProfile(ctx context.Context, _ Navigation, _ []string) error {
	cur := models.User{}
	if u := a.session.State().UserInfo; u != nil {
		cur = *u
	}

	a.println("Leave a field empty to keep it.")
	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	birthYear, err := GetNumber(a.reader, "Birth year", a.out, cur.BirthYear)
	if err != nil {
		return err
	}
	gender, err := getSimpleText(a.reader, "Gender M/F", a.out)
	if err != nil {
		return err
	}

	err = a.session.UpdateInfo(ctx, models.UserUpdate{
		Name:      orString(name, cur.Name),
		BirthYear: birthYear,
		Gender:    orString(strings.ToUpper(gender), cur.Gender),
	})
	if err != nil {
		return err
	}
	a.println("Profile updated.")
	return a.Open(ctx, RouteMypage, nil)
}

func (a *App) viewUpdatePassword(ctx context.Context, _ Navigation, _ []string) error {
	current, err := getPassword(a.reader, "Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if len(next) == 0 || string(next) != string(confirm) {
		return errors.New("new passwords do not match")
	}
	if err := a.session.UpdatePassword(ctx, string(current), string(next)); err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}

// viewOAuthCallback accepts the token handed over by the social login
// redirect, either as ?token= or as an argument.
func (a *App) viewOAuthCallback(ctx context.Context, nav Navigation, args []string) error {
	token := nav.Query.Get("token")
	if token == "" && len(args) > 0 {
		token = args[0]
	}
	if token == "" {
		return errors.New("usage: /oauth/callback?token=<token>")
	}

	if err := a.session.LoginWithToken(ctx, token); err != nil {
		return err
	}
	a.printf("Welcome, %s!\n", a.displayName())
	return a.Open(ctx, RouteHome, nil)
}

func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.println("Logged out.")
	return err
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, "Type 'yes' to delete your account", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		a.println("Cancelled.")
		return nil
	}
	if err := a.session.DeleteAccount(ctx); err != nil {
		return err
	}
	a.println("Account deleted.")
	return nil
}
