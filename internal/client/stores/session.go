package stores

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/common"
	"github.com/nutricare/nutricare-client/internal/logging"
)

// SessionState is a snapshot of the session store.
type SessionState struct {
	IsLoggedIn    bool
	Token         string
	UserID        int64
	UserInfo      *models.User
	HealthProfile *models.HealthProfile
}

// SessionStore owns authentication state.
type SessionStore struct {
	api    client.Client
	tokens TokenStorage
	log    logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	state    SessionState
	onLogout func(ctx context.Context)
}

func NewSessionStore(api client.Client, tokens TokenStorage, log logging.Logger) *SessionStore {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionStore{
		api:    api,
		tokens: tokens,
		log:    log.With("store", "session"),
		now:    time.Now,
	}
}

// OnLogout registers fn to run after every logout, e.g. to navigate home.
func (s *SessionStore) OnLogout(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLogout = fn
}

// State returns a copy of the current session.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if st.UserInfo != nil {
		u := *st.UserInfo
		st.UserInfo = &u
	}
	if st.HealthProfile != nil {
		hp := *st.HealthProfile
		st.HealthProfile = &hp
	}
	return st
}

// IsLoggedIn is a shorthand used by the router guard.
func (s *SessionStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsLoggedIn
}

// Login authenticates, persists the token and loads the profile. On a failed
// login nothing changes.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.log.Error(ctx, "login failed", "email", email, "error", err)
		return fmt.Errorf("login: %w", err)
	}

	if err := s.tokens.Save(ctx, resp.Token, resp.UserID); err != nil {
		s.log.Error(ctx, "failed to persist token", "error", err)
		return fmt.Errorf("save token: %w", err)
	}

	s.mu.Lock()
	s.state.IsLoggedIn = true
	s.state.Token = resp.Token
	s.state.UserID = resp.UserID
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "userId", resp.UserID)

	return s.FetchMe(ctx)
}

// LoginWithToken adopts a token issued outside the login form, as the OAuth
// callback does, and loads the profile.
func (s *SessionStore) LoginWithToken(ctx context.Context, token string) error {
	claims, err := ParseClaims(token)
	if err != nil {
		return fmt.Errorf("oauth token: %w", err)
	}
	if claims.Expired(s.now()) {
		return fmt.Errorf("oauth token: %w", common.ErrTokenExpired)
	}

	if err := s.tokens.Save(ctx, token, claims.UserID); err != nil {
		s.log.Error(ctx, "failed to persist token", "error", err)
		return fmt.Errorf("save token: %w", err)
	}

	s.mu.Lock()
	s.state.IsLoggedIn = true
	s.state.Token = token
	s.state.UserID = claims.UserID
	s.mu.Unlock()

	return s.FetchMe(ctx)
}

// Logout clears the session whatever its prior state, removes the stored
// token and fires the logout hook. The in-memory state is cleared even when
// the storage fails; the storage error is returned.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = SessionState{}
	hook := s.onLogout
	s.mu.Unlock()

	var err error
	if s.tokens != nil {
		if err = s.tokens.Clear(ctx); err != nil {
			s.log.Error(ctx, "failed to clear stored token", "error", err)
			err = fmt.Errorf("clear token: %w", err)
		}
	}

	if hook != nil {
		hook(ctx)
	}
	return err
}

// RestoreSession re-hydrates a stored session at startup. Without a stored
// token it does nothing. An expired or unreadable token is discarded without
// a network call; otherwise the profile is re-validated with FetchMe.
func (s *SessionStore) RestoreSession(ctx context.Context) error {
	token, userID, err := s.tokens.Load(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to load stored token", "error", err)
		return fmt.Errorf("load token: %w", err)
	}
	if token == "" {
		return nil
	}

	claims, err := ParseClaims(token)
	if err != nil {
		s.log.Warn(ctx, "stored token is unreadable, discarding", "error", err)
		return s.Logout(ctx)
	}
	if claims.Expired(s.now()) {
		s.log.Warn(ctx, "stored token expired, discarding", "expiredAt", claims.ExpiresAt)
		return s.Logout(ctx)
	}

	if userID == 0 {
		userID = claims.UserID
	}

	s.mu.Lock()
	s.state.IsLoggedIn = true
	s.state.Token = token
	s.state.UserID = userID
	s.mu.Unlock()

	return s.FetchMe(ctx)
}

// FetchMe loads the user and health profile. Any failure ends the session.
func (s *SessionStore) FetchMe(ctx context.Context) error {
	detail, err := s.api.Me(ctx)
	if err == nil && (detail == nil || detail.User == nil) {
		err = client.ErrNoContent
	}
	if err != nil {
		s.log.Error(ctx, "failed to fetch profile", "error", err)
		s.logoutIfActive(ctx)
		return fmt.Errorf("fetch profile: %w", err)
	}

	s.mu.Lock()
	s.state.UserInfo = detail.User
	s.state.HealthProfile = detail.HealthProfile
	if s.state.UserID == 0 {
		s.state.UserID = detail.User.UserID
	}
	s.mu.Unlock()
	return nil
}

// logoutIfActive skips the logout when the interceptor already ended the
// session for this response.
func (s *SessionStore) logoutIfActive(ctx context.Context) {
	s.mu.Lock()
	active := s.state.IsLoggedIn || s.state.Token != ""
	s.mu.Unlock()

	if active {
		_ = s.Logout(ctx)
	}
}

// Register creates an account. The session is not changed.
func (s *SessionStore) Register(ctx context.Context, req models.SignupRequest) error {
	if req.Email == "" || req.Password == "" {
		return errors.New("email and password are required")
	}
	if err := s.api.Register(ctx, req); err != nil {
		s.log.Error(ctx, "signup failed", "email", req.Email, "error", err)
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

// UpdateInfo changes profile fields and reloads the profile.
func (s *SessionStore) UpdateInfo(ctx context.Context, req models.UserUpdate) error {
	if err := s.api.UpdateMyInfo(ctx, req); err != nil {
		s.log.Error(ctx, "failed to update profile", "error", err)
		return fmt.Errorf("update profile: %w", err)
	}
	return s.FetchMe(ctx)
}

func (s *SessionStore) UpdatePassword(ctx context.Context, current, next string) error {
	err := s.api.UpdateMyPassword(ctx, models.PasswordUpdate{CurrentPassword: current, NewPassword: next})
	if err != nil {
		s.log.Error(ctx, "failed to update password", "error", err)
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// DeleteAccount removes the account and ends the session.
func (s *SessionStore) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteMe(ctx); err != nil {
		s.log.Error(ctx, "failed to delete account", "error", err)
		return fmt.Errorf("delete account: %w", err)
	}
	return s.Logout(ctx)
}

// HandleUnauthorized is the interceptor hook for 401 responses.
func (s *SessionStore) HandleUnauthorized(ctx context.Context) {
	s.log.Warn(ctx, "session expired, please log in again")
	_ = s.Logout(ctx)
}
