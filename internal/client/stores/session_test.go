package stores

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nutricare/nutricare-client/internal/client/client"
	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStorage struct {
	TokenStorage
	clearErr error
}

func (f failingStorage) Clear(context.Context) error { return f.clearErr }

func okMe(userID int64) func() (*models.UserDetail, error) {
	return func() (*models.UserDetail, error) {
		return &models.UserDetail{
			User:          &models.User{UserID: userID, Email: "kim@example.com", Name: "Kim"},
			HealthProfile: &models.HealthProfile{HealthID: 3, UserID: userID, HeightCm: 170},
		}, nil
	}
}

func TestSession_LoginSuccess(t *testing.T) {
	ts := newTokenStore(t)
	api := &fakeAPI{
		login: func(email, password string) (*models.LoginResponse, error) {
			return &models.LoginResponse{Token: "jwt-1", UserID: 7}, nil
		},
		me: okMe(7),
	}
	s := NewSessionStore(api, ts, nil)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, "kim@example.com", "pw"))

	st := s.State()
	assert.True(t, st.IsLoggedIn)
	assert.Equal(t, "jwt-1", st.Token)
	assert.Equal(t, int64(7), st.UserID)
	require.NotNil(t, st.UserInfo)
	assert.Equal(t, "Kim", st.UserInfo.Name)
	require.NotNil(t, st.HealthProfile)

	token, userID, err := ts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", token)
	assert.Equal(t, int64(7), userID)

	assert.Equal(t, []string{"Login", "Me"}, api.Calls())
}

func TestSession_LoginInvalidCredentialsLeavesStateUnchanged(t *testing.T) {
	ts := newTokenStore(t)
	api := &fakeAPI{
		login: func(string, string) (*models.LoginResponse, error) {
			return nil, fmt.Errorf("%w: invalid email or password", client.ErrUnauthorized)
		},
	}
	s := NewSessionStore(api, ts, nil)
	ctx := context.Background()

	before := s.State()
	err := s.Login(ctx, "kim@example.com", "wrong")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, before, s.State())

	token, _, err := ts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_LoginThenProfileFailureLogsOut(t *testing.T) {
	ts := newTokenStore(t)
	api := &fakeAPI{
		login: func(string, string) (*models.LoginResponse, error) {
			return &models.LoginResponse{Token: "jwt", UserID: 1}, nil
		},
		me: func() (*models.UserDetail, error) { return nil, client.ErrUnavailable },
	}
	s := NewSessionStore(api, ts, nil)

	err := s.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, s.State().IsLoggedIn)

	token, _, err := ts.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_LogoutAlwaysClears(t *testing.T) {
	ts := newTokenStore(t)
	api := &fakeAPI{
		login: func(string, string) (*models.LoginResponse, error) {
			return &models.LoginResponse{Token: "jwt", UserID: 1}, nil
		},
		me: okMe(1),
	}
	s := NewSessionStore(api, ts, nil)
	var navigated int
	s.OnLogout(func(context.Context) { navigated++ })
	ctx := context.Background()

	// From a clean state.
	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, SessionState{}, s.State())

	require.NoError(t, s.Login(ctx, "a@b.c", "pw"))
	require.True(t, s.State().IsLoggedIn)

	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, SessionState{}, s.State())
	assert.Equal(t, 2, navigated)

	token, userID, err := ts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Zero(t, userID)
}

func TestSession_LogoutStorageErrorStillClearsState(t *testing.T) {
	boom := errors.New("disk full")
	api := &fakeAPI{
		login: func(string, string) (*models.LoginResponse, error) {
			return &models.LoginResponse{Token: "jwt", UserID: 1}, nil
		},
		me: okMe(1),
	}
	s := NewSessionStore(api, failingStorage{TokenStorage: newTokenStore(t), clearErr: boom}, nil)
	var navigated bool
	s.OnLogout(func(context.Context) { navigated = true })

	require.NoError(t, s.Login(context.Background(), "a@b.c", "pw"))

	err := s.Logout(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, SessionState{}, s.State())
	assert.True(t, navigated)
}

func TestSession_RestoreWithoutTokenIsNoop(t *testing.T) {
	api := &fakeAPI{}
	s := NewSessionStore(api, newTokenStore(t), nil)

	require.NoError(t, s.RestoreSession(context.Background()))
	assert.Equal(t, SessionState{}, s.State())
	assert.Empty(t, api.Calls())
}

func TestSession_RestoreExpiredTokenLogsOutWithoutNetwork(t *testing.T) {
	ts := newTokenStore(t)
	ctx := context.Background()
	require.NoError(t, ts.Save(ctx, signToken(t, "5", time.Now().Add(-time.Minute)), 5))

	api := &fakeAPI{}
	s := NewSessionStore(api, ts, nil)

	require.NoError(t, s.RestoreSession(ctx))
	assert.False(t, s.State().IsLoggedIn)
	assert.Empty(t, api.Calls())

	token, _, err := ts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_RestoreValidToken(t *testing.T) {
	ts := newTokenStore(t)
	ctx := context.Background()
	token := signToken(t, "5", time.Now().Add(time.Hour))
	require.NoError(t, ts.Save(ctx, token, 5))

	api := &fakeAPI{me: okMe(5)}
	s := NewSessionStore(api, ts, nil)

	require.NoError(t, s.RestoreSession(ctx))
	st := s.State()
	assert.True(t, st.IsLoggedIn)
	assert.Equal(t, token, st.Token)
	assert.Equal(t, int64(5), st.UserID)
	assert.Equal(t, "kim@example.com", st.UserInfo.Email)
}

func TestSession_LoginWithToken(t *testing.T) {
	ts := newTokenStore(t)
	ctx := context.Background()
	api := &fakeAPI{me: okMe(8)}
	s := NewSessionStore(api, ts, nil)

	err := s.LoginWithToken(ctx, signToken(t, "8", time.Now().Add(-time.Minute)))
	require.ErrorIs(t, err, common.ErrTokenExpired)
	assert.False(t, s.IsLoggedIn())

	require.Error(t, s.LoginWithToken(ctx, "garbage"))

	token := signToken(t, "8", time.Now().Add(time.Hour))
	require.NoError(t, s.LoginWithToken(ctx, token))
	assert.True(t, s.IsLoggedIn())
	assert.Equal(t, int64(8), s.State().UserID)

	stored, userID, err := ts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
	assert.Equal(t, int64(8), userID)
	assert.Equal(t, []string{"Me"}, api.Calls())
}

func TestSession_RestoreRejectedByServerLogsOut(t *testing.T) {
	ts := newTokenStore(t)
	ctx := context.Background()
	require.NoError(t, ts.Save(ctx, signToken(t, "5", time.Now().Add(time.Hour)), 5))

	api := &fakeAPI{me: func() (*models.UserDetail, error) {
		return nil, &client.APIError{StatusCode: http.StatusForbidden, Method: "GET", Path: "/users/me"}
	}}
	s := NewSessionStore(api, ts, nil)

	err := s.RestoreSession(ctx)
	require.ErrorIs(t, err, client.ErrForbidden)
	assert.False(t, s.State().IsLoggedIn)

	token, _, err := ts.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_RegisterUpdateDelete(t *testing.T) {
	ts := newTokenStore(t)
	var gotPass models.PasswordUpdate
	api := &fakeAPI{
		login: func(string, string) (*models.LoginResponse, error) {
			return &models.LoginResponse{Token: "jwt", UserID: 1}, nil
		},
		me:      okMe(1),
		updPass: func(p models.PasswordUpdate) error { gotPass = p; return nil },
	}
	s := NewSessionStore(api, ts, nil)
	ctx := context.Background()

	require.Error(t, s.Register(ctx, models.SignupRequest{Email: "a@b.c"}))
	require.NoError(t, s.Register(ctx, models.SignupRequest{Email: "a@b.c", Password: "pw", Name: "A"}))
	assert.False(t, s.State().IsLoggedIn)

	require.NoError(t, s.Login(ctx, "a@b.c", "pw"))
	require.NoError(t, s.UpdateInfo(ctx, models.UserUpdate{Name: "B"}))
	require.NoError(t, s.UpdatePassword(ctx, "pw", "pw2"))
	assert.Equal(t, models.PasswordUpdate{CurrentPassword: "pw", NewPassword: "pw2"}, gotPass)

	require.NoError(t, s.DeleteAccount(ctx))
	assert.False(t, s.State().IsLoggedIn)

	assert.Equal(t, []string{"Register", "Login", "Me", "UpdateMyInfo", "Me", "UpdateMyPassword", "DeleteMe"}, api.Calls())
}

// newWiredStores connects a real HTTPClient to a SessionStore the way the
// application does: 401 responses end the session through the hook.
func newWiredStores(t *testing.T, h http.Handler) (*SessionStore, *BoardStore, *atomic.Int32) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	ts := newTokenStore(t)
	api, err := client.NewHTTPClient(client.Options{BaseURL: srv.URL + "/api", Tokens: ts})
	require.NoError(t, err)

	session := NewSessionStore(api, ts, nil)
	api.SetHooks(client.Hooks{OnUnauthorized: session.HandleUnauthorized})

	var logouts atomic.Int32
	session.OnLogout(func(context.Context) { logouts.Add(1) })

	require.NoError(t, ts.Save(context.Background(), signToken(t, "1", time.Now().Add(time.Hour)), 1))
	return session, NewBoardStore(api, nil), &logouts
}

func TestSession_UnauthorizedResponseLogsOutOnce(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"userId":1,"email":"a@b.c"}}`))
	})
	mux.HandleFunc("GET /api/boards", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	session, boards, logouts := newWiredStores(t, mux)
	ctx := context.Background()

	require.NoError(t, session.RestoreSession(ctx))
	require.True(t, session.State().IsLoggedIn)

	boards.FetchBoards(ctx)

	assert.Equal(t, int32(1), logouts.Load())
	assert.False(t, session.State().IsLoggedIn)
	assert.NotEmpty(t, boards.State().Error)
}

func TestSession_UnauthorizedOnProfileLogsOutOnce(t *testing.T) {
	session, _, logouts := newWiredStores(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	err := session.RestoreSession(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, int32(1), logouts.Load())
	assert.False(t, session.State().IsLoggedIn)
}
