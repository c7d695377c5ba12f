package stores

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nutricare/nutricare-client/internal/client/repositories/metadata"
	"github.com/nutricare/nutricare-client/internal/common"
)

// TokenStorage persists the access token and the user id between runs.
type TokenStorage interface {
	Save(ctx context.Context, token string, userID int64) error
	Load(ctx context.Context) (token string, userID int64, err error)
	Clear(ctx context.Context) error
}

// TokenStore keeps the token in the local metadata table under
// common.AccessTokenStorageKey. It also implements client.TokenSource.
type TokenStore struct {
	repo metadata.Repository
}

func NewTokenStore(repo metadata.Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Save writes the token and user id in one transaction.
func (s *TokenStore) Save(ctx context.Context, token string, userID int64) error {
	if token == "" {
		return common.ErrInvalidToken
	}
	return s.repo.SaveSession(ctx, token, userID)
}

// Load returns the stored token and user id. Nothing stored yields ("", 0, nil).
func (s *TokenStore) Load(ctx context.Context) (string, int64, error) {
	return s.repo.LoadSession(ctx)
}

// Clear removes the token and the user id.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.ClearSession(ctx)
}

// AccessToken implements client.TokenSource.
func (s *TokenStore) AccessToken(ctx context.Context) (string, error) {
	return s.repo.AccessToken(ctx)
}

// TokenClaims are the fields the client reads from the backend JWT.
type TokenClaims struct {
	UserID    int64
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is not after now.
// Tokens without exp never expire client side.
func (c TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// ParseClaims decodes the token payload without verifying the signature;
// the client has no key and only needs the expiry and subject.
func ParseClaims(token string) (TokenClaims, error) {
	var claims jwtClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	out := TokenClaims{Role: claims.Role}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.Subject != "" {
		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			return TokenClaims{}, fmt.Errorf("%w: subject %q", common.ErrInvalidToken, claims.Subject)
		}
		out.UserID = id
	}
	return out, nil
}
