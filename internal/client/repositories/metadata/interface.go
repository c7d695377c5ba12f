// Package metadata is the local key/value store. It plays the part browser
// local storage plays for the web client: the access token and user id live
// here between runs.
package metadata

import (
	"context"
)

// Repository persists the signed-in session.
type Repository interface {
	// SaveSession writes the token and user id together.
	SaveSession(ctx context.Context, token string, userID int64) error
	// LoadSession returns ("", 0, nil) when nothing is stored.
	LoadSession(ctx context.Context) (token string, userID int64, err error)
	// ClearSession removes both keys. Clearing an empty store is not an error.
	ClearSession(ctx context.Context) error
	// AccessToken returns the stored token or "".
	AccessToken(ctx context.Context) (string, error)
}
