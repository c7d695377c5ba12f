package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestLoadSession_Empty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	token, userID, err := r.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Zero(t, userID)

	tok, err := r.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestSaveSession_ThenLoad(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.SaveSession(ctx, "eyJ.token", 42))

	token, userID, err := r.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eyJ.token", token)
	assert.Equal(t, int64(42), userID)

	tok, err := r.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eyJ.token", tok)

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT value FROM metadata WHERE key = 'accessToken'`).Scan(&raw))
	assert.Equal(t, []byte("eyJ.token"), raw)
}

func TestSaveSession_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SaveSession(ctx, "old", 1))
	require.NoError(t, r.SaveSession(ctx, "new", 2))

	token, userID, err := r.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", token)
	assert.Equal(t, int64(2), userID)
}

func TestClearSession_RemovesBothKeys_AndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('other', x'01')`)
	require.NoError(t, err)
	require.NoError(t, r.SaveSession(ctx, "tok", 7))
	require.NoError(t, r.ClearSession(ctx))

	token, userID, err := r.LoadSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Zero(t, userID)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	assert.Equal(t, 1, n, "unrelated keys survive")

	require.NoError(t, r.ClearSession(ctx))
}

func TestLoadSession_BadUserID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('accessToken', 'tok'), ('userId', 'abc')`)
	require.NoError(t, err)

	_, _, err = r.LoadSession(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `stored user id "abc"`)
}

func TestLoadSession_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	_, _, err := r.LoadSession(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get metadata[accessToken]")

	_, err = r.AccessToken(context.Background())
	require.Error(t, err)
}

func TestSaveAndClear_DBError(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	require.NoError(t, db.Close())

	require.Error(t, r.SaveSession(context.Background(), "tok", 1))
	require.Error(t, r.ClearSession(context.Background()))
}
