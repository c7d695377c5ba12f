package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/nutricare/nutricare-client/internal/common"
	"github.com/nutricare/nutricare-client/internal/dbx"
)

// SQLiteRepository implements Repository over the metadata table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) SaveSession(ctx context.Context, token string, userID int64) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := set(ctx, tx, common.AccessTokenStorageKey, []byte(token)); err != nil {
			return err
		}
		return set(ctx, tx, common.UserIDStorageKey, []byte(strconv.FormatInt(userID, 10)))
	})
}

func (r *SQLiteRepository) LoadSession(ctx context.Context) (string, int64, error) {
	token, err := get(ctx, r.db, common.AccessTokenStorageKey)
	if err != nil {
		return "", 0, err
	}
	rawID, err := get(ctx, r.db, common.UserIDStorageKey)
	if err != nil {
		return "", 0, err
	}

	var userID int64
	if len(rawID) > 0 {
		userID, err = strconv.ParseInt(string(rawID), 10, 64)
		if err != nil {
			return "", 0, fmt.Errorf("stored user id %q: %w", rawID, err)
		}
	}
	return string(token), userID, nil
}

func (r *SQLiteRepository) ClearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := del(ctx, tx, common.AccessTokenStorageKey); err != nil {
			return err
		}
		return del(ctx, tx, common.UserIDStorageKey)
	})
}

func (r *SQLiteRepository) AccessToken(ctx context.Context) (string, error) {
	v, err := get(ctx, r.db, common.AccessTokenStorageKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func get(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func set(ctx context.Context, db dbx.DBTX, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func del(ctx context.Context, db dbx.DBTX, key string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}
