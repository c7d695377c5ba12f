// Package repositories opens the local SQLite database and builds the
// repositories that live in it.
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nutricare/nutricare-client/internal/client/migrations"
	"github.com/nutricare/nutricare-client/internal/client/repositories/downloads"
	"github.com/nutricare/nutricare-client/internal/client/repositories/metadata"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// busyTimeout lets concurrent writers on the shared file wait for the lock
// instead of failing with "database is locked".
const busyTimeout = 5 * time.Second

// Repositories bundles the local stores together with the handle they share.
type Repositories struct {
	DB        *sql.DB
	Metadata  metadata.Repository
	Downloads downloads.Repository
}

// Close releases the database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies the embedded goose migrations. Applying them twice is
// a no-op.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// withPragmas appends the connection pragmas to dsn. The driver applies
// them to every new connection in the pool.
func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", dsn, sep, busyTimeout.Milliseconds())
}

// InitDatabase opens (or creates) the SQLite file at dsn and migrates it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:        db,
		Metadata:  metadata.NewSQLiteRepository(db),
		Downloads: downloads.NewSQLiteRepository(db),
	}, nil
}
