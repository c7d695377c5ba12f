package downloads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nutricare/nutricare-client/internal/client/models"
	"github.com/nutricare/nutricare-client/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, d *models.Download) error {

	query := `INSERT INTO downloads (photo_id, photo_url, local_path, downloaded_at)
			values (?, ?, ?, ?)
			ON CONFLICT(photo_id) DO UPDATE SET
				photo_url = excluded.photo_url,
				local_path = excluded.local_path,
				downloaded_at = excluded.downloaded_at
	`
	_, err := r.db.ExecContext(ctx, query, d.PhotoID, d.PhotoURL, d.LocalPath, d.DownloadedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to upsert download: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetByPhotoID(ctx context.Context, photoID int64) (*models.Download, error) {

	query := `select photo_id, photo_url, local_path, downloaded_at from downloads where photo_id=?`
	d, err := scanDownload(r.db.QueryRowContext(ctx, query, photoID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get download %d: %w", photoID, err)
	}

	return d, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Download, error) {

	query := `select photo_id, photo_url, local_path, downloaded_at from downloads order by downloaded_at desc, photo_id desc`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error selecting downloads: %w", err)
	}
	defer rows.Close()

	result := []*models.Download{}
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, photoID int64) error {
	_, err := r.db.ExecContext(ctx, `delete from downloads where photo_id=?`, photoID)
	if err != nil {
		return fmt.Errorf("failed to delete download %d: %w", photoID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDownload(s scanner) (*models.Download, error) {
	var (
		d  models.Download
		at string
	)
	if err := s.Scan(&d.PhotoID, &d.PhotoURL, &d.LocalPath, &at); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, fmt.Errorf("bad downloaded_at %q: %w", at, err)
	}
	d.DownloadedAt = t
	return &d, nil
}
