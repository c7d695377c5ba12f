package downloads

import (
	"context"

	"github.com/nutricare/nutricare-client/internal/client/models"
)

// Repository describes the local download records.
type Repository interface {
	// Save inserts or replaces the record for d.PhotoID.
	Save(ctx context.Context, d *models.Download) error

	// GetByPhotoID returns nil, nil when the photo was never downloaded.
	GetByPhotoID(ctx context.Context, photoID int64) (*models.Download, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*models.Download, error)

	Delete(ctx context.Context, photoID int64) error
}
