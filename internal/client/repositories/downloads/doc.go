// Package downloads keeps track of photo images saved locally, so a photo is
// fetched from object storage only once.
//
// Typical Usage
//
//	repo := downloads.NewSQLiteRepository(db)
//	_ = repo.Save(ctx, d)
//	d, _ := repo.GetByPhotoID(ctx, photoID)
package downloads
