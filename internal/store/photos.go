package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SetPackagePhoto stores (or replaces) a package's warehouse photo.
func SetPackagePhoto(ctx context.Context, db *sql.DB, packageID int64, image, thumbnail []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO package_photos (package_id, image, thumbnail, mime, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (package_id) DO UPDATE SET
		     image = excluded.image, thumbnail = excluded.thumbnail,
		     mime = excluded.mime, updated_at = excluded.updated_at`,
		packageID, image, thumbnail, mime, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("setting package photo: %w", err)
	}
	return nil
}

// GetPackagePhoto returns a package's photo (or its thumbnail) and MIME type.
// Data is nil when the package has no photo.
func GetPackagePhoto(ctx context.Context, db *sql.DB, packageID int64, thumbnail bool) ([]byte, string, error) {
	column := "image"
	if thumbnail {
		column = "thumbnail"
	}

	var data []byte
	var mime string
	err := db.QueryRowContext(ctx,
		`SELECT `+column+`, mime FROM package_photos WHERE package_id = ?`, packageID,
	).Scan(&data, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting package photo: %w", err)
	}
	return data, mime, nil
}
