package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/swiftship/internal/model"
)

// NewPackage holds the fields recorded by a pre-alert.
type NewPackage struct {
	OwnerID          int64
	Suite            string
	TrackingNumber   string
	Merchant         string
	DeclaredValueUSD float64
	Description      string
	Category         string
	WeightLb         *float64

	// CreatedBy is recorded on the initial history entry.
	CreatedBy *int64
}

// PackageFilter narrows ListPackages.
type PackageFilter struct {
	// OwnerID restricts results to one owner; zero lists every package.
	OwnerID    int64
	ActiveOnly bool
}

const packageColumns = `p.id, p.owner_id, p.suite, p.tracking_number, p.merchant, p.declared_value_usd,
	p.description, p.category, p.weight_lb, p.status, p.created_at, p.updated_at,
	EXISTS (SELECT 1 FROM package_photos ph WHERE ph.package_id = p.id)`

func scanPackage(row rowScanner) (*model.Package, error) {
	p := &model.Package{}
	var description, category sql.NullString
	var weight sql.NullFloat64
	err := row.Scan(&p.ID, &p.OwnerID, &p.Suite, &p.TrackingNumber, &p.Merchant, &p.DeclaredValueUSD,
		&description, &category, &weight, &p.Status, &p.CreatedAt, &p.UpdatedAt, &p.HasPhoto)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Category = category.String
	if weight.Valid {
		w := weight.Float64
		p.WeightLb = &w
	}
	return p, nil
}

// CreatePackage inserts a package at status Expected together with its
// first history entry.
func CreatePackage(ctx context.Context, db *sql.DB, np NewPackage) (*model.Package, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	var weight sql.NullFloat64
	if np.WeightLb != nil {
		weight = sql.NullFloat64{Float64: *np.WeightLb, Valid: true}
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO packages (owner_id, suite, tracking_number, merchant, declared_value_usd,
		                       description, category, weight_lb, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		np.OwnerID, np.Suite, np.TrackingNumber, np.Merchant, np.DeclaredValueUSD,
		nullString(np.Description), nullString(np.Category), weight, model.StatusExpected, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating package: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting package id: %w", err)
	}

	if err := insertEvent(ctx, tx, id, model.StatusExpected, np.CreatedBy, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing package: %w", err)
	}

	return GetPackage(ctx, db, id)
}

// GetPackage returns a package by ID, or nil if it does not exist.
func GetPackage(ctx context.Context, db *sql.DB, id int64) (*model.Package, error) {
	p, err := scanPackage(db.QueryRowContext(ctx,
		`SELECT `+packageColumns+` FROM packages p WHERE p.id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting package: %w", err)
	}
	return p, nil
}

// ListPackages returns packages in ledger (insertion) order.
func ListPackages(ctx context.Context, db *sql.DB, f PackageFilter) ([]model.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages p WHERE 1=1`
	var args []any

	if f.OwnerID > 0 {
		query += ` AND p.owner_id = ?`
		args = append(args, f.OwnerID)
	}
	if f.ActiveOnly {
		query += ` AND p.status <> ?`
		args = append(args, model.StatusDelivered)
	}
	query += ` ORDER BY p.id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	var packages []model.Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning package: %w", err)
		}
		packages = append(packages, *p)
	}
	return packages, rows.Err()
}

// FindPackageByTracking returns the earliest package whose tracking number
// equals tracking, ignoring ASCII case. Returns nil if none match.
func FindPackageByTracking(ctx context.Context, db *sql.DB, tracking string) (*model.Package, error) {
	p, err := scanPackage(db.QueryRowContext(ctx,
		`SELECT `+packageColumns+` FROM packages p
		 WHERE p.tracking_number = ? COLLATE NOCASE
		 ORDER BY p.id LIMIT 1`, tracking,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding package by tracking: %w", err)
	}
	return p, nil
}

// UpdatePackageStatus sets a package's status and appends a history entry
// in one transaction. It reports false if the package does not exist.
func UpdatePackageStatus(ctx context.Context, db *sql.DB, id int64, status string, changedBy *int64) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE packages SET status = ?, updated_at = ? WHERE id = ?`,
		status, now, id,
	)
	if err != nil {
		return false, fmt.Errorf("updating package status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return false, nil
	}

	if err := insertEvent(ctx, tx, id, status, changedBy, now); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing status update: %w", err)
	}
	return true, nil
}

func insertEvent(ctx context.Context, tx *sql.Tx, packageID int64, status string, changedBy *int64, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO package_events (package_id, status, changed_by, changed_at) VALUES (?, ?, ?, ?)`,
		packageID, status, changedBy, at,
	)
	if err != nil {
		return fmt.Errorf("recording package event: %w", err)
	}
	return nil
}

// ListPackageEvents returns a package's status history, oldest first.
func ListPackageEvents(ctx context.Context, db *sql.DB, packageID int64) ([]model.PackageEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT e.id, e.package_id, e.status, e.changed_by, e.changed_at, COALESCE(a.name, '')
		 FROM package_events e
		 LEFT JOIN accounts a ON a.id = e.changed_by
		 WHERE e.package_id = ?
		 ORDER BY e.id`, packageID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing package events: %w", err)
	}
	defer rows.Close()

	var events []model.PackageEvent
	for rows.Next() {
		var e model.PackageEvent
		if err := rows.Scan(&e.ID, &e.PackageID, &e.Status, &e.ChangedBy, &e.ChangedAt, &e.ChangedByName); err != nil {
			return nil, fmt.Errorf("scanning package event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
