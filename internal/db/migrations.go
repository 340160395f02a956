package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: backfill the public suite directory for customers that
	// registered before it existed.
	`INSERT OR IGNORE INTO suite_directory (account_id, name, suite_number)
	     SELECT id, name, suite_number FROM accounts
	     WHERE role = 'customer' AND suite_number IS NOT NULL`,
	// Migration 2: record an initial history entry for packages without one.
	`INSERT INTO package_events (package_id, status, changed_by, changed_at)
	     SELECT p.id, p.status, NULL, p.created_at FROM packages p
	     WHERE NOT EXISTS (SELECT 1 FROM package_events e WHERE e.package_id = p.id)`,
}

// Migrate ensures the schema exists and runs the data migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
