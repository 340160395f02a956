package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL,
    email         TEXT NOT NULL COLLATE NOCASE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'customer' CHECK (role IN ('admin', 'customer')),
    suite_number  TEXT,
    verified      INTEGER NOT NULL DEFAULT 0,
    verified_at   DATETIME,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(email);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_suite
    ON accounts(suite_number) WHERE suite_number IS NOT NULL;

CREATE TABLE IF NOT EXISTS suite_directory (
    account_id   INTEGER PRIMARY KEY REFERENCES accounts(id),
    name         TEXT NOT NULL,
    suite_number TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS invitations (
    code       TEXT PRIMARY KEY,
    email      TEXT NOT NULL COLLATE NOCASE,
    role       TEXT NOT NULL DEFAULT 'admin' CHECK (role IN ('admin')),
    created_by INTEGER REFERENCES accounts(id),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    expires_at DATETIME NOT NULL,
    used_at    DATETIME
);

CREATE TABLE IF NOT EXISTS packages (
    id                 INTEGER PRIMARY KEY,
    owner_id           INTEGER NOT NULL REFERENCES accounts(id),
    suite              TEXT NOT NULL,
    tracking_number    TEXT NOT NULL,
    merchant           TEXT NOT NULL,
    declared_value_usd REAL NOT NULL CHECK (declared_value_usd >= 0),
    description        TEXT,
    category           TEXT,
    weight_lb          REAL CHECK (weight_lb IS NULL OR weight_lb >= 0),
    status             TEXT NOT NULL DEFAULT 'Expected' CHECK (status IN
                           ('Expected', 'Received', 'In Transit', 'Cleared', 'Ready for Pickup', 'Delivered')),
    created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_packages_owner ON packages(owner_id);
CREATE INDEX IF NOT EXISTS idx_packages_tracking ON packages(tracking_number COLLATE NOCASE);

CREATE TABLE IF NOT EXISTS package_events (
    id         INTEGER PRIMARY KEY,
    package_id INTEGER NOT NULL REFERENCES packages(id),
    status     TEXT NOT NULL,
    changed_by INTEGER REFERENCES accounts(id),
    changed_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_package_events_package ON package_events(package_id);

CREATE TABLE IF NOT EXISTS package_photos (
    package_id INTEGER PRIMARY KEY REFERENCES packages(id),
    image      BLOB NOT NULL,
    thumbnail  BLOB NOT NULL,
    mime       TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
