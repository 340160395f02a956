package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/erazemk/swiftship/internal/rates"
)

const (
	settingJWTSecret = "jwt_secret"
	settingRates     = "rates"
)

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`,
		settingJWTSecret, hex.EncodeToString(buf),
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	secret, _, err := getSetting(ctx, db, settingJWTSecret)
	if err != nil {
		return "", err
	}
	return secret, nil
}

// GetRateConfig returns the stored tariff. The boolean is false when no
// tariff has been saved yet.
func GetRateConfig(ctx context.Context, db *sql.DB) (rates.Config, bool, error) {
	raw, ok, err := getSetting(ctx, db, settingRates)
	if err != nil || !ok {
		return rates.Config{}, false, err
	}

	var cfg rates.Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return rates.Config{}, false, fmt.Errorf("decoding rates: %w", err)
	}
	return cfg, true, nil
}

// SaveRateConfig stores the tariff, replacing any previous one.
func SaveRateConfig(ctx context.Context, db *sql.DB, cfg rates.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding rates: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		settingRates, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storing rates: %w", err)
	}
	return nil
}

func getSetting(ctx context.Context, db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying %s: %w", key, err)
	}
	return value, true, nil
}
