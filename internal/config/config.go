// Package config reads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/erazemk/swiftship/internal/notify"
	"github.com/erazemk/swiftship/internal/rates"
)

// Prefix is prepended to every environment variable name.
const Prefix = "SWIFTSHIP_"

// Warehouse is the shared physical address customers ship to.
type Warehouse struct {
	Street  string
	City    string
	Country string
}

// Config holds everything the server and CLI need at startup.
type Config struct {
	DBPath  string
	Addr    string
	LogPath string

	Brand       string
	BaseURL     string
	SuitePrefix string
	Warehouse   Warehouse

	AdminName  string
	AdminEmail string

	SMTP notify.SMTPConfig

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	Rates rates.Config
}

// Load reads envFile (if it exists) into the process environment, without
// overriding variables that are already set, then builds a Config.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from SWIFTSHIP_* variables and defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBPath:      getEnv("DB", "swiftship.sqlite3"),
		Addr:        getEnv("ADDR", ":8080"),
		LogPath:     getEnv("LOG", ""),
		Brand:       getEnv("BRAND", "SwiftShip"),
		BaseURL:     strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		SuitePrefix: getEnv("SUITE_PREFIX", "SS"),
		Warehouse: Warehouse{
			Street:  getEnv("WAREHOUSE_STREET", "8300 NW 123th Ave"),
			City:    getEnv("WAREHOUSE_CITY", "Miami, FL 33166"),
			Country: getEnv("WAREHOUSE_COUNTRY", "United States"),
		},
		AdminName:  getEnv("ADMIN_NAME", "Admin"),
		AdminEmail: getEnv("ADMIN_EMAIL", "admin@swiftship.local"),
		SMTP: notify.SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisChannel:  getEnv("REDIS_CHANNEL", "swiftship:changes"),
		Rates:         rates.Default(),
	}
	cfg.SMTP.FromName = cfg.Brand

	var err error
	if cfg.Rates.BasePerLb, err = getFloat("RATE_BASE_PER_LB", cfg.Rates.BasePerLb); err != nil {
		return nil, err
	}
	if cfg.Rates.ProcessingFee, err = getFloat("RATE_PROCESSING_FEE", cfg.Rates.ProcessingFee); err != nil {
		return nil, err
	}
	if cfg.Rates.InsuranceRate, err = getFloat("RATE_INSURANCE", cfg.Rates.InsuranceRate); err != nil {
		return nil, err
	}
	if err := cfg.Rates.Validate(); err != nil {
		return nil, fmt.Errorf("default rates: %w", err)
	}

	if !validSuitePrefix(cfg.SuitePrefix) {
		return nil, fmt.Errorf("%sSUITE_PREFIX must be 1-4 uppercase letters, got %q", Prefix, cfg.SuitePrefix)
	}

	return cfg, nil
}

// AddressLines returns the warehouse address as printed on labels.
func (c *Config) AddressLines() []string {
	return []string{c.Warehouse.Street, c.Warehouse.City}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(Prefix + key); ok {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(Prefix + key)
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s%s: %w", Prefix, key, err)
	}
	return f, nil
}

func validSuitePrefix(p string) bool {
	if len(p) < 1 || len(p) > 4 {
		return false
	}
	for _, r := range p {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
