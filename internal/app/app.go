// Package app wires configuration, storage and services together for the
// server and the operator CLI.
package app

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/swiftship/internal/config"
	"github.com/erazemk/swiftship/internal/db"
	"github.com/erazemk/swiftship/internal/live"
	"github.com/erazemk/swiftship/internal/notify"
	"github.com/erazemk/swiftship/internal/service"
	"github.com/erazemk/swiftship/internal/store"
)

const flushTimeout = 5 * time.Second

// App holds the opened database and the services built on it.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Secret string

	Hub    *live.Hub
	Broker *live.RedisBroker // nil without SWIFTSHIP_REDIS_ADDR
	redis  *redis.Client

	Notify   *notify.Dispatcher
	Accounts *service.Accounts
	Ledger   *service.Ledger
	Rates    *service.Rates
}

// New opens the database at cfg.DBPath, migrates it, and builds services.
func New(cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	secret, err := store.GetJWTSecret(context.Background(), database)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("loading JWT secret: %w", err)
	}

	a := &App{Config: cfg, DB: database, Secret: secret, Hub: live.NewHub()}

	var changes live.Publisher = a.Hub
	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		a.Broker = live.NewRedisBroker(a.redis, cfg.RedisChannel, a.Hub)
		changes = a.Broker
	}

	var sender notify.Sender
	if cfg.SMTP.Enabled() {
		sender = notify.NewSMTPSender(cfg.SMTP)
	}
	a.Notify = notify.NewDispatcher(sender)

	a.Accounts = &service.Accounts{
		DB:           database,
		Secret:       secret,
		Notify:       a.Notify,
		Changes:      changes,
		Brand:        cfg.Brand,
		BaseURL:      cfg.BaseURL,
		SuiteGen:     service.RandomSuite(cfg.SuitePrefix),
		AddressLines: cfg.AddressLines(),
		Country:      cfg.Warehouse.Country,
	}
	a.Ledger = &service.Ledger{DB: database, Notify: a.Notify, Changes: changes}
	a.Rates = &service.Rates{DB: database, Defaults: cfg.Rates}
	return a, nil
}

// EnsureAdmin seeds the configured admin when no admin exists yet. It
// returns the generated password, or "" if an admin was already present.
func (a *App) EnsureAdmin(ctx context.Context) (string, error) {
	has, err := a.Accounts.HasAdmin(ctx)
	if err != nil {
		return "", err
	}
	if has {
		return "", nil
	}

	password, err := GeneratePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}
	if _, err := a.Accounts.SeedAdmin(ctx, a.Config.AdminName, a.Config.AdminEmail, password); err != nil {
		return "", fmt.Errorf("creating admin account: %w", err)
	}
	return password, nil
}

// Close waits for pending emails, sends queued change notices and releases
// connections.
func (a *App) Close() error {
	a.Notify.Wait()
	if a.Broker != nil {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		a.Broker.Flush(ctx)
		cancel()
	}
	if a.redis != nil {
		a.redis.Close()
	}
	return a.DB.Close()
}

// GeneratePassword creates a random password of the given length.
func GeneratePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
