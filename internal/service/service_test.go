package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erazemk/swiftship/internal/auth"
	"github.com/erazemk/swiftship/internal/db"
	"github.com/erazemk/swiftship/internal/live"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/notify"
	"github.com/erazemk/swiftship/internal/rates"
)

const testPassword = "correct-horse"

type fakeSender struct {
	mu   sync.Mutex
	sent []notify.Message
	to   []string
	fail bool
}

func (f *fakeSender) Send(_ context.Context, to string, msg notify.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	f.to = append(f.to, to)
	if f.fail {
		return errors.New("mail server unreachable")
	}
	return nil
}

func (f *fakeSender) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kinds []string
	for _, m := range f.sent {
		kinds = append(kinds, m.Kind)
	}
	return kinds
}

type fixture struct {
	accounts *Accounts
	ledger   *Ledger
	rates    *Rates
	hub      *live.Hub
	sender   *fakeSender
	dispatch *notify.Dispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := db.NewTestDB(t)
	sender := &fakeSender{}
	dispatch := notify.NewDispatcher(sender)
	hub := live.NewHub()

	return &fixture{
		accounts: &Accounts{
			DB:           database,
			Secret:       "test-secret",
			Notify:       dispatch,
			Changes:      hub,
			Brand:        "SwiftShip",
			BaseURL:      "http://localhost:8080",
			SuiteGen:     sequentialSuites(),
			AddressLines: []string{"8300 NW 123th Ave", "Miami, FL 33166"},
			Country:      "United States",
		},
		ledger:   &Ledger{DB: database, Notify: dispatch, Changes: hub},
		rates:    &Rates{DB: database, Defaults: rates.Default()},
		hub:      hub,
		sender:   sender,
		dispatch: dispatch,
	}
}

// sequentialSuites hands out SS-1000, SS-1001, ... so tests are deterministic.
func sequentialSuites() func() (string, error) {
	var mu sync.Mutex
	n := 1000
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		s := fmt.Sprintf("SS-%d", n)
		n++
		return s, nil
	}
}

func (f *fixture) customer(t *testing.T, name string, verified bool) *model.Account {
	t.Helper()
	ctx := context.Background()
	acct, err := f.accounts.Register(ctx, RegisterInput{Name: name, Email: name + "@x.com", Password: testPassword})
	require.NoError(t, err)
	if verified {
		require.NoError(t, f.accounts.Verify(ctx, acct.ID))
		acct, err = f.accounts.Get(ctx, acct, acct.ID)
		require.NoError(t, err)
	}
	return acct
}

func (f *fixture) admin(t *testing.T) *model.Account {
	t.Helper()
	acct, err := f.accounts.SeedAdmin(context.Background(), "Admin", "admin@swiftship.local", testPassword)
	require.NoError(t, err)
	return acct
}

func value(v float64) *float64 { return &v }

func claimsFor(a *model.Account) *auth.Claims {
	return &auth.Claims{AccountID: a.ID, Email: a.Email, Role: a.Role}
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
