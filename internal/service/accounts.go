package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/swiftship/internal/auth"
	"github.com/erazemk/swiftship/internal/live"
	"github.com/erazemk/swiftship/internal/metrics"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/notify"
	"github.com/erazemk/swiftship/internal/store"
)

// InvitationExpiry is how long an admin invitation can be redeemed.
const InvitationExpiry = 7 * 24 * time.Hour

// Accounts manages registration, sessions and verification.
type Accounts struct {
	DB      *sql.DB
	Secret  string
	Notify  *notify.Dispatcher
	Changes live.Publisher

	Brand   string
	BaseURL string

	// SuiteGen issues candidate suite numbers; RandomSuite("SS") if nil.
	SuiteGen func() (string, error)

	// Warehouse address lines printed under the customer's name and suite.
	AddressLines []string
	Country      string
}

// RegisterInput is the data submitted at sign-up.
type RegisterInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"invite_code,omitempty"`
}

// ResolveSession loads the account behind a validated token. It returns nil
// for nil claims or an account that no longer exists.
func (s *Accounts) ResolveSession(ctx context.Context, claims *auth.Claims) (*model.Account, error) {
	if claims == nil {
		return nil, nil
	}
	return store.GetAccount(ctx, s.DB, claims.AccountID)
}

// Register creates an account. Without an invitation it is an unverified
// customer with a fresh suite; with a valid invitation for the same email
// it is a verified admin.
func (s *Accounts) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if err := model.ValidatePassword(in.Password); err != nil {
		return nil, invalid("password", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	na := store.NewAccount{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
	}

	if code := strings.TrimSpace(in.InviteCode); code != "" {
		inv, err := store.GetInvitation(ctx, s.DB, code)
		if err != nil {
			return nil, err
		}
		if inv == nil || !inv.Usable(time.Now()) || !strings.EqualFold(inv.Email, email) {
			return nil, invalid("invite_code", "invitation is invalid, expired or issued to another email")
		}
		na.Role = inv.Role
		na.Verified = true
		na.InviteCode = code
	}

	acct, err := s.create(ctx, na)
	if err != nil {
		return nil, err
	}

	metrics.Registrations.WithLabelValues(acct.Role).Inc()
	slog.Info("account registered", "account_id", acct.ID, "role", acct.Role, "suite", acct.SuiteNumber)

	if !acct.Verified {
		s.sendVerification(ctx, acct, true)
	}
	return acct, nil
}

// create inserts na, drawing a new suite for customers until one is free.
func (s *Accounts) create(ctx context.Context, na store.NewAccount) (*model.Account, error) {
	gen := s.SuiteGen
	if gen == nil {
		gen = RandomSuite("SS")
	}

	for attempt := 0; attempt < maxSuiteAttempts; attempt++ {
		if na.Role == model.RoleCustomer {
			suite, err := gen()
			if err != nil {
				return nil, err
			}
			na.SuiteNumber = suite
		}

		acct, err := store.CreateAccount(ctx, s.DB, na)
		switch {
		case err == nil:
			return acct, nil
		case errors.Is(err, store.ErrSuiteTaken):
			slog.Warn("suite number collision, retrying", "suite", na.SuiteNumber, "attempt", attempt+1)
			continue
		case errors.Is(err, store.ErrEmailTaken):
			return nil, ErrEmailTaken
		case errors.Is(err, store.ErrInvitationUnavailable):
			return nil, invalid("invite_code", "invitation is invalid, expired or issued to another email")
		default:
			return nil, err
		}
	}
	return nil, fmt.Errorf("no free suite number after %d attempts", maxSuiteAttempts)
}

// Login checks credentials. It never creates accounts.
func (s *Accounts) Login(ctx context.Context, email, password string) (*model.Account, error) {
	acct, err := store.GetAccountByEmail(ctx, s.DB, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

// Verify marks an account verified. Verifying twice is a no-op.
func (s *Accounts) Verify(ctx context.Context, accountID int64) error {
	acct, err := store.GetAccount(ctx, s.DB, accountID)
	if err != nil {
		return err
	}
	if acct == nil {
		return ErrAccountNotFound
	}

	changed, err := store.MarkAccountVerified(ctx, s.DB, accountID)
	if err != nil {
		return err
	}
	if changed {
		slog.Info("account verified", "account_id", accountID)
		s.publish(live.Change{Kind: live.KindAccount, OwnerID: accountID})
	}
	return nil
}

// VerifyToken redeems an emailed verification link.
func (s *Accounts) VerifyToken(ctx context.Context, token string) (*model.Account, error) {
	id, email, err := auth.ValidateVerificationToken(s.Secret, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	acct, err := store.GetAccount(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if acct == nil || !strings.EqualFold(acct.Email, email) {
		return nil, ErrInvalidToken
	}

	if err := s.Verify(ctx, id); err != nil {
		return nil, err
	}
	return store.GetAccount(ctx, s.DB, id)
}

// ResendVerification sends a fresh verification link and reports whether
// it went out. Verified accounts need no link and report true.
func (s *Accounts) ResendVerification(ctx context.Context, acct *model.Account) bool {
	if acct == nil {
		return false
	}
	if acct.Verified {
		return true
	}
	return s.sendVerification(ctx, acct, false)
}

// sendVerification renders a welcome (at registration) or reminder email.
// With background set it returns immediately and always reports true.
func (s *Accounts) sendVerification(ctx context.Context, acct *model.Account, background bool) bool {
	if s.Notify == nil {
		return false
	}

	token, err := auth.GenerateVerificationToken(s.Secret, acct.ID, acct.Email)
	if err != nil {
		slog.Error("failed to issue verification token", "account_id", acct.ID, "error", err)
		return false
	}

	data := notify.WelcomeData{
		Brand:     s.brand(),
		Name:      acct.Name,
		Suite:     acct.SuiteNumber,
		VerifyURL: s.BaseURL + "/api/auth/verify?token=" + url.QueryEscape(token),
	}

	var msg notify.Message
	if background {
		msg, err = notify.Welcome(data)
	} else {
		msg, err = notify.Verification(data)
	}
	if err != nil {
		slog.Error("failed to render email", "account_id", acct.ID, "error", err)
		return false
	}

	if background {
		s.Notify.Go(acct.Email, msg)
		return true
	}
	return s.Notify.Send(ctx, acct.Email, msg)
}

// CreateInvitation lets an admin invite another admin by email.
func (s *Accounts) CreateInvitation(ctx context.Context, actor *model.Account, email string) (*model.Invitation, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	existing, err := store.GetAccountByEmail(ctx, s.DB, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	inv, err := store.CreateInvitation(ctx, s.DB, uuid.NewString(), email, &actor.ID, time.Now().Add(InvitationExpiry))
	if err != nil {
		return nil, err
	}
	slog.Info("invitation created", "email", email, "by", actor.ID)

	if s.Notify != nil {
		msg, err := notify.Invitation(notify.InvitationData{
			Brand:       s.brand(),
			Code:        inv.Code,
			Expires:     inv.ExpiresAt.Format(time.RFC1123),
			RegisterURL: s.BaseURL + "/api/auth/register",
		})
		if err != nil {
			slog.Error("failed to render invitation email", "error", err)
		} else {
			s.Notify.Go(email, msg)
		}
	}
	return inv, nil
}

// SeedAdmin creates a verified admin directly. Used on first run.
func (s *Accounts) SeedAdmin(ctx context.Context, name, email, password string) (*model.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := model.ValidatePassword(password); err != nil {
		return nil, invalid("password", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acct, err := s.create(ctx, store.NewAccount{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Verified:     true,
	})
	if err != nil {
		return nil, err
	}
	metrics.Registrations.WithLabelValues(model.RoleAdmin).Inc()
	slog.Info("admin account seeded", "account_id", acct.ID, "email", acct.Email)
	return acct, nil
}

// HasAdmin reports whether at least one admin exists.
func (s *Accounts) HasAdmin(ctx context.Context) (bool, error) {
	n, err := store.CountAccounts(ctx, s.DB, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// List returns every account. Admin only.
func (s *Accounts) List(ctx context.Context, actor *model.Account) ([]model.Account, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	accounts, err := store.ListAccounts(ctx, s.DB, "")
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return accounts, nil
}

// Get returns one account. Admins may read any account, others only their own.
func (s *Accounts) Get(ctx context.Context, actor *model.Account, id int64) (*model.Account, error) {
	if actor == nil || (!actor.IsAdmin() && actor.ID != id) {
		return nil, ErrForbidden
	}
	acct, err := store.GetAccount(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

// LookupSuite finds the customer a suite number belongs to, for matching
// incoming parcels at the warehouse. Admin only.
func (s *Accounts) LookupSuite(ctx context.Context, actor *model.Account, suite string) (*model.SuiteEntry, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	entry, err := store.GetSuiteEntry(ctx, s.DB, strings.ToUpper(strings.TrimSpace(suite)))
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrNotFound
	}
	return entry, nil
}

// MailingAddress returns the warehouse address routed to acct's suite.
func (s *Accounts) MailingAddress(acct *model.Account) (*model.Address, error) {
	if acct == nil {
		return nil, ErrAccountNotFound
	}
	if !acct.Verified {
		return nil, ErrNotVerified
	}
	if acct.SuiteNumber == "" {
		return nil, ErrNotFound
	}

	lines := append([]string{acct.Name + " / " + acct.SuiteNumber}, s.AddressLines...)
	return &model.Address{
		Name:    acct.Name,
		Suite:   acct.SuiteNumber,
		Lines:   lines,
		Country: s.Country,
	}, nil
}

// ChangePassword replaces acct's password after checking the current one.
func (s *Accounts) ChangePassword(ctx context.Context, acct *model.Account, current, next string) error {
	if acct == nil {
		return ErrAccountNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	if err := model.ValidatePassword(next); err != nil {
		return invalid("new_password", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := store.UpdateAccountPassword(ctx, s.DB, acct.ID, string(hash)); err != nil {
		return err
	}
	slog.Info("password changed", "account_id", acct.ID)
	return nil
}

func (s *Accounts) brand() string {
	if s.Brand == "" {
		return "SwiftShip"
	}
	return s.Brand
}

func (s *Accounts) publish(c live.Change) {
	if s.Changes != nil {
		s.Changes.Publish(c)
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalid("email", "is not a valid address")
	}
	return email, nil
}
