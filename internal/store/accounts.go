package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/swiftship/internal/model"
)

// NewAccount holds the fields needed to create an account.
type NewAccount struct {
	Name         string
	Email        string
	PasswordHash string
	Role         string
	SuiteNumber  string
	Verified     bool

	// InviteCode, when set, is consumed in the same transaction.
	InviteCode string
}

const accountColumns = `id, name, email, password_hash, role, suite_number, verified, verified_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	a := &model.Account{}
	var suite sql.NullString
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &suite, &a.Verified, &a.VerifiedAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.SuiteNumber = suite.String
	return a, nil
}

// CreateAccount inserts an account and, for customers, its suite directory
// entry in a single transaction.
func CreateAccount(ctx context.Context, db *sql.DB, na NewAccount) (*model.Account, error) {
	if !model.ValidRole(na.Role) {
		return nil, fmt.Errorf("creating account: unknown role %q", na.Role)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if na.InviteCode != "" {
		res, err := tx.ExecContext(ctx,
			`UPDATE invitations SET used_at = ?
			 WHERE code = ? AND email = ? AND used_at IS NULL AND expires_at > ?`,
			time.Now().UTC(), na.InviteCode, na.Email, time.Now().UTC(),
		)
		if err != nil {
			return nil, fmt.Errorf("consuming invitation: %w", err)
		}
		if n, _ := res.RowsAffected(); n != 1 {
			return nil, ErrInvitationUnavailable
		}
	}

	var verifiedAt *time.Time
	if na.Verified {
		now := time.Now().UTC()
		verifiedAt = &now
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO accounts (name, email, password_hash, role, suite_number, verified, verified_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		na.Name, na.Email, na.PasswordHash, na.Role, nullString(na.SuiteNumber), na.Verified, verifiedAt,
	)
	if uniqueViolation(err, "accounts.email") {
		return nil, ErrEmailTaken
	}
	if uniqueViolation(err, "accounts.suite_number") {
		return nil, ErrSuiteTaken
	}
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting account id: %w", err)
	}

	if na.Role == model.RoleCustomer && na.SuiteNumber != "" {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO suite_directory (account_id, name, suite_number) VALUES (?, ?, ?)`,
			id, na.Name, na.SuiteNumber,
		)
		if uniqueViolation(err, "suite_directory.suite_number") {
			return nil, ErrSuiteTaken
		}
		if err != nil {
			return nil, fmt.Errorf("creating suite directory entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing account: %w", err)
	}

	return GetAccount(ctx, db, id)
}

// GetAccount returns an account by ID, or nil if it does not exist.
func GetAccount(ctx context.Context, db *sql.DB, id int64) (*model.Account, error) {
	a, err := scanAccount(db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}
	return a, nil
}

// GetAccountByEmail returns an account by email (case-insensitive), or nil.
func GetAccountByEmail(ctx context.Context, db *sql.DB, email string) (*model.Account, error) {
	a, err := scanAccount(db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account by email: %w", err)
	}
	return a, nil
}

// ListAccounts returns all accounts, optionally filtered by role.
func ListAccounts(ctx context.Context, db *sql.DB, role string) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	var args []any
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// MarkAccountVerified flips the verified flag. It reports whether the row
// changed; an already-verified account is left untouched.
func MarkAccountVerified(ctx context.Context, db *sql.DB, id int64) (bool, error) {
	res, err := db.ExecContext(ctx,
		`UPDATE accounts SET verified = 1, verified_at = ? WHERE id = ? AND verified = 0`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("verifying account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("verifying account: %w", err)
	}
	return n > 0, nil
}

// UpdateAccountPassword updates an account's password hash.
func UpdateAccountPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ? WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating account password: %w", err)
	}
	return nil
}

// GetSuiteEntry returns the public directory entry for a suite, or nil.
func GetSuiteEntry(ctx context.Context, db *sql.DB, suite string) (*model.SuiteEntry, error) {
	e := &model.SuiteEntry{}
	err := db.QueryRowContext(ctx,
		`SELECT account_id, name, suite_number FROM suite_directory WHERE suite_number = ?`, suite,
	).Scan(&e.AccountID, &e.Name, &e.SuiteNumber)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting suite entry: %w", err)
	}
	return e, nil
}

// CountAccounts returns the number of accounts with the given role.
func CountAccounts(ctx context.Context, db *sql.DB, role string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE role = ?`, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting accounts: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
