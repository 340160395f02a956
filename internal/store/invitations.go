package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/erazemk/swiftship/internal/model"
)

// CreateInvitation stores a new admin invitation.
func CreateInvitation(ctx context.Context, db *sql.DB, code, email string, createdBy *int64, expiresAt time.Time) (*model.Invitation, error) {
	_, err := db.ExecContext(ctx,
		`INSERT INTO invitations (code, email, role, created_by, expires_at) VALUES (?, ?, ?, ?, ?)`,
		code, email, model.RoleAdmin, createdBy, expiresAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating invitation: %w", err)
	}
	return GetInvitation(ctx, db, code)
}

// GetInvitation returns an invitation by code, or nil if unknown.
func GetInvitation(ctx context.Context, db *sql.DB, code string) (*model.Invitation, error) {
	inv := &model.Invitation{}
	err := db.QueryRowContext(ctx,
		`SELECT code, email, role, created_by, created_at, expires_at, used_at
		 FROM invitations WHERE code = ?`, code,
	).Scan(&inv.Code, &inv.Email, &inv.Role, &inv.CreatedBy, &inv.CreatedAt, &inv.ExpiresAt, &inv.UsedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	return inv, nil
}
