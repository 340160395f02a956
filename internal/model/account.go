package model

import (
	"fmt"
	"time"
)

// Account is a registered customer or administrator.
type Account struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	SuiteNumber  string     `json:"suite_number,omitempty"`
	Verified     bool       `json:"verified"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Roles.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// IsAdmin reports whether the account holds the admin role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// RoleAtLeast checks if role meets or exceeds the minimum required role.
func RoleAtLeast(role, minimum string) bool {
	levels := map[string]int{
		RoleAdmin:    2,
		RoleCustomer: 1,
	}
	return levels[role] >= levels[minimum] && levels[role] > 0
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// ValidatePassword checks password strength requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// SuiteEntry is the public directory record for a customer suite.
type SuiteEntry struct {
	AccountID   int64  `json:"account_id"`
	Name        string `json:"name"`
	SuiteNumber string `json:"suite_number"`
}

// Invitation lets an existing admin bring in another admin.
type Invitation struct {
	Code      string     `json:"code"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedBy *int64     `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}

// Usable reports whether the invitation can still be redeemed at now.
func (i *Invitation) Usable(now time.Time) bool {
	return i.UsedAt == nil && now.Before(i.ExpiresAt)
}

// Address is a customer's forwarding address at the warehouse.
type Address struct {
	Name    string   `json:"name"`
	Suite   string   `json:"suite"`
	Lines   []string `json:"lines"`
	Country string   `json:"country"`
}
