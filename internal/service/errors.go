// Package service holds the account and package ledger rules shared by the
// HTTP API and the operator CLI. Every visibility and role check lives
// here; callers only translate errors.
package service

import (
	"errors"

	"github.com/erazemk/swiftship/internal/rates"
)

var (
	// ErrNotVerified is returned when an unverified account attempts a gated action.
	ErrNotVerified = errors.New("account is not verified")
	// ErrNotFound is returned for unknown packages, including ones the actor may not see.
	ErrNotFound = errors.New("not found")
	// ErrAccountNotFound is returned for unknown accounts.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidStatus is returned for a status outside the fixed pipeline.
	ErrInvalidStatus = errors.New("invalid package status")
	// ErrForbidden is returned when the actor's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrEmailTaken is returned when registering an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login and ChangePassword for a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for bad or expired verification tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError reports bad user input on a named field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// fromRates converts estimator validation failures; other errors pass through.
func fromRates(err error) error {
	var ve *rates.ValidationError
	if errors.As(err, &ve) {
		return invalid(ve.Field, ve.Message)
	}
	return err
}
