package store

import (
	"errors"
	"strings"
)

var (
	// ErrEmailTaken is returned when an account with the same email exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSuiteTaken is returned when a generated suite number is already assigned.
	ErrSuiteTaken = errors.New("suite number already assigned")
	// ErrInvitationUnavailable is returned when an invitation is unknown, used or expired.
	ErrInvitationUnavailable = errors.New("invitation unavailable")
)

// uniqueViolation reports whether err is a SQLite UNIQUE failure on one of
// the given table.column targets.
func uniqueViolation(err error, targets ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	for _, t := range targets {
		if strings.Contains(msg, t) {
			return true
		}
	}
	return false
}
