package model

import (
	"strings"
	"time"
)

// Package is a pre-alerted parcel addressed to a customer's suite.
type Package struct {
	ID               int64     `json:"id"`
	OwnerID          int64     `json:"owner_id"`
	Suite            string    `json:"suite"`
	TrackingNumber   string    `json:"tracking_number"`
	Merchant         string    `json:"merchant"`
	DeclaredValueUSD float64   `json:"declared_value_usd"`
	Description      string    `json:"description,omitempty"`
	Category         string    `json:"category,omitempty"`
	WeightLb         *float64  `json:"weight_lb,omitempty"`
	Status           string    `json:"status"`
	HasPhoto         bool      `json:"has_photo"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Package statuses, in display order.
const (
	StatusExpected       = "Expected"
	StatusReceived       = "Received"
	StatusInTransit      = "In Transit"
	StatusCleared        = "Cleared"
	StatusReadyForPickup = "Ready for Pickup"
	StatusDelivered      = "Delivered"
)

// Statuses lists every package status in pipeline order.
var Statuses = []string{
	StatusExpected,
	StatusReceived,
	StatusInTransit,
	StatusCleared,
	StatusReadyForPickup,
	StatusDelivered,
}

// ValidStatus reports whether s is exactly one of Statuses.
func ValidStatus(s string) bool {
	return StatusStep(s) >= 0
}

// StatusStep returns the zero-based position of s in the pipeline, or -1.
func StatusStep(s string) int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Active reports whether the package is still on its way.
func (p *Package) Active() bool {
	return p.Status != StatusDelivered
}

// PackageEvent is one entry in a package's status history.
type PackageEvent struct {
	ID        int64     `json:"id"`
	PackageID int64     `json:"package_id"`
	Status    string    `json:"status"`
	ChangedBy *int64    `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`

	// Joined field (not always populated).
	ChangedByName string `json:"changed_by_name,omitempty"`
}

// TrackingView is the public projection returned by tracking lookups.
type TrackingView struct {
	ID             int64     `json:"id"`
	TrackingNumber string    `json:"tracking_number"`
	Merchant       string    `json:"merchant"`
	Status         string    `json:"status"`
	Step           int       `json:"step"`
	Steps          []string  `json:"steps"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Tracking builds the public view of p.
func (p *Package) Tracking() *TrackingView {
	return &TrackingView{
		ID:             p.ID,
		TrackingNumber: p.TrackingNumber,
		Merchant:       p.Merchant,
		Status:         p.Status,
		Step:           StatusStep(p.Status),
		Steps:          Statuses,
		UpdatedAt:      p.UpdatedAt,
	}
}

// NormalizeTracking trims surrounding whitespace from a tracking number.
func NormalizeTracking(s string) string {
	return strings.TrimSpace(s)
}

// MaxTrackingLength bounds a tracking number.
const MaxTrackingLength = 64

// ValidTracking reports whether s is a usable tracking number: non-empty,
// at most MaxTrackingLength bytes, printable ASCII only. Lookups fold case
// on ASCII letters only.
func ValidTracking(s string) bool {
	if s == "" || len(s) > MaxTrackingLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
