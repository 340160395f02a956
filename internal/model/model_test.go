package model

import (
	"strings"
	"testing"
	"time"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		role     string
		minimum  string
		expected bool
	}{
		{RoleAdmin, RoleAdmin, true},
		{RoleAdmin, RoleCustomer, true},
		{RoleCustomer, RoleAdmin, false},
		{RoleCustomer, RoleCustomer, true},
		// Unknown roles fail-closed.
		{"unknown", RoleCustomer, false},
		{"", "", false},
		{"", RoleCustomer, false},
	}

	for _, tt := range tests {
		got := RoleAtLeast(tt.role, tt.minimum)
		if got != tt.expected {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tt.role, tt.minimum, got, tt.expected)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"", true},
		{"short", true},
		{"1234567", true},
		{"12345678", false},
		{"a-valid-password", false},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) error = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for i, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
		if StatusStep(s) != i {
			t.Errorf("StatusStep(%q) = %d, want %d", s, StatusStep(s), i)
		}
	}

	for _, s := range []string{"", "expected", "DELIVERED", "Lost", "In transit"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
	if len(Statuses) != 6 {
		t.Errorf("expected 6 statuses, got %d", len(Statuses))
	}
}

func TestInvitationUsable(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Minute)

	inv := &Invitation{ExpiresAt: now.Add(time.Hour)}
	if !inv.Usable(now) {
		t.Error("expected fresh invitation to be usable")
	}

	inv.UsedAt = &used
	if inv.Usable(now) {
		t.Error("expected used invitation to be unusable")
	}

	expired := &Invitation{ExpiresAt: now.Add(-time.Second)}
	if expired.Usable(now) {
		t.Error("expected expired invitation to be unusable")
	}
}

func TestTrackingView(t *testing.T) {
	p := &Package{ID: 7, OwnerID: 3, TrackingNumber: "TN1", Merchant: "Amazon", Status: StatusCleared, DeclaredValueUSD: 99}
	v := p.Tracking()
	if v.Step != 3 {
		t.Errorf("expected step 3, got %d", v.Step)
	}
	if v.TrackingNumber != "TN1" || v.ID != 7 {
		t.Errorf("unexpected view: %+v", v)
	}
}

func TestValidTracking(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1Z999AA10123456784", true},
		{"TN 1-2/3", true},
		{"", false},
		{"TN1\r\nBcc: x@y.z", false},
		{"TN1\x00", false},
		{"ÉX12", false},
		{strings.Repeat("A", MaxTrackingLength), true},
		{strings.Repeat("A", MaxTrackingLength+1), false},
	}
	for _, tt := range tests {
		if got := ValidTracking(tt.in); got != tt.want {
			t.Errorf("ValidTracking(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPackageActive(t *testing.T) {
	for _, status := range Statuses {
		p := &Package{Status: status}
		if want := status != StatusDelivered; p.Active() != want {
			t.Errorf("Active() for %q = %v, want %v", status, p.Active(), want)
		}
	}
}
