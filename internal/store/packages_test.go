package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/erazemk/swiftship/internal/db"
	"github.com/erazemk/swiftship/internal/model"
)

func seedCustomer(t *testing.T, database *sql.DB, name, suite string) *model.Account {
	t.Helper()
	acct, err := CreateAccount(context.Background(), database, NewAccount{
		Name: name, Email: name + "@x.com", PasswordHash: "h", Role: model.RoleCustomer, SuiteNumber: suite,
	})
	if err != nil {
		t.Fatalf("seeding customer %s: %v", name, err)
	}
	return acct
}

func TestCreateAndGetPackage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	alice := seedCustomer(t, database, "alice", "SS-1001")

	weight := 2.5
	pkg, err := CreatePackage(ctx, database, NewPackage{
		OwnerID: alice.ID, Suite: alice.SuiteNumber, TrackingNumber: "TN1", Merchant: "Amazon",
		DeclaredValueUSD: 10, Category: "electronics", WeightLb: &weight, CreatedBy: &alice.ID,
	})
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}
	if pkg.Status != model.StatusExpected {
		t.Errorf("expected status Expected, got %q", pkg.Status)
	}
	if pkg.Suite != "SS-1001" || pkg.OwnerID != alice.ID {
		t.Errorf("unexpected package: %+v", pkg)
	}
	if pkg.WeightLb == nil || *pkg.WeightLb != 2.5 {
		t.Errorf("expected weight 2.5, got %v", pkg.WeightLb)
	}
	if pkg.HasPhoto {
		t.Error("expected no photo")
	}

	events, err := ListPackageEvents(ctx, database, pkg.ID)
	if err != nil {
		t.Fatalf("ListPackageEvents: %v", err)
	}
	if len(events) != 1 || events[0].Status != model.StatusExpected || events[0].ChangedByName != "alice" {
		t.Errorf("unexpected initial history: %+v", events)
	}

	missing, err := GetPackage(ctx, database, 9999)
	if err != nil {
		t.Fatalf("GetPackage: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing package")
	}
}

func TestListPackagesByOwner(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	a := seedCustomer(t, database, "a", "SS-1001")
	b := seedCustomer(t, database, "b", "SS-1002")

	CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "A1", Merchant: "m"})
	CreatePackage(ctx, database, NewPackage{OwnerID: b.ID, Suite: b.SuiteNumber, TrackingNumber: "B1", Merchant: "m"})
	CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "A2", Merchant: "m"})

	all, _ := ListPackages(ctx, database, PackageFilter{})
	if len(all) != 3 {
		t.Fatalf("expected 3 packages, got %d", len(all))
	}
	if all[0].TrackingNumber != "A1" || all[1].TrackingNumber != "B1" || all[2].TrackingNumber != "A2" {
		t.Errorf("expected ledger order A1,B1,A2, got %s,%s,%s", all[0].TrackingNumber, all[1].TrackingNumber, all[2].TrackingNumber)
	}

	mine, _ := ListPackages(ctx, database, PackageFilter{OwnerID: a.ID})
	if len(mine) != 2 {
		t.Fatalf("expected 2 packages for a, got %d", len(mine))
	}
	for _, p := range mine {
		if p.OwnerID != a.ID {
			t.Errorf("package %d belongs to %d", p.ID, p.OwnerID)
		}
	}
}

func TestListActivePackages(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	a := seedCustomer(t, database, "a", "SS-1001")

	p1, _ := CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "A1", Merchant: "m"})
	CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "A2", Merchant: "m"})
	UpdatePackageStatus(ctx, database, p1.ID, model.StatusDelivered, nil)

	active, _ := ListPackages(ctx, database, PackageFilter{OwnerID: a.ID, ActiveOnly: true})
	if len(active) != 1 || active[0].TrackingNumber != "A2" {
		t.Errorf("expected only A2 active, got %+v", active)
	}

	all, _ := ListPackages(ctx, database, PackageFilter{OwnerID: a.ID})
	for _, p := range all {
		if want := p.ID != p1.ID; p.Active() != want {
			t.Errorf("package %s: Active() = %v, want %v", p.TrackingNumber, p.Active(), want)
		}
	}
}

func TestUpdatePackageStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	a := seedCustomer(t, database, "a", "SS-1001")
	pkg, _ := CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "A1", Merchant: "m"})

	found, err := UpdatePackageStatus(ctx, database, pkg.ID, model.StatusDelivered, nil)
	if err != nil || !found {
		t.Fatalf("UpdatePackageStatus: found=%v err=%v", found, err)
	}
	// Backward moves are allowed.
	found, err = UpdatePackageStatus(ctx, database, pkg.ID, model.StatusReceived, nil)
	if err != nil || !found {
		t.Fatalf("UpdatePackageStatus backward: found=%v err=%v", found, err)
	}

	got, _ := GetPackage(ctx, database, pkg.ID)
	if got.Status != model.StatusReceived {
		t.Errorf("expected status Received, got %q", got.Status)
	}

	events, _ := ListPackageEvents(ctx, database, pkg.ID)
	if len(events) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(events))
	}
	if events[1].Status != model.StatusDelivered || events[2].Status != model.StatusReceived {
		t.Errorf("unexpected history order: %+v", events)
	}
	if events[2].ChangedBy != nil {
		t.Error("expected system change to have no actor")
	}

	found, err = UpdatePackageStatus(ctx, database, 9999, model.StatusReceived, nil)
	if err != nil {
		t.Fatalf("UpdatePackageStatus missing: %v", err)
	}
	if found {
		t.Error("expected missing package to report not found")
	}
}

func TestUpdatePackageStatusRejectsUnknownStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	a := seedCustomer(t, database, "a", "SS-1001")
	pkg, _ := CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "A1", Merchant: "m"})

	if _, err := UpdatePackageStatus(ctx, database, pkg.ID, "Lost", nil); err == nil {
		t.Fatal("expected CHECK constraint to reject unknown status")
	}

	got, _ := GetPackage(ctx, database, pkg.ID)
	if got.Status != model.StatusExpected {
		t.Errorf("expected status unchanged, got %q", got.Status)
	}
	events, _ := ListPackageEvents(ctx, database, pkg.ID)
	if len(events) != 1 {
		t.Errorf("expected no history entry for rejected update, got %d", len(events))
	}
}

func TestFindPackageByTracking(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	a := seedCustomer(t, database, "a", "SS-1001")

	first, _ := CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "AB12", Merchant: "m"})
	CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "ab12", Merchant: "m"})

	for _, q := range []string{"AB12", "ab12", "Ab12"} {
		got, err := FindPackageByTracking(ctx, database, q)
		if err != nil {
			t.Fatalf("FindPackageByTracking(%q): %v", q, err)
		}
		if got == nil || got.ID != first.ID {
			t.Errorf("FindPackageByTracking(%q) = %+v, want package %d", q, got, first.ID)
		}
	}

	none, _ := FindPackageByTracking(ctx, database, "AB1")
	if none != nil {
		t.Error("expected no partial match")
	}
}

func TestPackagePhoto(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	a := seedCustomer(t, database, "a", "SS-1001")
	pkg, _ := CreatePackage(ctx, database, NewPackage{OwnerID: a.ID, Suite: a.SuiteNumber, TrackingNumber: "A1", Merchant: "m"})

	data, _, err := GetPackagePhoto(ctx, database, pkg.ID, false)
	if err != nil {
		t.Fatalf("GetPackagePhoto: %v", err)
	}
	if data != nil {
		t.Error("expected no photo yet")
	}

	if err := SetPackagePhoto(ctx, database, pkg.ID, []byte("full"), []byte("thumb"), "image/jpeg"); err != nil {
		t.Fatalf("SetPackagePhoto: %v", err)
	}
	if err := SetPackagePhoto(ctx, database, pkg.ID, []byte("full2"), []byte("thumb2"), "image/jpeg"); err != nil {
		t.Fatalf("SetPackagePhoto replace: %v", err)
	}

	data, mime, _ := GetPackagePhoto(ctx, database, pkg.ID, false)
	if string(data) != "full2" || mime != "image/jpeg" {
		t.Errorf("unexpected photo %q %q", data, mime)
	}
	thumb, _, _ := GetPackagePhoto(ctx, database, pkg.ID, true)
	if string(thumb) != "thumb2" {
		t.Errorf("unexpected thumbnail %q", thumb)
	}

	got, _ := GetPackage(ctx, database, pkg.ID)
	if !got.HasPhoto {
		t.Error("expected HasPhoto after upload")
	}
}
