package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/erazemk/swiftship/internal/imaging"
	"github.com/erazemk/swiftship/internal/live"
	"github.com/erazemk/swiftship/internal/metrics"
	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/notify"
	"github.com/erazemk/swiftship/internal/store"
)

// Ledger is the package collection, scoped per viewer by ownership.
type Ledger struct {
	DB      *sql.DB
	Notify  *notify.Dispatcher
	Changes live.Publisher
}

// PreAlertInput is a customer's advance notice of an incoming package.
type PreAlertInput struct {
	TrackingNumber   string   `json:"tracking_number"`
	Merchant         string   `json:"merchant"`
	DeclaredValueUSD *float64 `json:"declared_value_usd"`
	Description      string   `json:"description,omitempty"`
	Category         string   `json:"category,omitempty"`
	WeightLb         *float64 `json:"weight_lb,omitempty"`
}

// ListOptions narrows ListFor.
type ListOptions struct {
	// ActiveOnly hides delivered packages.
	ActiveOnly bool
}

// PreAlert records a new package at Expected for a verified customer.
func (l *Ledger) PreAlert(ctx context.Context, owner *model.Account, in PreAlertInput) (*model.Package, error) {
	if owner == nil {
		return nil, ErrForbidden
	}
	if !owner.Verified {
		return nil, ErrNotVerified
	}
	if owner.SuiteNumber == "" {
		// Admins have no suite to receive packages at.
		return nil, ErrForbidden
	}

	tracking := model.NormalizeTracking(in.TrackingNumber)
	if tracking == "" {
		return nil, invalid("tracking_number", "is required")
	}
	if !model.ValidTracking(tracking) {
		return nil, invalid("tracking_number", "must be printable ASCII, at most 64 characters")
	}
	merchant := strings.TrimSpace(in.Merchant)
	if merchant == "" {
		return nil, invalid("merchant", "is required")
	}
	if strings.ContainsFunc(merchant, unicode.IsControl) {
		return nil, invalid("merchant", "must not contain control characters")
	}
	if in.DeclaredValueUSD == nil || !nonNegative(*in.DeclaredValueUSD) {
		return nil, invalid("declared_value_usd", "must be a non-negative number")
	}
	if in.WeightLb != nil && !nonNegative(*in.WeightLb) {
		return nil, invalid("weight_lb", "must be a non-negative number")
	}

	pkg, err := store.CreatePackage(ctx, l.DB, store.NewPackage{
		OwnerID:          owner.ID,
		Suite:            owner.SuiteNumber,
		TrackingNumber:   tracking,
		Merchant:         merchant,
		DeclaredValueUSD: *in.DeclaredValueUSD,
		Description:      strings.TrimSpace(in.Description),
		Category:         strings.ToLower(strings.TrimSpace(in.Category)),
		WeightLb:         in.WeightLb,
		CreatedBy:        &owner.ID,
	})
	if err != nil {
		return nil, err
	}

	metrics.PackagesPreAlerted.Inc()
	slog.Info("package pre-alerted", "package_id", pkg.ID, "owner_id", owner.ID, "tracking", pkg.TrackingNumber)
	l.publish(live.Change{Kind: live.KindPackage, PackageID: pkg.ID, OwnerID: pkg.OwnerID})
	return pkg, nil
}

// ListFor returns the packages actor may see in ledger (creation) order:
// every package for an admin, only their own for a customer.
func (l *Ledger) ListFor(ctx context.Context, actor *model.Account, opts ListOptions) ([]model.Package, error) {
	if actor == nil {
		return nil, ErrForbidden
	}

	filter := store.PackageFilter{ActiveOnly: opts.ActiveOnly}
	if !actor.IsAdmin() {
		filter.OwnerID = actor.ID
	}

	packages, err := store.ListPackages(ctx, l.DB, filter)
	if err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []model.Package{}
	}
	return packages, nil
}

// Get returns one package. Packages owned by someone else are reported as
// not found to customers.
func (l *Ledger) Get(ctx context.Context, actor *model.Account, id int64) (*model.Package, error) {
	if actor == nil {
		return nil, ErrForbidden
	}
	pkg, err := store.GetPackage(ctx, l.DB, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil || (!actor.IsAdmin() && pkg.OwnerID != actor.ID) {
		return nil, ErrNotFound
	}
	return pkg, nil
}

// History returns a package's status changes, oldest first.
func (l *Ledger) History(ctx context.Context, actor *model.Account, id int64) ([]model.PackageEvent, error) {
	if _, err := l.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	events, err := store.ListPackageEvents(ctx, l.DB, id)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.PackageEvent{}
	}
	return events, nil
}

// UpdateStatus moves a package to any status in the pipeline, backwards
// included. Admin only.
func (l *Ledger) UpdateStatus(ctx context.Context, actor *model.Account, id int64, status string) (*model.Package, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	found, err := store.UpdatePackageStatus(ctx, l.DB, id, status, &actor.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	pkg, err := store.GetPackage(ctx, l.DB, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrNotFound
	}

	metrics.StatusUpdates.WithLabelValues(status).Inc()
	slog.Info("package status updated", "package_id", id, "status", status, "by", actor.ID)
	l.publish(live.Change{Kind: live.KindPackage, PackageID: pkg.ID, OwnerID: pkg.OwnerID})
	l.notifyOwner(ctx, pkg)
	return pkg, nil
}

func (l *Ledger) notifyOwner(ctx context.Context, pkg *model.Package) {
	if l.Notify == nil {
		return
	}
	owner, err := store.GetAccount(ctx, l.DB, pkg.OwnerID)
	if err != nil || owner == nil {
		slog.Error("failed to load package owner for notification", "package_id", pkg.ID, "error", err)
		return
	}
	msg, err := notify.StatusChanged(notify.StatusData{
		Name:     owner.Name,
		Tracking: pkg.TrackingNumber,
		Merchant: pkg.Merchant,
		Status:   pkg.Status,
	})
	if err != nil {
		slog.Error("failed to render status email", "package_id", pkg.ID, "error", err)
		return
	}
	l.Notify.Go(owner.Email, msg)
}

// FindByTracking looks a package up for the public tracker: an exact,
// case-insensitive tracking number match first, then an exact package ID.
func (l *Ledger) FindByTracking(ctx context.Context, query string) (*model.TrackingView, error) {
	q := model.NormalizeTracking(query)
	if q == "" {
		return nil, ErrNotFound
	}

	pkg, err := store.FindPackageByTracking(ctx, l.DB, q)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		if id, perr := strconv.ParseInt(q, 10, 64); perr == nil {
			pkg, err = store.GetPackage(ctx, l.DB, id)
			if err != nil {
				return nil, err
			}
		}
	}
	if pkg == nil {
		return nil, ErrNotFound
	}
	return pkg.Tracking(), nil
}

// SetPhoto stores a warehouse photo of a received package. Admin only.
func (l *Ledger) SetPhoto(ctx context.Context, actor *model.Account, id int64, r io.Reader) (*model.Package, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	pkg, err := store.GetPackage(ctx, l.DB, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrNotFound
	}

	photo, err := imaging.ProcessPhoto(r)
	if errors.Is(err, imaging.ErrTooLarge) {
		return nil, invalid("photo", "exceeds the upload limit")
	}
	if err != nil {
		return nil, invalid("photo", err.Error())
	}

	if err := store.SetPackagePhoto(ctx, l.DB, id, photo.Image, photo.Thumbnail, photo.MIME); err != nil {
		return nil, err
	}
	pkg.HasPhoto = true

	slog.Info("package photo stored", "package_id", id, "bytes", len(photo.Image))
	l.publish(live.Change{Kind: live.KindPackage, PackageID: pkg.ID, OwnerID: pkg.OwnerID})
	return pkg, nil
}

// Photo returns a package photo (or its thumbnail) the actor may see.
func (l *Ledger) Photo(ctx context.Context, actor *model.Account, id int64, thumbnail bool) ([]byte, string, error) {
	if _, err := l.Get(ctx, actor, id); err != nil {
		return nil, "", err
	}
	data, mime, err := store.GetPackagePhoto(ctx, l.DB, id, thumbnail)
	if err != nil {
		return nil, "", err
	}
	if data == nil {
		return nil, "", ErrNotFound
	}
	return data, mime, nil
}

func (l *Ledger) publish(c live.Change) {
	if l.Changes != nil {
		l.Changes.Publish(c)
	}
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
