package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/erazemk/swiftship/internal/model"
	"github.com/erazemk/swiftship/internal/rates"
	"github.com/erazemk/swiftship/internal/store"
)

// Rates serves the stored tariff, falling back to Defaults until an admin
// saves one.
type Rates struct {
	DB       *sql.DB
	Defaults rates.Config
}

// Current returns the tariff in effect.
func (s *Rates) Current(ctx context.Context) (rates.Config, error) {
	cfg, ok, err := store.GetRateConfig(ctx, s.DB)
	if err != nil {
		return rates.Config{}, err
	}
	if !ok {
		if s.Defaults.DutyRates == nil {
			return rates.Default(), nil
		}
		return s.Defaults.Clone(), nil
	}
	return cfg, nil
}

// Update replaces the tariff. Admin only. Category names are lowercased.
func (s *Rates) Update(ctx context.Context, actor *model.Account, cfg rates.Config) (rates.Config, error) {
	if !actor.IsAdmin() {
		return rates.Config{}, ErrForbidden
	}

	next := cfg.Clone()
	next.DutyRates = make(map[string]float64, len(cfg.DutyRates))
	for cat, r := range cfg.DutyRates {
		key := strings.ToLower(strings.TrimSpace(cat))
		if key == "" {
			return rates.Config{}, invalid("duty_rates", "category names must not be empty")
		}
		if _, dup := next.DutyRates[key]; dup {
			return rates.Config{}, invalid("duty_rates", fmt.Sprintf("category %q is listed more than once", key))
		}
		next.DutyRates[key] = r
	}
	if err := next.Validate(); err != nil {
		return rates.Config{}, fromRates(err)
	}

	if err := store.SaveRateConfig(ctx, s.DB, next); err != nil {
		return rates.Config{}, err
	}
	slog.Info("rates updated", "by", actor.ID, "base_per_lb", next.BasePerLb, "categories", len(next.DutyRates))
	return next, nil
}

// Estimate quotes in against the current tariff.
func (s *Rates) Estimate(ctx context.Context, in rates.Input) (rates.Quote, error) {
	cfg, err := s.Current(ctx)
	if err != nil {
		return rates.Quote{}, err
	}
	q, err := rates.Estimate(cfg, in)
	if err != nil {
		return rates.Quote{}, fromRates(err)
	}
	return q, nil
}
