// Package rates implements the shipping, processing and duty estimator.
//
// Estimates are pure arithmetic over a Config value; callers own the
// config and pass it in explicitly.
package rates

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Config holds the tariff used for estimates.
type Config struct {
	BasePerLb     float64            `json:"base_per_lb"`
	ProcessingFee float64            `json:"processing_fee"`
	InsuranceRate float64            `json:"insurance_rate"`
	DutyRates     map[string]float64 `json:"duty_rates"`
}

// Default returns the built-in tariff.
func Default() Config {
	return Config{
		BasePerLb:     4.50,
		ProcessingFee: 5.00,
		InsuranceRate: 0.015,
		DutyRates: map[string]float64{
			"electronics": 0.20,
			"clothing":    0.15,
			"books":       0.00,
			"cosmetics":   0.25,
			"general":     0.10,
		},
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.DutyRates = make(map[string]float64, len(c.DutyRates))
	for k, v := range c.DutyRates {
		out.DutyRates[k] = v
	}
	return out
}

// Categories returns the configured categories in sorted order.
func (c Config) Categories() []string {
	cats := make([]string, 0, len(c.DutyRates))
	for k := range c.DutyRates {
		cats = append(cats, k)
	}
	sort.Strings(cats)
	return cats
}

// Validate checks that every rate is a usable non-negative number.
func (c Config) Validate() error {
	if !nonNegative(c.BasePerLb) {
		return &ValidationError{Field: "base_per_lb", Message: "must be a non-negative number"}
	}
	if !nonNegative(c.ProcessingFee) {
		return &ValidationError{Field: "processing_fee", Message: "must be a non-negative number"}
	}
	if !nonNegative(c.InsuranceRate) {
		return &ValidationError{Field: "insurance_rate", Message: "must be a non-negative number"}
	}
	if len(c.DutyRates) == 0 {
		return &ValidationError{Field: "duty_rates", Message: "at least one category required"}
	}
	for cat, r := range c.DutyRates {
		if strings.TrimSpace(cat) == "" || cat != strings.ToLower(cat) {
			return &ValidationError{Field: "duty_rates", Message: fmt.Sprintf("invalid category name %q", cat)}
		}
		if !nonNegative(r) {
			return &ValidationError{Field: "duty_rates." + cat, Message: "must be a non-negative number"}
		}
	}
	return nil
}

// Input describes the parcel being quoted.
type Input struct {
	WeightLb      float64 `json:"weight_lb"`
	Category      string  `json:"category"`
	DeclaredValue float64 `json:"declared_value"`
}

// Quote is the itemised estimate. Insurance is quoted on its own and is
// not part of Total.
type Quote struct {
	Category      string  `json:"category"`
	ShippingFee   float64 `json:"shipping_fee"`
	ProcessingFee float64 `json:"processing_fee"`
	DutyAmount    float64 `json:"duty_amount"`
	Insurance     float64 `json:"insurance"`
	Total         float64 `json:"total"`
}

// ValidationError reports a bad estimator input or tariff field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Estimate prices a parcel against cfg.
func Estimate(cfg Config, in Input) (Quote, error) {
	if !nonNegative(in.WeightLb) {
		return Quote{}, &ValidationError{Field: "weight_lb", Message: "must be a non-negative number"}
	}
	if !nonNegative(in.DeclaredValue) {
		return Quote{}, &ValidationError{Field: "declared_value", Message: "must be a non-negative number"}
	}

	category := strings.ToLower(strings.TrimSpace(in.Category))
	dutyRate, ok := cfg.DutyRates[category]
	if !ok {
		return Quote{}, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", in.Category)}
	}

	shipping := cents(in.WeightLb * cfg.BasePerLb)
	processing := cents(cfg.ProcessingFee)
	duty := cents(in.DeclaredValue * dutyRate)

	return Quote{
		Category:      category,
		ShippingFee:   shipping,
		ProcessingFee: processing,
		DutyAmount:    duty,
		Insurance:     cents(in.DeclaredValue * cfg.InsuranceRate),
		Total:         cents(shipping + processing + duty),
	}, nil
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
