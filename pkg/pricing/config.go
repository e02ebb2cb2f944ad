// Package pricing turns a vehicle, its market comparables and the dealer's
// cost assumptions into a target sale price, a maximum acquisition bid and a
// profitability classification.
//
// Every function in this package is pure: the configuration is an immutable
// Config value passed in by the caller, and "today" is always injected.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jviciana84/prod-sub002/pkg/valuation"
)

// Config is a snapshot of the dealer's pricing assumptions. Treat it as a
// value: never modify a Config that has been handed to another goroutine;
// build a new one instead.
type Config struct {
	// Cost stack, in currency units except MarginPct (0-100).
	Transport float64 `json:"transport"  yaml:"transport"`
	Structure float64 `json:"structure"  yaml:"structure"`
	MarginPct float64 `json:"margin_pct" yaml:"margin_pct"`

	Depreciation valuation.Params `json:"depreciation" yaml:"depreciation"`

	// Market position thresholds: the target sale price is "competitivo" when
	// it sits at least CompetitiveBelowPct below the market mean and "alto"
	// when it sits at least HighAbovePct above it.
	CompetitiveBelowPct float64 `json:"competitive_below_pct" yaml:"competitive_below_pct"`
	HighAbovePct        float64 `json:"high_above_pct"        yaml:"high_above_pct"`

	// Comparable tolerance windows.
	YearWindow int `json:"year_window" yaml:"year_window"`
	KmWindow   int `json:"km_window"   yaml:"km_window"`

	// UndercutPct is how far below the market mean we price to be competitive.
	UndercutPct float64 `json:"undercut_pct" yaml:"undercut_pct"`

	// MaxMileageKm marks vehicles above it as not interesting regardless of
	// margin.
	MaxMileageKm int `json:"max_mileage_km" yaml:"max_mileage_km"`

	// OpportunityThreshold is how far below our stock's recommended price a
	// new target sale price must be to flag the vehicle as an opportunity.
	OpportunityThreshold float64 `json:"opportunity_threshold" yaml:"opportunity_threshold"`

	// ExcludedAdvertisers are our own dealer names; their listings are shown
	// but never counted in the market mean. Matched case-insensitively as
	// substrings of the advertiser.
	ExcludedAdvertisers []string `json:"excluded_advertisers,omitempty" yaml:"excluded_advertisers"`
}

// DefaultConfig returns the configuration used before the dealer saves one.
func DefaultConfig() Config {
	return Config{
		Transport:            0,
		Structure:            0,
		MarginPct:            0,
		Depreciation:         valuation.DefaultParams(),
		CompetitiveBelowPct:  5,
		HighAbovePct:         5,
		YearWindow:           1,
		KmWindow:             30000,
		UndercutPct:          2,
		MaxMileageKm:         115000,
		OpportunityThreshold: 500,
	}
}

// Validate rejects configurations that would produce meaningless prices.
// All field errors are reported together.
func (c Config) Validate() error {
	var errs []error

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"transport", c.Transport},
		{"structure", c.Structure},
		{"margin_pct", c.MarginPct},
		{"competitive_below_pct", c.CompetitiveBelowPct},
		{"high_above_pct", c.HighAbovePct},
		{"opportunity_threshold", c.OpportunityThreshold},
	}
	for _, f := range nonNegative {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			errs = append(errs, fmt.Errorf("%s must be a non-negative number, got %v", f.name, f.v))
		}
	}

	if math.IsNaN(c.UndercutPct) || c.UndercutPct < 0 || c.UndercutPct >= 100 {
		errs = append(errs, fmt.Errorf("undercut_pct must be in [0, 100), got %v", c.UndercutPct))
	}
	if c.YearWindow < 0 {
		errs = append(errs, fmt.Errorf("year_window must be non-negative, got %d", c.YearWindow))
	}
	if c.KmWindow < 0 {
		errs = append(errs, fmt.Errorf("km_window must be non-negative, got %d", c.KmWindow))
	}
	if c.MaxMileageKm <= 0 {
		errs = append(errs, fmt.Errorf("max_mileage_km must be positive, got %d", c.MaxMileageKm))
	}
	for i, a := range c.ExcludedAdvertisers {
		if strings.TrimSpace(a) == "" {
			errs = append(errs, fmt.Errorf("excluded_advertisers[%d] must not be blank", i))
		}
	}

	if err := c.Depreciation.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Excludes reports whether listings from advertiser are left out of the
// market mean.
func (c Config) Excludes(advertiser string) bool {
	a := strings.ToLower(advertiser)
	for _, ex := range c.ExcludedAdvertisers {
		if e := strings.ToLower(strings.TrimSpace(ex)); e != "" && strings.Contains(a, e) {
			return true
		}
	}
	return false
}

// Range is an inclusive integer interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// YearRange returns [year − YearWindow, year + YearWindow].
func (c Config) YearRange(year int) Range {
	return Range{Min: year - c.YearWindow, Max: year + c.YearWindow}
}

// KmRange returns [max(0, km − KmWindow), km + KmWindow].
func (c Config) KmRange(km int) Range {
	return Range{Min: max(0, km-c.KmWindow), Max: km + c.KmWindow}
}
