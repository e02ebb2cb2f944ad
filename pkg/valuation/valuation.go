// Package valuation estimates what a vehicle should be worth today from its
// price when new, its age and its mileage.
package valuation

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Params are the depreciation parameters. Percentages are expressed as
// 0-100.
//
// Depreciation beyond the second year is additive: every started year after
// the second removes PerYearPct points from the retained factor, which never
// drops below MinRetainedPct.
type Params struct {
	FirstYearPct            float64 `json:"first_year_pct"             yaml:"first_year_pct"`
	SecondYearCumulativePct float64 `json:"second_year_cumulative_pct" yaml:"second_year_cumulative_pct"`
	PerYearPct              float64 `json:"per_year_pct"               yaml:"per_year_pct"`
	CostPerKm               float64 `json:"cost_per_km"                yaml:"cost_per_km"`
	MinRetainedPct          float64 `json:"min_retained_pct"           yaml:"min_retained_pct"`
	FloorPct                float64 `json:"floor_pct"                  yaml:"floor_pct"`
}

// DefaultParams returns the depreciation curve used by the dealership.
func DefaultParams() Params {
	return Params{
		FirstYearPct:            15,
		SecondYearCumulativePct: 25,
		PerYearPct:              10,
		CostPerKm:               0.15,
		MinRetainedPct:          30,
		FloorPct:                20,
	}
}

// Validate checks that every parameter is a finite, non-negative number and
// that percentages are within 0-100.
func (p Params) Validate() error {
	var errs []error

	pcts := []struct {
		name string
		v    float64
	}{
		{"first_year_pct", p.FirstYearPct},
		{"second_year_cumulative_pct", p.SecondYearCumulativePct},
		{"per_year_pct", p.PerYearPct},
		{"min_retained_pct", p.MinRetainedPct},
		{"floor_pct", p.FloorPct},
	}
	for _, f := range pcts {
		if !finite(f.v) || f.v < 0 || f.v > 100 {
			errs = append(errs, fmt.Errorf("depreciation.%s must be between 0 and 100, got %v", f.name, f.v))
		}
	}

	if !finite(p.CostPerKm) || p.CostPerKm < 0 {
		errs = append(errs, fmt.Errorf("depreciation.cost_per_km must be non-negative, got %v", p.CostPerKm))
	}

	if p.SecondYearCumulativePct < p.FirstYearPct {
		errs = append(errs, errors.New(
			"depreciation.second_year_cumulative_pct must not be lower than first_year_pct",
		))
	}

	return errors.Join(errs...)
}

// RetainedFactor returns the fraction of the new price a vehicle of the given
// age keeps before mileage is accounted for.
func RetainedFactor(ageYears float64, p Params) float64 {
	switch {
	case ageYears <= 1:
		return 1 - p.FirstYearPct/100
	case ageYears <= 2:
		return 1 - p.SecondYearCumulativePct/100
	}

	extra := math.Ceil(ageYears - 2)
	factor := 1 - p.SecondYearCumulativePct/100 - extra*p.PerYearPct/100
	return math.Max(factor, p.MinRetainedPct/100)
}

// TheoreticalValue returns the expected market value of a vehicle:
//
//	listPrice × RetainedFactor(age) − mileage × CostPerKm
//
// floored at FloorPct of listPrice and never negative.
func TheoreticalValue(listPrice, ageYears float64, mileage int, p Params) float64 {
	if !finite(listPrice) || listPrice <= 0 {
		return 0
	}
	if ageYears < 0 {
		ageYears = 0
	}
	if mileage < 0 {
		mileage = 0
	}

	value := listPrice*RetainedFactor(ageYears, p) - float64(mileage)*p.CostPerKm
	floor := listPrice * p.FloorPct / 100

	return math.Max(math.Max(value, floor), 0)
}

// AgeYears returns the age in fractional years between registration and
// today. Vehicles registered in the future have age 0.
func AgeYears(registration, today time.Time) float64 {
	days := today.Sub(registration).Hours() / 24
	if days <= 0 {
		return 0
	}
	return days / 365.25
}

// Score returns how far price sits from expected, as a percentage of
// expected. Positive means more expensive than expected. ok is false when
// expected is not a positive number.
func Score(price, expected float64) (float64, bool) {
	if !finite(price) || !finite(expected) || expected <= 0 {
		return 0, false
	}
	return (price - expected) / expected * 100, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
