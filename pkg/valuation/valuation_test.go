package valuation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetainedFactor(t *testing.T) {
	t.Parallel()

	p := DefaultParams()

	tests := []struct {
		name string
		age  float64
		want float64
	}{
		{name: "brand new", age: 0, want: 0.85},
		{name: "one year", age: 1, want: 0.85},
		{name: "eighteen months", age: 1.5, want: 0.75},
		{name: "two years", age: 2, want: 0.75},
		{name: "third year started", age: 2.1, want: 0.65},
		{name: "three years", age: 3, want: 0.65},
		{name: "four years", age: 4, want: 0.55},
		{name: "six years", age: 6, want: 0.35},
		{name: "floored at minimum retained", age: 7, want: 0.30},
		{name: "very old", age: 15, want: 0.30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, RetainedFactor(tt.age, p), 1e-9)
		})
	}
}

func TestTheoreticalValue(t *testing.T) {
	t.Parallel()

	p := DefaultParams()

	tests := []struct {
		name      string
		listPrice float64
		age       float64
		mileage   int
		want      float64
	}{
		{name: "new car no km", listPrice: 50000, age: 0.5, mileage: 0, want: 42500},
		{name: "two years 30000 km", listPrice: 50000, age: 2, mileage: 30000, want: 37500 - 4500},
		{name: "four years 80000 km", listPrice: 60000, age: 4, mileage: 80000, want: 33000 - 12000},
		{name: "floored at twenty percent", listPrice: 40000, age: 10, mileage: 300000, want: 8000},
		{name: "no list price", listPrice: 0, age: 3, mileage: 1000, want: 0},
		{name: "negative age treated as new", listPrice: 10000, age: -1, mileage: 0, want: 8500},
		{name: "NaN list price", listPrice: math.NaN(), age: 1, mileage: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, TheoreticalValue(tt.listPrice, tt.age, tt.mileage, p), 1e-6)
		})
	}
}

func TestTheoreticalValue_ZeroFloorNeverNegative(t *testing.T) {
	t.Parallel()

	p := DefaultParams()
	p.FloorPct = 0

	assert.Zero(t, TheoreticalValue(10000, 8, 500000, p))
}

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Params) {}},
		{
			name:    "negative first year",
			mutate:  func(p *Params) { p.FirstYearPct = -1 },
			wantErr: "first_year_pct",
		},
		{
			name:    "percentage over 100",
			mutate:  func(p *Params) { p.FloorPct = 120 },
			wantErr: "floor_pct",
		},
		{
			name:    "negative cost per km",
			mutate:  func(p *Params) { p.CostPerKm = -0.1 },
			wantErr: "cost_per_km",
		},
		{
			name:    "NaN per year",
			mutate:  func(p *Params) { p.PerYearPct = math.NaN() },
			wantErr: "per_year_pct",
		},
		{
			name: "cumulative below first year",
			mutate: func(p *Params) {
				p.FirstYearPct = 30
				p.SecondYearCumulativePct = 20
			},
			wantErr: "second_year_cumulative_pct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := DefaultParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAgeYears(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 2.0, AgeYears(time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), today), 0.01)
	assert.InDelta(t, 0.5, AgeYears(time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC), today), 0.01)
	assert.Zero(t, AgeYears(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), today))
}

func TestScore(t *testing.T) {
	t.Parallel()

	got, ok := Score(11000, 10000)
	require.True(t, ok)
	assert.InDelta(t, 10.0, got, 1e-9)

	got, ok = Score(9500, 10000)
	require.True(t, ok)
	assert.InDelta(t, -5.0, got, 1e-9)

	_, ok = Score(9500, 0)
	assert.False(t, ok)
}
