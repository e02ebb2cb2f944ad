package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		reg         *time.Time
		model       string
		wantMonths  int
		wantCost    float64
		wantPremium bool
		wantDetail  string
	}{
		{
			name:       "twelve months is the first tier",
			reg:        date(2023, time.September, 25),
			model:      "X1 sDrive18d",
			wantMonths: 12,
			wantCost:   600,
			wantDetail: "12m",
		},
		{
			name:       "thirteen months is the second tier",
			reg:        date(2023, time.August, 28),
			model:      "X1 sDrive18d",
			wantMonths: 13,
			wantCost:   900,
			wantDetail: "13m",
		},
		{
			name:       "nineteen months is the top tier",
			reg:        date(2023, time.March, 11),
			model:      "X1 sDrive18d",
			wantMonths: 19,
			wantCost:   1200,
			wantDetail: "19m",
		},
		{
			name:        "premium badge at first tier",
			reg:         date(2023, time.September, 25),
			model:       "Serie 5 530d",
			wantMonths:  12,
			wantCost:    660,
			wantPremium: true,
			wantDetail:  "12m +10%",
		},
		{
			name:        "premium badge at second tier",
			reg:         date(2023, time.August, 28),
			model:       "M340i xDrive",
			wantMonths:  13,
			wantCost:    990,
			wantPremium: true,
			wantDetail:  "13m +10%",
		},
		{
			name:        "premium badge at top tier",
			reg:         date(2023, time.March, 11),
			model:       "X5 xDrive45e",
			wantMonths:  19,
			wantCost:    1320,
			wantPremium: true,
			wantDetail:  "19m +10%",
		},
		{
			name:       "recent registration is covered by factory",
			reg:        date(2025, time.January, 1),
			model:      "530d",
			wantDetail: DetailFactoryCovers,
		},
		{
			name:       "expired factory warranty needs full coverage",
			reg:        date(2018, time.May, 2),
			model:      "iX3",
			wantMonths: 24,
			wantCost:   1200,
			wantDetail: "24m",
		},
		{
			name:       "missing registration",
			reg:        nil,
			model:      "530d",
			wantDetail: DetailNoRegistration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Calculate(tt.reg, today, tt.model)
			assert.Equal(t, tt.wantMonths, got.Months)
			assert.InDelta(t, tt.wantCost, got.Cost, 0.001)
			assert.Equal(t, tt.wantPremium, got.Premium)
			assert.Equal(t, tt.wantDetail, got.Detail)
		})
	}
}

func TestCalculate_MonthsNeverExceedCoverage(t *testing.T) {
	t.Parallel()

	for year := 2010; year <= 2026; year++ {
		for _, m := range []time.Month{time.January, time.June, time.December} {
			q := Calculate(date(year, m, 15), today, "")
			assert.LessOrEqual(t, q.Months, CoverageMonths)
			assert.GreaterOrEqual(t, q.Months, 0)
		}
	}
}

func TestCalculate_UsesInjectedToday(t *testing.T) {
	t.Parallel()

	reg := date(2023, time.September, 25)
	early := Calculate(reg, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), "")
	late := Calculate(reg, today, "")

	assert.Equal(t, DetailFactoryCovers, early.Detail)
	assert.Equal(t, 12, late.Months)
}

func TestCalculate_LapsedFactoryWarrantyCountsFromToday(t *testing.T) {
	t.Parallel()

	// Both margin-adjusted factory ends fall before today.
	lapsed := Calculate(date(2022, time.March, 1), today, "")
	ancient := Calculate(date(2019, time.June, 1), today, "")

	assert.Equal(t, lapsed, ancient)
	assert.Equal(t, CoverageMonths, lapsed.Months)
	assert.InDelta(t, 1200, lapsed.Cost, 0.001)
	assert.Equal(t, "24m", lapsed.Detail)
}

func TestIsPremium(t *testing.T) {
	t.Parallel()

	tests := []struct {
		model string
		want  bool
	}{
		{model: "530d", want: true},
		{model: "M340i", want: true},
		{model: "Serie 1 118d", want: true},
		{model: "X1 sDrive18d", want: false},
		{model: "20i Touring", want: false},
		{model: "iX3", want: false},
		{model: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsPremium(tt.model))
		})
	}
}
