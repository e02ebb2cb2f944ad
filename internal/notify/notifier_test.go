package notify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestFormatEUR(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{name: "nil", in: nil, want: "-"},
		{name: "NaN", in: ptr(math.NaN()), want: "-"},
		{name: "zero", in: ptr(0.0), want: "0 €"},
		{name: "hundreds", in: ptr(950.0), want: "950 €"},
		{name: "thousands", in: ptr(27570.0), want: "27.570 €"},
		{name: "rounds", in: ptr(1829.6), want: "1.830 €"},
		{name: "millions", in: ptr(1234567.0), want: "1.234.567 €"},
		{name: "negative", in: ptr(-2500.0), want: "-2.500 €"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatEUR(tt.in))
		})
	}
}

func TestNewOpportunityPayload(t *testing.T) {
	t.Parallel()

	r := &domain.ValuationResult{
		VehicleID:        "v-9",
		LicensePlate:     "9876XYZ",
		Model:            "Serie 3 320d",
		Opportunity:      domain.OpportunityCheaper,
		TargetSalePrice:  ptr(27570.0),
		CompetitivePrice: ptr(29400.0),
		MaxBid:           ptr(21661.9),
		Margin:           ptr(1830.0),
		MarginPct:        ptr(6.64),
		StockPrice:       ptr(30500.0),
		CompetitorCount:  3,
	}

	p := NewOpportunityPayload(r)
	assert.Equal(t, "v-9", p.VehicleID)
	assert.Equal(t, domain.OpportunityCheaper, p.Kind)
	assert.Equal(t, "27.570 €", p.TargetSalePrice)
	assert.Equal(t, "21.662 €", p.MaxBid)
	assert.Equal(t, "30.500 €", p.StockPrice)
	assert.InDelta(t, 6.64, p.MarginPct, 1e-9)
	assert.Equal(t, 3, p.CompetitorCount)

	r.MarginPct = nil
	r.StockPrice = nil
	p = NewOpportunityPayload(r)
	assert.Zero(t, p.MarginPct)
	assert.Equal(t, "-", p.StockPrice)
}
