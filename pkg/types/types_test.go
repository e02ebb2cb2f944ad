package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVehicleRecord_VATApplicable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		regime string
		want   bool
	}{
		{name: "IVA upper case", regime: "IVA", want: true},
		{name: "iva mixed text", regime: "Régimen iva general", want: true},
		{name: "VAT english", regime: "vat", want: true},
		{name: "REBU margin scheme", regime: "REBU", want: false},
		{name: "empty is margin scheme", regime: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := &VehicleRecord{TaxRegime: tt.regime}
			assert.Equal(t, tt.want, v.VATApplicable())
		})
	}
}

func TestVehicleRecord_RegistrationYear(t *testing.T) {
	t.Parallel()

	v := &VehicleRecord{}
	_, ok := v.RegistrationYear()
	assert.False(t, ok)

	reg := time.Date(2022, time.June, 30, 0, 0, 0, 0, time.UTC)
	v.RegistrationDate = &reg
	year, ok := v.RegistrationYear()
	assert.True(t, ok)
	assert.Equal(t, 2022, year)
}

func TestVehicleRecord_Damage(t *testing.T) {
	t.Parallel()

	v := &VehicleRecord{}
	assert.Zero(t, v.Damage())

	d := 350.0
	v.DamageCost = &d
	assert.Equal(t, 350.0, v.Damage())
}

func TestCompetitorListing_DaysListed(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	l := &CompetitorListing{}
	assert.Zero(t, l.DaysListed(now))

	detected := now.Add(-72 * time.Hour)
	l.FirstDetectedAt = &detected
	assert.Equal(t, 3, l.DaysListed(now))

	future := now.Add(48 * time.Hour)
	l.FirstDetectedAt = &future
	assert.Zero(t, l.DaysListed(now), "detection in the future clamps to zero")
}

func TestComparableStatuses(t *testing.T) {
	t.Parallel()

	got := ComparableStatuses()
	assert.Equal(t, []ListingStatus{StatusActive, StatusNew, StatusPriceDropped}, got)
	assert.NotContains(t, got, StatusPriceRaised)
}
