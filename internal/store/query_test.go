package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func TestListingQuery_ToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		query         ListingQuery
		wantArgs      []any
		wantDataHas   []string // substrings that must appear in the SQL
		wantDataNotIn []string // substrings that must NOT appear
	}{
		{
			name:  "empty query uses defaults",
			query: ListingQuery{},
			wantDataHas: []string{
				"FROM competitor_listings",
				"ORDER BY first_detected_at DESC NULLS LAST, id",
				"LIMIT 200",
			},
			wantDataNotIn: []string{"WHERE"},
			wantArgs:      nil,
		},
		{
			name:        "model substring",
			query:       ListingQuery{ModelContains: "320d"},
			wantDataHas: []string{"WHERE model ILIKE $1"},
			wantArgs:    []any{"%320d%"},
		},
		{
			name:          "blank model ignored",
			query:         ListingQuery{ModelContains: "   "},
			wantDataNotIn: []string{"WHERE", "ILIKE"},
		},
		{
			name:        "like wildcards escaped",
			query:       ListingQuery{ModelContains: "100%_x"},
			wantDataHas: []string{"model ILIKE $1"},
			wantArgs:    []any{`%100\%\_x%`},
		},
		{
			name:        "statuses",
			query:       ListingQuery{Statuses: domain.ComparableStatuses()},
			wantDataHas: []string{"WHERE status IN ($1, $2, $3)"},
			wantArgs:    []any{"active", "new", "price_dropped"},
		},
		{
			name:  "year window",
			query: ListingQuery{Years: &pricing.Range{Min: 2021, Max: 2023}},
			wantDataHas: []string{
				"COALESCE(model_year, EXTRACT(YEAR FROM first_registration)::int) BETWEEN $1 AND $2",
			},
			wantArgs: []any{2021, 2023},
		},
		{
			name:  "km window",
			query: ListingQuery{Km: &pricing.Range{Min: 0, Max: 40000}},
			wantDataHas: []string{
				"NULLIF(regexp_replace(km, '[^0-9]', '', 'g'), '')::bigint BETWEEN $1 AND $2",
			},
			wantArgs: []any{0, 40000},
		},
		{
			name: "all filters in order",
			query: ListingQuery{
				ModelContains: "BMW 320d",
				Statuses:      []domain.ListingStatus{domain.StatusActive},
				Years:         &pricing.Range{Min: 2021, Max: 2023},
				Km:            &pricing.Range{Min: 10000, Max: 70000},
				Limit:         25,
			},
			wantDataHas: []string{
				"model ILIKE $1 AND status IN ($2) AND",
				"BETWEEN $3 AND $4 AND",
				"BETWEEN $5 AND $6",
				"LIMIT 25",
			},
			wantArgs: []any{"%BMW 320d%", "active", 2021, 2023, 10000, 70000},
		},
		{
			name:        "limit capped",
			query:       ListingQuery{Limit: 5000},
			wantDataHas: []string{"LIMIT 1000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, args := tt.query.ToSQL()

			for _, want := range tt.wantDataHas {
				assert.Contains(t, sql, want)
			}
			for _, notWant := range tt.wantDataNotIn {
				assert.NotContains(t, sql, notWant)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestVehicleQuery_ToSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       VehicleQuery
		wantHas     []string
		wantNotHave []string
		wantArgs    []any
	}{
		{
			name:        "defaults",
			query:       VehicleQuery{},
			wantHas:     []string{"FROM vehicles", "ORDER BY id", "LIMIT 1000"},
			wantNotHave: []string{"WHERE"},
		},
		{
			name:     "lot and brand",
			query:    VehicleQuery{Lot: ptr("L-2025-03"), Brand: ptr("BMW")},
			wantHas:  []string{"WHERE lot = $1 AND brand ILIKE $2"},
			wantArgs: []any{"L-2025-03", "BMW"},
		},
		{
			name:    "limit capped",
			query:   VehicleQuery{Limit: 50000},
			wantHas: []string{"LIMIT 10000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, args := tt.query.ToSQL()
			for _, want := range tt.wantHas {
				assert.Contains(t, sql, want)
			}
			for _, notWant := range tt.wantNotHave {
				assert.NotContains(t, sql, notWant)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
