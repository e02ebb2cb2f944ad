package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jviciana84/prod-sub002/internal/api/handlers"
	"github.com/jviciana84/prod-sub002/internal/engine"
	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

func newVehiclesAPI(t *testing.T, eng *fakeEngine) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	handlers.RegisterVehicleRoutes(api, handlers.NewVehiclesHandler(eng))
	return api
}

func TestCompetitors(t *testing.T) {
	t.Parallel()

	vehicle := &domain.VehicleRecord{ID: "v1", Model: "BMW Serie 3 320d"}

	tests := []struct {
		name        string
		comps       domain.Comparables
		excluded    []string
		err         error
		wantStatus  int
		wantCounted int
		wantMean    *float64
		wantDays    []int
	}{
		{
			name: "mean excludes our own dealers",
			comps: domain.Comparables{
				Strategy: "exact_variant",
				Term:     "BMW Serie 3 320d",
				Listings: []domain.CompetitorListing{
					{ID: "a", Price: 29000, Advertiser: "Autos Norte", FirstDetectedAt: ptr(time.Now().Add(-73 * time.Hour))},
					{ID: "b", Price: 31000, Advertiser: "Motor Sur"},
					{ID: "c", Price: 10000, Advertiser: "Quadis Barcelona"},
				},
			},
			excluded:    []string{"quadis"},
			wantStatus:  http.StatusOK,
			wantCounted: 2,
			wantMean:    ptr(30000.0),
			wantDays:    []int{3, 0, 0},
		},
		{
			name:       "no comparables",
			comps:      domain.Comparables{Strategy: "none"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown vehicle returns 404",
			err:        fmt.Errorf("getting vehicle v1: %w", store.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "retrieval failure returns 500",
			err:        errors.New("querying listings: timeout"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng := newFakeEngine()
			eng.cfg.ExcludedAdvertisers = tt.excluded
			eng.vehicle = vehicle
			eng.comps = tt.comps
			eng.compsErr = tt.err

			resp := newVehiclesAPI(t, eng).Get("/api/v1/vehicles/v1/competitors")
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Vehicle          domain.VehicleRecord       `json:"vehicle"`
				Strategy         string                     `json:"strategy"`
				Listings         []handlers.CompetitorRow   `json:"listings"`
				Counted          int                        `json:"counted"`
				MeanMarketPrice  *float64                   `json:"mean_market_price"`
				CompetitivePrice *float64                   `json:"competitive_price"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

			assert.Equal(t, "v1", body.Vehicle.ID)
			assert.Equal(t, tt.comps.Strategy, body.Strategy)
			require.Len(t, body.Listings, len(tt.comps.Listings))
			assert.NotNil(t, body.Listings, "an empty set is an empty array")
			assert.Equal(t, tt.wantCounted, body.Counted)
			for i, want := range tt.wantDays {
				assert.Equal(t, want, body.Listings[i].DaysListed, "listing %d", i)
				assert.Equal(t, tt.comps.Listings[i].ID, body.Listings[i].ID)
			}

			if tt.wantMean == nil {
				assert.Nil(t, body.MeanMarketPrice)
				assert.Nil(t, body.CompetitivePrice)
				return
			}
			require.NotNil(t, body.MeanMarketPrice)
			assert.InDelta(t, *tt.wantMean, *body.MeanMarketPrice, 1e-6)
			// Default undercut is 2%.
			assert.InDelta(t, *tt.wantMean*0.98, *body.CompetitivePrice, 1e-6)
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		quoteErr   error
		wantStatus int
		wantPrice  *float64
	}{
		{
			name: "live comparables",
			body: map[string]any{
				"vehicle": map[string]any{
					"model":            "BMW 118d",
					"mileage":          40000,
					"net_source_price": 20000,
					"tax_regime":       "IVA",
				},
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "supplied market price",
			body: map[string]any{
				"vehicle":      map[string]any{"model": "BMW 118d"},
				"market_price": 25000,
			},
			wantStatus: http.StatusOK,
			wantPrice:  ptr(25000.0),
		},
		{
			name:       "missing model is rejected",
			body:       map[string]any{"vehicle": map[string]any{"model": ""}},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "negative market price is rejected",
			body: map[string]any{
				"vehicle":      map[string]any{"model": "BMW 118d"},
				"market_price": -1,
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "retrieval failure returns 500",
			body:       map[string]any{"vehicle": map[string]any{"model": "BMW 118d"}},
			quoteErr:   errors.New("retrieving comparables: timeout"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng := newFakeEngine()
			eng.quote = engine.Quotation{
				ValuationResult: domain.ValuationResult{Model: "BMW 118d", Tag: domain.TagRentable, TargetSalePrice: ptr(27570.0)},
				Breakdown:       &pricing.CostBreakdown{NetSourcePrice: 20000, Transport: 300, Final: 27570},
			}
			eng.quoteErr = tt.quoteErr

			resp := newVehiclesAPI(t, eng).Post("/api/v1/quote", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body engine.Quotation
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.Equal(t, domain.TagRentable, body.Tag)
			require.NotNil(t, body.Breakdown)
			assert.InDelta(t, 27570.0, body.Breakdown.Final, 1e-9)
			assert.InDelta(t, 300.0, body.Breakdown.Transport, 1e-9)
			require.NotNil(t, eng.quotedWith)
			assert.Equal(t, "BMW 118d", eng.quotedWith.Model)
			if tt.wantPrice == nil {
				assert.Nil(t, eng.quotedPrice)
				return
			}
			require.NotNil(t, eng.quotedPrice)
			assert.InDelta(t, *tt.wantPrice, *eng.quotedPrice, 1e-9)
		})
	}
}
