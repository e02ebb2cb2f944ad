package engine

import (
	"context"
	"fmt"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// manualSource marks the synthetic listing built from a market price the
// caller supplied.
const manualSource = "manual"

// Competitors retrieves the live comparables for one stored vehicle under
// the configuration in force. Unknown vehicles return store.ErrNotFound.
func (eng *Engine) Competitors(ctx context.Context, vehicleID string) (*domain.VehicleRecord, domain.Comparables, error) {
	v, err := eng.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, domain.Comparables{}, fmt.Errorf("getting vehicle %s: %w", vehicleID, err)
	}
	comps, err := eng.retriever.Retrieve(ctx, v, eng.Config())
	if err != nil {
		return v, domain.Comparables{}, fmt.Errorf("retrieving comparables for %s: %w", vehicleID, err)
	}
	return v, comps, nil
}

// Quotation is an ad-hoc valuation together with its itemised cost stack.
// Breakdown is nil when the vehicle has no usable net source price.
type Quotation struct {
	domain.ValuationResult
	Breakdown *pricing.CostBreakdown `json:"breakdown,omitempty"`
}

// Quote prices a vehicle that need not be stored. With a marketPrice the
// vehicle is priced against that mean market price; otherwise comparables
// are retrieved live. Stock comes from the last committed snapshot, if any.
// The valuation and the breakdown share one configuration and one date.
func (eng *Engine) Quote(
	ctx context.Context,
	v *domain.VehicleRecord,
	marketPrice *float64,
) (Quotation, error) {
	cfg := eng.Config()
	today := eng.now()

	var comps domain.Comparables
	if marketPrice != nil {
		comps = domain.Comparables{
			Strategy: manualSource,
			Listings: []domain.CompetitorListing{{
				ID:     manualSource,
				Source: manualSource,
				Model:  v.Model,
				Price:  *marketPrice,
				Status: domain.StatusActive,
			}},
		}
	} else {
		c, err := eng.retriever.Retrieve(ctx, v, cfg)
		if err != nil {
			return Quotation{}, fmt.Errorf("retrieving comparables: %w", err)
		}
		comps = c
	}

	var stock pricing.StockIndex
	if s := eng.snap.Load(); s != nil {
		stock = s.stock
	}

	q := Quotation{ValuationResult: pricing.EvaluateOne(v, comps, stock, cfg, today)}
	if b, ok := pricing.Breakdown(v, cfg, today); ok {
		q.Breakdown = &b
	}
	return q, nil
}
