package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/jviciana84/prod-sub002/internal/engine"
	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// Quoter prices vehicles on demand, outside the committed pass.
type Quoter interface {
	Config() pricing.Config
	Competitors(ctx context.Context, vehicleID string) (*domain.VehicleRecord, domain.Comparables, error)
	Quote(ctx context.Context, v *domain.VehicleRecord, marketPrice *float64) (engine.Quotation, error)
}

// VehiclesHandler handles live competitor lookups and ad-hoc quotes.
type VehiclesHandler struct {
	quoter Quoter
	now    func() time.Time
}

// NewVehiclesHandler creates a new VehiclesHandler.
func NewVehiclesHandler(q Quoter) *VehiclesHandler {
	return &VehiclesHandler{quoter: q, now: time.Now}
}

// --- Input/Output types ---

// CompetitorsInput is the input for a live competitor lookup.
type CompetitorsInput struct {
	ID string `path:"id" doc:"Vehicle ID"`
}

// CompetitorRow is a comparable listing with its time on the market.
type CompetitorRow struct {
	domain.CompetitorListing
	DaysListed int `json:"days_listed" doc:"Whole days since the listing was first detected"`
}

// CompetitorsOutput lists the comparables found for a stored vehicle.
type CompetitorsOutput struct {
	Body struct {
		Vehicle          domain.VehicleRecord       `json:"vehicle"`
		Strategy         string                     `json:"strategy"                    doc:"Retrieval strategy that produced the listings"`
		Term             string                     `json:"term,omitempty"              doc:"Search term that matched"`
		Listings         []CompetitorRow            `json:"listings"`
		Counted          int                        `json:"counted"                     doc:"Listings counted in the market mean"`
		MeanMarketPrice  *float64                   `json:"mean_market_price,omitempty"`
		CompetitivePrice *float64                   `json:"competitive_price,omitempty"`
	}
}

// QuoteVehicle describes a vehicle to price. Only the model is required.
type QuoteVehicle struct {
	ID               string     `json:"id,omitempty"                doc:"Optional identifier echoed in the result"`
	LicensePlate     string     `json:"license_plate,omitempty"`
	Brand            string     `json:"brand,omitempty"`
	Model            string     `json:"model"                       doc:"Commercial model text"                     minLength:"1"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	Mileage          *int       `json:"mileage,omitempty"           minimum:"0"`
	NetSourcePrice   *float64   `json:"net_source_price,omitempty"  doc:"Net acquisition price"`
	DamageCost       *float64   `json:"damage_cost,omitempty"`
	NewPrice         *float64   `json:"new_price,omitempty"         doc:"List price when new, for the theoretical value"`
	TaxRegime        string     `json:"tax_regime,omitempty"        doc:"IVA for the VAT regime; anything else is REBU"`
}

func (q *QuoteVehicle) record() *domain.VehicleRecord {
	return &domain.VehicleRecord{
		ID:               q.ID,
		LicensePlate:     q.LicensePlate,
		Brand:            q.Brand,
		Model:            q.Model,
		RegistrationDate: q.RegistrationDate,
		Mileage:          q.Mileage,
		NetSourcePrice:   q.NetSourcePrice,
		DamageCost:       q.DamageCost,
		NewPrice:         q.NewPrice,
		TaxRegime:        q.TaxRegime,
	}
}

// QuoteInput is the body of an ad-hoc quote.
type QuoteInput struct {
	Body struct {
		Vehicle     QuoteVehicle `json:"vehicle"`
		MarketPrice *float64     `json:"market_price,omitempty" doc:"Mean market price to price against instead of live comparables" minimum:"0"`
	}
}

// QuoteOutput is the priced vehicle with its cost breakdown.
type QuoteOutput struct {
	Body engine.Quotation
}

// --- Handlers ---

// Competitors retrieves live comparables for a stored vehicle.
func (h *VehiclesHandler) Competitors(
	ctx context.Context,
	input *CompetitorsInput,
) (*CompetitorsOutput, error) {
	v, comps, err := h.quoter.Competitors(ctx, input.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, huma.Error404NotFound("vehicle not found")
		}
		return nil, huma.Error500InternalServerError("retrieving competitors: " + err.Error())
	}

	resp := &CompetitorsOutput{}
	resp.Body.Vehicle = *v
	resp.Body.Strategy = comps.Strategy
	resp.Body.Term = comps.Term
	now := h.now()
	resp.Body.Listings = make([]CompetitorRow, 0, len(comps.Listings))
	for i := range comps.Listings {
		l := &comps.Listings[i]
		resp.Body.Listings = append(resp.Body.Listings, CompetitorRow{
			CompetitorListing: *l,
			DaysListed:        l.DaysListed(now),
		})
	}

	if mean, competitive, n, ok := pricing.CompetitivePrice(comps.Listings, h.quoter.Config()); ok {
		resp.Body.Counted = n
		resp.Body.MeanMarketPrice = &mean
		resp.Body.CompetitivePrice = &competitive
	}

	return resp, nil
}

// Quote prices a vehicle supplied in the request body.
func (h *VehiclesHandler) Quote(ctx context.Context, input *QuoteInput) (*QuoteOutput, error) {
	q, err := h.quoter.Quote(ctx, input.Body.Vehicle.record(), input.Body.MarketPrice)
	if err != nil {
		return nil, huma.Error500InternalServerError("quote failed: " + err.Error())
	}
	return &QuoteOutput{Body: q}, nil
}

// RegisterVehicleRoutes registers competitor and quote endpoints with the Huma API.
func RegisterVehicleRoutes(api huma.API, h *VehiclesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-competitors",
		Method:      http.MethodGet,
		Path:        "/api/v1/vehicles/{id}/competitors",
		Summary:     "Get live competitors",
		Description: "Retrieves the market listings comparable to a stored vehicle under the configuration in force.",
		Tags:        []string{"vehicles"},
		Errors:      []int{http.StatusNotFound, http.StatusInternalServerError},
	}, h.Competitors)

	huma.Register(api, huma.Operation{
		OperationID: "quote-vehicle",
		Method:      http.MethodPost,
		Path:        "/api/v1/quote",
		Summary:     "Quote a vehicle",
		Description: "Prices a vehicle that need not be stored, against live comparables or a supplied market price.",
		Tags:        []string{"vehicles"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Quote)
}
