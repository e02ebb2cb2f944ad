package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// Competitor is a comparable listing with its days on the market.
type Competitor struct {
	domain.CompetitorListing
	DaysListed int `json:"days_listed"`
}

// CompetitorsResponse lists the live comparables for a stored vehicle.
type CompetitorsResponse struct {
	Vehicle          domain.VehicleRecord       `json:"vehicle"`
	Strategy         string                     `json:"strategy"`
	Term             string                     `json:"term,omitempty"`
	Listings         []Competitor               `json:"listings"`
	Counted          int                        `json:"counted"`
	MeanMarketPrice  *float64                   `json:"mean_market_price,omitempty"`
	CompetitivePrice *float64                   `json:"competitive_price,omitempty"`
}

// QuoteVehicle describes a vehicle to price. Only Model is required.
type QuoteVehicle struct {
	ID               string     `json:"id,omitempty"`
	LicensePlate     string     `json:"license_plate,omitempty"`
	Brand            string     `json:"brand,omitempty"`
	Model            string     `json:"model"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	Mileage          *int       `json:"mileage,omitempty"`
	NetSourcePrice   *float64   `json:"net_source_price,omitempty"`
	DamageCost       *float64   `json:"damage_cost,omitempty"`
	NewPrice         *float64   `json:"new_price,omitempty"`
	TaxRegime        string     `json:"tax_regime,omitempty"`
}

// QuoteResponse is a priced vehicle with its itemised cost stack. Breakdown
// is nil when the vehicle had no usable net source price.
type QuoteResponse struct {
	domain.ValuationResult
	Breakdown *pricing.CostBreakdown `json:"breakdown,omitempty"`
}

// QuoteRequest is the body of an ad-hoc quote.
type QuoteRequest struct {
	Vehicle     QuoteVehicle `json:"vehicle"`
	MarketPrice *float64     `json:"market_price,omitempty"`
}

// Competitors retrieves live comparables for a stored vehicle.
func (c *Client) Competitors(ctx context.Context, vehicleID string) (*CompetitorsResponse, error) {
	var resp CompetitorsResponse
	path := fmt.Sprintf("/api/v1/vehicles/%s/competitors", url.PathEscape(vehicleID))
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Quote prices a vehicle that need not be stored.
func (c *Client) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	var r QuoteResponse
	if err := c.post(ctx, "/api/v1/quote", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
