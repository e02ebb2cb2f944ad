package domain

import "time"

// ProfitTag classifies a vehicle by the margin it leaves at market price.
type ProfitTag string

// Profit tag constants.
const (
	TagRentable      ProfitTag = "rentable"
	TagNoRentable    ProfitTag = "no_rentable"
	TagNoInteresante ProfitTag = "no_interesante"
	TagSinDatos      ProfitTag = "sin_datos"
)

// MarketPosition places our target sale price against the market mean.
type MarketPosition string

// Market position constants. PositionUnknown is used when either price is
// missing.
const (
	PositionCompetitive MarketPosition = "competitivo"
	PositionFair        MarketPosition = "justo"
	PositionHigh        MarketPosition = "alto"
	PositionUnknown     MarketPosition = ""
)

// OpportunityKind explains why a vehicle is a buying opportunity.
type OpportunityKind string

// Opportunity kinds.
const (
	OpportunityNone       OpportunityKind = ""
	OpportunityNotInStock OpportunityKind = "not_in_stock"
	OpportunityCheaper    OpportunityKind = "cheaper_than_stock"
)

// ValuationResult is the per-vehicle output of a pricing pass. A result is
// never modified after creation; recomputation replaces it.
type ValuationResult struct {
	VehicleID    string     `json:"vehicle_id"`
	LicensePlate string     `json:"license_plate,omitempty"`
	Brand        string     `json:"brand,omitempty"`
	Model        string     `json:"model"`
	Mileage      *int       `json:"mileage,omitempty"`
	Registered   *time.Time `json:"registration_date,omitempty"`
	VAT          bool       `json:"vat"`

	TheoreticalValue *float64 `json:"theoretical_value,omitempty"`

	Competitors      []CompetitorListing `json:"competitors,omitempty"`
	CompetitorCount  int                 `json:"competitor_count"`
	Strategy         string              `json:"strategy"`
	MeanMarketPrice  *float64            `json:"mean_market_price,omitempty"`
	CompetitivePrice *float64            `json:"competitive_price,omitempty"`

	NetSourcePrice  *float64      `json:"net_source_price,omitempty"`
	TargetSalePrice *float64      `json:"target_sale_price,omitempty"`
	MaxBid          *float64      `json:"max_bid,omitempty"`
	Margin          *float64      `json:"margin,omitempty"`
	MarginPct       *float64      `json:"margin_pct,omitempty"`
	Warranty        WarrantyQuote `json:"warranty"`

	Tag         ProfitTag       `json:"tag"`
	Position    MarketPosition  `json:"position,omitempty"`
	Opportunity OpportunityKind `json:"opportunity,omitempty"`
	StockPrice  *float64        `json:"stock_price,omitempty"`

	RetrievalError string `json:"retrieval_error,omitempty"`
}

// PortfolioStats summarises a set of valuation results.
type PortfolioStats struct {
	Total         int `json:"total"`
	Rentable      int `json:"rentable"`
	NoRentable    int `json:"no_rentable"`
	NoInteresante int `json:"no_interesante"`
	SinDatos      int `json:"sin_datos"`
	Opportunities int `json:"opportunities"`

	MeanTargetSalePrice  float64 `json:"mean_target_sale_price"`
	MeanCompetitivePrice float64 `json:"mean_competitive_price"`
	MeanMarketPrice      float64 `json:"mean_market_price"`
	MeanMargin           float64 `json:"mean_margin"`

	// OverallPositionPct is the percent deviation of the mean target sale
	// price from the mean market price, over vehicles that have both.
	OverallPositionPct float64 `json:"overall_position_pct"`
}

// OpportunityBoard groups buying opportunities by model.
type OpportunityBoard struct {
	NotInStock map[string][]ValuationResult `json:"not_in_stock"`
	InStock    map[string][]ValuationResult `json:"in_stock"`
}
