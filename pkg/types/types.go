// Package domain defines the core business types for the vehicle pricing engine.
package domain

import (
	"strings"
	"time"
)

// VehicleRecord is a unit owned by the dealership or being evaluated for
// acquisition. Records are imported by an external process and are read-only
// to the engine.
type VehicleRecord struct {
	ID           string `json:"id"                      db:"id"`
	LicensePlate string `json:"license_plate,omitempty" db:"license_plate"`
	Brand        string `json:"brand,omitempty"         db:"brand"`
	Model        string `json:"model"                   db:"model"`
	Series       string `json:"series,omitempty"        db:"series"`

	RegistrationDate *time.Time `json:"registration_date,omitempty" db:"registration_date"`
	Mileage          *int       `json:"mileage,omitempty"           db:"mileage"`

	// Pricing inputs
	NetSourcePrice *float64 `json:"net_source_price,omitempty" db:"net_source_price"`
	DamageCost     *float64 `json:"damage_cost,omitempty"      db:"damage_cost"`
	NewPrice       *float64 `json:"new_price,omitempty"        db:"new_price"`
	TaxRegime      string   `json:"tax_regime,omitempty"       db:"tax_regime"`

	Lot string `json:"lot,omitempty" db:"lot"`
}

// VATApplicable reports whether the vehicle is sold under the VAT regime.
// Any other regime text is treated as the margin scheme (REBU).
func (v *VehicleRecord) VATApplicable() bool {
	regime := strings.ToUpper(v.TaxRegime)
	return strings.Contains(regime, "IVA") || strings.Contains(regime, "VAT")
}

// RegistrationYear returns the calendar year of first registration.
func (v *VehicleRecord) RegistrationYear() (int, bool) {
	if v.RegistrationDate == nil {
		return 0, false
	}
	return v.RegistrationDate.Year(), true
}

// Damage returns the damage cost, or zero when none was recorded.
func (v *VehicleRecord) Damage() float64 {
	if v.DamageCost == nil {
		return 0
	}
	return *v.DamageCost
}

// ListingStatus is the lifecycle state of a market advertisement.
type ListingStatus string

// Listing status constants.
const (
	StatusActive       ListingStatus = "active"
	StatusNew          ListingStatus = "new"
	StatusPriceDropped ListingStatus = "price_dropped"
	StatusPriceRaised  ListingStatus = "price_raised"
	StatusOther        ListingStatus = "other"
)

// ComparableStatuses returns the statuses a listing must have to count as a
// comparable.
func ComparableStatuses() []ListingStatus {
	return []ListingStatus{StatusActive, StatusNew, StatusPriceDropped}
}

// CompetitorListing is a third-party market advertisement. PriceRaw and
// MileageRaw hold the text as scraped; Price and Mileage are filled in by the
// field parser.
type CompetitorListing struct {
	ID     string `json:"id"               db:"id"`
	Source string `json:"source,omitempty" db:"source"`
	Model  string `json:"model"            db:"model"`
	Brand  string `json:"brand,omitempty"  db:"brand"`

	PriceRaw   string  `json:"price_raw,omitempty"   db:"price"`
	MileageRaw string  `json:"mileage_raw,omitempty" db:"km"`
	Price      float64 `json:"price"`
	Mileage    *int    `json:"mileage,omitempty"`

	ModelYear         *int       `json:"model_year,omitempty"         db:"model_year"`
	FirstRegistration *time.Time `json:"first_registration,omitempty" db:"first_registration"`

	Status          ListingStatus `json:"status"                      db:"status"`
	FirstDetectedAt *time.Time    `json:"first_detected_at,omitempty" db:"first_detected_at"`
	PriceDrops      int           `json:"price_drops"                 db:"price_drops"`
	PriceDropTotal  float64       `json:"price_drop_total"            db:"price_drop_total"`

	Advertiser string `json:"advertiser,omitempty" db:"advertiser"`
	URL        string `json:"url,omitempty"        db:"url"`
}

// DaysListed returns whole days since the listing was first detected.
func (l *CompetitorListing) DaysListed(now time.Time) int {
	if l.FirstDetectedAt == nil {
		return 0
	}
	days := int(now.Sub(*l.FirstDetectedAt).Hours() / 24)
	return max(days, 0)
}

// StockEntry is a vehicle currently available for sale in our own stock.
type StockEntry struct {
	Model                string   `json:"model"                            db:"model"`
	Brand                string   `json:"brand,omitempty"                  db:"brand"`
	RecommendedSalePrice *float64 `json:"recommended_sale_price,omitempty" db:"recommended_sale_price"`
}

// Comparables is the outcome of a competitor retrieval for one vehicle.
type Comparables struct {
	Listings []CompetitorListing `json:"listings"`
	Strategy string              `json:"strategy"`
	Term     string              `json:"term,omitempty"`
	Err      string              `json:"error,omitempty"`
}

// WarrantyQuote is the extended warranty we must contract for a vehicle.
type WarrantyQuote struct {
	Months  int     `json:"months"`
	Cost    float64 `json:"cost"`
	Premium bool    `json:"premium"`
	Detail  string  `json:"detail"`
}
