package pricing

import (
	"math"
	"time"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
	"github.com/jviciana84/prod-sub002/pkg/warranty"
)

// Tax multipliers.
const (
	VATMultiplier    = 1.21
	MarginSchemeRate = 1.00
)

// TaxMultiplier returns 1.21 for VAT-applicable vehicles and 1.00 for the
// margin scheme.
func TaxMultiplier(v *domain.VehicleRecord) float64 {
	if v.VATApplicable() {
		return VATMultiplier
	}
	return MarginSchemeRate
}

// costStack holds every component between the net source price and the
// final sale price. The forward and inverse directions are both derived from
// the same values so that one is always the algebraic inverse of the other.
type costStack struct {
	damage       float64
	transport    float64
	structure    float64
	warranty     float64
	marginFactor float64
	taxFactor    float64
}

func newCostStack(v *domain.VehicleRecord, cfg Config, w domain.WarrantyQuote) costStack {
	margin := 1.0
	if cfg.MarginPct > 0 {
		margin = 1 + cfg.MarginPct/100
	}
	return costStack{
		damage:       v.Damage(),
		transport:    cfg.Transport,
		structure:    cfg.Structure,
		warranty:     w.Cost,
		marginFactor: margin,
		taxFactor:    TaxMultiplier(v),
	}
}

// additive is the sum of the fixed costs added to the net price.
func (s costStack) additive() float64 {
	return s.damage + s.transport + s.structure + s.warranty
}

// forward maps a net source price to an unrounded sale price.
func (s costStack) forward(net float64) float64 {
	return (net + s.additive()) * s.marginFactor * s.taxFactor
}

// inverse maps a sale price back to the net price that would produce it.
func (s costStack) inverse(price float64) float64 {
	return price/s.taxFactor/s.marginFactor - s.additive()
}

// netSourcePrice returns the net source price of v when it can be priced.
// A zero, negative or non-finite amount counts as absent.
func netSourcePrice(v *domain.VehicleRecord) (float64, bool) {
	if v.NetSourcePrice == nil {
		return 0, false
	}
	net := *v.NetSourcePrice
	if math.IsNaN(net) || math.IsInf(net, 0) || net <= 0 {
		return 0, false
	}
	return net, true
}

// CostBreakdown itemises the target sale price of one vehicle.
type CostBreakdown struct {
	NetSourcePrice float64              `json:"net_source_price"`
	Damage         float64              `json:"damage"`
	Transport      float64              `json:"transport"`
	Structure      float64              `json:"structure"`
	Warranty       domain.WarrantyQuote `json:"warranty"`
	Base           float64              `json:"base"`
	WithMargin     float64              `json:"with_margin"`
	TaxMultiplier  float64              `json:"tax_multiplier"`
	Final          float64              `json:"final"`
}

// Breakdown itemises the cost stack of v. ok is false when the vehicle has
// usable net source price.
func Breakdown(v *domain.VehicleRecord, cfg Config, today time.Time) (CostBreakdown, bool) {
	net, ok := netSourcePrice(v)
	if !ok {
		return CostBreakdown{}, false
	}

	w := warranty.Calculate(v.RegistrationDate, today, v.Model)
	s := newCostStack(v, cfg, w)
	base := net + s.additive()

	return CostBreakdown{
		NetSourcePrice: net,
		Damage:         s.damage,
		Transport:      s.transport,
		Structure:      s.structure,
		Warranty:       w,
		Base:           base,
		WithMargin:     base * s.marginFactor,
		TaxMultiplier:  s.taxFactor,
		Final:          math.Round(s.forward(net)),
	}, true
}

// TargetSalePrice returns the rounded price at which v must sell to cover
// its net source price, damage, transport, structure and warranty plus the
// configured margin and tax. ok is false when the net source price is
// unknown or not a positive number.
func TargetSalePrice(v *domain.VehicleRecord, cfg Config, today time.Time) (float64, bool) {
	net, ok := netSourcePrice(v)
	if !ok {
		return 0, false
	}
	w := warranty.Calculate(v.RegistrationDate, today, v.Model)
	return math.Round(newCostStack(v, cfg, w).forward(net)), true
}

// MaxBid returns the highest net acquisition price at which v, sold at
// price, still covers every cost and the configured margin. It is the exact
// inverse of TargetSalePrice. The result may be negative when the market
// price cannot absorb the fixed costs. ok is false when price is not a
// positive number.
func MaxBid(price float64, v *domain.VehicleRecord, cfg Config, today time.Time) (float64, bool) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, false
	}
	w := warranty.Calculate(v.RegistrationDate, today, v.Model)
	return math.Round(newCostStack(v, cfg, w).inverse(price)), true
}
