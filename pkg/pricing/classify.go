package pricing

import (
	"math"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
	"github.com/jviciana84/prod-sub002/pkg/valuation"
)

// CompetitivePrice returns the mean price of the usable listings and the
// competitive price derived from it (mean minus UndercutPct). A listing is
// usable when its parsed price is positive and its advertiser is not one of
// the excluded dealers. n is the number of listings averaged; ok is false
// when there are none.
func CompetitivePrice(listings []domain.CompetitorListing, cfg Config) (mean, competitive float64, n int, ok bool) {
	var sum float64
	for i := range listings {
		l := &listings[i]
		if l.Price <= 0 || math.IsNaN(l.Price) || math.IsInf(l.Price, 0) {
			continue
		}
		if cfg.Excludes(l.Advertiser) {
			continue
		}
		sum += l.Price
		n++
	}
	if n == 0 {
		return 0, 0, 0, false
	}

	mean = sum / float64(n)
	return mean, mean * (1 - cfg.UndercutPct/100), n, true
}

// Classify tags a vehicle by profitability. Missing prices yield
// TagSinDatos; a vehicle above MaxMileageKm is TagNoInteresante whatever its
// margin; otherwise the sign of competitive − target decides.
func Classify(mileage *int, competitive, target *float64, cfg Config) domain.ProfitTag {
	if competitive == nil || target == nil {
		return domain.TagSinDatos
	}
	if mileage != nil && *mileage > cfg.MaxMileageKm {
		return domain.TagNoInteresante
	}
	if *competitive-*target > 0 {
		return domain.TagRentable
	}
	return domain.TagNoRentable
}

// Position places the target sale price against the market mean using the
// configured thresholds.
func Position(target, mean *float64, cfg Config) domain.MarketPosition {
	if target == nil || mean == nil {
		return domain.PositionUnknown
	}
	dev, ok := valuation.Score(*target, *mean)
	if !ok {
		return domain.PositionUnknown
	}

	switch {
	case dev <= -cfg.CompetitiveBelowPct:
		return domain.PositionCompetitive
	case dev >= cfg.HighAbovePct:
		return domain.PositionHigh
	default:
		return domain.PositionFair
	}
}
