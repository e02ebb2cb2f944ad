package pricing

import (
	"slices"
	"strings"
	"time"

	"github.com/jviciana84/prod-sub002/pkg/fields"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
	"github.com/jviciana84/prod-sub002/pkg/valuation"
	"github.com/jviciana84/prod-sub002/pkg/warranty"
)

// Evaluate prices every vehicle against its comparables and the current
// stock. comparables is keyed by vehicle ID; a vehicle with no entry is
// evaluated with an empty comparable set. A nil stock means no stock
// information, so every profitable vehicle counts as not in stock.
//
// Results are returned in the order of vehicles. Evaluate performs no I/O.
func Evaluate(
	vehicles []domain.VehicleRecord,
	comparables map[string]domain.Comparables,
	stock []domain.StockEntry,
	cfg Config,
	today time.Time,
) []domain.ValuationResult {
	idx := indexStock(stock)
	out := make([]domain.ValuationResult, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, EvaluateOne(&vehicles[i], comparables[vehicles[i].ID], idx, cfg, today))
	}
	return out
}

// StockIndex maps a normalised model name to the lowest recommended sale
// price among our stock units of that model. A nil price means the model is
// in stock without a recommended price.
type StockIndex map[string]*float64

// IndexStock builds a StockIndex from stock entries.
func IndexStock(stock []domain.StockEntry) StockIndex {
	return indexStock(stock)
}

func indexStock(stock []domain.StockEntry) StockIndex {
	idx := make(StockIndex, len(stock))
	for _, s := range stock {
		key := modelKey(s.Model)
		if key == "" {
			continue
		}
		cur, seen := idx[key]
		switch {
		case !seen:
			idx[key] = s.RecommendedSalePrice
		case s.RecommendedSalePrice != nil && (cur == nil || *s.RecommendedSalePrice < *cur):
			idx[key] = s.RecommendedSalePrice
		}
	}
	return idx
}

// EvaluateOne prices a single vehicle. Listings that still carry only their
// raw price text are parsed first.
func EvaluateOne(
	v *domain.VehicleRecord,
	comps domain.Comparables,
	stock StockIndex,
	cfg Config,
	today time.Time,
) domain.ValuationResult {
	comps.Listings = parsedListings(comps.Listings)

	res := domain.ValuationResult{
		VehicleID:      v.ID,
		LicensePlate:   v.LicensePlate,
		Brand:          v.Brand,
		Model:          v.Model,
		Mileage:        v.Mileage,
		Registered:     v.RegistrationDate,
		VAT:            v.VATApplicable(),
		NetSourcePrice: v.NetSourcePrice,
		Competitors:    comps.Listings,
		Strategy:       comps.Strategy,
		RetrievalError: comps.Err,
		Warranty:       warranty.Calculate(v.RegistrationDate, today, v.Model),
	}
	res.CompetitorCount = len(comps.Listings)

	if v.NewPrice != nil && v.RegistrationDate != nil {
		km := 0
		if v.Mileage != nil {
			km = *v.Mileage
		}
		tv := valuation.TheoreticalValue(
			*v.NewPrice,
			valuation.AgeYears(*v.RegistrationDate, today),
			km,
			cfg.Depreciation,
		)
		res.TheoreticalValue = &tv
	}

	if target, ok := TargetSalePrice(v, cfg, today); ok {
		res.TargetSalePrice = &target
	}

	if mean, competitive, _, ok := CompetitivePrice(comps.Listings, cfg); ok {
		res.MeanMarketPrice = &mean
		res.CompetitivePrice = &competitive
		if bid, ok := MaxBid(competitive, v, cfg, today); ok {
			res.MaxBid = &bid
		}
	}

	if res.CompetitivePrice != nil && res.TargetSalePrice != nil {
		margin := *res.CompetitivePrice - *res.TargetSalePrice
		res.Margin = &margin
		if *res.TargetSalePrice > 0 {
			pct := margin / *res.TargetSalePrice * 100
			res.MarginPct = &pct
		}
	}

	res.Tag = Classify(v.Mileage, res.CompetitivePrice, res.TargetSalePrice, cfg)
	res.Position = Position(res.TargetSalePrice, res.MeanMarketPrice, cfg)
	res.Opportunity, res.StockPrice = detectOpportunity(&res, stock, cfg)

	return res
}

// parsedListings fills Price and Mileage from the raw text of listings the
// field parser has not seen. The input slice is never modified; it is
// returned as is when every listing is already parsed.
func parsedListings(listings []domain.CompetitorListing) []domain.CompetitorListing {
	var out []domain.CompetitorListing
	for i := range listings {
		l := &listings[i]
		needPrice := l.Price == 0 && l.PriceRaw != ""
		needKm := l.Mileage == nil && l.MileageRaw != ""
		if !needPrice && !needKm {
			continue
		}
		if out == nil {
			out = slices.Clone(listings)
		}
		if needPrice {
			out[i].Price = fields.ParsePrice(l.PriceRaw)
		}
		if needKm {
			if km, ok := fields.ParseKilometers(l.MileageRaw); ok {
				out[i].Mileage = &km
			}
		}
	}
	if out == nil {
		return listings
	}
	return out
}

// detectOpportunity flags a profitable vehicle within the mileage limit that
// we either do not stock or could sell more than OpportunityThreshold below
// our current stock price.
func detectOpportunity(res *domain.ValuationResult, stock StockIndex, cfg Config) (domain.OpportunityKind, *float64) {
	price, inStock := stock[modelKey(res.Model)]

	if res.Margin == nil || *res.Margin <= 0 || res.TargetSalePrice == nil {
		return domain.OpportunityNone, price
	}
	if res.Mileage != nil && *res.Mileage > cfg.MaxMileageKm {
		return domain.OpportunityNone, price
	}

	if !inStock {
		return domain.OpportunityNotInStock, nil
	}
	if price != nil && *price-*res.TargetSalePrice > cfg.OpportunityThreshold {
		return domain.OpportunityCheaper, price
	}
	return domain.OpportunityNone, price
}

func modelKey(model string) string {
	return strings.ToLower(strings.TrimSpace(model))
}
