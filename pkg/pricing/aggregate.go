package pricing

import (
	"cmp"
	"slices"
	"strings"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
	"github.com/jviciana84/prod-sub002/pkg/valuation"
)

// Aggregate summarises a set of results. Means are taken over the results
// that carry the value; a field with no contributors is 0.
func Aggregate(results []domain.ValuationResult) domain.PortfolioStats {
	stats := domain.PortfolioStats{Total: len(results)}

	var target, competitive, market, margin avg
	var bothTarget, bothMarket avg

	for i := range results {
		r := &results[i]
		switch r.Tag {
		case domain.TagRentable:
			stats.Rentable++
		case domain.TagNoRentable:
			stats.NoRentable++
		case domain.TagNoInteresante:
			stats.NoInteresante++
		default:
			stats.SinDatos++
		}
		if r.Opportunity != domain.OpportunityNone {
			stats.Opportunities++
		}

		target.add(r.TargetSalePrice)
		competitive.add(r.CompetitivePrice)
		market.add(r.MeanMarketPrice)
		margin.add(r.Margin)
		if r.TargetSalePrice != nil && r.MeanMarketPrice != nil {
			bothTarget.add(r.TargetSalePrice)
			bothMarket.add(r.MeanMarketPrice)
		}
	}

	stats.MeanTargetSalePrice = target.value()
	stats.MeanCompetitivePrice = competitive.value()
	stats.MeanMarketPrice = market.value()
	stats.MeanMargin = margin.value()
	if pct, ok := valuation.Score(bothTarget.value(), bothMarket.value()); ok {
		stats.OverallPositionPct = pct
	}

	return stats
}

// GroupOpportunities splits opportunities into models we do not stock and
// models we could sell cheaper than our stock, grouped by model. Each group
// is sorted by margin percentage, highest first. The group key is the first
// spelling of the model seen.
func GroupOpportunities(results []domain.ValuationResult) domain.OpportunityBoard {
	board := domain.OpportunityBoard{
		NotInStock: make(map[string][]domain.ValuationResult),
		InStock:    make(map[string][]domain.ValuationResult),
	}
	names := make(map[string]string)

	for i := range results {
		r := results[i]
		var target map[string][]domain.ValuationResult
		switch r.Opportunity {
		case domain.OpportunityNotInStock:
			target = board.NotInStock
		case domain.OpportunityCheaper:
			target = board.InStock
		default:
			continue
		}

		key := strings.ToLower(strings.TrimSpace(r.Model))
		name, ok := names[key]
		if !ok {
			name = strings.TrimSpace(r.Model)
			names[key] = name
		}
		target[name] = append(target[name], r)
	}

	for _, groups := range []map[string][]domain.ValuationResult{board.NotInStock, board.InStock} {
		for _, g := range groups {
			slices.SortStableFunc(g, byMarginPctDesc)
		}
	}

	return board
}

func byMarginPctDesc(a, b domain.ValuationResult) int {
	switch {
	case a.MarginPct == nil && b.MarginPct == nil:
		return 0
	case a.MarginPct == nil:
		return 1
	case b.MarginPct == nil:
		return -1
	}
	return cmp.Compare(*b.MarginPct, *a.MarginPct)
}

type avg struct {
	sum float64
	n   int
}

func (m *avg) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m *avg) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}
