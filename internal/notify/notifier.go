// Package notify defines the notification interface and implementations
// for buying-opportunity delivery.
package notify

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// OpportunityPayload contains the data needed to announce a buying
// opportunity. Money values are preformatted for display.
type OpportunityPayload struct {
	VehicleID        string
	LicensePlate     string
	Model            string
	Kind             domain.OpportunityKind
	TargetSalePrice  string
	CompetitivePrice string
	MaxBid           string
	StockPrice       string
	Margin           string
	MarginPct        float64
	CompetitorCount  int
}

// NewOpportunityPayload builds the payload for a valuation result.
func NewOpportunityPayload(r *domain.ValuationResult) OpportunityPayload {
	p := OpportunityPayload{
		VehicleID:        r.VehicleID,
		LicensePlate:     r.LicensePlate,
		Model:            r.Model,
		Kind:             r.Opportunity,
		TargetSalePrice:  FormatEUR(r.TargetSalePrice),
		CompetitivePrice: FormatEUR(r.CompetitivePrice),
		MaxBid:           FormatEUR(r.MaxBid),
		StockPrice:       FormatEUR(r.StockPrice),
		Margin:           FormatEUR(r.Margin),
		CompetitorCount:  r.CompetitorCount,
	}
	if r.MarginPct != nil {
		p.MarginPct = *r.MarginPct
	}
	return p
}

// Notifier defines the interface for sending opportunity notifications.
type Notifier interface {
	SendOpportunity(ctx context.Context, o *OpportunityPayload) error
	SendBatchOpportunities(ctx context.Context, opps []OpportunityPayload, passID string) error
}

// FormatEUR renders an amount the way the dealership writes it: whole euros
// with dot thousands separators ("27.570 €"). Nil renders as "-".
func FormatEUR(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "-"
	}
	n := int64(math.Round(*v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return fmt.Sprintf("%s%s €", sign, b.String())
}

func kindLabel(k domain.OpportunityKind) string {
	switch k {
	case domain.OpportunityNotInStock:
		return "Not in stock"
	case domain.OpportunityCheaper:
		return "Cheaper than stock"
	default:
		return string(k)
	}
}
