package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	apiclient "github.com/jviciana84/prod-sub002/internal/api/client"
	"github.com/jviciana84/prod-sub002/internal/notify"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func eur(v *float64) string {
	return notify.FormatEUR(v)
}

func pct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", *v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func printValuationsTable(w io.Writer, results []domain.ValuationResult) error {
	tw := newTabWriter(w)
	tw.writef("VEHICLE\tPLATE\tMODEL\tTARGET\tCOMPETITIVE\tMARGIN\tTAG\tPOSITION\tCOMPS\n")
	for i := range results {
		r := &results[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.VehicleID,
			orDash(r.LicensePlate),
			truncate(r.Model, 32),
			eur(r.TargetSalePrice),
			eur(r.CompetitivePrice),
			pct(r.MarginPct),
			r.Tag,
			orDash(string(r.Position)),
			r.CompetitorCount,
		)
	}
	return tw.finish()
}

func printValuationDetail(w io.Writer, r *domain.ValuationResult) error {
	tw := newTabWriter(w)
	tw.writef("Vehicle:\t%s\n", orDash(r.VehicleID))
	tw.writef("Plate:\t%s\n", orDash(r.LicensePlate))
	tw.writef("Model:\t%s\n", r.Model)
	if r.Mileage != nil {
		tw.writef("Mileage:\t%d km\n", *r.Mileage)
	}
	if r.Registered != nil {
		tw.writef("Registered:\t%s\n", r.Registered.Format("2006-01-02"))
	}
	tw.writef("Regime:\t%s\n", regime(r.VAT))
	tw.writef("Theoretical value:\t%s\n", eur(r.TheoreticalValue))
	tw.writef("Net source price:\t%s\n", eur(r.NetSourcePrice))
	tw.writef("Warranty:\t%s (%d months, %s)\n", eur(&r.Warranty.Cost), r.Warranty.Months, r.Warranty.Detail)
	tw.writef("Target sale price:\t%s\n", eur(r.TargetSalePrice))
	tw.writef("Market mean:\t%s\n", eur(r.MeanMarketPrice))
	tw.writef("Competitive price:\t%s\n", eur(r.CompetitivePrice))
	tw.writef("Max bid:\t%s\n", eur(r.MaxBid))
	tw.writef("Margin:\t%s (%s)\n", eur(r.Margin), pct(r.MarginPct))
	tw.writef("Tag:\t%s\n", r.Tag)
	tw.writef("Position:\t%s\n", orDash(string(r.Position)))
	tw.writef("Comparables:\t%d (%s)\n", r.CompetitorCount, r.Strategy)
	if r.Opportunity != domain.OpportunityNone {
		tw.writef("Opportunity:\t%s\n", r.Opportunity)
		tw.writef("Our stock price:\t%s\n", eur(r.StockPrice))
	}
	if r.RetrievalError != "" {
		tw.writef("Retrieval error:\t%s\n", r.RetrievalError)
	}
	return tw.finish()
}

func regime(vat bool) string {
	if vat {
		return "IVA"
	}
	return "REBU"
}

func printPortfolio(w io.Writer, p *apiclient.PortfolioResponse) error {
	s := &p.Stats
	tw := newTabWriter(w)
	tw.writef("Pass:\t%s (#%d, %s)\n", p.PassID, p.Generation, p.CompletedAt.Format("2006-01-02 15:04:05"))
	tw.writef("Vehicles:\t%d\n", s.Total)
	tw.writef("Rentable:\t%d\n", s.Rentable)
	tw.writef("No rentable:\t%d\n", s.NoRentable)
	tw.writef("No interesante:\t%d\n", s.NoInteresante)
	tw.writef("Sin datos:\t%d\n", s.SinDatos)
	tw.writef("Opportunities:\t%d\n", s.Opportunities)
	tw.writef("Mean target price:\t%s\n", eur(&s.MeanTargetSalePrice))
	tw.writef("Mean competitive price:\t%s\n", eur(&s.MeanCompetitivePrice))
	tw.writef("Mean market price:\t%s\n", eur(&s.MeanMarketPrice))
	tw.writef("Mean margin:\t%s\n", eur(&s.MeanMargin))
	tw.writef("Overall position:\t%+.1f%%\n", s.OverallPositionPct)
	return tw.finish()
}

func printOpportunityBoard(w io.Writer, board *domain.OpportunityBoard) error {
	tw := newTabWriter(w)
	tw.writef("GROUP\tMODEL\tVEHICLE\tTARGET\tMARGIN\tSTOCK PRICE\n")
	writeGroup := func(label string, groups map[string][]domain.ValuationResult) {
		models := make([]string, 0, len(groups))
		for m := range groups {
			models = append(models, m)
		}
		slices.Sort(models)
		for _, m := range models {
			for i := range groups[m] {
				r := &groups[m][i]
				tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
					label, truncate(m, 32), r.VehicleID,
					eur(r.TargetSalePrice), pct(r.MarginPct), eur(r.StockPrice),
				)
			}
		}
	}
	writeGroup("not in stock", board.NotInStock)
	writeGroup("cheaper than stock", board.InStock)
	return tw.finish()
}

func printCompetitors(w io.Writer, resp *apiclient.CompetitorsResponse) error {
	tw := newTabWriter(w)
	tw.writef("Vehicle:\t%s (%s)\n", resp.Vehicle.ID, resp.Vehicle.Model)
	tw.writef("Strategy:\t%s %s\n", resp.Strategy, resp.Term)
	tw.writef("Counted:\t%d of %d\n", resp.Counted, len(resp.Listings))
	tw.writef("Market mean:\t%s\n", eur(resp.MeanMarketPrice))
	tw.writef("Competitive price:\t%s\n\n", eur(resp.CompetitivePrice))

	tw.writef("ID\tMODEL\tPRICE\tKM\tDAYS\tSTATUS\tADVERTISER\n")
	for i := range resp.Listings {
		l := &resp.Listings[i]
		km := "-"
		if l.Mileage != nil {
			km = fmt.Sprintf("%d", *l.Mileage)
		}
		days := "-"
		if l.FirstDetectedAt != nil {
			days = fmt.Sprintf("%d", l.DaysListed)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, truncate(l.Model, 40), eur(&l.Price), km, days, l.Status, orDash(l.Advertiser),
		)
	}
	return tw.finish()
}

// printQuote prints the valuation followed by the cost stack that produced
// the target sale price.
func printQuote(w io.Writer, q *apiclient.QuoteResponse) error {
	if err := printValuationDetail(w, &q.ValuationResult); err != nil {
		return err
	}
	if q.Breakdown == nil {
		_, err := fmt.Fprintln(w, "\nNo cost breakdown: the net source price is missing.")
		return err
	}

	b := q.Breakdown
	if _, err := fmt.Fprintln(w, "\nCost breakdown"); err != nil {
		return err
	}
	tw := newTabWriter(w)
	tw.writef("  Net source price\t%s\n", eur(&b.NetSourcePrice))
	tw.writef("  + Damage\t%s\n", eur(&b.Damage))
	tw.writef("  + Transport\t%s\n", eur(&b.Transport))
	tw.writef("  + Structure\t%s\n", eur(&b.Structure))
	tw.writef("  + Warranty\t%s\n", eur(&b.Warranty.Cost))
	tw.writef("  = Base\t%s\n", eur(&b.Base))
	tw.writef("  With margin\t%s\n", eur(&b.WithMargin))
	tw.writef("  × Tax\t%.2f\n", b.TaxMultiplier)
	tw.writef("  = Target sale price\t%s\n", eur(&b.Final))
	return tw.finish()
}

func printConfig(w io.Writer, cfg *pricing.Config) error {
	tw := newTabWriter(w)
	tw.writef("Transport:\t%.2f\n", cfg.Transport)
	tw.writef("Structure:\t%.2f\n", cfg.Structure)
	tw.writef("Margin:\t%.2f%%\n", cfg.MarginPct)
	tw.writef("Undercut:\t%.2f%%\n", cfg.UndercutPct)
	tw.writef("Year window:\t±%d\n", cfg.YearWindow)
	tw.writef("Km window:\t±%d\n", cfg.KmWindow)
	tw.writef("Max mileage:\t%d km\n", cfg.MaxMileageKm)
	tw.writef("Competitive below:\t%.1f%%\n", cfg.CompetitiveBelowPct)
	tw.writef("High above:\t%.1f%%\n", cfg.HighAbovePct)
	tw.writef("Opportunity threshold:\t%.2f\n", cfg.OpportunityThreshold)
	tw.writef("Excluded advertisers:\t%s\n", orDash(strings.Join(cfg.ExcludedAdvertisers, ", ")))
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
