package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RetrievalsByStrategy returns a timeseries panel showing which search
// strategy found the comparables. "none" means every strategy came up empty.
func RetrievalsByStrategy() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Retrievals by Strategy").
		Description("Competitor retrievals per minute by the strategy that produced the result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(vpe_retrievals_total{job="`+Job+`"}[5m])) by (strategy) * 60`,
			"{{strategy}}", "A",
		)).
		FillOpacity(20).
		LineWidth(1).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ListingQueries returns a timeseries panel showing listing store queries
// per minute.
func ListingQueries() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Listing Queries / min").
		Description("Queries issued against the listing store").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`vpe:listing_queries:rate5m * 60`, "queries/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RetrievalDuration returns a timeseries panel showing the p95 time spent
// finding comparables for one vehicle.
func RetrievalDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Retrieval Duration (p95)").
		Description("95th percentile retrieval duration across all strategies tried").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(Quantile(0.95, "vpe_retrieval_duration_seconds"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(2, 10)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RetrievalErrors returns a stat panel showing failed retrievals and passes
// that ran without stock in the last 24 hours.
func RetrievalErrors() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Retrieval Errors (24h)").
		Description("Failed competitor retrievals and stock reads in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(Increase("vpe_retrieval_errors_total", "", "24h"), "retrievals", "A")).
		WithTarget(PromQuery(Increase("vpe_stock_failures_total", "", "24h"), "stock", "B")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
