package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// PassOutcomes returns a timeseries panel showing pricing passes per hour
// by outcome.
func PassOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Passes / hour").
		Description("Pricing passes by outcome (committed, superseded, failed)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(increase(vpe_passes_total{job="`+Job+`"}[1h])) by (outcome)`,
			"{{outcome}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// PassDuration returns a timeseries panel showing the p50 and p95 pass
// duration.
func PassDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Pass Duration").
		Description("Duration of committed pricing passes").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(Quantile(0.50, "vpe_pass_duration_seconds"), "p50", "A")).
		WithTarget(PromQuery(Quantile(0.95, "vpe_pass_duration_seconds"), "p95", "B")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// VehiclesByTag returns a bar gauge panel showing the committed snapshot
// split by profitability tag.
func VehiclesByTag() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Vehicles by Tag").
		Description("Vehicles in the committed snapshot by profitability tag").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`max(vpe_vehicles_by_tag{job="`+Job+`"}) by (tag)`, "{{tag}}", "A")).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic())
}

// OpportunitiesStat returns a stat panel showing open buying opportunities
// by kind.
func OpportunitiesStat() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Opportunities").
		Description("Buying opportunities in the committed snapshot").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`max(vpe_opportunities{job="`+Job+`"}) by (kind)`, "{{kind}}", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		GraphMode(common.BigValueGraphModeArea)
}
