package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationsSent returns a timeseries panel showing opportunity
// notifications sent per hour.
func NotificationsSent() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notifications / hour").
		Description("Opportunity notifications delivered").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(Increase("vpe_notifications_sent_total", "", "1h"), "sent", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleBars)
}

// NotificationLatency returns a timeseries panel showing the p95 notification
// webhook latency.
func NotificationLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Notification Latency (p95)").
		Description("95th percentile Discord webhook latency").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(`vpe:notification_duration:p95_5m`, "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NotificationFailures returns a stat panel showing notification failures
// in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures (24h)").
		Description("Failed opportunity notifications in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(Increase("vpe_notification_failures_total", "", "24h"), "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// ConfigApplies returns a stat panel showing configuration changes in the
// past 24 hours by result.
func ConfigApplies() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Config Changes (24h)").
		Description("Pricing configuration apply attempts by result").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(StatWidth).
		WithTarget(PromQuery(
			`sum(increase(vpe_config_applies_total{job="`+Job+`"}[24h])) by (result)`,
			"{{result}}", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		GraphMode(common.BigValueGraphModeNone)
}
