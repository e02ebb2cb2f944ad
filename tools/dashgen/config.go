package main

import "errors"

// KnownMetrics is the set of metric names exported by the pricing engine
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"vpe_http_request_duration_seconds": true,
	"vpe_http_requests_total":           true,

	// Health metrics.
	"vpe_healthz_up": true,
	"vpe_readyz_up":  true,

	// Retrieval metrics.
	"vpe_retrievals_total":           true,
	"vpe_retrieval_errors_total":     true,
	"vpe_retrieval_duration_seconds": true,
	"vpe_listing_queries_total":      true,

	// Pass metrics.
	"vpe_passes_total":                  true,
	"vpe_pass_duration_seconds":         true,
	"vpe_last_pass_timestamp":           true,
	"vpe_vehicles_by_tag":               true,
	"vpe_opportunities":                 true,
	"vpe_stock_failures_total":          true,
	"vpe_scheduler_next_pass_timestamp": true,

	// Configuration metrics.
	"vpe_config_applies_total": true,

	// Notification metrics.
	"vpe_notifications_sent_total":      true,
	"vpe_notification_failures_total":   true,
	"vpe_notification_duration_seconds": true,

	// Recording rules.
	"vpe:http_requests:rate5m":         true,
	"vpe:http_errors:rate5m":           true,
	"vpe:retrievals:rate5m":            true,
	"vpe:retrieval_errors:rate5m":      true,
	"vpe:listing_queries:rate5m":       true,
	"vpe:notification_duration:p95_5m": true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
