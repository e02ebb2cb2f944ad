// Package metrics defines Prometheus metrics for the pricing engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vpe"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Retrieval metrics.
var (
	RetrievalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retrievals_total",
		Help:      "Competitor retrievals by the strategy that produced the result (none when exhausted).",
	}, []string{"strategy"})

	RetrievalErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retrieval_errors_total",
		Help:      "Total number of failed competitor retrievals.",
	})

	RetrievalDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "retrieval_duration_seconds",
		Help:      "Duration of one competitor retrieval, across all strategies tried.",
		Buckets:   prometheus.DefBuckets,
	})

	ListingQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listing_queries_total",
		Help:      "Listing store queries issued, by strategy.",
	}, []string{"strategy"})
)

// Pass metrics.
var (
	PassesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "passes_total",
		Help:      "Pricing passes by outcome (committed, superseded, failed).",
	}, []string{"outcome"})

	PassDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pass_duration_seconds",
		Help:      "Duration of committed pricing passes in seconds.",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})

	LastPassTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_pass_timestamp",
		Help:      "Unix timestamp of the last committed pricing pass.",
	})

	VehiclesByTag = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "vehicles_by_tag",
		Help:      "Vehicles in the committed snapshot by profitability tag.",
	}, []string{"tag"})

	Opportunities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "opportunities",
		Help:      "Buying opportunities in the committed snapshot by kind.",
	}, []string{"kind"})

	StockFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_failures_total",
		Help:      "Passes that ran without stock because the inventory read failed.",
	})

	SchedulerNextPassTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scheduler_next_pass_timestamp",
		Help:      "Unix timestamp of the next scheduled pricing pass.",
	})
)

// Configuration metrics.
var (
	ConfigAppliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "config_applies_total",
		Help:      "Pricing configuration apply attempts by result (applied, invalid, error).",
	}, []string{"result"})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of opportunity notifications sent.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification webhook calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)
