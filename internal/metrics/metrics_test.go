package metrics

import (
	"testing"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, RetrievalsTotal)
	assert.NotNil(t, RetrievalErrorsTotal)
	assert.NotNil(t, RetrievalDuration)
	assert.NotNil(t, ListingQueriesTotal)
	assert.NotNil(t, PassesTotal)
	assert.NotNil(t, PassDuration)
	assert.NotNil(t, LastPassTimestamp)
	assert.NotNil(t, VehiclesByTag)
	assert.NotNil(t, Opportunities)
	assert.NotNil(t, StockFailuresTotal)
	assert.NotNil(t, SchedulerNextPassTimestamp)
	assert.NotNil(t, ConfigAppliesTotal)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
}

func TestLabelledMetrics(t *testing.T) {
	t.Parallel()

	before := ptestutil.ToFloat64(RetrievalsTotal.WithLabelValues("metrics_test"))
	RetrievalsTotal.WithLabelValues("metrics_test").Inc()
	assert.InDelta(t, before+1, ptestutil.ToFloat64(RetrievalsTotal.WithLabelValues("metrics_test")), 1e-9)

	VehiclesByTag.WithLabelValues("metrics_test").Set(7)
	assert.InDelta(t, 7.0, ptestutil.ToFloat64(VehiclesByTag.WithLabelValues("metrics_test")), 1e-9)
}
