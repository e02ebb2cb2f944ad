// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/jviciana84/prod-sub002/tools/dashgen/panels"
)

// UID is the stable dashboard identifier.
const UID = "vpe-overview"

// BuildOverview constructs the pricing engine overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Pricing Engine Overview").
		Uid(UID).
		Tags([]string{"vpe", "pricing-engine"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.LastPassStat()).
		WithPanel(panels.NextPassStat()))

	b.WithRow(dashboard.NewRowBuilder("API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Pricing Passes").
		WithPanel(panels.PassOutcomes()).
		WithPanel(panels.PassDuration()).
		WithPanel(panels.VehiclesByTag()).
		WithPanel(panels.OpportunitiesStat()))

	b.WithRow(dashboard.NewRowBuilder("Comparables").
		WithPanel(panels.RetrievalsByStrategy()).
		WithPanel(panels.ListingQueries()).
		WithPanel(panels.RetrievalDuration()).
		WithPanel(panels.RetrievalErrors()))

	b.WithRow(dashboard.NewRowBuilder("Notifications & Config").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationLatency()).
		WithPanel(panels.NotificationFailures()).
		WithPanel(panels.ConfigApplies()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
