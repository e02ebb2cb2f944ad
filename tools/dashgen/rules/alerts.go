package rules

// AlertRules returns a PrometheusRule CR containing alert rules for pricing
// engine operations.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "vpe-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "vpe-alerts",
					Rules: []Rule{
						{
							Alert:  "VpeDown",
							Expr:   `absent(up{job="pricing-engine"})`,
							For:    "2m",
							Labels: severity("critical"),
							Annotations: annotations(
								"Pricing engine is down",
								"The pricing-engine job has been absent for more than 2 minutes.",
							),
						},
						{
							Alert:  "VpeReadinessDown",
							Expr:   `vpe_readyz_up == 0`,
							For:    "2m",
							Labels: severity("critical"),
							Annotations: annotations(
								"Pricing engine cannot reach its database",
								"The readiness probe has been failing for more than 2 minutes.",
							),
						},
						{
							Alert:  "VpeHighErrorRate",
							Expr:   `vpe:http_errors:rate5m / vpe:http_requests:rate5m > 0.05`,
							For:    "5m",
							Labels: severity("warning"),
							Annotations: annotations(
								"High API error rate on the pricing engine",
								"More than 5% of API requests are returning 5xx errors over the last 5 minutes.",
							),
						},
						{
							Alert:  "VpePassesFailing",
							Expr:   `sum(increase(vpe_passes_total{outcome="failed"}[30m])) > 0 and sum(increase(vpe_passes_total{outcome="committed"}[30m])) == 0`,
							For:    "5m",
							Labels: severity("critical"),
							Annotations: annotations(
								"Pricing passes are failing",
								"No pricing pass has committed in 30 minutes and at least one failed. Valuations are stale.",
							),
						},
						{
							Alert:  "VpeSnapshotStale",
							Expr:   `time() - vpe_last_pass_timestamp > 6 * 3600`,
							For:    "10m",
							Labels: severity("warning"),
							Annotations: annotations(
								"Valuations are more than 6 hours old",
								"The committed pricing snapshot has not been refreshed for over 6 hours.",
							),
						},
						{
							Alert:  "VpeRetrievalErrors",
							Expr:   `vpe:retrieval_errors:rate5m / vpe:retrievals:rate5m > 0.1`,
							For:    "10m",
							Labels: severity("warning"),
							Annotations: annotations(
								"Competitor retrieval errors are elevated",
								"More than 10% of competitor retrievals are failing; affected vehicles are tagged sin_datos.",
							),
						},
						{
							Alert:  "VpeStockUnavailable",
							Expr:   `increase(vpe_stock_failures_total[1h]) > 0`,
							For:    "0m",
							Labels: severity("warning"),
							Annotations: annotations(
								"Pricing pass ran without stock",
								"The inventory read failed, so in-stock opportunities were not detected.",
							),
						},
						{
							Alert:  "VpeNotificationFailures",
							Expr:   `increase(vpe_notification_failures_total[5m]) > 0`,
							For:    "1m",
							Labels: severity("warning"),
							Annotations: annotations(
								"Notification delivery failures detected",
								"One or more opportunity notifications (Discord webhooks) have failed to send.",
							),
						},
					},
				},
			},
		},
	}
}

func severity(s string) map[string]string {
	return map[string]string{"severity": s}
}

func annotations(summary, description string) map[string]string {
	return map[string]string{
		"summary":     summary,
		"description": description,
	}
}
