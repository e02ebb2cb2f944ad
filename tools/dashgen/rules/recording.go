package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "vpe-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "vpe-recording",
					Rules: []Rule{
						{
							Record: "vpe:http_requests:rate5m",
							Expr:   `sum(rate(vpe_http_requests_total[5m]))`,
						},
						{
							Record: "vpe:http_errors:rate5m",
							Expr:   `sum(rate(vpe_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "vpe:retrievals:rate5m",
							Expr:   `sum(rate(vpe_retrievals_total[5m]))`,
						},
						{
							Record: "vpe:retrieval_errors:rate5m",
							Expr:   `rate(vpe_retrieval_errors_total[5m])`,
						},
						{
							Record: "vpe:listing_queries:rate5m",
							Expr:   `sum(rate(vpe_listing_queries_total[5m]))`,
						},
						{
							Record: "vpe:notification_duration:p95_5m",
							Expr:   `histogram_quantile(0.95, sum(rate(vpe_notification_duration_seconds_bucket[5m])) by (le))`,
						},
					},
				},
			},
		},
	}
}
