package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded notifications. It is
// used when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards opportunities with a log
// message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// SendOpportunity logs and discards a single opportunity.
func (n *NoOpNotifier) SendOpportunity(_ context.Context, o *OpportunityPayload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"vehicle_id", o.VehicleID,
		"model", o.Model,
		"kind", o.Kind,
	)
	return nil
}

// SendBatchOpportunities logs and discards a batch of opportunities.
func (n *NoOpNotifier) SendBatchOpportunities(_ context.Context, opps []OpportunityPayload, passID string) error {
	n.log.Debug("batch notification discarded (no backend configured)",
		"pass_id", passID,
		"count", len(opps),
	)
	return nil
}
