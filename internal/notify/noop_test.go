package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

func TestNoOpNotifier_SendOpportunity(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := n.SendOpportunity(context.Background(), &OpportunityPayload{
		VehicleID: "v-1",
		Model:     "X1 sDrive18d",
		Kind:      domain.OpportunityNotInStock,
	})
	require.NoError(t, err)
}

func TestNoOpNotifier_SendBatchOpportunities(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	opps := []OpportunityPayload{
		{VehicleID: "v-1", Model: "X1 sDrive18d", MarginPct: 12},
		{VehicleID: "v-2", Model: "Serie 3 320d", MarginPct: 4},
	}

	err := n.SendBatchOpportunities(context.Background(), opps, "pass-1")
	require.NoError(t, err)
}

func TestNoOpNotifier_SendBatchOpportunities_Empty(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := n.SendBatchOpportunities(context.Background(), nil, "pass-2")
	require.NoError(t, err)
}

// compile-time interface check.
var _ Notifier = (*NoOpNotifier)(nil)
