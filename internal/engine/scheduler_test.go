package engine

import (
	"errors"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jviciana84/prod-sub002/internal/metrics"
)

func TestNewScheduler_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(newDeps(t), marketRetriever())

	sched, err := NewScheduler(eng, 15*time.Minute, quietLogger())
	require.NoError(t, err)

	assert.Len(t, sched.Entries(), 1)
	assert.NotZero(t, sched.entryID)
}

func TestNewScheduler_RejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval time.Duration
	}{
		{name: "zero", interval: 0},
		{name: "negative", interval: -time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng := newTestEngine(newDeps(t), marketRetriever())
			sched, err := NewScheduler(eng, tt.interval, quietLogger())
			require.Error(t, err)
			assert.Nil(t, sched)
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(newDeps(t), marketRetriever())

	sched, err := NewScheduler(eng, time.Hour, quietLogger())
	require.NoError(t, err)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_SyncNextRunTimestamp(t *testing.T) {
	t.Parallel()

	eng := newTestEngine(newDeps(t), marketRetriever())

	sched, err := NewScheduler(eng, 15*time.Minute, quietLogger())
	require.NoError(t, err)

	// Start so that cron populates Next.
	sched.Start()
	defer sched.Stop()

	sched.SyncNextRunTimestamp()

	next := ptestutil.ToFloat64(metrics.SchedulerNextPassTimestamp)
	assert.Greater(t, next, float64(0), "next pass timestamp should be set")
}

func TestScheduler_RunRecompute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		listErr   error
		wantSnaps bool
	}{
		{name: "commits a snapshot", wantSnaps: true},
		{name: "failure is logged not panicked", listErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			d.store.EXPECT().ListVehicles(mock.Anything, mock.Anything).Return(nil, tt.listErr).Once()
			if tt.listErr == nil {
				d.store.EXPECT().ListAvailableStock(mock.Anything).Return(nil, nil).Once()
			}

			eng := newTestEngine(d, marketRetriever())
			sched, err := NewScheduler(eng, time.Hour, quietLogger())
			require.NoError(t, err)

			sched.runRecompute()

			_, err = eng.Snapshot()
			if tt.wantSnaps {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrNoSnapshot)
			}
		})
	}
}
