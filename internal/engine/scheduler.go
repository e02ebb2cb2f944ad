package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jviciana84/prod-sub002/internal/metrics"
)

// Scheduler runs pricing passes on a fixed interval.
type Scheduler struct {
	cron    *cron.Cron
	engine  *Engine
	log     *slog.Logger
	entryID cron.EntryID
}

// NewScheduler creates a Scheduler that recomputes every interval.
func NewScheduler(
	eng *Engine,
	interval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	if interval <= 0 {
		return nil, errors.New("recompute interval must be positive")
	}

	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	id, err := c.AddFunc("@every "+interval.String(), s.runRecompute)
	if err != nil {
		return nil, err
	}
	s.entryID = id

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
	s.SyncNextRunTimestamp()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamp publishes the next scheduled pass time.
func (s *Scheduler) SyncNextRunTimestamp() {
	next := s.cron.Entry(s.entryID).Next
	if !next.IsZero() {
		metrics.SchedulerNextPassTimestamp.Set(float64(next.Unix()))
	}
}

func (s *Scheduler) runRecompute() {
	defer s.SyncNextRunTimestamp()

	ctx := context.Background()
	s.log.Info("scheduled recompute starting")
	if _, err := s.engine.Recompute(ctx); err != nil {
		if errors.Is(err, ErrPassSuperseded) {
			s.log.Info("scheduled recompute superseded by a newer pass")
			return
		}
		s.log.Error("scheduled recompute failed", "error", err)
	}
}
