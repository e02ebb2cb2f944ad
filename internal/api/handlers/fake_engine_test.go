package handlers_test

import (
	"context"
	"sync"

	"github.com/jviciana84/prod-sub002/internal/engine"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// fakeEngine implements ConfigManager, Valuator and Quoter for testing.
type fakeEngine struct {
	mu sync.Mutex

	cfg      pricing.Config
	applyErr error
	applied  []pricing.Config

	snap         *engine.Snapshot
	snapErr      error
	recomputeErr error
	recomputes   int

	vehicle     *domain.VehicleRecord
	comps       domain.Comparables
	compsErr    error
	quote       engine.Quotation
	quoteErr    error
	quotedWith  *domain.VehicleRecord
	quotedPrice *float64
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{cfg: pricing.DefaultConfig()}
}

func (f *fakeEngine) Config() pricing.Config {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cfg
}

func (f *fakeEngine) ApplyConfig(_ context.Context, cfg pricing.Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, cfg)
	if f.applyErr != nil {
		return f.applyErr
	}
	f.cfg = cfg
	return nil
}

func (f *fakeEngine) Recompute(_ context.Context) (*engine.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recomputes++
	if f.recomputeErr != nil {
		return nil, f.recomputeErr
	}
	return f.snap, nil
}

func (f *fakeEngine) Snapshot() (*engine.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.snapErr != nil {
		return nil, f.snapErr
	}
	if f.snap == nil {
		return nil, engine.ErrNoSnapshot
	}
	return f.snap, nil
}

func (f *fakeEngine) Competitors(_ context.Context, _ string) (*domain.VehicleRecord, domain.Comparables, error) {
	if f.compsErr != nil {
		return nil, domain.Comparables{}, f.compsErr
	}
	return f.vehicle, f.comps, nil
}

func (f *fakeEngine) Quote(
	_ context.Context,
	v *domain.VehicleRecord,
	marketPrice *float64,
) (engine.Quotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.quotedWith = v
	f.quotedPrice = marketPrice
	if f.quoteErr != nil {
		return engine.Quotation{}, f.quoteErr
	}
	return f.quote, nil
}

func ptr[T any](v T) *T { return &v }
