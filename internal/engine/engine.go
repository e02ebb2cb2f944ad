// Package engine owns the pricing session: the live configuration, the last
// committed snapshot of valuation results, and the passes that replace it.
//
// A pass reads the configuration once at start and prices every vehicle
// against that snapshot. Only the newest pass may commit; any pass started
// before it is cancelled and its results are discarded.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jviciana84/prod-sub002/internal/configstore"
	"github.com/jviciana84/prod-sub002/internal/metrics"
	"github.com/jviciana84/prod-sub002/internal/notify"
	"github.com/jviciana84/prod-sub002/internal/retrieve"
	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

const instrumentationName = "github.com/jviciana84/prod-sub002/internal/engine"

// ErrPassSuperseded is returned by a pass that a newer pass replaced before
// it could commit.
var ErrPassSuperseded = errors.New("pricing pass superseded")

// ErrNoSnapshot is returned when no pass has committed yet.
var ErrNoSnapshot = errors.New("no pricing snapshot committed yet")

// Retriever finds the comparables for one vehicle.
type Retriever interface {
	Retrieve(ctx context.Context, v *domain.VehicleRecord, cfg pricing.Config) (domain.Comparables, error)
}

// Snapshot is the immutable outcome of a committed pass.
type Snapshot struct {
	PassID      uuid.UUID                `json:"pass_id"`
	Generation  uint64                   `json:"generation"`
	Config      pricing.Config           `json:"config"`
	Results     []domain.ValuationResult `json:"results"`
	Stats       domain.PortfolioStats    `json:"stats"`
	Board       domain.OpportunityBoard  `json:"board"`
	StartedAt   time.Time                `json:"started_at"`
	CompletedAt time.Time                `json:"completed_at"`

	stock pricing.StockIndex
}

// Result returns the valuation for a vehicle ID.
func (s *Snapshot) Result(vehicleID string) (*domain.ValuationResult, bool) {
	for i := range s.Results {
		if s.Results[i].VehicleID == vehicleID {
			return &s.Results[i], true
		}
	}
	return nil, false
}

// Engine coordinates configuration changes and pricing passes.
type Engine struct {
	store     store.Store
	retriever Retriever
	configs   configstore.Store
	notifier  notify.Notifier
	log       *slog.Logger

	concurrency  int
	queryTimeout time.Duration
	vehicles     *store.VehicleQuery
	now          func() time.Time
	tracer       trace.Tracer
	passCounter  otelmetric.Int64Counter

	cfg  atomic.Pointer[pricing.Config]
	snap atomic.Pointer[Snapshot]
	gen  atomic.Uint64

	mu        sync.Mutex // guards gen increments, cancel and cancelGen
	cancel    context.CancelFunc
	cancelGen uint64

	applyMu sync.Mutex // serialises ApplyConfig so the saved and live configs agree

	commitMu sync.Mutex
	notified map[string]domain.OpportunityKind // guarded by commitMu

	background sync.WaitGroup
	baseCtx    context.Context
}

// NewEngine creates a new Engine with injected dependencies. cfg is the
// configuration in force until the first ApplyConfig; it must be valid.
func NewEngine(
	s store.Store,
	r Retriever,
	cs configstore.Store,
	n notify.Notifier,
	cfg pricing.Config,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		store:        s,
		retriever:    r,
		configs:      cs,
		notifier:     n,
		log:          slog.Default(),
		concurrency:  8,
		queryTimeout: 10 * time.Second,
		now:          time.Now,
		tracer:       otel.Tracer(instrumentationName),
		notified:     make(map[string]domain.OpportunityKind),
		baseCtx:      context.Background(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"vpe.passes",
		otelmetric.WithDescription("Pricing passes by outcome."),
	)
	if err != nil {
		eng.log.Warn("creating pass counter", "error", err)
	}
	eng.passCounter = counter

	eng.cfg.Store(&cfg)
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithConcurrency caps the number of concurrent comparable retrievals.
func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithQueryTimeout bounds each vehicle's retrieval.
func WithQueryTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.queryTimeout = d
	}
}

// WithVehicleQuery restricts the vehicles each pass evaluates.
func WithVehicleQuery(q *store.VehicleQuery) EngineOption {
	return func(e *Engine) {
		e.vehicles = q
	}
}

// WithNowFunc overrides the clock; "today" for every pass comes from it.
func WithNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = f
	}
}

// WithTracerProvider sets the provider spans are created from.
func WithTracerProvider(tp trace.TracerProvider) EngineOption {
	return func(e *Engine) {
		e.tracer = tp.Tracer(instrumentationName)
	}
}

// WithBaseContext sets the parent context of passes started in the
// background by ApplyConfig.
func WithBaseContext(ctx context.Context) EngineOption {
	return func(e *Engine) {
		e.baseCtx = ctx
	}
}

// Config returns the configuration in force.
func (eng *Engine) Config() pricing.Config {
	return *eng.cfg.Load()
}

// Snapshot returns the last committed snapshot.
func (eng *Engine) Snapshot() (*Snapshot, error) {
	s := eng.snap.Load()
	if s == nil {
		return nil, ErrNoSnapshot
	}
	return s, nil
}

// ApplyConfig validates and persists cfg, makes it the configuration in
// force, and starts a fresh pass in the background. Any pass still running
// is superseded before ApplyConfig returns, so no result computed under the
// previous configuration can commit afterwards. Invalid configurations wrap
// configstore.ErrInvalid.
func (eng *Engine) ApplyConfig(ctx context.Context, cfg pricing.Config) error {
	if err := cfg.Validate(); err != nil {
		metrics.ConfigAppliesTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("%w: %w", configstore.ErrInvalid, err)
	}

	eng.applyMu.Lock()
	defer eng.applyMu.Unlock()

	if err := eng.configs.Save(ctx, cfg); err != nil {
		if errors.Is(err, configstore.ErrInvalid) {
			metrics.ConfigAppliesTotal.WithLabelValues("invalid").Inc()
		} else {
			metrics.ConfigAppliesTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("saving pricing config: %w", err)
	}

	// The new config must be visible before the generation moves: a pass
	// reads the config only after registering its generation.
	eng.cfg.Store(&cfg)
	gen, passCtx, cancel := eng.beginPass(eng.baseCtx)

	metrics.ConfigAppliesTotal.WithLabelValues("applied").Inc()
	eng.log.Info("pricing config applied",
		"transport", cfg.Transport,
		"structure", cfg.Structure,
		"margin_pct", cfg.MarginPct,
		"generation", gen,
	)

	eng.background.Add(1)
	go func() {
		defer eng.background.Done()
		if _, err := eng.recompute(eng.baseCtx, passCtx, gen, cancel); err != nil && !errors.Is(err, ErrPassSuperseded) {
			eng.log.Error("recompute after config change failed", "error", err)
		}
	}()
	return nil
}

// Wait blocks until every background pass started by ApplyConfig returns.
func (eng *Engine) Wait() {
	eng.background.Wait()
}

// Recompute runs a full pricing pass and commits it. It cancels any pass
// already running. A pass that is itself superseded returns
// ErrPassSuperseded; the committed snapshot is then left untouched.
func (eng *Engine) Recompute(ctx context.Context) (*Snapshot, error) {
	gen, passCtx, cancel := eng.beginPass(ctx)
	return eng.recompute(ctx, passCtx, gen, cancel)
}

// beginPass registers a new pass generation and cancels the pass that was
// running. Both happen under one lock so the newest generation always owns
// the registered cancel func.
func (eng *Engine) beginPass(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	passCtx, cancel := context.WithCancel(ctx)

	eng.mu.Lock()
	defer eng.mu.Unlock()
	gen := eng.gen.Add(1)
	if eng.cancel != nil {
		eng.cancel()
	}
	eng.cancel = cancel
	eng.cancelGen = gen
	return gen, passCtx, cancel
}

func (eng *Engine) recompute(
	ctx context.Context,
	passCtx context.Context,
	gen uint64,
	cancel context.CancelFunc,
) (*Snapshot, error) {
	defer eng.releaseCancel(gen, cancel)

	passID := uuid.New()
	log := eng.log.With("pass_id", passID.String(), "generation", gen)

	passCtx, span := eng.tracer.Start(passCtx, "engine.Recompute", trace.WithAttributes(
		attribute.String("pass.id", passID.String()),
		attribute.Int64("pass.generation", int64(gen)), //nolint:gosec // generation counts passes
	))
	defer span.End()

	snap, err := eng.runPass(passCtx, gen, passID, log)
	if err != nil {
		outcome := "failed"
		if errors.Is(err, ErrPassSuperseded) {
			outcome = "superseded"
		}
		eng.countPass(ctx, outcome)
		span.SetStatus(codes.Error, err.Error())
		log.Info("pricing pass not committed", "outcome", outcome, "error", err)
		return nil, err
	}

	eng.countPass(ctx, "committed")
	span.SetAttributes(attribute.Int("pass.vehicles", len(snap.Results)))
	return snap, nil
}

func (eng *Engine) runPass(
	ctx context.Context,
	gen uint64,
	passID uuid.UUID,
	log *slog.Logger,
) (*Snapshot, error) {
	started := eng.now()
	cfg := eng.Config()

	vehicles, err := eng.store.ListVehicles(ctx, eng.vehicles)
	if err != nil {
		return nil, eng.passError(ctx, gen, fmt.Errorf("listing vehicles: %w", err))
	}

	stock, err := eng.store.ListAvailableStock(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, eng.passError(ctx, gen, ctx.Err())
		}
		// Without stock every profitable vehicle counts as not in stock.
		log.Warn("reading stock failed, continuing without stock", "error", err)
		metrics.StockFailuresTotal.Inc()
		stock = nil
	}

	comps, err := eng.retrieveAll(ctx, vehicles, cfg, log)
	if err != nil {
		return nil, eng.passError(ctx, gen, err)
	}

	today := eng.now()
	results := pricing.Evaluate(vehicles, comps, stock, cfg, today)
	snap := &Snapshot{
		PassID:      passID,
		Generation:  gen,
		Config:      cfg,
		Results:     results,
		Stats:       pricing.Aggregate(results),
		Board:       pricing.GroupOpportunities(results),
		StartedAt:   started,
		CompletedAt: eng.now(),
		stock:       pricing.IndexStock(stock),
	}

	fresh, err := eng.commit(gen, snap)
	if err != nil {
		return nil, err
	}

	metrics.PassDuration.Observe(snap.CompletedAt.Sub(started).Seconds())
	metrics.LastPassTimestamp.Set(float64(snap.CompletedAt.Unix()))
	syncSnapshotMetrics(snap)
	log.Info("pricing pass committed",
		"vehicles", len(results),
		"rentable", snap.Stats.Rentable,
		"opportunities", snap.Stats.Opportunities,
		"duration", snap.CompletedAt.Sub(started),
	)

	eng.notify(ctx, passID, fresh, log)
	return snap, nil
}

// retrieveAll fetches comparables for every vehicle, at most concurrency at a
// time. A failed retrieval degrades that vehicle to an empty set; only
// cancellation of the pass aborts it.
func (eng *Engine) retrieveAll(
	ctx context.Context,
	vehicles []domain.VehicleRecord,
	cfg pricing.Config,
	log *slog.Logger,
) (map[string]domain.Comparables, error) {
	found := make([]domain.Comparables, len(vehicles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(eng.concurrency)
	for i := range vehicles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v := &vehicles[i]

			qctx := gctx
			if eng.queryTimeout > 0 {
				var cancel context.CancelFunc
				qctx, cancel = context.WithTimeout(gctx, eng.queryTimeout)
				defer cancel()
			}

			c, err := eng.retriever.Retrieve(qctx, v, cfg)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Warn("comparable retrieval failed",
					"vehicle_id", v.ID,
					"model", v.Model,
					"error", err,
				)
				c = domain.Comparables{Strategy: retrieve.StrategyNone, Err: err.Error()}
			}
			found[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]domain.Comparables, len(vehicles))
	for i := range vehicles {
		out[vehicles[i].ID] = found[i]
	}
	return out, nil
}

// commit publishes snap if gen is still the newest pass and returns the
// opportunities that were not present in the previous snapshot.
func (eng *Engine) commit(gen uint64, snap *Snapshot) ([]domain.ValuationResult, error) {
	eng.commitMu.Lock()
	defer eng.commitMu.Unlock()

	if eng.gen.Load() != gen {
		return nil, ErrPassSuperseded
	}
	eng.snap.Store(snap)

	current := make(map[string]domain.OpportunityKind)
	var fresh []domain.ValuationResult
	for i := range snap.Results {
		r := &snap.Results[i]
		if r.Opportunity == domain.OpportunityNone {
			continue
		}
		current[r.VehicleID] = r.Opportunity
		if eng.notified[r.VehicleID] != r.Opportunity {
			fresh = append(fresh, *r)
		}
	}
	eng.notified = current
	return fresh, nil
}

func (eng *Engine) notify(ctx context.Context, passID uuid.UUID, fresh []domain.ValuationResult, log *slog.Logger) {
	if len(fresh) == 0 || eng.notifier == nil {
		return
	}
	payloads := make([]notify.OpportunityPayload, 0, len(fresh))
	for i := range fresh {
		payloads = append(payloads, notify.NewOpportunityPayload(&fresh[i]))
	}
	if err := eng.notifier.SendBatchOpportunities(ctx, payloads, passID.String()); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		log.Error("sending opportunity notifications", "count", len(payloads), "error", err)
		return
	}
	metrics.NotificationsSentTotal.Add(float64(len(payloads)))
}

// passError turns a failure of a pass that was cancelled because a newer
// pass started into ErrPassSuperseded.
func (eng *Engine) passError(ctx context.Context, gen uint64, err error) error {
	if eng.gen.Load() != gen && ctx.Err() != nil {
		return ErrPassSuperseded
	}
	return err
}

func (eng *Engine) releaseCancel(gen uint64, cancel context.CancelFunc) {
	eng.mu.Lock()
	if eng.cancelGen == gen {
		eng.cancel = nil
	}
	eng.mu.Unlock()
	cancel()
}

func (eng *Engine) countPass(ctx context.Context, outcome string) {
	metrics.PassesTotal.WithLabelValues(outcome).Inc()
	if eng.passCounter != nil {
		eng.passCounter.Add(ctx, 1, otelmetric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func syncSnapshotMetrics(s *Snapshot) {
	metrics.VehiclesByTag.WithLabelValues(string(domain.TagRentable)).Set(float64(s.Stats.Rentable))
	metrics.VehiclesByTag.WithLabelValues(string(domain.TagNoRentable)).Set(float64(s.Stats.NoRentable))
	metrics.VehiclesByTag.WithLabelValues(string(domain.TagNoInteresante)).Set(float64(s.Stats.NoInteresante))
	metrics.VehiclesByTag.WithLabelValues(string(domain.TagSinDatos)).Set(float64(s.Stats.SinDatos))

	var notInStock, cheaper int
	for _, rs := range s.Board.NotInStock {
		notInStock += len(rs)
	}
	for _, rs := range s.Board.InStock {
		cheaper += len(rs)
	}
	metrics.Opportunities.WithLabelValues(string(domain.OpportunityNotInStock)).Set(float64(notInStock))
	metrics.Opportunities.WithLabelValues(string(domain.OpportunityCheaper)).Set(float64(cheaper))
}
