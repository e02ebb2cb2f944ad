// Package retrieve finds the competitor listings a vehicle is priced
// against. It normalizes the vehicle's model text into search terms, walks
// an ordered list of strategies against the listing store, and stops at the
// first term that returns anything.
package retrieve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jviciana84/prod-sub002/internal/metrics"
	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/fields"
	"github.com/jviciana84/prod-sub002/pkg/normalize"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

const tracerName = "github.com/jviciana84/prod-sub002/internal/retrieve"

// Retriever queries the listing store for a vehicle's comparables.
type Retriever struct {
	listings   store.ListingStore
	strategies []Strategy
	limiter    *rate.Limiter
	limit      int
	tracer     trace.Tracer
	log        *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Retriever) {
		r.log = l
	}
}

// WithRateLimit throttles store queries to perSecond with the given burst.
// A non-positive perSecond disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(r *Retriever) {
		if perSecond <= 0 {
			r.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), max(burst, 1))
	}
}

// WithStrategies replaces the default strategy list.
func WithStrategies(s []Strategy) Option {
	return func(r *Retriever) {
		r.strategies = s
	}
}

// WithQueryLimit caps the listings returned by one store query.
func WithQueryLimit(n int) Option {
	return func(r *Retriever) {
		r.limit = n
	}
}

// WithTracerProvider sets the provider spans are created from. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Retriever) {
		r.tracer = tp.Tracer(tracerName)
	}
}

// New creates a Retriever over the given listing store.
func New(listings store.ListingStore, opts ...Option) *Retriever {
	r := &Retriever{
		listings:   listings,
		strategies: DefaultStrategies(),
		limiter:    rate.NewLimiter(rate.Inf, 0),
		tracer:     otel.Tracer(tracerName),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns the comparables for v under cfg's tolerance windows.
// Running out of strategies is not an error: the result is empty with
// strategy "none". Store failures and context cancellation are returned.
func (r *Retriever) Retrieve(
	ctx context.Context,
	v *domain.VehicleRecord,
	cfg pricing.Config,
) (domain.Comparables, error) {
	ctx, span := r.tracer.Start(ctx, "retrieve.Retrieve", trace.WithAttributes(
		attribute.String("vehicle.id", v.ID),
		attribute.String("vehicle.model", v.Model),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	}()

	comps, err := r.retrieve(ctx, v, cfg)
	if err != nil {
		metrics.RetrievalErrorsTotal.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Comparables{}, err
	}

	metrics.RetrievalsTotal.WithLabelValues(comps.Strategy).Inc()
	span.SetAttributes(
		attribute.String("retrieve.strategy", comps.Strategy),
		attribute.String("retrieve.term", comps.Term),
		attribute.Int("retrieve.listings", len(comps.Listings)),
	)
	return comps, nil
}

func (r *Retriever) retrieve(
	ctx context.Context,
	v *domain.VehicleRecord,
	cfg pricing.Config,
) (domain.Comparables, error) {
	base := r.baseQuery(v, cfg)
	variants := normalize.Variants(v.Model, v.Brand)
	tried := make(map[string]bool)

	for _, s := range r.strategies {
		if !s.Applies(variants) {
			continue
		}
		for _, term := range s.Terms(variants) {
			key := strings.ToLower(strings.TrimSpace(term))
			if key == "" || tried[key] {
				continue
			}
			tried[key] = true

			q := base
			q.ModelContains = term
			listings, err := r.query(ctx, s.Name, &q)
			if err != nil {
				return domain.Comparables{}, fmt.Errorf("querying listings for %q (%s): %w", term, s.Name, err)
			}
			if len(listings) == 0 {
				continue
			}

			fields.NormalizeAll(listings)
			r.log.Debug("comparables found",
				"vehicle_id", v.ID,
				"strategy", s.Name,
				"term", term,
				"count", len(listings),
			)
			return domain.Comparables{Listings: listings, Strategy: s.Name, Term: term}, nil
		}
	}

	r.log.Debug("no comparables found", "vehicle_id", v.ID, "model", v.Model)
	return domain.Comparables{Strategy: StrategyNone}, nil
}

// baseQuery carries the filters shared by every term: comparable statuses
// plus the year and mileage windows when the vehicle has those values.
func (r *Retriever) baseQuery(v *domain.VehicleRecord, cfg pricing.Config) store.ListingQuery {
	q := store.ListingQuery{
		Statuses: domain.ComparableStatuses(),
		Limit:    r.limit,
	}
	if year, ok := v.RegistrationYear(); ok {
		years := cfg.YearRange(year)
		q.Years = &years
	}
	if v.Mileage != nil {
		km := cfg.KmRange(*v.Mileage)
		q.Km = &km
	}
	return q
}

func (r *Retriever) query(
	ctx context.Context,
	strategy string,
	q *store.ListingQuery,
) ([]domain.CompetitorListing, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}
	metrics.ListingQueriesTotal.WithLabelValues(strategy).Inc()
	return r.listings.QueryListings(ctx, q)
}
