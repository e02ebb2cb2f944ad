package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jviciana84/prod-sub002/internal/config"
	"github.com/jviciana84/prod-sub002/internal/configstore"
	"github.com/jviciana84/prod-sub002/internal/engine"
	"github.com/jviciana84/prod-sub002/internal/notify"
	"github.com/jviciana84/prod-sub002/internal/retrieve"
	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/logger"
)

// app holds the components shared by serve and evaluate.
type app struct {
	store   *store.PostgresStore
	configs configstore.Store
	engine  *engine.Engine

	closeConfigs func() error
}

type appOptions struct {
	notify   bool
	vehicles *store.VehicleQuery
	baseCtx  context.Context
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, opts appOptions) (*app, error) {
	db, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), int32(cfg.Database.PoolSize)) //nolint:gosec // pool size is validated
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	configs, closeConfigs, err := configstore.Open(ctx, configstore.Options{
		Backend:       cfg.PricingStore.Backend,
		SQLitePath:    cfg.PricingStore.SQLite.Path,
		RedisAddr:     cfg.PricingStore.Redis.Addr,
		RedisPassword: cfg.PricingStore.Redis.Password,
		RedisDB:       cfg.PricingStore.Redis.DB,
		Key:           cfg.PricingStore.Key,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("opening pricing store: %w", err)
	}

	pricingCfg, err := configstore.LoadOrDefault(ctx, configs, cfg.Pricing)
	if err != nil {
		_ = closeConfigs()
		db.Close()
		return nil, fmt.Errorf("loading pricing configuration: %w", err)
	}

	retriever := retrieve.New(db,
		retrieve.WithLogger(logger.Component(log, "retrieve")),
		retrieve.WithRateLimit(cfg.Listings.RateLimit.PerSecond, cfg.Listings.RateLimit.Burst),
		retrieve.WithQueryLimit(cfg.Listings.QueryLimit),
	)

	engOpts := []engine.EngineOption{
		engine.WithLogger(logger.Component(log, "engine")),
		engine.WithConcurrency(cfg.Listings.Concurrency),
		engine.WithQueryTimeout(cfg.Listings.QueryTimeout),
	}
	if opts.vehicles != nil {
		engOpts = append(engOpts, engine.WithVehicleQuery(opts.vehicles))
	}
	if opts.baseCtx != nil {
		engOpts = append(engOpts, engine.WithBaseContext(opts.baseCtx))
	}

	eng := engine.NewEngine(db, retriever, configs, newNotifier(cfg, log, opts.notify), pricingCfg, engOpts...)

	return &app{
		store:        db,
		configs:      configs,
		engine:       eng,
		closeConfigs: closeConfigs,
	}, nil
}

func newNotifier(cfg *config.Config, log *slog.Logger, enabled bool) notify.Notifier {
	d := cfg.Notifications.Discord
	if enabled && d.Enabled && d.WebhookURL != "" {
		return notify.NewDiscordNotifier(d.WebhookURL)
	}
	return notify.NewNoOpNotifier(logger.Component(log, "notify"))
}

// Close waits for background passes and releases the stores.
func (a *app) Close() error {
	a.engine.Wait()
	defer a.store.Close()
	if err := a.closeConfigs(); err != nil {
		return fmt.Errorf("closing pricing store: %w", err)
	}
	return nil
}
