package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jviciana84/prod-sub002/api/openapi"
	"github.com/jviciana84/prod-sub002/internal/api/handlers"
	"github.com/jviciana84/prod-sub002/internal/api/middleware"
	"github.com/jviciana84/prod-sub002/internal/config"
	"github.com/jviciana84/prod-sub002/internal/engine"
	"github.com/jviciana84/prod-sub002/internal/telemetry"
	"github.com/jviciana84/prod-sub002/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Options{
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: Version,
		SampleRatio:    cfg.Telemetry.SampleRatio,
		MetricInterval: cfg.Telemetry.MetricInterval,
	})
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	a, err := newApp(ctx, cfg, log, appOptions{notify: true, baseCtx: ctx})
	if err != nil {
		return err
	}

	var sched *engine.Scheduler
	if cfg.Schedule.RecomputeInterval > 0 {
		sched, err = engine.NewScheduler(a.engine, cfg.Schedule.RecomputeInterval, logger.Component(log, "scheduler"))
		if err != nil {
			_ = a.Close()
			return fmt.Errorf("creating scheduler: %w", err)
		}
		sched.Start()
	}

	if cfg.Schedule.RecomputeOnStart {
		go func() {
			if _, err := a.engine.Recompute(ctx); err != nil && !errors.Is(err, engine.ErrPassSuperseded) {
				log.Error("initial pricing pass failed", "error", err)
			}
		}()
	}

	e := newServer(cfg, log, a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down server")
	case err := <-errCh:
		log.Error("server error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := e.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down server: %w", err))
	}
	if sched != nil {
		<-sched.Stop().Done()
	}
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutting down telemetry: %w", err))
	}

	log.Info("server stopped")
	return errors.Join(errs...)
}

// newServer builds the Echo server with probes, metrics, the OpenAPI
// document and every API route.
func newServer(cfg *config.Config, log *slog.Logger, a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(
		middleware.RequestLog(logger.Component(log, "http")),
		middleware.Recovery(logger.Component(log, "http")),
		middleware.Metrics(),
	)

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(a.store, a.engine))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Pricing Engine API", Version))
	handlers.RegisterConfigRoutes(api, handlers.NewConfigHandler(a.engine))
	handlers.RegisterValuationRoutes(api, handlers.NewValuationsHandler(a.engine))
	handlers.RegisterVehicleRoutes(api, handlers.NewVehiclesHandler(a.engine))
	openapi.RegisterRoutes(e, api)

	return e
}
