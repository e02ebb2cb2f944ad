// Package main loads canned vehicles, competitor listings and stock into
// the pricing engine database for local development. The engine never
// writes these tables itself; in production they are filled by the import
// and scraping processes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jviciana84/prod-sub002/internal/config"
	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/fields"
	"github.com/jviciana84/prod-sub002/pkg/logger"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// fixture is the on-disk seed format.
type fixture struct {
	Vehicles []domain.VehicleRecord `json:"vehicles"`
	Listings []listingRow           `json:"listings"`
	Stock    []stockUnit            `json:"stock"`
}

// listingRow is a listing as the scrapers export it. Year holds the
// advertised year text ("2021", "2021-03-02" or "02/03/2021") and fills
// model_year when that is absent.
type listingRow struct {
	domain.CompetitorListing
	Year string `json:"year,omitempty"`
}

type stockUnit struct {
	domain.StockEntry
	LicensePlate string `json:"license_plate"`
	State        string `json:"state"`
}

// seeder is the subset of the store the seed writes through.
type seeder interface {
	UpsertVehicle(ctx context.Context, v *domain.VehicleRecord) error
	InsertListing(ctx context.Context, l *domain.CompetitorListing) error
	InsertStock(ctx context.Context, e *domain.StockEntry, plate, state string) error
}

func main() {
	cfgFile := flag.String("config", "config.yaml", "config file path")
	fixtureFile := flag.String("fixture", "tools/seed/testdata/fixtures.json", "path to the seed fixture")
	migrate := flag.Bool("migrate", true, "run migrations before seeding")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		log.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), 2)
	if err != nil {
		log.Error("connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if *migrate {
		if err := db.Migrate(ctx); err != nil {
			log.Error("running migrations", "error", err)
			os.Exit(1)
		}
	}

	if err := seed(ctx, db, fx, log); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	for i := range fx.Listings {
		l := &fx.Listings[i]
		if l.ModelYear != nil || l.Year == "" {
			continue
		}
		year, ok := fields.ParseYear(l.Year)
		if !ok {
			return nil, fmt.Errorf("listing %d (%s): unreadable year %q", i, l.Model, l.Year)
		}
		l.ModelYear = &year
	}
	for i := range fx.Stock {
		if fx.Stock[i].State == "" {
			fx.Stock[i].State = store.StockAvailable
		}
	}
	return &fx, nil
}

func seed(ctx context.Context, s seeder, fx *fixture, log *slog.Logger) error {
	for i := range fx.Vehicles {
		if err := s.UpsertVehicle(ctx, &fx.Vehicles[i]); err != nil {
			return err
		}
	}
	for i := range fx.Listings {
		if err := s.InsertListing(ctx, &fx.Listings[i].CompetitorListing); err != nil {
			return fmt.Errorf("inserting listing %q: %w", fx.Listings[i].Model, err)
		}
	}
	for i := range fx.Stock {
		u := &fx.Stock[i]
		if err := s.InsertStock(ctx, &u.StockEntry, u.LicensePlate, u.State); err != nil {
			return err
		}
	}

	log.Info("seeded",
		"vehicles", len(fx.Vehicles),
		"listings", len(fx.Listings),
		"stock", len(fx.Stock),
	)
	return nil
}
