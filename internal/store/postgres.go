package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

const defaultPoolSize = 10

var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// maxConns <= 0 uses the default pool size.
func NewPostgresStore(ctx context.Context, connString string, maxConns int32) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// QueryListings returns the competitor listings matching q.
func (s *PostgresStore) QueryListings(
	ctx context.Context,
	q *ListingQuery,
) ([]domain.CompetitorListing, error) {
	query, args := q.ToSQL()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.CompetitorListing
	for rows.Next() {
		var l domain.CompetitorListing
		if err := scanListing(rows, &l); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}

	return listings, rows.Err()
}

// ListAvailableStock returns stock units that are available or being
// prepared for sale.
func (s *PostgresStore) ListAvailableStock(ctx context.Context) ([]domain.StockEntry, error) {
	rows, err := s.pool.Query(ctx, queryListAvailableStock, StockAvailable, StockPreparing)
	if err != nil {
		return nil, fmt.Errorf("querying stock: %w", err)
	}
	defer rows.Close()

	var stock []domain.StockEntry
	for rows.Next() {
		var e domain.StockEntry
		if err := rows.Scan(&e.Model, &e.Brand, &e.RecommendedSalePrice); err != nil {
			return nil, fmt.Errorf("scanning stock: %w", err)
		}
		stock = append(stock, e)
	}

	return stock, rows.Err()
}

// ListVehicles returns the vehicles matching q, ordered by ID.
func (s *PostgresStore) ListVehicles(
	ctx context.Context,
	q *VehicleQuery,
) ([]domain.VehicleRecord, error) {
	if q == nil {
		q = &VehicleQuery{}
	}
	query, args := q.ToSQL()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []domain.VehicleRecord
	for rows.Next() {
		var v domain.VehicleRecord
		if err := scanVehicle(rows, &v); err != nil {
			return nil, fmt.Errorf("scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, rows.Err()
}

// GetVehicle returns one vehicle by ID, or ErrNotFound.
func (s *PostgresStore) GetVehicle(ctx context.Context, id string) (*domain.VehicleRecord, error) {
	v := &domain.VehicleRecord{}
	err := scanVehicle(s.pool.QueryRow(ctx, queryGetVehicle, id), v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting vehicle %s: %w", id, err)
	}
	return v, nil
}

// UpsertVehicle inserts or replaces a vehicle. Used by fixtures and tests;
// production rows come from the import process.
func (s *PostgresStore) UpsertVehicle(ctx context.Context, v *domain.VehicleRecord) error {
	_, err := s.pool.Exec(ctx, queryUpsertVehicle, pgx.NamedArgs{
		"id":                v.ID,
		"license_plate":     v.LicensePlate,
		"brand":             v.Brand,
		"model":             v.Model,
		"series":            v.Series,
		"registration_date": v.RegistrationDate,
		"mileage":           v.Mileage,
		"net_source_price":  v.NetSourcePrice,
		"damage_cost":       v.DamageCost,
		"new_price":         v.NewPrice,
		"tax_regime":        v.TaxRegime,
		"lot":               v.Lot,
	})
	if err != nil {
		return fmt.Errorf("upserting vehicle %s: %w", v.ID, err)
	}
	return nil
}

// InsertListing stores a competitor listing and sets its ID.
func (s *PostgresStore) InsertListing(ctx context.Context, l *domain.CompetitorListing) error {
	return s.pool.QueryRow(ctx, queryInsertListing, pgx.NamedArgs{
		"source":             l.Source,
		"model":              l.Model,
		"brand":              l.Brand,
		"price":              l.PriceRaw,
		"km":                 l.MileageRaw,
		"model_year":         l.ModelYear,
		"first_registration": l.FirstRegistration,
		"status":             string(l.Status),
		"first_detected_at":  l.FirstDetectedAt,
		"price_drops":        l.PriceDrops,
		"price_drop_total":   l.PriceDropTotal,
		"advertiser":         l.Advertiser,
		"url":                l.URL,
	}).Scan(&l.ID)
}

// InsertStock stores a stock unit in the given state.
func (s *PostgresStore) InsertStock(ctx context.Context, e *domain.StockEntry, plate, state string) error {
	_, err := s.pool.Exec(ctx, queryInsertStock, pgx.NamedArgs{
		"license_plate":          plate,
		"model":                  e.Model,
		"brand":                  e.Brand,
		"state":                  state,
		"recommended_sale_price": e.RecommendedSalePrice,
	})
	if err != nil {
		return fmt.Errorf("inserting stock %s: %w", plate, err)
	}
	return nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanListing(row scannable, l *domain.CompetitorListing) error {
	return row.Scan(
		&l.ID, &l.Source, &l.Model, &l.Brand,
		&l.PriceRaw, &l.MileageRaw, &l.ModelYear, &l.FirstRegistration,
		&l.Status, &l.FirstDetectedAt, &l.PriceDrops, &l.PriceDropTotal,
		&l.Advertiser, &l.URL,
	)
}

func scanVehicle(row scannable, v *domain.VehicleRecord) error {
	return row.Scan(
		&v.ID, &v.LicensePlate, &v.Brand, &v.Model,
		&v.Series, &v.RegistrationDate, &v.Mileage,
		&v.NetSourcePrice, &v.DamageCost, &v.NewPrice,
		&v.TaxRegime, &v.Lot,
	)
}
