//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jviciana84/prod-sub002/internal/store"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

func ptr[T any](v T) *T { return &v }

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("vpe_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, 4)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_MigrateIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_Vehicles(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	reg := time.Date(2022, time.June, 30, 0, 0, 0, 0, time.UTC)
	v := &domain.VehicleRecord{
		ID:               "veh-1",
		LicensePlate:     "1234LMN",
		Brand:            "BMW",
		Model:            "Serie 3 320d",
		RegistrationDate: &reg,
		Mileage:          ptr(42000),
		NetSourcePrice:   ptr(21500.0),
		TaxRegime:        "IVA",
		Lot:              "L-01",
	}
	require.NoError(t, s.UpsertVehicle(ctx, v))
	require.NoError(t, s.UpsertVehicle(ctx, &domain.VehicleRecord{ID: "veh-2", Model: "X1", Lot: "L-02"}))

	got, err := s.GetVehicle(ctx, "veh-1")
	require.NoError(t, err)
	assert.Equal(t, "Serie 3 320d", got.Model)
	require.NotNil(t, got.RegistrationDate)
	assert.True(t, reg.Equal(got.RegistrationDate.UTC()))
	require.NotNil(t, got.NetSourcePrice)
	assert.InDelta(t, 21500.0, *got.NetSourcePrice, 0.001)
	assert.Nil(t, got.DamageCost)
	assert.True(t, got.VATApplicable())

	_, err = s.GetVehicle(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.ListVehicles(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	lot, err := s.ListVehicles(ctx, &store.VehicleQuery{Lot: ptr("L-02")})
	require.NoError(t, err)
	require.Len(t, lot, 1)
	assert.Equal(t, "veh-2", lot[0].ID)
}

func TestPostgresStore_QueryListings(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	detected := time.Now().Add(-48 * time.Hour).Truncate(time.Microsecond)
	listings := []domain.CompetitorListing{
		{Model: "BMW Serie 3 320d", PriceRaw: "29.900 €", MileageRaw: "35.000 km", ModelYear: ptr(2022), Status: domain.StatusActive, FirstDetectedAt: &detected, Advertiser: "Autos A"},
		{Model: "BMW 320d Touring", PriceRaw: "27.500 €", MileageRaw: "61.000 km", ModelYear: ptr(2021), Status: domain.StatusPriceDropped, PriceDrops: 2, PriceDropTotal: 1500},
		{Model: "BMW 320d", PriceRaw: "31.000 €", MileageRaw: "10.000 km", ModelYear: ptr(2022), Status: domain.StatusPriceRaised},
		{Model: "BMW 320d", PriceRaw: "15.000 €", MileageRaw: "190.000 km", ModelYear: ptr(2016), Status: domain.StatusActive},
		{Model: "BMW 118i", PriceRaw: "19.000 €", MileageRaw: "20.000 km", ModelYear: ptr(2022), Status: domain.StatusNew},
	}
	for i := range listings {
		require.NoError(t, s.InsertListing(ctx, &listings[i]))
		assert.NotEmpty(t, listings[i].ID)
	}

	got, err := s.QueryListings(ctx, &store.ListingQuery{
		ModelContains: "320D",
		Statuses:      domain.ComparableStatuses(),
		Years:         &pricing.Range{Min: 2021, Max: 2023},
		Km:            &pricing.Range{Min: 5000, Max: 65000},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	models := []string{got[0].Model, got[1].Model}
	assert.ElementsMatch(t, []string{"BMW Serie 3 320d", "BMW 320d Touring"}, models)
	for _, l := range got {
		assert.NotEmpty(t, l.PriceRaw)
		assert.NotEqual(t, domain.StatusPriceRaised, l.Status)
	}

	none, err := s.QueryListings(ctx, &store.ListingQuery{ModelContains: "M135i"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostgresStore_ListAvailableStock(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	require.NoError(t, s.InsertStock(ctx, &domain.StockEntry{Model: "X1 sDrive18d", Brand: "BMW", RecommendedSalePrice: ptr(31000.0)}, "1111AAA", store.StockAvailable))
	require.NoError(t, s.InsertStock(ctx, &domain.StockEntry{Model: "X3 xDrive20d", Brand: "BMW"}, "2222BBB", store.StockPreparing))
	require.NoError(t, s.InsertStock(ctx, &domain.StockEntry{Model: "iX1", Brand: "BMW"}, "3333CCC", store.StockSold))

	stock, err := s.ListAvailableStock(ctx)
	require.NoError(t, err)
	require.Len(t, stock, 2)
	assert.Equal(t, "X1 sDrive18d", stock[0].Model)
	require.NotNil(t, stock[0].RecommendedSalePrice)
	assert.InDelta(t, 31000.0, *stock[0].RecommendedSalePrice, 0.001)
	assert.Nil(t, stock[1].RecommendedSalePrice)
}
