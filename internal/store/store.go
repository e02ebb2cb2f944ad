// Package store defines the read side of the data the pricing engine works
// on: vehicles under evaluation, competitor listings and our own stock. The
// rows are written by external import and scraping processes; the engine
// only reads them.
//
// Business logic depends on the interfaces here, never on PostgresStore, so
// it can be tested against mocks.
package store

import (
	"context"
	"errors"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
	domain "github.com/jviciana84/prod-sub002/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Stock states as written by the dealer management system.
const (
	StockAvailable = "disponible"
	StockPreparing = "en_preparacion"
	StockSold      = "vendido"
)

// ListingQuery filters competitor listings. Zero values disable a filter.
type ListingQuery struct {
	// ModelContains is matched case-insensitively anywhere in the model text.
	ModelContains string
	Statuses      []domain.ListingStatus
	Years         *pricing.Range
	Km            *pricing.Range
	Limit         int // default 200
}

// VehicleQuery filters the vehicles to evaluate.
type VehicleQuery struct {
	Lot   *string
	Brand *string
	Limit int // default 1000
}

// ListingStore reads competitor listings. An empty result is not an error.
type ListingStore interface {
	QueryListings(ctx context.Context, q *ListingQuery) ([]domain.CompetitorListing, error)
}

// InventoryStore reads our own stock.
type InventoryStore interface {
	// ListAvailableStock returns units that are for sale or being prepared.
	ListAvailableStock(ctx context.Context) ([]domain.StockEntry, error)
}

// VehicleStore reads vehicles owned or under evaluation.
type VehicleStore interface {
	ListVehicles(ctx context.Context, q *VehicleQuery) ([]domain.VehicleRecord, error)
	GetVehicle(ctx context.Context, id string) (*domain.VehicleRecord, error)
}

// Store is everything the engine needs from the database.
type Store interface {
	ListingStore
	InventoryStore
	VehicleStore

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
