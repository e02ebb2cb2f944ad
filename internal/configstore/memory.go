package configstore

import (
	"context"
	"sync"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

// MemoryStore keeps the configuration in process memory. It is the backend
// used when nothing should survive a restart.
type MemoryStore struct {
	mu  sync.RWMutex
	cfg *pricing.Config
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the saved configuration or ErrNotFound.
func (m *MemoryStore) Load(_ context.Context) (pricing.Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cfg == nil {
		return pricing.Config{}, ErrNotFound
	}
	return clone(*m.cfg), nil
}

// Save validates and stores cfg.
func (m *MemoryStore) Save(_ context.Context, cfg pricing.Config) error {
	if err := validate(cfg); err != nil {
		return err
	}
	c := clone(cfg)
	m.mu.Lock()
	m.cfg = &c
	m.mu.Unlock()
	return nil
}

// clone copies the only reference field so callers cannot alias the stored
// snapshot.
func clone(cfg pricing.Config) pricing.Config {
	if cfg.ExcludedAdvertisers != nil {
		cfg.ExcludedAdvertisers = append([]string(nil), cfg.ExcludedAdvertisers...)
	}
	return cfg
}
