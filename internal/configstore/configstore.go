// Package configstore persists the dealer's PricingConfig between sessions.
//
// Every backend validates at its boundary: Save refuses an invalid
// configuration and Load refuses to hand one back, so an invalid snapshot
// never reaches a pricing pass.
package configstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

// DefaultKey is the key the configuration is stored under.
const DefaultKey = "excel_comparador_config"

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("pricing config not found")

// ErrInvalid wraps validation failures at the store boundary.
var ErrInvalid = errors.New("invalid pricing config")

// Store loads and saves the pricing configuration.
type Store interface {
	Load(ctx context.Context) (pricing.Config, error)
	Save(ctx context.Context, cfg pricing.Config) error
}

// LoadOrDefault loads the stored configuration, falling back to def when
// nothing has been saved.
func LoadOrDefault(ctx context.Context, s Store, def pricing.Config) (pricing.Config, error) {
	cfg, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	return cfg, err
}

func validate(cfg pricing.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func encode(cfg pricing.Config) ([]byte, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding pricing config: %w", err)
	}
	return b, nil
}

// decode starts from the defaults so fields added after the value was saved
// keep sensible values.
func decode(b []byte) (pricing.Config, error) {
	cfg := pricing.DefaultConfig()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return pricing.Config{}, fmt.Errorf("%w: decoding: %w", ErrInvalid, err)
	}
	if err := validate(cfg); err != nil {
		return pricing.Config{}, err
	}
	return cfg, nil
}
