package configstore

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	SQLitePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Key string
}

// Open returns the configured backend and a function that releases it.
func Open(ctx context.Context, opts Options) (Store, func() error, error) {
	noop := func() error { return nil }

	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendSQLite:
		s, err := OpenSQLite(ctx, opts.SQLitePath, opts.Key)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	case BackendRedis:
		s, err := NewRedisStore(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Key:      opts.Key,
		})
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown pricing store backend %q", opts.Backend)
	}
}
