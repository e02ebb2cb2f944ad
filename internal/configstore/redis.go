package configstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

// RedisStore keeps the configuration as a JSON string in Redis so several
// engine replicas share it.
type RedisStore struct {
	client *redis.Client
	key    string
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis %s: %w", opts.Addr, err)
	}
	return NewRedisStoreWithClient(client, opts.Key), nil
}

// NewRedisStoreWithClient wraps an existing client. An empty key uses
// DefaultKey.
func NewRedisStoreWithClient(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{client: client, key: key}
}

// Close closes the Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Load returns the saved configuration or ErrNotFound.
func (r *RedisStore) Load(ctx context.Context) (pricing.Config, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return pricing.Config{}, ErrNotFound
	}
	if err != nil {
		return pricing.Config{}, fmt.Errorf("reading config %s: %w", r.key, err)
	}
	return decode(b)
}

// Save validates and stores cfg without expiry.
func (r *RedisStore) Save(ctx context.Context, cfg pricing.Config) error {
	b, err := encode(cfg)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return fmt.Errorf("writing config %s: %w", r.key, err)
	}
	return nil
}
