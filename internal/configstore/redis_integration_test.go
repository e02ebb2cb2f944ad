//go:build integration

package configstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jviciana84/prod-sub002/internal/configstore"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

func setupRedis(t *testing.T) *configstore.RedisStore {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	s, err := configstore.NewRedisStore(ctx, configstore.RedisOptions{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
		Key:  "vpe:test:pricing",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func TestRedisStore_RoundTrip(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, configstore.ErrNotFound)

	cfg := pricing.DefaultConfig()
	cfg.Transport = 300
	cfg.MarginPct = 5
	require.NoError(t, s.Save(ctx, cfg))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestRedisStore_RejectsInvalid(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	cfg := pricing.DefaultConfig()
	cfg.Structure = -10
	err := s.Save(ctx, cfg)
	require.ErrorIs(t, err, configstore.ErrInvalid)

	_, err = s.Load(ctx)
	require.ErrorIs(t, err, configstore.ErrNotFound)
}
