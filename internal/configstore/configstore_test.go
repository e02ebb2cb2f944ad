package configstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

func customConfig() pricing.Config {
	cfg := pricing.DefaultConfig()
	cfg.Transport = 300
	cfg.Structure = 200
	cfg.MarginPct = 5
	cfg.ExcludedAdvertisers = []string{"Quadis"}
	return cfg
}

func invalidConfig() pricing.Config {
	cfg := pricing.DefaultConfig()
	cfg.KmWindow = -1
	return cfg
}

func openSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "pricing.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// backends returns every backend that runs without external services.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": openSQLite(t),
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Load(context.Background())
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, customConfig()))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, customConfig(), got)

			updated := customConfig()
			updated.Transport = 450
			require.NoError(t, s.Save(ctx, updated))

			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.InDelta(t, 450.0, got.Transport, 1e-9)
		})
	}
}

func TestStore_SaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Save(ctx, customConfig()))

			err := s.Save(ctx, invalidConfig())
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), "km_window")

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, customConfig(), got, "previous value survives a rejected save")
		})
	}
}

func TestMemoryStore_NoAliasing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	cfg := customConfig()
	require.NoError(t, s.Save(ctx, cfg))

	cfg.ExcludedAdvertisers[0] = "mutated"
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quadis"}, got.ExcludedAdvertisers)

	got.ExcludedAdvertisers[0] = "mutated again"
	again, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quadis"}, again.ExcludedAdvertisers)
}

func TestSQLiteStore_RejectsCorruptValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openSQLite(t)

	_, err := s.db.ExecContext(ctx, "INSERT INTO config (key, value) VALUES (?, ?)", DefaultKey, `{"km_window": -5}`)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pricing.db")

	first, err := OpenSQLite(ctx, path, "dealer-a")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, customConfig()))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path, "dealer-a")
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	got, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, customConfig(), got)

	other, err := OpenSQLite(ctx, path, "dealer-b")
	require.NoError(t, err)
	t.Cleanup(func() { _ = other.Close() })
	_, err = other.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDecode_FillsMissingFieldsFromDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := decode([]byte(`{"transport": 250, "structure": 100, "margin_pct": 3}`))
	require.NoError(t, err)
	assert.InDelta(t, 250.0, cfg.Transport, 1e-9)
	assert.Equal(t, pricing.DefaultConfig().KmWindow, cfg.KmWindow)
	assert.Equal(t, pricing.DefaultConfig().Depreciation, cfg.Depreciation)

	_, err = decode([]byte(`not json`))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()

	got, err := LoadOrDefault(ctx, s, pricing.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, pricing.DefaultConfig(), got)

	require.NoError(t, s.Save(ctx, customConfig()))
	got, err = LoadOrDefault(ctx, s, pricing.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, customConfig(), got)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	s, closeFn, err := Open(ctx, Options{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	require.NoError(t, closeFn())

	s, closeFn, err = Open(ctx, Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "c.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, closeFn())

	_, _, err = Open(ctx, Options{Backend: "etcd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etcd")
}
