package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jviciana84/prod-sub002/internal/api/handlers"
	"github.com/jviciana84/prod-sub002/internal/configstore"
	"github.com/jviciana84/prod-sub002/pkg/pricing"
)

func TestGetConfig(t *testing.T) {
	t.Parallel()

	eng := newFakeEngine()
	eng.cfg.Transport = 300
	eng.cfg.ExcludedAdvertisers = []string{"Quadis"}

	_, api := humatest.New(t)
	handlers.RegisterConfigRoutes(api, handlers.NewConfigHandler(eng))

	resp := api.Get("/api/v1/config")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"transport":300`)
	assert.Contains(t, resp.Body.String(), `"undercut_pct":2`)
	assert.Contains(t, resp.Body.String(), `"excluded_advertisers":["Quadis"]`)
}

func TestApplyConfig(t *testing.T) {
	t.Parallel()

	valid := pricing.DefaultConfig()
	valid.Transport = 300
	valid.Structure = 200
	valid.MarginPct = 5

	tests := []struct {
		name       string
		body       any
		applyErr   error
		wantStatus int
		wantBody   string
		wantCalls  int
	}{
		{
			name:       "valid config is applied",
			body:       valid,
			wantStatus: http.StatusAccepted,
			wantBody:   `"status":"recompute started"`,
			wantCalls:  1,
		},
		{
			name:       "engine validation error returns 422",
			body:       valid,
			applyErr:   fmt.Errorf("%w: %w", configstore.ErrInvalid, errors.New("transport must be a non-negative number, got -1")),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "transport must be a non-negative number",
			wantCalls:  1,
		},
		{
			name:       "persistence failure returns 500",
			body:       valid,
			applyErr:   errors.New("saving pricing config: disk full"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "disk full",
			wantCalls:  1,
		},
		{
			name:       "wrong field type is rejected before the engine",
			body:       map[string]any{"transport": "lots"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eng := newFakeEngine()
			eng.applyErr = tt.applyErr

			_, api := humatest.New(t)
			handlers.RegisterConfigRoutes(api, handlers.NewConfigHandler(eng))

			resp := api.Put("/api/v1/config", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
			assert.Len(t, eng.applied, tt.wantCalls)

			if tt.wantStatus == http.StatusAccepted {
				assert.Equal(t, valid, eng.Config())
				assert.Contains(t, resp.Body.String(), `"margin_pct":5`)
			}
		})
	}
}
