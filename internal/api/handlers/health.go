// Package handlers implements HTTP handlers for the pricing engine API.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jviciana84/prod-sub002/internal/engine"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether the vehicles and listings database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SnapshotSource exposes the last committed pricing pass.
type SnapshotSource interface {
	Snapshot() (*engine.Snapshot, error)
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db    Pinger
	snaps SnapshotSource
}

// NewHealthHandler creates a HealthHandler. snaps may be nil.
func NewHealthHandler(db Pinger, snaps SnapshotSource) *HealthHandler {
	return &HealthHandler{db: db, snaps: snaps}
}

// Healthz returns 200 while the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readyz returns 200 when the database answers within readinessTimeout and
// 503 otherwise. Valuations can be recomputed and quotes priced before any
// pass has committed, so a missing snapshot is reported but not gated on.
func (h *HealthHandler) Readyz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	resp := ReadinessResponse{Status: "ready", Checks: map[string]string{"database": "ok"}}
	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "unavailable"
		resp.Checks["database"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if h.snaps != nil {
		if snap, err := h.snaps.Snapshot(); err == nil {
			resp.LastPass = &ReadinessPassSummary{
				PassID:      snap.PassID.String(),
				Generation:  snap.Generation,
				CompletedAt: snap.CompletedAt,
				Vehicles:    len(snap.Results),
			}
		}
	}

	return c.JSON(status, resp)
}

// RegisterHealthRoutes mounts the probes directly on Echo so they stay out
// of the OpenAPI document.
func RegisterHealthRoutes(e *echo.Echo, h *HealthHandler) {
	e.GET("/healthz", h.Healthz)
	e.GET("/readyz", h.Readyz)
}
