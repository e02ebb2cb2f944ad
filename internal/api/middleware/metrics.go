// Package middleware provides the Echo middleware in front of the pricing
// engine API: request IDs and logging, panic recovery and HTTP metrics.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jviciana84/prod-sub002/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, so scanners
// probing arbitrary URLs cannot grow the label set.
const unmatchedRoute = "unmatched"

// probeGauges maps the probe routes to their up gauges. Probes flip the
// gauge instead of feeding the request histogram.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
}

// unrecordedRoutes are neither API traffic nor probes.
var unrecordedRoutes = map[string]struct{}{
	"/metrics":              {},
	"/swagger":              {},
	"/swagger/":             {},
	"/swagger/index.html":   {},
	"/swagger/swagger.json": {},
	"/swagger/swagger.yaml": {},
}

// Metrics records the duration and status of every API request. Requests are
// labelled by route template, so /api/v1/valuations/V-1001 is counted under
// /api/v1/valuations/:vehicleID.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := routeLabel(c, err)
			status := responseStatus(c, err)

			if gauge, ok := probeGauges[route]; ok {
				if status >= 200 && status < 300 {
					gauge.Set(1)
				} else {
					gauge.Set(0)
				}
				return err
			}
			if _, ok := unrecordedRoutes[route]; ok {
				return err
			}

			method := c.Request().Method
			code := strconv.Itoa(status)
			metrics.HTTPRequestDuration.WithLabelValues(method, route, code).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
			return err
		}
	}
}

func routeLabel(c echo.Context, err error) string {
	route := c.Path()
	if route == "" || errors.Is(err, echo.ErrNotFound) {
		return unmatchedRoute
	}
	return route
}

// responseStatus returns the status the client receives. A handler error is
// only turned into a response by Echo's error handler, after the middleware
// chain has returned, so its status is read from the error.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
