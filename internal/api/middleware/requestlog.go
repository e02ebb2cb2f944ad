package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID returns the ID RequestLog assigned to the request, or the
// client's X-Request-ID header when RequestLog has not run.
func RequestID(c echo.Context) string {
	if id, ok := c.Get(requestIDKey).(string); ok && id != "" {
		return id
	}
	return c.Request().Header.Get(requestIDHeader)
}

// probePaths are polled by orchestrators. Only their first success and every
// failure are logged.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// maxRequestIDLen bounds client-supplied request IDs before they reach the
// logs and the response header.
const maxRequestIDLen = 128

// RequestLog assigns every request an ID and logs it once handled. A
// client's X-Request-ID is kept when it is short and printable. Server
// errors log at ERROR and client errors at WARN. Probes log only their first
// success and every failure.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var mu sync.Mutex
	probesSeen := make(map[string]bool)

	firstProbeSuccess := func(path string) bool {
		mu.Lock()
		defer mu.Unlock()
		if probesSeen[path] {
			return false
		}
		probesSeen[path] = true
		return true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if !validRequestID(reqID) {
				reqID = uuid.NewString()
			}
			c.Set(requestIDKey, reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := responseStatus(c, err)
			attrs := []any{
				"method", c.Request().Method,
				"route", c.Path(),
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			}

			success := status >= 200 && status < 400
			if _, probe := probePaths[path]; probe {
				switch {
				case !success:
					log.Warn("request", attrs...)
				case firstProbeSuccess(path):
					log.Info("request", attrs...)
				}
				return err
			}

			switch {
			case status >= 500:
				if err != nil {
					attrs = append(attrs, "error", err)
				}
				log.Error("request", attrs...)
			case status >= 400:
				log.Warn("request", attrs...)
			default:
				log.Info("request", attrs...)
			}
			return err
		}
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for _, r := range id {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
