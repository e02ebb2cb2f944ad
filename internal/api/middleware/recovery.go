package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/danielgtaylor/huma/v2"
	"github.com/labstack/echo/v4"
)

const problemContentType = "application/problem+json"

// Recovery turns a panicking handler into a 500 problem response, the same
// error shape every API operation returns. The stack is logged with the
// request ID assigned by RequestLog so the failure can be matched to the
// client's report.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				buf := make([]byte, 8192)
				n := runtime.Stack(buf, false)
				reqID := RequestID(c)

				log.Error("handler panicked",
					"panic", fmt.Sprint(r),
					"method", c.Request().Method,
					"route", c.Path(),
					"path", c.Request().URL.Path,
					"request_id", reqID,
					"stack", string(buf[:n]),
				)

				// Part of the body may already be on the wire.
				if c.Response().Committed {
					err = nil
					return
				}

				problem := &huma.ErrorModel{
					Title:    http.StatusText(http.StatusInternalServerError),
					Status:   http.StatusInternalServerError,
					Detail:   "the pricing engine failed while handling the request",
					Instance: reqID,
				}
				c.Response().Header().Set(echo.HeaderContentType, problemContentType)
				err = c.JSON(http.StatusInternalServerError, problem)
			}()
			return next(c)
		}
	}
}
