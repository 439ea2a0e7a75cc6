package middleware

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/kestrelworks/gatehouse"
	"github.com/labstack/echo/v4"
)

// RequestID assigns a unique ID to each request, exposes it via the
// X-Request-ID response header, and stores a request-scoped logger in the
// echo context under "logger".
func RequestID(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.New().String()

			c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			c.Set("request_id", requestID)
			c.Set("logger", logger.With(slog.String("request_id", requestID)))

			ctx := gatehouse.NewContextWithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// GetRequestID retrieves the request ID from the echo context.
func GetRequestID(c echo.Context) string {
	requestID, _ := c.Get("request_id").(string)
	return requestID
}
