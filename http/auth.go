package http

import (
	"log/slog"

	"github.com/kestrelworks/gatehouse"
	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the caller's API key.
const APIKeyHeader = "X-Api-Key"

// RequireAuth resolves the X-Api-Key header to a user and attaches it to
// the request context. Requests without a valid key get a 401.
func (s *Server) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := s.getRequestLogger(c)

			key := c.Request().Header.Get(APIKeyHeader)
			if key == "" {
				logger.Debug("api key required but not provided")
				return gatehouse.Unauthorized("API key required")
			}

			user, err := s.userService.FindUserByAPIKey(c.Request().Context(), key)
			if err != nil {
				if gatehouse.IsErrorCode(err, gatehouse.ENOTFOUND) {
					logger.Debug("invalid api key")
					return gatehouse.Unauthorized("Invalid API key")
				}
				logger.Error("api key lookup failed", slog.String("error", err.Error()))
				return gatehouse.Internal("Failed to validate API key", err)
			}

			// Attach user to context
			ctx := gatehouse.NewContextWithUser(c.Request().Context(), user)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Set("user", user)

			return next(c)
		}
	}
}
