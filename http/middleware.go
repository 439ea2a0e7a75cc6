package http

import (
	"log/slog"
	"net/http"
	"time"

	imw "github.com/kestrelworks/gatehouse/internal/middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultTimeout bounds database operations inside handlers.
const DefaultTimeout = 5 * time.Second

// registerMiddleware sets up all middleware for the server.
func (s *Server) registerMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Request ID + request-scoped logger
	s.echo.Use(imw.RequestID(s.logger))

	// Prometheus request metrics
	s.echo.Use(imw.MetricsMiddleware())

	// CORS middleware (configure as needed)
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Api-Key"},
	}))

	// Custom error handler
	s.echo.HTTPErrorHandler = s.httpErrorHandler
}

// httpErrorHandler handles errors and returns appropriate responses.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Check if it's an Echo HTTP error
	if he, ok := err.(*echo.HTTPError); ok {
		_ = c.JSON(he.Code, map[string]any{"error": he.Message})
		return
	}

	// Handle domain errors
	_ = HandleError(c, s.logger, err)
}

// getRequestLogger retrieves the request-scoped logger from context.
func (s *Server) getRequestLogger(c echo.Context) *slog.Logger {
	if logger, ok := c.Get("logger").(*slog.Logger); ok {
		return logger
	}
	return s.logger
}
