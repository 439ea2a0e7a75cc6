package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all routes for the server.
// All routes are defined in this single file for easy navigation.
func (s *Server) registerRoutes() {
	// Health check routes (public)
	s.echo.GET("/health", s.handleHealthCheck)
	s.echo.GET("/health/live", s.handleLivenessCheck)
	s.echo.GET("/health/ready", s.handleReadinessCheck)

	// Prometheus metrics (public)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Protected routes (require an API key)
	protected := s.echo.Group("/api")
	protected.Use(s.RequireAuth())

	// Uploads
	protected.POST("/uploads", s.handleCreateUpload)
	protected.GET("/uploads", s.handleListUploads)
	protected.GET("/uploads/:id", s.handleGetUpload)
	protected.DELETE("/uploads/:id", s.handleDeleteUpload)

	// Users (staff only)
	protected.POST("/users", s.handleCreateUser)

	// Site upload policy
	protected.GET("/site/upload-settings", s.handleUploadSettings)
}
