package http

import (
	"context"
	"log/slog"
	"net"

	"github.com/kestrelworks/gatehouse"
	"github.com/kestrelworks/gatehouse/internal/validation"
	"github.com/labstack/echo/v4"
)

// Server represents the HTTP server with all its dependencies.
type Server struct {
	echo   *echo.Echo
	ln     net.Listener
	logger *slog.Logger

	// Configuration
	Addr   string
	Domain string

	// Site upload policy
	settings *gatehouse.SiteUploadSettings
	messages gatehouse.Messages

	// Staff may attach any file inside private messages when enabled.
	allowStaffAnyFileInPM bool

	// Domain services
	userService   gatehouse.UserService
	uploadService gatehouse.UploadService

	// External services
	fileStorage gatehouse.FileStorage
}

// Config holds the configuration for creating a new Server.
type Config struct {
	Addr   string
	Domain string
	Logger *slog.Logger

	Settings              *gatehouse.SiteUploadSettings
	Messages              gatehouse.Messages
	AllowStaffAnyFileInPM bool

	// Domain services
	UserService   gatehouse.UserService
	UploadService gatehouse.UploadService

	// External services
	FileStorage gatehouse.FileStorage
}

// NewServer creates a new HTTP server with the given configuration.
func NewServer(cfg Config) *Server {
	s := &Server{
		Addr:                  cfg.Addr,
		Domain:                cfg.Domain,
		logger:                cfg.Logger,
		settings:              cfg.Settings,
		messages:              cfg.Messages,
		allowStaffAnyFileInPM: cfg.AllowStaffAnyFileInPM,
		userService:           cfg.UserService,
		uploadService:         cfg.UploadService,
		fileStorage:           cfg.FileStorage,
	}

	if s.messages == nil {
		s.messages = gatehouse.EnglishMessages{}
	}

	s.echo = echo.New()
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Validator = validation.NewValidator()

	// Register middleware and routes
	s.registerMiddleware()
	s.registerRoutes()

	return s
}

// Echo returns the underlying Echo instance.
// Use sparingly - prefer registering routes through Server methods.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Open starts the HTTP server.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.echo.Server.Serve(s.ln); err != nil {
			s.logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	s.logger.Info("server started", slog.String("addr", s.Addr))
	return nil
}

// Close gracefully shuts down the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// URL returns the URL of the server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}
