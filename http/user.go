package http

import (
	"log/slog"

	"github.com/kestrelworks/gatehouse"
	"github.com/labstack/echo/v4"
)

// CreateUserRequest is the request payload for creating a user.
type CreateUserRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=60"`
	Staff      bool   `json:"staff"`
	TrustLevel int    `json:"trust_level" validate:"min=0,max=4"`
}

// CreateUserResponse carries the new user and their API key. The key is
// returned exactly once; only its hash is stored.
type CreateUserResponse struct {
	User   *gatehouse.User `json:"user"`
	APIKey string          `json:"api_key"`
}

func (s *Server) handleCreateUser(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	caller, err := requireUser(c)
	if err != nil {
		return err
	}
	if !caller.Staff {
		return gatehouse.Forbidden("Only staff can create users")
	}

	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user := &gatehouse.User{
		Username:   req.Username,
		Staff:      req.Staff,
		TrustLevel: req.TrustLevel,
	}

	apiKey, err := s.userService.CreateUser(ctx, user)
	if err != nil {
		return err
	}

	s.log(c).Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)

	return RespondCreated(c, CreateUserResponse{User: user, APIKey: apiKey})
}
