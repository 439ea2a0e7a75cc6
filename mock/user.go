package mock

import (
	"context"

	"github.com/google/uuid"
	"github.com/kestrelworks/gatehouse"
)

// Compile-time interface check
var _ gatehouse.UserService = (*UserService)(nil)

// UserService is a mock implementation of gatehouse.UserService.
type UserService struct {
	FindUserByIDFn     func(ctx context.Context, id uuid.UUID) (*gatehouse.User, error)
	FindUserByAPIKeyFn func(ctx context.Context, key string) (*gatehouse.User, error)
	CreateUserFn       func(ctx context.Context, user *gatehouse.User) (string, error)
}

func (s *UserService) FindUserByID(ctx context.Context, id uuid.UUID) (*gatehouse.User, error) {
	if s.FindUserByIDFn != nil {
		return s.FindUserByIDFn(ctx, id)
	}
	return nil, gatehouse.NotFound("User not found")
}

func (s *UserService) FindUserByAPIKey(ctx context.Context, key string) (*gatehouse.User, error) {
	if s.FindUserByAPIKeyFn != nil {
		return s.FindUserByAPIKeyFn(ctx, key)
	}
	return nil, gatehouse.NotFound("User not found")
}

func (s *UserService) CreateUser(ctx context.Context, user *gatehouse.User) (string, error) {
	if s.CreateUserFn != nil {
		return s.CreateUserFn(ctx, user)
	}
	return "", nil
}
