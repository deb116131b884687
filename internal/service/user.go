package service

import (
	"context"
	"errors"
	"strings"

	"github.com/serverside-ltd/portal-api/internal/domain/model"
	"github.com/serverside-ltd/portal-api/internal/ports"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	Users ports.UserStore
}

// UserService exposes profile reads and the roblox-username update.
type UserService struct {
	users ports.UserStore
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.Users}
}

// Get returns the public profile subset for a user id.
func (s *UserService) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

// UpdateRobloxUsername sets the roblox username on an existing record and
// returns the updated user.
func (s *UserService) UpdateRobloxUsername(ctx context.Context, userID, username string) (*model.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("new name is required")
	}
	return s.users.SetRobloxUsername(ctx, userID, username)
}
