package service

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

// UserService covers profile reads and updates for the account owner.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, profile domain.Profile) (*domain.User, error) {
	// The avatar is managed by the upload flow; keep whatever is stored.
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.Avatar = current.Profile.Avatar
	return s.users.UpdateProfile(ctx, id, profile)
}

func (s *UserService) UpdateAvatar(ctx context.Context, id int64, avatarPath string) (*domain.User, error) {
	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := current.Profile
	profile.Avatar = avatarPath
	return s.users.UpdateProfile(ctx, id, profile)
}
