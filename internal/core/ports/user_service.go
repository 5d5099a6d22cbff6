package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, profile domain.Profile) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id int64, avatarPath string) (*domain.User, error)
}
