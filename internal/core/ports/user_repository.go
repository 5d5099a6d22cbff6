package ports

import (
	"context"
	"time"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// UserRepository defines the credential-store contract consumed by the auth
// subsystem. All operations are single-row and id-keyed; missing rows surface
// as domain.ErrUserNotFound.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByResetHash matches a stored reset-token hash that has not expired
	// at the given instant.
	FindByResetHash(ctx context.Context, hash string, now time.Time) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, profile domain.Profile) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateResetToken(ctx context.Context, id int64, hash string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id int64) error
	UpdateRole(ctx context.Context, id int64, role string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
