package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// HomepageStats are the public counters shown on the landing page.
type HomepageStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProjects int64 `json:"total_projects"`
	TotalPosts    int64 `json:"total_posts"`
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
	// UpdateRole changes another user's role. The acting admin's own record
	// is rejected with domain.ErrSelfRoleChange.
	UpdateRole(ctx context.Context, actor *domain.Principal, userID int64, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, actor *domain.Principal, userID int64) error
	Stats(ctx context.Context) (*HomepageStats, error)
}
