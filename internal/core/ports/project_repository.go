package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// ProjectListQuery captures the public list filters: offset pagination, a
// free-text search over title and description, and an optional status filter.
type ProjectListQuery struct {
	Page   int
	Limit  int
	Search string
	Status domain.ProjectStatus
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	// List returns the matching page plus the total match count.
	List(ctx context.Context, q ProjectListQuery) ([]domain.Project, int64, error)
	// ListAll returns every project with owner email, for the admin panel.
	ListAll(ctx context.Context) ([]domain.Project, error)
	Recent(ctx context.Context, n int) ([]domain.Project, error)
	Count(ctx context.Context) (int64, error)
}
