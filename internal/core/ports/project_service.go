package ports

import (
	"context"
	"time"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

type ProjectInput struct {
	Title        string
	Description  string
	Technologies []string
	StartDate    time.Time
	EndDate      *time.Time
	Status       domain.ProjectStatus
	ImageURL     string
	ProjectURL   string
}

type ProjectService interface {
	Create(ctx context.Context, principal *domain.Principal, in ProjectInput) (*domain.Project, error)
	Get(ctx context.Context, id int64) (*domain.Project, error)
	Update(ctx context.Context, principal *domain.Principal, id int64, in ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, principal *domain.Principal, id int64) error
	List(ctx context.Context, q ProjectListQuery) ([]domain.Project, int64, error)
	Recent(ctx context.Context, n int) ([]domain.Project, error)
}
