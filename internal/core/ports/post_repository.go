package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// PostListQuery filters the blog listing. PublishedOnly is forced on for
// unauthenticated callers.
type PostListQuery struct {
	Page          int
	Limit         int
	Search        string
	PublishedOnly bool
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id int64) (*domain.Post, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) (*domain.Post, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q PostListQuery) ([]domain.Post, int64, error)
	// RecentPublished returns the newest published posts, for the RSS feed.
	RecentPublished(ctx context.Context, n int) ([]domain.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
