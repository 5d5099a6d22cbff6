package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

type PostInput struct {
	Title   string
	Excerpt string
	Content string
	Publish bool
}

type PostService interface {
	Create(ctx context.Context, principal *domain.Principal, in PostInput) (*domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Post, error)
	Update(ctx context.Context, principal *domain.Principal, id int64, in PostInput) (*domain.Post, error)
	Delete(ctx context.Context, principal *domain.Principal, id int64) error
	List(ctx context.Context, q PostListQuery) ([]domain.Post, int64, error)
	RecentPublished(ctx context.Context, n int) ([]domain.Post, error)
}

type CommentService interface {
	Add(ctx context.Context, principal *domain.Principal, slug, body string) (*domain.Comment, error)
	ListForPost(ctx context.Context, slug string) ([]domain.Comment, error)
	Delete(ctx context.Context, principal *domain.Principal, id int64) error
}
