package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/api/metrics"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

// CommentService attaches reader comments to published posts.
type CommentService struct {
	comments ports.CommentRepository
	posts    ports.PostRepository
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, posts ports.PostRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, logger: logger}
}

func (s *CommentService) Add(ctx context.Context, principal *domain.Principal, slug, body string) (*domain.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyComment
	}

	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// Drafts are not commentable; their existence is not disclosed either.
	if post.Status != domain.PostPublished {
		return nil, domain.ErrPostNotFound
	}

	created, err := s.comments.Create(ctx, &domain.Comment{
		PostID: post.ID,
		UserID: principal.SubjectID,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("comment", "create").Inc()
	return created, nil
}

func (s *CommentService) ListForPost(ctx context.Context, slug string) ([]domain.Comment, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.PostPublished {
		return nil, domain.ErrPostNotFound
	}
	return s.comments.ListByPost(ctx, post.ID)
}

func (s *CommentService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(principal, comment.UserID); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ContentWritesTotal.WithLabelValues("comment", "delete").Inc()
	return nil
}
