package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/api/metrics"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

const maxSlugAttempts = 50

// PostService implements blog post CRUD with publication state. Slugs are
// derived from the title at creation and stay stable across edits, so
// published URLs never break.
type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

func (s *PostService) Create(ctx context.Context, principal *domain.Principal, in ports.PostInput) (*domain.Post, error) {
	slug, err := s.uniqueSlug(ctx, in.Title)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:   strings.TrimSpace(in.Title),
		Slug:    slug,
		Excerpt: in.Excerpt,
		Content: in.Content,
		Status:  domain.PostDraft,
		UserID:  principal.SubjectID,
	}
	if in.Publish {
		now := time.Now()
		post.Status = domain.PostPublished
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("post", "create").Inc()
	s.logger.Info().Int64("post_id", created.ID).Str("slug", created.Slug).Msg("post created")
	return created, nil
}

// GetBySlug serves the public permalink. Drafts are indistinguishable from
// missing posts.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.PostPublished {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, principal *domain.Principal, id int64, in ports.PostInput) (*domain.Post, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(principal, existing.UserID); err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.Excerpt = in.Excerpt
	existing.Content = in.Content
	if in.Publish && existing.Status != domain.PostPublished {
		now := time.Now()
		existing.Status = domain.PostPublished
		if existing.PublishedAt == nil {
			existing.PublishedAt = &now
		}
	}
	if !in.Publish {
		existing.Status = domain.PostDraft
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	metrics.ContentWritesTotal.WithLabelValues("post", "update").Inc()
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(principal, existing.UserID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ContentWritesTotal.WithLabelValues("post", "delete").Inc()
	return nil
}

func (s *PostService) List(ctx context.Context, q ports.PostListQuery) ([]domain.Post, int64, error) {
	q.Page, q.Limit = clampPage(q.Page, q.Limit)
	return s.repo.List(ctx, q)
}

func (s *PostService) RecentPublished(ctx context.Context, n int) ([]domain.Post, error) {
	return s.repo.RecentPublished(ctx, n)
}

// uniqueSlug slugifies the title and appends a numeric suffix until the slug
// is free.
func (s *PostService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "post"
	}

	slug := base
	for i := 2; i <= maxSlugAttempts; i++ {
		taken, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return "", domain.ErrSlugTaken
}

// slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
