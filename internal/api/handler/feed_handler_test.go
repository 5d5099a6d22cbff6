package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
	"github.com/devfolio/portfolio-api/internal/pkg/config"
)

type stubPostService struct {
	listFn   func(ctx context.Context, q ports.PostListQuery) ([]domain.Post, int64, error)
	recentFn func(ctx context.Context, n int) ([]domain.Post, error)
}

func (s *stubPostService) Create(_ context.Context, _ *domain.Principal, _ ports.PostInput) (*domain.Post, error) {
	return nil, domain.ErrPostNotFound
}

func (s *stubPostService) GetBySlug(_ context.Context, _ string) (*domain.Post, error) {
	return nil, domain.ErrPostNotFound
}

func (s *stubPostService) Update(_ context.Context, _ *domain.Principal, _ int64, _ ports.PostInput) (*domain.Post, error) {
	return nil, domain.ErrPostNotFound
}

func (s *stubPostService) Delete(_ context.Context, _ *domain.Principal, _ int64) error {
	return nil
}

func (s *stubPostService) List(ctx context.Context, q ports.PostListQuery) ([]domain.Post, int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, q)
	}
	return nil, 0, nil
}

func (s *stubPostService) RecentPublished(ctx context.Context, n int) ([]domain.Post, error) {
	return s.recentFn(ctx, n)
}

func TestFeedHandler_RSS(t *testing.T) {
	published := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	posts := &stubPostService{
		recentFn: func(_ context.Context, n int) ([]domain.Post, error) {
			if n != feedItemLimit {
				t.Fatalf("unexpected limit %d", n)
			}
			return []domain.Post{{
				Title:       "Hello & Goodbye",
				Slug:        "hello-goodbye",
				Excerpt:     "a post",
				AuthorName:  "alice",
				PublishedAt: &published,
			}}, nil
		},
	}
	handler := NewFeedHandler(posts, config.SiteConfig{
		URL:         "https://example.com",
		Title:       "Example Blog",
		Description: "Things",
	})

	c, rec := newJSONContext(t, http.MethodGet, "/rss", "")
	if err := handler.RSS(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/rss+xml") {
		t.Fatalf("unexpected content type %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{
		`<rss version="2.0"`,
		"<title>Example Blog</title>",
		"<link>https://example.com/blog/hello-goodbye</link>",
		"Hello &amp; Goodbye",
		"Fri, 10 May 2024 12:00:00 +0000",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("feed missing %q:\n%s", want, body)
		}
	}
}

func TestFeedHandler_RSS_Empty(t *testing.T) {
	posts := &stubPostService{
		recentFn: func(_ context.Context, _ int) ([]domain.Post, error) {
			return nil, nil
		},
	}
	handler := NewFeedHandler(posts, config.SiteConfig{URL: "https://example.com", Title: "Blog"})

	c, rec := newJSONContext(t, http.MethodGet, "/rss", "")
	if err := handler.RSS(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "<channel>") {
		t.Fatalf("expected channel element:\n%s", rec.Body.String())
	}
}
