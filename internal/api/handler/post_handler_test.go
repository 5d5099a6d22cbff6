package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

func listQueryFor(t *testing.T, authenticated bool) ports.PostListQuery {
	t.Helper()
	var got ports.PostListQuery
	posts := &stubPostService{
		listFn: func(_ context.Context, q ports.PostListQuery) ([]domain.Post, int64, error) {
			got = q
			return nil, 0, nil
		},
	}
	handler := NewPostHandler(posts, nil)

	c, rec := newJSONContext(t, http.MethodGet, "/api/posts", "")
	if authenticated {
		withPrincipal(c, &domain.Principal{SubjectID: 1, Username: "alice", Role: domain.RoleUser})
	}
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	return got
}

func TestPostHandler_List_AnonymousSeesPublishedOnly(t *testing.T) {
	q := listQueryFor(t, false)
	if !q.PublishedOnly {
		t.Fatal("anonymous listing must be restricted to published posts")
	}
}

func TestPostHandler_List_AuthenticatedSeesDrafts(t *testing.T) {
	q := listQueryFor(t, true)
	if q.PublishedOnly {
		t.Fatal("authenticated listing must include drafts")
	}
}
