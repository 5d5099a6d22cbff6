package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type stubPostRepo struct {
	seq   int64
	posts map[int64]*domain.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[int64]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	if p == nil {
		return nil
	}
	clone := *p
	if p.PublishedAt != nil {
		at := *p.PublishedAt
		clone.PublishedAt = &at
	}
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) (*domain.Post, error) {
	for _, existing := range r.posts {
		if existing.Slug == post.Slug {
			return nil, domain.ErrSlugTaken
		}
	}
	r.seq++
	stored := clonePost(post)
	stored.ID = r.seq
	stored.CreatedAt = time.Now()
	r.posts[stored.ID] = stored
	return clonePost(stored), nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id int64) (*domain.Post, error) {
	if p, ok := r.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) FindBySlug(_ context.Context, slug string) (*domain.Post, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return clonePost(p), nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.Post) (*domain.Post, error) {
	if _, ok := r.posts[post.ID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	r.posts[post.ID] = clonePost(post)
	return clonePost(post), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) List(_ context.Context, q ports.PostListQuery) ([]domain.Post, int64, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if q.PublishedOnly && p.Status != domain.PostPublished {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(q.Search)) {
			continue
		}
		out = append(out, *clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubPostRepo) RecentPublished(_ context.Context, n int) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range r.posts {
		if p.Status == domain.PostPublished {
			out = append(out, *clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *stubPostRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, p := range r.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPostRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func author(id int64) *domain.Principal {
	return &domain.Principal{SubjectID: id, Username: "author", Role: domain.RoleUser}
}

func admin(id int64) *domain.Principal {
	return &domain.Principal{SubjectID: id, Username: "root", Role: domain.RoleAdmin}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":           "hello-world",
		"  Spaces   everywhere  ": "spaces-everywhere",
		"Go 1.22 Released":        "go-1-22-released",
		"---":                     "",
		"CamelCaseTitle":          "camelcasetitle",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPostService_Create_SlugCollision(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())

	first, err := svc.Create(context.Background(), author(1), ports.PostInput{Title: "My Post", Content: "a"})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.Create(context.Background(), author(1), ports.PostInput{Title: "My Post", Content: "b"})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if first.Slug != "my-post" {
		t.Fatalf("unexpected first slug %q", first.Slug)
	}
	if second.Slug != "my-post-2" {
		t.Fatalf("unexpected second slug %q", second.Slug)
	}
}

func TestPostService_PublishSetsTimestampOnce(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())

	post, err := svc.Create(context.Background(), author(1), ports.PostInput{Title: "Draft", Content: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if post.Status != domain.PostDraft || post.PublishedAt != nil {
		t.Fatalf("expected fresh draft, got %+v", post)
	}

	published, err := svc.Update(context.Background(), author(1), post.ID, ports.PostInput{Title: "Draft", Content: "x", Publish: true})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.Status != domain.PostPublished || published.PublishedAt == nil {
		t.Fatalf("expected published, got %+v", published)
	}
	firstPublished := *published.PublishedAt

	// Unpublish and republish: the original timestamp survives.
	_, err = svc.Update(context.Background(), author(1), post.ID, ports.PostInput{Title: "Draft", Content: "x"})
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	again, err := svc.Update(context.Background(), author(1), post.ID, ports.PostInput{Title: "Draft", Content: "x", Publish: true})
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if again.PublishedAt == nil || !again.PublishedAt.Equal(firstPublished) {
		t.Fatalf("publish timestamp changed: %v -> %v", firstPublished, again.PublishedAt)
	}
}

func TestPostService_GetBySlug_HidesDrafts(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())

	draft, _ := svc.Create(context.Background(), author(1), ports.PostInput{Title: "Secret Draft", Content: "x"})
	if _, err := svc.GetBySlug(context.Background(), draft.Slug); err != domain.ErrPostNotFound {
		t.Fatalf("expected ErrPostNotFound for draft, got %v", err)
	}

	published, _ := svc.Create(context.Background(), author(1), ports.PostInput{Title: "Public", Content: "x", Publish: true})
	got, err := svc.GetBySlug(context.Background(), published.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.ID != published.ID {
		t.Fatalf("wrong post: %+v", got)
	}
}

func TestPostService_MutationOwnership(t *testing.T) {
	repo := newStubPostRepo()
	svc := NewPostService(repo, zerolog.Nop())

	post, _ := svc.Create(context.Background(), author(1), ports.PostInput{Title: "Mine", Content: "x"})

	if _, err := svc.Update(context.Background(), author(2), post.ID, ports.PostInput{Title: "Theirs", Content: "x"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), author(2), post.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for non-owner delete, got %v", err)
	}

	// Admins may mutate anything.
	if _, err := svc.Update(context.Background(), admin(99), post.ID, ports.PostInput{Title: "Moderated", Content: "x"}); err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if err := svc.Delete(context.Background(), admin(99), post.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
