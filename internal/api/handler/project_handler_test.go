package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

type stubProjectService struct {
	createFn func(ctx context.Context, principal *domain.Principal, in ports.ProjectInput) (*domain.Project, error)
	listFn   func(ctx context.Context, q ports.ProjectListQuery) ([]domain.Project, int64, error)
}

func (s *stubProjectService) Create(ctx context.Context, principal *domain.Principal, in ports.ProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, principal, in)
}

func (s *stubProjectService) Get(_ context.Context, _ int64) (*domain.Project, error) {
	return nil, domain.ErrProjectNotFound
}

func (s *stubProjectService) Update(_ context.Context, _ *domain.Principal, _ int64, _ ports.ProjectInput) (*domain.Project, error) {
	return nil, domain.ErrProjectNotFound
}

func (s *stubProjectService) Delete(_ context.Context, _ *domain.Principal, _ int64) error {
	return nil
}

func (s *stubProjectService) List(ctx context.Context, q ports.ProjectListQuery) ([]domain.Project, int64, error) {
	return s.listFn(ctx, q)
}

func (s *stubProjectService) Recent(_ context.Context, _ int) ([]domain.Project, error) {
	return nil, nil
}

// withPrincipal injects an identity under the same context key the auth
// middleware uses.
func withPrincipal(c echo.Context, p *domain.Principal) echo.Context {
	c.Set("principal", p)
	return c
}

func TestProjectHandler_Create_ParsesDates(t *testing.T) {
	svc := &stubProjectService{
		createFn: func(_ context.Context, principal *domain.Principal, in ports.ProjectInput) (*domain.Project, error) {
			if principal.SubjectID != 7 {
				t.Fatalf("unexpected principal: %+v", principal)
			}
			if in.StartDate.Format("2006-01-02") != "2023-04-01" {
				t.Fatalf("start date not parsed: %v", in.StartDate)
			}
			if in.EndDate == nil || in.EndDate.Format("2006-01-02") != "2024-01-31" {
				t.Fatalf("end date not parsed: %v", in.EndDate)
			}
			return &domain.Project{ID: 1, Title: in.Title, UserID: principal.SubjectID}, nil
		},
	}
	handler := NewProjectHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/projects",
		`{"title":"Site","description":"d","start_date":"2023-04-01","end_date":"2024-01-31"}`)
	withPrincipal(c, &domain.Principal{SubjectID: 7, Role: domain.RoleUser})

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProjectHandler_Create_BadDate(t *testing.T) {
	handler := NewProjectHandler(&stubProjectService{})

	c, _ := newJSONContext(t, http.MethodPost, "/api/projects",
		`{"title":"Site","description":"d","start_date":"01/04/2023"}`)
	withPrincipal(c, &domain.Principal{SubjectID: 7, Role: domain.RoleUser})

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !asHTTPError(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

// The title column is 100 characters wide; longer input must fail validation
// rather than reach the database.
func TestProjectHandler_Create_RejectsOversizedTitle(t *testing.T) {
	svc := &stubProjectService{
		createFn: func(_ context.Context, _ *domain.Principal, _ ports.ProjectInput) (*domain.Project, error) {
			t.Fatal("oversized input reached the service")
			return nil, nil
		},
	}
	handler := NewProjectHandler(svc)

	body := fmt.Sprintf(`{"title":%q,"description":"d","start_date":"2023-04-01"}`,
		strings.Repeat("t", 150))
	c, _ := newJSONContext(t, http.MethodPost, "/api/projects", body)
	withPrincipal(c, &domain.Principal{SubjectID: 7, Role: domain.RoleUser})

	err := handler.Create(c)
	var httpErr *echo.HTTPError
	if !asHTTPError(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProjectHandler_List_Pagination(t *testing.T) {
	svc := &stubProjectService{
		listFn: func(_ context.Context, q ports.ProjectListQuery) ([]domain.Project, int64, error) {
			if q.Page != 2 || q.Limit != 5 || q.Search != "go" {
				t.Fatalf("unexpected query: %+v", q)
			}
			return []domain.Project{{ID: 6, Title: "Sixth"}}, 11, nil
		},
	}
	handler := NewProjectHandler(svc)

	c, rec := newJSONContext(t, http.MethodGet, "/api/projects?page=2&limit=5&q=go", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp projectPage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 11 || resp.TotalPages != 3 || resp.Page != 2 {
		t.Fatalf("unexpected page envelope: %+v", resp)
	}
}

func TestProjectHandler_List_EmptyIsArray(t *testing.T) {
	svc := &stubProjectService{
		listFn: func(_ context.Context, _ ports.ProjectListQuery) ([]domain.Project, int64, error) {
			return nil, 0, nil
		},
	}
	handler := NewProjectHandler(svc)

	c, rec := newJSONContext(t, http.MethodGet, "/api/projects", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if string(resp["projects"]) != "[]" {
		t.Fatalf("expected empty array, got %s", resp["projects"])
	}
}
