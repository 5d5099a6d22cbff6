package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

func runRequireRole(t *testing.T, repo *stubUserRepo, principal *domain.Principal) (error, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		c.Set(principalContextKey, principal)
	}

	called := false
	handler := RequireRole(repo, zerolog.Nop(), domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	return handler(c), called
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "root", Role: domain.RoleAdmin},
	}}

	err, called := runRequireRole(t, repo, &domain.Principal{SubjectID: 1, Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called")
	}
}

func TestRequireRole_NonAdminForbidden(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{
		2: {ID: 2, Username: "bob", Role: domain.RoleUser},
	}}

	err, called := runRequireRole(t, repo, &domain.Principal{SubjectID: 2, Role: domain.RoleUser})
	if called {
		t.Fatal("next handler was called")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_DemotionAppliesImmediately(t *testing.T) {
	// The request carries an admin principal, but the store row was demoted
	// in the meantime. The gate reads the store, not the token.
	repo := &stubUserRepo{users: map[int64]*domain.User{
		3: {ID: 3, Username: "eve", Role: domain.RoleUser},
	}}

	err, called := runRequireRole(t, repo, &domain.Principal{SubjectID: 3, Role: domain.RoleAdmin})
	if called {
		t.Fatal("next handler was called")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestRequireRole_MissingPrincipal(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{}}

	err, called := runRequireRole(t, repo, nil)
	if called {
		t.Fatal("next handler was called")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireRole_SubjectDeleted(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*domain.User{}}

	err, called := runRequireRole(t, repo, &domain.Principal{SubjectID: 9, Role: domain.RoleAdmin})
	if called {
		t.Fatal("next handler was called")
	}
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
