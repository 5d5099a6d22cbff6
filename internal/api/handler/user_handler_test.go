package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

func TestUserHandler_UpdateProfile_Success(t *testing.T) {
	users := &stubUserService{
		updateProfileFn: func(_ context.Context, id int64, profile domain.Profile) (*domain.User, error) {
			if id != 1 {
				t.Fatalf("unexpected id %d", id)
			}
			if profile.Name != "Alice" || profile.Bio != "writer" {
				t.Fatalf("unexpected profile: %+v", profile)
			}
			return &domain.User{ID: 1, Username: "alice", Profile: profile}, nil
		},
	}
	handler := NewUserHandler(nil, users, nil)

	c, rec := newJSONContext(t, http.MethodPut, "/api/user/profile",
		`{"profile_name":"Alice","profile_bio":"writer"}`)
	withPrincipal(c, &domain.Principal{SubjectID: 1, Username: "alice", Role: domain.RoleUser})

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// Field limits track the users table column widths; anything longer has to be
// rejected up front instead of surfacing as a database error.
func TestUserHandler_UpdateProfile_RejectsOversizedFields(t *testing.T) {
	cases := map[string]string{
		"name over 50":  fmt.Sprintf(`{"profile_name":%q}`, strings.Repeat("n", 51)),
		"bio over 500":  fmt.Sprintf(`{"profile_bio":%q}`, strings.Repeat("b", 600)),
		"phone over 20": fmt.Sprintf(`{"profile_phone":%q}`, strings.Repeat("5", 21)),
		"github over 255": fmt.Sprintf(`{"profile_social_github":%q}`,
			"https://github.com/"+strings.Repeat("u", 240)),
	}

	for name, body := range cases {
		users := &stubUserService{
			updateProfileFn: func(_ context.Context, _ int64, _ domain.Profile) (*domain.User, error) {
				t.Fatalf("%s: oversized input reached the service", name)
				return nil, nil
			},
		}
		handler := NewUserHandler(nil, users, nil)

		c, _ := newJSONContext(t, http.MethodPut, "/api/user/profile", body)
		withPrincipal(c, &domain.Principal{SubjectID: 1, Username: "alice", Role: domain.RoleUser})

		err := handler.UpdateProfile(c)
		var httpErr *echo.HTTPError
		if !asHTTPError(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %v", name, err)
		}
	}
}
