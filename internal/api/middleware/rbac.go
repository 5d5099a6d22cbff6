package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

// RequireRole enforces role-based access after Auth has run. The role is
// re-read from the credential store at gate time so a demotion applies to the
// very next request, even when the principal came from the cache.
func RequireRole(users ports.UserRepository, logger zerolog.Logger, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				// Unreachable when Auth ran first; reject as unauthenticated
				// rather than leak that the route exists.
				return echo.NewHTTPError(http.StatusUnauthorized, authMessage)
			}

			user, err := users.FindByID(c.Request().Context(), principal.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, authMessage)
				}
				logger.Error().Err(err).Int64("user_id", principal.SubjectID).Msg("role lookup failed")
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}

			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}

			// Propagate the fresh row; the handler must not act on a stale role.
			c.Set(principalContextKey, domain.PrincipalFromUser(user))
			return next(c)
		}
	}
}
