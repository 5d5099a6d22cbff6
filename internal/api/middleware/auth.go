package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/api/metrics"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

// principalContextKey is where the authenticated Principal lives on the echo
// context for the remainder of the request.
const principalContextKey = "principal"

// authMessage is the single 401 message for every authentication failure:
// missing header, malformed token, bad signature, expired token, vanished
// subject. One message, no oracle.
const authMessage = "authentication required"

// PrincipalFrom returns the Principal attached by Auth, or nil when the
// request never passed authentication.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(principalContextKey).(*domain.Principal)
	return p
}

// Auth extracts the bearer token, verifies it, and resolves the subject
// against the credential store. The principal is rebuilt from the fresh row
// on every request (optionally short-circuited by a bounded-TTL cache), so
// role downgrades and profile edits take effect without re-login.
func Auth(verifier ports.TokenVerifier, users ports.UserRepository, cache ports.PrincipalCache, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, authMessage)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, authMessage)
			}

			subjectID, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, authMessage)
			}

			principal, err := resolvePrincipal(c, subjectID, users, cache, logger)
			if err != nil {
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// OptionalAuth resolves a principal when a valid bearer token is presented
// but never rejects the request: anonymous callers, and callers whose token
// fails any check, proceed without one. Routes that serve both public and
// authenticated views (the blog listing) use this instead of Auth.
func OptionalAuth(verifier ports.TokenVerifier, users ports.UserRepository, cache ports.PrincipalCache, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			subjectID, err := verifier.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			principal, err := resolvePrincipal(c, subjectID, users, cache, logger)
			if err != nil {
				// The subject is gone or the store is down; serve the public
				// view rather than fail an endpoint that never required auth.
				return next(c)
			}

			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()
			c.Set(principalContextKey, principal)
			return next(c)
		}
	}
}

// resolvePrincipal looks the subject up, preferring the cache when one is
// configured. Cache failures count as misses; only store failures become 500s.
func resolvePrincipal(c echo.Context, subjectID int64, users ports.UserRepository, cache ports.PrincipalCache, logger zerolog.Logger) (*domain.Principal, error) {
	ctx := c.Request().Context()

	if cache != nil {
		cached, err := cache.Get(ctx, subjectID)
		if err != nil {
			logger.Warn().Err(err).Int64("user_id", subjectID).Msg("principal cache read failed")
		} else if cached != nil {
			metrics.PrincipalCacheTotal.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.PrincipalCacheTotal.WithLabelValues("miss").Inc()
	}

	user, err := users.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Token outlived its subject. Reject, don't error.
			metrics.TokenVerificationsTotal.WithLabelValues("subject_gone").Inc()
			return nil, echo.NewHTTPError(http.StatusUnauthorized, authMessage)
		}
		logger.Error().Err(err).Int64("user_id", subjectID).Msg("principal lookup failed")
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	principal := domain.PrincipalFromUser(user)
	if cache != nil {
		if err := cache.Set(ctx, principal); err != nil {
			logger.Warn().Err(err).Int64("user_id", subjectID).Msg("principal cache write failed")
		}
	}
	return principal, nil
}
