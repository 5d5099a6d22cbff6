package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// TokenVerifier is the contract the authentication middleware consumes:
// a valid bearer token yields the subject id it was issued for, anything
// else yields domain.ErrInvalidToken.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

type AuthService interface {
	// Register creates an account and returns it with a fresh bearer token.
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	// Login accepts a username or an email as the login identifier.
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
}

type ResetService interface {
	// RequestReset issues a reset secret and mails it to the account owner.
	// An unknown email is silently skipped so responses cannot be used to
	// enumerate accounts.
	RequestReset(ctx context.Context, email string) error
	// ResetPassword consumes a raw reset secret exactly once, replaces the
	// password, and returns the principal with a fresh bearer token.
	ResetPassword(ctx context.Context, rawSecret, newPassword string) (string, *domain.Principal, error)
}
