package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/api/metrics"
	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

const (
	defaultResetTTL = 15 * time.Minute
	resetSecretLen  = 32
)

// ResetService manages the one-time password-reset token lifecycle. Only the
// SHA-256 of a secret is persisted; the raw value exists in the reset mail and
// nowhere else. Issuing a new secret overwrites (and so invalidates) any
// previous one for the same account.
type ResetService struct {
	users   ports.UserRepository
	tokens  *TokenService
	hasher  PasswordHasher
	mailer  ports.Mailer
	cache   ports.PrincipalCache
	ttl     time.Duration
	siteURL string
	logger  zerolog.Logger
}

func NewResetService(users ports.UserRepository, tokens *TokenService, hasher PasswordHasher, mailer ports.Mailer, cache ports.PrincipalCache, ttl time.Duration, siteURL string, logger zerolog.Logger) *ResetService {
	if ttl <= 0 {
		ttl = defaultResetTTL
	}
	return &ResetService{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		mailer:  mailer,
		cache:   cache,
		ttl:     ttl,
		siteURL: siteURL,
		logger:  logger,
	}
}

// RequestReset issues a reset secret for the account owning the given email
// and delivers it out-of-band. Unknown emails are skipped silently: the
// caller's response is identical either way, so the endpoint cannot be used
// to enumerate accounts.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Msg("reset requested for unknown email")
			return nil
		}
		return err
	}

	raw, hash, err := newResetSecret()
	if err != nil {
		return err
	}

	expiry := time.Now().Add(s.ttl)
	if err := s.users.UpdateResetToken(ctx, user.ID, hash, expiry); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"You requested a password reset.\n\n"+
			"Reset link: %s/reset-password.html?token=%s\n\n"+
			"The link expires in %s. If you did not request this, ignore this email.",
		s.siteURL, raw, s.ttl,
	)
	if err := s.mailer.Send(ctx, user.Email, "Password reset", body); err != nil {
		// The user never received the secret, so the persisted hash must not
		// stay valid. Clear it before reporting the failure.
		if clearErr := s.users.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.Error().Err(clearErr).Int64("user_id", user.ID).Msg("reset token rollback failed")
		}
		metrics.PasswordResetsTotal.WithLabelValues("rolled_back").Inc()
		return fmt.Errorf("reset mail delivery: %w", err)
	}

	metrics.PasswordResetsTotal.WithLabelValues("issued").Inc()
	s.logger.Info().Int64("user_id", user.ID).Msg("reset token issued")
	return nil
}

// ResetPassword consumes a raw reset secret exactly once. Wrong and expired
// secrets produce the same error.
func (s *ResetService) ResetPassword(ctx context.Context, rawSecret, newPassword string) (string, *domain.Principal, error) {
	if rawSecret == "" || newPassword == "" {
		metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidResetToken
	}

	user, err := s.users.FindByResetHash(ctx, hashResetSecret(rawSecret), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.PasswordResetsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidResetToken
		}
		return "", nil, err
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return "", nil, err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return "", nil, err
	}
	if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
		return "", nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, user.ID); err != nil {
			s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("principal cache invalidation failed")
		}
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	metrics.PasswordResetsTotal.WithLabelValues("consumed").Inc()
	s.logger.Info().Int64("user_id", user.ID).Msg("password reset completed")
	return token, domain.PrincipalFromUser(user), nil
}

// newResetSecret returns a high-entropy raw secret and its at-rest hash.
func newResetSecret() (raw, hash string, err error) {
	buf := make([]byte, resetSecretLen)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate reset secret: %w", err)
	}
	raw = hex.EncodeToString(buf)
	return raw, hashResetSecret(raw), nil
}

func hashResetSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
