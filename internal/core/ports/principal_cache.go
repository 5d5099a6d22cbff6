package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// PrincipalCache is an optional short-TTL cache in front of the credential
// store lookup performed on every authenticated request. It trades a bounded
// staleness window for reduced store load; a nil cache means every request
// reads the store directly.
type PrincipalCache interface {
	// Get returns the cached principal, or nil on a miss. Cache errors are
	// treated as misses by callers, never surfaced to the client.
	Get(ctx context.Context, subjectID int64) (*domain.Principal, error)
	Set(ctx context.Context, principal *domain.Principal) error
	// Invalidate drops the entry after a role, password, or account mutation.
	Invalidate(ctx context.Context, subjectID int64) error
}
