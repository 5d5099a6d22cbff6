package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// PrincipalCache stores resolved principals under a bounded TTL so the auth
// middleware can skip the store lookup inside the staleness window.
// Key format: principal:<subject_id>
type PrincipalCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPrincipalCache creates a PrincipalCache wrapping the given Redis client.
func NewPrincipalCache(client *redis.Client, ttl time.Duration) *PrincipalCache {
	return &PrincipalCache{client: client, ttl: ttl}
}

// Get returns the cached principal, or nil on a miss.
func (c *PrincipalCache) Get(ctx context.Context, subjectID int64) (*domain.Principal, error) {
	raw, err := c.client.Get(ctx, c.key(subjectID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("principal cache get: %w", err)
	}

	var p domain.Principal
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("principal cache decode: %w", err)
	}
	return &p, nil
}

func (c *PrincipalCache) Set(ctx context.Context, principal *domain.Principal) error {
	raw, err := json.Marshal(principal)
	if err != nil {
		return fmt.Errorf("principal cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(principal.SubjectID), raw, c.ttl).Err()
}

func (c *PrincipalCache) Invalidate(ctx context.Context, subjectID int64) error {
	return c.client.Del(ctx, c.key(subjectID)).Err()
}

func (c *PrincipalCache) key(subjectID int64) string {
	return fmt.Sprintf("principal:%d", subjectID)
}
