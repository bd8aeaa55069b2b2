package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// DefaultIdempotencyTTL is how long a key and its resource id are remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

// pending marks a key whose request is still running. Resource ids are UUIDs
// and never collide with it.
const pending = "pending"

// IdempotencyStore implements ports.IdempotencyStore with Redis.
// Key format: idempotency:<scope>:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// NewIdempotencyStore wraps client. A non-positive ttl uses DefaultIdempotencyTTL.
func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, scope, key string) (string, bool, error) {
	k := s.key(scope, key)

	// A second attempt covers a key that expired between SETNX and GET.
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pending, s.ttl).Result()
		if err != nil {
			return "", false, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return "", true, nil
		}

		val, err := s.client.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("idempotency lookup: %w", err)
		}
		if val == pending {
			return "", false, domain.ErrRequestInProgress
		}
		return val, false, nil
	}
	return "", false, domain.ErrRequestInProgress
}

func (s *IdempotencyStore) Complete(ctx context.Context, scope, key, resourceID string) error {
	if err := s.client.Set(ctx, s.key(scope, key), resourceID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, s.key(scope, key)).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(scope, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", scope, key)
}
