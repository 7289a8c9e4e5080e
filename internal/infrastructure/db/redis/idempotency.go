package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore makes note creation safe to retry. It maps an
// (owner, Idempotency-Key) pair to the id of the note inserted for it.
// Key format: idem:<email>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the note id previously recorded for this key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, email, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(email, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember records the inserted note id (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, email, key, noteID string) error {
	return s.client.Set(ctx, s.key(email, key), noteID, idempotencyTTL).Err()
}

func (s *IdempotencyStore) key(email, key string) string {
	return fmt.Sprintf("idem:%s:%s", email, key)
}
