package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers recently handled delivery keys so exact redeliveries can be
// short-circuited at the transport edge. It is an optimization only: the
// reconciliation path stays safe without it, so callers treat a redis failure
// as "not seen" and process the event.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// EventKey derives a stable key for one processor delivery from the fields
// that identify its content.
func (s *Store) EventKey(entity, id, status, errorCode string) string {
	sum := sha256.Sum256([]byte(entity + "|" + id + "|" + status + "|" + errorCode))
	return fmt.Sprintf("recon:seen:%s", hex.EncodeToString(sum[:16]))
}

// Seen marks the key and reports whether it was already present.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Forget releases a key claimed by Seen, so a delivery that failed after the
// claim is not skipped when the processor retries it.
func (s *Store) Forget(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
