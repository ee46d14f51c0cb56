package redis

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker suppresses repeat SMS sends backed by Redis.
// Key format: sms:<number>:<fnv64 of message>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this exact message was recently sent to number.
func (d *DedupChecker) IsDuplicate(ctx context.Context, number, message string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(number, message)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this message was sent (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, number, message string) error {
	return d.client.Set(ctx, d.key(number, message), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(number, message string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(message))
	return fmt.Sprintf("sms:%s:%d", number, h.Sum64())
}
