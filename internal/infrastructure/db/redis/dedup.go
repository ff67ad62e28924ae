package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/weinhaus/storefront/internal/core/domain"
)

const dedupTTL = 24 * time.Hour

// DedupChecker keeps audit recording idempotent across retries.
// Key format: audit:<order_id>:<status>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether the order already has an audit entry for status.
func (d *DedupChecker) IsDuplicate(ctx context.Context, orderID string, status domain.OrderStatus) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(orderID, status)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that the event was written (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, orderID string, status domain.OrderStatus) error {
	return d.client.Set(ctx, d.key(orderID, status), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(orderID string, status domain.OrderStatus) string {
	return fmt.Sprintf("audit:%s:%s", orderID, status)
}
