package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 15 * time.Minute

// NotifyDedup suppresses duplicate booking notifications backed by Redis.
// Key format: notify:<phone>:<date>
type NotifyDedup struct {
	client *redis.Client
}

// NewNotifyDedup creates a NotifyDedup wrapping the given Redis client.
func NewNotifyDedup(client *redis.Client) *NotifyDedup {
	return &NotifyDedup{client: client}
}

// IsDuplicate reports whether a notification for this phone and date has
// already been forwarded within the TTL window.
func (d *NotifyDedup) IsDuplicate(ctx context.Context, phone, date string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(phone, date)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this notification has been forwarded (expires after
// dedupTTL).
func (d *NotifyDedup) Mark(ctx context.Context, phone, date string) error {
	return d.client.Set(ctx, d.key(phone, date), "1", dedupTTL).Err()
}

func (d *NotifyDedup) key(phone, date string) string {
	return fmt.Sprintf("notify:%s:%s", phone, date)
}
