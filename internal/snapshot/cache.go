package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"starforge-server/internal/shared/redis"
)

const cacheKeyPrefix = "snapshot:"

// Cache is a read-through layer in front of the repository. A nil Redis
// client disables it, every lookup is then a miss.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *Cache) Get(ctx context.Context, id string) (*Snapshot, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, cacheKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}

	snap := &Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		c.logger.Warn("Failed to decode cached snapshot, dropping it",
			"snapshot_id", id, "error", err)
		c.Invalidate(ctx, id)
		return nil, false
	}

	return snap, true
}

// Set stores a snapshot in the cache. Failures are logged and swallowed,
// the repository remains the source of truth.
func (c *Cache) Set(ctx context.Context, snap *Snapshot) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warn("Failed to encode snapshot for cache", "snapshot_id", snap.ID, "error", err)
		return
	}

	if err := c.client.Set(ctx, cacheKeyPrefix+snap.ID, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache snapshot", "snapshot_id", snap.ID, "error", err)
	}
}

func (c *Cache) Invalidate(ctx context.Context, id string) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, cacheKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached snapshot", "snapshot_id", id, "error", err)
	}
}
