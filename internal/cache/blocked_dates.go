package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BlockedDatesCache memoizes the blocked-dates payload per (host, year, month). The
// availability engine itself stays stateless; this cache sits at the handler boundary.
//
// Keys embed a per-host generation counter. Bumping the generation on any schedule
// write (new booking, interval replacement) orphans every cached month for the host at
// once; orphaned keys age out via TTL.
type BlockedDatesCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewBlockedDatesCache(rdb *redis.Client, ttl time.Duration) *BlockedDatesCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &BlockedDatesCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached payload for the month, or ok=false on miss. Redis errors are
// treated as misses so the cache can never take the read path down.
func (c *BlockedDatesCache) Get(ctx context.Context, hostID string, year int, month time.Month) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	gen, err := c.rdb.Get(ctx, genKey(hostID)).Int64()
	if err != nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, monthKey(hostID, gen, year, month)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *BlockedDatesCache) Set(ctx context.Context, hostID string, year int, month time.Month, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	gen, err := c.rdb.Get(ctx, genKey(hostID)).Int64()
	if err == redis.Nil {
		// First write for this host; establish generation 0 so readers find the key.
		if err := c.rdb.SetNX(ctx, genKey(hostID), 0, 0).Err(); err != nil {
			return
		}
		gen = 0
	} else if err != nil {
		return
	}
	_ = c.rdb.Set(ctx, monthKey(hostID, gen, year, month), payload, c.ttl).Err()
}

// Invalidate drops every cached month for the host by advancing its generation.
func (c *BlockedDatesCache) Invalidate(ctx context.Context, hostID string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Incr(ctx, genKey(hostID)).Err()
}

func genKey(hostID string) string {
	return "blocked-dates:gen:" + hostID
}

func monthKey(hostID string, gen int64, year int, month time.Month) string {
	return fmt.Sprintf("blocked-dates:%s:%d:%d-%02d", hostID, gen, year, int(month))
}
