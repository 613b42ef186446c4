package cache

import (
	"context"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultSweepInterval is how often the background sweeper evicts
// expired entries that nobody has read since they lapsed.
const DefaultSweepInterval = 10 * time.Minute

type entry struct {
	value   any
	written time.Time
	ttl     time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.written) >= e.ttl
}

// TTLCache is a bounded cache with a per-entry time-to-live on top of
// LRU eviction. Reads past an entry's TTL behave as misses and evict
// the stale entry, so callers never observe expired data even between
// sweeps. Safe for concurrent use.
type TTLCache struct {
	entries *lru.Cache
}

func New(size int) (*TTLCache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &TTLCache{entries: entries}, nil
}

// Set stores value under key for ttl. A non-positive ttl expires the
// entry immediately, which callers use to invalidate a key.
func (c *TTLCache) Set(key string, value any, ttl time.Duration) {
	c.entries.Add(key, entry{value: value, written: time.Now(), ttl: ttl})
}

// Get returns the live value for key, or a miss when the key is absent
// or its TTL has lapsed.
func (c *TTLCache) Get(key string) (any, bool) {
	raw, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	ent := raw.(entry)
	if ent.expired(time.Now()) {
		c.entries.Remove(key)
		return nil, false
	}
	return ent.value, true
}

func (c *TTLCache) Delete(key string) {
	c.entries.Remove(key)
}

func (c *TTLCache) Len() int {
	return c.entries.Len()
}

// Sweep evicts every expired entry and reports how many were removed.
func (c *TTLCache) Sweep() int {
	now := time.Now()
	removed := 0
	for _, key := range c.entries.Keys() {
		raw, ok := c.entries.Peek(key)
		if !ok {
			continue
		}
		if raw.(entry).expired(now) {
			c.entries.Remove(key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
// Intended to run on its own goroutine.
func (c *TTLCache) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				slog.Debug("Cache sweep complete",
					slog.Int("removed", removed),
					slog.Int("remaining", c.Len()))
			}
		}
	}
}
