package autocomplete

import (
	"context"
	"fmt"
	"horoscopus-web/internal/types"
	"sync"
	"time"
)

// DefaultStaleTime is how long a cached result is served without a refetch
const DefaultStaleTime = 60 * time.Second

// DefaultMaxEntries bounds the memory cache; the oldest entry is evicted
// to make room once expired ones are gone.
const DefaultMaxEntries = 4096

// Key identifies a cached query. Queries are stored normalized.
type Key struct {
	Query string
	Limit int
}

func (k Key) String() string {
	return fmt.Sprintf("locations:autocomplete:%d:%s", k.Limit, k.Query)
}

// Cache stores search results for the staleness window.
// A cache failure must behave like a miss.
type Cache interface {
	Get(ctx context.Context, key Key) ([]types.LocationSuggestion, bool)
	Set(ctx context.Context, key Key, suggestions []types.LocationSuggestion)
}

type memoryEntry struct {
	suggestions []types.LocationSuggestion
	expiresAt   time.Time
}

// MemoryCache is a process-local Cache with per-entry expiry
type MemoryCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	mu         sync.Mutex
	entries    map[Key]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithClock(ttl, time.Now)
}

// NewMemoryCacheWithClock is useful for tests that need to move time forward
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultStaleTime
	}
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        now,
		entries:    make(map[Key]memoryEntry),
	}
}

func (c *MemoryCache) Get(_ context.Context, key Key) ([]types.LocationSuggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.suggestions, true
}

func (c *MemoryCache) Set(_ context.Context, key Key, suggestions []types.LocationSuggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.purgeExpired(now)
		if len(c.entries) >= c.maxEntries {
			c.evictOldest()
		}
	}
	c.entries[key] = memoryEntry{
		suggestions: suggestions,
		expiresAt:   now.Add(c.ttl),
	}
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *MemoryCache) purgeExpired(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// evictOldest drops the entry closest to expiry, which is the oldest write
func (c *MemoryCache) evictOldest() {
	var (
		oldest Key
		at     time.Time
		found  bool
	)
	for k, e := range c.entries {
		if !found || e.expiresAt.Before(at) {
			oldest, at, found = k, e.expiresAt, true
		}
	}
	if found {
		delete(c.entries, oldest)
	}
}
