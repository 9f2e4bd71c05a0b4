package dashboard

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/kkws0615/STOCKup/models"
)

// HistoryCache holds batch history responses keyed by the exact request
// (identifier set plus lookback window). It stores fetch timestamps and
// leaves expiry to the caller, so invalidation is explicit and testable.
type HistoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	batch     map[string]models.HistoryResult
	fetchedAt time.Time
}

// NewHistoryCache creates an empty cache.
func NewHistoryCache() *HistoryCache {
	return &HistoryCache{entries: make(map[string]cacheEntry)}
}

// CacheKey builds the cache key for a request. Symbols are sorted so the key
// is independent of watchlist insertion order.
func CacheKey(symbols []string, lookback models.Lookback) string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)
	return strings.Join(sorted, ",") + "|" + string(lookback)
}

// Get returns the cached batch and its fetch time. The caller decides
// whether the age is acceptable.
func (c *HistoryCache) Get(key string) (map[string]models.HistoryResult, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, time.Time{}, false
	}
	return entry.batch, entry.fetchedAt, true
}

// Put stores a batch under its request key.
func (c *HistoryCache) Put(key string, batch map[string]models.HistoryResult, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{batch: batch, fetchedAt: fetchedAt}
}

// DropOlderThan removes entries fetched before the cutoff. Called
// opportunistically so abandoned identifier sets do not accumulate.
func (c *HistoryCache) DropOlderThan(cutoff time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if entry.fetchedAt.Before(cutoff) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of cached request keys.
func (c *HistoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
