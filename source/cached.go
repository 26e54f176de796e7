package source

import (
	"context"
	"sync"
	"time"

	"github.com/nrfta/searchresult-go"
)

// DefaultCacheTTL is used when NewCached is given a non-positive TTL.
const DefaultCacheTTL = 5 * time.Minute

// Cached wraps a RecordSource and keeps each identifier's records for a TTL.
// Failed reads are never cached. It is safe for concurrent use.
type Cached struct {
	source searchresult.RecordSource
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	cache map[string]*cacheEntry

	// generations counts invalidations per identifier and epoch counts
	// ClearCache calls. A read only stores its result if neither moved while
	// it was fetching.
	generations map[string]uint64
	epoch       uint64
}

type cacheEntry struct {
	records   []searchresult.Record
	expiresAt time.Time
}

var _ searchresult.RecordSource = (*Cached)(nil)

// CachedOption configures a Cached source.
type CachedOption func(*Cached)

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) CachedOption {
	return func(c *Cached) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCached wraps source with a cache of the given TTL.
func NewCached(source searchresult.RecordSource, ttl time.Duration, opts ...CachedOption) *Cached {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &Cached{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		cache:  make(map[string]*cacheEntry),

		generations: make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Read returns cached records for identifier while they are fresh and reads
// through to the wrapped source otherwise.
func (c *Cached) Read(ctx context.Context, identifier string) ([]searchresult.Record, error) {
	c.mu.RLock()
	if entry, ok := c.cache[identifier]; ok && c.now().Before(entry.expiresAt) {
		c.mu.RUnlock()
		return cloneRecords(entry.records), nil
	}
	generation, epoch := c.generations[identifier], c.epoch
	c.mu.RUnlock()

	records, err := c.source.Read(ctx, identifier)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generations[identifier] == generation && c.epoch == epoch {
		c.cache[identifier] = &cacheEntry{
			records:   cloneRecords(records),
			expiresAt: c.now().Add(c.ttl),
		}
	}
	c.mu.Unlock()

	return records, nil
}

// Write passes through to the wrapped source when it is a Writer and drops the
// cached entry of identifier.
func (c *Cached) Write(ctx context.Context, identifier string, records []searchresult.Record) error {
	w, ok := c.source.(Writer)
	if !ok {
		return ErrReadOnly
	}
	if err := w.Write(ctx, identifier, records); err != nil {
		return err
	}
	c.Invalidate(identifier)
	return nil
}

// Invalidate drops the cached entry of identifier.
func (c *Cached) Invalidate(identifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.cache, identifier)
	c.generations[identifier]++
}

// ClearCache removes all cached entries.
func (c *Cached) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*cacheEntry)
	c.epoch++
}

// EvictExpired removes expired entries from the cache.
func (c *Cached) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for identifier, entry := range c.cache {
		if !now.Before(entry.expiresAt) {
			delete(c.cache, identifier)
		}
	}
}

// Len returns the number of cached identifiers, expired ones included.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
