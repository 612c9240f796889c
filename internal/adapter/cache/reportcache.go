// Package cache provides an in-process cache for computed aggregates with
// tag-based invalidation. Any mutation touching a user, budget, period or
// category invalidates every cached aggregate tagged with it; the engine's
// outputs are the ground truth the cache must reflect.
package cache

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
	"github.com/google/uuid"
)

// Tag constructors. Aggregates are keyed by the entities whose mutation
// stales them.

func UserTag(id uuid.UUID) string { return "user:" + id.String() }

func BudgetTag(id uuid.UUID) string { return "budget:" + id.String() }

func PeriodTag(id uuid.UUID) string { return "period:" + id.String() }

func CategoryTag(key string) string { return "category:" + key }

func AccountTag(id uuid.UUID) string { return "account:" + id.String() }

// ReportCache caches computed aggregates in ristretto and keeps a tag
// registry alongside so related entries can be dropped in bulk.
type ReportCache struct {
	cache *ristretto.Cache

	mu   sync.Mutex
	tags map[string]map[string]struct{} // tag -> keys carrying it
}

// New creates a ReportCache sized for interactive dashboard use.
func New() (*ReportCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report cache: %w", err)
	}

	return &ReportCache{
		cache: c,
		tags:  make(map[string]map[string]struct{}),
	}, nil
}

// Get returns the cached value for key, if present.
func (c *ReportCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// Set stores value under key and registers it against the given tags.
func (c *ReportCache) Set(key string, value interface{}, tags ...string) {
	c.mu.Lock()
	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	c.mu.Unlock()

	c.cache.Set(key, value, 1)
}

// Invalidate drops every entry registered against any of the given tags.
func (c *ReportCache) Invalidate(tags ...string) {
	c.mu.Lock()
	stale := make(map[string]struct{})
	for _, tag := range tags {
		for key := range c.tags[tag] {
			stale[key] = struct{}{}
		}
		delete(c.tags, tag)
	}
	c.mu.Unlock()

	for key := range stale {
		c.cache.Del(key)
	}
}

// Wait blocks until buffered writes have been applied. Intended for tests;
// ristretto applies Set asynchronously.
func (c *ReportCache) Wait() {
	c.cache.Wait()
}
