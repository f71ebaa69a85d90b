// Package cache holds recent interpretations keyed by raw input.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"task-intent/internal/model"
)

// DefaultCapacity is the entry bound used when none is configured.
const DefaultCapacity = 1000

// Entry is one cached interpretation.
type Entry struct {
	Intent     model.Intent
	Strategy   model.StrategyTag
	Confidence float64
	CreatedAt  time.Time
}

// Item pairs a key with its entry in a snapshot.
type Item struct {
	Key   string
	Entry Entry
}

// Stats is the cache occupancy.
type Stats struct {
	Len      int
	Capacity int
}

// Cache is a bounded LRU map. Every operation holds the mutex for its whole
// duration and releases it on all exit paths.
type Cache struct {
	mu       sync.Mutex
	lru      *simplelru.LRU[string, Entry]
	capacity int
}

// New creates a cache bounded to capacity entries.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	lru, err := simplelru.NewLRU[string, Entry](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &Cache{lru: lru, capacity: capacity}, nil
}

// Get returns the entry for key and marks it most recently used.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(key)
}

// Put stores entry under key, evicting the least recently used entry when full.
func (c *Cache) Put(key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, entry)
}

// Snapshot copies all entries, most recently used first, without touching recency.
func (c *Cache) Snapshot() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := c.lru.Keys()
	items := make([]Item, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		if e, ok := c.lru.Peek(keys[i]); ok {
			items = append(items, Item{Key: keys[i], Entry: e})
		}
	}
	return items
}

// Stats reports length and capacity.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Len: c.lru.Len(), Capacity: c.capacity}
}
