package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-intent/internal/model"
)

func entry(title string) Entry {
	return Entry{
		Intent:     model.NewFallbackTask(title),
		Strategy:   model.StrategyFallback,
		Confidence: model.ConfidenceFallback,
		CreatedAt:  time.Now(),
	}
}

func TestNew_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
}

func TestGetPut(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("a", entry("a"))
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, model.StrategyFallback, got.Strategy)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Put("a", entry("a"))
	c.Put("b", entry("b"))
	_, _ = c.Get("a") // b is now least recently used
	c.Put("c", entry("c"))

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, Stats{Len: 2, Capacity: 2}, c.Stats())
}

func TestSnapshot_MostRecentFirst(t *testing.T) {
	c, err := New(3)
	require.NoError(t, err)

	c.Put("a", entry("a"))
	c.Put("b", entry("b"))
	c.Put("c", entry("c"))

	var keys []string
	for _, it := range c.Snapshot() {
		keys = append(keys, it.Key)
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)

	// Snapshot must not refresh recency.
	c.Put("d", entry("d"))
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	c, err := New(DefaultCapacity)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("w%d-%d", w, i)
				c.Put(key, entry(key))
				_, _ = c.Get(key)
				for _, it := range c.Snapshot() {
					_ = it.Entry.Intent.Kind()
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, 1000, c.Stats().Len)
}
