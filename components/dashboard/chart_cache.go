package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart output (HTML or geometry) so repeated fetches
// for the same snapshot version are cheap.
type RenderCache[V any] interface {
	GetOrRender(key string, render func() (V, error)) (V, error)
}

// ChartCache is an in-memory TTL cache for rendered charts.
type ChartCache[V any] struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.RWMutex
	entries map[string]cachedChart[V]
}

type cachedChart[V any] struct {
	value   V
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL disables caching.
func NewChartCache[V any](ttl time.Duration) *ChartCache[V] {
	return &ChartCache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedChart[V]),
	}
}

// GetOrRender returns a cached entry or renders/stores a new one.
func (c *ChartCache[V]) GetOrRender(key string, render func() (V, error)) (V, error) {
	if value, ok := c.get(key); ok {
		return value, nil
	}
	value, err := render()
	if err != nil {
		var zero V
		return zero, err
	}
	c.set(key, value)
	return value, nil
}

// Len reports the number of stored entries, expired ones included.
func (c *ChartCache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ChartCache[V]) get(key string) (V, bool) {
	var zero V
	if c == nil || c.ttl <= 0 {
		return zero, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		if ok {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		return zero, false
	}
	return entry.value, true
}

func (c *ChartCache[V]) set(key string, value V) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = cachedChart[V]{
		value:   value,
		expires: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// configHash returns a deterministic hash for the widget configuration.
func configHash(cfg map[string]any) string {
	if len(cfg) == 0 {
		return "empty"
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
