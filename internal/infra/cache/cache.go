// Package cache provides a small in-memory TTL cache used for
// slow-changing reads (subtype catalog, agent profile).
package cache

import (
	"sync"
	"time"
)

type item[T any] struct {
	value     T
	expiresAt time.Time
}

// TTLCache is a thread-safe in-memory cache where every entry lives
// for a fixed duration.
type TTLCache[T any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]item[T]
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache and starts its background sweeper. Call Close
// when done so short-lived processes don't leak the sweeper goroutine.
func New[T any](ttl time.Duration) *TTLCache[T] {
	c := &TTLCache[T]{
		ttl:   ttl,
		items: make(map[string]item[T]),
		stop:  make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Get retrieves a value. Returns false if absent or expired.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.items[key]
	if !ok || time.Now().After(it.expiresAt) {
		var zero T
		return zero, false
	}
	return it.value, true
}

// Set stores a value with the configured TTL.
func (c *TTLCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[T]{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Delete removes a value.
func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Close stops the background sweeper. The cache remains usable.
func (c *TTLCache[T]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *TTLCache[T]) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for k, it := range c.items {
				if now.After(it.expiresAt) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
