package storage

import (
	"time"

	"github.com/maypok86/otter/v2"
)

// Cache is a TTL cache for API lookup results, expiring entries a
// fixed interval after their last write.
type Cache[T any] struct {
	outer *otter.Cache[string, T]
}

func NewCache[T any](capacity int, ttl time.Duration) *Cache[T] {
	c := &Cache[T]{}
	c.outer = otter.Must(&otter.Options[string, T]{
		InitialCapacity:  capacity,
		ExpiryCalculator: otter.ExpiryWriting[string, T](ttl),
	})
	return c
}

func (c *Cache[T]) Set(key string, val T) {
	c.outer.Set(key, val)
}

func (c *Cache[T]) Get(key string) (T, bool) {
	return c.outer.GetIfPresent(key)
}

func (c *Cache[T]) ClearKey(key string) {
	c.outer.Invalidate(key)
}

func (c *Cache[T]) ClearAll() {
	c.outer.InvalidateAll()
}
