// Package memo provides process-wide keyed caches with populate-once-per-key
// semantics. Entries are built at most once even when independent solver
// runs on separate goroutines race for the same key, and they live for the
// lifetime of the process: keys are pure parameter tuples, never puzzle
// instances, so there is nothing to tear down.
package memo

import "sync"

// Cache maps comparable keys to lazily built values. The zero value is not
// usable; create instances with NewCache.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
}

type entry[V any] struct {
	once  sync.Once
	value V
}

// NewCache creates an empty cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]*entry[V])}
}

// Get returns the value for key, building it with build on the first request.
// Concurrent callers for the same key all receive the result of a single
// build invocation; callers for different keys never block each other during
// the build itself, only during the brief map access.
func (c *Cache[K, V]) Get(key K, build func() V) V {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry[V]{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.value = build()
	})
	return e.value
}

// Len returns the number of keys present, populated or in flight.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
