// Package cache provides the bounded LRU used by the solver and the
// renderer result cache.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the entry limit used when a caller passes zero.
const DefaultCapacity = 200

// LRU is a fixed-capacity cache that evicts the least recently used entry
// once full. It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	c *lru.Cache[K, V]
}

// New creates an LRU holding at most capacity entries. A capacity of zero
// or less selects DefaultCapacity.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, _ := lru.New[K, V](capacity) // only fails for size <= 0
	return &LRU[K, V]{c: c}
}

// Get returns the value for key and marks it most recently used.
func (l *LRU[K, V]) Get(key K) (V, bool) {
	return l.c.Get(key)
}

// Set inserts or replaces key as the most recently used entry, evicting
// exactly one least recently used entry when over capacity.
func (l *LRU[K, V]) Set(key K, value V) {
	l.c.Add(key, value)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.c.Len()
}
