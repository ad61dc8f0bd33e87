package bptree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// Cached wraps a tree with an LRU of recently read entries. Lookups that hit
// the LRU skip the descent from the root; Insert and Delete keep the LRU
// coherent with the tree. Like Tree, Cached is not safe for concurrent use.
type Cached[K comparable, V any] struct {
	*Tree[K, V]
	lru *freelru.LRU[K, V]

	hits   uint64
	misses uint64
}

// CacheStats reports lookup cache effectiveness
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// NewCached wraps tree with a lookup cache holding up to capacity entries.
// hash spreads keys over the LRU buckets; HashString and HashInt64 cover
// the common key types.
func NewCached[K comparable, V any](tree *Tree[K, V], capacity uint32, hash func(K) uint32) (*Cached[K, V], error) {
	if capacity == 0 {
		return nil, ErrInvalidCapSize
	}
	if hash == nil {
		return nil, ErrNilHash
	}

	lru, err := freelru.New[K, V](capacity, hash)
	if err != nil {
		return nil, err
	}

	return &Cached[K, V]{
		Tree: tree,
		lru:  lru,
	}, nil
}

// Get returns the value stored for key, consulting the cache first
func (c *Cached[K, V]) Get(key K) (V, bool) {
	if v, ok := c.lru.Get(key); ok {
		c.hits++
		return v, true
	}
	c.misses++

	v, ok := c.Tree.Get(key)
	if ok {
		c.lru.Add(key, v)
	}
	return v, ok
}

// Contains reports whether key is stored, consulting the cache first
func (c *Cached[K, V]) Contains(key K) bool {
	_, ok := c.Get(key)
	return ok
}

// Insert stores value under key and refreshes a cached copy of the entry
func (c *Cached[K, V]) Insert(key K, value V) {
	c.Tree.Insert(key, value)
	if c.lru.Contains(key) {
		c.lru.Add(key, value)
	}
}

// Delete removes key from the tree and from the cache
func (c *Cached[K, V]) Delete(key K) bool {
	c.lru.Remove(key)
	return c.Tree.Delete(key)
}

// Purge drops every cached entry, leaving the tree untouched
func (c *Cached[K, V]) Purge() {
	c.lru.Purge()
}

// CacheStats returns a snapshot of the cache counters
func (c *Cached[K, V]) CacheStats() CacheStats {
	return CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Len:    c.lru.Len(),
	}
}

// HashString hashes string keys for the lookup cache
func HashString(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// HashInt64 hashes integer keys for the lookup cache
func HashInt64(k int64) uint32 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	return uint32(xxhash.Sum64(buf[:]))
}

// HashInt hashes int keys for the lookup cache
func HashInt(k int) uint32 {
	return HashInt64(int64(k))
}
