// Package cache keeps recently rendered artifacts in a fixed-size FIFO.
package cache

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"
)

// DefaultCapacity matches the render history depth of the studio session.
const DefaultCapacity = 10

// Artifact is anything the cache can own. The cache releases an artifact
// exactly once, when it is evicted, replaced or cleared.
type Artifact interface {
	Release()
}

type slot struct {
	hash uint64
	key  string
	art  Artifact
}

// Cache is a fixed-capacity FIFO keyed by canonical configuration strings.
// Insertion order alone decides eviction: neither Get nor a re-Put of an
// existing key refreshes a slot's position.
type Cache struct {
	mu    sync.Mutex
	slots []slot
	index map[uint64]int
	head  int
	count int
	log   zerolog.Logger
}

// New returns an empty cache. A capacity below one falls back to
// DefaultCapacity.
func New(capacity int, log zerolog.Logger) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Cache{
		slots: make([]slot, capacity),
		index: make(map[uint64]int, capacity),
		log:   log,
	}
}

// Put stores art under key, evicting the oldest entry when full. Storing a
// key that is already present replaces its artifact in place, releasing
// the old one, and keeps the slot's queue position.
func (c *Cache) Put(key string, art Artifact) {
	hash := xxh3.HashString(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx, ok := c.index[hash]; ok {
		s := &c.slots[idx]
		if s.key != key {
			c.log.Error().Str("key", key).Str("stored", s.key).
				Msg("cache hash collision, replacing slot")
		}
		if s.art != nil && s.art != art {
			s.art.Release()
		}
		s.key = key
		s.art = art
		return
	}

	var idx int
	if c.count == len(c.slots) {
		idx = c.head
		evicted := c.slots[idx]
		delete(c.index, evicted.hash)
		if evicted.art != nil {
			evicted.art.Release()
		}
		c.head = (c.head + 1) % len(c.slots)
	} else {
		idx = (c.head + c.count) % len(c.slots)
		c.count++
	}

	c.slots[idx] = slot{hash: hash, key: key, art: art}
	c.index[hash] = idx
}

// Get returns the artifact stored under key. A hashed slot whose stored
// key differs is logged and treated as a miss.
func (c *Cache) Get(key string) (Artifact, bool) {
	hash := xxh3.HashString(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.index[hash]
	if !ok {
		return nil, false
	}
	s := c.slots[idx]
	if s.key != key {
		c.log.Error().Str("key", key).Str("stored", s.key).
			Msg("cache hash collision, treating as miss")
		return nil, false
	}
	return s.art, true
}

// Contains reports whether key is currently cached.
func (c *Cache) Contains(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Len returns the number of cached artifacts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Capacity returns the fixed slot count.
func (c *Cache) Capacity() int {
	return len(c.slots)
}

// Keys returns the cached keys in insertion order, oldest first.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.count)
	for i := 0; i < c.count; i++ {
		keys = append(keys, c.slots[(c.head+i)%len(c.slots)].key)
	}
	return keys
}

// Clear releases every stored artifact and empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < c.count; i++ {
		s := &c.slots[(c.head+i)%len(c.slots)]
		if s.art != nil {
			s.art.Release()
		}
		*s = slot{}
	}
	c.index = make(map[uint64]int, len(c.slots))
	c.head = 0
	c.count = 0
}
