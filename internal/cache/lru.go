// Package cache is a process-lifetime, in-memory translation cache
// (spec.md 4.4). The teacher backed this with Redis
// (internal/cache/redis.go); that dependency is dropped in favor of an
// in-process LRU with per-entry TTL, structurally grounded in
// Gizzahub-gzh-cli/pkg/cache/lru_cache.go, with the key scheme grounded in
// the teacher's generateKey/GenerateSourceHash approach (see DESIGN.md).
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// Key identifies one cached translation. Equal fields must produce equal
// cache keys regardless of map/struct ordering, so callers should build Key
// through NewKey rather than constructing it by hand.
type Key struct {
	Text   string
	Source string
	Target string
}

// NewKey builds a Key from raw inputs, collapsing incidental whitespace
// differences the way the teacher's GenerateSourceHash did, so that
// "hello" and " hello " share a cache entry. An empty source is stored as
// the literal "auto".
func NewKey(text, source, target string) Key {
	src := strings.ToLower(strings.TrimSpace(source))
	if src == "" {
		src = "auto"
	}
	return Key{
		Text:   collapseWhitespace(text),
		Source: src,
		Target: strings.ToLower(strings.TrimSpace(target)),
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Result is the cached payload, a trimmed mirror of provider.Result so this
// package has no dependency on internal/provider.
type Result struct {
	TranslatedText string
	DetectedSource string
	Provider       string
}

type entry struct {
	key       Key
	value     Result
	expiresAt time.Time
	element   *list.Element
}

// Cache is a thread-safe, capacity-bounded, TTL-expiring LRU store. It holds
// no connections and survives only for the life of the process (spec.md 4.4
// Non-goals).
type Cache struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	entries   map[Key]*entry
	evictList *list.List

	hits      int64
	misses    int64
	evictions int64
}

// New constructs a Cache with the given capacity and default TTL. A
// non-positive capacity disables eviction tracking and a non-positive ttl
// disables expiry (entries live until evicted by capacity).
func New(capacity int, ttl time.Duration) *Cache {
	return &Cache{
		capacity:  capacity,
		ttl:       ttl,
		entries:   make(map[Key]*entry),
		evictList: list.New(),
	}
}

// Get returns the cached Result for key, or false if absent or expired.
// Expiry is checked lazily, on read, matching spec.md 4.4's "checked lazily
// on Get" contract rather than a background sweep.
func (c *Cache) Get(key Key) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return Result{}, false
	}
	if c.isExpired(e) {
		c.removeElement(e)
		c.misses++
		return Result{}, false
	}

	c.evictList.MoveToFront(e.element)
	c.hits++
	return e.value, true
}

// Put stores value under key using the cache's default TTL.
func (c *Cache) Put(key Key, value Result) {
	c.PutWithTTL(key, value, c.ttl)
}

// PutWithTTL stores value under key with an explicit TTL, overriding the
// cache's default for this entry only.
func (c *Cache) PutWithTTL(key Key, value Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.evictList.MoveToFront(e.element)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	e.element = c.evictList.PushFront(key)
	c.entries[key] = e

	if c.capacity > 0 && c.evictList.Len() > c.capacity {
		c.evictOldest()
	}
}

// Len returns the number of entries currently held, including any not yet
// lazily expired.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports cumulative hit/miss/eviction counters for the operational
// surface's /stats endpoint.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.entries),
		Capacity:  c.capacity,
	}
}

func (c *Cache) isExpired(e *entry) bool {
	if e.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(e.expiresAt)
}

func (c *Cache) evictOldest() {
	oldest := c.evictList.Back()
	if oldest == nil {
		return
	}
	key := oldest.Value.(Key)
	if e, ok := c.entries[key]; ok {
		c.removeElement(e)
		c.evictions++
	}
}

func (c *Cache) removeElement(e *entry) {
	c.evictList.Remove(e.element)
	delete(c.entries, e.key)
}
