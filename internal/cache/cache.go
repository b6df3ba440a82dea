package cache

import (
	"sync"
	"time"
)

// Category TTLs, in the corpus's tiers. Anything uncategorized gets the
// default five minutes.
var categoryTTL = map[string]time.Duration{
	"word_data":     time.Hour,
	"user_prefs":    30 * time.Minute,
	"popular_names": 15 * time.Minute,
	"surnames":      2 * time.Hour,
	"poetry":        time.Hour,
}

const defaultTTL = 5 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is an in-process cache collaborator keyed by (category, key) with
// category-specific TTLs. It is an optimization only: callers stay correct
// when every lookup misses.
type Memory struct {
	mu    sync.RWMutex
	data  map[string]entry
	clock func() time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]entry), clock: time.Now}
}

// NewMemoryWithClock creates a cache with an injected clock for tests.
func NewMemoryWithClock(clock func() time.Time) *Memory {
	return &Memory{data: make(map[string]entry), clock: clock}
}

func cacheKey(category, key string) string {
	return category + ":" + key
}

// Get returns the cached value when present and unexpired.
func (m *Memory) Get(category, key string) (any, bool) {
	m.mu.RLock()
	e, ok := m.data[cacheKey(category, key)]
	m.mu.RUnlock()
	if !ok || m.clock().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under the category's TTL.
func (m *Memory) Set(category, key string, value any) {
	ttl, ok := categoryTTL[category]
	if !ok {
		ttl = defaultTTL
	}
	m.mu.Lock()
	m.data[cacheKey(category, key)] = entry{value: value, expiresAt: m.clock().Add(ttl)}
	m.mu.Unlock()
}

// Delete removes a cached value.
func (m *Memory) Delete(category, key string) {
	m.mu.Lock()
	delete(m.data, cacheKey(category, key))
	m.mu.Unlock()
}

// Len reports live (unexpired) entries, for the admin surface.
func (m *Memory) Len() int {
	now := m.clock()
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.data {
		if !now.After(e.expiresAt) {
			n++
		}
	}
	return n
}
