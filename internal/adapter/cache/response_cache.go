package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"docsearch/internal/domain"
)

// Key identifies one memoized retrieval. Version is the corpus version the
// entry was computed against; bumping the version on reload logically
// invalidates every prior entry since old keys are never constructed again.
type Key struct {
	Query    string
	Category domain.Category
	Version  uint64
}

func (k Key) hash() string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s", k.Version, k.Category, k.Query)))
	return hex.EncodeToString(sum[:16])
}

type entry struct {
	results   []domain.Result
	answer    string
	hasAnswer bool
}

// ResponseCache memoizes retrieval results (and optionally a downstream
// answer) with at most one stored entry per key. Concurrent misses for the
// same key are joined into a single computation.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
	maxSize int
	group   singleflight.Group
}

func NewResponseCache(maxSize int) *ResponseCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &ResponseCache{
		entries: make(map[string]*entry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// GetOrCompute returns the cached results for key, or invokes compute,
// stores its result, and returns it. The second return value reports a
// cache hit. If several goroutines miss on the same key concurrently,
// compute runs exactly once and all callers receive its result.
func (c *ResponseCache) GetOrCompute(key Key, compute func() ([]domain.Result, error)) ([]domain.Result, bool, error) {
	h := key.hash()

	c.mu.RLock()
	e, ok := c.entries[h]
	c.mu.RUnlock()
	if ok {
		c.touch(h)
		return e.results, true, nil
	}

	hit := true
	v, err, _ := c.group.Do(h, func() (any, error) {
		c.mu.RLock()
		e, ok := c.entries[h]
		c.mu.RUnlock()
		if ok {
			return e.results, nil
		}

		hit = false
		results, err := compute()
		if err != nil {
			return nil, err
		}
		c.put(h, &entry{results: results})
		return results, nil
	})
	if err != nil {
		return nil, false, err
	}

	return v.([]domain.Result), hit, nil
}

// StoreAnswer attaches a downstream answer to an existing entry. A no-op if
// the entry has been evicted.
func (c *ResponseCache) StoreAnswer(key Key, answer string) {
	h := key.hash()
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[h]; ok {
		e.answer = answer
		e.hasAnswer = true
	}
}

// Answer returns the memoized downstream answer for key, if any.
func (c *ResponseCache) Answer(key Key) (string, bool) {
	h := key.hash()
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[h]; ok && e.hasAnswer {
		return e.answer, true
	}
	return "", false
}

// Purge drops every entry. Called on corpus reload; the version field in
// keys already prevents stale hits, purging just frees the memory eagerly.
func (c *ResponseCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.order = c.order[:0]
}

// Size returns the number of stored entries.
func (c *ResponseCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ResponseCache) put(h string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[h]; exists {
		c.entries[h] = e
		c.moveToEnd(h)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[h] = e
	c.order = append(c.order, h)
}

func (c *ResponseCache) touch(h string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveToEnd(h)
}

func (c *ResponseCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *ResponseCache) moveToEnd(h string) {
	for i, k := range c.order {
		if k == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.order = append(c.order, h)
}
