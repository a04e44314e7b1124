package resolver

import (
	"sync"

	"github.com/couchcryptid/zip-time-service/internal/domain"
)

// profileCache is a thread-safe LRU of resolved profiles keyed by normalized
// ZIP code. Profiles are tiny and immutable, so eviction exists only to bound
// growth on services fed arbitrary codes.
type profileCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	zip     string
	profile domain.LocationProfile
	prev    *cacheEntry
	next    *cacheEntry
}

func newProfileCache(maxEntries int) *profileCache {
	return &profileCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

func (c *profileCache) get(zip string) (domain.LocationProfile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[zip]
	if !ok {
		return domain.LocationProfile{}, false
	}
	c.moveToFront(e)
	return e.profile, true
}

func (c *profileCache) put(zip string, profile domain.LocationProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[zip]; ok {
		e.profile = profile
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{zip: zip, profile: profile}
	c.entries[zip] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *profileCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *profileCache) addToFront(e *cacheEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *profileCache) unlink(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *profileCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.zip)
	c.unlink(c.tail)
}
