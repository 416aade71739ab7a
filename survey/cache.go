package survey

import (
	"sync"
	"time"
)

// Loader fetches the authored field list from the store.
type Loader func() ([]FieldDefinition, error)

// Cache keeps the fetched field list for a bounded time so the public
// schema endpoint does not hit the store on every request. Invalidate is
// called whenever an admin mutates the schema; there is no other way an
// entry goes stale early.
type Cache struct {
	mu      sync.Mutex
	loader  Loader
	ttl     time.Duration
	fields  []FieldDefinition
	fetched time.Time
}

func NewCache(loader Loader, ttl time.Duration) *Cache {
	return &Cache{loader: loader, ttl: ttl}
}

// Fields returns the cached field list, reloading it when the entry is
// older than the TTL or has been invalidated. An empty load result falls
// back to DefaultFields.
func (c *Cache) Fields() ([]FieldDefinition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fields != nil && time.Since(c.fetched) < c.ttl {
		return c.fields, nil
	}

	fields, err := c.loader()
	if err != nil {
		// Keep serving the stale entry if there is one.
		if c.fields != nil {
			return c.fields, nil
		}
		return nil, err
	}
	if len(fields) == 0 {
		fields = DefaultFields()
	}
	c.fields = fields
	c.fetched = time.Now()
	return c.fields, nil
}

// Invalidate marks the cached entry stale so the next read reloads. The
// entry itself is kept as a fallback in case that reload fails.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.fetched = time.Time{}
	c.mu.Unlock()
}
