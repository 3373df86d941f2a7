// Package cache is the short-TTL read-through layer in front of the
// persistent store. It is always a disposable projection: invalidation or
// expiry simply forces the next reader back to the store. One Cache is
// constructed at process start and shared by every in-flight call.
package cache

import (
	"strings"
	"sync"
	"time"
)

type EntityType string

const (
	EntityBusiness      EntityType = "business"
	EntityHours         EntityType = "hours"
	EntityServices      EntityType = "services"
	EntityResources     EntityType = "resources"
	EntityResourceHours EntityType = "resource_hours"
	EntityAppointments  EntityType = "appointments"
)

const (
	DefaultStaticTTL      = 5 * time.Minute
	DefaultAppointmentTTL = 2 * time.Minute
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

type Cache struct {
	mu             sync.RWMutex
	entries        map[string]entry
	staticTTL      time.Duration
	appointmentTTL time.Duration

	// now is swappable so tests can step time instead of sleeping.
	now func() time.Time
}

func New(staticTTL, appointmentTTL time.Duration) *Cache {
	if staticTTL <= 0 {
		staticTTL = DefaultStaticTTL
	}
	if appointmentTTL <= 0 {
		appointmentTTL = DefaultAppointmentTTL
	}
	return &Cache{
		entries:        make(map[string]entry),
		staticTTL:      staticTTL,
		appointmentTTL: appointmentTTL,
		now:            time.Now,
	}
}

// key layout puts the business id first so invalidation can prefix-scan,
// both business-wide and per entity type.
func key(businessID string, t EntityType, qualifier string) string {
	return businessID + "\x00" + string(t) + "\x00" + qualifier
}

func (c *Cache) ttlFor(t EntityType) time.Duration {
	if t == EntityAppointments {
		return c.appointmentTTL
	}
	return c.staticTTL
}

// Get returns the cached value for (type, business, qualifier), or a miss once
// the entry's TTL has elapsed.
func (c *Cache) Get(t EntityType, businessID, qualifier string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key(businessID, t, qualifier)]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.storedAt) >= e.ttl {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under the type's default TTL.
func (c *Cache) Set(t EntityType, businessID, qualifier string, value any) {
	c.SetWithTTL(t, businessID, qualifier, value, c.ttlFor(t))
}

func (c *Cache) SetWithTTL(t EntityType, businessID, qualifier string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key(businessID, t, qualifier)] = entry{value: value, storedAt: c.now(), ttl: ttl}
	c.mu.Unlock()
}

// Invalidate evicts entries for a business: all of them when no types are
// given (structural change), or only the named entity types (narrow write,
// e.g. appointments after a booking).
func (c *Cache) Invalidate(businessID string, types ...EntityType) {
	prefixes := make([]string, 0, len(types)+1)
	if len(types) == 0 {
		prefixes = append(prefixes, businessID+"\x00")
	}
	for _, t := range types {
		prefixes = append(prefixes, businessID+"\x00"+string(t)+"\x00")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(k, p) {
				delete(c.entries, k)
				break
			}
		}
	}
}

// Len reports live (unexpired) entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if c.now().Sub(e.storedAt) < e.ttl {
			n++
		}
	}
	return n
}

// GetAs is a typed read; a cached value of the wrong type counts as a miss.
func GetAs[T any](c *Cache, t EntityType, businessID, qualifier string) (T, bool) {
	var zero T
	v, ok := c.Get(t, businessID, qualifier)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
