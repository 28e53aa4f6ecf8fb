package di

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ScopeKind is the lifecycle policy attached to a binding.
type ScopeKind uint8

const (
	// Transient creates a new instance on every resolution.
	Transient ScopeKind = iota

	// InjectorSingleton creates one instance per owning Registry, lazily
	// on first resolution, and reuses it thereafter.
	InjectorSingleton

	// GlobalSingleton creates one instance shared across every Registry
	// in the process, lazily on first global resolution.
	GlobalSingleton
)

// String implements fmt.Stringer.
func (s ScopeKind) String() string {
	switch s {
	case Transient:
		return "transient"
	case InjectorSingleton:
		return "injector-singleton"
	case GlobalSingleton:
		return "global-singleton"
	default:
		return "scope(" + strconv.Itoa(int(s)) + ")"
	}
}

// scopeCache is a compute-once instance cache with per-Key single-flight.
//
// Concurrent callers for the same Key serialize on that Key only, never on
// the cache as a whole, so independent graphs construct in parallel. A
// failed compute is not cached: all waiters of that flight receive the
// error and a later call may retry.
type scopeCache struct {
	mu        sync.Mutex
	instances map[Key]any

	// singleflight groups are keyed by string; Keys are interned to
	// stable ids here because reflect.Type.String is not unique across
	// packages with the same base name.
	ids    map[Key]string
	nextID uint64

	flight singleflight.Group
}

func newScopeCache() *scopeCache {
	return &scopeCache{
		instances: make(map[Key]any),
		ids:       make(map[Key]string),
	}
}

// peek returns the cached instance for k, if any.
func (c *scopeCache) peek(k Key) (any, bool) {
	c.mu.Lock()
	v, ok := c.instances[k]
	c.mu.Unlock()
	return v, ok
}

// get returns the cached instance for k, computing and storing it on miss.
// compute runs at most once per in-flight Key; every concurrent caller
// observes the same instance or the same error.
func (c *scopeCache) get(k Key, compute func() (any, error)) (any, error) {
	c.mu.Lock()
	if v, ok := c.instances[k]; ok {
		c.mu.Unlock()
		return v, nil
	}
	id := c.idLocked(k)
	c.mu.Unlock()

	v, err, _ := c.flight.Do(id, func() (any, error) {
		// A completed flight may have stored between the unlock and Do.
		c.mu.Lock()
		if v, ok := c.instances[k]; ok {
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.instances[k] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		c.flight.Forget(id)
		return nil, err
	}
	return v, nil
}

func (c *scopeCache) idLocked(k Key) string {
	if id, ok := c.ids[k]; ok {
		return id
	}
	c.nextID++
	id := strconv.FormatUint(c.nextID, 10)
	c.ids[k] = id
	return id
}

// drop evicts the cached instance for k, if any. Used when k's binding is
// replaced so the next resolution runs the new provider.
func (c *scopeCache) drop(k Key) {
	c.mu.Lock()
	delete(c.instances, k)
	c.mu.Unlock()
}

// reset drops every cached instance. Interned ids survive so in-flight
// computations keep their serialization keys.
func (c *scopeCache) reset() {
	c.mu.Lock()
	c.instances = make(map[Key]any)
	c.mu.Unlock()
}

// has reports whether k is cached.
func (c *scopeCache) has(k Key) bool {
	_, ok := c.peek(k)
	return ok
}

// globalCache backs GlobalSingleton bindings for the whole process.
var globalCache = newScopeCache()

// ResetGlobal clears every GlobalSingleton instance in the process.
// Intended for test isolation only.
func ResetGlobal() { globalCache.reset() }

// GlobalHas reports whether a GlobalSingleton instance exists for k.
func GlobalHas(k Key) bool { return globalCache.has(k) }
