package cache

import (
	"sync"
	"time"
)

// Cache loads values by key on first use and reloads them after ttl.
// A zero ttl keeps values until they are removed by Clean.
type Cache[T any] struct {
	m      sync.Map
	ttl    time.Duration
	loader func(key string) (T, error)
}

type entry[T any] struct {
	mx    sync.Mutex
	value T
	ts    time.Time
}

func NewWithTTL[T any](ttl time.Duration, loader func(key string) (T, error)) *Cache[T] {
	return &Cache[T]{
		m:      sync.Map{},
		ttl:    ttl,
		loader: loader,
	}
}

// Clean drops entries unused for ten ttl periods, or all idle entries when ttl is zero.
func (c *Cache[T]) Clean() {
	c.m.Range(func(key, value any) bool {
		e := value.(*entry[T])

		if !e.mx.TryLock() {
			return true
		}

		defer e.mx.Unlock()

		if c.ttl == 0 || time.Since(e.ts) > c.ttl*10 {
			c.m.Delete(key)
		}

		return true
	})
}

// Load returns the cached value for key, calling the loader when it is missing or stale.
// Loader errors are returned and not cached.
func (c *Cache[T]) Load(key string) (T, error) {
	var e *entry[T]

	if v, ok := c.m.Load(key); ok {
		e = v.(*entry[T])
	} else {
		v1, _ := c.m.LoadOrStore(key, new(entry[T]))
		e = v1.(*entry[T])
	}

	e.mx.Lock()
	defer e.mx.Unlock()

	if e.ts.IsZero() || (c.ttl > 0 && time.Since(e.ts) > c.ttl) {
		v, err := c.loader(key)
		if err != nil {
			var zero T
			return zero, err
		}

		e.value = v
		e.ts = time.Now()
	}

	return e.value, nil
}

// Len counts the entries, loaded or not.
func (c *Cache[T]) Len() int {
	n := 0

	c.m.Range(func(_, _ any) bool {
		n++
		return true
	})

	return n
}
