package service

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Cache memoizes values by key. Concurrent misses for the same key share a single computation; failed
// computations are not stored.
type Cache[T any] struct {
	mu    sync.RWMutex
	store map[string]T
	sf    singleflight.Group
}

func NewCache[T any]() *Cache[T] {
	return &Cache[T]{store: make(map[string]T)}
}

// Get returns the cached value for key, calling compute on a miss.
func (c *Cache[T]) Get(key string, compute func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		log.Debug().Str("key", key).Msg("cache hit")
		return v, nil
	}

	res, err, shared := c.sf.Do(key, func() (any, error) {
		// a previous flight may have completed between the lookup and Do
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		v, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.store[key] = v
		c.mu.Unlock()

		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	if shared {
		log.Debug().Str("key", key).Msg("cache share")
	}

	return res.(T), nil
}

func (c *Cache[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.store[key]
	return v, ok
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
