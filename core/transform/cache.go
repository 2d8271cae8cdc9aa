package transform

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/adalundhe/layerkit/core/component"
)

// cache memoizes resolved transforms. Results are deterministic, so an
// evicting implementation only costs recomputation.
type cache interface {
	Get(key component.Key) (Resolved, bool)
	Add(key component.Key, value Resolved)
	Len() int
}

func newCache(size int) cache {
	if size <= 0 {
		return mapCache{}
	}
	c, err := lru.New[component.Key, Resolved](size)
	if err != nil {
		return mapCache{}
	}
	return lruCache{c: c}
}

type mapCache map[component.Key]Resolved

func (m mapCache) Get(key component.Key) (Resolved, bool) {
	v, ok := m[key]
	return v, ok
}

func (m mapCache) Add(key component.Key, value Resolved) {
	m[key] = value
}

func (m mapCache) Len() int {
	return len(m)
}

type lruCache struct {
	c *lru.Cache[component.Key, Resolved]
}

func (l lruCache) Get(key component.Key) (Resolved, bool) {
	return l.c.Get(key)
}

func (l lruCache) Add(key component.Key, value Resolved) {
	l.c.Add(key, value)
}

func (l lruCache) Len() int {
	return l.c.Len()
}

// Cached returns the number of memoized transforms.
func (r *Resolver) Cached() int {
	return r.cache.Len()
}
