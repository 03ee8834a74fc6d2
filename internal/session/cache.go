// internal/session/cache.go
package session

import (
	"container/list"

	"fabin-core/graph"
)

// graphCache keeps built graphs by sequence description, evicting the least
// recently used one past capacity. capacity <= 0 means unbounded.
type graphCache struct {
	cap int
	ll  *list.List
	m   map[string]*list.Element
}

type cacheEntry struct {
	key string
	g   *graph.Graph
}

func newGraphCache(capacity int) *graphCache {
	return &graphCache{cap: capacity, ll: list.New(), m: make(map[string]*list.Element)}
}

func (c *graphCache) Get(key string) (*graph.Graph, bool) {
	e, ok := c.m[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(e)
	return e.Value.(*cacheEntry).g, true
}

func (c *graphCache) Put(key string, g *graph.Graph) {
	if e, ok := c.m[key]; ok {
		e.Value.(*cacheEntry).g = g
		c.ll.MoveToFront(e)
		return
	}
	c.m[key] = c.ll.PushFront(&cacheEntry{key: key, g: g})
	if c.cap > 0 && c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(*cacheEntry).key)
		}
	}
}

func (c *graphCache) Len() int { return c.ll.Len() }

func (c *graphCache) Reset() {
	c.ll.Init()
	clear(c.m)
}
