package arsenal

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

const (
	// DefaultPreviewCacheSize bounds the number of cached previews
	DefaultPreviewCacheSize = 1024
	// DefaultPreviewCacheTTL expires previews so reloaded packs show through
	DefaultPreviewCacheTTL = 10 * time.Minute
)

// previewCache memoizes resolved stats per (pack, item, tier, level)
type previewCache struct {
	lru *expirable.LRU[string, stats.Map]
}

func newPreviewCache(size int, ttl time.Duration) *previewCache {
	return &previewCache{
		lru: expirable.NewLRU[string, stats.Map](size, nil, ttl),
	}
}

func previewKey(packKey string, itemID int, tier stats.Tier, level int) string {
	return fmt.Sprintf("%s|%d|%s|%d", packKey, itemID, tier, level)
}

// get returns a copy so callers cannot mutate the cached map
func (c *previewCache) get(key string) (stats.Map, bool) {
	m, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

func (c *previewCache) add(key string, m stats.Map) {
	c.lru.Add(key, m.Clone())
}

func (c *previewCache) len() int {
	return c.lru.Len()
}
