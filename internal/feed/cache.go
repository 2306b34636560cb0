package feed

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// modListCache keeps mod list payloads by URL. Mod lists only change when a
// dedicated server restarts, so re-downloading them every poll is wasted work.
type modListCache struct {
	lru *expirable.LRU[string, string]
}

func newModListCache(size int, ttl time.Duration) *modListCache {
	return &modListCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (c *modListCache) Get(url string) (string, bool) {
	return c.lru.Get(url)
}

func (c *modListCache) Set(url, body string) {
	c.lru.Add(url, body)
}

func (c *modListCache) Purge() {
	c.lru.Purge()
}
