// Package cache memoizes resolved image links across requests.
package cache

import (
	"sync"

	"github.com/anime-shed/random-art-go/internal/resolver"
)

// LinkCache maps canonical source URLs to their resolved links. It
// grows monotonically for the process lifetime: no eviction, no expiry.
// Concurrent readers and writers are safe; two racing misses for the
// same key may both resolve and both store (last write wins).
type LinkCache struct {
	links sync.Map // string -> resolver.ResolvedLink
}

func New() *LinkCache {
	return &LinkCache{}
}

// Get returns a copy of the cached link for a source URL, if any.
func (c *LinkCache) Get(sourceURL string) (resolver.ResolvedLink, bool) {
	value, ok := c.links.Load(sourceURL)
	if !ok {
		return resolver.ResolvedLink{}, false
	}
	return value.(resolver.ResolvedLink).Clone(), true
}

// Put stores a copy of the resolved link for a source URL.
func (c *LinkCache) Put(sourceURL string, link resolver.ResolvedLink) {
	c.links.Store(sourceURL, link.Clone())
}

// Len counts the cached links.
func (c *LinkCache) Len() int {
	count := 0
	c.links.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}
