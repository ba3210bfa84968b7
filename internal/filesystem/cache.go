package filesystem

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of directory listings kept per build.
const DefaultCacheSize = 4096

// CachedSource memoizes directory listings for the lifetime of one build.
// Cover case-correction walks from the root for every override, so the same
// directories are listed many times; a fresh CachedSource per build keeps
// those rescans off the disk without carrying state between builds.
type CachedSource struct {
	Source
	listings *lru.Cache[string, []Entry]
}

// NewCached wraps src with an LRU of at most size listings.
func NewCached(src Source, size int) *CachedSource {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for non-positive sizes.
	listings, _ := lru.New[string, []Entry](size)
	return &CachedSource{Source: src, listings: listings}
}

// ListDirectory returns the cached listing for dir, reading it on first use.
func (c *CachedSource) ListDirectory(dir string) []Entry {
	if entries, ok := c.listings.Get(dir); ok {
		return entries
	}
	entries := c.Source.ListDirectory(dir)
	c.listings.Add(dir, entries)
	return entries
}

// Len reports how many listings are currently cached.
func (c *CachedSource) Len() int {
	return c.listings.Len()
}
