package pipeline

import (
	"sync"

	"github.com/shipcube/leads-cli/internal/scrape"
)

// SiteCache lets two workers sharing a homepage URL reuse one scrape.
type SiteCache struct {
	mu      sync.Mutex
	entries map[string]*scrape.SiteContent
}

// NewSiteCache creates an empty SiteCache.
func NewSiteCache() *SiteCache {
	return &SiteCache{entries: make(map[string]*scrape.SiteContent)}
}

// Get returns the cached site content for a URL, or nil.
func (c *SiteCache) Get(url string) *scrape.SiteContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[url]
}

// Set stores site content for a URL.
func (c *SiteCache) Set(url string, content *scrape.SiteContent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = content
}
