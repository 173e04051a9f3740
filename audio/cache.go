package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// bufferCache shares decoded sources between handles opened on the same path
// Concurrent loads of one path decode once; entries are freed with their last reference
type bufferCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	buf   *beep.Buffer
	err   error
	refs  int
	ready chan struct{} // Closed when decoding finishes
}

func newBufferCache() *bufferCache {
	return &bufferCache{entries: make(map[string]*cacheEntry)}
}

// acquire returns the buffer for path, decoding it if no handle holds it
// On success the caller owns one reference and must release it
func (c *bufferCache) acquire(path string, decode func(string) (*beep.Buffer, error)) (*beep.Buffer, error) {
	c.mu.Lock()
	if entry, ok := c.entries[path]; ok {
		entry.refs++
		c.mu.Unlock()

		<-entry.ready
		if entry.err != nil {
			return nil, entry.err
		}
		return entry.buf, nil
	}

	entry := &cacheEntry{refs: 1, ready: make(chan struct{})}
	c.entries[path] = entry
	c.mu.Unlock()

	entry.buf, entry.err = decode(path)

	// Failed entries are dropped so a later load retries the decode
	if entry.err != nil {
		c.mu.Lock()
		if c.entries[path] == entry {
			delete(c.entries, path)
		}
		c.mu.Unlock()
	}
	close(entry.ready)

	if entry.err != nil {
		return nil, entry.err
	}
	return entry.buf, nil
}

// release drops one reference to path
func (c *bufferCache) release(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(c.entries, path)
	}
}

// len returns the number of cached sources
func (c *bufferCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
