// Package handlecache holds the live directory capabilities of the current
// session, keyed by folder id. Entries are never persisted: a capability
// dies with the session that obtained it, so a fresh process always starts
// empty and owners go through the reconnect flow.
package handlecache

import (
	"context"
	"sync"

	"github.com/shivamgupta1319/EasyShare/internal/fsys"
)

// Cache is a session-scoped capability registry. Construct one per
// session and pass it explicitly to the liveness checker and scanner
// callers; it is deliberately not a package-level singleton so concurrent
// sessions and tests stay isolated.
type Cache struct {
	mu      sync.RWMutex
	handles map[string]fsys.Capability
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{handles: make(map[string]fsys.Capability)}
}

// Put stores the capability for a folder id, replacing any previous one.
func (c *Cache) Put(folderID string, cap fsys.Capability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles[folderID] = cap
}

// Get returns the cached capability for a folder id.
func (c *Cache) Get(folderID string) (fsys.Capability, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cap, ok := c.handles[folderID]
	return cap, ok
}

// Delete drops a folder's capability, if present.
func (c *Cache) Delete(folderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handles, folderID)
}

// Len returns the number of cached capabilities.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}

// Probe health-checks the cached capability for a folder id by attempting
// to enumerate a single entry. The underlying grant can be revoked by the
// host at any time, so any enumeration failure means loss of liveness and
// reports false; an empty directory still probes true.
func (c *Cache) Probe(ctx context.Context, folderID string) bool {
	cap, ok := c.Get(folderID)
	if !ok {
		return false
	}
	return ProbeCapability(ctx, cap)
}

// ProbeCapability runs the single-entry health check against a capability.
func ProbeCapability(ctx context.Context, cap fsys.Capability) bool {
	for _, err := range cap.Enumerate(ctx) {
		return err == nil
	}
	// Nothing yielded at all: an empty directory enumerates cleanly.
	return true
}
