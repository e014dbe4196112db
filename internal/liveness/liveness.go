// Package liveness decides whether a shared folder's owner can currently
// serve its contents, for both the owner's own session and guest viewers.
// A live capability can never cross the network, so remote viewers only
// see a replicated (isConnected, connectedBy, lastConnected) triple on the
// folder record and interpret it under a freshness window: the timestamp
// is authoritative, the boolean is an advisory cache.
package liveness

import (
	"context"
	"time"

	"github.com/shivamgupta1319/EasyShare/internal/handlecache"
	"github.com/shivamgupta1319/EasyShare/internal/models"
)

// FreshnessWindow is how recent lastConnected must be for a folder to
// count as connected when no local capability exists. Records older than
// this are disconnected regardless of the stored isConnected flag.
const FreshnessWindow = 5 * time.Minute

// Status is the resolved connection state of a folder as seen by one
// viewer.
type Status int

const (
	// StatusUnknown means the folder has never been scanned, so there is
	// nothing to say about it either way.
	StatusUnknown Status = iota
	StatusConnected
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Checker resolves connection status from the viewer's session state and
// a folder record's replicated fields. It never mutates server state.
type Checker struct {
	handles *handlecache.Cache
	now     func() time.Time
}

// NewChecker builds a checker over the session's handle cache. A nil
// cache is valid and models a viewer that can never be self-live, e.g. a
// guest session.
func NewChecker(handles *handlecache.Cache) *Checker {
	return &Checker{handles: handles, now: time.Now}
}

// WithClock substitutes the time source; tests use this to walk the
// freshness window.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// Check resolves the status of rec for a viewer. Resolution order for the
// owner's own session: a cached capability is health-checked first, and a
// failing probe evicts the handle and reports disconnected so the caller
// prompts reconnection instead of silently serving a stale handle. Guests
// never hold a capability for someone else's folder, so for them only the
// replicated record fields matter.
func (c *Checker) Check(ctx context.Context, rec *models.FileRecord, viewerIsOwner bool) Status {
	if rec == nil || rec.Folder == nil {
		return StatusUnknown
	}

	if viewerIsOwner && c.handles != nil {
		if _, ok := c.handles.Get(rec.ID); ok {
			if c.handles.Probe(ctx, rec.ID) {
				return StatusConnected
			}
			// The grant was revoked out from under us; drop it so the
			// reconnect flow takes over.
			c.handles.Delete(rec.ID)
			return StatusDisconnected
		}
	}

	if rec.Folder.Structure == nil {
		return StatusUnknown
	}
	if c.remoteLive(rec) {
		return StatusConnected
	}
	return StatusDisconnected
}

// remoteLive evaluates the replicated triple. Only an assertion made by
// the owner counts; the most recent writer wins and stale assertions are
// dead regardless of the advisory flag.
func (c *Checker) remoteLive(rec *models.FileRecord) bool {
	f := rec.Folder
	if !f.IsConnected || f.ConnectedBy != rec.OwnerID || f.LastConnected.IsZero() {
		return false
	}
	return c.now().Sub(f.LastConnected) <= FreshnessWindow
}
