// Package stats keeps the request counters of a running server.
package stats

import (
	"maps"
	"sync"
	"sync/atomic"
)

// Tracker counts accepted requests, hits per requested path and hits per
// missing filesystem path. Counters only grow. All methods are safe for
// concurrent use.
type Tracker struct {
	total atomic.Int64

	mu      sync.Mutex
	paths   map[string]int64
	missing map[string]int64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		paths:   make(map[string]int64),
		missing: make(map[string]int64),
	}
}

// RecordRequest counts one accepted request.
func (t *Tracker) RecordRequest() {
	t.total.Add(1)
}

// RecordPathHit counts one request for the raw request path.
func (t *Tracker) RecordPathHit(rawPath string) {
	t.mu.Lock()
	t.paths[rawPath]++
	t.mu.Unlock()
}

// RecordMissingPath counts one request that resolved to a file that does not exist.
func (t *Tracker) RecordMissingPath(resolvedPath string) {
	t.mu.Lock()
	t.missing[resolvedPath]++
	t.mu.Unlock()
}

func (t *Tracker) TotalRequests() int64 {
	return t.total.Load()
}

// PathHits returns a copy of the per-path counters.
func (t *Tracker) PathHits() map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return maps.Clone(t.paths)
}

// MissingPathHits returns a copy of the per-missing-path counters.
func (t *Tracker) MissingPathHits() map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return maps.Clone(t.missing)
}

// Snapshot is a consistent copy of all counters.
type Snapshot struct {
	TotalRequests   int64
	PathHits        map[string]int64
	MissingPathHits map[string]int64
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		TotalRequests:   t.total.Load(),
		PathHits:        maps.Clone(t.paths),
		MissingPathHits: maps.Clone(t.missing),
	}
}
