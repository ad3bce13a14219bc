package service

import (
	"sync"
	"time"
)

// IDSource hands out creation-timestamp ids (Unix milliseconds) for shopping
// and expense entries. Ids are strictly increasing within a process, and a
// candidate already in use is bumped until it is free.
type IDSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewIDSource returns an IDSource reading the given clock.
// A nil clock means time.Now.
func NewIDSource(now func() time.Time) *IDSource {
	if now == nil {
		now = time.Now
	}
	return &IDSource{now: now}
}

// Next returns a fresh id for which taken reports false.
func (g *IDSource) Next(taken func(int64) bool) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	for taken != nil && taken(id) {
		id++
	}
	g.last = id
	return id
}
