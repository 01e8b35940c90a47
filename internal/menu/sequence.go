package menu

import "sync"

// SequenceGuard hands out monotonic per-key request numbers and accepts a
// result only if it answers the latest request issued for that key.
type SequenceGuard struct {
	mu        sync.Mutex
	issued    map[string]uint64
	committed map[string]uint64
}

// NewSequenceGuard returns an empty guard.
func NewSequenceGuard() *SequenceGuard {
	return &SequenceGuard{
		issued:    make(map[string]uint64),
		committed: make(map[string]uint64),
	}
}

// Begin issues the next sequence number for key.
func (g *SequenceGuard) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[key]++
	return g.issued[key]
}

// Commit records seq as the current result for key. It returns false, and
// records nothing, when a newer request has been issued since seq or seq was
// already committed.
func (g *SequenceGuard) Commit(key string, seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if seq != g.issued[key] || seq <= g.committed[key] {
		return false
	}
	g.committed[key] = seq
	return true
}

// Latest reports the newest sequence number issued for key.
func (g *SequenceGuard) Latest(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.issued[key]
}
