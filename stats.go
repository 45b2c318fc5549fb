package reagent

import (
	"maps"
	"sync"
)

// Stats holds the counters of one session. Counters only go up.
//
// Most counters are updated automatically when trace events are recorded on
// the session. Callers may add their own keys with [Stats.IncrCounter].
//
// All methods are safe for concurrent use.
type Stats struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{counters: make(map[string]int64)}
}

// IncrCounter adds delta to key. Negative deltas and protected keys
// (e.g. KeyIterations) are ignored.
func (s *Stats) IncrCounter(key string, delta int64) {
	if delta < 0 || protectedKeys[key] {
		return
	}
	s.incr(key, delta)
}

func (s *Stats) incr(key string, delta int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[key] += delta
}

// GetCounter returns the value of key, or 0.
func (s *Stats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// GetIterations is shorthand for GetCounter(KeyIterations).
func (s *Stats) GetIterations() int64 {
	return s.GetCounter(KeyIterations)
}

// Counters returns a copy of every counter.
func (s *Stats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.counters)
}
