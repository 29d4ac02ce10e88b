// FILE: lixenwraith/recorder/mask/set.go
package mask

import (
	"sync"
	"sync/atomic"
)

// Set is an insertion-ordered, copy-on-write collection of rules.
// Readers take an immutable Chain snapshot; writers replace the whole slice.
type Set struct {
	mu    sync.Mutex // serializes writers
	rules atomic.Pointer[Chain]
}

// NewSet creates a set holding rules in the given order
func NewSet(rules ...Rule) *Set {
	s := &Set{}
	s.store(compact(rules))
	return s
}

// Add appends a rule; it is evaluated after every rule already present
func (s *Set) Add(r Rule) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.Snapshot()
	next := make(Chain, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, r)
	s.store(next)
}

// Remove deletes every rule of the given kind and returns how many were removed
func (s *Set) Remove(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.Snapshot()
	next := make(Chain, 0, len(cur))
	for _, r := range cur {
		if r.Kind() != kind {
			next = append(next, r)
		}
	}
	s.store(next)
	return len(cur) - len(next)
}

// Clear removes all rules
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(nil)
}

// Replace swaps the whole rule sequence
func (s *Set) Replace(rules []Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(compact(rules))
}

// Snapshot returns the current rule sequence; callers must not modify it
func (s *Set) Snapshot() Chain {
	p := s.rules.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Len returns the number of rules
func (s *Set) Len() int {
	return len(s.Snapshot())
}

// Evaluate applies the current rules to a single field
func (s *Set) Evaluate(key, value string) string {
	return s.Snapshot().Evaluate(key, value)
}

func (s *Set) store(c Chain) {
	s.rules.Store(&c)
}

// compact copies rules dropping nil entries
func compact(rules []Rule) Chain {
	out := make(Chain, 0, len(rules))
	for _, r := range rules {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}
