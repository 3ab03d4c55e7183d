// Package selection holds the user's working program: an ordered set of
// workout records with unique names.
package selection

import (
	"fmt"
	"sync"

	"github.com/meltforce/fitrec/internal/catalog"
)

// Set is an ordered collection of records keyed by name. The zero value is
// ready to use and safe for concurrent use.
type Set struct {
	mu    sync.Mutex
	items []catalog.WorkoutRecord
}

// Add appends w unless a record with the same name is already present.
// It reports whether w was added.
func (s *Set) Add(w catalog.WorkoutRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(w.Name) >= 0 {
		return false
	}
	s.items = append(s.items, w)
	return true
}

// Remove deletes the record at index i and returns it.
func (s *Set) Remove(i int) (catalog.WorkoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.items) {
		return catalog.WorkoutRecord{}, fmt.Errorf("index %d out of range [0,%d)", i, len(s.items))
	}
	w := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	return w, nil
}

// RemoveByName deletes the named record and reports whether it was present.
func (s *Set) RemoveByName(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(name)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Set) Contains(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(name) >= 0
}

// Items returns a copy in insertion order.
func (s *Set) Items() []catalog.WorkoutRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.WorkoutRecord, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Reset empties the set.
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

func (s *Set) indexLocked(name string) int {
	for i, w := range s.items {
		if w.Name == name {
			return i
		}
	}
	return -1
}
