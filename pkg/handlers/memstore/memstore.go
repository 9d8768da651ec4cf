// Package memstore provides an in-memory handler that is both source and
// sink: values saved through the output side become loadable through the
// input side. Useful for round-tripping values inside a process and as a
// lightweight backend in tests and examples.
package memstore

import (
	"sync"

	"github.com/aretw0/hooksett/pkg/domain"
)

// Store holds the latest value per name.
// Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	values map[string]any
}

// New creates an empty store, optionally seeded with initial values.
func New(seed ...map[string]any) *Store {
	s := &Store{values: make(map[string]any)}
	for _, m := range seed {
		for k, v := range m {
			s.values[k] = v
		}
	}
	return s
}

// Load returns the stored value for name, if any.
func (s *Store) Load(name string, role domain.Role) (any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[name]
	return v, ok, nil
}

// Validate passes every value through untouched.
func (s *Store) Validate(name string, value any, role domain.Role) (any, error) {
	return value, nil
}

// Save stores the value, replacing any earlier one for the same name.
func (s *Store) Save(name string, value any, role domain.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
	return nil
}

// Set stores a value directly, outside any handler chain.
func (s *Store) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[name] = value
}

// Delete removes the value for name.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, name)
}

// Names returns the names with stored values.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.values))
	for n := range s.values {
		names = append(names, n)
	}
	return names
}
