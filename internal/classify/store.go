// Package classify implements the learned name→category mapping and the
// row classification engine built on top of it.
package classify

import "sort"

// Store is the learned mapping from expense name to category. Lookup is an
// exact, case-sensitive string match; re-classifying a name overwrites the
// previous category. A Store is owned by a single run and is not safe for
// concurrent use.
type Store struct {
	m map[string]string
}

func NewStore() *Store {
	return &Store{m: make(map[string]string)}
}

// FromMap builds a store from an existing mapping, copying it.
func FromMap(m map[string]string) *Store {
	s := NewStore()
	for name, category := range m {
		s.m[name] = category
	}
	return s
}

// Lookup returns the category learned for name, if any.
func (s *Store) Lookup(name string) (string, bool) {
	category, ok := s.m[name]
	return category, ok
}

// Set records or overwrites the category for name. The empty string is a
// valid category; no validation happens here.
func (s *Store) Set(name, category string) {
	s.m[name] = category
}

func (s *Store) Len() int {
	return len(s.m)
}

// Snapshot returns a copy of the full mapping for persistence.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string, len(s.m))
	for name, category := range s.m {
		out[name] = category
	}
	return out
}

// Names returns all classified expense names in ascending order.
func (s *Store) Names() []string {
	out := make([]string, 0, len(s.m))
	for name := range s.m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
