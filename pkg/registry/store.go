package registry

import "slices"

// Store is an insertion-ordered keyed store with overwrite semantics.
//
// Keys are case-sensitive. Putting an existing key replaces its value in
// place: the key keeps the position of its first insertion. There is no
// delete operation.
//
// Store is populated once during startup and read concurrently afterwards.
// Concurrent Put calls are not supported.
type Store[V any] struct {
	items map[string]V
	order []string
}

// New creates an empty store.
func New[V any]() *Store[V] {
	return &Store[V]{items: make(map[string]V)}
}

// Put stores v under key and reports whether an existing value was replaced.
func (s *Store[V]) Put(key string, v V) (replaced bool) {
	if s.items == nil {
		s.items = make(map[string]V)
	}
	if _, replaced = s.items[key]; !replaced {
		s.order = append(s.order, key)
	}
	s.items[key] = v
	return replaced
}

// Get returns the value stored under key.
func (s *Store[V]) Get(key string) (V, bool) {
	v, ok := s.items[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Store[V]) Has(key string) bool {
	_, ok := s.items[key]
	return ok
}

// Keys returns the keys in insertion order.
func (s *Store[V]) Keys() []string {
	return slices.Clone(s.order)
}

// Values returns the values in key insertion order.
func (s *Store[V]) Values() []V {
	out := make([]V, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.items[k])
	}
	return out
}

// Len returns the number of keys.
func (s *Store[V]) Len() int {
	return len(s.order)
}

// Each calls fn for every entry in insertion order until fn returns false.
func (s *Store[V]) Each(fn func(key string, v V) bool) {
	for _, k := range s.order {
		if !fn(k, s.items[k]) {
			return
		}
	}
}
