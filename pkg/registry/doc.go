// Package registry provides the ordered keyed store that backs every
// extension registry (API actions, utilities, validators, schemas, routes
// and redirects).
//
// A later Put for the same key overwrites the value but keeps the key at the
// position of its first insertion:
//
//	s := registry.New[string]()
//	s.Put("a", "1")
//	s.Put("b", "2")
//	s.Put("a", "3") // returns true
//	s.Keys()        // [a b]
//
// Callers decide how to report an overwrite; the registries built on Store
// log it as a warning.
package registry
