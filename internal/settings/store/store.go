// Package store provides the namespaced key/value store underlying both
// user and internal settings.
package store

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by store reads.
var (
	// ErrNotFound indicates a missing namespace or key.
	ErrNotFound = errors.New("setting not found")
)

// Store maps (namespace, key) to value. Namespaces are mandatory: reads
// against a namespace that was never written to fail, and only writes
// create namespaces.
type Store struct {
	data map[string]map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{
		data: make(map[string]map[string]any),
	}
}

// Get returns the value under key in namespace. It fails with an error
// wrapping ErrNotFound if the namespace was never declared or the key is
// absent.
func (s *Store) Get(namespace, key string) (any, error) {
	ns, ok := s.data[namespace]
	if !ok {
		return nil, fmt.Errorf("%w: namespace %q", ErrNotFound, namespace)
	}
	val, ok := ns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q in namespace %q", ErrNotFound, key, namespace)
	}
	return val, nil
}

// Set upserts key in namespace, creating the namespace on first use.
func (s *Store) Set(namespace, key string, value any) {
	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string]any)
		s.data[namespace] = ns
	}
	ns[key] = value
}

// Contains reports whether key exists in namespace. It never fails; an
// undeclared namespace simply contains nothing.
func (s *Store) Contains(namespace, key string) bool {
	ns, ok := s.data[namespace]
	if !ok {
		return false
	}
	_, ok = ns[key]
	return ok
}

// Keys returns the sorted keys of namespace. An undeclared namespace
// yields nil.
func (s *Store) Keys(namespace string) []string {
	ns, ok := s.data[namespace]
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(ns))
	for key := range ns {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Namespace returns a copy of the namespace's key/value mapping. An
// undeclared namespace yields an empty map.
func (s *Store) Namespace(namespace string) map[string]any {
	ns := s.data[namespace]
	out := make(map[string]any, len(ns))
	for key, val := range ns {
		out[key] = val
	}
	return out
}
