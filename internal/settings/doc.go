// Package settings implements the layered settings system for phylab.
//
// Settings come from three provenance tiers: built-in package defaults
// discovered by directory scan, user-level overrides in the user
// directory, and per-experiment overrides stored alongside a dataset.
// A separate internal JSON store holds runtime-derived values (window
// geometry and the like) that are not meant to be hand-edited.
//
// Base wraps a namespaced store with deep-merge load semantics and JSON
// persistence. Manager binds a user-scoped Base and an internal-scoped
// Base together with correct precedence: user values win on read, writes
// always land in the internal store.
package settings
