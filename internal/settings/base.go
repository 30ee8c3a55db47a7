package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"

	"github.com/dshills/phylab/internal/logging"
	"github.com/dshills/phylab/internal/settings/loader"
	"github.com/dshills/phylab/internal/settings/store"
)

// Base wraps a namespaced store with file load/save behavior. The
// namespace is fixed at construction and conventionally identifies the
// settings kind ("user" vs "internal").
type Base struct {
	store     *store.Store
	namespace string
}

// NewBase creates an empty Base scoped to the given namespace.
func NewBase(namespace string) *Base {
	return &Base{
		store:     store.New(),
		namespace: namespace,
	}
}

// Namespace returns the active namespace name.
func (b *Base) Namespace() string {
	return b.namespace
}

// Set upserts key in the active namespace.
func (b *Base) Set(key string, value any) {
	b.store.Set(b.namespace, key, value)
}

// Get returns the value under key. The not-found failure from the store
// propagates unchanged.
func (b *Base) Get(key string) (any, error) {
	return b.store.Get(b.namespace, key)
}

// Contains reports whether key exists in the active namespace.
func (b *Base) Contains(key string) bool {
	return b.store.Contains(b.namespace, key)
}

// Keys returns the sorted keys of the active namespace.
func (b *Base) Keys() []string {
	return b.store.Keys(b.namespace)
}

// Load parses the file at path and layers its entries over the active
// namespace. When both the existing and incoming values under a key are
// mappings they merge key-by-key; every other combination replaces the
// existing value outright. An empty path is a logged no-op, and parse
// problems never reach the caller (the loader absorbs them).
func (b *Base) Load(path string) {
	if path == "" {
		logging.Logger.Debug().Str("namespace", b.namespace).Msg("no settings path given, skipping load")
		return
	}

	values := loader.Parse(path)
	for key, incoming := range values {
		if existing, err := b.store.Get(b.namespace, key); err == nil {
			existingMap, existingIsMap := existing.(map[string]any)
			incomingMap, incomingIsMap := incoming.(map[string]any)
			if existingIsMap && incomingIsMap {
				b.store.Set(b.namespace, key, deepMerge(existingMap, incomingMap))
				continue
			}
		}
		b.store.Set(b.namespace, key, cloneValue(incoming))
	}

	logging.Logger.Debug().
		Str("namespace", b.namespace).
		Str("path", path).
		Int("keys", len(values)).
		Msg("settings loaded")
}

// Save serializes the active namespace to pretty-printed JSON at path,
// creating parent directories as needed. I/O failures propagate: silent
// data loss is worse than a visible failure.
func (b *Base) Save(path string) error {
	values := b.store.Namespace(b.namespace)

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("serializing %s settings: %w", b.namespace, err)
	}
	data = pretty.Pretty(data)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s settings: %w", b.namespace, err)
	}

	logging.Logger.Debug().
		Str("namespace", b.namespace).
		Str("path", path).
		Msg("settings saved")
	return nil
}
