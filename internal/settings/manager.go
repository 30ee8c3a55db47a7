package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dshills/phylab/internal/logging"
	"github.com/dshills/phylab/internal/scan"
)

// Manager is the user-facing settings facade. It owns a user-scoped
// Base (defaults plus user overrides, read-only in normal operation)
// and an internal-scoped Base (runtime-derived values, explicitly
// saved), and resolves keys with user precedence.
type Manager struct {
	userDir     string
	defaultsDir string

	user     *Base
	internal *Base

	expPath string
}

// Option configures a Manager.
type Option func(*Manager)

// WithUserDir sets the root directory for user files. Defaults to
// ~/.phy.
func WithUserDir(dir string) Option {
	return func(m *Manager) {
		m.userDir = dir
	}
}

// WithDefaultsDir sets a package tree to scan for built-in default
// settings files. Every default_settings.lua found under it loads into
// the user namespace before the user settings file, so user values
// override package defaults key-by-key.
func WithDefaultsDir(dir string) Option {
	return func(m *Manager) {
		m.defaultsDir = dir
	}
}

// NewManager creates a Manager, creating the user directory if absent
// and loading defaults and user settings into the user namespace.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		user:     NewBase("user"),
		internal: NewBase("internal"),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.userDir == "" {
		dir, err := DefaultUserDir()
		if err != nil {
			return nil, fmt.Errorf("resolving user directory: %w", err)
		}
		m.userDir = dir
	}
	if err := os.MkdirAll(m.userDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating user directory %s: %w", m.userDir, err)
	}

	if m.defaultsDir != "" {
		m.loadDefaults()
	}
	if pathExists(m.UserSettingsPath()) {
		m.user.Load(m.UserSettingsPath())
	}

	logging.Logger.Debug().Str("user_dir", m.userDir).Msg("settings manager ready")
	return m, nil
}

// loadDefaults scans the defaults tree and loads every built-in
// defaults script into the user namespace.
func (m *Manager) loadDefaults() {
	files, err := scan.SettingsFiles(m.defaultsDir, DefaultSettingsName)
	if err != nil {
		logging.Logger.Warn().Str("dir", m.defaultsDir).Err(err).Msg("defaults scan failed")
		return
	}
	for _, file := range files {
		m.user.Load(file)
	}
}

// OnOpen records the experiment path of an opened dataset, then loads
// internal settings from the user directory and, if present, the
// per-experiment overrides into the user namespace.
func (m *Manager) OnOpen(path string) {
	m.expPath = path
	logging.Logger.Debug().Str("path", path).Msg("experiment opened")

	if pathExists(m.InternalSettingsPath()) {
		m.internal.Load(m.InternalSettingsPath())
	}
	if pathExists(m.ExpSettingsPath()) {
		m.user.Load(m.ExpSettingsPath())
	}
}

// Get resolves key with user precedence: the user value if present,
// else the internal value, else an error wrapping ErrNotFound.
func (m *Manager) Get(key string) (any, error) {
	if m.user.Contains(key) {
		return m.user.Get(key)
	}
	if m.internal.Contains(key) {
		return m.internal.Get(key)
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// GetDefault resolves key like Get but returns def when the key is
// absent from both stores.
func (m *Manager) GetDefault(key string, def any) any {
	val, err := m.Get(key)
	if err != nil {
		return def
	}
	return val
}

// Set writes key to the internal store. User settings are never mutated
// through the manager.
func (m *Manager) Set(key string, value any) {
	m.internal.Set(key, value)
}

// Contains reports whether key exists in either store.
func (m *Manager) Contains(key string) bool {
	return m.user.Contains(key) || m.internal.Contains(key)
}

// Save persists the internal store to the user directory.
func (m *Manager) Save() error {
	return m.internal.Save(m.InternalSettingsPath())
}

// Keys returns the sorted union of keys across both stores.
func (m *Manager) Keys() []string {
	seen := make(map[string]bool)
	for _, key := range m.user.Keys() {
		seen[key] = true
	}
	for _, key := range m.internal.Keys() {
		seen[key] = true
	}

	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// UserDir returns the root directory for user files.
func (m *Manager) UserDir() string {
	return m.userDir
}

// UserSettingsPath returns the user settings script path.
func (m *Manager) UserSettingsPath() string {
	return filepath.Join(m.userDir, UserSettingsName)
}

// InternalSettingsPath returns the internal settings store path.
// Internal settings are scoped per user directory, not per experiment.
func (m *Manager) InternalSettingsPath() string {
	return filepath.Join(m.userDir, InternalSettingsName)
}

// ExpPath returns the opened experiment path, or "" before OnOpen.
func (m *Manager) ExpPath() string {
	return m.expPath
}

// ExpName returns the stem of the opened experiment path.
func (m *Manager) ExpName() string {
	if m.expPath == "" {
		return ""
	}
	return stem(m.expPath)
}

// ExpSettingsDir returns the settings directory next to the dataset:
// <dir>/<stem>.phy.
func (m *Manager) ExpSettingsDir() string {
	if m.expPath == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(m.expPath), m.ExpName()+expDirSuffix)
}

// ExpSettingsPath returns the per-experiment settings script path.
func (m *Manager) ExpSettingsPath() string {
	if m.expPath == "" {
		return ""
	}
	return filepath.Join(m.ExpSettingsDir(), UserSettingsName)
}

// String returns a debug representation.
func (m *Manager) String() string {
	return fmt.Sprintf("<Manager %s>", m.userDir)
}
