// Package config loads the master configuration script and applies its
// per-type attribute overrides to configurable objects.
//
// The master config is a single Lua script in the user directory that
// assigns values onto a global config table by type name:
//
//	c = get_config()
//	c.TraceView.max_spikes = 100
//	c.ClusterView.colormap = 'viridis'
//
// The script runs in a sandboxed state (see package script); the
// resulting Config maps type name to attribute overrides, and Apply
// copies matching entries onto a Go struct's exported fields.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/phylab/internal/logging"
	"github.com/dshills/phylab/internal/script"
)

// MasterConfigName is the well-known master config filename inside the
// user directory.
const MasterConfigName = "phy_config.lua"

// Config holds per-type attribute overrides parsed from a config script.
type Config struct {
	sections map[string]map[string]any
}

// Section returns the attribute overrides for a type name. An unknown
// type yields nil.
func (c *Config) Section(typeName string) map[string]any {
	if c == nil {
		return nil
	}
	return c.sections[typeName]
}

// Value returns a single attribute override.
func (c *Config) Value(typeName, attr string) (any, bool) {
	section := c.Section(typeName)
	val, ok := section[attr]
	return val, ok
}

// Sections returns the configured type names in sorted order.
func (c *Config) Sections() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.sections))
	for name := range c.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load runs the config script at path and collects the overrides
// assigned to the global config table. Unlike settings files, a broken
// master config is a real error and propagates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config script: %w", err)
	}

	L, err := script.NewSandboxedState()
	if err != nil {
		return nil, err
	}
	defer L.Close()

	c := installConfigTable(L)

	fn, err := L.Load(bytes.NewReader(data), path)
	if err != nil {
		return nil, fmt.Errorf("parsing config script %s: %w", path, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("running config script %s: %w", path, err)
	}

	return collect(path, c), nil
}

// LoadMaster loads the master config from the user directory. Absence
// is not an error; the tool proceeds with no master config.
func LoadMaster(userDir string) (*Config, error) {
	path := filepath.Join(userDir, MasterConfigName)
	if _, err := os.Stat(path); err != nil {
		logging.Logger.Debug().Str("path", path).Msg("no master config")
		return nil, nil
	}
	return Load(path)
}

// installConfigTable creates the auto-vivifying global config table.
// Indexing an absent key creates and remembers a nested table with the
// same behavior, so scripts can write c.TypeName.attr without
// predeclaring anything. The table is reachable both as the global c
// and through get_config().
func installConfigTable(L *lua.LState) *lua.LTable {
	c := L.NewTable()
	mt := L.NewTable()
	L.SetField(mt, "__index", L.NewFunction(func(L *lua.LState) int {
		t := L.CheckTable(1)
		k := L.CheckAny(2)
		nested := L.NewTable()
		L.SetMetatable(nested, mt)
		L.RawSet(t, k, nested)
		L.Push(nested)
		return 1
	}))
	L.SetMetatable(c, mt)

	L.SetGlobal("c", c)
	L.SetGlobal("get_config", L.NewFunction(func(L *lua.LState) int {
		L.Push(c)
		return 1
	}))

	return c
}

// collect converts the config table into a Config. Sections that were
// merely read (auto-vivified but never assigned to) are dropped.
func collect(path string, c *lua.LTable) *Config {
	sections := make(map[string]map[string]any)
	c.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok {
			logging.Logger.Warn().Str("path", path).Msg("ignoring non-string config section")
			return
		}
		table, ok := v.(*lua.LTable)
		if !ok {
			logging.Logger.Warn().Str("path", path).Str("section", string(name)).Msg("ignoring non-table config section")
			return
		}
		attrs, ok := script.ToGoValue(table).(map[string]any)
		if !ok || len(attrs) == 0 {
			return
		}
		sections[string(name)] = attrs
	})

	return &Config{sections: sections}
}
