// Package loader parses settings files into flat key/value mappings.
//
// Two formats are supported, selected by extension: Lua settings scripts
// (flat literal assignments, .lua) and JSON objects (.json). Loading is
// deliberately forgiving: a missing, unreadable, unrecognized, or
// malformed file yields an empty mapping and a warning instead of an
// error, so a bad settings file can never keep the tool from starting.
package loader

import (
	"os"
	"path/filepath"

	"github.com/dshills/phylab/internal/logging"
)

// Extensions recognized by Parse.
const (
	ExtScript = ".lua"
	ExtJSON   = ".json"
)

// Parse reads the settings file at path and returns its top-level
// key/value entries. It never fails; every problem degrades to an empty
// mapping plus a warning.
func Parse(path string) map[string]any {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Logger.Warn().Str("path", path).Err(err).Msg("settings file unreadable")
		return map[string]any{}
	}

	switch filepath.Ext(path) {
	case ExtScript:
		return parseScript(path, data)
	case ExtJSON:
		return parseJSON(path, data)
	default:
		logging.Logger.Warn().Str("path", path).Msg("unrecognized settings file extension")
		return map[string]any{}
	}
}
