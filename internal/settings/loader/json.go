package loader

import (
	"github.com/tidwall/gjson"

	"github.com/dshills/phylab/internal/logging"
)

// parseJSON parses a JSON settings file. The file must be a single JSON
// object; its top-level keys become entries.
func parseJSON(path string, data []byte) map[string]any {
	if !gjson.ValidBytes(data) {
		logging.Logger.Warn().Str("path", path).Msg("malformed JSON settings file")
		return map[string]any{}
	}

	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		logging.Logger.Warn().Str("path", path).Msg("JSON settings file is not an object")
		return map[string]any{}
	}

	values, ok := parsed.Value().(map[string]any)
	if !ok {
		logging.Logger.Warn().Str("path", path).Msg("JSON settings file is not an object")
		return map[string]any{}
	}
	return values
}
