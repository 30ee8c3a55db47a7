package loader

import (
	"github.com/dshills/phylab/internal/logging"
	"github.com/dshills/phylab/internal/script"
)

// parseScript parses a Lua settings script. Only flat literal
// assignments are honored; anything else makes the file malformed and
// the whole file is discarded.
func parseScript(path string, data []byte) map[string]any {
	values, err := script.Literals(data, path)
	if err != nil {
		logging.Logger.Warn().Str("path", path).Err(err).Msg("malformed settings script")
		return map[string]any{}
	}
	return values
}
