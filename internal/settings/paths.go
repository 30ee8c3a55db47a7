package settings

import (
	"os"
	"path/filepath"
)

// Well-known settings file names.
const (
	// UserSettingsName is the user-editable settings script.
	UserSettingsName = "user_settings.lua"
	// InternalSettingsName is the runtime-derived settings store.
	InternalSettingsName = "internal_settings.json"
	// DefaultSettingsName is the per-package built-in defaults script.
	DefaultSettingsName = "default_settings.lua"

	// userDirName is the dot-directory under the user's home.
	userDirName = ".phy"
	// expDirSuffix names the settings directory next to a dataset.
	expDirSuffix = ".phy"
)

// DefaultUserDir returns the conventional user directory, ~/.phy.
func DefaultUserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, userDirName), nil
}

// stem returns the file name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// pathExists reports whether path exists.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
