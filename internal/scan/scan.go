// Package scan provides the directory discovery used to locate built-in
// default settings files.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RecursiveDirs returns root and every directory below it, unbounded
// depth, in deterministic lexical order. Directories whose base name
// starts with "." or "_" are pruned along with their entire subtrees.
// The walk is a pure read; results are computed fresh on every call.
func RecursiveDirs(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isExcluded(d.Name()) {
			return fs.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dirs, nil
}

// SettingsFiles returns the existing files named name directly inside
// each directory RecursiveDirs finds under root, in scan order.
func SettingsFiles(root, name string) ([]string, error) {
	dirs, err := RecursiveDirs(root)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, path)
	}

	return files, nil
}

// isExcluded reports whether a directory name marks a hidden or private
// subtree.
func isExcluded(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
