package loader

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeFile creates a settings file in a temp dir and returns its path.
func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseScript(t *testing.T) {
	path := writeFile(t, "test.lua", "a = 4\nb = 5\nd = {k1 = 2, k2 = '3'}")

	got := Parse(path)
	expected := map[string]any{
		"a": int64(4),
		"b": int64(5),
		"d": map[string]any{"k1": int64(2), "k2": "3"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Parse() = %#v, want %#v", got, expected)
	}
}

func TestParseJSON(t *testing.T) {
	path := writeFile(t, "test.json", `{"a": 4, "b": 5, "d": {"k1": 2, "k2": "3"}}`)

	got := Parse(path)
	expected := map[string]any{
		"a": float64(4),
		"b": float64(5),
		"d": map[string]any{"k1": float64(2), "k2": "3"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Parse() = %#v, want %#v", got, expected)
	}
}

func TestParseDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		contents string
	}{
		{"empty script", "test.lua", ""},
		{"truncated script", "test.lua", "a = 4\nb = 5\nd = {k1 = 2, k2 = '"},
		{"script with call", "evil.lua", "a = os.getenv('HOME')"},
		{"truncated json", "test.json", `{"a": 4, "b": 5, "d": {"k1": 2, "k2": "3`},
		{"json non-object", "test.json", `[1, 2, 3]`},
		{"json scalar", "test.json", `42`},
		{"empty json", "test.json", ""},
		{"no extension", "test", "a = 4"},
		{"unknown extension", "test.yaml", "a: 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.filename, tt.contents)

			got := Parse(path)
			if len(got) != 0 {
				t.Errorf("Parse() = %#v, want empty map", got)
			}
		})
	}
}

func TestParseEmptyScriptIsEmptyMap(t *testing.T) {
	path := writeFile(t, "test.lua", "")

	got := Parse(path)
	if got == nil || len(got) != 0 {
		t.Errorf("Parse() = %#v, want non-nil empty map", got)
	}
}

func TestParseMissingFile(t *testing.T) {
	got := Parse(filepath.Join(t.TempDir(), "missing.lua"))
	if len(got) != 0 {
		t.Errorf("Parse() on missing file = %#v, want empty map", got)
	}
}
