package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeScript(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeScript(t, t.TempDir(), "config.lua", `
c = get_config()

c.TraceView.max_spikes = 100
c.TraceView.colormap = 'viridis'
c.ClusterView.show_grid = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Sections(); !reflect.DeepEqual(got, []string{"ClusterView", "TraceView"}) {
		t.Errorf("Sections() = %v", got)
	}

	expected := map[string]any{"max_spikes": int64(100), "colormap": "viridis"}
	if got := cfg.Section("TraceView"); !reflect.DeepEqual(got, expected) {
		t.Errorf("Section(TraceView) = %#v, want %#v", got, expected)
	}

	val, ok := cfg.Value("ClusterView", "show_grid")
	if !ok || val != true {
		t.Errorf("Value(ClusterView, show_grid) = %v, %v", val, ok)
	}
}

func TestLoadWithoutGetConfig(t *testing.T) {
	// Writing straight to the global c table works too.
	path := writeScript(t, t.TempDir(), "config.lua", "c.TraceView.max_spikes = 50")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if val, _ := cfg.Value("TraceView", "max_spikes"); val != int64(50) {
		t.Errorf("Value() = %v, want 50", val)
	}
}

func TestLoadReadOnlySectionsDropped(t *testing.T) {
	path := writeScript(t, t.TempDir(), "config.lua", `
c.TraceView.max_spikes = 100
probe = c.ClusterView
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Sections(); !reflect.DeepEqual(got, []string{"TraceView"}) {
		t.Errorf("Sections() = %v, want only TraceView", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"syntax error", "c.TraceView.max_spikes = "},
		{"runtime error", "error('boom')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, t.TempDir(), "config.lua", tt.contents)
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoadMaster(t *testing.T) {
	userDir := t.TempDir()

	// Absent master config is not an error.
	cfg, err := LoadMaster(userDir)
	if err != nil {
		t.Fatalf("LoadMaster() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("LoadMaster() = %v, want nil without a config file", cfg)
	}

	writeScript(t, userDir, MasterConfigName, `
c = get_config()
c.MyConfigurable.my_var = 1.0
`)

	cfg, err = LoadMaster(userDir)
	if err != nil {
		t.Fatalf("LoadMaster() error = %v", err)
	}
	if val, _ := cfg.Value("MyConfigurable", "my_var"); val != int64(1) {
		t.Errorf("Value(MyConfigurable, my_var) = %v, want 1", val)
	}
}

type MyConfigurable struct {
	MyVar     float64
	MaxSpikes int
	Colormap  string
	ShowGrid  bool

	hidden string
}

func TestApply(t *testing.T) {
	path := writeScript(t, t.TempDir(), "config.lua", `
c = get_config()
c.MyConfigurable.my_var = 1.0
c.MyConfigurable.max_spikes = 100
c.MyConfigurable.colormap = 'viridis'
c.MyConfigurable.show_grid = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	target := &MyConfigurable{}
	if err := Apply(cfg, target); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	expected := &MyConfigurable{
		MyVar:     1.0,
		MaxSpikes: 100,
		Colormap:  "viridis",
		ShowGrid:  true,
	}
	if !reflect.DeepEqual(target, expected) {
		t.Errorf("Apply() = %+v, want %+v", target, expected)
	}
}

func TestApplySkipsUnknownAttrs(t *testing.T) {
	path := writeScript(t, t.TempDir(), "config.lua", `
c.MyConfigurable.my_var = 2.5
c.MyConfigurable.no_such_field = 'x'
c.MyConfigurable.hidden = 'x'
c.OtherType.whatever = 1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	target := &MyConfigurable{}
	if err := Apply(cfg, target); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if target.MyVar != 2.5 {
		t.Errorf("MyVar = %v, want 2.5", target.MyVar)
	}
	if target.hidden != "" {
		t.Errorf("hidden = %q, want untouched", target.hidden)
	}
}

func TestApplyTypeMismatch(t *testing.T) {
	path := writeScript(t, t.TempDir(), "config.lua", "c.MyConfigurable.max_spikes = 'lots'")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := Apply(cfg, &MyConfigurable{}); err == nil {
		t.Error("Apply() with mismatched type expected error")
	}
}

func TestApplyNilConfig(t *testing.T) {
	target := &MyConfigurable{MyVar: 3}
	if err := Apply(nil, target); err != nil {
		t.Fatalf("Apply(nil) error = %v", err)
	}
	if target.MyVar != 3 {
		t.Errorf("Apply(nil) mutated target: %v", target.MyVar)
	}
}

func TestApplyBadTarget(t *testing.T) {
	cfg := &Config{sections: map[string]map[string]any{}}

	if err := Apply(cfg, MyConfigurable{}); err == nil {
		t.Error("Apply() with non-pointer target expected error")
	}
	var nilTarget *MyConfigurable
	if err := Apply(cfg, nilTarget); err == nil {
		t.Error("Apply() with nil pointer expected error")
	}
}
