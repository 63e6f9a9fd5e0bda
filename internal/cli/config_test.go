package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/resfold/resfold/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
width = 100
strategy = "single-literal"
exts = ["txt", "png"]

[subformats]
txt = "lines"
int = "int"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	want := Config{
		Width:      100,
		Strategy:   "single-literal",
		Exts:       []string{"txt", "png"},
		Subformats: map[string]string{"txt": "lines", "int": "int"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if diff := cmp.Diff(Config{}, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("width = [not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := loadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
	}
}

func TestBuildSubEncodings(t *testing.T) {
	reg, err := buildSubEncodings(
		map[string]string{"txt": "raw", "num": "int"},
		[]string{"txt=lines", ".md=raw"},
	)
	if err != nil {
		t.Fatalf("buildSubEncodings() error = %v", err)
	}

	// Flag binding overrides the config binding for the same extension.
	enc, ok := reg.Lookup("txt")
	if !ok || enc.Name() != "lines" {
		t.Errorf("Lookup(txt) = %v, want lines", enc)
	}
	if enc, ok := reg.Lookup("num"); !ok || enc.Name() != "int" {
		t.Errorf("Lookup(num) = %v, want int", enc)
	}
	// A leading dot in the flag value is tolerated.
	if enc, ok := reg.Lookup("md"); !ok || enc.Name() != "raw" {
		t.Errorf("Lookup(md) = %v, want raw", enc)
	}
}

func TestBuildSubEncodingsErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags []string
	}{
		{"unknown encoding", []string{"txt=nope"}},
		{"missing separator", []string{"txtlines"}},
		{"empty extension", []string{"=lines"}},
		{"empty name", []string{"txt="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildSubEncodings(nil, tt.flags)
			if !errors.Is(err, errors.ErrCodeInvalidSubformat) {
				t.Errorf("buildSubEncodings(%v) error = %v, want INVALID_SUBFORMAT", tt.flags, err)
			}
		})
	}
}
