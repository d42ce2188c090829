package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pperr "pixelpad/internal/errors"
	"pixelpad/studio/paint"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixelpad.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	c1, c2, _ := cfg.GridColors()
	if c1 != paint.MustColor("white") || c2 != paint.MustColor("white") {
		t.Fatalf("grid colours = %s/%s, want white/white", c1, c2)
	}
	if init, _ := cfg.InitialColor(); init != paint.MustColor("black") {
		t.Fatalf("initial colour = %s, want black", init)
	}
	bases, _ := cfg.Bases()
	if len(bases) != 7 || bases[0] != paint.Black || bases[6] != paint.Pink {
		t.Fatalf("bases = %v", bases)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Grid.Rows != 64 || cfg.Capture.NameRange != 1000 {
		t.Fatalf("Load(\"\") = %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[grid]
rows = 16
color1 = "red-100"
color2 = "blue-100"

[capture]
dir = "out"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Grid.Rows != 16 || cfg.Grid.ColumnWidth != 12 {
		t.Fatalf("grid = %+v", cfg.Grid)
	}
	if cfg.Capture.Dir != "out" || cfg.Capture.Prefix != "your-art" {
		t.Fatalf("capture = %+v", cfg.Capture)
	}
	c1, c2, err := cfg.GridColors()
	if err != nil || c1.String() != "red-100" || c2.String() != "blue-100" {
		t.Fatalf("GridColors() = %s, %s, %v", c1, c2, err)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "rows", body: "[grid]\nrows = 0\n"},
		{name: "column smaller than cell", body: "[grid]\ncolumn_width = 4\ncell_size = 8\n"},
		{name: "shade on black", body: "[grid]\ncolor1 = \"black-400\"\n"},
		{name: "unknown base", body: "[palette]\ncolors = [\"purple\"]\n"},
		{name: "duplicate base", body: "[palette]\ncolors = [\"red\", \"red\"]\n"},
		{name: "prefix path", body: "[capture]\nprefix = \"../art\"\n"},
		{name: "name range", body: "[capture]\nname_range = 0\n"},
		{name: "narrow window", body: "[window]\nwidth = 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !pperr.IsValidationError(err) {
				t.Fatalf("Load() error %v is not a validation error", err)
			}
		})
	}
}

func TestLoadBadSyntax(t *testing.T) {
	if _, err := Load(writeConfig(t, "[grid\n")); err == nil {
		t.Fatal("Load() accepted malformed TOML")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("Load() accepted a missing file")
	}
}

func TestEncodeLoadsBack(t *testing.T) {
	cfg := Default()
	cfg.Grid.Rows = 9
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(buf.String(), "column_width = 12") {
		t.Fatalf("encoded config missing column_width:\n%s", buf.String())
	}
	got, err := Load(writeConfig(t, buf.String()))
	if err != nil {
		t.Fatalf("Load(encoded): %v", err)
	}
	if got.Grid.Rows != 9 {
		t.Fatalf("rows = %d, want 9", got.Grid.Rows)
	}
}
