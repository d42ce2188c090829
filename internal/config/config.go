package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	pperr "pixelpad/internal/errors"
	"pixelpad/studio/paint"
)

// Config is the pixelpad configuration. Every field has a default; a TOML
// file only needs the keys it changes.
type Config struct {
	Grid    GridConfig    `toml:"grid"`
	Palette PaletteConfig `toml:"palette"`
	Capture CaptureConfig `toml:"capture"`
	Window  WindowConfig  `toml:"window"`
}

type GridConfig struct {
	Rows        int    `toml:"rows"`
	ColumnWidth int    `toml:"column_width"` // px per column when deriving the column count
	CellSize    int    `toml:"cell_size"`    // px edge of a drawn cell
	Color1      string `toml:"color1"`
	Color2      string `toml:"color2"`
}

type PaletteConfig struct {
	Colors     []string `toml:"colors"`
	SwatchSize int      `toml:"swatch_size"` // layout units; 1 unit = 4px
	Initial    string   `toml:"initial"`
}

type CaptureConfig struct {
	Dir       string `toml:"dir"`
	Prefix    string `toml:"prefix"`
	NameRange int    `toml:"name_range"`
}

type WindowConfig struct {
	Width int `toml:"width"`
	Scale int `toml:"scale"`
	TPS   int `toml:"tps"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Rows:        64,
			ColumnWidth: 12,
			CellSize:    12,
			Color1:      "white",
			Color2:      "white",
		},
		Palette: PaletteConfig{
			Colors:     []string{"black", "white", "red", "blue", "green", "orange", "pink"},
			SwatchSize: 8,
			Initial:    "black",
		},
		Capture: CaptureConfig{
			Prefix:    "your-art",
			NameRange: 1000,
		},
		Window: WindowConfig{
			Width: 960,
			Scale: 1,
			TPS:   60,
		},
	}
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks ranges and colour names.
func (c Config) Validate() error {
	g := c.Grid
	if g.Rows < 1 || g.Rows > 1024 {
		return pperr.InvalidField("grid.rows", fmt.Sprintf("%d out of range 1..1024", g.Rows))
	}
	if g.CellSize < 1 {
		return pperr.InvalidField("grid.cell_size", "must be positive")
	}
	if g.ColumnWidth < g.CellSize {
		return pperr.InvalidField("grid.column_width", fmt.Sprintf("%d is smaller than cell_size %d", g.ColumnWidth, g.CellSize))
	}
	if _, _, err := c.GridColors(); err != nil {
		return err
	}

	if _, err := c.Bases(); err != nil {
		return err
	}
	if c.Palette.SwatchSize < 1 {
		return pperr.InvalidField("palette.swatch_size", "must be positive")
	}
	if _, err := c.InitialColor(); err != nil {
		return err
	}

	if c.Capture.Prefix == "" || strings.ContainsAny(c.Capture.Prefix, `/\`) {
		return pperr.InvalidField("capture.prefix", fmt.Sprintf("%q is not a plain file name", c.Capture.Prefix))
	}
	if c.Capture.NameRange < 1 {
		return pperr.InvalidField("capture.name_range", "must be positive")
	}

	if c.Window.Width < 2*g.ColumnWidth {
		return pperr.InvalidField("window.width", fmt.Sprintf("%d leaves no room for a column", c.Window.Width))
	}
	if c.Window.Scale < 1 {
		return pperr.InvalidField("window.scale", "must be positive")
	}
	if c.Window.TPS < 1 {
		return pperr.InvalidField("window.tps", "must be positive")
	}
	return nil
}

// GridColors returns the checkerboard colours.
func (c Config) GridColors() (paint.Color, paint.Color, error) {
	c1, err := paint.ParseColor(c.Grid.Color1)
	if err != nil {
		return paint.Color{}, paint.Color{}, fmt.Errorf("grid.color1: %w", err)
	}
	c2, err := paint.ParseColor(c.Grid.Color2)
	if err != nil {
		return paint.Color{}, paint.Color{}, fmt.Errorf("grid.color2: %w", err)
	}
	return c1, c2, nil
}

// Bases returns the palette bases in display order.
func (c Config) Bases() ([]paint.Base, error) {
	if len(c.Palette.Colors) == 0 {
		return nil, pperr.InvalidField("palette.colors", "empty")
	}
	seen := map[paint.Base]bool{}
	out := make([]paint.Base, 0, len(c.Palette.Colors))
	for _, name := range c.Palette.Colors {
		b, err := paint.ParseBase(name)
		if err != nil {
			return nil, fmt.Errorf("palette.colors: %w", err)
		}
		if seen[b] {
			return nil, pperr.InvalidField("palette.colors", fmt.Sprintf("%s listed twice", b))
		}
		seen[b] = true
		out = append(out, b)
	}
	return out, nil
}

// InitialColor is the session colour before any selection.
func (c Config) InitialColor() (paint.Color, error) {
	col, err := paint.ParseColor(c.Palette.Initial)
	if err != nil {
		return paint.Color{}, fmt.Errorf("palette.initial: %w", err)
	}
	return col, nil
}
