// Package config handles polyatlas configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"polyatlas/atlas"
	"polyatlas/nest"
	"polyatlas/rectpack"
)

// Config holds all CLI settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Atlas   AtlasConfig   `yaml:"atlas"`
	Debug   DebugConfig   `yaml:"debug"`
	Logging LoggingConfig `yaml:"logging"`

	// Unpack is the metadata file to restore sprites from. Flag only.
	Unpack string `yaml:"-"`

	// SavePath receives the merged config before anything runs. Flag only.
	SavePath string `yaml:"-"`
}

// InputConfig selects the sprites.
type InputConfig struct {
	Dir  string `yaml:"dir"`
	Sort bool   `yaml:"sort"` // natural file name order
}

// OutputConfig controls what gets written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // png or webp
}

// AtlasConfig mirrors atlas.Config with names suitable for YAML.
type AtlasConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Extrude     int    `yaml:"extrude"`
	Scale       int    `yaml:"scale"`
	PixelFormat string `yaml:"pixel_format"`
	Placer      string `yaml:"placer"`
	Rotations   int    `yaml:"rotations"`
	Algorithm   string `yaml:"algorithm"` // rect placer only
	Variant     string `yaml:"variant"`
	Sort        string `yaml:"sort"`
}

// DebugConfig enables overlay images of intermediate results.
type DebugConfig struct {
	Overlays bool   `yaml:"overlays"`
	Dir      string `yaml:"dir"` // relative to the output directory
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Dir:  "input",
			Sort: true,
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "png",
		},
		Atlas: AtlasConfig{
			Width:       2048,
			Height:      2048,
			Extrude:     2,
			Scale:       1,
			PixelFormat: "rgba",
			Placer:      nest.PlacerConvex,
			Rotations:   4,
			Algorithm:   "MaxRects",
			Variant:     "BestShortSideFit",
			Sort:        rectpack.SortByArea,
		},
		Debug: DebugConfig{
			Dir: "debug",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings that cannot be clamped.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output.Format) {
	case "png", "webp":
	default:
		return fmt.Errorf("config: unsupported output format %q", c.Output.Format)
	}
	_, err := c.AtlasConfig()
	return err
}

// AtlasConfig converts the atlas section into an atlas.Config. Sizes are left
// for atlas.Config.Normalize to clamp.
func (c *Config) AtlasConfig() (atlas.Config, error) {
	a := c.Atlas
	format, err := atlas.ParseFormat(a.PixelFormat)
	if err != nil {
		return atlas.Config{}, fmt.Errorf("config: %w", err)
	}
	heuristic, err := rectpack.ResolveAlgorithm(a.Algorithm, a.Variant)
	if err != nil {
		return atlas.Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := rectpack.ResolveSort(a.Sort); err != nil {
		return atlas.Config{}, fmt.Errorf("config: %w", err)
	}
	switch a.Placer {
	case nest.PlacerConvex, nest.PlacerRect:
	default:
		return atlas.Config{}, fmt.Errorf("config: %w: %q", nest.ErrBadPlacer, a.Placer)
	}

	cfg := atlas.DefaultConfig()
	cfg.Format = format
	cfg.MaxWidth = a.Width
	cfg.MaxHeight = a.Height
	cfg.Extrude = a.Extrude
	cfg.ScaleFactor = a.Scale
	cfg.Nest.Placer = a.Placer
	cfg.Nest.Heuristic = heuristic
	cfg.Nest.Sort = a.Sort
	if a.Rotations > 0 {
		cfg.Nest.Rotations = a.Rotations
	}
	return cfg, nil
}
