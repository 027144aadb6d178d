package atlas

import (
	"fmt"
	"strings"

	"polyatlas/nest"
)

// Supported ranges. Texture sides stay within what every GPU can sample.
const (
	MinTextureDimension = 512
	MaxTextureDimension = 4096

	MinExtrude = 1
	MaxExtrude = 5

	MinScaleFactor = 1
	MaxScaleFactor = 4
)

// Format is the pixel layout of the atlas pages. Its value is the channel count.
type Format int

const (
	Luminance      Format = 1
	LuminanceAlpha Format = 2
	RGB            Format = 3
	RGBA           Format = 4
)

// Channels returns the number of 8-bit channels per pixel.
func (f Format) Channels() int { return int(f) }

func (f Format) String() string {
	switch f {
	case Luminance:
		return "l"
	case LuminanceAlpha:
		return "la"
	case RGB:
		return "rgb"
	case RGBA:
		return "rgba"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts the names returned by Format.String, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "l", "luminance":
		return Luminance, nil
	case "la", "luminance_alpha":
		return LuminanceAlpha, nil
	case "rgb":
		return RGB, nil
	case "rgba", "":
		return RGBA, nil
	}
	return 0, fmt.Errorf("atlas: unknown pixel format %q", s)
}

// Config controls atlas generation. It is normalized in place by Generate.
type Config struct {
	Format    Format
	MaxWidth  int
	MaxHeight int
	// Extrude is the width of the replicated border drawn around every sprite.
	Extrude int
	// ScaleFactor shrinks sprites by this factor before they are packed.
	ScaleFactor int
	// Nest is handed to the nesting engine. Rotation is always enabled and
	// Epsilon is set to Extrude.
	Nest nest.Config
}

// DefaultConfig returns a 2048x2048 RGBA configuration with a 2 pixel extrude.
func DefaultConfig() Config {
	return Config{
		Format:      RGBA,
		MaxWidth:    2048,
		MaxHeight:   2048,
		Extrude:     2,
		ScaleFactor: MinScaleFactor,
		Nest:        nest.DefaultConfig(),
	}
}

// Normalize clamps every field into its supported range. Out of range values
// are never rejected.
func (c *Config) Normalize() {
	c.MaxWidth = clamp(c.MaxWidth, MinTextureDimension, MaxTextureDimension)
	c.MaxHeight = clamp(c.MaxHeight, MinTextureDimension, MaxTextureDimension)
	c.Extrude = clamp(c.Extrude, MinExtrude, MaxExtrude)
	c.ScaleFactor = clamp(c.ScaleFactor, MinScaleFactor, MaxScaleFactor)
	if c.Format < Luminance || c.Format > RGBA {
		c.Format = RGBA
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
