// Package raster holds the pixel containers and primitives used to build atlases:
// multi-channel 8-bit rasters, cropping, channel extraction, rotation, border
// replication and alpha tested blits.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Mat is an 8-bit raster with 1, 2, 3 or 4 interleaved channels.
//
// Channel layouts:
//
//	1 - luminance
//	2 - luminance, alpha
//	3 - red, green, blue
//	4 - red, green, blue, alpha (non-premultiplied)
//
// The last channel of a 2 or 4 channel raster is transparency.
type Mat struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// New allocates a zeroed raster.
func New(width, height, channels int) *Mat {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Mat{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Validate reports whether the raster can be processed.
func (m *Mat) Validate() error {
	if m == nil {
		return fmt.Errorf("raster: nil raster")
	}
	if m.Channels < 1 || m.Channels > 4 {
		return fmt.Errorf("raster: unsupported channel count %d", m.Channels)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("raster: invalid size %dx%d", m.Width, m.Height)
	}
	if len(m.Pix) != m.Width*m.Height*m.Channels {
		return fmt.Errorf("raster: pixel buffer holds %d bytes, want %d", len(m.Pix), m.Width*m.Height*m.Channels)
	}
	return nil
}

// Empty reports whether the raster has no pixels.
func (m *Mat) Empty() bool {
	return m.Width <= 0 || m.Height <= 0
}

// HasAlpha reports whether the last channel is transparency.
func (m *Mat) HasAlpha() bool {
	return m.Channels == 2 || m.Channels == 4
}

// Stride returns the number of bytes per row.
func (m *Mat) Stride() int {
	return m.Width * m.Channels
}

// PixOffset returns the index of the first channel of the pixel at (x, y).
func (m *Mat) PixOffset(x, y int) int {
	return (y*m.Width + x) * m.Channels
}

// Alpha returns the transparency of the pixel at (x, y). Rasters without an alpha
// channel are fully opaque.
func (m *Mat) Alpha(x, y int) uint8 {
	if !m.HasAlpha() {
		return 0xff
	}
	return m.Pix[m.PixOffset(x, y)+m.Channels-1]
}

// Clone returns a deep copy.
func (m *Mat) Clone() *Mat {
	c := *m
	c.Pix = bytes.Clone(m.Pix)
	return &c
}

// Equal compares size, channel layout and every byte.
func (m *Mat) Equal(o *Mat) bool {
	if m.Width != o.Width || m.Height != o.Height || m.Channels != o.Channels {
		return false
	}
	return bytes.Equal(m.Pix, o.Pix)
}

// ColorModel implements image.Image.
func (m *Mat) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (m *Mat) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image.
func (m *Mat) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return color.NRGBA{}
	}
	return m.NRGBAAt(x, y)
}

// NRGBAAt expands the pixel at (x, y) to non-premultiplied RGBA.
func (m *Mat) NRGBAAt(x, y int) color.NRGBA {
	return toNRGBA(m.Pix[m.PixOffset(x, y):], m.Channels)
}

// Set implements draw.Image.
func (m *Mat) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(m.Bounds())) {
		return
	}
	m.SetNRGBA(x, y, color.NRGBAModel.Convert(c).(color.NRGBA))
}

// SetNRGBA stores c at (x, y), reducing it to the raster's channel layout.
func (m *Mat) SetNRGBA(x, y int, c color.NRGBA) {
	fromNRGBA(m.Pix[m.PixOffset(x, y):], m.Channels, c)
}

// ToNRGBA expands the raster to an *image.NRGBA.
func (m *Mat) ToNRGBA() *image.NRGBA {
	dst := image.NewNRGBA(m.Bounds())
	if m.Channels == 4 {
		copy(dst.Pix, m.Pix)
		return dst
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			dst.SetNRGBA(x, y, m.NRGBAAt(x, y))
		}
	}
	return dst
}

// Gray returns the single-channel raster as an *image.Gray sharing its pixels.
// Rasters with more channels are reduced to luminance first.
func (m *Mat) Gray() *image.Gray {
	src := m
	if m.Channels != 1 {
		src = Convert(m, 1)
	}
	return &image.Gray{Pix: src.Pix, Stride: src.Width, Rect: src.Bounds()}
}

// FromImage converts any image into a raster with the given channel count.
func FromImage(img image.Image, channels int) *Mat {
	src, ok := img.(*image.NRGBA)
	if !ok || src.Rect.Min != (image.Point{}) {
		src = imaging.Clone(img)
	}
	b := src.Bounds()
	dst := New(b.Dx(), b.Dy(), channels)
	if channels == 4 {
		for y := 0; y < dst.Height; y++ {
			copy(dst.Pix[y*dst.Stride():(y+1)*dst.Stride()], src.Pix[y*src.Stride:])
		}
		return dst
	}
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			dst.SetNRGBA(x, y, src.NRGBAAt(x, y))
		}
	}
	return dst
}

// Convert changes the channel layout of a raster.
func Convert(m *Mat, channels int) *Mat {
	if m.Channels == channels {
		return m.Clone()
	}
	dst := New(m.Width, m.Height, channels)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			dst.SetNRGBA(x, y, m.NRGBAAt(x, y))
		}
	}
	return dst
}

func toNRGBA(p []uint8, channels int) color.NRGBA {
	switch channels {
	case 1:
		return color.NRGBA{p[0], p[0], p[0], 0xff}
	case 2:
		return color.NRGBA{p[0], p[0], p[0], p[1]}
	case 3:
		return color.NRGBA{p[0], p[1], p[2], 0xff}
	default:
		return color.NRGBA{p[0], p[1], p[2], p[3]}
	}
}

func fromNRGBA(p []uint8, channels int, c color.NRGBA) {
	switch channels {
	case 1:
		p[0] = luminance(c)
	case 2:
		p[0] = luminance(c)
		p[1] = c.A
	case 3:
		p[0], p[1], p[2] = c.R, c.G, c.B
	default:
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	}
}

// luminance uses the same weights as color.GrayModel; grey input is returned unchanged.
func luminance(c color.NRGBA) uint8 {
	y := (19595*uint32(c.R) + 38470*uint32(c.G) + 7471*uint32(c.B) + 1<<15) >> 16
	return uint8(y)
}
