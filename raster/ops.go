package raster

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Crop returns a copy of the part of m inside r. A rectangle that does not
// intersect the raster yields an empty raster.
func Crop(m *Mat, r image.Rectangle) *Mat {
	r = r.Intersect(m.Bounds())
	if r.Empty() {
		return New(0, 0, m.Channels)
	}
	return FromImage(imaging.Crop(m.ToNRGBA(), r), m.Channels)
}

// ExtractChannel copies one channel into a single-channel raster.
func ExtractChannel(m *Mat, channel int) *Mat {
	dst := New(m.Width, m.Height, 1)
	for i, j := channel, 0; j < len(dst.Pix); i, j = i+m.Channels, j+1 {
		dst.Pix[j] = m.Pix[i]
	}
	return dst
}

// Fill sets every byte of a single-channel raster to v.
func Fill(m *Mat, v uint8) *Mat {
	for i := range m.Pix {
		m.Pix[i] = v
	}
	return m
}

// NonZeroBounds returns the smallest rectangle containing every pixel of a
// single-channel raster that is not zero. An all-zero raster yields an empty
// rectangle.
func NonZeroBounds(m *Mat) image.Rectangle {
	minX, minY := m.Width, m.Height
	maxX, maxY := -1, -1
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Stride() : (y+1)*m.Stride()]
		for x := 0; x < m.Width; x++ {
			if row[x*m.Channels] == 0 {
				continue
			}
			minX = min(minX, x)
			maxX = max(maxX, x)
			minY = min(minY, y)
			maxY = max(maxY, y)
		}
	}
	if maxX < 0 {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// RotatedSize returns the extent of a width x height rectangle after rotation.
func RotatedSize(width, height int, sin, cos float64) (int, int) {
	w := math.Abs(float64(width)*cos) + math.Abs(float64(height)*sin)
	h := math.Abs(float64(width)*sin) + math.Abs(float64(height)*cos)
	return int(math.Ceil(w - 1e-6)), int(math.Ceil(h - 1e-6))
}

// Rotate turns the raster about its centre by the angle whose sine and cosine
// are given, using nearest neighbour sampling. The result is sized to the
// rotated bounding box and always carries an alpha channel (1 becomes 2
// channels, 3 becomes 4) so that uncovered pixels stay transparent.
//
// The rotation maps (x, y) to (x*cos - y*sin, x*sin + y*cos) in image
// coordinates, the same convention the geometry uses.
func Rotate(m *Mat, sin, cos float64) *Mat {
	dw, dh := RotatedSize(m.Width, m.Height, sin, cos)
	src := m.ToNRGBA()
	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))

	csx, csy := float64(m.Width)/2, float64(m.Height)/2
	cdx, cdy := float64(dw)/2, float64(dh)/2
	s2d := f64.Aff3{
		cos, -sin, cdx - (cos*csx - sin*csy),
		sin, cos, cdy - (sin*csx + cos*csy),
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), draw.Src, nil)
	return FromImage(dst, WithAlpha(m.Channels))
}

// WithAlpha returns the channel count of the layout extended with transparency.
func WithAlpha(channels int) int {
	switch channels {
	case 1:
		return 2
	case 3:
		return 4
	}
	return channels
}

// Pad surrounds the raster with n pixels on every side, replicating the edge
// pixels outward.
func Pad(m *Mat, n int) *Mat {
	if n <= 0 || m.Empty() {
		return m.Clone()
	}
	dst := New(m.Width+2*n, m.Height+2*n, m.Channels)
	for y := 0; y < dst.Height; y++ {
		sy := min(max(y-n, 0), m.Height-1)
		for x := 0; x < dst.Width; x++ {
			sx := min(max(x-n, 0), m.Width-1)
			copy(dst.Pix[dst.PixOffset(x, y):dst.PixOffset(x, y)+dst.Channels], m.Pix[m.PixOffset(sx, sy):])
		}
	}
	return dst
}

// Blit copies src into dst with its top-left corner at (x, y). Fully
// transparent source pixels and pixels falling outside dst are skipped. The
// channel layout is converted when the rasters differ.
func Blit(dst, src *Mat, x, y int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := sy + y
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := sx + x
			if dx < 0 || dx >= dst.Width {
				continue
			}
			if src.Alpha(sx, sy) == 0 {
				continue
			}
			if src.Channels == dst.Channels {
				so := src.PixOffset(sx, sy)
				copy(dst.Pix[dst.PixOffset(dx, dy):], src.Pix[so:so+src.Channels])
				continue
			}
			dst.SetNRGBA(dx, dy, src.NRGBAAt(sx, sy))
		}
	}
}

// Scale resizes the raster with nearest neighbour sampling.
func Scale(m *Mat, width, height int) *Mat {
	if width == m.Width && height == m.Height {
		return m.Clone()
	}
	return FromImage(imaging.Resize(m.ToNRGBA(), width, height, imaging.NearestNeighbor), m.Channels)
}
