package raster

import (
	"image"
	"image/color"
	"testing"
)

func filled(width, height, channels int, fn func(x, y int) []uint8) *Mat {
	m := New(width, height, channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			copy(m.Pix[m.PixOffset(x, y):], fn(x, y))
		}
	}
	return m
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		mat  *Mat
		ok   bool
	}{
		{"rgba", New(2, 2, 4), true},
		{"luminance", New(3, 1, 1), true},
		{"five channels", New(2, 2, 5), false},
		{"no channels", &Mat{Width: 1, Height: 1}, false},
		{"zero size", New(0, 4, 4), false},
		{"short buffer", &Mat{Width: 2, Height: 2, Channels: 4, Pix: make([]uint8, 4)}, false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mat.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	for _, channels := range []int{1, 2, 3, 4} {
		src := filled(4, 3, channels, func(x, y int) []uint8 {
			return []uint8{uint8(x * 40), uint8(y * 50), uint8(x + y), uint8(200 - x)}[:channels]
		})
		if channels < 3 {
			// luminance layouts only round-trip grey values
			src = filled(4, 3, channels, func(x, y int) []uint8 {
				return []uint8{uint8(x*40 + y), uint8(255 - x)}[:channels]
			})
		}
		back := FromImage(src.ToNRGBA(), channels)
		if !back.Equal(src) {
			t.Errorf("%d channels: round trip changed pixels: %v -> %v", channels, src.Pix, back.Pix)
		}
	}
}

func TestNonZeroBounds(t *testing.T) {
	m := New(10, 8, 1)
	m.Pix[m.PixOffset(2, 3)] = 1
	m.Pix[m.PixOffset(6, 5)] = 255

	if got, want := NonZeroBounds(m), image.Rect(2, 3, 7, 6); got != want {
		t.Errorf("NonZeroBounds() = %v, want %v", got, want)
	}
	if got := NonZeroBounds(New(4, 4, 1)); !got.Empty() {
		t.Errorf("NonZeroBounds(all zero) = %v, want empty", got)
	}
}

func TestCropAndExtract(t *testing.T) {
	m := filled(4, 4, 2, func(x, y int) []uint8 { return []uint8{uint8(10*y + x), uint8(x)} })

	c := Crop(m, image.Rect(1, 1, 3, 4))
	if c.Width != 2 || c.Height != 3 || c.Channels != 2 {
		t.Fatalf("Crop() = %dx%dx%d, want 2x3x2", c.Width, c.Height, c.Channels)
	}
	if got := c.Pix[c.PixOffset(1, 2)]; got != 32 {
		t.Errorf("cropped pixel = %d, want 32", got)
	}

	alpha := ExtractChannel(c, 1)
	if alpha.Channels != 1 || alpha.Pix[alpha.PixOffset(0, 0)] != 1 || alpha.Pix[alpha.PixOffset(1, 0)] != 2 {
		t.Errorf("ExtractChannel() = %v", alpha.Pix)
	}

	if e := Crop(m, image.Rectangle{}); !e.Empty() {
		t.Errorf("Crop(empty) = %dx%d, want empty", e.Width, e.Height)
	}
}

func TestPadReplicatesEdges(t *testing.T) {
	m := filled(2, 1, 1, func(x, y int) []uint8 { return []uint8{uint8(100 + x)} })
	p := Pad(m, 2)
	if p.Width != 6 || p.Height != 5 {
		t.Fatalf("Pad() = %dx%d, want 6x5", p.Width, p.Height)
	}
	want := []uint8{100, 100, 100, 101, 101, 101}
	for y := 0; y < p.Height; y++ {
		for x, w := range want {
			if got := p.Pix[p.PixOffset(x, y)]; got != w {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, w)
			}
		}
	}
}

func TestRotateQuarterTurn(t *testing.T) {
	m := filled(2, 1, 4, func(x, y int) []uint8 {
		if x == 0 {
			return []uint8{255, 0, 0, 255}
		}
		return []uint8{0, 0, 255, 255}
	})
	r := Rotate(m, 1, 0)
	if r.Width != 1 || r.Height != 2 {
		t.Fatalf("Rotate() = %dx%d, want 1x2", r.Width, r.Height)
	}
	if got := r.NRGBAAt(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("top pixel = %v, want red", got)
	}
	if got := r.NRGBAAt(0, 1); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("bottom pixel = %v, want blue", got)
	}
}

func TestRotateAddsAlpha(t *testing.T) {
	m := Fill(New(4, 4, 1), 90)
	r := Rotate(m, 0.6, 0.8)
	if r.Channels != 2 {
		t.Fatalf("Rotate() channels = %d, want 2", r.Channels)
	}
	if a := r.Alpha(0, 0); a != 0 {
		t.Errorf("corner alpha = %d, want transparent", a)
	}
}

func TestBlit(t *testing.T) {
	dst := New(4, 4, 4)
	src := filled(3, 3, 4, func(x, y int) []uint8 {
		if x == 1 && y == 1 {
			return []uint8{9, 9, 9, 0}
		}
		return []uint8{1, 2, 3, 255}
	})

	Blit(dst, src, 2, -1)

	if got := dst.NRGBAAt(2, 0); got != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("blitted pixel = %v", got)
	}
	if got := dst.NRGBAAt(3, 0); got.A != 0 {
		t.Errorf("transparent source pixel was copied: %v", got)
	}
	if got := dst.NRGBAAt(1, 0); got.A != 0 {
		t.Errorf("pixel left of the blit changed: %v", got)
	}

	gray := New(4, 4, 1)
	Blit(gray, src, 0, 0)
	if got := gray.Pix[gray.PixOffset(0, 0)]; got != luminance(color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("converted pixel = %d", got)
	}
}

func TestScale(t *testing.T) {
	m := filled(4, 4, 3, func(x, y int) []uint8 { return []uint8{uint8(x), uint8(y), 7} })
	s := Scale(m, 2, 2)
	if s.Width != 2 || s.Height != 2 || s.Channels != 3 {
		t.Fatalf("Scale() = %dx%dx%d", s.Width, s.Height, s.Channels)
	}
	if s.Pix[2] != 7 {
		t.Errorf("scaled pixel = %v", s.Pix[:3])
	}
}
