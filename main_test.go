package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/disintegration/imaging"

	"polyatlas/internal/config"
)

// testSprites 生成三张精灵图: 带透明边的矩形, 菱形, 以及矩形的副本
func testSprites(t *testing.T, dir string) map[string]*image.NRGBA {
	t.Helper()
	rect := image.NewNRGBA(image.Rect(0, 0, 48, 40))
	for y := 6; y < 34; y++ {
		for x := 4; x < 44; x++ {
			rect.SetNRGBA(x, y, color.NRGBA{uint8(x * 5), uint8(y * 6), 90, 255})
		}
	}
	diamond := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if abs(x-50)+abs(y-50) <= 45 {
				diamond.SetNRGBA(x, y, color.NRGBA{uint8(x), uint8(y), 200, 255})
			}
		}
	}
	sprites := map[string]*image.NRGBA{
		"rect.png":    rect,
		"diamond.png": diamond,
		"rect2.png":   rect,
	}
	for name, img := range sprites {
		if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
			t.Fatal(err)
		}
	}
	return sprites
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func testConfig(in, out string) *config.Config {
	cfg := config.Default()
	cfg.Input.Dir = in
	cfg.Output.Dir = out
	cfg.Atlas.Width = 512
	cfg.Atlas.Height = 512
	return cfg
}

// sameSprite 比较还原图与原图: 可见像素完全一致, 透明像素保持透明
func sameSprite(t *testing.T, name string, want, got image.Image) {
	t.Helper()
	if want.Bounds() != got.Bounds() {
		t.Fatalf("%s: bounds %v, want %v", name, got.Bounds(), want.Bounds())
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			w := color.NRGBAModel.Convert(want.At(x, y)).(color.NRGBA)
			g := color.NRGBAModel.Convert(got.At(x, y)).(color.NRGBA)
			if w.A == 0 && g.A == 0 {
				continue
			}
			if w != g {
				t.Fatalf("%s: pixel (%d,%d) = %v, want %v", name, x, y, g, w)
			}
		}
	}
}

func TestRunAndUnpack(t *testing.T) {
	for _, format := range []string{"png", "webp"} {
		t.Run(format, func(t *testing.T) {
			in, out, restored := t.TempDir(), t.TempDir(), t.TempDir()
			sprites := testSprites(t, in)
			cfg := testConfig(in, out)
			cfg.Output.Format = format

			if err := run(cfg, &timings{}); err != nil {
				t.Fatal(err)
			}
			if _, err := os.Stat(filepath.Join(out, "atlas."+format)); err != nil {
				t.Fatalf("atlas page missing: %v", err)
			}

			meta, err := readMetadata(filepath.Join(out, MetadataFile))
			if err != nil {
				t.Fatal(err)
			}
			if len(meta.Atlases) != 1 || len(meta.Sprites) != 3 {
				t.Fatalf("metadata has %d atlases and %d sprites", len(meta.Atlases), len(meta.Sprites))
			}
			byName := map[string]SpriteInfo{}
			for _, s := range meta.Sprites {
				byName[s.Filename] = s
			}
			if tr := byName["rect.png"].Trim; tr != (Region{4, 6, 40, 28}) {
				t.Errorf("rect trim = %+v", tr)
			}
			if !slices.Equal(byName["rect.png"].Polygon, byName["rect2.png"].Polygon) {
				t.Error("duplicate sprites have different polygons")
			}

			n, err := unpack(filepath.Join(out, MetadataFile), restored)
			if err != nil {
				t.Fatal(err)
			}
			if n != 3 {
				t.Errorf("unpacked %d sprites", n)
			}
			for name, want := range sprites {
				got, err := openImage(filepath.Join(restored, name))
				if err != nil {
					t.Fatal(err)
				}
				sameSprite(t, name, want, got)
			}
		})
	}
}

func TestRunDebugOverlays(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	testSprites(t, in)
	cfg := testConfig(in, out)
	cfg.Debug.Overlays = true
	if err := run(cfg, &timings{}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"atlas_0.png", "contour_diamond.png", "hull_diamond.png"} {
		if _, err := os.Stat(filepath.Join(out, "debug", name)); err != nil {
			t.Errorf("overlay %s: %v", name, err)
		}
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("transparent sprite", func(t *testing.T) {
		in := t.TempDir()
		if err := imaging.Save(image.NewNRGBA(image.Rect(0, 0, 8, 8)), filepath.Join(in, "empty.png")); err != nil {
			t.Fatal(err)
		}
		err := run(testConfig(in, t.TempDir()), &timings{})
		if err == nil {
			t.Fatal("expected an error for a fully transparent sprite")
		}
	})
	t.Run("no images", func(t *testing.T) {
		if err := run(testConfig(t.TempDir(), t.TempDir()), &timings{}); err == nil {
			t.Fatal("expected an error for an empty input directory")
		}
	})
	t.Run("bad output format", func(t *testing.T) {
		cfg := testConfig(t.TempDir(), t.TempDir())
		cfg.Output.Format = "gif"
		if err := run(cfg, &timings{}); err == nil {
			t.Fatal("expected an error for an unknown output format")
		}
	})
}

func TestFindImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a10.png", "a2.PNG", "a1.tga", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}
	paths, err := findImages(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, p := range paths {
		got = append(got, filepath.Base(p))
	}
	want := []string{"a1.tga", "a2.PNG", "a10.png"}
	if !slices.Equal(got, want) {
		t.Errorf("findImages() = %v, want %v", got, want)
	}
}

func TestReadImageFilesMixedFormats(t *testing.T) {
	dir := t.TempDir()
	src := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 40), uint8(y * 60), 7, 255})
		}
	}
	for _, name := range []string{"a.png", "b.tga", "c.webp"} {
		if err := saveImage(filepath.Join(dir, name), src); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}

	sprites, err := readImageFiles(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := names(sprites); !slices.Equal(got, []string{"a.png", "b.tga", "c.webp"}) {
		t.Fatalf("names = %v", got)
	}
	for _, s := range sprites {
		if s.mat.Width != 6 || s.mat.Height != 4 {
			t.Errorf("%s: size %dx%d", s.name, s.mat.Width, s.mat.Height)
			continue
		}
		for _, p := range []image.Point{{0, 0}, {5, 0}, {2, 3}} {
			if got, want := s.mat.NRGBAAt(p.X, p.Y), src.NRGBAAt(p.X, p.Y); got != want {
				t.Errorf("%s: pixel %v = %v, want %v", s.name, p, got, want)
			}
		}
	}
}

func TestToRaster(t *testing.T) {
	tests := []struct {
		name     string
		img      image.Image
		channels int
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 2, 2)), 1},
		{"opaque rgba", imaging.New(2, 2, color.NRGBA{1, 2, 3, 255}), 3},
		{"translucent", imaging.New(2, 2, color.NRGBA{1, 2, 3, 4}), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toRaster(tt.img).Channels; got != tt.channels {
				t.Errorf("channels = %d, want %d", got, tt.channels)
			}
		})
	}
}

func TestAtlasName(t *testing.T) {
	if got := atlasName(0, 1, "png"); got != "atlas.png" {
		t.Errorf("single page = %s", got)
	}
	if got := atlasName(2, 3, "webp"); got != "atlas_2.webp" {
		t.Errorf("third page = %s", got)
	}
}

func TestParallel(t *testing.T) {
	seen := make([]int, 1000)
	Parallel(len(seen), func(i int) { seen[i]++ })
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("index %d ran %d times", i, n)
		}
	}
}
