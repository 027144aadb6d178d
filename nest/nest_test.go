package nest

import (
	"errors"
	"math"
	"testing"

	"polyatlas/geom"
)

func rectLoop(w, h int) []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}, {X: 0, Y: 0}}
}

func triangleLoop(s int) []geom.Point {
	return []geom.Point{{X: 0, Y: 0}, {X: s, Y: 0}, {X: 0, Y: s}, {X: 0, Y: 0}}
}

// checkLayout verifies that placed items stay inside their bin, away from the
// edges, and apart from each other.
func checkLayout(t *testing.T, items []*Item, bin Box, spacing float64) {
	t.Helper()
	pad := spacing / 2
	for i, a := range items {
		if a.BinID() == BinIDUnset {
			continue
		}
		bb := a.BoundingBox()
		if bb.Min.X < pad-1e-6 || bb.Min.Y < pad-1e-6 || bb.Max.X > bin.Width-pad+1e-6 || bb.Max.Y > bin.Height-pad+1e-6 {
			t.Errorf("item %d box %v leaves the bin", i, bb)
		}
		for j, b := range items[i+1:] {
			if b.BinID() != a.BinID() {
				continue
			}
			if geom.Overlap(a.TransformedShape(), b.TransformedShape(), spacing-1e-3) {
				t.Errorf("items %d and %d are closer than %v", i, i+1+j, spacing)
			}
		}
	}
}

func TestNestPlacers(t *testing.T) {
	for _, placer := range []string{PlacerConvex, PlacerRect} {
		t.Run(placer, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Placer = placer
			var items []*Item
			for i := 0; i < 12; i++ {
				items = append(items, NewItem(rectLoop(20+i*3, 30)))
				items = append(items, NewItem(triangleLoop(25+i)))
			}
			bin := Box{Width: 256, Height: 256}

			calls := 0
			bins, err := Nest(items, bin, 4, cfg, func(placed, total int) {
				calls++
				if placed != calls || total != len(items) {
					t.Errorf("progress(%d, %d) on call %d", placed, total, calls)
				}
			})
			if err != nil {
				t.Fatal(err)
			}
			if bins < 1 {
				t.Fatalf("Nest() = %d bins", bins)
			}
			for i, it := range items {
				if it.BinID() == BinIDUnset || it.BinID() >= bins {
					t.Errorf("item %d has bin %d", i, it.BinID())
				}
			}
			if calls != len(items) {
				t.Errorf("progress called %d times, want %d", calls, len(items))
			}
			checkLayout(t, items, bin, 4)
		})
	}
}

func TestNestOpensBins(t *testing.T) {
	for _, placer := range []string{PlacerConvex, PlacerRect} {
		t.Run(placer, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Placer = placer
			items := make([]*Item, 6)
			for i := range items {
				items[i] = NewItem(rectLoop(40, 40))
			}
			bin := Box{Width: 128, Height: 128}
			bins, err := Nest(items, bin, 4, cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			// 44x44 with spacing: two per row, two rows per bin
			if bins != 2 {
				t.Errorf("Nest() = %d bins, want 2", bins)
			}
			checkLayout(t, items, bin, 4)
		})
	}
}

func TestNestRotates(t *testing.T) {
	for _, placer := range []string{PlacerConvex, PlacerRect} {
		t.Run(placer, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Placer = placer
			it := NewItem(rectLoop(10, 80))
			bin := Box{Width: 100, Height: 40}
			bins, err := Nest([]*Item{it}, bin, 2, cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			if bins != 1 || it.BinID() != 0 {
				t.Fatalf("Nest() = %d bins, item bin %d", bins, it.BinID())
			}
			if r := it.Rotation(); math.Abs(r.Sin) != 1 {
				t.Errorf("rotation = %v degrees, want a quarter turn", r.Degrees())
			}
			checkLayout(t, []*Item{it}, bin, 2)

			cfg.AllowRotations = false
			if _, err := Nest([]*Item{it}, bin, 2, cfg, nil); err != nil {
				t.Fatal(err)
			}
			if it.BinID() != BinIDUnset {
				t.Errorf("unrotatable item placed in bin %d", it.BinID())
			}
		})
	}
}

func TestNestTooLarge(t *testing.T) {
	for _, placer := range []string{PlacerConvex, PlacerRect} {
		cfg := DefaultConfig()
		cfg.Placer = placer
		big := NewItem(rectLoop(300, 300))
		small := NewItem(rectLoop(10, 10))
		bins, err := Nest([]*Item{big, small}, Box{Width: 128, Height: 128}, 2, cfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		if bins != 1 || big.BinID() != BinIDUnset || small.BinID() != 0 {
			t.Errorf("%s: bins=%d big=%d small=%d", placer, bins, big.BinID(), small.BinID())
		}
	}
}

func TestNestErrors(t *testing.T) {
	items := []*Item{NewItem(rectLoop(4, 4))}
	cfg := DefaultConfig()

	if _, err := Nest(items, Box{Width: 0, Height: 10}, 0, cfg, nil); !errors.Is(err, ErrBadBin) {
		t.Errorf("zero bin: err = %v", err)
	}
	cfg.Placer = "genetic"
	if _, err := Nest(items, Box{Width: 10, Height: 10}, 0, cfg, nil); !errors.Is(err, ErrBadPlacer) {
		t.Errorf("unknown placer: err = %v", err)
	}
	cfg = DefaultConfig()
	cfg.Placer = PlacerRect
	cfg.Sort = "colour"
	if _, err := Nest(items, Box{Width: 10, Height: 10}, 0, cfg, nil); err == nil {
		t.Error("unknown sort order accepted")
	}
	if _, err := Nest([]*Item{NewItem(nil)}, Box{Width: 10, Height: 10}, 0, DefaultConfig(), nil); !errors.Is(err, ErrBadShape) {
		t.Errorf("empty shape: err = %v", err)
	}
}

func TestItemTransform(t *testing.T) {
	it := NewItem(rectLoop(4, 2))
	if len(it.Shape()) != 4 || it.Area() != 8 {
		t.Fatalf("shape = %v, area %v", it.Shape(), it.Area())
	}
	it.Place(3, geom.NewRotation(math.Pi/2), geom.Vec{X: 10, Y: 5})
	bb := it.BoundingBox()
	want := geom.Rect{Min: geom.Vec{X: 8, Y: 5}, Max: geom.Vec{X: 10, Y: 9}}
	if bb != want {
		t.Errorf("BoundingBox() = %v, want %v", bb, want)
	}
	if it.BinID() != 3 || it.Translation() != (geom.Vec{X: 10, Y: 5}) {
		t.Errorf("accessors = %d %v", it.BinID(), it.Translation())
	}
}
