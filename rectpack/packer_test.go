package rectpack

import (
	"math/rand"
	"slices"
	"testing"
)

var algos = map[string][]string{
	"MaxRects":   {"BestShortSideFit", "BottomLeft", "ContactPoint", "BestLongSideFit", "BestAreaFit"},
	"Guillotine": {"BestAreaFit", "BestShortSideFit", "BestLongSideFit", "WorstAreaFit", "WorstShortSideFit", "WorstLongSideFit"},
	"Skyline":    {"BottomLeft", "MinWaste"},
}

// randomSize returns a size within the given minimum and maximum sizes.
func randomSize(rng *rand.Rand, id int, minSize, maxSize Size) Size {
	w := rng.Intn(maxSize.Width-minSize.Width) + minSize.Width
	h := rng.Intn(maxSize.Height-minSize.Height) + minSize.Height
	return NewSizeID(id, w, h)
}

func checkPacked(t *testing.T, packer *Packer, sizes map[int]Size) {
	t.Helper()
	bin := NewRect(0, 0, packer.algo.MaxSize().Width, packer.algo.MaxSize().Height)
	rects := packer.Rects()
	for i, r := range rects {
		if !bin.ContainsRect(r) {
			t.Errorf("%s lies outside the bin", r)
		}
		want := sizes[r.ID]
		if r.Rotated {
			want.Width, want.Height = want.Height, want.Width
		}
		if r.Width != want.Width || r.Height != want.Height {
			t.Errorf("rect %d = %s, want size %s (rotated=%v)", r.ID, r, want, r.Rotated)
		}
		for _, o := range rects[i+1:] {
			if r.Intersects(o) {
				t.Errorf("%s and %s intersect", r, o)
			}
		}
	}
}

func TestRandom(t *testing.T) {
	const (
		count       = 256
		atlasWidth  = 512
		atlasHeight = 512
	)
	for algo, names := range algos {
		for _, variant := range names {
			t.Run(algo+"_"+variant, func(t *testing.T) {
				heuristic, err := ResolveAlgorithm(algo, variant)
				if err != nil {
					t.Fatal(err)
				}
				rng := rand.New(rand.NewSource(7))
				sizes := make(map[int]Size, count)
				unpacked := make([]Size, count)
				for i := range unpacked {
					unpacked[i] = randomSize(rng, i, NewSize(8, 8), NewSize(64, 64))
					sizes[i] = unpacked[i]
				}

				// 一个图集放不下时，剩余部分继续放入新的图集
				packed := 0
				for atlas := 0; len(unpacked) > 0; atlas++ {
					if atlas > 10 {
						t.Fatal("too many atlases required")
					}
					packer, err := NewPacker(atlasWidth, atlasHeight, heuristic)
					if err != nil {
						t.Fatal(err)
					}
					packer.AllowRotate(true)
					packer.Sorter(SortArea, false)
					packer.Insert(unpacked...)
					if !packer.Pack() && len(packer.Rects()) == 0 {
						t.Fatal("nothing fits into an empty atlas")
					}
					checkPacked(t, packer, sizes)
					packed += len(packer.Rects())
					unpacked = slices.Clone(packer.Unpacked())
				}
				if packed != count {
					t.Errorf("packed %d rects, want %d", packed, count)
				}
			})
		}
	}
}

func TestPadding(t *testing.T) {
	packer, err := NewPacker(64, 64, MaxRectsBSSF)
	if err != nil {
		t.Fatal(err)
	}
	packer.Padding = 4
	packer.Insert(NewSizeID(0, 28, 28), NewSizeID(1, 28, 28), NewSizeID(2, 28, 28), NewSizeID(3, 28, 28))
	if !packer.Pack() {
		t.Fatalf("Pack() failed, unpacked %v", packer.Unpacked())
	}
	rects := packer.Rects()
	for i, r := range rects {
		if r.Width != 28 || r.Height != 28 {
			t.Errorf("rect %s lost its size", r)
		}
		grown := NewRect(r.X, r.Y, r.Width+packer.Padding, r.Height+packer.Padding)
		for _, o := range rects[i+1:] {
			if grown.Intersects(o) {
				t.Errorf("%s is closer than the padding to %s", r, o)
			}
		}
	}
	if size := packer.Size(); size.Width > 64 || size.Height > 64 {
		t.Errorf("Size() = %s, want at most 64x64", size)
	}
}

func TestRotationFits(t *testing.T) {
	for _, heuristic := range []Heuristic{MaxRectsBAF, SkylineBLF, GuillotineBSSF} {
		packer, err := NewPacker(100, 20, heuristic)
		if err != nil {
			t.Fatal(err)
		}
		packer.AllowRotate(true)
		packer.Insert(NewSizeID(9, 10, 80))
		if !packer.Pack() {
			t.Fatalf("heuristic %#x: tall rect did not fit a wide bin", heuristic)
		}
		r := packer.Map()[9]
		if !r.Rotated || r.Width != 80 || r.Height != 10 {
			t.Errorf("heuristic %#x: got %s rotated=%v", heuristic, r, r.Rotated)
		}
	}
}

func TestResolveAlgorithm(t *testing.T) {
	if _, err := ResolveAlgorithm("Shelf", "BottomLeft"); err == nil {
		t.Error("unknown algorithm accepted")
	}
	if _, err := ResolveAlgorithm("Skyline", "ContactPoint"); err == nil {
		t.Error("unknown variant accepted")
	}
	if _, err := NewPacker(0, 10, MaxRectsBL); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := NewPacker(10, 10, Heuristic(0x7)); err == nil {
		t.Error("invalid algorithm accepted")
	}
}

func TestResolveSort(t *testing.T) {
	big, small := NewSizeID(1, 20, 20), NewSizeID(2, 10, 10)
	for _, name := range []string{"", SortByArea, SortByPerimeter, SortByMaxSide, SortByMinSide} {
		fn, err := ResolveSort(name)
		if err != nil {
			t.Fatalf("%q: %v", name, err)
		}
		if fn(big, small) >= 0 {
			t.Errorf("%q: larger size should sort first", name)
		}
	}
	fn, _ := ResolveSort(SortByArea)
	if fn(NewSizeID(1, 5, 5), NewSizeID(2, 5, 5)) >= 0 {
		t.Error("equal sizes should fall back to ID order")
	}
	if _, err := ResolveSort("colour"); err == nil {
		t.Error("unknown sort order accepted")
	}
}

func TestPackerReset(t *testing.T) {
	packer, err := NewPacker(32, 32, GuillotineBAF|SplitShorterLeftoverAxis)
	if err != nil {
		t.Fatal(err)
	}
	packer.Insert(NewSizeID(0, 32, 32), NewSizeID(1, 16, 16))
	if packer.Pack() {
		t.Fatal("two rects filled a bin that only holds one")
	}
	packer.Reset()
	if len(packer.Rects()) != 0 || len(packer.Unpacked()) != 0 {
		t.Fatalf("after Reset: %d rects, %d unpacked", len(packer.Rects()), len(packer.Unpacked()))
	}
	packer.Insert(NewSizeID(1, 16, 16))
	if !packer.Pack() || packer.Map()[1].Width != 16 {
		t.Errorf("packing after Reset: %v", packer.Rects())
	}
}
