package nest

import (
	"fmt"
	"math"
	"slices"

	"polyatlas/geom"
	"polyatlas/rectpack"
)

// nestRect packs the bounding boxes of the shapes, grown by the spacing, with
// a rectangle packer, one bin after the other. A rectangle placed on its side
// becomes a quarter turn of the shape.
func nestRect(items []*Item, order []int, bin Box, spacing float64, cfg Config, progress ProgressFunc) (int, error) {
	pad := spacing / 2
	width := int(math.Floor(bin.Width + 1e-6))
	height := int(math.Floor(bin.Height + 1e-6))

	sizes := make([]rectpack.Size, 0, len(order))
	for _, idx := range order {
		bb := geom.Bounds(items[idx].shape)
		sizes = append(sizes, rectpack.NewSizeID(idx, int(ceilPx(bb.Dx()+spacing)), int(ceilPx(bb.Dy()+spacing))))
	}

	sortBy, err := rectpack.ResolveSort(cfg.Sort)
	if err != nil {
		return 0, fmt.Errorf("nest: %w", err)
	}

	packer, err := rectpack.NewPacker(width, height, cfg.Heuristic)
	if err != nil {
		return 0, fmt.Errorf("nest: %w", err)
	}
	packer.AllowRotate(cfg.AllowRotations)
	packer.Sorter(sortBy, false)

	quarter := geom.NewRotation(math.Pi / 2)
	bins, placed := 0, 0
	for len(sizes) > 0 {
		// 每个箱子复用同一个 packer
		packer.Reset()
		packer.Insert(sizes...)
		packer.Pack()

		rects := packer.Rects()
		if len(rects) == 0 {
			// 剩余的图形连空箱子都放不下
			break
		}
		for _, r := range rects {
			it := items[r.ID]
			rot := geom.NewRotation(0)
			if r.Rotated {
				rot = quarter
			}
			rb := geom.Bounds(rotateAll(it.shape, rot))
			target := geom.Vec{X: float64(r.X) + pad, Y: float64(r.Y) + pad}
			it.Place(bins, rot, target.Sub(rb.Min))
			placed++
			report(progress, placed, len(items))
		}
		bins++
		sizes = slices.Clone(packer.Unpacked())
	}
	return bins, nil
}
