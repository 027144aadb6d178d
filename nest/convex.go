package nest

import (
	"math"

	"polyatlas/geom"
)

const maxSlides = 16

type placedShape struct {
	shape []geom.Vec
	box   geom.Rect
}

// convexBin holds the shapes already placed in one bin, in bin coordinates.
type convexBin struct {
	id     int
	size   Box
	pad    float64
	gap    float64
	shapes []placedShape
}

type candidate struct {
	rot          geom.Rotation
	local        []geom.Vec // rotated, not yet translated
	t            geom.Vec
	bottom, left float64
}

// nestConvex places items bottom-left first: every rotation is tried at every
// candidate corner, the lowest (then leftmost) collision free spot wins and is
// then pushed up and left until it touches something.
func nestConvex(items []*Item, order []int, bin Box, spacing float64, cfg Config, progress ProgressFunc) int {
	rots := rotations(cfg)
	step := math.Max(cfg.Epsilon, 1)

	var bins []*convexBin
	placed := 0
	for _, idx := range order {
		it := items[idx]
		ok := false
		for _, b := range bins {
			if ok = b.fit(it, rots, step); ok {
				break
			}
		}
		if !ok {
			b := &convexBin{id: len(bins), size: bin, pad: spacing / 2, gap: spacing}
			if ok = b.fit(it, rots, step); ok {
				bins = append(bins, b)
			}
		}
		if ok {
			placed++
			report(progress, placed, len(items))
		}
	}
	return len(bins)
}

func (b *convexBin) fit(it *Item, rots []geom.Rotation, step float64) bool {
	var best *candidate
	for _, rot := range rots {
		local := rotateAll(it.shape, rot)
		rb := geom.Bounds(local)
		for _, pos := range b.corners() {
			t := pos.Sub(rb.Min)
			box := rb.Add(t)
			if !b.inside(box) {
				continue
			}
			if best != nil && !better(box.Max.Y, box.Min.X, best.bottom, best.left) {
				continue
			}
			if b.collides(translateAll(local, t), box) {
				continue
			}
			best = &candidate{rot: rot, local: local, t: t, bottom: box.Max.Y, left: box.Min.X}
		}
	}
	if best == nil {
		return false
	}

	t := b.slide(best.local, best.t, step)
	shape := translateAll(best.local, t)
	it.Place(b.id, best.rot, t)
	b.shapes = append(b.shapes, placedShape{shape: shape, box: geom.Bounds(shape)})
	return true
}

func better(bottom, left, bestBottom, bestLeft float64) bool {
	if bottom != bestBottom {
		return bottom < bestBottom
	}
	return left < bestLeft
}

// corners lists the spots where a shape's bounding box may put its top left
// corner: the bin origin and the right and bottom sides of placed boxes.
func (b *convexBin) corners() []geom.Vec {
	out := []geom.Vec{{X: b.pad, Y: b.pad}}
	for _, p := range b.shapes {
		right := ceilPx(p.box.Max.X + b.gap)
		below := ceilPx(p.box.Max.Y + b.gap)
		out = append(out,
			geom.Vec{X: right, Y: math.Floor(p.box.Min.Y)},
			geom.Vec{X: math.Floor(p.box.Min.X), Y: below},
			geom.Vec{X: right, Y: b.pad},
			geom.Vec{X: b.pad, Y: below},
		)
	}
	return out
}

func (b *convexBin) inside(box geom.Rect) bool {
	const tol = 1e-6
	return box.Min.X >= b.pad-tol && box.Min.Y >= b.pad-tol &&
		box.Max.X <= b.size.Width-b.pad+tol && box.Max.Y <= b.size.Height-b.pad+tol
}

func (b *convexBin) collides(shape []geom.Vec, box geom.Rect) bool {
	for _, p := range b.shapes {
		if !box.Overlaps(p.box, b.gap) {
			continue
		}
		if geom.Overlap(shape, p.shape, b.gap) {
			return true
		}
	}
	return false
}

// slide pushes the shape up, then left, repeatedly, until neither push moves
// it by at least step pixels.
func (b *convexBin) slide(local []geom.Vec, t geom.Vec, step float64) geom.Vec {
	up, left := geom.Vec{Y: -1}, geom.Vec{X: -1}
	for range maxSlides {
		box := geom.Bounds(translateAll(local, t))
		dy := b.push(translateAll(local, t), up, box.Min.Y-b.pad)
		t.Y -= dy

		box = geom.Bounds(translateAll(local, t))
		dx := b.push(translateAll(local, t), left, box.Min.X-b.pad)
		t.X -= dx

		if dy < step && dx < step {
			break
		}
	}
	return t
}

// push returns the longest whole pixel distance, at most limit, the shape can
// travel along dir without coming closer than the gap to a placed shape. The
// test sweeps the hull of the start and end positions, so every position in
// between is free as well and the search can bisect.
func (b *convexBin) push(shape []geom.Vec, dir geom.Vec, limit float64) float64 {
	hi := math.Floor(limit + 1e-6)
	if hi <= 0 {
		return 0
	}
	free := func(d float64) bool {
		end := translateAll(shape, geom.Vec{X: dir.X * d, Y: dir.Y * d})
		swept := geom.ConvexHullVec(append(append([]geom.Vec(nil), shape...), end...))
		return !b.collides(swept, geom.Bounds(swept))
	}
	if free(hi) {
		return hi
	}
	lo := 0.0
	for hi-lo > 1 {
		mid := math.Floor((lo + hi) / 2)
		if free(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func rotateAll(shape []geom.Vec, rot geom.Rotation) []geom.Vec {
	out := make([]geom.Vec, len(shape))
	for i, p := range shape {
		out[i] = rot.Apply(p)
	}
	return out
}

func translateAll(shape []geom.Vec, t geom.Vec) []geom.Vec {
	out := make([]geom.Vec, len(shape))
	for i, p := range shape {
		out[i] = p.Add(t)
	}
	return out
}

func ceilPx(v float64) float64 {
	return math.Ceil(v - 1e-6)
}
