package geom

import (
	"cmp"
	"math"
	"slices"
)

func cross(o, a, b Point) int64 {
	return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(a.Y-o.Y)*int64(b.X-o.X)
}

// ConvexHull returns the convex hull of points using Andrew's monotone chain.
// Duplicate and collinear points are dropped. With clockwise set the hull runs
// clockwise on screen, which gives it a positive Area.
func ConvexHull(points []Point, clockwise bool) []Point {
	ps := slices.Clone(points)
	slices.SortFunc(ps, func(a, b Point) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Y - b.Y
	})
	ps = slices.Compact(ps)
	if len(ps) < 3 {
		return ps
	}

	hull := make([]Point, 0, 2*len(ps))
	for _, p := range ps {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	for i, lower := len(ps)-2, len(hull)+1; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	if !clockwise {
		slices.Reverse(hull)
	}
	return hull
}

// ConvexHullVec is ConvexHull for floating point coordinates. The result runs
// clockwise on screen.
func ConvexHullVec(points []Vec) []Vec {
	ps := slices.Clone(points)
	slices.SortFunc(ps, func(a, b Vec) int {
		if a.X != b.X {
			return cmp.Compare(a.X, b.X)
		}
		return cmp.Compare(a.Y, b.Y)
	})
	ps = slices.Compact(ps)
	if len(ps) < 3 {
		return ps
	}
	crossVec := func(o, a, b Vec) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	hull := make([]Vec, 0, 2*len(ps))
	for _, p := range ps {
		for len(hull) >= 2 && crossVec(hull[len(hull)-2], hull[len(hull)-1], p) <= eps {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	for i, lower := len(ps)-2, len(hull)+1; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && crossVec(hull[len(hull)-2], hull[len(hull)-1], p) <= eps {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Overlap reports whether two convex polygons come closer than gap. Polygons
// are tested with the separating axis theorem on their edge normals and the
// two coordinate axes; only a separation of at least gap on some axis counts
// as apart, so corner to corner distances are treated conservatively.
func Overlap(a, b []Vec, gap float64) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if !Bounds(a).Overlaps(Bounds(b), gap) {
		return false
	}
	for _, poly := range [][]Vec{a, b} {
		for i := range poly {
			e := poly[(i+1)%len(poly)].Sub(poly[i])
			l := e.Len()
			if l < eps {
				continue
			}
			if separated(a, b, Vec{-e.Y / l, e.X / l}, gap) {
				return false
			}
		}
	}
	return true
}

func separated(a, b []Vec, axis Vec, gap float64) bool {
	amin, amax := project(a, axis)
	bmin, bmax := project(b, axis)
	return bmin-amax >= gap-eps || amin-bmax >= gap-eps
}

func project(poly []Vec, axis Vec) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// Contains reports whether p lies inside or on a convex polygon that runs
// clockwise on screen.
func Contains(poly []Vec, p Vec) bool {
	if len(poly) < 3 {
		return false
	}
	for i, a := range poly {
		e := poly[(i+1)%len(poly)].Sub(a)
		d := p.Sub(a)
		if e.X*d.Y-e.Y*d.X < -eps {
			return false
		}
	}
	return true
}
