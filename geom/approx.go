package geom

import "math"

// ArcLength returns the length of a polyline, including the closing segment
// when closed is set.
func ArcLength(points []Point, closed bool) float64 {
	var l float64
	for i := 1; i < len(points); i++ {
		l += points[i].Vec().Sub(points[i-1].Vec()).Len()
	}
	if closed && len(points) > 1 {
		l += points[0].Vec().Sub(points[len(points)-1].Vec()).Len()
	}
	return l
}

// ApproxPolyDP simplifies a polyline with the Douglas-Peucker algorithm so that
// no dropped point lies further than epsilon from the result.
func ApproxPolyDP(points []Point, epsilon float64, closed bool) []Point {
	if len(points) < 3 {
		return append([]Point(nil), points...)
	}
	if !closed {
		keep := make([]bool, len(points))
		keep[0], keep[len(points)-1] = true, true
		douglasPeucker(points, 0, len(points)-1, epsilon, keep)
		return collect(points, keep)
	}

	// Split the loop at the point furthest from the first one.
	far, best := 0, -1.0
	for i, p := range points {
		if d := p.Vec().Sub(points[0].Vec()).Len(); d > best {
			far, best = i, d
		}
	}
	if far == 0 {
		return []Point{points[0]}
	}
	ring := append(append([]Point(nil), points...), points[0])
	keep := make([]bool, len(ring))
	keep[0], keep[far] = true, true
	douglasPeucker(ring, 0, far, epsilon, keep)
	douglasPeucker(ring, far, len(ring)-1, epsilon, keep)
	return collect(ring[:len(ring)-1], keep)
}

func douglasPeucker(points []Point, first, last int, epsilon float64, keep []bool) {
	if last-first < 2 {
		return
	}
	a, b := points[first].Vec(), points[last].Vec()
	idx, dmax := -1, -1.0
	for i := first + 1; i < last; i++ {
		if d := segmentDistance(points[i].Vec(), a, b); d > dmax {
			idx, dmax = i, d
		}
	}
	if dmax <= epsilon {
		return
	}
	keep[idx] = true
	douglasPeucker(points, first, idx, epsilon, keep)
	douglasPeucker(points, idx, last, epsilon, keep)
}

func segmentDistance(p, a, b Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Sub(a.Add(Vec{ab.X * t, ab.Y * t})).Len()
}

func collect(points []Point, keep []bool) []Point {
	var out []Point
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
