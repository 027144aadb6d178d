// Package geom provides the vector geometry used to turn sprite masks into
// packable shapes: integer contour points, curve simplification, convex hulls,
// rigid transforms and convex polygon collision.
package geom

import (
	"fmt"
	"math"
)

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vec converts p to floating point.
func (p Point) Vec() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Vec is a floating point coordinate or displacement.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec) Add(o Vec) Vec     { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec     { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Dot(o Vec) float64 { return v.X*o.X + v.Y*o.Y }
func (v Vec) Len() float64      { return math.Hypot(v.X, v.Y) }

// Ceil rounds both coordinates up to whole pixels. Values within 1e-6 above an
// integer are treated as that integer.
func (v Vec) Ceil() Point {
	return Point{X: ceilPx(v.X), Y: ceilPx(v.Y)}
}

func ceilPx(v float64) int {
	return int(math.Ceil(v - 1e-6))
}

// Rect is an axis aligned floating point rectangle.
type Rect struct {
	Min, Max Vec
}

func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Add translates the rectangle.
func (r Rect) Add(v Vec) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// Overlaps reports whether the rectangles are closer than gap on both axes.
func (r Rect) Overlaps(o Rect, gap float64) bool {
	return r.Min.X < o.Max.X+gap-eps && o.Min.X < r.Max.X+gap-eps &&
		r.Min.Y < o.Max.Y+gap-eps && o.Min.Y < r.Max.Y+gap-eps
}

const eps = 1e-9

// Bounds returns the bounding box of a polygon. An empty polygon yields the zero Rect.
func Bounds(poly []Vec) Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	r := Rect{Min: poly[0], Max: poly[0]}
	for _, p := range poly[1:] {
		r.Min.X = math.Min(r.Min.X, p.X)
		r.Min.Y = math.Min(r.Min.Y, p.Y)
		r.Max.X = math.Max(r.Max.X, p.X)
		r.Max.Y = math.Max(r.Max.Y, p.Y)
	}
	return r
}

// ToVecs converts integer points to floating point.
func ToVecs(points []Point) []Vec {
	out := make([]Vec, len(points))
	for i, p := range points {
		out[i] = p.Vec()
	}
	return out
}

// Area returns the signed area of a polygon using the shoelace formula. The
// result is positive for loops that run clockwise on screen (y pointing down).
func Area(poly []Vec) float64 {
	var a float64
	for i := range poly {
		j := (i + 1) % len(poly)
		a += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return a / 2
}
