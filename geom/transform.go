package geom

import "math"

// Rotation is a rotation angle together with its precomputed sine and cosine.
type Rotation struct {
	Radians float64
	Sin     float64
	Cos     float64
}

// NewRotation builds a Rotation. Multiples of a quarter turn get exact sine and
// cosine values so that rotated integer coordinates stay integral.
func NewRotation(radians float64) Rotation {
	r := Rotation{Radians: radians}
	quarter := radians / (math.Pi / 2)
	if q := math.Round(quarter); math.Abs(quarter-q) < 1e-12 {
		switch ((int(q) % 4) + 4) % 4 {
		case 0:
			r.Sin, r.Cos = 0, 1
		case 1:
			r.Sin, r.Cos = 1, 0
		case 2:
			r.Sin, r.Cos = 0, -1
		case 3:
			r.Sin, r.Cos = -1, 0
		}
		return r
	}
	r.Sin, r.Cos = math.Sincos(radians)
	return r
}

// Degrees returns the angle in degrees.
func (r Rotation) Degrees() float64 {
	return r.Radians * 180 / math.Pi
}

// IsZero reports whether the rotation leaves points unchanged. The zero value
// is the identity.
func (r Rotation) IsZero() bool {
	return r.Sin == 0 && (r.Cos == 1 || r.Cos == 0)
}

// Apply rotates v about the origin. In image coordinates (y down) a positive
// angle turns clockwise on screen.
func (r Rotation) Apply(v Vec) Vec {
	if r.IsZero() {
		return v
	}
	return Vec{
		X: v.X*r.Cos - v.Y*r.Sin,
		Y: v.X*r.Sin + v.Y*r.Cos,
	}
}

// Transform is a rotation followed by a translation.
type Transform struct {
	Rotation    Rotation
	Translation Vec
}

// Apply rotates then translates v.
func (t Transform) Apply(v Vec) Vec {
	return t.Rotation.Apply(v).Add(t.Translation)
}

// ApplyAll transforms every vertex of a polygon.
func (t Transform) ApplyAll(poly []Vec) []Vec {
	out := make([]Vec, len(poly))
	for i, p := range poly {
		out[i] = t.Apply(p)
	}
	return out
}

// RectCorners returns the four corners of the rectangle (0,0)-(width,height)
// clockwise on screen.
func RectCorners(width, height float64) []Vec {
	return []Vec{{0, 0}, {width, 0}, {width, height}, {0, height}}
}
