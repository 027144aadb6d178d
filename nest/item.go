package nest

import (
	"polyatlas/geom"
)

// BinIDUnset marks an item that has not been placed in any bin.
const BinIDUnset = -1

// Item is one shape handed to the nesting engine. The engine packs the convex
// hull of the loop the item was built from; results are read back through the
// accessor methods.
type Item struct {
	shape []geom.Vec
	area  float64

	binID       int
	rotation    geom.Rotation
	translation geom.Vec
}

// NewItem builds an item from a closed loop of local coordinates. A trailing
// vertex equal to the first one is ignored.
func NewItem(loop []geom.Point) *Item {
	if n := len(loop); n > 1 && loop[0] == loop[n-1] {
		loop = loop[:n-1]
	}
	shape := geom.ToVecs(geom.ConvexHull(loop, true))
	return &Item{
		shape: shape,
		area:  geom.Area(shape),
		binID: BinIDUnset,
	}
}

// Shape returns the packed outline in local coordinates.
func (it *Item) Shape() []geom.Vec { return it.shape }

func (it *Item) Area() float64 { return it.area }

// BinID returns the bin the item was placed in, or BinIDUnset.
func (it *Item) BinID() int { return it.binID }

func (it *Item) Rotation() geom.Rotation { return it.rotation }

func (it *Item) Translation() geom.Vec { return it.translation }

// Transform returns the placement: local coordinates are rotated about the
// origin, then translated.
func (it *Item) Transform() geom.Transform {
	return geom.Transform{Rotation: it.rotation, Translation: it.translation}
}

// TransformedShape returns the outline in bin coordinates.
func (it *Item) TransformedShape() []geom.Vec {
	return it.Transform().ApplyAll(it.shape)
}

// BoundingBox returns the bounding box of the outline in bin coordinates.
func (it *Item) BoundingBox() geom.Rect {
	return geom.Bounds(it.TransformedShape())
}

func (it *Item) reset() {
	it.binID = BinIDUnset
	it.rotation = geom.Rotation{}
	it.translation = geom.Vec{}
}

// Place records a placement. Engines other than Default use it to report
// their results.
func (it *Item) Place(bin int, rot geom.Rotation, translation geom.Vec) {
	it.binID = bin
	it.rotation = rot
	it.translation = translation
}
