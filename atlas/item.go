package atlas

import (
	"image"

	"polyatlas/geom"
	"polyatlas/raster"
)

// BinUnset is the bin index of an item that has not been placed.
const BinUnset uint8 = 0xFF

// Vertex is one corner of a sprite polygon. XY is the position in the atlas
// page; UV is the pixel of the cropped sprite the corner samples from.
type Vertex struct {
	XY geom.Point `json:"xy"`
	UV geom.Point `json:"uv"`
}

// Item is one sprite. Generate replaces Image with its crop to the visible
// pixels and fills in the remaining fields.
type Item struct {
	Image *raster.Mat
	// Trim is the rectangle of the original image that Image was cropped to.
	Trim image.Rectangle
	// Bin is the index of the atlas page holding the sprite.
	Bin     uint8
	Polygon []Vertex
	// Transform moves the sprite's local (possibly scaled) coordinates into
	// its atlas page.
	Transform geom.Transform
}

// NewItem wraps a raster in an unplaced item.
func NewItem(img *raster.Mat) *Item {
	return &Item{Image: img, Bin: BinUnset}
}

func rectPolygon(width, height int) []Vertex {
	corners := []geom.Point{{X: 0, Y: 0}, {X: width, Y: 0}, {X: width, Y: height}, {X: 0, Y: height}}
	poly := make([]Vertex, len(corners))
	for i, c := range corners {
		poly[i] = Vertex{XY: c, UV: c}
	}
	return poly
}

// closedLoop returns the XY coordinates with the first vertex repeated at the end.
func closedLoop(poly []Vertex) []geom.Point {
	loop := make([]geom.Point, 0, len(poly)+1)
	for _, v := range poly {
		loop = append(loop, v.XY)
	}
	return append(loop, poly[0].XY)
}
