package atlas

import (
	"slices"

	"polyatlas/geom"
	"polyatlas/raster"
)

// contourPrecision scales a loop's perimeter into the tolerance used to
// simplify it when the mask has several components.
const contourPrecision = 0.0015

// buildPolygon returns the convex outline of the mask's visible pixels with
// near-edge vertices snapped onto the mask border. Both coordinates of every
// vertex hold the hull point. The observer sees the traced points and the hull.
func buildPolygon(mask *raster.Mat, observe func(label string, points []geom.Point)) []Vertex {
	loops := geom.ExternalContours(mask.Gray(), geom.ChainApproxSimple)
	points := contourPoints(loops)
	if len(points) == 0 {
		return nil
	}
	observe("contour", slices.Clone(points))

	snapToBorder(points, mask.Width, mask.Height)
	hull := geom.ConvexHull(points, true)
	if len(hull) < 3 {
		// 退化成线段或单点, 直接用外接矩形
		return rectPolygon(mask.Width, mask.Height)
	}
	observe("hull", slices.Clone(hull))

	poly := make([]Vertex, len(hull))
	for i, p := range hull {
		poly[i] = Vertex{XY: p, UV: p}
	}
	return poly
}

// contourPoints flattens the traced loops. A single loop is used as is; with
// several, each one is simplified relative to its own perimeter first.
func contourPoints(loops [][]geom.Point) []geom.Point {
	if len(loops) == 1 {
		return slices.Clone(loops[0])
	}
	var points []geom.Point
	for _, loop := range loops {
		eps := contourPrecision * geom.ArcLength(loop, true)
		points = append(points, geom.ApproxPolyDP(loop, eps, true)...)
	}
	return points
}

// snapToBorder moves every point lying in the outer 7% of the mask onto the
// nearer edge of the bounding rectangle. Edges are pixel boundaries, so the far
// edge sits at width (height), one past the last pixel.
func snapToBorder(points []geom.Point, width, height int) {
	bandX := max(1, width*7/100)
	bandY := max(1, height*7/100)
	for i := range points {
		points[i].X = snap(points[i].X, width, bandX)
		points[i].Y = snap(points[i].Y, height, bandY)
	}
}

func snap(v, size, band int) int {
	switch {
	case v < band:
		return 0
	case v >= size-band:
		return size
	}
	return v
}
