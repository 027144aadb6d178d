package atlas

import (
	"go.uber.org/zap"

	"polyatlas/geom"
	"polyatlas/raster"
)

// compose allocates one canvas per bin and draws every unique sprite into it.
// It returns the canvases and, per unique id, the polygon in atlas space.
func (g *Generator) compose(sprites []*sprite, bins int) ([]*raster.Mat, [][]Vertex) {
	cfg := g.cfg

	// 先算出所有画布的尺寸, 再分配
	extents := make([]geom.Rect, len(sprites))
	sizes := make([]geom.Point, bins)
	for id, s := range sprites {
		corners := geom.RectCorners(float64(s.packed.Width), float64(s.packed.Height))
		ext := geom.Bounds(s.transform.ApplyAll(corners))
		extents[id] = ext
		far := ext.Max.Ceil()
		sizes[s.bin].X = max(sizes[s.bin].X, far.X+cfg.Extrude)
		sizes[s.bin].Y = max(sizes[s.bin].Y, far.Y+cfg.Extrude)
	}

	atlases := make([]*raster.Mat, bins)
	for b, size := range sizes {
		atlases[b] = raster.New(size.X, size.Y, cfg.Format.Channels())
		g.log.Debug("atlas canvas", zap.Int("bin", b), zap.Int("width", size.X), zap.Int("height", size.Y))
	}

	finals := make([][]Vertex, len(sprites))
	for id, s := range sprites {
		tr := s.transform
		poly := make([]Vertex, len(s.polygon))
		for i, v := range s.polygon {
			poly[i] = Vertex{XY: tr.Apply(v.XY.Vec()).Ceil(), UV: v.UV}
		}
		finals[id] = poly

		pix := s.packed
		if !tr.Rotation.IsZero() {
			pix = raster.Rotate(pix, tr.Rotation.Sin, tr.Rotation.Cos)
		}
		pix = raster.Pad(pix, cfg.Extrude)
		// 与顶点一样向上取整, 像素和多边形才不会错开
		at := extents[id].Min.Ceil()
		raster.Blit(atlases[s.bin], pix, at.X-cfg.Extrude, at.Y-cfg.Extrude)

		if g.observer != nil {
			g.observe("placement", Snapshot{Item: s.origin, Bin: s.bin, Image: atlases[s.bin], Points: xyPoints(poly)})
		}
	}
	return atlases, finals
}

func xyPoints(poly []Vertex) []geom.Point {
	points := make([]geom.Point, len(poly))
	for i, v := range poly {
		points[i] = v.XY
	}
	return points
}
