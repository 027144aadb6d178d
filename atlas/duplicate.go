package atlas

import "polyatlas/raster"

// duplicateIndex holds the cropped rasters of the unique sprites, indexed by
// unique id in order of first appearance.
type duplicateIndex struct {
	rasters []*raster.Mat
}

// find returns the unique id of the first raster identical to m.
func (d *duplicateIndex) find(m *raster.Mat) (int, bool) {
	for id, r := range d.rasters {
		if r.Equal(m) {
			return id, true
		}
	}
	return -1, false
}

// add records m as a new unique sprite and returns its id.
func (d *duplicateIndex) add(m *raster.Mat) int {
	d.rasters = append(d.rasters, m)
	return len(d.rasters) - 1
}
