package atlas

import (
	"fmt"

	"polyatlas/nest"
)

// pack submits the polygons of all unique sprites to the nesting engine in
// one call and copies the placements back. It returns the number of bins.
func (g *Generator) pack(sprites []*sprite) (int, error) {
	cfg := g.cfg
	records := make([]*nest.Item, 0, len(sprites))
	recordOf := make([]int, len(sprites)) // unique id -> record id
	for id, s := range sprites {
		recordOf[id] = len(records)
		records = append(records, nest.NewItem(closedLoop(s.polygon)))
	}

	ncfg := cfg.Nest
	ncfg.AllowRotations = true
	ncfg.Epsilon = float64(cfg.Extrude)
	box := nest.Box{Width: float64(cfg.MaxWidth), Height: float64(cfg.MaxHeight)}
	// 每个图形外扩 extrude, 两两之间就需要两倍的间距
	spacing := float64(2 * cfg.Extrude)

	bins, err := g.nester.Nest(records, box, spacing, ncfg, g.progress)
	if err != nil {
		return 0, newError(BadPolygon, -1, err)
	}
	if bins >= int(BinUnset) {
		return 0, newError(TooManyImages, -1, fmt.Errorf("%d bins", bins))
	}

	for id, s := range sprites {
		rec := records[recordOf[id]]
		if rec.BinID() == nest.BinIDUnset || rec.BinID() < 0 || rec.BinID() >= bins {
			return 0, newError(BadPolygon, s.origin, fmt.Errorf("sprite %dx%d was not placed", s.packed.Width, s.packed.Height))
		}
		s.bin = rec.BinID()
		s.transform = rec.Transform()
	}
	return bins, nil
}
