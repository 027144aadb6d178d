// Package atlas packs sprites into texture atlases along their visible
// silhouettes.
//
// Every sprite is cropped to its visible pixels and reduced to a convex
// polygon. Bit-identical sprites are packed once. The polygons of the unique
// sprites go to a nesting engine in a single batch, and the placed sprites are
// drawn into one canvas per bin with a replicated border around each.
package atlas

import (
	"fmt"
	"image"
	"slices"

	"go.uber.org/zap"

	"polyatlas/geom"
	"polyatlas/nest"
	"polyatlas/raster"
)

// Snapshot is the state handed to an Observer. Bin is -1 before placement.
type Snapshot struct {
	Item   int
	Bin    int
	Image  *raster.Mat
	Points []geom.Point
}

// Observer receives intermediate results. Labels are "contour" and "hull",
// in cropped sprite coordinates, and "placement", in atlas coordinates with
// the bin canvas as Image.
type Observer func(label string, snap Snapshot)

// Option configures a Generator.
type Option func(*Generator)

// WithNester replaces the nesting engine.
func WithNester(n nest.Nester) Option {
	return func(g *Generator) { g.nester = n }
}

func WithObserver(o Observer) Option {
	return func(g *Generator) { g.observer = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithProgress forwards the nesting engine's progress reports.
func WithProgress(p nest.ProgressFunc) Option {
	return func(g *Generator) { g.progress = p }
}

// Generator turns sprites into atlases. It keeps no state between calls.
type Generator struct {
	cfg      *Config
	nester   nest.Nester
	observer Observer
	log      *zap.Logger
	progress nest.ProgressFunc
}

// New returns a Generator for cfg. cfg is normalized in place on every run; a
// nil cfg means DefaultConfig.
func New(cfg *Config, opts ...Option) *Generator {
	if cfg == nil {
		def := DefaultConfig()
		cfg = &def
	}
	g := &Generator{
		cfg:    cfg,
		nester: nest.Default,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate is New(cfg, opts...).Generate(items).
func Generate(items []*Item, cfg *Config, opts ...Option) ([]*raster.Mat, error) {
	return New(cfg, opts...).Generate(items)
}

// sprite is a unique sprite on its way through the pipeline.
type sprite struct {
	origin int // index of its first appearance
	crop   *raster.Mat
	// packed is the raster drawn into the atlas: crop, scaled down by the
	// scale factor.
	packed    *raster.Mat
	polygon   []Vertex
	bin       int
	transform geom.Transform
}

// entry is the side table row of one input item.
type entry struct {
	unique int
	crop   *raster.Mat
	trim   image.Rectangle
}

// Generate crops, outlines, packs and draws the items and returns one canvas
// per bin. On success every item holds its crop, trim rectangle, bin, atlas
// space polygon and transform. Items are only written once everything else
// succeeded; after an error the returned canvases are nil.
func (g *Generator) Generate(items []*Item) ([]*raster.Mat, error) {
	cfg := g.cfg
	cfg.Normalize()
	g.log.Debug("atlas config",
		zap.Stringer("format", cfg.Format),
		zap.Int("maxWidth", cfg.MaxWidth),
		zap.Int("maxHeight", cfg.MaxHeight),
		zap.Int("extrude", cfg.Extrude),
		zap.Int("scale", cfg.ScaleFactor),
		zap.Int("items", len(items)))

	entries := make([]entry, len(items))
	var (
		dups    duplicateIndex
		sprites []*sprite
	)
	for i, it := range items {
		if it == nil {
			return nil, newError(BadImage, i, fmt.Errorf("nil item"))
		}
		if err := it.Image.Validate(); err != nil {
			return nil, newError(BadImage, i, err)
		}

		sil := extractSilhouette(it.Image)
		if sil.crop.Empty() {
			return nil, newError(BadPolygon, i, fmt.Errorf("sprite has no visible pixels"))
		}
		entries[i] = entry{crop: sil.crop, trim: sil.trim}

		if id, ok := dups.find(sil.crop); ok {
			g.log.Debug("duplicate sprite", zap.Int("item", i), zap.Int("of", sprites[id].origin))
			entries[i].unique = id
			continue
		}

		poly := g.outline(i, sil)
		if len(poly) == 0 {
			return nil, newError(BadPolygon, i, fmt.Errorf("empty polygon"))
		}
		s := &sprite{origin: i, crop: sil.crop, packed: sil.crop, polygon: poly, bin: nest.BinIDUnset}
		g.scale(s)
		entries[i].unique = dups.add(sil.crop)
		sprites = append(sprites, s)
	}

	bins, err := g.pack(sprites)
	if err != nil {
		return nil, err
	}
	g.log.Debug("sprites packed",
		zap.Int("unique", len(sprites)),
		zap.Int("duplicates", len(items)-len(sprites)),
		zap.Int("bins", bins))

	atlases, finals := g.compose(sprites, bins)

	for i, it := range items {
		e := entries[i]
		s := sprites[e.unique]
		it.Image = e.crop
		it.Trim = e.trim
		it.Bin = uint8(s.bin)
		it.Polygon = slices.Clone(finals[e.unique])
		it.Transform = s.transform
		if i != s.origin && g.observer != nil {
			g.observe("placement", Snapshot{Item: i, Bin: s.bin, Image: atlases[s.bin], Points: xyPoints(it.Polygon)})
		}
	}
	return atlases, nil
}

func (g *Generator) outline(i int, sil silhouette) []Vertex {
	if isRectangle(sil.crop, g.cfg) {
		return rectPolygon(sil.crop.Width, sil.crop.Height)
	}
	return buildPolygon(sil.mask, func(label string, points []geom.Point) {
		g.observe(label, Snapshot{Item: i, Bin: -1, Image: sil.crop, Points: points})
	})
}

// scale shrinks the packed raster and the XY coordinates by the scale factor.
// UV keeps addressing the unscaled crop.
func (g *Generator) scale(s *sprite) {
	f := g.cfg.ScaleFactor
	if f <= 1 {
		return
	}
	w := max(1, (s.crop.Width+f/2)/f)
	h := max(1, (s.crop.Height+f/2)/f)
	s.packed = raster.Scale(s.crop, w, h)
	for i, v := range s.polygon {
		s.polygon[i].XY = geom.Pt(min((v.UV.X+f/2)/f, w), min((v.UV.Y+f/2)/f, h))
	}
}

func (g *Generator) observe(label string, snap Snapshot) {
	if g.observer != nil {
		g.observer(label, snap)
	}
}
