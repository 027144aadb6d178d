// Package nest places convex shapes into one or more fixed size bins.
//
// Nest takes every shape at once, opens bins as needed and records for each
// item the bin it landed in together with the rotation and translation that
// move its local outline there. Shapes keep half the spacing away from the bin
// edges and the full spacing away from each other.
package nest

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"polyatlas/geom"
	"polyatlas/rectpack"
)

// Placer names.
const (
	PlacerConvex = "convex"
	PlacerRect   = "rect"
)

var (
	ErrBadBin    = errors.New("nest: bin must have a positive size")
	ErrBadShape  = errors.New("nest: item has an empty shape")
	ErrBadPlacer = errors.New("nest: unknown placer")
)

// Box is the size of one bin.
type Box struct {
	Width  float64
	Height float64
}

// Config tunes the engine. The zero value is usable: it behaves like
// DefaultConfig without rotations.
type Config struct {
	// Placer selects the placement strategy, PlacerConvex or PlacerRect.
	Placer string
	// AllowRotations enables rotated placements.
	AllowRotations bool
	// Rotations is the number of evenly spaced angles tried by the convex
	// placer when rotations are allowed. The rect placer only ever turns
	// shapes by a quarter.
	Rotations int
	// Epsilon is the smallest slide, in pixels, the convex placer still
	// performs when pushing a shape towards the top left corner.
	Epsilon float64
	// Heuristic selects the rectangle packer used by the rect placer.
	Heuristic rectpack.Heuristic
	// Sort names the order in which the rect placer feeds boxes to the
	// packer, see rectpack.ResolveSort. Empty means largest area first.
	Sort string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Placer:         PlacerConvex,
		AllowRotations: true,
		Rotations:      4,
		Epsilon:        1,
		Heuristic:      rectpack.MaxRectsBSSF,
		Sort:           rectpack.SortByArea,
	}
}

// ProgressFunc is called after every item that has been placed.
type ProgressFunc func(placed, total int)

// Nester packs items into bins and returns the number of bins used. An engine
// reports each placement with Item.Place. Items that fit no empty bin keep
// BinIDUnset; that is not an error.
type Nester interface {
	Nest(items []*Item, bin Box, spacing float64, cfg Config, progress ProgressFunc) (int, error)
}

type engine struct{}

// Default is the built in engine. It dispatches on Config.Placer.
var Default Nester = engine{}

// Nest runs the default engine.
func Nest(items []*Item, bin Box, spacing float64, cfg Config, progress ProgressFunc) (int, error) {
	return Default.Nest(items, bin, spacing, cfg, progress)
}

func (engine) Nest(items []*Item, bin Box, spacing float64, cfg Config, progress ProgressFunc) (int, error) {
	if bin.Width <= 0 || bin.Height <= 0 {
		return 0, fmt.Errorf("%w: %vx%v", ErrBadBin, bin.Width, bin.Height)
	}
	for i, it := range items {
		if len(it.shape) == 0 {
			return 0, fmt.Errorf("%w: item %d", ErrBadShape, i)
		}
		it.reset()
	}
	spacing = math.Max(spacing, 0)

	order := byArea(items)
	switch cfg.Placer {
	case PlacerConvex, "":
		return nestConvex(items, order, bin, spacing, cfg, progress), nil
	case PlacerRect:
		return nestRect(items, order, bin, spacing, cfg, progress)
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadPlacer, cfg.Placer)
	}
}

// byArea returns item indices, largest shape first. Equal areas keep input order.
func byArea(items []*Item) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(items[b].area, items[a].area)
	})
	return order
}

func rotations(cfg Config) []geom.Rotation {
	if !cfg.AllowRotations {
		return []geom.Rotation{geom.NewRotation(0)}
	}
	n := cfg.Rotations
	if n <= 0 {
		n = 4
	}
	out := make([]geom.Rotation, n)
	for i := range out {
		out[i] = geom.NewRotation(2 * math.Pi * float64(i) / float64(n))
	}
	return out
}

func report(progress ProgressFunc, placed, total int) {
	if progress != nil {
		progress(placed, total)
	}
}
