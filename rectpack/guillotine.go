package rectpack

import (
	"math"
	"slices"
)

type scoreFunc func(width, height int, freeRect Rect) int

// guillotinePack 每次放置后沿一条轴把所在的空闲矩形切成两块
type guillotinePack struct {
	binBase
	Merge       bool
	splitMethod Heuristic
	scoreRect   scoreFunc
	freeRects   []Rect
}

func newGuillotine(width, height int, heuristic Heuristic) *guillotinePack {
	p := &guillotinePack{Merge: true, splitMethod: heuristic & splitMask}
	switch heuristic & fitMask {
	case BestShortSideFit:
		p.scoreRect = scoreBestShort
	case BestLongSideFit:
		p.scoreRect = scoreBestLong
	case WorstAreaFit:
		p.scoreRect = func(w, h int, r Rect) int { return -scoreBestArea(w, h, r) }
	case WorstShortSideFit:
		p.scoreRect = func(w, h int, r Rect) int { return -scoreBestShort(w, h, r) }
	case WorstLongSideFit:
		p.scoreRect = func(w, h int, r Rect) int { return -scoreBestLong(w, h, r) }
	default:
		p.scoreRect = scoreBestArea
	}
	p.Reset(width, height)
	return p
}

func (p *guillotinePack) Reset(width, height int) {
	p.binBase.Reset(width, height)
	p.freeRects = append(p.freeRects[:0], NewRect(0, 0, width, height))
}

func (p *guillotinePack) Insert(padding int, sizes ...Size) []Size {
	sizes = slices.Clone(sizes)
	for len(sizes) > 0 {
		bestFreeRect, bestRect := -1, -1
		bestFlipped := false
		bestScore := math.MaxInt

	search:
		for i, freeRect := range p.freeRects {
			for j, size := range sizes {
				padSize(&size, padding)
				switch {
				case size.Width == freeRect.Width && size.Height == freeRect.Height:
					bestFreeRect, bestRect, bestFlipped = i, j, false
					bestScore = math.MinInt
					break search
				case p.allowRotate && size.Height == freeRect.Width && size.Width == freeRect.Height:
					bestFreeRect, bestRect, bestFlipped = i, j, true
					bestScore = math.MinInt
					break search
				}
				if size.Width <= freeRect.Width && size.Height <= freeRect.Height {
					if score := p.scoreRect(size.Width, size.Height, freeRect); score < bestScore {
						bestFreeRect, bestRect, bestFlipped = i, j, false
						bestScore = score
					}
				}
				if p.allowRotate && size.Height <= freeRect.Width && size.Width <= freeRect.Height {
					if score := p.scoreRect(size.Height, size.Width, freeRect); score < bestScore {
						bestFreeRect, bestRect, bestFlipped = i, j, true
						bestScore = score
					}
				}
			}
		}
		if bestRect == -1 {
			break
		}

		size := sizes[bestRect]
		padSize(&size, padding)
		if bestFlipped {
			size.Width, size.Height = size.Height, size.Width
		}
		freeRect := p.freeRects[bestFreeRect]
		node := NewRect(freeRect.X, freeRect.Y, size.Width, size.Height)

		p.freeRects = slices.Delete(p.freeRects, bestFreeRect, bestFreeRect+1)
		p.splitByHeuristic(freeRect, node)
		if p.Merge {
			p.mergeFreeList()
		}
		p.place(node, sizes[bestRect], bestFlipped, padding)
		sizes = slices.Delete(sizes, bestRect, bestRect+1)
	}
	return sizes
}

func scoreBestArea(width, height int, freeRect Rect) int {
	return freeRect.Width*freeRect.Height - width*height
}

func scoreBestShort(width, height int, freeRect Rect) int {
	return min(abs(freeRect.Width-width), abs(freeRect.Height-height))
}

func scoreBestLong(width, height int, freeRect Rect) int {
	return max(abs(freeRect.Width-width), abs(freeRect.Height-height))
}

func (p *guillotinePack) splitAlongAxis(freeRect, placed Rect, splitHorizontal bool) {
	bottom := NewRect(freeRect.X, freeRect.Y+placed.Height, 0, freeRect.Height-placed.Height)
	right := NewRect(freeRect.X+placed.Width, freeRect.Y, freeRect.Width-placed.Width, 0)
	if splitHorizontal {
		bottom.Width = freeRect.Width
		right.Height = placed.Height
	} else {
		bottom.Width = placed.Width
		right.Height = freeRect.Height
	}
	if !bottom.IsEmpty() {
		p.freeRects = append(p.freeRects, bottom)
	}
	if !right.IsEmpty() {
		p.freeRects = append(p.freeRects, right)
	}
}

func (p *guillotinePack) splitByHeuristic(freeRect, placed Rect) {
	w := freeRect.Width - placed.Width
	h := freeRect.Height - placed.Height
	var splitHorizontal bool
	switch p.splitMethod {
	case SplitShorterLeftoverAxis:
		splitHorizontal = w <= h
	case SplitLongerLeftoverAxis:
		splitHorizontal = w > h
	case SplitMinimizeArea:
		splitHorizontal = placed.Width*h > w*placed.Height
	case SplitMaximizeArea:
		splitHorizontal = placed.Width*h <= w*placed.Height
	case SplitShorterAxis:
		splitHorizontal = freeRect.Width <= freeRect.Height
	case SplitLongerAxis:
		splitHorizontal = freeRect.Width > freeRect.Height
	default:
		splitHorizontal = true
	}
	p.splitAlongAxis(freeRect, placed, splitHorizontal)
}

// mergeFreeList 合并共享完整边的相邻空闲矩形
func (p *guillotinePack) mergeFreeList() {
	for i := 0; i < len(p.freeRects); i++ {
		for j := i + 1; j < len(p.freeRects); j++ {
			a, b := &p.freeRects[i], p.freeRects[j]
			merged := false
			switch {
			case a.Width == b.Width && a.X == b.X:
				if a.Y == b.Bottom() {
					a.Y -= b.Height
					a.Height += b.Height
					merged = true
				} else if a.Bottom() == b.Y {
					a.Height += b.Height
					merged = true
				}
			case a.Height == b.Height && a.Y == b.Y:
				if a.X == b.Right() {
					a.X -= b.Width
					a.Width += b.Width
					merged = true
				} else if a.Right() == b.X {
					a.Width += b.Width
					merged = true
				}
			}
			if merged {
				p.freeRects = slices.Delete(p.freeRects, j, j+1)
				j--
			}
		}
	}
}
