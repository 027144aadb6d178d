package rectpack

import (
	"math"
	"slices"
)

// maxRectsPack 维护所有最大空闲矩形，放置时切分与节点相交的空闲矩形并剔除被包含的部分
type maxRectsPack struct {
	binBase
	method    Heuristic
	freeRects []Rect
}

func newMaxRects(width, height int, heuristic Heuristic) *maxRectsPack {
	p := &maxRectsPack{method: heuristic & fitMask}
	p.Reset(width, height)
	return p
}

func (p *maxRectsPack) Reset(width, height int) {
	p.binBase.Reset(width, height)
	p.freeRects = append(p.freeRects[:0], NewRect(0, 0, width, height))
}

// Insert 每一轮在所有待放置尺寸中选择得分最好的一个放置
func (p *maxRectsPack) Insert(padding int, sizes ...Size) []Size {
	sizes = slices.Clone(sizes)
	for len(sizes) > 0 {
		bestScore1, bestScore2 := math.MaxInt, math.MaxInt
		bestIndex := -1
		var bestNode Rect
		var bestRotated bool

		for i, size := range sizes {
			padSize(&size, padding)
			node, rotated, score1, score2 := p.scoreRect(size.Width, size.Height)
			if node.IsEmpty() {
				continue
			}
			if score1 < bestScore1 || (score1 == bestScore1 && score2 < bestScore2) {
				bestScore1, bestScore2 = score1, score2
				bestNode, bestRotated = node, rotated
				bestIndex = i
			}
		}
		if bestIndex == -1 {
			break
		}

		p.placeRect(bestNode)
		p.place(bestNode, sizes[bestIndex], bestRotated, padding)
		sizes = slices.Delete(sizes, bestIndex, bestIndex+1)
	}
	return sizes
}

func (p *maxRectsPack) scoreRect(width, height int) (Rect, bool, int, int) {
	var node Rect
	var rotated bool
	score1, score2 := math.MaxInt, math.MaxInt
	try := func(w, h int, flip bool) {
		for _, free := range p.freeRects {
			if w > free.Width || h > free.Height {
				continue
			}
			s1, s2 := p.score(free, w, h)
			if s1 < score1 || (s1 == score1 && s2 < score2) {
				node = NewRect(free.X, free.Y, w, h)
				rotated = flip
				score1, score2 = s1, s2
			}
		}
	}
	try(width, height, false)
	if p.allowRotate && width != height {
		try(height, width, true)
	}
	return node, rotated, score1, score2
}

// score 数值越小越好
func (p *maxRectsPack) score(free Rect, w, h int) (int, int) {
	leftoverHoriz := abs(free.Width - w)
	leftoverVert := abs(free.Height - h)
	shortSide := min(leftoverHoriz, leftoverVert)
	longSide := max(leftoverHoriz, leftoverVert)

	switch p.method {
	case BestLongSideFit:
		return longSide, shortSide
	case BestAreaFit:
		return free.Width*free.Height - w*h, shortSide
	case BottomLeft:
		return free.Y + h, free.X
	case ContactPoint:
		return -p.contactPoint(free.X, free.Y, w, h), 0
	default:
		return shortSide, longSide
	}
}

// contactPoint 计算节点与箱子边缘以及已放置矩形的接触长度
func (p *maxRectsPack) contactPoint(x, y, w, h int) int {
	score := 0
	if x == 0 || x+w == p.width {
		score += h
	}
	if y == 0 || y+h == p.height {
		score += w
	}
	for _, r := range p.packed {
		if r.X == x+w || r.Right() == x {
			score += commonInterval(r.Y, r.Bottom(), y, y+h)
		}
		if r.Y == y+h || r.Bottom() == y {
			score += commonInterval(r.X, r.Right(), x, x+w)
		}
	}
	return score
}

func (p *maxRectsPack) placeRect(node Rect) {
	var split []Rect
	p.freeRects = slices.DeleteFunc(p.freeRects, func(free Rect) bool {
		if !free.Intersects(node) {
			return false
		}
		if node.X > free.X {
			split = append(split, NewRect(free.X, free.Y, node.X-free.X, free.Height))
		}
		if node.Right() < free.Right() {
			split = append(split, NewRect(node.Right(), free.Y, free.Right()-node.Right(), free.Height))
		}
		if node.Y > free.Y {
			split = append(split, NewRect(free.X, free.Y, free.Width, node.Y-free.Y))
		}
		if node.Bottom() < free.Bottom() {
			split = append(split, NewRect(free.X, node.Bottom(), free.Width, free.Bottom()-node.Bottom()))
		}
		return true
	})
	p.freeRects = append(p.freeRects, split...)
	p.pruneFreeList()
}

// pruneFreeList 移除被其他空闲矩形完全包含的空闲矩形
func (p *maxRectsPack) pruneFreeList() {
	for i := 0; i < len(p.freeRects); i++ {
		for j := i + 1; j < len(p.freeRects); j++ {
			if p.freeRects[j].ContainsRect(p.freeRects[i]) {
				p.freeRects = slices.Delete(p.freeRects, i, i+1)
				i--
				break
			}
			if p.freeRects[i].ContainsRect(p.freeRects[j]) {
				p.freeRects = slices.Delete(p.freeRects, j, j+1)
				j--
			}
		}
	}
}
