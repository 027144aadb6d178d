package rectpack

import (
	"math"
	"slices"
)

// skylineNode 是天际线上的一段水平线
type skylineNode struct {
	X, Y, Width int
}

type skylinePack struct {
	binBase
	levelSelect Heuristic
	skyline     []skylineNode
}

func newSkyline(width, height int, heuristic Heuristic) *skylinePack {
	p := &skylinePack{levelSelect: BottomLeft}
	if heuristic&fitMask == MinWaste {
		p.levelSelect = MinWaste
	}
	p.Reset(width, height)
	return p
}

func (p *skylinePack) Reset(width, height int) {
	p.binBase.Reset(width, height)
	p.skyline = append(p.skyline[:0], skylineNode{X: 0, Y: 0, Width: width})
}

func (p *skylinePack) Insert(padding int, sizes ...Size) []Size {
	sizes = slices.Clone(sizes)
	for len(sizes) > 0 {
		var bestNode Rect
		var bestRotated bool
		bestScore1, bestScore2 := math.MaxInt, math.MaxInt
		bestLevel, bestIndex := -1, -1

		for i, size := range sizes {
			padSize(&size, padding)
			var node Rect
			var rotated bool
			var score1, score2, level int
			if p.levelSelect == MinWaste {
				node, rotated, score2, score1, level = p.findMinWaste(size.Width, size.Height)
			} else {
				node, rotated, score1, score2, level = p.findBottomLeft(size.Width, size.Height)
			}
			if level < 0 {
				continue
			}
			if score1 < bestScore1 || (score1 == bestScore1 && score2 < bestScore2) {
				bestNode, bestRotated = node, rotated
				bestScore1, bestScore2 = score1, score2
				bestLevel, bestIndex = level, i
			}
		}
		if bestIndex == -1 {
			break
		}

		p.addLevel(bestLevel, bestNode)
		p.place(bestNode, sizes[bestIndex], bestRotated, padding)
		sizes = slices.Delete(sizes, bestIndex, bestIndex+1)
	}
	return sizes
}

// testFit 检查宽为 width 的矩形能否从第 index 段开始放置，返回放置时的 y
func (p *skylinePack) testFit(index, width, height int) (int, bool) {
	x := p.skyline[index].X
	if x+width > p.width {
		return 0, false
	}
	y := p.skyline[index].Y
	for i, left := index, width; left > 0; i++ {
		y = max(y, p.skyline[i].Y)
		if y+height > p.height {
			return 0, false
		}
		left -= p.skyline[i].Width
	}
	return y, true
}

// computeWaste 计算矩形下方与天际线之间浪费的面积
func (p *skylinePack) computeWaste(index, width, y int) int {
	wasted := 0
	left := p.skyline[index].X
	right := left + width
	for ; index < len(p.skyline) && p.skyline[index].X < right; index++ {
		seg := p.skyline[index]
		wasted += (min(right, seg.X+seg.Width) - seg.X) * (y - seg.Y)
	}
	return wasted
}

func (p *skylinePack) findBottomLeft(width, height int) (Rect, bool, int, int, int) {
	var node Rect
	var rotated bool
	bestHeight, bestWidth, bestIndex := math.MaxInt, math.MaxInt, -1
	try := func(i, w, h int, flip bool) {
		y, ok := p.testFit(i, w, h)
		if !ok {
			return
		}
		// 高度相同时选择更窄的一段
		if y+h < bestHeight || (y+h == bestHeight && p.skyline[i].Width < bestWidth) {
			bestHeight, bestWidth, bestIndex = y+h, p.skyline[i].Width, i
			node = NewRect(p.skyline[i].X, y, w, h)
			rotated = flip
		}
	}
	for i := range p.skyline {
		try(i, width, height, false)
		if p.allowRotate && width != height {
			try(i, height, width, true)
		}
	}
	return node, rotated, bestHeight, bestWidth, bestIndex
}

func (p *skylinePack) findMinWaste(width, height int) (Rect, bool, int, int, int) {
	var node Rect
	var rotated bool
	bestHeight, bestWaste, bestIndex := math.MaxInt, math.MaxInt, -1
	try := func(i, w, h int, flip bool) {
		y, ok := p.testFit(i, w, h)
		if !ok {
			return
		}
		wasted := p.computeWaste(i, w, y)
		if wasted < bestWaste || (wasted == bestWaste && y+h < bestHeight) {
			bestHeight, bestWaste, bestIndex = y+h, wasted, i
			node = NewRect(p.skyline[i].X, y, w, h)
			rotated = flip
		}
	}
	for i := range p.skyline {
		try(i, width, height, false)
		if p.allowRotate && width != height {
			try(i, height, width, true)
		}
	}
	return node, rotated, bestHeight, bestWaste, bestIndex
}

// addLevel 在第 index 段插入新节点，并收缩被其覆盖的后续线段
func (p *skylinePack) addLevel(index int, rect Rect) {
	p.skyline = slices.Insert(p.skyline, index, skylineNode{X: rect.X, Y: rect.Bottom(), Width: rect.Width})

	for i := index + 1; i < len(p.skyline); i++ {
		prev := p.skyline[i-1]
		if p.skyline[i].X >= prev.X+prev.Width {
			break
		}
		shrink := prev.X + prev.Width - p.skyline[i].X
		p.skyline[i].X += shrink
		p.skyline[i].Width -= shrink
		if p.skyline[i].Width > 0 {
			break
		}
		p.skyline = slices.Delete(p.skyline, i, i+1)
		i--
	}
	p.mergeSkylines()
}

func (p *skylinePack) mergeSkylines() {
	for i := 0; i < len(p.skyline)-1; i++ {
		if p.skyline[i].Y == p.skyline[i+1].Y {
			p.skyline[i].Width += p.skyline[i+1].Width
			p.skyline = slices.Delete(p.skyline, i+1, i+2)
			i--
		}
	}
}
