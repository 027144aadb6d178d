package rectpack

import (
	"fmt"
	"slices"
)

// Packer 把一批尺寸离线装入一个固定大小的箱子.
// 先 Insert 暂存, 再由 Pack 按排序函数一次性放置, 放不下的留在 Unpacked 中,
// 调用方可以用它们开新箱子.
type Packer struct {
	algo    algorithm
	pending []Size

	sortFunc SortFunc
	sortRev  bool

	// Padding 是每个矩形右侧和下方预留的间距, <= 0 表示紧密排列
	Padding int
}

// NewPacker 创建宽高为 maxWidth x maxHeight 的箱子, heuristic 选择算法与变体
func NewPacker(maxWidth, maxHeight int, heuristic Heuristic) (*Packer, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("rectpack: bin must be larger than zero (given %vx%v)", maxWidth, maxHeight)
	}
	var algo algorithm
	switch heuristic & typeMask {
	case MaxRects:
		algo = newMaxRects(maxWidth, maxHeight, heuristic)
	case Skyline:
		algo = newSkyline(maxWidth, maxHeight, heuristic)
	case Guillotine:
		algo = newGuillotine(maxWidth, maxHeight, heuristic)
	default:
		return nil, fmt.Errorf("%w: %#x", ErrAlgorithm, heuristic)
	}
	return &Packer{algo: algo, sortFunc: SortArea}, nil
}

// AllowRotate 允许把矩形旋转 90 度放置, 旋转的结果 Rect.Rotated 为 true
func (p *Packer) AllowRotate(enabled bool) {
	p.algo.AllowRotate(enabled)
}

// Sorter 设置 Pack 前的排序. compare 为 nil 时保持插入顺序
func (p *Packer) Sorter(compare SortFunc, reverse bool) {
	p.sortFunc = compare
	p.sortRev = reverse
}

// Insert 暂存尺寸, 返回全部待放置的尺寸
func (p *Packer) Insert(sizes ...Size) []Size {
	p.pending = append(p.pending, sizes...)
	return p.pending
}

// Pack 放置所有暂存的尺寸, 全部放下时返回 true
func (p *Packer) Pack() bool {
	if len(p.pending) == 0 {
		return true
	}
	p.sort()
	failed := p.algo.Insert(p.Padding, p.pending...)
	p.pending = append(p.pending[:0], failed...)
	return len(p.pending) == 0
}

func (p *Packer) sort() {
	switch {
	case p.sortFunc == nil && p.sortRev:
		slices.Reverse(p.pending)
	case p.sortFunc == nil:
	case p.sortRev:
		slices.SortFunc(p.pending, func(a, b Size) int { return p.sortFunc(b, a) })
	default:
		slices.SortFunc(p.pending, p.sortFunc)
	}
}

// Rects 返回已放置的矩形, 切片归 Packer 所有
func (p *Packer) Rects() []Rect {
	return p.algo.Rects()
}

// Unpacked 返回上一次 Pack 没能放下的尺寸, 切片归 Packer 所有
func (p *Packer) Unpacked() []Size {
	return p.pending
}

// Map 按 ID 索引已放置的矩形
func (p *Packer) Map() map[int]Rect {
	rects := p.algo.Rects()
	m := make(map[int]Rect, len(rects))
	for _, r := range rects {
		m[r.ID] = r
	}
	return m
}

// Size 返回包住所有已放置矩形(含间距)的最小尺寸
func (p *Packer) Size() Size {
	var size Size
	for _, r := range p.algo.Rects() {
		size.Width = max(size.Width, r.Right()+p.Padding)
		size.Height = max(size.Height, r.Bottom()+p.Padding)
	}
	return size
}

// Reset 清空已放置和暂存的矩形, 保留箱子大小和设置
func (p *Packer) Reset() {
	bin := p.algo.MaxSize()
	p.algo.Reset(bin.Width, bin.Height)
	p.pending = p.pending[:0]
}
