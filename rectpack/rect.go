package rectpack

import "fmt"

// Point 描述了二维空间中的一个位置。
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size 描述了二维空间中实体的尺寸。
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// ID 是用户定义的标识符，用于区分此实例与其他实例。
	ID int `json:"-"`
}

// NewSize 创建具有指定尺寸的新尺寸对象。
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// NewSizeID 创建具有指定尺寸和唯一标识符的新尺寸对象。
func NewSizeID(id, width, height int) Size {
	return Size{ID: id, Width: width, Height: height}
}

func (sz Size) String() string {
	return fmt.Sprintf("[%v, %v]", sz.Width, sz.Height)
}

// Area 返回总面积（宽度 * 高度）。
func (sz Size) Area() int {
	return sz.Width * sz.Height
}

// Perimeter 返回所有边的总长度。
func (sz Size) Perimeter() int {
	return (sz.Width + sz.Height) << 1
}

func (sz Size) MaxSide() int {
	return max(sz.Width, sz.Height)
}

func (sz Size) MinSide() int {
	return min(sz.Width, sz.Height)
}

// Ratio 计算宽度与高度之间的比率。
func (sz Size) Ratio() float64 {
	return float64(sz.Width) / float64(sz.Height)
}

// Rect 描述了二维空间中的一个位置（左上角）和尺寸。
type Rect struct {
	Point
	Size
	// Rotated 指示矩形是否已旋转90度，此时 Width/Height 为旋转后的尺寸。
	Rotated bool `json:"flipped,omitempty"`
}

// NewRect 初始化一个使用指定点和尺寸值的新矩形。
func NewRect(x, y, w, h int) Rect {
	return Rect{
		Point: Point{X: x, Y: y},
		Size:  Size{Width: w, Height: h},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v, %v, %v, %v]", r.X, r.Y, r.Width, r.Height)
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// ContainsRect 测试指定的矩形是否包含在当前接收者的边界内。
func (r Rect) ContainsRect(rect Rect) bool {
	return r.X <= rect.X && rect.Right() <= r.Right() &&
		r.Y <= rect.Y && rect.Bottom() <= r.Bottom()
}

// IsEmpty 测试矩形的宽度或高度是否小于1。
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects 测试接收者是否与指定的矩形有任何重叠。
func (r Rect) Intersects(rect Rect) bool {
	return rect.X < r.Right() && r.X < rect.Right() &&
		rect.Y < r.Bottom() && r.Y < rect.Bottom()
}

func abs(x int) int {
	if x >= 0 {
		return x
	}
	return -x
}

// padSize 在给定的尺寸上加上指定的间距
func padSize(size *Size, padding int) {
	if padding <= 0 {
		return
	}
	size.Width += padding
	size.Height += padding
}

// unpadRect 从矩形的右侧和下方移除间距
func unpadRect(rect *Rect, padding int) {
	if padding <= 0 {
		return
	}
	rect.Width -= padding
	rect.Height -= padding
}

// commonInterval 返回区间 [a1,a2) 与 [b1,b2) 重叠的长度
func commonInterval(a1, a2, b1, b2 int) int {
	if a2 < b1 || b2 < a1 {
		return 0
	}
	return min(a2, b2) - max(a1, b1)
}
