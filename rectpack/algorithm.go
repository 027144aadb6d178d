package rectpack

// algorithm 是 MaxRects, Skyline, Guillotine 共同的放置接口
type algorithm interface {
	Reset(width, height int)
	// Insert 尽量放置 sizes, padding 加在矩形右侧和下方, 返回放不下的尺寸
	Insert(padding int, sizes ...Size) []Size
	Rects() []Rect
	AllowRotate(enabled bool)
	MaxSize() Size
}

// binBase 保存各算法共有的箱子状态
type binBase struct {
	width, height int
	packed        []Rect
	allowRotate   bool
}

func (b *binBase) Reset(width, height int) {
	b.width, b.height = width, height
	b.packed = b.packed[:0]
}

func (b *binBase) Rects() []Rect { return b.packed }

func (b *binBase) AllowRotate(enabled bool) { b.allowRotate = enabled }

func (b *binBase) MaxSize() Size { return NewSize(b.width, b.height) }

// place 记录一个节点. node 含间距, 旋转时宽高已交换, 记录前去掉间距
func (b *binBase) place(node Rect, size Size, rotated bool, padding int) {
	node.ID = size.ID
	node.Rotated = rotated
	unpadRect(&node, padding)
	b.packed = append(b.packed, node)
}
