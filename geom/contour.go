package geom

import "image"

// ChainApprox selects how many boundary points a traced contour keeps.
type ChainApprox int

const (
	// ChainApproxNone keeps every boundary pixel.
	ChainApproxNone ChainApprox = iota
	// ChainApproxSimple keeps only the end points of horizontal, vertical and
	// diagonal runs.
	ChainApproxSimple
)

// Moore neighbourhood, clockwise on screen starting west.
var neighbours = [8]Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

func direction(d Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return 0
}

type bitmap struct {
	w, h int
	pix  []uint8
}

func (b *bitmap) set(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.pix[y*b.w+x] != 0
}

// ExternalContours traces the outer boundary of every 8-connected group of
// non-zero pixels in mask. Holes are not traced and groups lying inside a hole
// of another group are skipped. Loops are returned in scan order (topmost, then
// leftmost starting pixel) and run clockwise on screen.
func ExternalContours(mask *image.Gray, mode ChainApprox) [][]Point {
	b := mask.Bounds()
	bm := &bitmap{w: b.Dx(), h: b.Dy(), pix: make([]uint8, b.Dx()*b.Dy())}
	for y := 0; y < bm.h; y++ {
		copy(bm.pix[y*bm.w:(y+1)*bm.w], mask.Pix[mask.PixOffset(b.Min.X, b.Min.Y+y):])
	}

	outside := outerBackground(bm)
	labels := make([]bool, len(bm.pix))

	var contours [][]Point
	for y := 0; y < bm.h; y++ {
		for x := 0; x < bm.w; x++ {
			i := y*bm.w + x
			if bm.pix[i] == 0 || labels[i] {
				continue
			}
			// (x, y) is the first pixel of a new group: nothing of it lies above.
			markGroup(bm, labels, x, y)
			if y > 0 && !outside[i-bm.w] {
				continue
			}
			loop := traceBoundary(bm, Pt(x, y))
			if mode == ChainApproxSimple {
				loop = compressRuns(loop)
			}
			contours = append(contours, loop)
		}
	}
	return contours
}

// outerBackground flags background pixels 4-connected to the area outside the mask.
func outerBackground(bm *bitmap) []bool {
	outside := make([]bool, len(bm.pix))
	var queue []int
	push := func(x, y int) {
		i := y*bm.w + x
		if bm.pix[i] != 0 || outside[i] {
			return
		}
		outside[i] = true
		queue = append(queue, i)
	}
	for x := 0; x < bm.w; x++ {
		push(x, 0)
		push(x, bm.h-1)
	}
	for y := 0; y < bm.h; y++ {
		push(0, y)
		push(bm.w-1, y)
	}
	for len(queue) > 0 {
		i := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := i%bm.w, i/bm.w
		if x > 0 {
			push(x-1, y)
		}
		if x < bm.w-1 {
			push(x+1, y)
		}
		if y > 0 {
			push(x, y-1)
		}
		if y < bm.h-1 {
			push(x, y+1)
		}
	}
	return outside
}

func markGroup(bm *bitmap, labels []bool, x, y int) {
	stack := []Point{{x, y}}
	labels[y*bm.w+x] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range neighbours {
			q := Point{p.X + n.X, p.Y + n.Y}
			if !bm.set(q.X, q.Y) || labels[q.Y*bm.w+q.X] {
				continue
			}
			labels[q.Y*bm.w+q.X] = true
			stack = append(stack, q)
		}
	}
}

// traceBoundary follows the boundary clockwise with Moore neighbour tracing,
// starting at the topmost-leftmost pixel of a group. The walk stops when it is
// about to repeat its first step.
func traceBoundary(bm *bitmap, start Point) []Point {
	loop := []Point{start}

	cur, back := start, 0 // west of the start pixel is background
	var first Point
	for step := 0; ; step++ {
		next, nextBack, ok := mooreStep(bm, cur, back)
		if !ok {
			return loop // isolated pixel
		}
		if step == 0 {
			first = next
		} else if cur == start && next == first {
			return loop[:len(loop)-1]
		}
		loop = append(loop, next)
		cur, back = next, nextBack
	}
}

// mooreStep scans the neighbours of cur clockwise, starting after the
// background pixel in direction back, and returns the first set pixel together
// with the direction, seen from that pixel, of the background pixel checked
// just before it.
func mooreStep(bm *bitmap, cur Point, back int) (Point, int, bool) {
	for k := 1; k <= 8; k++ {
		d := (back + k) % 8
		n := Point{cur.X + neighbours[d].X, cur.Y + neighbours[d].Y}
		if !bm.set(n.X, n.Y) {
			continue
		}
		pd := neighbours[(back+k-1)%8]
		prev := Point{cur.X + pd.X, cur.Y + pd.Y}
		return n, direction(Point{prev.X - n.X, prev.Y - n.Y}), true
	}
	return cur, back, false
}

// compressRuns drops every point that continues the step direction of the
// point before it.
func compressRuns(loop []Point) []Point {
	if len(loop) < 3 {
		return loop
	}
	out := make([]Point, 0, len(loop))
	n := len(loop)
	for i, p := range loop {
		prev := loop[(i+n-1)%n]
		next := loop[(i+1)%n]
		in := Point{p.X - prev.X, p.Y - prev.Y}
		outd := Point{next.X - p.X, next.Y - p.Y}
		if in != outd {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return loop[:1]
	}
	return out
}
