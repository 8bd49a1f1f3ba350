package video

import "math"

// Point is an integer pixel position or size.
type Point struct {
	X, Y int
}

func Pt(x, y int) Point {
	return Point{x, y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Vec2 is a sub-pixel position, used for scroll origins and sprite positions.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 {
	return Vec2{x, y}
}

// Truncate drops the fractional part toward zero.
func (v Vec2) Truncate() Point {
	return Point{int(v.X), int(v.Y)}
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H int
}

func R(x, y, w, h int) Rect {
	return Rect{x, y, w, h}
}

func (r Rect) Min() Point {
	return Point{r.X, r.Y}
}

func (r Rect) Size() Point {
	return Point{r.W, r.H}
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the overlapping area, or an empty Rect.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := max(r.X, s.X), max(r.Y, s.Y)
	x1, y1 := min(r.X+r.W, s.X+s.W), min(r.Y+r.H, s.Y+s.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

func (r Rect) Overlaps(s Rect) bool {
	return !r.Intersect(s).Empty()
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// span is one clipped run along a single axis: n pixels read from src and
// written at dst.
type span struct {
	src, dst, n int
}

// clipAxis places a run of n pixels, read starting at src, onto an axis
// of length limit at position dst. A negative dst trims the front of the
// run and advances src by the same amount, overhang past limit trims the
// tail. The second result is false when nothing is left.
//
// Texture clipping, wrap splitting and compositing all go through here so
// the sign handling lives in exactly one place.
func clipAxis(src, dst, n, limit int) (span, bool) {
	if dst < 0 {
		src -= dst
		n += dst
		dst = 0
	}
	if dst+n > limit {
		n = limit - dst
	}
	if n <= 0 {
		return span{}, false
	}
	return span{src: src, dst: dst, n: n}, true
}

// wrapAxis splits a run starting at physical position pos (already in
// [0, size)) into the part before the wrap edge and the part that
// continues from 0. Missing parts are left out of the count.
func wrapAxis(src, pos, n, size int) (parts [2]span, count int) {
	if s, ok := clipAxis(src, pos, n, size); ok {
		parts[count] = s
		count++
	}
	if s, ok := clipAxis(src, pos-size, n, size); ok {
		parts[count] = s
		count++
	}
	return parts, count
}

// wrap normalises v into [0, size). The result never equals size even
// when float rounding of a tiny negative remainder would produce it.
func wrap(v, size float64) float64 {
	r := math.Mod(v, size)
	if r < 0 {
		r += size
	}
	if r >= size || math.IsNaN(r) {
		r = 0
	}
	return r
}
