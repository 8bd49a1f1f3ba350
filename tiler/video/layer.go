package video

// Layer is an independently scrollable pixel buffer.
//
// Scrolling never moves pixel data. The layer keeps a logical origin into
// its buffer instead: logical (0,0) lives at the physical pixel
// Origin(), and everything right of / below the buffer edge wraps around
// to column / row 0. Drawing and compositing both split their rectangles
// at that wrap edge.
//
//	physical buffer         as composited
//	+-----+---------+       +---------+-----+
//	| TL  |   TR    |       |   BR    | BL  |
//	+-----o---------+  -->  +---------+-----+
//	| BL  |   BR    |       |   TR    | TL  |
//	+-----+---------+       +---------+-----+
type Layer struct {
	buffer *FrameBuffer
	origin Vec2

	// CameraOffset is where the layer's logical origin lands on the
	// compositing target.
	CameraOffset Point
	// BackgroundColor is used by Clear.
	BackgroundColor Color
	// TransparentColor is the color key used when drawing textures onto
	// the layer and, with DrawWithTransparency, when compositing it.
	TransparentColor Color
	// DrawWithTransparency makes RenderToBuffer skip TransparentColor
	// pixels instead of copying the layer opaquely.
	DrawWithTransparency bool
}

// NewLayer creates a layer with its own width x height buffer.
func NewLayer(width, height int) *Layer {
	return NewLayerWithBuffer(NewFrameBuffer(width, height))
}

// NewLayerWithBuffer wraps an existing buffer. The layer takes ownership.
func NewLayerWithBuffer(fb *FrameBuffer) *Layer {
	return &Layer{
		buffer:           fb,
		BackgroundColor:  Black,
		TransparentColor: Magenta,
	}
}

func (l *Layer) Buffer() *FrameBuffer {
	return l.buffer
}

func (l *Layer) Width() int {
	return l.buffer.width
}

func (l *Layer) Height() int {
	return l.buffer.height
}

// Origin returns the logical origin, always inside [0,width) x [0,height).
func (l *Layer) Origin() Vec2 {
	return l.origin
}

// SetOrigin moves the logical origin to v, normalised into the buffer.
func (l *Layer) SetOrigin(v Vec2) {
	l.origin.X = wrap(v.X, float64(l.buffer.width))
	l.origin.Y = wrap(v.Y, float64(l.buffer.height))
}

// ResetOrigin undoes all scrolling.
func (l *Layer) ResetOrigin() {
	l.origin = Vec2{}
}

// Shift scrolls the layer content by delta. Content moves right/down for
// positive deltas, which is the origin moving left/up. Any delta is O(1).
func (l *Layer) Shift(delta Vec2) {
	l.SetOrigin(Vec2{l.origin.X - delta.X, l.origin.Y - delta.Y})
}

// physicalOrigin is the buffer pixel holding logical (0,0).
func (l *Layer) physicalOrigin() Point {
	return Point{int(l.origin.X), int(l.origin.Y)}
}

// Clear fills the whole buffer with BackgroundColor. The origin is kept.
func (l *Layer) Clear() {
	l.buffer.Fill(l.BackgroundColor)
}

// DrawTexture copies a size.X x size.Y region of src, starting at srcPos,
// to dstPos in unshifted layer coordinates.
//
// The rectangle is clipped against the raw buffer first, then against
// src. Whatever remains is moved by the origin and written in up to four
// pieces where it crosses the wrap edges. Pixels equal to
// TransparentColor are skipped unless ignoreTransparency is set.
// Rectangles that clip away entirely are a no-op.
func (l *Layer) DrawTexture(src *FrameBuffer, srcPos, dstPos, size Point, ignoreTransparency bool) {
	xs, ok := clipAxis(srcPos.X, dstPos.X, size.X, l.buffer.width)
	if !ok {
		return
	}
	ys, ok := clipAxis(srcPos.Y, dstPos.Y, size.Y, l.buffer.height)
	if !ok {
		return
	}
	if xs, ok = clipSource(xs, src.width); !ok {
		return
	}
	if ys, ok = clipSource(ys, src.height); !ok {
		return
	}

	key := Opaque
	if !ignoreTransparency {
		key = Key(l.TransparentColor)
	}

	o := l.physicalOrigin()
	xparts, nx := wrapAxis(xs.src, l.toPhysical(xs.dst, o.X, l.buffer.width), xs.n, l.buffer.width)
	yparts, ny := wrapAxis(ys.src, l.toPhysical(ys.dst, o.Y, l.buffer.height), ys.n, l.buffer.height)
	for _, y := range yparts[:ny] {
		for _, x := range xparts[:nx] {
			Blit(l.buffer, Point{x.dst, y.dst}, src, Point{x.src, y.src}, Point{x.n, y.n}, key)
		}
	}
}

// FillRect fills r, given in unshifted layer coordinates, with c. It
// follows the same clipping and wrapping as DrawTexture.
func (l *Layer) FillRect(r Rect, c Color) {
	xs, ok := clipAxis(0, r.X, r.W, l.buffer.width)
	if !ok {
		return
	}
	ys, ok := clipAxis(0, r.Y, r.H, l.buffer.height)
	if !ok {
		return
	}

	o := l.physicalOrigin()
	xparts, nx := wrapAxis(0, l.toPhysical(xs.dst, o.X, l.buffer.width), xs.n, l.buffer.width)
	yparts, ny := wrapAxis(0, l.toPhysical(ys.dst, o.Y, l.buffer.height), ys.n, l.buffer.height)
	for _, y := range yparts[:ny] {
		for _, x := range xparts[:nx] {
			l.buffer.FillRect(Rect{x.dst, y.dst, x.n, y.n}, c)
		}
	}
}

// PixelAt reads the pixel at logical position p, wrapping as needed.
func (l *Layer) PixelAt(p Point) Color {
	o := l.physicalOrigin()
	x := (p.X%l.buffer.width + l.buffer.width + o.X) % l.buffer.width
	y := (p.Y%l.buffer.height + l.buffer.height + o.Y) % l.buffer.height
	return l.buffer.GetPixel(x, y)
}

// toPhysical maps an in-bounds logical coordinate onto the buffer.
func (l *Layer) toPhysical(v, origin, size int) int {
	v += origin
	if v >= size {
		v -= size
	}
	return v
}

// clipSource trims a span so its source side stays inside [0, limit).
func clipSource(s span, limit int) (span, bool) {
	swapped, ok := clipAxis(s.dst, s.src, s.n, limit)
	if !ok {
		return span{}, false
	}
	return span{src: swapped.dst, dst: swapped.src, n: swapped.n}, true
}

// RenderToBuffer composites the layer onto dst with its logical origin at
// CameraOffset.
//
// The buffer is cut into four quadrants at the physical origin. They are
// placed bottom-right, bottom-left, top-right, top-left, each one after
// the previous along the running offset, which puts the pixels back into
// logical order. Each quadrant is clipped against dst on its own.
//
// Rendering a layer into its own buffer does nothing; the sprite layer
// is drawn into directly and is never composited onto itself.
func (l *Layer) RenderToBuffer(dst *FrameBuffer) {
	if dst == l.buffer {
		return
	}

	w, h := l.buffer.width, l.buffer.height
	footprint := Rect{l.CameraOffset.X, l.CameraOffset.Y, w, h}
	if !footprint.Overlaps(dst.Rect()) {
		return
	}

	key := Opaque
	if l.DrawWithTransparency {
		key = Key(l.TransparentColor)
	}

	o := l.physicalOrigin()
	right, bottom := w-o.X, h-o.Y
	quadrants := [4]struct {
		src Rect
		at  Point
	}{
		{Rect{o.X, o.Y, right, bottom}, Point{0, 0}}, // bottom-right
		{Rect{0, o.Y, o.X, bottom}, Point{right, 0}}, // bottom-left
		{Rect{o.X, 0, right, o.Y}, Point{0, bottom}}, // top-right
		{Rect{0, 0, o.X, o.Y}, Point{right, bottom}}, // top-left
	}

	for _, q := range quadrants {
		if q.src.Empty() {
			continue
		}
		xs, ok := clipAxis(q.src.X, l.CameraOffset.X+q.at.X, q.src.W, dst.width)
		if !ok {
			continue
		}
		ys, ok := clipAxis(q.src.Y, l.CameraOffset.Y+q.at.Y, q.src.H, dst.height)
		if !ok {
			continue
		}
		Blit(dst, Point{xs.dst, ys.dst}, l.buffer, Point{xs.src, ys.src}, Point{xs.n, ys.n}, key)
	}
}
