package tilemap

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/valerio/go-tiler/tiler/texture"
	"github.com/valerio/go-tiler/tiler/video"
)

// Empty marks a map cell with no tile.
const Empty = -1

var ErrTileSize = errors.New("layer size must be a multiple of the tile size")

// Map is a grid of tile indices. Lookups outside the grid wrap around, so
// a map repeats endlessly in every direction.
type Map struct {
	Cols, Rows int
	Tiles      []int
}

// New creates a cols x rows map filled with Empty.
func New(cols, rows int) *Map {
	if cols <= 0 || rows <= 0 {
		panic(fmt.Sprintf("tilemap: invalid size %dx%d", cols, rows))
	}
	tiles := make([]int, cols*rows)
	for i := range tiles {
		tiles[i] = Empty
	}
	return &Map{Cols: cols, Rows: rows, Tiles: tiles}
}

func (m *Map) Set(col, row, tile int) {
	m.Tiles[m.index(col, row)] = tile
}

func (m *Map) At(col, row int) int {
	return m.Tiles[m.index(col, row)]
}

func (m *Map) index(col, row int) int {
	return floorMod(row, m.Rows)*m.Cols + floorMod(col, m.Cols)
}

// Painter keeps a layer filled with the part of a map around a camera.
//
// The layer holds one tile column and row more than it shows, and map
// pixel (x, y) always lives at physical pixel (x mod width, y mod height).
// Scrolling therefore only moves the layer origin and paints the tiles
// that just came into range; everything else stays where it is.
type Painter struct {
	layer  *video.Layer
	m      *Map
	atlas  *video.FrameBuffer
	frames []texture.Frame

	tileW, tileH int
	cols, rows   int // tiles held by the layer

	camera   video.Vec2
	col, row int // top-left map tile currently held

	tilesDrawn int
}

// NewPainter paints m into layer using frames cut from atlas. Every frame
// must have the same size, and the layer must be a whole number of tiles
// wide and high. The layer is painted immediately.
func NewPainter(layer *video.Layer, m *Map, atlas *video.FrameBuffer, frames []texture.Frame) (*Painter, error) {
	if len(frames) == 0 {
		return nil, errors.New("tilemap: no tile frames")
	}

	size := frames[0].Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("tilemap: invalid tile size %dx%d", size.X, size.Y)
	}
	if layer.Width()%size.X != 0 || layer.Height()%size.Y != 0 {
		return nil, fmt.Errorf("%w: %dx%d layer, %dx%d tiles", ErrTileSize, layer.Width(), layer.Height(), size.X, size.Y)
	}

	p := &Painter{
		layer:  layer,
		m:      m,
		atlas:  atlas,
		frames: frames,
		tileW:  size.X,
		tileH:  size.Y,
		cols:   layer.Width() / size.X,
		rows:   layer.Height() / size.Y,
	}
	p.Redraw()
	return p, nil
}

// ViewSize is the largest area that is always fully painted: the layer
// minus its spare column and row.
func (p *Painter) ViewSize() video.Point {
	return video.Pt(p.layer.Width()-p.tileW, p.layer.Height()-p.tileH)
}

// Camera is the map pixel shown at the layer's logical origin.
func (p *Painter) Camera() video.Vec2 {
	return p.camera
}

// TilesDrawn counts tile draws since the painter was created.
func (p *Painter) TilesDrawn() int {
	return p.tilesDrawn
}

// Redraw repaints every tile the layer holds.
func (p *Painter) Redraw() {
	p.syncOrigin()
	p.col, p.row = p.topLeft()
	p.paint(p.col, p.row, p.cols, p.rows)
}

// MoveTo places the camera at map pixel pos.
func (p *Painter) MoveTo(pos video.Vec2) {
	p.Scroll(video.V(pos.X-p.camera.X, pos.Y-p.camera.Y))
}

// Scroll moves the camera by delta map pixels. Content on screen moves
// the opposite way. Only the tile columns and rows that enter the layer
// are painted.
func (p *Painter) Scroll(delta video.Vec2) {
	p.camera.X += delta.X
	p.camera.Y += delta.Y
	p.syncOrigin()

	col, row := p.topLeft()
	dc, dr := col-p.col, row-p.row
	if dc == 0 && dr == 0 {
		return
	}
	if abs(dc) >= p.cols || abs(dr) >= p.rows {
		p.col, p.row = col, row
		p.paint(col, row, p.cols, p.rows)
		return
	}

	// entering columns, over the new row range
	if dc > 0 {
		p.paint(p.col+p.cols, row, dc, p.rows)
	} else if dc < 0 {
		p.paint(col, row, -dc, p.rows)
	}

	// entering rows, skipping the columns painted above
	first, n := col, p.cols
	if dc > 0 {
		n -= dc
	} else if dc < 0 {
		first -= dc
		n += dc
	}
	if dr > 0 {
		p.paint(first, p.row+p.rows, n, dr)
	} else if dr < 0 {
		p.paint(first, row, n, -dr)
	}

	p.col, p.row = col, row
}

// syncOrigin points the layer's logical origin at the camera.
func (p *Painter) syncOrigin() {
	x, y := p.cameraPixel()
	p.layer.SetOrigin(video.V(
		float64(floorMod(x, p.layer.Width())),
		float64(floorMod(y, p.layer.Height())),
	))
}

func (p *Painter) cameraPixel() (int, int) {
	return int(math.Floor(p.camera.X)), int(math.Floor(p.camera.Y))
}

func (p *Painter) topLeft() (int, int) {
	x, y := p.cameraPixel()
	return floorDiv(x, p.tileW), floorDiv(y, p.tileH)
}

// paint draws a cols x rows block of map tiles starting at (col, row).
func (p *Painter) paint(col, row, cols, rows int) {
	for r := row; r < row+rows; r++ {
		for c := col; c < col+cols; c++ {
			p.drawTile(c, r)
		}
	}
	slog.Debug("Tiles painted", "col", col, "row", row, "cols", cols, "rows", rows)
}

func (p *Painter) drawTile(col, row int) {
	p.tilesDrawn++

	camX, camY := p.cameraPixel()
	w, h := p.layer.Width(), p.layer.Height()
	at := video.Pt(floorMod(col*p.tileW-camX, w), floorMod(row*p.tileH-camY, h))

	tile := p.m.At(col, row)
	if tile < 0 || tile >= len(p.frames) {
		p.forEachPiece(at, func(dst, off, size video.Point) {
			p.layer.FillRect(video.Rect{X: dst.X, Y: dst.Y, W: size.X, H: size.Y}, p.layer.BackgroundColor)
		})
		return
	}

	src := p.frames[tile].Rect.Min()
	p.forEachPiece(at, func(dst, off, size video.Point) {
		p.layer.DrawTexture(p.atlas, src.Add(off), dst, size, true)
	})
}

// forEachPiece splits a tile at logical position at where it runs past
// the logical edge of the layer; the overhang continues at logical 0.
func (p *Painter) forEachPiece(at video.Point, fn func(dst, off, size video.Point)) {
	xs := splitAxis(at.X, p.tileW, p.layer.Width())
	ys := splitAxis(at.Y, p.tileH, p.layer.Height())
	for _, y := range ys {
		for _, x := range xs {
			fn(video.Pt(x.dst, y.dst), video.Pt(x.off, y.off), video.Pt(x.n, y.n))
		}
	}
}

type piece struct {
	dst, off, n int
}

func splitAxis(pos, n, size int) []piece {
	if pos+n <= size {
		return []piece{{dst: pos, n: n}}
	}
	head := size - pos
	return []piece{{dst: pos, n: head}, {dst: 0, off: head, n: n - head}}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
