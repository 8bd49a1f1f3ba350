package video

import (
	"fmt"
	"image"
	"image/color"
)

// FrameBuffer is a fixed-size grid of RGB565 pixels stored row-major.
// Its dimensions never change after creation.
type FrameBuffer struct {
	width  int
	height int
	buffer []Color
}

// NewFrameBuffer creates a frame buffer with the specified size, filled with Black.
func NewFrameBuffer(width, height int) *FrameBuffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("video: invalid frame buffer size %dx%d", width, height))
	}

	return &FrameBuffer{
		width:  width,
		height: height,
		buffer: make([]Color, width*height),
	}
}

func (fb *FrameBuffer) Width() int {
	return fb.width
}

func (fb *FrameBuffer) Height() int {
	return fb.height
}

// Size returns the dimensions as a Point.
func (fb *FrameBuffer) Size() Point {
	return Point{fb.width, fb.height}
}

// Rect returns the buffer bounds anchored at (0,0).
func (fb *FrameBuffer) Rect() Rect {
	return Rect{W: fb.width, H: fb.height}
}

// Format is always the engine format.
func (fb *FrameBuffer) Format() PixelFormat {
	return EngineFormat
}

func (fb *FrameBuffer) GetPixel(x, y int) Color {
	return fb.buffer[fb.offset(x, y)]
}

func (fb *FrameBuffer) SetPixel(x, y int, c Color) {
	fb.buffer[fb.offset(x, y)] = c
}

func (fb *FrameBuffer) offset(x, y int) int {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		panic(fmt.Sprintf("video: pixel (%d,%d) outside %dx%d buffer", x, y, fb.width, fb.height))
	}
	return y*fb.width + x
}

// Fill sets every pixel to c.
func (fb *FrameBuffer) Fill(c Color) {
	if len(fb.buffer) == 0 {
		return
	}
	fb.buffer[0] = c
	// doubling copy
	for filled := 1; filled < len(fb.buffer); filled *= 2 {
		copy(fb.buffer[filled:], fb.buffer[:filled])
	}
}

// FillRect fills the part of r that lies inside the buffer.
func (fb *FrameBuffer) FillRect(r Rect, c Color) {
	r = r.Intersect(fb.Rect())
	if r.Empty() {
		return
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		row := fb.Row(y)[r.X : r.X+r.W]
		for i := range row {
			row[i] = c
		}
	}
}

// Row returns the backing slice for row y. Writes go straight to the buffer.
func (fb *FrameBuffer) Row(y int) []Color {
	start := y * fb.width
	return fb.buffer[start : start+fb.width]
}

// ToSlice exposes the raw pixel storage.
func (fb *FrameBuffer) ToSlice() []Color {
	return fb.buffer
}

// Clone returns a deep copy.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	c := NewFrameBuffer(fb.width, fb.height)
	copy(c.buffer, fb.buffer)
	return c
}

// CopyFrom copies the whole of src into fb. Both buffers must have the same size.
func (fb *FrameBuffer) CopyFrom(src *FrameBuffer) {
	if src.width != fb.width || src.height != fb.height {
		panic(fmt.Sprintf("video: copy from %dx%d into %dx%d", src.width, src.height, fb.width, fb.height))
	}
	copy(fb.buffer, src.buffer)
}

// ColorModel implements image.Image.
func (fb *FrameBuffer) ColorModel() color.Model {
	return ColorModel
}

// Bounds implements image.Image.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// At implements image.Image. Points outside the buffer read as Black.
func (fb *FrameBuffer) At(x, y int) color.Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Black
	}
	return fb.buffer[y*fb.width+x]
}

// Set implements draw.Image.
func (fb *FrameBuffer) Set(x, y int, c color.Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.buffer[y*fb.width+x] = ColorModel.Convert(c).(Color)
}
