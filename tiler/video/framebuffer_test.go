package video

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameBuffer_PixelAccess(t *testing.T) {
	fb := NewFrameBuffer(4, 3)
	assert.Equal(t, 4, fb.Width())
	assert.Equal(t, 3, fb.Height())
	assert.Len(t, fb.ToSlice(), 12)

	fb.SetPixel(3, 2, Red)
	assert.Equal(t, Red, fb.GetPixel(3, 2))
	assert.Equal(t, Red, fb.ToSlice()[11])

	assert.Panics(t, func() { fb.GetPixel(4, 0) })
	assert.Panics(t, func() { fb.SetPixel(0, -1, Red) })
	assert.Panics(t, func() { NewFrameBuffer(0, 4) })
}

func TestFrameBuffer_Fill(t *testing.T) {
	for _, size := range []Point{{1, 1}, {3, 1}, {7, 5}, {16, 16}} {
		fb := NewFrameBuffer(size.X, size.Y)
		fb.Fill(Yellow)
		for i, c := range fb.ToSlice() {
			assert.Equal(t, Yellow, c, "size %v pixel %d", size, i)
		}
	}
}

func TestFrameBuffer_FillRectClips(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.FillRect(R(-1, 2, 3, 5), Blue)

	expected := []Color{
		Black, Black, Black, Black,
		Black, Black, Black, Black,
		Blue, Blue, Black, Black,
		Blue, Blue, Black, Black,
	}
	assert.Equal(t, expected, fb.ToSlice())
}

func TestFrameBuffer_CloneIsDeep(t *testing.T) {
	fb := patternBuffer(3, 3)
	c := fb.Clone()
	c.SetPixel(0, 0, White)

	assert.NotEqual(t, fb.GetPixel(0, 0), c.GetPixel(0, 0))
}

func TestFrameBuffer_ImplementsImage(t *testing.T) {
	var _ image.Image = (*FrameBuffer)(nil)

	fb := NewFrameBuffer(2, 2)
	fb.Set(1, 1, color.RGBA{R: 0xFF, A: 0xFF})

	assert.Equal(t, image.Rect(0, 0, 2, 2), fb.Bounds())
	assert.Equal(t, Red, fb.At(1, 1))
	assert.Equal(t, Black, fb.At(5, 5))
}

func TestColor_RGB(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		packed  Color
	}{
		{"black", 0, 0, 0, Black},
		{"white", 0xFF, 0xFF, 0xFF, White},
		{"red", 0xFF, 0, 0, Red},
		{"green", 0, 0xFF, 0, Green},
		{"blue", 0, 0, 0xFF, Blue},
		{"magenta", 0xFF, 0, 0xFF, Magenta},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := RGB(tt.r, tt.g, tt.b)
			assert.Equal(t, tt.packed, c)

			r, g, b := c.RGB()
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}

func TestColor_RGBAIsOpaque(t *testing.T) {
	r, g, b, a := White.RGBA()
	assert.Equal(t, []uint32{0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF}, []uint32{r, g, b, a})

	_, _, _, a = Black.RGBA()
	assert.Equal(t, uint32(0xFFFF), a)
}

func TestPixelFormat(t *testing.T) {
	assert.Equal(t, 16, FormatRGB565.Bits())
	assert.Equal(t, 32, FormatRGBA8888.Bits())
	assert.Equal(t, "RGB565", EngineFormat.String())
}
