package video

import (
	"fmt"
	"image/color"
)

// Color is a single RGB565 pixel: 5 bits red, 6 bits green, 5 bits blue.
type Color uint16

const (
	Black   Color = 0x0000
	White   Color = 0xFFFF
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Blue    Color = 0x001F
	Yellow  Color = 0xFFE0
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F // conventional color key
)

// RGB packs 8-bit channels into a Color, dropping the low bits.
func RGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGB expands the color back to 8-bit channels. The high bits are
// replicated into the low bits so that White maps to 0xFF.
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB()
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("#%04X", uint16(c))
}

// ColorModel converts arbitrary colors to RGB565.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if c565, ok := c.(Color); ok {
		return c565
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})

// PixelFormat identifies the memory layout of a display buffer.
type PixelFormat int

const (
	FormatRGB565 PixelFormat = iota
	FormatRGBA8888
)

// EngineFormat is the only format layers and frame buffers are kept in.
const EngineFormat = FormatRGB565

// Bits returns the number of bits per pixel.
func (f PixelFormat) Bits() int {
	switch f {
	case FormatRGB565:
		return 16
	case FormatRGBA8888:
		return 32
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case FormatRGB565:
		return "RGB565"
	case FormatRGBA8888:
		return "RGBA8888"
	default:
		return fmt.Sprintf("PixelFormat(%d)", int(f))
	}
}
