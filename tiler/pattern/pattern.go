package pattern

import (
	"fmt"

	"github.com/valerio/go-tiler/tiler/video"
)

// Kind selects one of the built-in test patterns.
type Kind int

const (
	Checkerboard Kind = iota
	Gradient
	Stripes
	Diagonal

	kindCount
)

const (
	checkerboardTileSize = 8
	stripeWidth          = 4
	diagonalTileSize     = 8

	// Animation speeds, in pixels per step
	stripeAnimationSpeed   = 2
	diagonalAnimationSpeed = 4
)

var kindNames = [kindCount]string{
	Checkerboard: "checkerboard",
	Gradient:     "gradient",
	Stripes:      "stripes",
	Diagonal:     "diagonal",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Next cycles to the following pattern.
func (k Kind) Next() Kind {
	return (k + 1) % kindCount
}

// Parse maps a pattern name back to its Kind.
func Parse(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q", name)
}

// Palette holds the two colors the two-tone patterns alternate between.
// Gradient ignores it.
type Palette struct {
	A, B video.Color
}

var DefaultPalette = Palette{A: video.White, B: video.RGB(0x55, 0x55, 0x55)}

// Draw fills fb with pattern k. step animates stripes and diagonals by
// moving them along x; the other patterns are static.
func Draw(fb *video.FrameBuffer, k Kind, step int, p Palette) {
	w, h := fb.Width(), fb.Height()

	switch k {
	case Checkerboard:
		for y := 0; y < h; y++ {
			row := fb.Row(y)
			for x := range row {
				row[x] = pick(((x/checkerboardTileSize)+(y/checkerboardTileSize))%2 == 0, p)
			}
		}
	case Gradient:
		row := fb.Row(0)
		for x := range row {
			shade := uint8(x * 0xFF / max(w-1, 1))
			row[x] = video.RGB(shade, shade, shade)
		}
		for y := 1; y < h; y++ {
			copy(fb.Row(y), row)
		}
	case Stripes:
		shift := step * stripeAnimationSpeed
		row := fb.Row(0)
		for x := range row {
			row[x] = pick(((x+shift)/stripeWidth)%2 == 0, p)
		}
		for y := 1; y < h; y++ {
			copy(fb.Row(y), row)
		}
	case Diagonal:
		shift := step * diagonalAnimationSpeed
		for y := 0; y < h; y++ {
			row := fb.Row(y)
			for x := range row {
				row[x] = pick(((x+y+shift)/diagonalTileSize)%2 == 0, p)
			}
		}
	}
}

// New allocates a width x height buffer holding pattern k.
func New(width, height int, k Kind) *video.FrameBuffer {
	fb := video.NewFrameBuffer(width, height)
	Draw(fb, k, 0, DefaultPalette)
	return fb
}

func pick(first bool, p Palette) video.Color {
	if first {
		return p.A
	}
	return p.B
}
