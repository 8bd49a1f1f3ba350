package sprite

import (
	"iter"

	"github.com/valerio/go-tiler/tiler/texture"
)

// Sprite is a per-frame snapshot read by the renderer: where to draw and
// which frame to draw. A nil frame means the sprite is skipped.
type Sprite interface {
	Position() (x, y float64)
	CurrentFrame() *texture.Frame
}

// Basic is a sprite with a fixed frame.
type Basic struct {
	X, Y  float64
	Frame *texture.Frame
}

func (b *Basic) Position() (float64, float64) {
	return b.X, b.Y
}

func (b *Basic) CurrentFrame() *texture.Frame {
	return b.Frame
}

// Animated cycles through Frames, holding each one for TicksPerFrame
// calls to Tick.
type Animated struct {
	X, Y          float64
	Frames        []texture.Frame
	TicksPerFrame int
	Loop          bool

	tick  int
	index int
}

func (a *Animated) Position() (float64, float64) {
	return a.X, a.Y
}

func (a *Animated) CurrentFrame() *texture.Frame {
	if len(a.Frames) == 0 {
		return nil
	}
	return &a.Frames[a.index]
}

// Tick advances the animation by one step. Non-looping animations stop on
// their last frame.
func (a *Animated) Tick() {
	if len(a.Frames) < 2 {
		return
	}

	a.tick++
	if a.tick < max(a.TicksPerFrame, 1) {
		return
	}
	a.tick = 0

	if a.index+1 < len(a.Frames) {
		a.index++
	} else if a.Loop {
		a.index = 0
	}
}

// Done reports whether a non-looping animation reached its last frame.
func (a *Animated) Done() bool {
	return !a.Loop && a.index == len(a.Frames)-1
}

// Reset rewinds to the first frame.
func (a *Animated) Reset() {
	a.tick, a.index = 0, 0
}

// Slice adapts a fixed list of sprites to the sequence the renderer
// consumes.
func Slice[S Sprite](sprites ...S) iter.Seq[Sprite] {
	return func(yield func(Sprite) bool) {
		for _, s := range sprites {
			if !yield(s) {
				return
			}
		}
	}
}
