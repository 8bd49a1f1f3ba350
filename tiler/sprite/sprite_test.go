package sprite

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-tiler/tiler/texture"
)

func TestAnimated(t *testing.T) {
	frames := texture.GridFrames("walk", 24, 8, 8, 8)

	tests := []struct {
		name     string
		loop     bool
		ticks    int
		expected int
		done     bool
	}{
		{"first frame held", true, 1, 0, false},
		{"advances after hold", true, 2, 1, false},
		{"loops back", true, 6, 0, false},
		{"stops on last frame", false, 10, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Animated{Frames: frames, TicksPerFrame: 2, Loop: tt.loop}
			for i := 0; i < tt.ticks; i++ {
				a.Tick()
			}
			assert.Equal(t, frames[tt.expected], *a.CurrentFrame())
			assert.Equal(t, tt.done, a.Done())
		})
	}
}

func TestAnimated_NoFrames(t *testing.T) {
	a := &Animated{}
	a.Tick()
	assert.Nil(t, a.CurrentFrame())
}

func TestAnimated_Reset(t *testing.T) {
	a := &Animated{Frames: texture.GridFrames("walk", 16, 8, 8, 8), TicksPerFrame: 1}
	a.Tick()
	assert.Equal(t, 8, a.CurrentFrame().Rect.X)

	a.Reset()
	assert.Equal(t, 0, a.CurrentFrame().Rect.X)
}

func TestSlice(t *testing.T) {
	f := texture.NewFrame("a", 0, 0, 1, 1)
	a := &Basic{X: 1, Y: 2, Frame: &f}
	b := &Basic{X: 3, Y: 4}

	got := slices.Collect(Slice(a, b))
	assert.Equal(t, []Sprite{a, b}, got)

	x, y := got[0].Position()
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 2.0, y)
	assert.Nil(t, got[1].CurrentFrame())
}

func TestSpritesImplementInterface(t *testing.T) {
	var _ Sprite = (*Basic)(nil)
	var _ Sprite = (*Animated)(nil)
}
