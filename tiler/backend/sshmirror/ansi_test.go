package sshmirror

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valerio/go-tiler/tiler/video"
)

func TestEncodeHalfBlocks(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		pixels map[video.Point]video.Color
		want   string
	}{
		{
			name:   "odd height pads with black",
			w:      2,
			h:      1,
			pixels: map[video.Point]video.Color{{X: 0, Y: 0}: video.Red, {X: 1, Y: 0}: video.Red},
			want:   "\x1b[38;2;255;0;0;48;2;0;0;0m▀▀\x1b[0m\r\n",
		},
		{
			name: "color change starts a new sequence",
			w:    2,
			h:    2,
			pixels: map[video.Point]video.Color{
				{X: 0, Y: 0}: video.Red,
				{X: 1, Y: 0}: video.Blue,
				{X: 0, Y: 1}: video.Green,
				{X: 1, Y: 1}: video.Green,
			},
			want: "\x1b[38;2;255;0;0;48;2;0;255;0m▀" +
				"\x1b[38;2;0;0;255;48;2;0;255;0m▀\x1b[0m\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := video.NewFrameBuffer(tt.w, tt.h)
			for p, c := range tt.pixels {
				fb.SetPixel(p.X, p.Y, c)
			}
			assert.Equal(t, tt.want, EncodeHalfBlocks(fb))
		})
	}
}

func TestEncodeHalfBlocks_LineCount(t *testing.T) {
	out := EncodeHalfBlocks(video.NewFrameBuffer(5, 7))

	assert.Equal(t, 4, strings.Count(out, "\r\n"))
	assert.Equal(t, 20, strings.Count(out, upperHalfBlock))
	// every line starts with its own sequence
	assert.Equal(t, 4, strings.Count(out, "38;2;"))
}

func TestOffer_KeepsNewest(t *testing.T) {
	ch := make(chan string, 1)
	offer(ch, "first")
	offer(ch, "second")

	assert.Equal(t, "second", <-ch)
	assert.Empty(t, ch)
}
