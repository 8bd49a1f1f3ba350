package texture

import "github.com/valerio/go-tiler/tiler/video"

// Frame references a rectangle inside a named atlas. It never holds pixel
// data itself.
type Frame struct {
	Atlas string
	Rect  video.Rect
}

func NewFrame(atlas string, x, y, w, h int) Frame {
	return Frame{Atlas: atlas, Rect: video.R(x, y, w, h)}
}

// GridFrames cuts an atlas of atlasW x atlasH pixels into cellW x cellH
// frames, row by row. Partial cells at the right and bottom edges are
// left out.
func GridFrames(atlas string, atlasW, atlasH, cellW, cellH int) []Frame {
	if cellW <= 0 || cellH <= 0 {
		return nil
	}

	cols, rows := atlasW/cellW, atlasH/cellH
	frames := make([]Frame, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			frames = append(frames, NewFrame(atlas, col*cellW, row*cellH, cellW, cellH))
		}
	}
	return frames
}

// Size returns the frame dimensions.
func (f Frame) Size() video.Point {
	return f.Rect.Size()
}
