package texture

import (
	"image"

	"github.com/valerio/go-tiler/tiler/video"
	xdraw "golang.org/x/image/draw"
)

// FromImage converts an already decoded image to an RGB565 frame buffer.
// Pixels with less than half alpha become key, so callers can hand in
// PNGs with a transparent background and draw them with a color key.
func FromImage(img image.Image, key video.Color) *video.FrameBuffer {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)

	fb := video.NewFrameBuffer(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		row := fb.Row(y)
		for x := range row {
			px := rgba.Pix[rgba.PixOffset(x, y):]
			if px[3] < 0x80 {
				row[x] = key
				continue
			}
			row[x] = video.RGB(px[0], px[1], px[2])
		}
	}
	return fb
}
