package demo

import (
	"image"
	"image/color"

	"github.com/valerio/go-tiler/tiler/pattern"
	"github.com/valerio/go-tiler/tiler/texture"
	"github.com/valerio/go-tiler/tiler/video"
)

const (
	TilesAtlas = "tiles"
	BallAtlas  = "ball"

	TileSize  = 8
	BallSize  = 8
	ballSteps = 4
)

// tilePalettes color the tile sheet, one tile per entry.
var tilePalettes = []struct {
	kind    pattern.Kind
	palette pattern.Palette
}{
	{pattern.Checkerboard, pattern.Palette{A: video.RGB(0x30, 0x60, 0x30), B: video.RGB(0x20, 0x40, 0x20)}},
	{pattern.Stripes, pattern.Palette{A: video.RGB(0x80, 0x50, 0x20), B: video.RGB(0x60, 0x38, 0x10)}},
	{pattern.Diagonal, pattern.Palette{A: video.RGB(0x40, 0x40, 0x90), B: video.RGB(0x28, 0x28, 0x60)}},
	{pattern.Checkerboard, pattern.Palette{A: video.RGB(0x90, 0x90, 0x90), B: video.RGB(0x60, 0x60, 0x60)}},
}

// TileSheet builds a one-row atlas of TileSize tiles.
func TileSheet() (*video.FrameBuffer, []texture.Frame) {
	atlas := video.NewFrameBuffer(TileSize*len(tilePalettes), TileSize)
	tile := video.NewFrameBuffer(TileSize, TileSize)

	for i, t := range tilePalettes {
		pattern.Draw(tile, t.kind, i, t.palette)
		video.Blit(atlas, video.Pt(i*TileSize, 0), tile, video.Pt(0, 0), tile.Size(), video.Opaque)
	}
	return atlas, texture.GridFrames(TilesAtlas, atlas.Width(), atlas.Height(), TileSize, TileSize)
}

// BallSheet renders a pulsing ball animation. Pixels outside the ball are
// fully transparent in the source image and become key.
func BallSheet(key video.Color) (*video.FrameBuffer, []texture.Frame) {
	img := image.NewNRGBA(image.Rect(0, 0, BallSize*ballSteps, BallSize))
	center := float64(BallSize-1) / 2

	for step := 0; step < ballSteps; step++ {
		radius := center - float64(step%2)*0.75
		shade := uint8(0xC0 + step*0x10)
		for y := 0; y < BallSize; y++ {
			for x := 0; x < BallSize; x++ {
				dx, dy := float64(x)-center, float64(y)-center
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				img.SetNRGBA(step*BallSize+x, y, color.NRGBA{R: shade, G: 0x40, B: 0x30, A: 0xFF})
			}
		}
	}

	atlas := texture.FromImage(img, key)
	return atlas, texture.GridFrames(BallAtlas, atlas.Width(), atlas.Height(), BallSize, BallSize)
}
