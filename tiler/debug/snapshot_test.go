package debug

import (
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tiler/tiler/video"
)

func TestImage_Scales(t *testing.T) {
	fb := video.NewFrameBuffer(2, 1)
	fb.SetPixel(0, 0, video.Red)
	fb.SetPixel(1, 0, video.Blue)

	img := Image(fb, 3)
	require.Equal(t, 6, img.Bounds().Dx())
	require.Equal(t, 3, img.Bounds().Dy())

	red := color.RGBA{R: 0xFF, A: 0xFF}
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	assert.Equal(t, red, img.RGBAAt(0, 0))
	assert.Equal(t, red, img.RGBAAt(2, 2))
	assert.Equal(t, blue, img.RGBAAt(3, 0))
	assert.Equal(t, blue, img.RGBAAt(5, 2))
}

func TestSaveFramePNGToDir(t *testing.T) {
	dir := t.TempDir()
	fb := video.NewFrameBuffer(4, 2)
	fb.Fill(video.Green)

	path, err := SaveFramePNGToDir(fb, "scene", dir, 2)
	require.NoError(t, err)
	assert.FileExists(t, path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestSaveFramePNGToDir_MissingDirectory(t *testing.T) {
	_, err := SaveFramePNGToDir(video.NewFrameBuffer(1, 1), "x", "/nonexistent/snapshots", 1)
	assert.Error(t, err)
}
