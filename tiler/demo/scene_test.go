package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/backend/headless"
	"github.com/valerio/go-tiler/tiler/render"
	"github.com/valerio/go-tiler/tiler/texture"
	"github.com/valerio/go-tiler/tiler/video"
)

func newTestScene(t *testing.T, cfg render.Config, balls int) (*Scene, *render.Renderer, *headless.Backend) {
	t.Helper()

	dev := headless.New(0, headless.SnapshotConfig{})
	require.NoError(t, dev.Init(backend.BackendConfig{Width: 64, Height: 48}))

	store := texture.NewStore()
	r, err := render.New(cfg, dev, store)
	require.NoError(t, err)

	s, err := NewScene(r, store, Options{Balls: balls, Seed: 1})
	require.NoError(t, err)
	return s, r, dev
}

func TestScene_Runs(t *testing.T) {
	s, r, dev := newTestScene(t, render.DefaultConfig(), 5)

	for i := 0; i < 120; i++ {
		s.Update()
		require.NoError(t, r.Render(s.Sprites()))
	}

	assert.Equal(t, 120, s.Frame())
	assert.Equal(t, 120, dev.FrameCount())

	stats := r.Stats()
	assert.Equal(t, 5, stats.Sprites)
	assert.Equal(t, 3, stats.Layers)

	view := r.LogicalSize()
	for _, b := range s.balls {
		assert.GreaterOrEqual(t, b.X, 0.0)
		assert.GreaterOrEqual(t, b.Y, 0.0)
		assert.LessOrEqual(t, b.X, float64(view.X-BallSize))
		assert.LessOrEqual(t, b.Y, float64(view.Y-BallSize))
	}
}

func TestScene_HUDProgress(t *testing.T) {
	s, r, dev := newTestScene(t, render.DefaultConfig(), 0)

	for i := 0; i < 10; i++ {
		s.Update()
		require.NoError(t, r.Render(s.Sprites()))
	}

	fb := dev.Buffer()
	assert.Equal(t, video.Yellow, fb.GetPixel(9, 1))
	assert.NotEqual(t, video.Yellow, fb.GetPixel(10, 1))
	assert.NotEqual(t, video.Yellow, fb.GetPixel(0, 0), "hud border row is transparent")
}

func TestScene_RotatedAndScaled(t *testing.T) {
	cfg := render.DefaultConfig()
	cfg.Rotation = video.Rotate90
	cfg.Scale = 2

	s, r, _ := newTestScene(t, cfg, 2)
	assert.Equal(t, video.Pt(24, 32), r.LogicalSize())

	for i := 0; i < 30; i++ {
		s.Update()
		require.NoError(t, r.Render(s.Sprites()))
	}
}

func TestScene_CloseRemovesLayers(t *testing.T) {
	s, r, _ := newTestScene(t, render.DefaultConfig(), 1)
	s.Close()

	n := 0
	for range r.Layers() {
		n++
	}
	assert.Equal(t, 1, n, "only the sprite layer is left")
}

func TestBallSheet_Transparency(t *testing.T) {
	atlas, frames := BallSheet(video.Magenta)

	require.Len(t, frames, ballSteps)
	assert.Equal(t, video.Magenta, atlas.GetPixel(0, 0), "corner is outside the ball")
	assert.NotEqual(t, video.Magenta, atlas.GetPixel(BallSize/2, BallSize/2))
}

func TestTileSheet(t *testing.T) {
	atlas, frames := TileSheet()

	require.Len(t, frames, len(tilePalettes))
	assert.Equal(t, video.Pt(TileSize*len(tilePalettes), TileSize), atlas.Size())
}
