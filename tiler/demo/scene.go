package demo

import (
	"iter"
	"log/slog"
	"math/rand"

	"github.com/valerio/go-tiler/tiler/pattern"
	"github.com/valerio/go-tiler/tiler/render"
	"github.com/valerio/go-tiler/tiler/sprite"
	"github.com/valerio/go-tiler/tiler/texture"
	"github.com/valerio/go-tiler/tiler/tilemap"
	"github.com/valerio/go-tiler/tiler/video"
)

const (
	backgroundPriority = -2
	tilesPriority      = -1
	hudPriority        = 1

	hudHeight = 4
	mapCols   = 32
	mapRows   = 16
)

// Options tune the demo scene.
type Options struct {
	Balls int
	Seed  int64
}

// Scene is a small parallax demo: a slowly scrolling pattern in the back,
// a tile map scrolling faster on top of it, bouncing balls and a progress
// bar drawn over everything.
type Scene struct {
	renderer *render.Renderer
	view     video.Point

	background *video.Layer
	tiles      *video.Layer
	hud        *video.Layer
	painter    *tilemap.Painter

	balls []*ball
	frame int
}

type ball struct {
	sprite.Animated
	vx, vy float64
}

// NewScene registers the demo's textures and layers with r.
func NewScene(r *render.Renderer, store *texture.Store, opts Options) (*Scene, error) {
	view := r.LogicalSize()
	cfg := r.Config()

	tileAtlas, tileFrames := TileSheet()
	ballAtlas, ballFrames := BallSheet(cfg.SpriteTransparentColor)
	store.Add(TilesAtlas, tileAtlas)
	store.Add(BallAtlas, ballAtlas)

	s := &Scene{renderer: r, view: view}

	s.background = r.CreateLayer(view.X, view.Y, backgroundPriority)
	pattern.Draw(s.background.Buffer(), pattern.Diagonal, 0, pattern.Palette{
		A: video.RGB(0x10, 0x18, 0x30),
		B: video.RGB(0x18, 0x24, 0x48),
	})

	// one spare tile each way for the painter
	cols, rows := view.X/TileSize+2, view.Y/TileSize+2
	s.tiles = r.CreateLayer(cols*TileSize, rows*TileSize, tilesPriority)
	s.tiles.BackgroundColor = s.tiles.TransparentColor
	s.tiles.DrawWithTransparency = true

	painter, err := tilemap.NewPainter(s.tiles, groundMap(len(tileFrames)), tileAtlas, tileFrames)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.painter = painter

	s.hud = r.CreateLayer(view.X, hudHeight, hudPriority)
	s.hud.BackgroundColor = s.hud.TransparentColor
	s.hud.DrawWithTransparency = true

	rng := rand.New(rand.NewSource(opts.Seed))
	for i := 0; i < opts.Balls; i++ {
		b := &ball{
			Animated: sprite.Animated{
				X:             rng.Float64() * float64(max(view.X-BallSize, 1)),
				Y:             rng.Float64() * float64(max(view.Y-BallSize, 1)),
				Frames:        ballFrames,
				TicksPerFrame: 6 + rng.Intn(6),
				Loop:          true,
			},
			vx: rng.Float64()*2 - 1,
			vy: rng.Float64()*2 - 1,
		}
		s.balls = append(s.balls, b)
	}

	slog.Info("Demo scene ready", "view", view, "balls", len(s.balls), "tiles", len(tileFrames))
	return s, nil
}

// groundMap is a band of ground tiles with gaps, repeating horizontally.
func groundMap(tiles int) *tilemap.Map {
	m := tilemap.New(mapCols, mapRows)
	for r := mapRows / 2; r < mapRows; r++ {
		for c := 0; c < mapCols; c++ {
			if (c/3+r)%5 == 0 {
				continue
			}
			m.Set(c, r, (c+r)%tiles)
		}
	}
	return m
}

// Update advances the scene by one frame.
func (s *Scene) Update() {
	s.frame++

	s.background.Shift(video.V(-0.25, 0))
	s.painter.Scroll(video.V(1, 0))

	s.hud.Clear()
	progress := s.frame % (s.view.X + 1)
	s.hud.FillRect(video.R(0, 1, progress, hudHeight-2), video.Yellow)

	for _, b := range s.balls {
		b.move(s.view)
		b.Tick()
	}
}

// Sprites yields the balls for the current frame.
func (s *Scene) Sprites() iter.Seq[sprite.Sprite] {
	return func(yield func(sprite.Sprite) bool) {
		for _, b := range s.balls {
			if !yield(b) {
				return
			}
		}
	}
}

// Frame returns how many updates have run.
func (s *Scene) Frame() int {
	return s.frame
}

// Close unregisters the scene's layers.
func (s *Scene) Close() {
	for _, l := range []*video.Layer{s.background, s.tiles, s.hud} {
		if l != nil {
			s.renderer.RemoveLayer(l)
		}
	}
}

// move bounces the ball off the view edges.
func (b *ball) move(view video.Point) {
	maxX, maxY := float64(view.X-BallSize), float64(view.Y-BallSize)

	b.X += b.vx
	if b.X < 0 || b.X > maxX {
		b.vx = -b.vx
		b.X = min(max(b.X, 0), max(maxX, 0))
	}

	b.Y += b.vy
	if b.Y < 0 || b.Y > maxY {
		b.vy = -b.vy
		b.Y = min(max(b.Y, 0), max(maxY, 0))
	}
}
