package render

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/sprite"
	"github.com/valerio/go-tiler/tiler/texture"
	"github.com/valerio/go-tiler/tiler/video"
)

// ErrPixelFormat is returned when the device or the configuration asks for
// a pixel format other than video.EngineFormat.
var ErrPixelFormat = errors.New("unsupported pixel format")

// statsLogInterval is how often (in frames) Render logs its timings.
const statsLogInterval = 300

// Config is read once when the renderer is built.
type Config struct {
	Scale       int
	Rotation    video.Rotation
	PixelFormat video.PixelFormat

	// BackgroundColor fills the logical buffer at the start of every frame.
	BackgroundColor video.Color
	// SpriteTransparentColor is the color key used when drawing sprites.
	SpriteTransparentColor video.Color
}

// DefaultConfig renders 1:1 without rotation, with magenta as the sprite key.
func DefaultConfig() Config {
	return Config{
		Scale:                  1,
		Rotation:               video.Rotate0,
		PixelFormat:            video.EngineFormat,
		BackgroundColor:        video.Black,
		SpriteTransparentColor: video.Magenta,
	}
}

// Defaults fills zero values that have no useful meaning.
func (c *Config) Defaults() {
	if c.Scale == 0 {
		c.Scale = 1
	}
}

// Validate reports configuration errors before anything is allocated.
func (c Config) Validate() error {
	if c.Scale < 1 {
		return fmt.Errorf("%w: got %d", video.ErrInvalidScale, c.Scale)
	}
	if _, err := video.ParseRotation(c.Rotation.Degrees()); err != nil {
		return err
	}
	if c.PixelFormat != video.EngineFormat {
		return fmt.Errorf("%w: %v, engine renders %v", ErrPixelFormat, c.PixelFormat, video.EngineFormat)
	}
	return nil
}

// Renderer composes one frame at a time: background layers, sprites,
// foreground layers, then the transfer onto the device.
//
// Everything runs on the caller's goroutine. A Renderer must not be used
// from more than one goroutine at a time.
type Renderer struct {
	config   Config
	device   backend.Display
	textures texture.Source

	// logical is what layers are composited into. It is the device buffer
	// itself when no transfer is needed.
	logical     *video.FrameBuffer
	transferrer video.Transferrer

	layers      *video.LayerManager
	spriteLayer *video.Layer

	frame uint64
	stats FrameStats
}

// New builds a renderer drawing into dev. Sprite frames are resolved
// through textures.
func New(cfg Config, dev backend.Display, textures texture.Source) (*Renderer, error) {
	cfg.Defaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid renderer config: %w", err)
	}
	if dev.Format() != cfg.PixelFormat {
		return nil, fmt.Errorf("%w: device uses %v", ErrPixelFormat, dev.Format())
	}

	device := dev.Buffer()
	w, h := cfg.Rotation.LogicalSize(device.Width(), device.Height(), cfg.Scale)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d device cannot be scaled by %d", video.ErrInvalidScale, device.Width(), device.Height(), cfg.Scale)
	}

	r := &Renderer{
		config:   cfg,
		device:   dev,
		textures: textures,
		layers:   video.NewLayerManager(),
	}

	direct := video.IsIdentity(cfg.Rotation, cfg.Scale)
	if direct {
		r.logical = device
	} else {
		t, err := video.NewTransferrer(cfg.Rotation, cfg.Scale)
		if err != nil {
			return nil, fmt.Errorf("failed to create transferrer: %w", err)
		}
		r.transferrer = t
		r.logical = video.NewFrameBuffer(w, h)
	}

	r.spriteLayer = video.NewLayerWithBuffer(r.logical)
	r.spriteLayer.BackgroundColor = cfg.BackgroundColor
	r.spriteLayer.TransparentColor = cfg.SpriteTransparentColor
	r.layers.Add(r.spriteLayer, video.SpriteLayerPriority)

	slog.Info("Renderer created",
		"resolution", fmt.Sprintf("%dx%d", w, h),
		"device", fmt.Sprintf("%dx%d", device.Width(), device.Height()),
		"rotation", cfg.Rotation,
		"scale", cfg.Scale,
		"direct", direct)

	return r, nil
}

// LogicalSize is the resolution layers are composited at.
func (r *Renderer) LogicalSize() video.Point {
	return r.logical.Size()
}

// Config returns the configuration the renderer was built with.
func (r *Renderer) Config() Config {
	return r.config
}

// CreateLayer allocates a width x height layer and registers it at
// priority. Negative priorities are drawn behind the sprites.
func (r *Renderer) CreateLayer(width, height, priority int) *video.Layer {
	l := video.NewLayer(width, height)
	l.BackgroundColor = r.config.BackgroundColor
	r.layers.Add(l, priority)
	slog.Debug("Layer created", "width", width, "height", height, "priority", priority)
	return l
}

// AddLayer registers a layer built elsewhere. Registering the sprite layer
// again is ignored.
func (r *Renderer) AddLayer(l *video.Layer, priority int) {
	if l == r.spriteLayer {
		return
	}
	r.layers.Add(l, priority)
}

// RemoveLayer unregisters l. It is safe to call more than once. The sprite
// layer cannot be removed.
func (r *Renderer) RemoveLayer(l *video.Layer) {
	if l == r.spriteLayer {
		return
	}
	if r.layers.Remove(l) {
		slog.Debug("Layer removed", "width", l.Width(), "height", l.Height())
	}
}

// SpriteLayer is the layer sprites are drawn onto. It shares its buffer
// with the logical frame.
func (r *Renderer) SpriteLayer() *video.Layer {
	return r.spriteLayer
}

// Layers yields every registered layer in compositing order.
func (r *Renderer) Layers() iter.Seq[*video.Layer] {
	return r.layers.All()
}

// Render draws one frame and shows it. A missing texture aborts the frame
// before it is shown and leaves Stats at the previous frame. Without a
// transfer the logical buffer is the device buffer, so it then holds a
// partial frame.
func (r *Renderer) Render(sprites iter.Seq[sprite.Sprite]) error {
	r.frame++
	stats := FrameStats{Frame: r.frame}
	clock := newStageClock(&stats)

	// Reset: the sprite layer is the logical buffer, so one fill clears both.
	r.spriteLayer.Clear()
	clock.lap(StageReset)

	for l := range r.layers.Background() {
		l.RenderToBuffer(r.logical)
		stats.Layers++
	}
	clock.lap(StageCompositeBackground)

	if err := r.drawSprites(sprites, &stats); err != nil {
		return err
	}
	clock.lap(StageDrawSprites)

	for l := range r.layers.Foreground() {
		if l != r.spriteLayer {
			stats.Layers++
		}
		l.RenderToBuffer(r.logical)
	}
	clock.lap(StageCompositeForeground)

	if r.transferrer != nil {
		r.transferrer.Transfer(r.device.Buffer(), r.logical)
	}
	clock.lap(StageTransfer)

	err := r.device.Show()
	clock.lap(StageShow)
	r.stats = stats

	if err != nil {
		return fmt.Errorf("failed to show frame %d: %w", r.frame, err)
	}

	if r.frame%statsLogInterval == 0 {
		slog.Debug("Frame stats",
			"frame", stats.Frame,
			"total", stats.Total(),
			"sprites", stats.Sprites,
			"layers", stats.Layers,
			"slowest", stats.Slowest())
	}
	return nil
}

func (r *Renderer) drawSprites(sprites iter.Seq[sprite.Sprite], stats *FrameStats) error {
	if sprites == nil {
		return nil
	}

	for s := range sprites {
		f := s.CurrentFrame()
		if f == nil {
			stats.SpritesSkipped++
			continue
		}

		atlas, err := r.textures.Texture(f.Atlas)
		if err != nil {
			return fmt.Errorf("failed to draw sprite frame %q: %w", f.Atlas, err)
		}

		x, y := s.Position()
		r.spriteLayer.DrawTexture(atlas, f.Rect.Min(), video.Pt(int(x), int(y)), f.Rect.Size(), false)
		stats.Sprites++
	}
	return nil
}

// Stats returns the timings of the last completed frame.
func (r *Renderer) Stats() FrameStats {
	return r.stats
}

// stageClock records how long each stage took.
type stageClock struct {
	stats *FrameStats
	last  time.Time
}

func newStageClock(stats *FrameStats) *stageClock {
	return &stageClock{stats: stats, last: time.Now()}
}

func (c *stageClock) lap(s Stage) {
	now := time.Now()
	c.stats.Durations[s] = now.Sub(c.last)
	c.last = now
}
