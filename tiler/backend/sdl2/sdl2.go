//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/debug"
	"github.com/valerio/go-tiler/tiler/video"
)

const defaultZoom = 3

// Backend shows the device buffer in an SDL2 window. Pixels are uploaded
// as-is into an RGB565 streaming texture and stretched to the window.
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	buffer   *video.FrameBuffer
	config   backend.BackendConfig
	running  bool
}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.BackendConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("invalid window resolution %dx%d", config.Width, config.Height)
	}
	if config.Zoom <= 0 {
		config.Zoom = defaultZoom
	}
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	window, err := sdl.CreateWindow(
		config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(config.Width*config.Zoom),
		int32(config.Height*config.Zoom),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB565,
		sdl.TEXTUREACCESS_STREAMING,
		int32(config.Width),
		int32(config.Height),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	s.buffer = video.NewFrameBuffer(config.Width, config.Height)
	s.running = true

	slog.Info("SDL2 backend initialized",
		"resolution", fmt.Sprintf("%dx%d", config.Width, config.Height),
		"zoom", config.Zoom)
	return nil
}

func (s *Backend) Buffer() *video.FrameBuffer {
	return s.buffer
}

func (s *Backend) Format() video.PixelFormat {
	return video.FormatRGB565
}

// Show polls window events and presents the device buffer.
func (s *Backend) Show() error {
	if !s.running {
		return nil
	}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		s.handleEvent(event)
	}

	pixels := s.buffer.ToSlice()
	pitch := s.buffer.Width() * video.FormatRGB565.Bits() / 8
	if err := s.texture.Update(nil, unsafe.Pointer(&pixels[0]), pitch); err != nil {
		return fmt.Errorf("failed to upload frame: %w", err)
	}

	s.renderer.SetDrawColor(0, 0, 0, 0xFF)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

func (s *Backend) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.config.Callbacks.Quit()

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return
		}
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE, sdl.K_q:
			s.running = false
			s.config.Callbacks.Quit()
		case sdl.K_F12:
			debug.TakeSnapshot(s.buffer, "tiler_snapshot", s.config.Zoom)
		}
	}
}

func (s *Backend) Cleanup() error {
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
	slog.Info("SDL2 backend cleaned up")
	return nil
}
