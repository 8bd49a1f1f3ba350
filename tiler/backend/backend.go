package backend

import (
	"github.com/valerio/go-tiler/tiler/video"
)

// Display is the device side of the renderer: a buffer at the device's
// native resolution and a way to push it out.
type Display interface {
	// Buffer returns the device framebuffer. It must stay the same for
	// the lifetime of the display.
	Buffer() *video.FrameBuffer

	// Format reports the pixel format the device expects.
	Format() video.PixelFormat

	// Show presents the current contents of Buffer. It may block until
	// the device has consumed the frame.
	Show() error
}

// Backend is a Display with a lifecycle, e.g. a terminal or window.
// Backends are responsible for:
// - Presenting the device buffer on their specific output
// - Polling platform events and reporting quit requests via callbacks
// - Handling backend-specific features (snapshots, log panes, mirrors)
type Backend interface {
	Display

	// Init configures the backend and allocates its device buffer.
	// This is a required step before calling Buffer or Show.
	Init(config BackendConfig) error

	// Cleanup resources when shutting down
	Cleanup() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title  string
	Width  int // native device resolution
	Height int
	Zoom   int // window zoom for desktop backends, ignored elsewhere

	Callbacks BackendCallbacks
}

// BackendCallbacks allows backends to talk back to the driver loop
type BackendCallbacks struct {
	OnQuit func() // Backend requests shutdown (e.g., window close)
}

// Quit invokes OnQuit if it is set.
func (c BackendCallbacks) Quit() {
	if c.OnQuit != nil {
		c.OnQuit()
	}
}
