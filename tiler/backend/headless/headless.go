package headless

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/debug"
	"github.com/valerio/go-tiler/tiler/video"
)

// progressInterval is how often (in frames) progress is logged.
const progressInterval = 60

// Backend is an offscreen display for automated runs and batch rendering.
// It counts frames, optionally saves PNG snapshots and asks to quit once
// maxFrames have been shown.
type Backend struct {
	config         backend.BackendConfig
	buffer         *video.FrameBuffer
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	snapshots      []string
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	Name      string // Prefix for snapshot filenames
	Scale     int    // Upscale factor for saved images
}

// New creates a headless backend. A maxFrames of zero runs until the
// driver stops it.
func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("invalid headless resolution %dx%d", config.Width, config.Height)
	}

	h.config = config
	h.buffer = video.NewFrameBuffer(config.Width, config.Height)
	h.frameCount = 0

	// Set up debug logging for headless mode
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))

	slog.Info("Running headless mode",
		"resolution", fmt.Sprintf("%dx%d", config.Width, config.Height),
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

func (h *Backend) Buffer() *video.FrameBuffer {
	return h.buffer
}

func (h *Backend) Format() video.PixelFormat {
	return video.FormatRGB565
}

// Show records the frame and handles snapshots.
func (h *Backend) Show() error {
	if h.buffer == nil {
		return fmt.Errorf("headless backend not initialized")
	}

	h.frameCount++

	snapshotDue := h.snapshotConfig.Enabled && h.snapshotConfig.Interval > 0 &&
		h.frameCount%h.snapshotConfig.Interval == 0
	if snapshotDue {
		h.saveSnapshot()
	}

	if h.frameCount%progressInterval == 0 {
		slog.Info("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount == h.maxFrames {
		// always keep the last frame
		if h.snapshotConfig.Enabled && !snapshotDue {
			h.saveSnapshot()
		}

		slog.Info("Headless execution completed", "frames", h.frameCount, "snapshots", len(h.snapshots))
		h.config.Callbacks.Quit()
	}

	return nil
}

func (h *Backend) Cleanup() error {
	h.buffer = nil
	return nil
}

// FrameCount returns how many frames have been shown.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// Snapshots returns the paths of every snapshot saved so far.
func (h *Backend) Snapshots() []string {
	return h.snapshots
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, name string, scale int) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
		Name:     name,
		Scale:    max(scale, 1),
	}

	if !config.Enabled {
		return config, nil
	}

	if config.Name == "" {
		config.Name = "tiler"
	}

	// Set up snapshot directory
	if directory == "" {
		tempDir, err := os.MkdirTemp("", "tiler-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot() {
	baseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.Name, h.frameCount)

	path, err := debug.SaveFramePNGToDir(h.buffer, baseName, h.snapshotConfig.Directory, h.snapshotConfig.Scale)
	if err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
		return
	}
	h.snapshots = append(h.snapshots, path)
}
