package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/backend/headless"
	"github.com/valerio/go-tiler/tiler/backend/sdl2"
	"github.com/valerio/go-tiler/tiler/backend/sshmirror"
	"github.com/valerio/go-tiler/tiler/backend/terminal"
	"github.com/valerio/go-tiler/tiler/demo"
	"github.com/valerio/go-tiler/tiler/render"
	"github.com/valerio/go-tiler/tiler/texture"
	"github.com/valerio/go-tiler/tiler/timing"
	"github.com/valerio/go-tiler/tiler/video"
)

func main() {
	app := cli.NewApp()
	app.Name = "tiler"
	app.Description = "Layer compositing and scrolling demo for small displays"
	app.Usage = "tiler [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal, headless or sdl2",
			Value: "terminal",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Device width in pixels",
			Value: 128,
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "Device height in pixels",
			Value: 64,
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Integer upscale from the logical resolution to the device",
			Value: 1,
		},
		cli.IntFlag{
			Name:  "rotation",
			Usage: "Device rotation in degrees: 0, 90, 180 or 270",
		},
		cli.IntFlag{
			Name:  "zoom",
			Usage: "Window zoom for the sdl2 backend",
			Value: 4,
		},
		cli.IntFlag{
			Name:  "balls",
			Usage: "Number of bouncing sprites",
			Value: 6,
		},
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Target frame rate",
			Value: timing.DefaultFPS,
		},
		cli.StringFlag{
			Name:  "limiter",
			Usage: "Frame pacing: adaptive, ticker or none (headless defaults to none)",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to render (required for headless, 0 = until quit otherwise)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.StringFlag{
			Name:  "listen",
			Usage: "Also mirror the display to ssh clients on this address, e.g. :2222",
		},
		cli.StringFlag{
			Name:  "host-key",
			Usage: "PEM host key for the ssh mirror (default: generated)",
		},
	}
	app.Action = runDemo

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running tiler", "error", err)
		os.Exit(1)
	}
}

func runDemo(c *cli.Context) error {
	rotation, err := video.ParseRotation(c.Int("rotation"))
	if err != nil {
		return err
	}

	dev, err := newBackend(c)
	if err != nil {
		return err
	}

	running := true
	err = dev.Init(backend.BackendConfig{
		Title:  "tiler",
		Width:  c.Int("width"),
		Height: c.Int("height"),
		Zoom:   c.Int("zoom"),
		Callbacks: backend.BackendCallbacks{
			OnQuit: func() { running = false },
		},
	})
	if err != nil {
		return err
	}
	defer dev.Cleanup()

	cfg := render.DefaultConfig()
	cfg.Scale = c.Int("scale")
	cfg.Rotation = rotation

	store := texture.NewStore()
	r, err := render.New(cfg, dev, store)
	if err != nil {
		return err
	}

	scene, err := demo.NewScene(r, store, demo.Options{Balls: c.Int("balls"), Seed: 1})
	if err != nil {
		return err
	}
	defer scene.Close()

	limiter, err := newLimiter(c)
	if err != nil {
		return err
	}

	frames := c.Int("frames")
	for running && (frames <= 0 || scene.Frame() < frames) {
		scene.Update()
		if err := r.Render(scene.Sprites()); err != nil {
			return err
		}
		limiter.WaitForNextFrame()
	}

	stats := r.Stats()
	slog.Info("Demo finished", "frames", scene.Frame(), "last_frame", stats.Total(), "slowest_stage", stats.Slowest())
	return nil
}

func newBackend(c *cli.Context) (backend.Backend, error) {
	var dev backend.Backend

	switch name := c.String("backend"); name {
	case "terminal":
		dev = terminal.New()
	case "sdl2":
		dev = sdl2.New()
	case "headless":
		frames := c.Int("frames")
		if frames <= 0 {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}
		snapshots, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), "tiler", c.Int("zoom"))
		if err != nil {
			return nil, err
		}
		dev = headless.New(frames, snapshots)
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}

	if addr := c.String("listen"); addr != "" {
		dev = sshmirror.New(dev, sshmirror.Options{Addr: addr, HostKeyFile: c.String("host-key")})
	}
	return dev, nil
}

func newLimiter(c *cli.Context) (timing.Limiter, error) {
	name := c.String("limiter")
	if name == "" {
		name = "adaptive"
		if c.String("backend") == "headless" {
			name = "none"
		}
	}

	switch name {
	case "adaptive":
		return timing.NewAdaptiveLimiter(c.Float64("fps")), nil
	case "ticker":
		return timing.NewTickerLimiter(c.Float64("fps")), nil
	case "none":
		return timing.NewNoOpLimiter(), nil
	default:
		return nil, fmt.Errorf("unknown limiter %q", name)
	}
}
