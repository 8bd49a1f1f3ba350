package headless_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/backend/headless"
	"github.com/valerio/go-tiler/tiler/video"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("normal operation", func(t *testing.T) {
		quits := 0
		h := headless.New(3, headless.SnapshotConfig{})

		err := h.Init(backend.BackendConfig{
			Title:     "Test",
			Width:     16,
			Height:    8,
			Callbacks: backend.BackendCallbacks{OnQuit: func() { quits++ }},
		})
		require.NoError(t, err)

		require.NotNil(t, h.Buffer())
		assert.Equal(t, video.Pt(16, 8), h.Buffer().Size())
		assert.Equal(t, video.FormatRGB565, h.Format())

		for i := 0; i < 3; i++ {
			require.NoError(t, h.Show())
			if i < 2 {
				assert.Zero(t, quits, "should not quit before reaching max frames")
			}
		}
		assert.Equal(t, 1, quits)
		assert.Equal(t, 3, h.FrameCount())

		assert.NoError(t, h.Cleanup())
	})

	t.Run("unlimited frames", func(t *testing.T) {
		h := headless.New(0, headless.SnapshotConfig{})
		require.NoError(t, h.Init(backend.BackendConfig{
			Width:     4,
			Height:    4,
			Callbacks: backend.BackendCallbacks{OnQuit: func() { t.Fatal("unexpected quit") }},
		}))

		for i := 0; i < 100; i++ {
			require.NoError(t, h.Show())
		}
	})

	t.Run("invalid resolution", func(t *testing.T) {
		h := headless.New(1, headless.SnapshotConfig{})
		assert.Error(t, h.Init(backend.BackendConfig{Width: 0, Height: 4}))
	})

	t.Run("show before init", func(t *testing.T) {
		h := headless.New(1, headless.SnapshotConfig{})
		assert.Error(t, h.Show())
	})
}

func TestHeadlessSnapshots(t *testing.T) {
	dir := t.TempDir()
	cfg, err := headless.CreateSnapshotConfig(2, dir, "scene", 2)
	require.NoError(t, err)
	require.True(t, cfg.Enabled)

	h := headless.New(5, cfg)
	require.NoError(t, h.Init(backend.BackendConfig{Width: 4, Height: 4}))

	for i := 0; i < 5; i++ {
		h.Buffer().Fill(video.Color(i))
		require.NoError(t, h.Show())
	}

	// frames 2 and 4, plus the final frame
	assert.Len(t, h.Snapshots(), 3)
	for _, p := range h.Snapshots() {
		assert.FileExists(t, p)
	}
}

func TestHeadlessSnapshots_ZeroInterval(t *testing.T) {
	cfg := headless.SnapshotConfig{Enabled: true, Directory: t.TempDir(), Name: "raw", Scale: 1}

	h := headless.New(3, cfg)
	require.NoError(t, h.Init(backend.BackendConfig{Width: 4, Height: 4}))

	for i := 0; i < 3; i++ {
		require.NoError(t, h.Show())
	}

	// only the final frame
	assert.Len(t, h.Snapshots(), 1)
}

func TestCreateSnapshotConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg, err := headless.CreateSnapshotConfig(0, "", "x", 1)
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
		assert.Empty(t, cfg.Directory)
	})

	t.Run("temp directory", func(t *testing.T) {
		cfg, err := headless.CreateSnapshotConfig(10, "", "", 0)
		require.NoError(t, err)
		t.Cleanup(func() { _ = os.RemoveAll(cfg.Directory) })

		assert.DirExists(t, cfg.Directory)
		assert.Equal(t, "tiler", cfg.Name)
		assert.Equal(t, 1, cfg.Scale)
	})
}

func TestHeadlessImplementsBackend(t *testing.T) {
	// Compile-time check that headless.Backend implements backend.Backend
	var _ backend.Backend = (*headless.Backend)(nil)
}
