package terminal

import (
	"log/slog"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/video"
)

func newSimBackend(t *testing.T, w, h int, onQuit func()) (*Backend, tcell.SimulationScreen) {
	t.Helper()

	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	screen := tcell.NewSimulationScreen("")
	b := NewWithScreen(screen)
	require.NoError(t, b.Init(backend.BackendConfig{
		Title:     "test",
		Width:     w,
		Height:    h,
		Callbacks: backend.BackendCallbacks{OnQuit: onQuit},
	}))
	t.Cleanup(func() { _ = b.Cleanup() })

	screen.SetSize(80, 24)
	return b, screen
}

func TestBackend_HalfBlocks(t *testing.T) {
	b, screen := newSimBackend(t, 2, 3, nil)

	fb := b.Buffer()
	fb.SetPixel(0, 0, video.Red)
	fb.SetPixel(0, 1, video.Blue)
	fb.SetPixel(1, 0, video.Green)
	fb.SetPixel(1, 1, video.White)
	fb.SetPixel(0, 2, video.Yellow)

	require.NoError(t, b.Show())

	cells, width, _ := screen.GetContents()
	cell := func(x, y int) tcell.SimCell { return cells[y*width+x] }

	tests := []struct {
		x, y   int
		fg, bg video.Color
	}{
		{x: 0, y: 0, fg: video.Red, bg: video.Blue},
		{x: 1, y: 0, fg: video.Green, bg: video.White},
		{x: 0, y: 1, fg: video.Yellow, bg: video.Black},
	}

	for _, tt := range tests {
		c := cell(tt.x, tt.y)
		require.NotEmpty(t, c.Runes)
		assert.Equal(t, '▀', c.Runes[0])

		fg, bg, _ := c.Style.Decompose()
		assert.Equal(t, toTcell(tt.fg), fg, "fg at %d,%d", tt.x, tt.y)
		assert.Equal(t, toTcell(tt.bg), bg, "bg at %d,%d", tt.x, tt.y)
	}
}

func TestBackend_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{name: "escape", ev: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{name: "ctrl-c", ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
		{name: "q", ev: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quits := 0
			b, screen := newSimBackend(t, 4, 4, func() { quits++ })

			require.NoError(t, b.Show())
			assert.Zero(t, quits)

			require.NoError(t, screen.PostEvent(tt.ev))
			require.NoError(t, b.Show())
			require.NoError(t, b.Show())
			assert.Equal(t, 1, quits, "quit is reported once")
		})
	}
}

func TestBackend_LogLevelKeys(t *testing.T) {
	b, screen := newSimBackend(t, 4, 4, nil)
	require.Equal(t, slog.LevelInfo, b.LogLevel())

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone)))
	require.NoError(t, b.Show())
	assert.Equal(t, slog.LevelDebug, b.LogLevel())

	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone)))
	require.NoError(t, b.Show())
	assert.Equal(t, slog.LevelDebug, b.LogLevel(), "debug is the floor")

	for i := 0; i < 5; i++ {
		require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone)))
	}
	require.NoError(t, b.Show())
	assert.Equal(t, slog.LevelError, b.LogLevel())
}

func TestBackend_CleanupRestoresLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	b := NewWithScreen(tcell.NewSimulationScreen(""))
	require.NoError(t, b.Init(backend.BackendConfig{Width: 2, Height: 2}))
	assert.NotSame(t, prev, slog.Default())

	require.NoError(t, b.Cleanup())
	assert.Same(t, prev, slog.Default())
}

func TestBackend_ShowBeforeInit(t *testing.T) {
	assert.Error(t, New().Show())
}

func TestBackendImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*Backend)(nil)
}
