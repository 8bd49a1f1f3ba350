package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-tiler/tiler/backend"
	"github.com/valerio/go-tiler/tiler/debug"
	"github.com/valerio/go-tiler/tiler/video"
)

const (
	logCapacity     = 200
	logPaneMinWidth = 30
	logPaneGap      = 2
	statusRows      = 1
)

// Backend shows the device buffer in a true-colour terminal using tcell.
// Every text cell holds two pixels stacked vertically: the upper half
// block is drawn in the top pixel's color on a background of the bottom
// pixel's color.
type Backend struct {
	screen    tcell.Screen
	buffer    *video.FrameBuffer
	config    backend.BackendConfig
	logBuffer *LogBuffer
	logLevel  *slog.LevelVar
	prevLog   *slog.Logger
	frames    int

	signals       chan os.Signal
	quitRequested atomic.Bool
	quitReported  bool
}

// New creates a terminal backend on the process' terminal.
func New() *Backend {
	return &Backend{}
}

// NewWithScreen uses an existing screen, e.g. tcell's simulation screen.
// The screen must not be initialised yet.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the terminal and routes slog into the log pane.
func (t *Backend) Init(config backend.BackendConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return fmt.Errorf("invalid terminal resolution %dx%d", config.Width, config.Height)
	}

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.config = config
	t.buffer = video.NewFrameBuffer(config.Width, config.Height)

	t.logBuffer = NewLogBuffer(logCapacity)
	t.logLevel = new(slog.LevelVar)
	t.logLevel.Set(slog.LevelInfo)
	t.prevLog = slog.Default()
	slog.SetDefault(slog.New(NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	// Set up signal handling for graceful shutdown
	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go t.handleSignals(t.signals)

	slog.Info("Terminal backend initialized", "resolution", fmt.Sprintf("%dx%d", config.Width, config.Height))
	return nil
}

func (t *Backend) Buffer() *video.FrameBuffer {
	return t.buffer
}

func (t *Backend) Format() video.PixelFormat {
	return video.FormatRGB565
}

// Show processes pending terminal events and draws the device buffer.
func (t *Backend) Show() error {
	if t.buffer == nil {
		return fmt.Errorf("terminal backend not initialized")
	}

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if t.quitRequested.Load() && !t.quitReported {
		t.quitReported = true
		t.config.Callbacks.Quit()
	}

	t.frames++
	t.render()
	t.screen.Show()
	return nil
}

func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
		close(t.signals)
		t.signals = nil
	}
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
	}
	if t.prevLog != nil {
		slog.SetDefault(t.prevLog)
		t.prevLog = nil
	}
	return nil
}

// LogLevel is the minimum level shown in the log pane.
func (t *Backend) LogLevel() slog.Level {
	return t.logLevel.Level()
}

func (t *Backend) handleSignals(signals <-chan os.Signal) {
	if _, ok := <-signals; ok {
		t.quitRequested.Store(true)
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quitRequested.Store(true)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			t.quitRequested.Store(true)
		case 's':
			debug.TakeSnapshot(t.buffer, "tiler_snapshot", 1)
		case '+', '=':
			t.changeLogLevel(-1)
		case '-', '_':
			t.changeLogLevel(1)
		}
	}
}

// changeLogLevel moves the log pane filter; negative shows more.
func (t *Backend) changeLogLevel(direction int) {
	levels := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

	old := t.logLevel.Level()
	i := 0
	for i < len(levels)-1 && levels[i] < old {
		i++
	}
	i = min(max(i+direction, 0), len(levels)-1)

	if levels[i] != old {
		t.logLevel.Set(levels[i])
		slog.Info("Log filter changed", "from", old, "to", levels[i])
	}
}

func (t *Backend) render() {
	t.screen.Clear()
	termWidth, termHeight := t.screen.Size()

	frameRows := (t.buffer.Height() + 1) / 2
	t.drawFrame()

	status := fmt.Sprintf("%s | frame %d | log %v | q quit, s snapshot, +/- log level",
		t.config.Title, t.frames, t.logLevel.Level())
	t.drawText(0, min(frameRows, termHeight-statusRows), termWidth, status, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	// logs go right of the frame when there is room, below it otherwise
	logX, logY := t.buffer.Width()+logPaneGap, 0
	if termWidth-logX < logPaneMinWidth {
		logX, logY = 0, frameRows+statusRows
	}
	t.drawLogs(logX, logY, termWidth-logX, termHeight-logY)
}

func (t *Backend) drawFrame() {
	w, h := t.buffer.Width(), t.buffer.Height()

	for y := 0; y < h; y += 2 {
		top := t.buffer.Row(y)
		var bottom []video.Color
		if y+1 < h {
			bottom = t.buffer.Row(y + 1)
		}

		for x := 0; x < w; x++ {
			bg := video.Black
			if bottom != nil {
				bg = bottom[x]
			}
			style := tcell.StyleDefault.Foreground(toTcell(top[x])).Background(toTcell(bg))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
}

func (t *Backend) drawLogs(x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, entry := range t.logBuffer.GetRecent(height, t.logLevel.Level()) {
		t.drawText(x, y+i, width, FormatLogEntry(entry), style)
	}
}

func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= width {
			return
		}
		t.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}

func toTcell(c video.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
