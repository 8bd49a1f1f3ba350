package terminal

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogBuffer_Ring(t *testing.T) {
	lb := NewLogBuffer(3)
	for _, msg := range []string{"a", "b", "c", "d"} {
		lb.Add(LogEntry{Level: slog.LevelInfo, Message: msg})
	}

	var got []string
	for _, e := range lb.GetRecent(0, slog.LevelDebug) {
		got = append(got, e.Message)
	}
	assert.Equal(t, []string{"d", "c", "b"}, got)
	assert.Len(t, lb.GetRecent(2, slog.LevelDebug), 2)

	lb.Clear()
	assert.Empty(t, lb.GetRecent(0, slog.LevelDebug))
}

func TestLogBuffer_LevelFilter(t *testing.T) {
	lb := NewLogBuffer(10)
	lb.Add(LogEntry{Level: slog.LevelDebug, Message: "noise"})
	lb.Add(LogEntry{Level: slog.LevelWarn, Message: "warn"})
	lb.Add(LogEntry{Level: slog.LevelInfo, Message: "info"})

	got := lb.GetRecent(0, slog.LevelInfo)
	assert.Len(t, got, 2)
	assert.Equal(t, "info", got[0].Message)
	assert.Equal(t, "warn", got[1].Message)
}

func TestLogBufferHandler(t *testing.T) {
	lb := NewLogBuffer(10)
	logger := slog.New(NewLogBufferHandler(lb, slog.LevelInfo))

	logger.Debug("dropped")
	logger.With("layer", 2).WithGroup("blit").Info("drawn", "w", 8)

	entries := lb.GetRecent(0, slog.LevelDebug)
	assert.Len(t, entries, 1)
	assert.Equal(t, "drawn layer=2 blit.w=8", entries[0].Message)
}

func TestFormatLogEntry(t *testing.T) {
	entry := LogEntry{
		Time:    time.Date(2024, 1, 1, 13, 4, 5, 0, time.UTC),
		Level:   slog.LevelWarn,
		Message: "slow frame",
	}
	assert.Equal(t, "13:04:05 [WRN] slow frame", FormatLogEntry(entry))
}
