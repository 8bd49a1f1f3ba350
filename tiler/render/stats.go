package render

import (
	"fmt"
	"time"
)

// Stage is one step of a frame, in execution order.
type Stage int

const (
	StageReset Stage = iota
	StageCompositeBackground
	StageDrawSprites
	StageCompositeForeground
	StageTransfer
	StageShow

	stageCount
)

var stageNames = [stageCount]string{
	StageReset:               "reset",
	StageCompositeBackground: "composite-background",
	StageDrawSprites:         "draw-sprites",
	StageCompositeForeground: "composite-foreground",
	StageTransfer:            "transfer",
	StageShow:                "show",
}

func (s Stage) String() string {
	if s < 0 || s >= stageCount {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Stages lists every stage in execution order.
func Stages() []Stage {
	stages := make([]Stage, 0, stageCount)
	for s := StageReset; s < stageCount; s++ {
		stages = append(stages, s)
	}
	return stages
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame uint64

	Sprites        int // sprites drawn
	SpritesSkipped int // sprites without a current frame
	Layers         int // layers composited, the sprite layer excluded

	Durations [stageCount]time.Duration
}

// Duration returns the time spent in s.
func (f FrameStats) Duration(s Stage) time.Duration {
	if s < 0 || s >= stageCount {
		return 0
	}
	return f.Durations[s]
}

func (f FrameStats) Total() time.Duration {
	var total time.Duration
	for _, d := range f.Durations {
		total += d
	}
	return total
}

// Slowest returns the stage that took the longest.
func (f FrameStats) Slowest() Stage {
	slowest := StageReset
	for s := StageReset; s < stageCount; s++ {
		if f.Durations[s] > f.Durations[slowest] {
			slowest = s
		}
	}
	return slowest
}
