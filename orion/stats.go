package orion

import (
	"log/slog"
	"time"
)

type FrameTimes struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous frame
	Delta time.Duration

	lastTime time.Time
}

func (t *FrameTimes) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records a frame at the current time and reports whether statistics
// are due to be logged.
func (t *FrameTimes) Tick() bool {
	return t.tickAt(time.Now())
}

func (t *FrameTimes) tickAt(now time.Time) bool {
	if t.FrameCount > 0 {
		t.update(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount += 1

	return t.FrameCount%60 == 0
}

func (t *FrameTimes) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frames", t.FrameCount),
		slog.String("fps", formatFloat(t.FPS())),
		slog.Duration("average", t.AverageDuration),
		slog.Duration("max", t.MaxDuration),
	)
}
