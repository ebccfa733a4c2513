package timekeeper

import (
	"fmt"
	"math"
	"time"
)

// Tick is the per-iteration view of an active interval.
type Tick struct {
	Now         time.Time
	Remaining   time.Duration
	Fraction    float64
	SecondsLeft int
}

// ComputeTick derives the remaining time and pie fraction for an interval
// of the given duration ending at end.
func ComputeTick(now, end time.Time, duration time.Duration) Tick {
	remaining := end.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	fraction := 0.0
	if duration > 0 {
		fraction = remaining.Seconds() / duration.Seconds()
	}
	fraction = math.Max(0, math.Min(1, fraction))

	return Tick{
		Now:         now,
		Remaining:   remaining,
		Fraction:    fraction,
		SecondsLeft: int(remaining / time.Second),
	}
}

// FormatCountdown renders whole seconds as MM:SS. Minutes are not wrapped.
func FormatCountdown(secondsLeft int) string {
	if secondsLeft < 0 {
		secondsLeft = 0
	}
	return fmt.Sprintf("%02d:%02d", secondsLeft/60, secondsLeft%60)
}
