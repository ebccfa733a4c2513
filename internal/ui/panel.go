package ui

import (
	"fmt"
	"math"
	"time"

	"studywithme/internal/core/timekeeper"
)

const (
	PromptTitle  = "Enter the start time (HH:MM)"
	PromptHint   = "Use 24 hour HH:MM, e.g. 09:30"
	LocalTime    = "Local time"
	KeysHint     = "M mute [ ] vol up/down"
	MaxPromptLen = 5

	// CompletionMessage is shown after the last session of a run.
	CompletionMessage = "All sessions done! Press Enter to start again or Esc to quit."
)

// CurrentTimeText renders the hint under the start time prompt.
func CurrentTimeText(now time.Time) string {
	return fmt.Sprintf("(Current time %s)", now.Format("15:04"))
}

// ClockText renders the side panel clock.
func ClockText(now time.Time) string {
	return now.Format("15:04:05")
}

// ScheduleRow renders one timetable line. index is zero based.
func ScheduleRow(index int, interval timekeeper.Interval) string {
	return fmt.Sprintf("%d   %s - %s", index+1, interval.Start.Format("15:04"), interval.End.Format("15:04"))
}

// VolumeText renders the audible volume.
func VolumeText(percent int) string {
	return fmt.Sprintf("Vol: %d%%", percent)
}

// TickerX returns the left edge of a scrolling label. The label enters at
// the right edge of a panel of the given width, moves left by one unit per
// scroll unit and wraps once it has fully left on the other side.
func TickerX(scroll, panelWidth, textWidth int) int {
	span := panelWidth + textWidth
	if span <= 0 {
		return 0
	}
	offset := scroll % span
	if offset < 0 {
		offset += span
	}
	return panelWidth - offset
}

// PieShade is the colour class of one point of the countdown pie.
type PieShade int

const (
	ShadeBackground PieShade = iota
	ShadeRed
	ShadeDark
)

// PieShadeAt classifies the point (x, y) of a square of the given size
// holding the pie. fraction is the remaining share of the interval. During
// work the red disc is eaten clockwise from twelve o'clock by a dark wedge
// covering the elapsed share; during a break a red wedge refills the dark
// disc counter-clockwise.
func PieShadeAt(x, y, size, fraction float64, kind timekeeper.Kind) PieShade {
	radius := size / 2
	dx, dy := x-radius, y-radius
	if dx*dx+dy*dy > radius*radius {
		return ShadeBackground
	}

	fraction = math.Max(0, math.Min(1, fraction))
	elapsed := (1 - fraction) * 2 * math.Pi

	clockwise := math.Atan2(dx, -dy)
	if clockwise < 0 {
		clockwise += 2 * math.Pi
	}

	if kind == timekeeper.KindWork {
		if clockwise < elapsed {
			return ShadeDark
		}
		return ShadeRed
	}

	counter := 2*math.Pi - clockwise
	if counter >= 2*math.Pi {
		counter -= 2 * math.Pi
	}
	if counter < elapsed {
		return ShadeRed
	}
	return ShadeDark
}
