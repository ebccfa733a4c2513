package tray

import (
	"fmt"

	"studywithme/internal/core/timekeeper"
)

// StatusFor renders the tray status line for a timer event. ok is false when
// the event does not change the status.
func StatusFor(event timekeeper.Event) (status string, ok bool) {
	switch event.Type {
	case timekeeper.EventProgress:
		left := timekeeper.FormatCountdown(int(event.Remaining.Seconds()))
		if event.Session < 0 {
			return fmt.Sprintf("starting in %s", left), true
		}
		if event.Kind == timekeeper.KindWork {
			return fmt.Sprintf("studying %d/%d, %s left", event.Session+1, event.Sessions, left), true
		}
		return fmt.Sprintf("break, %s left", left), true
	case timekeeper.EventRunCompleted:
		return "all sessions done", true
	case timekeeper.EventRunAborted:
		return "stopped", true
	}
	return "", false
}
