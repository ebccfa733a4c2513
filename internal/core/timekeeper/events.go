package timekeeper

import "time"

// Kind tells a work interval from a break.
type Kind int

const (
	KindWork Kind = iota
	KindBreak
)

func (kind Kind) String() string {
	switch kind {
	case KindWork:
		return "work"
	case KindBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Label is the caption shown above the countdown.
func (kind Kind) Label() string {
	if kind == KindWork {
		return "STUDY TIME"
	}
	return "BREAK TIME"
}

// EventType defines the type of Keeper event.
type EventType string

const (
	EventRunStarted     EventType = "run_started"
	EventPhaseStarted   EventType = "phase_started"
	EventPhaseCompleted EventType = "phase_completed"
	EventProgress       EventType = "progress"
	EventAlarm          EventType = "alarm"
	EventRunCompleted   EventType = "run_completed"
	EventRunAborted     EventType = "run_aborted"
)

// Event represents a Keeper update for observers.
type Event struct {
	Type      EventType
	Kind      Kind
	Session   int
	Sessions  int
	Interval  Interval
	Schedule  Schedule
	Remaining time.Duration
	Progress  float64
	Muted     bool
	At        time.Time
}
