package timekeeper

import "time"

// Interval is one work session.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Schedule lists the work sessions of a run in order.
type Schedule []Interval

// BuildSchedule lays out sessions work intervals starting at base, separated
// by brk. Durations are expected to be positive.
func BuildSchedule(base time.Time, work, brk time.Duration, sessions int) Schedule {
	if sessions < 1 {
		return nil
	}
	schedule := make(Schedule, sessions)
	start := base
	for index := range schedule {
		end := start.Add(work)
		schedule[index] = Interval{Start: start, End: end}
		start = end.Add(brk)
	}
	return schedule
}
