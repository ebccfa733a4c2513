package timekeeper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidStartTime is returned for prompt input that is not a valid HH:MM.
var ErrInvalidStartTime = errors.New("invalid start time")

// ParseStartTime parses HH:MM (one or two digits per field).
func ParseStartTime(value string) (hour, minute int, err error) {
	hourText, minuteText, found := strings.Cut(strings.TrimSpace(value), ":")
	if !found || len(hourText) == 0 || len(hourText) > 2 || len(minuteText) == 0 || len(minuteText) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, value)
	}
	hour, err = strconv.Atoi(hourText)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidStartTime, hourText)
	}
	minute, err = strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute %q", ErrInvalidStartTime, minuteText)
	}
	return hour, minute, nil
}

// ResolveStart returns today's hour:minute in now's location. A time earlier
// than now is kept as is, so a run can be planned to have started already.
func ResolveStart(now time.Time, hour, minute int) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, hour, minute, 0, 0, now.Location())
}
