package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates a configuration that cannot drive a run.
var ErrInvalidConfig = errors.New("invalid configuration")

// Display names a render surface implementation.
type Display string

const (
	DisplayWindow   Display = "window"
	DisplayTerminal Display = "terminal"
)

// Config is the loaded settings record. It is passed by value and never
// mutated after loading.
type Config struct {
	WorkMinutes  int
	BreakMinutes int
	Sessions     int

	Width  int
	Height int

	LidControl bool

	AssetDirectory string
	MusicDirectory string
	AlarmSound     string

	FinalAlarm    bool
	Display       Display
	Notifications bool
}

// Work returns the length of one work interval.
func (config Config) Work() time.Duration {
	return time.Duration(config.WorkMinutes) * time.Minute
}

// Break returns the length of the gap between two work intervals.
func (config Config) Break() time.Duration {
	return time.Duration(config.BreakMinutes) * time.Minute
}

// Validate reports the first field that breaks a run precondition.
func (config Config) Validate() error {
	switch {
	case config.WorkMinutes <= 0:
		return fmt.Errorf("%w: work_time must be positive, got %d", ErrInvalidConfig, config.WorkMinutes)
	case config.BreakMinutes <= 0:
		return fmt.Errorf("%w: break_time must be positive, got %d", ErrInvalidConfig, config.BreakMinutes)
	case config.Sessions < 1:
		return fmt.Errorf("%w: num_sessions must be at least 1, got %d", ErrInvalidConfig, config.Sessions)
	case config.Width <= 0 || config.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, config.Width, config.Height)
	}
	if config.Display != DisplayWindow && config.Display != DisplayTerminal {
		return fmt.Errorf("%w: unknown display %q", ErrInvalidConfig, config.Display)
	}
	return nil
}
