package ui

import (
	"sync"
	"time"

	"studywithme/internal/core/timekeeper"
)

// Display is a render surface that also owns the interactive screens shown
// between runs. Run blocks on the calling goroutine, which must be main for
// the window display; every other method may be called from the engine
// goroutine.
type Display interface {
	timekeeper.Surface

	// AskStartTime shows the start time prompt and blocks until the user
	// submits a valid HH:MM or quits (timekeeper.ErrQuit).
	AskStartTime(now time.Time) (hour, minute int, err error)
	ShowMessage(text string)
	// RequestQuit behaves like the user pressing Escape.
	RequestQuit()
	Run() error
	Quit()
}

// QuitSignal is closed once when the user asks to leave from any screen.
type QuitSignal struct {
	once sync.Once
	ch   chan struct{}
}

func NewQuitSignal() *QuitSignal {
	return &QuitSignal{ch: make(chan struct{})}
}

// Fire closes the signal. Later calls do nothing.
func (signal *QuitSignal) Fire() {
	signal.once.Do(func() { close(signal.ch) })
}

func (signal *QuitSignal) Done() <-chan struct{} {
	return signal.ch
}

// StartAnswer is a submitted start time.
type StartAnswer struct {
	Hour   int
	Minute int
}

// WaitStartTime blocks until answers yields a value or quit fires.
func WaitStartTime(answers <-chan StartAnswer, quit *QuitSignal) (int, int, error) {
	select {
	case answer := <-answers:
		return answer.Hour, answer.Minute, nil
	case <-quit.Done():
		return 0, 0, timekeeper.ErrQuit
	}
}

// KeyCommand maps a key name to the command it triggers while a timer or
// the completion message is on screen.
func KeyCommand(key string) (timekeeper.Command, bool) {
	switch key {
	case "m", "M":
		return timekeeper.CmdToggleMute, true
	case "[":
		return timekeeper.CmdVolumeDown, true
	case "]":
		return timekeeper.CmdVolumeUp, true
	case "esc", "Escape":
		return timekeeper.CmdQuit, true
	case "enter", "Return", "Enter":
		return timekeeper.CmdConfirm, true
	}
	return 0, false
}
