package terminal

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"studywithme/internal/core/timekeeper"
	"studywithme/internal/ui"
)

var _ ui.Display = (*Terminal)(nil)

// Terminal renders the timer in the terminal with bubbletea. Drawing calls
// from the engine goroutine are batched per frame and sent to the program.
type Terminal struct {
	program *tea.Program
	queue   *timekeeper.CommandQueue
	quit    *ui.QuitSignal
	answers chan ui.StartAnswer
	pending frameMsg
}

// New creates a terminal display pushing key commands into queue.
func New(queue *timekeeper.CommandQueue) *Terminal {
	quit := ui.NewQuitSignal()
	answers := make(chan ui.StartAnswer, 1)
	program := tea.NewProgram(newModel(queue, quit, answers), tea.WithAltScreen())
	return &Terminal{
		program: program,
		queue:   queue,
		quit:    quit,
		answers: answers,
	}
}

// Run blocks until Quit is called.
func (display *Terminal) Run() error {
	if _, err := display.program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

func (display *Terminal) Quit() {
	display.program.Send(quitMsg{})
}

// RequestQuit unblocks a pending prompt and stops a running timer.
func (display *Terminal) RequestQuit() {
	display.quit.Fire()
	display.queue.Push(timekeeper.CmdQuit)
}

func (display *Terminal) BeginFrame() {
	display.pending = frameMsg{}
}

func (display *Terminal) DrawPie(fraction float64, kind timekeeper.Kind) {
	display.pending.fraction = fraction
	display.pending.kind = kind
}

func (display *Terminal) DrawCountdown(secondsLeft int, kind timekeeper.Kind) {
	display.pending.secondsLeft = secondsLeft
	display.pending.kind = kind
}

func (display *Terminal) DrawPanel(panel timekeeper.Panel) {
	display.pending.panel = panel
}

func (display *Terminal) EndFrame() {
	display.program.Send(display.pending)
}

func (display *Terminal) AskStartTime(now time.Time) (int, int, error) {
	display.program.Send(promptMsg{now: now})
	return ui.WaitStartTime(display.answers, display.quit)
}

func (display *Terminal) ShowMessage(text string) {
	display.program.Send(messageMsg(text))
}
