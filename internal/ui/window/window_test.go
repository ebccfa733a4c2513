package window

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"studywithme/internal/core/timekeeper"
	"studywithme/internal/ui"
)

func newTestWindow(t *testing.T) (*Window, *timekeeper.CommandQueue) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	queue := timekeeper.NewCommandQueue(16)
	return New(app, Config{Width: 800, Height: 500}, queue), queue
}

func drain(queue *timekeeper.CommandQueue) []timekeeper.Command {
	var commands []timekeeper.Command
	for {
		command, ok := queue.Poll()
		if !ok {
			return commands
		}
		commands = append(commands, command)
	}
}

func pressKey(study *Window, name fyne.KeyName) {
	study.window.Canvas().OnTypedKey()(&fyne.KeyEvent{Name: name})
}

func TestTimerKeysPushCommands(t *testing.T) {
	study, queue := newTestWindow(t)
	study.show(screenTimer)

	test.TypeOnCanvas(study.window.Canvas(), "m[]x")
	pressKey(study, fyne.KeyReturn)

	got := drain(queue)
	want := []timekeeper.Command{
		timekeeper.CmdToggleMute,
		timekeeper.CmdVolumeDown,
		timekeeper.CmdVolumeUp,
		timekeeper.CmdConfirm,
	}
	if len(got) != len(want) {
		t.Fatalf("commands=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("commands[%d]=%v, want %v", i, got[i], want[i])
		}
	}
}

func TestPromptCollectsStartTime(t *testing.T) {
	study, queue := newTestWindow(t)
	study.prompt.reset(time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC))
	study.show(screenPrompt)

	test.TypeOnCanvas(study.window.Canvas(), "7:3x")
	pressKey(study, fyne.KeyReturn)
	if !study.prompt.hint.Visible() {
		t.Fatalf("hint hidden after invalid input")
	}
	select {
	case answer := <-study.answers:
		t.Fatalf("invalid input answered %+v", answer)
	default:
	}

	pressKey(study, fyne.KeyBackspace)
	test.TypeOnCanvas(study.window.Canvas(), "0")
	if study.prompt.value() != "7:30" {
		t.Fatalf("buffer=%q, want 7:30", study.prompt.value())
	}
	pressKey(study, fyne.KeyEnter)

	if commands := drain(queue); len(commands) != 0 {
		t.Fatalf("prompt keys leaked commands %v", commands)
	}
	answer := <-study.answers
	if answer.Hour != 7 || answer.Minute != 30 {
		t.Fatalf("answer=%+v, want 7:30", answer)
	}
}

func TestPromptLimitsLength(t *testing.T) {
	study, _ := newTestWindow(t)
	study.prompt.reset(time.Now())
	study.show(screenPrompt)

	test.TypeOnCanvas(study.window.Canvas(), "12:345")
	if got := study.prompt.value(); got != "12:34" {
		t.Fatalf("buffer=%q, want 12:34", got)
	}
}

func TestEscapeQuitsFromPrompt(t *testing.T) {
	study, queue := newTestWindow(t)

	pressKey(study, fyne.KeyEscape)

	if _, _, err := study.AskStartTime(time.Now()); !errors.Is(err, timekeeper.ErrQuit) {
		t.Fatalf("AskStartTime err=%v, want ErrQuit", err)
	}
	if commands := drain(queue); len(commands) != 1 || commands[0] != timekeeper.CmdQuit {
		t.Fatalf("commands=%v, want [quit]", commands)
	}
}

func TestFrameUpdatesWidgets(t *testing.T) {
	study, _ := newTestWindow(t)
	base := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	schedule := timekeeper.BuildSchedule(base, 25*time.Minute, 5*time.Minute, 3)

	study.BeginFrame()
	study.DrawPie(0.5, timekeeper.KindBreak)
	study.DrawCountdown(125, timekeeper.KindBreak)
	study.DrawPanel(timekeeper.Panel{
		Now:           base.Add(27 * time.Minute),
		Current:       1,
		Schedule:      schedule,
		VolumePercent: 43,
		Track:         "rain.mp3",
	})
	study.EndFrame()

	if study.screen != screenTimer || !study.timerView.Visible() || study.prompt.root.Visible() {
		t.Fatalf("timer screen not shown")
	}
	if study.countdown.Text != "02:05" || study.countdown.Color != colorYellow {
		t.Fatalf("countdown=%q color=%v", study.countdown.Text, study.countdown.Color)
	}
	if study.phaseLabel.Text != "BREAK TIME" {
		t.Fatalf("label=%q", study.phaseLabel.Text)
	}
	if study.side.clock.Text != "09:27:00" || study.side.volume.Text != ui.VolumeText(43) {
		t.Fatalf("clock=%q volume=%q", study.side.clock.Text, study.side.volume.Text)
	}
	if len(study.side.rows) != 3 {
		t.Fatalf("rows=%d, want 3", len(study.side.rows))
	}
	if study.side.rows[1].text.Color != colorBackground || study.side.rows[0].text.Color != colorWhite {
		t.Fatalf("current row not highlighted")
	}
	if study.side.rows[2].text.Text != "3   10:00 - 10:25" {
		t.Fatalf("row 3=%q", study.side.rows[2].text.Text)
	}
	if study.side.track.Text != "rain.mp3" {
		t.Fatalf("track=%q", study.side.track.Text)
	}
}

func TestShowMessage(t *testing.T) {
	study, _ := newTestWindow(t)
	study.ShowMessage(ui.CompletionMessage)

	if study.screen != screenMessage || !study.messageBox.Visible() {
		t.Fatalf("message screen not shown")
	}
	if study.message.Text != ui.CompletionMessage {
		t.Fatalf("message=%q", study.message.Text)
	}
}
