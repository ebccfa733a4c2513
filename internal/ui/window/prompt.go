package window

import (
	"time"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"studywithme/internal/ui"
)

// promptView collects the HH:MM start time one typed rune at a time.
type promptView struct {
	root   *fyne.Container
	title  *canvas.Text
	now    *canvas.Text
	input  *canvas.Text
	hint   *canvas.Text
	buffer string
}

func newPromptView(scale float32) *promptView {
	prompt := &promptView{
		title: newText(ui.PromptTitle, colorWhite, 28*scale, false),
		now:   newText("", colorWhite, 18*scale, false),
		input: newText("", colorWhite, 28*scale, true),
		hint:  newText(ui.PromptHint, colorYellow, 16*scale, false),
	}
	prompt.hint.Hide()
	prompt.root = container.New(&centeredLinesLayout{}, prompt.title, prompt.now, prompt.input, prompt.hint)
	return prompt
}

func (prompt *promptView) reset(now time.Time) {
	prompt.buffer = ""
	prompt.input.Text = ""
	prompt.input.Refresh()
	prompt.showHint(false)
	prompt.setNow(now)
}

func (prompt *promptView) setNow(now time.Time) {
	prompt.now.Text = ui.CurrentTimeText(now)
	prompt.now.Refresh()
}

func (prompt *promptView) typeRune(r rune) {
	if !unicode.IsPrint(r) || len(prompt.buffer) >= ui.MaxPromptLen {
		return
	}
	prompt.buffer = trimPrompt(prompt.buffer + string(r))
	prompt.input.Text = prompt.buffer
	prompt.input.Refresh()
	prompt.showHint(false)
}

func (prompt *promptView) backspace() {
	if prompt.buffer == "" {
		return
	}
	runes := []rune(prompt.buffer)
	prompt.buffer = string(runes[:len(runes)-1])
	prompt.input.Text = prompt.buffer
	prompt.input.Refresh()
}

func (prompt *promptView) value() string {
	return prompt.buffer
}

func (prompt *promptView) showHint(visible bool) {
	setVisible(prompt.hint, visible)
	prompt.root.Refresh()
}
