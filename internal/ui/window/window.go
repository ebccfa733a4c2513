package window

import (
	"image/color"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"studywithme/internal/core/timekeeper"
	"studywithme/internal/ui"
)

const title = "Study With Me"

var (
	colorBackground = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colorWhite      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colorYellow     = color.NRGBA{R: 255, G: 255, B: 0, A: 255}
	colorRed        = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	colorStatus     = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

type screen int

const (
	screenIdle screen = iota
	screenPrompt
	screenTimer
	screenMessage
)

// Config defines window geometry.
type Config struct {
	Width  int
	Height int
}

// frame collects one tick of drawing calls before it is handed to the UI
// goroutine as a whole.
type frame struct {
	fraction    float64
	kind        timekeeper.Kind
	secondsLeft int
	panel       timekeeper.Panel
}

var _ ui.Display = (*Window)(nil)

// Window renders the timer into a fyne window. Drawing calls come from the
// engine goroutine and are applied on the fyne goroutine with fyne.Do.
type Window struct {
	app    fyne.App
	window fyne.Window
	queue  *timekeeper.CommandQueue
	quit   *ui.QuitSignal

	answers chan ui.StartAnswer
	pending frame

	// Fields below are owned by the fyne goroutine.
	screen     screen
	pieState   frame
	timerView  *fyne.Container
	pie        *canvas.Raster
	phaseLabel *canvas.Text
	countdown  *canvas.Text
	side       *sidePanel
	prompt     *promptView
	message    *canvas.Text
	messageBox *fyne.Container
}

// New creates the main window. Commands from the keyboard and the close
// button are pushed into queue.
func New(app fyne.App, config Config, queue *timekeeper.CommandQueue) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	scale := float32(config.Height) / 500
	study := &Window{
		app:     app,
		window:  window,
		queue:   queue,
		quit:    ui.NewQuitSignal(),
		answers: make(chan ui.StartAnswer, 1),
		screen:  screenIdle,
	}

	study.pie = canvas.NewRasterWithPixels(study.piePixel)
	study.phaseLabel = newText("", colorWhite, 28*scale, true)
	study.countdown = newText("--:--", colorWhite, 64*scale, true)
	timerPanel := container.New(&timerPanelLayout{}, study.pie, study.phaseLabel, study.countdown)

	study.side = newSidePanel(scale)
	study.timerView = container.New(&studyLayout{}, timerPanel, study.side.root)
	study.timerView.Hide()

	study.prompt = newPromptView(scale)
	study.prompt.root.Hide()

	study.message = newText("", colorWhite, 20*scale, false)
	study.messageBox = container.New(&centeredLinesLayout{}, study.message)
	study.messageBox.Hide()

	background := canvas.NewRectangle(colorBackground)
	window.SetContent(container.NewStack(background, study.timerView, study.prompt.root, study.messageBox))
	window.Resize(fyne.NewSize(float32(config.Width), float32(config.Height)))

	window.Canvas().SetOnTypedRune(study.handleRune)
	window.Canvas().SetOnTypedKey(study.handleKey)
	window.SetCloseIntercept(study.RequestQuit)

	return study
}

// Run shows the window and blocks in the fyne event loop.
func (study *Window) Run() error {
	study.window.Show()
	study.app.Run()
	return nil
}

// Raise shows the window and asks for focus.
func (study *Window) Raise() {
	fyne.Do(func() {
		study.window.Show()
		study.window.RequestFocus()
	})
}

// Quit stops the fyne event loop.
func (study *Window) Quit() {
	fyne.Do(func() {
		study.app.Quit()
	})
}

func (study *Window) BeginFrame() {
	study.pending = frame{}
}

func (study *Window) DrawPie(fraction float64, kind timekeeper.Kind) {
	study.pending.fraction = fraction
	study.pending.kind = kind
}

func (study *Window) DrawCountdown(secondsLeft int, kind timekeeper.Kind) {
	study.pending.secondsLeft = secondsLeft
	study.pending.kind = kind
}

func (study *Window) DrawPanel(panel timekeeper.Panel) {
	study.pending.panel = panel
}

func (study *Window) EndFrame() {
	current := study.pending
	fyne.Do(func() {
		study.applyFrame(current)
	})
}

// AskStartTime shows the prompt and waits for a valid answer, refreshing the
// current time hint every second.
func (study *Window) AskStartTime(now time.Time) (int, int, error) {
	fyne.Do(func() {
		study.prompt.reset(now)
		study.show(screenPrompt)
	})

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case answer := <-study.answers:
			return answer.Hour, answer.Minute, nil
		case <-study.quit.Done():
			return 0, 0, timekeeper.ErrQuit
		case tick := <-ticker.C:
			fyne.Do(func() {
				study.prompt.setNow(tick)
			})
		}
	}
}

// ShowMessage replaces the screen with text until the next frame or prompt.
func (study *Window) ShowMessage(text string) {
	fyne.Do(func() {
		study.message.Text = text
		study.message.Refresh()
		study.show(screenMessage)
	})
}

func (study *Window) applyFrame(current frame) {
	study.show(screenTimer)

	study.pieState = current
	study.pie.Refresh()

	textColor := colorWhite
	if current.kind == timekeeper.KindBreak {
		textColor = colorYellow
	}
	study.phaseLabel.Text = current.kind.Label()
	study.phaseLabel.Color = textColor
	study.phaseLabel.Refresh()
	study.countdown.Text = timekeeper.FormatCountdown(current.secondsLeft)
	study.countdown.Color = textColor
	study.countdown.Refresh()

	study.side.apply(current.panel)
}

func (study *Window) piePixel(x, y, width, height int) color.Color {
	size := width
	if height < size {
		size = height
	}
	switch ui.PieShadeAt(float64(x)+0.5, float64(y)+0.5, float64(size), study.pieState.fraction, study.pieState.kind) {
	case ui.ShadeRed:
		return colorRed
	default:
		return colorBackground
	}
}

func (study *Window) show(next screen) {
	if study.screen == next {
		return
	}
	study.screen = next
	setVisible(study.timerView, next == screenTimer)
	setVisible(study.prompt.root, next == screenPrompt)
	setVisible(study.messageBox, next == screenMessage)
}

func (study *Window) handleRune(r rune) {
	if study.screen == screenPrompt {
		study.prompt.typeRune(r)
		return
	}
	if command, ok := ui.KeyCommand(string(r)); ok {
		study.queue.Push(command)
	}
}

func (study *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeyEscape:
		study.RequestQuit()
	case fyne.KeyReturn, fyne.KeyEnter:
		if study.screen == screenPrompt {
			study.submitPrompt()
			return
		}
		study.queue.Push(timekeeper.CmdConfirm)
	case fyne.KeyBackspace:
		if study.screen == screenPrompt {
			study.prompt.backspace()
		}
	}
}

func (study *Window) submitPrompt() {
	hour, minute, err := timekeeper.ParseStartTime(study.prompt.value())
	if err != nil {
		study.prompt.showHint(true)
		return
	}
	select {
	case study.answers <- ui.StartAnswer{Hour: hour, Minute: minute}:
		study.screen = screenIdle
	default:
	}
}

// RequestQuit leaves whichever screen is shown. Safe from any goroutine.
func (study *Window) RequestQuit() {
	study.quit.Fire()
	study.queue.Push(timekeeper.CmdQuit)
}

func newText(value string, textColor color.Color, size float32, bold bool) *canvas.Text {
	text := canvas.NewText(value, textColor)
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = size
	text.TextStyle = fyne.TextStyle{Bold: bold}
	return text
}

func setVisible(object fyne.CanvasObject, visible bool) {
	if visible {
		object.Show()
		return
	}
	object.Hide()
}

func trimPrompt(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > ui.MaxPromptLen {
		value = value[:ui.MaxPromptLen]
	}
	return value
}
