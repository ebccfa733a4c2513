package terminal

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studywithme/internal/core/timekeeper"
	"studywithme/internal/ui"
)

const (
	pieRows    = 9
	pieColumns = 18
	panelWidth = 28
	// cellPixels converts the pixel scroll offset into terminal cells.
	cellPixels = 10
)

type screen int

const (
	screenIdle screen = iota
	screenPrompt
	screenTimer
	screenMessage
)

type frameMsg struct {
	fraction    float64
	kind        timekeeper.Kind
	secondsLeft int
	panel       timekeeper.Panel
}

type promptMsg struct {
	now time.Time
}

type clockMsg time.Time

type messageMsg string

type quitMsg struct{}

// Model is the bubbletea model behind the terminal display.
type Model struct {
	queue   *timekeeper.CommandQueue
	quit    *ui.QuitSignal
	answers chan<- ui.StartAnswer
	theme   Theme

	width  int
	height int

	screen   screen
	frame    frameMsg
	now      time.Time
	input    textinput.Model
	hint     bool
	message  string
	progress progress.Model
}

func newModel(queue *timekeeper.CommandQueue, quit *ui.QuitSignal, answers chan<- ui.StartAnswer) Model {
	input := textinput.New()
	input.Placeholder = "HH:MM"
	input.CharLimit = ui.MaxPromptLen
	input.Width = ui.MaxPromptLen + 1
	input.Prompt = ""

	return Model{
		queue:    queue,
		quit:     quit,
		answers:  answers,
		theme:    DarkTheme(),
		input:    input,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(pieColumns)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case frameMsg:
		m.screen = screenTimer
		m.frame = msg
		return m, nil

	case promptMsg:
		m.screen = screenPrompt
		m.now = msg.now
		m.hint = false
		m.input.Reset()
		return m, tea.Batch(m.input.Focus(), clockTick())

	case clockMsg:
		if m.screen != screenPrompt {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, clockTick()

	case messageMsg:
		m.screen = screenMessage
		m.message = string(msg)
		return m, nil

	case quitMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == screenPrompt {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quit.Fire()
		m.queue.Push(timekeeper.CmdQuit)
		return m, nil
	}

	if m.screen != screenPrompt {
		if command, ok := ui.KeyCommand(msg.String()); ok {
			m.queue.Push(command)
		}
		return m, nil
	}

	if msg.Type == tea.KeyEnter {
		hour, minute, err := timekeeper.ParseStartTime(m.input.Value())
		if err != nil {
			m.hint = true
			return m, nil
		}
		select {
		case m.answers <- ui.StartAnswer{Hour: hour, Minute: minute}:
			m.screen = screenIdle
			m.input.Blur()
		default:
		}
		return m, nil
	}

	m.hint = false
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var body string
	switch m.screen {
	case screenPrompt:
		lines := []string{
			m.theme.PanelStyle.Bold(true).Render(ui.PromptTitle),
			m.theme.PanelStyle.Render(ui.CurrentTimeText(m.now)),
			"",
			m.input.View(),
		}
		if m.hint {
			lines = append(lines, "", m.theme.HintStyle.Render(ui.PromptHint))
		}
		body = lipgloss.JoinVertical(lipgloss.Center, lines...)
	case screenMessage:
		body = m.theme.PanelStyle.Render(m.message)
	case screenTimer:
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.timerView(), m.theme.SidebarStyle.Render(m.panelView()))
	default:
		return ""
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}

func (m Model) timerView() string {
	textStyle := m.theme.WorkStyle
	if m.frame.kind == timekeeper.KindBreak {
		textStyle = m.theme.BreakStyle
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		renderPie(m.theme, m.frame.fraction, m.frame.kind),
		"",
		textStyle.Render(m.frame.kind.Label()),
		textStyle.Render(timekeeper.FormatCountdown(m.frame.secondsLeft)),
		m.progress.ViewAs(1-m.frame.fraction),
	)
}

func (m Model) panelView() string {
	panel := m.frame.panel
	lines := []string{
		m.theme.PanelStyle.Render(ui.LocalTime),
		m.theme.PanelStyle.Render(ui.ClockText(panel.Now)),
		"",
	}
	for index, interval := range panel.Schedule {
		row := ui.ScheduleRow(index, interval)
		if index == panel.Current {
			lines = append(lines, m.theme.CurrentStyle.Render(row))
			continue
		}
		lines = append(lines, m.theme.PanelStyle.Render(row))
	}
	lines = append(lines,
		"",
		m.theme.StatusStyle.Render(ui.VolumeText(panel.VolumePercent)),
		m.theme.StatusStyle.Render(ui.KeysHint),
		m.theme.StatusStyle.Render(tickerLine(panel.Track, panel.TrackScroll/cellPixels, panelWidth)),
	)
	return strings.Join(lines, "\n")
}

// renderPie draws the countdown pie with block characters. Cells are about
// twice as tall as wide, so the grid has twice as many columns as rows.
func renderPie(theme Theme, fraction float64, kind timekeeper.Kind) string {
	const size = 100.0
	var builder strings.Builder
	for row := 0; row < pieRows; row++ {
		if row > 0 {
			builder.WriteByte('\n')
		}
		y := (float64(row) + 0.5) / pieRows * size
		for column := 0; column < pieColumns; column++ {
			x := (float64(column) + 0.5) / pieColumns * size
			switch ui.PieShadeAt(x, y, size, fraction, kind) {
			case ui.ShadeRed:
				builder.WriteString(theme.PieRedStyle.Render("█"))
			case ui.ShadeDark:
				builder.WriteString(theme.PieDarkStyle.Render("░"))
			default:
				builder.WriteByte(' ')
			}
		}
	}
	return builder.String()
}

// tickerLine returns a width-cell window onto text scrolled by scroll cells.
func tickerLine(text string, scroll, width int) string {
	runes := []rune(text)
	x := ui.TickerX(scroll, width, len(runes))
	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}
	for i, r := range runes {
		column := x + i
		if column >= 0 && column < width {
			line[column] = r
		}
	}
	return string(line)
}
