package terminal

import "github.com/charmbracelet/lipgloss"

// Theme holds the terminal colours and styles.
type Theme struct {
	Red    lipgloss.Color
	Dark   lipgloss.Color
	White  lipgloss.Color
	Yellow lipgloss.Color
	Status lipgloss.Color

	PieRedStyle   lipgloss.Style
	PieDarkStyle  lipgloss.Style
	WorkStyle     lipgloss.Style
	BreakStyle    lipgloss.Style
	PanelStyle    lipgloss.Style
	CurrentStyle  lipgloss.Style
	StatusStyle   lipgloss.Style
	HintStyle     lipgloss.Style
	SidebarStyle  lipgloss.Style
	CenteredStyle lipgloss.Style
}

// DarkTheme mirrors the window colours on a dark terminal.
func DarkTheme() Theme {
	t := Theme{
		Red:    lipgloss.Color("#FF0000"),
		Dark:   lipgloss.Color("#3A3A3A"),
		White:  lipgloss.Color("#FFFFFF"),
		Yellow: lipgloss.Color("#FFFF00"),
		Status: lipgloss.Color("#C8C8C8"),
	}

	t.PieRedStyle = lipgloss.NewStyle().Foreground(t.Red)
	t.PieDarkStyle = lipgloss.NewStyle().Foreground(t.Dark)

	t.WorkStyle = lipgloss.NewStyle().
		Foreground(t.White).
		Bold(true)

	t.BreakStyle = lipgloss.NewStyle().
		Foreground(t.Yellow).
		Bold(true)

	t.PanelStyle = lipgloss.NewStyle().
		Foreground(t.White)

	t.CurrentStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(t.White)

	t.StatusStyle = lipgloss.NewStyle().
		Foreground(t.Status)

	t.HintStyle = lipgloss.NewStyle().
		Foreground(t.Yellow)

	t.SidebarStyle = lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Dark).
		PaddingLeft(2)

	t.CenteredStyle = lipgloss.NewStyle().
		Align(lipgloss.Center)

	return t
}
