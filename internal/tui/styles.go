package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorRose   = lipgloss.Color("#E11D74")
	colorBlush  = lipgloss.Color("#F9A8D4")
	colorLeaf   = lipgloss.Color("#4ECDC4")
	colorPaused = lipgloss.Color("#6B7280")
	colorMuted  = lipgloss.Color("#95A5A6")
)

var (
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorRose).
			Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRose)
	modeStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	clockStyle  = lipgloss.NewStyle().Bold(true).Padding(1, 2)
)

func timeColor(running bool, brk bool) lipgloss.Color {
	switch {
	case !running:
		return colorPaused
	case brk:
		return colorLeaf
	default:
		return colorBlush
	}
}
