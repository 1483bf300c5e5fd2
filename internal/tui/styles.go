package tui

import "github.com/charmbracelet/lipgloss"

// theme groups every style the browser draws with.
type theme struct {
	accent  lipgloss.Color
	muted   lipgloss.Color
	frame   lipgloss.Style
	focused lipgloss.Style
	prompt  lipgloss.Style
	heading lipgloss.Style
	cursor  lipgloss.Style
	tag     lipgloss.Style
	detail  lipgloss.Style
	empty   lipgloss.Style
	footer  lipgloss.Style
}

func newTheme() theme {
	accent := lipgloss.Color("12") // bright blue
	muted := lipgloss.Color("240")
	return theme{
		accent:  accent,
		muted:   muted,
		frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
		focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent),
		prompt:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accent).Padding(0, 1).Bold(true),
		cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		detail:  lipgloss.NewStyle().Foreground(muted),
		empty:   lipgloss.NewStyle().Foreground(muted).Align(lipgloss.Center, lipgloss.Center),
		footer:  lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
	}
}

var styles = newTheme()
