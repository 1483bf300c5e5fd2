package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// previewMsg carries a finished preview render.
type previewMsg struct {
	id      string
	content string
	hitLine int
	err     error
}

// renderPreview renders it off the UI goroutine.
func renderPreview(it item, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := it.render(width)
		return previewMsg{id: it.id, content: content, hitLine: hitLine, err: err}
	}
}

// showPreview puts a finished render into the viewport, scrolled to the hit.
func (m *model) showPreview(msg previewMsg) {
	if msg.err != nil {
		m.preview.SetContent("Preview error: " + msg.err.Error())
	} else {
		m.preview.SetContent(msg.content)
		if msg.hitLine > 0 {
			m.preview.SetYOffset(msg.hitLine)
		} else {
			m.preview.GotoTop()
		}
	}
	m.shown = msg.id
}
