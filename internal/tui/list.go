package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// rowsPerItem is the number of terminal lines each item occupies.
const rowsPerItem = 2

var flattenDetail = strings.NewReplacer("\n", " ", "\t", " ", ">>>", "", "<<<", "")

// listView draws the visible window of items, padded to height lines.
func (m model) listView(width, height int) string {
	if len(m.items) == 0 {
		return styles.empty.Width(width).Height(height).Render("No results")
	}

	out := make([]string, 0, height)
	for i := m.top; i < len(m.items) && len(out)+rowsPerItem <= height; i++ {
		out = append(out, formatItem(m.items[i], width, i == m.cursor)...)
	}
	blank := strings.Repeat(" ", width)
	for len(out) < height {
		out = append(out, blank)
	}
	return strings.Join(out, "\n")
}

// formatItem draws an item as a title row and a dimmed detail row.
func formatItem(it item, width int, selected bool) []string {
	marker := "  "
	if selected {
		marker = styles.cursor.Render("> ")
	}

	head := ""
	room := width - 2
	if it.tag != "" {
		head = styles.tag.Render(it.tag) + " "
		room -= runewidth.StringWidth(it.tag) + 1
	}
	title := runewidth.Truncate(strings.ReplaceAll(it.title, "\n", " "), max(room, 0), "")

	detail := runewidth.Truncate(flattenDetail.Replace(it.detail), max(width-4, 0), "")

	return []string{
		marker + head + title,
		"    " + styles.detail.Render(detail),
	}
}

// visibleItems is how many items fit in a panel of the given height.
func visibleItems(height int) int {
	return max(height/rowsPerItem, 1)
}

// follow scrolls the list so the cursor stays on screen.
func (m *model) follow(height int) {
	n := visibleItems(height)
	switch {
	case m.cursor < m.top:
		m.top = m.cursor
	case m.cursor >= m.top+n:
		m.top = m.cursor - n + 1
	}
}
