package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/analytics"
	"github.com/Zuo-Peng/chatstats/internal/index"
	"github.com/Zuo-Peng/chatstats/internal/search"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const debounceDelay = 200 * time.Millisecond

// chrome is the number of rows outside the panel content:
// header (1) + footer (1) + panel borders (2) + spare (2).
const chrome = 6

type itemsMsg struct {
	query string
	items []item
	err   error
}

type settledMsg struct {
	query string
}

type model struct {
	heading string
	source  source
	keys    keyMap
	help    help.Model
	input   textinput.Model
	preview viewport.Model

	query  string
	items  []item
	cursor int
	top    int    // first visible item
	shown  string // id of the item in the preview

	width, height int
	ready         bool
	done          bool
	chosen        *item
}

func newModel(heading, placeholder, chooseHelp, query string, src source) model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "> "
	in.PromptStyle = styles.prompt
	in.TextStyle = styles.prompt
	in.CharLimit = 256
	in.SetValue(query)
	in.Focus()

	return model{
		heading: heading,
		source:  src,
		keys:    newKeyMap(chooseHelp),
		help:    help.New(),
		input:   in,
		preview: viewport.New(0, 0),
		query:   query,
	}
}

// RunReport browses the tables of r. Enter copies the selected table as TSV.
func RunReport(r *analytics.Report, out io.Writer) error {
	heading := fmt.Sprintf("%s & %s, %d messages", r.FirstUser, r.SecondUser, r.Messages)
	return run(newModel(heading, "filter tables", "copy TSV", "", reportSource(r)), out)
}

// RunSearch searches the archive interactively. Enter copies the command
// that opens the selected hit in an editor.
func RunSearch(db *index.DB, query string, opts search.Options, out io.Writer) error {
	return run(newModel("chatstats search", "search messages", "copy open cmd", query, searchSource(db, opts)), out)
}

func run(m model, out io.Writer) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	chosen := final.(model).chosen
	if chosen == nil {
		return nil
	}
	if err := clipboard.WriteAll(chosen.copy); err != nil {
		// no clipboard (ssh, headless): print instead
		_, err = io.WriteString(out, strings.TrimRight(chosen.copy, "\n")+"\n")
		return err
	}
	_, err = fmt.Fprintf(out, "Copied to clipboard: %s\n", chosen.title)
	return err
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch(m.query))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)
	case tea.KeyMsg:
		return m.onKey(msg)
	case tea.MouseMsg:
		return m.onMouse(msg)
	case settledMsg:
		if msg.query != m.query {
			return m, nil // typing continued
		}
		return m, m.fetch(msg.query)
	case itemsMsg:
		return m.onItems(msg)
	case previewMsg:
		if msg.id == m.shown || msg.id != m.currentID() {
			return m, nil
		}
		m.showPreview(msg)
		return m, nil
	}
	return m, nil
}

func (m model) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.ready = true
	m.help.Width = msg.Width
	m.preview = viewport.New(m.previewWidth(), m.panelHeight())
	m.preview.Style = styles.frame
	m.shown = ""
	return m, m.refreshPreview()
}

func (m model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	half := max(m.panelHeight()/2, 1)
	switch {
	case key.Matches(msg, m.keys.Exit):
		m.done = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Choose):
		if it, ok := m.current(); ok {
			m.chosen = &it
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		return m.moveTo(m.cursor - 1)
	case key.Matches(msg, m.keys.Next):
		return m.moveTo(m.cursor + 1)
	case key.Matches(msg, m.keys.HalfUp):
		m.preview.ScrollUp(half)
		return m, nil
	case key.Matches(msg, m.keys.HalfDown):
		m.preview.ScrollDown(half)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.preview.ScrollUp(m.panelHeight())
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.preview.ScrollDown(m.panelHeight())
		return m, nil
	case key.Matches(msg, m.keys.ToggleAll):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		cmd = tea.Batch(cmd, settle(q))
	}
	return m, cmd
}

func (m model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || len(m.items) == 0 {
		return m, nil
	}
	where, idx := m.hitTest(msg.X, msg.Y)
	wheelUp := msg.Button == tea.MouseButtonWheelUp
	wheelDown := msg.Button == tea.MouseButtonWheelDown

	switch where {
	case regionList:
		switch {
		case wheelUp:
			m.top = max(m.top-1, 0)
		case wheelDown:
			m.top = min(m.top+1, max(len(m.items)-visibleItems(m.panelHeight()), 0))
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			if idx < len(m.items) {
				return m.moveTo(idx)
			}
		}
	case regionPreview:
		if wheelUp || wheelDown {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m model) onItems(msg itemsMsg) (tea.Model, tea.Cmd) {
	if msg.query != m.query {
		return m, nil // answer to an older query
	}
	m.items, m.cursor, m.top, m.shown = msg.items, 0, 0, ""
	switch {
	case msg.err != nil:
		m.items = nil
		m.preview.SetContent("Error: " + msg.err.Error())
		return m, nil
	case len(m.items) == 0:
		m.preview.SetContent("")
		return m, nil
	}
	return m, m.refreshPreview()
}

// moveTo selects item i if it exists and loads its preview.
func (m model) moveTo(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.items) || i == m.cursor {
		return m, nil
	}
	m.cursor = i
	m.follow(m.panelHeight())
	return m, m.refreshPreview()
}

func (m model) current() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item{}, false
	}
	return m.items[m.cursor], true
}

func (m model) currentID() string {
	it, _ := m.current()
	return it.id
}

func (m model) refreshPreview() tea.Cmd {
	it, ok := m.current()
	if !ok || it.id == m.shown {
		return nil
	}
	return renderPreview(it, m.previewWidth())
}

func (m model) fetch(query string) tea.Cmd {
	src := m.source
	return func() tea.Msg {
		items, err := src(query)
		return itemsMsg{query: query, items: items, err: err}
	}
}

// settle fires once typing has paused for debounceDelay.
func settle(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return settledMsg{query: query}
	})
}

func (m model) View() string {
	if m.done || !m.ready {
		return ""
	}
	listW, previewW, h := m.listWidth(), m.previewWidth(), m.panelHeight()

	header := styles.heading.Render(m.heading) + " " + m.input.View()

	left := styles.frame.Width(listW).Height(h).Render(m.listView(listW, h))
	m.preview.Width, m.preview.Height = previewW, h
	right := styles.focused.Width(previewW).Height(h).Render(m.preview.View())

	footer := styles.footer.Render(fmt.Sprintf("%d items  ", len(m.items)) + m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		footer,
	)
}

// The list takes 40% of the width, the preview the rest, minus borders.

func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	return max(m.width*2/5-4, 20)
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(m.width*3/5-4, 20)
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-chrome, 5)
}

type area int

const (
	regionNone area = iota
	regionList
	regionPreview
)

// hitTest maps a terminal cell to a panel and, in the list, an item index.
func (m model) hitTest(x, y int) (area, int) {
	const firstRow = 2 // header + top border
	if y < firstRow || y >= firstRow+m.panelHeight() {
		return regionNone, -1
	}
	lw := m.listWidth()
	switch {
	case x >= 1 && x <= lw:
		return regionList, m.top + (y-firstRow)/rowsPerItem
	case x > lw+2:
		return regionPreview, -1
	}
	return regionNone, -1
}
