package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/analytics"
	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/lang"
	"github.com/Zuo-Peng/chatstats/internal/parse"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(t *testing.T) *analytics.Report {
	t.Helper()
	at := func(d, h int) time.Time { return time.Date(2020, 1, d, h, 0, 0, 0, time.UTC) }
	conv, err := derive.Derive([]parse.Entry{
		{Timestamp: at(1, 9), Sender: "Alice", Body: "pizza tonight?"},
		{Timestamp: at(1, 10), Sender: "Bob", Body: "pizza sounds good"},
		{Timestamp: at(3, 9), Sender: "Alice", Body: "Missed voice call"},
	}, derive.Options{})
	require.NoError(t, err)
	en, err := lang.Default().Lookup("english")
	require.NoError(t, err)
	r, err := analytics.Build(conv, analytics.Options{Language: en})
	require.NoError(t, err)
	return r
}

func TestReportSource_Filters(t *testing.T) {
	src := reportSource(report(t))

	all, err := src("")
	require.NoError(t, err)
	assert.Len(t, all, len(report(t).Tables()))

	hours, err := src("HOUR")
	require.NoError(t, err)
	require.Len(t, hours, 2)
	assert.Equal(t, "table:hour_weekday", hours[0].id)
	assert.Equal(t, "table:hour_weekend", hours[1].id)

	none, err := src("nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTableItem_CopiesTSV(t *testing.T) {
	it := tableItem(analytics.Table{
		Name:    "missed_calls",
		Title:   "Missed voice calls",
		Columns: []string{"sender", "count"},
		Rows:    [][]string{{"Alice", "1"}, {"Bob", "0"}},
	})
	assert.Equal(t, "sender\tcount\nAlice\t1\nBob\t0\n", it.copy)

	content, hitLine, err := it.render(80)
	require.NoError(t, err)
	assert.Equal(t, -1, hitLine)
	assert.Contains(t, content, "Alice")
}

func TestFormatItem_Truncates(t *testing.T) {
	it := item{tag: "  12", title: strings.Repeat("x", 50), detail: "a >>>b<<< c"}
	lines := formatItem(it, 20, false)
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[1], ">>>")
	assert.Contains(t, lines[1], "a b c")
	assert.Contains(t, lines[0], strings.Repeat("x", 13))
	assert.NotContains(t, lines[0], strings.Repeat("x", 14))
}

func TestModel_NavigateAndChoose(t *testing.T) {
	m := newModel("t", "", "", "", reportSource(report(t)))

	next, cmd := m.Update(m.fetch("")())
	m = next.(model)
	require.NotEmpty(t, m.items)
	require.NotNil(t, cmd)

	next, _ = m.Update(cmd())
	m = next.(model)
	assert.Equal(t, m.items[0].id, m.shown)

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)
	assert.Equal(t, 1, m.cursor)
	require.NotNil(t, cmd)

	// a render for a row no longer under the cursor is ignored
	next, _ = m.Update(previewMsg{id: m.items[0].id + "x", content: "stale"})
	m = next.(model)
	assert.Equal(t, m.items[0].id, m.shown)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	require.NotNil(t, m.chosen)
	assert.Equal(t, m.items[1].id, m.chosen.id)
	assert.True(t, m.done)
}

func TestModel_StaleResultsDropped(t *testing.T) {
	m := newModel("t", "", "", "hour", reportSource(report(t)))
	next, _ := m.Update(itemsMsg{query: "old", items: []item{{id: "x"}}})
	m = next.(model)
	assert.Empty(t, m.items)
}

func TestHitTest(t *testing.T) {
	m := model{width: 100, height: 30, top: 2}
	region, idx := m.hitTest(5, 2)
	assert.Equal(t, regionList, region)
	assert.Equal(t, 2, idx)

	region, idx = m.hitTest(5, 5)
	assert.Equal(t, regionList, region)
	assert.Equal(t, 3, idx)

	region, _ = m.hitTest(80, 5)
	assert.Equal(t, regionPreview, region)

	region, _ = m.hitTest(5, 0)
	assert.Equal(t, regionNone, region)
}

func TestModel_HelpToggleAndTyping(t *testing.T) {
	m := newModel("t", "", "copy", "", reportSource(report(t)))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = next.(model)
	assert.True(t, m.help.ShowAll)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("w")})
	m = next.(model)
	assert.Equal(t, "w", m.query)
	assert.NotNil(t, cmd)

	// a settled tick for an older query does nothing
	_, cmd = m.Update(settledMsg{query: ""})
	assert.Nil(t, cmd)
}
