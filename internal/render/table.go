package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/analytics"
	"github.com/mattn/go-runewidth"
)

// Format selects how report tables are written.
type Format string

const (
	FormatText Format = "text"
	FormatTSV  Format = "tsv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatTSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, tsv or json)", s)
	}
}

// Report writes every table of r in format f.
func Report(w io.Writer, r *analytics.Report, f Format, color bool) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatTSV:
		for i, t := range r.Tables() {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "# %s\n", t.Title)
			if err := TSV(w, t); err != nil {
				return err
			}
		}
		return nil
	default:
		for i, t := range r.Tables() {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if _, err := io.WriteString(w, Text(t, color)); err != nil {
				return err
			}
		}
		return nil
	}
}

// Text renders t as a column-aligned table, measuring display width so
// wide runes in names and words line up.
func Text(t analytics.Table, color bool) string {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(cell))
			}
		}
	}

	var b strings.Builder
	if color {
		b.WriteString(colorBold + t.Title + colorReset + "\n")
	} else {
		b.WriteString(t.Title + "\n")
	}
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				b.WriteString("  ")
			}
			if i == len(cells)-1 {
				b.WriteString(cell)
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		b.WriteString("\n")
	}

	writeRow(t.Columns)
	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)
	if len(t.Rows) == 0 {
		b.WriteString("(none)\n")
	}
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}

// TSV writes t's header and rows tab-separated. Tabs and newlines inside
// cells are replaced by spaces.
func TSV(w io.Writer, t analytics.Table) error {
	if _, err := fmt.Fprintln(w, joinTSV(t.Columns)); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(w, joinTSV(row)); err != nil {
			return err
		}
	}
	return nil
}

var tsvReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func joinTSV(cells []string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = tsvReplacer.Replace(c)
	}
	return strings.Join(out, "\t")
}
