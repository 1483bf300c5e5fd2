package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/analytics"
	"github.com/Zuo-Peng/chatstats/internal/index"
	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/Zuo-Peng/chatstats/internal/search"
)

// item is one selectable row of the left panel.
type item struct {
	id     string // preview cache key
	tag    string
	title  string
	detail string
	render func(width int) (string, int, error)
	copy   string // placed on the clipboard on enter
}

// source produces the items matching a filter or query.
type source func(query string) ([]item, error)

// reportSource lists the report tables whose name or title contains query.
func reportSource(r *analytics.Report) source {
	tables := r.Tables()
	return func(query string) ([]item, error) {
		q := strings.ToLower(strings.TrimSpace(query))
		var items []item
		for _, t := range tables {
			if q != "" && !strings.Contains(strings.ToLower(t.Name), q) &&
				!strings.Contains(strings.ToLower(t.Title), q) {
				continue
			}
			items = append(items, tableItem(t))
		}
		return items, nil
	}
}

func tableItem(t analytics.Table) item {
	var tsv bytes.Buffer
	_ = render.TSV(&tsv, t)
	return item{
		id:     "table:" + t.Name,
		tag:    fmt.Sprintf("%4d", len(t.Rows)),
		title:  t.Title,
		detail: t.Name,
		render: func(int) (string, int, error) {
			return render.Text(t, true), -1, nil
		},
		copy: tsv.String(),
	}
}

// searchSource runs a full-text search over the archive.
func searchSource(db *index.DB, opts search.Options) source {
	return func(query string) ([]item, error) {
		if strings.TrimSpace(query) == "" {
			return nil, nil
		}
		o := opts
		o.Query = query
		results, err := search.Search(db, o)
		if err != nil {
			return nil, err
		}
		items := make([]item, len(results))
		for i, r := range results {
			items[i] = hitItem(db, r, query)
		}
		return items, nil
	}
}

func hitItem(db *index.DB, r search.Result, query string) item {
	date := r.Ts
	if len(date) >= 10 {
		date = date[:10]
	}
	return item{
		id:     fmt.Sprintf("%s:%d", r.TranscriptKey, r.Seq),
		tag:    date,
		title:  r.TranscriptKey + " " + r.Sender,
		detail: r.Snippet,
		render: func(width int) (string, int, error) {
			return render.RenderConversation(db, r.TranscriptKey, render.Options{
				HitSeq:  r.Seq,
				Context: -1,
				Width:   width,
				Query:   query,
			})
		},
		copy: fmt.Sprintf("chatstats open %s --hit %d", r.TranscriptKey, r.Seq),
	}
}
