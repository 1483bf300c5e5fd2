package analytics

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Zuo-Peng/chatstats/internal/derive"
	"github.com/Zuo-Peng/chatstats/internal/lang"
)

type Options struct {
	Language    lang.Language
	TopWords    int
	StreakLimit int
}

// Report holds every aggregate computed for one conversation.
type Report struct {
	FirstUser        string          `json:"first_user"`
	SecondUser       string          `json:"second_user"`
	Language         string          `json:"language"`
	Messages         int             `json:"messages"`
	MessagesBySender []SenderCount   `json:"messages_by_sender"`
	Weekday          []Bucket        `json:"weekday"`
	Dates            []Bucket        `json:"dates"`
	HourWeekday      []Bucket        `json:"hour_weekday"`
	HourWeekend      []Bucket        `json:"hour_weekend"`
	FirstMessages    []SenderCount   `json:"first_messages"`
	ResponseTimes    []ResponseTime  `json:"response_times"`
	SilenceStreaks   []Streak        `json:"silence_streaks"`
	DeletedMessages  []SenderCount   `json:"deleted_messages"`
	MissedCalls      []SenderCount   `json:"missed_calls"`
	TopWords         []WordFrequency `json:"top_words"`
}

func Build(c *derive.Conversation, opts Options) (*Report, error) {
	if opts.Language == nil {
		return nil, errors.New("analytics: no language configured")
	}
	if opts.TopWords <= 0 {
		opts.TopWords = DefaultTopWords
	}
	if opts.StreakLimit == 0 {
		opts.StreakLimit = DefaultStreakLimit
	}

	return &Report{
		FirstUser:        c.FirstUser,
		SecondUser:       c.SecondUser,
		Language:         opts.Language.Name(),
		Messages:         len(c.Messages),
		MessagesBySender: MessageCounts(c),
		Weekday:          WeekdayHistogram(c),
		Dates:            DateHistogram(c),
		HourWeekday:      HourHistogram(c, false),
		HourWeekend:      HourHistogram(c, true),
		FirstMessages:    FirstMessageCounts(c),
		ResponseTimes:    ResponseTimes(c),
		SilenceStreaks:   SilenceStreaks(c, opts.StreakLimit),
		DeletedMessages:  DeletedMessages(c),
		MissedCalls:      MissedCalls(c),
		TopWords:         TopWords(c, opts.Language, opts.TopWords),
	}, nil
}

// Table is a named, pre-formatted result table for the presentation layer.
type Table struct {
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

func (r *Report) Tables() []Table {
	tables := []Table{
		senderTable("messages_by_sender", "Total number of messages sent", r.MessagesBySender),
		bucketTable("weekday", "Messages per weekday", "weekday", r.Weekday),
		bucketTable("date", "Messages per day", "date", r.Dates),
		bucketTable("hour_weekday", "Messages per hour on weekdays", "hour", r.HourWeekday),
		bucketTable("hour_weekend", "Messages per hour on weekends", "hour", r.HourWeekend),
		senderTable("first_messages", "First message of the day", r.FirstMessages),
		r.responseTable(),
		r.streakTable(),
		senderTable("deleted_messages", "Deleted messages", r.DeletedMessages),
		senderTable("missed_calls", "Missed voice calls (exporting side only)", r.MissedCalls),
	}
	for _, wf := range r.TopWords {
		t := Table{
			Name:    "top_words_" + wf.Sender,
			Title:   fmt.Sprintf("Most common words used by %s", wf.Sender),
			Columns: []string{"word", "count"},
		}
		for _, w := range wf.Words {
			t.Rows = append(t.Rows, []string{w.Word, strconv.Itoa(w.Count)})
		}
		tables = append(tables, t)
	}
	return tables
}

// Table returns the table with the given name.
func (r *Report) Table(name string) (Table, bool) {
	for _, t := range r.Tables() {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

func senderTable(name, title string, counts []SenderCount) Table {
	t := Table{Name: name, Title: title, Columns: []string{"sender", "count"}}
	for _, c := range counts {
		t.Rows = append(t.Rows, []string{c.Sender, strconv.Itoa(c.Count)})
	}
	return t
}

func bucketTable(name, title, label string, buckets []Bucket) Table {
	t := Table{Name: name, Title: title, Columns: []string{label, "count"}}
	for _, b := range buckets {
		t.Rows = append(t.Rows, []string{b.Label, strconv.Itoa(b.Count)})
	}
	return t
}

func (r *Report) responseTable() Table {
	t := Table{
		Name:    "response_time",
		Title:   "Average response time (minutes)",
		Columns: []string{"sender", "minutes", "replies"},
	}
	for _, rt := range r.ResponseTimes {
		minutes := "n/a"
		if rt.Defined() {
			minutes = strconv.FormatFloat(rt.Minutes, 'f', 2, 64)
		}
		t.Rows = append(t.Rows, []string{rt.Sender, minutes, strconv.Itoa(rt.Samples)})
	}
	return t
}

func (r *Report) streakTable() Table {
	t := Table{
		Name:    "silence_streaks",
		Title:   "Longest streaks of days without talking",
		Columns: []string{"end_date", "length", "from", "to"},
	}
	for _, s := range r.SilenceStreaks {
		t.Rows = append(t.Rows, []string{
			s.End().Format(dateLayout),
			strconv.Itoa(s.Length),
			s.First.Format(dateLayout),
			s.Last.Format(dateLayout),
		})
	}
	return t
}
