package derive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/parse"
)

var (
	ErrEmptyTranscript     = errors.New("transcript has no messages")
	ErrTooFewParticipants  = errors.New("fewer than two participants")
	ErrTooManyParticipants = errors.New("more than two participants")
)

// Pseudonyms replace real sender names when Options.Pseudonymize is set.
const (
	FirstPseudonym  = "user_1"
	SecondPseudonym = "user_2"
)

type Message struct {
	Seq          int // position in the conversation, 0-based
	Line         int // line in the source transcript
	Timestamp    time.Time
	Sender       string
	Body         string
	Date         time.Time // UTC midnight of Timestamp's calendar day
	Hour         int
	Weekday      int // 0 = Monday .. 6 = Sunday
	IsWeekend    bool
	WordCount    int
	IsFirstOfDay bool
}

// Conversation is the enriched, ordered message sequence plus the two
// resolved participants. It is not modified after Derive returns.
type Conversation struct {
	Messages   []Message
	FirstUser  string
	SecondUser string
}

func (c *Conversation) Participants() []string {
	return []string{c.FirstUser, c.SecondUser}
}

type Identities struct {
	First  string
	Second string
}

type Options struct {
	Pseudonymize bool
}

// ResolveIdentities picks the first sender in file order and the first
// different sender after it. A third distinct sender is an error.
func ResolveIdentities(entries []parse.Entry) (Identities, error) {
	if len(entries) == 0 {
		return Identities{}, ErrEmptyTranscript
	}

	ids := Identities{First: entries[0].Sender}
	for _, e := range entries[1:] {
		switch e.Sender {
		case ids.First, ids.Second:
			continue
		}
		if ids.Second == "" {
			ids.Second = e.Sender
			continue
		}
		return Identities{}, fmt.Errorf("%w: %q at line %d (already have %q and %q)",
			ErrTooManyParticipants, e.Sender, e.Line, ids.First, ids.Second)
	}
	if ids.Second == "" {
		return Identities{}, fmt.Errorf("%w: only %q", ErrTooFewParticipants, ids.First)
	}
	return ids, nil
}

// Derive resolves identities, then builds the enriched messages in a
// second pass.
func Derive(entries []parse.Entry, opts Options) (*Conversation, error) {
	ids, err := ResolveIdentities(entries)
	if err != nil {
		return nil, err
	}

	rename := func(s string) string { return s }
	conv := &Conversation{FirstUser: ids.First, SecondUser: ids.Second}
	if opts.Pseudonymize {
		names := map[string]string{ids.First: FirstPseudonym, ids.Second: SecondPseudonym}
		rename = func(s string) string { return names[s] }
		conv.FirstUser, conv.SecondUser = FirstPseudonym, SecondPseudonym
	}

	seen := make(map[time.Time]bool)
	conv.Messages = make([]Message, 0, len(entries))
	for i, e := range entries {
		m := Message{
			Seq:       i,
			Line:      e.Line,
			Timestamp: e.Timestamp,
			Sender:    rename(e.Sender),
			Body:      e.Body,
			Date:      DateOf(e.Timestamp),
			Hour:      e.Timestamp.Hour(),
			Weekday:   Weekday(e.Timestamp),
			WordCount: len(strings.Fields(e.Body)),
		}
		m.IsWeekend = m.Weekday > 4
		if !seen[m.Date] {
			seen[m.Date] = true
			m.IsFirstOfDay = true
		}
		conv.Messages = append(conv.Messages, m)
	}
	return conv, nil
}

// DateOf truncates t to its calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Weekday numbers days from Monday = 0.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
