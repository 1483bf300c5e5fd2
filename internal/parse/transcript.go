package parse

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"strings"
	"time"
)

// Delimiter marks the start of every entry in an export.
const Delimiter = '['

// TimestampLayout matches "MM/DD/YY, hh:mm:ss AM". Unpadded fields are accepted too.
const TimestampLayout = "1/2/06, 3:04:05 PM"

type Policy int

const (
	// Strict stops at the first malformed chunk.
	Strict Policy = iota
	// Lenient skips malformed chunks and reports them in Result.Skipped.
	Lenient
)

type Options struct {
	// TrimTrailing drops the final chunk unconditionally. Exports that end
	// with stray closing punctuation leave a malformed trailing chunk.
	TrimTrailing bool
	Policy       Policy
}

// Transcript is the raw export text. It is only ever read.
type Transcript struct {
	text string
	opts Options
}

// NewTranscript wraps export text for parsing.
func NewTranscript(text string, opts Options) *Transcript {
	return &Transcript{text: text, opts: opts}
}

// ReadFile loads an export from disk.
func ReadFile(path string, opts Options) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewTranscript(string(data), opts), nil
}

// Len returns the number of delimiter-separated chunks, preamble included.
func (t *Transcript) Len() int {
	return strings.Count(t.text, string(Delimiter)) + 1
}

// Chunks yields every chunk in file order, including the preamble before
// the first delimiter. Each call walks the text again.
func (t *Transcript) Chunks() iter.Seq[RawEntry] {
	return func(yield func(RawEntry) bool) {
		rest := t.text
		line := 1
		for i := 0; ; i++ {
			j := strings.IndexByte(rest, Delimiter)
			if j < 0 {
				yield(RawEntry{Index: i, Line: line, Text: rest})
				return
			}
			if !yield(RawEntry{Index: i, Line: line, Text: rest[:j]}) {
				return
			}
			line += strings.Count(rest[:j], "\n")
			rest = rest[j+1:]
		}
	}
}

// isBoundary reports whether a chunk is removed by rule rather than parsed.
func (t *Transcript) isBoundary(index, last int) bool {
	if index == 0 {
		return true
	}
	return t.opts.TrimTrailing && index == last
}

// Entries yields parsed entries lazily. Boundary chunks are not yielded;
// malformed chunks are yielded with a non-nil *EntryError.
func (t *Transcript) Entries() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		last := t.Len() - 1
		for raw := range t.Chunks() {
			if t.isBoundary(raw.Index, last) {
				continue
			}
			e, err := ParseEntry(raw)
			if !yield(e, err) {
				return
			}
		}
	}
}

// Parse consumes the transcript in one pass and applies the error policy.
func Parse(t *Transcript) (*Result, error) {
	res := &Result{}
	last := t.Len() - 1
	for raw := range t.Chunks() {
		res.Stats.Chunks++
		if t.isBoundary(raw.Index, last) {
			res.Stats.Dropped++
			continue
		}
		e, err := ParseEntry(raw)
		if err != nil {
			var ee *EntryError
			if t.opts.Policy == Lenient && errors.As(err, &ee) {
				res.Skipped = append(res.Skipped, ee)
				res.Stats.Skipped++
				continue
			}
			return nil, err
		}
		res.Entries = append(res.Entries, e)
		res.Stats.Parsed++
	}
	return res, nil
}

var bodyReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"\u200e", "",
	"\u200f", "",
)

// ParseEntry splits "<timestamp>] <sender>: <body>" into its parts.
// A chunk without ':' after the timestamp has an empty body.
func ParseEntry(raw RawEntry) (Entry, error) {
	stamp, rest, _ := strings.Cut(raw.Text, "]")
	ts, err := ParseTimestamp(stamp)
	if err != nil {
		return Entry{}, &EntryError{
			Index: raw.Index,
			Line:  raw.Line,
			Raw:   truncate(stamp, 40),
			Err:   ErrMalformedTimestamp,
		}
	}

	sender, body, _ := strings.Cut(rest, ":")
	return Entry{
		Index:     raw.Index,
		Line:      raw.Line,
		Timestamp: ts,
		Sender:    strings.TrimSpace(bodyReplacer.Replace(sender)),
		Body:      strings.TrimSpace(bodyReplacer.Replace(body)),
	}, nil
}

var stampReplacer = strings.NewReplacer(
	"\u202f", " ", // narrow no-break space before AM/PM in newer exports
	"\u00a0", " ",
	"\u200e", "",
)

// ParseTimestamp parses an entry timestamp, tolerating the special spaces
// newer exports put before AM/PM.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(stampReplacer.Replace(s))
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedTimestamp, s)
	}
	return t, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
