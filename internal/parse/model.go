package parse

import "time"

// RawEntry is one chunk of transcript text as split on the entry delimiter.
type RawEntry struct {
	Index int    // position among all chunks, 0 = preamble
	Line  int    // 1-based line where the chunk starts in the source
	Text  string // chunk text without the leading delimiter
}

// Entry is a partially parsed message: timestamp, sender and body only.
type Entry struct {
	Index     int
	Line      int
	Timestamp time.Time
	Sender    string
	Body      string
}

// Stats accounts for every chunk of a transcript.
type Stats struct {
	Chunks  int // delimiter-separated chunks, preamble included
	Parsed  int
	Dropped int // boundary chunks removed by rule (preamble, trailing trim)
	Skipped int // malformed chunks skipped under the lenient policy
}

// Result is the outcome of Parse: entries in file order plus skipped chunks.
type Result struct {
	Entries []Entry
	Skipped []*EntryError
	Stats   Stats
}
