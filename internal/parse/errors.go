package parse

import (
	"errors"
	"fmt"
)

// ErrMalformedTimestamp is returned when a chunk's timestamp does not match
// the export format.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// EntryError locates a chunk that could not be parsed.
type EntryError struct {
	Index int
	Line  int
	Raw   string // offending timestamp text
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d (line %d): %v: %q", e.Index, e.Line, e.Err, e.Raw)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}
