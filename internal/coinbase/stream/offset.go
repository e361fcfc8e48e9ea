package stream

import (
	"fmt"
	"regexp"
	"strings"
)

// Offset names where a Reader starts.
type Offset string

const (
	// OffsetFirst replays the stream from its oldest entry.
	OffsetFirst Offset = "first"
	// OffsetNext delivers only entries appended after the reader starts.
	OffsetNext Offset = "next"
)

var entryID = regexp.MustCompile(`^\d+(-\d+)?$`)

// ParseOffset accepts "first", "next" or an explicit entry id such as "1700000000000-0".
// Reading from an explicit id delivers the entries after it.
func ParseOffset(s string) (Offset, error) {
	switch v := Offset(strings.ToLower(strings.TrimSpace(s))); v {
	case OffsetFirst, OffsetNext:
		return v, nil
	}
	if entryID.MatchString(s) {
		return Offset(s), nil
	}
	return "", fmt.Errorf("invalid stream offset %q", s)
}
