package task

import (
	"errors"
	"fmt"
)

// IndentWidth is the number of leading whitespace characters per nesting level.
const IndentWidth = 2

// MarkerWidth is the byte length of a status marker such as "- [x]".
const MarkerWidth = 5

// ErrInvalidStatusMarker is returned by Decode when a line does not start
// with a recognized status marker.
var ErrInvalidStatusMarker = errors.New("invalid status marker")

// Decompose splits a raw line into its nesting depth and the text following
// the leading whitespace. The remainder is returned untouched.
func Decompose(raw string) (depth int, rest string) {
	n := 0
	for n < len(raw) && isSpace(raw[n]) {
		n++
	}

	if n == len(raw) {
		return 0, ""
	}

	return n / IndentWidth, raw[n:]
}

// Decode parses the marker-prefixed text of a line into an Item.
func Decode(text string) (Item, error) {
	if len(text) < MarkerWidth {
		return Item{}, fmt.Errorf("%w: %q", ErrInvalidStatusMarker, text)
	}

	prefix := text[:MarkerWidth]
	for _, status := range AllStatuses() {
		if prefix == "- ["+string(status.Marker())+"]" {
			return Item{Label: label(text[MarkerWidth:]), Status: status}, nil
		}
	}

	return Item{}, fmt.Errorf("%w: %q", ErrInvalidStatusMarker, prefix)
}

// label drops the single separating space that follows the marker.
func label(s string) string {
	if len(s) > 0 && s[0] == ' ' {
		return s[1:]
	}
	return s
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	default:
		return false
	}
}
