// Package task defines the checklist item model and the line-level parsing
// that turns one raw input line into an item.
package task

import "fmt"

// Status is the closed set of checklist states.
type Status int

const (
	StatusDone Status = iota
	StatusPending
	StatusDoing
	StatusNew
)

// AllStatuses returns every status in matching order.
func AllStatuses() []Status {
	return []Status{StatusDone, StatusPending, StatusDoing, StatusNew}
}

// Marker returns the single character used inside the "- [c]" input marker.
func (s Status) Marker() byte {
	switch s {
	case StatusDone:
		return 'x'
	case StatusPending:
		return '-'
	case StatusDoing:
		return '>'
	case StatusNew:
		return ' '
	default:
		panic(fmt.Sprintf("task: unknown status %d", int(s)))
	}
}

// Glyph returns the decorative symbol used in formatted output.
func (s Status) Glyph() string {
	switch s {
	case StatusDone:
		return "✅"
	case StatusPending:
		return "🛑"
	case StatusDoing:
		return "🚧"
	case StatusNew:
		return "📦"
	default:
		panic(fmt.Sprintf("task: unknown status %d", int(s)))
	}
}

// String returns the lowercase status name used in JSON output and logs.
func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusPending:
		return "pending"
	case StatusDoing:
		return "doing"
	case StatusNew:
		return "new"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range AllStatuses() {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(text))
}

// Item is a single checklist entry.
type Item struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
}
