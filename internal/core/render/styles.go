package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/hay-kot/tasktidy/internal/core/task"
)

// Status label colors.
var (
	colorDone    = lipgloss.Color("#565f89")
	colorPending = lipgloss.Color("#f7768e")
	colorDoing   = lipgloss.Color("#e0af68")
	colorNew     = lipgloss.Color("#c0caf5")
)

// Styles holds one lipgloss style per status.
type Styles struct {
	byStatus map[task.Status]lipgloss.Style
}

// NewStyles builds status styles bound to w. When force is set, colors are
// emitted even if w is not a terminal.
func NewStyles(w io.Writer, force bool) *Styles {
	r := lipgloss.NewRenderer(w)
	if force {
		r.SetColorProfile(termenv.TrueColor)
	}

	return &Styles{
		byStatus: map[task.Status]lipgloss.Style{
			task.StatusDone:    r.NewStyle().Foreground(colorDone).Strikethrough(true),
			task.StatusPending: r.NewStyle().Foreground(colorPending),
			task.StatusDoing:   r.NewStyle().Foreground(colorDoing).Bold(true),
			task.StatusNew:     r.NewStyle().Foreground(colorNew),
		},
	}
}

// Label renders label in the style for status.
func (s *Styles) Label(status task.Status, label string) string {
	style, ok := s.byStatus[status]
	if !ok || label == "" {
		return label
	}
	return style.Render(label)
}
