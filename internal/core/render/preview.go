package render

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// DefaultPreviewStyle picks dark or light based on the terminal background.
const DefaultPreviewStyle = glamourstyles.AutoStyle

// PreviewStyles returns the sorted names accepted by Preview.
func PreviewStyles() []string {
	names := make([]string, 0, len(glamourstyles.DefaultStyles)+1)
	names = append(names, glamourstyles.AutoStyle)
	for name := range glamourstyles.DefaultStyles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPreviewStyle reports whether style is a known glamour style name.
func IsPreviewStyle(style string) bool {
	if style == glamourstyles.AutoStyle {
		return true
	}
	_, ok := glamourstyles.DefaultStyles[style]
	return ok
}

// Preview renders lines as terminal markdown.
func Preview(lines []string, style string, width int) (string, error) {
	if style == "" {
		style = DefaultPreviewStyle
	}

	// Enforce a minimum reasonable wrap width.
	width = max(width, 20)

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create preview renderer: %w", err)
	}

	out, err := r.Render(Join(lines))
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}

	return out, nil
}
