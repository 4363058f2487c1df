// Package render turns an assembled forest back into output lines.
package render

import (
	"strings"

	"github.com/hay-kot/tasktidy/internal/core/task"
	"github.com/hay-kot/tasktidy/internal/core/tree"
)

// IndentUnit is emitted once per nesting level.
const IndentUnit = "  "

// Options controls rendering.
type Options struct {
	// MaxDepth hides nodes nested deeper than the given depth. Nil renders
	// every node.
	MaxDepth *int

	// Styles decorates labels. Nil renders plain text.
	Styles *Styles
}

func (o Options) visible(n tree.Node) bool {
	return o.MaxDepth == nil || n.Depth <= *o.MaxDepth
}

// Lines renders the forest in pre-order, one line per node:
//
//	<indent>- <glyph> <label>
func Lines(forest tree.Forest, opts Options) []string {
	lines := make([]string, 0, len(forest))
	forest.Walk(func(n tree.Node) bool {
		if !opts.visible(n) {
			return false
		}
		lines = append(lines, Line(n.Depth, n.Item, opts.Styles))
		return true
	})
	return lines
}

// Line formats a single item at depth.
func Line(depth int, item task.Item, styles *Styles) string {
	label := item.Label
	if styles != nil {
		label = styles.Label(item.Status, label)
	}

	var b strings.Builder
	b.Grow(depth*len(IndentUnit) + len(label) + 8)
	for range depth {
		b.WriteString(IndentUnit)
	}
	b.WriteString("- ")
	b.WriteString(item.Status.Glyph())
	b.WriteByte(' ')
	b.WriteString(label)
	return b.String()
}

// Join joins lines with a newline and no trailing separator.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}
