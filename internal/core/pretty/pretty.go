// Package pretty wires the line parser, tree assembler and renderer into the
// single pass that reformats a checklist block.
package pretty

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hay-kot/tasktidy/internal/core/logging"
	"github.com/hay-kot/tasktidy/internal/core/render"
	"github.com/hay-kot/tasktidy/internal/core/task"
	"github.com/hay-kot/tasktidy/internal/core/tree"
)

// maxLineSize bounds a single input line.
const maxLineSize = 1024 * 1024

// Line is a non-blank input line with its 1-based position in the source.
type Line struct {
	Number int
	Text   string
}

// NewLines numbers texts sequentially starting at 1. Blank entries are
// dropped but still advance the numbering.
func NewLines(texts ...string) []Line {
	lines := make([]Line, 0, len(texts))
	for i, text := range texts {
		if isBlank(text) {
			continue
		}
		lines = append(lines, Line{Number: i + 1, Text: text})
	}
	return lines
}

// ReadLines reads r to the end and returns its non-blank lines.
func ReadLines(r io.Reader) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		lines  []Line
		number int
	)
	for scanner.Scan() {
		number++
		text := scanner.Text()
		if isBlank(text) {
			continue
		}
		lines = append(lines, Line{Number: number, Text: text})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return lines, nil
}

// Parse decomposes and decodes every line, then assembles the forest. The
// first malformed line aborts the whole input.
func Parse(ctx context.Context, lines []Line) (tree.Forest, error) {
	log := logging.Component("pretty")

	records := make([]tree.Record, 0, len(lines))
	for _, line := range lines {
		depth, rest := task.Decompose(line.Text)

		item, err := task.Decode(rest)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.Number, err)
		}

		records = append(records, tree.Record{Depth: depth, Item: item})
	}

	forest, err := tree.Assemble(records)
	if err != nil {
		return nil, fmt.Errorf("assemble: %w", err)
	}

	for _, root := range forest {
		if root.Depth > 0 {
			log.Warn().Ctx(ctx).
				Int("depth", root.Depth).
				Str("label", root.Item.Label).
				Msg("item skips a nesting level, kept at top level")
		}
	}

	log.Debug().Ctx(ctx).
		Int("lines", len(lines)).
		Int("roots", len(forest)).
		Msg("assembled forest")

	return forest, nil
}

// Format runs the full pass and returns the rendered lines.
func Format(ctx context.Context, lines []Line, opts render.Options) ([]string, error) {
	forest, err := Parse(ctx, lines)
	if err != nil {
		return nil, err
	}
	return render.Lines(forest, opts), nil
}

// Pretty formats raw text lines, skipping blank ones.
func Pretty(ctx context.Context, texts []string, opts render.Options) ([]string, error) {
	return Format(ctx, NewLines(texts...), opts)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
