package tree

import (
	"errors"
	"fmt"
)

// ErrEmptyParentFrame is returned when a run of children appears before any
// node it could attach to, e.g. when the input starts deeper than depth 0.
var ErrEmptyParentFrame = errors.New("children have no parent")

// Assemble builds a forest from records in input order. A node's children are
// the maximal contiguous run of records directly after it that sit exactly
// one level deeper.
//
// A record that skips levels (depth more than one below the frame it follows)
// is never nested. Each frame it passes through stops collecting, and once it
// reaches the root it starts a new top-level run at its own depth. No record
// is dropped and depths are kept as given.
func Assemble(records []Record) (Forest, error) {
	c := &cursor{records: records}

	var forest Forest
	for !c.done() {
		// The first pass runs from depth 0. Later passes start at a record
		// stranded by a level skip, which becomes a root sibling.
		depth := c.peek().Depth
		if len(forest) == 0 && depth > 0 {
			return nil, c.emptyParent()
		}

		var err error
		forest, err = c.build(depth, forest)
		if err != nil {
			return nil, err
		}
	}

	return forest, nil
}

type cursor struct {
	records []Record
	pos     int
}

func (c *cursor) done() bool {
	return c.pos >= len(c.records)
}

func (c *cursor) peek() Record {
	return c.records[c.pos]
}

func (c *cursor) emptyParent() error {
	rec := c.records[c.pos]
	return fmt.Errorf("%w: record %d at depth %d follows no node at depth %d",
		ErrEmptyParentFrame, c.pos, rec.Depth, rec.Depth-1)
}

// build collects the sibling run at depth, appending to nodes, and returns it
// once the next record belongs to a shallower frame, skips a level, or the
// input runs out. The stopping record is left unconsumed.
func (c *cursor) build(depth int, nodes []Node) ([]Node, error) {
	frameStart := len(nodes)

	for !c.done() {
		rec := c.peek()

		switch rec.Depth {
		case depth:
			c.pos++
			nodes = append(nodes, NewLeaf(depth, rec.Item))

		case depth + 1:
			if len(nodes) == frameStart {
				return nil, c.emptyParent()
			}

			children, err := c.build(depth+1, nil)
			if err != nil {
				return nil, err
			}

			last := len(nodes) - 1
			nodes[last] = nodes[last].WithChildren(children)

		default:
			return nodes, nil
		}
	}

	return nodes, nil
}
