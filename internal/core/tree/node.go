// Package tree assembles decoded checklist lines into a nested forest based
// on their nesting depth.
package tree

import "github.com/hay-kot/tasktidy/internal/core/task"

// NodeKind discriminates leaves from branches.
type NodeKind int

const (
	KindLeaf NodeKind = iota
	KindBranch
)

func (k NodeKind) String() string {
	if k == KindBranch {
		return "branch"
	}
	return "leaf"
}

// Record is one decoded input line: an item and its nesting depth.
type Record struct {
	Depth int
	Item  task.Item
}

// Node is a tree node. Leaves never carry children; a branch always has at
// least one child, each exactly one level deeper than the branch.
type Node struct {
	Kind     NodeKind
	Depth    int
	Item     task.Item
	Children []Node
}

// Forest is the ordered list of top-level nodes produced by one assembly.
type Forest []Node

// NewLeaf returns a childless node.
func NewLeaf(depth int, item task.Item) Node {
	return Node{Kind: KindLeaf, Depth: depth, Item: item}
}

// IsBranch reports whether n has children.
func (n Node) IsBranch() bool {
	return n.Kind == KindBranch
}

// WithChildren returns a branch holding n's item followed by its existing
// children and then children, in order. n itself is not modified.
func (n Node) WithChildren(children []Node) Node {
	if len(children) == 0 {
		return n
	}

	merged := make([]Node, 0, len(n.Children)+len(children))
	merged = append(merged, n.Children...)
	merged = append(merged, children...)

	return Node{
		Kind:     KindBranch,
		Depth:    n.Depth,
		Item:     n.Item,
		Children: merged,
	}
}

// Walk visits every node of the forest in pre-order. Returning false from fn
// skips the node's descendants.
func (f Forest) Walk(fn func(Node) bool) {
	for _, n := range f {
		walk(n, fn)
	}
}

func walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		walk(child, fn)
	}
}

// Len returns the total number of nodes in the forest.
func (f Forest) Len() int {
	count := 0
	f.Walk(func(Node) bool {
		count++
		return true
	})
	return count
}
