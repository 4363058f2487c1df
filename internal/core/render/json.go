package render

import (
	"github.com/hay-kot/tasktidy/internal/core/task"
	"github.com/hay-kot/tasktidy/internal/core/tree"
)

// Document is the JSON form of a rendered forest.
type Document struct {
	Nodes []Node `json:"nodes"`
}

// Node is the JSON form of a tree node.
type Node struct {
	Depth    int         `json:"depth"`
	Status   task.Status `json:"status"`
	Label    string      `json:"label"`
	Children []Node      `json:"children,omitempty"`
}

// JSON converts the forest into its JSON document, honoring MaxDepth.
// Styles are ignored.
func JSON(forest tree.Forest, opts Options) Document {
	return Document{Nodes: jsonNodes(forest, opts)}
}

func jsonNodes(nodes []tree.Node, opts Options) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if !opts.visible(n) {
			continue
		}
		out = append(out, Node{
			Depth:    n.Depth,
			Status:   n.Item.Status,
			Label:    n.Item.Label,
			Children: childNodes(n.Children, opts),
		})
	}
	return out
}

func childNodes(children []tree.Node, opts Options) []Node {
	if len(children) == 0 {
		return nil
	}
	out := jsonNodes(children, opts)
	if len(out) == 0 {
		return nil
	}
	return out
}
