// Package layout decides which container shape a node becomes and how a
// container arranges its children.
package layout

import (
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/constraint"
	"github.com/vk/jsonuigo/internal/node"
)

// Kind is the container shape of a node.
type Kind int

const (
	Box Kind = iota
	Column
	Row
	ConstraintScope
)

func (k Kind) String() string {
	switch k {
	case Column:
		return "Column"
	case Row:
		return "Row"
	case ConstraintScope:
		return "ConstraintLayout"
	}
	return "Box"
}

// Linear reports whether children are stacked along one axis.
func (k Kind) Linear() bool {
	return k == Column || k == Row
}

// Classify returns the container shape of n. Relative positioning on any
// direct child wins over the node's own orientation.
func Classify(n *node.Node) Kind {
	for _, c := range n.Children {
		if constraint.HasSiblingPositioning(c) {
			return ConstraintScope
		}
	}
	switch attr.Of(n).StringOr("orientation", "") {
	case "vertical":
		return Column
	case "horizontal":
		return Row
	}
	return Box
}

// Reversed reports whether the children of a linear container render in
// reverse order.
func Reversed(n *node.Node, k Kind) bool {
	dir := attr.Of(n).StringOr("direction", "")
	switch k {
	case Column:
		return dir == "bottomToTop"
	case Row:
		return dir == "rightToLeft"
	}
	return false
}

// Ordered returns the children in render order.
func Ordered(n *node.Node, k Kind) []*node.Node {
	if !Reversed(n, k) {
		return n.Children
	}
	out := make([]*node.Node, len(n.Children))
	for i, c := range n.Children {
		out[len(out)-1-i] = c
	}
	return out
}
