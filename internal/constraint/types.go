// Package constraint resolves relative positioning attributes of the
// children of one container into directional links between anchors.
package constraint

import (
	"fmt"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/value"
)

// Edge is an anchor line of a child.
type Edge int

const (
	Top Edge = iota
	Bottom
	Start
	End
	CenterX
	CenterY
)

func (e Edge) String() string {
	switch e {
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Start:
		return "start"
	case End:
		return "end"
	case CenterX:
		return "centerX"
	case CenterY:
		return "centerY"
	}
	return fmt.Sprintf("edge(%d)", int(e))
}

// Axis groups edges that constrain the same dimension.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Axis returns the axis e belongs to.
func (e Edge) Axis() Axis {
	switch e {
	case Start, End, CenterX:
		return Horizontal
	}
	return Vertical
}

// ParentRef is the reserved target name for the scope's container.
const ParentRef = "parent"

// Target is either the parent container or a sibling anchor.
type Target struct {
	Parent bool
	Ref    string
}

// Parent is the container target.
var Parent = Target{Parent: true}

// Sibling returns a target naming a sibling anchor.
func Sibling(ref string) Target { return Target{Ref: ref} }

func (t Target) String() string {
	if t.Parent {
		return ParentRef
	}
	return t.Ref
}

// Constraint links one edge of Subject to an edge of Target. Margin is signed.
type Constraint struct {
	Subject    string
	Edge       Edge
	Target     Target
	TargetEdge Edge
	Margin     float64
	// Attribute names the layout attribute that produced the link.
	Attribute string
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s (%s)", c.Subject, c.Edge, c.Target, c.TargetEdge, value.FormatNumber(c.Margin))
}

func (c Constraint) sameLink(o Constraint) bool {
	return c.Subject == o.Subject && c.Edge == o.Edge && c.Target == o.Target &&
		c.TargetEdge == o.TargetEdge && c.Margin == o.Margin
}

// Anchor identifies a child within its scope.
type Anchor struct {
	Ref string
	// Index is the child position within the container.
	Index int
	// Declared is false when Ref was synthesized as view_<index>.
	Declared bool
}

// Child is the resolved positioning of one child.
type Child struct {
	Anchor      Anchor
	Constraints []Constraint
	Width       attr.Dimension
	Height      attr.Dimension
}

// Scope is the resolved constraint set of one container.
type Scope struct {
	Children []Child
	// Order lists anchors so that every anchor comes after the siblings it
	// is positioned against.
	Order []string
	index map[string]int
}

// Child returns the resolved entry for ref.
func (s *Scope) Child(ref string) (*Child, bool) {
	i, ok := s.index[ref]
	if !ok {
		return nil, false
	}
	return &s.Children[i], true
}

// Refs returns the anchor refs in child order.
func (s *Scope) Refs() []string {
	refs := make([]string, len(s.Children))
	for i, c := range s.Children {
		refs[i] = c.Anchor.Ref
	}
	return refs
}
