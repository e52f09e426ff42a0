// Package modifier builds the ordered chain of visual transforms applied to
// one node. Each transform composes against the box produced by the ones
// before it, so the chain order is part of the rendered result.
package modifier

import (
	"fmt"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/layout"
)

// Op identifies a modifier step. Values are in composition order.
type Op int

const (
	OpSize Op = iota
	OpMargin
	OpClip
	OpBackground
	OpBorder
	OpShadow
	OpPadding
	OpWeight
	OpAlignment
	OpOpacity
)

var opNames = [...]string{"size", "margin", "clip", "background", "border", "shadow", "padding", "weight", "alignment", "opacity"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Modifier is one step of the chain. The concrete types below are the only
// implementations.
type Modifier interface {
	Op() Op
}

// Size sets the node's dimensions. Zero bounds and ratio mean unset.
type Size struct {
	Width, Height        attr.Dimension
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
	AspectRatio          float64
}

// Margin is outer spacing, applied before decoration.
type Margin struct{ attr.Insets }

// Clip rounds the box corners.
type Clip struct{ Radius float64 }

// GradientDirection is the axis of a gradient background.
type GradientDirection string

const (
	GradientVertical   GradientDirection = "vertical"
	GradientHorizontal GradientDirection = "horizontal"
	GradientLinear     GradientDirection = "linear"
)

// Background fills the box with a color or a gradient.
type Background struct {
	Color     attr.Color
	Gradient  []attr.Color
	Direction GradientDirection
}

// BorderStyle is the stroke pattern of a border.
type BorderStyle string

const (
	BorderSolid  BorderStyle = "solid"
	BorderDashed BorderStyle = "dashed"
	BorderDotted BorderStyle = "dotted"
)

// Border strokes the box outline. Radius follows the clip shape.
type Border struct {
	Width  float64
	Color  attr.Color
	Style  BorderStyle
	Radius float64
}

// Shadow is an elevation shadow following the clip shape.
type Shadow struct {
	Elevation float64
	Radius    float64
}

// Padding is inner spacing inside the decorated box.
type Padding struct{ attr.Insets }

// Weight shares the free space of a linear parent.
type Weight struct{ Value float64 }

// Alignment places the node inside a free-form parent.
type Alignment struct{ Align layout.Alignment }

// Opacity is the final alpha filter. Expr is set for a bound opacity.
type Opacity struct {
	Alpha float64
	Expr  string
}

func (Size) Op() Op       { return OpSize }
func (Margin) Op() Op     { return OpMargin }
func (Clip) Op() Op       { return OpClip }
func (Background) Op() Op { return OpBackground }
func (Border) Op() Op     { return OpBorder }
func (Shadow) Op() Op     { return OpShadow }
func (Padding) Op() Op    { return OpPadding }
func (Weight) Op() Op     { return OpWeight }
func (Alignment) Op() Op  { return OpAlignment }
func (Opacity) Op() Op    { return OpOpacity }

// ParentContext describes the container a node is placed in.
type ParentContext struct {
	Type layout.Kind
	// Linear is true inside a Column or a Row.
	Linear bool
	// Root is true for the top-level node, which has no parent container.
	Root bool
}

// Context returns the ParentContext for children of a container of kind k.
func Context(k layout.Kind) ParentContext {
	return ParentContext{Type: k, Linear: k.Linear()}
}

// Ops returns the operations of mods in order.
func Ops(mods []Modifier) []Op {
	out := make([]Op, len(mods))
	for i, m := range mods {
		out[i] = m.Op()
	}
	return out
}
