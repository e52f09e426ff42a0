// Package renderop is the intermediate render form shared by every sink.
// A tree of Ops is independent of any data context: bindings are kept in
// their raw form and resolved (or emitted as templates) by the sink.
package renderop

import (
	"github.com/vk/jsonuigo/internal/constraint"
	"github.com/vk/jsonuigo/internal/grid"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/value"
)

// ArgType tells a sink how to read an argument value.
type ArgType int

const (
	// ArgText is a string that may carry a binding.
	ArgText ArgType = iota
	ArgNumber
	// ArgDp and ArgSp are lengths in density and scale independent pixels.
	ArgDp
	ArgSp
	// ArgColor holds a normalized #AARRGGBB string or a binding.
	ArgColor
	ArgBool
	// ArgEnum is a target neutral keyword such as "center" or "bold".
	ArgEnum
	// ArgList is an array of texts.
	ArgList
	// ArgState is a two-way bound value; the sink writes user input back to
	// the binding path.
	ArgState
)

// Arg is one named component argument.
type Arg struct {
	Name  string
	Type  ArgType
	Value value.Value
}

// Event binds a component event to a handler name.
type Event struct {
	// Name is the attribute that declared the event, e.g. "onclick".
	Name    string
	Handler string
}

// Container is set on ops that lay out children.
type Container struct {
	Layout      layout.Kind
	Arrangement layout.Arrangement
	Reversed    bool
	// Scope is set for constraint layouts.
	Scope *constraint.Scope
}

// Section is one section of a grid with its cell template.
type Section struct {
	grid.Section
	Span int
	// Template is the rendered cell layout, nil when the cell is unknown.
	Template *Op
	Header   *Op
	Footer   *Op
}

// Grid is set on collection ops.
type Grid struct {
	Config   grid.Config
	Plan     grid.Plan
	Sections []Section
}

// Op is one rendered node.
type Op struct {
	Kind Kind
	// Component is the declared type string.
	Component string
	// Anchor is the id (or synthesized anchor) of the node within its scope.
	Anchor    string
	Args      []Arg
	Events    []Event
	Modifiers []modifier.Modifier
	// Constraints position the op inside its parent's constraint scope.
	Constraints []constraint.Constraint
	Container   *Container
	Grid        *Grid
	// Visibility is the raw `visibility` value, Hidden the raw `hidden`.
	Visibility value.Value
	Hidden     value.Value
	Children   []Op
	// Imports are the imports this op needs on its own.
	Imports Imports
	// Err marks an error placeholder standing in for a subtree that could not
	// be rendered.
	Err error
}

// Arg returns the argument named name.
func (o *Op) Arg(name string) (value.Value, bool) {
	for _, a := range o.Args {
		if a.Name == name {
			return a.Value, true
		}
	}
	return value.Value{}, false
}

// HasArg reports whether the argument named name is present.
func (o *Op) HasArg(name string) bool {
	_, ok := o.Arg(name)
	return ok
}

// Add appends an argument.
func (o *Op) Add(name string, typ ArgType, v value.Value) {
	o.Args = append(o.Args, Arg{Name: name, Type: typ, Value: v})
}

// Need adds imports to the op's own set.
func (o *Op) Need(imports ...Import) {
	o.Imports = o.Imports.With(imports...)
}

// IsPlaceholder reports whether the op stands in for an unknown or broken
// node.
func (o *Op) IsPlaceholder() bool {
	return o.Kind == KindUnknown || o.Err != nil
}

// Walk visits o and its descendants depth first. Grid templates are not
// visited.
func (o *Op) Walk(fn func(*Op)) {
	fn(o)
	for i := range o.Children {
		o.Children[i].Walk(fn)
	}
}

// AllImports folds the imports of o, its children and its grid templates.
func (o *Op) AllImports() Imports {
	out := o.Imports
	for i := range o.Children {
		out = out.Merge(o.Children[i].AllImports())
	}
	if o.Grid != nil {
		for _, s := range o.Grid.Sections {
			for _, t := range []*Op{s.Template, s.Header, s.Footer} {
				if t != nil {
					out = out.Merge(t.AllImports())
				}
			}
		}
	}
	return out
}
