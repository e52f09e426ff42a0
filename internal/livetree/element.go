// Package livetree is the interpreter sink: it turns a render op tree into a
// tree of live elements with every binding resolved against one data
// snapshot. A changed data context produces a new tree; trees are never
// patched in place.
package livetree

import (
	"errors"
	"fmt"

	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/constraint"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// ErrUnresolvedHandler is reported for events naming an unregistered handler.
var ErrUnresolvedHandler = errors.New("unresolved handler")

// Element is one live UI object.
type Element struct {
	Kind      renderop.Kind
	Component string
	ID        string
	Props     map[string]value.Value
	Modifiers []modifier.Modifier
	// Layout is set on containers.
	Layout      *renderop.Container
	Constraints []constraint.Constraint
	// Events maps the declaring attribute to a registered handler name.
	Events map[string]string
	// Bound maps a property to the data path user input is written to.
	Bound map[string]binding.Path
	// Invisible elements keep their space but are not drawn.
	Invisible bool
	// Span is the number of grid columns a collection child covers.
	Span int
	// Placeholder is set for unknown or broken nodes; Err says why.
	Placeholder bool
	Err         error
	Children    []*Element
}

// Prop returns the property named name.
func (e *Element) Prop(name string) (value.Value, bool) {
	v, ok := e.Props[name]
	return v, ok
}

// Text returns the string form of a property, empty when absent.
func (e *Element) Text(name string) string {
	v, _ := e.Props[name]
	return v.String()
}

// Walk visits e and its descendants depth first until fn returns false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first element with id.
func (e *Element) Find(id string) (*Element, bool) {
	var found *Element
	e.Walk(func(el *Element) bool {
		if el.ID == id {
			found = el
			return false
		}
		return true
	})
	return found, found != nil
}

// Tree is the live result of one render.
type Tree struct {
	Name string
	// Root is nil when the root node itself is gone.
	Root *Element
	// Generation is the data context generation the tree was built from.
	Generation  uint64
	Diagnostics []renderop.Diagnostic
}

// UnresolvedError describes a binding that resolved to nothing on a given
// element.
type UnresolvedError struct {
	Element string
	Prop    string
	Err     error
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Element, e.Prop, e.Err)
}

func (e *UnresolvedError) Unwrap() error { return e.Err }
