// Package attr is the typed view of a node's raw attribute map. It knows the
// alias classes of the layout format (for example `topMargin` and
// `marginTop`) and converts raw values into numbers, colors, dimensions and
// edge insets.
package attr

import (
	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/value"
)

// View wraps a node for typed attribute access.
type View struct {
	n *node.Node
}

// Of returns the typed view of n.
func Of(n *node.Node) View {
	return View{n: n}
}

// Node returns the wrapped node.
func (v View) Node() *node.Node { return v.n }

// Raw returns the first present attribute among keys.
func (v View) Raw(keys ...string) (value.Value, string, bool) {
	for _, k := range keys {
		if a, ok := v.n.Attributes[k]; ok {
			return a, k, true
		}
	}
	return value.Value{}, "", false
}

// Has reports whether any of keys is present.
func (v View) Has(keys ...string) bool {
	_, _, ok := v.Raw(keys...)
	return ok
}

// String returns the first present string attribute among keys.
func (v View) String(keys ...string) (string, bool) {
	a, _, ok := v.Raw(keys...)
	if !ok {
		return "", false
	}
	return a.AsString()
}

// StringOr returns the string attribute or def.
func (v View) StringOr(key, def string) string {
	if s, ok := v.String(key); ok {
		return s
	}
	return def
}

// Number returns the first present numeric attribute among keys. Bindings
// are not numbers.
func (v View) Number(keys ...string) (float64, bool) {
	a, _, ok := v.Raw(keys...)
	if !ok {
		return 0, false
	}
	if IsBinding(a) {
		return 0, false
	}
	return a.AsNumber()
}

// NumberOr returns the numeric attribute or def.
func (v View) NumberOr(key string, def float64) float64 {
	if f, ok := v.Number(key); ok {
		return f
	}
	return def
}

// Bool returns the first present boolean attribute among keys.
func (v View) Bool(keys ...string) (bool, bool) {
	a, _, ok := v.Raw(keys...)
	if !ok {
		return false, false
	}
	return a.AsBool()
}

// Truthy reports whether key is present and true.
func (v View) Truthy(key string) bool {
	b, ok := v.Bool(key)
	return ok && b
}

// Strings returns a string list attribute. A single string is promoted to a
// one-element list.
func (v View) Strings(key string) []string {
	a, ok := v.n.Attributes[key]
	if !ok {
		return nil
	}
	if s, ok := a.AsString(); ok {
		return []string{s}
	}
	var out []string
	for _, e := range a.Elements() {
		if s, ok := e.AsString(); ok {
			out = append(out, s)
		}
	}
	return out
}

// IsBinding reports whether a is a string carrying a binding span.
func IsBinding(a value.Value) bool {
	s, ok := a.AsString()
	if !ok {
		return false
	}
	_, found := binding.Parse(s)
	return found
}
