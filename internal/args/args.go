// Package args copies typed component arguments from a node's attributes
// onto its render op. Each helper looks at the given keys in order, so alias
// classes such as fontColor/textColor are a single call.
package args

import (
	"fmt"
	"strings"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Reporter receives argument problems. registry.Env satisfies it.
type Reporter interface {
	Report(severity renderop.Severity, err error)
}

// Text copies a string argument, bindings included. Numbers and booleans are
// turned into their text form.
func Text(op *renderop.Op, v attr.View, name string, keys ...string) bool {
	a, _, ok := v.Raw(keys...)
	if !ok || a.IsNull() {
		return false
	}
	switch {
	case a.IsString():
	case a.IsNumber(), a.IsBool():
		a = value.StringVal(a.String())
	default:
		return false
	}
	op.Add(name, renderop.ArgText, a)
	return true
}

// TextOr copies a string argument or falls back to def.
func TextOr(op *renderop.Op, v attr.View, name, def string, keys ...string) {
	if !Text(op, v, name, keys...) {
		op.Add(name, renderop.ArgText, value.StringVal(def))
	}
}

// Number copies a numeric argument with the given unit type. A binding is
// kept as is.
func Number(op *renderop.Op, v attr.View, name string, typ renderop.ArgType, keys ...string) bool {
	a, _, ok := v.Raw(keys...)
	if !ok {
		return false
	}
	if attr.IsBinding(a) {
		op.Add(name, typ, a)
		return true
	}
	f, ok := a.AsNumber()
	if !ok {
		return false
	}
	op.Add(name, typ, value.NumberVal(f))
	return true
}

// Bool copies a boolean argument; a binding is kept as is.
func Bool(op *renderop.Op, v attr.View, name string, keys ...string) bool {
	a, _, ok := v.Raw(keys...)
	if !ok {
		return false
	}
	if attr.IsBinding(a) {
		op.Add(name, renderop.ArgBool, a)
		return true
	}
	b, ok := a.AsBool()
	if !ok {
		return false
	}
	op.Add(name, renderop.ArgBool, value.BoolVal(b))
	return true
}

// Color copies a color argument normalized to #AARRGGBB. A malformed color is
// reported as a warning and dropped.
func Color(r Reporter, op *renderop.Op, v attr.View, name string, keys ...string) bool {
	c, ok, err := v.Color(keys...)
	if err != nil {
		r.Report(renderop.Warning, err)
		return false
	}
	if !ok {
		return false
	}
	op.Add(name, renderop.ArgColor, value.StringVal(c.String()))
	return true
}

// Enum copies a keyword argument. table maps lower-cased attribute values to
// the neutral keyword; unknown values are reported and dropped.
func Enum(r Reporter, op *renderop.Op, v attr.View, name string, table map[string]string, keys ...string) bool {
	s, ok := v.String(keys...)
	if !ok {
		return false
	}
	kw, known := table[strings.ToLower(strings.TrimSpace(s))]
	if !known {
		r.Report(renderop.Warning, fmt.Errorf("unsupported %s value '%s'", name, s))
		return false
	}
	op.Add(name, renderop.ArgEnum, value.StringVal(kw))
	return true
}

// List copies an array of texts. A single string becomes a one element list
// and a binding is kept as is.
func List(op *renderop.Op, v attr.View, name string, keys ...string) bool {
	a, _, ok := v.Raw(keys...)
	if !ok {
		return false
	}
	if attr.IsBinding(a) {
		op.Add(name, renderop.ArgList, a)
		return true
	}
	var items []value.Value
	switch {
	case a.IsArray():
		for _, e := range a.Elements() {
			if e.IsObject() {
				// {"title": ..} or {"text": ..} entries as used by segments and tabs.
				for _, k := range []string{"title", "text", "label", "value"} {
					if t, ok := e.Get(k); ok {
						e = t
						break
					}
				}
			}
			items = append(items, value.StringVal(e.String()))
		}
	case a.IsString():
		items = append(items, a)
	default:
		return false
	}
	op.Add(name, renderop.ArgList, value.ArrayVal(items...))
	return true
}

// State copies a two-way bound argument. Only a binding qualifies; a literal
// is copied as a plain argument of fallback type instead.
func State(op *renderop.Op, v attr.View, name string, fallback renderop.ArgType, keys ...string) bool {
	a, _, ok := v.Raw(keys...)
	if !ok {
		return false
	}
	if attr.IsBinding(a) {
		op.Add(name, renderop.ArgState, a)
		return true
	}
	op.Add(name, fallback, a)
	return true
}
