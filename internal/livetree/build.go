package livetree

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/datacontext"
	"github.com/vk/jsonuigo/internal/grid"
	"github.com/vk/jsonuigo/internal/handlers"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Build resolves res against snap. Walk diagnostics are carried over and
// every binding or handler that cannot be resolved adds a warning. h may be
// nil, in which case events are kept without checking.
func Build(ctx context.Context, name string, res *renderop.Result, snap datacontext.Snapshot, h *handlers.Handlers) *Tree {
	logger := ctxlog.FromContext(ctx)
	b := &builder{handlers: h}
	tree := &Tree{
		Name:        name,
		Generation:  snap.Generation,
		Diagnostics: append([]renderop.Diagnostic(nil), res.Diagnostics...),
	}
	tree.Root = b.element(&res.Root, snap, name)
	tree.Diagnostics = append(tree.Diagnostics, b.diags...)
	logger.Debug("Live tree built.", "layout", name, "generation", snap.Generation, "diagnostics", len(tree.Diagnostics))
	return tree
}

type builder struct {
	handlers *handlers.Handlers
	diags    []renderop.Diagnostic
}

func (b *builder) warn(path string, err error) {
	b.diags = append(b.diags, renderop.Diagnostic{Severity: renderop.Warning, Path: path, Err: err})
}

// element builds op. It returns nil for ops whose visibility is gone.
func (b *builder) element(op *renderop.Op, data binding.Lookup, path string) *Element {
	el := &Element{
		Kind:        op.Kind,
		Component:   op.Component,
		ID:          op.Anchor,
		Props:       make(map[string]value.Value, len(op.Args)),
		Layout:      op.Container,
		Constraints: op.Constraints,
		Placeholder: op.IsPlaceholder(),
		Err:         op.Err,
	}
	label := el.ID
	if label == "" {
		label = op.Component
	}

	switch b.visibility(op, data, path) {
	case "gone":
		return nil
	case "invisible":
		el.Invisible = true
	}

	for _, a := range op.Args {
		b.arg(el, a, data, path, label)
	}
	el.Modifiers = b.modifiers(op.Modifiers, data, path, label)

	if len(op.Events) > 0 {
		el.Events = make(map[string]string, len(op.Events))
		for _, ev := range op.Events {
			if b.handlers != nil {
				if _, ok := b.handlers.Resolve(ev.Handler); !ok {
					b.warn(path, fmt.Errorf("%w '%s' on %s.%s", ErrUnresolvedHandler, ev.Handler, label, ev.Name))
					continue
				}
			}
			el.Events[ev.Name] = ev.Handler
		}
	}

	for i := range op.Children {
		child := &op.Children[i]
		if c := b.element(child, data, childPath(path, child, i)); c != nil {
			el.Children = append(el.Children, c)
		}
	}
	if op.Grid != nil {
		el.Children = append(el.Children, b.grid(el, op.Grid, data, path)...)
	}
	return el
}

func childPath(parent string, op *renderop.Op, i int) string {
	return fmt.Sprintf("%s.%s[%d]", parent, op.Component, i)
}

// visibility returns "gone", "invisible" or "visible".
func (b *builder) visibility(op *renderop.Op, data binding.Lookup, path string) string {
	if !op.Visibility.IsNull() {
		r := binding.Resolve(op.Visibility, data)
		if !r.OK() {
			b.warn(path, &UnresolvedError{Element: op.Anchor, Prop: "visibility", Err: r.Err})
		} else {
			switch strings.ToLower(r.Value.String()) {
			case "gone":
				return "gone"
			case "invisible":
				return "invisible"
			}
		}
	}
	if !op.Hidden.IsNull() {
		r := binding.Resolve(op.Hidden, data)
		if !r.OK() {
			b.warn(path, &UnresolvedError{Element: op.Anchor, Prop: "hidden", Err: r.Err})
		} else if hidden, ok := r.Value.AsBool(); ok && hidden {
			return "invisible"
		}
	}
	return "visible"
}

func (b *builder) resolve(raw value.Value, data binding.Lookup, path, label, prop string) (value.Value, *binding.Binding, bool) {
	r := binding.Resolve(raw, data)
	if !r.OK() {
		b.warn(path, &UnresolvedError{Element: label, Prop: prop, Err: r.Err})
		return value.Value{}, r.Binding, false
	}
	return r.Value, r.Binding, true
}

func (b *builder) arg(el *Element, a renderop.Arg, data binding.Lookup, path, label string) {
	if a.Type == renderop.ArgEnum {
		el.Props[a.Name] = a.Value
		return
	}
	v, bound, ok := b.resolve(a.Value, data, path, label, a.Name)

	switch a.Type {
	case renderop.ArgText:
		if !ok {
			v = value.StringVal("")
		}
		el.Props[a.Name] = value.StringVal(v.String())
	case renderop.ArgNumber, renderop.ArgDp, renderop.ArgSp:
		if f, isNum := v.AsNumber(); ok && isNum {
			el.Props[a.Name] = value.NumberVal(f)
		}
	case renderop.ArgBool:
		if t, isBool := v.AsBool(); ok && isBool {
			el.Props[a.Name] = value.BoolVal(t)
		}
	case renderop.ArgColor:
		if !ok {
			return
		}
		hex, err := attr.ParseColor(v.String())
		if err != nil {
			b.warn(path, fmt.Errorf("%s.%s: %w", label, a.Name, err))
			return
		}
		el.Props[a.Name] = value.StringVal(hex)
	case renderop.ArgList:
		if !ok {
			el.Props[a.Name] = value.ArrayVal()
			return
		}
		if !v.IsArray() {
			v = value.ArrayVal(v)
		}
		el.Props[a.Name] = v
	case renderop.ArgState:
		if bound != nil && bound.PathErr == nil {
			if el.Bound == nil {
				el.Bound = map[string]binding.Path{}
			}
			el.Bound[a.Name] = bound.Path
		}
		if ok {
			el.Props[a.Name] = v
		}
	}
}

// modifiers resolves the bound parts of modifiers. A modifier whose binding
// does not resolve is dropped.
func (b *builder) modifiers(mods []modifier.Modifier, data binding.Lookup, path, label string) []modifier.Modifier {
	out := make([]modifier.Modifier, 0, len(mods))
	for _, m := range mods {
		switch m := m.(type) {
		case modifier.Background:
			if m.Color.IsBound() {
				v, _, ok := b.resolve(value.StringVal(m.Color.Expr), data, path, label, "background")
				if !ok {
					continue
				}
				hex, err := attr.ParseColor(v.String())
				if err != nil {
					b.warn(path, fmt.Errorf("%s.background: %w", label, err))
					continue
				}
				m.Color = attr.Color{Hex: hex}
			}
			out = append(out, m)
		case modifier.Opacity:
			if m.Expr != "" {
				v, _, ok := b.resolve(value.StringVal(m.Expr), data, path, label, "opacity")
				f, isNum := v.AsNumber()
				if !ok || !isNum {
					continue
				}
				m = modifier.Opacity{Alpha: modifier.Clamp01(f)}
			}
			out = append(out, m)
		case modifier.Size:
			m.Width = b.dimension(m.Width, data, path, label, "width")
			m.Height = b.dimension(m.Height, data, path, label, "height")
			out = append(out, m)
		default:
			out = append(out, m)
		}
	}
	return out
}

func (b *builder) dimension(d attr.Dimension, data binding.Lookup, path, label, prop string) attr.Dimension {
	if d.Kind != attr.Bound {
		return d
	}
	v, _, ok := b.resolve(value.StringVal(d.Expr), data, path, label, prop)
	if !ok {
		return attr.Dimension{Kind: attr.Wrap}
	}
	resolved, err := attr.ParseDimension(v)
	if err != nil || resolved.Kind == attr.Bound {
		b.warn(path, fmt.Errorf("%s.%s: bound value %q is not a size", label, prop, v.String()))
		return attr.Dimension{Kind: attr.Wrap}
	}
	return resolved
}

// grid instantiates the cell templates of a collection, one per item.
// A single section takes the items array; several sections take an array
// holding one items array per section.
func (b *builder) grid(el *Element, g *renderop.Grid, data binding.Lookup, path string) []*Element {
	el.Props["columns"] = value.NumberVal(float64(g.Plan.Columns))

	items := el.Props["items"]
	base := rootOf(data)

	var out []*Element
	for si, sec := range g.Sections {
		sectionItems := items
		if len(g.Sections) > 1 {
			sectionItems, _ = items.Index(si)
		}
		sectionPath := fmt.Sprintf("%s.section[%d]", path, si)
		if sec.Header != nil {
			if h := b.element(sec.Header, data, sectionPath+".header"); h != nil {
				h.Span = g.Plan.HeaderSpan()
				out = append(out, h)
			}
		}
		if sec.Template != nil {
			for i, item := range sectionItems.Elements() {
				cell := cellLookup{root: grid.CellData(base, item, i)}
				if c := b.element(sec.Template, cell, fmt.Sprintf("%s.cell[%d]", sectionPath, i)); c != nil {
					c.Span = sec.Span
					out = append(out, c)
				}
			}
		}
		if sec.Footer != nil {
			if f := b.element(sec.Footer, data, sectionPath+".footer"); f != nil {
				f.Span = g.Plan.HeaderSpan()
				out = append(out, f)
			}
		}
	}
	return out
}

func rootOf(data binding.Lookup) value.Value {
	switch d := data.(type) {
	case datacontext.Snapshot:
		return d.Root
	case cellLookup:
		return d.root
	}
	return value.ObjectVal(nil)
}

type cellLookup struct{ root value.Value }

func (c cellLookup) Get(path binding.Path) (value.Value, bool) { return binding.Walk(c.root, path) }
