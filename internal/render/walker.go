// Package render walks a layout tree top-down and produces the render op
// tree consumed by a sink. The walk is single threaded and never mutates the
// input; every problem below the root is isolated to the node that caused it.
package render

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Loader resolves layout names, e.g. collection cells, to parsed trees.
type Loader interface {
	Load(name string) (*node.Node, error)
}

var (
	// ErrNoHandler is reported for a known kind without a registered handler.
	ErrNoHandler = errors.New("no handler registered")
	// ErrLayoutCycle is returned when a named layout includes itself.
	ErrLayoutCycle = errors.New("layout cycle")
)

// Walker turns layout trees into render op trees.
type Walker struct {
	Registry *registry.Registry
	// Loader is optional; without it named layouts cannot be resolved.
	Loader         Loader
	DefaultColumns int
}

// Walk renders root. It never fails: broken subtrees become placeholders and
// are listed in the result's diagnostics.
func (w *Walker) Walk(ctx context.Context, root *node.Node) *renderop.Result {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Render walk started.", "root", root.Type)

	s := &walk{w: w}
	rootOp := s.render(root, modifier.ParentContext{Type: layout.Box, Root: true}, -1)

	res := &renderop.Result{
		Root:        rootOp,
		Imports:     rootOp.AllImports(),
		Diagnostics: s.diags,
	}
	logger.Debug("Render walk finished.", "diagnostics", len(res.Diagnostics), "imports", res.Imports.Len())
	return res
}

// walk is the state of one Walk call. It implements registry.Env.
type walk struct {
	w     *Walker
	stack []frame
	diags []renderop.Diagnostic
	// layouts are the named layouts currently being rendered.
	layouts []string
}

// frame is one level of the diagnostics path.
type frame struct {
	segment string
	// next counts the children rendered so far at this level.
	next int
}

var _ registry.Env = (*walk)(nil)

func (s *walk) Render(child *node.Node, parent modifier.ParentContext) renderop.Op {
	index := 0
	if top := len(s.stack) - 1; top >= 0 {
		index = s.stack[top].next
		s.stack[top].next++
	}
	return s.render(child, parent, index)
}

func (s *walk) RenderLayout(name string, parent modifier.ParentContext) (renderop.Op, error) {
	if s.w.Loader == nil {
		return renderop.Op{}, fmt.Errorf("cannot load layout '%s': no loader configured", name)
	}
	if slices.Contains(s.layouts, name) {
		return renderop.Op{}, fmt.Errorf("%w: %s -> %s", ErrLayoutCycle, strings.Join(s.layouts, " -> "), name)
	}
	n, err := s.w.Loader.Load(name)
	if err != nil {
		return renderop.Op{}, fmt.Errorf("cannot load layout '%s': %w", name, err)
	}
	s.layouts = append(s.layouts, name)
	defer func() { s.layouts = s.layouts[:len(s.layouts)-1] }()
	return s.Render(n, parent), nil
}

func (s *walk) Report(severity renderop.Severity, err error) {
	s.diags = append(s.diags, renderop.Diagnostic{Severity: severity, Path: s.where(), Err: err})
}

func (s *walk) DefaultColumns() int {
	if s.w.DefaultColumns <= 0 {
		return 1
	}
	return s.w.DefaultColumns
}

func (s *walk) where() string {
	segments := make([]string, len(s.stack))
	for i, f := range s.stack {
		segments[i] = f.segment
	}
	return strings.Join(segments, ".")
}

func (s *walk) render(n *node.Node, parent modifier.ParentContext, index int) (op renderop.Op) {
	segment := n.Type
	if segment == "" {
		segment = "?"
	}
	if index >= 0 {
		segment = fmt.Sprintf("%s[%d]", segment, index)
	}
	s.stack = append(s.stack, frame{segment: segment})
	defer func() { s.stack = s.stack[:len(s.stack)-1] }()

	kind := registry.KindOf(n.Type)
	op = renderop.Op{
		Kind:      kind,
		Component: n.Type,
		Anchor:    n.ID(),
	}
	op.Visibility, _ = n.Attr("visibility")
	op.Hidden, _ = n.Attr("hidden")
	op.Modifiers = modifier.Build(n, parent)
	op.Events = events(n)
	op.Imports = modifierImports(op.Modifiers)
	if !op.Visibility.IsNull() || !op.Hidden.IsNull() {
		op.Imports = op.Imports.With(renderop.ImportVisibility)
	}

	if kind == renderop.KindUnknown {
		s.Report(renderop.Warning, fmt.Errorf("%w '%s'", renderop.ErrUnknownComponent, n.Type))
		op.Args = []renderop.Arg{{Name: "type", Value: value.StringVal(n.Type)}}
		op.Imports = op.Imports.With(renderop.ImportBox)
		return op
	}

	h, ok := s.w.Registry.Handler(kind)
	if !ok {
		return s.fail(op, fmt.Errorf("%w for kind '%s'", ErrNoHandler, kind))
	}
	if err := s.handle(h, n, &op); err != nil {
		return s.fail(op, err)
	}
	return op
}

// handle runs a handler, turning a panic into an error for this node.
func (s *walk) handle(h registry.Handler, n *node.Node, op *renderop.Op) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("component handler panicked: %v", r)
		}
	}()
	return h.Handle(s, n, op)
}

// fail turns op into an error placeholder that keeps its position in the
// parent (anchor, size and constraints) but none of its content.
func (s *walk) fail(op renderop.Op, err error) renderop.Op {
	s.Report(renderop.Error, err)
	return renderop.Op{
		Kind:        op.Kind,
		Component:   op.Component,
		Anchor:      op.Anchor,
		Modifiers:   sizeOnly(op.Modifiers),
		Constraints: op.Constraints,
		Imports:     renderop.NewImports(renderop.ImportBox),
		Err:         err,
	}
}

func sizeOnly(mods []modifier.Modifier) []modifier.Modifier {
	for _, m := range mods {
		if m.Op() == modifier.OpSize {
			return []modifier.Modifier{m}
		}
	}
	return nil
}

func events(n *node.Node) []renderop.Event {
	var out []renderop.Event
	for _, key := range binding.HandlerKeys {
		if name := n.String(key); name != "" {
			out = append(out, renderop.Event{Name: key, Handler: name})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func modifierImports(mods []modifier.Modifier) renderop.Imports {
	var imps renderop.Imports
	for _, m := range mods {
		switch m := m.(type) {
		case modifier.Clip:
			imps = imps.With(renderop.ImportShape)
		case modifier.Background:
			if len(m.Gradient) > 0 {
				imps = imps.With(renderop.ImportGradient)
			} else {
				imps = imps.With(renderop.ImportBackground)
			}
		case modifier.Border:
			imps = imps.With(renderop.ImportBorder, renderop.ImportShape)
		case modifier.Shadow:
			imps = imps.With(renderop.ImportShadow)
		case modifier.Opacity:
			imps = imps.With(renderop.ImportAlpha)
		}
	}
	return imps
}
