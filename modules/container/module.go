// Package container renders the nodes that lay out children: plain
// containers, scroll views, safe areas, gradients and blur views.
package container

import (
	"fmt"

	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/constraint"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the container handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunc(renderop.KindContainer, handleContainer)
	r.RegisterFunc(renderop.KindScroll, handleScroll)
	r.RegisterFunc(renderop.KindSafeArea, handleSafeArea)
	r.RegisterFunc(renderop.KindGradient, handleGradient)
	r.RegisterFunc(renderop.KindBlur, handleBlur)
}

// forced are type names that fix the layout regardless of orientation.
var forced = map[string]layout.Kind{
	"column":           layout.Column,
	"vstack":           layout.Column,
	"row":              layout.Row,
	"hstack":           layout.Row,
	"box":              layout.Box,
	"zstack":           layout.Box,
	"constraintlayout": layout.ConstraintScope,
}

// KindFor returns the layout of a container node. Sibling positioning on any
// child wins over both the type name and the orientation.
func KindFor(n *node.Node) layout.Kind {
	k := layout.Classify(n)
	if k == layout.ConstraintScope {
		return k
	}
	if f, ok := forced[n.LowerType()]; ok {
		return f
	}
	return k
}

func handleContainer(env registry.Env, n *node.Node, op *renderop.Op) error {
	return LayoutChildren(env, n, op, KindFor(n))
}

// LayoutChildren renders the children of n into op as a container of kind.
// A constraint scope that cannot be resolved fails the whole container.
func LayoutChildren(env registry.Env, n *node.Node, op *renderop.Op, kind layout.Kind) error {
	c := &renderop.Container{
		Layout:      kind,
		Arrangement: layout.Arrange(n, kind),
		Reversed:    layout.Reversed(n, kind),
	}
	op.Container = c
	pc := modifier.Context(kind)

	if kind == layout.ConstraintScope {
		scope, err := constraint.Resolve(n.Children)
		if err != nil {
			return fmt.Errorf("constraint scope of '%s': %w", n.Type, err)
		}
		c.Scope = scope
		op.Need(renderop.ImportConstraintLayout)
		for i, child := range n.Children {
			childOp := env.Render(child, pc)
			a := constraint.AnchorRef(child, i)
			childOp.Anchor = a.Ref
			if entry, ok := scope.Child(a.Ref); ok {
				childOp.Constraints = entry.Constraints
			}
			op.Children = append(op.Children, childOp)
		}
		return nil
	}

	if !c.Arrangement.IsZero() {
		op.Need(renderop.ImportArrangement)
	}
	for _, child := range layout.Ordered(n, kind) {
		op.Children = append(op.Children, env.Render(modifier.Weighted(child, pc), pc))
	}
	return nil
}

// contentKind returns the layout of a scroll or blur view's content. Sibling
// positioning on any child turns it into a constraint scope.
func contentKind(n *node.Node, fallback layout.Kind) layout.Kind {
	if layout.Classify(n) == layout.ConstraintScope {
		return layout.ConstraintScope
	}
	return fallback
}

func handleScroll(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	kind := layout.Column
	axis := "vertical"
	scroll := renderop.ImportVerticalScroll
	if v.Truthy("horizontalScroll") || v.StringOr("orientation", "") == "horizontal" {
		kind = layout.Row
		axis = "horizontal"
		scroll = renderop.ImportHorizontalScroll
	}
	op.Add("axis", renderop.ArgEnum, value.StringVal(axis))
	args.Bool(op, v, "showsIndicator", "showsVerticalScrollIndicator", "showsHorizontalScrollIndicator")
	if b, ok := v.Bool("keyboardAvoidance"); !ok || b {
		op.Add("keyboardAvoidance", renderop.ArgBool, value.BoolVal(true))
	}
	op.Need(scroll)
	return LayoutChildren(env, n, op, contentKind(n, kind))
}

var safeAreaEdges = map[string]bool{"all": true, "top": true, "bottom": true, "start": true, "end": true, "left": true, "right": true, "vertical": true, "horizontal": true}

func handleSafeArea(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	edges := v.Strings("edges")
	if edges == nil {
		edges = v.Strings("safeAreaInsetPositions")
	}
	if len(edges) == 0 {
		edges = []string{"all"}
	}
	list := make([]value.Value, 0, len(edges))
	for _, e := range edges {
		if !safeAreaEdges[e] {
			env.Report(renderop.Warning, fmt.Errorf("unsupported safe area edge '%s'", e))
			continue
		}
		list = append(list, value.StringVal(e))
	}
	op.Add("edges", renderop.ArgList, value.ArrayVal(list...))
	return LayoutChildren(env, n, op, KindFor(n))
}

// The gradient itself is a background modifier built by the pipeline; the
// handler only lays out children.
func handleGradient(env registry.Env, n *node.Node, op *renderop.Op) error {
	return LayoutChildren(env, n, op, KindFor(n))
}

func handleBlur(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	radius := v.NumberOr("blurRadius", 10)
	op.Add("radius", renderop.ArgDp, value.NumberVal(radius))
	if !args.Color(env, op, v, "tint", "backgroundColor") {
		op.Add("tint", renderop.ArgColor, value.StringVal("#FFFFFFFF"))
	}
	// Blur is approximated by a translucent tint over the content.
	op.Add("tintAlpha", renderop.ArgNumber, value.NumberVal(min(0.8, radius/20)))
	op.Need(renderop.ImportBlur)
	return LayoutChildren(env, n, op, contentKind(n, layout.Box))
}
