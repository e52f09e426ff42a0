package constraint

import (
	"fmt"
	"strconv"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/dag"
	"github.com/vk/jsonuigo/internal/node"
)

type family int

const (
	// outside: place the subject beyond a sibling edge, margin is a gap.
	outside family = iota
	// alignEdge: share an edge with a sibling, margin is negated.
	alignEdge
	// centerSibling: center on a sibling along one axis.
	centerSibling
	// parentEdge: pin an edge to the container.
	parentEdge
	// parentCenter: center in the container along one or both axes.
	parentCenter
)

type relation struct {
	attribute  string
	family     family
	edge       Edge
	targetEdge Edge
	// facing is the subject side the link is drawn from; named is the side
	// the attribute is named after. Margins are looked up in that order.
	facing attr.Side
	named  attr.Side
}

// siblingRelations are the attributes that position a child against a
// sibling. Their presence turns a container into a constraint scope.
var siblingRelations = []relation{
	{"alignTopOfView", outside, Bottom, Top, attr.Bottom, attr.Top},
	{"alignBottomOfView", outside, Top, Bottom, attr.Top, attr.Bottom},
	{"alignLeftOfView", outside, End, Start, attr.End, attr.Start},
	{"alignRightOfView", outside, Start, End, attr.Start, attr.End},
	{"alignTopView", alignEdge, Top, Top, attr.Top, attr.Top},
	{"alignBottomView", alignEdge, Bottom, Bottom, attr.Bottom, attr.Bottom},
	{"alignLeftView", alignEdge, Start, Start, attr.Start, attr.Start},
	{"alignRightView", alignEdge, End, End, attr.End, attr.End},
	{"alignCenterVerticalView", centerSibling, CenterY, CenterY, attr.Top, attr.Top},
	{"alignCenterHorizontalView", centerSibling, CenterX, CenterX, attr.Start, attr.Start},
}

// parentRelations position a child against its container.
var parentRelations = []relation{
	{"alignTop", parentEdge, Top, Top, attr.Top, attr.Top},
	{"alignBottom", parentEdge, Bottom, Bottom, attr.Bottom, attr.Bottom},
	{"alignLeft", parentEdge, Start, Start, attr.Start, attr.Start},
	{"alignRight", parentEdge, End, End, attr.End, attr.End},
	{"centerHorizontal", parentCenter, CenterX, CenterX, attr.Start, attr.Start},
	{"centerVertical", parentCenter, CenterY, CenterY, attr.Top, attr.Top},
}

// SiblingAttributes lists the attributes that reference sibling anchors.
func SiblingAttributes() []string {
	out := make([]string, len(siblingRelations))
	for i, r := range siblingRelations {
		out[i] = r.attribute
	}
	return out
}

// ParentAttributes lists the attributes that position against the parent.
func ParentAttributes() []string {
	out := make([]string, 0, len(parentRelations)+1)
	for _, r := range parentRelations {
		out = append(out, r.attribute)
	}
	return append(out, "centerInParent")
}

// HasSiblingPositioning reports whether n positions itself against a sibling.
func HasSiblingPositioning(n *node.Node) bool {
	return n.Has(SiblingAttributes()...)
}

// AnchorRef returns the anchor of the child at index.
func AnchorRef(n *node.Node, index int) Anchor {
	if id := n.ID(); id != "" {
		return Anchor{Ref: id, Index: index, Declared: true}
	}
	return Anchor{Ref: "view_" + strconv.Itoa(index), Index: index}
}

// Resolve builds the constraint scope of children. Every problem found is
// reported; a scope with any error is unusable as a whole.
func Resolve(children []*node.Node) (*Scope, error) {
	scope := &Scope{index: make(map[string]int, len(children))}
	var errs Errors

	for i, child := range children {
		a := AnchorRef(child, i)
		if prev, dup := scope.index[a.Ref]; dup {
			errs = append(errs, &Error{
				Kind:   ErrAmbiguous,
				Anchor: a.Ref,
				Detail: fmt.Sprintf("anchor is declared by children %d and %d", scope.Children[prev].Anchor.Index, i),
			})
			continue
		}
		scope.index[a.Ref] = len(scope.Children)
		scope.Children = append(scope.Children, Child{Anchor: a})
	}

	for i, child := range children {
		ref := AnchorRef(child, i).Ref
		idx, ok := scope.index[ref]
		if !ok || scope.Children[idx].Anchor.Index != i {
			continue
		}
		entry := &scope.Children[idx]

		links, linkErrs := childConstraints(child, ref, scope)
		errs = append(errs, linkErrs...)
		entry.Constraints = links
		entry.Width = dimension(child, "width")
		entry.Height = dimension(child, "height")
	}

	order, cycleErrs := orderScope(scope)
	errs = append(errs, cycleErrs...)
	if len(errs) > 0 {
		return nil, errs
	}
	scope.Order = order
	return scope, nil
}

// childConstraints translates the attributes of one child. Edge links are
// produced first so a center link on an already constrained axis is dropped.
func childConstraints(child *node.Node, ref string, scope *Scope) ([]Constraint, Errors) {
	view := attr.Of(child)
	var (
		links []Constraint
		errs  Errors
	)

	add := func(c Constraint) {
		for _, existing := range links {
			if existing.Edge != c.Edge {
				continue
			}
			if existing.sameLink(c) {
				return
			}
			errs = append(errs, &Error{
				Kind:   ErrAmbiguous,
				Anchor: ref,
				Detail: fmt.Sprintf("%s is linked by both '%s' (%s) and '%s' (%s)", c.Edge, existing.Attribute, existing, c.Attribute, c),
			})
			return
		}
		links = append(links, c)
	}

	var centers []Constraint
	handle := func(r relation, target Target) {
		c := Constraint{
			Subject:    ref,
			Edge:       r.edge,
			Target:     target,
			TargetEdge: r.targetEdge,
			Attribute:  r.attribute,
		}
		switch r.family {
		case outside, parentEdge:
			c.Margin = margin(view, r)
		case alignEdge:
			c.Margin = -margin(view, r)
		case centerSibling, parentCenter:
			centers = append(centers, c)
			return
		}
		add(c)
	}

	for _, r := range siblingRelations {
		raw, ok := child.Attr(r.attribute)
		if !ok {
			continue
		}
		target, _ := raw.AsString()
		if target == "" {
			errs = append(errs, &Error{Kind: ErrDanglingTarget, Anchor: ref, Detail: fmt.Sprintf("'%s' must name a sibling id", r.attribute)})
			continue
		}
		if _, ok := scope.index[target]; !ok {
			errs = append(errs, &Error{Kind: ErrDanglingTarget, Anchor: ref, Detail: fmt.Sprintf("'%s' references unknown anchor '%s'", r.attribute, target)})
			continue
		}
		handle(r, Sibling(target))
	}

	for _, r := range parentRelations {
		if view.Truthy(r.attribute) {
			handle(r, Parent)
		}
	}
	if view.Truthy("centerInParent") {
		for _, r := range parentRelations {
			if r.family == parentCenter {
				r.attribute = "centerInParent"
				handle(r, Parent)
			}
		}
	}

	for _, c := range centers {
		if axisConstrained(links, c.Edge.Axis()) {
			continue
		}
		add(c)
	}
	return links, errs
}

func axisConstrained(links []Constraint, axis Axis) bool {
	for _, l := range links {
		if l.Edge.Axis() == axis && l.Edge != CenterX && l.Edge != CenterY {
			return true
		}
	}
	return false
}

// margin picks the margin for a link: the declared margin of the facing
// side, then the side the attribute is named after, then the margins array.
func margin(view attr.View, r relation) float64 {
	if f, ok := view.ExplicitMargin(r.facing); ok {
		return f
	}
	if f, ok := view.ExplicitMargin(r.named); ok {
		return f
	}
	if f, ok := view.ArrayMargin(r.facing); ok {
		return f
	}
	return 0
}

func dimension(child *node.Node, key string) attr.Dimension {
	view := attr.Of(child)
	var (
		d   attr.Dimension
		err error
	)
	if key == "width" {
		d, err = view.Width()
	} else {
		d, err = view.Height()
	}
	if err != nil || !d.IsSet() {
		return attr.Dimension{Kind: attr.Wrap}
	}
	return d
}

// orderScope checks each axis for dependency cycles and returns a combined
// placement order.
func orderScope(scope *Scope) ([]string, Errors) {
	var errs Errors
	combined := dag.New()
	for _, axis := range []Axis{Horizontal, Vertical} {
		g := dag.New()
		for _, c := range scope.Children {
			g.AddNode(c.Anchor.Ref)
			combined.AddNode(c.Anchor.Ref)
		}
		for _, c := range scope.Children {
			for _, l := range c.Constraints {
				if l.Target.Parent || l.Edge.Axis() != axis {
					continue
				}
				if l.Target.Ref == l.Subject {
					errs = append(errs, &Error{
						Kind:   ErrCycle,
						Anchor: l.Subject,
						Detail: fmt.Sprintf("'%s' references the anchor itself", l.Attribute),
					})
					continue
				}
				// Unknown targets were reported already.
				if err := g.AddEdge(l.Target.Ref, l.Subject); err != nil {
					continue
				}
				_ = combined.AddEdge(l.Target.Ref, l.Subject)
			}
		}
		if err := g.DetectCycles(); err != nil {
			errs = append(errs, &Error{Kind: ErrCycle, Anchor: cycleStart(err), Detail: axis.String() + " axis", Cause: err})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	order, err := combined.TopologicalOrder()
	if err != nil {
		// Each axis is acyclic but their union is not. Child order is still a
		// valid placement order for the renderer.
		return scope.Refs(), nil
	}
	return order, nil
}

func cycleStart(err error) string {
	if ce, ok := err.(*dag.CycleError); ok && len(ce.Path) > 0 {
		return ce.Path[0]
	}
	return ""
}
