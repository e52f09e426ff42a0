package modifier

import (
	"strings"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/value"
)

type step func(v attr.View, parent ParentContext) (Modifier, bool)

// steps is the composition order.
var steps = []step{
	buildSize,
	buildMargin,
	buildClip,
	buildBackground,
	buildBorder,
	buildShadow,
	buildPadding,
	buildWeight,
	buildAlignment,
	buildOpacity,
}

// Build returns the modifier chain of n placed in parent. Steps without a
// matching attribute are omitted.
func Build(n *node.Node, parent ParentContext) []Modifier {
	v := attr.Of(n)
	var out []Modifier
	for _, s := range steps {
		if m, ok := s(v, parent); ok {
			out = append(out, m)
		}
	}
	return out
}

// WeightOf returns the positive weight of n inside parent.
func WeightOf(n *node.Node, parent ParentContext) (float64, bool) {
	if !parent.Linear {
		return 0, false
	}
	keys := []string{"weight"}
	switch parent.Type {
	case layout.Row:
		keys = append(keys, "widthWeight")
	case layout.Column:
		keys = append(keys, "heightWeight")
	}
	w, ok := attr.Of(n).Number(keys...)
	if !ok || w <= 0 {
		return 0, false
	}
	return w, true
}

// Weighted returns the node a weighted child is rendered from: a copy that
// fills the cross axis and drops a zero main-axis size. Unweighted children
// are returned as is.
func Weighted(n *node.Node, parent ParentContext) *node.Node {
	if _, ok := WeightOf(n, parent); !ok {
		return n
	}
	main, cross := "width", "height"
	if parent.Type == layout.Column {
		main, cross = "height", "width"
	}
	out := n.WithAttribute(cross, value.StringVal("matchParent"))
	if isZero(n, main) {
		out = out.WithoutAttribute(main)
	}
	return out
}

func isZero(n *node.Node, key string) bool {
	a, ok := n.Attr(key)
	if !ok || a.IsString() {
		return false
	}
	f, ok := a.AsNumber()
	return ok && f == 0
}

func buildSize(v attr.View, parent ParentContext) (Modifier, bool) {
	var s Size
	if d, err := v.Width(); err == nil {
		s.Width = d
	}
	if d, err := v.Height(); err == nil {
		s.Height = d
	}
	if _, weighted := WeightOf(v.Node(), parent); weighted {
		// A zero main-axis size means "let the weight decide".
		if parent.Type == layout.Row && isZero(v.Node(), "width") {
			s.Width = attr.Dimension{}
		}
		if parent.Type == layout.Column && isZero(v.Node(), "height") {
			s.Height = attr.Dimension{}
		}
	}
	s.MinWidth = v.NumberOr("minWidth", 0)
	s.MaxWidth = v.NumberOr("maxWidth", 0)
	s.MinHeight = v.NumberOr("minHeight", 0)
	s.MaxHeight = v.NumberOr("maxHeight", 0)
	if w, ok := v.Number("aspectWidth"); ok {
		if h, ok := v.Number("aspectHeight"); ok && h != 0 {
			s.AspectRatio = w / h
		}
	}
	if s == (Size{}) {
		return nil, false
	}
	return s, true
}

func buildMargin(v attr.View, _ ParentContext) (Modifier, bool) {
	in, ok := v.Margins()
	if !ok || in.IsZero() {
		return nil, false
	}
	return Margin{in}, true
}

func buildClip(v attr.View, _ ParentContext) (Modifier, bool) {
	r, ok := v.Number("cornerRadius")
	if !ok || r <= 0 {
		return nil, false
	}
	return Clip{Radius: r}, true
}

func buildBackground(v attr.View, _ ParentContext) (Modifier, bool) {
	if v.Node().LowerType() == "gradientview" {
		return gradient(v), true
	}
	c, ok, err := v.Color("background", "backgroundColor")
	if !ok || err != nil {
		return nil, false
	}
	return Background{Color: c}, true
}

func gradient(v attr.View) Background {
	bg := Background{Direction: gradientDirection(v)}
	a, _, ok := v.Raw("colors", "items")
	if ok {
		for _, e := range a.Elements() {
			if c, err := attr.ColorValue(e); err == nil {
				bg.Gradient = append(bg.Gradient, c)
			}
		}
	}
	if len(bg.Gradient) == 0 {
		bg.Gradient = []attr.Color{{Hex: "#FF000000"}, {Hex: "#FFFFFFFF"}}
	}
	return bg
}

func gradientDirection(v attr.View) GradientDirection {
	if o, ok := v.String("orientation"); ok {
		switch o {
		case "horizontal":
			return GradientHorizontal
		case "diagonal":
			return GradientLinear
		}
		return GradientVertical
	}
	start := v.StringOr("startPoint", "top")
	end := v.StringOr("endPoint", "bottom")
	switch start + ":" + end {
	case "top:bottom", "bottom:top":
		return GradientVertical
	case "left:right", "right:left", "leading:trailing", "trailing:leading":
		return GradientHorizontal
	}
	return GradientLinear
}

func buildBorder(v attr.View, _ ParentContext) (Modifier, bool) {
	c, ok, err := v.Color("borderColor")
	if !ok || err != nil {
		return nil, false
	}
	b := Border{
		Width:  v.NumberOr("borderWidth", 1),
		Color:  c,
		Style:  BorderSolid,
		Radius: v.NumberOr("cornerRadius", 0),
	}
	if b.Width <= 0 {
		return nil, false
	}
	switch BorderStyle(strings.ToLower(v.StringOr("borderStyle", ""))) {
	case BorderDashed:
		b.Style = BorderDashed
	case BorderDotted:
		b.Style = BorderDotted
	}
	return b, true
}

func buildShadow(v attr.View, _ ParentContext) (Modifier, bool) {
	a, _, ok := v.Raw("shadow")
	if !ok {
		return nil, false
	}
	s := Shadow{Elevation: 4, Radius: v.NumberOr("cornerRadius", 0)}
	switch a.Kind() {
	case value.String:
	case value.Bool:
		if b, _ := a.AsBool(); !b {
			return nil, false
		}
	case value.Object:
		if r, ok := a.Get("radius"); ok {
			if f, ok := r.AsNumber(); ok {
				s.Elevation = f
			}
		}
	default:
		return nil, false
	}
	return s, true
}

func buildPadding(v attr.View, _ ParentContext) (Modifier, bool) {
	in, ok := v.Paddings()
	if !ok || in.IsZero() {
		return nil, false
	}
	return Padding{in}, true
}

func buildWeight(v attr.View, parent ParentContext) (Modifier, bool) {
	w, ok := WeightOf(v.Node(), parent)
	if !ok {
		return nil, false
	}
	return Weight{Value: w}, true
}

// buildAlignment maps the parent-relative attributes to one of the nine box
// alignments. An axis without an attribute stays at its leading edge.
func buildAlignment(v attr.View, parent ParentContext) (Modifier, bool) {
	if parent.Root || parent.Type != layout.Box {
		return nil, false
	}
	center := v.Truthy("centerInParent")
	top, bottom := v.Truthy("alignTop"), v.Truthy("alignBottom")
	left, right := v.Truthy("alignLeft"), v.Truthy("alignRight")
	centerH, centerV := v.Truthy("centerHorizontal"), v.Truthy("centerVertical")
	if !(center || top || bottom || left || right || centerH || centerV) {
		return nil, false
	}

	h := axisPos(left, right, centerH || center)
	vert := axisPos(top, bottom, centerV || center)
	return Alignment{Align: layout.Combine(vert, h)}, true
}

func axisPos(leading, trailing, centered bool) layout.Pos {
	switch {
	case centered, leading && trailing:
		return layout.Middle
	case trailing:
		return layout.Trailing
	}
	return layout.Leading
}

func buildOpacity(v attr.View, _ ParentContext) (Modifier, bool) {
	a, _, ok := v.Raw("opacity", "alpha")
	if !ok {
		return nil, false
	}
	if attr.IsBinding(a) {
		s, _ := a.AsString()
		return Opacity{Alpha: 1, Expr: s}, true
	}
	f, ok := a.AsNumber()
	if !ok {
		return nil, false
	}
	return Opacity{Alpha: Clamp01(f)}, true
}

// Clamp01 clamps f into [0, 1].
func Clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
