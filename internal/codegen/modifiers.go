package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/value"
)

// chain renders mods in pipeline order as a Modifier expression. extra calls
// are appended after the pipeline. It returns "" when there is nothing to
// apply.
func (x exprs) chain(mods []modifier.Modifier, extra ...string) string {
	var calls []string
	for _, m := range mods {
		calls = append(calls, x.modifierCalls(m)...)
	}
	calls = append(calls, extra...)
	if len(calls) == 0 {
		return ""
	}
	return "Modifier\n" + indentUnit + "." + strings.Join(calls, "\n"+indentUnit+".")
}

func (x exprs) modifierCalls(m modifier.Modifier) []string {
	switch m := m.(type) {
	case modifier.Size:
		return x.sizeCalls(m)
	case modifier.Margin:
		return insetCalls(m.Insets)
	case modifier.Padding:
		return insetCalls(m.Insets)
	case modifier.Clip:
		return []string{fmt.Sprintf("clip(RoundedCornerShape(%s))", dp(m.Radius))}
	case modifier.Background:
		if len(m.Gradient) > 0 {
			colors := make([]string, len(m.Gradient))
			for i, c := range m.Gradient {
				colors[i] = x.attrColor(c)
			}
			brush := "verticalGradient"
			switch m.Direction {
			case modifier.GradientHorizontal:
				brush = "horizontalGradient"
			case modifier.GradientLinear:
				brush = "linearGradient"
			}
			return []string{fmt.Sprintf("background(Brush.%s(listOf(%s)))", brush, strings.Join(colors, ", "))}
		}
		return []string{"background(" + x.attrColor(m.Color) + ")"}
	case modifier.Border:
		return []string{fmt.Sprintf("border(%s, %s, RoundedCornerShape(%s))", dp(m.Width), x.attrColor(m.Color), dp(m.Radius))}
	case modifier.Shadow:
		return []string{fmt.Sprintf("shadow(%s, RoundedCornerShape(%s))", dp(m.Elevation), dp(m.Radius))}
	case modifier.Weight:
		return []string{"weight(" + floatLit(m.Value) + ")"}
	case modifier.Alignment:
		return []string{"align(Alignment." + string(m.Align) + ")"}
	case modifier.Opacity:
		if m.Expr != "" {
			if b, ok := bound(value.StringVal(m.Expr)); ok {
				return []string{"alpha(" + x.ref(b) + ".toFloat())"}
			}
		}
		return []string{"alpha(" + floatLit(m.Alpha) + ")"}
	}
	return nil
}

// sizeCalls renders dimensions. Match-constraint sizes are left to the
// constrainAs block.
func (x exprs) sizeCalls(s modifier.Size) []string {
	var calls []string
	axis := func(d attr.Dimension, name, fill, wrap string) {
		switch d.Kind {
		case attr.Fill:
			calls = append(calls, fill+"()")
		case attr.Wrap:
			calls = append(calls, wrap+"()")
		case attr.Fixed:
			calls = append(calls, name+"("+dp(d.Value)+")")
		case attr.Bound:
			if b, ok := bound(value.StringVal(d.Expr)); ok {
				calls = append(calls, name+"("+x.ref(b)+".dp)")
			}
		}
	}
	axis(s.Width, "width", "fillMaxWidth", "wrapContentWidth")
	axis(s.Height, "height", "fillMaxHeight", "wrapContentHeight")
	calls = append(calls, boundsCall("widthIn", s.MinWidth, s.MaxWidth)...)
	calls = append(calls, boundsCall("heightIn", s.MinHeight, s.MaxHeight)...)
	if s.AspectRatio > 0 {
		calls = append(calls, "aspectRatio("+floatLit(s.AspectRatio)+")")
	}
	return calls
}

func boundsCall(name string, lo, hi float64) []string {
	var parts []string
	if lo > 0 {
		parts = append(parts, "min = "+dp(lo))
	}
	if hi > 0 {
		parts = append(parts, "max = "+dp(hi))
	}
	if len(parts) == 0 {
		return nil
	}
	return []string{name + "(" + strings.Join(parts, ", ") + ")"}
}

func insetCalls(in attr.Insets) []string {
	switch {
	case in.IsZero():
		return nil
	case in.Uniform():
		return []string{"padding(" + dp(in.Top) + ")"}
	case in.Symmetric():
		return []string{fmt.Sprintf("padding(horizontal = %s, vertical = %s)", dp(in.Start), dp(in.Top))}
	}
	return []string{fmt.Sprintf("padding(top = %s, end = %s, bottom = %s, start = %s)", dp(in.Top), dp(in.End), dp(in.Bottom), dp(in.Start))}
}
