// Package text renders labels and buttons.
package text

import (
	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Text and Button handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunc(renderop.KindText, handleText)
	r.RegisterFunc(renderop.KindButton, handleButton)
}

var weights = map[string]string{
	"bold":     "bold",
	"semibold": "semibold",
	"medium":   "medium",
	"normal":   "normal",
	"regular":  "normal",
	"light":    "light",
	"thin":     "thin",
}

var alignments = map[string]string{
	"center": "center",
	"left":   "start",
	"start":  "start",
	"right":  "end",
	"end":    "end",
}

var overflows = map[string]string{
	"clip": "clip",
	"tail": "ellipsis",
	"word": "ellipsis",
}

// Style copies the font attributes shared by every text-bearing component.
func Style(env registry.Env, n *node.Node, op *renderop.Op) {
	v := attr.Of(n)
	args.Number(op, v, "fontSize", renderop.ArgSp, "fontSize")
	args.Color(env, op, v, "color", "fontColor", "textColor")

	// `font` is either a weight keyword or a font family name.
	if v.Has("fontWeight") {
		args.Enum(env, op, v, "fontWeight", weights, "fontWeight")
	} else if f, ok := v.String("font"); ok {
		if kw, isWeight := weights[f]; isWeight {
			op.Add("fontWeight", renderop.ArgEnum, value.StringVal(kw))
		} else {
			op.Add("fontFamily", renderop.ArgText, value.StringVal(f))
		}
	}
}

func handleText(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	args.TextOr(op, v, "text", "", "text")
	Style(env, n, op)

	if !args.Enum(env, op, v, "textAlign", alignments, "textAlign") && v.Truthy("centerHorizontal") {
		op.Add("textAlign", renderop.ArgEnum, value.StringVal("center"))
	}
	if op.HasArg("textAlign") {
		op.Need(renderop.ImportTextAlign)
	}

	underline, strike := v.Truthy("underline"), v.Truthy("strikethrough")
	var decorations []value.Value
	if underline {
		decorations = append(decorations, value.StringVal("underline"))
	}
	if strike {
		decorations = append(decorations, value.StringVal("lineThrough"))
	}
	if len(decorations) > 0 {
		op.Add("textDecoration", renderop.ArgList, value.ArrayVal(decorations...))
		op.Need(renderop.ImportTextDecoration)
	}

	// lines: 0 means unlimited.
	if lines, ok := v.Number("lines"); ok && lines > 0 {
		op.Add("maxLines", renderop.ArgNumber, value.NumberVal(lines))
	}
	args.Enum(env, op, v, "overflow", overflows, "lineBreakMode")
	return nil
}

func handleButton(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	args.TextOr(op, v, "text", "Button", "text")
	Style(env, n, op)
	args.Color(env, op, v, "disabledContainerColor", "disabledBackground")
	args.Color(env, op, v, "disabledContentColor", "disabledFontColor")
	args.Color(env, op, v, "pressedColor", "hilightColor", "highlightColor")
	if !args.Bool(op, v, "enabled", "enabled") {
		if disabled, ok := v.Bool("disabled"); ok {
			op.Add("enabled", renderop.ArgBool, value.BoolVal(!disabled))
		}
	}
	op.Need(renderop.ImportClickable)
	return nil
}
