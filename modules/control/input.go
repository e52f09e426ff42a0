package control

import (
	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
	"github.com/vk/jsonuigo/modules/text"
)

var keyboards = map[string]string{
	"text":     "text",
	"email":    "email",
	"password": "password",
	"number":   "number",
	"decimal":  "decimal",
	"phone":    "phone",
	"url":      "uri",
}

var imeActions = map[string]string{
	"default": "default",
	"done":    "done",
	"next":    "next",
	"search":  "search",
	"send":    "send",
	"go":      "go",
}

var textAligns = map[string]string{
	"center": "center",
	"left":   "start",
	"right":  "end",
}

func handleTextField(env registry.Env, n *node.Node, op *renderop.Op) error {
	input(env, n, op)
	v := attr.Of(n)
	secure := v.Truthy("secure")
	if secure {
		op.Add("secure", renderop.ArgBool, value.BoolVal(true))
		op.Need(renderop.ImportPasswordMask)
	}
	if style, _ := v.String("borderStyle"); secure || style == "RoundedRect" || style == "Line" {
		op.Add("outlined", renderop.ArgBool, value.BoolVal(true))
		op.Need(renderop.ImportOutlinedField)
	}
	op.Add("singleLine", renderop.ArgBool, value.BoolVal(true))
	return nil
}

func handleTextView(env registry.Env, n *node.Node, op *renderop.Op) error {
	input(env, n, op)
	v := attr.Of(n)
	if lines, ok := v.Number("maxLines", "lines"); ok && lines > 0 {
		op.Add("maxLines", renderop.ArgNumber, value.NumberVal(lines))
	}
	op.Add("singleLine", renderop.ArgBool, value.BoolVal(false))
	return nil
}

// input copies the attributes shared by single and multi line fields.
func input(env registry.Env, n *node.Node, op *renderop.Op) {
	v := attr.Of(n)
	if !args.State(op, v, "value", renderop.ArgText, "text", "bind") {
		op.Add("value", renderop.ArgText, value.StringVal(""))
	}
	args.Text(op, v, "placeholder", "hint", "placeholder")
	args.Color(env, op, v, "placeholderColor", "hintColor")
	args.Number(op, v, "placeholderFontSize", renderop.ArgSp, "hintFontSize")
	text.Style(env, n, op)
	if args.Enum(env, op, v, "textAlign", textAligns, "textAlign") {
		op.Need(renderop.ImportTextAlign)
	}
	if args.Enum(env, op, v, "keyboardType", keyboards, "input") {
		op.Need(renderop.ImportKeyboardType)
	}
	if args.Enum(env, op, v, "imeAction", imeActions, "returnKeyType") {
		op.Need(renderop.ImportKeyboardType)
	}
	args.Bool(op, v, "enabled", "enabled")
}
