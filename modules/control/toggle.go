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

// checked copies the on/off state of a toggle, defaulting to off.
func checked(op *renderop.Op, v attr.View) {
	if !args.State(op, v, "checked", renderop.ArgBool, "bind", "isOn", "checked") {
		op.Add("checked", renderop.ArgBool, value.BoolVal(false))
	}
}

func handleSwitch(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	checked(op, v)
	colored := args.Color(env, op, v, "checkedTrackColor", "onTintColor", "tintColor")
	colored = args.Color(env, op, v, "thumbColor", "thumbTintColor") || colored
	if colored {
		op.Need(renderop.ImportSwitchColors)
	}
	args.Bool(op, v, "enabled", "enabled")
	return nil
}

func handleCheck(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	checked(op, v)
	args.Text(op, v, "label", "label", "text")
	text.Style(env, n, op)
	colored := args.Color(env, op, v, "checkedColor", "checkColor")
	colored = args.Color(env, op, v, "uncheckedColor", "uncheckedColor") || colored
	if colored {
		op.Need(renderop.ImportCheckboxColors)
	}
	args.Number(op, v, "spacing", renderop.ArgDp, "spacing")
	args.Bool(op, v, "enabled", "enabled")
	return nil
}

// A Radio is either a single button in a named group or a whole group built
// from an item list.
func handleRadio(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	args.Text(op, v, "group", "group")
	args.Text(op, v, "label", "text", "label")
	args.List(op, v, "items", "items", "options")
	if !args.State(op, v, "selected", renderop.ArgText, "bind", "selectedValue") {
		// A lone button selects its own id.
		if id := n.ID(); id != "" && !op.HasArg("items") {
			op.Add("value", renderop.ArgText, value.StringVal(id))
		}
	}
	text.Style(env, n, op)
	colored := args.Color(env, op, v, "selectedColor", "selectedColor", "tintColor")
	colored = args.Color(env, op, v, "unselectedColor", "unselectedColor") || colored
	if colored {
		op.Need(renderop.ImportRadioColors)
	}
	return nil
}
