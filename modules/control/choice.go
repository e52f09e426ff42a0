package control

import (
	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

func handleSelectBox(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	if !args.List(op, v, "options", "items", "options") {
		op.Add("options", renderop.ArgList, value.ArrayVal())
	}
	if !args.State(op, v, "selection", renderop.ArgText, "bind", "selectedItem") {
		op.Add("selection", renderop.ArgText, value.StringVal(""))
	}
	args.Text(op, v, "placeholder", "placeholder", "hint")
	args.Enum(env, op, v, "mode", map[string]string{"normal": "list", "date": "date", "time": "time", "datetime": "dateTime"}, "selectItemType")
	op.Need(renderop.ImportSelectBox)
	return nil
}

func handleSegment(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	if !args.List(op, v, "items", "items", "segments") {
		op.Add("items", renderop.ArgList, value.ArrayVal())
	}
	if !args.State(op, v, "selectedIndex", renderop.ArgNumber, "bind", "selectedIndex") {
		op.Add("selectedIndex", renderop.ArgNumber, value.NumberVal(0))
	}
	args.Color(env, op, v, "selectedColor", "selectedSegmentTintColor", "selectedColor")
	args.Color(env, op, v, "contentColor", "tintColor")
	op.Need(renderop.ImportSegment)
	return nil
}
