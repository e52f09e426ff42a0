package control

import (
	"fmt"

	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

func handleSlider(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	lo, hi := v.NumberOr("min", 0), v.NumberOr("max", 1)
	if hi <= lo {
		return fmt.Errorf("slider range is empty: min %s, max %s", value.FormatNumber(lo), value.FormatNumber(hi))
	}
	if !args.State(op, v, "value", renderop.ArgNumber, "bind", "value") {
		op.Add("value", renderop.ArgNumber, value.NumberVal(lo))
	}
	op.Add("min", renderop.ArgNumber, value.NumberVal(lo))
	op.Add("max", renderop.ArgNumber, value.NumberVal(hi))
	if step, ok := v.Number("step"); ok && step > 0 {
		// Discrete sliders count the stops between the two ends.
		op.Add("steps", renderop.ArgNumber, value.NumberVal(max(0, (hi-lo)/step-1)))
	}
	colored := args.Color(env, op, v, "activeTrackColor", "minimumTrackTintColor")
	colored = args.Color(env, op, v, "inactiveTrackColor", "maximumTrackTintColor") || colored
	colored = args.Color(env, op, v, "thumbColor", "thumbTintColor") || colored
	if colored {
		op.Need(renderop.ImportSliderColors)
	}
	args.Bool(op, v, "enabled", "enabled")
	return nil
}

var progressStyles = map[string]string{
	"default":  "linear",
	"bar":      "linear",
	"linear":   "linear",
	"circle":   "circular",
	"circular": "circular",
}

func handleProgress(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	if !args.Number(op, v, "progress", renderop.ArgNumber, "bind", "value", "progress") {
		op.Add("progress", renderop.ArgNumber, value.NumberVal(0))
	}
	if !args.Enum(env, op, v, "style", progressStyles, "style") {
		op.Add("style", renderop.ArgEnum, value.StringVal("linear"))
	}
	args.Color(env, op, v, "color", "progressTintColor")
	args.Color(env, op, v, "trackColor", "trackTintColor")
	op.Need(renderop.ImportProgress)
	return nil
}

var indicatorSizes = map[string]float64{
	"small":  20,
	"medium": 36,
	"large":  48,
}

func handleIndicator(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	if !args.Bool(op, v, "animating", "animating") {
		op.Add("animating", renderop.ArgBool, value.BoolVal(true))
	}
	style := v.StringOr("style", "medium")
	diameter, ok := indicatorSizes[style]
	if !ok {
		env.Report(renderop.Warning, fmt.Errorf("unsupported indicator style '%s'", style))
		diameter = indicatorSizes["medium"]
	}
	op.Add("diameter", renderop.ArgDp, value.NumberVal(diameter))
	args.Color(env, op, v, "color", "color")
	args.Color(env, op, v, "trackColor", "trackColor")
	args.Number(op, v, "strokeWidth", renderop.ArgDp, "strokeWidth")
	op.Need(renderop.ImportProgress)
	return nil
}
