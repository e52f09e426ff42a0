package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/constraint"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/renderop"
)

// emitter writes the source of one op tree.
type emitter struct {
	p *printer
	x exprs
	// linear is set while emitting the children of a Column or a Row.
	linear bool
	// extra collects imports needed by constructs the ops do not name.
	extra []string
	pkg   string
}

func (e *emitter) need(lines ...string) {
	e.extra = append(e.extra, lines...)
}

// emit writes op, wrapping it when its visibility is declared. calls are
// additional modifier calls supplied by the parent, e.g. constrainAs.
func (e *emitter) emit(op *renderop.Op, calls ...string) {
	var params []param
	if !op.Visibility.IsNull() {
		if _, isBound := bound(op.Visibility); !isBound && strings.EqualFold(op.Visibility.String(), "gone") {
			return
		}
		params = append(params, param{"visibility", e.x.text(op.Visibility)})
	}
	if !op.Hidden.IsNull() {
		params = append(params, param{"hidden", e.x.boolean(op.Hidden)})
	}
	if len(params) == 0 {
		e.component(op, calls...)
		return
	}
	e.p.call("VisibilityWrapper", params, func() { e.component(op, calls...) })
}

func (e *emitter) component(op *renderop.Op, calls ...string) {
	if op.IsPlaceholder() {
		e.placeholder(op, calls...)
		return
	}
	switch op.Kind {
	case renderop.KindContainer, renderop.KindGradient:
		e.container(op, nil, calls...)
	case renderop.KindScroll:
		e.scroll(op, calls...)
	case renderop.KindSafeArea:
		e.safeArea(op, calls...)
	case renderop.KindBlur:
		e.blur(op, calls...)
	case renderop.KindText:
		e.text(op, calls...)
	case renderop.KindButton:
		e.button(op, calls...)
	case renderop.KindImage, renderop.KindNetworkImage, renderop.KindCircleImage:
		e.image(op, calls...)
	case renderop.KindTextField, renderop.KindTextView:
		e.textField(op, calls...)
	case renderop.KindSwitch:
		e.toggle(op, calls...)
	case renderop.KindCheck:
		e.check(op, calls...)
	case renderop.KindRadio:
		e.radio(op, calls...)
	case renderop.KindSlider:
		e.slider(op, calls...)
	case renderop.KindProgress:
		e.progress(op, calls...)
	case renderop.KindIndicator:
		e.indicator(op, calls...)
	case renderop.KindSelectBox:
		e.selectBox(op, calls...)
	case renderop.KindSegment:
		e.segment(op, calls...)
	case renderop.KindCollection, renderop.KindTable:
		e.collection(op, calls...)
	case renderop.KindWeb:
		e.web(op, calls...)
	case renderop.KindTabView:
		e.tabView(op, calls...)
	case renderop.KindSpacer:
		e.spacer(op, calls...)
	case renderop.KindInclude:
		e.include(op, calls...)
	default:
		e.placeholder(op, calls...)
	}
}

// withModifier appends the modifier parameter when the chain is not empty.
func (e *emitter) withModifier(params []param, op *renderop.Op, calls ...string) []param {
	if m := e.x.chain(op.Modifiers, calls...); m != "" {
		params = append(params, param{"modifier", m})
	}
	return params
}

// args renders the named arguments that are present, in order. A name of
// the form "target=source" renames the argument.
func (e *emitter) args(op *renderop.Op, names ...string) []param {
	var out []param
	for _, spec := range names {
		target, source, found := strings.Cut(spec, "=")
		if !found {
			source = target
		}
		for _, a := range op.Args {
			if a.Name == source {
				out = append(out, param{target, e.x.arg(a)})
				break
			}
		}
	}
	return out
}

func argOf(op *renderop.Op, name string) (renderop.Arg, bool) {
	for _, a := range op.Args {
		if a.Name == name {
			return a, true
		}
	}
	return renderop.Arg{}, false
}

func flag(op *renderop.Op, name string) bool {
	v, ok := op.Arg(name)
	if !ok {
		return false
	}
	t, _ := v.AsBool()
	return t
}

func (e *emitter) placeholder(op *renderop.Op, calls ...string) {
	note := "Unknown component: " + op.Component
	if op.Err != nil {
		note = "Error: " + strings.Join(strings.Fields(op.Err.Error()), " ")
	}
	e.p.call("Box", e.withModifier(nil, op, calls...), func() {
		e.p.line("// " + note)
	})
}

// handler returns the lambda invoking the handler bound to one of events.
func (e *emitter) handler(op *renderop.Op, events ...string) string {
	for _, name := range events {
		for _, ev := range op.Events {
			if ev.Name == name {
				return fmt.Sprintf("{ data.%s?.invoke() }", identifier(ev.Handler))
			}
		}
	}
	return "{ }"
}

// identifier turns an anchor or handler name into a valid identifier.
func identifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('v')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "v"
	}
	return b.String()
}

// --- containers

func arrangement(main layout.MainArrangement, spacing float64, row bool) string {
	switch main {
	case layout.ArrangeDefault:
		return ""
	case layout.ArrangeSpacedBy:
		return "Arrangement.spacedBy(" + dp(spacing) + ")"
	case layout.ArrangeStart, layout.ArrangeTop:
		if row {
			return "Arrangement.Start"
		}
		return "Arrangement.Top"
	case layout.ArrangeEnd, layout.ArrangeBottom:
		if row {
			return "Arrangement.End"
		}
		return "Arrangement.Bottom"
	}
	return "Arrangement." + string(main)
}

func layoutParams(c *renderop.Container) []param {
	a := c.Arrangement
	var out []param
	switch c.Layout {
	case layout.Column:
		if s := arrangement(a.Main, a.Spacing, false); s != "" {
			out = append(out, param{"verticalArrangement", s})
		}
		if a.Cross != "" {
			out = append(out, param{"horizontalAlignment", "Alignment." + string(a.Cross)})
		}
	case layout.Row:
		if s := arrangement(a.Main, a.Spacing, true); s != "" {
			out = append(out, param{"horizontalArrangement", s})
		}
		if a.Cross != "" {
			out = append(out, param{"verticalAlignment", "Alignment." + string(a.Cross)})
		}
	case layout.Box:
		if a.Content != "" {
			out = append(out, param{"contentAlignment", "Alignment." + string(a.Content)})
		}
	}
	return out
}

// container writes a layout call for op and its children. own are calls
// the component adds after its modifier pipeline.
func (e *emitter) container(op *renderop.Op, own []string, calls ...string) {
	c := op.Container
	if c == nil {
		c = &renderop.Container{Layout: layout.Box}
	}
	params := e.withModifier(nil, op, append(own, calls...)...)
	params = append(params, layoutParams(c)...)

	body := func() { e.children(op) }
	if len(op.Children) == 0 {
		body = nil
	}
	e.p.call(c.Layout.String(), params, body)
}

func (e *emitter) children(op *renderop.Op) {
	saved := e.linear
	defer func() { e.linear = saved }()
	e.linear = op.Container != nil && op.Container.Layout.Linear()

	if op.Container == nil || op.Container.Layout != layout.ConstraintScope || op.Container.Scope == nil {
		for i := range op.Children {
			e.emit(&op.Children[i])
		}
		return
	}

	scope := op.Container.Scope
	for _, ref := range scope.Refs() {
		e.p.line(fmt.Sprintf("val %s = createRef()", identifier(ref)))
	}
	e.p.line("")
	for i := range op.Children {
		child := &op.Children[i]
		e.emit(child, constrainAs(scope, child))
	}
}

func edgeName(edge constraint.Edge) string {
	return edge.String()
}

func targetName(t constraint.Target) string {
	if t.Parent {
		return "parent"
	}
	return identifier(t.Ref)
}

// constrainAs renders the constraint block of a child in a constraint scope.
func constrainAs(scope *constraint.Scope, child *renderop.Op) string {
	var lines []string
	for _, c := range child.Constraints {
		target := targetName(c.Target)
		switch c.Edge {
		case constraint.CenterX:
			lines = append(lines, "centerHorizontallyTo("+target+")")
		case constraint.CenterY:
			lines = append(lines, "centerVerticallyTo("+target+")")
		default:
			link := fmt.Sprintf("%s.linkTo(%s.%s", edgeName(c.Edge), target, edgeName(c.TargetEdge))
			if c.Margin != 0 {
				link += ", margin = " + dp(c.Margin)
			}
			lines = append(lines, link+")")
		}
	}
	if rc, ok := scope.Child(child.Anchor); ok {
		if rc.Width.Kind == attr.MatchConstraint {
			lines = append(lines, "width = Dimension.fillToConstraints")
		}
		if rc.Height.Kind == attr.MatchConstraint {
			lines = append(lines, "height = Dimension.fillToConstraints")
		}
	}
	head := "constrainAs(" + identifier(child.Anchor) + ") {"
	if len(lines) == 0 {
		return head + "}"
	}
	inner := indentUnit + indentUnit
	return head + "\n" + inner + strings.Join(lines, "\n"+inner) + "\n" + indentUnit + "}"
}

func (e *emitter) scroll(op *renderop.Op, calls ...string) {
	own := []string{"verticalScroll(rememberScrollState())"}
	if v, _ := op.Arg("axis"); v.String() == "horizontal" {
		own = []string{"horizontalScroll(rememberScrollState())"}
	}
	if flag(op, "keyboardAvoidance") {
		own = append(own, "imePadding()")
	}
	e.container(op, own, calls...)
}

func (e *emitter) safeArea(op *renderop.Op, calls ...string) {
	v, _ := op.Arg("edges")
	edges := map[string]bool{}
	for _, el := range v.Elements() {
		edges[el.String()] = true
	}
	var own []string
	switch {
	case edges["all"]:
		own = append(own, "systemBarsPadding()")
	default:
		if edges["top"] {
			own = append(own, "statusBarsPadding()")
		}
		if edges["bottom"] {
			own = append(own, "navigationBarsPadding()")
		}
		if edges["left"] || edges["right"] {
			own = append(own, "displayCutoutPadding()")
		}
	}
	e.container(op, own, calls...)
}

func (e *emitter) blur(op *renderop.Op, calls ...string) {
	var own []string
	if a, ok := argOf(op, "radius"); ok {
		own = append(own, "blur("+e.x.arg(a)+")")
	}
	if a, ok := argOf(op, "tint"); ok {
		alpha, _ := op.Arg("tintAlpha")
		f, _ := alpha.AsNumber()
		own = append(own, fmt.Sprintf("background(%s.copy(alpha = %s))", e.x.arg(a), floatLit(f)))
	}
	e.container(op, own, calls...)
}

// --- text

func (e *emitter) styleParams(op *renderop.Op) []param {
	params := e.args(op, "fontSize", "color", "fontWeight")
	if v, ok := op.Arg("textDecoration"); ok {
		var parts []string
		for _, d := range v.Elements() {
			parts = append(parts, "TextDecoration."+enumMember(d.String()))
		}
		expr := strings.Join(parts, "")
		if len(parts) > 1 {
			expr = "TextDecoration.combine(listOf(" + strings.Join(parts, ", ") + "))"
		}
		if expr != "" {
			params = append(params, param{"textDecoration", expr})
		}
	}
	return params
}

func (e *emitter) text(op *renderop.Op, calls ...string) {
	params := e.args(op, "text")
	params = append(params, e.styleParams(op)...)
	params = append(params, e.args(op, "textAlign", "maxLines", "overflow")...)
	if _, ok := op.Arg("overflow"); ok {
		e.need("androidx.compose.ui.text.style.TextOverflow")
	}
	e.p.call("Text", e.withModifier(params, op, calls...), nil)
}

func (e *emitter) button(op *renderop.Op, calls ...string) {
	params := []param{{"onClick", e.handler(op, "onclick", "onClick")}}
	params = append(params, e.args(op, "enabled")...)
	if colors := e.args(op, "disabledContainerColor", "disabledContentColor"); len(colors) > 0 {
		params = append(params, param{"colors", "ButtonDefaults.buttonColors(" + inline(colors) + ")"})
	}
	params = e.withModifier(params, op, calls...)

	label := append(e.args(op, "text"), e.styleParams(op)...)
	e.p.call("Button", params, func() {
		e.p.call("Text", label, nil)
	})
}

func inline(params []param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.name + " = " + p.value
	}
	return strings.Join(parts, ", ")
}

// --- media

func (e *emitter) image(op *renderop.Op, calls ...string) {
	var own []string
	if a, ok := argOf(op, "diameter"); ok {
		own = append(own, "size("+e.x.arg(a)+")")
	}
	if op.Kind == renderop.KindCircleImage {
		own = append(own, "clip(CircleShape)")
	}

	var params []param
	name := "Image"
	if url, ok := argOf(op, "url"); ok {
		name = "AsyncImage"
		params = append(params, param{"model", e.x.arg(url)})
		for _, res := range []string{"placeholder", "error"} {
			if v, ok := op.Arg(res); ok {
				params = append(params, param{res, e.resource(v.String())})
			}
		}
	} else {
		v, _ := op.Arg("resource")
		params = append(params, param{"painter", e.resource(v.String())})
	}
	if d := e.args(op, "contentDescription"); len(d) > 0 {
		params = append(params, d...)
	} else {
		params = append(params, param{"contentDescription", "null"})
	}
	params = append(params, e.args(op, "contentScale")...)
	e.p.call(name, e.withModifier(params, op, append(own, calls...)...), nil)
}

func (e *emitter) resource(name string) string {
	e.need(e.pkg + ".R")
	return "painterResource(id = R.drawable." + identifier(name) + ")"
}

func (e *emitter) web(op *renderop.Op, calls ...string) {
	url, _ := argOf(op, "url")
	settings := []string{"settings.javaScriptEnabled = " + e.argOr(op, "javaScriptEnabled", "true")}
	if a, ok := argOf(op, "allowZoom"); ok {
		settings = append(settings, "settings.setSupportZoom("+e.x.arg(a)+")")
	}
	if a, ok := argOf(op, "userAgent"); ok {
		settings = append(settings, "settings.userAgentString = "+e.x.arg(a))
	}
	settings = append(settings, "loadUrl("+e.x.arg(url)+")")

	factory := "{ context ->\n" + indentUnit + "WebView(context).apply {\n"
	for _, s := range settings {
		factory += indentUnit + indentUnit + s + "\n"
	}
	factory += indentUnit + "}\n}"
	e.p.call("AndroidView", e.withModifier([]param{{"factory", factory}}, op, calls...), nil)
}

func (e *emitter) argOr(op *renderop.Op, name, def string) string {
	if a, ok := argOf(op, name); ok {
		return e.x.arg(a)
	}
	return def
}

// --- structure

func (e *emitter) spacer(op *renderop.Op, calls ...string) {
	var own []string
	if flag(op, "flexible") && e.linear {
		own = append(own, "weight(1f)")
	}
	e.p.call("Spacer", e.withModifier(nil, op, append(own, calls...)...), nil)
}

func (e *emitter) include(op *renderop.Op, calls ...string) {
	if len(op.Modifiers) == 0 && len(calls) == 0 {
		for i := range op.Children {
			e.emit(&op.Children[i])
		}
		return
	}
	e.container(op, nil, calls...)
}

func (e *emitter) tabView(op *renderop.Op, calls ...string) {
	selected := "selectedTab"
	update := func(i int) string { return fmt.Sprintf("{ selectedTab = %d }", i) }
	if a, ok := argOf(op, "selectedIndex"); ok {
		if b, isBound := bound(a.Value); isBound {
			selected = e.x.ref(b)
			update = func(i int) string {
				return fmt.Sprintf("{ viewModel.updateData(mapOf(%s to %d)) }", quote(b.Path.String()), i)
			}
		}
	}

	titles, _ := op.Arg("titles")
	e.p.call("Column", e.withModifier(nil, op, calls...), func() {
		if selected == "selectedTab" {
			e.need("androidx.compose.runtime.getValue", "androidx.compose.runtime.mutableStateOf",
				"androidx.compose.runtime.remember", "androidx.compose.runtime.setValue")
			e.p.line("var selectedTab by remember { mutableStateOf(0) }")
		}
		rowParams := []param{{"selectedTabIndex", selected}}
		rowParams = append(rowParams, e.args(op, "containerColor=barColor")...)
		e.p.call("TabRow", rowParams, func() {
			for i, t := range titles.Elements() {
				tab := []param{
					{"selected", fmt.Sprintf("%s == %d", selected, i)},
					{"onClick", update(i)},
				}
				if flag(op, "showLabels") {
					tab = append(tab, param{"text", "{ Text(" + e.x.text(t) + ") }"})
				}
				tab = append(tab, e.args(op, "selectedContentColor=selectedColor", "unselectedContentColor=unselectedColor")...)
				e.p.call("Tab", tab, nil)
			}
		})
		e.p.block("when ("+selected+")", func() {
			for i := range op.Children {
				e.p.block(fmt.Sprintf("%d ->", i), func() { e.emit(&op.Children[i]) })
			}
		})
	})
}

// --- inputs

func (e *emitter) onChange(op *renderop.Op, name, param string) string {
	if a, ok := argOf(op, name); ok && a.Type == renderop.ArgState {
		return e.x.update(a, param)
	}
	return "{ }"
}

func (e *emitter) textField(op *renderop.Op, calls ...string) {
	name := "TextField"
	if flag(op, "outlined") {
		name = "OutlinedTextField"
	}
	params := e.args(op, "value")
	params = append(params, param{"onValueChange", e.onChange(op, "value", "it")})
	if a, ok := argOf(op, "placeholder"); ok {
		ph := []param{{"text", e.x.arg(a)}}
		ph = append(ph, e.args(op, "color=placeholderColor", "fontSize=placeholderFontSize")...)
		params = append(params, param{"placeholder", "{ Text(" + inline(ph) + ") }"})
	}
	params = append(params, e.args(op, "singleLine", "maxLines", "enabled")...)
	if flag(op, "secure") {
		params = append(params, param{"visualTransformation", "PasswordVisualTransformation()"})
	}
	if kb := e.args(op, "keyboardType", "imeAction"); len(kb) > 0 {
		params = append(params, param{"keyboardOptions", "KeyboardOptions(" + inline(kb) + ")"})
	}
	if style := append(e.styleParams(op), e.args(op, "textAlign")...); len(style) > 0 {
		e.need("androidx.compose.ui.text.TextStyle")
		params = append(params, param{"textStyle", "TextStyle(" + inline(style) + ")"})
	}
	e.p.call(name, e.withModifier(params, op, calls...), nil)
}

func (e *emitter) toggle(op *renderop.Op, calls ...string) {
	params := e.args(op, "checked")
	params = append(params, param{"onCheckedChange", e.onChange(op, "checked", "it")})
	params = append(params, e.args(op, "enabled")...)
	if colors := e.args(op, "checkedTrackColor", "checkedThumbColor=thumbColor"); len(colors) > 0 {
		params = append(params, param{"colors", "SwitchDefaults.colors(" + inline(colors) + ")"})
	}
	e.p.call("Switch", e.withModifier(params, op, calls...), nil)
}

func (e *emitter) check(op *renderop.Op, calls ...string) {
	box := e.args(op, "checked")
	box = append(box, param{"onCheckedChange", e.onChange(op, "checked", "it")})
	box = append(box, e.args(op, "enabled")...)
	if colors := e.args(op, "checkedColor", "uncheckedColor"); len(colors) > 0 {
		box = append(box, param{"colors", "CheckboxDefaults.colors(" + inline(colors) + ")"})
	}

	label, hasLabel := argOf(op, "label")
	if !hasLabel {
		e.p.call("Checkbox", e.withModifier(box, op, calls...), nil)
		return
	}
	row := e.withModifier(nil, op, calls...)
	row = append(row, param{"verticalAlignment", "Alignment.CenterVertically"})
	e.p.call("Row", row, func() {
		e.p.call("Checkbox", box, nil)
		if sp, ok := argOf(op, "spacing"); ok {
			e.p.line("Spacer(modifier = Modifier.width(" + e.x.arg(sp) + "))")
		}
		e.p.call("Text", append([]param{{"text", e.x.arg(label)}}, e.styleParams(op)...), nil)
	})
}

func (e *emitter) radio(op *renderop.Op, calls ...string) {
	selected := "\"\""
	sel, hasSel := argOf(op, "selected")
	if hasSel {
		selected = e.x.arg(sel)
	}
	pick := func(v string) string {
		if hasSel && sel.Type == renderop.ArgState {
			b, _ := bound(sel.Value)
			return fmt.Sprintf("{ viewModel.updateData(mapOf(%s to %s)) }", quote(b.Path.String()), v)
		}
		return "{ }"
	}
	colors := e.args(op, "selectedColor", "unselectedColor")
	button := func(isSelected, onClick string) []param {
		params := []param{{"selected", isSelected}, {"onClick", onClick}}
		if len(colors) > 0 {
			params = append(params, param{"colors", "RadioButtonDefaults.colors(" + inline(colors) + ")"})
		}
		return params
	}

	if items, ok := argOf(op, "items"); ok {
		e.p.call("Column", e.withModifier(nil, op, calls...), func() {
			e.p.block(e.x.arg(items)+".forEach { option ->", func() {
				e.p.call("Row", []param{{"verticalAlignment", "Alignment.CenterVertically"}}, func() {
					e.p.call("RadioButton", button(selected+" == option", pick("option")), nil)
					e.p.line("Text(text = option)")
				})
			})
		})
		return
	}

	own := "false"
	if v, ok := argOf(op, "value"); ok && hasSel {
		own = selected + " == " + e.x.arg(v)
	}
	onClick := "{ }"
	if v, ok := argOf(op, "value"); ok {
		onClick = pick(e.x.arg(v))
	}
	row := e.withModifier(nil, op, calls...)
	row = append(row, param{"verticalAlignment", "Alignment.CenterVertically"})
	e.p.call("Row", row, func() {
		e.p.call("RadioButton", button(own, onClick), nil)
		if label, ok := argOf(op, "label"); ok {
			e.p.call("Text", []param{{"text", e.x.arg(label)}}, nil)
		}
	})
}

func (e *emitter) slider(op *renderop.Op, calls ...string) {
	v, _ := argOf(op, "value")
	lo, _ := op.Arg("min")
	hi, _ := op.Arg("max")
	loF, _ := lo.AsNumber()
	hiF, _ := hi.AsNumber()

	params := []param{
		{"value", e.x.float(v.Value)},
		{"onValueChange", e.onChange(op, "value", "it")},
		{"valueRange", floatLit(loF) + ".." + floatLit(hiF)},
	}
	params = append(params, e.args(op, "steps", "enabled")...)
	if colors := e.args(op, "activeTrackColor", "inactiveTrackColor", "thumbColor"); len(colors) > 0 {
		params = append(params, param{"colors", "SliderDefaults.colors(" + inline(colors) + ")"})
	}
	e.p.call("Slider", e.withModifier(params, op, calls...), nil)
}

func (e *emitter) progress(op *renderop.Op, calls ...string) {
	name := "LinearProgressIndicator"
	if v, _ := op.Arg("style"); v.String() == "circular" {
		name = "CircularProgressIndicator"
	}
	p, _ := op.Arg("progress")
	params := []param{{"progress", "{ " + e.x.float(p) + " }"}}
	params = append(params, e.args(op, "color", "trackColor")...)
	e.p.call(name, e.withModifier(params, op, calls...), nil)
}

func (e *emitter) indicator(op *renderop.Op, calls ...string) {
	var own []string
	if a, ok := argOf(op, "diameter"); ok {
		own = append(own, "size("+e.x.arg(a)+")")
	}
	params := e.withModifier(nil, op, append(own, calls...)...)
	params = append(params, e.args(op, "color", "trackColor", "strokeWidth")...)

	anim, _ := argOf(op, "animating")
	if b, isBound := bound(anim.Value); isBound {
		e.p.block("if ("+e.x.ref(b)+")", func() {
			e.p.call("CircularProgressIndicator", params, nil)
		})
		return
	}
	if t, _ := anim.Value.AsBool(); !t {
		return
	}
	e.p.call("CircularProgressIndicator", params, nil)
}

func (e *emitter) selectBox(op *renderop.Op, calls ...string) {
	params := e.args(op, "value=selection", "options")
	params = append(params, param{"onValueChange", e.onChange(op, "selection", "it")})
	params = append(params, e.args(op, "placeholder", "mode")...)
	e.p.call("SelectBox", e.withModifier(params, op, calls...), nil)
}

func (e *emitter) segment(op *renderop.Op, calls ...string) {
	params := e.args(op, "items", "selectedIndex")
	params = append(params, param{"onSelectionChange", e.onChange(op, "selectedIndex", "it")})
	params = append(params, e.args(op, "selectedColor", "contentColor")...)
	e.p.call("Segment", e.withModifier(params, op, calls...), nil)
}

// --- collections

func paddingValues(in attr.Insets) string {
	if in.Uniform() {
		return "PaddingValues(" + dp(in.Top) + ")"
	}
	return fmt.Sprintf("PaddingValues(top = %s, end = %s, bottom = %s, start = %s)", dp(in.Top), dp(in.End), dp(in.Bottom), dp(in.Start))
}

func (e *emitter) collection(op *renderop.Op, calls ...string) {
	g := op.Grid
	if g == nil {
		e.placeholder(op, calls...)
		return
	}
	cfg := g.Config
	grid := g.Plan.Columns > 1

	var name string
	var params []param
	lineAxis, crossAxis := "verticalArrangement", "horizontalArrangement"
	if cfg.Horizontal {
		lineAxis, crossAxis = crossAxis, lineAxis
	}
	switch {
	case grid && cfg.Horizontal:
		name = "LazyHorizontalGrid"
		params = append(params, param{"rows", fmt.Sprintf("GridCells.Fixed(%d)", g.Plan.Columns)})
	case grid:
		name = "LazyVerticalGrid"
		params = append(params, param{"columns", fmt.Sprintf("GridCells.Fixed(%d)", g.Plan.Columns)})
	case cfg.Horizontal:
		name = "LazyRow"
	default:
		name = "LazyColumn"
	}
	params = e.withModifier(params, op, calls...)
	if !cfg.ContentPadding.IsZero() {
		params = append(params, param{"contentPadding", paddingValues(cfg.ContentPadding)})
	}
	if cfg.LineSpacing > 0 {
		params = append(params, param{lineAxis, "Arrangement.spacedBy(" + dp(cfg.LineSpacing) + ")"})
	}
	if grid && cfg.ColumnSpacing > 0 {
		params = append(params, param{crossAxis, "Arrangement.spacedBy(" + dp(cfg.ColumnSpacing) + ")"})
	}

	items := "emptyList<Any>()"
	if a, ok := argOf(op, "items"); ok {
		if b, isBound := bound(a.Value); isBound {
			items = e.x.ref(b)
		}
	}

	e.p.call(name, params, func() {
		for si, sec := range g.Sections {
			sectionItems := items
			if len(g.Sections) > 1 && items != "emptyList<Any>()" {
				sectionItems = fmt.Sprintf("%s[%d]", items, si)
			}
			e.sectionItem(sec.Header, grid)
			if sec.Template != nil {
				head := "itemsIndexed(" + sectionItems + ")"
				if grid {
					head = fmt.Sprintf("itemsIndexed(%s, span = { _, _ -> GridItemSpan(%d) })", sectionItems, sec.Span)
				}
				e.p.block(head+" { index, item ->", func() { e.cell(op, sec.Template) })
			}
			e.sectionItem(sec.Footer, grid)
		}
	})
}

func (e *emitter) sectionItem(op *renderop.Op, grid bool) {
	if op == nil {
		return
	}
	head := "item"
	if grid {
		head = "item(span = { GridItemSpan(maxLineSpan) })"
	}
	e.p.block(head, func() { e.emit(op) })
}

// cell writes one cell template with bindings read from the item.
func (e *emitter) cell(coll *renderop.Op, tmpl *renderop.Op) {
	saved := e.x
	e.x = exprs{root: "item", cell: true}
	defer func() { e.x = saved }()

	if h, ok := argOf(coll, "rowHeight"); ok {
		e.p.call("Box", []param{{"modifier", "Modifier.height(" + saved.arg(h) + ")"}}, func() { e.emit(tmpl) })
	} else {
		e.emit(tmpl)
	}
	if flag(coll, "separator") {
		div := "HorizontalDivider()"
		if in, ok := coll.Arg("separatorInset"); ok {
			f, _ := in.AsNumber()
			div = "HorizontalDivider(modifier = Modifier.padding(start = " + dp(f) + "))"
		}
		e.p.line(div)
	}
}
