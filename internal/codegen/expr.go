package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// enumTypes maps argument names to the target enum class of their keyword.
var enumTypes = map[string]string{
	"textAlign":    "TextAlign",
	"fontWeight":   "FontWeight",
	"overflow":     "TextOverflow",
	"contentScale": "ContentScale",
	"keyboardType": "KeyboardType",
	"imeAction":    "ImeAction",
}

var enumMembers = map[string]string{
	"semibold":   "SemiBold",
	"fillBounds": "FillBounds",
	"uri":        "Uri",
}

// quote returns s as a string literal. `$` is escaped so literal text never
// turns into a template.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func escapeTemplate(s string) string {
	q := quote(s)
	return q[1 : len(q)-1]
}

// dataRef is the property access for a binding path below root.
func dataRef(root string, path binding.Path) string {
	var b strings.Builder
	b.WriteString(root)
	for _, seg := range path {
		b.WriteByte('.')
		b.WriteString(seg.Name)
		if seg.HasIndex() {
			fmt.Fprintf(&b, "[%d]", seg.Index)
		}
	}
	return b.String()
}

// bound returns the parsed binding of a string value, if it has a valid one.
func bound(v value.Value) (*binding.Binding, bool) {
	s, ok := v.AsString()
	if !ok || !binding.HasBinding(s) {
		return nil, false
	}
	b, ok := binding.Parse(s)
	if !ok || b.PathErr != nil {
		return nil, false
	}
	return b, true
}

// exprs turns argument values into expressions. root is the receiver that
// binding paths are read from.
type exprs struct {
	root string
	// cell is set inside collection cell templates, where `index` and
	// `item` name the lambda parameters.
	cell bool
}

// ref is the read expression of a binding. A default becomes an Elvis
// fallback, parenthesized so callers can chain onto it.
func (x exprs) ref(b *binding.Binding) string {
	if lit, ok := defaultLit(b); ok {
		return "(" + x.path(b) + " ?: " + lit + ")"
	}
	return x.path(b)
}

// defaultLit renders a binding's default as a literal. `null` defaults
// parse to an empty string and keep their fallback.
func defaultLit(b *binding.Binding) (string, bool) {
	if !b.HasDefault {
		return "", false
	}
	switch d := b.Default; d.Kind() {
	case value.Number:
		f, _ := d.AsNumber()
		return value.FormatNumber(f), true
	case value.Bool:
		t, _ := d.AsBool()
		return strconv.FormatBool(t), true
	case value.String:
		return quote(d.String()), true
	}
	return "", false
}

func (x exprs) path(b *binding.Binding) string {
	path := b.Path
	if x.cell && len(path) > 0 && !path[0].HasIndex() {
		switch path[0].Name {
		case "index":
			if len(path) == 1 {
				return "index"
			}
		case "item":
			return dataRef("item", path[1:])
		}
	}
	return dataRef(x.root, path)
}

// text renders a string value. A binding becomes a string template with its
// default as an Elvis fallback inside the template.
func (x exprs) text(v value.Value) string {
	b, ok := bound(v)
	if !ok {
		return quote(v.String())
	}
	expr := x.path(b)
	if lit, ok := defaultLit(b); ok {
		expr += " ?: " + lit
	}
	return `"` + escapeTemplate(b.Prefix) + "${" + expr + "}" + escapeTemplate(b.Suffix) + `"`
}

func (x exprs) number(v value.Value) string {
	if b, ok := bound(v); ok {
		return x.ref(b)
	}
	f, _ := v.AsNumber()
	return value.FormatNumber(f)
}

func (x exprs) float(v value.Value) string {
	if b, ok := bound(v); ok {
		return x.ref(b) + ".toFloat()"
	}
	f, _ := v.AsNumber()
	return floatLit(f)
}

func floatLit(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "f"
}

func (x exprs) unit(v value.Value, unit string) string {
	if b, ok := bound(v); ok {
		return x.ref(b) + "." + unit
	}
	f, _ := v.AsNumber()
	return value.FormatNumber(f) + "." + unit
}

func dp(f float64) string { return value.FormatNumber(f) + ".dp" }

func (x exprs) boolean(v value.Value) string {
	if b, ok := bound(v); ok {
		return x.ref(b)
	}
	t, _ := v.AsBool()
	return strconv.FormatBool(t)
}

func (x exprs) color(v value.Value) string {
	s := v.String()
	if b, ok := bound(v); ok {
		return "Color(android.graphics.Color.parseColor(" + x.ref(b) + "))"
	}
	return colorLit(s)
}

// colorLit renders a normalized #AARRGGBB string.
func colorLit(hex string) string {
	if norm, err := attr.ParseColor(hex); err == nil {
		return "Color(0x" + strings.ToUpper(strings.TrimPrefix(norm, "#")) + ")"
	}
	return "Color(android.graphics.Color.parseColor(" + quote(hex) + "))"
}

func (x exprs) attrColor(c attr.Color) string {
	if c.IsBound() {
		return x.color(value.StringVal(c.Expr))
	}
	return colorLit(c.Hex)
}

func (x exprs) list(v value.Value) string {
	if b, ok := bound(v); ok {
		return x.ref(b)
	}
	elems := v.Elements()
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = x.text(e)
	}
	return "listOf(" + strings.Join(parts, ", ") + ")"
}

func enumMember(kw string) string {
	if m, ok := enumMembers[kw]; ok {
		return m
	}
	if kw == "" {
		return kw
	}
	return strings.ToUpper(kw[:1]) + kw[1:]
}

// arg renders an argument by its type.
func (x exprs) arg(a renderop.Arg) string {
	switch a.Type {
	case renderop.ArgNumber:
		return x.number(a.Value)
	case renderop.ArgDp:
		return x.unit(a.Value, "dp")
	case renderop.ArgSp:
		return x.unit(a.Value, "sp")
	case renderop.ArgColor:
		return x.color(a.Value)
	case renderop.ArgBool:
		return x.boolean(a.Value)
	case renderop.ArgEnum:
		if class, ok := enumTypes[a.Name]; ok {
			return class + "." + enumMember(a.Value.String())
		}
		return quote(a.Value.String())
	case renderop.ArgList:
		return x.list(a.Value)
	case renderop.ArgState:
		if b, ok := bound(a.Value); ok {
			return x.ref(b)
		}
		return x.text(a.Value)
	}
	return x.text(a.Value)
}

// update is the callback writing user input back to the bound path.
func (x exprs) update(a renderop.Arg, param string) string {
	b, ok := bound(a.Value)
	if !ok {
		return "{ }"
	}
	return fmt.Sprintf("{ %s -> viewModel.updateData(mapOf(%s to %s)) }", param, quote(b.Path.String()), param)
}
