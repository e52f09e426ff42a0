package attr

import (
	"fmt"
	"sort"
	"strings"
)

// Diagnostic is a non-fatal attribute problem.
type Diagnostic struct {
	Attribute string
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Attribute, d.Message)
}

var numberKeys = []string{
	"fontSize", "cornerRadius", "borderWidth", "weight", "opacity", "alpha",
	"spacing", "columns", "lineSpacing", "columnSpacing", "itemSpacing",
	"minWidth", "maxWidth", "minHeight", "maxHeight", "aspectWidth", "aspectHeight",
	"lines", "minValue", "maxValue",
}

var colorKeys = []string{
	"background", "borderColor", "fontColor", "hintColor", "tintColor",
	"disabledBackground", "disabledFontColor", "highlightBackground",
}

var enumKeys = map[string][]string{
	"orientation":  {"vertical", "horizontal"},
	"direction":    {"topToBottom", "bottomToTop", "leftToRight", "rightToLeft"},
	"borderStyle":  {"solid", "dashed", "dotted"},
	"visibility":   {"visible", "invisible", "gone"},
	"distribution": {"fill", "fillEqually", "fillProportionally", "equalSpacing", "equalCentering"},
	"textAlign":    {"left", "center", "right", "start", "end"},
}

// Validate checks the typed attributes of the wrapped node. Binding values
// are accepted everywhere because their type is only known at render time.
func (v View) Validate() []Diagnostic {
	var diags []Diagnostic

	for _, key := range []string{"width", "height"} {
		if _, ok := v.n.Attributes[key]; !ok {
			continue
		}
		if _, err := v.dimension(key); err != nil {
			diags = append(diags, Diagnostic{Attribute: key, Message: err.Error()})
		}
	}

	for _, key := range numberKeys {
		a, ok := v.n.Attributes[key]
		if !ok || IsBinding(a) {
			continue
		}
		if _, ok := a.AsNumber(); !ok {
			diags = append(diags, Diagnostic{Attribute: key, Message: fmt.Sprintf("expected a number, got %s", a.Kind())})
		}
	}

	for _, key := range colorKeys {
		a, ok := v.n.Attributes[key]
		if !ok || a.IsObject() || a.IsArray() {
			continue
		}
		if _, err := ColorValue(a); err != nil {
			diags = append(diags, Diagnostic{Attribute: key, Message: err.Error()})
		}
	}

	enumNames := make([]string, 0, len(enumKeys))
	for k := range enumKeys {
		enumNames = append(enumNames, k)
	}
	sort.Strings(enumNames)
	for _, key := range enumNames {
		a, ok := v.n.Attributes[key]
		if !ok || IsBinding(a) {
			continue
		}
		s, _ := a.AsString()
		if !contains(enumKeys[key], s) {
			diags = append(diags, Diagnostic{
				Attribute: key,
				Message:   fmt.Sprintf("unknown value %q, expected one of %s", s, strings.Join(enumKeys[key], ", ")),
			})
		}
	}

	return diags
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
