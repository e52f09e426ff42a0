package attr

import (
	"fmt"
	"strings"

	"github.com/vk/jsonuigo/internal/value"
)

var namedColors = map[string]string{
	"black":       "#FF000000",
	"white":       "#FFFFFFFF",
	"red":         "#FFFF0000",
	"green":       "#FF00FF00",
	"blue":        "#FF0000FF",
	"yellow":      "#FFFFFF00",
	"cyan":        "#FF00FFFF",
	"magenta":     "#FFFF00FF",
	"gray":        "#FF888888",
	"grey":        "#FF888888",
	"lightgray":   "#FFCCCCCC",
	"darkgray":    "#FF444444",
	"transparent": "#00000000",
	"clear":       "#00000000",
}

// Color is either a normalized `#AARRGGBB` literal or a binding expression
// that is resolved at render time.
type Color struct {
	Hex  string
	Expr string
}

// IsBound reports whether the color comes from a binding.
func (c Color) IsBound() bool { return c.Expr != "" }

// String returns the hex literal or the binding expression.
func (c Color) String() string {
	if c.IsBound() {
		return c.Expr
	}
	return c.Hex
}

// ParseColor normalizes `#RGB`, `#RRGGBB`, `#AARRGGBB` and a few color names.
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		return hex, nil
	}
	if !strings.HasPrefix(s, "#") {
		return "", fmt.Errorf("color %q must start with '#'", s)
	}
	body := strings.ToUpper(s[1:])
	for _, r := range body {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			return "", fmt.Errorf("color %q contains a non hex digit", s)
		}
	}
	switch len(body) {
	case 3:
		var sb strings.Builder
		sb.WriteString("#FF")
		for _, r := range body {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		return sb.String(), nil
	case 6:
		return "#FF" + body, nil
	case 8:
		return "#" + body, nil
	}
	return "", fmt.Errorf("color %q must have 3, 6 or 8 hex digits", s)
}

// ColorValue converts a raw attribute into a Color.
func ColorValue(a value.Value) (Color, error) {
	s, ok := a.AsString()
	if !ok {
		return Color{}, fmt.Errorf("expected a color string, got %s", a.Kind())
	}
	if IsBinding(a) {
		return Color{Expr: s}, nil
	}
	hex, err := ParseColor(s)
	if err != nil {
		return Color{}, err
	}
	return Color{Hex: hex}, nil
}

// Color returns the parsed color for the first present key.
func (v View) Color(keys ...string) (Color, bool, error) {
	a, key, ok := v.Raw(keys...)
	if !ok {
		return Color{}, false, nil
	}
	c, err := ColorValue(a)
	if err != nil {
		return Color{}, true, fmt.Errorf("%s: %w", key, err)
	}
	return c, true, nil
}
