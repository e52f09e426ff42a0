// Package binding parses and resolves `@{path ?? default}` expressions found
// in string attribute values. The code emitter and the live tree builder both
// go through this package, so they agree on what a binding means.
package binding

import (
	"math"
	"strconv"
	"strings"

	"github.com/vk/jsonuigo/internal/value"
)

const (
	openToken    = "@{"
	closeToken   = "}"
	defaultToken = "??"
)

// Binding is one parsed `@{...}` span.
type Binding struct {
	// Raw is the complete attribute string the binding was found in.
	Raw string
	// Expr is the text between `@{` and `}`.
	Expr string
	// Path is the parsed lookup path. Nil when PathErr is set.
	Path Path
	// PathErr records a malformed path; such a binding never resolves.
	PathErr error
	// Default is the parsed default literal, valid when HasDefault is true.
	Default    value.Value
	HasDefault bool
	// DefaultLiteral is the default text as written.
	DefaultLiteral string
	// Prefix and Suffix are the literal text around the span.
	Prefix string
	Suffix string
}

// Whole reports whether the binding spans the entire attribute string, in
// which case resolution keeps the bound value's type.
func (b *Binding) Whole() bool {
	return b.Prefix == "" && b.Suffix == ""
}

// HasBinding is the fast check used before parsing.
func HasBinding(raw string) bool {
	return strings.Contains(raw, openToken)
}

// Parse scans raw for the first binding span. It returns false when raw holds
// no complete, non-empty span; such strings are literals.
func Parse(raw string) (*Binding, bool) {
	start := strings.Index(raw, openToken)
	if start < 0 {
		return nil, false
	}
	bodyStart := start + len(openToken)
	rel := strings.Index(raw[bodyStart:], closeToken)
	if rel <= 0 {
		return nil, false
	}
	end := bodyStart + rel

	b := &Binding{
		Raw:    raw,
		Expr:   raw[bodyStart:end],
		Prefix: raw[:start],
		Suffix: raw[end+len(closeToken):],
	}

	pathText := b.Expr
	if i := strings.Index(b.Expr, defaultToken); i >= 0 {
		pathText = b.Expr[:i]
		b.DefaultLiteral = strings.TrimSpace(b.Expr[i+len(defaultToken):])
		b.Default = ParseDefault(b.DefaultLiteral)
		b.HasDefault = true
	}

	b.Path, b.PathErr = ParsePath(pathText)
	return b, true
}

// ParseDefault converts a default literal into a value: booleans, `null`
// (as an empty string), quoted strings, integers and decimals; anything else
// stays the raw text.
func ParseDefault(lit string) value.Value {
	lit = strings.TrimSpace(lit)
	switch lit {
	case "true":
		return value.BoolVal(true)
	case "false":
		return value.BoolVal(false)
	case "null":
		return value.StringVal("")
	}
	if len(lit) >= 2 {
		first, last := lit[0], lit[len(lit)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return value.StringVal(lit[1 : len(lit)-1])
		}
	}
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return value.NumberVal(float64(i))
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return value.NumberVal(f)
	}
	return value.StringVal(lit)
}
