package attr

import (
	"fmt"

	"github.com/vk/jsonuigo/internal/value"
)

// DimensionKind classifies a width or height.
type DimensionKind int

const (
	// Unset: the attribute is absent.
	Unset DimensionKind = iota
	// Fixed: a number of density independent units.
	Fixed
	// Fill: matchParent and friends.
	Fill
	// Wrap: size to content.
	Wrap
	// MatchConstraint: fill the space allowed by constraints.
	MatchConstraint
	// Bound: the size comes from a binding and is only known at render time.
	Bound
)

func (k DimensionKind) String() string {
	switch k {
	case Unset:
		return "unset"
	case Fixed:
		return "fixed"
	case Fill:
		return "fill"
	case Wrap:
		return "wrap"
	case MatchConstraint:
		return "matchConstraint"
	case Bound:
		return "bound"
	}
	return fmt.Sprintf("dimension(%d)", int(k))
}

// Dimension is a parsed width or height.
type Dimension struct {
	Kind  DimensionKind
	Value float64
	// Expr holds the raw string for Bound dimensions.
	Expr string
}

// IsSet reports whether the attribute was present.
func (d Dimension) IsSet() bool { return d.Kind != Unset }

// ParseDimension converts a raw width/height value.
func ParseDimension(a value.Value) (Dimension, error) {
	if n, ok := a.AsNumber(); ok && !a.IsString() {
		if n < 0 {
			return Dimension{Kind: Fill}, nil
		}
		return Dimension{Kind: Fixed, Value: n}, nil
	}
	s, ok := a.AsString()
	if !ok {
		return Dimension{}, fmt.Errorf("expected a number or a size keyword, got %s", a.Kind())
	}
	switch s {
	case "matchParent", "match_parent", "fill", "fillMaxSize":
		return Dimension{Kind: Fill}, nil
	case "wrapContent", "wrap_content", "wrap":
		return Dimension{Kind: Wrap}, nil
	case "matchConstraint", "match_constraint", "0dp":
		return Dimension{Kind: MatchConstraint}, nil
	}
	if IsBinding(a) {
		return Dimension{Kind: Bound, Expr: s}, nil
	}
	if n, ok := a.AsNumber(); ok {
		if n < 0 {
			return Dimension{Kind: Fill}, nil
		}
		return Dimension{Kind: Fixed, Value: n}, nil
	}
	return Dimension{}, fmt.Errorf("unknown size keyword %q", s)
}

// Width returns the parsed width.
func (v View) Width() (Dimension, error) { return v.dimension("width") }

// Height returns the parsed height.
func (v View) Height() (Dimension, error) { return v.dimension("height") }

func (v View) dimension(key string) (Dimension, error) {
	a, ok := v.n.Attributes[key]
	if !ok {
		if size, ok := v.n.Attributes["size"]; ok {
			return sizeShorthand(size, key)
		}
		return Dimension{}, nil
	}
	d, err := ParseDimension(a)
	if err != nil {
		return Dimension{}, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// sizeShorthand handles `size: 40` and `size: [w, h]`.
func sizeShorthand(size value.Value, key string) (Dimension, error) {
	if size.IsArray() {
		idx := 0
		if key == "height" {
			idx = 1
		}
		e, ok := size.Index(idx)
		if !ok {
			return Dimension{}, nil
		}
		return ParseDimension(e)
	}
	return ParseDimension(size)
}
