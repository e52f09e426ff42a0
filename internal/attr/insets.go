package attr

import (
	"github.com/vk/jsonuigo/internal/value"
)

// Side names one edge of a box. Start and End are the layout direction
// aware left and right.
type Side int

const (
	Top Side = iota
	End
	Bottom
	Start
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case End:
		return "end"
	case Bottom:
		return "bottom"
	case Start:
		return "start"
	}
	return "?"
}

// Insets are per-edge spacings.
type Insets struct {
	Top, End, Bottom, Start float64
}

// IsZero reports whether every edge is zero.
func (i Insets) IsZero() bool {
	return i.Top == 0 && i.End == 0 && i.Bottom == 0 && i.Start == 0
}

// Uniform reports whether every edge has the same value.
func (i Insets) Uniform() bool {
	return i.Top == i.End && i.End == i.Bottom && i.Bottom == i.Start
}

// Symmetric reports whether top==bottom and start==end.
func (i Insets) Symmetric() bool {
	return i.Top == i.Bottom && i.Start == i.End
}

// Get returns the inset for s.
func (i Insets) Get(s Side) float64 {
	switch s {
	case Top:
		return i.Top
	case End:
		return i.End
	case Bottom:
		return i.Bottom
	}
	return i.Start
}

func (i *Insets) set(s Side, f float64) {
	switch s {
	case Top:
		i.Top = f
	case End:
		i.End = f
	case Bottom:
		i.Bottom = f
	case Start:
		i.Start = f
	}
}

// MarginKeys is the alias class of each margin edge, most specific first.
var MarginKeys = map[Side][]string{
	Top:    {"topMargin", "marginTop"},
	Bottom: {"bottomMargin", "marginBottom"},
	Start:  {"leftMargin", "startMargin", "marginStart", "marginLeft"},
	End:    {"rightMargin", "endMargin", "marginEnd", "marginRight"},
}

// PaddingKeys is the alias class of each padding edge, most specific first.
var PaddingKeys = map[Side][]string{
	Top:    {"paddingTop", "topPadding"},
	Bottom: {"paddingBottom", "bottomPadding"},
	Start:  {"paddingStart", "paddingLeft", "leftPadding", "startPadding"},
	End:    {"paddingEnd", "paddingRight", "rightPadding", "endPadding"},
}

var sides = []Side{Top, End, Bottom, Start}

// InsetsFromValue expands a number or a 1, 2, 3 or 4 element array.
// Arrays are ordered top, right, bottom, left; two elements mean vertical,
// horizontal; three mean top, horizontal, bottom.
func InsetsFromValue(a value.Value) (Insets, bool) {
	if f, ok := a.AsNumber(); ok {
		return Insets{f, f, f, f}, true
	}
	elems := a.Elements()
	nums := make([]float64, 0, len(elems))
	for _, e := range elems {
		f, ok := e.AsNumber()
		if !ok {
			return Insets{}, false
		}
		nums = append(nums, f)
	}
	switch len(nums) {
	case 1:
		return Insets{nums[0], nums[0], nums[0], nums[0]}, true
	case 2:
		return Insets{Top: nums[0], Bottom: nums[0], Start: nums[1], End: nums[1]}, true
	case 3:
		return Insets{Top: nums[0], Start: nums[1], End: nums[1], Bottom: nums[2]}, true
	case 4:
		return Insets{Top: nums[0], End: nums[1], Bottom: nums[2], Start: nums[3]}, true
	}
	return Insets{}, false
}

// ExplicitMargin returns the margin declared through an individual key for s.
func (v View) ExplicitMargin(s Side) (float64, bool) {
	return v.Number(MarginKeys[s]...)
}

// ArrayMargin returns the margin for s taken from the `margins` attribute.
func (v View) ArrayMargin(s Side) (float64, bool) {
	a, ok := v.n.Attributes["margins"]
	if !ok {
		return 0, false
	}
	in, ok := InsetsFromValue(a)
	if !ok {
		return 0, false
	}
	return in.Get(s), true
}

// Margins returns the outer spacing. Individual keys override `margins`.
func (v View) Margins() (Insets, bool) {
	var in Insets
	present := false
	if a, ok := v.n.Attributes["margins"]; ok {
		if base, ok := InsetsFromValue(a); ok {
			in = base
			present = true
		}
	}
	for _, s := range sides {
		if f, ok := v.ExplicitMargin(s); ok {
			in.set(s, f)
			present = true
		}
	}
	return in, present
}

// Paddings returns the inner spacing from `paddings`, `padding`, the
// vertical/horizontal shorthands and the per-edge keys, in increasing
// precedence.
func (v View) Paddings() (Insets, bool) {
	var in Insets
	present := false
	for _, key := range []string{"paddings", "padding"} {
		if a, ok := v.n.Attributes[key]; ok {
			if base, ok := InsetsFromValue(a); ok {
				in = base
				present = true
				break
			}
		}
	}
	if f, ok := v.Number("paddingVertical"); ok {
		in.Top, in.Bottom = f, f
		present = true
	}
	if f, ok := v.Number("paddingHorizontal"); ok {
		in.Start, in.End = f, f
		present = true
	}
	for _, s := range sides {
		if f, ok := v.Number(PaddingKeys[s]...); ok {
			in.set(s, f)
			present = true
		}
	}
	return in, present
}
