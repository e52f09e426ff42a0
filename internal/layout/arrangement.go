package layout

import (
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/node"
)

// Alignment names a position inside a box. The nine two-axis values are
// used by Box content and child alignment; the single-axis values are the
// cross-axis alignment of a Column (horizontal) or a Row (vertical).
type Alignment string

const (
	TopStart     Alignment = "TopStart"
	TopCenter    Alignment = "TopCenter"
	TopEnd       Alignment = "TopEnd"
	CenterStart  Alignment = "CenterStart"
	Center       Alignment = "Center"
	CenterEnd    Alignment = "CenterEnd"
	BottomStart  Alignment = "BottomStart"
	BottomCenter Alignment = "BottomCenter"
	BottomEnd    Alignment = "BottomEnd"

	Start              Alignment = "Start"
	End                Alignment = "End"
	CenterHorizontally Alignment = "CenterHorizontally"
	Top                Alignment = "Top"
	Bottom             Alignment = "Bottom"
	CenterVertically   Alignment = "CenterVertically"
)

// Pos is a position along one axis.
type Pos int

const (
	Leading Pos = iota
	Middle
	Trailing
)

var grid9 = [3][3]Alignment{
	{TopStart, TopCenter, TopEnd},
	{CenterStart, Center, CenterEnd},
	{BottomStart, BottomCenter, BottomEnd},
}

// Combine returns the two-axis alignment for a vertical and a horizontal
// position.
func Combine(vertical, horizontal Pos) Alignment {
	return grid9[vertical][horizontal]
}

// Bias returns the horizontal and vertical bias of a two-axis alignment in
// [-1, 1].
func (a Alignment) Bias() (h, v float64, ok bool) {
	for vi, row := range grid9 {
		for hi, cell := range row {
			if cell == a {
				return float64(hi - 1), float64(vi - 1), true
			}
		}
	}
	return 0, 0, false
}

// MainArrangement is the distribution of children along a linear
// container's main axis.
type MainArrangement string

const (
	ArrangeDefault      MainArrangement = ""
	ArrangeStart        MainArrangement = "Start"
	ArrangeEnd          MainArrangement = "End"
	ArrangeTop          MainArrangement = "Top"
	ArrangeBottom       MainArrangement = "Bottom"
	ArrangeCenter       MainArrangement = "Center"
	ArrangeSpaceEvenly  MainArrangement = "SpaceEvenly"
	ArrangeSpaceBetween MainArrangement = "SpaceBetween"
	ArrangeSpaceAround  MainArrangement = "SpaceAround"
	// ArrangeSpacedBy puts Arrangement.Spacing between children.
	ArrangeSpacedBy MainArrangement = "spacedBy"
)

var distributions = map[string]MainArrangement{
	"fillEqually":    ArrangeSpaceEvenly,
	"fill":           ArrangeSpaceBetween,
	"equalSpacing":   ArrangeSpaceAround,
	"equalCentering": ArrangeSpaceEvenly,
}

// Arrangement is how a container places its children.
type Arrangement struct {
	Main    MainArrangement
	Spacing float64
	// Cross is the cross-axis alignment of a linear container.
	Cross Alignment
	// Content is the default child alignment of a Box.
	Content Alignment
}

// IsZero reports whether the container uses the default arrangement.
func (a Arrangement) IsZero() bool {
	return a == Arrangement{}
}

// Arrange computes the arrangement of n as a container of kind k. On the
// main axis spacing wins over distribution, which wins over gravity.
func Arrange(n *node.Node, k Kind) Arrangement {
	view := attr.Of(n)
	gravity := view.Strings("gravity")
	var out Arrangement

	switch k {
	case Column, Row:
		if f, ok := view.Number("spacing"); ok {
			out.Main, out.Spacing = ArrangeSpacedBy, f
		} else if d, ok := distributions[view.StringOr("distribution", "")]; ok {
			out.Main = d
		}
		for _, g := range gravity {
			main, cross := linearGravity(k, g)
			if main != ArrangeDefault && out.Main == ArrangeDefault {
				out.Main = main
			}
			if cross != "" {
				out.Cross = cross
			}
		}
	case Box:
		out.Content = boxGravity(gravity)
	}
	return out
}

func linearGravity(k Kind, g string) (MainArrangement, Alignment) {
	if k == Column {
		switch g {
		case "top":
			return ArrangeTop, ""
		case "bottom":
			return ArrangeBottom, ""
		case "centerVertical":
			return ArrangeCenter, ""
		case "left":
			return ArrangeDefault, Start
		case "right":
			return ArrangeDefault, End
		case "centerHorizontal":
			return ArrangeDefault, CenterHorizontally
		case "center":
			return ArrangeCenter, CenterHorizontally
		}
		return ArrangeDefault, ""
	}
	switch g {
	case "left":
		return ArrangeStart, ""
	case "right":
		return ArrangeEnd, ""
	case "centerHorizontal":
		return ArrangeCenter, ""
	case "top":
		return ArrangeDefault, Top
	case "bottom":
		return ArrangeDefault, Bottom
	case "centerVertical":
		return ArrangeDefault, CenterVertically
	case "center":
		return ArrangeCenter, CenterVertically
	}
	return ArrangeDefault, ""
}

var boxNamed = map[string]Alignment{
	"topLeft":     TopStart,
	"topRight":    TopEnd,
	"bottomLeft":  BottomStart,
	"bottomRight": BottomEnd,
}

// boxGravity folds gravity values into one content alignment. A single
// `top` means TopCenter, matching the runtime's Box behavior.
func boxGravity(gravity []string) Alignment {
	if len(gravity) == 0 {
		return ""
	}
	if len(gravity) == 1 {
		if a, ok := boxNamed[gravity[0]]; ok {
			return a
		}
	}
	v, h := -1, -1
	for _, g := range gravity {
		switch g {
		case "top":
			v = int(Leading)
		case "bottom":
			v = int(Trailing)
		case "centerVertical":
			v = int(Middle)
		case "left":
			h = int(Leading)
		case "right":
			h = int(Trailing)
		case "centerHorizontal":
			h = int(Middle)
		case "center":
			v, h = int(Middle), int(Middle)
		}
	}
	if v < 0 && h < 0 {
		return ""
	}
	if v < 0 {
		v = int(Middle)
	}
	if h < 0 {
		h = int(Middle)
	}
	return Combine(Pos(v), Pos(h))
}
