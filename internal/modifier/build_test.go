package modifier

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/node"
)

func parse(t *testing.T, doc string) *node.Node {
	t.Helper()
	n, err := node.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

var inBox = Context(layout.Box)

func TestBuild_OrderIgnoresKeyOrder(t *testing.T) {
	docs := []string{
		`{"type": "View", "opacity": 0.5, "padding": 4, "alignTop": true, "background": "#fff", "shadow": "x", "borderColor": "#000", "cornerRadius": 8, "margins": 2, "width": 10}`,
		`{"type": "View", "width": 10, "margins": 2, "cornerRadius": 8, "borderColor": "#000", "shadow": "x", "background": "#fff", "alignTop": true, "padding": 4, "opacity": 0.5}`,
	}
	expected := []Op{OpSize, OpMargin, OpClip, OpBackground, OpBorder, OpShadow, OpPadding, OpAlignment, OpOpacity}
	for _, doc := range docs {
		assert.Equal(t, expected, Ops(Build(parse(t, doc), inBox)))
	}
}

func TestBuild_OrderIsMonotonic(t *testing.T) {
	docs := []string{
		`{"type": "Text", "alpha": 2, "weight": 1, "paddingTop": 3}`,
		`{"type": "Text", "borderColor": "red", "background": "@{bg}", "topMargin": 1}`,
		`{"type": "Text", "shadow": {"radius": 2}, "height": "wrapContent", "centerInParent": true}`,
	}
	for _, doc := range docs {
		for _, parent := range []ParentContext{inBox, Context(layout.Row), Context(layout.Column)} {
			ops := Ops(Build(parse(t, doc), parent))
			for i := 1; i < len(ops); i++ {
				assert.Less(t, ops[i-1], ops[i], "doc %s", doc)
			}
		}
	}
}

func TestBuild_Steps(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		parent   ParentContext
		expected []Modifier
	}{
		{
			name:     "no attributes",
			doc:      `{"type": "Text"}`,
			parent:   inBox,
			expected: nil,
		},
		{
			name:   "size",
			doc:    `{"type": "Text", "width": "matchParent", "height": 44, "minWidth": 10, "aspectWidth": 16, "aspectHeight": 8}`,
			parent: inBox,
			expected: []Modifier{Size{
				Width:       attr.Dimension{Kind: attr.Fill},
				Height:      attr.Dimension{Kind: attr.Fixed, Value: 44},
				MinWidth:    10,
				AspectRatio: 2,
			}},
		},
		{
			name:   "margins array with override",
			doc:    `{"type": "Text", "margins": [1, 2, 3, 4], "topMargin": 9}`,
			parent: inBox,
			expected: []Modifier{Margin{attr.Insets{Top: 9, End: 2, Bottom: 3, Start: 4}}},
		},
		{
			name:   "border follows the clip radius",
			doc:    `{"type": "View", "cornerRadius": 6, "borderColor": "#123", "borderStyle": "dashed"}`,
			parent: inBox,
			expected: []Modifier{
				Clip{Radius: 6},
				Border{Width: 1, Color: attr.Color{Hex: "#FF112233"}, Style: BorderDashed, Radius: 6},
			},
		},
		{
			name:     "unknown border style is solid",
			doc:      `{"type": "View", "borderColor": "#000000", "borderWidth": 2, "borderStyle": "wavy"}`,
			parent:   inBox,
			expected: []Modifier{Border{Width: 2, Color: attr.Color{Hex: "#FF000000"}, Style: BorderSolid}},
		},
		{
			name:     "bound background",
			doc:      `{"type": "View", "background": "@{theme.bg}"}`,
			parent:   inBox,
			expected: []Modifier{Background{Color: attr.Color{Expr: "@{theme.bg}"}}},
		},
		{
			name:     "shadow object",
			doc:      `{"type": "View", "shadow": {"radius": 10}}`,
			parent:   inBox,
			expected: []Modifier{Shadow{Elevation: 10}},
		},
		{
			name:     "shadow string",
			doc:      `{"type": "View", "shadow": "#000"}`,
			parent:   inBox,
			expected: []Modifier{Shadow{Elevation: 4}},
		},
		{
			name:     "paddings three values",
			doc:      `{"type": "View", "paddings": [1, 2, 3]}`,
			parent:   inBox,
			expected: []Modifier{Padding{attr.Insets{Top: 1, Start: 2, End: 2, Bottom: 3}}},
		},
		{
			name:     "weight needs a linear parent",
			doc:      `{"type": "View", "weight": 1}`,
			parent:   inBox,
			expected: nil,
		},
		{
			name:     "zero weight is ignored",
			doc:      `{"type": "View", "weight": 0}`,
			parent:   Context(layout.Row),
			expected: nil,
		},
		{
			name:     "weight drops a zero main axis size",
			doc:      `{"type": "View", "weight": 2, "width": 0, "height": 20}`,
			parent:   Context(layout.Row),
			expected: []Modifier{Size{Height: attr.Dimension{Kind: attr.Fixed, Value: 20}}, Weight{Value: 2}},
		},
		{
			name:     "alignment outside a box is dropped",
			doc:      `{"type": "View", "alignTop": true}`,
			parent:   Context(layout.Column),
			expected: nil,
		},
		{
			name:     "alignment in a constraint scope is a constraint",
			doc:      `{"type": "View", "alignTop": true}`,
			parent:   Context(layout.ConstraintScope),
			expected: nil,
		},
		{
			name:     "opacity is clamped",
			doc:      `{"type": "View", "opacity": 1.5}`,
			parent:   inBox,
			expected: []Modifier{Opacity{Alpha: 1}},
		},
		{
			name:     "alpha alias",
			doc:      `{"type": "View", "alpha": -0.2}`,
			parent:   inBox,
			expected: []Modifier{Opacity{Alpha: 0}},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Build(parse(t, tc.doc), tc.parent)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("modifiers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_BoxAlignment(t *testing.T) {
	testCases := []struct {
		attrs    string
		expected layout.Alignment
	}{
		{`"alignTop": true`, layout.TopStart},
		{`"alignBottom": true`, layout.BottomStart},
		{`"alignRight": true`, layout.TopEnd},
		{`"alignTop": true, "alignRight": true`, layout.TopEnd},
		{`"alignBottom": true, "alignLeft": true`, layout.BottomStart},
		{`"centerHorizontal": true`, layout.TopCenter},
		{`"centerVertical": true`, layout.CenterStart},
		{`"alignBottom": true, "centerHorizontal": true`, layout.BottomCenter},
		{`"alignRight": true, "centerVertical": true`, layout.CenterEnd},
		{`"centerInParent": true`, layout.Center},
		{`"alignLeft": true, "alignRight": true, "alignTop": true, "alignBottom": true`, layout.Center},
	}
	for _, tc := range testCases {
		t.Run(tc.attrs, func(t *testing.T) {
			mods := Build(parse(t, `{"type": "View", `+tc.attrs+`}`), inBox)
			require.Len(t, mods, 1)
			assert.Equal(t, Alignment{Align: tc.expected}, mods[0])
		})
	}
}

func TestBuild_Gradient(t *testing.T) {
	mods := Build(parse(t, `{"type": "GradientView", "colors": ["#000", "#fff"], "orientation": "horizontal"}`), inBox)
	require.Len(t, mods, 1)
	assert.Equal(t, Background{
		Gradient:  []attr.Color{{Hex: "#FF000000"}, {Hex: "#FFFFFFFF"}},
		Direction: GradientHorizontal,
	}, mods[0])
}

func TestWeighted(t *testing.T) {
	child := parse(t, `{"type": "Text", "weight": 1, "height": 0, "width": 30}`)

	col := Weighted(child, Context(layout.Column))
	assert.NotSame(t, child, col)
	w, _ := col.Attr("width")
	assert.Equal(t, "matchParent", w.String())
	assert.False(t, col.Has("height"))

	assert.True(t, child.Has("height"), "original is untouched")
	w, _ = child.Attr("width")
	assert.Equal(t, "30", w.String())

	assert.Same(t, child, Weighted(child, inBox))
}
