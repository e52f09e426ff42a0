package container

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/constraint"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/renderop"
)

func walk(t *testing.T, doc string) *renderop.Result {
	t.Helper()
	root, err := node.Parse([]byte(doc))
	require.NoError(t, err)

	r := registry.New()
	(&Module{}).Register(r)
	r.RegisterFunc(renderop.KindText, func(registry.Env, *node.Node, *renderop.Op) error { return nil })

	w := &render.Walker{Registry: r}
	return w.Walk(ctxlog.Discard(context.Background()), root)
}

func TestKindFor(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		expected layout.Kind
	}{
		{"view vertical", `{"type":"View","orientation":"vertical"}`, layout.Column},
		{"view plain", `{"type":"View"}`, layout.Box},
		{"hstack ignores orientation", `{"type":"HStack","orientation":"vertical"}`, layout.Row},
		{"constraint layout", `{"type":"ConstraintLayout"}`, layout.ConstraintScope},
		{"sibling positioning wins", `{"type":"Column","child":[{"type":"Text","id":"a"},{"type":"Text","alignTopOfView":"a"}]}`, layout.ConstraintScope},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := node.Parse([]byte(tc.doc))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, KindFor(n))
		})
	}
}

func TestContainer_ReversedWeightedColumn(t *testing.T) {
	res := walk(t, `{
		"type": "View", "orientation": "vertical", "direction": "bottomToTop", "spacing": 4,
		"child": [
			{"type": "Text", "id": "first"},
			{"type": "Text", "id": "second", "weight": 1, "height": 0}
		]
	}`)
	require.Empty(t, res.Diagnostics)

	root := res.Root
	require.NotNil(t, root.Container)
	assert.Equal(t, layout.Column, root.Container.Layout)
	assert.True(t, root.Container.Reversed)
	assert.Equal(t, layout.ArrangeSpacedBy, root.Container.Arrangement.Main)
	assert.True(t, root.Imports.Has(renderop.ImportArrangement))

	require.Len(t, root.Children, 2)
	assert.Equal(t, "second", root.Children[0].Anchor)
	assert.Equal(t, "first", root.Children[1].Anchor)
	assert.Equal(t, []modifier.Op{modifier.OpSize, modifier.OpWeight}, modifier.Ops(root.Children[0].Modifiers))
}

func TestContainer_ConstraintScope(t *testing.T) {
	res := walk(t, `{
		"type": "View",
		"child": [
			{"type": "Text", "id": "a"},
			{"type": "Text", "alignBottomOfView": "a", "bottomMargin": 8}
		]
	}`)
	require.Empty(t, res.Diagnostics)

	root := res.Root
	require.NotNil(t, root.Container.Scope)
	assert.True(t, root.Imports.Has(renderop.ImportConstraintLayout))
	require.Len(t, root.Children, 2)
	assert.Equal(t, "view_1", root.Children[1].Anchor)
	require.Len(t, root.Children[1].Constraints, 1)
	c := root.Children[1].Constraints[0]
	assert.Equal(t, constraint.Top, c.Edge)
	assert.Equal(t, constraint.Sibling("a"), c.Target)
	assert.Equal(t, 8.0, c.Margin)
}

func TestContainer_CycleIsolatedToScope(t *testing.T) {
	res := walk(t, `{
		"type": "View", "orientation": "vertical",
		"child": [
			{"type": "View", "child": [
				{"type": "Text", "id": "A", "alignRightOfView": "B"},
				{"type": "Text", "id": "B", "alignRightOfView": "A"}
			]},
			{"type": "Text", "id": "sibling"}
		]
	}`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, renderop.Error, res.Diagnostics[0].Severity)
	assert.True(t, errors.Is(res.Diagnostics[0].Err, constraint.ErrCycle))
	assert.Equal(t, "View.View[0]", res.Diagnostics[0].Path)

	require.Len(t, res.Root.Children, 2)
	assert.True(t, res.Root.Children[0].IsPlaceholder())
	assert.Empty(t, res.Root.Children[0].Children)
	assert.Equal(t, "sibling", res.Root.Children[1].Anchor)
	assert.False(t, res.Root.Children[1].IsPlaceholder())
}

func TestScroll(t *testing.T) {
	res := walk(t, `{"type":"ScrollView","orientation":"horizontal","child":[{"type":"Text"}]}`)
	require.Empty(t, res.Diagnostics)

	axis, ok := res.Root.Arg("axis")
	require.True(t, ok)
	assert.Equal(t, "horizontal", axis.String())
	assert.Equal(t, layout.Row, res.Root.Container.Layout)
	assert.True(t, res.Root.Imports.Has(renderop.ImportHorizontalScroll))
	assert.False(t, res.Root.Imports.Has(renderop.ImportVerticalScroll))
}

func TestScroll_SiblingConstraints(t *testing.T) {
	res := walk(t, `{"type":"Scroll","child":[
		{"type":"Text","id":"a"},
		{"type":"Text","id":"b","alignBottomOfView":"a"}
	]}`)
	require.Empty(t, res.Diagnostics)

	root := res.Root
	assert.Equal(t, layout.ConstraintScope, root.Container.Layout)
	require.NotNil(t, root.Container.Scope)
	assert.True(t, root.Imports.Has(renderop.ImportVerticalScroll))
	assert.True(t, root.Imports.Has(renderop.ImportConstraintLayout))
	require.Len(t, root.Children, 2)
	require.Len(t, root.Children[1].Constraints, 1)
	assert.Equal(t, constraint.Sibling("a"), root.Children[1].Constraints[0].Target)
}

func TestScrollAndBlur_DanglingTargetReported(t *testing.T) {
	testCases := []struct {
		name string
		typ  string
	}{
		{"scroll", "Scroll"},
		{"blur", "BlurView"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := walk(t, `{"type":"`+tc.typ+`","child":[
				{"type":"Text","id":"a"},
				{"type":"Text","id":"b","alignBottomOfView":"a"},
				{"type":"Text","id":"c","alignBottomOfView":"zzz"}
			]}`)
			require.Len(t, res.Diagnostics, 1)
			assert.Equal(t, renderop.Error, res.Diagnostics[0].Severity)
			assert.True(t, errors.Is(res.Diagnostics[0].Err, constraint.ErrDanglingTarget))
		})
	}
}

func TestSafeArea_Edges(t *testing.T) {
	res := walk(t, `{"type":"SafeAreaView","safeAreaInsetPositions":["top","sideways"]}`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, renderop.Warning, res.Diagnostics[0].Severity)

	edges, ok := res.Root.Arg("edges")
	require.True(t, ok)
	assert.Equal(t, `["top"]`, edges.String())
}

func TestBlur(t *testing.T) {
	res := walk(t, `{"type":"BlurView","blurRadius":8}`)
	require.Empty(t, res.Diagnostics)

	alpha, ok := res.Root.Arg("tintAlpha")
	require.True(t, ok)
	f, _ := alpha.AsNumber()
	assert.InDelta(t, 0.4, f, 1e-9)
	tint, _ := res.Root.Arg("tint")
	assert.Equal(t, "#FFFFFFFF", tint.String())
}
