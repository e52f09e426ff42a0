package control

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/ctxlog"
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
	return (&render.Walker{Registry: r}).Walk(ctxlog.Discard(context.Background()), root)
}

func TestTwoWayControls_State(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		arg      string
		expected string
	}{
		{"text field", `{"type":"TextField","text":"@{form.email}","onTextChange":"emailChanged"}`, "value", "@{form.email}"},
		{"text view", `{"type":"TextView","bind":"@{form.bio}"}`, "value", "@{form.bio}"},
		{"switch", `{"type":"Switch","bind":"@{settings.wifi}"}`, "checked", "@{settings.wifi}"},
		{"toggle alias", `{"type":"Toggle","isOn":"@{settings.dark}"}`, "checked", "@{settings.dark}"},
		{"check", `{"type":"CheckBox","bind":"@{agree}","label":"I agree"}`, "checked", "@{agree}"},
		{"radio group", `{"type":"Radio","items":["a","b"],"bind":"@{choice}"}`, "selected", "@{choice}"},
		{"slider", `{"type":"Slider","bind":"@{volume}","min":0,"max":10}`, "value", "@{volume}"},
		{"select box", `{"type":"SelectBox","items":["x","y"],"bind":"@{pick}"}`, "selection", "@{pick}"},
		{"segment", `{"type":"Segment","items":["day","week"],"bind":"@{range}"}`, "selectedIndex", "@{range}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := walk(t, tc.doc)
			require.Empty(t, res.Diagnostics)
			assert.True(t, res.Root.Kind.TwoWay())

			state, ok := StateArg(&res.Root)
			require.True(t, ok)
			assert.Equal(t, tc.arg, state.Name)
			assert.Equal(t, tc.expected, state.Value.String())
		})
	}
}

func TestLiteralControlsHaveNoState(t *testing.T) {
	res := walk(t, `{"type":"Switch","checked":true}`)
	_, ok := StateArg(&res.Root)
	assert.False(t, ok)
	checked, _ := res.Root.Arg("checked")
	b, _ := checked.AsBool()
	assert.True(t, b)
}

func TestTextField_Secure(t *testing.T) {
	res := walk(t, `{"type":"TextField","hint":"Password","secure":true,"input":"password","returnKeyType":"Done"}`)
	require.Empty(t, res.Diagnostics)

	for _, name := range []string{"secure", "outlined", "placeholder", "keyboardType", "imeAction"} {
		assert.True(t, res.Root.HasArg(name), name)
	}
	ime, _ := res.Root.Arg("imeAction")
	assert.Equal(t, "done", ime.String())
	assert.True(t, res.Root.Imports.Has(renderop.ImportPasswordMask))
	assert.True(t, res.Root.Imports.Has(renderop.ImportOutlinedField))
	require.Len(t, res.Root.Events, 0)
}

func TestTextField_Event(t *testing.T) {
	res := walk(t, `{"type":"TextField","onTextChange":"changed"}`)
	require.Len(t, res.Root.Events, 1)
	assert.Equal(t, "changed", res.Root.Events[0].Handler)
	value, _ := res.Root.Arg("value")
	assert.Equal(t, "", value.String())
}

func TestSlider(t *testing.T) {
	res := walk(t, `{"type":"Slider","min":0,"max":10,"step":2,"minimumTrackTintColor":"#00ff00"}`)
	require.Empty(t, res.Diagnostics)
	steps, ok := res.Root.Arg("steps")
	require.True(t, ok)
	assert.Equal(t, "4", steps.String())
	assert.True(t, res.Root.Imports.Has(renderop.ImportSliderColors))

	bad := walk(t, `{"type":"Slider","min":5,"max":5}`)
	require.Len(t, bad.Diagnostics, 1)
	assert.Equal(t, renderop.Error, bad.Diagnostics[0].Severity)
	assert.True(t, bad.Root.IsPlaceholder())
}

func TestIndicator(t *testing.T) {
	res := walk(t, `{"type":"Indicator","style":"large"}`)
	require.Empty(t, res.Diagnostics)
	d, _ := res.Root.Arg("diameter")
	assert.Equal(t, "48", d.String())
	animating, _ := res.Root.Arg("animating")
	assert.Equal(t, "true", animating.String())

	odd := walk(t, `{"type":"Indicator","style":"huge"}`)
	require.Len(t, odd.Diagnostics, 1)
	assert.Equal(t, renderop.Warning, odd.Diagnostics[0].Severity)
}

func TestSegment_ObjectItems(t *testing.T) {
	res := walk(t, `{"type":"Segment","items":[{"title":"One"},{"title":"Two"}]}`)
	items, ok := res.Root.Arg("items")
	require.True(t, ok)
	assert.Equal(t, `["One","Two"]`, items.String())
}

func TestProgress_Bound(t *testing.T) {
	res := walk(t, `{"type":"Progress","value":"@{upload.ratio}","style":"circle"}`)
	require.Empty(t, res.Diagnostics)
	p, _ := res.Root.Arg("progress")
	assert.Equal(t, "@{upload.ratio}", p.String())
	style, _ := res.Root.Arg("style")
	assert.Equal(t, "circular", style.String())
}
