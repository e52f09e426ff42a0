package text

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

func TestText_Args(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		arg      string
		typ      renderop.ArgType
		expected string
	}{
		{"literal text", `{"type":"Text","text":"Hello"}`, "text", renderop.ArgText, "Hello"},
		{"bound text kept raw", `{"type":"Label","text":"@{user.name ?? Guest}"}`, "text", renderop.ArgText, "@{user.name ?? Guest}"},
		{"missing text is empty", `{"type":"Text"}`, "text", renderop.ArgText, ""},
		{"font size", `{"type":"Text","fontSize":14}`, "fontSize", renderop.ArgSp, "14"},
		{"font color normalized", `{"type":"Text","fontColor":"#f00"}`, "color", renderop.ArgColor, "#FFFF0000"},
		{"font bold", `{"type":"Text","font":"bold"}`, "fontWeight", renderop.ArgEnum, "bold"},
		{"font family", `{"type":"Text","font":"Roboto"}`, "fontFamily", renderop.ArgText, "Roboto"},
		{"align right is end", `{"type":"Text","textAlign":"right"}`, "textAlign", renderop.ArgEnum, "end"},
		{"center horizontal aligns text", `{"type":"Text","centerHorizontal":true}`, "textAlign", renderop.ArgEnum, "center"},
		{"lines", `{"type":"Text","lines":2}`, "maxLines", renderop.ArgNumber, "2"},
		{"line break tail", `{"type":"Text","lineBreakMode":"tail"}`, "overflow", renderop.ArgEnum, "ellipsis"},
		{"button default text", `{"type":"Button"}`, "text", renderop.ArgText, "Button"},
		{"button disabled", `{"type":"Button","disabled":true}`, "enabled", renderop.ArgBool, "false"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := walk(t, tc.doc)
			require.Empty(t, res.Diagnostics)

			var found *renderop.Arg
			for i := range res.Root.Args {
				if res.Root.Args[i].Name == tc.arg {
					found = &res.Root.Args[i]
				}
			}
			require.NotNil(t, found, "argument %s", tc.arg)
			assert.Equal(t, tc.typ, found.Type)
			assert.Equal(t, tc.expected, found.Value.String())
		})
	}
}

func TestText_Decorations(t *testing.T) {
	res := walk(t, `{"type":"Text","underline":true,"strikethrough":true,"lines":0}`)
	dec, ok := res.Root.Arg("textDecoration")
	require.True(t, ok)
	assert.Equal(t, `["underline","lineThrough"]`, dec.String())
	assert.True(t, res.Root.Imports.Has(renderop.ImportTextDecoration))
	assert.False(t, res.Root.HasArg("maxLines"))
}

func TestText_BadValuesWarn(t *testing.T) {
	res := walk(t, `{"type":"Text","textAlign":"justify","fontColor":"red-ish"}`)
	require.Len(t, res.Diagnostics, 2)
	for _, d := range res.Diagnostics {
		assert.Equal(t, renderop.Warning, d.Severity)
	}
	assert.False(t, res.Root.HasArg("textAlign"))
	assert.False(t, res.Root.HasArg("color"))
}

func TestButton_Event(t *testing.T) {
	res := walk(t, `{"type":"Button","text":"Go","onclick":"submit"}`)
	require.Len(t, res.Root.Events, 1)
	assert.Equal(t, renderop.Event{Name: "onclick", Handler: "submit"}, res.Root.Events[0])
	assert.True(t, res.Root.Imports.Has(renderop.ImportClickable))
}
