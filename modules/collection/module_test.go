package collection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/grid"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/modules/container"
)

type mapLoader map[string]string

func (m mapLoader) Load(name string) (*node.Node, error) {
	doc, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("layout '%s' not found", name)
	}
	return node.Parse([]byte(doc))
}

func walk(t *testing.T, layouts mapLoader, doc string) *renderop.Result {
	t.Helper()
	root, err := node.Parse([]byte(doc))
	require.NoError(t, err)
	r := registry.New()
	(&Module{}).Register(r)
	(&container.Module{}).Register(r)
	r.RegisterFunc(renderop.KindText, func(registry.Env, *node.Node, *renderop.Op) error { return nil })
	w := &render.Walker{Registry: r, Loader: layouts, DefaultColumns: 1}
	return w.Walk(ctxlog.Discard(context.Background()), root)
}

var cells = mapLoader{
	"product_cell": `{"type":"Text","text":"@{name}"}`,
	"banner_cell":  `{"type":"Text","text":"@{title}"}`,
	"section_head": `{"type":"Text","text":"@{header}"}`,
}

func TestCollection_Sections(t *testing.T) {
	res := walk(t, cells, `{
		"type": "Collection", "items": "@{products}",
		"sections": [
			{"cell": "BannerCell", "header": "SectionHead", "columns": 2},
			{"cell": "ProductCell", "columns": 3}
		]
	}`)
	require.Empty(t, res.Diagnostics)

	g := res.Root.Grid
	require.NotNil(t, g)
	assert.Equal(t, grid.Plan{Columns: 6, Spans: []int{3, 2}}, g.Plan)
	require.Len(t, g.Sections, 2)
	require.NotNil(t, g.Sections[0].Template)
	require.NotNil(t, g.Sections[0].Header)
	assert.Nil(t, g.Sections[1].Header)
	assert.Equal(t, 3, g.Sections[0].Span)

	items, _ := res.Root.Arg("items")
	assert.Equal(t, "@{products}", items.String())
	assert.True(t, res.Root.Imports.Has(renderop.ImportLazyGrid))
	assert.True(t, res.Root.Imports.Has(renderop.ImportGridItemSpan))
	// Template imports are folded into the result.
	assert.Equal(t, res.Root.AllImports(), res.Imports)
}

func TestCollection_ListImports(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		expected renderop.Import
	}{
		{"vertical list", `{"type":"Collection","cell":"ProductCell"}`, renderop.ImportLazyColumn},
		{"horizontal list", `{"type":"Collection","cell":"ProductCell","layout":"horizontal"}`, renderop.ImportLazyRow},
		{"uniform grid", `{"type":"Collection","cellClasses":["ProductCell"],"columns":2}`, renderop.ImportLazyGrid},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := walk(t, cells, tc.doc)
			require.Empty(t, res.Diagnostics)
			assert.True(t, res.Root.Imports.Has(tc.expected))
			assert.False(t, res.Root.Imports.Has(renderop.ImportGridItemSpan))
			require.Len(t, res.Root.Grid.Sections, 1)
			assert.NotNil(t, res.Root.Grid.Sections[0].Template)
		})
	}
}

func TestCollection_InvalidColumns(t *testing.T) {
	res := walk(t, cells, `{
		"type": "View", "orientation": "vertical",
		"child": [
			{"type": "Collection", "sections": [{"cell": "ProductCell", "columns": 0}]},
			{"type": "Text", "text": "still here"}
		]
	}`)
	require.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.Is(res.Diagnostics[0].Err, grid.ErrInvalidColumnCount))
	assert.Equal(t, renderop.Error, res.Diagnostics[0].Severity)
	assert.True(t, res.Root.Children[0].IsPlaceholder())
	assert.False(t, res.Root.Children[1].IsPlaceholder())
}

func TestCollection_MissingCellWarns(t *testing.T) {
	res := walk(t, cells, `{"type":"Collection","cell":"GhostCell"}`)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, renderop.Warning, res.Diagnostics[0].Severity)
	assert.Contains(t, res.Diagnostics[0].Err.Error(), "ghost_cell")
	assert.Nil(t, res.Root.Grid.Sections[0].Template)
}

func TestCollection_CellCycle(t *testing.T) {
	loops := mapLoader{
		"loop_cell": `{"type":"Collection","cell":"LoopCell"}`,
	}
	res := walk(t, loops, `{"type":"Collection","cell":"LoopCell"}`)
	require.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.Is(res.Diagnostics[0].Err, render.ErrLayoutCycle))

	outer := res.Root.Grid.Sections[0].Template
	require.NotNil(t, outer)
	assert.Nil(t, outer.Grid.Sections[0].Template)
}

func TestTable(t *testing.T) {
	res := walk(t, cells, `{"type":"Table","cell":"ProductCell","columns":4,"rowSpacing":6,"separatorStyle":"singleLine"}`)
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, 1, res.Root.Grid.Plan.Columns)
	assert.Equal(t, 6.0, res.Root.Grid.Config.LineSpacing)
	assert.True(t, res.Root.HasArg("separator"))
}
