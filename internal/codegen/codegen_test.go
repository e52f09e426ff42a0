package codegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/datacontext"
	"github.com/vk/jsonuigo/internal/livetree"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
	"github.com/vk/jsonuigo/modules/collection"
	"github.com/vk/jsonuigo/modules/container"
	"github.com/vk/jsonuigo/modules/control"
	"github.com/vk/jsonuigo/modules/text"
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
	(&container.Module{}).Register(r)
	(&text.Module{}).Register(r)
	(&control.Module{}).Register(r)
	(&collection.Module{}).Register(r)
	w := &render.Walker{Registry: r, Loader: layouts, DefaultColumns: 1}
	return w.Walk(ctxlog.Discard(context.Background()), root)
}

func generate(t *testing.T, layouts mapLoader, doc string) string {
	t.Helper()
	return string(Generate("home_screen", walk(t, layouts, doc), Options{Package: "com.example.app"}))
}

func TestPrinter_Call(t *testing.T) {
	var p printer
	p.call("Column", []param{
		{"modifier", "Modifier\n    .fillMaxWidth()"},
		{"horizontalAlignment", "Alignment.Start"},
	}, func() {
		p.call("Spacer", nil, nil)
	})

	expected := "Column(\n" +
		"    modifier = Modifier\n" +
		"        .fillMaxWidth(),\n" +
		"    horizontalAlignment = Alignment.Start\n" +
		") {\n" +
		"    Spacer()\n" +
		"}\n"
	assert.Equal(t, expected, p.String())
}

func TestExprs_Text(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		root     exprs
		expected string
	}{
		{"literal", "Hello", exprs{root: "data"}, `"Hello"`},
		{"dollar escaped", "cost $5", exprs{root: "data"}, `"cost \$5"`},
		{"quote escaped", `say "hi"`, exprs{root: "data"}, `"say \"hi\""`},
		{"whole binding", "@{user.name}", exprs{root: "data"}, `"${data.user.name}"`},
		{"binding in text", "Hi @{user.name}!", exprs{root: "data"}, `"Hi ${data.user.name}!"`},
		{"string default", "@{title ?? 'Untitled'}", exprs{root: "data"}, `"${data.title ?: "Untitled"}"`},
		{"number default in text", "Count: @{count ?? 0}", exprs{root: "data"}, `"Count: ${data.count ?: 0}"`},
		{"null default", "@{title ?? null}", exprs{root: "data"}, `"${data.title ?: ""}"`},
		{"indexed path", "@{items[2].title}", exprs{root: "data"}, `"${data.items[2].title}"`},
		{"cell index", "@{index}", exprs{root: "item", cell: true}, `"${index}"`},
		{"cell item", "@{item}", exprs{root: "item", cell: true}, `"${item}"`},
		{"cell field", "@{title}", exprs{root: "item", cell: true}, `"${item.title}"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.root.text(value.StringVal(tc.in)))
		})
	}
}

func TestExprs_Arg(t *testing.T) {
	x := exprs{root: "data"}
	testCases := []struct {
		name     string
		arg      renderop.Arg
		expected string
	}{
		{"sp", renderop.Arg{Name: "fontSize", Type: renderop.ArgSp, Value: value.NumberVal(14)}, "14.sp"},
		{"dp fraction", renderop.Arg{Name: "radius", Type: renderop.ArgDp, Value: value.NumberVal(2.5)}, "2.5.dp"},
		{"bound dp", renderop.Arg{Name: "radius", Type: renderop.ArgDp, Value: value.StringVal("@{r}")}, "data.r.dp"},
		{"bound dp with default", renderop.Arg{Name: "radius", Type: renderop.ArgDp, Value: value.StringVal("@{r ?? 4}")}, "(data.r ?: 4).dp"},
		{"bound bool with default", renderop.Arg{Name: "enabled", Type: renderop.ArgBool, Value: value.StringVal("@{on ?? true}")}, "(data.on ?: true)"},
		{"color", renderop.Arg{Name: "color", Type: renderop.ArgColor, Value: value.StringVal("#FF112233")}, "Color(0xFF112233)"},
		{"bound color", renderop.Arg{Name: "color", Type: renderop.ArgColor, Value: value.StringVal("@{theme.accent}")}, "Color(android.graphics.Color.parseColor(data.theme.accent))"},
		{"enum", renderop.Arg{Name: "fontWeight", Type: renderop.ArgEnum, Value: value.StringVal("semibold")}, "FontWeight.SemiBold"},
		{"enum text align", renderop.Arg{Name: "textAlign", Type: renderop.ArgEnum, Value: value.StringVal("center")}, "TextAlign.Center"},
		{"plain keyword", renderop.Arg{Name: "mode", Type: renderop.ArgEnum, Value: value.StringVal("date")}, `"date"`},
		{"list", renderop.Arg{Name: "items", Type: renderop.ArgList, Value: value.ArrayVal(value.StringVal("a"), value.StringVal("b"))}, `listOf("a", "b")`},
		{"state", renderop.Arg{Name: "checked", Type: renderop.ArgState, Value: value.StringVal("@{form.agree}")}, "data.form.agree"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, x.arg(tc.arg))
		})
	}
}

func TestGenerate_Column(t *testing.T) {
	src := generate(t, nil, `{
		"type": "View", "orientation": "vertical", "spacing": 8,
		"child": [{"type": "Text", "text": "Hello @{user.name}", "fontSize": 18}]
	}`)

	assert.True(t, strings.HasPrefix(src, "// Generated from home_screen.json. Do not edit.\npackage com.example.app.views.homescreen\n"))
	assert.Contains(t, src, "@Composable\nfun HomeScreenGeneratedView(\n    data: HomeScreenData,\n    viewModel: HomeScreenViewModel\n) {\n")
	assert.Contains(t, src, "    Column(\n")
	assert.Contains(t, src, "        verticalArrangement = Arrangement.spacedBy(8.dp)\n    ) {\n")
	assert.Contains(t, src, "        Text(\n            text = \"Hello ${data.user.name}\",\n")
	assert.Contains(t, src, "            fontSize = 18.sp")
	assert.True(t, strings.HasSuffix(src, "    }\n}\n"))

	var imports []string
	for _, l := range strings.Split(src, "\n") {
		if strings.HasPrefix(l, "import ") {
			imports = append(imports, l)
		}
	}
	assert.True(t, sort.StringsAreSorted(imports))
	assert.Contains(t, imports, "import androidx.compose.foundation.layout.Arrangement")
	assert.Contains(t, imports, "import com.example.app.data.HomeScreenData")
}

func TestGenerate_IsDeterministic(t *testing.T) {
	doc := `{"type": "View", "child": [
		{"type": "Text", "id": "a", "text": "@{x}", "fontColor": "#F00"},
		{"type": "Switch", "bind": "@{on}"},
		{"type": "Text", "alignBottomOfView": "a", "bottomMargin": 8}
	]}`
	first := generate(t, nil, doc)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, generate(t, nil, doc))
	}
}

func TestGenerate_EventsAndTwoWay(t *testing.T) {
	src := generate(t, nil, `{"type": "View", "orientation": "vertical", "child": [
		{"type": "Button", "text": "Save", "onclick": "save"},
		{"type": "TextField", "text": "@{form.email}", "hint": "Email", "input": "email"},
		{"type": "Switch", "bind": "@{settings.on}"}
	]}`)

	assert.Contains(t, src, "onClick = { data.save?.invoke() }")
	assert.Contains(t, src, "value = data.form.email")
	assert.Contains(t, src, `onValueChange = { it -> viewModel.updateData(mapOf("form.email" to it)) }`)
	assert.Contains(t, src, "keyboardOptions = KeyboardOptions(keyboardType = KeyboardType.Email)")
	assert.Contains(t, src, `onCheckedChange = { it -> viewModel.updateData(mapOf("settings.on" to it)) }`)
}

func TestGenerate_ConstraintLayout(t *testing.T) {
	src := generate(t, nil, `{"type": "View", "child": [
		{"type": "Text", "id": "a", "text": "A"},
		{"type": "Text", "alignBottomOfView": "a", "bottomMargin": 8, "text": "B"}
	]}`)

	assert.Contains(t, src, "    ConstraintLayout {\n")
	assert.Contains(t, src, "        val a = createRef()\n        val view_1 = createRef()\n")
	assert.Contains(t, src, "constrainAs(view_1) {\n")
	assert.Contains(t, src, "top.linkTo(a.bottom, margin = 8.dp)")
	assert.Contains(t, src, "import androidx.constraintlayout.compose.ConstraintLayout")
}

func TestGenerate_MatchConstraintSize(t *testing.T) {
	src := generate(t, nil, `{"type": "View", "child": [
		{"type": "Text", "id": "a", "text": "A"},
		{"type": "Text", "id": "b", "text": "B", "width": "matchConstraint", "height": "matchConstraint",
		 "alignBottomOfView": "a", "alignLeft": true, "alignRight": true, "alignBottom": true}
	]}`)

	start := strings.Index(src, "constrainAs(b) {")
	require.NotEqual(t, -1, start)
	block := src[start : start+strings.Index(src[start:], "}")]
	assert.Contains(t, block, "width = Dimension.fillToConstraints")
	assert.Contains(t, block, "height = Dimension.fillToConstraints")
	assert.NotContains(t, src, "fillMaxWidth()", "constraint sizes are not turned into modifiers")
	assert.Contains(t, src, "import androidx.constraintlayout.compose.Dimension")
}

func TestGenerate_ScrollImportsOneAxis(t *testing.T) {
	testCases := []struct {
		name     string
		doc      string
		expected string
		absent   string
	}{
		{
			"vertical",
			`{"type": "ScrollView", "child": [{"type": "Text", "text": "A"}]}`,
			"import androidx.compose.foundation.verticalScroll",
			"import androidx.compose.foundation.horizontalScroll",
		},
		{
			"horizontal",
			`{"type": "ScrollView", "orientation": "horizontal", "child": [{"type": "Text", "text": "A"}]}`,
			"import androidx.compose.foundation.horizontalScroll",
			"import androidx.compose.foundation.verticalScroll",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			src := generate(t, nil, tc.doc)
			assert.Contains(t, src, tc.expected)
			assert.Contains(t, src, "import androidx.compose.foundation.rememberScrollState")
			assert.NotContains(t, src, tc.absent)
		})
	}
}

func TestGenerate_DefaultMatchesLiveTree(t *testing.T) {
	res := walk(t, nil, `{"type": "View", "orientation": "vertical", "child": [
		{"type": "Text", "id": "greeting", "text": "Hi @{user.name ?? 'Guest'}"}
	]}`)
	src := string(Generate("home_screen", res, Options{Package: "com.example.app"}))
	assert.Contains(t, src, `text = "Hi ${data.user.name ?: "Guest"}"`)

	sink := livetree.NewSink(datacontext.New(nil), nil)
	require.NoError(t, sink.Consume(ctxlog.Discard(context.Background()), "home_screen", res))
	greeting, ok := sink.Tree().Root.Find("greeting")
	require.True(t, ok)
	assert.Equal(t, "Hi Guest", greeting.Text("text"))
}

func TestGenerate_Visibility(t *testing.T) {
	src := generate(t, nil, `{"type": "View", "orientation": "vertical", "child": [
		{"type": "Text", "text": "never", "visibility": "gone"},
		{"type": "Text", "text": "maybe", "visibility": "@{state}"}
	]}`)

	assert.NotContains(t, src, "never")
	assert.Contains(t, src, "VisibilityWrapper(\n            visibility = \"${data.state}\"\n        ) {\n")
	assert.Contains(t, src, "import com.kotlinjsonui.components.VisibilityWrapper")
}

func TestGenerate_UnknownComponentPlaceholder(t *testing.T) {
	src := generate(t, nil, `{"type": "View", "orientation": "vertical", "child": [
		{"type": "Frobnicator"},
		{"type": "Text", "text": "still here"}
	]}`)

	assert.Contains(t, src, "// Unknown component: Frobnicator")
	assert.Contains(t, src, `"still here"`)
}

func TestGenerate_SectionedGrid(t *testing.T) {
	layouts := mapLoader{
		"product_cell": `{"type": "Text", "text": "@{title}"}`,
		"promo_cell":   `{"type": "Text", "text": "@{item} #@{index}"}`,
	}
	src := generate(t, layouts, `{
		"type": "Collection", "items": "@{feed}",
		"sections": [
			{"cell": "ProductCell", "columns": 2},
			{"cell": "PromoCell", "columns": 3}
		]
	}`)

	assert.Contains(t, src, "LazyVerticalGrid(\n        columns = GridCells.Fixed(6)")
	assert.Contains(t, src, "itemsIndexed(data.feed[0], span = { _, _ -> GridItemSpan(3) }) { index, item ->")
	assert.Contains(t, src, "itemsIndexed(data.feed[1], span = { _, _ -> GridItemSpan(2) }) { index, item ->")
	assert.Contains(t, src, `text = "${item.title}"`)
	assert.Contains(t, src, "import androidx.compose.foundation.lazy.grid.GridItemSpan")
}

func TestViewName(t *testing.T) {
	testCases := []struct {
		in, expected string
	}{
		{"home_screen", "HomeScreen"},
		{"auth/login-form", "LoginForm"},
		{"1st", "v1st"},
		{"", "Layout"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, ViewName(tc.in))
		})
	}
}

func TestSink_WritesOnlyChangedFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := ctxlog.Discard(context.Background())
	res := walk(t, nil, `{"type": "Text", "text": "hi"}`)

	sink := NewSink(dir, Options{})
	require.NoError(t, sink.Consume(ctx, "greeting", res))
	require.NoError(t, sink.Consume(ctx, "greeting", res))

	path := filepath.Join(dir, "GreetingGeneratedView.kt")
	assert.Equal(t, []string{path}, sink.Written())
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), "package com.example.jsonui.views.greeting")
}
