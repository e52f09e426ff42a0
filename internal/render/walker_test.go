package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/constraint"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/modules/container"
	"github.com/vk/jsonuigo/modules/control"
	"github.com/vk/jsonuigo/modules/text"
)

func newWalker() *render.Walker {
	r := registry.New()
	for _, m := range []registry.Module{&container.Module{}, &text.Module{}, &control.Module{}} {
		m.Register(r)
	}
	return &render.Walker{Registry: r}
}

func parse(t *testing.T, doc string) *node.Node {
	t.Helper()
	n, err := node.Parse([]byte(doc))
	require.NoError(t, err)
	return n
}

func TestWalk_UnknownComponentIsPlaceholder(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	root := parse(t, `{
		"type": "View", "orientation": "vertical",
		"child": [
			{"type": "Text", "text": "before"},
			{"type": "Frobnicator", "child": [{"type": "Text", "text": "hidden"}]},
			{"type": "Text", "text": "after"}
		]
	}`)

	res := newWalker().Walk(ctx, root)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, renderop.Warning, d.Severity)
	assert.True(t, errors.Is(d.Err, renderop.ErrUnknownComponent))
	assert.Equal(t, "View.Frobnicator[1]", d.Path)
	assert.False(t, res.HasErrors())

	require.Len(t, res.Root.Children, 3)
	placeholder := res.Root.Children[1]
	assert.Equal(t, renderop.KindUnknown, placeholder.Kind)
	assert.True(t, placeholder.IsPlaceholder())
	assert.Empty(t, placeholder.Children)
	typ, _ := placeholder.Arg("type")
	assert.Equal(t, "Frobnicator", typ.String())

	before, _ := res.Root.Children[0].Arg("text")
	after, _ := res.Root.Children[2].Arg("text")
	assert.Equal(t, "before", before.String())
	assert.Equal(t, "after", after.String())
}

func TestWalk_ConstraintCycleFailsScopeOnly(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	root := parse(t, `{
		"type": "View",
		"child": [
			{"type": "Text", "id": "A", "alignRightOfView": "B", "width": 40},
			{"type": "Text", "id": "B", "alignRightOfView": "A"}
		]
	}`)

	res := newWalker().Walk(ctx, root)

	require.True(t, res.HasErrors())
	require.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.Is(res.Diagnostics[0].Err, constraint.ErrCycle))
	assert.True(t, res.Root.IsPlaceholder())
	assert.Nil(t, res.Root.Container)
}

func TestWalk_Idempotent(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	doc := `{
		"type": "View",
		"child": [
			{"type": "Text", "text": "@{title}"},
			{"type": "Button", "alignTopOfView": "view_0", "onclick": "tap", "topMargin": 4},
			{"type": "Switch", "bind": "@{on}", "alignParentBottom": true}
		]
	}`

	first := newWalker().Walk(ctx, parse(t, doc))
	second := newWalker().Walk(ctx, parse(t, doc))

	opts := cmp.Options{
		cmp.AllowUnexported(renderop.Imports{}),
		cmpopts.IgnoreUnexported(constraint.Scope{}),
		cmpopts.EquateEmpty(),
	}
	if diff := cmp.Diff(first, second, opts...); diff != "" {
		t.Errorf("two walks differ (-first +second):\n%s", diff)
	}
}

func TestWalk_HandlerPanicIsIsolated(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	r := registry.New()
	(&container.Module{}).Register(r)
	r.RegisterFunc(renderop.KindText, func(registry.Env, *node.Node, *renderop.Op) error {
		panic("boom")
	})
	w := &render.Walker{Registry: r}

	res := w.Walk(ctx, parse(t, `{"type":"View","orientation":"horizontal","child":[{"type":"Text","width":10}]}`))

	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0].Err.Error(), "boom")
	child := res.Root.Children[0]
	assert.True(t, child.IsPlaceholder())
	assert.Len(t, child.Modifiers, 1, "size is kept so the slot keeps its place")
}

func TestWalk_NoHandler(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	w := &render.Walker{Registry: registry.New()}

	res := w.Walk(ctx, parse(t, `{"type":"Text"}`))

	require.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.Is(res.Diagnostics[0].Err, render.ErrNoHandler))
}

func TestWalk_ImportsFoldedFromChildren(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	res := newWalker().Walk(ctx, parse(t, `{
		"type": "View", "orientation": "vertical",
		"child": [
			{"type": "Text", "cornerRadius": 4, "background": "#fff"},
			{"type": "TextField", "secure": true, "visibility": "@{mode}"}
		]
	}`))

	for _, imp := range []renderop.Import{renderop.ImportShape, renderop.ImportBackground, renderop.ImportPasswordMask, renderop.ImportVisibility} {
		assert.True(t, res.Imports.Has(imp), string(imp))
	}
	assert.False(t, res.Root.Imports.Has(renderop.ImportShape))
}

type fakeSink struct {
	name string
	got  *renderop.Result
	err  error
}

func (f *fakeSink) Consume(_ context.Context, name string, res *renderop.Result) error {
	f.name, f.got = name, res
	return f.err
}

func TestTranslate(t *testing.T) {
	ctx := ctxlog.Discard(context.Background())
	sink := &fakeSink{err: errors.New("disk full")}

	res, err := newWalker().Translate(ctx, "home", parse(t, `{"type":"Text"}`), sink)

	require.Error(t, err)
	assert.Equal(t, "home", sink.name)
	assert.Same(t, res, sink.got)
}
