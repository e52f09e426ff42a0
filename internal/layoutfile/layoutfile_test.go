package layoutfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/node"
)

// project writes files relative to a temp dir and returns a store over its
// `layouts` and `styles` subdirectories.
func project(t *testing.T, files map[string]string) *Store {
	t.Helper()
	root := t.TempDir()
	for name, src := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	}
	return New(filepath.Join(root, "layouts"), filepath.Join(root, "styles"))
}

func attr(t *testing.T, n *node.Node, key string) string {
	t.Helper()
	v, ok := n.Attr(key)
	require.True(t, ok, "missing attribute %s", key)
	return v.String()
}

func TestCombineWithPrefix(t *testing.T) {
	testCases := []struct {
		prefix, name, expected string
	}{
		{"header1", "title", "header1Title"},
		{"header1", "title_label", "header1TitleLabel"},
		{"", "title_label", "title_label"},
		{"card", "userName", "cardUserName"},
	}
	for _, tc := range testCases {
		t.Run(tc.prefix+"+"+tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CombineWithPrefix(tc.prefix, tc.name))
		})
	}
}

func TestPrefixBindingText(t *testing.T) {
	testCases := []struct {
		in, expected string
	}{
		{"@{title}", "@{headerTitle}"},
		{"Hi @{user_name}!", "Hi @{headerUserName}!"},
		{"@{item.title}", "@{item.title}"},
		{"@{count ?? 0}", "@{headerCount ?? 0}"},
		{"@{a} and @{b}", "@{headerA} and @{headerB}"},
		{"plain", "plain"},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.expected, prefixBindingText(tc.in, "header"))
		})
	}
}

func TestExpand_StyleMerge(t *testing.T) {
	s := project(t, map[string]string{
		"styles/title.json": `{"fontSize": 20, "fontColor": "#000", "style": "base"}`,
		"styles/base.json":  `{"padding": 4, "fontColor": "#111"}`,
		"layouts/home.json": `{"type": "View", "child": [
			{"type": "Text", "style": "title", "fontColor": "#F00"},
			{"type": "Text", "style": ["missing", "base"]}
		]}`,
	})

	l, err := s.Expand("home")
	require.NoError(t, err)

	first := l.Root.Children[0]
	assert.Equal(t, "20", attr(t, first, "fontSize"))
	assert.Equal(t, "#F00", attr(t, first, "fontColor"))
	assert.Equal(t, "4", attr(t, first, "padding"))
	assert.False(t, first.Has("style"))

	second := l.Root.Children[1]
	assert.Equal(t, "#111", attr(t, second, "fontColor"))

	require.Len(t, l.Warnings, 1)
	assert.True(t, errors.Is(l.Warnings[0], ErrNotFound))
	assert.Contains(t, l.Deps, filepath.Join(s.StylesDir, "title.json"))
}

func TestExpand_Include(t *testing.T) {
	s := project(t, map[string]string{
		"layouts/common/header.json": `{"partial": true, "type": "View", "id": "root_view",
			"data": [{"name": "title", "class": "String"}],
			"child": [{"type": "Text", "id": "title_label", "text": "@{title}"},
			          {"type": "Text", "text": "@{item.name}"}]}`,
		"layouts/home.json": `{"type": "View", "child": [
			{"include": "common/header", "id": "header1", "background": "#FFF",
			 "data": [{"name": "extra"}]}
		]}`,
	})

	l, err := s.Expand("home")
	require.NoError(t, err)
	assert.False(t, l.Partial)

	header := l.Root.Children[0]
	assert.Equal(t, "View", header.Type)
	assert.Equal(t, "header1RootView", header.ID())
	assert.Equal(t, "#FFF", attr(t, header, "background"))
	assert.False(t, header.Has("partial"))

	data, _ := header.Attr("data")
	require.Equal(t, 2, data.Len())
	first, _ := data.Index(0)
	name, _ := first.Get("name")
	assert.Equal(t, "header1Title", name.String())

	require.Len(t, header.Children, 2)
	assert.Equal(t, "header1TitleLabel", header.Children[0].ID())
	assert.Equal(t, "@{header1Title}", attr(t, header.Children[0], "text"))
	assert.Equal(t, "@{item.name}", attr(t, header.Children[1], "text"))
	assert.Equal(t, []string{s.Path("home"), s.Path("common/header")}, l.Deps)
}

func TestExpand_PartialFlag(t *testing.T) {
	s := project(t, map[string]string{
		"layouts/cell.json": `{"partial": true, "type": "Text"}`,
	})
	l, err := s.Expand("cell")
	require.NoError(t, err)
	assert.True(t, l.Partial)
	assert.False(t, l.Root.Has("partial"))
}

func TestExpand_IncludeCycle(t *testing.T) {
	s := project(t, map[string]string{
		"layouts/a.json": `{"type": "View", "child": [{"include": "b"}]}`,
		"layouts/b.json": `{"type": "View", "child": [{"include": "a"}]}`,
	})
	_, err := s.Expand("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncludeCycle))
	assert.Contains(t, err.Error(), "a.json -> b.json -> a.json")
}

func TestExpand_MissingInclude(t *testing.T) {
	s := project(t, map[string]string{
		"layouts/a.json": `{"type": "View", "child": [{"include": "nope"}]}`,
	})
	_, err := s.Expand("a")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestList(t *testing.T) {
	s := project(t, map[string]string{
		"layouts/b.json":       `{"type": "Text"}`,
		"layouts/a/inner.json": `{"type": "Text"}`,
		"layouts/notes.txt":    `ignored`,
		"styles/ignored.json":  `{}`,
	})
	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a/inner", "b"}, names)
}

func TestLoad_ImplementsLoader(t *testing.T) {
	s := project(t, map[string]string{
		"layouts/product_cell.json": `{"type": "Text", "text": "@{title}"}`,
	})
	n, err := s.Load("product_cell")
	require.NoError(t, err)
	assert.Equal(t, "Text", n.Type)

	_, err = s.Load("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}
