package hotreload

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layoutfile"
)

func testCtx() context.Context {
	return ctxlog.Discard(context.Background())
}

type project struct {
	root, layouts, styles string
}

func newProject(t *testing.T) project {
	t.Helper()
	root := t.TempDir()
	p := project{
		root:    root,
		layouts: filepath.Join(root, "assets", "Layouts"),
		styles:  filepath.Join(root, "assets", "Styles"),
	}
	require.NoError(t, os.MkdirAll(filepath.Join(p.layouts, "home"), 0o755))
	require.NoError(t, os.MkdirAll(p.styles, 0o755))
	return p
}

func write(t *testing.T, path, src string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
}

func TestIgnored(t *testing.T) {
	testCases := []struct {
		path string
		want bool
	}{
		{path: "assets/Layouts/home.json", want: false},
		{path: "assets/Layouts/.home.json.swp", want: true},
		{path: "assets/Resources/strings.json", want: true},
		{path: "node_modules/x/package.json", want: true},
		{path: "app/build/out.json", want: true},
		{path: ".gradle/cache.json", want: true},
		{path: "../Layouts/home.json", want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, Ignored(filepath.FromSlash(tc.path)))
		})
	}
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		name       string
		prev, next ChangeType
		want       ChangeType
	}{
		{name: "first event", prev: "", next: FileChanged, want: FileChanged},
		{name: "created then written", prev: FileAdded, next: FileChanged, want: FileAdded},
		{name: "removed then created", prev: FileRemoved, next: FileAdded, want: FileChanged},
		{name: "written then removed", prev: FileChanged, next: FileRemoved, want: FileRemoved},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, merge(tc.prev, tc.next))
		})
	}
}

func TestDecodeChange(t *testing.T) {
	want := Change{Type: FileChanged, Path: "assets/Layouts/home.json", DirName: "Layouts", FileName: "home", Kind: KindLayout, Name: "home"}

	testCases := []struct {
		name    string
		payload any
		wantErr bool
	}{
		{name: "map", payload: want.Map()},
		{name: "string", payload: `{"type":"file_changed","path":"assets/Layouts/home.json","dirName":"Layouts","fileName":"home","kind":"layout","name":"home"}`},
		{name: "no type", payload: map[string]any{"path": "x"}, wantErr: true},
		{name: "not an object", payload: 42, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeChange(tc.payload)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestConnectError(t *testing.T) {
	cause := errors.New("websocket error")

	testCases := []struct {
		name     string
		args     []any
		expected string
	}{
		{name: "no payload", args: nil, expected: "connection refused by hot reload server"},
		{name: "nil payload", args: []any{nil}, expected: "connection refused by hot reload server"},
		{name: "error payload", args: []any{cause}, expected: "websocket error"},
		{name: "message payload", args: []any{map[string]any{"message": "denied"}}, expected: "connection refused by hot reload server: map[message:denied]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := connectError(tc.args...)
			require.Error(t, err)
			assert.EqualError(t, err, tc.expected)
		})
	}
	assert.ErrorIs(t, connectError(), ErrConnectRefused)
	assert.ErrorIs(t, connectError(cause), cause)
}

func TestNewWatcher_NoDirectories(t *testing.T) {
	root := t.TempDir()
	_, err := NewWatcher(root, filepath.Join(root, "missing"), "")
	var target *NoDirectoriesError
	assert.ErrorAs(t, err, &target)
}

func TestWatcher_ReportsChanges(t *testing.T) {
	p := newProject(t)
	existing := filepath.Join(p.layouts, "home", "header.json")
	write(t, existing, `{"type": "View"}`)

	w, err := NewWatcher(p.root, p.layouts, p.styles)
	require.NoError(t, err)
	defer w.Close()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(testCtx())
	defer cancel()
	changes := make(chan Change, 16)
	go w.Run(ctx, func(c Change) { changes <- c })

	next := func() Change {
		t.Helper()
		select {
		case c := <-changes:
			return c
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a change")
		}
		return Change{}
	}

	write(t, existing, `{"type": "Text"}`)
	c := next()
	assert.Equal(t, Change{
		Type:     FileChanged,
		Path:     "assets/Layouts/home/header.json",
		DirName:  "home",
		FileName: "header",
		Kind:     KindLayout,
		Name:     "home/header",
	}, c)

	write(t, filepath.Join(p.styles, "title.json"), `{}`)
	c = next()
	assert.Equal(t, FileAdded, c.Type)
	assert.Equal(t, KindStyle, c.Kind)
	assert.Equal(t, "title", c.Name)

	require.NoError(t, os.Remove(existing))
	c = next()
	assert.Equal(t, FileRemoved, c.Type)
	assert.Equal(t, "home/header", c.Name)
}

func TestWatcher_SkipsNonJSON(t *testing.T) {
	p := newProject(t)
	w, err := NewWatcher(p.root, p.layouts, p.styles)
	require.NoError(t, err)
	defer w.Close()
	w.Debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(testCtx())
	defer cancel()
	changes := make(chan Change, 16)
	go w.Run(ctx, func(c Change) { changes <- c })

	write(t, filepath.Join(p.layouts, "notes.txt"), "hi")
	write(t, filepath.Join(p.layouts, "home.json"), `{}`)

	select {
	case c := <-changes:
		assert.Equal(t, "home", c.Name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change")
	}
}

func newTestServer(t *testing.T) (*Server, project) {
	t.Helper()
	p := newProject(t)
	write(t, filepath.Join(p.layouts, "home.json"), `{"type": "View"}`)
	write(t, filepath.Join(p.layouts, "home", "header.json"), `{"type": "Text"}`)
	write(t, filepath.Join(p.styles, "title.json"), `{"fontSize": 18}`)
	s := NewServer("demo", p.root, "1.0.0", layoutfile.New(p.layouts, p.styles))
	t.Cleanup(s.Close)
	return s, p
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServer_Status(t *testing.T) {
	s, p := newTestServer(t)
	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	var got status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, status{Status: "running", Version: "1.0.0", Project: "demo", ProjectRoot: p.root}, got)
}

func TestServer_Routes(t *testing.T) {
	s, _ := newTestServer(t)

	testCases := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "health", path: "/health", wantCode: http.StatusOK, wantBody: "OK\n"},
		{name: "layouts", path: "/layouts", wantCode: http.StatusOK, wantBody: `["home","home/header"]` + "\n"},
		{name: "layout", path: "/layout/home", wantCode: http.StatusOK, wantBody: `{"type": "View"}`},
		{name: "nested layout with extension", path: "/layout/home/header.json", wantCode: http.StatusOK, wantBody: `{"type": "Text"}`},
		{name: "style", path: "/style/title", wantCode: http.StatusOK, wantBody: `{"fontSize": 18}`},
		{name: "missing layout", path: "/layout/nope", wantCode: http.StatusNotFound, wantBody: `{"error":"Layout not found: nope"}` + "\n"},
		{name: "missing style", path: "/style/nope", wantCode: http.StatusNotFound, wantBody: `{"error":"Style not found: nope"}` + "\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, s, tc.path)
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestServer_InvalidJSON(t *testing.T) {
	s, p := newTestServer(t)
	write(t, filepath.Join(p.layouts, "broken.json"), `{"type": `)
	rec := get(t, s, "/layout/broken")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_OnChange(t *testing.T) {
	s, _ := newTestServer(t)
	var got []Change
	s.OnChange = func(_ context.Context, c Change) { got = append(got, c) }

	c := Change{Type: FileChanged, Kind: KindLayout, Name: "home"}
	s.handleChange(testCtx(), c)
	assert.Equal(t, []Change{c}, got)
}
