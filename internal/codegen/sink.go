// Package codegen is the source emitting sink. It prints a render op tree as
// constructor calls inside one composable function, four spaces per level,
// with the imports the tree asked for. Output depends only on the op tree and
// the options, so the same layout always produces the same bytes.
package codegen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/renderop"
)

// DefaultPackage is used when no package name is configured.
const DefaultPackage = "com.example.jsonui"

// Options configure the generated file.
type Options struct {
	Package string
}

// ViewName converts a layout name such as `home_screen` or `auth/login` into
// a type name prefix like `HomeScreen` or `Login`.
func ViewName(layoutName string) string {
	base := filepath.Base(layoutName)
	var b strings.Builder
	for _, part := range strings.FieldsFunc(base, func(r rune) bool { return r == '_' || r == '-' || r == '.' || r == ' ' }) {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	if b.Len() == 0 {
		return "Layout"
	}
	return identifier(b.String())
}

// FileName is the name of the file generated for layoutName.
func FileName(layoutName string) string {
	return ViewName(layoutName) + "GeneratedView.kt"
}

// Generate returns the source for the walk result of layoutName.
func Generate(layoutName string, res *renderop.Result, opts Options) []byte {
	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	view := ViewName(layoutName)

	body := &printer{depth: 1}
	e := &emitter{p: body, x: exprs{root: "data"}, pkg: pkg}
	e.emit(&res.Root)

	var out printer
	out.line("// Generated from " + layoutName + ".json. Do not edit.")
	out.line("package " + pkg + ".views." + strings.ToLower(view))
	out.line("")
	extra := append(e.extra, pkg+".data."+view+"Data", pkg+".viewmodels."+view+"ViewModel")
	for _, imp := range importBlock(res.Imports, extra...) {
		out.line("import " + imp)
	}
	out.line("")
	out.line("@Composable")
	out.line("fun " + view + "GeneratedView(")
	out.line(indentUnit + "data: " + view + "Data,")
	out.line(indentUnit + "viewModel: " + view + "ViewModel")
	out.line(") {")
	// The body is printed first so that imports it needs reach the header.
	return []byte(out.String() + body.String() + "}\n")
}

// Sink writes one generated file per layout into Dir.
type Sink struct {
	Options
	Dir string

	mu      sync.Mutex
	written []string
}

var _ render.Sink = (*Sink)(nil)

// NewSink returns a sink writing into dir.
func NewSink(dir string, opts Options) *Sink {
	return &Sink{Options: opts, Dir: dir}
}

// Consume implements render.Sink. Files whose content did not change are
// left untouched.
func (s *Sink) Consume(ctx context.Context, name string, res *renderop.Result) error {
	logger := ctxlog.FromContext(ctx)
	src := Generate(name, res, s.Options)
	path := filepath.Join(s.Dir, FileName(name))

	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, src) {
		logger.Debug("Generated file unchanged.", "path", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	logger.Debug("Generated file written.", "path", path, "bytes", len(src))

	s.mu.Lock()
	s.written = append(s.written, path)
	s.mu.Unlock()
	return nil
}

// Written returns the paths written so far.
func (s *Sink) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.written...)
}
