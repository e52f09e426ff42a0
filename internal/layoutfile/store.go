// Package layoutfile reads layout documents from a project directory. Loading
// a layout merges its styles and expands its includes, so the tree handed to
// the walker is self-contained.
package layoutfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/jsonuigo/internal/fsutil"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/value"
)

// Ext is the extension of layout and style files.
const Ext = ".json"

var (
	// ErrNotFound is returned for a layout, include or style with no file.
	ErrNotFound = errors.New("layout file not found")
	// ErrIncludeCycle is returned when an include chain reaches a file it is
	// already expanding.
	ErrIncludeCycle = errors.New("include cycle")
)

// Store resolves layout names against a layouts directory and style names
// against a styles directory.
type Store struct {
	LayoutsDir string
	StylesDir  string
}

var _ render.Loader = (*Store)(nil)

// New returns a store over the given directories. stylesDir may be empty.
func New(layoutsDir, stylesDir string) *Store {
	return &Store{LayoutsDir: layoutsDir, StylesDir: stylesDir}
}

// Layout is one loaded document.
type Layout struct {
	Name string
	Root *node.Node
	// Partial layouts are only used through includes and cells.
	Partial bool
	// Deps lists every file read to produce Root, the layout itself first.
	Deps []string
	// Warnings are recoverable problems, such as a missing style.
	Warnings []error
}

// Load implements render.Loader.
func (s *Store) Load(name string) (*node.Node, error) {
	l, err := s.Expand(name)
	if err != nil {
		return nil, err
	}
	return l.Root, nil
}

// Path returns the file a layout name refers to.
func (s *Store) Path(name string) string {
	return filepath.Join(s.LayoutsDir, filepath.FromSlash(strings.TrimSuffix(name, Ext))+Ext)
}

// Name returns the layout name of a file below the layouts directory.
func (s *Store) Name(path string) (string, error) {
	rel, err := filepath.Rel(s.LayoutsDir, path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("'%s' is outside %s", path, s.LayoutsDir)
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, Ext)), nil
}

// List returns every layout name, sorted.
func (s *Store) List() ([]string, error) {
	files, err := fsutil.FindFiles(s.LayoutsDir, Ext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		name, err := s.Name(f)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Expand loads name with its styles merged and includes expanded.
func (s *Store) Expand(name string) (*Layout, error) {
	path := s.Path(name)
	raw, err := readObject(path)
	if err != nil {
		return nil, fmt.Errorf("layout '%s': %w", name, err)
	}

	l := &Layout{Name: name, Deps: []string{path}}
	if p, ok := raw.Get("partial"); ok {
		l.Partial, _ = p.AsBool()
		raw = without(raw, "partial")
	}

	x := &expander{store: s, layout: l, including: []string{path}}
	expanded, err := x.expand(raw, filepath.Dir(path), "")
	if err != nil {
		return nil, fmt.Errorf("layout '%s': %w", name, err)
	}
	l.Root, err = node.FromValue(expanded)
	if err != nil {
		return nil, fmt.Errorf("layout '%s': %w", name, err)
	}
	return l, nil
}

func readObject(path string) (value.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return value.Value{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return value.Value{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return value.Value{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	v := value.FromAny(raw)
	if !v.IsObject() {
		return value.Value{}, fmt.Errorf("%s: expected an object, got %s", path, v.Kind())
	}
	return v, nil
}

func without(v value.Value, keys ...string) value.Value {
	fields := v.Fields()
	for _, k := range keys {
		delete(fields, k)
	}
	return value.ObjectVal(fields)
}
