package hotreload

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layoutfile"
)

// ChangeType names the broadcast event for a file change.
type ChangeType string

const (
	FileAdded   ChangeType = "file_added"
	FileChanged ChangeType = "file_changed"
	FileRemoved ChangeType = "file_removed"
)

// Kind tells which project directory a changed file lives in.
type Kind string

const (
	KindLayout Kind = "layout"
	KindStyle  Kind = "style"
)

// Change is one debounced file event as it is sent to clients.
type Change struct {
	Type ChangeType `json:"type"`
	// Path is relative to the project root.
	Path     string `json:"path"`
	DirName  string `json:"dirName"`
	FileName string `json:"fileName"`
	Kind     Kind   `json:"kind"`
	// Name is the layout or style name, relative to its directory.
	Name string `json:"name"`
}

// Map returns the change as a plain map for socket payloads.
func (c Change) Map() map[string]any {
	return map[string]any{
		"type":     string(c.Type),
		"path":     c.Path,
		"dirName":  c.DirName,
		"fileName": c.FileName,
		"kind":     string(c.Kind),
		"name":     c.Name,
	}
}

// DefaultDebounce is how long the watcher waits for a burst of editor events
// to settle.
const DefaultDebounce = 50 * time.Millisecond

var ignoredNames = []string{"Resources", "node_modules", "build", ".gradle"}

// Ignored reports whether a path is excluded from watching: dotfiles and
// anything inside a Resources, node_modules, build or .gradle directory.
func Ignored(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
		for _, name := range ignoredNames {
			if part == name {
				return true
			}
		}
	}
	return false
}

// Watcher reports layout and style changes under a project.
type Watcher struct {
	Root       string
	LayoutsDir string
	StylesDir  string
	Debounce   time.Duration

	watcher *fsnotify.Watcher
}

// NewWatcher starts watching layoutsDir and stylesDir recursively. Either may
// be empty or missing; at least one must exist.
func NewWatcher(root, layoutsDir, stylesDir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{Root: root, LayoutsDir: layoutsDir, StylesDir: stylesDir, Debounce: DefaultDebounce, watcher: fw}

	watched := 0
	for _, dir := range []string{layoutsDir, stylesDir} {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		w.watchDirRecursive(dir)
		watched++
	}
	if watched == 0 {
		fw.Close()
		return nil, &NoDirectoriesError{Dirs: []string{layoutsDir, stylesDir}}
	}
	return w, nil
}

// NoDirectoriesError is returned when none of the watched directories exist.
type NoDirectoriesError struct {
	Dirs []string
}

func (e *NoDirectoriesError) Error() string {
	return "no directories to watch; expected at least one of: " + strings.Join(e.Dirs, ", ")
}

func (w *Watcher) watchDirRecursive(root string) {
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && Ignored(w.rel(root, path)) {
			return filepath.SkipDir
		}
		_ = w.watcher.Add(path)
		return nil
	})
}

func (w *Watcher) rel(base, path string) string {
	r, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return r
}

// Close stops the underlying watcher, which also ends Run.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run delivers debounced changes to fn until ctx is done or the watcher is
// closed. Changes within one debounce window are delivered in path order.
func (w *Watcher) Run(ctx context.Context, fn func(Change)) error {
	logger := ctxlog.FromContext(ctx)
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]ChangeType)

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			typ, ok := w.classify(event)
			if !ok {
				continue
			}
			pending[event.Name] = merge(pending[event.Name], typ)
			timer.Reset(debounce)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			for _, p := range paths {
				c, ok := w.change(pending[p], p)
				if !ok {
					continue
				}
				logger.Debug("File change detected.", "type", c.Type, "path", c.Path)
				fn(c)
			}
			pending = make(map[string]ChangeType)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error.", "error", err)
		}
	}
}

// classify maps an fsnotify event to a change type. New directories are
// added to the watch list instead of being reported.
func (w *Watcher) classify(event fsnotify.Event) (ChangeType, bool) {
	if Ignored(w.rel(w.Root, event.Name)) {
		return "", false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.watchDirRecursive(event.Name)
			return "", false
		}
	}
	if filepath.Ext(event.Name) != layoutfile.Ext {
		return "", false
	}
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return FileRemoved, true
	case event.Has(fsnotify.Create):
		return FileAdded, true
	case event.Has(fsnotify.Write):
		return FileChanged, true
	}
	return "", false
}

// merge folds a new event into the pending one for the same path. A file
// created and then written is still an addition; one created and removed in
// the same window is dropped by change.
func merge(prev, next ChangeType) ChangeType {
	switch {
	case prev == "":
		return next
	case prev == FileAdded && next == FileChanged:
		return FileAdded
	case prev == FileRemoved && next == FileAdded:
		return FileChanged
	}
	return next
}

func (w *Watcher) change(typ ChangeType, path string) (Change, bool) {
	_, err := os.Stat(path)
	exists := err == nil
	if typ == FileRemoved && exists {
		typ = FileChanged
	}
	if typ != FileRemoved && !exists {
		return Change{}, false
	}

	c := Change{
		Type:     typ,
		Path:     filepath.ToSlash(w.rel(w.Root, path)),
		DirName:  filepath.Base(filepath.Dir(path)),
		FileName: strings.TrimSuffix(filepath.Base(path), layoutfile.Ext),
	}
	for _, d := range []struct {
		dir  string
		kind Kind
	}{{w.LayoutsDir, KindLayout}, {w.StylesDir, KindStyle}} {
		if d.dir == "" {
			continue
		}
		r, err := filepath.Rel(d.dir, path)
		if err != nil || strings.HasPrefix(r, "..") {
			continue
		}
		c.Kind = d.kind
		c.Name = strings.TrimSuffix(filepath.ToSlash(r), layoutfile.Ext)
		break
	}
	return c, true
}
