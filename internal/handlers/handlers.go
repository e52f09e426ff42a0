// Package handlers holds the caller-supplied event handlers that layouts
// reference by name (`onclick`, `onValueChange`, ...). The translation core
// never defines handlers; it only resolves names against this registry.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/jsonuigo/internal/value"
)

// ErrUnknownHandler is returned when a layout names a handler nobody
// registered.
var ErrUnknownHandler = errors.New("unknown handler")

// Event is what a handler receives when a live element fires.
type Event struct {
	// Name is the attribute that declared the handler, e.g. "onclick".
	Name string
	// Source is the anchor of the element that fired.
	Source string
	// Value is the new value for change events, null otherwise.
	Value value.Value
}

// Func is one event handler.
type Func func(ctx context.Context, ev Event) error

// Handlers holds all the registered handlers.
type Handlers struct {
	mu  sync.RWMutex
	all map[string]Func
}

// New creates and initializes a new Handlers instance.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]Func),
	}
}

// Register registers fn under name. Registering a name twice panics.
func (h *Handlers) Register(name string, fn Func) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("event handler with name '%s' already registered", name))
	}
	slog.Debug("Registering event handler.", "name", name)
	h.all[name] = fn
}

// Resolve returns the handler registered under name.
func (h *Handlers) Resolve(name string) (Func, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn, ok := h.all[name]
	return fn, ok
}

// Invoke runs the handler registered under name.
func (h *Handlers) Invoke(ctx context.Context, name string, ev Event) error {
	fn, ok := h.Resolve(name)
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownHandler, name)
	}
	return fn(ctx, ev)
}

// Names returns the registered names, sorted.
func (h *Handlers) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.all))
	for name := range h.all {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Missing returns the names in refs that are not registered, in input order.
func (h *Handlers) Missing(refs []string) []string {
	var out []string
	for _, name := range refs {
		if _, ok := h.Resolve(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

// Declared returns a Handlers whose every name is a no-op that logs the
// event. It stands in for application code when previewing layouts.
func Declared(names ...string) *Handlers {
	h := New()
	for _, name := range names {
		if _, ok := h.Resolve(name); ok {
			continue
		}
		h.Register(name, func(ctx context.Context, ev Event) error {
			slog.Info("Handler invoked.", "handler", name, "event", ev.Name, "source", ev.Source, "value", ev.Value.String())
			return nil
		})
	}
	return h
}
