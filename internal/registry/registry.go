package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/renderop"
)

// Kind is the component kind a type string dispatches to.
type Kind = renderop.Kind

// Module is the interface that all component modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Env is what a handler sees of the walk that invoked it.
type Env interface {
	// Render runs the full pipeline on a child placed in parent.
	Render(child *node.Node, parent modifier.ParentContext) renderop.Op
	// RenderLayout loads a named layout, e.g. a collection cell, and renders
	// it in parent. A layout that is already being rendered higher up is a
	// cycle and fails.
	RenderLayout(name string, parent modifier.ParentContext) (renderop.Op, error)
	// Report records a recoverable problem on the current node.
	Report(severity renderop.Severity, err error)
	// DefaultColumns is the project-wide collection column count.
	DefaultColumns() int
}

// Handler renders one node of its kind. The walker fills in modifiers,
// visibility and anchors; a handler sets arguments, events and children.
type Handler interface {
	Handle(env Env, n *node.Node, op *renderop.Op) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(env Env, n *node.Node, op *renderop.Op) error

// Handle calls f.
func (f HandlerFunc) Handle(env Env, n *node.Node, op *renderop.Op) error {
	return f(env, n, op)
}

// Registry holds the handler of every kind for a single application
// instance.
type Registry struct {
	handlers map[Kind]Handler
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{handlers: make(map[Kind]Handler)}
}

// Register stores the handler for kind. Registering a kind twice is a
// programming error.
func (r *Registry) Register(kind Kind, h Handler) {
	if kind == renderop.KindUnknown {
		panic("the unknown kind is rendered by the walker and cannot have a handler")
	}
	if _, exists := r.handlers[kind]; exists {
		panic(fmt.Sprintf("component handler for kind '%s' already registered", kind))
	}
	slog.Debug("Registering component handler.", "kind", kind.String())
	r.handlers[kind] = h
}

// RegisterFunc is Register for a plain function.
func (r *Registry) RegisterFunc(kind Kind, fn HandlerFunc) {
	r.Register(kind, fn)
}

// Handler returns the handler for kind.
func (r *Registry) Handler(kind Kind) (Handler, bool) {
	h, ok := r.handlers[kind]
	return h, ok
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int { return len(r.handlers) }
