package livetree

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/datacontext"
	"github.com/vk/jsonuigo/internal/handlers"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/render"
	"github.com/vk/jsonuigo/internal/value"
)

// ErrNotBound is returned by Input for a property without a two-way binding.
var ErrNotBound = errors.New("property is not two-way bound")

// inputEvents are the handlers notified after a bound value changed, in
// order of preference.
var inputEvents = []string{"onValueChange", "onTextChange", "onChange"}

var clickEvents = []string{"onclick", "onClick"}

// Runner keeps one layout live: it re-renders whenever the data context or
// the layout itself changes. A render that finishes after a newer one was
// started is discarded, so Current never goes back in time.
type Runner struct {
	name     string
	walker   *render.Walker
	data     *datacontext.Context
	handlers *handlers.Handlers

	started atomic.Uint64

	mu        sync.Mutex
	root      *node.Node
	current   *Tree
	published uint64
	updates   chan *Tree
}

// NewRunner returns a runner for the layout name. Call SetRoot before Run.
func NewRunner(name string, w *render.Walker, data *datacontext.Context, h *handlers.Handlers) *Runner {
	if data == nil {
		data = datacontext.New(nil)
	}
	return &Runner{
		name:     name,
		walker:   w,
		data:     data,
		handlers: h,
		updates:  make(chan *Tree, 1),
	}
}

// Data returns the runner's data context.
func (r *Runner) Data() *datacontext.Context { return r.data }

// Updates delivers each published tree. Slow readers only see the latest.
func (r *Runner) Updates() <-chan *Tree { return r.updates }

// Current returns the latest published tree, or nil before the first render.
func (r *Runner) Current() *Tree {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// SetRoot swaps the layout, e.g. after its file changed, and renders it.
func (r *Runner) SetRoot(ctx context.Context, root *node.Node) *Tree {
	r.mu.Lock()
	r.root = root
	r.mu.Unlock()
	return r.Render(ctx)
}

// Render renders the current layout against the current data. It returns
// the built tree even when a newer render superseded it.
func (r *Runner) Render(ctx context.Context) *Tree {
	seq := r.started.Add(1)
	r.mu.Lock()
	root := r.root
	r.mu.Unlock()
	if root == nil {
		return nil
	}

	res := r.walker.Walk(ctx, root)
	tree := Build(ctx, r.name, res, r.data.Snapshot(), r.handlers)
	if !r.publish(seq, tree) {
		ctxlog.FromContext(ctx).Debug("Superseded render discarded.", "layout", r.name, "seq", seq)
	}
	return tree
}

func (r *Runner) publish(seq uint64, tree *Tree) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seq != r.started.Load() || seq <= r.published {
		return false
	}
	r.published = seq
	r.current = tree
	select {
	case <-r.updates:
	default:
	}
	r.updates <- tree
	return true
}

// Run re-renders on every data change until ctx is done.
func (r *Runner) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	changes, cancel := r.data.Subscribe()
	defer cancel()

	logger.Info("👀 Live layout running.", "layout", r.name)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Live layout stopped.", "layout", r.name)
			return nil
		case gen, ok := <-changes:
			if !ok {
				return nil
			}
			logger.Debug("Data changed, re-rendering.", "layout", r.name, "generation", gen)
			r.Render(ctx)
		}
	}
}

// Input writes user input for prop of el back to the data context and
// notifies the element's change handler. The next render picks the new value
// up.
func (r *Runner) Input(ctx context.Context, el *Element, prop string, v value.Value) error {
	path, ok := el.Bound[prop]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrNotBound, el.ID, prop)
	}
	if _, err := r.data.Set(path, v); err != nil {
		return err
	}
	return r.fire(ctx, el, inputEvents, v)
}

// Click invokes the click handler of el, if any.
func (r *Runner) Click(ctx context.Context, el *Element) error {
	return r.fire(ctx, el, clickEvents, value.NullValue())
}

func (r *Runner) fire(ctx context.Context, el *Element, names []string, v value.Value) error {
	if r.handlers == nil {
		return nil
	}
	for _, ev := range names {
		name, ok := el.Events[ev]
		if !ok {
			continue
		}
		return r.handlers.Invoke(ctx, name, handlers.Event{Name: ev, Source: el.ID, Value: v})
	}
	return nil
}
