package executor

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layoutfile"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/renderop"
)

// worker is the processing loop of a single concurrent worker. Each worker
// owns the outcome slots of the jobs it picks up.
func (e *Executor) worker(ctx context.Context, readyChan <-chan int, outcomes []Outcome, workerID int) {
	defer e.wg.Done()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for i := range readyChan {
		o := &outcomes[i]
		workerLogger := logger.With("workerID", workerID, "layout", o.Name)

		if ctx.Err() != nil {
			workerLogger.Debug("Context canceled, skipping layout.")
			o.State, o.Err = Canceled, errCanceled
			continue
		}

		workerLogger.Debug("Worker picked up layout.")
		e.run(ctxlog.WithLogger(ctx, workerLogger), o)
		if o.State == Failed {
			workerLogger.Error("Layout generation failed.", "error", o.Err)
			continue
		}
		workerLogger.Debug("Layout finished.", "state", o.State, "warnings", o.Warnings, "errors", o.Errors)
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

func (e *Executor) run(ctx context.Context, o *Outcome) {
	logger := ctxlog.FromContext(ctx)

	l, err := e.Store.Expand(o.Name)
	if err != nil {
		o.State, o.Err = Failed, err
		return
	}
	for _, w := range l.Warnings {
		logger.Warn("Layout file warning.", "warning", w)
	}
	if l.Partial {
		o.State = Partial
		return
	}
	if e.Cache != nil && !e.Force {
		fresh, err := e.Cache.Fresh(o.Name)
		if err != nil {
			logger.Warn("Build cache lookup failed.", "error", err)
		}
		if fresh {
			o.State = Cached
			return
		}
	}

	// Cells and other named layouts are tracked so the cache entry covers
	// them too.
	tracker := &trackingLoader{store: e.Store}
	w := *e.Walker
	w.Loader = tracker
	res, err := w.Translate(ctx, o.Name, l.Root, e.Sink)
	if err != nil {
		o.State, o.Err = Failed, err
		return
	}
	for _, d := range res.Diagnostics {
		switch d.Severity {
		case renderop.Error:
			o.Errors++
			logger.Warn("Layout rendered with an error placeholder.", "path", d.Path, "error", d.Err)
		default:
			o.Warnings++
			logger.Debug("Layout diagnostic.", "path", d.Path, "warning", d.Err)
		}
	}
	o.State = Generated

	if e.Cache != nil && e.OutputPath != nil {
		deps := append(l.Deps, tracker.deps()...)
		if err := e.Cache.Put(o.Name, deps, e.OutputPath(o.Name)); err != nil {
			logger.Warn("Failed to record build.", "error", err)
		}
	}
}

// trackingLoader records the files behind every layout loaded during a walk.
type trackingLoader struct {
	store *layoutfile.Store
	mu    sync.Mutex
	files []string
}

func (t *trackingLoader) Load(name string) (*node.Node, error) {
	l, err := t.store.Expand(name)
	if err != nil {
		return nil, fmt.Errorf("expand '%s': %w", name, err)
	}
	t.mu.Lock()
	t.files = append(t.files, l.Deps...)
	t.mu.Unlock()
	return l.Root, nil
}

func (t *trackingLoader) deps() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.files...)
}
