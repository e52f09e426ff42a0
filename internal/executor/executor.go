// Package executor runs batch builds: every layout of a project is an
// independent job handed to a fixed pool of workers.
package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/vk/jsonuigo/internal/buildcache"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layoutfile"
	"github.com/vk/jsonuigo/internal/render"
)

// State is the outcome of one job.
type State int

const (
	Pending State = iota
	Generated
	// Cached jobs were skipped because nothing they depend on changed.
	Cached
	// Partial layouts are only rendered through includes and cells.
	Partial
	Failed
	Canceled
)

func (s State) String() string {
	switch s {
	case Generated:
		return "generated"
	case Cached:
		return "cached"
	case Partial:
		return "partial"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	}
	return "pending"
}

// Outcome is the result of one layout.
type Outcome struct {
	Name     string
	State    State
	Err      error
	Warnings int
	Errors   int
}

// Report lists every outcome in layout name order.
type Report struct {
	Outcomes []Outcome
}

// Count returns the number of outcomes in state s.
func (r Report) Count(s State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == s {
			n++
		}
	}
	return n
}

// Executor generates layouts concurrently.
type Executor struct {
	Store  *layoutfile.Store
	Walker *render.Walker
	Sink   render.Sink
	// Cache is optional; without it every layout is generated.
	Cache *buildcache.Cache
	// OutputPath names the file the sink writes for a layout. It is needed
	// to record cache entries.
	OutputPath func(name string) string
	Force      bool

	numWorkers int
	wg         sync.WaitGroup
}

// New returns an executor with the given pool size; workers <= 0 means one
// per CPU.
func New(store *layoutfile.Store, walker *render.Walker, sink render.Sink, workers int) *Executor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Executor{Store: store, Walker: walker, Sink: sink, numWorkers: workers}
}

// Execute generates every name. A failing layout does not stop the others;
// the returned error lists all failed layouts. Canceling ctx stops workers
// from picking up new jobs.
func (e *Executor) Execute(ctx context.Context, names []string) (Report, error) {
	logger := ctxlog.FromContext(ctx)

	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	outcomes := make([]Outcome, len(sorted))

	readyChan := make(chan int, len(sorted))
	for i, name := range sorted {
		outcomes[i] = Outcome{Name: name}
		readyChan <- i
	}
	close(readyChan)

	workers := min(e.numWorkers, len(sorted))
	logger.Debug("Starting worker pool.", "workers", workers, "jobs", len(sorted))
	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go e.worker(ctx, readyChan, outcomes, i)
	}
	e.wg.Wait()

	report := Report{Outcomes: outcomes}
	var failed []string
	var rootCause error
	for _, o := range outcomes {
		if o.State != Failed {
			continue
		}
		failed = append(failed, o.Name)
		if rootCause == nil {
			rootCause = o.Err
		}
	}
	if rootCause != nil {
		return report, fmt.Errorf("generation failed for %s: %w", strings.Join(failed, ", "), rootCause)
	}
	if err := ctx.Err(); err != nil && report.Count(Canceled) > 0 {
		return report, err
	}
	return report, nil
}

var errCanceled = errors.New("skipped because the build was canceled")
