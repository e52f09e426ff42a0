package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/datacontext"
	"github.com/vk/jsonuigo/internal/handlers"
	"github.com/vk/jsonuigo/internal/renderop"
)

// Issue is one validation finding.
type Issue struct {
	Layout   string
	Severity renderop.Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Layout, i.Severity, i.Message)
}

// ValidationReport lists the findings of a validation run.
type ValidationReport struct {
	Layouts int
	Issues  []Issue
}

// Count returns the number of issues with severity s.
func (r *ValidationReport) Count(s renderop.Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

func (r *ValidationReport) add(layout string, s renderop.Severity, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Layout: layout, Severity: s, Message: fmt.Sprintf(format, args...)})
}

// Validate renders every layout without writing anything and checks the
// bindings and handler names it references. Binding paths are checked
// against the data fixture when one is configured, handler names against
// the project's handler list when it is not empty.
func (a *App) Validate(ctx context.Context) (*ValidationReport, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	report := &ValidationReport{}

	names, err := a.store.List()
	if err != nil {
		return nil, err
	}

	var snapshot binding.Lookup
	if path := a.dataFile(); path != "" {
		data, err := datacontext.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load data fixture: %w", err)
		}
		snapshot = data.Snapshot()
	}
	var known *handlers.Handlers
	if len(a.project.Project.Handlers) > 0 {
		known = handlers.Declared(a.project.Project.Handlers...)
	}

	w := a.walker()
	for _, name := range names {
		l, err := a.store.Expand(name)
		if err != nil {
			report.add(name, renderop.Error, "%v", err)
			continue
		}
		for _, warn := range l.Warnings {
			report.add(name, renderop.Warning, "%v", warn)
		}
		if l.Partial {
			continue
		}
		report.Layouts++

		res := w.Walk(ctx, l.Root)
		for _, d := range res.Diagnostics {
			report.add(name, d.Severity, "%s: %v", d.Path, d.Err)
		}

		c := binding.NewCollector()
		c.Add(l.Root)
		for _, expr := range c.Invalid() {
			report.add(name, renderop.Error, "invalid binding expression '%s'", expr)
		}
		if snapshot != nil {
			for _, path := range c.References() {
				if _, ok := snapshot.Get(path); !ok {
					report.add(name, renderop.Warning, "binding '%s' is not present in the data fixture", path)
				}
			}
		}
		if known != nil {
			for _, h := range known.Missing(c.Handlers()) {
				report.add(name, renderop.Warning, "handler '%s' is not provided by the application", h)
			}
		}
	}

	sort.SliceStable(report.Issues, func(i, j int) bool { return report.Issues[i].Layout < report.Issues[j].Layout })
	a.logger.Info("🔎 Validation finished.",
		"layouts", report.Layouts,
		"errors", report.Count(renderop.Error),
		"warnings", report.Count(renderop.Warning),
	)
	return report, nil
}

func (a *App) dataFile() string {
	if a.config.DataFile != "" {
		return a.config.DataFile
	}
	return a.project.Preview.DataFile
}
