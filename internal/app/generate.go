package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/jsonuigo/internal/buildcache"
	"github.com/vk/jsonuigo/internal/codegen"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/executor"
)

// Generate writes the generated view of every named layout, or of every
// layout of the project when names is empty.
func (a *App) Generate(ctx context.Context, names ...string) (executor.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Generate method started.")

	if len(names) == 0 {
		all, err := a.store.List()
		if err != nil {
			return executor.Report{}, err
		}
		names = all
	}
	if len(names) == 0 {
		a.logger.Warn("No layouts found, generation not required.", "directory", a.store.LayoutsDir)
		return executor.Report{}, nil
	}

	p := a.project.Project
	sink := codegen.NewSink(p.OutputDirectory, codegen.Options{Package: p.PackageName})
	workers := p.Workers
	if a.config.WorkerCount > 0 {
		workers = a.config.WorkerCount
	}

	exec := executor.New(a.store, a.walker(), sink, workers)
	exec.Force = a.config.Force
	exec.OutputPath = func(name string) string {
		return filepath.Join(p.OutputDirectory, codegen.FileName(name))
	}
	if !a.config.NoCache {
		cache, err := buildcache.Open(p.CacheFile, Version)
		if err != nil {
			a.logger.Warn("Build cache unavailable, generating every layout.", "error", err)
		} else {
			defer cache.Close()
			exec.Cache = cache
		}
	}

	a.logger.Info("🚀 Generating layouts...", "count", len(names), "output", p.OutputDirectory)
	report, err := exec.Execute(ctx, names)
	a.logger.Info("🏁 Generation finished.",
		"generated", report.Count(executor.Generated),
		"cached", report.Count(executor.Cached),
		"partial", report.Count(executor.Partial),
		"failed", report.Count(executor.Failed),
	)
	if err != nil {
		return report, fmt.Errorf("execution failed: %w", err)
	}
	return report, nil
}
