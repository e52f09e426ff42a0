package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vk/jsonuigo/internal/codegen"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/hotreload"
)

// Serve runs the hot reload server until ctx is done. Layout changes, and
// style changes when styles are watched, regenerate the project; the build
// cache keeps that to the layouts the change affects. A removed layout loses
// its generated file.
func (a *App) Serve(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Serve method started.")

	p := a.project
	stylesDir := ""
	if p.Hotloader.WatchStyles {
		stylesDir = p.Project.StylesDirectory
	}
	w, err := hotreload.NewWatcher(p.Project.Root, p.Project.LayoutsDirectory, stylesDir)
	if err != nil {
		var noDirs *hotreload.NoDirectoriesError
		if !errors.As(err, &noDirs) {
			return err
		}
		a.logger.Warn("No directories to watch, serving files only.", "error", err)
		w = nil
	}
	if w != nil {
		defer w.Close()
	}

	srv := hotreload.NewServer(p.Project.Name, p.Project.Root, Version, a.store)
	var mu sync.Mutex
	srv.OnChange = func(ctx context.Context, c hotreload.Change) {
		mu.Lock()
		defer mu.Unlock()
		a.rebuild(ctx, c)
	}
	return srv.Serve(ctx, p.Hotloader.Addr(), w)
}

func (a *App) rebuild(ctx context.Context, c hotreload.Change) {
	logger := ctxlog.FromContext(ctx)
	if c.Type == hotreload.FileRemoved && c.Kind == hotreload.KindLayout {
		out := filepath.Join(a.project.Project.OutputDirectory, codegen.FileName(c.Name))
		if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to remove generated file.", "path", out, "error", err)
		}
	}
	if _, err := a.Generate(ctx); err != nil {
		logger.Error("Rebuild failed", "error", err)
		return
	}
	logger.Debug("Rebuild completed.", "trigger", c.Path)
}
