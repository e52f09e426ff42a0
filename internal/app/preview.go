package app

import (
	"context"
	"fmt"

	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/datacontext"
	"github.com/vk/jsonuigo/internal/handlers"
	"github.com/vk/jsonuigo/internal/hotreload"
	"github.com/vk/jsonuigo/internal/livetree"
	"github.com/vk/jsonuigo/internal/preview"
)

// Preview renders the layout name against the data fixture in the terminal.
// Without Config.Interactive one frame is printed to the app's writer; with
// it a terminal program runs until the user quits, reloading the layout
// whenever a layout or style file changes.
func (a *App) Preview(ctx context.Context, name string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	data := datacontext.New(nil)
	if path := a.dataFile(); path != "" {
		loaded, err := datacontext.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load data fixture: %w", err)
		}
		data = loaded
	}

	root, err := a.store.Load(name)
	if err != nil {
		return err
	}
	c := binding.NewCollector()
	c.Add(root)
	h := handlers.Declared(append(c.Handlers(), a.project.Project.Handlers...)...)

	runner := livetree.NewRunner(name, a.walker(), data, h)
	width := a.config.Width
	if width == 0 {
		width = a.project.Preview.Width
	}

	if !a.config.Interactive {
		tree := runner.SetRoot(ctx, root)
		for _, d := range tree.Diagnostics {
			a.logger.Warn("Preview diagnostic.", "layout", name, "diagnostic", d.String())
		}
		fmt.Fprintln(a.outW, preview.Render(tree, width))
		return nil
	}

	// The terminal belongs to the program from here on.
	ctx = ctxlog.Discard(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner.SetRoot(ctx, root)
	reload := func() error {
		root, err := a.store.Load(name)
		if err != nil {
			return err
		}
		runner.SetRoot(ctx, root)
		return nil
	}
	go runner.Run(ctx)

	status := make(chan string, 8)
	notify := func(c hotreload.Change) {
		msg := fmt.Sprintf("%s %s", c.Path, c.Type)
		if err := reload(); err != nil {
			msg += ": " + err.Error()
		}
		select {
		case status <- msg:
		default:
		}
	}

	p := a.project.Project
	if w, err := hotreload.NewWatcher(p.Root, p.LayoutsDirectory, p.StylesDirectory); err == nil {
		defer w.Close()
		go w.Run(ctx, notify)
	}
	if a.config.HotReloadURL != "" {
		go func() {
			if err := hotreload.Subscribe(ctx, a.config.HotReloadURL, notify); err != nil {
				select {
				case status <- err.Error():
				default:
				}
			}
		}()
	}

	return preview.Run(ctx, preview.NewModel(runner, reload), status)
}
