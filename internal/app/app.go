package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/jsonuigo/internal/config"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/layoutfile"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/render"
)

// Version is the generator version. It is stamped into build cache records
// so that an upgraded generator regenerates every layout.
var Version = "dev"

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
	project  *config.Model
	store    *layoutfile.Store
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// A project file that cannot be found or loaded, and an incomplete registry,
// are startup errors and panic.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	path := appConfig.ConfigPath
	if path == "" {
		start := appConfig.WorkDir
		if start == "" {
			start, _ = os.Getwd()
		}
		found, err := config.Find(start)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		path = found
	}

	project, err := loader.Load(ctx, path)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	if err := project.Validate(); err != nil {
		panic(err)
	}
	logger.Debug("Configuration loaded.", "path", project.Path, "project", project.Project.Name)

	// Create and populate the registry with Go handlers.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	// Validate the integrity of the registry.
	if err := reg.ValidateRegistry(ctx); err != nil {
		// This is a programmer error (a kind without a handler), so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   appConfig,
		project:  project,
		store:    layoutfile.New(project.Project.LayoutsDirectory, project.Project.StylesDirectory),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Project returns the loaded project configuration.
func (a *App) Project() *config.Model {
	return a.project
}

func (a *App) walker() *render.Walker {
	return &render.Walker{
		Registry:       a.registry,
		Loader:         a.store,
		DefaultColumns: a.project.Project.DefaultColumns,
	}
}
