package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Defaults applied when the project file leaves a field out.
const (
	DefaultLayoutsDirectory = "assets/Layouts"
	DefaultStylesDirectory  = "assets/Styles"
	DefaultOutputDirectory  = "build/generated"
	DefaultPackageName      = "com.example.jsonui"
	DefaultCacheFile        = ".jsonui/cache.db"
	DefaultColumns          = 1
	DefaultHotloaderHost    = "127.0.0.1"
	DefaultHotloaderPort    = 8081
	DefaultPreviewWidth     = 60
)

// Model is the format-agnostic project configuration. All directory fields
// are absolute once the model has been produced by a Loader.
type Model struct {
	// Path is the file the model was loaded from; empty for Default.
	Path      string
	Project   Project
	Hotloader Hotloader
	Preview   Preview
}

// Project describes where layouts live and where generated code goes.
type Project struct {
	Name             string
	Root             string
	LayoutsDirectory string
	StylesDirectory  string
	OutputDirectory  string
	PackageName      string
	DefaultColumns   int
	CacheFile        string
	// Workers is the size of the batch generation pool; 0 means one per CPU.
	Workers int
	// Handlers lists the handler names the host application provides.
	Handlers []string
}

// Hotloader configures the development server.
type Hotloader struct {
	Host        string
	Port        int
	WatchStyles bool
}

// Addr is the listen address of the hot reload server.
func (h Hotloader) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// Preview configures the terminal preview.
type Preview struct {
	DataFile string
	Width    int
}

// Default returns the configuration used when a project has no file,
// rooted at root.
func Default(root string) *Model {
	return &Model{
		Project: Project{
			Name:             filepath.Base(root),
			Root:             root,
			LayoutsDirectory: filepath.Join(root, DefaultLayoutsDirectory),
			StylesDirectory:  filepath.Join(root, DefaultStylesDirectory),
			OutputDirectory:  filepath.Join(root, DefaultOutputDirectory),
			PackageName:      DefaultPackageName,
			DefaultColumns:   DefaultColumns,
			CacheFile:        filepath.Join(root, DefaultCacheFile),
		},
		Hotloader: Hotloader{Host: DefaultHotloaderHost, Port: DefaultHotloaderPort, WatchStyles: true},
		Preview:   Preview{Width: DefaultPreviewWidth},
	}
}

// Validate reports every invalid field at once.
func (m *Model) Validate() error {
	var errs []string
	if m.Project.LayoutsDirectory == "" {
		errs = append(errs, "project.layouts_directory must not be empty")
	}
	if m.Project.DefaultColumns <= 0 {
		errs = append(errs, fmt.Sprintf("project.default_columns must be positive, got %d", m.Project.DefaultColumns))
	}
	if m.Project.Workers < 0 {
		errs = append(errs, fmt.Sprintf("project.workers must not be negative, got %d", m.Project.Workers))
	}
	if !validPackage(m.Project.PackageName) {
		errs = append(errs, fmt.Sprintf("project.package_name '%s' is not a valid package name", m.Project.PackageName))
	}
	if m.Hotloader.Port <= 0 || m.Hotloader.Port > 65535 {
		errs = append(errs, fmt.Sprintf("hotloader.port %d is out of range", m.Hotloader.Port))
	}
	if len(errs) > 0 {
		return errors.New("configuration validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func validPackage(name string) bool {
	if name == "" {
		return false
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if !letter && (i == 0 || r < '0' || r > '9') {
				return false
			}
		}
	}
	return true
}
