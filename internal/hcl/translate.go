package hcl

import (
	"path/filepath"

	"github.com/vk/jsonuigo/internal/config"
	"github.com/vk/jsonuigo/internal/schema"
)

// translate converts the decoded file into the agnostic model. base is the
// directory every relative path is resolved against.
func translate(f *schema.File, base string) *config.Model {
	m := config.Default(base)

	if p := f.Project; p != nil {
		m.Project.Name = p.Name
		source := base
		if p.SourceDirectory != nil {
			source = resolve(base, *p.SourceDirectory)
			m.Project.Root = source
			m.Project.LayoutsDirectory = filepath.Join(source, config.DefaultLayoutsDirectory)
			m.Project.StylesDirectory = filepath.Join(source, config.DefaultStylesDirectory)
		}
		if p.LayoutsDirectory != nil {
			m.Project.LayoutsDirectory = resolve(source, *p.LayoutsDirectory)
		}
		if p.StylesDirectory != nil {
			m.Project.StylesDirectory = resolve(source, *p.StylesDirectory)
		}
		if p.OutputDirectory != nil {
			m.Project.OutputDirectory = resolve(base, *p.OutputDirectory)
		}
		if p.CacheFile != nil {
			m.Project.CacheFile = resolve(base, *p.CacheFile)
		}
		setString(&m.Project.PackageName, p.PackageName)
		setInt(&m.Project.DefaultColumns, p.DefaultColumns)
		setInt(&m.Project.Workers, p.Workers)
		m.Project.Handlers = append(m.Project.Handlers, p.Handlers...)
	}

	if h := f.Hotloader; h != nil {
		setString(&m.Hotloader.Host, h.Host)
		setInt(&m.Hotloader.Port, h.Port)
		if h.WatchStyles != nil {
			m.Hotloader.WatchStyles = *h.WatchStyles
		}
	}

	if pv := f.Preview; pv != nil {
		if pv.DataFile != nil {
			m.Preview.DataFile = resolve(base, *pv.DataFile)
		}
		setInt(&m.Preview.Width, pv.Width)
	}
	return m
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
