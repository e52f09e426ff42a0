// Package schema holds the HCL decoding structs of the project file. They
// mirror the file's block layout one to one; defaults and path resolution
// happen when the hcl package translates them into a config.Model.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// File is the root of a `jsonui.hcl` file.
type File struct {
	Project   *Project   `hcl:"project,block"`
	Hotloader *Hotloader `hcl:"hotloader,block"`
	Preview   *Preview   `hcl:"preview,block"`
	Remain    hcl.Body   `hcl:",remain"`
}

// Project represents the `project` block.
type Project struct {
	Name             string   `hcl:"name,label"`
	SourceDirectory  *string  `hcl:"source_directory,optional"`
	LayoutsDirectory *string  `hcl:"layouts_directory,optional"`
	StylesDirectory  *string  `hcl:"styles_directory,optional"`
	OutputDirectory  *string  `hcl:"output_directory,optional"`
	PackageName      *string  `hcl:"package_name,optional"`
	DefaultColumns   *int     `hcl:"default_columns,optional"`
	CacheFile        *string  `hcl:"cache_file,optional"`
	Workers          *int     `hcl:"workers,optional"`
	Handlers         []string `hcl:"handlers,optional"`
}

// Hotloader represents the `hotloader` block.
type Hotloader struct {
	Host        *string `hcl:"host,optional"`
	Port        *int    `hcl:"port,optional"`
	WatchStyles *bool   `hcl:"watch_styles,optional"`
}

// Preview represents the `preview` block.
type Preview struct {
	DataFile *string `hcl:"data_file,optional"`
	Width    *int    `hcl:"width,optional"`
}
