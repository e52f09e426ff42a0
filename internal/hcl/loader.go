package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/jsonuigo/internal/config"
	"github.com/vk/jsonuigo/internal/ctxlog"
	"github.com/vk/jsonuigo/internal/schema"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct {
	// Environ supplies the `env` object visible to expressions; nil means
	// os.Environ.
	Environ func() []string
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL project file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the project file at path. Relative directories are resolved
// against the directory holding the file.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve '%s': %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(abs)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", abs, diags)
	}

	var root schema.File
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", abs, diags)
	}

	model := translate(&root, filepath.Dir(abs))
	model.Path = abs
	logger.Debug("HCL loading complete.",
		"project", model.Project.Name,
		"layouts", model.Project.LayoutsDirectory,
		"output", model.Project.OutputDirectory,
	)
	return model, nil
}

// evalContext exposes the process environment as `env.NAME`.
func (l *Loader) evalContext() *hcl.EvalContext {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	vars := map[string]cty.Value{}
	entries := environ()
	sort.Strings(entries)
	for _, kv := range entries {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": env}}
}
