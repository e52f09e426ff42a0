package datacontext

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/vk/jsonuigo/internal/value"
)

// LoadFile reads a data fixture. The format follows the extension: .json,
// .yaml/.yml or .hcl (top-level attributes only).
func LoadFile(path string) (value.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to read data file: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return decodeJSON(src)
	case ".yaml", ".yml":
		return decodeYAML(src)
	case ".hcl":
		return decodeHCL(src, path)
	default:
		return value.Value{}, fmt.Errorf("unsupported data file extension '%s'", ext)
	}
}

// Load builds a context from a fixture file.
func Load(path string) (*Context, error) {
	v, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decodeJSON(src []byte) (value.Value, error) {
	var v value.Value
	if err := json.Unmarshal(src, &v); err != nil {
		return value.Value{}, fmt.Errorf("invalid JSON data: %w", err)
	}
	return v, nil
}

func decodeYAML(src []byte) (value.Value, error) {
	var raw any
	if err := yaml.Unmarshal(src, &raw); err != nil {
		return value.Value{}, fmt.Errorf("invalid YAML data: %w", err)
	}
	return value.FromAny(raw), nil
}

func decodeHCL(src []byte, filename string) (value.Value, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return value.Value{}, fmt.Errorf("invalid HCL data: %w", diags)
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return value.Value{}, fmt.Errorf("HCL data may only contain attributes: %w", diags)
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make(map[string]value.Value, len(attrs))
	for _, name := range names {
		v, diags := attrs[name].Expr.Value(&hcl.EvalContext{})
		if diags.HasErrors() {
			return value.Value{}, fmt.Errorf("attribute '%s': %w", name, diags)
		}
		converted, err := value.FromCty(v)
		if err != nil {
			return value.Value{}, fmt.Errorf("attribute '%s': %w", name, err)
		}
		fields[name] = converted
	}
	return value.ObjectVal(fields), nil
}
