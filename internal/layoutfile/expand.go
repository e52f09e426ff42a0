package layoutfile

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vk/jsonuigo/internal/value"
)

// expander carries the state of one Expand call.
type expander struct {
	store  *Store
	layout *Layout
	// including is the chain of files currently being expanded.
	including []string
	styles    map[string]value.Value
}

// expand merges styles into v and replaces include sites by the included
// document. prefix is the camelCase id prefix of the enclosing includes.
func (x *expander) expand(v value.Value, dir, prefix string) (value.Value, error) {
	if !v.IsObject() {
		return v, nil
	}
	v = x.mergeStyles(v, nil)

	if inc, ok := v.Get("include"); ok {
		if name, isString := inc.AsString(); isString && name != "" {
			return x.include(v, name, dir, prefix)
		}
	}

	fields := v.Fields()
	if prefix != "" {
		if id, ok := fields["id"].AsString(); ok && id != "" {
			fields["id"] = value.StringVal(CombineWithPrefix(prefix, id))
		}
	}
	for _, key := range []string{"child", "children"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		delete(fields, key)
		var out []value.Value
		elems := raw.Elements()
		if raw.IsObject() {
			elems = []value.Value{raw}
		}
		for _, c := range elems {
			e, err := x.expand(c, dir, prefix)
			if err != nil {
				return value.Value{}, err
			}
			out = append(out, e)
		}
		fields["child"] = value.ArrayVal(out...)
		break
	}
	return value.ObjectVal(fields), nil
}

func (x *expander) include(site value.Value, name, dir, prefix string) (value.Value, error) {
	path := filepath.Join(dir, filepath.FromSlash(name)+Ext)
	included, err := readObject(path)
	if err != nil && dir != x.store.LayoutsDir {
		path = x.store.Path(name)
		included, err = readObject(path)
	}
	if err != nil {
		return value.Value{}, fmt.Errorf("include '%s': %w", name, err)
	}
	if slices.Contains(x.including, path) {
		chain := make([]string, 0, len(x.including)+1)
		for _, p := range append(x.including, path) {
			chain = append(chain, filepath.Base(p))
		}
		return value.Value{}, fmt.Errorf("%w: %s", ErrIncludeCycle, strings.Join(chain, " -> "))
	}
	x.layout.Deps = append(x.layout.Deps, path)
	included = without(x.mergeStyles(included, nil), "partial")

	newPrefix := prefix
	if id, ok := site.Get("id"); ok {
		if s, _ := id.AsString(); s != "" {
			newPrefix = s
			if prefix != "" {
				newPrefix = CombineWithPrefix(prefix, s)
			}
		}
	}

	fields := included.Fields()
	for _, key := range site.Keys() {
		if key == "include" || key == "id" {
			continue
		}
		val, _ := site.Get(key)
		if key == "data" || key == "shared_data" {
			if val.IsArray() {
				fields[key] = value.ArrayVal(append(fields[key].Elements(), val.Elements()...)...)
			}
			continue
		}
		fields[key] = val
	}
	merged := value.ObjectVal(fields)
	if newPrefix != "" {
		merged = applyPrefix(merged, newPrefix)
	}

	x.including = append(x.including, path)
	defer func() { x.including = x.including[:len(x.including)-1] }()
	return x.expand(merged, filepath.Dir(path), newPrefix)
}

// mergeStyles applies the `style` entry of v: style attributes are defaults
// that v's own attributes override. Styles may reference further styles.
func (x *expander) mergeStyles(v value.Value, seen []string) value.Value {
	raw, ok := v.Get("style")
	if !ok {
		return v
	}
	var names []string
	if s, isString := raw.AsString(); isString {
		names = []string{s}
	} else {
		for _, e := range raw.Elements() {
			if s, isString := e.AsString(); isString {
				names = append(names, s)
			}
		}
	}

	fields := without(v, "style").Fields()
	for _, name := range names {
		if slices.Contains(seen, name) {
			x.warn(fmt.Errorf("style '%s' includes itself", name))
			continue
		}
		style, ok := x.style(name)
		if !ok {
			continue
		}
		style = x.mergeStyles(style, append(seen, name))
		for _, key := range style.Keys() {
			if _, own := fields[key]; !own {
				fields[key], _ = style.Get(key)
			}
		}
	}
	return value.ObjectVal(fields)
}

func (x *expander) style(name string) (value.Value, bool) {
	if v, ok := x.styles[name]; ok {
		return v, true
	}
	if x.store.StylesDir == "" {
		x.warn(fmt.Errorf("style '%s': no styles directory configured", name))
		return value.Value{}, false
	}
	path := filepath.Join(x.store.StylesDir, filepath.FromSlash(name)+Ext)
	v, err := readObject(path)
	if err != nil {
		x.warn(fmt.Errorf("style '%s': %w", name, err))
		return value.Value{}, false
	}
	if x.styles == nil {
		x.styles = map[string]value.Value{}
	}
	x.styles[name] = v
	x.layout.Deps = append(x.layout.Deps, path)
	return v, true
}

func (x *expander) warn(err error) {
	x.layout.Warnings = append(x.layout.Warnings, err)
}
