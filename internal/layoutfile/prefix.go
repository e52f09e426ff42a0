package layoutfile

import (
	"strings"

	"github.com/vk/jsonuigo/internal/value"
)

// ToCamelCase turns snake_case into camelCase: `title_label` -> `titleLabel`.
func ToCamelCase(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(capitalize(p))
	}
	return b.String()
}

// CombineWithPrefix joins an include prefix and a name in camelCase:
// `header1` + `title_label` -> `header1TitleLabel`.
func CombineWithPrefix(prefix, name string) string {
	if prefix == "" {
		return name
	}
	camel := ToCamelCase(name)
	if camel == "" {
		return prefix
	}
	return prefix + strings.ToUpper(camel[:1]) + camel[1:]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// applyPrefix renames the data declarations of an included document and the
// bare binding references that point at them. Dotted paths such as
// `item.title` are left alone.
func applyPrefix(v value.Value, prefix string) value.Value {
	fields := v.Fields()
	if data, ok := fields["data"]; ok && data.IsArray() {
		decls := data.Elements()
		out := make([]value.Value, len(decls))
		for i, d := range decls {
			out[i] = d
			if name, ok := d.Get("name"); ok {
				if s, isString := name.AsString(); isString {
					df := d.Fields()
					df["name"] = value.StringVal(CombineWithPrefix(prefix, s))
					out[i] = value.ObjectVal(df)
				}
			}
		}
		fields["data"] = value.ArrayVal(out...)
	}
	return prefixBindings(value.ObjectVal(fields), prefix)
}

func prefixBindings(v value.Value, prefix string) value.Value {
	switch v.Kind() {
	case value.String:
		s, _ := v.AsString()
		return value.StringVal(prefixBindingText(s, prefix))
	case value.Array:
		elems := v.Elements()
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			out[i] = prefixBindings(e, prefix)
		}
		return value.ArrayVal(out...)
	case value.Object:
		fields := v.Fields()
		for k, e := range fields {
			fields[k] = prefixBindings(e, prefix)
		}
		return value.ObjectVal(fields)
	}
	return v
}

// prefixBindingText rewrites every `@{name}` span of s.
func prefixBindingText(s, prefix string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "@{")
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start:], '}')
		if end < 0 {
			break
		}
		end += start
		inner := s[start+2 : end]
		path, rest, _ := strings.Cut(inner, "??")
		name := strings.TrimSpace(path)

		b.WriteString(s[:start])
		if name == "" || strings.Contains(name, ".") {
			b.WriteString(s[start : end+1])
		} else {
			b.WriteString("@{" + CombineWithPrefix(prefix, name))
			if strings.Contains(inner, "??") {
				b.WriteString(" ??" + rest)
			}
			b.WriteString("}")
		}
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String()
}
