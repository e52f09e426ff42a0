// Package node holds the parsed layout tree. A Node is immutable once parsed;
// translation passes derive new structures from it and never write back.
package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vk/jsonuigo/internal/value"
)

// Node is a single element of a layout document.
type Node struct {
	// Type is the declared component type string, e.g. "View" or "Text".
	Type string
	// Attributes holds every key except the type and child keys.
	Attributes map[string]value.Value
	// Children is the ordered child list.
	Children []*Node
}

// childKeys are the keys that carry children. The first present one wins.
var childKeys = []string{"child", "children"}

// Parse decodes one layout document.
func Parse(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode layout JSON: %w", err)
	}
	return FromValue(value.FromAny(raw))
}

// FromValue builds a Node tree from an already decoded object value.
func FromValue(v value.Value) (*Node, error) {
	return fromValue(v, "root")
}

func fromValue(v value.Value, where string) (*Node, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%s: expected an object, got %s", where, v.Kind())
	}

	n := &Node{Attributes: make(map[string]value.Value, v.Len())}
	for _, key := range v.Keys() {
		if isChildKey(key) {
			continue
		}
		attr, _ := v.Get(key)
		if key == "type" {
			s, ok := attr.AsString()
			if !ok {
				return nil, fmt.Errorf("%s: 'type' must be a string", where)
			}
			n.Type = s
			continue
		}
		n.Attributes[key] = attr
	}

	for _, key := range childKeys {
		raw, ok := v.Get(key)
		if !ok {
			continue
		}
		var elems []value.Value
		switch raw.Kind() {
		case value.Array:
			elems = raw.Elements()
		case value.Object:
			elems = []value.Value{raw}
		case value.Null:
		default:
			return nil, fmt.Errorf("%s: '%s' must be an object or an array", where, key)
		}
		for i, e := range elems {
			child, err := fromValue(e, fmt.Sprintf("%s.%s[%d]", where, key, i))
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		}
		break
	}
	return n, nil
}

func isChildKey(key string) bool {
	for _, k := range childKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Attr returns the attribute for key.
func (n *Node) Attr(key string) (value.Value, bool) {
	v, ok := n.Attributes[key]
	return v, ok
}

// Has reports whether any of keys is present.
func (n *Node) Has(keys ...string) bool {
	for _, k := range keys {
		if _, ok := n.Attributes[k]; ok {
			return true
		}
	}
	return false
}

// String returns the string attribute for key, or "".
func (n *Node) String(key string) string {
	v, ok := n.Attributes[key]
	if !ok {
		return ""
	}
	s, _ := v.AsString()
	return s
}

// ID returns the declared id, or "".
func (n *Node) ID() string {
	return n.String("id")
}

// LowerType returns the type in lower case, which is how dispatch matches it.
func (n *Node) LowerType() string {
	return strings.ToLower(n.Type)
}

// WithAttribute returns a shallow copy of n with key set to v. The receiver
// is left untouched.
func (n *Node) WithAttribute(key string, v value.Value) *Node {
	attrs := make(map[string]value.Value, len(n.Attributes)+1)
	for k, a := range n.Attributes {
		attrs[k] = a
	}
	attrs[key] = v
	return &Node{Type: n.Type, Attributes: attrs, Children: n.Children}
}

// WithoutAttribute returns a shallow copy of n without key.
func (n *Node) WithoutAttribute(key string) *Node {
	attrs := make(map[string]value.Value, len(n.Attributes))
	for k, a := range n.Attributes {
		if k != key {
			attrs[k] = a
		}
	}
	return &Node{Type: n.Type, Attributes: attrs, Children: n.Children}
}

// WithChildren returns a shallow copy of n with a new child list.
func (n *Node) WithChildren(children []*Node) *Node {
	return &Node{Type: n.Type, Attributes: n.Attributes, Children: children}
}

// ToValue converts the node back into its object form. Used by the style
// and include passes which operate on raw documents.
func (n *Node) ToValue() value.Value {
	obj := make(map[string]value.Value, len(n.Attributes)+2)
	for k, v := range n.Attributes {
		obj[k] = v
	}
	if n.Type != "" {
		obj["type"] = value.StringVal(n.Type)
	}
	if len(n.Children) > 0 {
		children := make([]value.Value, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.ToValue()
		}
		obj["child"] = value.ArrayVal(children...)
	}
	return value.ObjectVal(obj)
}

// Walk visits n and its descendants depth first, parents before children.
// Returning false from fn skips the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
