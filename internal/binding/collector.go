package binding

import (
	"sort"
	"sync"

	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/value"
)

// HandlerKeys are the attributes whose string values name caller-supplied
// event handlers.
var HandlerKeys = []string{"onclick", "onClick", "onValueChange", "onTextChange", "onLongPress", "onChange", "onTabChange"}

// IsHandlerKey reports whether key names an event handler attribute.
func IsHandlerKey(key string) bool {
	for _, k := range HandlerKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Collector gathers node trees and reports every binding path and handler
// name they reference. Analysis runs once per batch of added trees.
type Collector struct {
	analyzeOnce sync.Once

	mu    sync.RWMutex
	roots []*node.Node

	references []Path
	handlers   []string
	invalid    []string
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add queues trees for analysis. Nil roots are ignored.
func (c *Collector) Add(roots ...*node.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Adding resets the cached analysis. Add is not called concurrently with
	// the getters.
	c.analyzeOnce = sync.Once{}
	for _, r := range roots {
		if r != nil {
			c.roots = append(c.roots, r)
		}
	}
}

func (c *Collector) analyze() {
	c.analyzeOnce.Do(func() {
		c.mu.RLock()
		refs, handlers, invalid := extract(c.roots...)
		c.mu.RUnlock()

		c.mu.Lock()
		c.references = refs
		c.handlers = handlers
		c.invalid = invalid
		c.mu.Unlock()
	})
}

// References returns the unique binding paths, sorted by canonical form.
func (c *Collector) References() []Path {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.references
}

// Handlers returns the unique handler names, sorted.
func (c *Collector) Handlers() []string {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handlers
}

// Invalid returns binding expressions whose path failed to parse, sorted.
func (c *Collector) Invalid() []string {
	c.analyze()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.invalid
}

func extract(roots ...*node.Node) ([]Path, []string, []string) {
	paths := make(map[string]Path)
	handlers := make(map[string]struct{})
	invalid := make(map[string]struct{})

	var visitValue func(v value.Value)
	visitValue = func(v value.Value) {
		switch v.Kind() {
		case value.String:
			s, _ := v.AsString()
			b, ok := Parse(s)
			if !ok {
				return
			}
			if b.PathErr != nil {
				invalid[b.Expr] = struct{}{}
				return
			}
			paths[b.Path.String()] = b.Path
		case value.Array:
			for _, e := range v.Elements() {
				visitValue(e)
			}
		case value.Object:
			for _, k := range v.Keys() {
				e, _ := v.Get(k)
				visitValue(e)
			}
		}
	}

	for _, root := range roots {
		root.Walk(func(n *node.Node) bool {
			for key, attr := range n.Attributes {
				if IsHandlerKey(key) {
					if name, ok := attr.AsString(); ok && !HasBinding(name) && name != "" {
						handlers[name] = struct{}{}
						continue
					}
				}
				visitValue(attr)
			}
			return true
		})
	}

	return sortedPaths(paths), sortedKeys(handlers), sortedKeys(invalid)
}

func sortedPaths(m map[string]Path) []Path {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Path, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
