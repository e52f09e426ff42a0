// Package datacontext holds the data a live layout is bound to. Reads go
// through immutable snapshots so one render walk always sees a consistent
// view, while updates from two-way bound controls replace the root and bump
// the generation.
package datacontext

import (
	"fmt"
	"sync"

	"github.com/vk/jsonuigo/internal/binding"
	"github.com/vk/jsonuigo/internal/value"
)

// Context is the mutable data context of one screen. It is safe for
// concurrent use.
type Context struct {
	mu   sync.RWMutex
	root value.Value
	gen  uint64
	subs map[int]chan uint64
	next int
}

// Snapshot is a read-only view of a Context at one generation.
type Snapshot struct {
	Root       value.Value
	Generation uint64
}

var _ binding.Lookup = Snapshot{}

// Get implements binding.Lookup.
func (s Snapshot) Get(path binding.Path) (value.Value, bool) {
	return binding.Walk(s.Root, path)
}

// New returns a context holding data.
func New(data map[string]value.Value) *Context {
	if data == nil {
		data = map[string]value.Value{}
	}
	return &Context{root: value.ObjectVal(data), subs: map[int]chan uint64{}}
}

// FromValue returns a context whose root is v, which must be an object.
func FromValue(v value.Value) (*Context, error) {
	if v.IsNull() {
		return New(nil), nil
	}
	if !v.IsObject() {
		return nil, fmt.Errorf("data context root must be an object, got %s", v.Kind())
	}
	return New(v.Fields()), nil
}

// Get looks path up in the current data.
func (c *Context) Get(path binding.Path) (value.Value, bool) {
	return c.Snapshot().Get(path)
}

// Snapshot returns the current data and generation.
func (c *Context) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{Root: c.root, Generation: c.gen}
}

// Generation returns the number of changes applied so far.
func (c *Context) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Update merges top-level keys into the data and returns the new generation.
func (c *Context) Update(updates map[string]value.Value) uint64 {
	c.mu.Lock()
	fields := c.root.Fields()
	for k, v := range updates {
		fields[k] = v
	}
	c.root = value.ObjectVal(fields)
	gen := c.commit()
	c.mu.Unlock()
	return gen
}

// Set replaces the value at path, creating intermediate objects as needed.
// Indexed segments must address an existing array element.
func (c *Context) Set(path binding.Path, v value.Value) (uint64, error) {
	if len(path) == 0 {
		return 0, fmt.Errorf("cannot set an empty path")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	root, err := setIn(c.root, path, v)
	if err != nil {
		return 0, fmt.Errorf("set %s: %w", path, err)
	}
	c.root = root
	return c.commit(), nil
}

// Replace swaps the whole data root, e.g. after a fixture file changed.
func (c *Context) Replace(v value.Value) (uint64, error) {
	if !v.IsObject() {
		return 0, fmt.Errorf("data context root must be an object, got %s", v.Kind())
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.root = v
	return c.commit(), nil
}

// Subscribe returns a channel that receives the generation after each
// change, and a function that cancels the subscription. Notifications are
// coalesced: a slow reader only sees the latest generation.
func (c *Context) Subscribe() (<-chan uint64, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.next
	c.next++
	ch := make(chan uint64, 1)
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// commit bumps the generation and notifies subscribers. c.mu must be held.
func (c *Context) commit() uint64 {
	c.gen++
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- c.gen
	}
	return c.gen
}

func setIn(cur value.Value, path binding.Path, v value.Value) (value.Value, error) {
	seg := path[0]
	if !cur.IsObject() && !cur.IsNull() {
		return value.Value{}, fmt.Errorf("'%s' is not inside an object", seg.Name)
	}
	fields := cur.Fields()
	if fields == nil {
		fields = map[string]value.Value{}
	}
	child := fields[seg.Name]

	var err error
	switch {
	case seg.HasIndex():
		elems := child.Elements()
		if seg.Index >= len(elems) {
			return value.Value{}, fmt.Errorf("index %d out of range for '%s'", seg.Index, seg.Name)
		}
		out := make([]value.Value, len(elems))
		copy(out, elems)
		if len(path) == 1 {
			out[seg.Index] = v
		} else if out[seg.Index], err = setIn(out[seg.Index], path[1:], v); err != nil {
			return value.Value{}, err
		}
		fields[seg.Name] = value.ArrayVal(out...)
	case len(path) == 1:
		fields[seg.Name] = v
	default:
		if fields[seg.Name], err = setIn(child, path[1:], v); err != nil {
			return value.Value{}, err
		}
	}
	return value.ObjectVal(fields), nil
}
