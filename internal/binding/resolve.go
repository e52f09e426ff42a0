package binding

import (
	"errors"
	"fmt"

	"github.com/vk/jsonuigo/internal/value"
)

// ErrUnresolved is matched by every *UnresolvedError.
var ErrUnresolved = errors.New("unresolved binding")

// UnresolvedError reports a binding whose path is absent from the data
// context and which declares no default.
type UnresolvedError struct {
	Expr  string
	Cause error
}

func (e *UnresolvedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unresolved binding @{%s}: %v", e.Expr, e.Cause)
	}
	return fmt.Sprintf("unresolved binding @{%s}", e.Expr)
}

// Is makes errors.Is(err, ErrUnresolved) work.
func (e *UnresolvedError) Is(target error) bool {
	return target == ErrUnresolved
}

// Lookup is the read-only view of a data context that resolution needs.
type Lookup interface {
	Get(path Path) (value.Value, bool)
}

// Status says how a Resolved value was obtained.
type Status int

const (
	// Literal: the input held no binding.
	Literal Status = iota
	// Bound: the path was found in the data context.
	Bound
	// Defaulted: the path was missing and the default was used.
	Defaulted
	// Unresolved: the path was missing and no default was declared.
	Unresolved
	// NotBindable: the input was not a string.
	NotBindable
)

func (s Status) String() string {
	switch s {
	case Literal:
		return "literal"
	case Bound:
		return "bound"
	case Defaulted:
		return "defaulted"
	case Unresolved:
		return "unresolved"
	case NotBindable:
		return "not-bindable"
	}
	return "unknown"
}

// Resolved is the outcome of Resolve.
type Resolved struct {
	Value   value.Value
	Status  Status
	Binding *Binding
	Err     error
}

// OK reports whether a usable value was produced.
func (r Resolved) OK() bool {
	return r.Status != Unresolved
}

// Resolve resolves raw against ctx. Strings without a binding come back
// unchanged; non-string values come back untouched with NotBindable.
func Resolve(raw value.Value, ctx Lookup) Resolved {
	s, ok := raw.AsString()
	if !ok {
		return Resolved{Value: raw, Status: NotBindable}
	}
	return ResolveString(s, ctx)
}

// ResolveString is Resolve for a plain string.
func ResolveString(raw string, ctx Lookup) Resolved {
	if !HasBinding(raw) {
		return Resolved{Value: value.StringVal(raw), Status: Literal}
	}
	b, ok := Parse(raw)
	if !ok {
		return Resolved{Value: value.StringVal(raw), Status: Literal}
	}
	return b.Resolve(ctx)
}

// Resolve resolves a parsed binding against ctx.
func (b *Binding) Resolve(ctx Lookup) Resolved {
	var (
		v     value.Value
		found bool
	)
	if b.PathErr == nil && ctx != nil {
		v, found = ctx.Get(b.Path)
	}

	status := Bound
	if !found {
		if !b.HasDefault {
			return Resolved{
				Status:  Unresolved,
				Binding: b,
				Err:     &UnresolvedError{Expr: b.Expr, Cause: b.PathErr},
			}
		}
		v = b.Default
		status = Defaulted
	}

	if !b.Whole() {
		v = value.StringVal(b.Prefix + v.String() + b.Suffix)
	}
	return Resolved{Value: v, Status: status, Binding: b}
}

// Walk follows path through nested objects and arrays starting at root.
func Walk(root value.Value, path Path) (value.Value, bool) {
	cur := root
	for _, seg := range path {
		next, ok := cur.Get(seg.Name)
		if !ok {
			return value.Value{}, false
		}
		if seg.HasIndex() {
			next, ok = next.Index(seg.Index)
			if !ok {
				return value.Value{}, false
			}
		}
		cur = next
	}
	return cur, true
}

// MapLookup adapts a plain object value to Lookup.
type MapLookup struct {
	Root value.Value
}

// Get implements Lookup.
func (m MapLookup) Get(path Path) (value.Value, bool) {
	return Walk(m.Root, path)
}
