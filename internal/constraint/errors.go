package constraint

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these.
var (
	ErrDanglingTarget = errors.New("dangling constraint target")
	ErrAmbiguous      = errors.New("ambiguous constraint")
	ErrCycle          = errors.New("constraint cycle")
)

// Error is a resolution failure for one constraint scope.
type Error struct {
	Kind   error
	Anchor string
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v on '%s': %s", e.Kind, e.Anchor, e.Detail)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is matches the error kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Errors aggregates every problem found in a scope.
type Errors []*Error

func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	msg := fmt.Sprintf("%d constraint errors:", len(es))
	for _, e := range es {
		msg += "\n- " + e.Error()
	}
	return msg
}

// Is matches when any contained error matches.
func (es Errors) Is(target error) bool {
	for _, e := range es {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}
