package renderop

import (
	"errors"
	"fmt"
)

// ErrUnknownComponent is the kind of the diagnostic reported for a type
// string that maps to no component.
var ErrUnknownComponent = errors.New("unknown component type")

// Severity ranks a diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Diagnostic is a recoverable problem found while rendering one node.
type Diagnostic struct {
	Severity Severity
	// Path locates the node, e.g. "View/child[1]:Text".
	Path string
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %v", d.Severity, d.Path, d.Err)
}

// Result is the outcome of one walk.
type Result struct {
	Root        Op
	Imports     Imports
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Errors returns the diagnostics matching target, compared with errors.Is.
func (r *Result) Errors(target error) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if errors.Is(d.Err, target) {
			out = append(out, d)
		}
	}
	return out
}
