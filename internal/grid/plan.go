// Package grid plans sectioned collection layouts. Sections with different
// column counts share one grid whose width is the least common multiple of
// all counts; each item then spans enough columns to look like its own
// section's grid.
package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidColumnCount is returned for zero or negative column counts.
var ErrInvalidColumnCount = errors.New("invalid column count")

// Section is one group of cells.
type Section struct {
	// Columns is the section's own count, used when HasColumns is set.
	Columns    int
	HasColumns bool
	Cell       string
	Header     string
	Footer     string
}

// Plan is the unified grid for all sections of a collection.
type Plan struct {
	Columns int
	// Spans holds the item span of each section, in section order.
	Spans []int
}

// HeaderSpan is the span of section headers and footers, always the full
// width.
func (p Plan) HeaderSpan() int { return p.Columns }

// Compute builds the plan for sections. An explicit non-positive count is
// rejected before any division happens.
func Compute(sections []Section, defaultColumns int) (Plan, error) {
	if defaultColumns <= 0 {
		return Plan{}, fmt.Errorf("%w: default columns is %d", ErrInvalidColumnCount, defaultColumns)
	}
	counts := make([]int, len(sections))
	for i, s := range sections {
		c := defaultColumns
		if s.HasColumns {
			c = s.Columns
		}
		if c <= 0 {
			return Plan{}, fmt.Errorf("%w: section %d has %d columns", ErrInvalidColumnCount, i, c)
		}
		counts[i] = c
	}

	unified := defaultColumns
	if len(counts) > 0 {
		unified = counts[0]
		for _, c := range counts[1:] {
			unified = lcm(unified, c)
		}
	}

	p := Plan{Columns: unified, Spans: make([]int, len(counts))}
	for i, c := range counts {
		p.Spans[i] = unified / c
	}
	return p, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
