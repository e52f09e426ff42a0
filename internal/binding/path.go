package binding

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Segment is a single component of a binding path, e.g. `name` or `items[2]`.
type Segment struct {
	Name  string
	Index int // -1 when no index is present.
}

// NewSegment creates a segment without an index.
func NewSegment(name string) Segment {
	return Segment{Name: name, Index: -1}
}

// NewIndexedSegment creates a segment that includes an index.
func NewIndexedSegment(name string, index int) Segment {
	return Segment{Name: name, Index: index}
}

// HasIndex reports whether the segment carries an explicit index.
func (s Segment) HasIndex() bool {
	return s.Index != -1
}

// Path is the dotted lookup path of a binding.
type Path []Segment

// String serializes the path into its canonical form, e.g. `user.items[0].name`.
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(seg.Name)
		if seg.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", seg.Index))
		}
	}
	return sb.String()
}

// Equal checks two paths for equality.
func (p Path) Equal(other Path) bool {
	if len(p) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(p, other)
}

// Root returns the first segment name, or "".
func (p Path) Root() string {
	if len(p) == 0 {
		return ""
	}
	return p[0].Name
}

var segmentRegex = regexp.MustCompile(`^([a-zA-Z_$][a-zA-Z0-9_$-]*)(?:\[(\d+)\])?$`)

// ParsePath parses a dotted path with optional `[n]` indices per segment.
func ParsePath(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("binding path cannot be empty")
	}

	var path Path
	for _, segStr := range strings.Split(raw, ".") {
		segStr = strings.TrimSpace(segStr)
		if segStr == "" {
			return nil, fmt.Errorf("binding path %q contains an empty segment", raw)
		}
		m := segmentRegex.FindStringSubmatch(segStr)
		if m == nil {
			return nil, fmt.Errorf("invalid binding path segment %q", segStr)
		}
		seg := NewSegment(m[1])
		if m[2] != "" {
			idx, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("invalid index in segment %q: %w", segStr, err)
			}
			seg.Index = idx
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustParsePath is ParsePath for literals known to be valid.
func MustParsePath(raw string) Path {
	p, err := ParsePath(raw)
	if err != nil {
		panic(err)
	}
	return p
}
