package grid

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/value"
)

// Config is the collection-specific part of a node.
type Config struct {
	Horizontal     bool
	DefaultColumns int
	Sections       []Section
	// CellClasses, HeaderClasses and FooterClasses are the legacy flat
	// form used when no sections are declared.
	CellClasses   []string
	HeaderClasses []string
	FooterClasses []string
	// Items is the raw items attribute, usually a binding.
	Items          string
	LineSpacing    float64
	ColumnSpacing  float64
	ContentPadding attr.Insets
	CellWidth      float64
	CellHeight     float64
}

// FromNode reads the collection attributes of n. fallbackColumns applies
// when n has no `columns` of its own.
func FromNode(n *node.Node, fallbackColumns int) (Config, error) {
	v := attr.Of(n)
	cfg := Config{DefaultColumns: fallbackColumns}

	orientation := v.StringOr("layout", v.StringOr("orientation", "vertical"))
	cfg.Horizontal = orientation == "horizontal"

	if a, ok := n.Attr("columns"); ok {
		c, err := columnCount(a)
		if err != nil {
			return Config{}, fmt.Errorf("columns: %w", err)
		}
		cfg.DefaultColumns = c
	}

	if a, ok := n.Attr("sections"); ok {
		for i, e := range a.Elements() {
			s, err := sectionFrom(e)
			if err != nil {
				return Config{}, fmt.Errorf("sections[%d]: %w", i, err)
			}
			cfg.Sections = append(cfg.Sections, s)
		}
	}
	cfg.CellClasses = v.Strings("cellClasses")
	cfg.HeaderClasses = v.Strings("headerClasses")
	cfg.FooterClasses = v.Strings("footerClasses")
	if len(cfg.CellClasses) == 0 {
		if s, ok := v.String("cell"); ok {
			cfg.CellClasses = []string{s}
		}
	}
	cfg.Items = v.StringOr("items", "")

	base := 0.0
	if f, ok := v.Number("itemSpacing", "spacing"); ok {
		base = f
	}
	cfg.LineSpacing = v.NumberOr("lineSpacing", base)
	cfg.ColumnSpacing = v.NumberOr("columnSpacing", base)

	if a, ok := n.Attr("contentPadding"); ok {
		if in, ok := attr.InsetsFromValue(a); ok {
			cfg.ContentPadding = in
		}
	}
	cfg.CellWidth = v.NumberOr("cellWidth", 0)
	cfg.CellHeight = v.NumberOr("cellHeight", 0)
	return cfg, nil
}

// Plan computes the grid plan of cfg.
func (c Config) Plan() (Plan, error) {
	return Compute(c.Sections, c.DefaultColumns)
}

func sectionFrom(e value.Value) (Section, error) {
	if !e.IsObject() {
		return Section{}, fmt.Errorf("expected an object, got %s", e.Kind())
	}
	var s Section
	str := func(key string) string {
		a, _ := e.Get(key)
		out, _ := a.AsString()
		return out
	}
	s.Cell, s.Header, s.Footer = str("cell"), str("header"), str("footer")
	if a, ok := e.Get("columns"); ok {
		c, err := columnCount(a)
		if err != nil {
			return Section{}, fmt.Errorf("columns: %w", err)
		}
		s.Columns, s.HasColumns = c, true
	}
	return s, nil
}

func columnCount(a value.Value) (int, error) {
	f, ok := a.AsNumber()
	if !ok || f != math.Trunc(f) || f <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidColumnCount, a)
	}
	return int(f), nil
}

var camelBoundary = regexp.MustCompile(`([a-z])([A-Z])`)

// CellFileName converts a cell class name such as `ProductCell` into the
// layout file name `product_cell`.
func CellFileName(class string) string {
	return strings.ToLower(camelBoundary.ReplaceAllString(class, "${1}_${2}"))
}

// CellData builds the data context of one cell. Object items are merged over
// base; any other item is exposed as `item`. `index` is always set.
func CellData(base value.Value, item value.Value, index int) value.Value {
	fields := make(map[string]value.Value, base.Len()+2)
	for _, k := range base.Keys() {
		fields[k], _ = base.Get(k)
	}
	if item.IsObject() {
		for _, k := range item.Keys() {
			fields[k], _ = item.Get(k)
		}
	} else {
		fields["item"] = item
	}
	fields["index"] = value.NumberVal(float64(index))
	return value.ObjectVal(fields)
}
