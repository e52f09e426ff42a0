// Package collection renders data driven lists and grids. Cell, header and
// footer layouts are separate files rendered once as templates; the sink
// instantiates a template per item.
package collection

import (
	"fmt"

	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/grid"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the Collection and Table handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunc(renderop.KindCollection, handleCollection)
	r.RegisterFunc(renderop.KindTable, handleTable)
}

// templateContext is where cell layouts are rendered: each cell is the root
// of its own tree.
var templateContext = modifier.ParentContext{Type: layout.Box, Root: true}

func handleCollection(env registry.Env, n *node.Node, op *renderop.Op) error {
	cfg, err := grid.FromNode(n, env.DefaultColumns())
	if err != nil {
		return err
	}
	return build(env, n, op, cfg)
}

// A table is a single column collection whose row spacing comes from
// rowSpacing and whose cell is its `cell` class.
func handleTable(env registry.Env, n *node.Node, op *renderop.Op) error {
	cfg, err := grid.FromNode(n.WithoutAttribute("columns"), 1)
	if err != nil {
		return err
	}
	v := attr.Of(n)
	if f, ok := v.Number("rowSpacing"); ok {
		cfg.LineSpacing = f
	}
	args.Number(op, v, "rowHeight", renderop.ArgDp, "rowHeight")
	if s, ok := v.String("separatorStyle"); ok && s != "none" {
		op.Add("separator", renderop.ArgBool, value.BoolVal(true))
		args.Number(op, v, "separatorInset", renderop.ArgDp, "separatorInset")
	}
	return build(env, n, op, cfg)
}

func build(env registry.Env, n *node.Node, op *renderop.Op, cfg grid.Config) error {
	if len(cfg.Sections) == 0 {
		cfg.Sections = flatSections(cfg, n)
	}
	plan, err := cfg.Plan()
	if err != nil {
		return err
	}

	g := &renderop.Grid{Config: cfg, Plan: plan}
	for i, s := range cfg.Sections {
		sec := renderop.Section{Section: s, Span: plan.Spans[i]}
		sec.Template = template(env, s.Cell)
		sec.Header = template(env, s.Header)
		sec.Footer = template(env, s.Footer)
		g.Sections = append(g.Sections, sec)
	}
	op.Grid = g

	if cfg.Items != "" {
		op.Add("items", renderop.ArgList, value.StringVal(cfg.Items))
	} else if b, ok := attr.Of(n).String("bind"); ok {
		op.Add("items", renderop.ArgList, value.StringVal(b))
	}

	switch {
	case plan.Columns > 1:
		op.Need(renderop.ImportLazyGrid)
		if len(cfg.Sections) > 1 || plan.Spans[0] > 1 {
			op.Need(renderop.ImportGridItemSpan)
		}
	case cfg.Horizontal:
		op.Need(renderop.ImportLazyRow)
	default:
		op.Need(renderop.ImportLazyColumn)
	}
	if !cfg.ContentPadding.IsZero() {
		op.Need(renderop.ImportPaddingValues)
	}
	if cfg.LineSpacing > 0 || cfg.ColumnSpacing > 0 {
		op.Need(renderop.ImportArrangement)
	}
	return nil
}

// flatSections turns the legacy cellClasses/headerClasses/footerClasses form
// into a single section.
func flatSections(cfg grid.Config, n *node.Node) []grid.Section {
	first := func(list []string) string {
		if len(list) == 0 {
			return ""
		}
		return list[0]
	}
	s := grid.Section{
		Cell:   first(cfg.CellClasses),
		Header: first(cfg.HeaderClasses),
		Footer: first(cfg.FooterClasses),
	}
	if s.Header == "" {
		s.Header = attr.Of(n).StringOr("header", "")
	}
	return []grid.Section{s}
}

// template renders a cell class. A missing layout is a warning: the
// collection still renders, just without that template.
func template(env registry.Env, class string) *renderop.Op {
	if class == "" {
		return nil
	}
	op, err := env.RenderLayout(grid.CellFileName(class), templateContext)
	if err != nil {
		env.Report(renderop.Warning, fmt.Errorf("cell '%s': %w", class, err))
		return nil
	}
	return &op
}
