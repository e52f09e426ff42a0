// Package structure renders screen structure: tab views, spacers and
// includes that were not expanded before the walk.
package structure

import (
	"fmt"

	"github.com/vk/jsonuigo/internal/args"
	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/node"
	"github.com/vk/jsonuigo/internal/registry"
	"github.com/vk/jsonuigo/internal/renderop"
	"github.com/vk/jsonuigo/internal/value"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the TabView, Spacer and Include handlers.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFunc(renderop.KindTabView, handleTabView)
	r.RegisterFunc(renderop.KindSpacer, handleSpacer)
	r.RegisterFunc(renderop.KindInclude, handleInclude)
}

var pageContext = modifier.ParentContext{Type: layout.Box}

// Each tab becomes one child op: its `view` layout when present, otherwise
// a text naming the tab.
func handleTabView(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	tabs, _ := n.Attr("tabs")
	if tabs.Len() == 0 {
		return fmt.Errorf("tab view needs at least one tab")
	}

	var titles, icons, badges []value.Value
	for i, tab := range tabs.Elements() {
		title := fmt.Sprintf("Tab %d", i+1)
		if t, ok := tab.Get("title"); ok {
			title = t.String()
		}
		icon := "circle"
		if ic, ok := tab.Get("icon"); ok {
			icon = ic.String()
		}
		badge, _ := tab.Get("badge")
		titles = append(titles, value.StringVal(title))
		icons = append(icons, value.StringVal(icon))
		badges = append(badges, value.StringVal(badge.String()))

		page, err := tabPage(env, tab, title)
		if err != nil {
			env.Report(renderop.Warning, fmt.Errorf("tab %d: %w", i, err))
		}
		op.Children = append(op.Children, page)
	}
	op.Add("titles", renderop.ArgList, value.ArrayVal(titles...))
	op.Add("icons", renderop.ArgList, value.ArrayVal(icons...))
	op.Add("badges", renderop.ArgList, value.ArrayVal(badges...))
	if !args.Number(op, v, "selectedIndex", renderop.ArgNumber, "bind", "selectedIndex") {
		op.Add("selectedIndex", renderop.ArgNumber, value.NumberVal(0))
	}
	if b, ok := v.Bool("showLabels"); !ok || b {
		op.Add("showLabels", renderop.ArgBool, value.BoolVal(true))
	}
	args.Color(env, op, v, "barColor", "tabBarBackground")
	args.Color(env, op, v, "selectedColor", "tintColor")
	args.Color(env, op, v, "unselectedColor", "unselectedColor")
	op.Need(renderop.ImportTabRow)
	return nil
}

func tabPage(env registry.Env, tab value.Value, title string) (renderop.Op, error) {
	if view, ok := tab.Get("view"); ok && view.String() != "" {
		page, err := env.RenderLayout(view.String(), pageContext)
		if err == nil {
			return page, nil
		}
		return placeholderPage(env, title), err
	}
	return placeholderPage(env, title), nil
}

func placeholderPage(env registry.Env, title string) renderop.Op {
	return env.Render(&node.Node{
		Type:       "Text",
		Attributes: map[string]value.Value{"text": value.StringVal(title + " content")},
	}, pageContext)
}

// A spacer is nothing but its modifiers; without a size it fills the
// remaining space of a linear container.
func handleSpacer(env registry.Env, n *node.Node, op *renderop.Op) error {
	if !attr.Of(n).Has("width", "height", "size", "weight") {
		op.Add("flexible", renderop.ArgBool, value.BoolVal(true))
	}
	return nil
}

// handleInclude renders the named layout in place. Layout files normally
// have their includes expanded at load time; this covers trees built in
// memory.
func handleInclude(env registry.Env, n *node.Node, op *renderop.Op) error {
	v := attr.Of(n)
	name, ok := v.String("include", "layout", "name")
	if !ok || name == "" {
		return fmt.Errorf("include needs a layout name")
	}
	child, err := env.RenderLayout(name, pageContext)
	if err != nil {
		return err
	}
	op.Add("layout", renderop.ArgText, value.StringVal(name))
	op.Children = append(op.Children, child)
	op.Need(renderop.ImportBox)
	return nil
}
