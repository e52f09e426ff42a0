// Package preview draws live trees in a terminal. The drawing is a sketch of
// the layout, not a pixel match: containers stack or line up their children,
// controls get a textual stand-in, and decoration modifiers become lipgloss
// padding, borders and colors.
package preview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vk/jsonuigo/internal/attr"
	"github.com/vk/jsonuigo/internal/layout"
	"github.com/vk/jsonuigo/internal/livetree"
	"github.com/vk/jsonuigo/internal/modifier"
	"github.com/vk/jsonuigo/internal/renderop"
)

// dpPerCell converts density independent pixels to terminal cells.
const dpPerCell = 8

var (
	buttonStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	fieldStyle       = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
	faintStyle       = lipgloss.NewStyle().Faint(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	selectedStyle    = lipgloss.NewStyle().Bold(true)
)

// Render draws tree. A width above zero truncates long lines.
func Render(tree *livetree.Tree, width int) string {
	if tree == nil || tree.Root == nil {
		return ""
	}
	out := element(tree.Root)
	if width > 0 {
		out = lipgloss.NewStyle().MaxWidth(width).Render(out)
	}
	return out
}

func element(el *livetree.Element) string {
	var body string
	if el.Placeholder {
		body = placeholder(el)
	} else {
		body = content(el)
	}
	body = decorate(body, el.Modifiers)
	if el.Invisible {
		return blank(body)
	}
	return body
}

func placeholder(el *livetree.Element) string {
	s := "⚠ " + el.Component
	if el.Err != nil {
		s += ": " + el.Err.Error()
	}
	return placeholderStyle.Render(s)
}

func content(el *livetree.Element) string {
	switch el.Kind {
	case renderop.KindText:
		return textStyle(el).Render(el.Text("text"))
	case renderop.KindButton:
		return buttonStyle.Inherit(textStyle(el)).Render(el.Text("text"))
	case renderop.KindTextField, renderop.KindTextView:
		v := el.Text("value")
		if v == "" {
			v = faintStyle.Render(el.Text("placeholder"))
		}
		return fieldStyle.Render(v)
	case renderop.KindSwitch:
		return labeled(toggle(el, "[on ]", "[off]"), el)
	case renderop.KindCheck:
		return labeled(toggle(el, "[x]", "[ ]"), el)
	case renderop.KindRadio:
		return radio(el)
	case renderop.KindSlider:
		return bar(number(el, "value", 0), number(el, "min", 0), number(el, "max", 1))
	case renderop.KindProgress:
		return bar(number(el, "progress", 0), 0, 1)
	case renderop.KindIndicator:
		return "⟳"
	case renderop.KindSelectBox:
		v := el.Text("selection")
		if v == "" {
			v = faintStyle.Render(el.Text("placeholder"))
		}
		return fieldStyle.Render(v + " ▾")
	case renderop.KindSegment:
		return segments(el)
	case renderop.KindImage, renderop.KindNetworkImage, renderop.KindCircleImage:
		src := el.Text("url")
		if src == "" {
			src = el.Text("resource")
		}
		return faintStyle.Render("[image " + src + "]")
	case renderop.KindWeb:
		return faintStyle.Render("[web " + el.Text("url") + "]")
	case renderop.KindCollection, renderop.KindTable:
		return gridRows(el)
	case renderop.KindSpacer:
		return ""
	}
	return children(el)
}

func textStyle(el *livetree.Element) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c, ok := color(el.Text("color")); ok {
		s = s.Foreground(c)
	}
	switch el.Text("fontWeight") {
	case "bold", "semibold":
		s = s.Bold(true)
	case "light", "thin":
		s = s.Faint(true)
	}
	if deco, ok := el.Prop("textDecoration"); ok {
		for _, d := range deco.Elements() {
			switch d.String() {
			case "underline":
				s = s.Underline(true)
			case "lineThrough":
				s = s.Strikethrough(true)
			}
		}
	}
	return s
}

func toggle(el *livetree.Element, on, off string) string {
	if v, ok := el.Prop("checked"); ok {
		if b, _ := v.AsBool(); b {
			return on
		}
	}
	return off
}

// radio draws a group from its items, or a lone button selected when the
// bound selection equals its own value.
func radio(el *livetree.Element) string {
	selected := el.Text("selected")
	mark := func(on bool) string {
		if on {
			return "(•)"
		}
		return "( )"
	}
	items, ok := el.Prop("items")
	if !ok || items.Len() == 0 {
		own := el.Text("value")
		return labeled(mark(own != "" && own == selected), el)
	}
	parts := make([]string, 0, items.Len())
	for _, it := range items.Elements() {
		parts = append(parts, mark(it.String() == selected)+" "+it.String())
	}
	return strings.Join(parts, "  ")
}

func labeled(s string, el *livetree.Element) string {
	if label := el.Text("label"); label != "" {
		return s + " " + label
	}
	return s
}

func number(el *livetree.Element, name string, def float64) float64 {
	if v, ok := el.Prop(name); ok {
		if f, ok := v.AsNumber(); ok {
			return f
		}
	}
	return def
}

const barWidth = 10

// bar draws a value between lo and hi as a ten cell track.
func bar(v, lo, hi float64) string {
	frac := 0.0
	if hi > lo {
		frac = modifier.Clamp01((v - lo) / (hi - lo))
	}
	filled := int(math.Round(frac * barWidth))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

func segments(el *livetree.Element) string {
	items, _ := el.Prop("items")
	selected := int(number(el, "selectedIndex", 0))
	parts := make([]string, 0, items.Len())
	for i, it := range items.Elements() {
		label := it.String()
		if i == selected {
			label = selectedStyle.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " | ")
}

func children(el *livetree.Element) string {
	blocks := make([]string, 0, len(el.Children))
	for _, c := range el.Children {
		blocks = append(blocks, element(c))
	}
	if len(blocks) == 0 {
		return ""
	}
	if el.Layout != nil && el.Layout.Layout == layout.Row {
		return joinRow(blocks)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func joinRow(blocks []string) string {
	spaced := make([]string, 0, 2*len(blocks)-1)
	for i, b := range blocks {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, b)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

// gridRows lays collection children out in rows of the planned column
// count; a child wider than the space left in a row starts the next one.
func gridRows(el *livetree.Element) string {
	columns := int(number(el, "columns", 1))
	if columns < 1 {
		columns = 1
	}
	var rows []string
	var row []string
	used := 0
	for _, c := range el.Children {
		span := min(max(c.Span, 1), columns)
		if used+span > columns {
			rows = append(rows, joinRow(row))
			row, used = nil, 0
		}
		row = append(row, element(c))
		used += span
	}
	if len(row) > 0 {
		rows = append(rows, joinRow(row))
	}
	if len(rows) == 0 {
		return faintStyle.Render("(empty)")
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// decorate applies padding, background and border in one box, then margin
// around it.
func decorate(body string, mods []modifier.Modifier) string {
	box := lipgloss.NewStyle()
	outer := lipgloss.NewStyle()
	boxed, spaced := false, false
	for _, m := range mods {
		switch m := m.(type) {
		case modifier.Padding:
			box = box.Padding(cells(m.Top), cells(m.End), cells(m.Bottom), cells(m.Start))
			boxed = true
		case modifier.Background:
			if c, ok := color(m.Color.Hex); ok {
				box = box.Background(c)
				boxed = true
			}
		case modifier.Border:
			b := lipgloss.NormalBorder()
			if m.Radius > 0 {
				b = lipgloss.RoundedBorder()
			}
			box = box.Border(b)
			if c, ok := color(m.Color.Hex); ok {
				box = box.BorderForeground(c)
			}
			boxed = true
		case modifier.Margin:
			outer = outer.Margin(cells(m.Top), cells(m.End), cells(m.Bottom), cells(m.Start))
			spaced = true
		}
	}
	if boxed {
		body = box.Render(body)
	}
	if spaced {
		body = outer.Render(body)
	}
	return body
}

func cells(dp float64) int {
	return int(math.Round(dp / dpPerCell))
}

// color converts a normalized #AARRGGBB color to a terminal color.
func color(hex string) (lipgloss.Color, bool) {
	if hex == "" {
		return "", false
	}
	norm, err := attr.ParseColor(hex)
	if err != nil {
		return "", false
	}
	return lipgloss.Color("#" + norm[3:]), true
}

// blank keeps the footprint of an invisible element.
func blank(s string) string {
	w, h := lipgloss.Width(s), lipgloss.Height(s)
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Summary is a one-line description of a tree for status bars.
func Summary(tree *livetree.Tree) string {
	if tree == nil {
		return "no layout rendered"
	}
	n := 0
	if tree.Root != nil {
		tree.Root.Walk(func(*livetree.Element) bool { n++; return true })
	}
	return fmt.Sprintf("%s: %d elements, generation %d, %d diagnostics", tree.Name, n, tree.Generation, len(tree.Diagnostics))
}
