package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vk/jsonuigo/internal/livetree"
)

// Source publishes rendered trees. livetree.Runner implements it.
type Source interface {
	Updates() <-chan *livetree.Tree
	Current() *livetree.Tree
}

var _ Source = (*livetree.Runner)(nil)

// StatusMsg replaces the status line, e.g. after a hot reload.
type StatusMsg string

type treeMsg struct{ tree *livetree.Tree }

type reloadedMsg struct{ err error }

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model of the interactive preview.
type Model struct {
	source Source
	// reload rereads the layout file; nil disables the key binding.
	reload func() error

	width           int
	tree            *livetree.Tree
	showDiagnostics bool
	status          string
	err             error
}

// NewModel returns a model showing the trees published by source.
func NewModel(source Source, reload func() error) Model {
	return Model{source: source, reload: reload, tree: source.Current()}
}

func waitForTree(ch <-chan *livetree.Tree) tea.Cmd {
	return func() tea.Msg {
		tree, ok := <-ch
		if !ok {
			return nil
		}
		return treeMsg{tree: tree}
	}
}

func (m Model) Init() tea.Cmd {
	return waitForTree(m.source.Updates())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "d":
			m.showDiagnostics = !m.showDiagnostics
		case "r":
			if m.reload != nil {
				reload := m.reload
				return m, func() tea.Msg { return reloadedMsg{err: reload()} }
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case treeMsg:
		m.tree = msg.tree
		return m, waitForTree(m.source.Updates())
	case StatusMsg:
		m.status = string(msg)
	case reloadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "reloaded"
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	name := "layout"
	if m.tree != nil {
		name = m.tree.Name
	}
	b.WriteString(titleStyle.Render("◆ " + name))
	b.WriteString("\n\n")

	if m.tree != nil && m.tree.Root == nil {
		b.WriteString(helpStyle.Render("(root is gone)"))
	} else {
		b.WriteString(Render(m.tree, m.width))
	}
	b.WriteString("\n\n")

	if m.showDiagnostics && m.tree != nil {
		for _, d := range m.tree.Diagnostics {
			b.WriteString(d.String() + "\n")
		}
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	}
	status := Summary(m.tree)
	if m.status != "" {
		status += " • " + m.status
	}
	b.WriteString(helpStyle.Render(status) + "\n")
	b.WriteString(helpStyle.Render("q quit • r reload • d diagnostics"))
	return b.String()
}

// Run runs the preview until the user quits or ctx is done. Messages sent on
// status replace the status line.
func Run(ctx context.Context, m Model, status <-chan string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)

	if status != nil {
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case s, ok := <-status:
					if !ok {
						return
					}
					p.Send(StatusMsg(s))
				}
			}
		}()
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("preview failed: %w", err)
	}
	return nil
}
