package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/resfold/resfold/pkg/doc"
	"github.com/resfold/resfold/pkg/errors"
	"github.com/resfold/resfold/pkg/format"
	"github.com/resfold/resfold/pkg/resource"
	"github.com/resfold/resfold/pkg/scan"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command: an interactive tree viewer
// with per-file literal previews.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <path>",
		Short: "Browse a resource tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := scan.Scan(args[0], scan.Options{Logger: c.Logger})
			if err != nil {
				return err
			}

			model := NewBrowseModel(args[0], tree)
			p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "browser failed")
			}
			return nil
		},
	}
}

// =============================================================================
// BrowseModel - Interactive tree browsing
// =============================================================================

// browseRow is one visible line of the flattened tree.
type browseRow struct {
	key   string
	depth int
	node  resource.Node
}

// BrowseModel is the bubbletea model for tree browsing.
type BrowseModel struct {
	Root     string
	Tree     resource.Tree
	Expanded map[string]bool
	Rows     []browseRow
	Cursor   int
	Height   int
	Offset   int
	Preview  string
}

// NewBrowseModel creates a browse model with all directories collapsed.
func NewBrowseModel(root string, tree resource.Tree) BrowseModel {
	m := BrowseModel{
		Root:     root,
		Tree:     tree,
		Expanded: make(map[string]bool),
		Height:   15,
	}
	m.rebuild()
	return m
}

// rebuild flattens the tree into visible rows, honoring expansion state.
func (m *BrowseModel) rebuild() {
	m.Rows = m.Rows[:0]
	m.flatten(m.Tree, "", 0)
	if m.Cursor >= len(m.Rows) {
		m.Cursor = len(m.Rows) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// flatten appends the visible rows for nodes. Expansion keys are
// positional, so sibling directories sharing a name keep independent
// state.
func (m *BrowseModel) flatten(nodes []resource.Node, prefix string, depth int) {
	for i, n := range nodes {
		key := fmt.Sprintf("%s/%d", prefix, i)
		m.Rows = append(m.Rows, browseRow{key: key, depth: depth, node: n})
		if d, ok := n.(*resource.Dir); ok && m.Expanded[key] {
			m.flatten(d.Children, key, depth+1)
		}
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Preview != "" {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			default:
				m.Preview = ""
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			if len(m.Rows) == 0 {
				return m, nil
			}
			row := m.Rows[m.Cursor]
			switch n := row.node.(type) {
			case *resource.Dir:
				m.Expanded[row.key] = !m.Expanded[row.key]
				m.rebuild()
			case *resource.File:
				m.Preview = previewLiteral(n)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Root))
	b.WriteString("\n")

	if m.Preview != "" {
		b.WriteString(listDimStyle.Render("any key back  q quit"))
		b.WriteString("\n\n")
		b.WriteString(m.Preview)
		return b.String()
	}

	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ expand/preview  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Rows) {
		end = len(m.Rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.Rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		label := row.node.Label()
		style := listNormalStyle
		switch n := row.node.(type) {
		case *resource.Dir:
			marker := "+"
			if m.Expanded[row.key] {
				marker = "-"
			}
			label = marker + " " + label + "/"
		case *resource.File:
			marker := StyleSuccess.Render("*")
			if !format.IsText(n.Data) {
				marker = StyleWarning.Render("!")
			}
			label = fmt.Sprintf("%s %s  %s", marker, label,
				listDimStyle.Render(fmt.Sprintf("%d bytes", len(n.Data))))
		case *resource.Error:
			label = "  " + label
			style = StyleWarning
		}
		if i == m.Cursor {
			style = listSelectedStyle
		}

		b.WriteString(cursor + strings.Repeat("  ", row.depth) + style.Render(label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  ", m.Cursor+1, len(m.Rows))))
	b.WriteString(fmt.Sprintf("%s text  %s binary",
		StyleSuccess.Render("*"), StyleWarning.Render("!")))

	return b.String()
}

// previewLiteral shows a file the way the bindings strategy would emit it.
func previewLiteral(f *resource.File) string {
	var b strings.Builder
	d := doc.Concat(
		doc.Text("let "+format.ValueIdent(f.Name)+" ="),
		doc.Nest(2, doc.Concat(doc.Line, format.Escape(f.Data, 72))),
	)
	if err := doc.Render(&b, 72, 0.8, doc.Group(d)); err != nil {
		return StyleWarning.Render(err.Error())
	}
	return b.String()
}
