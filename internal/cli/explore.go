package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/deptower/pkg/manifest"
	"github.com/matzehuels/deptower/pkg/resolve"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newExploreCmd creates the explore command, an interactive browser over
// the resolved closure.
func newExploreCmd() *cobra.Command {
	var mf manifestFlags

	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Interactively browse the resolved dependency closure",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			p, external, err := mf.load()
			if err != nil {
				return err
			}
			res, err := runResolve(c.Context(), p, external)
			if err != nil {
				return err
			}

			model := newExploreModel(p, res)
			_, err = tea.NewProgram(model, tea.WithContext(c.Context())).Run()
			return err
		},
	}

	mf.register(cmd)
	return cmd
}

// exploreModel is the bubbletea model for browsing resolution results.
// The left pane lists packages in resolution order; enter opens the
// selected package's resolved dependency table.
type exploreModel struct {
	project *manifest.Project
	result  *resolve.Result
	cursor  int
	offset  int
	height  int
	detail  bool // showing the dependency table for the cursor package
}

func newExploreModel(p *manifest.Project, res *resolve.Result) exploreModel {
	return exploreModel{
		project: p,
		result:  res,
		height:  15,
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.detail && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if !m.detail && m.cursor < len(m.result.Order)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.detail = true
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) View() string {
	if m.detail {
		return m.detailView()
	}
	return m.listView()
}

func (m exploreModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Packages"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.result.Order) {
		end = len(m.result.Order)
	}

	for i := m.offset; i < end; i++ {
		name := m.result.Order[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		version := ""
		if pkg := m.project.Package(name); pkg != nil {
			version = pkg.Version
		}
		count := len(m.result.Resolved[name])

		line := fmt.Sprintf("%s%-28s %-16s %s", cursor, name, version,
			listDimStyle.Render(fmt.Sprintf("%d deps", count)))

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else if m.project.Package(name) == nil {
			b.WriteString(listDimStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.result.Order))))
	return b.String()
}

func (m exploreModel) detailView() string {
	name := m.result.Order[m.cursor]
	deps := m.result.Resolved[name]
	details := m.result.Details[name]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	if len(deps) == 0 {
		b.WriteString(listDimStyle.Render("  no dependencies"))
		return b.String()
	}

	rows := [][]string{}
	for _, d := range deps {
		pin := "transitive"
		contributors := ""
		if det, ok := details[d.Package]; ok {
			if det.IsDirect {
				pin = "direct"
			}
			contributors = strings.Join(det.Contributors, ", ")
		}
		rows = append(rows, []string{d.Package, d.Version, pin, contributors})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Dependency", "Version", "Pin", "Contributors").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 && rows[row][2] == "direct" {
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	return b.String()
}
