package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tabplot/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PlotListModel - Interactive plot selection
// =============================================================================

// PlotListModel is the bubbletea model for choosing which plots of a
// document to render.
type PlotListModel struct {
	Plots     []pipeline.PlotEntry
	Cursor    int
	Chosen    map[int]bool
	Confirmed bool
	Height    int
	Offset    int
}

// NewPlotListModel creates a plot list with nothing chosen.
func NewPlotListModel(plots []pipeline.PlotEntry) PlotListModel {
	return PlotListModel{
		Plots:  plots,
		Chosen: make(map[int]bool),
		Height: 15,
	}
}

// Selected returns the chosen plot names in document order. After a
// confirmation with nothing ticked, the plot under the cursor is chosen.
func (m PlotListModel) Selected() []string {
	if !m.Confirmed {
		return nil
	}
	var names []string
	for i, p := range m.Plots {
		if m.Chosen[i] {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 && len(m.Plots) > 0 {
		names = []string{m.Plots[m.Cursor].Name}
	}
	return names
}

func (m PlotListModel) Init() tea.Cmd {
	return nil
}

func (m PlotListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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
			if m.Cursor < len(m.Plots)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "x":
			m.Chosen[m.Cursor] = !m.Chosen[m.Cursor]
		case "a":
			all := len(m.chosen()) < len(m.Plots)
			for i := range m.Plots {
				m.Chosen[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PlotListModel) chosen() []int {
	var out []int
	for i := range m.Plots {
		if m.Chosen[i] {
			out = append(out, i)
		}
	}
	return out
}

func (m PlotListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Plots"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Plots))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Plots[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Chosen[i] {
			mark = "[x]"
		}
		rows = append(rows, []string{cursor, mark, p.Name, string(p.Spec.Kind())})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Plot", "Kind").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Chosen[idx]:
				return listNormalStyle.Foreground(colorGreen)
			case col == 3:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d chosen", m.Cursor+1, len(m.Plots), len(m.chosen()))))

	return b.String()
}

// pickPlots runs the chooser and returns the chosen names, or nil when the
// user quit.
func pickPlots(doc *pipeline.Document) ([]string, error) {
	final, err := tea.NewProgram(NewPlotListModel(doc.Plots)).Run()
	if err != nil {
		return nil, fmt.Errorf("plot chooser: %w", err)
	}
	return final.(PlotListModel).Selected(), nil
}
