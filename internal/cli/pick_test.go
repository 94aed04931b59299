package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/tabplot/pkg/pipeline"
)

func testPlots(t *testing.T) []pipeline.PlotEntry {
	t.Helper()
	doc, err := pipeline.LoadDocument(writeDocument(t))
	if err != nil {
		t.Fatal(err)
	}
	return doc.Plots
}

func press(m PlotListModel, keys ...string) PlotListModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(PlotListModel)
	}
	return m
}

func TestPlotListModelSelection(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"enter picks cursor", []string{"down", "enter"}, "share"},
		{"cursor stops at end", []string{"down", "down", "down", "enter"}, "share"},
		{"toggle", []string{"space", "down", "enter"}, "mass"},
		{"toggle both", []string{"x", "down", "x", "up", "enter"}, "mass,share"},
		{"all", []string{"a", "enter"}, "mass,share"},
		{"all twice clears", []string{"a", "a", "enter"}, "mass"},
		{"quit", []string{"space", "q"}, ""},
		{"escape", []string{"esc"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewPlotListModel(testPlots(t)), tt.keys...)
			if got := strings.Join(m.Selected(), ","); got != tt.want {
				t.Errorf("Selected() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlotListModelView(t *testing.T) {
	m := press(NewPlotListModel(testPlots(t)), "space")
	view := m.View()
	for _, want := range []string{"Select Plots", "mass", "scatter", "share", "pie", "[x]", "1 chosen"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
