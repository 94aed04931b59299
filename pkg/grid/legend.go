package grid

import (
	"strings"

	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/style"
)

// mergeLegend gives the composed figure a single legend. An explicit
// legend is adopted as is; otherwise the backend default placement is
// used. In both cases every trace label appears once: the first trace with
// a label shows it, later traces with the same label join its legend group
// and are hidden from the legend. Traces without an explicit color get the
// default colorway color of their label, so a label keeps one color in
// every cell.
func mergeLegend(f *figure.Figure, explicit *figure.Legend) {
	index := make(map[string]int)
	shown := make(map[string]bool)
	next := 0
	for _, t := range f.Data {
		i, ok := index[t.Name]
		if !ok {
			i = next
			next++
			if t.Name != "" {
				index[t.Name] = i
			}
		}
		colorize(t, style.DefaultColorway[i%len(style.DefaultColorway)].String())

		if t.Name == "" || (t.ShowLegend != nil && !*t.ShowLegend) {
			continue
		}
		if t.LegendGroup == "" {
			t.LegendGroup = t.Name
		}
		if shown[t.Name] {
			t.ShowLegend = figure.Bool(false)
			continue
		}
		shown[t.Name] = true
		t.ShowLegend = nil
	}

	f.Layout.Legend = explicit
	if len(LegendEntries(f)) > 0 {
		f.Layout.ShowLegend = figure.Bool(true)
	}
}

// colorize sets color on a trace that has none, on the attribute the
// backend reads for its type.
func colorize(t *figure.Trace, color string) {
	switch t.Type {
	case "scatter", "scattergl", "scatter3d", "scatterpolar", "scattergeo", "scattermapbox":
		if (t.Marker != nil && t.Marker.Color != nil) || (t.Line != nil && t.Line.Color != "") {
			return
		}
		lines := strings.Contains(t.Mode, "lines")
		if lines {
			if t.Line == nil {
				t.Line = &figure.Line{}
			}
			t.Line.Color = color
		}
		if !lines || strings.Contains(t.Mode, "markers") {
			if t.Marker == nil {
				t.Marker = &figure.Marker{}
			}
			t.Marker.Color = color
		}
	case "bar", "box", "histogram", "barpolar":
		if t.Marker == nil {
			t.Marker = &figure.Marker{}
		}
		if t.Marker.Color == nil {
			t.Marker.Color = color
		}
	}
}

// LegendEntries returns the labels a figure's legend shows, in order and
// without duplicates. Pie slices contribute their labels.
func LegendEntries(f *figure.Figure) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, t := range f.Data {
		if t.ShowLegend != nil && !*t.ShowLegend {
			continue
		}
		if t.Type == "pie" {
			switch labels := t.Labels.(type) {
			case []string:
				for _, l := range labels {
					add(l)
				}
			case []any:
				for _, l := range labels {
					if s, ok := l.(string); ok {
						add(s)
					}
				}
			}
			continue
		}
		add(t.Name)
	}
	return out
}
