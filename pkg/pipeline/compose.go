package pipeline

import (
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/grid"
)

// Compose lays the named figures out on g. Without explicit cells the
// figures are placed in names order, and a zero shape becomes one row.
func Compose(g *GridSpec, names []string, figs map[string]*figure.Figure) (*figure.Figure, error) {
	spec := g.Spec
	if len(g.Cells) == 0 {
		if spec.Rows == 0 && spec.Cols == 0 {
			spec.Rows, spec.Cols = 1, len(names)
		}
		ordered := make([]*figure.Figure, 0, len(names))
		for _, n := range names {
			f, ok := figs[n]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "grid plot %q was not built", n)
			}
			ordered = append(ordered, f)
		}
		return grid.Regular(spec, ordered...)
	}

	placements := make([]grid.Placement, 0, len(g.Cells))
	for _, c := range g.Cells {
		f, ok := figs[c.Plot]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "grid plot %q was not built", c.Plot)
		}
		placements = append(placements, grid.Placement{Figure: f, Cell: c.Cell})
	}
	return grid.Irregular(spec, placements...)
}

// cellCount returns the number of figures g places.
func cellCount(g *GridSpec, names []string) int {
	if len(g.Cells) > 0 {
		return len(g.Cells)
	}
	return len(names)
}

// gridPlots lists the plots g needs.
func gridPlots(g *GridSpec, names []string) []string {
	if len(g.Cells) == 0 {
		return names
	}
	out := make([]string, len(g.Cells))
	for i, c := range g.Cells {
		out[i] = c.Plot
	}
	return out
}
