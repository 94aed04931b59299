package plot

import (
	"strings"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/grid"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// cellFunc builds the figure of one facet from its parts. Without faceting
// it is called once with every part.
type cellFunc func(parts []partition.Part) (*figure.Figure, error)

// facet runs build once per facet of res. An unfaceted result yields the
// single figure with the figure-level options of c applied. A faceted one
// is composed on a grid with one cell per facet, titled by the facet label.
func facet(res *partition.Result, g *Grouping, c *Common, build cellFunc) (*figure.Figure, error) {
	if !res.Faceted() {
		f, err := build(res.Parts)
		if err != nil {
			return nil, err
		}
		c.finish(f)
		return f, nil
	}

	cfg := g.FacetStyle
	byFacet := res.ByFacet()
	rows, cols := cfg.Shape(len(byFacet))
	if rows*cols < len(byFacet) {
		return nil, errors.Inconsistent("facet_config",
			"%dx%d grid cannot hold %d facets", rows, cols, len(byFacet))
	}

	figs := make([]*figure.Figure, len(byFacet))
	for i, parts := range byFacet {
		f, err := build(parts)
		if err != nil {
			return nil, err
		}
		f.Layout.Title = facetTitle(res.Facets[i], cfg)
		figs[i] = f
	}

	spec := grid.Spec{
		Rows:       rows,
		Cols:       cols,
		HGap:       figure.Float(defaultGap(style.DefaultFacetXGap, cols)),
		VGap:       figure.Float(defaultGap(style.DefaultFacetYGap, rows)),
		Title:      c.Title,
		Legend:     c.Legend,
		Dimensions: c.Dimensions,
	}
	scales := style.ScalesFixed
	if cfg != nil {
		if cfg.XGap != nil {
			spec.HGap = cfg.XGap
		}
		if cfg.YGap != nil {
			spec.VGap = cfg.YGap
		}
		if cfg.Scales != "" {
			scales = cfg.Scales
		}
	}

	out, err := grid.Regular(spec, figs...)
	if err != nil {
		return nil, err
	}
	linkAxes(out.Layout, scales)
	if t := figure.TitleOf(c.LegendTitle); t != nil {
		if out.Layout.Legend == nil {
			out.Layout.Legend = &figure.Legend{}
		}
		out.Layout.Legend.Title = t
	}
	return out, nil
}

func facetTitle(k partition.Key, cfg *style.FacetConfig) *figure.Title {
	t := style.Text{Content: k.Label}
	if cfg != nil && cfg.TitleStyle != nil {
		t = *cfg.TitleStyle
		t.Content = k.Label
	}
	return figure.TitleOf(&t)
}

// linkAxes makes every cartesian facet axis follow the first cell's axis
// of the same direction unless that direction's scale is free.
func linkAxes(l *figure.Layout, scales style.FacetScales) {
	linkX := scales == style.ScalesFixed || scales == style.ScalesFreeY
	linkY := scales == style.ScalesFixed || scales == style.ScalesFreeX
	for key, a := range l.Axes {
		switch {
		case key == "xaxis" || key == "yaxis":
		case linkX && strings.HasPrefix(key, "xaxis") && l.Axes["xaxis"] != nil:
			a.Matches = "x"
		case linkY && strings.HasPrefix(key, "yaxis") && l.Axes["yaxis"] != nil:
			a.Matches = "y"
		}
	}
}

// defaultGap shrinks the default gap between n cells so the gaps never take
// more than half of the figure.
func defaultGap(gap float64, n int) float64 {
	if n < 2 {
		return gap
	}
	return min(gap, 0.5/float64(n-1))
}
