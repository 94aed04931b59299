package plot

import (
	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
)

// Heatmap colors a grid of cells addressed by X and Y with the value in Z.
// Rows are passed through as (x, y, z) triples; the backend bins them.
type Heatmap struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
	FacetOnly
	Scale
	Common
}

func (*Heatmap) Kind() Kind { return KindHeatmap }
func (*Heatmap) spec()      {}

// Contour draws iso-lines of Z over X and Y.
type Contour struct {
	X          string `json:"x"`
	Y          string `json:"y"`
	Z          string `json:"z"`
	Coloring   string `json:"coloring,omitempty"`
	ShowLines  *bool  `json:"show_lines,omitempty"`
	ShowLabels *bool  `json:"show_labels,omitempty"`
	FacetOnly
	Scale
	Common
}

func (*Contour) Kind() Kind { return KindContour }
func (*Contour) spec()      {}

func (s *Contour) validate() error {
	switch s.Coloring {
	case "", "fill", "heatmap", "lines", "none":
		return nil
	}
	return errors.Inconsistent("coloring", "coloring must be fill, heatmap, lines or none, got %q", s.Coloring)
}

// field is the shared form of Heatmap and Contour.
type field struct {
	typ      string
	x, y, z  string
	grouping Grouping
	scale    *Scale
	common   *Common
	extra    func() error
	decorate func(*figure.Trace)
}

func buildHeatmap(t column.Table, s *Heatmap) (*figure.Figure, error) {
	return buildField(t, field{
		typ: "heatmap", x: s.X, y: s.Y, z: s.Z,
		grouping: s.grouping(),
		scale:    &s.Scale,
		common:   &s.Common,
	})
}

func buildContour(t column.Table, s *Contour) (*figure.Figure, error) {
	return buildField(t, field{
		typ: "contour", x: s.X, y: s.Y, z: s.Z,
		grouping: s.grouping(),
		scale:    &s.Scale,
		common:   &s.Common,
		extra:    s.validate,
		decorate: func(tr *figure.Trace) {
			if s.Coloring != "" || s.ShowLines != nil || s.ShowLabels != nil {
				tr.Contours = &figure.Contours{Coloring: s.Coloring, ShowLines: s.ShowLines, ShowLabels: s.ShowLabels}
			}
		},
	})
}

func buildField(t column.Table, s field) (*figure.Figure, error) {
	if err := needs("x", s.x, "y", s.y, "z", s.z); err != nil {
		return nil, err
	}
	if err := require(t, s.x, s.y, s.z, s.grouping.Facet); err != nil {
		return nil, err
	}
	x, err := column.Infer(t, s.x)
	if err != nil {
		return nil, err
	}
	y, err := column.Infer(t, s.y)
	if err != nil {
		return nil, err
	}
	z, err := column.Extract(t, s.z, column.Numeric)
	if err != nil {
		return nil, err
	}
	fns := []func() error{s.common.validate, s.scale.validate, s.grouping.validate}
	if s.extra != nil {
		fns = append(fns, s.extra)
	}
	if err := check(fns...); err != nil {
		return nil, err
	}
	res, err := s.grouping.split(t)
	if err != nil {
		return nil, err
	}

	return facet(res, &s.grouping, s.common, func(parts []partition.Part) (*figure.Figure, error) {
		f := figure.New()
		for _, p := range parts {
			tr := &figure.Trace{
				Type: s.typ,
				X:    values(x, p.Rows),
				Y:    values(y, p.Rows),
				Z:    values(z, p.Rows),
			}
			s.scale.apply(tr)
			if s.decorate != nil {
				s.decorate(tr)
			}
			f.Add(tr)
		}
		s.common.cartesianAxes(f, x.Kind, y.Kind)
		return f, nil
	})
}
