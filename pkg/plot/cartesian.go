package plot

import (
	"fmt"
	"strings"

	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// =============================================================================
// Scatter
// =============================================================================

// Scatter draws one marker per row, one trace per group.
type Scatter struct {
	X string `json:"x"`
	Y string `json:"y"`
	Grouping
	Marks
	Common
}

func (*Scatter) Kind() Kind { return KindScatter }
func (*Scatter) spec()      {}

func buildScatter(t column.Table, s *Scatter) (*figure.Figure, error) {
	if err := needs("x", s.X, "y", s.Y); err != nil {
		return nil, err
	}
	if err := require(t, append([]string{s.X, s.Y}, s.columns()...)...); err != nil {
		return nil, err
	}
	x, err := column.Infer(t, s.X)
	if err != nil {
		return nil, err
	}
	y, err := column.Extract(t, s.Y, column.Numeric)
	if err != nil {
		return nil, err
	}
	if err := check(s.Common.validate, s.Marks.validate, s.Grouping.validate); err != nil {
		return nil, err
	}
	res, err := s.split(t)
	if err != nil {
		return nil, err
	}

	return facet(res, &s.Grouping, &s.Common, func(parts []partition.Part) (*figure.Figure, error) {
		f := figure.New()
		for _, p := range parts {
			f.Add(&figure.Trace{
				Type:   "scatter",
				Mode:   string(style.ModeMarkers),
				Name:   p.Group.Label,
				X:      values(x, p.Rows),
				Y:      values(y, p.Rows),
				Marker: s.marker(p.GroupIndex),
			})
		}
		s.cartesianAxes(f, x.Kind, y.Kind)
		return f, nil
	})
}

// =============================================================================
// Line and TimeSeries
// =============================================================================

// Line draws Y, and every column of AdditionalLines, against X. Each group
// and y column pair is one trace.
type Line struct {
	X               string   `json:"x"`
	Y               string   `json:"y"`
	AdditionalLines []string `json:"additional_lines,omitempty"`
	WithShape       bool     `json:"with_shape,omitempty"`
	Grouping
	Marks
	Lines
	Common
}

func (*Line) Kind() Kind { return KindLine }
func (*Line) spec()      {}

// TimeSeries is a line plot over a temporal x column.
type TimeSeries struct {
	X               string   `json:"x"`
	Y               string   `json:"y"`
	AdditionalLines []string `json:"additional_lines,omitempty"`
	WithShape       bool     `json:"with_shape,omitempty"`
	RangeSlider     bool     `json:"range_slider,omitempty"`
	Grouping
	Marks
	Lines
	Common
}

func (*TimeSeries) Kind() Kind { return KindTimeSeries }
func (*TimeSeries) spec()      {}

// lineSeries is the shared form of Line and TimeSeries.
type lineSeries struct {
	x         string
	ys        []string
	xKind     column.Kind
	withShape bool
	grouping  *Grouping
	marks     *Marks
	lines     *Lines
	common    *Common
}

func buildLine(t column.Table, s *Line) (*figure.Figure, error) {
	return buildLines(t, lineSeries{
		x:         s.X,
		ys:        append([]string{s.Y}, s.AdditionalLines...),
		withShape: s.WithShape,
		grouping:  &s.Grouping,
		marks:     &s.Marks,
		lines:     &s.Lines,
		common:    &s.Common,
	})
}

func buildTimeSeries(t column.Table, s *TimeSeries) (*figure.Figure, error) {
	f, err := buildLines(t, lineSeries{
		x:         s.X,
		ys:        append([]string{s.Y}, s.AdditionalLines...),
		xKind:     column.Temporal,
		withShape: s.WithShape,
		grouping:  &s.Grouping,
		marks:     &s.Marks,
		lines:     &s.Lines,
		common:    &s.Common,
	})
	if err != nil {
		return nil, err
	}
	for key, a := range f.Layout.Axes {
		if strings.HasPrefix(key, "xaxis") {
			a.RangeSlider = &figure.RangeSlider{Visible: s.RangeSlider}
		}
	}
	return f, nil
}

func buildLines(t column.Table, s lineSeries) (*figure.Figure, error) {
	if err := need("x", s.x); err != nil {
		return nil, err
	}
	for _, y := range s.ys {
		if err := need("y", y); err != nil {
			return nil, err
		}
	}
	if err := require(t, append(append([]string{s.x}, s.ys...), s.grouping.columns()...)...); err != nil {
		return nil, err
	}
	var (
		x   *column.Column
		err error
	)
	if s.xKind != 0 {
		x, err = column.Extract(t, s.x, s.xKind)
	} else {
		x, err = column.Infer(t, s.x)
	}
	if err != nil {
		return nil, err
	}
	ys := make([]*column.Column, len(s.ys))
	for i, name := range s.ys {
		if ys[i], err = column.Extract(t, name, column.Numeric); err != nil {
			return nil, err
		}
	}
	if err := check(s.common.validate, s.marks.validate, s.lines.validate, s.grouping.validate); err != nil {
		return nil, err
	}
	res, err := s.grouping.split(t)
	if err != nil {
		return nil, err
	}

	mode := string(style.ModeLines)
	if s.withShape {
		mode = string(style.ModeLinesMarkers)
	}
	return facet(res, s.grouping, s.common, func(parts []partition.Part) (*figure.Figure, error) {
		f := figure.New()
		for _, p := range parts {
			for j, y := range ys {
				i := p.GroupIndex*len(ys) + j
				tr := &figure.Trace{
					Type: "scatter",
					Mode: mode,
					Name: seriesName(p.Group, y.Name, len(ys) > 1),
					X:    values(x, p.Rows),
					Y:    values(y, p.Rows),
					Line: s.lines.line(i, s.marks.color(i)),
				}
				if s.withShape {
					tr.Marker = s.marks.marker(i)
				} else {
					tr.Opacity = s.marks.Opacity
				}
				f.Add(tr)
			}
		}
		s.common.cartesianAxes(f, x.Kind, column.Numeric)
		return f, nil
	})
}

// seriesName labels a trace by its group, its y column, or both.
func seriesName(g partition.Key, y string, multi bool) string {
	switch {
	case !multi:
		return g.Label
	case g.Label == "" && !g.Null:
		return y
	}
	return fmt.Sprintf("%s (%s)", g.Label, y)
}

// =============================================================================
// Bar
// =============================================================================

// Bar draws one bar per row with an optional error column.
type Bar struct {
	Labels      string            `json:"labels"`
	Values      string            `json:"values"`
	Error       string            `json:"error,omitempty"`
	Orientation style.Orientation `json:"orientation,omitempty"`
	Grouping
	Marks
	Common
}

func (*Bar) Kind() Kind { return KindBar }
func (*Bar) spec()      {}

func buildBar(t column.Table, s *Bar) (*figure.Figure, error) {
	if err := needs("labels", s.Labels, "values", s.Values); err != nil {
		return nil, err
	}
	if err := require(t, append([]string{s.Labels, s.Values, s.Error}, s.columns()...)...); err != nil {
		return nil, err
	}
	labels, err := column.Infer(t, s.Labels)
	if err != nil {
		return nil, err
	}
	vals, err := column.Extract(t, s.Values, column.Numeric)
	if err != nil {
		return nil, err
	}
	var errs *column.Column
	if s.Error != "" {
		if errs, err = column.Extract(t, s.Error, column.Numeric); err != nil {
			return nil, err
		}
	}
	if err := check(s.Common.validate, s.Marks.validate, s.Grouping.validate, s.Orientation.Validate); err != nil {
		return nil, err
	}
	res, err := s.split(t)
	if err != nil {
		return nil, err
	}

	horizontal := s.Orientation == style.Horizontal
	return facet(res, &s.Grouping, &s.Common, func(parts []partition.Part) (*figure.Figure, error) {
		f := figure.New()
		for _, p := range parts {
			tr := &figure.Trace{
				Type:        "bar",
				Name:        p.Group.Label,
				X:           values(labels, p.Rows),
				Y:           values(vals, p.Rows),
				Orientation: string(s.Orientation),
				Marker:      s.marker(p.GroupIndex),
			}
			var eb *figure.ErrorBar
			if errs != nil {
				eb = &figure.ErrorBar{Type: "data", Array: values(errs, p.Rows), Visible: true}
			}
			if horizontal {
				tr.X, tr.Y = tr.Y, tr.X
				tr.ErrorX = eb
			} else {
				tr.ErrorY = eb
			}
			f.Add(tr)
		}
		if horizontal {
			s.cartesianAxes(f, column.Numeric, labels.Kind)
		} else {
			s.cartesianAxes(f, labels.Kind, column.Numeric)
		}
		if res.Grouped() {
			f.Layout.BarMode = "group"
		}
		return f, nil
	})
}

// =============================================================================
// Box
// =============================================================================

// Box draws the distribution of Values per label, one trace per group.
type Box struct {
	Labels      string            `json:"labels"`
	Values      string            `json:"values"`
	Orientation style.Orientation `json:"orientation,omitempty"`
	BoxPoints   bool              `json:"box_points,omitempty"`
	PointOffset *float64          `json:"point_offset,omitempty"`
	Jitter      *float64          `json:"jitter,omitempty"`
	Grouping
	Marks
	Common
}

func (*Box) Kind() Kind { return KindBox }
func (*Box) spec()      {}

func (s *Box) validate() error {
	if s.PointOffset != nil && (*s.PointOffset < -2 || *s.PointOffset > 2) {
		return errors.Inconsistent("point_offset", "point offset must be within [-2, 2], got %g", *s.PointOffset)
	}
	if err := errors.ValidateFraction("jitter", s.Jitter); err != nil {
		return err
	}
	if (s.PointOffset != nil || s.Jitter != nil) && !s.BoxPoints {
		return errors.Inconsistent("box_points", "point_offset and jitter need box_points")
	}
	return s.Orientation.Validate()
}

func buildBox(t column.Table, s *Box) (*figure.Figure, error) {
	if err := needs("labels", s.Labels, "values", s.Values); err != nil {
		return nil, err
	}
	if err := require(t, append([]string{s.Labels, s.Values}, s.columns()...)...); err != nil {
		return nil, err
	}
	labels, err := column.Infer(t, s.Labels)
	if err != nil {
		return nil, err
	}
	vals, err := column.Extract(t, s.Values, column.Numeric)
	if err != nil {
		return nil, err
	}
	if err := check(s.Common.validate, s.Marks.validate, s.Grouping.validate, s.validate); err != nil {
		return nil, err
	}
	res, err := s.split(t)
	if err != nil {
		return nil, err
	}

	horizontal := s.Orientation == style.Horizontal
	return facet(res, &s.Grouping, &s.Common, func(parts []partition.Part) (*figure.Figure, error) {
		f := figure.New()
		for _, p := range parts {
			tr := &figure.Trace{
				Type:        "box",
				Name:        p.Group.Label,
				X:           values(labels, p.Rows),
				Y:           values(vals, p.Rows),
				Orientation: string(s.Orientation),
				Marker:      s.marker(p.GroupIndex),
				PointPos:    s.PointOffset,
				Jitter:      s.Jitter,
			}
			if s.BoxPoints {
				tr.BoxPoints = "all"
			}
			if horizontal {
				tr.X, tr.Y = tr.Y, tr.X
			}
			f.Add(tr)
		}
		if horizontal {
			s.cartesianAxes(f, column.Numeric, labels.Kind)
		} else {
			s.cartesianAxes(f, labels.Kind, column.Numeric)
		}
		if res.Grouped() {
			f.Layout.BoxMode = "group"
		}
		return f, nil
	})
}

// =============================================================================
// Histogram
// =============================================================================

// Histogram bins X, one overlaid trace per group.
type Histogram struct {
	X     string `json:"x"`
	NBins int    `json:"n_bins,omitempty"`
	Grouping
	Marks
	Common
}

func (*Histogram) Kind() Kind { return KindHistogram }
func (*Histogram) spec()      {}

func buildHistogram(t column.Table, s *Histogram) (*figure.Figure, error) {
	if err := need("x", s.X); err != nil {
		return nil, err
	}
	if err := require(t, append([]string{s.X}, s.columns()...)...); err != nil {
		return nil, err
	}
	x, err := column.Infer(t, s.X)
	if err != nil {
		return nil, err
	}
	nbins := func() error {
		if s.NBins < 0 {
			return errors.Inconsistent("n_bins", "bin count must be positive, got %d", s.NBins)
		}
		return nil
	}
	if err := check(s.Common.validate, s.Marks.validate, s.Grouping.validate, nbins); err != nil {
		return nil, err
	}
	res, err := s.split(t)
	if err != nil {
		return nil, err
	}

	return facet(res, &s.Grouping, &s.Common, func(parts []partition.Part) (*figure.Figure, error) {
		f := figure.New()
		for _, p := range parts {
			f.Add(&figure.Trace{
				Type:   "histogram",
				Name:   p.Group.Label,
				X:      values(x, p.Rows),
				NBinsX: s.NBins,
				Marker: s.marker(p.GroupIndex),
			})
		}
		s.cartesianAxes(f, x.Kind, column.Numeric)
		f.Layout.BarMode = "overlay"
		return f, nil
	})
}
