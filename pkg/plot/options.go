package plot

import (
	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// =============================================================================
// Common
// =============================================================================

// Common holds the titles, axes, legend and size options shared by all
// families. Families without a z axis ignore ZTitle and ZAxis.
type Common struct {
	Title       *style.Text       `json:"title,omitempty"`
	XTitle      *style.Text       `json:"x_title,omitempty"`
	YTitle      *style.Text       `json:"y_title,omitempty"`
	ZTitle      *style.Text       `json:"z_title,omitempty"`
	LegendTitle *style.Text       `json:"legend_title,omitempty"`
	XAxis       *style.Axis       `json:"x_axis,omitempty"`
	YAxis       *style.Axis       `json:"y_axis,omitempty"`
	ZAxis       *style.Axis       `json:"z_axis,omitempty"`
	Legend      *style.Legend     `json:"legend,omitempty"`
	Dimensions  *style.Dimensions `json:"dimensions,omitempty"`
}

func (c *Common) validate() error {
	for _, t := range []struct {
		name string
		v    *style.Text
	}{
		{"title", c.Title}, {"x_title", c.XTitle}, {"y_title", c.YTitle},
		{"z_title", c.ZTitle}, {"legend_title", c.LegendTitle},
	} {
		if err := t.v.Validate(t.name); err != nil {
			return err
		}
	}
	if err := c.XAxis.Validate("x_axis"); err != nil {
		return err
	}
	if err := c.YAxis.Validate("y_axis"); err != nil {
		return err
	}
	if err := c.ZAxis.Validate("z_axis"); err != nil {
		return err
	}
	if err := c.Legend.Validate(); err != nil {
		return err
	}
	return c.Dimensions.Validate()
}

// cartesianAxes sets the x and y axes of a single-cell figure.
func (c *Common) cartesianAxes(f *figure.Figure, x, y column.Kind) {
	f.Layout.Axes = map[string]*figure.Axis{
		"xaxis": figure.AxisOf(c.XAxis, c.XTitle, axisType(x)),
		"yaxis": figure.AxisOf(c.YAxis, c.YTitle, axisType(y)),
	}
}

// sceneAxes sets the axes of the 3D scene of a single-cell figure.
func (c *Common) sceneAxes(f *figure.Figure, x, y, z column.Kind) {
	*f.Layout.Scene("scene") = figure.Scene{
		XAxis: figure.AxisOf(c.XAxis, c.XTitle, axisType(x)),
		YAxis: figure.AxisOf(c.YAxis, c.YTitle, axisType(y)),
		ZAxis: figure.AxisOf(c.ZAxis, c.ZTitle, axisType(z)),
	}
}

// finish applies the figure-level options of a single, unfaceted figure.
func (c *Common) finish(f *figure.Figure) {
	f.Layout.Title = figure.TitleOf(c.Title)
	f.Layout.Legend = figure.LegendOf(c.Legend, c.LegendTitle)
	f.Layout.ApplyDimensions(c.Dimensions)
}

func axisType(k column.Kind) string {
	if k == 0 {
		return ""
	}
	return k.AxisType()
}

// =============================================================================
// Marks
// =============================================================================

// Marks styles markers, bars and slices. Colors and Shapes are cycled by
// group index; a list shorter than the group count wraps around.
type Marks struct {
	Color   *style.Rgb    `json:"color,omitempty"`
	Colors  []style.Rgb   `json:"colors,omitempty"`
	Opacity *float64      `json:"opacity,omitempty"`
	Size    *float64      `json:"size,omitempty"`
	Shape   style.Shape   `json:"shape,omitempty"`
	Shapes  []style.Shape `json:"shapes,omitempty"`
}

func (m *Marks) validate() error {
	if m.Color != nil && len(m.Colors) > 0 {
		return errors.Inconsistent("colors", "color and colors are mutually exclusive")
	}
	if m.Shape != "" && len(m.Shapes) > 0 {
		return errors.Inconsistent("shapes", "shape and shapes are mutually exclusive")
	}
	if err := errors.ValidateFraction("opacity", m.Opacity); err != nil {
		return err
	}
	if m.Size != nil && *m.Size <= 0 {
		return errors.Inconsistent("size", "size must be positive, got %g", *m.Size)
	}
	if m.Shape != "" {
		if err := m.Shape.Validate(); err != nil {
			return err
		}
	}
	for _, s := range m.Shapes {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// color returns the color of group i, or nil to leave it to the backend.
func (m *Marks) color(i int) *style.Rgb {
	if len(m.Colors) > 0 {
		return style.Cycle(m.Colors, i)
	}
	return m.Color
}

func (m *Marks) shape(i int) style.Shape {
	if len(m.Shapes) > 0 {
		return m.Shapes[i%len(m.Shapes)]
	}
	return m.Shape
}

// marker returns the marker of group i, or nil when no option applies.
func (m *Marks) marker(i int) *figure.Marker {
	out := &figure.Marker{Opacity: m.Opacity}
	set := m.Opacity != nil
	if c := m.color(i); c != nil {
		out.Color = c.String()
		set = true
	}
	if m.Size != nil {
		out.Size = *m.Size
		set = true
	}
	if s := m.shape(i); s != "" {
		out.Symbol = string(s)
		set = true
	}
	if !set {
		return nil
	}
	return out
}

// =============================================================================
// Lines
// =============================================================================

// Lines styles strokes. Dashes are cycled by series index.
type Lines struct {
	Width  *float64          `json:"width,omitempty"`
	Dash   style.LineStyle   `json:"line,omitempty"`
	Dashes []style.LineStyle `json:"lines,omitempty"`
}

func (l *Lines) validate() error {
	if l.Dash != "" && len(l.Dashes) > 0 {
		return errors.Inconsistent("lines", "line and lines are mutually exclusive")
	}
	if l.Width != nil && *l.Width <= 0 {
		return errors.Inconsistent("width", "line width must be positive, got %g", *l.Width)
	}
	if l.Dash != "" {
		if err := l.Dash.Validate(); err != nil {
			return err
		}
	}
	for _, d := range l.Dashes {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// line returns the stroke of series i colored c, or nil when unset.
func (l *Lines) line(i int, c *style.Rgb) *figure.Line {
	out := &figure.Line{Width: l.Width, Dash: string(l.Dash)}
	if len(l.Dashes) > 0 {
		out.Dash = string(l.Dashes[i%len(l.Dashes)])
	}
	if c != nil {
		out.Color = c.String()
	}
	if *out == (figure.Line{}) {
		return nil
	}
	return out
}

// =============================================================================
// Color scales
// =============================================================================

// Scale configures a continuous color mapping.
type Scale struct {
	Palette      *style.Palette  `json:"palette,omitempty"`
	ReverseScale *bool           `json:"reverse_scale,omitempty"`
	ShowScale    *bool           `json:"show_scale,omitempty"`
	ColorBar     *style.ColorBar `json:"colorbar,omitempty"`
}

func (s *Scale) validate() error {
	if err := s.Palette.Validate(); err != nil {
		return err
	}
	return s.ColorBar.Validate()
}

// apply sets the scale options on a trace that carries its own colorscale.
func (s *Scale) apply(t *figure.Trace) {
	t.ColorScale = s.Palette.Colorscale()
	t.ReverseScale = s.ReverseScale
	if s.Palette != nil && s.Palette.Reverse {
		t.ReverseScale = figure.Bool(true)
	}
	t.ShowScale = s.ShowScale
	t.ColorBar = figure.ColorBarOf(s.ColorBar)
}

// =============================================================================
// Grouping
// =============================================================================

// Grouping selects the columns rows are split by. Group splits a plot into
// series; Facet splits it into one sub-plot per value.
type Grouping struct {
	Group      string             `json:"group,omitempty"`
	GroupOrder []string           `json:"group_order,omitempty"`
	Facet      string             `json:"facet,omitempty"`
	FacetStyle *style.FacetConfig `json:"facet_config,omitempty"`
}

func (g *Grouping) columns() []string {
	return []string{g.Group, g.Facet}
}

func (g *Grouping) validate() error {
	return g.FacetStyle.Validate()
}

func (g *Grouping) split(t column.Table) (*partition.Result, error) {
	opts := partition.Options{Group: g.Group, Facet: g.Facet, GroupOrder: g.GroupOrder}
	if g.FacetStyle != nil {
		opts.FacetOrder = g.FacetStyle.Order
	}
	return partition.Split(t, opts)
}

// FacetOnly is the grouping of families that split into facets but never
// into series.
type FacetOnly struct {
	Facet      string             `json:"facet,omitempty"`
	FacetStyle *style.FacetConfig `json:"facet_config,omitempty"`
}

func (f *FacetOnly) grouping() Grouping {
	return Grouping{Facet: f.Facet, FacetStyle: f.FacetStyle}
}

// GroupOnly is the grouping of families that split into series but are
// never faceted.
type GroupOnly struct {
	Group      string   `json:"group,omitempty"`
	GroupOrder []string `json:"group_order,omitempty"`
}

func (g *GroupOnly) grouping() Grouping {
	return Grouping{Group: g.Group, GroupOrder: g.GroupOrder}
}

// =============================================================================
// Helpers
// =============================================================================

// check runs validations in order and returns the first failure.
func check(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// values returns the rows of c as a trace array.
func values(c *column.Column, rows []int) []any {
	return c.Select(rows).Values()
}

// allRows returns the indices of every row of t.
func allRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}
