package plot

import (
	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// =============================================================================
// Pie
// =============================================================================

// Pie draws one slice per distinct label. Slices sum Values, or count rows
// when Values is empty. Colors are assigned by the label's first occurrence
// in the table, so a label keeps its color in every facet.
type Pie struct {
	Labels   string      `json:"labels"`
	Values   string      `json:"values,omitempty"`
	Hole     *float64    `json:"hole,omitempty"`
	Pull     *float64    `json:"pull,omitempty"`
	Rotation *float64    `json:"rotation,omitempty"`
	Colors   []style.Rgb `json:"colors,omitempty"`
	FacetOnly
	Common
}

func (*Pie) Kind() Kind { return KindPie }
func (*Pie) spec()      {}

func (s *Pie) validate() error {
	if err := errors.ValidateFraction("hole", s.Hole); err != nil {
		return err
	}
	if err := errors.ValidateFraction("pull", s.Pull); err != nil {
		return err
	}
	if s.Rotation != nil && (*s.Rotation < -360 || *s.Rotation > 360) {
		return errors.Inconsistent("rotation", "rotation must be within [-360, 360], got %g", *s.Rotation)
	}
	return nil
}

func buildPie(t column.Table, s *Pie) (*figure.Figure, error) {
	if err := need("labels", s.Labels); err != nil {
		return nil, err
	}
	if err := require(t, s.Labels, s.Values, s.Facet); err != nil {
		return nil, err
	}
	labels, err := column.Infer(t, s.Labels)
	if err != nil {
		return nil, err
	}
	var vals *column.Column
	if s.Values != "" {
		if vals, err = column.Extract(t, s.Values, column.Numeric); err != nil {
			return nil, err
		}
	}
	g := s.grouping()
	if err := check(s.Common.validate, g.validate, s.validate); err != nil {
		return nil, err
	}
	res, err := g.split(t)
	if err != nil {
		return nil, err
	}

	order := make(map[string]int)
	for i := 0; i < labels.Len(); i++ {
		if l, ok := labels.String(i); ok {
			if _, seen := order[l]; !seen {
				order[l] = len(order)
			}
		}
	}
	return facet(res, &g, &s.Common, func(parts []partition.Part) (*figure.Figure, error) {
		var rows []int
		for _, p := range parts {
			rows = append(rows, p.Rows...)
		}
		names, sums := aggregate(labels, vals, rows)
		if len(names) == 0 {
			return nil, emptySlices(s, parts[0].Facet)
		}
		tr := &figure.Trace{
			Type:     "pie",
			Labels:   names,
			Values:   sums,
			Hole:     s.Hole,
			Rotation: s.Rotation,
		}
		if s.Pull != nil {
			tr.Pull = *s.Pull
		}
		if len(s.Colors) > 0 {
			colors := make([]string, len(names))
			for i, n := range names {
				colors[i] = style.Cycle(s.Colors, order[n]).String()
			}
			tr.Marker = &figure.Marker{Colors: colors}
		}
		f := figure.New()
		f.Add(tr)
		return f, nil
	})
}

// emptySlices reports a pie cell in which no row has both a label and a
// value.
func emptySlices(s *Pie, facet partition.Key) error {
	if facet != (partition.Key{}) {
		err := errors.New(errors.ErrCodeEmptyFacet, "facet %q has no rows with a label and a value", facet.Label)
		err.Column = s.Facet
		return err
	}
	err := errors.New(errors.ErrCodeEmptyGroup, "no rows with a label and a value")
	err.Column = s.Labels
	return err
}

// aggregate sums vals per distinct label in first-seen order, or counts
// rows when vals is nil. Rows with a null label or value are skipped.
func aggregate(labels, vals *column.Column, rows []int) ([]string, []float64) {
	var names []string
	var sums []float64
	index := make(map[string]int)
	for _, r := range rows {
		l, ok := labels.String(r)
		if !ok {
			continue
		}
		v := 1.0
		if vals != nil {
			if v, ok = vals.Float(r); !ok {
				continue
			}
		}
		i, seen := index[l]
		if !seen {
			i = len(names)
			index[l] = i
			names = append(names, l)
			sums = append(sums, 0)
		}
		sums[i] += v
	}
	return names, sums
}

// =============================================================================
// Sankey
// =============================================================================

// Sankey draws flows of Values from Sources to Targets. Nodes are the
// distinct labels of both columns, sources first, in first-seen order.
type Sankey struct {
	Sources       string      `json:"sources"`
	Targets       string      `json:"targets"`
	Values        string      `json:"values"`
	NodeColors    []style.Rgb `json:"node_colors,omitempty"`
	LinkColors    []style.Rgb `json:"link_colors,omitempty"`
	Pad           *float64    `json:"pad,omitempty"`
	NodeThickness *float64    `json:"node_thickness,omitempty"`
	Arrangement   string      `json:"arrangement,omitempty"`
	Common
}

func (*Sankey) Kind() Kind { return KindSankey }
func (*Sankey) spec()      {}

func (s *Sankey) validate() error {
	switch s.Arrangement {
	case "", "snap", "perpendicular", "freeform", "fixed":
	default:
		return errors.Inconsistent("arrangement", "unknown sankey arrangement %q", s.Arrangement)
	}
	if s.Pad != nil && *s.Pad < 0 {
		return errors.Inconsistent("pad", "pad must be non-negative, got %g", *s.Pad)
	}
	if s.NodeThickness != nil && *s.NodeThickness <= 0 {
		return errors.Inconsistent("node_thickness", "node thickness must be positive, got %g", *s.NodeThickness)
	}
	return nil
}

func buildSankey(t column.Table, s *Sankey) (*figure.Figure, error) {
	if err := needs("sources", s.Sources, "targets", s.Targets, "values", s.Values); err != nil {
		return nil, err
	}
	if err := require(t, s.Sources, s.Targets, s.Values); err != nil {
		return nil, err
	}
	src, err := column.Infer(t, s.Sources)
	if err != nil {
		return nil, err
	}
	dst, err := column.Infer(t, s.Targets)
	if err != nil {
		return nil, err
	}
	vals, err := column.Extract(t, s.Values, column.Numeric)
	if err != nil {
		return nil, err
	}
	if err := check(s.Common.validate, s.validate); err != nil {
		return nil, err
	}

	var nodes []string
	index := make(map[string]int)
	add := func(c *column.Column) {
		for i := 0; i < c.Len(); i++ {
			if l, ok := c.String(i); ok {
				if _, seen := index[l]; !seen {
					index[l] = len(nodes)
					nodes = append(nodes, l)
				}
			}
		}
	}
	add(src)
	add(dst)

	link := &figure.SankeyLink{}
	var (
		flows      []float64
		linkColors []string
	)
	for i := 0; i < t.Len(); i++ {
		from, ok1 := src.String(i)
		to, ok2 := dst.String(i)
		v, ok3 := vals.Float(i)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		if len(s.LinkColors) > 0 {
			linkColors = append(linkColors, style.Cycle(s.LinkColors, len(link.Source)).String())
		}
		link.Source = append(link.Source, index[from])
		link.Target = append(link.Target, index[to])
		flows = append(flows, v)
	}
	if len(link.Source) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "sankey has no complete (source, target, value) rows")
	}
	link.Value = flows
	if linkColors != nil {
		link.Color = linkColors
	}

	node := &figure.SankeyNode{Label: nodes, Pad: s.Pad, Thickness: s.NodeThickness}
	if len(s.NodeColors) > 0 {
		colors := make([]string, len(nodes))
		for i := range nodes {
			colors[i] = style.Cycle(s.NodeColors, i).String()
		}
		node.Color = colors
	}
	f := figure.New()
	f.Add(&figure.Trace{Type: "sankey", Node: node, Link: link, Arrangement: s.Arrangement})
	s.finish(f)
	return f, nil
}

// =============================================================================
// Table
// =============================================================================

// Table renders columns of the data table as a table.
type Table struct {
	Columns     []string    `json:"columns"`
	Header      *TableStyle `json:"header,omitempty"`
	Cells       *TableStyle `json:"cells,omitempty"`
	ColumnWidth []float64   `json:"column_width,omitempty"`
	Common
}

func (*Table) Kind() Kind { return KindTable }
func (*Table) spec()      {}

// TableStyle styles the header or the body of a table. Values overrides
// the header labels and is ignored for cells.
type TableStyle struct {
	Values []string    `json:"values,omitempty"`
	Align  string      `json:"align,omitempty"`
	Fill   *style.Rgb  `json:"fill,omitempty"`
	Font   *style.Text `json:"font,omitempty"`
	Height *float64    `json:"height,omitempty"`
}

func (ts *TableStyle) validate(option string) error {
	if ts == nil {
		return nil
	}
	switch ts.Align {
	case "", "left", "center", "right":
	default:
		return errors.Inconsistent(option+".align", "align must be left, center or right, got %q", ts.Align)
	}
	if ts.Height != nil && *ts.Height <= 0 {
		return errors.Inconsistent(option+".height", "height must be positive, got %g", *ts.Height)
	}
	return ts.Font.Validate(option + ".font")
}

func (ts *TableStyle) block(values any) *figure.TableBlock {
	out := &figure.TableBlock{Values: values}
	if ts == nil {
		return out
	}
	out.Align = ts.Align
	out.Height = ts.Height
	out.Font = figure.FontOf(ts.Font)
	if ts.Fill != nil {
		out.Fill = &figure.Fill{Color: ts.Fill.String()}
	}
	return out
}

func (s *Table) validate() error {
	if len(s.Columns) == 0 {
		return errors.Inconsistent("columns", "table needs at least one column")
	}
	if s.Header != nil && len(s.Header.Values) > 0 && len(s.Header.Values) != len(s.Columns) {
		return errors.Inconsistent("header.values", "%d header values for %d columns", len(s.Header.Values), len(s.Columns))
	}
	if len(s.ColumnWidth) > 0 && len(s.ColumnWidth) != len(s.Columns) {
		return errors.Inconsistent("column_width", "%d widths for %d columns", len(s.ColumnWidth), len(s.Columns))
	}
	if err := s.Header.validate("header"); err != nil {
		return err
	}
	return s.Cells.validate("cells")
}

func buildTable(t column.Table, s *Table) (*figure.Figure, error) {
	if err := require(t, s.Columns...); err != nil {
		return nil, err
	}
	cells := make([][]string, len(s.Columns))
	for i, name := range s.Columns {
		c, err := column.Infer(t, name)
		if err != nil {
			return nil, err
		}
		cells[i] = make([]string, c.Len())
		for r := range cells[i] {
			cells[i][r], _ = c.String(r)
		}
	}
	if err := check(s.Common.validate, s.validate); err != nil {
		return nil, err
	}

	header := s.Columns
	if s.Header != nil && len(s.Header.Values) > 0 {
		header = s.Header.Values
	}
	f := figure.New()
	f.Add(&figure.Trace{
		Type:        "table",
		Header:      s.Header.block(header),
		Cells:       s.Cells.block(cells),
		ColumnWidth: s.ColumnWidth,
	})
	s.finish(f)
	return f, nil
}
