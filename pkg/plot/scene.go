package plot

import (
	"sort"

	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// =============================================================================
// Surface
// =============================================================================

// Surface draws Z as a height field over the X and Y columns. Rows are
// pivoted onto the sorted distinct x and y values; a missing combination
// leaves a hole in the surface.
type Surface struct {
	X        string          `json:"x"`
	Y        string          `json:"y"`
	Z        string          `json:"z"`
	Opacity  *float64        `json:"opacity,omitempty"`
	Lighting *style.Lighting `json:"lighting,omitempty"`
	Scale
	Common
}

func (*Surface) Kind() Kind { return KindSurface }
func (*Surface) spec()      {}

func buildSurface(t column.Table, s *Surface) (*figure.Figure, error) {
	if err := needs("x", s.X, "y", s.Y, "z", s.Z); err != nil {
		return nil, err
	}
	if err := require(t, s.X, s.Y, s.Z); err != nil {
		return nil, err
	}
	cols, err := numeric(t, s.X, s.Y, s.Z)
	if err != nil {
		return nil, err
	}
	opacity := func() error { return errors.ValidateFraction("opacity", s.Opacity) }
	if err := check(s.Common.validate, s.Scale.validate, s.Lighting.Validate, opacity); err != nil {
		return nil, err
	}

	xs, ys, z := pivot(cols[0], cols[1], cols[2])
	if len(xs) == 0 || len(ys) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyGroup, "surface has no complete (x, y, z) rows")
	}
	tr := &figure.Trace{
		Type:     "surface",
		X:        xs,
		Y:        ys,
		Z:        z,
		Opacity:  s.Opacity,
		Lighting: figure.LightingOf(s.Lighting),
	}
	s.apply(tr)
	f := figure.New()
	f.Add(tr)
	s.sceneAxes(f, column.Numeric, column.Numeric, column.Numeric)
	s.finish(f)
	return f, nil
}

// pivot lays z out as a grid indexed [y][x] over the sorted distinct values
// of x and y. Rows with a null coordinate are skipped.
func pivot(x, y, z *column.Column) (xs, ys []float64, grid [][]any) {
	xi := make(map[float64]int)
	yi := make(map[float64]int)
	for i := 0; i < x.Len(); i++ {
		xv, okx := x.Float(i)
		yv, oky := y.Float(i)
		if !okx || !oky {
			continue
		}
		if _, ok := xi[xv]; !ok {
			xi[xv] = 0
			xs = append(xs, xv)
		}
		if _, ok := yi[yv]; !ok {
			yi[yv] = 0
			ys = append(ys, yv)
		}
	}
	sort.Float64s(xs)
	sort.Float64s(ys)
	for i, v := range xs {
		xi[v] = i
	}
	for i, v := range ys {
		yi[v] = i
	}

	grid = make([][]any, len(ys))
	for i := range grid {
		grid[i] = make([]any, len(xs))
	}
	for i := 0; i < x.Len(); i++ {
		xv, okx := x.Float(i)
		yv, oky := y.Float(i)
		zv, okz := z.Float(i)
		if okx && oky && okz {
			grid[yi[yv]][xi[xv]] = zv
		}
	}
	return xs, ys, grid
}

// numeric extracts every named column as Numeric.
func numeric(t column.Table, names ...string) ([]*column.Column, error) {
	out := make([]*column.Column, len(names))
	for i, n := range names {
		c, err := column.Extract(t, n, column.Numeric)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// =============================================================================
// Mesh3D
// =============================================================================

// Mesh3D draws a triangulated surface. Vertices come from X, Y and Z; the
// optional I, J and K columns index the vertices of each triangle, and
// without them the backend triangulates the points itself.
type Mesh3D struct {
	X             string          `json:"x"`
	Y             string          `json:"y"`
	Z             string          `json:"z"`
	I             string          `json:"i,omitempty"`
	J             string          `json:"j,omitempty"`
	K             string          `json:"k,omitempty"`
	Intensity     string          `json:"intensity,omitempty"`
	IntensityMode string          `json:"intensity_mode,omitempty"`
	Color         *style.Rgb      `json:"color,omitempty"`
	Opacity       *float64        `json:"opacity,omitempty"`
	FlatShading   *bool           `json:"flat_shading,omitempty"`
	Lighting      *style.Lighting `json:"lighting,omitempty"`
	Scale
	Common
}

func (*Mesh3D) Kind() Kind { return KindMesh3D }
func (*Mesh3D) spec()      {}

func (s *Mesh3D) validate() error {
	set := 0
	for _, c := range []string{s.I, s.J, s.K} {
		if c != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return errors.Inconsistent("i", "triangle indices need all of i, j and k")
	}
	switch s.IntensityMode {
	case "":
	case "vertex", "cell":
		if s.Intensity == "" {
			return errors.Inconsistent("intensity_mode", "intensity_mode needs an intensity column")
		}
	default:
		return errors.Inconsistent("intensity_mode", "intensity mode must be vertex or cell, got %q", s.IntensityMode)
	}
	if s.Color != nil && s.Intensity != "" {
		return errors.Inconsistent("color", "color and intensity are mutually exclusive")
	}
	if err := errors.ValidateFraction("opacity", s.Opacity); err != nil {
		return err
	}
	return s.Lighting.Validate()
}

func buildMesh3D(t column.Table, s *Mesh3D) (*figure.Figure, error) {
	if err := needs("x", s.X, "y", s.Y, "z", s.Z); err != nil {
		return nil, err
	}
	if err := require(t, s.X, s.Y, s.Z, s.I, s.J, s.K, s.Intensity); err != nil {
		return nil, err
	}
	xyz, err := numeric(t, s.X, s.Y, s.Z)
	if err != nil {
		return nil, err
	}
	var ijk []*column.Column
	if s.I != "" && s.J != "" && s.K != "" {
		if ijk, err = numeric(t, s.I, s.J, s.K); err != nil {
			return nil, err
		}
	}
	var intensity *column.Column
	if s.Intensity != "" {
		if intensity, err = column.Extract(t, s.Intensity, column.Numeric); err != nil {
			return nil, err
		}
	}
	if err := check(s.Common.validate, s.Scale.validate, s.validate); err != nil {
		return nil, err
	}

	rows := allRows(t.Len())
	tr := &figure.Trace{
		Type:          "mesh3d",
		X:             values(xyz[0], rows),
		Y:             values(xyz[1], rows),
		Z:             values(xyz[2], rows),
		IntensityMode: s.IntensityMode,
		Opacity:       s.Opacity,
		FlatShading:   s.FlatShading,
		Lighting:      figure.LightingOf(s.Lighting),
	}
	if ijk != nil {
		tr.I, tr.J, tr.K = indices(ijk[0]), indices(ijk[1]), indices(ijk[2])
	}
	if intensity != nil {
		tr.Intensity = values(intensity, rows)
		s.apply(tr)
	} else if s.Color != nil {
		tr.Marker = &figure.Marker{Color: s.Color.String()}
	}
	f := figure.New()
	f.Add(tr)
	s.sceneAxes(f, column.Numeric, column.Numeric, column.Numeric)
	s.finish(f)
	return f, nil
}

// indices returns the non-null values of c as vertex indices.
func indices(c *column.Column) []int {
	out := make([]int, 0, c.Len())
	for _, v := range c.Floats() {
		out = append(out, int(v))
	}
	return out
}

// =============================================================================
// Scatter3D
// =============================================================================

// Scatter3D draws one marker per row in a 3D scene, one trace per group.
type Scatter3D struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
	Grouping
	Marks
	Common
}

func (*Scatter3D) Kind() Kind { return KindScatter3D }
func (*Scatter3D) spec()      {}

func buildScatter3D(t column.Table, s *Scatter3D) (*figure.Figure, error) {
	if err := needs("x", s.X, "y", s.Y, "z", s.Z); err != nil {
		return nil, err
	}
	if err := require(t, append([]string{s.X, s.Y, s.Z}, s.columns()...)...); err != nil {
		return nil, err
	}
	x, err := column.Infer(t, s.X)
	if err != nil {
		return nil, err
	}
	y, err := column.Infer(t, s.Y)
	if err != nil {
		return nil, err
	}
	z, err := column.Extract(t, s.Z, column.Numeric)
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
				Type:   "scatter3d",
				Mode:   string(style.ModeMarkers),
				Name:   p.Group.Label,
				X:      values(x, p.Rows),
				Y:      values(y, p.Rows),
				Z:      values(z, p.Rows),
				Marker: s.marker(p.GroupIndex),
			})
		}
		s.sceneAxes(f, x.Kind, y.Kind, z.Kind)
		return f, nil
	})
}
