// Package plot builds render-ready figures from a table and a declarative
// plot description.
//
// Every chart family is one variant of the closed [Spec] interface. A spec
// names the columns it draws and carries optional style settings; [Build]
// dispatches on the variant and produces a [figure.Figure]:
//
//	fig, err := plot.Build(tab, &plot.Scatter{
//		X:        "body_mass_g",
//		Y:        "flipper_length_mm",
//		Grouping: plot.Grouping{Group: "species"},
//	})
//
// Building validates in a fixed order: first every column the spec names
// must resolve, then the style options must be consistent, and only then
// are rows partitioned by group and facet. Grouped families emit one trace
// per (facet, group) pair; faceted specs are laid out on a grid with one
// cell per facet value. Any failure aborts the build and no figure is
// returned. The table is only read.
package plot

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
)

// Kind tags a chart family.
type Kind string

const (
	KindScatter       Kind = "scatter"
	KindLine          Kind = "line"
	KindTimeSeries    Kind = "timeseries"
	KindBar           Kind = "bar"
	KindBox           Kind = "box"
	KindHistogram     Kind = "histogram"
	KindHeatmap       Kind = "heatmap"
	KindContour       Kind = "contour"
	KindOHLC          Kind = "ohlc"
	KindCandlestick   Kind = "candlestick"
	KindImage         Kind = "image"
	KindArray2D       Kind = "array2d"
	KindSurface       Kind = "surface"
	KindMesh3D        Kind = "mesh3d"
	KindScatter3D     Kind = "scatter3d"
	KindScatterPolar  Kind = "scatterpolar"
	KindScatterGeo    Kind = "scattergeo"
	KindScatterMap    Kind = "scattermap"
	KindDensityMapbox Kind = "densitymapbox"
	KindPie           Kind = "pie"
	KindSankey        Kind = "sankey"
	KindTable         Kind = "table"
)

// Spec is a plot description. The set of implementations is closed: one
// per [Kind].
type Spec interface {
	Kind() Kind
	spec()
}

// factories creates an empty spec per kind.
var factories = map[Kind]func() Spec{
	KindScatter:       func() Spec { return &Scatter{} },
	KindLine:          func() Spec { return &Line{} },
	KindTimeSeries:    func() Spec { return &TimeSeries{} },
	KindBar:           func() Spec { return &Bar{} },
	KindBox:           func() Spec { return &Box{} },
	KindHistogram:     func() Spec { return &Histogram{} },
	KindHeatmap:       func() Spec { return &Heatmap{} },
	KindContour:       func() Spec { return &Contour{} },
	KindOHLC:          func() Spec { return &OHLC{} },
	KindCandlestick:   func() Spec { return &Candlestick{} },
	KindImage:         func() Spec { return &Image{} },
	KindArray2D:       func() Spec { return &Array2D{} },
	KindSurface:       func() Spec { return &Surface{} },
	KindMesh3D:        func() Spec { return &Mesh3D{} },
	KindScatter3D:     func() Spec { return &Scatter3D{} },
	KindScatterPolar:  func() Spec { return &ScatterPolar{} },
	KindScatterGeo:    func() Spec { return &ScatterGeo{} },
	KindScatterMap:    func() Spec { return &ScatterMap{} },
	KindDensityMapbox: func() Spec { return &DensityMapbox{} },
	KindPie:           func() Spec { return &Pie{} },
	KindSankey:        func() Spec { return &Sankey{} },
	KindTable:         func() Spec { return &Table{} },
}

// Kinds returns every chart family in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewSpec returns an empty spec for kind.
func NewSpec(kind Kind) (Spec, error) {
	f, ok := factories[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown plot kind %q", kind)
	}
	return f(), nil
}

// Decode reads a JSON object into the spec for kind. Unknown fields are
// rejected so misspelled options do not silently fall back to defaults.
func Decode(kind Kind, data []byte) (Spec, error) {
	s, err := NewSpec(kind)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s plot", kind)
	}
	return s, nil
}

// Build validates s against t and returns the figure it describes. Image
// and Array2D specs do not read the table, and t may be nil for them.
//
// Errors carry the failing builder, plus the offending column or option
// where one is known.
func Build(t column.Table, s Spec) (*figure.Figure, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil plot spec")
	}
	if t == nil {
		switch s.(type) {
		case *Image, *Array2D:
		default:
			return nil, errors.InBuilder(errors.New(errors.ErrCodeInvalidInput, "no table"), string(s.Kind()))
		}
	}

	var (
		fig *figure.Figure
		err error
	)
	switch s := s.(type) {
	case *Scatter:
		fig, err = buildScatter(t, s)
	case *Line:
		fig, err = buildLine(t, s)
	case *TimeSeries:
		fig, err = buildTimeSeries(t, s)
	case *Bar:
		fig, err = buildBar(t, s)
	case *Box:
		fig, err = buildBox(t, s)
	case *Histogram:
		fig, err = buildHistogram(t, s)
	case *Heatmap:
		fig, err = buildHeatmap(t, s)
	case *Contour:
		fig, err = buildContour(t, s)
	case *OHLC:
		fig, err = buildOHLC(t, s)
	case *Candlestick:
		fig, err = buildCandlestick(t, s)
	case *Image:
		fig, err = buildImage(s)
	case *Array2D:
		fig, err = buildArray2D(s)
	case *Surface:
		fig, err = buildSurface(t, s)
	case *Mesh3D:
		fig, err = buildMesh3D(t, s)
	case *Scatter3D:
		fig, err = buildScatter3D(t, s)
	case *ScatterPolar:
		fig, err = buildScatterPolar(t, s)
	case *ScatterGeo:
		fig, err = buildScatterGeo(t, s)
	case *ScatterMap:
		fig, err = buildScatterMap(t, s)
	case *DensityMapbox:
		fig, err = buildDensityMapbox(t, s)
	case *Pie:
		fig, err = buildPie(t, s)
	case *Sankey:
		fig, err = buildSankey(t, s)
	case *Table:
		fig, err = buildTable(t, s)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported plot spec %T", s)
	}
	if err != nil {
		return nil, errors.InBuilder(err, string(s.Kind()))
	}
	return fig, nil
}

// require checks that every non-empty name is a column of t.
func require(t column.Table, names ...string) error {
	for _, n := range names {
		if n != "" && !column.Has(t, n) {
			return errors.ColumnNotFound(n)
		}
	}
	return nil
}

// need rejects an empty required selector.
func need(option, name string) error {
	if name == "" {
		return errors.Inconsistent(option, "%s column is required", option)
	}
	return nil
}

// needs applies need to (option, name) pairs in order.
func needs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := need(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
