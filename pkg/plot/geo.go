package plot

import (
	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// DefaultMapStyle is the tile style of map plots. It needs no access token.
const DefaultMapStyle = "open-street-map"

// Coordinates selects the latitude and longitude columns.
type Coordinates struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Coordinates) extract(t column.Table) (lat, lon *column.Column, err error) {
	if lat, err = column.Extract(t, c.Lat, column.Numeric); err != nil {
		return nil, nil, err
	}
	if lon, err = column.Extract(t, c.Lon, column.Numeric); err != nil {
		return nil, nil, err
	}
	return lat, lon, nil
}

// MapView positions a tile map.
type MapView struct {
	Style  string   `json:"map_style,omitempty"`
	Center *LatLon  `json:"center,omitempty"`
	Zoom   *float64 `json:"zoom,omitempty"`
}

// LatLon is a map position in degrees.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (v *MapView) validate() error {
	if c := v.Center; c != nil && (c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180) {
		return errors.Inconsistent("center", "center (%g, %g) is not a valid position", c.Lat, c.Lon)
	}
	if v.Zoom != nil && (*v.Zoom < 0 || *v.Zoom > 22) {
		return errors.Inconsistent("zoom", "zoom must be within [0, 22], got %g", *v.Zoom)
	}
	return nil
}

func (v *MapView) layout() figure.MapboxLayout {
	out := figure.MapboxLayout{Style: v.Style, Zoom: v.Zoom}
	if out.Style == "" {
		out.Style = DefaultMapStyle
	}
	if v.Center != nil {
		out.Center = &figure.LatLon{Lat: v.Center.Lat, Lon: v.Center.Lon}
	}
	return out
}

// =============================================================================
// ScatterGeo
// =============================================================================

// ScatterGeo draws points on a geographic projection, one trace per group.
type ScatterGeo struct {
	Coordinates
	Text       string     `json:"text,omitempty"`
	Mode       style.Mode `json:"mode,omitempty"`
	Projection string     `json:"projection,omitempty"`
	Scope      string     `json:"scope,omitempty"`
	LandColor  *style.Rgb `json:"land_color,omitempty"`
	Grouping
	Marks
	Lines
	Common
}

func (*ScatterGeo) Kind() Kind { return KindScatterGeo }
func (*ScatterGeo) spec()      {}

func (s *ScatterGeo) validate() error {
	if s.Mode != "" {
		return s.Mode.Validate()
	}
	return nil
}

func buildScatterGeo(t column.Table, s *ScatterGeo) (*figure.Figure, error) {
	if err := needs("lat", s.Lat, "lon", s.Lon); err != nil {
		return nil, err
	}
	if err := require(t, append([]string{s.Lat, s.Lon, s.Text}, s.columns()...)...); err != nil {
		return nil, err
	}
	lat, lon, err := s.extract(t)
	if err != nil {
		return nil, err
	}
	var text *column.Column
	if s.Text != "" {
		if text, err = column.Infer(t, s.Text); err != nil {
			return nil, err
		}
	}
	if err := check(s.Common.validate, s.Marks.validate, s.Lines.validate, s.Grouping.validate, s.validate); err != nil {
		return nil, err
	}
	res, err := s.split(t)
	if err != nil {
		return nil, err
	}

	mode := s.Mode
	if mode == "" {
		mode = style.ModeMarkers
	}
	return facet(res, &s.Grouping, &s.Common, func(parts []partition.Part) (*figure.Figure, error) {
		f := figure.New()
		for _, p := range parts {
			tr := &figure.Trace{
				Type:   "scattergeo",
				Mode:   string(mode),
				Name:   p.Group.Label,
				Lat:    values(lat, p.Rows),
				Lon:    values(lon, p.Rows),
				Marker: s.marker(p.GroupIndex),
				Line:   s.line(p.GroupIndex, s.color(p.GroupIndex)),
			}
			if text != nil {
				tr.Text = values(text, p.Rows)
			}
			f.Add(tr)
		}
		geo := f.Layout.Geo("geo")
		geo.Scope = s.Scope
		if s.Projection != "" {
			geo.Projection = &figure.Projection{Type: s.Projection}
		}
		if s.LandColor != nil {
			geo.ShowLand = figure.Bool(true)
			geo.LandColor = s.LandColor.String()
		}
		return f, nil
	})
}

// =============================================================================
// ScatterMap
// =============================================================================

// ScatterMap draws points on a tile map, one trace per group.
type ScatterMap struct {
	Coordinates
	Mode style.Mode `json:"mode,omitempty"`
	MapView
	GroupOnly
	Marks
	Common
}

func (*ScatterMap) Kind() Kind { return KindScatterMap }
func (*ScatterMap) spec()      {}

func buildScatterMap(t column.Table, s *ScatterMap) (*figure.Figure, error) {
	if err := needs("lat", s.Lat, "lon", s.Lon); err != nil {
		return nil, err
	}
	if err := require(t, s.Lat, s.Lon, s.Group); err != nil {
		return nil, err
	}
	lat, lon, err := s.extract(t)
	if err != nil {
		return nil, err
	}
	mode := func() error {
		if s.Mode != "" {
			return s.Mode.Validate()
		}
		return nil
	}
	if err := check(s.Common.validate, s.Marks.validate, s.MapView.validate, mode); err != nil {
		return nil, err
	}
	g := s.grouping()
	res, err := g.split(t)
	if err != nil {
		return nil, err
	}

	f := figure.New()
	for _, p := range res.Parts {
		f.Add(&figure.Trace{
			Type:   "scattermapbox",
			Mode:   string(s.Mode),
			Name:   p.Group.Label,
			Lat:    values(lat, p.Rows),
			Lon:    values(lon, p.Rows),
			Marker: s.marker(p.GroupIndex),
		})
	}
	*f.Layout.Mapbox("mapbox") = s.layout()
	s.finish(f)
	return f, nil
}

// =============================================================================
// DensityMapbox
// =============================================================================

// DensityMapbox draws a heat layer of Z weights on a tile map.
type DensityMapbox struct {
	Coordinates
	Z      string   `json:"z"`
	Radius *float64 `json:"radius,omitempty"`
	ZMin   *float64 `json:"z_min,omitempty"`
	ZMax   *float64 `json:"z_max,omitempty"`
	MapView
	Scale
	Common
}

func (*DensityMapbox) Kind() Kind { return KindDensityMapbox }
func (*DensityMapbox) spec()      {}

func (s *DensityMapbox) validate() error {
	if s.Radius != nil && *s.Radius <= 0 {
		return errors.Inconsistent("radius", "radius must be positive, got %g", *s.Radius)
	}
	if s.ZMin != nil && s.ZMax != nil && *s.ZMin >= *s.ZMax {
		return errors.Inconsistent("z_min", "z_min %g must be below z_max %g", *s.ZMin, *s.ZMax)
	}
	return nil
}

func buildDensityMapbox(t column.Table, s *DensityMapbox) (*figure.Figure, error) {
	if err := needs("lat", s.Lat, "lon", s.Lon, "z", s.Z); err != nil {
		return nil, err
	}
	if err := require(t, s.Lat, s.Lon, s.Z); err != nil {
		return nil, err
	}
	lat, lon, err := s.extract(t)
	if err != nil {
		return nil, err
	}
	z, err := column.Extract(t, s.Z, column.Numeric)
	if err != nil {
		return nil, err
	}
	if err := check(s.Common.validate, s.Scale.validate, s.MapView.validate, s.validate); err != nil {
		return nil, err
	}

	rows := allRows(t.Len())
	tr := &figure.Trace{
		Type:   "densitymapbox",
		Lat:    values(lat, rows),
		Lon:    values(lon, rows),
		Z:      values(z, rows),
		Radius: s.Radius,
		ZMin:   s.ZMin,
		ZMax:   s.ZMax,
	}
	s.apply(tr)
	f := figure.New()
	f.Add(tr)
	*f.Layout.Mapbox("mapbox") = s.layout()
	s.finish(f)
	return f, nil
}
