package figure

import (
	"encoding/json"
	"regexp"
	"sort"
)

// Layout is the non-data configuration of a figure.
//
// Subplot objects are addressed by numbered keys ("xaxis", "yaxis2",
// "scene3", "polar2", ...). They are kept in maps and flattened into the
// layout object on marshal, so a figure with any number of cells
// serializes to the backend's schema.
type Layout struct {
	Title       *Title        `json:"title,omitempty"`
	Width       int           `json:"width,omitempty"`
	Height      int           `json:"height,omitempty"`
	AutoSize    *bool         `json:"autosize,omitempty"`
	ShowLegend  *bool         `json:"showlegend,omitempty"`
	Legend      *Legend       `json:"legend,omitempty"`
	BarMode     string        `json:"barmode,omitempty"`
	BoxMode     string        `json:"boxmode,omitempty"`
	Colorway    []string      `json:"colorway,omitempty"`
	Annotations []*Annotation `json:"annotations,omitempty"`

	Axes     map[string]*Axis         `json:"-"`
	Scenes   map[string]*Scene        `json:"-"`
	Polars   map[string]*PolarLayout  `json:"-"`
	Geos     map[string]*GeoLayout    `json:"-"`
	Mapboxes map[string]*MapboxLayout `json:"-"`
}

// Axis returns the axis stored under key, creating it when absent.
func (l *Layout) Axis(key string) *Axis {
	if l.Axes == nil {
		l.Axes = make(map[string]*Axis)
	}
	a, ok := l.Axes[key]
	if !ok {
		a = &Axis{}
		l.Axes[key] = a
	}
	return a
}

// Scene returns the scene stored under key, creating it when absent.
func (l *Layout) Scene(key string) *Scene {
	if l.Scenes == nil {
		l.Scenes = make(map[string]*Scene)
	}
	s, ok := l.Scenes[key]
	if !ok {
		s = &Scene{}
		l.Scenes[key] = s
	}
	return s
}

// Polar returns the polar subplot stored under key, creating it when absent.
func (l *Layout) Polar(key string) *PolarLayout {
	if l.Polars == nil {
		l.Polars = make(map[string]*PolarLayout)
	}
	p, ok := l.Polars[key]
	if !ok {
		p = &PolarLayout{}
		l.Polars[key] = p
	}
	return p
}

// Geo returns the geo subplot stored under key, creating it when absent.
func (l *Layout) Geo(key string) *GeoLayout {
	if l.Geos == nil {
		l.Geos = make(map[string]*GeoLayout)
	}
	g, ok := l.Geos[key]
	if !ok {
		g = &GeoLayout{}
		l.Geos[key] = g
	}
	return g
}

// Mapbox returns the mapbox subplot stored under key, creating it when absent.
func (l *Layout) Mapbox(key string) *MapboxLayout {
	if l.Mapboxes == nil {
		l.Mapboxes = make(map[string]*MapboxLayout)
	}
	m, ok := l.Mapboxes[key]
	if !ok {
		m = &MapboxLayout{}
		l.Mapboxes[key] = m
	}
	return m
}

// AxisKeys returns the keys of all axes in sorted order.
func (l *Layout) AxisKeys() []string {
	keys := make([]string, 0, len(l.Axes))
	for k := range l.Axes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON flattens the subplot maps into the layout object. Keys are
// emitted in sorted order, so equal layouts always encode identically.
func (l Layout) MarshalJSON() ([]byte, error) {
	type plain Layout
	base, err := json.Marshal(plain(l))
	if err != nil {
		return nil, err
	}
	obj := make(map[string]json.RawMessage)
	if err := json.Unmarshal(base, &obj); err != nil {
		return nil, err
	}
	if err := flatten(obj, l.Axes); err != nil {
		return nil, err
	}
	if err := flatten(obj, l.Scenes); err != nil {
		return nil, err
	}
	if err := flatten(obj, l.Polars); err != nil {
		return nil, err
	}
	if err := flatten(obj, l.Geos); err != nil {
		return nil, err
	}
	if err := flatten(obj, l.Mapboxes); err != nil {
		return nil, err
	}
	return json.Marshal(obj)
}

func flatten[T any](obj map[string]json.RawMessage, m map[string]*T) error {
	for k, v := range m {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		obj[k] = data
	}
	return nil
}

var (
	axisKey   = regexp.MustCompile(`^[xy]axis[0-9]*$`)
	sceneKey  = regexp.MustCompile(`^scene[0-9]*$`)
	polarKey  = regexp.MustCompile(`^polar[0-9]*$`)
	geoKey    = regexp.MustCompile(`^geo[0-9]*$`)
	mapboxKey = regexp.MustCompile(`^mapbox[0-9]*$`)
)

// UnmarshalJSON routes numbered subplot keys back into their maps.
func (l *Layout) UnmarshalJSON(data []byte) error {
	type plain Layout
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	obj := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for k, raw := range obj {
		var err error
		switch {
		case axisKey.MatchString(k):
			p.Axes, err = route(p.Axes, k, raw)
		case sceneKey.MatchString(k):
			p.Scenes, err = route(p.Scenes, k, raw)
		case polarKey.MatchString(k):
			p.Polars, err = route(p.Polars, k, raw)
		case geoKey.MatchString(k):
			p.Geos, err = route(p.Geos, k, raw)
		case mapboxKey.MatchString(k):
			p.Mapboxes, err = route(p.Mapboxes, k, raw)
		}
		if err != nil {
			return err
		}
	}
	*l = Layout(p)
	return nil
}

func route[T any](m map[string]*T, key string, raw json.RawMessage) (map[string]*T, error) {
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return m, err
	}
	if m == nil {
		m = make(map[string]*T)
	}
	m[key] = v
	return m, nil
}

// Axis is a cartesian or scene axis.
type Axis struct {
	Title         *Title       `json:"title,omitempty"`
	Type          string       `json:"type,omitempty"`
	Range         []float64    `json:"range,omitempty"`
	AutoRange     any          `json:"autorange,omitempty"`
	Visible       *bool        `json:"visible,omitempty"`
	ShowGrid      *bool        `json:"showgrid,omitempty"`
	GridColor     string       `json:"gridcolor,omitempty"`
	ShowLine      *bool        `json:"showline,omitempty"`
	LineColor     string       `json:"linecolor,omitempty"`
	ZeroLine      *bool        `json:"zeroline,omitempty"`
	ZeroLineColor string       `json:"zerolinecolor,omitempty"`
	TickFormat    string       `json:"tickformat,omitempty"`
	TickVals      []float64    `json:"tickvals,omitempty"`
	TickText      []string     `json:"ticktext,omitempty"`
	Ticks         string       `json:"ticks,omitempty"`
	TickAngle     *float64     `json:"tickangle,omitempty"`
	Side          string       `json:"side,omitempty"`
	Domain        []float64    `json:"domain,omitempty"`
	Anchor        string       `json:"anchor,omitempty"`
	Matches       string       `json:"matches,omitempty"`
	ScaleAnchor   string       `json:"scaleanchor,omitempty"`
	RangeSlider   *RangeSlider `json:"rangeslider,omitempty"`
}

// RangeSlider toggles the range slider under a date axis.
type RangeSlider struct {
	Visible bool `json:"visible"`
}

// Scene is a 3D subplot.
type Scene struct {
	Domain *Domain `json:"domain,omitempty"`
	XAxis  *Axis   `json:"xaxis,omitempty"`
	YAxis  *Axis   `json:"yaxis,omitempty"`
	ZAxis  *Axis   `json:"zaxis,omitempty"`
}

// PolarLayout is a polar subplot.
type PolarLayout struct {
	Domain      *Domain `json:"domain,omitempty"`
	RadialAxis  *Axis   `json:"radialaxis,omitempty"`
	AngularAxis *Axis   `json:"angularaxis,omitempty"`
}

// GeoLayout is a geographic subplot.
type GeoLayout struct {
	Domain        *Domain     `json:"domain,omitempty"`
	Projection    *Projection `json:"projection,omitempty"`
	Scope         string      `json:"scope,omitempty"`
	ShowLand      *bool       `json:"showland,omitempty"`
	LandColor     string      `json:"landcolor,omitempty"`
	ShowCountries *bool       `json:"showcountries,omitempty"`
}

// Projection selects a geographic projection.
type Projection struct {
	Type string `json:"type"`
}

// MapboxLayout is a tile map subplot.
type MapboxLayout struct {
	Domain *Domain  `json:"domain,omitempty"`
	Style  string   `json:"style,omitempty"`
	Center *LatLon  `json:"center,omitempty"`
	Zoom   *float64 `json:"zoom,omitempty"`
}

// LatLon is a map position.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Legend is the backend legend descriptor.
type Legend struct {
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	XAnchor     string   `json:"xanchor,omitempty"`
	YAnchor     string   `json:"yanchor,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	BgColor     string   `json:"bgcolor,omitempty"`
	BorderColor string   `json:"bordercolor,omitempty"`
	BorderWidth *float64 `json:"borderwidth,omitempty"`
	Font        *Font    `json:"font,omitempty"`
	Title       *Title   `json:"title,omitempty"`
}

// Annotation is free text placed on the paper or in axis coordinates.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref,omitempty"`
	YRef      string  `json:"yref,omitempty"`
	XAnchor   string  `json:"xanchor,omitempty"`
	YAnchor   string  `json:"yanchor,omitempty"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
}
