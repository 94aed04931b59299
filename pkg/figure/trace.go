package figure

// Trace is one visual series. Field names and JSON keys follow the
// rendering backend's schema; fields a chart family does not use stay empty
// and are omitted from the output.
type Trace struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	ShowLegend  *bool  `json:"showlegend,omitempty"`
	LegendGroup string `json:"legendgroup,omitempty"`

	X         any    `json:"x,omitempty"`
	Y         any    `json:"y,omitempty"`
	Z         any    `json:"z,omitempty"`
	I         any    `json:"i,omitempty"`
	J         any    `json:"j,omitempty"`
	K         any    `json:"k,omitempty"`
	Lat       any    `json:"lat,omitempty"`
	Lon       any    `json:"lon,omitempty"`
	R         any    `json:"r,omitempty"`
	Theta     any    `json:"theta,omitempty"`
	Labels    any    `json:"labels,omitempty"`
	Values    any    `json:"values,omitempty"`
	Open      any    `json:"open,omitempty"`
	High      any    `json:"high,omitempty"`
	Low       any    `json:"low,omitempty"`
	Close     any    `json:"close,omitempty"`
	Text      any    `json:"text,omitempty"`
	Source    string `json:"source,omitempty"`
	Intensity any    `json:"intensity,omitempty"`

	IntensityMode string   `json:"intensitymode,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	Fill          string   `json:"fill,omitempty"`
	Orientation   string   `json:"orientation,omitempty"`
	Opacity       *float64 `json:"opacity,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Line          *Line    `json:"line,omitempty"`

	ColorScale   any       `json:"colorscale,omitempty"`
	ReverseScale *bool     `json:"reversescale,omitempty"`
	ShowScale    *bool     `json:"showscale,omitempty"`
	ZMin         *float64  `json:"zmin,omitempty"`
	ZMax         *float64  `json:"zmax,omitempty"`
	ColorBar     *ColorBar `json:"colorbar,omitempty"`
	Lighting     *Lighting `json:"lighting,omitempty"`
	FlatShading  *bool     `json:"flatshading,omitempty"`
	Contours     *Contours `json:"contours,omitempty"`
	Radius       *float64  `json:"radius,omitempty"`

	NBinsX    int       `json:"nbinsx,omitempty"`
	BoxPoints any       `json:"boxpoints,omitempty"`
	PointPos  *float64  `json:"pointpos,omitempty"`
	Jitter    *float64  `json:"jitter,omitempty"`
	ErrorX    *ErrorBar `json:"error_x,omitempty"`
	ErrorY    *ErrorBar `json:"error_y,omitempty"`

	Hole     *float64 `json:"hole,omitempty"`
	Pull     any      `json:"pull,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`

	Increasing   *Direction `json:"increasing,omitempty"`
	Decreasing   *Direction `json:"decreasing,omitempty"`
	TickWidth    *float64   `json:"tickwidth,omitempty"`
	WhiskerWidth *float64   `json:"whiskerwidth,omitempty"`

	Node        *SankeyNode `json:"node,omitempty"`
	Link        *SankeyLink `json:"link,omitempty"`
	Arrangement string      `json:"arrangement,omitempty"`
	Header      *TableBlock `json:"header,omitempty"`
	Cells       *TableBlock `json:"cells,omitempty"`
	ColumnWidth []float64   `json:"columnwidth,omitempty"`

	// Subplot addressing, set by grid composition.
	XAxis   string  `json:"xaxis,omitempty"`
	YAxis   string  `json:"yaxis,omitempty"`
	Scene   string  `json:"scene,omitempty"`
	Geo     string  `json:"geo,omitempty"`
	Subplot string  `json:"subplot,omitempty"`
	Domain  *Domain `json:"domain,omitempty"`
}

// Family returns the addressing family of the trace.
func (t *Trace) Family() Family {
	return FamilyOf(t.Type)
}

// ColorBars returns the colorbars carried by the trace, at trace or marker level.
func (t *Trace) ColorBars() []*ColorBar {
	var out []*ColorBar
	if t.ColorBar != nil {
		out = append(out, t.ColorBar)
	}
	if t.Marker != nil && t.Marker.ColorBar != nil {
		out = append(out, t.Marker.ColorBar)
	}
	return out
}

// HasColorScale reports whether the trace maps values through a colorscale
// and therefore shows a colorbar unless disabled.
func (t *Trace) HasColorScale() bool {
	if t.ShowScale != nil && !*t.ShowScale {
		return false
	}
	switch t.Type {
	case "heatmap", "contour", "surface", "densitymapbox", "histogram2d", "histogram2dcontour":
		return true
	case "mesh3d":
		return t.Intensity != nil
	}
	return t.Marker != nil && t.Marker.ColorScale != nil && (t.Marker.ShowScale == nil || *t.Marker.ShowScale)
}

// Marker styles points, bars and slices.
type Marker struct {
	Color      any       `json:"color,omitempty"`
	Colors     any       `json:"colors,omitempty"`
	Size       any       `json:"size,omitempty"`
	Symbol     any       `json:"symbol,omitempty"`
	Opacity    *float64  `json:"opacity,omitempty"`
	Line       *Line     `json:"line,omitempty"`
	ColorScale any       `json:"colorscale,omitempty"`
	ShowScale  *bool     `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

// Line styles a stroke.
type Line struct {
	Color string   `json:"color,omitempty"`
	Width *float64 `json:"width,omitempty"`
	Dash  string   `json:"dash,omitempty"`
}

// ColorBar is the backend colorbar descriptor. Positions are paper fractions.
type ColorBar struct {
	Len           *float64  `json:"len,omitempty"`
	LenMode       string    `json:"lenmode,omitempty"`
	Thickness     *float64  `json:"thickness,omitempty"`
	ThicknessMode string    `json:"thicknessmode,omitempty"`
	X             *float64  `json:"x,omitempty"`
	Y             *float64  `json:"y,omitempty"`
	XAnchor       string    `json:"xanchor,omitempty"`
	YAnchor       string    `json:"yanchor,omitempty"`
	Title         *Title    `json:"title,omitempty"`
	TickFormat    string    `json:"tickformat,omitempty"`
	TickVals      []float64 `json:"tickvals,omitempty"`
	TickText      []string  `json:"ticktext,omitempty"`
}

// Domain is a fractional rectangle of the paper.
type Domain struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
}

// ErrorBar draws per-point error bars from an explicit array.
type ErrorBar struct {
	Type    string `json:"type"`
	Array   any    `json:"array"`
	Visible bool   `json:"visible"`
}

// Contours configures contour coloring.
type Contours struct {
	Coloring   string `json:"coloring,omitempty"`
	ShowLines  *bool  `json:"showlines,omitempty"`
	ShowLabels *bool  `json:"showlabels,omitempty"`
}

// Lighting configures 3D shading.
type Lighting struct {
	Ambient   *float64 `json:"ambient,omitempty"`
	Diffuse   *float64 `json:"diffuse,omitempty"`
	Fresnel   *float64 `json:"fresnel,omitempty"`
	Roughness *float64 `json:"roughness,omitempty"`
	Specular  *float64 `json:"specular,omitempty"`
}

// Direction styles the increasing or decreasing half of a financial trace.
type Direction struct {
	Line      *Line  `json:"line,omitempty"`
	FillColor string `json:"fillcolor,omitempty"`
}

// SankeyNode lists the nodes of a sankey diagram.
type SankeyNode struct {
	Label     []string `json:"label"`
	Color     any      `json:"color,omitempty"`
	Pad       *float64 `json:"pad,omitempty"`
	Thickness *float64 `json:"thickness,omitempty"`
}

// SankeyLink lists the flows of a sankey diagram by node index.
type SankeyLink struct {
	Source []int `json:"source"`
	Target []int `json:"target"`
	Value  any   `json:"value"`
	Color  any   `json:"color,omitempty"`
}

// TableBlock is the header or body of a table trace.
type TableBlock struct {
	Values any      `json:"values"`
	Align  string   `json:"align,omitempty"`
	Fill   *Fill    `json:"fill,omitempty"`
	Font   *Font    `json:"font,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Fill is a fill color.
type Fill struct {
	Color any `json:"color,omitempty"`
}

// Font is a text font.
type Font struct {
	Family string `json:"family,omitempty"`
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Title is a positioned text.
type Title struct {
	Text string   `json:"text"`
	Font *Font    `json:"font,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
}
