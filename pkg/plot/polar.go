package plot

import (
	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// ScatterPolar draws R against the angle Theta, one trace per group. The
// x axis options style the angular axis and the y axis options the radial
// one.
type ScatterPolar struct {
	Theta string     `json:"theta"`
	R     string     `json:"r"`
	Mode  style.Mode `json:"mode,omitempty"`
	Fill  style.Fill `json:"fill,omitempty"`
	Grouping
	Marks
	Lines
	Common
}

func (*ScatterPolar) Kind() Kind { return KindScatterPolar }
func (*ScatterPolar) spec()      {}

func (s *ScatterPolar) validate() error {
	if s.Mode != "" {
		if err := s.Mode.Validate(); err != nil {
			return err
		}
	}
	if s.Fill != "" {
		return s.Fill.Validate()
	}
	return nil
}

func buildScatterPolar(t column.Table, s *ScatterPolar) (*figure.Figure, error) {
	if err := needs("theta", s.Theta, "r", s.R); err != nil {
		return nil, err
	}
	if err := require(t, append([]string{s.Theta, s.R}, s.columns()...)...); err != nil {
		return nil, err
	}
	theta, err := column.Infer(t, s.Theta)
	if err != nil {
		return nil, err
	}
	r, err := column.Extract(t, s.R, column.Numeric)
	if err != nil {
		return nil, err
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
			f.Add(&figure.Trace{
				Type:   "scatterpolar",
				Mode:   string(mode),
				Fill:   string(s.Fill),
				Name:   p.Group.Label,
				Theta:  values(theta, p.Rows),
				R:      values(r, p.Rows),
				Marker: s.marker(p.GroupIndex),
				Line:   s.line(p.GroupIndex, s.color(p.GroupIndex)),
			})
		}
		*f.Layout.Polar("polar") = figure.PolarLayout{
			AngularAxis: figure.AxisOf(s.XAxis, s.XTitle, ""),
			RadialAxis:  figure.AxisOf(s.YAxis, s.YTitle, ""),
		}
		return f, nil
	})
}
