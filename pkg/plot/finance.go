package plot

import (
	"github.com/matzehuels/tabplot/pkg/column"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/partition"
	"github.com/matzehuels/tabplot/pkg/style"
)

// Prices selects the date and open/high/low/close columns of a financial
// plot. Open, high, low and close are fused per date into one trace, so a
// financial plot is never grouped.
type Prices struct {
	Dates string `json:"dates"`
	Open  string `json:"open"`
	High  string `json:"high"`
	Low   string `json:"low"`
	Close string `json:"close"`
}

// Directions colors rising and falling periods.
type Directions struct {
	IncreasingColor *style.Rgb `json:"increasing_color,omitempty"`
	DecreasingColor *style.Rgb `json:"decreasing_color,omitempty"`
	LineWidth       *float64   `json:"line_width,omitempty"`
}

func (d *Directions) validate() error {
	if d.LineWidth != nil && *d.LineWidth <= 0 {
		return errors.Inconsistent("line_width", "line width must be positive, got %g", *d.LineWidth)
	}
	return nil
}

func (d *Directions) direction(c *style.Rgb, fill bool) *figure.Direction {
	if c == nil && d.LineWidth == nil {
		return nil
	}
	out := &figure.Direction{Line: &figure.Line{Width: d.LineWidth}}
	if c != nil {
		out.Line.Color = c.String()
		if fill {
			out.FillColor = c.String()
		}
	}
	return out
}

// OHLC draws a tick per period: open left, close right, high-low vertical.
type OHLC struct {
	Prices
	TickWidth *float64 `json:"tick_width,omitempty"`
	Directions
	FacetOnly
	Common
}

func (*OHLC) Kind() Kind { return KindOHLC }
func (*OHLC) spec()      {}

// Candlestick draws a box between open and close with high-low whiskers.
type Candlestick struct {
	Prices
	WhiskerWidth *float64 `json:"whisker_width,omitempty"`
	Directions
	FacetOnly
	Common
}

func (*Candlestick) Kind() Kind { return KindCandlestick }
func (*Candlestick) spec()      {}

func buildOHLC(t column.Table, s *OHLC) (*figure.Figure, error) {
	tick := func() error { return errors.ValidateFraction("tick_width", s.TickWidth) }
	return buildPrices(t, "ohlc", &s.Prices, &s.Directions, s.grouping(), &s.Common, tick,
		func(tr *figure.Trace) {
			tr.TickWidth = s.TickWidth
			tr.Increasing = s.direction(s.IncreasingColor, false)
			tr.Decreasing = s.direction(s.DecreasingColor, false)
		})
}

func buildCandlestick(t column.Table, s *Candlestick) (*figure.Figure, error) {
	whisker := func() error { return errors.ValidateFraction("whisker_width", s.WhiskerWidth) }
	return buildPrices(t, "candlestick", &s.Prices, &s.Directions, s.grouping(), &s.Common, whisker,
		func(tr *figure.Trace) {
			tr.WhiskerWidth = s.WhiskerWidth
			tr.Increasing = s.direction(s.IncreasingColor, true)
			tr.Decreasing = s.direction(s.DecreasingColor, true)
		})
}

func buildPrices(t column.Table, typ string, p *Prices, d *Directions, g Grouping, c *Common,
	extra func() error, decorate func(*figure.Trace)) (*figure.Figure, error) {
	if err := needs("dates", p.Dates, "open", p.Open, "high", p.High, "low", p.Low, "close", p.Close); err != nil {
		return nil, err
	}
	if err := require(t, p.Dates, p.Open, p.High, p.Low, p.Close, g.Facet); err != nil {
		return nil, err
	}
	dates, err := column.Infer(t, p.Dates)
	if err != nil {
		return nil, err
	}
	ohlc := make([]*column.Column, 4)
	for i, name := range []string{p.Open, p.High, p.Low, p.Close} {
		if ohlc[i], err = column.Extract(t, name, column.Numeric); err != nil {
			return nil, err
		}
	}
	if err := check(c.validate, d.validate, g.validate, extra); err != nil {
		return nil, err
	}
	res, err := g.split(t)
	if err != nil {
		return nil, err
	}

	return facet(res, &g, c, func(parts []partition.Part) (*figure.Figure, error) {
		var rows []int
		for _, part := range parts {
			rows = append(rows, part.Rows...)
		}
		tr := &figure.Trace{
			Type:  typ,
			X:     values(dates, rows),
			Open:  values(ohlc[0], rows),
			High:  values(ohlc[1], rows),
			Low:   values(ohlc[2], rows),
			Close: values(ohlc[3], rows),
		}
		decorate(tr)
		f := figure.New()
		f.Add(tr)
		c.cartesianAxes(f, dates.Kind, column.Numeric)
		f.Layout.Axes["xaxis"].RangeSlider = &figure.RangeSlider{Visible: false}
		return f, nil
	})
}
