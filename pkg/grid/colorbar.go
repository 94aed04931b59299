package grid

import (
	"math"

	"github.com/matzehuels/tabplot/pkg/figure"
)

// Colorbar sizing, as fractions of the owning cell.
const (
	DefaultColorBarWidth  = 0.04 // bar thickness
	DefaultColorBarLength = 0.9  // bar length
	colorBarLabelRoom     = 0.08 // tick labels right of each bar
	maxColorBarShare      = 0.5  // largest share of a cell taken by bars
)

// placeColorBars fits the colorbar of every color-mapped trace into cell r
// and returns the rectangle left for the plot itself.
//
// Bars without an explicit x position are stacked in strips reserved at
// the right edge of the cell. All geometry on input is relative to the
// trace's own figure and is mapped into r; every bar rectangle is clamped
// so it stays inside r and can never reach a neighbouring cell.
func placeColorBars(traces []*figure.Trace, r Rect) Rect {
	var bars []*figure.ColorBar
	for _, t := range traces {
		if t.HasColorScale() {
			bars = append(bars, colorBarOf(t))
		}
	}
	if len(bars) == 0 {
		return r
	}

	var strips []*figure.ColorBar
	for _, b := range bars {
		if b.X == nil {
			strips = append(strips, b)
		}
	}
	w := r.Width()
	share := 0.0
	for _, b := range strips {
		share += thicknessOf(b) + colorBarLabelRoom
	}
	shrink := 1.0
	if share > maxColorBarShare {
		shrink = maxColorBarShare / share
	}

	content := r
	content.X1 -= share * shrink * w
	next := content.X1

	for _, b := range bars {
		thick := thicknessOf(b) * shrink * w
		length := DefaultColorBarLength
		if b.Len != nil && b.LenMode == "fraction" {
			length = *b.Len
		}
		length = math.Min(length*r.Height(), r.Height())

		var x float64
		if b.X == nil {
			x = next
			next += thick + colorBarLabelRoom*shrink*w
		} else {
			x = r.X0 + *b.X*w
		}
		x = clamp(x, r.X0, r.X1-thick)

		y := r.Y0 + (r.Height()-length)/2
		if b.Y != nil {
			y = r.Y0 + *b.Y*r.Height()
			if b.YAnchor != "bottom" {
				y -= length / 2
			}
		}
		y = clamp(y, r.Y0, r.Y1-length)

		b.X, b.Y = figure.Float(x), figure.Float(y)
		b.XAnchor, b.YAnchor = "left", "bottom"
		b.Len, b.LenMode = figure.Float(length), "fraction"
		b.Thickness, b.ThicknessMode = figure.Float(thick), "fraction"
	}
	return content
}

// Bounds returns the paper rectangle a placed colorbar occupies.
func Bounds(b *figure.ColorBar) Rect {
	var x, y, l, t float64
	if b.X != nil {
		x = *b.X
	}
	if b.Y != nil {
		y = *b.Y
	}
	if b.Len != nil {
		l = *b.Len
	}
	if b.Thickness != nil {
		t = *b.Thickness
	}
	return Rect{X0: x, X1: x + t, Y0: y, Y1: y + l}
}

func thicknessOf(b *figure.ColorBar) float64 {
	if b.Thickness != nil && b.ThicknessMode == "fraction" {
		return *b.Thickness
	}
	return DefaultColorBarWidth
}

// colorBarOf returns the colorbar of a color-mapped trace, creating it at
// the level the backend reads it from.
func colorBarOf(t *figure.Trace) *figure.ColorBar {
	if t.Marker != nil && t.Marker.ColorScale != nil && t.ColorScale == nil {
		if t.Marker.ColorBar == nil {
			t.Marker.ColorBar = &figure.ColorBar{}
		}
		return t.Marker.ColorBar
	}
	if t.ColorBar == nil {
		t.ColorBar = &figure.ColorBar{}
	}
	return t.ColorBar
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
