package figure

import (
	"github.com/matzehuels/tabplot/pkg/style"
)

// =============================================================================
// Conversions from style options
// =============================================================================

// FontOf returns the backend font for a text, or nil when it sets none.
func FontOf(t *style.Text) *Font {
	if t == nil || (t.Font == "" && t.Size == 0 && t.Color == nil) {
		return nil
	}
	f := &Font{Family: t.Font, Size: t.Size}
	if t.Color != nil {
		f.Color = t.Color.String()
	}
	return f
}

// TitleOf converts a text option. An empty text yields nil.
func TitleOf(t *style.Text) *Title {
	if t == nil || t.Content == "" {
		return nil
	}
	return &Title{Text: t.Content, Font: FontOf(t), X: t.X, Y: t.Y}
}

// AxisOf converts axis options and an axis title. The axis type is taken
// from the options when set and from inferred otherwise.
func AxisOf(a *style.Axis, title *style.Text, inferred string) *Axis {
	out := &Axis{Title: TitleOf(title), Type: inferred}
	if a == nil {
		return out
	}
	if a.Type != "" {
		out.Type = a.Type
	}
	out.Visible = a.Show
	out.Range = a.Range
	out.ShowGrid = a.ShowGrid
	out.GridColor = colorString(a.GridColor)
	out.ShowLine = a.ShowLine
	out.LineColor = colorString(a.LineColor)
	out.ZeroLine = a.ZeroLine
	out.ZeroLineColor = colorString(a.ZeroLineColor)
	out.TickFormat = a.TickFormat
	out.TickVals = a.TickValues
	out.TickText = a.TickLabels
	out.Ticks = a.TickDirection
	out.TickAngle = a.TickAngle
	out.Side = a.Side
	return out
}

// LegendOf converts legend options. A nil option yields nil.
func LegendOf(l *style.Legend, title *style.Text) *Legend {
	if l == nil {
		if t := TitleOf(title); t != nil {
			return &Legend{Title: t}
		}
		return nil
	}
	out := &Legend{
		X:           l.X,
		Y:           l.Y,
		XAnchor:     l.XAnchor,
		YAnchor:     l.YAnchor,
		Orientation: l.Orientation,
		BgColor:     colorString(l.BackgroundColor),
		BorderColor: colorString(l.BorderColor),
		BorderWidth: l.BorderWidth,
		Title:       TitleOf(title),
	}
	if l.Font != "" || l.FontSize > 0 {
		out.Font = &Font{Family: l.Font, Size: l.FontSize}
	}
	return out
}

// ColorBarOf converts colorbar options. Geometry stays in fractions of the
// figure's paper; grid composition rescales it into the owning cell.
func ColorBarOf(c *style.ColorBar) *ColorBar {
	if c == nil {
		return nil
	}
	out := &ColorBar{
		Len:        c.Length,
		Thickness:  c.Width,
		X:          c.X,
		Y:          c.Y,
		Title:      TitleOf(c.Title),
		TickFormat: c.TickFormat,
		TickVals:   c.TickValues,
		TickText:   c.TickLabels,
	}
	if c.Length != nil {
		out.LenMode = "fraction"
	}
	if c.Width != nil {
		out.ThicknessMode = "fraction"
	}
	if c.X != nil {
		out.XAnchor = "left"
	}
	if c.Y != nil {
		out.YAnchor = "middle"
	}
	return out
}

// LightingOf converts lighting options.
func LightingOf(l *style.Lighting) *Lighting {
	if l == nil {
		return nil
	}
	return &Lighting{
		Ambient:   l.Ambient,
		Diffuse:   l.Diffuse,
		Fresnel:   l.Fresnel,
		Roughness: l.Roughness,
		Specular:  l.Specular,
	}
}

// ApplyDimensions copies figure size options into the layout.
func (l *Layout) ApplyDimensions(d *style.Dimensions) {
	if d == nil {
		return
	}
	l.Width = d.Width
	l.Height = d.Height
	l.AutoSize = d.AutoSize
}

func colorString(c *style.Rgb) string {
	if c == nil {
		return ""
	}
	return c.String()
}
