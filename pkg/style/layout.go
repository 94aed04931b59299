package style

import (
	"encoding/json"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// =============================================================================
// Text
// =============================================================================

// Text is a title or label with optional font and explicit placement.
// X and Y are paper fractions; unset means the backend default position.
type Text struct {
	Content string   `json:"content"`
	Font    string   `json:"font,omitempty"`
	Size    int      `json:"size,omitempty"`
	Color   *Rgb     `json:"color,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
}

// UnmarshalJSON accepts a bare string as the content.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text{Content: s}
		return nil
	}
	type plain Text
	return json.Unmarshal(data, (*plain)(t))
}

// Validate checks font size and placement.
func (t *Text) Validate(option string) error {
	if t == nil {
		return nil
	}
	if t.Size < 0 {
		return errors.Inconsistent(option, "%s font size must be positive, got %d", option, t.Size)
	}
	return nil
}

// =============================================================================
// Axis
// =============================================================================

// ValidAxisTypes is the set of axis type overrides.
var ValidAxisTypes = map[string]bool{"linear": true, "log": true, "date": true, "category": true}

// Axis configures one coordinate axis. An unset Type is inferred from the
// column the axis displays.
type Axis struct {
	Show          *bool     `json:"show,omitempty"`
	Type          string    `json:"type,omitempty"`
	Range         []float64 `json:"range,omitempty"`
	ShowGrid      *bool     `json:"show_grid,omitempty"`
	GridColor     *Rgb      `json:"grid_color,omitempty"`
	ShowLine      *bool     `json:"show_line,omitempty"`
	LineColor     *Rgb      `json:"line_color,omitempty"`
	ZeroLine      *bool     `json:"zero_line,omitempty"`
	ZeroLineColor *Rgb      `json:"zero_line_color,omitempty"`
	TickFormat    string    `json:"tick_format,omitempty"`
	TickValues    []float64 `json:"tick_values,omitempty"`
	TickLabels    []string  `json:"tick_labels,omitempty"`
	TickDirection string    `json:"tick_direction,omitempty"`
	TickAngle     *float64  `json:"tick_angle,omitempty"`
	Side          string    `json:"side,omitempty"`
}

// Validate checks enumerations and paired fields.
func (a *Axis) Validate(option string) error {
	if a == nil {
		return nil
	}
	if a.Type != "" && !ValidAxisTypes[a.Type] {
		return errors.Inconsistent(option, "unknown axis type %q", a.Type)
	}
	if len(a.Range) != 0 && len(a.Range) != 2 {
		return errors.Inconsistent(option, "axis range needs exactly 2 values, got %d", len(a.Range))
	}
	if len(a.TickLabels) > 0 && len(a.TickLabels) != len(a.TickValues) {
		return errors.Inconsistent(option, "%d tick labels for %d tick values", len(a.TickLabels), len(a.TickValues))
	}
	switch a.TickDirection {
	case "", "outside", "inside":
	default:
		return errors.Inconsistent(option, "tick direction must be outside or inside, got %q", a.TickDirection)
	}
	switch a.Side {
	case "", "top", "bottom", "left", "right":
	default:
		return errors.Inconsistent(option, "unknown axis side %q", a.Side)
	}
	return nil
}

// =============================================================================
// Legend
// =============================================================================

// Legend places and styles the legend. Setting any legend on a plot marks
// it as explicitly configured for grid composition.
type Legend struct {
	X               *float64 `json:"x,omitempty"`
	Y               *float64 `json:"y,omitempty"`
	XAnchor         string   `json:"x_anchor,omitempty"`
	YAnchor         string   `json:"y_anchor,omitempty"`
	Orientation     string   `json:"orientation,omitempty"`
	BackgroundColor *Rgb     `json:"background_color,omitempty"`
	BorderColor     *Rgb     `json:"border_color,omitempty"`
	BorderWidth     *float64 `json:"border_width,omitempty"`
	Font            string   `json:"font,omitempty"`
	FontSize        int      `json:"font_size,omitempty"`
}

// Validate checks anchors and orientation.
func (l *Legend) Validate() error {
	if l == nil {
		return nil
	}
	switch l.XAnchor {
	case "", "auto", "left", "center", "right":
	default:
		return errors.Inconsistent("legend.x_anchor", "unknown x anchor %q", l.XAnchor)
	}
	switch l.YAnchor {
	case "", "auto", "top", "middle", "bottom":
	default:
		return errors.Inconsistent("legend.y_anchor", "unknown y anchor %q", l.YAnchor)
	}
	if err := Orientation(l.Orientation).Validate(); err != nil {
		return err
	}
	return nil
}

// =============================================================================
// ColorBar
// =============================================================================

// ColorBar sizes and places the scale of a color-mapped trace. Length and
// Width are fractions of the owning cell's height and width; X and Y place
// the bar within the cell. Unset fields are scaled to the cell.
type ColorBar struct {
	Length     *float64  `json:"length,omitempty"`
	Width      *float64  `json:"width,omitempty"`
	X          *float64  `json:"x,omitempty"`
	Y          *float64  `json:"y,omitempty"`
	Title      *Text     `json:"title,omitempty"`
	TickFormat string    `json:"tick_format,omitempty"`
	TickValues []float64 `json:"tick_values,omitempty"`
	TickLabels []string  `json:"tick_labels,omitempty"`
}

// Validate checks that all geometry lies in [0, 1].
func (c *ColorBar) Validate() error {
	if c == nil {
		return nil
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"colorbar.length", c.Length},
		{"colorbar.width", c.Width},
		{"colorbar.x", c.X},
		{"colorbar.y", c.Y},
	} {
		if err := errors.ValidateFraction(f.name, f.v); err != nil {
			return err
		}
	}
	if len(c.TickLabels) > 0 && len(c.TickLabels) != len(c.TickValues) {
		return errors.Inconsistent("colorbar", "%d tick labels for %d tick values", len(c.TickLabels), len(c.TickValues))
	}
	return c.Title.Validate("colorbar.title")
}

// =============================================================================
// Dimensions
// =============================================================================

// Dimensions is the figure size in pixels. Zero means backend default.
type Dimensions struct {
	Width    int   `json:"width,omitempty"`
	Height   int   `json:"height,omitempty"`
	AutoSize *bool `json:"auto_size,omitempty"`
}

// Validate rejects negative sizes.
func (d *Dimensions) Validate() error {
	if d == nil {
		return nil
	}
	if d.Width < 0 || d.Height < 0 {
		return errors.Inconsistent("dimensions", "dimensions must be non-negative, got %dx%d", d.Width, d.Height)
	}
	return nil
}

// =============================================================================
// Facets
// =============================================================================

// FacetScales selects which axes facets share.
type FacetScales string

const (
	ScalesFixed FacetScales = "fixed"
	ScalesFree  FacetScales = "free"
	ScalesFreeX FacetScales = "free_x"
	ScalesFreeY FacetScales = "free_y"
)

// Default facet spacing, as fractions of the paper.
const (
	DefaultFacetXGap = 0.08
	DefaultFacetYGap = 0.12
)

// FacetConfig arranges the sub-plots produced by faceting. With neither
// NCol nor NRow set, facets are laid out in one row.
type FacetConfig struct {
	NCol       int         `json:"ncol,omitempty"`
	NRow       int         `json:"nrow,omitempty"`
	Scales     FacetScales `json:"scales,omitempty"`
	XGap       *float64    `json:"x_gap,omitempty"`
	YGap       *float64    `json:"y_gap,omitempty"`
	TitleStyle *Text       `json:"title_style,omitempty"`
	Order      []string    `json:"order,omitempty"`
}

// Validate checks the arrangement and scales.
func (f *FacetConfig) Validate() error {
	if f == nil {
		return nil
	}
	if f.NCol < 0 || f.NRow < 0 {
		return errors.Inconsistent("facet", "facet ncol/nrow must be non-negative")
	}
	switch f.Scales {
	case "", ScalesFixed, ScalesFree, ScalesFreeX, ScalesFreeY:
	default:
		return errors.Inconsistent("facet.scales", "unknown facet scales %q", string(f.Scales))
	}
	for _, g := range []struct {
		name string
		v    *float64
	}{{"facet.x_gap", f.XGap}, {"facet.y_gap", f.YGap}} {
		if g.v != nil && (*g.v < 0 || *g.v >= 1) {
			return errors.Inconsistent(g.name, "%s must be within [0, 1), got %g", g.name, *g.v)
		}
	}
	return f.TitleStyle.Validate("facet.title_style")
}

// Shape returns the grid rows and columns for n facets.
func (f *FacetConfig) Shape(n int) (rows, cols int) {
	ncol, nrow := 0, 0
	if f != nil {
		ncol, nrow = f.NCol, f.NRow
	}
	switch {
	case ncol > 0 && nrow > 0:
		return nrow, ncol
	case ncol > 0:
		return (n + ncol - 1) / ncol, ncol
	case nrow > 0:
		return nrow, (n + nrow - 1) / nrow
	}
	return 1, n
}
