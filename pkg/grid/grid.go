// Package grid composes built figures into one figure laid out on a grid
// of cells.
//
// A [Composer] moves through a fixed sequence of states. It starts empty
// with a declared shape. Figures are then placed into the next free cell
// ([Composer.Add]) or into an explicit, possibly spanning cell
// ([Composer.Place]). [Composer.Compose] resolves every cell's domain,
// rewrites subplot references per chart family, places colorbars inside
// their cells and merges the legend. After Compose the composer is
// terminal and rejects further placements.
//
// # Geometry
//
// With h and v the horizontal and vertical gaps, every column is
// (1-h*(cols-1))/cols wide and every row (1-v*(rows-1))/rows tall. A
// spanning cell covers the gaps between the rows and columns it spans.
// Row 0 is at the top of the figure.
//
// Placement errors leave the composer unchanged and Compose either returns
// a complete figure or an error; a partially composed figure is never
// observable.
package grid

import (
	"fmt"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/style"
)

// Default spacing between cells, as fractions of the figure.
const (
	DefaultHGap = 0.1
	DefaultVGap = 0.1
)

// Spec declares the grid shape and the figure-wide options.
type Spec struct {
	Rows       int               `json:"rows"`
	Cols       int               `json:"cols"`
	HGap       *float64          `json:"h_gap,omitempty"`
	VGap       *float64          `json:"v_gap,omitempty"`
	Title      *style.Text       `json:"title,omitempty"`
	Legend     *style.Legend     `json:"legend,omitempty"`
	Dimensions *style.Dimensions `json:"dimensions,omitempty"`
}

// Cell is a grid position. A zero span means a span of one.
type Cell struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"row_span,omitempty"`
	ColSpan int `json:"col_span,omitempty"`
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", c.Row, c.Col, c.RowSpan, c.ColSpan)
}

func (c Cell) normalize() (Cell, error) {
	if c.RowSpan < 0 || c.ColSpan < 0 {
		return c, errors.New(errors.ErrCodeInvalidGrid, "cell %v has a negative span", c)
	}
	if c.RowSpan == 0 {
		c.RowSpan = 1
	}
	if c.ColSpan == 0 {
		c.ColSpan = 1
	}
	return c, nil
}

// Rect is a fractional rectangle of the figure.
type Rect struct {
	X0, X1, Y0, Y1 float64
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Overlaps reports whether r and o share interior area.
func (r Rect) Overlaps(o Rect) bool {
	const eps = 1e-9
	return r.X0 < o.X1-eps && o.X0 < r.X1-eps && r.Y0 < o.Y1-eps && o.Y0 < r.Y1-eps
}

// Contains reports whether o lies within r.
func (r Rect) Contains(o Rect) bool {
	const eps = 1e-9
	return o.X0 >= r.X0-eps && o.X1 <= r.X1+eps && o.Y0 >= r.Y0-eps && o.Y1 <= r.Y1+eps
}

// Placement pairs a figure with the cell it occupies.
type Placement struct {
	Figure *figure.Figure
	Cell   Cell
}

// Composer builds a grid figure. It is not safe for concurrent use.
type Composer struct {
	spec   Spec
	hgap   float64
	vgap   float64
	placed []Placement
	owner  map[[2]int]int
	result *figure.Figure
}

// New validates spec and returns an empty composer.
func New(spec Spec) (*Composer, error) {
	if spec.Rows <= 0 || spec.Cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid needs at least one row and column, got %dx%d", spec.Rows, spec.Cols)
	}
	c := &Composer{spec: spec, hgap: DefaultHGap, vgap: DefaultVGap, owner: make(map[[2]int]int)}
	if spec.HGap != nil {
		c.hgap = *spec.HGap
	}
	if spec.VGap != nil {
		c.vgap = *spec.VGap
	}
	if c.hgap < 0 || c.hgap*float64(spec.Cols-1) >= 1 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "horizontal gap %g leaves no room for %d columns", c.hgap, spec.Cols)
	}
	if c.vgap < 0 || c.vgap*float64(spec.Rows-1) >= 1 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "vertical gap %g leaves no room for %d rows", c.vgap, spec.Rows)
	}
	if err := spec.Legend.Validate(); err != nil {
		return nil, err
	}
	if err := spec.Dimensions.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Regular composes figs into the cells of spec in row-major order.
func Regular(spec Spec, figs ...*figure.Figure) (*figure.Figure, error) {
	c, err := New(spec)
	if err != nil {
		return nil, err
	}
	for _, f := range figs {
		if err := c.Add(f); err != nil {
			return nil, err
		}
	}
	return c.Compose()
}

// Irregular composes figures into explicit, possibly spanning cells.
func Irregular(spec Spec, placements ...Placement) (*figure.Figure, error) {
	c, err := New(spec)
	if err != nil {
		return nil, err
	}
	for _, p := range placements {
		if err := c.Place(p.Figure, p.Cell); err != nil {
			return nil, err
		}
	}
	return c.Compose()
}

// Add places fig into the first free cell in row-major order.
func (c *Composer) Add(fig *figure.Figure) error {
	for r := 0; r < c.spec.Rows; r++ {
		for col := 0; col < c.spec.Cols; col++ {
			if _, taken := c.owner[[2]int{r, col}]; !taken {
				return c.Place(fig, Cell{Row: r, Col: col})
			}
		}
	}
	return errors.New(errors.ErrCodeInvalidGrid, "grid %dx%d is full", c.spec.Rows, c.spec.Cols)
}

// Place puts fig into cell. It fails with CELL_OVERLAP when any covered
// position is already occupied and leaves the composer unchanged on error.
func (c *Composer) Place(fig *figure.Figure, cell Cell) error {
	if c.result != nil {
		return errors.New(errors.ErrCodeInvalidGrid, "grid is already composed")
	}
	if fig == nil {
		return errors.New(errors.ErrCodeInvalidInput, "cannot place a nil figure")
	}
	cell, err := cell.normalize()
	if err != nil {
		return err
	}
	if cell.Row < 0 || cell.Col < 0 || cell.Row+cell.RowSpan > c.spec.Rows || cell.Col+cell.ColSpan > c.spec.Cols {
		return errors.New(errors.ErrCodeInvalidGrid, "cell %v is outside the %dx%d grid", cell, c.spec.Rows, c.spec.Cols)
	}
	for r := cell.Row; r < cell.Row+cell.RowSpan; r++ {
		for col := cell.Col; col < cell.Col+cell.ColSpan; col++ {
			if i, taken := c.owner[[2]int{r, col}]; taken {
				return errors.New(errors.ErrCodeCellOverlap, "cell %v overlaps cell %v at (%d,%d)", cell, c.placed[i].Cell, r, col)
			}
		}
	}

	idx := len(c.placed)
	for r := cell.Row; r < cell.Row+cell.RowSpan; r++ {
		for col := cell.Col; col < cell.Col+cell.ColSpan; col++ {
			c.owner[[2]int{r, col}] = idx
		}
	}
	c.placed = append(c.placed, Placement{Figure: fig, Cell: cell})
	return nil
}

// Len returns the number of placed figures.
func (c *Composer) Len() int { return len(c.placed) }

// Rect returns the domain of cell. A negative span counts as 1.
func (c *Composer) Rect(cell Cell) Rect {
	cell.RowSpan = max(cell.RowSpan, 1)
	cell.ColSpan = max(cell.ColSpan, 1)
	colW := (1 - c.hgap*float64(c.spec.Cols-1)) / float64(c.spec.Cols)
	rowH := (1 - c.vgap*float64(c.spec.Rows-1)) / float64(c.spec.Rows)

	x0 := float64(cell.Col) * (colW + c.hgap)
	x1 := x0 + colW*float64(cell.ColSpan) + c.hgap*float64(cell.ColSpan-1)
	top := float64(cell.Row) * (rowH + c.vgap)
	bottom := top + rowH*float64(cell.RowSpan) + c.vgap*float64(cell.RowSpan-1)
	return Rect{X0: x0, X1: x1, Y0: 1 - bottom, Y1: 1 - top}
}

// Compose resolves the grid into one figure. Placed figures are not
// modified. Calling Compose again returns a copy of the same figure.
func (c *Composer) Compose() (*figure.Figure, error) {
	if c.result != nil {
		return c.result.Clone()
	}
	if len(c.placed) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid has no plots")
	}

	out := figure.New()
	e := newEmbedder(out)
	var explicit *figure.Legend
	for _, p := range c.placed {
		src, err := p.Figure.Clone()
		if err != nil {
			return nil, err
		}
		if explicit == nil && src.Layout.Legend != nil {
			explicit = src.Layout.Legend
		}
		e.embed(src, c.Rect(p.Cell))
	}

	l := out.Layout
	l.Title = figure.TitleOf(c.spec.Title)
	l.ApplyDimensions(c.spec.Dimensions)
	if c.spec.Legend != nil {
		explicit = figure.LegendOf(c.spec.Legend, nil)
	}
	mergeLegend(out, explicit)
	l.BarMode, l.BoxMode = modes(c.placed)

	c.result = out
	return out.Clone()
}

// modes derives the bar and box modes of the composed layout. A mode set
// on any placed figure wins over the derived one.
func modes(placed []Placement) (barMode, boxMode string) {
	var hist, bar, groupedBox bool
	for _, p := range placed {
		if barMode == "" {
			barMode = p.Figure.Layout.BarMode
		}
		if boxMode == "" {
			boxMode = p.Figure.Layout.BoxMode
		}
		boxes := 0
		for _, t := range p.Figure.Data {
			switch t.Type {
			case "histogram":
				hist = true
			case "bar":
				bar = true
			case "box":
				boxes++
			}
		}
		if boxes > 1 {
			groupedBox = true
		}
	}
	if barMode == "" {
		switch {
		case hist:
			barMode = "overlay"
		case bar:
			barMode = "group"
		}
	}
	if boxMode == "" && groupedBox {
		boxMode = "group"
	}
	return barMode, boxMode
}
