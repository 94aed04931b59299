package style

import (
	"strings"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// Shape is a marker glyph.
type Shape string

const (
	ShapeCircle        Shape = "circle"
	ShapeSquare        Shape = "square"
	ShapeDiamond       Shape = "diamond"
	ShapeCross         Shape = "cross"
	ShapeX             Shape = "x"
	ShapeTriangleUp    Shape = "triangle-up"
	ShapeTriangleDown  Shape = "triangle-down"
	ShapeTriangleLeft  Shape = "triangle-left"
	ShapeTriangleRight Shape = "triangle-right"
	ShapePentagon      Shape = "pentagon"
	ShapeHexagon       Shape = "hexagon"
	ShapeOctagon       Shape = "octagon"
	ShapeStar          Shape = "star"
	ShapeHexagram      Shape = "hexagram"
	ShapeHourglass     Shape = "hourglass"
	ShapeBowtie        Shape = "bowtie"
	ShapeAsterisk      Shape = "asterisk"
	ShapeHash          Shape = "hash"
)

// ValidShapes is the set of base glyphs; each also accepts the "-open",
// "-dot" and "-open-dot" variants.
var ValidShapes = map[Shape]bool{
	ShapeCircle: true, ShapeSquare: true, ShapeDiamond: true, ShapeCross: true,
	ShapeX: true, ShapeTriangleUp: true, ShapeTriangleDown: true, ShapeTriangleLeft: true,
	ShapeTriangleRight: true, ShapePentagon: true, ShapeHexagon: true, ShapeOctagon: true,
	ShapeStar: true, ShapeHexagram: true, ShapeHourglass: true, ShapeBowtie: true,
	ShapeAsterisk: true, ShapeHash: true,
}

// Validate reports whether s is a known glyph or variant.
func (s Shape) Validate() error {
	base := string(s)
	for _, suffix := range []string{"-open-dot", "-open", "-dot"} {
		base = strings.TrimSuffix(base, suffix)
	}
	if !ValidShapes[Shape(base)] {
		return errors.Inconsistent("shape", "unknown marker shape %q", string(s))
	}
	return nil
}

// LineStyle is a dash pattern.
type LineStyle string

const (
	LineSolid       LineStyle = "solid"
	LineDot         LineStyle = "dot"
	LineDash        LineStyle = "dash"
	LineLongDash    LineStyle = "longdash"
	LineDashDot     LineStyle = "dashdot"
	LineLongDashDot LineStyle = "longdashdot"
)

// ValidLineStyles is the set of supported dash patterns.
var ValidLineStyles = map[LineStyle]bool{
	LineSolid: true, LineDot: true, LineDash: true,
	LineLongDash: true, LineDashDot: true, LineLongDashDot: true,
}

// Validate reports whether l is a known dash pattern.
func (l LineStyle) Validate() error {
	if !ValidLineStyles[l] {
		return errors.Inconsistent("line_style", "unknown line style %q", string(l))
	}
	return nil
}

// Mode selects how points are drawn.
type Mode string

const (
	ModeLines        Mode = "lines"
	ModeMarkers      Mode = "markers"
	ModeText         Mode = "text"
	ModeLinesMarkers Mode = "lines+markers"
	ModeMarkersText  Mode = "markers+text"
	ModeLinesText    Mode = "lines+text"
	ModeAll          Mode = "lines+markers+text"
)

// ValidModes is the set of supported drawing modes.
var ValidModes = map[Mode]bool{
	ModeLines: true, ModeMarkers: true, ModeText: true, ModeLinesMarkers: true,
	ModeMarkersText: true, ModeLinesText: true, ModeAll: true,
}

// Validate reports whether m is a known mode.
func (m Mode) Validate() error {
	if !ValidModes[m] {
		return errors.Inconsistent("mode", "unknown mode %q", string(m))
	}
	return nil
}

// Fill selects the area filled under or around a series.
type Fill string

const (
	FillNone    Fill = "none"
	FillToZeroY Fill = "tozeroy"
	FillToZeroX Fill = "tozerox"
	FillToNextY Fill = "tonexty"
	FillToNextX Fill = "tonextx"
	FillToSelf  Fill = "toself"
	FillToNext  Fill = "tonext"
)

// ValidFills is the set of supported fill modes.
var ValidFills = map[Fill]bool{
	FillNone: true, FillToZeroY: true, FillToZeroX: true, FillToNextY: true,
	FillToNextX: true, FillToSelf: true, FillToNext: true,
}

// Validate reports whether f is a known fill mode.
func (f Fill) Validate() error {
	if !ValidFills[f] {
		return errors.Inconsistent("fill", "unknown fill %q", string(f))
	}
	return nil
}

// Orientation of bars and boxes.
type Orientation string

const (
	Vertical   Orientation = "v"
	Horizontal Orientation = "h"
)

// Validate reports whether o is "v" or "h" (or unset).
func (o Orientation) Validate() error {
	if o != "" && o != Vertical && o != Horizontal {
		return errors.Inconsistent("orientation", "orientation must be %q or %q, got %q", Vertical, Horizontal, string(o))
	}
	return nil
}

// Lighting configures the shading of 3D surfaces and meshes.
type Lighting struct {
	Ambient   *float64 `json:"ambient,omitempty"`
	Diffuse   *float64 `json:"diffuse,omitempty"`
	Fresnel   *float64 `json:"fresnel,omitempty"`
	Roughness *float64 `json:"roughness,omitempty"`
	Specular  *float64 `json:"specular,omitempty"`
}

// Validate checks each coefficient against the range the backend accepts.
func (l *Lighting) Validate() error {
	if l == nil {
		return nil
	}
	checks := []struct {
		name string
		v    *float64
		max  float64
	}{
		{"lighting.ambient", l.Ambient, 1},
		{"lighting.diffuse", l.Diffuse, 1},
		{"lighting.fresnel", l.Fresnel, 5},
		{"lighting.roughness", l.Roughness, 1},
		{"lighting.specular", l.Specular, 2},
	}
	for _, c := range checks {
		if c.v != nil && (*c.v < 0 || *c.v > c.max) {
			return errors.Inconsistent(c.name, "%s must be within [0, %g], got %g", c.name, c.max, *c.v)
		}
	}
	return nil
}
