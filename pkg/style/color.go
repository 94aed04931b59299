// Package style defines the value objects that describe visual intent:
// colors, palettes, marker shapes, line styles, text, axes, legends,
// colorbars, dimensions and facet arrangement.
//
// All fields are optional; a nil pointer or empty value means "use the
// default". Values are plain data and carry no behavior beyond Validate.
package style

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// Rgb is an opaque 8-bit color.
type Rgb struct {
	R, G, B uint8
}

// String renders the color in CSS rgb() notation.
func (c Rgb) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex renders the color as #rrggbb.
func (c Rgb) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalJSON encodes the color as its rgb() string.
func (c Rgb) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts "#rrggbb", "rgb(r, g, b)", a CSS color name or [r, g, b].
func (c *Rgb) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseColor(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}
	var arr []uint8
	if err := json.Unmarshal(data, &arr); err != nil || len(arr) != 3 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid color %s", string(data))
	}
	*c = Rgb{arr[0], arr[1], arr[2]}
	return nil
}

func fromColorful(c colorful.Color) Rgb {
	r, g, b := c.Clamped().RGB255()
	return Rgb{r, g, b}
}

func (c Rgb) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// namedColors covers the CSS names most often used in plot options.
var namedColors = map[string]string{
	"black":     "#000000",
	"white":     "#ffffff",
	"red":       "#ff0000",
	"green":     "#008000",
	"blue":      "#0000ff",
	"yellow":    "#ffff00",
	"orange":    "#ffa500",
	"purple":    "#800080",
	"gray":      "#808080",
	"grey":      "#808080",
	"lightgray": "#d3d3d3",
	"darkgray":  "#a9a9a9",
	"navy":      "#000080",
	"teal":      "#008080",
	"olive":     "#808000",
	"maroon":    "#800000",
	"pink":      "#ffc0cb",
	"brown":     "#a52a2a",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"gold":      "#ffd700",
	"steelblue": "#4682b4",
}

// ParseColor parses "#rgb", "#rrggbb", "rgb(r, g, b)" or a CSS color name.
func ParseColor(s string) (Rgb, error) {
	s = strings.TrimSpace(s)
	if hex, ok := namedColors[strings.ToLower(s)]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		var r, g, b int
		body := strings.ReplaceAll(s[4:len(s)-1], " ", "")
		if _, err := fmt.Sscanf(body, "%d,%d,%d", &r, &g, &b); err != nil || !byteRange(r, g, b) {
			return Rgb{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q", s)
		}
		return Rgb{uint8(r), uint8(g), uint8(b)}, nil
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Rgb{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return fromColorful(c), nil
}

func byteRange(vs ...int) bool {
	for _, v := range vs {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

// DefaultColorway is the ten-color qualitative palette the rendering
// backend uses when no color is given.
var DefaultColorway = []Rgb{
	{31, 119, 180},
	{255, 127, 14},
	{44, 160, 44},
	{214, 39, 40},
	{148, 103, 189},
	{140, 86, 75},
	{227, 119, 194},
	{127, 127, 127},
	{188, 189, 34},
	{23, 190, 207},
}

// Cycle returns colors[i % len(colors)], or nil when colors is empty.
func Cycle(colors []Rgb, i int) *Rgb {
	if len(colors) == 0 {
		return nil
	}
	c := colors[i%len(colors)]
	return &c
}
