package style

import (
	"encoding/json"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/tabplot/pkg/errors"
)

// Palette is a continuous colorscale. It is either one of the backend's
// named scales or an ordered list of custom colors spread evenly over [0, 1].
type Palette struct {
	Name    string `json:"name,omitempty"`
	Colors  []Rgb  `json:"colors,omitempty"`
	Reverse bool   `json:"reverse,omitempty"`
}

// UnmarshalJSON accepts a bare scale name as well as the object form.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = Palette{Name: name}
		return nil
	}
	type plain Palette
	return json.Unmarshal(data, (*plain)(p))
}

// namedPalettes holds anchor colors for the backend's named scales, used to
// sample discrete colors from a named scale.
var namedPalettes = map[string][]string{
	"Viridis":  {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"Cividis":  {"#00204c", "#213d6b", "#555b6c", "#7b7a77", "#a59c74", "#d3c064", "#ffe945"},
	"Plasma":   {"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"},
	"Greys":    {"#000000", "#ffffff"},
	"Greens":   {"#00441b", "#238b45", "#66c2a4", "#ccece6", "#f7fcfd"},
	"Blues":    {"#000033", "#000099", "#0000ff", "#6699ff", "#c6dbef"},
	"Reds":     {"#dcdcdc", "#f5a09a", "#ea4e3a", "#b2000c"},
	"RdBu":     {"#050aac", "#6a89f7", "#bebebe", "#dcaa84", "#e6915a", "#b20a1c"},
	"YlOrRd":   {"#800026", "#bd0026", "#e31a1c", "#fc4e2a", "#fd8d3c", "#feb24c", "#fed976", "#ffeda0", "#ffffcc"},
	"YlGnBu":   {"#081d58", "#253494", "#225ea8", "#1d91c0", "#41b6c4", "#7fcdbb", "#c7e9b4", "#edf8d9", "#ffffd9"},
	"Jet":      {"#000083", "#003caa", "#05ffff", "#ffff00", "#fa0000", "#800000"},
	"Hot":      {"#000000", "#e60000", "#ffd200", "#ffffff"},
	"Electric": {"#000000", "#1e0064", "#780064", "#a05a00", "#e6c800", "#fffadc"},
	"Portland": {"#0c3383", "#0a88ba", "#f2d338", "#f28f38", "#d91e1e"},
	"Picnic":   {"#0000ff", "#3399ff", "#66ccff", "#99ccff", "#ccccff", "#ffffff", "#ffccff", "#ff99ff", "#ff66cc", "#ff6666", "#ff0000"},
	"Rainbow":  {"#96005a", "#0000c8", "#0019ff", "#0098ff", "#2cff96", "#97ff00", "#ffea00", "#ff6f00", "#ff0000"},
	"Earth":    {"#000082", "#00b4b4", "#28d228", "#e6e632", "#784614", "#ffffff"},
	"Bluered":  {"#0000ff", "#ff0000"},
}

// backendScales are the names the rendering backend resolves itself.
var backendScales = map[string]bool{
	"Viridis": true, "Cividis": true, "Greys": true, "Greens": true, "Blues": true,
	"Reds": true, "RdBu": true, "YlOrRd": true, "YlGnBu": true, "Jet": true, "Hot": true,
	"Electric": true, "Portland": true, "Picnic": true, "Rainbow": true, "Earth": true,
	"Bluered": true,
}

// PaletteNames returns the supported scale names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(namedPalettes))
	for n := range namedPalettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the palette names a known scale or has custom colors.
func (p *Palette) Validate() error {
	if p == nil {
		return nil
	}
	if p.Name != "" && len(p.Colors) > 0 {
		return errors.Inconsistent("palette", "palette name and colors are mutually exclusive")
	}
	if p.Name != "" {
		if _, ok := namedPalettes[p.Name]; !ok {
			return errors.Inconsistent("palette", "unknown palette %q", p.Name)
		}
		return nil
	}
	if len(p.Colors) == 0 {
		return errors.Inconsistent("palette", "palette needs a name or at least one color")
	}
	return nil
}

// Colorscale returns the backend value for the palette: the scale name, or
// a list of [position, color] stops for custom colors.
func (p *Palette) Colorscale() any {
	if p == nil {
		return nil
	}
	if p.Name != "" && backendScales[p.Name] {
		return p.Name
	}
	colors := p.Colors
	if p.Name != "" {
		colors = make([]Rgb, 0, len(namedPalettes[p.Name]))
		for _, c := range p.anchors() {
			colors = append(colors, fromColorful(c))
		}
	}
	if len(colors) == 1 {
		colors = []Rgb{colors[0], colors[0]}
	}
	stops := make([][2]any, len(colors))
	for i, c := range colors {
		stops[i] = [2]any{float64(i) / float64(len(colors)-1), c.String()}
	}
	return stops
}

// Sample returns n colors spread evenly along the palette, blended in
// CIE-L*a*b* space.
func (p *Palette) Sample(n int) []Rgb {
	anchors := p.anchors()
	if n <= 0 || len(anchors) == 0 {
		return nil
	}
	if p.Reverse {
		rev := make([]colorful.Color, len(anchors))
		for i, c := range anchors {
			rev[len(anchors)-1-i] = c
		}
		anchors = rev
	}
	out := make([]Rgb, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = fromColorful(blend(anchors, t))
	}
	return out
}

func (p *Palette) anchors() []colorful.Color {
	if p.Name != "" {
		hexes := namedPalettes[p.Name]
		out := make([]colorful.Color, 0, len(hexes))
		for _, h := range hexes {
			if c, err := colorful.Hex(h); err == nil {
				out = append(out, c)
			}
		}
		return out
	}
	out := make([]colorful.Color, len(p.Colors))
	for i, c := range p.Colors {
		out[i] = c.colorful()
	}
	return out
}

func blend(anchors []colorful.Color, t float64) colorful.Color {
	if len(anchors) == 1 {
		return anchors[0]
	}
	pos := t * float64(len(anchors)-1)
	i := int(pos)
	if i >= len(anchors)-1 {
		return anchors[len(anchors)-1]
	}
	return anchors[i].BlendLab(anchors[i+1], pos-float64(i))
}
