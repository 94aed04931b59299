package figure

import "strconv"

// Family is the addressing scheme a trace lives in within a layout.
type Family int

const (
	FamilyCartesian Family = iota // x/y axes
	FamilyScene                   // 3D scene
	FamilyPolar                   // polar subplot
	FamilyGeo                     // geographic subplot
	FamilyMapbox                  // tile map subplot
	FamilyDomain                  // domain-positioned (pie, sankey, table)
)

func (f Family) String() string {
	switch f {
	case FamilyScene:
		return "scene"
	case FamilyPolar:
		return "polar"
	case FamilyGeo:
		return "geo"
	case FamilyMapbox:
		return "mapbox"
	case FamilyDomain:
		return "domain"
	}
	return "cartesian"
}

// Padding is the fraction of a cell's height kept free above and below
// a subplot of this family, so titles and decorations stay in the cell.
func (f Family) Padding() float64 {
	switch f {
	case FamilyPolar:
		return 0.18
	case FamilyScene:
		return 0.12
	case FamilyDomain:
		return 0.08
	case FamilyGeo, FamilyMapbox:
		return 0.06
	}
	return 0
}

// FamilyOf returns the family of a backend trace type.
func FamilyOf(traceType string) Family {
	switch traceType {
	case "scatter3d", "mesh3d", "surface", "cone", "volume", "isosurface":
		return FamilyScene
	case "scatterpolar", "scatterpolargl", "barpolar":
		return FamilyPolar
	case "pie", "sankey", "table", "sunburst", "treemap", "funnelarea", "indicator":
		return FamilyDomain
	case "scattermapbox", "densitymapbox", "choroplethmapbox":
		return FamilyMapbox
	case "scattergeo", "choropleth":
		return FamilyGeo
	}
	return FamilyCartesian
}

// Ref returns the subplot reference for the n-th (1-based) subplot of a
// prefix: "x", "x2", "scene", "scene3".
func Ref(prefix string, n int) string {
	if n <= 1 {
		return prefix
	}
	return prefix + strconv.Itoa(n)
}
