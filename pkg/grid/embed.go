package grid

import (
	"sort"
	"strings"

	"github.com/matzehuels/tabplot/pkg/figure"
)

// addresser assigns the traces of one chart family to subplots inside a
// cell. Each family addresses its subplots differently within the same
// layout: cartesian traces reference numbered axes, 3D, polar, geo and
// mapbox traces reference numbered layout objects, and domain traces carry
// their rectangle themselves.
type addresser interface {
	assign(e *embedder, src *figure.Figure, traces []*figure.Trace, r Rect)
}

var addressers = map[figure.Family]addresser{
	figure.FamilyCartesian: cartesian{},
	figure.FamilyScene:     scene{},
	figure.FamilyPolar:     polar{},
	figure.FamilyGeo:       geo{},
	figure.FamilyMapbox:    mapbox{},
	figure.FamilyDomain:    domain{},
}

// embedder copies figures into the composed figure, allocating fresh
// subplot references per family.
type embedder struct {
	out    *figure.Figure
	counts map[string]int
	axes   map[string]string // source axis ref to composed ref, per figure
}

func newEmbedder(out *figure.Figure) *embedder {
	return &embedder{out: out, counts: make(map[string]int)}
}

func (e *embedder) alloc(prefix string) string {
	e.counts[prefix]++
	return figure.Ref(prefix, e.counts[prefix])
}

// embed copies src into cell r. src must be a private copy.
func (e *embedder) embed(src *figure.Figure, r Rect) {
	e.axes = make(map[string]string)
	content := placeColorBars(src.Data, r)

	byFamily := make(map[figure.Family][]*figure.Trace)
	for _, t := range src.Data {
		byFamily[t.Family()] = append(byFamily[t.Family()], t)
	}
	for _, fam := range src.Families() {
		padded := pad(content, fam.Padding())
		addressers[fam].assign(e, src, byFamily[fam], padded)
	}

	for _, a := range src.Layout.Annotations {
		e.out.Layout.Annotations = append(e.out.Layout.Annotations, e.annotation(a, content))
	}
	if t := src.Layout.Title; t != nil && t.Text != "" {
		e.out.Layout.Annotations = append(e.out.Layout.Annotations, cellTitle(t, content, r))
	}
	e.out.Add(src.Data...)
}

// pad shrinks r vertically by ratio of its height, split evenly between
// top and bottom.
func pad(r Rect, ratio float64) Rect {
	p := r.Height() * ratio / 2
	r.Y0 += p
	r.Y1 -= p
	return r
}

// scale maps a [0, 1] interval of the source figure into [lo, hi].
func scale(d [2]float64, lo, hi float64) [2]float64 {
	w := hi - lo
	return [2]float64{lo + d[0]*w, lo + d[1]*w}
}

func scaleDomain(d *figure.Domain, r Rect) *figure.Domain {
	src := figure.Domain{X: [2]float64{0, 1}, Y: [2]float64{0, 1}}
	if d != nil {
		src = *d
	}
	return &figure.Domain{X: scale(src.X, r.X0, r.X1), Y: scale(src.Y, r.Y0, r.Y1)}
}

func orDefault(ref, def string) string {
	if ref == "" {
		return def
	}
	return ref
}

// axisKey returns the layout key of an axis reference: "x2" -> "xaxis2".
func axisKey(ref string) string {
	return ref[:1] + "axis" + ref[1:]
}

// =============================================================================
// Cartesian
// =============================================================================

type cartesian struct{}

func (cartesian) assign(e *embedder, src *figure.Figure, traces []*figure.Trace, r Rect) {
	pairs := make(map[string]string)
	for _, t := range traces {
		x, y := orDefault(t.XAxis, "x"), orDefault(t.YAxis, "y")
		if _, ok := e.axes[x]; !ok {
			e.axes[x] = e.alloc("x")
			pairs[x] = y
		}
		if _, ok := e.axes[y]; !ok {
			e.axes[y] = e.alloc("y")
			pairs[y] = x
		}
		t.XAxis, t.YAxis = e.axes[x], e.axes[y]
	}

	for _, old := range sortedKeys(pairs) {
		axis := src.Layout.Axes[axisKey(old)]
		if axis == nil {
			axis = &figure.Axis{}
		}
		d := [2]float64{0, 1}
		if len(axis.Domain) == 2 {
			d = [2]float64{axis.Domain[0], axis.Domain[1]}
		}
		if old[0] == 'x' {
			d = scale(d, r.X0, r.X1)
		} else {
			d = scale(d, r.Y0, r.Y1)
		}
		axis.Domain = d[:]
		axis.Anchor = e.remap(orDefault(axis.Anchor, pairs[old]))
		if axis.Anchor == "" {
			axis.Anchor = e.axes[pairs[old]]
		}
		axis.Matches = e.remap(axis.Matches)
		axis.ScaleAnchor = e.remap(axis.ScaleAnchor)
		e.out.Layout.Axes = putAxis(e.out.Layout.Axes, axisKey(e.axes[old]), axis)
	}
}

// remap translates a source axis reference; references that are not part
// of the embedded figure are dropped.
func (e *embedder) remap(ref string) string {
	if ref == "" || ref == "free" {
		return ref
	}
	return e.axes[ref]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func putAxis(m map[string]*figure.Axis, key string, a *figure.Axis) map[string]*figure.Axis {
	if m == nil {
		m = make(map[string]*figure.Axis)
	}
	m[key] = a
	return m
}

// =============================================================================
// Scene, polar, geo and mapbox
// =============================================================================

type scene struct{}

func (scene) assign(e *embedder, src *figure.Figure, traces []*figure.Trace, r Rect) {
	refs := make(map[string]string)
	for _, t := range traces {
		old := orDefault(t.Scene, "scene")
		if _, ok := refs[old]; !ok {
			refs[old] = e.alloc("scene")
			s := src.Layout.Scenes[old]
			if s == nil {
				s = &figure.Scene{}
			}
			s.Domain = scaleDomain(s.Domain, r)
			*e.out.Layout.Scene(refs[old]) = *s
		}
		t.Scene = refs[old]
	}
}

type polar struct{}

func (polar) assign(e *embedder, src *figure.Figure, traces []*figure.Trace, r Rect) {
	refs := make(map[string]string)
	for _, t := range traces {
		old := orDefault(t.Subplot, "polar")
		if _, ok := refs[old]; !ok {
			refs[old] = e.alloc("polar")
			p := src.Layout.Polars[old]
			if p == nil {
				p = &figure.PolarLayout{}
			}
			p.Domain = scaleDomain(p.Domain, r)
			*e.out.Layout.Polar(refs[old]) = *p
		}
		t.Subplot = refs[old]
	}
}

type geo struct{}

func (geo) assign(e *embedder, src *figure.Figure, traces []*figure.Trace, r Rect) {
	refs := make(map[string]string)
	for _, t := range traces {
		old := orDefault(t.Geo, "geo")
		if _, ok := refs[old]; !ok {
			refs[old] = e.alloc("geo")
			g := src.Layout.Geos[old]
			if g == nil {
				g = &figure.GeoLayout{}
			}
			g.Domain = scaleDomain(g.Domain, r)
			*e.out.Layout.Geo(refs[old]) = *g
		}
		t.Geo = refs[old]
	}
}

type mapbox struct{}

func (mapbox) assign(e *embedder, src *figure.Figure, traces []*figure.Trace, r Rect) {
	refs := make(map[string]string)
	for _, t := range traces {
		old := orDefault(t.Subplot, "mapbox")
		if _, ok := refs[old]; !ok {
			refs[old] = e.alloc("mapbox")
			m := src.Layout.Mapboxes[old]
			if m == nil {
				m = &figure.MapboxLayout{}
			}
			m.Domain = scaleDomain(m.Domain, r)
			*e.out.Layout.Mapbox(refs[old]) = *m
		}
		t.Subplot = refs[old]
	}
}

// =============================================================================
// Domain
// =============================================================================

type domain struct{}

func (domain) assign(_ *embedder, _ *figure.Figure, traces []*figure.Trace, r Rect) {
	for _, t := range traces {
		t.Domain = scaleDomain(t.Domain, r)
	}
}

// =============================================================================
// Annotations and titles
// =============================================================================

// annotation rescales a paper-positioned annotation into r and remaps
// axis-positioned ones.
func (e *embedder) annotation(a *figure.Annotation, r Rect) *figure.Annotation {
	out := *a
	switch {
	case a.XRef == "paper":
		out.X = r.X0 + a.X*r.Width()
	case a.XRef != "":
		out.XRef = e.remapRef(a.XRef)
	}
	switch {
	case a.YRef == "paper":
		out.Y = r.Y0 + a.Y*r.Height()
	case a.YRef != "":
		out.YRef = e.remapRef(a.YRef)
	}
	return &out
}

// remapRef handles both "x2" and "x2 domain" references.
func (e *embedder) remapRef(ref string) string {
	base, suffix, found := strings.Cut(ref, " ")
	mapped := e.remap(base)
	if mapped == "" {
		return "paper"
	}
	if found {
		return mapped + " " + suffix
	}
	return mapped
}

// cellTitle turns a figure title into an annotation centered above its
// cell. An explicit title position is taken relative to the cell.
func cellTitle(t *figure.Title, content, cell Rect) *figure.Annotation {
	x := content.X0 + content.Width()/2
	if t.X != nil {
		x = content.X0 + *t.X*content.Width()
	}
	y := cell.Y1
	if t.Y != nil {
		y = cell.Y0 + *t.Y*cell.Height()
	}
	return &figure.Annotation{
		Text:    t.Text,
		X:       x,
		Y:       y,
		XRef:    "paper",
		YRef:    "paper",
		XAnchor: "center",
		YAnchor: "bottom",
		Font:    t.Font,
	}
}
