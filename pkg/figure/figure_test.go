package figure

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleFigure() *Figure {
	f := New()
	f.Add(
		&Trace{Type: "scatter", Name: "A", X: []float64{1, 2}, Y: []float64{3, 4}, XAxis: "x2", YAxis: "y2"},
		&Trace{Type: "pie", Labels: []string{"a"}, Values: []float64{1}, Domain: &Domain{X: [2]float64{0, 0.5}, Y: [2]float64{0, 1}}},
	)
	f.Layout.Title = &Title{Text: "t"}
	f.Layout.Axis("xaxis2").Domain = []float64{0.5, 1}
	f.Layout.Axis("yaxis2").Anchor = "x2"
	f.Layout.Scene("scene").Domain = &Domain{X: [2]float64{0, 1}, Y: [2]float64{0, 1}}
	f.Layout.Polar("polar3").RadialAxis = &Axis{Visible: Bool(false)}
	f.Layout.Geo("geo").Scope = "europe"
	f.Layout.Mapbox("mapbox2").Style = "open-street-map"
	return f
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		typ  string
		want Family
	}{
		{"scatter", FamilyCartesian},
		{"bar", FamilyCartesian},
		{"candlestick", FamilyCartesian},
		{"scatter3d", FamilyScene},
		{"surface", FamilyScene},
		{"scatterpolar", FamilyPolar},
		{"scattergeo", FamilyGeo},
		{"scattermapbox", FamilyMapbox},
		{"densitymapbox", FamilyMapbox},
		{"pie", FamilyDomain},
		{"sankey", FamilyDomain},
		{"table", FamilyDomain},
	}
	for _, tt := range tests {
		if got := FamilyOf(tt.typ); got != tt.want {
			t.Errorf("FamilyOf(%q) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestRef(t *testing.T) {
	if got := Ref("x", 1); got != "x" {
		t.Errorf("Ref(x, 1) = %q, want x", got)
	}
	if got := Ref("scene", 3); got != "scene3" {
		t.Errorf("Ref(scene, 3) = %q, want scene3", got)
	}
}

func TestLayoutMarshalFlattens(t *testing.T) {
	data, err := json.Marshal(sampleFigure())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, key := range []string{`"xaxis2":`, `"yaxis2":`, `"scene":`, `"polar3":`, `"geo":`, `"mapbox2":`} {
		if !strings.Contains(s, key) {
			t.Errorf("marshaled layout missing %s: %s", key, s)
		}
	}
	if strings.Contains(s, `"Axes"`) {
		t.Errorf("subplot maps leaked into output: %s", s)
	}
}

func TestFigureJSONDeterministic(t *testing.T) {
	f := sampleFigure()
	a, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		b, _ := json.Marshal(f)
		if !bytes.Equal(a, b) {
			t.Fatalf("marshal %d differs:\n%s\n%s", i, a, b)
		}
	}
}

func TestFigureRoundTrip(t *testing.T) {
	f := sampleFigure()
	clone, err := f.Clone()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := json.Marshal(f)
	b, _ := json.Marshal(clone)
	if !bytes.Equal(a, b) {
		t.Errorf("round trip differs:\n%s\n%s", a, b)
	}
	if got := clone.Layout.Axes["yaxis2"].Anchor; got != "x2" {
		t.Errorf("clone yaxis2.anchor = %q, want x2", got)
	}
	if got := clone.Layout.Mapboxes["mapbox2"].Style; got != "open-street-map" {
		t.Errorf("clone mapbox2.style = %q, want open-street-map", got)
	}

	clone.Layout.Axes["xaxis2"].Domain[0] = 0.9
	if f.Layout.Axes["xaxis2"].Domain[0] != 0.5 {
		t.Error("Clone shares axis domain with the original")
	}
}

func TestFigureFamilies(t *testing.T) {
	f := sampleFigure()
	if got := f.Family(); got != FamilyCartesian {
		t.Errorf("Family() = %v, want cartesian", got)
	}
	fams := f.Families()
	if len(fams) != 2 || fams[0] != FamilyCartesian || fams[1] != FamilyDomain {
		t.Errorf("Families() = %v, want [cartesian domain]", fams)
	}
	if got := New().Family(); got != FamilyCartesian {
		t.Errorf("empty Family() = %v, want cartesian", got)
	}
}

func TestHasColorScale(t *testing.T) {
	tests := []struct {
		name  string
		trace *Trace
		want  bool
	}{
		{"heatmap", &Trace{Type: "heatmap"}, true},
		{"heatmap hidden", &Trace{Type: "heatmap", ShowScale: Bool(false)}, false},
		{"scatter", &Trace{Type: "scatter"}, false},
		{"scatter marker scale", &Trace{Type: "scatter", Marker: &Marker{ColorScale: "Viridis"}}, true},
		{"mesh no intensity", &Trace{Type: "mesh3d"}, false},
		{"mesh intensity", &Trace{Type: "mesh3d", Intensity: []float64{1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trace.HasColorScale(); got != tt.want {
				t.Errorf("HasColorScale() = %v, want %v", got, tt.want)
			}
		})
	}
}
