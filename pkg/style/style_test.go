package style

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/matzehuels/tabplot/pkg/errors"
)

func f64(v float64) *float64 { return &v }

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Rgb
		wantErr bool
	}{
		{"#ff0000", Rgb{255, 0, 0}, false},
		{"#1f77b4", Rgb{31, 119, 180}, false},
		{"rgb(1, 2, 3)", Rgb{1, 2, 3}, false},
		{"rgb(10,20,30)", Rgb{10, 20, 30}, false},
		{"steelblue", Rgb{70, 130, 180}, false},
		{"White", Rgb{255, 255, 255}, false},

		{"rgb(256, 0, 0)", Rgb{}, true},
		{"not-a-color", Rgb{}, true},
		{"#12", Rgb{}, true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRgbJSON(t *testing.T) {
	data, err := json.Marshal(Rgb{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"rgb(1, 2, 3)"` {
		t.Errorf("Marshal = %s", data)
	}

	var c Rgb
	if err := json.Unmarshal([]byte(`[4, 5, 6]`), &c); err != nil || c != (Rgb{4, 5, 6}) {
		t.Errorf("Unmarshal array = %v, %v", c, err)
	}
	if err := json.Unmarshal([]byte(`"#000080"`), &c); err != nil || c != (Rgb{0, 0, 128}) {
		t.Errorf("Unmarshal hex = %v, %v", c, err)
	}
	if err := json.Unmarshal([]byte(`[1, 2]`), &c); err == nil {
		t.Error("Unmarshal short array should fail")
	}
}

func TestCycle(t *testing.T) {
	colors := []Rgb{{1, 1, 1}, {2, 2, 2}}
	for i, want := range []Rgb{{1, 1, 1}, {2, 2, 2}, {1, 1, 1}} {
		if got := Cycle(colors, i); got == nil || *got != want {
			t.Errorf("Cycle(%d) = %v, want %v", i, got, want)
		}
	}
	if Cycle(nil, 3) != nil {
		t.Error("Cycle(nil) should be nil")
	}
}

func TestPalette(t *testing.T) {
	p := &Palette{Name: "Viridis"}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := p.Colorscale(); got != "Viridis" {
		t.Errorf("Colorscale() = %v, want Viridis", got)
	}

	plasma := &Palette{Name: "Plasma"}
	if _, ok := plasma.Colorscale().([][2]any); !ok {
		t.Errorf("Colorscale() for a local scale should be stops, got %T", plasma.Colorscale())
	}

	custom := &Palette{Colors: []Rgb{{0, 0, 0}, {255, 255, 255}}}
	stops, ok := custom.Colorscale().([][2]any)
	if !ok || len(stops) != 2 || stops[1][0] != 1.0 || stops[1][1] != "rgb(255, 255, 255)" {
		t.Errorf("Colorscale() = %v", custom.Colorscale())
	}

	sample := custom.Sample(3)
	if len(sample) != 3 || sample[0] != (Rgb{0, 0, 0}) || sample[2] != (Rgb{255, 255, 255}) {
		t.Errorf("Sample(3) = %v", sample)
	}
	rev := &Palette{Colors: custom.Colors, Reverse: true}
	if got := rev.Sample(2); got[0] != (Rgb{255, 255, 255}) {
		t.Errorf("reversed Sample(2)[0] = %v", got[0])
	}

	for _, bad := range []*Palette{
		{Name: "Nope"},
		{},
		{Name: "Viridis", Colors: []Rgb{{1, 2, 3}}},
	} {
		if err := bad.Validate(); !errors.Is(err, errors.ErrCodeOptionInconsistent) {
			t.Errorf("Validate(%+v) error = %v, want OPTION_INCONSISTENT", bad, err)
		}
	}
}

func TestPaletteJSON(t *testing.T) {
	var p Palette
	if err := json.Unmarshal([]byte(`"Jet"`), &p); err != nil || p.Name != "Jet" {
		t.Errorf("Unmarshal name = %+v, %v", p, err)
	}
	if err := json.Unmarshal([]byte(`{"colors": ["#000000", "white"]}`), &p); err != nil || len(p.Colors) != 2 {
		t.Errorf("Unmarshal object = %+v, %v", p, err)
	}
}

func TestShapeValidate(t *testing.T) {
	for _, ok := range []Shape{ShapeCircle, "circle-open", "diamond-open-dot", "star-dot"} {
		if err := ok.Validate(); err != nil {
			t.Errorf("Shape(%q).Validate() error = %v", ok, err)
		}
	}
	if err := Shape("blob").Validate(); err == nil {
		t.Error("unknown shape should fail")
	}
}

func TestEnumValidate(t *testing.T) {
	if LineDash.Validate() != nil || LineStyle("wavy").Validate() == nil {
		t.Error("LineStyle validation wrong")
	}
	if ModeLinesMarkers.Validate() != nil || Mode("bars").Validate() == nil {
		t.Error("Mode validation wrong")
	}
	if FillToSelf.Validate() != nil || Fill("flood").Validate() == nil {
		t.Error("Fill validation wrong")
	}
	if Orientation("").Validate() != nil || Horizontal.Validate() != nil || Orientation("d").Validate() == nil {
		t.Error("Orientation validation wrong")
	}
}

func TestTextJSON(t *testing.T) {
	var txt Text
	if err := json.Unmarshal([]byte(`"Penguins"`), &txt); err != nil || txt.Content != "Penguins" {
		t.Errorf("Unmarshal string = %+v, %v", txt, err)
	}
	if err := json.Unmarshal([]byte(`{"content": "A", "size": 14, "x": 0.5}`), &txt); err != nil {
		t.Fatal(err)
	}
	want := Text{Content: "A", Size: 14, X: f64(0.5)}
	if !reflect.DeepEqual(txt, want) {
		t.Errorf("Unmarshal object = %+v, want %+v", txt, want)
	}
}

func TestAxisValidate(t *testing.T) {
	tests := []struct {
		name    string
		axis    *Axis
		wantErr bool
	}{
		{"nil", nil, false},
		{"log", &Axis{Type: "log", Range: []float64{0, 3}}, false},
		{"ticks", &Axis{TickValues: []float64{1, 2}, TickLabels: []string{"a", "b"}}, false},

		{"bad type", &Axis{Type: "polar"}, true},
		{"bad range", &Axis{Range: []float64{1}}, true},
		{"tick mismatch", &Axis{TickValues: []float64{1}, TickLabels: []string{"a", "b"}}, true},
		{"bad side", &Axis{Side: "middle"}, true},
	}
	for _, tt := range tests {
		if err := tt.axis.Validate("x_axis"); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestColorBarValidate(t *testing.T) {
	if err := (&ColorBar{Length: f64(0.5), Width: f64(0.1)}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	err := (&ColorBar{Length: f64(1.5)}).Validate()
	if !errors.Is(err, errors.ErrCodeOptionInconsistent) {
		t.Errorf("Validate() error = %v, want OPTION_INCONSISTENT", err)
	}
}

func TestLightingValidate(t *testing.T) {
	if err := (&Lighting{Fresnel: f64(4), Specular: f64(1.5)}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (&Lighting{Ambient: f64(2)}).Validate(); err == nil {
		t.Error("ambient > 1 should fail")
	}
}

func TestFacetShape(t *testing.T) {
	tests := []struct {
		cfg              *FacetConfig
		n                int
		wantRow, wantCol int
	}{
		{nil, 3, 1, 3},
		{&FacetConfig{NCol: 2}, 3, 2, 2},
		{&FacetConfig{NRow: 2}, 5, 2, 3},
		{&FacetConfig{NRow: 3, NCol: 3}, 4, 3, 3},
	}
	for _, tt := range tests {
		r, c := tt.cfg.Shape(tt.n)
		if r != tt.wantRow || c != tt.wantCol {
			t.Errorf("Shape(%d) = %dx%d, want %dx%d", tt.n, r, c, tt.wantRow, tt.wantCol)
		}
	}
}

func TestFacetValidate(t *testing.T) {
	if err := (&FacetConfig{Scales: ScalesFreeY, XGap: f64(0.1)}).Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := (&FacetConfig{Scales: "loose"}).Validate(); err == nil {
		t.Error("unknown scales should fail")
	}
	if err := (&FacetConfig{YGap: f64(1)}).Validate(); err == nil {
		t.Error("gap of 1 should fail")
	}
}
