package plot

import (
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/style"
)

func penguins() *table.Table {
	return new(table.Builder).
		Add("species", []string{"A", "B", "A"}).
		Add("island", []string{"x", "y", "y"}).
		Add("mass", []float64{1, 2, 3}).
		Add("length", []float64{10, 20, 30}).
		Done()
}

func jsonOf(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestScatterGroupsInFirstSeenOrder(t *testing.T) {
	fig, err := Build(penguins(), &Scatter{X: "length", Y: "mass", Grouping: Grouping{Group: "species"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(fig.Data))
	}
	tests := []struct {
		name string
		y    string
	}{
		{"A", "[1,3]"},
		{"B", "[2]"},
	}
	for i, tt := range tests {
		tr := fig.Data[i]
		if tr.Name != tt.name {
			t.Errorf("trace %d name = %q, want %q", i, tr.Name, tt.name)
		}
		if got := jsonOf(t, tr.Y); got != tt.y {
			t.Errorf("trace %s y = %s, want %s", tt.name, got, tt.y)
		}
	}
	if ax := fig.Layout.Axes["xaxis"]; ax == nil || ax.Type != "linear" {
		t.Errorf("xaxis = %+v, want linear", ax)
	}
}

func TestShortPaletteCycles(t *testing.T) {
	red := style.Rgb{R: 255}
	fig, err := Build(penguins(), &Scatter{
		X:        "length",
		Y:        "mass",
		Grouping: Grouping{Group: "species"},
		Marks:    Marks{Colors: []style.Rgb{red}},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, tr := range fig.Data {
		if tr.Marker == nil || tr.Marker.Color != red.String() {
			t.Errorf("trace %s marker = %+v, want color %s", tr.Name, tr.Marker, red.String())
		}
	}
}

func TestScatterUngroupedSingleTrace(t *testing.T) {
	fig, err := Build(penguins(), &Scatter{X: "species", Y: "mass"})
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Data) != 1 {
		t.Fatalf("len(Data) = %d, want 1", len(fig.Data))
	}
	if got := jsonOf(t, fig.Data[0].X); got != `["A","B","A"]` {
		t.Errorf("x = %s, want [A B A]", got)
	}
	if ax := fig.Layout.Axes["xaxis"]; ax == nil || ax.Type != "category" {
		t.Errorf("xaxis = %+v, want category", ax)
	}
}

func TestBuildValidationOrder(t *testing.T) {
	red := style.Rgb{R: 255}
	conflicting := Marks{Color: &red, Colors: []style.Rgb{red}}
	tests := []struct {
		name   string
		spec   Spec
		code   errors.Code
		column string
		option string
	}{
		{
			name:   "missing column before option conflict",
			spec:   &Scatter{X: "nope", Y: "mass", Marks: conflicting},
			code:   errors.ErrCodeColumnNotFound,
			column: "nope",
		},
		{
			name:   "option conflict before empty group",
			spec:   &Scatter{X: "length", Y: "mass", Marks: conflicting, Grouping: Grouping{Group: "species", GroupOrder: []string{"Z"}}},
			code:   errors.ErrCodeOptionInconsistent,
			option: "color",
		},
		{
			name: "empty group",
			spec: &Scatter{X: "length", Y: "mass", Grouping: Grouping{Group: "species", GroupOrder: []string{"Z"}}},
			code: errors.ErrCodeEmptyGroup,
		},
		{
			name:   "type mismatch",
			spec:   &Scatter{X: "length", Y: "species"},
			code:   errors.ErrCodeTypeMismatch,
			column: "species",
		},
		{
			name:   "missing selector",
			spec:   &Scatter{Y: "mass"},
			code:   errors.ErrCodeOptionInconsistent,
			option: "x",
		},
		{
			name: "empty facet",
			spec: &Scatter{X: "length", Y: "mass", Grouping: Grouping{Facet: "island", FacetStyle: &style.FacetConfig{Order: []string{"z"}}}},
			code: errors.ErrCodeEmptyFacet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := Build(penguins(), tt.spec)
			if fig != nil {
				t.Error("failed build returned a figure")
			}
			e, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("error = %v, want *errors.Error", err)
			}
			if e.Code != tt.code {
				t.Errorf("code = %s, want %s (%v)", e.Code, tt.code, err)
			}
			if e.Builder != "scatter" {
				t.Errorf("builder = %q, want scatter", e.Builder)
			}
			if tt.column != "" && e.Column != tt.column {
				t.Errorf("column = %q, want %q", e.Column, tt.column)
			}
			if tt.option != "" && !strings.HasPrefix(e.Option, tt.option) {
				t.Errorf("option = %q, want %q", e.Option, tt.option)
			}
		})
	}
}

func TestBuildDoesNotModifyTable(t *testing.T) {
	tab := penguins()
	if _, err := Build(tab, &Scatter{X: "length", Y: "mass", Grouping: Grouping{Group: "species", Facet: "island"}}); err != nil {
		t.Fatal(err)
	}
	if got := jsonOf(t, tab.Column("species")); got != `["A","B","A"]` {
		t.Errorf("species column = %s after build", got)
	}
}

func TestFacetGrid(t *testing.T) {
	fig, err := Build(penguins(), &Scatter{
		X:        "length",
		Y:        "mass",
		Grouping: Grouping{Group: "species", Facet: "island"},
	})
	if err != nil {
		t.Fatal(err)
	}
	// island x holds A; island y holds B and A.
	if len(fig.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3", len(fig.Data))
	}
	x2 := fig.Layout.Axes["xaxis2"]
	if x2 == nil {
		t.Fatalf("layout has no xaxis2: %v", fig.Layout.AxisKeys())
	}
	if x2.Matches != "x" {
		t.Errorf("xaxis2.matches = %q, want x", x2.Matches)
	}
	if y2 := fig.Layout.Axes["yaxis2"]; y2 == nil || y2.Matches != "y" {
		t.Errorf("yaxis2 = %+v, want matches y", y2)
	}
	var titles []string
	for _, a := range fig.Layout.Annotations {
		titles = append(titles, a.Text)
	}
	if strings.Join(titles, ",") != "x,y" {
		t.Errorf("cell titles = %v, want [x y]", titles)
	}
}

func TestFacetFreeScales(t *testing.T) {
	fig, err := Build(penguins(), &Scatter{
		X:        "length",
		Y:        "mass",
		Grouping: Grouping{Facet: "island", FacetStyle: &style.FacetConfig{Scales: style.ScalesFree}},
	})
	if err != nil {
		t.Fatal(err)
	}
	for key, a := range fig.Layout.Axes {
		if a.Matches != "" {
			t.Errorf("%s.matches = %q with free scales", key, a.Matches)
		}
	}
}

func TestFacetGridTooSmall(t *testing.T) {
	_, err := Build(penguins(), &Scatter{
		X:        "length",
		Y:        "mass",
		Grouping: Grouping{Facet: "island", FacetStyle: &style.FacetConfig{NCol: 1, NRow: 1}},
	})
	if !errors.Is(err, errors.ErrCodeOptionInconsistent) {
		t.Errorf("error = %v, want OPTION_INCONSISTENT", err)
	}
}

func TestLineSeries(t *testing.T) {
	fig, err := Build(penguins(), &Line{
		X:               "length",
		Y:               "mass",
		AdditionalLines: []string{"length"},
		Grouping:        Grouping{Group: "species"},
	})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, tr := range fig.Data {
		names = append(names, tr.Name)
	}
	want := "A (mass),A (length),B (mass),B (length)"
	if strings.Join(names, ",") != want {
		t.Errorf("names = %v, want %s", names, want)
	}
}

func TestPieAggregates(t *testing.T) {
	red, blue := style.Rgb{R: 255}, style.Rgb{B: 255}
	fig, err := Build(penguins(), &Pie{Labels: "species", Values: "mass", Colors: []style.Rgb{red, blue}})
	if err != nil {
		t.Fatal(err)
	}
	tr := fig.Data[0]
	if got := jsonOf(t, tr.Labels); got != `["A","B"]` {
		t.Errorf("labels = %s, want [A B]", got)
	}
	if got := jsonOf(t, tr.Values); got != "[4,2]" {
		t.Errorf("values = %s, want [4 2]", got)
	}
	want := jsonOf(t, []string{red.String(), blue.String()})
	if got := jsonOf(t, tr.Marker.Colors); got != want {
		t.Errorf("colors = %s, want %s", got, want)
	}

	counted, err := Build(penguins(), &Pie{Labels: "species"})
	if err != nil {
		t.Fatal(err)
	}
	if got := jsonOf(t, counted.Data[0].Values); got != "[2,1]" {
		t.Errorf("counted values = %s, want [2 1]", got)
	}
}

func TestPieFacetKeepsColors(t *testing.T) {
	red, blue := style.Rgb{R: 255}, style.Rgb{B: 255}
	fig, err := Build(penguins(), &Pie{Labels: "species", Colors: []style.Rgb{red, blue}, FacetOnly: FacetOnly{Facet: "island"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(fig.Data))
	}
	// Island y sees B before A; B must stay blue.
	second := fig.Data[1]
	if got := jsonOf(t, second.Labels); got != `["B","A"]` {
		t.Fatalf("labels = %s, want [B A]", got)
	}
	want := jsonOf(t, []string{blue.String(), red.String()})
	if got := jsonOf(t, second.Marker.Colors); got != want {
		t.Errorf("colors = %s, want %s", got, want)
	}
}

func TestPieEmptyFacet(t *testing.T) {
	tab := new(table.Builder).
		Add("f", []string{"a", "a", "b"}).
		Add("label", []string{"p", "q", ""}).
		Done()

	_, err := Build(tab, &Pie{Labels: "label", FacetOnly: FacetOnly{Facet: "f"}})
	if !errors.Is(err, errors.ErrCodeEmptyFacet) {
		t.Fatalf("Build() error = %v, want %s", err, errors.ErrCodeEmptyFacet)
	}
	if !strings.Contains(err.Error(), `"b"`) {
		t.Errorf("error %q should name facet b", err)
	}

	_, err = Build(tab, &Pie{Labels: "label", Values: "f"})
	if !errors.Is(err, errors.ErrCodeTypeMismatch) {
		t.Errorf("non-numeric values error = %v, want %s", err, errors.ErrCodeTypeMismatch)
	}
}

func TestManyFacetsDefaultLayout(t *testing.T) {
	const n = 20
	facets := make([]string, n)
	ys := make([]float64, n)
	for i := range facets {
		facets[i] = string(rune('a' + i))
		ys[i] = float64(i)
	}
	tab := new(table.Builder).
		Add("f", facets).
		Add("y", ys).
		Done()

	fig, err := Build(tab, &Scatter{X: "y", Y: "y", Grouping: Grouping{Facet: "f"}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(fig.Data) != n {
		t.Fatalf("len(Data) = %d, want %d", len(fig.Data), n)
	}
	prev := -1.0
	for i := 1; i <= n; i++ {
		key := "xaxis"
		if i > 1 {
			key += strconv.Itoa(i)
		}
		ax := fig.Layout.Axes[key]
		if ax == nil || len(ax.Domain) != 2 {
			t.Fatalf("%s = %+v, want a domain", key, ax)
		}
		lo, hi := ax.Domain[0], ax.Domain[1]
		if hi <= lo || lo < prev {
			t.Errorf("%s domain = %v, want increasing non-overlapping", key, ax.Domain)
		}
		prev = hi
	}
}

func TestSankey(t *testing.T) {
	tab := new(table.Builder).
		Add("from", []string{"a", "a", "b"}).
		Add("to", []string{"b", "c", "c"}).
		Add("flow", []float64{1, 2, 3}).
		Done()
	fig, err := Build(tab, &Sankey{Sources: "from", Targets: "to", Values: "flow"})
	if err != nil {
		t.Fatal(err)
	}
	tr := fig.Data[0]
	if got := strings.Join(tr.Node.Label, ","); got != "a,b,c" {
		t.Errorf("nodes = %s, want a,b,c", got)
	}
	if got := jsonOf(t, tr.Link); got != `{"source":[0,0,1],"target":[1,2,2],"value":[1,2,3]}` {
		t.Errorf("link = %s", got)
	}

	if _, err := Build(tab, &Sankey{Sources: "from", Targets: "to", Values: "flow", Arrangement: "sideways"}); !errors.Is(err, errors.ErrCodeOptionInconsistent) {
		t.Errorf("bad arrangement error = %v, want OPTION_INCONSISTENT", err)
	}
}

func TestTable(t *testing.T) {
	fig, err := Build(penguins(), &Table{Columns: []string{"species", "mass"}})
	if err != nil {
		t.Fatal(err)
	}
	tr := fig.Data[0]
	if got := jsonOf(t, tr.Header.Values); got != `["species","mass"]` {
		t.Errorf("header = %s", got)
	}
	if got := jsonOf(t, tr.Cells.Values); got != `[["A","B","A"],["1","2","3"]]` {
		t.Errorf("cells = %s", got)
	}

	_, err = Build(penguins(), &Table{Columns: []string{"species"}, Header: &TableStyle{Values: []string{"a", "b"}}})
	if !errors.Is(err, errors.ErrCodeOptionInconsistent) {
		t.Errorf("header mismatch error = %v, want OPTION_INCONSISTENT", err)
	}
}

func TestSurfacePivot(t *testing.T) {
	tab := new(table.Builder).
		Add("x", []float64{2, 1, 1, 2}).
		Add("y", []float64{0, 0, 1, 1}).
		Add("z", []float64{20, 10, 11, 21}).
		Done()
	fig, err := Build(tab, &Surface{X: "x", Y: "y", Z: "z"})
	if err != nil {
		t.Fatal(err)
	}
	tr := fig.Data[0]
	if got := jsonOf(t, tr.X); got != "[1,2]" {
		t.Errorf("x = %s, want [1 2]", got)
	}
	if got := jsonOf(t, tr.Z); got != "[[10,20],[11,21]]" {
		t.Errorf("z = %s, want [[10 20] [11 21]]", got)
	}
	if fig.Layout.Scenes["scene"] == nil {
		t.Error("surface has no scene")
	}
}

func TestOHLCOneTracePerFacet(t *testing.T) {
	tab := new(table.Builder).
		Add("date", []string{"2024-01-01", "2024-01-02", "2024-01-01"}).
		Add("ticker", []string{"ACME", "ACME", "INIT"}).
		Add("open", []float64{1, 2, 3}).
		Add("high", []float64{2, 3, 4}).
		Add("low", []float64{0, 1, 2}).
		Add("close", []float64{2, 1, 3}).
		Done()
	prices := Prices{Dates: "date", Open: "open", High: "high", Low: "low", Close: "close"}

	fig, err := Build(tab, &OHLC{Prices: prices})
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Data) != 1 {
		t.Errorf("unfaceted len(Data) = %d, want 1", len(fig.Data))
	}

	fig, err = Build(tab, &Candlestick{Prices: prices, FacetOnly: FacetOnly{Facet: "ticker"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(fig.Data) != 2 {
		t.Fatalf("faceted len(Data) = %d, want 2", len(fig.Data))
	}
	if got := jsonOf(t, fig.Data[1].Open); got != "[3]" {
		t.Errorf("second facet open = %s, want [3]", got)
	}
}

func TestArray2DWithoutTable(t *testing.T) {
	px := [][]style.Rgb{{{R: 255}, {G: 255}}, {{B: 255}, {}}}
	fig, err := Build(nil, &Array2D{Pixels: px})
	if err != nil {
		t.Fatal(err)
	}
	if got := jsonOf(t, fig.Data[0].Z); got != "[[[255,0,0],[0,255,0]],[[0,0,255],[0,0,0]]]" {
		t.Errorf("z = %s", got)
	}

	_, err = Build(nil, &Array2D{Pixels: [][]style.Rgb{{{}}, {{}, {}}}})
	if !errors.Is(err, errors.ErrCodeOptionInconsistent) {
		t.Errorf("ragged pixels error = %v, want OPTION_INCONSISTENT", err)
	}
	if _, err := Build(nil, &Scatter{X: "a", Y: "b"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil table error = %v, want INVALID_INPUT", err)
	}
}

func TestDecode(t *testing.T) {
	s, err := Decode(KindScatter, []byte(`{"x":"length","y":"mass","group":"species","color":"#ff0000","title":"Mass"}`))
	if err != nil {
		t.Fatal(err)
	}
	sc, ok := s.(*Scatter)
	if !ok {
		t.Fatalf("Decode returned %T, want *Scatter", s)
	}
	if sc.Group != "species" || sc.Color == nil || sc.Color.R != 255 {
		t.Errorf("decoded %+v", sc)
	}
	if sc.Title == nil || sc.Title.Content != "Mass" {
		t.Errorf("title = %+v, want Mass", sc.Title)
	}

	if _, err := Decode(KindScatter, []byte(`{"x":"a","colour":"red"}`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown field error = %v, want INVALID_INPUT", err)
	}
	if _, err := NewSpec("violin"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("NewSpec(violin) error = %v, want UNSUPPORTED", err)
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 22 {
		t.Errorf("len(Kinds()) = %d, want 22", len(kinds))
	}
	for _, k := range kinds {
		s, err := NewSpec(k)
		if err != nil {
			t.Fatal(err)
		}
		if s.Kind() != k {
			t.Errorf("NewSpec(%s).Kind() = %s", k, s.Kind())
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	spec := &Scatter{X: "length", Y: "mass", Grouping: Grouping{Group: "species", Facet: "island"}}
	a, err := Build(penguins(), spec)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Build(penguins(), spec)
	if jsonOf(t, a) != jsonOf(t, b) {
		t.Error("building twice produced different figures")
	}
}
