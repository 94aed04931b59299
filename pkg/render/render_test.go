package render

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/plot"
	"github.com/matzehuels/tabplot/pkg/source"
)

func testFigure() *figure.Figure {
	f := figure.New()
	f.Add(
		&figure.Trace{Type: "scatter", Name: "A", X: []float64{1, 3}, Y: []float64{1, 3}},
		&figure.Trace{Type: "scatter", Name: "B", X: []float64{2}, Y: []float64{2}, XAxis: "x2", YAxis: "y2"},
	)
	f.Layout.Title = &figure.Title{Text: "species </script>"}
	f.Layout.Axis("xaxis").Domain = []float64{0, 0.45}
	f.Layout.Axis("xaxis2").Domain = []float64{0.55, 1}
	return f
}

func TestOutputsIdempotent(t *testing.T) {
	f := testFigure()
	tests := []struct {
		name string
		fn   func(*figure.Figure) ([]byte, error)
	}{
		{"json", JSON},
		{"json indent", JSONIndent},
		{"html", func(f *figure.Figure) ([]byte, error) { return HTML(f) }},
		{"inline", func(f *figure.Figure) ([]byte, error) { return Inline(f) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := tt.fn(f)
			if err != nil {
				t.Fatal(err)
			}
			b, err := tt.fn(f)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(a, b) {
				t.Errorf("%s output differs between calls", tt.name)
			}
		})
	}
}

func TestInfiniteCellsRenderAsGaps(t *testing.T) {
	tab, err := source.ReadCSV(strings.NewReader("x,y\n1,2\n2,inf\n3,4\n"))
	if err != nil {
		t.Fatal(err)
	}
	fig, err := plot.Build(tab, &plot.Scatter{X: "x", Y: "y"})
	if err != nil {
		t.Fatal(err)
	}
	data, err := JSON(fig)
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	if !strings.Contains(string(data), `"y":[2,null,4]`) {
		t.Errorf("JSON() = %s, want y with a null gap", data)
	}
	if _, err := HTML(fig); err != nil {
		t.Errorf("HTML() error = %v", err)
	}
}

func TestOutputsDoNotModifyFigure(t *testing.T) {
	f := testFigure()
	before, _ := JSON(f)
	if _, err := HTML(f); err != nil {
		t.Fatal(err)
	}
	if _, err := Object(f); err != nil {
		t.Fatal(err)
	}
	after, _ := JSON(f)
	if !bytes.Equal(before, after) {
		t.Error("rendering modified the figure")
	}
}

func TestObject(t *testing.T) {
	obj, err := Object(testFigure())
	if err != nil {
		t.Fatal(err)
	}
	data, ok := obj["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("data = %v, want 2 traces", obj["data"])
	}
	layout, ok := obj["layout"].(map[string]any)
	if !ok {
		t.Fatalf("layout = %T, want map", obj["layout"])
	}
	if _, ok := layout["xaxis2"]; !ok {
		t.Errorf("layout missing xaxis2: %v", layout)
	}
}

func TestHTML(t *testing.T) {
	page, err := HTML(testFigure(), WithTitle("penguins"), WithPlotlyURL("/static/plotly.js"))
	if err != nil {
		t.Fatal(err)
	}
	s := string(page)
	for _, want := range []string{"<!DOCTYPE html>", "<title>penguins</title>", `src="/static/plotly.js"`, "Plotly.newPlot"} {
		if !strings.Contains(s, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Count(s, "</script>") != 2 {
		t.Errorf("figure text escaped the script element:\n%s", s)
	}
}

func TestInlineDivID(t *testing.T) {
	frag, err := Inline(testFigure(), WithDivID("cell-1"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(frag), `<div id="cell-1"`) {
		t.Errorf("fragment missing div id:\n%s", frag)
	}
	if strings.Contains(string(frag), "<html>") {
		t.Error("fragment contains a full document")
	}

	other := testFigure()
	other.Layout.Title.Text = "other"
	a, _ := Inline(testFigure())
	b, _ := Inline(other)
	if bytes.Equal(a, b) {
		t.Error("different figures share a div id")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".html", FormatHTML, false},
		{"PNG", FormatPNG, false},
		{".jpg", FormatJPEG, false},
		{"svg", FormatSVG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderStaticNeedsExporter(t *testing.T) {
	_, err := Render(context.Background(), testFigure(), FormatPNG, Options{})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Render(png) error = %v, want UNSUPPORTED", err)
	}
}

func TestExporterArgs(t *testing.T) {
	e := &Exporter{Command: `plot-export --format {format} --out "my file.{format}"`, Scale: 2}
	args, err := e.Args(FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"plot-export", "--format", "svg", "--out", "my file.svg", "--scale", "2"}
	if strings.Join(args, "|") != strings.Join(want, "|") {
		t.Errorf("Args = %q, want %q", args, want)
	}

	if _, err := (&Exporter{Command: `broken "quote`}).Args(FormatPNG); err == nil {
		t.Error("Args accepted an unterminated quote")
	}
}

func TestExporterMissingCommand(t *testing.T) {
	e := &Exporter{Command: "tabplot-no-such-exporter-binary"}
	_, err := e.Export(context.Background(), testFigure(), FormatPNG)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Export error = %v, want UNSUPPORTED", err)
	}
}

func TestExporterPipesJSON(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	f := testFigure()
	out, err := (&Exporter{Command: "cat"}).Export(context.Background(), f, FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := JSON(f)
	if !bytes.Equal(out, want) {
		t.Errorf("exporter stdin = %s, want %s", out, want)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	f := testFigure()
	for _, name := range []string{"plot.json", "plot.html"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(context.Background(), f, path, Options{}); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("WriteFile(%s) wrote nothing", name)
		}
	}
	if err := WriteFile(context.Background(), f, filepath.Join(dir, "plot.gif"), Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("WriteFile(gif) error = %v, want INVALID_FORMAT", err)
	}
}
