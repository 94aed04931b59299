package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/grid"
	"github.com/matzehuels/tabplot/pkg/plot"
	"github.com/matzehuels/tabplot/pkg/render"
	"github.com/matzehuels/tabplot/pkg/source"
)

// =============================================================================
// Document
// =============================================================================

// Document is a declarative description of plots over one data source.
type Document struct {
	Title  string      `json:"title,omitempty"`
	Data   DataSpec    `json:"data"`
	Plots  []PlotEntry `json:"plots"`
	Grid   *GridSpec   `json:"grid,omitempty"`
	Output OutputSpec  `json:"output"`

	// Dir resolves relative paths in the document. LoadDocument sets it to
	// the document's directory.
	Dir string `json:"-"`
}

// DataSpec names the table the plots read. At most one source may be set.
type DataSpec struct {
	Path  string              `json:"path,omitempty"`
	Mongo *source.MongoSource `json:"mongo,omitempty"`
}

// PlotEntry is a named plot. In documents the spec fields sit next to
// "name" and "kind":
//
//	{"name": "mass", "kind": "scatter", "x": "length", "y": "mass"}
type PlotEntry struct {
	Name string
	Spec plot.Spec
}

// GridSpec composes named plots. Without cells every plot is placed in
// document order; a zero shape then means one row.
type GridSpec struct {
	grid.Spec
	Cells []GridCell `json:"cells,omitempty"`
}

// GridCell places one plot.
type GridCell struct {
	Plot string `json:"plot"`
	grid.Cell
}

// OutputSpec selects the rendered outputs.
type OutputSpec struct {
	Formats   []string    `json:"formats,omitempty"`
	Dir       string      `json:"dir,omitempty"`
	PlotlyURL string      `json:"plotly_url,omitempty"`
	Export    *ExportSpec `json:"export,omitempty"`
}

// ExportSpec configures the static image exporter.
type ExportSpec struct {
	Command string  `json:"command"`
	Scale   float64 `json:"scale,omitempty"`
}

// MarshalJSON writes the spec fields with "name" and "kind" added.
func (p PlotEntry) MarshalJSON() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if p.Spec != nil {
		data, err := json.Marshal(p.Spec)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
		kind, _ := json.Marshal(p.Spec.Kind())
		fields["kind"] = kind
	}
	name, _ := json.Marshal(p.Name)
	fields["name"] = name
	return json.Marshal(fields)
}

// UnmarshalJSON reads "name" and "kind" and decodes the remaining fields
// strictly into the spec of that kind.
func (p *PlotEntry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var kind plot.Kind
	if raw, ok := fields["kind"]; ok {
		if err := json.Unmarshal(raw, &kind); err != nil {
			return fmt.Errorf("plot kind: %w", err)
		}
	}
	var name string
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("plot name: %w", err)
		}
	}
	if kind == "" {
		return errors.New(errors.ErrCodeInvalidInput, "plot %q has no kind", name)
	}
	delete(fields, "kind")
	delete(fields, "name")

	rest, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	spec, err := plot.Decode(kind, rest)
	if err != nil {
		return fmt.Errorf("plot %q: %w", name, err)
	}
	p.Name, p.Spec = name, spec
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// LoadDocument reads a document, choosing the syntax by extension:
// .toml, .yaml/.yml or .json.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := ParseDocument(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Dir = filepath.Dir(path)
	return doc, nil
}

// ParseDocument parses data in the syntax named by ext. TOML and YAML are
// converted to JSON first, so every syntax decodes through the same strict
// JSON path and unknown plot options are rejected everywhere.
func ParseDocument(data []byte, ext string) (*Document, error) {
	var raw []byte
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "json":
		raw = data
	case "toml":
		var m map[string]any
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse toml")
		}
		var err error
		if raw, err = json.Marshal(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "convert toml")
		}
	case "yaml", "yml":
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse yaml")
		}
		var err error
		if raw, err = json.Marshal(m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "convert yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", ext)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks names, references and output formats. Plot options are
// checked when the plots are built.
func (d *Document) Validate() error {
	if len(d.Plots) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document has no plots")
	}
	if d.Data.Path != "" && d.Data.Mongo != nil {
		return errors.New(errors.ErrCodeInvalidInput, "data has both a path and a mongo source")
	}
	if d.Data.Mongo != nil {
		if err := d.Data.Mongo.Validate(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(d.Plots))
	for i, p := range d.Plots {
		if err := errors.ValidateName(p.Name); err != nil {
			return fmt.Errorf("plot %d: %w", i, err)
		}
		if p.Name == GridName {
			return errors.New(errors.ErrCodeInvalidInput, "plot name %q is reserved", GridName)
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate plot name %q", p.Name)
		}
		seen[p.Name] = true
		if p.Spec == nil {
			return errors.New(errors.ErrCodeInvalidInput, "plot %q has no spec", p.Name)
		}
		if d.Data.Path == "" && d.Data.Mongo == nil && needsTable(p.Spec) {
			return errors.New(errors.ErrCodeInvalidInput, "plot %q needs a data source", p.Name)
		}
	}

	if d.Grid != nil {
		for _, c := range d.Grid.Cells {
			if !seen[c.Plot] {
				return errors.New(errors.ErrCodeInvalidInput, "grid cell names unknown plot %q", c.Plot)
			}
		}
	}
	if _, err := d.formats(nil); err != nil {
		return err
	}
	if e := d.Output.Export; e != nil && e.Command == "" {
		return errors.New(errors.ErrCodeInvalidInput, "export needs a command")
	}
	return nil
}

// names lists the plot names in document order.
func (d *Document) names() []string {
	out := make([]string, len(d.Plots))
	for i, p := range d.Plots {
		out[i] = p.Name
	}
	return out
}

// formats resolves the output formats, preferring override.
func (d *Document) formats(override []render.Format) ([]render.Format, error) {
	if len(override) > 0 {
		return override, nil
	}
	if len(d.Output.Formats) == 0 {
		return DefaultFormats, nil
	}
	out := make([]render.Format, 0, len(d.Output.Formats))
	for _, s := range d.Output.Formats {
		f, err := render.ParseFormat(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// exporter returns the configured static image exporter, or nil.
func (d *Document) exporter(override *render.Exporter) *render.Exporter {
	if override != nil {
		return override
	}
	if e := d.Output.Export; e != nil {
		return &render.Exporter{Command: e.Command, Scale: e.Scale}
	}
	return nil
}

// resolve joins a relative path onto the document directory.
func (d *Document) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || d.Dir == "" {
		return path
	}
	return filepath.Join(d.Dir, path)
}

func needsTable(s plot.Spec) bool {
	switch s.(type) {
	case *plot.Image, *plot.Array2D:
		return false
	}
	return true
}
