package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWEBP Format = "webp"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatHTML, FormatPNG, FormatJPEG, FormatWEBP, FormatSVG, FormatPDF}

// Static reports whether f needs the external exporter.
func (f Format) Static() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatWEBP, FormatSVG, FormatPDF:
		return true
	}
	return false
}

// Ext returns the file extension of f, with the dot.
func (f Format) Ext() string { return "." + string(f) }

// ParseFormat resolves a format name or file extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(s, "."))
	if s == "jpg" {
		s = "jpeg"
	}
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", s)
}

// Object returns the figure as the backend's in-memory object: a map with
// "data" and "layout" keys holding plain maps, slices, strings, numbers
// and booleans.
func Object(f *figure.Figure) (map[string]any, error) {
	data, err := JSON(f)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode figure")
	}
	return out, nil
}

// JSON encodes the figure compactly. Layout subplot keys are sorted, so
// the output is stable.
func JSON(f *figure.Figure) ([]byte, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil figure")
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode figure")
	}
	return data, nil
}

// JSONIndent encodes the figure with two-space indentation.
func JSONIndent(f *figure.Figure) ([]byte, error) {
	data, err := JSON(f)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "indent figure")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Options configures [Render] and [WriteFile].
type Options struct {
	HTML     []HTMLOption
	Exporter *Exporter
}

// Render produces f in the given format. Static formats need
// opts.Exporter.
func Render(ctx context.Context, f *figure.Figure, format Format, opts Options) ([]byte, error) {
	switch {
	case format == FormatJSON:
		return JSONIndent(f)
	case format == FormatHTML:
		return HTML(f, opts.HTML...)
	case format.Static():
		if opts.Exporter == nil {
			return nil, errors.New(errors.ErrCodeUnsupported, "%s export needs an export command", format)
		}
		return opts.Exporter.Export(ctx, f, format)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", string(format))
}

// WriteFile renders f to path in the format named by its extension.
func WriteFile(ctx context.Context, f *figure.Figure, path string, opts Options) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	data, err := Render(ctx, f, format, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
