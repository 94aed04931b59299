package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/render"
)

// renderSettings are the resolved render options of one run.
type renderSettings struct {
	formats   []render.Format
	plotlyURL string
	exporter  *render.Exporter
}

func (d *Document) renderSettings(opts Options) (renderSettings, error) {
	formats, err := d.formats(opts.Formats)
	if err != nil {
		return renderSettings{}, err
	}
	s := renderSettings{
		formats:   formats,
		plotlyURL: d.Output.PlotlyURL,
		exporter:  d.exporter(opts.Exporter),
	}
	if opts.PlotlyURL != "" {
		s.plotlyURL = opts.PlotlyURL
	}
	return s, nil
}

// options returns the render options of a figure with the given document
// title.
func (s renderSettings) options(title string) render.Options {
	var html []render.HTMLOption
	if s.plotlyURL != "" {
		html = append(html, render.WithPlotlyURL(s.plotlyURL))
	}
	if title != "" {
		html = append(html, render.WithTitle(title))
	}
	return render.Options{HTML: html, Exporter: s.exporter}
}

// WriteArtifacts writes every artifact into dir, creating it, and returns
// the written paths in name order.
func WriteArtifacts(dir string, artifacts map[string][]byte) ([]string, error) {
	if err := errors.ValidatePath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	names := make([]string, 0, len(artifacts))
	for n := range artifacts {
		names = append(names, n)
	}
	sort.Strings(names)

	paths := make([]string, 0, len(names))
	for _, n := range names {
		path := filepath.Join(dir, n)
		if err := os.WriteFile(path, artifacts[n], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
