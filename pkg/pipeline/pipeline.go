// Package pipeline turns a declarative plot document into rendered
// artifacts.
//
// A [Document] names a data source, a list of plots and optionally a grid
// that composes them. The pipeline runs in four stages:
//
//  1. Load: read the data source into a table
//  2. Build: build one figure per plot
//  3. Compose: lay the plots out on the document's grid, if any
//  4. Render: produce every requested output format per figure
//
// Built figures and rendered artifacts are cached by content hash, so an
// unchanged document over unchanged data renders from the cache.
//
// # Usage
//
//	doc, err := pipeline.LoadDocument("penguins.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{})
//	html := result.Artifacts["mass.html"]
//
// A document in TOML:
//
//	[data]
//	path = "penguins.csv"
//
//	[[plots]]
//	name = "mass"
//	kind = "scatter"
//	x = "flipper_length_mm"
//	y = "body_mass_g"
//	group = "species"
//
//	[output]
//	formats = ["html", "json"]
package pipeline

import (
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultFormats are rendered when neither the document nor the options
// name any.
var DefaultFormats = []render.Format{render.FormatHTML}

// GridName is the figure name of the composed grid.
const GridName = "grid"

// =============================================================================
// Options and Results
// =============================================================================

// Options are per-run settings that override the document.
type Options struct {
	// Formats replaces the document's output formats when set.
	Formats []render.Format
	// Plots restricts building to the named plots. The grid is only
	// composed when every plot it places is built.
	Plots []string
	// Refresh skips cache reads. Results are still written.
	Refresh bool
	// PlotlyURL overrides the script URL of HTML outputs.
	PlotlyURL string
	// Exporter overrides the document's static image exporter.
	Exporter *render.Exporter
}

// Result holds the outputs of a pipeline run.
type Result struct {
	// Table is the loaded data, nil when the document has no data source.
	Table *table.Table
	// DataHash is the content hash of the data source.
	DataHash string
	// Figures holds every built figure by plot name, plus [GridName].
	Figures map[string]*figure.Figure
	// Names lists the figures in document order, the grid last.
	Names []string
	// Artifacts holds rendered outputs keyed by [ArtifactName].
	Artifacts map[string][]byte
	// Stats contains timing and size information.
	Stats Stats
	// CacheInfo counts cache hits per stage.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows        int
	Plots       int
	LoadTime    time.Duration
	BuildTime   time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo counts cache hits.
type CacheInfo struct {
	FigureHits   int
	ArtifactHits int
}

// ArtifactName is the key of a rendered output in [Result.Artifacts] and
// its file name when written.
func ArtifactName(name string, format render.Format) string {
	return name + format.Ext()
}
