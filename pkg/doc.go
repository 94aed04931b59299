// Package pkg provides the core libraries for Tabplot.
//
// # Overview
//
// Tabplot turns a table into interactive chart figures. A plot spec names
// columns of the table and styling options; a builder reads the columns,
// splits rows into groups and facets, and emits a backend-neutral figure
// that renders to JSON or HTML. The pkg directory is organized into:
//
//  1. [column], [partition], [style] - reading and splitting tabular data
//  2. [plot] - one builder per chart family
//  3. [figure], [grid] - the figure model and the subplot grid composer
//  4. [render] - JSON, HTML and static image outputs
//  5. [source], [pipeline], [cache] - plot documents, data sources and caching
//
// # Architecture
//
// The data flow of a plot document:
//
//	CSV file / MongoDB collection
//	         ↓
//	    [source] package (load into a table)
//	         ↓
//	    [plot] package (extract columns, partition, build traces)
//	         ↓
//	    [grid] package (compose plots into one figure)
//	         ↓
//	    [render] package (JSON, HTML, PNG/SVG/PDF via an exporter)
//
// # Quick Start
//
// Build a grouped scatter plot and write it as HTML:
//
//	import (
//	    "github.com/matzehuels/tabplot/pkg/plot"
//	    "github.com/matzehuels/tabplot/pkg/render"
//	    "github.com/matzehuels/tabplot/pkg/source"
//	)
//
//	tab, _ := source.LoadCSV("penguins.csv")
//	fig, err := plot.Build(tab, &plot.Scatter{
//	    X:        "flipper_length",
//	    Y:        "body_mass",
//	    Grouping: plot.Grouping{Group: "species"},
//	})
//	if err != nil {
//	    return err
//	}
//	page, _ := render.HTML(fig, render.WithTitle("Penguins"))
//
// Arrange several plots in a grid:
//
//	combined, err := grid.Irregular(grid.Spec{Rows: 2, Cols: 2},
//	    grid.Placement{Figure: mass, Cell: grid.Cell{Row: 0, Col: 0, ColSpan: 2}},
//	    grid.Placement{Figure: share, Cell: grid.Cell{Row: 1, Col: 0}},
//	    grid.Placement{Figure: islands, Cell: grid.Cell{Row: 1, Col: 1}},
//	)
//
// # Main Packages
//
// ## Data
//
//   - [column]: the read-only table contract and typed column extraction
//   - [partition]: group and facet splitting in first-seen or explicit order
//   - [source]: CSV, image and MongoDB loaders
//
// ## Plotting
//
//   - [style]: colors, palettes, shapes, line styles, axis and legend options
//   - [plot]: the chart families and [plot.Build]
//   - [figure]: traces and layout in the plotting backend's object model
//   - [grid]: regular and irregular subplot grids with legend merging
//
// ## Output
//
//   - [render]: pure renderers plus the static image [render.Exporter]
//   - [pipeline]: plot documents (TOML, YAML, JSON) and the cached [pipeline.Runner]
//   - [cache]: file, Redis and null caches with content-addressed keys
//
// ## Support
//
//   - [errors]: structured errors with codes and builder, column and option context
//   - [observability]: pipeline, cache and HTTP hooks
//   - [buildinfo]: version information injected at build time
//
// [column]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/column
// [partition]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/partition
// [source]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/source
// [style]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/style
// [plot]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/plot
// [plot.Build]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/plot#Build
// [figure]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/figure
// [grid]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/grid
// [render]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/render
// [render.Exporter]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/render#Exporter
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/tabplot/pkg/buildinfo
package pkg
