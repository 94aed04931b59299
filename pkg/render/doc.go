// Package render turns built or composed figures into output formats.
//
// # Overview
//
// Every function here is a pure function of the figure: rendering the same
// figure twice yields byte-identical output, and the figure is never
// modified. The package provides:
//
//   - [Object]: the in-memory backend object (plain maps and slices)
//   - [JSON] and [JSONIndent]: the structured interchange form
//   - [HTML]: a self-contained document that loads the plotting library
//   - [Inline]: an embeddable fragment for pages that already load it
//
// # Markup
//
// The markup renders the figure's JSON into a div. The div id is derived
// from the figure content unless [WithDivID] sets one, so repeated calls
// agree:
//
//	page, err := render.HTML(fig, render.WithTitle("penguins"))
//	frag, err := render.Inline(fig, render.WithDivID("plot-1"))
//
// # Static Images
//
// Static export is opt-in and delegated to an external command that reads
// figure JSON on stdin and writes the image to stdout. The command line is
// split with shell quoting rules and "{format}" is replaced by the
// requested format:
//
//	exp := render.Exporter{Command: "plotly-export --format {format}"}
//	png, err := exp.Export(ctx, fig, render.FormatPNG)
//
// [Render] dispatches on a [Format] and [WriteFile] picks the format from
// the file extension.
package render
