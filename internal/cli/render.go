package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tabplot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string    // output directory, overrides the document's
	formats   string    // comma-separated output formats
	plots     string    // comma-separated plot names to build
	pick      bool      // choose plots interactively
	refresh   bool      // skip cache reads
	plotlyURL string    // script URL for HTML outputs
	exportCmd string    // static image export command
	scale     float64   // static image scale factor
	cache     cacheOpts // cache selection
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <document>",
		Short: "Render a plot document to HTML, JSON or images",
		Long: `Render loads the document's data, builds every plot, composes the grid
and writes one file per plot and format.

Static formats (png, jpeg, webp, svg, pdf) are produced by an external
command that reads figure JSON on stdin and writes the image to stdout.`,
		Example: `  tabplot render penguins.toml
  tabplot render penguins.toml -f html,json -o site/
  tabplot render penguins.yaml --plot mass,share
  tabplot render penguins.toml -f png --export-cmd "plotly-export --format {format}"`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles(documentExts...),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default from document, else .)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): html, json, png, jpeg, webp, svg, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.plots, "plot", "p", "", "only build the named plot(s) (comma-separated)")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose plots interactively")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild everything, ignoring cached results")
	cmd.Flags().StringVar(&opts.plotlyURL, "plotly-url", "", "script URL loaded by HTML outputs")
	cmd.Flags().StringVar(&opts.exportCmd, "export-cmd", "", "static image export command")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "static image scale factor")
	opts.cache.register(cmd)

	return cmd
}

// pipelineOptions converts the flags into run options.
func (o renderOpts) pipelineOptions() (pipeline.Options, error) {
	formats, err := parseFormats(o.formats)
	if err != nil {
		return pipeline.Options{}, err
	}
	exporter, err := exporterFlags(o.exportCmd, o.scale)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Formats:   formats,
		Plots:     splitList(o.plots),
		Refresh:   o.refresh,
		PlotlyURL: o.plotlyURL,
		Exporter:  exporter,
	}, nil
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	doc, err := pipeline.LoadDocument(path)
	if err != nil {
		return err
	}
	popts, err := opts.pipelineOptions()
	if err != nil {
		return err
	}
	if opts.pick {
		names, err := pickPlots(doc)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			printInfo("Nothing selected")
			return nil
		}
		popts.Plots = names
	}

	runner, err := c.newRunner(opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(path)))
	spinner.Start()
	res, err := runner.Execute(ctx, doc, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths, err := runner.WriteOutputs(doc, res, opts.output)
	if err != nil {
		return err
	}
	prog.done("rendered", "artifacts", len(paths))

	printSuccess("Rendered %s", joinPlain(res.Names))
	printStats(res.Stats, res.CacheInfo)
	for _, p := range paths {
		printFile(p)
	}
	if skipped := skippedGrid(doc, res); skipped {
		printWarning("Grid not composed: it places plots that were not built")
	}
	printNewline()
	printNextStep("Preview", fmt.Sprintf("%s serve %s", appName, path))
	return nil
}

// skippedGrid reports whether the document has a grid that this run left
// out.
func skippedGrid(doc *pipeline.Document, res *pipeline.Result) bool {
	if doc.Grid == nil {
		return false
	}
	_, ok := res.Figures[pipeline.GridName]
	return !ok
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
