package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabplot/pkg/buildinfo"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/observability"
	"github.com/matzehuels/tabplot/pkg/pipeline"
	"github.com/matzehuels/tabplot/pkg/render"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		plotlyURL string
		cacheFlag cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "serve <document>",
		Short: "Preview a plot document in the browser",
		Long: `Serve runs a local preview server. The document is re-read on every request,
so edits show up on reload; unchanged plots come from the cache.

Routes:
  /                    every plot of the document on one page
  /plots/<name>        one plot as a standalone page ("grid" for the grid)
  /plots/<name>.json   the figure JSON of one plot
  /version             build information`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeFiles(documentExts...),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cacheFlag)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := newServer(args[0], runner, plotlyURL, c.Logger)
			return srv.listen(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&plotlyURL, "plotly-url", "", "script URL loaded by the pages")
	cacheFlag.register(cmd)

	return cmd
}

// =============================================================================
// Server
// =============================================================================

// server renders one document on demand.
type server struct {
	path      string
	runner    *pipeline.Runner
	plotlyURL string
	logger    *log.Logger
}

func newServer(path string, runner *pipeline.Runner, plotlyURL string, logger *log.Logger) *server {
	if plotlyURL == "" {
		plotlyURL = render.DefaultPlotlyURL
	}
	return &server{path: path, runner: runner, plotlyURL: plotlyURL, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hooksMiddleware)

	r.Get("/", s.handleIndex)
	r.Get("/plots/{name}", s.handlePlot)
	r.Get("/version", handleVersion)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func (s *server) listen(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- httpSrv.ListenAndServe() }()

	printSuccess("Serving %s", s.path)
	printKeyValue("URL", StyleLink.Render("http://"+addr))
	printDetail("Press Ctrl+C to stop")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return ctx.Err()
}

// execute re-reads the document and builds every plot. Only JSON is
// rendered here; pages are assembled from the figures.
func (s *server) execute(ctx context.Context) (*pipeline.Document, *pipeline.Result, error) {
	doc, err := pipeline.LoadDocument(s.path)
	if err != nil {
		return nil, nil, err
	}
	res, err := s.runner.Execute(ctx, doc, pipeline.Options{
		Formats:   []render.Format{render.FormatJSON},
		PlotlyURL: s.plotlyURL,
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, res, nil
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.PlotlyURL}}"></script>
<style>
body { font-family: sans-serif; margin: 2rem; }
section { margin-bottom: 3rem; }
h2 a { color: inherit; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Plots}}<section>
<h2><a href="/plots/{{.Name}}">{{.Name}}</a> <small><a href="/plots/{{.Name}}.json">json</a></small></h2>
{{.Fragment}}
</section>
{{end}}</body>
</html>
`))

type indexPlot struct {
	Name     string
	Fragment template.HTML
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc, res, err := s.execute(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	title := doc.Title
	if title == "" {
		title = s.path
	}

	data := struct {
		Title     string
		PlotlyURL string
		Plots     []indexPlot
	}{Title: title, PlotlyURL: s.plotlyURL}
	for _, name := range res.Names {
		frag, err := render.Inline(res.Figures[name], render.WithDivID("plot-"+name))
		if err != nil {
			s.fail(w, err)
			return
		}
		data.Plots = append(data.Plots, indexPlot{Name: name, Fragment: template.HTML(frag)})
	}

	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *server) handlePlot(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	name, asJSON := strings.CutSuffix(name, render.FormatJSON.Ext())

	doc, res, err := s.execute(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	fig, ok := res.Figures[name]
	if !ok {
		http.Error(w, fmt.Sprintf("no plot named %q", name), http.StatusNotFound)
		return
	}

	if asJSON {
		w.Header().Set("Content-Type", "application/json")
		w.Write(res.Artifacts[pipeline.ArtifactName(name, render.FormatJSON)])
		return
	}
	title := name
	if doc.Title != "" {
		title = doc.Title + " · " + name
	}
	page, err := render.HTML(fig, render.WithTitle(title), render.WithPlotlyURL(s.plotlyURL))
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buildinfo.Get())
}

// fail reports err with a status that tells document mistakes apart from
// server faults.
func (s *server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeColumnNotFound, errors.ErrCodeTypeMismatch, errors.ErrCodeOptionInconsistent,
		errors.ErrCodeEmptyGroup, errors.ErrCodeEmptyFacet, errors.ErrCodeCellOverlap, errors.ErrCodeInvalidGrid,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// hooksMiddleware reports every request to the HTTP hooks.
func hooksMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
