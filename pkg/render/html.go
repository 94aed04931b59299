package render

import (
	"bytes"
	"html/template"

	"github.com/google/uuid"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
)

// DefaultPlotlyURL is the script the HTML document loads.
const DefaultPlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// divNamespace seeds content-derived div ids.
var divNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/tabplot"))

// HTMLOption configures [HTML] and [Inline].
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	divID     string
	plotlyURL string
	title     string
}

// WithDivID sets the id of the div the figure is drawn into.
func WithDivID(id string) HTMLOption { return func(r *htmlRenderer) { r.divID = id } }

// WithPlotlyURL loads the plotting library from url instead of the CDN.
func WithPlotlyURL(url string) HTMLOption { return func(r *htmlRenderer) { r.plotlyURL = url } }

// WithTitle sets the document title. It defaults to the figure title.
func WithTitle(title string) HTMLOption { return func(r *htmlRenderer) { r.title = title } }

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.PlotlyURL}}"></script>
</head>
<body>
{{template "fragment" .}}
</body>
</html>
`))

var fragmentTmpl = template.Must(documentTmpl.New("fragment").Parse(`<div id="{{.DivID}}" class="tabplot"></div>
<script>
(function() {
  var fig = {{.Figure}};
  Plotly.newPlot({{.DivID}}, fig.data, fig.layout, {responsive: true});
})();
</script>`))

type htmlData struct {
	Title     string
	PlotlyURL string
	DivID     string
	Figure    template.JS
}

// HTML renders f as a complete, self-contained HTML document.
func HTML(f *figure.Figure, opts ...HTMLOption) ([]byte, error) {
	return execute(documentTmpl, f, opts)
}

// Inline renders f as an HTML fragment for a page that already loads the
// plotting library.
func Inline(f *figure.Figure, opts ...HTMLOption) ([]byte, error) {
	return execute(fragmentTmpl, f, opts)
}

func execute(tmpl *template.Template, f *figure.Figure, opts []HTMLOption) ([]byte, error) {
	data, err := JSON(f)
	if err != nil {
		return nil, err
	}
	r := htmlRenderer{plotlyURL: DefaultPlotlyURL}
	for _, opt := range opts {
		opt(&r)
	}
	if r.divID == "" {
		r.divID = "plot-" + uuid.NewSHA1(divNamespace, data).String()
	}
	if r.title == "" && f.Layout != nil && f.Layout.Title != nil {
		r.title = f.Layout.Title.Text
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, htmlData{
		Title:     r.title,
		PlotlyURL: r.plotlyURL,
		DivID:     r.divID,
		Figure:    template.JS(data),
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html")
	}
	return buf.Bytes(), nil
}
