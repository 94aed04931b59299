package cache

// Keyer derives cache keys. Every key embeds a hash of all inputs that
// affect the cached bytes.
type Keyer interface {
	// FigureKey addresses the built figure of one named plot.
	FigureKey(docHash, dataHash, plot string) string
	// ArtifactKey addresses one rendered output.
	ArtifactKey(figureHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	PlotlyURL string  `json:"plotly_url,omitempty"`
	Exporter  string  `json:"exporter,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces keys under the "tabplot:" namespace.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FigureKey implements [Keyer].
func (DefaultKeyer) FigureKey(docHash, dataHash, plot string) string {
	return hashKey("tabplot:figure", docHash, dataHash, plot)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(figureHash string, opts ArtifactKeyOpts) string {
	return hashKey("tabplot:artifact", figureHash, opts)
}
