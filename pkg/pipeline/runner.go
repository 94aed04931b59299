package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tabplot/pkg/cache"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/observability"
	"github.com/matzehuels/tabplot/pkg/plot"
	"github.com/matzehuels/tabplot/pkg/render"
)

// Runner executes documents with caching. Both the CLI and the preview
// server use it.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs load, build, compose and render for doc.
func (r *Runner) Execute(ctx context.Context, doc *Document, opts Options) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	settings, err := doc.renderSettings(opts)
	if err != nil {
		return nil, err
	}
	selected, err := selectPlots(doc, opts.Plots)
	if err != nil {
		return nil, err
	}

	// Stage 1: Load
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, doc.Data.Path)
	tab, dataHash, err := Load(ctx, doc)
	rows := 0
	if tab != nil {
		rows = tab.Len()
	}
	observability.Pipeline().OnLoadComplete(ctx, doc.Data.Path, rows, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result := &Result{
		Table:     tab,
		DataHash:  dataHash,
		Figures:   make(map[string]*figure.Figure),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.Rows = rows
	result.Stats.LoadTime = time.Since(start)
	if tab != nil {
		r.Logger.Info("loaded data", "rows", rows, "columns", len(tab.Columns()), "duration", result.Stats.LoadTime)
	}

	// Stage 2: Build
	start = time.Now()
	for _, p := range selected {
		f, hit, err := r.BuildWithCacheInfo(ctx, doc, p, tab, dataHash, opts.Refresh)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", p.Name, err)
		}
		if hit {
			result.CacheInfo.FigureHits++
		}
		result.Figures[p.Name] = f
		result.Names = append(result.Names, p.Name)
	}
	result.Stats.Plots = len(selected)
	result.Stats.BuildTime = time.Since(start)
	r.Logger.Info("built plots",
		"plots", len(selected),
		"cached", result.CacheInfo.FigureHits,
		"duration", result.Stats.BuildTime)

	// Stage 3: Compose
	if doc.Grid != nil && built(result.Figures, gridPlots(doc.Grid, doc.names())) {
		start = time.Now()
		cells := cellCount(doc.Grid, doc.names())
		g, err := Compose(doc.Grid, doc.names(), result.Figures)
		result.Stats.ComposeTime = time.Since(start)
		observability.Pipeline().OnComposeComplete(ctx, cells, result.Stats.ComposeTime, err)
		if err != nil {
			return nil, fmt.Errorf("compose: %w", err)
		}
		result.Figures[GridName] = g
		result.Names = append(result.Names, GridName)
		r.Logger.Info("composed grid", "cells", cells, "duration", result.Stats.ComposeTime)
	}

	// Stage 4: Render
	start = time.Now()
	for _, name := range result.Names {
		for _, format := range settings.formats {
			data, hit, err := r.RenderWithCacheInfo(ctx, name, result.Figures[name], format, settings, doc.Title)
			if err != nil {
				return nil, fmt.Errorf("render %s: %w", ArtifactName(name, format), err)
			}
			if hit {
				result.CacheInfo.ArtifactHits++
			}
			result.Artifacts[ArtifactName(name, format)] = data
		}
	}
	result.Stats.RenderTime = time.Since(start)
	r.Logger.Info("rendered outputs",
		"artifacts", len(result.Artifacts),
		"formats", settings.formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds one plot, reading the figure from the cache
// when the plot spec and the data are unchanged. Image plots read their
// file on every build and are never cached.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, doc *Document, p PlotEntry, tab *table.Table, dataHash string, refresh bool) (*figure.Figure, bool, error) {
	spec := p.Spec
	if img, ok := spec.(*plot.Image); ok {
		resolved := *img
		resolved.Path = doc.resolve(img.Path)
		spec = &resolved
	}
	kind := string(spec.Kind())

	specData, err := json.Marshal(spec)
	if err != nil {
		return nil, false, fmt.Errorf("encode spec: %w", err)
	}
	cacheable := spec.Kind() != plot.KindImage
	key := r.Keyer.FigureKey(cache.Hash(append([]byte(kind+":"), specData...)), dataHash, p.Name)

	if cacheable && !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var f figure.Figure
			if err := json.Unmarshal(data, &f); err == nil {
				observability.Cache().OnCacheHit(ctx, "figure")
				return &f, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "figure")
	}

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, p.Name, kind)
	f, err := buildSpec(tab, spec)
	traces := 0
	if f != nil {
		traces = len(f.Data)
	}
	observability.Pipeline().OnBuildComplete(ctx, p.Name, kind, traces, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if cacheable {
		if data, err := render.JSON(f); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLFigure); err != nil {
				r.Logger.Warn("cache write failed", "plot", p.Name, "err", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "figure", len(data))
			}
		}
	}
	return f, false, nil
}

// RenderWithCacheInfo renders one figure in one format, reading the
// artifact from the cache when the figure and render settings are
// unchanged.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, name string, f *figure.Figure, format render.Format, s renderSettings, title string) ([]byte, bool, error) {
	figData, err := render.JSON(f)
	if err != nil {
		return nil, false, err
	}
	keyOpts := cache.ArtifactKeyOpts{Format: string(format), PlotlyURL: s.plotlyURL}
	if s.exporter != nil && format.Static() {
		keyOpts.Exporter = s.exporter.Command
		keyOpts.Scale = s.exporter.Scale
	}
	key := r.Keyer.ArtifactKey(cache.Hash(append([]byte(title+"\x00"), figData...)), keyOpts)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, name, string(format))
	data, err := render.Render(ctx, f, format, s.options(title))
	observability.Pipeline().OnRenderComplete(ctx, name, string(format), len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "artifact", ArtifactName(name, format), "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// WriteOutputs writes the artifacts of res to dir, or to the document's
// output directory when dir is empty.
func (r *Runner) WriteOutputs(doc *Document, res *Result, dir string) ([]string, error) {
	if dir == "" {
		dir = doc.resolve(doc.Output.Dir)
	}
	if dir == "" {
		dir = "."
	}
	paths, err := WriteArtifacts(filepath.Clean(dir), res.Artifacts)
	if err != nil {
		return paths, err
	}
	r.Logger.Info("wrote outputs", "dir", dir, "files", len(paths))
	return paths, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// selectPlots returns the plots named in only, in document order, or all
// plots when only is empty.
func selectPlots(doc *Document, only []string) ([]PlotEntry, error) {
	if len(only) == 0 {
		return doc.Plots, nil
	}
	want := make(map[string]bool, len(only))
	for _, n := range only {
		want[n] = true
	}
	var out []PlotEntry
	for _, p := range doc.Plots {
		if want[p.Name] {
			out = append(out, p)
			delete(want, p.Name)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for n := range want {
			missing = append(missing, n)
		}
		sort.Strings(missing)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown plot(s): %s", strings.Join(missing, ", "))
	}
	return out, nil
}

// buildSpec builds s, passing a nil table through as a nil interface.
func buildSpec(tab *table.Table, s plot.Spec) (*figure.Figure, error) {
	if tab == nil {
		return plot.Build(nil, s)
	}
	return plot.Build(tab, s)
}

func built(figs map[string]*figure.Figure, names []string) bool {
	if len(names) == 0 {
		return false
	}
	for _, n := range names {
		if _, ok := figs[n]; !ok {
			return false
		}
	}
	return true
}
