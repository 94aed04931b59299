// Package cli implements the tabplot command-line interface.
//
// The commands render plot documents to files, serve them for live preview,
// summarize CSV files and manage the figure cache. The CLI is built using
// cobra and logs through charmbracelet/log; --verbose (-v) switches to
// debug-level logging and traces every pipeline event.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabplot/pkg/buildinfo"
	"github.com/matzehuels/tabplot/pkg/cache"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/observability"
	"github.com/matzehuels/tabplot/pkg/pipeline"
	"github.com/matzehuels/tabplot/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tabplot"

	// envCacheURL selects a shared Redis cache instead of the file cache.
	envCacheURL = "TABPLOT_CACHE_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level every pipeline,
// cache and server event is logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tabplot turns tables into interactive plots",
		Long:         `Tabplot builds interactive charts from tabular data. A plot document names the data source, the plots and an optional grid that arranges them; tabplot renders it to HTML, JSON or static images.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheOpts selects the cache a command runs against.
type cacheOpts struct {
	noCache bool
	url     string
}

func (o *cacheOpts) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the figure cache")
	cmd.Flags().StringVar(&o.url, "cache-url", "", "redis URL of a shared cache (default $"+envCacheURL+")")
}

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the build version.
func (c *CLI) newRunner(opts cacheOpts) (*pipeline.Runner, error) {
	store, err := c.newCache(opts)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func (c *CLI) newCache(opts cacheOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	url := opts.url
	if url == "" {
		url = os.Getenv(envCacheURL)
	}
	if url != "" {
		return cache.NewRedisCache(url)
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tabplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format list. An empty list keeps
// the document's formats.
func parseFormats(s string) ([]render.Format, error) {
	if s == "" {
		return nil, nil
	}
	var out []render.Format
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := render.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// exporterFlags builds a static image exporter from the command line.
func exporterFlags(command string, scale float64) (*render.Exporter, error) {
	if command == "" {
		if scale != 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--scale needs --export-cmd")
		}
		return nil, nil
	}
	if scale < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "--scale must be positive")
	}
	return &render.Exporter{Command: command, Scale: scale}, nil
}
