package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tabplot/pkg/cache"
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/render"
)

const penguinsCSV = `species,island,length,mass
A,x,10,1
B,y,20,2
A,y,30,3
`

const penguinsDoc = `
title = "Penguins"

[data]
path = "penguins.csv"

[[plots]]
name = "mass"
kind = "scatter"
x = "length"
y = "mass"
group = "species"

[[plots]]
name = "share"
kind = "pie"
labels = "species"

[grid]
rows = 1
cols = 2

[output]
formats = ["html", "json"]
`

// writeDocument writes the penguins document and its data to a temp dir.
func writeDocument(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "penguins.csv"), []byte(penguinsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "penguins.toml")
	if err := os.WriteFile(path, []byte(penguinsDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// captureStdout redirects user-facing output for the rest of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

// isolateCache points the file cache at a temp dir.
func isolateCache(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv(envCacheURL, "")
	return filepath.Join(dir, appName)
}

// execute runs the root command with args.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestCacheDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{"default", "", filepath.Join(home, ".cache", appName)},
		{"xdg", "/tmp/custom-cache", filepath.Join("/tmp/custom-cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CACHE_HOME", tt.xdg)
			got, err := cacheDir()
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input   string
		want    []render.Format
		wantErr bool
	}{
		{"", nil, false},
		{"html", []render.Format{render.FormatHTML}, false},
		{"html, json,png", []render.Format{render.FormatHTML, render.FormatJSON, render.FormatPNG}, false},
		{"jpg,", []render.Format{render.FormatJPEG}, false},
		{"html,gif", nil, true},
	}

	for _, tt := range tests {
		got, err := parseFormats(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestExporterFlags(t *testing.T) {
	tests := []struct {
		name    string
		command string
		scale   float64
		wantNil bool
		wantErr bool
	}{
		{"none", "", 0, true, false},
		{"command", "plot-export", 2, false, false},
		{"scale without command", "", 2, true, true},
		{"negative scale", "plot-export", -1, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := exporterFlags(tt.command, tt.scale)
			if (err != nil) != tt.wantErr {
				t.Fatalf("exporterFlags error = %v, wantErr %v", err, tt.wantErr)
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("exporterFlags = %v, wantNil %v", got, tt.wantNil)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	if got := strings.Join(splitList(" mass, ,share "), "|"); got != "mass|share" {
		t.Errorf("splitList = %q, want %q", got, "mass|share")
	}
	if got := splitList(""); got != nil {
		t.Errorf("splitList(\"\") = %v, want nil", got)
	}
}

func TestNewCache(t *testing.T) {
	dir := isolateCache(t)
	c := New(io.Discard, LogInfo)

	store, err := c.newCache(cacheOpts{noCache: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("newCache(noCache) = %T, want *cache.NullCache", store)
	}

	store, err = c.newCache(cacheOpts{})
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := store.(*cache.FileCache)
	if !ok {
		t.Fatalf("newCache() = %T, want *cache.FileCache", store)
	}
	if fc.Dir() != dir {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), dir)
	}

	t.Setenv(envCacheURL, "http://not-redis")
	if _, err := c.newCache(cacheOpts{}); err == nil {
		t.Error("newCache accepted a non-redis URL")
	}
}

func TestRenderCommand(t *testing.T) {
	isolateCache(t)
	out := captureStdout(t)
	doc := writeDocument(t)
	dir := t.TempDir()

	if err := execute(t, "render", doc, "-o", dir); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"mass.html", "mass.json", "share.html", "share.json", "grid.html", "grid.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s", name)
		}
	}
	if !strings.Contains(out.String(), "fresh") {
		t.Errorf("first run output = %q, want fresh", out.String())
	}

	out.Reset()
	if err := execute(t, "render", doc, "-o", dir, "-f", "json"); err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(out.String(), "cached") {
		t.Errorf("second run output = %q, want cached", out.String())
	}
}

func TestRenderCommandSelectedPlots(t *testing.T) {
	isolateCache(t)
	out := captureStdout(t)
	dir := t.TempDir()

	if err := execute(t, "render", writeDocument(t), "-o", dir, "-f", "json", "--plot", "share", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "share.json" {
		t.Errorf("outputs = %v, want share.json only", entries)
	}
	if !strings.Contains(out.String(), "Grid not composed") {
		t.Errorf("output = %q, want grid warning", out.String())
	}
}

func TestRenderCommandErrors(t *testing.T) {
	isolateCache(t)
	captureStdout(t)
	doc := writeDocument(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing document", []string{"render", filepath.Join(t.TempDir(), "none.toml")}, errors.ErrCodeFileNotFound},
		{"bad format", []string{"render", doc, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"unknown plot", []string{"render", doc, "--plot", "nope"}, errors.ErrCodeInvalidInput},
		{"static without exporter", []string{"render", doc, "-f", "png", "-o", t.TempDir()}, errors.ErrCodeUnsupported},
		{"scale without exporter", []string{"render", doc, "--scale", "2"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("render error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	dir := isolateCache(t)
	out := captureStdout(t)

	if err := execute(t, "cache", "path"); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	if err := execute(t, "render", writeDocument(t), "-o", t.TempDir(), "-f", "json"); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) == 0 {
		t.Fatal("render left the cache empty")
	}

	out.Reset()
	if err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("cache holds %d entries after clear", len(entries))
	}
	if !strings.Contains(out.String(), "Cleared cache") {
		t.Errorf("clear output = %q", out.String())
	}
}

func TestCompletionCommand(t *testing.T) {
	out := captureStdout(t)
	if err := execute(t, "completion", "bash"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), appName) {
		t.Error("bash completion does not mention the program")
	}
	if err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("completion accepted an unknown shell")
	}
}
