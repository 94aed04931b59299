package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
)

// FormatPlaceholder is replaced by the requested format in an export
// command line.
const FormatPlaceholder = "{format}"

// Exporter converts figures to static images with an external command.
// The command reads figure JSON on stdin and writes the image to stdout.
type Exporter struct {
	// Command is the command line, split with shell quoting rules.
	Command string
	// Scale is passed as "--scale" when positive.
	Scale float64
}

// Args returns the argument vector for format.
func (e *Exporter) Args(format Format) ([]string, error) {
	args, err := shellquote.Split(e.Command)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse export command")
	}
	if len(args) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty export command")
	}
	for i, a := range args {
		args[i] = strings.ReplaceAll(a, FormatPlaceholder, string(format))
	}
	if e.Scale > 0 {
		args = append(args, "--scale", fmt.Sprintf("%g", e.Scale))
	}
	return args, nil
}

// Export renders f to a static image.
func (e *Exporter) Export(ctx context.Context, f *figure.Figure, format Format) ([]byte, error) {
	if !format.Static() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s is not a static image format", format)
	}
	args, err := e.Args(format)
	if err != nil {
		return nil, err
	}
	bin, err := exec.LookPath(args[0])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "export command %q not found", args[0])
	}
	data, err := JSON(f)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, args[1:]...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s export: %w: %s", format, err, msg)
		}
		return nil, fmt.Errorf("%s export: %w", format, err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s export: command produced no output", format)
	}
	return stdout.Bytes(), nil
}
