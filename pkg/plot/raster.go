package plot

import (
	"github.com/matzehuels/tabplot/pkg/errors"
	"github.com/matzehuels/tabplot/pkg/figure"
	"github.com/matzehuels/tabplot/pkg/source"
	"github.com/matzehuels/tabplot/pkg/style"
)

// Image shows a raster file. PNG, JPEG, GIF, BMP, TIFF and WebP files are
// read and embedded as a PNG data URI, so the figure is self-contained.
type Image struct {
	Path string `json:"path"`
	Common
}

func (*Image) Kind() Kind { return KindImage }
func (*Image) spec()      {}

// Array2D shows a matrix of colors, one per pixel, row 0 on top.
type Array2D struct {
	Pixels [][]style.Rgb `json:"pixels"`
	Common
}

func (*Array2D) Kind() Kind { return KindArray2D }
func (*Array2D) spec()      {}

func (s *Array2D) validate() error {
	if len(s.Pixels) == 0 || len(s.Pixels[0]) == 0 {
		return errors.Inconsistent("pixels", "pixel array is empty")
	}
	for i, row := range s.Pixels {
		if len(row) != len(s.Pixels[0]) {
			return errors.Inconsistent("pixels", "row %d has %d pixels, want %d", i, len(row), len(s.Pixels[0]))
		}
	}
	return nil
}

func buildImage(s *Image) (*figure.Figure, error) {
	if err := need("path", s.Path); err != nil {
		return nil, err
	}
	if err := s.Common.validate(); err != nil {
		return nil, err
	}
	uri, err := source.ImageDataURI(s.Path)
	if err != nil {
		return nil, err
	}
	f := figure.New()
	f.Add(&figure.Trace{Type: "image", Source: uri})
	rasterAxes(f, &s.Common)
	s.finish(f)
	return f, nil
}

func buildArray2D(s *Array2D) (*figure.Figure, error) {
	if err := check(s.Common.validate, s.validate); err != nil {
		return nil, err
	}
	z := make([][][3]uint8, len(s.Pixels))
	for i, row := range s.Pixels {
		z[i] = make([][3]uint8, len(row))
		for j, c := range row {
			z[i][j] = [3]uint8{c.R, c.G, c.B}
		}
	}
	f := figure.New()
	f.Add(&figure.Trace{Type: "image", Z: z})
	rasterAxes(f, &s.Common)
	s.finish(f)
	return f, nil
}

// rasterAxes hides the axes of an image unless they are configured.
func rasterAxes(f *figure.Figure, c *Common) {
	c.cartesianAxes(f, 0, 0)
	if c.XAxis == nil {
		f.Layout.Axes["xaxis"].Visible = figure.Bool(false)
	}
	if c.YAxis == nil {
		f.Layout.Axes["yaxis"].Visible = figure.Bool(false)
	}
}
