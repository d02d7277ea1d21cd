// Package heatmap renders spatial feature frames as heatmap images
// for visual inspection of an extraction run.
package heatmap

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

// frameGrid adapts a Frame to plotter.GridXYZ. Row 0 of the frame is
// drawn at the bottom of the plot.
type frameGrid struct {
	frame imagery.Frame
}

func (g frameGrid) Dims() (c, r int)   { return g.frame.Width, g.frame.Height }
func (g frameGrid) Z(c, r int) float64 { return g.frame.At(c, r) }
func (g frameGrid) X(c int) float64    { return float64(c) }
func (g frameGrid) Y(r int) float64    { return float64(r) }

// SavePNG renders one frame as a heatmap PNG.
func SavePNG(frame imagery.Frame, title, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	hm := plotter.NewHeatMap(frameGrid{frame: frame}, palette.Heat(16, 1))
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	if err := p.Save(8*vg.Inch, 8*vg.Inch*vg.Length(frame.Height)/vg.Length(frame.Width), path); err != nil {
		return fmt.Errorf("save heatmap %s: %w", path, err)
	}
	return nil
}

// SaveColumnPNG reshapes a per-pixel column back into its spatial
// frame and renders it. The column length must equal width*height.
func SaveColumnPNG(values []float64, width, height int, title, path string) error {
	if len(values) != width*height {
		return fmt.Errorf("column has %d values, frame is %dx%d", len(values), width, height)
	}
	frame := imagery.Frame{Width: width, Height: height, Values: values}
	return SavePNG(frame, title, path)
}
