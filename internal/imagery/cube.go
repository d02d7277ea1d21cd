package imagery

import (
	"fmt"
)

// DataCube holds one extraction run's worth of imagery: a dense
// (spatial index, time step, band) array backed by a single flat
// slice. Values are laid out pixel-major: all steps and bands for
// pixel 0, then pixel 1, and so on. Within a pixel, steps are
// contiguous groups of Bands values.
//
// A DataCube is treated as read-only once constructed; nothing in this
// module mutates it after load.
type DataCube struct {
	Width  int // pixels per row of the spatial grid
	Height int // rows of the spatial grid
	Steps  int // time steps (monthly cadence: step 0 = month 0)
	Bands  int // spectral bands per observation

	values []float64
}

// NewDataCube allocates a zero-filled cube with the given shape.
func NewDataCube(width, height, steps, bands int) (*DataCube, error) {
	if width < 1 || height < 1 || steps < 1 || bands < 1 {
		return nil, fmt.Errorf("invalid cube shape %dx%d pixels, %d steps, %d bands", width, height, steps, bands)
	}
	return &DataCube{
		Width:  width,
		Height: height,
		Steps:  steps,
		Bands:  bands,
		values: make([]float64, width*height*steps*bands),
	}, nil
}

// FromValues builds a cube around an existing flat value slice. The
// slice is used directly, not copied; callers hand over ownership.
func FromValues(width, height, steps, bands int, values []float64) (*DataCube, error) {
	c, err := NewDataCube(width, height, steps, bands)
	if err != nil {
		return nil, err
	}
	if len(values) != len(c.values) {
		return nil, fmt.Errorf("cube shape %dx%dx%dx%d requires %d values, got %d",
			width, height, steps, bands, len(c.values), len(values))
	}
	c.values = values
	return c, nil
}

// Pixels returns the length of the flattened spatial axis.
func (c *DataCube) Pixels() int { return c.Width * c.Height }

func (c *DataCube) offset(pixel, step, band int) int {
	return (pixel*c.Steps+step)*c.Bands + band
}

// At returns the value at (pixel, step, band). Indices are not bounds
// checked beyond the underlying slice.
func (c *DataCube) At(pixel, step, band int) float64 {
	return c.values[c.offset(pixel, step, band)]
}

// Set writes the value at (pixel, step, band).
func (c *DataCube) Set(pixel, step, band int, v float64) {
	c.values[c.offset(pixel, step, band)] = v
}

// SeriesInto copies one pixel's full time series for a band into dst,
// which must have length Steps, and returns dst. The band axis is
// strided in the backing slice, so a copy is unavoidable; callers
// reuse dst across pixels to keep extraction allocation-free in the
// inner loop.
func (c *DataCube) SeriesInto(dst []float64, pixel, band int) []float64 {
	base := pixel * c.Steps * c.Bands
	for t := 0; t < c.Steps; t++ {
		dst[t] = c.values[base+t*c.Bands+band]
	}
	return dst
}

// MeanFrame collapses the half-open time interval [lo, hi) of one band
// to a single spatial frame of per-pixel temporal means. The interval
// must be non-empty and within [0, Steps]; interval resolution is the
// caller's concern.
func (c *DataCube) MeanFrame(band, lo, hi int) Frame {
	f := NewFrame(c.Width, c.Height)
	n := float64(hi - lo)
	for pixel := 0; pixel < c.Pixels(); pixel++ {
		base := pixel * c.Steps * c.Bands
		var sum float64
		for t := lo; t < hi; t++ {
			sum += c.values[base+t*c.Bands+band]
		}
		f.Values[pixel] = sum / n
	}
	return f
}
