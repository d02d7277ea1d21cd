package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

// LocalReducer collapses one window's worth of samples to a scalar.
// The slice is a scratch buffer reused between cells; reducers must
// not retain it.
type LocalReducer func(window []float64) float64

// EvaluateWindow applies reduce to the windowSize×windowSize
// neighbourhood centred on every cell of frame, producing a frame of
// the same shape.
//
// Border policy: windows are clamped to the frame, never padded. A
// cell near an edge reduces only the samples that actually exist, so
// corner cells of a 5×5 evaluation see 9 samples instead of 25. The
// same policy applies to every spatial feature type.
func EvaluateWindow(frame imagery.Frame, windowSize int, reduce LocalReducer) (imagery.Frame, error) {
	if windowSize < 1 {
		return imagery.Frame{}, fmt.Errorf("%w: window_size %d, must be >= 1", ErrInvalidParameter, windowSize)
	}
	out := imagery.NewFrame(frame.Width, frame.Height)
	// Offsets of the window relative to its centre. Even sizes lean
	// one cell towards the bottom-right, matching slice-style rounding.
	before := (windowSize - 1) / 2
	after := windowSize - before

	scratch := make([]float64, 0, windowSize*windowSize)
	for y := 0; y < frame.Height; y++ {
		y0 := clamp(y-before, 0, frame.Height)
		y1 := clamp(y+after, 0, frame.Height)
		for x := 0; x < frame.Width; x++ {
			x0 := clamp(x-before, 0, frame.Width)
			x1 := clamp(x+after, 0, frame.Width)
			scratch = scratch[:0]
			for wy := y0; wy < y1; wy++ {
				row := frame.Values[wy*frame.Width+x0 : wy*frame.Width+x1]
				scratch = append(scratch, row...)
			}
			out.Set(x, y, reduce(scratch))
		}
	}
	return out, nil
}

// LocalStd is the local sample standard deviation. Windows with fewer
// than two samples have no spread and reduce to 0.
func LocalStd(window []float64) float64 {
	if len(window) < 2 {
		return 0
	}
	return stat.StdDev(window, nil)
}

// LocalRange is the local peak-to-peak range (max - min).
func LocalRange(window []float64) float64 {
	return floats.Max(window) - floats.Min(window)
}

// LocalCV is the local coefficient of variation, std divided by mean.
// A zero local mean yields 0 rather than dividing by zero; a uniform
// window therefore reduces to 0 whether or not its mean is zero.
func LocalCV(window []float64) float64 {
	mean := stat.Mean(window, nil)
	if mean == 0 {
		return 0
	}
	return LocalStd(window) / mean
}

// EdgeStrength computes the Gaussian-smoothed gradient magnitude of a
// frame: smooth with a Gaussian of the given sigma, convolve with
// horizontal and vertical Sobel kernels, and take sqrt(gx²+gy²) per
// cell. Border samples replicate the nearest edge cell, consistent
// with the clamped window policy above.
func EdgeStrength(frame imagery.Frame, sigma float64) (imagery.Frame, error) {
	if sigma <= 0 {
		return imagery.Frame{}, fmt.Errorf("%w: sigma %g, must be > 0", ErrInvalidParameter, sigma)
	}
	smoothed := gaussianSmooth(frame, sigma)

	out := imagery.NewFrame(frame.Width, frame.Height)
	at := func(x, y int) float64 {
		return smoothed.At(clamp(x, 0, frame.Width-1), clamp(y, 0, frame.Height-1))
	}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			out.Set(x, y, math.Hypot(gx, gy))
		}
	}
	return out, nil
}

// gaussianSmooth runs a separable Gaussian blur over the frame. The
// kernel is truncated at three sigma and renormalised against the part
// that falls inside the frame, so edges are smoothed with real samples
// only.
func gaussianSmooth(frame imagery.Frame, sigma float64) imagery.Frame {
	radius := int(3*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
	}

	// Horizontal pass.
	tmp := imagery.NewFrame(frame.Width, frame.Height)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			var sum, weight float64
			for k := -radius; k <= radius; k++ {
				xx := x + k
				if xx < 0 || xx >= frame.Width {
					continue
				}
				w := kernel[k+radius]
				sum += w * frame.At(xx, y)
				weight += w
			}
			tmp.Set(x, y, sum/weight)
		}
	}
	// Vertical pass.
	out := imagery.NewFrame(frame.Width, frame.Height)
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			var sum, weight float64
			for k := -radius; k <= radius; k++ {
				yy := y + k
				if yy < 0 || yy >= frame.Height {
					continue
				}
				w := kernel[k+radius]
				sum += w * tmp.At(x, yy)
				weight += w
			}
			out.Set(x, y, sum/weight)
		}
	}
	return out
}
