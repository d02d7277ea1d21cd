package features

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

// Temporal catalog: each entry reduces one band's per-pixel time
// series over the resolved consideration interval.

// computeRaw selects the interval's time steps without reduction. A
// single-step interval yields one column; a wider interval stays
// multi-valued, one column per selected step, suffixed with the
// absolute step offset.
func computeRaw(cube *imagery.DataCube, p featureParams) ([]result, error) {
	results := make([]result, 0, p.consider.Len())
	for t := p.consider.Lo; t < p.consider.Hi; t++ {
		values := make([]float64, cube.Pixels())
		for pixel := range values {
			values[pixel] = cube.At(pixel, t, p.band)
		}
		suffix := ""
		if p.consider.Len() > 1 {
			suffix = fmt.Sprintf("step%d", t)
		}
		results = append(results, result{suffix: suffix, values: values})
	}
	return results, nil
}

// computeMean reduces the interval to its arithmetic mean per pixel.
func computeMean(cube *imagery.DataCube, p featureParams) ([]result, error) {
	return perPixel(cube, p, func(series []float64) float64 {
		return stat.Mean(series[p.consider.Lo:p.consider.Hi], nil)
	}), nil
}

// computeStd reduces the interval to its population standard deviation
// per pixel. Population rather than sample: the interval is the whole
// signal under consideration, not a draw from it.
func computeStd(cube *imagery.DataCube, p featureParams) ([]result, error) {
	return perPixel(cube, p, func(series []float64) float64 {
		return stat.PopStdDev(series[p.consider.Lo:p.consider.Hi], nil)
	}), nil
}

// computeDeseasonalizedDiff strips seasonality by differencing each
// step against the step lag before it, then averages the differences
// across the interval to one scalar per pixel. Steps without lag
// history behind them are skipped; an interval with no eligible step
// at all fails with ErrInsufficientHistory.
func computeDeseasonalizedDiff(cube *imagery.DataCube, p featureParams) ([]result, error) {
	first := p.consider.Lo
	if first < p.lag {
		first = p.lag
	}
	if first >= p.consider.Hi {
		return nil, fmt.Errorf("%w: lag %d leaves no step in [%d, %d)",
			ErrInsufficientHistory, p.lag, p.consider.Lo, p.consider.Hi)
	}
	n := float64(p.consider.Hi - first)
	return perPixel(cube, p, func(series []float64) float64 {
		var sum float64
		for t := first; t < p.consider.Hi; t++ {
			sum += series[t] - series[t-p.lag]
		}
		return sum / n
	}), nil
}

// computeDeseasonalizedDiffMonth is the deseasonalized difference
// restricted to steps falling on one calendar month, assuming the
// fixed 12-step yearly cadence with step 0 = month 0.
func computeDeseasonalizedDiffMonth(cube *imagery.DataCube, p featureParams) ([]result, error) {
	var steps []int
	for t := p.consider.Lo; t < p.consider.Hi; t++ {
		if t%monthsPerYear == p.month && t >= p.lag {
			steps = append(steps, t)
		}
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: no step for month %d with lag %d in [%d, %d)",
			ErrInsufficientHistory, p.month, p.lag, p.consider.Lo, p.consider.Hi)
	}
	n := float64(len(steps))
	return perPixel(cube, p, func(series []float64) float64 {
		var sum float64
		for _, t := range steps {
			sum += series[t] - series[t-p.lag]
		}
		return sum / n
	}), nil
}

// computeDifferenceInMeans resolves both intervals independently and
// returns mean(interval one) - mean(interval two) per pixel. The
// intervals may overlap; identical intervals difference to exactly 0.
func computeDifferenceInMeans(cube *imagery.DataCube, p featureParams) ([]result, error) {
	return perPixel(cube, p, func(series []float64) float64 {
		return stat.Mean(series[p.one.Lo:p.one.Hi], nil) - stat.Mean(series[p.two.Lo:p.two.Hi], nil)
	}), nil
}

// perPixel runs a full-series reduction for every pixel of the band,
// reusing one series buffer across pixels.
func perPixel(cube *imagery.DataCube, p featureParams, reduce func(series []float64) float64) []result {
	values := make([]float64, cube.Pixels())
	series := make([]float64, cube.Steps)
	for pixel := range values {
		values[pixel] = reduce(cube.SeriesInto(series, pixel, p.band))
	}
	return []result{{values: values}}
}
