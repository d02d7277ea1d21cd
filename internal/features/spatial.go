package features

import (
	"gonum.org/v1/gonum/floats"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

// Spatial catalog: each entry collapses the resolved time slice to a
// temporal-mean frame, then reduces local neighbourhoods with the
// Sliding-Window Evaluator. Output frames flatten back to per-pixel
// columns in the cube's spatial order.

// spatialReducer adapts a LocalReducer into a catalog entry.
func spatialReducer(reduce LocalReducer) computeFunc {
	return func(cube *imagery.DataCube, p featureParams) ([]result, error) {
		frame := cube.MeanFrame(p.band, p.consider.Lo, p.consider.Hi)
		out, err := EvaluateWindow(frame, p.window, reduce)
		if err != nil {
			return nil, err
		}
		return []result{{values: out.Values}}, nil
	}
}

// computeSpatialStdDifference takes the temporal-mean frame of each
// interval, differences them element-wise, and reduces the difference
// frame with the local standard deviation. High values mark areas
// whose change between the two periods is spatially uneven.
func computeSpatialStdDifference(cube *imagery.DataCube, p featureParams) ([]result, error) {
	one := cube.MeanFrame(p.band, p.one.Lo, p.one.Hi)
	two := cube.MeanFrame(p.band, p.two.Lo, p.two.Hi)
	diff := imagery.NewFrame(cube.Width, cube.Height)
	floats.SubTo(diff.Values, one.Values, two.Values)
	out, err := EvaluateWindow(diff, p.window, LocalStd)
	if err != nil {
		return nil, err
	}
	return []result{{values: out.Values}}, nil
}

// computeSpatialEdgeStrength runs the Gaussian-smoothed Sobel gradient
// magnitude over the temporal-mean frame.
func computeSpatialEdgeStrength(cube *imagery.DataCube, p featureParams) ([]result, error) {
	frame := cube.MeanFrame(p.band, p.consider.Lo, p.consider.Hi)
	out, err := EdgeStrength(frame, p.sigma)
	if err != nil {
		return nil, err
	}
	return []result{{values: out.Values}}, nil
}
