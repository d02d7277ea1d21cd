package features

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verdant-data/canopy.report/internal/testutil"
)

func TestSpatialStdDifference(t *testing.T) {
	t.Parallel()

	t.Run("identical intervals reduce to zero everywhere", func(t *testing.T) {
		t.Parallel()
		// Spatially and temporally varied data, but the same bounds on
		// both sides: the difference frame is zero, and so is its local
		// std.
		cube := testutil.NewCube(t, 4, 3, 24, 1, func(pixel, step, band int) float64 {
			return float64(pixel*7 + step)
		})
		values := dispatchOne(t, cube, Declaration{
			Type:             "spatial_std_difference",
			BandID:           ip(0),
			WindowSize:       ip(3),
			IntervalOneStart: ip(0), IntervalOneEnd: ip(12),
			IntervalTwoStart: ip(0), IntervalTwoEnd: ip(12),
		})
		testutil.AssertFloatsNear(t, values, make([]float64, 12), 0)
	})

	t.Run("local std of the difference frame", func(t *testing.T) {
		t.Parallel()
		// Step 1 is flat zero, so differencing the two single-step
		// intervals leaves step 0's ramp 0..8 as the difference frame.
		cube := testutil.NewCube(t, 3, 3, 2, 1, func(pixel, step, band int) float64 {
			if step == 0 {
				return float64(pixel)
			}
			return 0
		})
		values := dispatchOne(t, cube, Declaration{
			Type:             "spatial_std_difference",
			BandID:           ip(0),
			WindowSize:       ip(3),
			IntervalOneStart: ip(0), IntervalOneEnd: ip(1),
			IntervalTwoStart: ip(1), IntervalTwoEnd: ip(2),
		})
		// The centre window sees all of 0..8, the top-left corner only
		// {0,1,3,4}.
		assert.InDelta(t, 2.7386127875, values[4], 1e-9)
		assert.InDelta(t, 1.8257418584, values[0], 1e-9)
	})
}
