package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-data/canopy.report/internal/testutil"
)

func TestDispatchValidation(t *testing.T) {
	t.Parallel()
	cube := testutil.NewCube(t, 2, 2, 24, 2, func(pixel, step, band int) float64 {
		return float64(pixel + step + band)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		_, err := Dispatch(cube, Declaration{Type: "kurtosis", BandID: ip(0)})
		assert.ErrorIs(t, err, ErrUnknownFeatureType)
		assert.ErrorContains(t, err, "kurtosis")
	})

	t.Run("missing band", func(t *testing.T) {
		t.Parallel()
		_, err := Dispatch(cube, Declaration{Type: "mean"})
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("band out of range", func(t *testing.T) {
		t.Parallel()
		_, err := Dispatch(cube, Declaration{Type: "mean", BandID: ip(2)})
		assert.ErrorIs(t, err, ErrInvalidParameter)
		_, err = Dispatch(cube, Declaration{Type: "mean", BandID: ip(-1)})
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("non-positive window size", func(t *testing.T) {
		t.Parallel()
		_, err := Dispatch(cube, Declaration{Type: "spatial_std", BandID: ip(0), WindowSize: ip(0)})
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("month out of range", func(t *testing.T) {
		t.Parallel()
		for _, month := range []int{-1, 12, 100} {
			_, err := Dispatch(cube, Declaration{
				Type:   "deseasonalized_diff_specific_month",
				BandID: ip(0),
				Month:  ip(month),
			})
			assert.ErrorIs(t, err, ErrInvalidParameter, "month %d", month)
		}
	})

	t.Run("non-positive sigma", func(t *testing.T) {
		t.Parallel()
		sigma := 0.0
		_, err := Dispatch(cube, Declaration{Type: "spatial_edge_strength", BandID: ip(0), Sigma: &sigma})
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("irrelevant fields are ignored", func(t *testing.T) {
		t.Parallel()
		// A temporal mean carries no window or sigma; bad values there
		// must not fail the declaration.
		cols, err := Dispatch(cube, Declaration{
			Type:       "mean",
			BandID:     ip(0),
			WindowSize: ip(0),
			Month:      ip(99),
		})
		require.NoError(t, err)
		assert.Equal(t, "mean_b0_t0.24", cols[0].Name)
	})
}

func TestDispatchDefaults(t *testing.T) {
	t.Parallel()
	cube := testutil.NewCube(t, 3, 3, 24, 1, func(pixel, step, band int) float64 {
		return float64(pixel)
	})

	t.Run("window defaults to five", func(t *testing.T) {
		t.Parallel()
		cols, err := Dispatch(cube, Declaration{Type: "spatial_std", BandID: ip(0)})
		require.NoError(t, err)
		assert.Equal(t, "spatial_std_b0_w5_t0.24", cols[0].Name)
	})

	t.Run("sigma defaults to one", func(t *testing.T) {
		t.Parallel()
		cols, err := Dispatch(cube, Declaration{Type: "spatial_edge_strength", BandID: ip(0)})
		require.NoError(t, err)
		assert.Equal(t, "spatial_edge_strength_b0_s1_t0.24", cols[0].Name)
	})

	t.Run("lag defaults to twelve", func(t *testing.T) {
		t.Parallel()
		cols, err := Dispatch(cube, Declaration{Type: "deseasonalized_diff", BandID: ip(0)})
		require.NoError(t, err)
		assert.Equal(t, "deseasonalized_diff_b0_lag12_t0.24", cols[0].Name)
	})

	t.Run("dual intervals default to first year versus last", func(t *testing.T) {
		t.Parallel()
		cols, err := Dispatch(cube, Declaration{Type: "difference_in_mean_between_intervals", BandID: ip(0)})
		require.NoError(t, err)
		assert.Equal(t, "difference_in_mean_between_intervals_b0_i0.11_i12.23", cols[0].Name)
	})
}

func TestKnownTypes(t *testing.T) {
	t.Parallel()
	types := KnownTypes()
	assert.Len(t, types, 11)
	assert.Contains(t, types, "raw")
	assert.Contains(t, types, "spatial_edge_strength")
	assert.IsIncreasing(t, types)
}
