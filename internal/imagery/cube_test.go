package imagery

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataCube(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		t.Parallel()
		for _, shape := range [][4]int{
			{0, 2, 3, 1},
			{2, 0, 3, 1},
			{2, 2, 0, 1},
			{2, 2, 3, 0},
		} {
			_, err := NewDataCube(shape[0], shape[1], shape[2], shape[3])
			assert.Error(t, err, "shape %v", shape)
		}
	})

	t.Run("allocates the full extent", func(t *testing.T) {
		t.Parallel()
		c, err := NewDataCube(3, 2, 4, 5)
		require.NoError(t, err)
		assert.Equal(t, 6, c.Pixels())

		c.Set(5, 3, 4, 1.5)
		assert.Equal(t, 1.5, c.At(5, 3, 4))
		assert.Equal(t, 0.0, c.At(0, 0, 0))
	})
}

func TestFromValues(t *testing.T) {
	t.Parallel()

	t.Run("rejects mismatched length", func(t *testing.T) {
		t.Parallel()
		_, err := FromValues(2, 1, 3, 1, make([]float64, 5))
		assert.Error(t, err)
	})

	t.Run("keeps value order", func(t *testing.T) {
		t.Parallel()
		// 1 pixel, 2 steps, 2 bands: layout is step-major within pixel.
		c, err := FromValues(1, 1, 2, 2, []float64{10, 11, 20, 21})
		require.NoError(t, err)
		assert.Equal(t, 10.0, c.At(0, 0, 0))
		assert.Equal(t, 11.0, c.At(0, 0, 1))
		assert.Equal(t, 20.0, c.At(0, 1, 0))
		assert.Equal(t, 21.0, c.At(0, 1, 1))
	})
}

func TestSeriesInto(t *testing.T) {
	t.Parallel()
	c, err := NewDataCube(2, 1, 4, 2)
	require.NoError(t, err)
	for step := 0; step < 4; step++ {
		c.Set(1, step, 1, float64(step*10))
	}

	dst := make([]float64, 4)
	got := c.SeriesInto(dst, 1, 1)
	assert.Equal(t, []float64{0, 10, 20, 30}, got)
}

func TestMeanFrame(t *testing.T) {
	t.Parallel()
	c, err := NewDataCube(2, 2, 3, 1)
	require.NoError(t, err)
	for pixel := 0; pixel < 4; pixel++ {
		for step := 0; step < 3; step++ {
			c.Set(pixel, step, 0, float64(pixel)+float64(step))
		}
	}

	f := c.MeanFrame(0, 0, 3)
	require.Equal(t, 2, f.Width)
	require.Equal(t, 2, f.Height)
	// Temporal mean of pixel+step over steps 0..2 is pixel+1.
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4}, f.Values, 1e-12)

	partial := c.MeanFrame(0, 1, 2)
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4}, partial.Values, 1e-12)
}

func TestCubeJSONRoundTrip(t *testing.T) {
	t.Parallel()
	c, err := FromValues(2, 1, 2, 1, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCube(&buf, c))

	got, err := ReadCube(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Width, got.Width)
	assert.Equal(t, c.Height, got.Height)
	assert.Equal(t, c.Steps, got.Steps)
	assert.Equal(t, c.Bands, got.Bands)
	assert.Equal(t, 3.0, got.At(1, 0, 0))
}

func TestReadCubeRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := ReadCube(bytes.NewBufferString(`{"width": 2}`))
	assert.Error(t, err)
}
