package heatmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

func gradientFrame(width, height int) imagery.Frame {
	f := imagery.NewFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Set(x, y, float64(x+y))
		}
	}
	return f
}

func TestSavePNG(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "plots", "frame.png")
	require.NoError(t, SavePNG(gradientFrame(8, 6), "test frame", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveColumnPNG(t *testing.T) {
	t.Parallel()

	t.Run("renders a flattened column", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "col.png")
		values := gradientFrame(4, 3).Values
		require.NoError(t, SaveColumnPNG(values, 4, 3, "spatial_std_b0_w5", path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	})

	t.Run("rejects shape mismatch", func(t *testing.T) {
		t.Parallel()
		err := SaveColumnPNG(make([]float64, 10), 4, 3, "bad", filepath.Join(t.TempDir(), "bad.png"))
		assert.Error(t, err)
	})
}
