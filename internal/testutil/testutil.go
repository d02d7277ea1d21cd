// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code
// duplication across test files and improve test maintainability.
package testutil

import (
	"math"
	"testing"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertFloatsNear checks two float slices element-wise within tol.
func AssertFloatsNear(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol || math.IsNaN(got[i]) != math.IsNaN(want[i]) {
			t.Errorf("value[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

// NewCube builds a test cube and fills it per-cell from fill.
func NewCube(t *testing.T, width, height, steps, bands int, fill func(pixel, step, band int) float64) *imagery.DataCube {
	t.Helper()
	cube, err := imagery.NewDataCube(width, height, steps, bands)
	if err != nil {
		t.Fatalf("build test cube: %v", err)
	}
	for pixel := 0; pixel < cube.Pixels(); pixel++ {
		for step := 0; step < steps; step++ {
			for band := 0; band < bands; band++ {
				cube.Set(pixel, step, band, fill(pixel, step, band))
			}
		}
	}
	return cube
}

// ConstantFrame builds a frame filled with one value.
func ConstantFrame(width, height int, v float64) imagery.Frame {
	f := imagery.NewFrame(width, height)
	for i := range f.Values {
		f.Values[i] = v
	}
	return f
}
