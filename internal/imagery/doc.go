// Package imagery owns the in-memory representation of a satellite
// imagery time series: a three-axis cube of (spatial index, time step,
// spectral band), plus the 2-D Frame view used by spatial feature
// computation.
//
// The spatial axis is a flattened Width×Height pixel grid (spatial
// index = y*Width + x) so that per-pixel columns can be reshaped into
// frames without auxiliary coordinate tables.
//
// No feature semantics live here; see internal/features.
package imagery
