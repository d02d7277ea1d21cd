// Package features is the configuration-driven feature-extraction
// engine. It converts a satellite-imagery DataCube (spatial index ×
// time step × band) into a flat table of per-pixel feature values for
// downstream classification.
//
// The catalog of feature types is closed and registry-driven: each
// type tag maps to one calculator with a fixed parameter contract
// (see dispatch.go). Temporal features reduce a pixel's time series
// over a resolved consideration interval; spatial features collapse
// the interval to a temporal-mean frame and reduce local windows over
// it.
//
// Interval semantics mirror half-open slice indexing with negative
// offsets counted from the end of the time axis. Misconfigured
// declarations fail eagerly with the sentinel errors in errors.go;
// extraction is all-or-nothing.
package features
