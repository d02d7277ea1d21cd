package features

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
)

// Declaration is the wire form of one feature request, exactly as it
// arrives from the feature-set JSON. Only Type is universally
// required; every other field is optional and pointer-typed so that
// "absent" and "zero" stay distinguishable. Fields irrelevant to a
// declaration's type are ignored, not errors.
//
// Defaults applied when a relevant field is absent: window_size 5,
// sigma 1.0, lag 12, interval one [0, 11), interval two [-12, -1).
type Declaration struct {
	Type   string `json:"type"`
	BandID *int   `json:"band_id,omitempty"`

	// Spatial types only.
	WindowSize *int     `json:"window_size,omitempty"`
	Sigma      *float64 `json:"sigma,omitempty"`

	// Lag-based temporal types only.
	Lag   *int `json:"lag,omitempty"`
	Month *int `json:"month,omitempty"`

	// Single-interval types.
	ConsiderationIntervalStart *int `json:"consideration_interval_start,omitempty"`
	ConsiderationIntervalEnd   *int `json:"consideration_interval_end,omitempty"`

	// Dual-interval types.
	IntervalOneStart *int `json:"interval_one_start,omitempty"`
	IntervalOneEnd   *int `json:"interval_one_end,omitempty"`
	IntervalTwoStart *int `json:"interval_two_start,omitempty"`
	IntervalTwoEnd   *int `json:"interval_two_end,omitempty"`
}

// FeatureSet is an ordered list of declarations. Order fixes the
// output column order and nothing else.
type FeatureSet struct {
	Features []Declaration `json:"features"`
}

// ParseFeatureSet decodes a feature set from its JSON wire form.
// Declarations are validated against a cube only at extraction time;
// parsing just checks the set is well-formed and non-empty.
func ParseFeatureSet(data []byte) (*FeatureSet, error) {
	var set FeatureSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse feature set: %w", err)
	}
	if len(set.Features) == 0 {
		return nil, fmt.Errorf("parse feature set: no features declared")
	}
	return &set, nil
}

// LoadFeatureSet reads and parses a feature set from r.
func LoadFeatureSet(r io.Reader) (*FeatureSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feature set: %w", err)
	}
	return ParseFeatureSet(data)
}

//go:embed default_features.json
var defaultFeatureJSON []byte

// DefaultFeatureSet returns the built-in monthly vegetation feature
// set used when no explicit set is supplied: the all-time NDRE740
// mean plus September year-over-year differences of NDRE705, NDVI and
// NDWI.
func DefaultFeatureSet() *FeatureSet {
	set, err := ParseFeatureSet(defaultFeatureJSON)
	if err != nil {
		// The embedded set is fixed at build time; a parse failure is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded default feature set: %v", err))
	}
	return set
}
