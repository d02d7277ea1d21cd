package features

import (
	"fmt"
	"sort"
	"strings"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

// Declared defaults for optional parameters.
const (
	DefaultWindowSize = 5
	DefaultSigma      = 1.0
	DefaultLag        = 12

	// monthsPerYear fixes the calendar cadence of the time axis: step 0
	// is month 0 and every 12th step returns to the same month.
	monthsPerYear = 12
)

// Default dual-interval bounds: the first calendar year of the series
// versus the most recent twelve complete steps (less the final one).
var (
	defaultIntervalOneStart = 0
	defaultIntervalOneEnd   = 11
	defaultIntervalTwoStart = -12
	defaultIntervalTwoEnd   = -1
)

// featureParams is the validated, fully-defaulted parameter record one
// calculator runs with. Intervals are already resolved against the
// cube's time axis; a calculator never sees a raw declaration field.
type featureParams struct {
	band   int
	window int
	sigma  float64
	lag    int
	month  int

	consider Interval // single-interval types
	one, two Interval // dual-interval types
}

// paramSpec names the fields a feature type actually consumes. Fields
// outside the spec are ignored on the declaration, per the wire
// contract, and excluded from the column name.
type paramSpec struct {
	window   bool
	sigma    bool
	lag      bool
	month    bool
	consider bool
	dual     bool
}

// Column is one named output vector, one value per spatial index.
type Column struct {
	Name   string
	Values []float64
}

// result is a calculator's raw output before naming: an optional
// suffix (used by multi-valued types) plus the per-pixel values.
type result struct {
	suffix string
	values []float64
}

// computeFunc is a catalog entry's computation, invoked only after its
// parameters validated.
type computeFunc func(cube *imagery.DataCube, p featureParams) ([]result, error)

type calculator struct {
	spec    paramSpec
	compute computeFunc
}

// registry is the closed catalog of feature types. Adding a type means
// adding one entry here; dispatch itself never changes.
var registry = map[string]calculator{
	"raw":  {spec: paramSpec{consider: true}, compute: computeRaw},
	"mean": {spec: paramSpec{consider: true}, compute: computeMean},
	"std":  {spec: paramSpec{consider: true}, compute: computeStd},
	"deseasonalized_diff": {
		spec:    paramSpec{lag: true, consider: true},
		compute: computeDeseasonalizedDiff,
	},
	"deseasonalized_diff_specific_month": {
		spec:    paramSpec{lag: true, month: true, consider: true},
		compute: computeDeseasonalizedDiffMonth,
	},
	"difference_in_mean_between_intervals": {
		spec:    paramSpec{dual: true},
		compute: computeDifferenceInMeans,
	},
	"spatial_cv": {
		spec:    paramSpec{window: true, consider: true},
		compute: spatialReducer(LocalCV),
	},
	"spatial_std": {
		spec:    paramSpec{window: true, consider: true},
		compute: spatialReducer(LocalStd),
	},
	"spatial_range": {
		spec:    paramSpec{window: true, consider: true},
		compute: spatialReducer(LocalRange),
	},
	"spatial_std_difference": {
		spec:    paramSpec{window: true, dual: true},
		compute: computeSpatialStdDifference,
	},
	"spatial_edge_strength": {
		spec:    paramSpec{sigma: true, consider: true},
		compute: computeSpatialEdgeStrength,
	},
}

// KnownTypes lists the registered feature type tags, sorted.
func KnownTypes() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Dispatch validates one declaration against the cube, resolves its
// parameters and intervals, and runs the matching catalog entry.
// Validation happens entirely before any array computation.
func Dispatch(cube *imagery.DataCube, d Declaration) ([]Column, error) {
	calc, ok := registry[d.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeatureType, d.Type)
	}
	p, err := resolveParams(cube, d, calc.spec)
	if err != nil {
		return nil, err
	}
	results, err := calc.compute(cube, p)
	if err != nil {
		return nil, err
	}
	base := columnName(d.Type, calc.spec, p)
	cols := make([]Column, len(results))
	for i, res := range results {
		name := base
		if res.suffix != "" {
			name += "_" + res.suffix
		}
		cols[i] = Column{Name: name, Values: res.values}
	}
	return cols, nil
}

// resolveParams applies defaults and validates every field the type's
// spec names. Errors carry the offending value; the caller adds the
// declaration's position.
func resolveParams(cube *imagery.DataCube, d Declaration, spec paramSpec) (featureParams, error) {
	var p featureParams

	if d.BandID == nil {
		return p, fmt.Errorf("%w: band_id is required", ErrInvalidParameter)
	}
	p.band = *d.BandID
	if p.band < 0 || p.band >= cube.Bands {
		return p, fmt.Errorf("%w: band_id %d outside [0, %d)", ErrInvalidParameter, p.band, cube.Bands)
	}

	if spec.window {
		p.window = DefaultWindowSize
		if d.WindowSize != nil {
			p.window = *d.WindowSize
		}
		if p.window < 1 {
			return p, fmt.Errorf("%w: window_size %d, must be >= 1", ErrInvalidParameter, p.window)
		}
	}
	if spec.sigma {
		p.sigma = DefaultSigma
		if d.Sigma != nil {
			p.sigma = *d.Sigma
		}
		if p.sigma <= 0 {
			return p, fmt.Errorf("%w: sigma %g, must be > 0", ErrInvalidParameter, p.sigma)
		}
	}
	if spec.lag {
		p.lag = DefaultLag
		if d.Lag != nil {
			p.lag = *d.Lag
		}
		if p.lag < 1 {
			return p, fmt.Errorf("%w: lag %d, must be >= 1", ErrInvalidParameter, p.lag)
		}
	}
	if spec.month {
		if d.Month == nil {
			return p, fmt.Errorf("%w: month is required", ErrInvalidParameter)
		}
		p.month = *d.Month
		if p.month < 0 || p.month >= monthsPerYear {
			return p, fmt.Errorf("%w: month %d outside [0, %d]", ErrInvalidParameter, p.month, monthsPerYear-1)
		}
	}

	var err error
	if spec.consider {
		p.consider, err = ResolveInterval(d.ConsiderationIntervalStart, d.ConsiderationIntervalEnd, cube.Steps)
		if err != nil {
			return p, err
		}
	}
	if spec.dual {
		oneStart, oneEnd := orDefault(d.IntervalOneStart, defaultIntervalOneStart), orDefault(d.IntervalOneEnd, defaultIntervalOneEnd)
		twoStart, twoEnd := orDefault(d.IntervalTwoStart, defaultIntervalTwoStart), orDefault(d.IntervalTwoEnd, defaultIntervalTwoEnd)
		if p.one, err = ResolveInterval(oneStart, oneEnd, cube.Steps); err != nil {
			return p, fmt.Errorf("interval one: %w", err)
		}
		if p.two, err = ResolveInterval(twoStart, twoEnd, cube.Steps); err != nil {
			return p, fmt.Errorf("interval two: %w", err)
		}
	}
	return p, nil
}

func orDefault(v *int, def int) *int {
	if v != nil {
		return v
	}
	return &def
}

// columnName derives a deterministic column name from the type tag and
// the resolved parameters the type consumes. Interval bounds appear in
// resolved form so equivalent declarations name identical columns;
// genuinely duplicate declarations are disambiguated by the Table.
func columnName(featureType string, spec paramSpec, p featureParams) string {
	var b strings.Builder
	b.WriteString(featureType)
	fmt.Fprintf(&b, "_b%d", p.band)
	if spec.window {
		fmt.Fprintf(&b, "_w%d", p.window)
	}
	if spec.sigma {
		fmt.Fprintf(&b, "_s%g", p.sigma)
	}
	if spec.lag {
		fmt.Fprintf(&b, "_lag%d", p.lag)
	}
	if spec.month {
		fmt.Fprintf(&b, "_m%d", p.month)
	}
	if spec.consider {
		fmt.Fprintf(&b, "_t%d.%d", p.consider.Lo, p.consider.Hi)
	}
	if spec.dual {
		fmt.Fprintf(&b, "_i%d.%d_i%d.%d", p.one.Lo, p.one.Hi, p.two.Lo, p.two.Hi)
	}
	return b.String()
}
