package features

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/verdant-data/canopy.report/internal/imagery"
)

// Service owns a read-only cube and a feature set and turns them into
// feature tables. Both inputs are fixed at construction; every Extract
// call is an independent pass producing a fresh Table, with no state
// carried between calls.
type Service struct {
	cube *imagery.DataCube
	set  *FeatureSet
}

// NewService builds a Service. A nil set selects the embedded default
// feature set.
func NewService(cube *imagery.DataCube, set *FeatureSet) (*Service, error) {
	if cube == nil {
		return nil, fmt.Errorf("feature service requires a data cube")
	}
	if set == nil {
		set = DefaultFeatureSet()
	}
	if len(set.Features) == 0 {
		return nil, fmt.Errorf("feature service requires at least one declaration")
	}
	return &Service{cube: cube, set: set}, nil
}

// FeatureSet returns the set the service evaluates.
func (s *Service) FeatureSet() *FeatureSet { return s.set }

// Cube returns the cube the service evaluates over.
func (s *Service) Cube() *imagery.DataCube { return s.cube }

// Extract evaluates every declaration and assembles the feature table.
//
// Declarations are independent of each other, so they are computed
// concurrently, one goroutine per declaration; the cube is read-only
// for the whole run. Column order still follows declaration order,
// enforced here at assembly. Any failure aborts the whole call with no
// partial table; when several declarations fail, the one with the
// lowest index wins so the error is deterministic.
func (s *Service) Extract() (*Table, error) {
	return s.ExtractSet(s.set)
}

// ExtractSet runs one extraction pass for an explicit feature set
// against the service's cube, leaving the configured set untouched.
func (s *Service) ExtractSet(set *FeatureSet) (*Table, error) {
	if set == nil || len(set.Features) == 0 {
		return nil, fmt.Errorf("extraction requires at least one declaration")
	}
	start := time.Now()
	n := len(set.Features)
	columns := make([][]Column, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i, d := range set.Features {
		wg.Add(1)
		go func(i int, d Declaration) {
			defer wg.Done()
			cols, err := Dispatch(s.cube, d)
			if err != nil {
				errs[i] = fmt.Errorf("feature %d (type %s, band %s): %w", i, d.Type, optStr(d.BandID), err)
				return
			}
			columns[i] = cols
		}(i, d)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	table := NewTable(s.cube.Pixels())
	for _, cols := range columns {
		for _, col := range cols {
			if err := table.AddColumn(col.Name, col.Values); err != nil {
				return nil, err
			}
		}
	}
	log.Printf("[FeatureService] Extracted %d columns from %d declarations over %d pixels in %s",
		table.NumColumns(), n, s.cube.Pixels(), time.Since(start).Round(time.Millisecond))
	return table, nil
}
