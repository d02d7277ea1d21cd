package features

import "fmt"

// Interval is a resolved, half-open [Lo, Hi) range of time-step
// offsets. It is derived fresh per evaluation and never persisted.
type Interval struct {
	Lo, Hi int
}

// Len returns the number of time steps the interval covers.
func (iv Interval) Len() int { return iv.Hi - iv.Lo }

// ResolveInterval turns an optional (start, end) pair into concrete
// array offsets against a time axis of axisLen steps, mirroring
// half-open slice indexing: nil start means 0, nil end means axisLen,
// and negative values count back from axisLen (-12 means axisLen-12).
// Both bounds are clamped to [0, axisLen]. A resolution where hi <= lo
// fails with ErrEmptyInterval so that no reduction ever runs over zero
// samples.
func ResolveInterval(start, end *int, axisLen int) (Interval, error) {
	lo := 0
	if start != nil {
		lo = *start
		if lo < 0 {
			lo += axisLen
		}
	}
	hi := axisLen
	if end != nil {
		hi = *end
		if hi < 0 {
			hi += axisLen
		}
	}
	lo = clamp(lo, 0, axisLen)
	hi = clamp(hi, 0, axisLen)
	if hi <= lo {
		return Interval{}, fmt.Errorf("%w: [%s, %s) resolves to [%d, %d) over %d steps",
			ErrEmptyInterval, optStr(start), optStr(end), lo, hi, axisLen)
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func optStr(v *int) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%d", *v)
}
