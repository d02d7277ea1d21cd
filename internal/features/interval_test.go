package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int { return &v }

func TestResolveInterval(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		start, end *int
		axisLen    int
		want       Interval
	}{
		{"explicit bounds", ip(0), ip(11), 24, Interval{0, 11}},
		{"negative start open end", ip(-12), nil, 24, Interval{12, 24}},
		{"fully open", nil, nil, 24, Interval{0, 24}},
		{"both negative", ip(-12), ip(-1), 24, Interval{12, 23}},
		{"start clamped below", ip(-100), ip(5), 24, Interval{0, 5}},
		{"end clamped above", ip(20), ip(100), 24, Interval{20, 24}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveInterval(tc.start, tc.end, tc.axisLen)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.Hi-tc.want.Lo, got.Len())
		})
	}

	t.Run("empty resolutions fail", func(t *testing.T) {
		t.Parallel()
		for _, bounds := range [][2]*int{
			{ip(5), ip(5)},
			{ip(10), ip(3)},
			{ip(-1), ip(-12)},
			{ip(30), nil},
			{nil, ip(-30)},
		} {
			_, err := ResolveInterval(bounds[0], bounds[1], 24)
			assert.ErrorIs(t, err, ErrEmptyInterval)
		}
	})

	t.Run("resolution is always within bounds", func(t *testing.T) {
		t.Parallel()
		const axisLen = 24
		bounds := []*int{nil}
		for v := -30; v <= 30; v++ {
			bounds = append(bounds, ip(v))
		}
		for _, start := range bounds {
			for _, end := range bounds {
				iv, err := ResolveInterval(start, end, axisLen)
				if err != nil {
					assert.ErrorIs(t, err, ErrEmptyInterval)
					continue
				}
				assert.GreaterOrEqual(t, iv.Lo, 0)
				assert.Less(t, iv.Lo, iv.Hi)
				assert.LessOrEqual(t, iv.Hi, axisLen)
			}
		}
	})
}
