package noise

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/procedural-trees/pkg/validate"
)

// fixed replays a list of values.
type fixed struct {
	values []float64
	i      int
}

func (f *fixed) Float64() float64 {
	v := f.values[f.i%len(f.values)]
	f.i++
	return v
}

func TestGaussianMatchesNormalDistribution(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	const (
		n     = 20000
		mu    = 3.5
		sigma = 1.25
	)

	samples := make([]float64, n)
	sum := 0.0
	for i := range samples {
		samples[i] = Gaussian(r, mu, sigma)
		sum += samples[i]
	}

	mean := sum / n
	variance := 0.0
	for _, s := range samples {
		variance += (s - mean) * (s - mean)
	}
	stddev := math.Sqrt(variance / (n - 1))

	assert.InDelta(t, mu, mean, 0.05)
	assert.InDelta(t, sigma, stddev, 0.05)

	// Kolmogorov-Smirnov statistic against N(mu, sigma).
	sort.Float64s(samples)
	d := 0.0
	for i, s := range samples {
		cdf := 0.5 * (1 + math.Erf((s-mu)/(sigma*math.Sqrt2)))
		lo := cdf - float64(i)/n
		hi := float64(i+1)/n - cdf
		d = math.Max(d, math.Max(lo, hi))
	}

	// Critical value at alpha = 0.001.
	critical := 1.95 / math.Sqrt(n)
	assert.Less(t, d, critical)
}

func TestGaussianRedrawsZero(t *testing.T) {
	src := &fixed{values: []float64{0, 0, math.Exp(-0.5), 0}}

	// u1 = e^-0.5 gives sqrt(-2 ln u1) = 1 and u2 = 0 gives cos = 1.
	got := Gaussian(src, 10, 2)

	assert.InDelta(t, 12.0, got, 1e-12)
	assert.Equal(t, 4, src.i)
}

func TestGaussianZeroDeviationIsMean(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		require.Equal(t, 5.0, Gaussian(r, 5, 0))
	}
}

func TestRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := Range(r, -2, 3)
		require.GreaterOrEqual(t, v, -2.0)
		require.Less(t, v, 3.0)
	}

	assert.Equal(t, 4.0, Range(&fixed{values: []float64{0.5}}, 2, 6))
}

func TestNormalValidate(t *testing.T) {
	require.NoError(t, Normal{Mean: -1, StdDev: 0}.Validate("height"))

	err := Normal{Mean: 1, StdDev: -0.1}.Validate("height")
	var cfgErr *validate.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "height.std", cfgErr.Field)

	tests := map[string]struct {
		n     Normal
		field string
	}{
		"NaN std":       {n: Normal{Mean: 5, StdDev: math.NaN()}, field: "height.std"},
		"infinite std":  {n: Normal{Mean: 5, StdDev: math.Inf(1)}, field: "height.std"},
		"NaN mean":      {n: Normal{Mean: math.NaN(), StdDev: 1}, field: "height.mean"},
		"infinite mean": {n: Normal{Mean: math.Inf(-1), StdDev: 1}, field: "height.mean"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var cfgErr *validate.ConfigurationError
			require.ErrorAs(t, tc.n.Validate("height"), &cfgErr)
			assert.Equal(t, tc.field, cfgErr.Field)
		})
	}
}
