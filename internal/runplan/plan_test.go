package runplan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "github.com/HannesFeil/multiway-powersort-experiments/internal/errors"
)

const testSeed = uint64(0xa8bf17eb656f828d)

func TestPlanDeterministic(t *testing.T) {
	modes := []Mode{
		{Kind: Permutation},
		{Kind: RandomRunsSqrt},
		{Kind: RandomRunsFixedCount, K: 30},
	}
	for _, mode := range modes {
		t.Run(mode.Token(), func(t *testing.T) {
			a, err := Plan(mode, 10_000, testSeed)
			require.NoError(t, err)
			b, err := Plan(mode, 10_000, testSeed)
			require.NoError(t, err)
			require.Equal(t, a, b)
		})
	}
}

func TestPlanLengthsValid(t *testing.T) {
	modes := []Mode{
		{Kind: Permutation},
		{Kind: RandomRunsSqrt},
		{Kind: RandomRunsFixedCount, K: 3},
		{Kind: RandomRunsFixedCount, K: 999},
	}
	for _, mode := range modes {
		for seed := uint64(0); seed < 5; seed++ {
			spec, err := Plan(mode, 1000, seed)
			require.NoError(t, err)
			assert.Equal(t, 1000, spec.Total())
			for _, run := range spec {
				assert.GreaterOrEqual(t, run.Length, 1)
			}
		}
	}
}

func TestPlanEdgeLengths(t *testing.T) {
	spec, err := Plan(Mode{Kind: RandomRunsSqrt}, 0, testSeed)
	require.NoError(t, err)
	assert.Empty(t, spec)

	spec, err = Plan(Mode{Kind: RandomRunsSqrt}, 1, testSeed)
	require.NoError(t, err)
	require.Len(t, spec, 1)
	assert.Equal(t, 1, spec[0].Length)

	_, err = Plan(Mode{Kind: RandomRunsSqrt}, -1, testSeed)
	assert.ErrorIs(t, err, derrors.ErrInvalidSpec)

	_, err = Plan(Mode{Kind: RandomRunsFixedCount, K: 0}, 10, testSeed)
	assert.ErrorIs(t, err, derrors.ErrInvalidSpec)
}

func TestSqrtRunCountBound(t *testing.T) {
	const n = 1_000_000
	root := math.Sqrt(n)
	for seed := uint64(0); seed < 5; seed++ {
		spec, err := Plan(Mode{Kind: RandomRunsSqrt}, n, seed)
		require.NoError(t, err)
		count := float64(len(spec))
		assert.Greater(t, count, 0.1*root, "seed %d produced too few runs", seed)
		assert.Less(t, count, 10*root, "seed %d produced too many runs", seed)
	}
}

func TestFixedCountExact(t *testing.T) {
	const n = 1000
	for _, k := range []int{1, 3, 30, 300, n} {
		spec, err := Plan(Mode{Kind: RandomRunsFixedCount, K: k}, n, testSeed)
		require.NoError(t, err)
		assert.Len(t, spec, k)
		assert.Equal(t, n, spec.Total())
	}

	// k > n clamps to n runs of length 1.
	spec, err := Plan(Mode{Kind: RandomRunsFixedCount, K: 5000}, n, testSeed)
	require.NoError(t, err)
	require.Len(t, spec, n)
	for _, run := range spec {
		assert.Equal(t, 1, run.Length)
	}
}

func TestPermutationPlan(t *testing.T) {
	spec, err := Plan(Mode{Kind: Permutation}, 10, testSeed)
	require.NoError(t, err)
	require.Len(t, spec, 10)
	for _, run := range spec {
		assert.Equal(t, Run{Length: 1, Orientation: Ascending}, run)
	}
}

func TestOrientationsMixed(t *testing.T) {
	spec, err := Plan(Mode{Kind: RandomRunsSqrt}, 100_000, testSeed)
	require.NoError(t, err)

	var asc, desc int
	for _, run := range spec {
		if run.Orientation == Ascending {
			asc++
		} else {
			desc++
		}
	}
	assert.Positive(t, asc)
	assert.Positive(t, desc)
}

func TestModeTokenRoundTrip(t *testing.T) {
	tokens := []string{
		"permutation-u32",
		"random-runs-sqrt-u32",
		"random-runs3-u32",
		"random-runs3000000-u32",
		"permutation-lp",
		"random-runs-sqrt-lp",
		"random-runs30-lp",
	}
	for _, token := range tokens {
		mode, err := ParseMode(token)
		require.NoError(t, err, token)
		assert.Equal(t, token, mode.Token())
	}

	for _, bad := range []string{"", "permutation", "random-runs-u32", "random-runs0-u32", "sorted-u32"} {
		_, err := ParseMode(bad)
		assert.Error(t, err, bad)
	}
}
