package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"std", "insertionsort", "quicksort", "peeksort",
		"mergesort", "timsort", "powersort", "multiway-powersort",
	}, Names())
}

func TestVariantCounts(t *testing.T) {
	counts := map[string]int{
		"std":                2,
		"insertionsort":      2,
		"quicksort":          2,
		"peeksort":           1,
		"mergesort":          4,
		"timsort":            3,
		"powersort":          1,
		"multiway-powersort": 2,
	}
	for name, want := range counts {
		vs, ok := Variants(name)
		require.True(t, ok, name)
		assert.Len(t, vs, want, name)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("powersort", 0))
	assert.NoError(t, Validate("mergesort", 3))
	assert.Error(t, Validate("mergesort", 4))
	assert.Error(t, Validate("mergesort", -1))
	assert.Error(t, Validate("bogosort", 0))
}

func TestIsStable(t *testing.T) {
	stable, err := IsStable("std", 0)
	require.NoError(t, err)
	assert.True(t, stable)

	stable, err = IsStable("std", 1)
	require.NoError(t, err)
	assert.False(t, stable)

	stable, err = IsStable("quicksort", 0)
	require.NoError(t, err)
	assert.False(t, stable)

	stable, err = IsStable("timsort", 2)
	require.NoError(t, err)
	assert.True(t, stable)

	_, err = IsStable("bogosort", 0)
	assert.Error(t, err)
}
