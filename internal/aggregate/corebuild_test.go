package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreBuildKeyCanonicalUnderBuyOrder(t *testing.T) {
	t.Parallel()

	final := [6]int{6653, 3089, 3020, 0, 0, 0}
	orders := [][]int{
		{6653, 3020, 3089},
		{3089, 6653, 3020},
		{3020, 3089, 6653},
	}

	want, ok := CoreBuildKey(orders[0], final)
	require.True(t, ok)
	for _, order := range orders[1:] {
		got, ok := CoreBuildKey(order, final)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "1001_3089_6653", want)
}

func TestCoreBuildKeyBootVariantsCollapse(t *testing.T) {
	t.Parallel()

	for _, boots := range []int{3006, 3009, 3020, 3047, 3111, 3158} {
		key, ok := CoreBuildKey(
			[]int{6653, boots, 3089},
			[6]int{6653, boots, 3089, 0, 0, 0},
		)
		require.True(t, ok, "boots %d", boots)
		assert.Equal(t, "1001_3089_6653", key, "boots %d", boots)
	}
}

func TestCoreBuildKeySkipsComponentsAndStarters(t *testing.T) {
	t.Parallel()

	// Doran's Ring, Lost Chapter and basic Boots are not completed items
	// and must be walked past.
	key, ok := CoreBuildKey(
		[]int{1056, 1001, 3802, 6655, 3020, 1058, 3089},
		[6]int{6655, 3020, 3089, 1056, 0, 0},
	)
	require.True(t, ok)
	assert.Equal(t, "1001_3089_6655", key)
}

func TestCoreBuildKeyStopsAtThree(t *testing.T) {
	t.Parallel()

	// The fourth completed buy never makes the key.
	key, ok := CoreBuildKey(
		[]int{6653, 3020, 3089, 3157},
		[6]int{6653, 3020, 3089, 3157, 0, 0},
	)
	require.True(t, ok)
	assert.Equal(t, "1001_3089_6653", key)
}

func TestCoreBuildKeyIgnoresSoldItems(t *testing.T) {
	t.Parallel()

	// 6655 was bought first but is gone from the final inventory, so the
	// core is the next three completed buys.
	key, ok := CoreBuildKey(
		[]int{6655, 6653, 3020, 3089},
		[6]int{6653, 3020, 3089, 0, 0, 0},
	)
	require.True(t, ok)
	assert.Equal(t, "1001_3089_6653", key)
}

func TestCoreBuildKeyDedupesBoots(t *testing.T) {
	t.Parallel()

	// Two boot variants normalize to the same sentinel; only two distinct
	// core items remain, so there is no key.
	_, ok := CoreBuildKey(
		[]int{3020, 3047, 6653},
		[6]int{3020, 3047, 6653, 0, 0, 0},
	)
	assert.False(t, ok)
}

func TestCoreBuildKeyRequiresExactlyThree(t *testing.T) {
	t.Parallel()

	_, ok := CoreBuildKey([]int{6653, 3089}, [6]int{6653, 3089, 0, 0, 0, 0})
	assert.False(t, ok, "two completed items")

	_, ok = CoreBuildKey(nil, [6]int{})
	assert.False(t, ok, "empty input")
}
