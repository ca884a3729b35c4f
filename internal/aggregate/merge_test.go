package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSumsTopLevel(t *testing.T) {
	t.Parallel()

	accA := NewAccumulator()
	accA.Add(testRecord(true))
	accA.Add(testRecord(true))
	a := accA.Drain()[0].Aggregate

	accB := NewAccumulator()
	accB.Add(testRecord(false))
	b := accB.Drain()[0].Aggregate

	merged := Merge(a, b)
	assert.EqualValues(t, 3, merged.Games)
	assert.EqualValues(t, 2, merged.Wins)
	assert.EqualValues(t, 3, merged.Rates.DamagePerMin.N)
	assert.EqualValues(t, 3, merged.ItemSlots[0]["6653"].Games)
	assert.EqualValues(t, 2, merged.ItemSlots[0]["6653"].Wins)
}

func TestMergeEquivalentToSingleAccumulator(t *testing.T) {
	t.Parallel()

	// Vary the damage numbers so variance is nontrivial.
	records := make([]*ParticipantRecord, 0, 10)
	for i := 0; i < 10; i++ {
		rec := testRecord(i%2 == 0)
		rec.DamageToChampions = float64(18000 + 1500*i)
		rec.Deaths = 3 + i%4
		records = append(records, rec)
	}

	whole := NewAccumulator()
	for _, rec := range records {
		whole.Add(rec)
	}
	want := whole.Drain()[0].Aggregate

	left, right := NewAccumulator(), NewAccumulator()
	for i, rec := range records {
		if i < 4 {
			left.Add(rec)
		} else {
			right.Add(rec)
		}
	}
	merged := Merge(left.Drain()[0].Aggregate, right.Drain()[0].Aggregate)

	assert.Equal(t, want.Games, merged.Games)
	assert.Equal(t, want.Rates.DamagePerMin.N, merged.Rates.DamagePerMin.N)
	assert.InDelta(t, want.Rates.DamagePerMin.Mean, merged.Rates.DamagePerMin.Mean, 1e-9)
	assert.InDelta(t, want.Rates.DamagePerMin.M2, merged.Rates.DamagePerMin.M2, 1e-6)
	assert.InDelta(t, want.Rates.DeathsPerMin.Mean, merged.Rates.DeathsPerMin.Mean, 1e-9)
}

func TestMergeCoreBuckets(t *testing.T) {
	t.Parallel()

	// Same core on both sides plus one core unique to each side.
	accA := NewAccumulator()
	accA.Add(testRecord(true))
	uniqueA := testRecord(true)
	uniqueA.ItemBuyOrder = []int{3157, 3020, 3089}
	uniqueA.Items = [6]int{3157, 3020, 3089, 0, 0, 0}
	accA.Add(uniqueA)
	a := accA.Drain()[0].Aggregate

	accB := NewAccumulator()
	accB.Add(testRecord(false))
	uniqueB := testRecord(true)
	uniqueB.ItemBuyOrder = []int{6657, 3020, 3089}
	uniqueB.Items = [6]int{6657, 3020, 3089, 0, 0, 0}
	accB.Add(uniqueB)
	b := accB.Drain()[0].Aggregate

	merged := Merge(a, b)
	require.Len(t, merged.Core, 3)

	shared := merged.Core["1001_3089_6653"]
	require.NotNil(t, shared)
	assert.EqualValues(t, 2, shared.Games)
	assert.EqualValues(t, 1, shared.Wins)
	assert.EqualValues(t, 2, shared.Rates.DamagePerMin.N)

	onlyA := merged.Core["1001_3089_3157"]
	require.NotNil(t, onlyA)
	assert.EqualValues(t, 1, onlyA.Games)

	onlyB := merged.Core["1001_3089_6657"]
	require.NotNil(t, onlyB)
	assert.EqualValues(t, 1, onlyB.Games)
}

func TestMergeWithEmptyIsIdentity(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Add(testRecord(true))
	acc.Add(testRecord(false))
	x := acc.Drain()[0].Aggregate

	merged := Merge(x, NewChampionPatchAggregate())
	assert.Equal(t, x.Games, merged.Games)
	assert.Equal(t, x.Wins, merged.Wins)
	assert.Equal(t, x.Rates, merged.Rates)
	assert.Equal(t, x.ItemSlots, merged.ItemSlots)
	assert.Equal(t, len(x.Core), len(merged.Core))

	withNil := Merge(nil, x)
	assert.Equal(t, x.Games, withNil.Games)
	assert.Equal(t, x.Rates, withNil.Rates)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	accA := NewAccumulator()
	accA.Add(testRecord(true))
	a := accA.Drain()[0].Aggregate

	accB := NewAccumulator()
	accB.Add(testRecord(false))
	b := accB.Drain()[0].Aggregate

	merged := Merge(a, b)
	merged.Keystone.Increment("9999", true)
	merged.Core["1001_3089_6653"].Games = 99

	assert.EqualValues(t, 1, a.Games)
	assert.NotContains(t, a.Keystone, "9999")
	assert.NotContains(t, b.Keystone, "9999")
	assert.EqualValues(t, 1, a.Core["1001_3089_6653"].Games)
	assert.EqualValues(t, 1, b.Core["1001_3089_6653"].Games)
}
