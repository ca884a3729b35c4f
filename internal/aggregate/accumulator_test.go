package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(win bool) *ParticipantRecord {
	return &ParticipantRecord{
		MatchID:           "EUW1_1",
		Champion:          "Ahri",
		Patch:             "14.3",
		Win:               win,
		Items:             [6]int{6653, 3020, 3089, 3157, 0, 0},
		ItemBuyOrder:      []int{1056, 6653, 3020, 3089, 3157},
		FirstBuy:          "1056_2003",
		Keystone:          8112,
		PrimaryRunes:      [3]int{8139, 8138, 8135},
		SecondaryRunes:    [2]int{8226, 8237},
		PrimaryTree:       8100,
		SecondaryTree:     8200,
		StatShards:        [3]int{5008, 5008, 5001},
		Spells:            [2]int{4, 32},
		SkillOrder:        "Q>W>E",
		DamageToChampions: 24000,
		TotalDamage:       30000,
		Healing:           1500,
		Shielding:         500,
		CCTime:            45,
		GameDurationSec:   1200,
		Deaths:            6,
	}
}

func TestAccumulatorAdd(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Add(testRecord(true))
	acc.Add(testRecord(false))

	require.EqualValues(t, 2, acc.RecordCount())

	drained := acc.Drain()
	require.Len(t, drained, 1)
	entry := drained[0]
	assert.Equal(t, "Ahri", entry.Champion)
	assert.Equal(t, "14.3", entry.Patch)

	agg := entry.Aggregate
	assert.EqualValues(t, 2, agg.Games)
	assert.EqualValues(t, 1, agg.Wins)

	// 24000 damage over 20 minutes.
	assert.EqualValues(t, 2, agg.Rates.DamagePerMin.N)
	assert.InDelta(t, 1200, agg.Rates.DamagePerMin.Mean, 1e-9)
	assert.InDelta(t, 0.3, agg.Rates.DeathsPerMin.Mean, 1e-9)
	assert.InDelta(t, 100, agg.Rates.HealShieldPerMin.Mean, 1e-9)

	assert.EqualValues(t, 2, agg.ItemSlots[0]["6653"].Games)
	assert.EqualValues(t, 1, agg.ItemSlots[0]["6653"].Wins)
	assert.EqualValues(t, 2, agg.Keystone["8112"].Games)
	assert.EqualValues(t, 2, agg.Spells["4_32"].Games)
	assert.EqualValues(t, 2, agg.RuneTrees["8100_8200"].Games)
	assert.EqualValues(t, 2, agg.StartingItems["1056_2003"].Games)
	assert.EqualValues(t, 2, agg.SkillOrder["Q>W>E"].Games)
	assert.EqualValues(t, 2, agg.StatShards[0]["5008"].Games)
}

func TestAccumulatorCoreBucket(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Add(testRecord(true))

	drained := acc.Drain()
	require.Len(t, drained, 1)
	agg := drained[0].Aggregate

	require.Len(t, agg.Core, 1)
	bucket, ok := agg.Core["1001_3089_6653"]
	require.True(t, ok)
	assert.EqualValues(t, 1, bucket.Games)
	assert.EqualValues(t, 1, bucket.Wins)
	assert.EqualValues(t, 1, bucket.Rates.DamagePerMin.N)
	assert.EqualValues(t, 1, bucket.ItemSlots[3]["3157"].Games)
}

func TestAccumulatorNoCoreKeyStillCountsTopLevel(t *testing.T) {
	t.Parallel()

	rec := testRecord(true)
	rec.ItemBuyOrder = []int{6653, 3089} // only two completed buys
	rec.Items = [6]int{6653, 3089, 0, 0, 0, 0}

	acc := NewAccumulator()
	acc.Add(rec)

	agg := acc.Drain()[0].Aggregate
	assert.EqualValues(t, 1, agg.Games)
	assert.Empty(t, agg.Core)
}

func TestAccumulatorZeroDurationSkipsRates(t *testing.T) {
	t.Parallel()

	rec := testRecord(true)
	rec.GameDurationSec = 0

	acc := NewAccumulator()
	acc.Add(rec)

	agg := acc.Drain()[0].Aggregate
	assert.EqualValues(t, 1, agg.Games)
	assert.Zero(t, agg.Rates.DamagePerMin.N)
	assert.EqualValues(t, 1, agg.Keystone["8112"].Games, "categoricals still count")
}

func TestAccumulatorSeparateKeys(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Add(testRecord(true))

	other := testRecord(true)
	other.Patch = "14.4"
	acc.Add(other)

	zed := testRecord(false)
	zed.Champion = "Zed"
	acc.Add(zed)

	drained := acc.Drain()
	assert.Len(t, drained, 3)
}

func TestAccumulatorDrainResets(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator()
	acc.Add(testRecord(true))

	first := acc.Drain()
	require.Len(t, first, 1)
	assert.Zero(t, acc.RecordCount())
	assert.Empty(t, acc.Drain())

	// The drained snapshot is detached from live state.
	acc.Add(testRecord(true))
	assert.EqualValues(t, 1, first[0].Aggregate.Games)
}
