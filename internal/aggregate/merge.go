package aggregate

import "github.com/xvxsamuel/aram-pig-sub000/internal/stats"

// Merge combines two champion/patch aggregates into a new one: games and
// wins sum, each rate distribution uses the exact parallel variance
// combine, each choice counter takes the key-union, and core buckets merge
// recursively. Neither input is mutated, so a store retry can call it again
// with the same arguments. A nil side is treated as empty.
func Merge(a, b *ChampionPatchAggregate) *ChampionPatchAggregate {
	if a == nil && b == nil {
		return NewChampionPatchAggregate()
	}
	if a == nil {
		a = NewChampionPatchAggregate()
	}
	if b == nil {
		b = NewChampionPatchAggregate()
	}

	out := &ChampionPatchAggregate{
		BucketStats: mergeBuckets(&a.BucketStats, &b.BucketStats),
		Core:        make(map[string]*BucketStats, len(a.Core)+len(b.Core)),
	}
	for key, bucket := range a.Core {
		if other, ok := b.Core[key]; ok {
			merged := mergeBuckets(bucket, other)
			out.Core[key] = &merged
		} else {
			copied := cloneBucket(bucket)
			out.Core[key] = &copied
		}
	}
	for key, bucket := range b.Core {
		if _, ok := a.Core[key]; !ok {
			copied := cloneBucket(bucket)
			out.Core[key] = &copied
		}
	}
	return out
}

func mergeBuckets(a, b *BucketStats) BucketStats {
	out := BucketStats{
		Games: a.Games + b.Games,
		Wins:  a.Wins + b.Wins,
		Rates: RateStats{
			DamagePerMin:      stats.Merge(a.Rates.DamagePerMin, b.Rates.DamagePerMin),
			TotalDamagePerMin: stats.Merge(a.Rates.TotalDamagePerMin, b.Rates.TotalDamagePerMin),
			HealShieldPerMin:  stats.Merge(a.Rates.HealShieldPerMin, b.Rates.HealShieldPerMin),
			CCPerMin:          stats.Merge(a.Rates.CCPerMin, b.Rates.CCPerMin),
			DeathsPerMin:      stats.Merge(a.Rates.DeathsPerMin, b.Rates.DeathsPerMin),
		},
		Keystone:       stats.MergeCounters(a.Keystone, b.Keystone),
		SecondaryRunes: stats.MergeCounters(a.SecondaryRunes, b.SecondaryRunes),
		RuneTrees:      stats.MergeCounters(a.RuneTrees, b.RuneTrees),
		Spells:         stats.MergeCounters(a.Spells, b.Spells),
		StartingItems:  stats.MergeCounters(a.StartingItems, b.StartingItems),
		SkillOrder:     stats.MergeCounters(a.SkillOrder, b.SkillOrder),
	}
	for i := range out.ItemSlots {
		out.ItemSlots[i] = stats.MergeCounters(a.ItemSlots[i], b.ItemSlots[i])
	}
	for i := range out.PrimaryRunes {
		out.PrimaryRunes[i] = stats.MergeCounters(a.PrimaryRunes[i], b.PrimaryRunes[i])
	}
	for i := range out.StatShards {
		out.StatShards[i] = stats.MergeCounters(a.StatShards[i], b.StatShards[i])
	}
	return out
}

func cloneBucket(b *BucketStats) BucketStats {
	empty := NewBucketStats()
	return mergeBuckets(b, empty)
}
