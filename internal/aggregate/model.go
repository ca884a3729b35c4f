package aggregate

import (
	"strconv"

	"github.com/xvxsamuel/aram-pig-sub000/internal/stats"
)

// RateStats holds the five per-minute performance distributions tracked for
// a champion baseline.
type RateStats struct {
	DamagePerMin      stats.Welford `json:"damagePerMin"`
	TotalDamagePerMin stats.Welford `json:"totalDamagePerMin"`
	HealShieldPerMin  stats.Welford `json:"healShieldPerMin"`
	CCPerMin          stats.Welford `json:"ccPerMin"`
	DeathsPerMin      stats.Welford `json:"deathsPerMin"`
}

// BucketStats is the stat shape shared by a champion/patch aggregate and by
// each core-build bucket nested inside it: win/loss record, the five rate
// distributions, and win tallies for every discrete build choice.
type BucketStats struct {
	Games int64 `json:"games"`
	Wins  int64 `json:"wins"`

	Rates RateStats `json:"rates"`

	// ItemSlots[i] tallies final items in inventory slot i+1.
	ItemSlots      [6]stats.ChoiceCounter `json:"itemSlots"`
	Keystone       stats.ChoiceCounter    `json:"keystone"`
	PrimaryRunes   [3]stats.ChoiceCounter `json:"primaryRunes"`
	SecondaryRunes stats.ChoiceCounter    `json:"secondaryRunes"`
	StatShards     [3]stats.ChoiceCounter `json:"statShards"`
	RuneTrees      stats.ChoiceCounter    `json:"runeTrees"`
	Spells         stats.ChoiceCounter    `json:"spells"`
	StartingItems  stats.ChoiceCounter    `json:"startingItems"`
	SkillOrder     stats.ChoiceCounter    `json:"skillOrder"`
}

// ChampionPatchAggregate is the persisted baseline for one (champion, patch)
// pair: the champion-wide stats plus one nested bucket per core build,
// because the expected stat line depends on which build was finished.
type ChampionPatchAggregate struct {
	BucketStats
	Core map[string]*BucketStats `json:"core"`
}

// NewBucketStats returns an empty bucket with all counters initialized.
func NewBucketStats() *BucketStats {
	b := &BucketStats{
		Keystone:       make(stats.ChoiceCounter),
		SecondaryRunes: make(stats.ChoiceCounter),
		RuneTrees:      make(stats.ChoiceCounter),
		Spells:         make(stats.ChoiceCounter),
		StartingItems:  make(stats.ChoiceCounter),
		SkillOrder:     make(stats.ChoiceCounter),
	}
	for i := range b.ItemSlots {
		b.ItemSlots[i] = make(stats.ChoiceCounter)
	}
	for i := range b.PrimaryRunes {
		b.PrimaryRunes[i] = make(stats.ChoiceCounter)
	}
	for i := range b.StatShards {
		b.StatShards[i] = make(stats.ChoiceCounter)
	}
	return b
}

// NewChampionPatchAggregate returns an empty aggregate ready to accumulate.
func NewChampionPatchAggregate() *ChampionPatchAggregate {
	return &ChampionPatchAggregate{
		BucketStats: *NewBucketStats(),
		Core:        make(map[string]*BucketStats),
	}
}

// addRecord folds one participant record into the bucket. Rate updates are
// skipped for zero-duration games; the categorical tallies still count.
func (b *BucketStats) addRecord(rec *ParticipantRecord) {
	b.Games++
	if rec.Win {
		b.Wins++
	}

	if minutes := rec.Minutes(); minutes > 0 {
		b.Rates.DamagePerMin.Update(rec.DamageToChampions / minutes)
		b.Rates.TotalDamagePerMin.Update(rec.TotalDamage / minutes)
		b.Rates.HealShieldPerMin.Update((rec.Healing + rec.Shielding) / minutes)
		b.Rates.CCPerMin.Update(rec.CCTime / minutes)
		b.Rates.DeathsPerMin.Update(float64(rec.Deaths) / minutes)
	}

	for i, id := range rec.Items {
		if id != 0 {
			b.ItemSlots[i].Increment(strconv.Itoa(id), rec.Win)
		}
	}
	if rec.Keystone != 0 {
		b.Keystone.Increment(strconv.Itoa(rec.Keystone), rec.Win)
	}
	for i, id := range rec.PrimaryRunes {
		if id != 0 {
			b.PrimaryRunes[i].Increment(strconv.Itoa(id), rec.Win)
		}
	}
	for _, id := range rec.SecondaryRunes {
		if id != 0 {
			b.SecondaryRunes.Increment(strconv.Itoa(id), rec.Win)
		}
	}
	for i, id := range rec.StatShards {
		if id != 0 {
			b.StatShards[i].Increment(strconv.Itoa(id), rec.Win)
		}
	}
	if rec.PrimaryTree != 0 {
		b.RuneTrees.Increment(rec.TreePairKey(), rec.Win)
	}
	if rec.Spells[0] != 0 || rec.Spells[1] != 0 {
		b.Spells.Increment(rec.SpellPairKey(), rec.Win)
	}
	if rec.FirstBuy != "" {
		b.StartingItems.Increment(rec.FirstBuy, rec.Win)
	}
	if rec.SkillOrder != "" {
		b.SkillOrder.Increment(rec.SkillOrder, rec.Win)
	}
}
