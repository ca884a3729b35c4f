package scoring

import (
	"fmt"
	"strconv"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
	"github.com/xvxsamuel/aram-pig-sub000/internal/stats"
)

// Category names one scored dimension of a game. The names are part of the
// output contract consumed by the presentation layer.
type Category string

const (
	CategoryDamage        Category = "damage"
	CategoryTotalDamage   Category = "totalDamage"
	CategoryHealShield    Category = "healShield"
	CategoryCC            Category = "ccTime"
	CategoryDeaths        Category = "deaths"
	CategoryItems         Category = "items"
	CategoryKeystone      Category = "keystone"
	CategorySpells        Category = "spells"
	CategorySkillOrder    Category = "skillOrder"
	CategoryStartingItems Category = "startingItems"
	CategoryCoreBuild     Category = "coreBuild"
	CategoryKillPart      Category = "killParticipation"
	CategoryTimeline      Category = "timeline"
)

// Fallback reports which degradation steps fired for one category. The
// presentation layer uses these to warn that a score is based on broader or
// missing data.
type Fallback struct {
	// UsedChampion is set when the player's core-build bucket lacked
	// samples and champion-level data was used instead.
	UsedChampion bool `json:"usedChampion"`
	// UsedPriorPatch is set when the current patch baseline lacked games
	// and an earlier patch's baseline was consulted.
	UsedPriorPatch bool `json:"usedPriorPatch"`
	// UsedNeutral is set when no data was available at any level and the
	// neutral default was assigned.
	UsedNeutral bool `json:"usedNeutral"`
}

// PlayerGame is one player's raw stat line plus the context the composite
// score needs beyond plain aggregation input.
type PlayerGame struct {
	aggregate.ParticipantRecord

	Kills     int `json:"kills"`
	Assists   int `json:"assists"`
	TeamKills int `json:"teamKills"`

	// DeathQuality and TakedownQuality are 0-100 timeline-derived scores
	// computed by an external collaborator; nil when unavailable.
	DeathQuality    *float64 `json:"deathQuality"`
	TakedownQuality *float64 `json:"takedownQuality"`
}

// Breakdown is the scoring output: the composite, the named sub-scores,
// every per-category score and the fallback flags per category.
type Breakdown struct {
	Composite   float64 `json:"composite"`
	Performance float64 `json:"performance"`
	Build       float64 `json:"build"`
	Timeline    float64 `json:"timeline"`
	KDA         float64 `json:"kda"`

	Categories map[Category]float64  `json:"categories"`
	Fallbacks  map[Category]Fallback `json:"fallbacks"`
}

// Engine scores one game against a persisted champion/patch baseline. It is
// a pure function of its inputs and safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine with the given tunables.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score computes the composite quality score of one game. baseline is the
// aggregate for the player's champion and patch; prior is the nearest
// earlier patch's aggregate for the same champion, consulted when the
// current baseline lacks games. Either may be nil. Sparse or missing data
// never fails: each category degrades through its fallback chain to the
// neutral default and reports the steps it took. An error is returned only
// for malformed input.
func (e *Engine) Score(player *PlayerGame, baseline, prior *aggregate.ChampionPatchAggregate) (*Breakdown, error) {
	if err := player.Validate(); err != nil {
		return nil, err
	}
	if player.Kills < 0 || player.Assists < 0 || player.TeamKills < 0 {
		return nil, fmt.Errorf("player game: negative kill figures")
	}

	src, usedPrior := e.resolveBaseline(baseline, prior)

	s := &scoreRun{
		cfg:       e.cfg,
		player:    player,
		src:       src,
		usedPrior: usedPrior,
		out: &Breakdown{
			Categories: make(map[Category]float64),
			Fallbacks:  make(map[Category]Fallback),
		},
	}
	if src != nil {
		if key, ok := aggregate.CoreBuildKey(player.ItemBuyOrder, player.Items); ok {
			s.coreKey = key
			if bucket := src.Core[key]; bucket != nil && bucket.Games >= e.cfg.MinCoreSamples {
				s.core = bucket
			}
		}
	}

	s.scoreRates()
	s.scoreItems()
	s.scoreChoices()
	s.scoreTimeline()
	s.scoreKillParticipation()
	s.compose()

	return s.out, nil
}

// resolveBaseline picks the champion-level data source: the current patch
// when sufficiently sampled, else the prior patch, else whichever of the
// two has any games at all, else nothing.
func (e *Engine) resolveBaseline(baseline, prior *aggregate.ChampionPatchAggregate) (src *aggregate.ChampionPatchAggregate, usedPrior bool) {
	usable := func(a *aggregate.ChampionPatchAggregate) bool {
		return a != nil && a.Games >= e.cfg.MinChampionGames
	}
	switch {
	case usable(baseline):
		return baseline, false
	case usable(prior):
		return prior, true
	case baseline != nil && baseline.Games > 0:
		return baseline, false
	case prior != nil && prior.Games > 0:
		return prior, true
	default:
		return nil, false
	}
}

// scoreRun carries the state of one Score invocation.
type scoreRun struct {
	cfg       Config
	player    *PlayerGame
	src       *aggregate.ChampionPatchAggregate
	core      *aggregate.BucketStats // nil unless the core bucket is usable
	coreKey   string                 // "" when the build yields no core key
	usedPrior bool
	out       *Breakdown
}

func (s *scoreRun) flag(cat Category, f Fallback) {
	if s.usedPrior {
		f.UsedPriorPatch = true
	}
	s.out.Fallbacks[cat] = f
}

func (s *scoreRun) neutral(cat Category) {
	s.out.Categories[cat] = s.cfg.NeutralScore
	s.flag(cat, Fallback{UsedNeutral: true})
}

// scoreRates standardizes the five per-minute metrics.
func (s *scoreRun) scoreRates() {
	minutes := s.player.Minutes()

	type metric struct {
		cat   Category
		value float64
	}
	metrics := []metric{
		{CategoryDamage, s.player.DamageToChampions},
		{CategoryTotalDamage, s.player.TotalDamage},
		{CategoryHealShield, s.player.Healing + s.player.Shielding},
		{CategoryCC, s.player.CCTime},
	}

	for _, m := range metrics {
		if s.src == nil {
			s.neutral(m.cat)
			continue
		}
		if minutes <= 0 {
			// No rate can be computed for this record; the metric is
			// excluded rather than the whole computation aborted.
			continue
		}
		cell, usedChampion := s.pickRateCell(m.cat)
		if cell.N < 2 {
			s.neutral(m.cat)
			continue
		}
		z := cell.ZScore(m.value / minutes)
		s.out.Categories[m.cat] = s.zToScore(z)
		s.flag(m.cat, Fallback{UsedChampion: usedChampion})
	}

	s.scoreDeaths(minutes)
}

// scoreDeaths applies the fixed optimal band instead of a z-score: death
// frequency is "too passive / optimal / too aggressive", not monotone.
func (s *scoreRun) scoreDeaths(minutes float64) {
	if s.src == nil {
		s.neutral(CategoryDeaths)
		return
	}
	if minutes <= 0 {
		return
	}
	dpm := float64(s.player.Deaths) / minutes
	var dist float64
	switch {
	case dpm < s.cfg.DeathBandLow:
		dist = s.cfg.DeathBandLow - dpm
	case dpm > s.cfg.DeathBandHigh:
		dist = dpm - s.cfg.DeathBandHigh
	}
	s.out.Categories[CategoryDeaths] = clamp(100 - dist*s.cfg.DeathBandSlope)
	s.flag(CategoryDeaths, Fallback{})
}

// pickRateCell returns the accumulator cell for a metric, preferring the
// core bucket when usable. usedChampion reports the core→champion fallback
// (only meaningful when the build produced a core key at all).
func (s *scoreRun) pickRateCell(cat Category) (cell stats.Welford, usedChampion bool) {
	champ := s.rateCell(&s.src.Rates, cat)
	if s.core == nil {
		return champ, s.coreKey != ""
	}
	coreCell := s.rateCell(&s.core.Rates, cat)
	if coreCell.N < s.cfg.MinCoreSamples {
		return champ, true
	}
	return coreCell, false
}

func (s *scoreRun) rateCell(r *aggregate.RateStats, cat Category) stats.Welford {
	switch cat {
	case CategoryDamage:
		return r.DamagePerMin
	case CategoryTotalDamage:
		return r.TotalDamagePerMin
	case CategoryHealShield:
		return r.HealShieldPerMin
	case CategoryCC:
		return r.CCPerMin
	default:
		return r.DeathsPerMin
	}
}

// zToScore maps a z-score to 0-100: the champion mean lands on
// AverageScore and EliteZ standard deviations above it lands on 100.
func (s *scoreRun) zToScore(z float64) float64 {
	return clamp(s.cfg.AverageScore + (100-s.cfg.AverageScore)*z/s.cfg.EliteZ)
}

// scoreItems penalizes each non-boot final item by its winrate gap to the
// best item of that slot, exempting items ranked in the slot's top N.
func (s *scoreRun) scoreItems() {
	if s.src == nil {
		s.neutral(CategoryItems)
		return
	}

	usedChampion := false
	scoredSlots := 0
	var totalPenalty float64
	for i, id := range s.player.Items {
		if id == 0 || aggregate.IsFinishedBoots(id) {
			// Boot choice is matchup and comfort driven; never penalized.
			continue
		}
		counter := s.src.ItemSlots[i]
		if s.core != nil && s.core.ItemSlots[i].Games() >= s.cfg.MinCoreSamples {
			counter = s.core.ItemSlots[i]
		} else if s.coreKey != "" {
			usedChampion = true
		}

		bestKey, best, ok := counter.Best(s.cfg.MinChoiceSamples)
		if !ok {
			continue
		}
		key := strconv.Itoa(id)
		if key == bestKey || s.slotRank(counter, key) <= s.cfg.ItemRankThreshold {
			scoredSlots++
			continue
		}
		gap := best.Winrate() - counter[key].Winrate()
		if gap < 0 {
			gap = 0
		}
		penalty := gap * s.cfg.ItemPenaltyScale
		if penalty > s.cfg.MaxItemPenalty {
			penalty = s.cfg.MaxItemPenalty
		}
		totalPenalty += penalty
		scoredSlots++
	}

	if scoredSlots == 0 {
		s.neutral(CategoryItems)
		return
	}
	s.out.Categories[CategoryItems] = clamp(100 - totalPenalty)
	s.flag(CategoryItems, Fallback{UsedChampion: usedChampion})
}

// slotRank returns the 1-based winrate rank of key among the slot's
// sufficiently sampled items. Unknown keys rank below every qualified item.
func (s *scoreRun) slotRank(counter stats.ChoiceCounter, key string) int {
	own, known := counter[key]
	if !known {
		return len(counter) + 1
	}
	ownWR := own.Winrate()
	rank := 1
	for k, t := range counter {
		if k == key || t.Games < s.cfg.MinChoiceSamples {
			continue
		}
		if t.Winrate() > ownWR {
			rank++
		}
	}
	return rank
}

// scoreChoices scores the categorical build decisions: keystone, spell
// pair, skill order, starting items and the core-build identity itself.
func (s *scoreRun) scoreChoices() {
	s.scoreChoice(CategoryKeystone, strconv.Itoa(s.player.Keystone), func(b *aggregate.BucketStats) stats.ChoiceCounter {
		return b.Keystone
	})
	s.scoreChoice(CategorySpells, s.player.SpellPairKey(), func(b *aggregate.BucketStats) stats.ChoiceCounter {
		return b.Spells
	})
	s.scoreChoice(CategorySkillOrder, s.player.SkillOrder, func(b *aggregate.BucketStats) stats.ChoiceCounter {
		return b.SkillOrder
	})
	s.scoreChoice(CategoryStartingItems, s.player.FirstBuy, func(b *aggregate.BucketStats) stats.ChoiceCounter {
		return b.StartingItems
	})
	s.scoreCoreIdentity()
}

func (s *scoreRun) scoreChoice(cat Category, playerKey string, counterOf func(*aggregate.BucketStats) stats.ChoiceCounter) {
	if s.src == nil || playerKey == "" {
		s.neutral(cat)
		return
	}

	counter := counterOf(&s.src.BucketStats)
	usedChampion := false
	if s.core != nil && counterOf(s.core).Games() >= s.cfg.MinCoreSamples {
		counter = counterOf(s.core)
	} else if s.coreKey != "" {
		usedChampion = true
	}

	_, best, ok := counter.Best(s.cfg.MinChoiceSamples)
	if !ok {
		s.neutral(cat)
		return
	}
	gap := best.Winrate() - counter[playerKey].Winrate()
	if gap < 0 {
		gap = 0
	}
	s.out.Categories[cat] = clamp(100 - gap*s.cfg.CategoryGapScale)
	s.flag(cat, Fallback{UsedChampion: usedChampion})
}

// scoreCoreIdentity compares the player's finished core against the best
// core recorded for the champion. Always champion-level: the core map is
// the bucket index itself.
func (s *scoreRun) scoreCoreIdentity() {
	if s.src == nil || s.coreKey == "" {
		s.neutral(CategoryCoreBuild)
		return
	}

	cores := make(stats.ChoiceCounter, len(s.src.Core))
	for key, bucket := range s.src.Core {
		cores[key] = stats.ChoiceTally{Games: bucket.Games, Wins: bucket.Wins}
	}
	_, best, ok := cores.Best(s.cfg.MinCoreSamples)
	if !ok {
		s.neutral(CategoryCoreBuild)
		return
	}
	gap := best.Winrate() - cores[s.coreKey].Winrate()
	if gap < 0 {
		gap = 0
	}
	s.out.Categories[CategoryCoreBuild] = clamp(100 - gap*s.cfg.CategoryGapScale)
	s.flag(CategoryCoreBuild, Fallback{})
}

// scoreTimeline averages the externally supplied death/takedown qualities.
func (s *scoreRun) scoreTimeline() {
	var sum float64
	var n int
	if s.player.DeathQuality != nil {
		sum += *s.player.DeathQuality
		n++
	}
	if s.player.TakedownQuality != nil {
		sum += *s.player.TakedownQuality
		n++
	}
	if n == 0 {
		s.neutral(CategoryTimeline)
		return
	}
	s.out.Categories[CategoryTimeline] = clamp(sum / float64(n))
	s.flag(CategoryTimeline, Fallback{})
}

// scoreKillParticipation maps the player's takedown share of team kills
// onto 0-100 against the configured target.
func (s *scoreRun) scoreKillParticipation() {
	if s.player.TeamKills == 0 {
		s.neutral(CategoryKillPart)
		return
	}
	kp := float64(s.player.Kills+s.player.Assists) / float64(s.player.TeamKills)
	s.out.Categories[CategoryKillPart] = clamp(kp / s.cfg.KillParticipationTarget * 100)
	s.flag(CategoryKillPart, Fallback{})
}

// compose folds the category scores into the named sub-scores and the
// final composite.
func (s *scoreRun) compose() {
	perf := newWeighted()
	perf.add(s.out.Categories, CategoryDamage, s.cfg.Performance.Damage)
	perf.add(s.out.Categories, CategoryTotalDamage, s.cfg.Performance.TotalDamage)
	perf.add(s.out.Categories, CategoryHealShield, s.cfg.Performance.HealShield)
	perf.add(s.out.Categories, CategoryCC, s.cfg.Performance.CC)
	perf.add(s.out.Categories, CategoryDeaths, s.cfg.Performance.Deaths)
	s.out.Performance = perf.mean(s.cfg.NeutralScore)

	build := newWeighted()
	build.add(s.out.Categories, CategoryItems, s.cfg.Build.Items)
	build.add(s.out.Categories, CategoryCoreBuild, s.cfg.Build.CoreBuild)
	build.add(s.out.Categories, CategoryKeystone, s.cfg.Build.Keystone)
	build.add(s.out.Categories, CategorySpells, s.cfg.Build.Spells)
	build.add(s.out.Categories, CategorySkillOrder, s.cfg.Build.SkillOrder)
	build.add(s.out.Categories, CategoryStartingItems, s.cfg.Build.StartingItems)
	s.out.Build = build.mean(s.cfg.NeutralScore)

	s.out.Timeline = s.out.Categories[CategoryTimeline]

	kda := newWeighted()
	kda.add(s.out.Categories, CategoryKillPart, 0.5)
	kda.add(s.out.Categories, CategoryDeaths, 0.5)
	s.out.KDA = kda.mean(s.cfg.NeutralScore)

	composite := newWeighted()
	composite.addScore(s.out.Performance, s.cfg.Composite.Performance)
	composite.addScore(s.out.Build, s.cfg.Composite.Build)
	composite.addScore(s.out.Timeline, s.cfg.Composite.Timeline)
	composite.addScore(s.out.KDA, s.cfg.Composite.KDA)
	s.out.Composite = composite.mean(s.cfg.NeutralScore)
}

// weighted accumulates a weighted mean, renormalizing over the categories
// actually present (a zero-duration game excludes its rate metrics).
type weighted struct {
	sum    float64
	weight float64
}

func newWeighted() *weighted { return &weighted{} }

func (w *weighted) add(scores map[Category]float64, cat Category, weight float64) {
	if score, ok := scores[cat]; ok {
		w.addScore(score, weight)
	}
}

func (w *weighted) addScore(score, weight float64) {
	w.sum += score * weight
	w.weight += weight
}

func (w *weighted) mean(fallback float64) float64 {
	if w.weight == 0 {
		return fallback
	}
	return clamp(w.sum / w.weight)
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
