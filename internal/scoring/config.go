package scoring

// Config holds the product tunables for the scoring engine. Every constant
// the score curve depends on lives here rather than in the math, so
// operators can adjust them without touching the engine.
type Config struct {
	// NeutralScore is assigned when no baseline data is available at any
	// fallback level.
	NeutralScore float64
	// AverageScore is the metric score of a player exactly at the
	// champion mean (z = 0).
	AverageScore float64
	// EliteZ is the z-score mapped to 100. With 1.0 the curve rewards
	// roughly the top sixth of games under a normal approximation.
	EliteZ float64

	// DeathBandLow/High bound the deaths-per-minute range scored as
	// optimal. Death frequency is banded rather than z-scored: both "too
	// passive" and "too aggressive" lose points.
	DeathBandLow  float64
	DeathBandHigh float64
	// DeathBandSlope is the score lost per death/min outside the band.
	DeathBandSlope float64

	// KillParticipationTarget is the takedown share mapped to 100.
	KillParticipationTarget float64

	// ItemRankThreshold exempts items ranked inside the top N of their
	// slot from any penalty.
	ItemRankThreshold int
	// MaxItemPenalty caps the score penalty of a single item slot.
	MaxItemPenalty float64
	// ItemPenaltyScale converts the winrate gap to the slot's best item
	// into penalty points (gap is a fraction; 100 means one penalty point
	// per percentage point of winrate).
	ItemPenaltyScale float64
	// CategoryGapScale converts the winrate gap of a categorical choice
	// (keystone, spells, skill order, starting items, core identity)
	// into lost score points.
	CategoryGapScale float64

	// MinCoreSamples gates core-bucket data; below it the engine falls
	// back to champion-level data for that category.
	MinCoreSamples int64
	// MinChampionGames gates the champion/patch baseline as a whole;
	// below it the engine falls back to the prior patch.
	MinChampionGames int64
	// MinChoiceSamples gates a choice from being considered "best in
	// bucket" when ranking alternatives.
	MinChoiceSamples int64

	Performance PerformanceWeights
	Build       BuildWeights
	Composite   CompositeWeights
}

// PerformanceWeights weighs the five rate metrics inside the performance
// sub-score.
type PerformanceWeights struct {
	Damage      float64
	TotalDamage float64
	HealShield  float64
	CC          float64
	Deaths      float64
}

// BuildWeights weighs the build categories inside the build sub-score.
type BuildWeights struct {
	Items         float64
	CoreBuild     float64
	Keystone      float64
	Spells        float64
	SkillOrder    float64
	StartingItems float64
}

// CompositeWeights weighs the sub-scores inside the final composite.
type CompositeWeights struct {
	Performance float64
	Build       float64
	Timeline    float64
	KDA         float64
}

// DefaultConfig returns the documented production tunables.
func DefaultConfig() Config {
	return Config{
		NeutralScore: 50,
		AverageScore: 70,
		EliteZ:       1.0,

		DeathBandLow:   0.5,
		DeathBandHigh:  0.7,
		DeathBandSlope: 150,

		KillParticipationTarget: 0.75,

		ItemRankThreshold: 5,
		MaxItemPenalty:    20,
		ItemPenaltyScale:  100,
		CategoryGapScale:  200,

		MinCoreSamples:   50,
		MinChampionGames: 100,
		MinChoiceSamples: 10,

		Performance: PerformanceWeights{
			Damage:      0.30,
			TotalDamage: 0.15,
			HealShield:  0.20,
			CC:          0.15,
			Deaths:      0.20,
		},
		Build: BuildWeights{
			Items:         0.35,
			CoreBuild:     0.20,
			Keystone:      0.15,
			Spells:        0.10,
			SkillOrder:    0.10,
			StartingItems: 0.10,
		},
		Composite: CompositeWeights{
			Performance: 0.40,
			Build:       0.30,
			Timeline:    0.15,
			KDA:         0.15,
		},
	}
}
