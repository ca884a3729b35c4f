package aggregate

import (
	"fmt"
	"math"
	"strconv"
)

// ParticipantRecord holds one player's stat line for one completed game.
// This is defined in the aggregate package to avoid import cycles between
// the processor and the accumulator.
//
// All damage/heal/CC fields are champion-game totals, not rates; the
// accumulator derives per-minute values itself.
type ParticipantRecord struct {
	MatchID  string `json:"matchId"`
	Champion string `json:"championName"`
	Patch    string `json:"patch"`
	Win      bool   `json:"win"`
	Remake   bool   `json:"remake"`

	// Items holds the final inventory by slot, 0 = empty slot.
	Items [6]int `json:"items"`
	// ItemBuyOrder holds item ids from buy events in chronological order.
	ItemBuyOrder []int `json:"itemBuyOrder"`
	// FirstBuy is the starting-item combo signature, empty when unknown.
	FirstBuy string `json:"firstBuy"`

	Keystone       int    `json:"keystone"`
	PrimaryRunes   [3]int `json:"primaryRunes"`
	SecondaryRunes [2]int `json:"secondaryRunes"`
	PrimaryTree    int    `json:"primaryTree"`
	SecondaryTree  int    `json:"secondaryTree"`
	StatShards     [3]int `json:"statShards"`
	Spells         [2]int `json:"spells"`
	// SkillOrder is the skill-max-order signature (e.g. "Q>E>W"), empty
	// when unknown.
	SkillOrder string `json:"skillOrder"`

	DamageToChampions float64 `json:"damageToChampions"`
	TotalDamage       float64 `json:"totalDamage"`
	Healing           float64 `json:"healing"`
	Shielding         float64 `json:"shielding"`
	CCTime            float64 `json:"ccTime"`
	GameDurationSec   float64 `json:"gameDurationSec"`
	Deaths            int     `json:"deaths"`
}

// Validate rejects malformed records before any aggregate state is touched.
func (r *ParticipantRecord) Validate() error {
	if r.Champion == "" {
		return fmt.Errorf("participant record: missing champion name")
	}
	if r.Patch == "" {
		return fmt.Errorf("participant record: missing patch")
	}
	numeric := map[string]float64{
		"damageToChampions": r.DamageToChampions,
		"totalDamage":       r.TotalDamage,
		"healing":           r.Healing,
		"shielding":         r.Shielding,
		"ccTime":            r.CCTime,
		"gameDurationSec":   r.GameDurationSec,
	}
	for name, v := range numeric {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("participant record: %s is not finite", name)
		}
		if v < 0 {
			return fmt.Errorf("participant record: %s is negative (%v)", name, v)
		}
	}
	if r.Deaths < 0 {
		return fmt.Errorf("participant record: deaths is negative (%d)", r.Deaths)
	}
	for i, id := range r.Items {
		if id < 0 {
			return fmt.Errorf("participant record: item slot %d is negative (%d)", i+1, id)
		}
	}
	return nil
}

// Minutes returns the game duration in minutes.
func (r *ParticipantRecord) Minutes() float64 {
	return r.GameDurationSec / 60
}

// SpellPairKey returns an order-independent key for the summoner spell pair,
// so (Flash, Snowball) and (Snowball, Flash) land in the same bucket.
func (r *ParticipantRecord) SpellPairKey() string {
	a, b := r.Spells[0], r.Spells[1]
	if b < a {
		a, b = b, a
	}
	return strconv.Itoa(a) + "_" + strconv.Itoa(b)
}

// TreePairKey returns the primary/secondary rune tree combination key.
func (r *ParticipantRecord) TreePairKey() string {
	return strconv.Itoa(r.PrimaryTree) + "_" + strconv.Itoa(r.SecondaryTree)
}
