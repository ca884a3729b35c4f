package stats

// ChoiceTally tracks how often a discrete choice was picked and how often it
// won.
type ChoiceTally struct {
	Games int64 `json:"games"`
	Wins  int64 `json:"wins"`
}

// Winrate returns wins/games, or 0 for an empty tally.
func (t ChoiceTally) Winrate() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Wins) / float64(t.Games)
}

// ChoiceCounter maps a discrete choice key (item id, rune id, spell pair,
// build signature) to its win/loss tally. Keys appear lazily on first use.
type ChoiceCounter map[string]ChoiceTally

// Increment records one game for key, counting the win if won is set.
func (c ChoiceCounter) Increment(key string, won bool) {
	t := c[key]
	t.Games++
	if won {
		t.Wins++
	}
	c[key] = t
}

// Games returns the total games recorded across all keys.
func (c ChoiceCounter) Games() int64 {
	var total int64
	for _, t := range c {
		total += t.Games
	}
	return total
}

// MergeCounters returns the key-union of a and b with tallies summed.
// Neither input is mutated; the result shares no storage with the inputs.
func MergeCounters(a, b ChoiceCounter) ChoiceCounter {
	out := make(ChoiceCounter, len(a)+len(b))
	for k, t := range a {
		out[k] = t
	}
	for k, t := range b {
		prev := out[k]
		out[k] = ChoiceTally{Games: prev.Games + t.Games, Wins: prev.Wins + t.Wins}
	}
	return out
}

// Best returns the key with the highest winrate among keys with at least
// minGames recorded games, together with its tally. Ties go to the key with
// more games, then to the lexically smaller key so the result is
// deterministic. ok is false when no key qualifies.
func (c ChoiceCounter) Best(minGames int64) (key string, tally ChoiceTally, ok bool) {
	for k, t := range c {
		if t.Games < minGames {
			continue
		}
		if !ok {
			key, tally, ok = k, t, true
			continue
		}
		wr, best := t.Winrate(), tally.Winrate()
		switch {
		case wr > best:
			key, tally = k, t
		case wr == best && t.Games > tally.Games:
			key, tally = k, t
		case wr == best && t.Games == tally.Games && k < key:
			key, tally = k, t
		}
	}
	return key, tally, ok
}
