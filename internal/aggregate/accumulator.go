package aggregate

// Key identifies one champion/patch baseline.
type Key struct {
	Champion string
	Patch    string
}

// DrainedAggregate is one entry of a flush snapshot.
type DrainedAggregate struct {
	Champion  string
	Patch     string
	Aggregate *ChampionPatchAggregate
}

// Accumulator folds participant records into in-memory champion/patch
// aggregates. It is owned by a single ingestion loop and performs no
// internal locking; concurrent ingestion pipelines each run their own
// Accumulator and reconcile through Merge at flush time.
type Accumulator struct {
	aggregates map[Key]*ChampionPatchAggregate
	records    int64
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{aggregates: make(map[Key]*ChampionPatchAggregate)}
}

// Add folds one record into the champion/patch aggregate, creating it on
// first sight, and into the matching core-build bucket when the record's
// buy order yields a core key. O(1) amortized per call.
//
// Callers are expected to have already validated the record and applied
// the remake/patch ingestion policy.
func (a *Accumulator) Add(rec *ParticipantRecord) {
	key := Key{Champion: rec.Champion, Patch: rec.Patch}
	agg, ok := a.aggregates[key]
	if !ok {
		agg = NewChampionPatchAggregate()
		a.aggregates[key] = agg
	}

	agg.addRecord(rec)

	if coreKey, ok := CoreBuildKey(rec.ItemBuyOrder, rec.Items); ok {
		bucket, ok := agg.Core[coreKey]
		if !ok {
			bucket = NewBucketStats()
			agg.Core[coreKey] = bucket
		}
		bucket.addRecord(rec)
	}

	a.records++
}

// RecordCount returns the number of Add calls since the last Drain.
func (a *Accumulator) RecordCount() int64 {
	return a.records
}

// Drain returns everything accumulated since the last drain and resets the
// accumulator. The returned aggregates are no longer referenced internally,
// so the caller owns them outright; a failed persistence attempt can retry
// from the snapshot without re-ingesting.
func (a *Accumulator) Drain() []DrainedAggregate {
	out := make([]DrainedAggregate, 0, len(a.aggregates))
	for key, agg := range a.aggregates {
		out = append(out, DrainedAggregate{Champion: key.Champion, Patch: key.Patch, Aggregate: agg})
	}
	a.aggregates = make(map[Key]*ChampionPatchAggregate)
	a.records = 0
	return out
}
