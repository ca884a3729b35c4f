package processor

import (
	"fmt"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
	"github.com/xvxsamuel/aram-pig-sub000/internal/logging"
)

// Ingestor feeds queue payloads into an accumulator. It applies the
// ingestion policy (validation, remake exclusion, accepted-patch
// allow-list) at the boundary so the accumulator only ever sees records it
// should count.
//
// The accumulator itself is single-writer; the Ingestor's mutex is what
// makes Handle safe for the concurrent queue consumer and Drain safe for
// the flush loop.
type Ingestor struct {
	mu       sync.Mutex
	acc      *aggregate.Accumulator
	accepted map[string]bool // empty means accept every patch
	logger   logging.Interface

	dropped int64
}

// NewIngestor creates an ingestor with the given patch allow-list.
func NewIngestor(acceptedPatches []string) *Ingestor {
	accepted := make(map[string]bool, len(acceptedPatches))
	for _, p := range acceptedPatches {
		accepted[p] = true
	}
	return &Ingestor{
		acc:      aggregate.NewAccumulator(),
		accepted: accepted,
		logger:   logging.Logger().Component("ingest"),
	}
}

// Handle is the queue handler: it decodes one participant-record payload
// and ingests it.
func (in *Ingestor) Handle(payload []byte) error {
	var rec aggregate.ParticipantRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return fmt.Errorf("unmarshal participant record: %w", err)
	}
	return in.Ingest(&rec)
}

// Ingest validates and folds one record. Remake games and records from
// unaccepted patches are dropped silently: they are policy exclusions, not
// errors, and must not cycle through the queue's retry path.
func (in *Ingestor) Ingest(rec *aggregate.ParticipantRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if rec.Remake {
		in.drop("remake", rec)
		return nil
	}
	if len(in.accepted) > 0 && !in.accepted[rec.Patch] {
		in.drop("patch not accepted", rec)
		return nil
	}

	in.mu.Lock()
	in.acc.Add(rec)
	in.mu.Unlock()
	return nil
}

func (in *Ingestor) drop(reason string, rec *aggregate.ParticipantRecord) {
	in.mu.Lock()
	in.dropped++
	in.mu.Unlock()
	in.logger.Debugf("dropped record %s (%s %s): %s", rec.MatchID, rec.Champion, rec.Patch, reason)
}

// Drain snapshots and resets the accumulator.
func (in *Ingestor) Drain() []aggregate.DrainedAggregate {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.acc.Drain()
}

// RecordCount returns ingested records since the last drain, for
// operational visibility.
func (in *Ingestor) RecordCount() int64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.acc.RecordCount()
}

// DroppedCount returns records excluded by policy since startup.
func (in *Ingestor) DroppedCount() int64 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dropped
}
