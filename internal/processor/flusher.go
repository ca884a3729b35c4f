package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
	"github.com/xvxsamuel/aram-pig-sub000/internal/logging"
)

// BaselineWriter is the persistence surface the flush cycle needs: one
// atomic merge-upsert per champion/patch key.
type BaselineWriter interface {
	MergeUpsert(ctx context.Context, champion, patch string, incoming *aggregate.ChampionPatchAggregate) error
}

// Flusher periodically drains the ingestor and merge-upserts each drained
// aggregate into the store. Entries that fail to persist are held in a
// pending set and merged with the next drain, so a store outage delays
// data but never loses it.
type Flusher struct {
	ingestor *Ingestor
	writer   BaselineWriter
	interval time.Duration
	logger   logging.Interface

	pending map[aggregate.Key]*aggregate.ChampionPatchAggregate
}

// NewFlusher creates a flusher over the given ingestor and writer.
func NewFlusher(ingestor *Ingestor, writer BaselineWriter, interval time.Duration) *Flusher {
	return &Flusher{
		ingestor: ingestor,
		writer:   writer,
		interval: interval,
		logger:   logging.Logger().Component("flush"),
		pending:  make(map[aggregate.Key]*aggregate.ChampionPatchAggregate),
	}
}

// Run flushes on a ticker until the context is canceled, then performs one
// final flush with a fresh deadline so accumulated data survives shutdown.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := f.Flush(ctx); err != nil {
				f.logger.Warnf("flush cycle incomplete: %v", err)
			}
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := f.Flush(final); err != nil {
				f.logger.Errorf("final flush incomplete, data pending: %v", err)
			}
			cancel()
			return
		}
	}
}

// Flush drains the ingestor, folds the snapshot into any entries still
// pending from failed attempts, and merge-upserts everything. Returns an
// error when at least one key could not be persisted; those keys stay
// pending for the next cycle.
func (f *Flusher) Flush(ctx context.Context) error {
	batch := uuid.New()
	records := f.ingestor.RecordCount()

	for _, entry := range f.ingestor.Drain() {
		key := aggregate.Key{Champion: entry.Champion, Patch: entry.Patch}
		f.pending[key] = aggregate.Merge(f.pending[key], entry.Aggregate)
	}
	if len(f.pending) == 0 {
		return nil
	}

	total := len(f.pending)
	f.logger.Infof("flush %s: %d records across %d keys", batch, records, total)

	var failed int
	for key, agg := range f.pending {
		if err := f.writer.MergeUpsert(ctx, key.Champion, key.Patch, agg); err != nil {
			f.logger.Warnf("flush %s: %s/%s failed, keeping pending: %v", batch, key.Champion, key.Patch, err)
			failed++
			continue
		}
		delete(f.pending, key)
	}
	if failed > 0 {
		return fmt.Errorf("flush %s: %d of %d keys failed", batch, failed, total)
	}

	f.logger.Infof("flush %s: complete", batch)
	return nil
}

// PendingKeys returns how many keys await a successful persist.
func (f *Flusher) PendingKeys() int {
	return len(f.pending)
}
