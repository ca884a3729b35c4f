package db

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
)

// BaselineStore persists champion/patch aggregates as JSONB blobs.
//
// Expected schema:
//
//	CREATE TABLE champion_patch_baselines (
//	    champion   text        NOT NULL,
//	    patch      text        NOT NULL,
//	    payload    jsonb       NOT NULL,
//	    updated_at timestamptz NOT NULL DEFAULT now(),
//	    PRIMARY KEY (champion, patch)
//	);
type BaselineStore struct {
	pool *pgxpool.Pool
}

// NewBaselineStore creates a store over the given pool.
func NewBaselineStore(pool *pgxpool.Pool) *BaselineStore {
	return &BaselineStore{pool: pool}
}

// Load returns the persisted aggregate for a champion/patch key, or nil
// when none exists.
func (s *BaselineStore) Load(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM champion_patch_baselines WHERE champion = $1 AND patch = $2`,
		champion, patch,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load baseline %s/%s: %w", champion, patch, err)
	}
	return decodeAggregate(payload)
}

// LoadLatestBefore returns the aggregate for the newest patch older than
// the given one for the same champion, supporting the prior-patch scoring
// fallback. Returns nil when no earlier patch is stored.
func (s *BaselineStore) LoadLatestBefore(ctx context.Context, champion, patch string) (*aggregate.ChampionPatchAggregate, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT patch, payload FROM champion_patch_baselines WHERE champion = $1`,
		champion,
	)
	if err != nil {
		return nil, fmt.Errorf("load prior baselines for %s: %w", champion, err)
	}
	defer rows.Close()

	var bestPatch string
	var bestPayload []byte
	for rows.Next() {
		var candidate string
		var payload []byte
		if err := rows.Scan(&candidate, &payload); err != nil {
			return nil, fmt.Errorf("scan prior baseline: %w", err)
		}
		if !patchLess(candidate, patch) {
			continue
		}
		if bestPatch == "" || patchLess(bestPatch, candidate) {
			bestPatch = candidate
			bestPayload = payload
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prior baselines: %w", err)
	}
	if bestPayload == nil {
		return nil, nil
	}
	return decodeAggregate(bestPayload)
}

// MergeUpsert folds incoming into the persisted aggregate for a key as one
// transactional read-merge-write. A per-key advisory lock serializes
// concurrent flushes of the same champion/patch, so merges from parallel
// workers cannot lose updates.
func (s *BaselineStore) MergeUpsert(ctx context.Context, champion, patch string, incoming *aggregate.ChampionPatchAggregate) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey(champion, patch)); err != nil {
		return fmt.Errorf("acquire baseline lock: %w", err)
	}

	var payload []byte
	err = tx.QueryRow(ctx,
		`SELECT payload FROM champion_patch_baselines WHERE champion = $1 AND patch = $2`,
		champion, patch,
	).Scan(&payload)
	var existing *aggregate.ChampionPatchAggregate
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return fmt.Errorf("read baseline %s/%s: %w", champion, patch, err)
	default:
		if existing, err = decodeAggregate(payload); err != nil {
			return err
		}
	}

	merged := aggregate.Merge(existing, incoming)
	blob, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encode baseline %s/%s: %w", champion, patch, err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO champion_patch_baselines (champion, patch, payload, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (champion, patch)
		 DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		champion, patch, blob,
	); err != nil {
		return fmt.Errorf("upsert baseline %s/%s: %w", champion, patch, err)
	}

	return tx.Commit(ctx)
}

// PrunePatches deletes baselines whose patch is not in keep. Used by the
// retention pass once a patch rotates out of the accepted set. A nil or
// empty keep list prunes nothing.
func (s *BaselineStore) PrunePatches(ctx context.Context, keep []string) (int64, error) {
	if len(keep) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM champion_patch_baselines WHERE NOT (patch = ANY($1))`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune baselines: %w", err)
	}
	return tag.RowsAffected(), nil
}

func decodeAggregate(payload []byte) (*aggregate.ChampionPatchAggregate, error) {
	var agg aggregate.ChampionPatchAggregate
	if err := json.Unmarshal(payload, &agg); err != nil {
		return nil, fmt.Errorf("decode baseline payload: %w", err)
	}
	if agg.Core == nil {
		agg.Core = make(map[string]*aggregate.BucketStats)
	}
	return &agg, nil
}

// advisoryLockKey derives a stable int64 lock key from a champion/patch
// pair for pg_advisory_xact_lock.
func advisoryLockKey(champion, patch string) int64 {
	h := fnv.New64a()
	h.Write([]byte(champion))
	h.Write([]byte{0})
	h.Write([]byte(patch))
	return int64(binary.BigEndian.Uint64(h.Sum(nil)[:8]))
}

// patchLess orders patch strings like "14.3" numerically by component,
// falling back to string order for malformed parts.
func patchLess(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
			continue
		}
		if an != bn {
			return an < bn
		}
	}
	return len(as) < len(bs)
}
