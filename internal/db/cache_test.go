package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
)

type countingSource struct {
	agg        *aggregate.ChampionPatchAggregate
	loads      int
	priorLoads int
}

func (s *countingSource) Load(context.Context, string, string) (*aggregate.ChampionPatchAggregate, error) {
	s.loads++
	return s.agg, nil
}

func (s *countingSource) LoadLatestBefore(context.Context, string, string) (*aggregate.ChampionPatchAggregate, error) {
	s.priorLoads++
	return s.agg, nil
}

func TestCachedBaselinesReadThrough(t *testing.T) {
	src := &countingSource{agg: aggregate.NewChampionPatchAggregate()}
	c := NewCachedBaselines(src, time.Minute)
	defer c.Stop()

	ctx := context.Background()

	first, err := c.Load(ctx, "Ahri", "14.3")
	require.NoError(t, err)
	second, err := c.Load(ctx, "Ahri", "14.3")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.loads, "second read comes from the cache")

	_, err = c.Load(ctx, "Ahri", "14.4")
	require.NoError(t, err)
	assert.Equal(t, 2, src.loads, "different patch is a different key")
}

func TestCachedBaselinesCachesMisses(t *testing.T) {
	src := &countingSource{agg: nil}
	c := NewCachedBaselines(src, time.Minute)
	defer c.Stop()

	ctx := context.Background()

	agg, err := c.Load(ctx, "Zoe", "14.3")
	require.NoError(t, err)
	assert.Nil(t, agg)

	_, err = c.Load(ctx, "Zoe", "14.3")
	require.NoError(t, err)
	assert.Equal(t, 1, src.loads, "a nil result is cached too")
}

func TestCachedBaselinesPriorUsesOwnCache(t *testing.T) {
	src := &countingSource{agg: aggregate.NewChampionPatchAggregate()}
	c := NewCachedBaselines(src, time.Minute)
	defer c.Stop()

	ctx := context.Background()

	_, err := c.Load(ctx, "Ahri", "14.3")
	require.NoError(t, err)
	_, err = c.LoadLatestBefore(ctx, "Ahri", "14.3")
	require.NoError(t, err)
	_, err = c.LoadLatestBefore(ctx, "Ahri", "14.3")
	require.NoError(t, err)

	assert.Equal(t, 1, src.loads)
	assert.Equal(t, 1, src.priorLoads, "prior lookups do not collide with current-patch entries")
}
