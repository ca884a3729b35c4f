package processor

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvxsamuel/aram-pig-sub000/internal/aggregate"
)

func ingestRecord(patch string) *aggregate.ParticipantRecord {
	return &aggregate.ParticipantRecord{
		MatchID:           "NA1_100",
		Champion:          "Ahri",
		Patch:             patch,
		Win:               true,
		Items:             [6]int{6653, 3020, 3089, 3157, 0, 0},
		ItemBuyOrder:      []int{1056, 6653, 3020, 3089, 3157},
		Keystone:          8112,
		Spells:            [2]int{4, 32},
		DamageToChampions: 24000,
		TotalDamage:       30000,
		Healing:           1500,
		CCTime:            42,
		GameDurationSec:   1200,
		Deaths:            7,
	}
}

func TestIngestCountsValidRecord(t *testing.T) {
	in := NewIngestor(nil)

	require.NoError(t, in.Ingest(ingestRecord("14.3")))
	assert.Equal(t, int64(1), in.RecordCount())
	assert.Equal(t, int64(0), in.DroppedCount())

	drained := in.Drain()
	require.Len(t, drained, 1)
	assert.Equal(t, "Ahri", drained[0].Champion)
	assert.Equal(t, "14.3", drained[0].Patch)
	assert.Equal(t, int64(1), drained[0].Aggregate.Games)
	assert.Equal(t, int64(0), in.RecordCount(), "drain resets the accumulator")
}

func TestIngestDropsRemakesSilently(t *testing.T) {
	in := NewIngestor(nil)

	rec := ingestRecord("14.3")
	rec.Remake = true

	require.NoError(t, in.Ingest(rec), "remakes are excluded by policy, not errors")
	assert.Equal(t, int64(0), in.RecordCount())
	assert.Equal(t, int64(1), in.DroppedCount())
}

func TestIngestPatchAllowList(t *testing.T) {
	in := NewIngestor([]string{"14.3", "14.4"})

	require.NoError(t, in.Ingest(ingestRecord("14.2")))
	assert.Equal(t, int64(0), in.RecordCount())
	assert.Equal(t, int64(1), in.DroppedCount())

	require.NoError(t, in.Ingest(ingestRecord("14.4")))
	assert.Equal(t, int64(1), in.RecordCount())
}

func TestIngestEmptyAllowListAcceptsAnyPatch(t *testing.T) {
	in := NewIngestor(nil)

	require.NoError(t, in.Ingest(ingestRecord("13.1")))
	assert.Equal(t, int64(1), in.RecordCount())
}

func TestIngestRejectsMalformedRecord(t *testing.T) {
	in := NewIngestor(nil)

	rec := ingestRecord("14.3")
	rec.Champion = ""

	assert.Error(t, in.Ingest(rec))
	assert.Equal(t, int64(0), in.RecordCount())
	assert.Equal(t, int64(0), in.DroppedCount(), "validation failures are errors, not drops")
}

func TestHandleDecodesQueuePayload(t *testing.T) {
	in := NewIngestor(nil)

	payload, err := json.Marshal(ingestRecord("14.3"))
	require.NoError(t, err)

	require.NoError(t, in.Handle(payload))
	assert.Equal(t, int64(1), in.RecordCount())

	assert.Error(t, in.Handle([]byte("not json")))
}
