package repo

import (
	"context"
	"testing"

	dom "entryledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemEntryRepoCRUD(t *testing.T) {
	r := NewMemEntryRepo()
	ctx := context.Background()

	_, err := r.GetEntry(ctx, "a")
	assert.ErrorIs(t, err, ErrNoEntry)

	require.NoError(t, r.InsertEntry(ctx, dom.Entry{Identity: "a", Content: "one"}))
	assert.ErrorIs(t, r.InsertEntry(ctx, dom.Entry{Identity: "a", Content: "two"}), ErrEntryExists)

	e, err := r.GetEntry(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "one", e.Content)

	require.NoError(t, r.UpdateEntry(ctx, dom.Entry{Identity: "a", Content: "two", Completed: true}))
	e, err = r.GetEntry(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "two", e.Content)
	assert.True(t, e.Completed)

	assert.ErrorIs(t, r.UpdateEntry(ctx, dom.Entry{Identity: "b", Content: "x"}), ErrNoEntry)

	require.NoError(t, r.DeleteEntry(ctx, "a"))
	assert.ErrorIs(t, r.DeleteEntry(ctx, "a"), ErrNoEntry)
	_, err = r.GetEntry(ctx, "a")
	assert.ErrorIs(t, err, ErrNoEntry)
}

func TestMemEntryRepoKeepsSideTablesOnDelete(t *testing.T) {
	r := NewMemEntryRepo()
	ctx := context.Background()

	require.NoError(t, r.InsertEntry(ctx, dom.Entry{Identity: "a", Content: "one"}))
	require.NoError(t, r.UpsertPriority(ctx, dom.PriorityRecord{Identity: "a", Tier: dom.TierMedium}))
	require.NoError(t, r.UpsertTemporal(ctx, dom.TemporalRecord{Identity: "a", Deadline: 42}))

	require.NoError(t, r.DeleteEntry(ctx, "a"))

	p, err := r.GetPriority(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, dom.TierMedium, p.Tier)

	tr, err := r.GetTemporal(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), tr.Deadline)
	assert.False(t, tr.Notified)
}

func TestMemEntryRepoUpsertsReplace(t *testing.T) {
	r := NewMemEntryRepo()
	ctx := context.Background()

	require.NoError(t, r.UpsertPriority(ctx, dom.PriorityRecord{Identity: "a", Tier: dom.TierLow}))
	require.NoError(t, r.UpsertPriority(ctx, dom.PriorityRecord{Identity: "a", Tier: dom.TierHigh}))
	p, err := r.GetPriority(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, dom.TierHigh, p.Tier)

	require.NoError(t, r.UpsertTemporal(ctx, dom.TemporalRecord{Identity: "a", Deadline: 10, Notified: true}))
	require.NoError(t, r.UpsertTemporal(ctx, dom.TemporalRecord{Identity: "a", Deadline: 20}))
	tr, err := r.GetTemporal(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, uint64(20), tr.Deadline)
	assert.False(t, tr.Notified)
}
