package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	changes, err := j2.Recent(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestRecord_And_Recent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, Change{
		ID:      "chg-1",
		Path:    "app.json",
		Route:   "server.port",
		Op:      OpSet,
		Value:   "9090",
		DocHash: "aaaa",
	}))

	changes, err := j.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	got := changes[0]
	assert.Equal(t, "chg-1", got.ID)
	assert.Equal(t, "app.json", got.Path)
	assert.Equal(t, "server.port", got.Route)
	assert.Equal(t, OpSet, got.Op)
	assert.Equal(t, "9090", got.Value)
	assert.Equal(t, "aaaa", got.DocHash)
	assert.NotEmpty(t, got.RecordedAt)
}

func TestRecord_DuplicateIDIsIgnored(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	ch := Change{ID: "chg-1", Path: "app.json", Route: "a", Op: OpSet, Value: "1", DocHash: "h"}
	require.NoError(t, j.Record(ctx, ch))

	ch.Value = "2"
	require.NoError(t, j.Record(ctx, ch))

	changes, err := j.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "1", changes[0].Value, "first insert wins")
}

func TestRecord_DeleteStoresNoValue(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, Change{
		ID:      "chg-1",
		Path:    "app.json",
		Route:   "server.debug",
		Op:      OpDelete,
		Value:   "should be dropped",
		DocHash: "h",
	}))

	changes, err := j.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, OpDelete, changes[0].Op)
	assert.Empty(t, changes[0].Value)
}

func TestRecord_RejectsUnknownOp(t *testing.T) {
	j := openTestJournal(t)

	err := j.Record(context.Background(), Change{
		ID: "chg-1", Path: "app.json", Route: "a", Op: Op("rename"),
	})
	assert.Error(t, err)
}

func TestRecent_NewestFirst(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, j.Record(ctx, Change{
			ID:   fmt.Sprintf("chg-%d", i),
			Path: "app.json", Route: "a", Op: OpSet, Value: "1", DocHash: "h",
		}))
	}

	changes, err := j.Recent(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, changes, 3)
	assert.Equal(t, "chg-3", changes[0].ID)
	assert.Equal(t, "chg-1", changes[2].ID)
}

func TestRecent_FiltersByPath(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, Change{ID: "a1", Path: "a.json", Route: "x", Op: OpSet, Value: "1", DocHash: "h"}))
	require.NoError(t, j.Record(ctx, Change{ID: "b1", Path: "b.yaml", Route: "x", Op: OpSet, Value: "1", DocHash: "h"}))
	require.NoError(t, j.Record(ctx, Change{ID: "a2", Path: "a.json", Route: "y", Op: OpDelete, DocHash: "h"}))

	changes, err := j.Recent(ctx, "a.json", 0)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "a2", changes[0].ID)
	assert.Equal(t, "a1", changes[1].ID)
}

func TestRecent_Limit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, j.Record(ctx, Change{
			ID:   fmt.Sprintf("chg-%d", i),
			Path: "app.json", Route: "a", Op: OpSet, Value: "1", DocHash: "h",
		}))
	}

	changes, err := j.Recent(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "chg-5", changes[0].ID)
	assert.Equal(t, "chg-4", changes[1].ID)
}
