package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/arkscan/internal/models"
)

func testSummary(id string, started time.Time) models.RunSummary {
	return models.RunSummary{
		RunID:      id,
		Keyword:    "swagger",
		StartedAt:  started,
		FinishedAt: started.Add(42 * time.Second),
		Processed:  10,
		Matched:    2,
		Skipped:    3,
		Missing:    1,
		Failed:     1,
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordRun(ctx, testSummary("run-1", base)))
	require.NoError(t, store.RecordRun(ctx, testSummary("run-2", base.Add(time.Hour))))

	runs, err := store.RecentRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Most recent first.
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)

	got := runs[1]
	assert.Equal(t, "swagger", got.Keyword)
	assert.Equal(t, 10, got.Processed)
	assert.Equal(t, 2, got.Matched)
	assert.Equal(t, 3, got.Skipped)
	assert.Equal(t, 1, got.Missing)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, 42*time.Second, got.Duration())
}

func TestRecentRunsLimit(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		sum := testSummary(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, store.RecordRun(ctx, sum))
	}

	runs, err := store.RecentRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
	assert.Equal(t, "e", runs[0].RunID)
}

func TestRecentRunsEmpty(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.RecentRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	sum := testSummary("dup", time.Now().UTC())
	require.NoError(t, store.RecordRun(ctx, sum))
	assert.Error(t, store.RecordRun(ctx, sum))
}
