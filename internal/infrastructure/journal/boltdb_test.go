package journal

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), "events")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)

	for i, name := range []string{"sale.created", "sale.created", "sale.cancelled"} {
		err := store.Append(Entry{
			Name:       name,
			Payload:    json.RawMessage(`{}`),
			RecordedAt: time.Now().UTC().Add(time.Duration(i) * time.Millisecond),
		})
		require.NoError(t, err)
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "sale.created", entries[0].Name)
	assert.Equal(t, "sale.cancelled", entries[2].Name)
	for _, entry := range entries {
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.RecordedAt.IsZero())
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(Entry{Name: "sale.created"}))
	}

	entries, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPruneRemovesOldEntries(t *testing.T) {
	store := openStore(t)
	now := time.Now().UTC()

	require.NoError(t, store.Append(Entry{Name: "old", RecordedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, store.Append(Entry{Name: "fresh", RecordedAt: now}))

	require.NoError(t, store.Prune(now.Add(-24*time.Hour)))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].Name)
}

func TestClosedStoreReportsError(t *testing.T) {
	var store *Store
	_, err := store.Size()
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
