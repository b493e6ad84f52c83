package persist_test

import (
	"testing"
	"time"

	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testStores(t *testing.T) map[string]persist.Store {
	t.Helper()

	sqlStore, errOpen := persist.Open(t.Context(), "", true)
	require.NoError(t, errOpen)
	t.Cleanup(func() { _ = sqlStore.Close() })

	return map[string]persist.Store{
		"sqlite": sqlStore,
		"memory": persist.NewMemoryStore(),
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, errEmpty := store.LoadSnapshot(t.Context())
			require.ErrorIs(t, errEmpty, persist.ErrNoSnapshot)

			require.NoError(t, store.SaveSnapshot(t.Context(), []byte(`{"phase":"setup"}`)))
			require.NoError(t, store.SaveSnapshot(t.Context(), []byte(`{"phase":"game"}`)))

			body, errLoad := store.LoadSnapshot(t.Context())
			require.NoError(t, errLoad)
			require.JSONEq(t, `{"phase":"game"}`, string(body))
		})
	}
}

func TestActionAudit(t *testing.T) {
	for name, store := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			now := time.Now()
			for _, label := range []string{"Ava +2PT Make", "Ava Assist", "Undo: Ava Assist"} {
				require.NoError(t, store.AppendAction(t.Context(), persist.AuditRow{
					TeamID:    "A",
					PlayerID:  "A-1",
					Label:     label,
					CreatedOn: now,
				}))
			}

			rows, errRecent := store.RecentActions(t.Context(), 2)
			require.NoError(t, errRecent)
			require.Len(t, rows, 2)
			// Newest first.
			require.Equal(t, "Undo: Ava Assist", rows[0].Label)
			require.Equal(t, "Ava Assist", rows[1].Label)
		})
	}
}

func TestLoadStateFallsBackToDefaults(t *testing.T) {
	store := persist.NewMemoryStore()

	state, found := persist.LoadState(t.Context(), store)
	require.False(t, found)
	require.Equal(t, persist.Default(), state)

	require.NoError(t, store.SaveSnapshot(t.Context(), []byte("corrupted {{{")))
	state, found = persist.LoadState(t.Context(), store)
	require.False(t, found)
	require.Equal(t, persist.Default(), state)
}

func TestSaveStateBestEffort(t *testing.T) {
	store := persist.NewMemoryStore()
	state := persist.Default()
	state.LastAction = "Ava Assist"

	persist.SaveState(t.Context(), store, state)

	loaded, found := persist.LoadState(t.Context(), store)
	require.True(t, found)
	require.Equal(t, "Ava Assist", loaded.LastAction)
}
