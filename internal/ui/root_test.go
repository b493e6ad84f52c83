package ui

import (
	"context"
	"testing"

	"github.com/courtkeep/courtkeep/internal/config"
	"github.com/courtkeep/courtkeep/internal/export"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/share"
	"github.com/courtkeep/courtkeep/internal/stat"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct{}

func (stubRenderer) Render(_ context.Context, _ stat.Mode, _ []game.Team) ([]byte, error) {
	return []byte("png"), nil
}

type stubWriter struct{}

func (stubWriter) Write(_ config.Config) error { return nil }
func (stubWriter) Path() string                { return "courtkeep.yaml" }

// restoredModel builds a root model on top of a snapshot exactly as it would
// come back from disk, including normalization.
func restoredModel(t *testing.T, body string) rootModel {
	t.Helper()

	state, found := persist.Decode([]byte(body))
	require.True(t, found)

	root := newRootModel(context.Background(), config.Config{}, Deps{
		Game:     game.FromState(state),
		Store:    persist.NewMemoryStore(),
		Preparer: share.NewPreparer(stubRenderer{}),
		Exporter: export.New("", t.TempDir()),
		Writer:   stubWriter{},
	})

	return *root
}

// A stored game-phase record may carry a team whose players array is empty;
// normalization admits it because the team itself is present. Arrow keys must
// treat such a side as unreachable instead of stepping into it.
func TestMoveSelectionPlayerlessTeam(t *testing.T) {
	m := restoredModel(t, `{"phase":"game","teams":[{"id":"A","label":"Ballers","players":[]}]}`)

	require.Equal(t, game.PhaseGame, m.game.Phase())
	require.Len(t, m.game.Teams(), 1)
	require.Empty(t, m.game.Teams()[0].Players)

	for _, step := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		model, cmd := m.moveSelection(step[0], step[1])
		require.NotNil(t, model)
		require.Nil(t, cmd)
	}
}

func TestMoveSelectionSkipsEmptySide(t *testing.T) {
	body := `{"phase":"game","teams":[` +
		`{"id":"A","label":"Ballers","players":[{"id":"A-1","name":"Ava"},{"id":"A-2","name":"Mia"}]},` +
		`{"id":"B","label":"Bricks","players":[]}]}`
	m := restoredModel(t, body)
	m.game.SelectTarget(game.TeamA, "A-1")

	// Jumping across to the playerless side is a no-op.
	_, cmd := m.moveSelection(0, 1)
	require.Nil(t, cmd)

	selTeam, selPlayer := m.game.Selected()
	require.Equal(t, game.TeamA, selTeam)
	require.Equal(t, "A-1", selPlayer)

	// Row movement within the populated side still works.
	_, _ = m.moveSelection(1, 0)

	selTeam, selPlayer = m.game.Selected()
	require.Equal(t, game.TeamA, selTeam)
	require.Equal(t, "A-2", selPlayer)
}
