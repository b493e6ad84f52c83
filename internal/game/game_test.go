package game_test

import (
	"testing"

	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/stat"
	"github.com/stretchr/testify/require"
)

func startedGame(t *testing.T, opts ...game.Option) *game.Game {
	t.Helper()

	g := game.New(opts...)
	g.SetSetupLabel(game.TeamA, "Ballers")
	g.SetSetupLabel(game.TeamB, "Bricks")
	g.SetSetupName(game.TeamA, 0, "Ava")
	g.SetSetupName(game.TeamB, 2, "Noah")
	g.StartGame()

	return g
}

func actionByShort(t *testing.T, mode stat.Mode, short string) stat.Action {
	t.Helper()

	for _, action := range stat.Actions(mode) {
		if action.Short == short {
			return action
		}
	}
	t.Fatalf("no action %s", short)

	return stat.Action{}
}

func TestStartGame(t *testing.T) {
	g := startedGame(t)

	require.Equal(t, game.PhaseGame, g.Phase())
	require.Len(t, g.Teams(), 2)

	teamA, ok := g.Team(game.TeamA)
	require.True(t, ok)
	require.Equal(t, "Ballers", teamA.Label)
	require.Len(t, teamA.Players, 5)
	require.Equal(t, "A-1", teamA.Players[0].ID)
	require.Equal(t, "Ava", teamA.Players[0].Name)
	require.Equal(t, "P2", teamA.Players[1].Name)
	require.Equal(t, stat.NewLine(), teamA.Players[0].Stats)

	teamB, ok := g.Team(game.TeamB)
	require.True(t, ok)
	require.Equal(t, "Noah", teamB.Players[2].Name)

	selTeam, selPlayer := g.Selected()
	require.Equal(t, game.TeamA, selTeam)
	require.Equal(t, "A-1", selPlayer)
	require.Empty(t, g.History())
	require.Equal(t, "Game on: Ballers vs Bricks", g.LastAction())
}

func TestStartGameFallbackLabels(t *testing.T) {
	g := game.New()
	g.SetSetupLabel(game.TeamA, "   ")
	g.SetPlayerCount(4)
	g.StartGame()

	teamA, _ := g.Team(game.TeamA)
	require.Equal(t, "Team A", teamA.Label)
	require.Len(t, teamA.Players, 4)
	require.Equal(t, "P1", teamA.Players[0].Name)
}

func TestLogActionAndUndo(t *testing.T) {
	g := startedGame(t)
	make2 := actionByShort(t, g.Mode(), "2PTM")

	entry, ok := g.LogAction(make2)
	require.True(t, ok)
	require.Equal(t, "Ava +2PT Make", entry.Label)
	require.Equal(t, entry.Label, g.LastAction())
	require.Len(t, g.History(), 1)

	player, ok := g.SelectedPlayer()
	require.True(t, ok)
	require.Equal(t, 2, player.Points(g.Mode()))
	require.Equal(t, 1, player.Stats[stat.LowAttempted])
	require.Equal(t, 1, player.Stats[stat.LowMade])

	teamA, _ := g.Team(game.TeamA)
	require.Equal(t, 2, teamA.Points(g.Mode()))

	undone, ok := g.Undo()
	require.True(t, ok)
	require.Equal(t, entry.Label, undone.Label)
	require.Equal(t, "Undo: "+entry.Label, g.LastAction())
	require.Empty(t, g.History())

	player, _ = g.SelectedPlayer()
	require.Equal(t, 0, player.Points(g.Mode()))
	require.Equal(t, stat.NewLine(), player.Stats)
}

func TestHistoryReturnsCopy(t *testing.T) {
	g := startedGame(t)
	_, ok := g.LogAction(actionByShort(t, g.Mode(), "2PTM"))
	require.True(t, ok)

	history := g.History()
	history[0].Label = "mangled"

	require.Equal(t, "Ava +2PT Make", g.History()[0].Label)
}

func TestLogActionRequiresSelection(t *testing.T) {
	g := game.New()
	_, ok := g.LogAction(stat.Actions(stat.DefaultMode)[0])
	require.False(t, ok)
}

func TestUndoEmptyHistory(t *testing.T) {
	g := startedGame(t)
	_, ok := g.Undo()
	require.False(t, ok)
}

func TestSelectTarget(t *testing.T) {
	g := startedGame(t)
	g.SelectTarget(game.TeamB, "B-3")

	player, ok := g.SelectedPlayer()
	require.True(t, ok)
	require.Equal(t, "Noah", player.Name)

	steal := actionByShort(t, g.Mode(), "STL")
	_, ok = g.LogAction(steal)
	require.True(t, ok)

	teamB, _ := g.Team(game.TeamB)
	require.Equal(t, 1, teamB.Total(stat.Steals))
	require.Equal(t, 1, teamB.Total(stat.ForcedTO))
}

func TestEditNamesKeepsStats(t *testing.T) {
	g := startedGame(t)
	_, ok := g.LogAction(actionByShort(t, g.Mode(), "3PTM"))
	require.True(t, ok)

	require.True(t, g.BeginEditNames())
	require.Equal(t, game.PhaseEditNames, g.Phase())
	require.Equal(t, "Ballers", g.Setup(game.TeamA).Label)
	require.Equal(t, "Ava", g.Setup(game.TeamA).Names[0])

	g.SetSetupLabel(game.TeamA, "Shooters")
	g.SetSetupName(game.TeamA, 0, "  Avery  ")
	g.SetSetupName(game.TeamA, 1, "")
	g.SaveEditedNames()

	require.Equal(t, game.PhaseGame, g.Phase())
	teamA, _ := g.Team(game.TeamA)
	require.Equal(t, "Shooters", teamA.Label)
	require.Equal(t, "Avery", teamA.Players[0].Name)
	require.Equal(t, "P2", teamA.Players[1].Name)
	// Renaming never resets scores.
	require.Equal(t, 3, teamA.Points(g.Mode()))
	require.Len(t, g.History(), 1)
}

func TestEditNamesDerivesPlayerCount(t *testing.T) {
	g := game.New()
	g.SetPlayerCount(4)
	g.StartGame()
	g.SetPlayerCount(5)

	require.True(t, g.BeginEditNames())
	require.Equal(t, 4, g.PlayerCount())
}

func TestBeginEditNamesWithoutRoster(t *testing.T) {
	g := game.New()
	require.False(t, g.BeginEditNames())
	require.Equal(t, game.PhaseSetup, g.Phase())
}

func TestCancelEditNames(t *testing.T) {
	g := startedGame(t)
	require.True(t, g.BeginEditNames())
	g.SetSetupLabel(game.TeamA, "Discarded")
	g.CancelEditNames()

	require.Equal(t, game.PhaseGame, g.Phase())
	teamA, _ := g.Team(game.TeamA)
	require.Equal(t, "Ballers", teamA.Label)
}

func TestBackToSetupPreservesStagedNames(t *testing.T) {
	g := startedGame(t)
	_, ok := g.LogAction(actionByShort(t, g.Mode(), "REB"))
	require.True(t, ok)

	g.BackToSetup()

	require.Equal(t, game.PhaseSetup, g.Phase())
	require.Empty(t, g.Teams())
	require.Empty(t, g.History())
	require.Empty(t, g.LastAction())
	// A rematch keeps the staged crews.
	require.Equal(t, "Ballers", g.Setup(game.TeamA).Label)
	require.Equal(t, "Ava", g.Setup(game.TeamA).Names[0])
}

func TestSinkMirrorsTransitions(t *testing.T) {
	var snapshots []persist.State
	g := game.New(game.WithSink(func(state persist.State) {
		snapshots = append(snapshots, state)
	}))

	g.SetSetupLabel(game.TeamA, "Ballers")
	g.StartGame()
	_, ok := g.LogAction(stat.Actions(g.Mode())[0])
	require.True(t, ok)

	require.Len(t, snapshots, 3)
	require.Equal(t, persist.PhaseSetup, snapshots[0].Phase)
	require.Equal(t, persist.PhaseGame, snapshots[1].Phase)
	require.Len(t, snapshots[2].History, 1)
}

func TestStateRoundTrip(t *testing.T) {
	g := startedGame(t)
	_, ok := g.LogAction(actionByShort(t, g.Mode(), "AST"))
	require.True(t, ok)
	g.SelectTarget(game.TeamB, "B-3")

	encoded, errEncode := persist.Encode(g.State())
	require.NoError(t, errEncode)

	decoded, found := persist.Decode(encoded)
	require.True(t, found)

	restored := game.FromState(decoded)
	require.Equal(t, g.State(), restored.State())
}
