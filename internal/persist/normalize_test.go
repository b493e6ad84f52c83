package persist_test

import (
	"fmt"
	"testing"

	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/stretchr/testify/require"
)

func TestDecodeGarbage(t *testing.T) {
	for _, body := range []string{"", "not json", `"a string"`, "[1,2,3]", "42"} {
		state, found := persist.Decode([]byte(body))
		require.False(t, found, "body %q", body)
		require.Equal(t, persist.Default(), state)
	}
}

func TestDecodeEmptyObject(t *testing.T) {
	state, found := persist.Decode([]byte(`{}`))
	require.True(t, found)
	require.Equal(t, persist.PhaseSetup, state.Phase)
	require.Equal(t, 5, state.PlayerCount)
	require.Equal(t, "twosAndThrees", state.Mode)
	require.Len(t, state.SetupTeams, 2)
}

func TestDecodeWrongTypedScalars(t *testing.T) {
	state, found := persist.Decode([]byte(`{
		"phase": 7,
		"playerCount": "lots",
		"mode": "bestOfFive",
		"setupMode": ["x"],
		"lastAction": {"nested": true},
		"selectedTeam": 1
	}`))
	require.True(t, found)
	require.Equal(t, persist.PhaseSetup, state.Phase)
	require.Equal(t, 5, state.PlayerCount)
	require.Equal(t, "twosAndThrees", state.Mode)
	require.Equal(t, "twosAndThrees", state.SetupMode)
	require.Empty(t, state.LastAction)
	require.Empty(t, state.SelectedTeam)
}

func TestDecodePlayerCountFour(t *testing.T) {
	state, _ := persist.Decode([]byte(`{"playerCount": 4}`))
	require.Equal(t, 4, state.PlayerCount)

	state, _ = persist.Decode([]byte(`{"playerCount": 9}`))
	require.Equal(t, 5, state.PlayerCount)
}

func TestDecodeStatsClampAndFilter(t *testing.T) {
	state, found := persist.Decode([]byte(`{
		"teams": [
			{"id": "A", "label": "Ballers", "players": [
				{"id": "A-1", "name": "Ava", "stats": {"ast": -4, "reb": 3.9, "blk": "two", "legacyKey": 12}}
			]}
		]
	}`))
	require.True(t, found)
	require.Len(t, state.Teams, 1)

	stats := state.Teams[0].Players[0].Stats
	require.Equal(t, 0, stats["ast"], "negative counters clamp to zero")
	require.Equal(t, 3, stats["reb"])
	require.Equal(t, 0, stats["blk"], "non-numbers coerce to zero")
	require.NotContains(t, stats, "legacyKey")
	require.Contains(t, stats, "lowPA", "missing keys are zero-filled")
}

func TestDecodeTeamDedupAndFallbackIDs(t *testing.T) {
	state, found := persist.Decode([]byte(`{
		"teams": [
			{"id": "B", "label": "first B", "players": []},
			{"id": "B", "label": "dupe B", "players": []},
			{"label": "no id", "players": [{"name": "Ghost"}]},
			"not an object",
			{"id": "weird", "label": "bad id"}
		]
	}`))
	require.True(t, found)
	require.Len(t, state.Teams, 2)
	require.Equal(t, "B", state.Teams[0].ID)
	require.Equal(t, "first B", state.Teams[0].Label)
	// First entry without a usable id claims the first unassigned side.
	require.Equal(t, "A", state.Teams[1].ID)
	require.Equal(t, "no id", state.Teams[1].Label)
	require.Equal(t, "A-1", state.Teams[1].Players[0].ID)
}

func TestDecodeSelectionReResolved(t *testing.T) {
	body := `{
		"phase": "game",
		"teams": [
			{"id": "A", "label": "Ballers", "players": [
				{"id": "A-1", "name": "Ava", "stats": {}},
				{"id": "A-2", "name": "Bo", "stats": {}}
			]}
		],
		"selectedTeam": "A", "selectedPlayer": "%s"
	}`

	state, _ := persist.Decode([]byte(fmt.Sprintf(body, "A-2")))
	require.Equal(t, "A-2", state.SelectedPlayer)

	// Recorded player gone: fall back to the team's first player.
	state, _ = persist.Decode([]byte(fmt.Sprintf(body, "A-9")))
	require.Equal(t, "A", state.SelectedTeam)
	require.Equal(t, "A-1", state.SelectedPlayer)
}

func TestDecodeSelectionTeamMissing(t *testing.T) {
	state, _ := persist.Decode([]byte(`{
		"teams": [{"id": "A", "label": "x", "players": [{"id": "A-1", "name": "Ava", "stats": {}}]}],
		"selectedTeam": "B", "selectedPlayer": "B-1"
	}`))
	require.Empty(t, state.SelectedTeam)
	require.Empty(t, state.SelectedPlayer)
}

func TestDecodeSelectionTeamEmpty(t *testing.T) {
	state, _ := persist.Decode([]byte(`{
		"teams": [{"id": "A", "label": "x", "players": []}],
		"selectedTeam": "A", "selectedPlayer": "A-1"
	}`))
	require.Empty(t, state.SelectedTeam)
	require.Empty(t, state.SelectedPlayer)
}

func TestDecodePhaseForcedToSetupWithoutTeams(t *testing.T) {
	state, found := persist.Decode([]byte(`{"phase": "game", "teams": []}`))
	require.True(t, found)
	require.Equal(t, persist.PhaseSetup, state.Phase)

	state, _ = persist.Decode([]byte(`{"phase": "editNames"}`))
	require.Equal(t, persist.PhaseSetup, state.Phase)
}

func TestDecodeHistoryFiltering(t *testing.T) {
	state, found := persist.Decode([]byte(`{
		"teams": [{"id": "A", "label": "x", "players": [{"id": "A-1", "name": "Ava", "stats": {}}]}],
		"history": [
			{"teamId": "A", "playerId": "A-1", "label": "Ava +2PT Make", "delta": {"lowPA": 1, "lowPM": 1, "bogus": 9}},
			{"teamId": "C", "playerId": "C-1", "label": "invalid team"},
			{"playerId": "A-1", "label": "missing team"},
			17
		]
	}`))
	require.True(t, found)
	require.Len(t, state.History, 1)
	require.Equal(t, "A", state.History[0].TeamID)
	require.Equal(t, map[string]int{"lowPA": 1, "lowPM": 1}, state.History[0].Delta)
}

func TestDecodeSetupTeams(t *testing.T) {
	state, found := persist.Decode([]byte(`{
		"setupTeams": [
			{"id": "A", "label": "Ballers", "names": ["Ava", "Bo"]},
			{"id": "Z", "label": "dropped"},
			{"id": "B", "label": 42, "names": "not a list"}
		]
	}`))
	require.True(t, found)
	require.Len(t, state.SetupTeams, 2)
	require.Equal(t, "Ballers", state.SetupTeams[0].Label)
	require.Equal(t, []string{"Ava", "Bo", "", "", ""}, state.SetupTeams[0].Names)
	require.Empty(t, state.SetupTeams[1].Label)
	require.Len(t, state.SetupTeams[1].Names, 5)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := persist.Default()
	state.Phase = persist.PhaseGame
	state.Teams = []persist.Team{{
		ID:    "A",
		Label: "Ballers",
		Players: []persist.Player{{
			ID:    "A-1",
			Name:  "Ava",
			Stats: zeroStatsWith(t, "ast", 3),
		}},
	}}
	state.SelectedTeam = "A"
	state.SelectedPlayer = "A-1"
	state.History = []persist.HistoryRow{{TeamID: "A", PlayerID: "A-1", Label: "Ava Assist", Delta: map[string]int{"ast": 1}}}
	state.LastAction = "Ava Assist"

	encoded, err := persist.Encode(state)
	require.NoError(t, err)

	decoded, found := persist.Decode(encoded)
	require.True(t, found)
	require.Equal(t, state, decoded)
}

func zeroStatsWith(t *testing.T, key string, value int) map[string]int {
	t.Helper()

	stats := map[string]int{
		"lowPA": 0, "lowPM": 0, "highPA": 0, "highPM": 0,
		"ast": 0, "stl": 0, "blk": 0, "reb": 0, "to": 0, "fto": 0,
	}
	stats[key] = value

	return stats
}
