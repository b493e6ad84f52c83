package persist

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/courtkeep/courtkeep/internal/stat"
)

var defaultMode = string(stat.DefaultMode)

// rawState shadows State with per-field raw JSON so one bad field never
// poisons the rest of the record.
type rawState struct {
	Phase          json.RawMessage `json:"phase"`
	PlayerCount    json.RawMessage `json:"playerCount"`
	SetupMode      json.RawMessage `json:"setupMode"`
	Mode           json.RawMessage `json:"mode"`
	SetupTeams     json.RawMessage `json:"setupTeams"`
	Teams          json.RawMessage `json:"teams"`
	SelectedTeam   json.RawMessage `json:"selectedTeam"`
	SelectedPlayer json.RawMessage `json:"selectedPlayer"`
	History        json.RawMessage `json:"history"`
	LastAction     json.RawMessage `json:"lastAction"`
}

type rawTeam struct {
	ID      json.RawMessage `json:"id"`
	Label   json.RawMessage `json:"label"`
	Players json.RawMessage `json:"players"`
}

type rawPlayer struct {
	ID    json.RawMessage `json:"id"`
	Name  json.RawMessage `json:"name"`
	Stats json.RawMessage `json:"stats"`
}

type rawSetupTeam struct {
	ID    json.RawMessage `json:"id"`
	Label json.RawMessage `json:"label"`
	Names json.RawMessage `json:"names"`
}

type rawHistoryRow struct {
	TeamID   json.RawMessage `json:"teamId"`
	PlayerID json.RawMessage `json:"playerId"`
	Label    json.RawMessage `json:"label"`
	Delta    json.RawMessage `json:"delta"`
}

// Encode serializes the snapshot for the durable store.
func Encode(state State) ([]byte, error) {
	return json.Marshal(state)
}

// Decode parses and normalizes a durable record. The second return is false
// when the record is absent or not even a JSON object, which callers treat
// as "no prior state" rather than an error.
func Decode(data []byte) (State, bool) {
	if len(data) == 0 {
		return Default(), false
	}

	var raw rawState
	if err := json.Unmarshal(data, &raw); err != nil {
		return Default(), false
	}

	return normalize(raw), true
}

func normalize(raw rawState) State {
	state := Default()

	state.SetupMode = asMode(raw.SetupMode)
	state.Mode = asMode(raw.Mode)
	state.PlayerCount = asPlayerCount(raw.PlayerCount)
	state.SetupTeams = normalizeSetupTeams(raw.SetupTeams)
	state.Teams = normalizeTeams(raw.Teams)
	state.LastAction = asString(raw.LastAction, "")
	state.History = normalizeHistory(raw.History)
	state.SelectedTeam, state.SelectedPlayer = resolveSelection(
		asString(raw.SelectedTeam, ""), asString(raw.SelectedPlayer, ""), state.Teams)

	// A phase other than setup makes no sense with nothing on the floor.
	state.Phase = asPhase(raw.Phase)
	if len(state.Teams) == 0 {
		state.Phase = PhaseSetup
	}

	return state
}

func asString(raw json.RawMessage, fallback string) string {
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback
	}

	return value
}

func asInt(raw json.RawMessage, fallback int) int {
	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback
	}

	return int(value)
}

func asMode(raw json.RawMessage) string {
	mode := stat.Mode(asString(raw, defaultMode))
	if !mode.Valid() {
		return defaultMode
	}

	return string(mode)
}

func asPhase(raw json.RawMessage) string {
	switch phase := asString(raw, PhaseSetup); phase {
	case PhaseSetup, PhaseGame, PhaseEditNames:
		return phase
	default:
		return PhaseSetup
	}
}

func asPlayerCount(raw json.RawMessage) int {
	if count := asInt(raw, 5); count == 4 {
		return 4
	}

	return 5
}

func validTeamID(id string) bool {
	return id == "A" || id == "B"
}

func normalizeSetupTeams(raw json.RawMessage) []SetupTeam {
	staged := Default().SetupTeams

	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return staged
	}

	for _, row := range rows {
		var entry rawSetupTeam
		if err := json.Unmarshal(row, &entry); err != nil {
			continue
		}

		id := asString(entry.ID, "")
		if !validTeamID(id) {
			continue
		}

		var names []string
		if err := json.Unmarshal(entry.Names, &names); err != nil {
			names = nil
		}
		padded := make([]string, 5)
		copy(padded, names)

		for idx := range staged {
			if staged[idx].ID == id {
				staged[idx].Label = asString(entry.Label, "")
				staged[idx].Names = padded
			}
		}
	}

	return staged
}

func normalizeTeams(raw json.RawMessage) []Team {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}

	type parsedTeam struct {
		team    Team
		players json.RawMessage
	}

	var (
		parsed []parsedTeam
		seen   = map[string]bool{}
	)

	for _, row := range rows {
		var entry rawTeam
		if err := json.Unmarshal(row, &entry); err != nil {
			continue
		}

		team := Team{
			ID:    asString(entry.ID, ""),
			Label: asString(entry.Label, ""),
		}
		if !validTeamID(team.ID) {
			team.ID = ""
		}
		if team.ID != "" && seen[team.ID] {
			// Duplicate side tag, first occurrence wins.
			continue
		}
		if team.ID != "" {
			seen[team.ID] = true
		}

		parsed = append(parsed, parsedTeam{team: team, players: entry.Players})
	}

	// Entries that arrived without a usable id get the unclaimed sides in
	// fallback-slot order; anything beyond two sides is dropped.
	var kept []Team
	for _, candidate := range parsed {
		team := candidate.team
		if team.ID == "" {
			for _, side := range []string{"A", "B"} {
				if !seen[side] {
					team.ID = side
					seen[side] = true

					break
				}
			}
			if team.ID == "" {
				continue
			}
		}

		team.Players = normalizePlayers(team.ID, candidate.players)
		kept = append(kept, team)
	}

	return kept
}

func normalizePlayers(teamID string, raw json.RawMessage) []Player {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}

	var players []Player
	for _, row := range rows {
		var entry rawPlayer
		if err := json.Unmarshal(row, &entry); err != nil {
			continue
		}

		player := Player{
			ID:    asString(entry.ID, ""),
			Name:  asString(entry.Name, ""),
			Stats: normalizeStats(entry.Stats),
		}
		if player.ID == "" {
			player.ID = teamID + "-" + strconv.Itoa(len(players)+1)
		}

		players = append(players, player)
	}

	return players
}

// normalizeStats coerces an arbitrary stats object onto the full key
// catalogue: unknown keys are dropped, non-numbers become zero and every
// counter is clamped non-negative.
func normalizeStats(raw json.RawMessage) map[string]int {
	stats := make(map[string]int, len(stat.Keys()))
	for _, key := range stat.Keys() {
		stats[string(key)] = 0
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return stats
	}

	for key, value := range fields {
		if !stat.Known(stat.Key(key)) {
			continue
		}
		stats[key] = max(0, asInt(value, 0))
	}

	return stats
}

func normalizeHistory(raw json.RawMessage) []HistoryRow {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil
	}

	var history []HistoryRow
	for _, row := range rows {
		var entry rawHistoryRow
		if err := json.Unmarshal(row, &entry); err != nil {
			continue
		}

		teamID := asString(entry.TeamID, "")
		if !validTeamID(teamID) {
			continue
		}

		history = append(history, HistoryRow{
			TeamID:   teamID,
			PlayerID: asString(entry.PlayerID, ""),
			Label:    asString(entry.Label, ""),
			Delta:    normalizeDelta(entry.Delta),
		})
	}

	return history
}

// normalizeDelta keeps only known stat keys. Deltas stay signed; they are
// increments, not counters.
func normalizeDelta(raw json.RawMessage) map[string]int {
	delta := map[string]int{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return delta
	}

	for key, value := range fields {
		if !stat.Known(stat.Key(key)) {
			continue
		}
		delta[key] = asInt(value, 0)
	}

	return delta
}

func resolveSelection(teamID string, playerID string, teams []Team) (string, string) {
	for _, team := range teams {
		if team.ID != teamID {
			continue
		}
		for _, player := range team.Players {
			if player.ID == playerID {
				return teamID, playerID
			}
		}
		if len(team.Players) > 0 {
			return teamID, team.Players[0].ID
		}

		return "", ""
	}

	return "", ""
}
