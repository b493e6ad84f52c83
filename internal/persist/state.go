// Package persist converts the full application state to and from its
// durable JSON form. The durable side is untrusted: records may come from
// older schema versions or have been hand-edited, so everything that crosses
// back in goes through a strict parse-then-normalize boundary.
package persist

// Phase values as they appear on disk. There is no schema version field;
// evolution relies entirely on normalization tolerance, so these strings are
// load-bearing and must never be repurposed.
const (
	PhaseSetup     = "setup"
	PhaseGame      = "game"
	PhaseEditNames = "editNames"
)

// State is the durable snapshot of everything the reducer owns.
type State struct {
	Phase          string       `json:"phase"`
	PlayerCount    int          `json:"playerCount"`
	SetupMode      string       `json:"setupMode"`
	Mode           string       `json:"mode"`
	SetupTeams     []SetupTeam  `json:"setupTeams"`
	Teams          []Team       `json:"teams"`
	SelectedTeam   string       `json:"selectedTeam"`
	SelectedPlayer string       `json:"selectedPlayer"`
	History        []HistoryRow `json:"history"`
	LastAction     string       `json:"lastAction"`
}

// SetupTeam stages a not-yet-started team.
type SetupTeam struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Names []string `json:"names"`
}

// Team is a live roster entry.
type Team struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Players []Player `json:"players"`
}

// Player is one roster member with a full stat line.
type Player struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Stats map[string]int `json:"stats"`
}

// HistoryRow is one logged action.
type HistoryRow struct {
	TeamID   string         `json:"teamId"`
	PlayerID string         `json:"playerId"`
	Label    string         `json:"label"`
	Delta    map[string]int `json:"delta"`
}

// Default returns the state a brand-new install starts from.
func Default() State {
	return State{
		Phase:       PhaseSetup,
		PlayerCount: 5,
		SetupMode:   defaultMode,
		Mode:        defaultMode,
		SetupTeams: []SetupTeam{
			{ID: "A", Names: make([]string, 5)},
			{ID: "B", Names: make([]string, 5)},
		},
	}
}
