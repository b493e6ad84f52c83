// Package game implements the scorekeeping state machine: setup staging,
// the live roster, action logging and undo. It owns all mutable game state
// and mirrors every transition to an injected persistence sink.
package game

import (
	"fmt"
	"strings"

	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/stat"
)

// Phase is the coarse top-level state gating which mutations are valid.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseGame
	PhaseEditNames
)

// LoggedAction is an immutable record of one applied delta. History is
// append-only; undo pops the newest entry and applies its inverse.
type LoggedAction struct {
	TeamID   TeamID
	PlayerID string
	Delta    stat.Delta
	Label    string
}

// Sink receives a snapshot after every state-affecting transition. It must
// never fail loudly; persistence is best-effort by design.
type Sink func(persist.State)

// Game is the reducer. All methods are called from the single-threaded UI
// event loop, so no locking is needed.
type Game struct {
	phase       Phase
	playerCount int
	setupMode   stat.Mode
	mode        stat.Mode
	setup       map[TeamID]*SetupTeam
	teams       []Team
	selTeam     TeamID
	selPlayer   string
	history     []LoggedAction
	lastAction  string
	sink        Sink
}

// Option configures a new Game.
type Option func(*Game)

// WithSink installs the persistence mirror called after every transition.
func WithSink(sink Sink) Option {
	return func(g *Game) { g.sink = sink }
}

// New returns a fresh game in the setup phase with empty staging.
func New(opts ...Option) *Game {
	game := &Game{
		phase:       PhaseSetup,
		playerCount: MaxPlayers,
		setupMode:   stat.DefaultMode,
		mode:        stat.DefaultMode,
		setup: map[TeamID]*SetupTeam{
			TeamA: {},
			TeamB: {},
		},
	}

	for _, opt := range opts {
		opt(game)
	}

	return game
}

func (g *Game) changed() {
	if g.sink != nil {
		g.sink(g.State())
	}
}

// Phase returns the current top-level phase.
func (g *Game) Phase() Phase { return g.phase }

// Mode returns the scoring mode of the running game.
func (g *Game) Mode() stat.Mode { return g.mode }

// SetupMode returns the scoring mode staged for the next game.
func (g *Game) SetupMode() stat.Mode { return g.setupMode }

// PlayerCount returns the staged per-team roster size, 4 or 5.
func (g *Game) PlayerCount() int { return g.playerCount }

// Teams returns the live roster. Empty before the first StartGame.
func (g *Game) Teams() []Team { return g.teams }

// Team finds a side by id.
func (g *Game) Team(id TeamID) (Team, bool) {
	for _, team := range g.teams {
		if team.ID == id {
			return team, true
		}
	}

	return Team{}, false
}

// Setup returns the staged data for a side.
func (g *Game) Setup(id TeamID) SetupTeam {
	if staged, ok := g.setup[id]; ok {
		return *staged
	}

	return SetupTeam{}
}

// History returns a copy of the logged actions, oldest first.
func (g *Game) History() []LoggedAction {
	out := make([]LoggedAction, len(g.history))
	copy(out, g.history)

	return out
}

// LastAction returns the label of the most recent log or undo.
func (g *Game) LastAction() string { return g.lastAction }

// Selected returns the current logging target.
func (g *Game) Selected() (TeamID, string) { return g.selTeam, g.selPlayer }

// SelectedPlayer resolves the current target against the roster.
func (g *Game) SelectedPlayer() (Player, bool) {
	team, ok := g.Team(g.selTeam)
	if !ok {
		return Player{}, false
	}

	return team.Player(g.selPlayer)
}

// PlayerIDs lists every live roster id in display order. Share selection
// reconciles against this set whenever the roster changes.
func (g *Game) PlayerIDs() []string {
	var ids []string
	for _, team := range g.teams {
		for _, player := range team.Players {
			ids = append(ids, player.ID)
		}
	}

	return ids
}

// SetPlayerCount stages the per-team roster size. Values other than 4 are
// coerced to 5.
func (g *Game) SetPlayerCount(count int) {
	if count != 4 {
		count = MaxPlayers
	}
	g.playerCount = count
	g.changed()
}

// SetSetupMode stages the scoring mode for the next game.
func (g *Game) SetSetupMode(mode stat.Mode) {
	if !mode.Valid() {
		mode = stat.DefaultMode
	}
	g.setupMode = mode
	g.changed()
}

// SetSetupLabel stages a team label.
func (g *Game) SetSetupLabel(id TeamID, label string) {
	if staged, ok := g.setup[id]; ok {
		staged.Label = label
		g.changed()
	}
}

// SetSetupName stages a player name for a slot (0-based).
func (g *Game) SetSetupName(id TeamID, slot int, name string) {
	staged, ok := g.setup[id]
	if !ok || slot < 0 || slot >= MaxPlayers {
		return
	}
	staged.Names[slot] = name
	g.changed()
}

// StartGame builds both rosters from the staged setup and enters the game
// phase with fresh stat lines, an empty history and everything selected for
// the first log.
func (g *Game) StartGame() {
	g.teams = g.teams[:0]
	for _, side := range SideOrder {
		staged := g.Setup(side)

		label := strings.TrimSpace(staged.Label)
		if label == "" {
			label = side.DefaultLabel()
		}

		team := Team{ID: side, Label: label}
		for slot := 1; slot <= g.playerCount; slot++ {
			team.Players = append(team.Players, Player{
				ID:    playerID(side, slot),
				Name:  playerName(staged.Names[slot-1], slot),
				Stats: stat.NewLine(),
			})
		}

		g.teams = append(g.teams, team)
	}

	g.mode = g.setupMode
	g.history = nil
	g.phase = PhaseGame
	g.selTeam = TeamA
	g.selPlayer = playerID(TeamA, 1)
	g.lastAction = fmt.Sprintf("Game on: %s vs %s", g.teams[0].Label, g.teams[1].Label)
	g.changed()
}

// BeginEditNames stages the live labels and names for editing. No-op without
// a roster. The player-count toggle is re-derived from the first team so the
// staged slots line up with what is actually on the floor.
func (g *Game) BeginEditNames() bool {
	if len(g.teams) == 0 {
		return false
	}

	if len(g.teams[0].Players) == 4 {
		g.playerCount = 4
	} else {
		g.playerCount = MaxPlayers
	}

	for _, team := range g.teams {
		staged, ok := g.setup[team.ID]
		if !ok {
			continue
		}
		staged.Label = team.Label
		staged.Names = [MaxPlayers]string{}
		for i, player := range team.Players {
			if i < MaxPlayers {
				staged.Names[i] = player.Name
			}
		}
	}

	g.phase = PhaseEditNames
	g.changed()

	return true
}

// SaveEditedNames applies staged labels and names to the live roster and
// returns to the game phase. Stats are untouched; renaming never resets
// scores.
func (g *Game) SaveEditedNames() {
	for idx := range g.teams {
		team := &g.teams[idx]
		staged := g.Setup(team.ID)

		if label := strings.TrimSpace(staged.Label); label != "" {
			team.Label = label
		}

		for i := range team.Players {
			if i < MaxPlayers {
				team.Players[i].Name = playerName(staged.Names[i], i+1)
			}
		}
	}

	g.phase = PhaseGame
	g.changed()
}

// CancelEditNames discards staged edits and returns to the game phase.
func (g *Game) CancelEditNames() {
	g.phase = PhaseGame
	g.changed()
}

// BackToSetup resets to the setup phase. Staged setup names are deliberately
// preserved so a rematch with the same crews is one keypress away.
func (g *Game) BackToSetup() {
	g.phase = PhaseSetup
	g.teams = nil
	g.history = nil
	g.selTeam = ""
	g.selPlayer = ""
	g.lastAction = ""
	g.changed()
}

// SelectTarget sets the current logging target. The caller is responsible
// for passing a live team/player pair; persistence normalization re-checks
// on reload.
func (g *Game) SelectTarget(team TeamID, player string) {
	g.selTeam = team
	g.selPlayer = player
	g.changed()
}

// LogAction applies an action's delta to the selected player and appends it
// to the history. Returns false when nothing is selected.
func (g *Game) LogAction(action stat.Action) (LoggedAction, bool) {
	player, ok := g.SelectedPlayer()
	if !ok {
		return LoggedAction{}, false
	}

	g.applyDelta(g.selTeam, g.selPlayer, action.Delta, 1)

	entry := LoggedAction{
		TeamID:   g.selTeam,
		PlayerID: g.selPlayer,
		Delta:    action.Delta,
		Label:    player.Name + " " + action.Label,
	}
	g.history = append(g.history, entry)
	g.lastAction = entry.Label
	g.changed()

	return entry, true
}

// Undo reverses the most recent logged action. Because deltas clamp at zero
// on application, undo after a clamp does not restore the pre-clamp value;
// that asymmetry is accepted rather than papered over.
func (g *Game) Undo() (LoggedAction, bool) {
	if len(g.history) == 0 {
		return LoggedAction{}, false
	}

	entry := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.applyDelta(entry.TeamID, entry.PlayerID, entry.Delta, -1)
	g.lastAction = "Undo: " + entry.Label
	g.changed()

	return entry, true
}

func (g *Game) applyDelta(teamID TeamID, playerID string, delta stat.Delta, direction int) {
	for ti := range g.teams {
		if g.teams[ti].ID != teamID {
			continue
		}
		for pi := range g.teams[ti].Players {
			if g.teams[ti].Players[pi].ID == playerID {
				g.teams[ti].Players[pi].Stats.Apply(delta, direction)

				return
			}
		}
	}
}
