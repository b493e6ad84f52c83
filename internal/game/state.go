package game

import (
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/stat"
)

var phaseNames = map[Phase]string{
	PhaseSetup:     persist.PhaseSetup,
	PhaseGame:      persist.PhaseGame,
	PhaseEditNames: persist.PhaseEditNames,
}

var phaseValues = map[string]Phase{
	persist.PhaseSetup:     PhaseSetup,
	persist.PhaseGame:      PhaseGame,
	persist.PhaseEditNames: PhaseEditNames,
}

// State snapshots the reducer into its durable form.
func (g *Game) State() persist.State {
	state := persist.State{
		Phase:          phaseNames[g.phase],
		PlayerCount:    g.playerCount,
		SetupMode:      string(g.setupMode),
		Mode:           string(g.mode),
		SelectedTeam:   string(g.selTeam),
		SelectedPlayer: g.selPlayer,
		LastAction:     g.lastAction,
	}

	for _, side := range SideOrder {
		staged := g.Setup(side)
		names := make([]string, MaxPlayers)
		copy(names, staged.Names[:])
		state.SetupTeams = append(state.SetupTeams, persist.SetupTeam{
			ID:    string(side),
			Label: staged.Label,
			Names: names,
		})
	}

	for _, team := range g.teams {
		out := persist.Team{ID: string(team.ID), Label: team.Label}
		for _, player := range team.Players {
			stats := make(map[string]int, len(player.Stats))
			for key, value := range player.Stats {
				stats[string(key)] = value
			}
			out.Players = append(out.Players, persist.Player{
				ID:    player.ID,
				Name:  player.Name,
				Stats: stats,
			})
		}
		state.Teams = append(state.Teams, out)
	}

	for _, entry := range g.history {
		delta := make(map[string]int, len(entry.Delta))
		for key, value := range entry.Delta {
			delta[string(key)] = value
		}
		state.History = append(state.History, persist.HistoryRow{
			TeamID:   string(entry.TeamID),
			PlayerID: entry.PlayerID,
			Label:    entry.Label,
			Delta:    delta,
		})
	}

	return state
}

// FromState rebuilds the reducer from an already-normalized snapshot. The
// state must have passed through persist.Decode; this function trusts it.
func FromState(state persist.State, opts ...Option) *Game {
	g := New(opts...)

	g.phase = phaseValues[state.Phase]
	g.playerCount = state.PlayerCount
	g.setupMode = stat.Mode(state.SetupMode)
	g.mode = stat.Mode(state.Mode)
	g.selTeam = TeamID(state.SelectedTeam)
	g.selPlayer = state.SelectedPlayer
	g.lastAction = state.LastAction

	for _, staged := range state.SetupTeams {
		target, ok := g.setup[TeamID(staged.ID)]
		if !ok {
			continue
		}
		target.Label = staged.Label
		for i, name := range staged.Names {
			if i < MaxPlayers {
				target.Names[i] = name
			}
		}
	}

	for _, team := range state.Teams {
		live := Team{ID: TeamID(team.ID), Label: team.Label}
		for _, player := range team.Players {
			line := stat.NewLine()
			for key, value := range player.Stats {
				line[stat.Key(key)] = value
			}
			live.Players = append(live.Players, Player{
				ID:    player.ID,
				Name:  player.Name,
				Stats: line,
			})
		}
		g.teams = append(g.teams, live)
	}

	for _, row := range state.History {
		delta := make(stat.Delta, len(row.Delta))
		for key, value := range row.Delta {
			delta[stat.Key(key)] = value
		}
		g.history = append(g.history, LoggedAction{
			TeamID:   TeamID(row.TeamID),
			PlayerID: row.PlayerID,
			Label:    row.Label,
			Delta:    delta,
		})
	}

	return g
}
