package game

import (
	"fmt"
	"strings"

	"github.com/courtkeep/courtkeep/internal/stat"
)

// TeamID is the fixed identity of a side. Labels change, sides do not.
type TeamID string

const (
	TeamA TeamID = "A"
	TeamB TeamID = "B"
)

// SideOrder is the canonical ordering of sides, also used to hand out
// fallback ids when a persisted roster arrives without them.
var SideOrder = []TeamID{TeamA, TeamB}

// Valid reports whether the id is one of the two known sides.
func (id TeamID) Valid() bool {
	return id == TeamA || id == TeamB
}

// DefaultLabel is the label used when setup left the team name blank.
func (id TeamID) DefaultLabel() string {
	return "Team " + string(id)
}

// Player is one roster entry. The id is assigned at game start and never
// changes; the name is editable through the edit-names flow.
type Player struct {
	ID    string
	Name  string
	Stats stat.Line
}

// Points is the player's current point total under the given mode.
func (p Player) Points(mode stat.Mode) int {
	return stat.Points(p.Stats, mode)
}

// Team owns its players exclusively.
type Team struct {
	ID      TeamID
	Label   string
	Players []Player
}

// Total sums one stat key across the roster.
func (t Team) Total(key stat.Key) int {
	var sum int
	for _, player := range t.Players {
		sum += player.Stats[key]
	}

	return sum
}

// Points sums player points across the roster.
func (t Team) Points(mode stat.Mode) int {
	var sum int
	for _, player := range t.Players {
		sum += player.Points(mode)
	}

	return sum
}

// Player finds a roster entry by id.
func (t Team) Player(playerID string) (Player, bool) {
	for _, player := range t.Players {
		if player.ID == playerID {
			return player, true
		}
	}

	return Player{}, false
}

// MaxPlayers is the number of name slots staged per team during setup.
// Games run with 4 or 5 of them filled.
const MaxPlayers = 5

// SetupTeam stages a not-yet-started team. Players do not exist until the
// game starts, so this is only a label and up to five optional names.
type SetupTeam struct {
	Label string
	Names [MaxPlayers]string
}

// playerID builds the deterministic id for a slot, e.g. "A-1".
func playerID(team TeamID, slot int) string {
	return fmt.Sprintf("%s-%d", team, slot)
}

// playerName trims a staged name, falling back to "P{slot}" when blank.
func playerName(raw string, slot int) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return fmt.Sprintf("P%d", slot)
	}

	return name
}
