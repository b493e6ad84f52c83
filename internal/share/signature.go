package share

import (
	"strconv"
	"strings"

	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/stat"
)

// Signature serializes everything that affects the rendered box score:
// scoring mode, each shareable team's id and label, and every included
// player's id, name and full stat line in catalogue order. Two states that
// serialize identically are cache-equivalent by construction.
func Signature(mode stat.Mode, teams []game.Team, sel Selection) string {
	var b strings.Builder
	b.WriteString(string(mode))

	for _, team := range Roster(teams, sel) {
		b.WriteString("|t:")
		b.WriteString(string(team.ID))
		b.WriteByte(':')
		b.WriteString(team.Label)
		for _, player := range team.Players {
			b.WriteString("|p:")
			b.WriteString(player.ID)
			b.WriteByte(':')
			b.WriteString(player.Name)
			for _, key := range stat.Keys() {
				b.WriteByte(',')
				b.WriteString(strconv.Itoa(player.Stats[key]))
			}
		}
	}

	return b.String()
}
