// Package share tracks which players are included in the shareable box
// score and caches the prepared image behind a signature of everything that
// affects rendered pixels.
package share

import (
	"github.com/courtkeep/courtkeep/internal/game"
)

// Selection maps player id to inclusion. Players default to included.
type Selection map[string]bool

// NewSelection includes every given player.
func NewSelection(ids []string) Selection {
	sel := make(Selection, len(ids))
	for _, id := range ids {
		sel[id] = true
	}

	return sel
}

// Included reports whether a player is part of the share. Unknown ids are
// not included; Reconcile is responsible for adding new roster members.
func (s Selection) Included(id string) bool {
	return s[id]
}

// Toggle flips one player's inclusion flag.
func (s Selection) Toggle(id string) {
	s[id] = !s[id]
}

// Reconcile aligns the selection with the current roster: players still
// present keep their flags, new players join included, departed players are
// pruned. Returns true only when the key set changed; pure flag flips from
// user toggles never pass through here.
func (s Selection) Reconcile(ids []string) bool {
	present := make(map[string]bool, len(ids))
	changed := false

	for _, id := range ids {
		present[id] = true
		if _, ok := s[id]; !ok {
			s[id] = true
			changed = true
		}
	}

	for id := range s {
		if !present[id] {
			delete(s, id)
			changed = true
		}
	}

	return changed
}

// Roster filters teams down to included players. Teams left with nobody
// included are dropped entirely.
func Roster(teams []game.Team, sel Selection) []game.Team {
	var out []game.Team
	for _, team := range teams {
		kept := game.Team{ID: team.ID, Label: team.Label}
		for _, player := range team.Players {
			if sel.Included(player.ID) {
				kept.Players = append(kept.Players, player)
			}
		}
		if len(kept.Players) > 0 {
			out = append(out, kept)
		}
	}

	return out
}
