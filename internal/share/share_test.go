package share_test

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/share"
	"github.com/courtkeep/courtkeep/internal/stat"
	"github.com/stretchr/testify/require"
)

func rosterTeams(t *testing.T) []game.Team {
	t.Helper()

	g := game.New()
	g.SetSetupLabel(game.TeamA, "Ballers")
	g.SetSetupLabel(game.TeamB, "Bricks")
	g.SetSetupName(game.TeamA, 0, "Ava")
	g.SetSetupName(game.TeamB, 2, "Noah")
	g.StartGame()

	return g.Teams()
}

func TestSelectionDefaults(t *testing.T) {
	sel := share.NewSelection([]string{"A-1", "A-2"})
	require.True(t, sel.Included("A-1"))
	require.True(t, sel.Included("A-2"))
	require.False(t, sel.Included("B-1"))

	sel.Toggle("A-1")
	require.False(t, sel.Included("A-1"))
	sel.Toggle("A-1")
	require.True(t, sel.Included("A-1"))
}

func TestSelectionReconcile(t *testing.T) {
	sel := share.NewSelection([]string{"A-1", "A-2"})
	sel.Toggle("A-2")

	// Same key set, flags untouched.
	require.False(t, sel.Reconcile([]string{"A-1", "A-2"}))
	require.False(t, sel.Included("A-2"))

	// New player joins included, departed player is pruned.
	require.True(t, sel.Reconcile([]string{"A-1", "A-3"}))
	require.True(t, sel.Included("A-3"))
	require.False(t, sel.Included("A-2"))

	// A pruned player that returns comes back included.
	require.True(t, sel.Reconcile([]string{"A-1", "A-2", "A-3"}))
	require.True(t, sel.Included("A-2"))
}

func TestRosterFiltering(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))

	sel.Toggle("A-2")
	roster := share.Roster(teams, sel)
	require.Len(t, roster, 2)
	require.Len(t, roster[0].Players, 4)
	for _, player := range roster[0].Players {
		require.NotEqual(t, "A-2", player.ID)
	}

	// A team with nobody included disappears from the share.
	for slot := 1; slot <= 5; slot++ {
		sel["B-"+strconv.Itoa(slot)] = false
	}
	roster = share.Roster(teams, sel)
	require.Len(t, roster, 1)
	require.Equal(t, game.TeamA, roster[0].ID)
}

func TestSignatureIsPure(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))

	first := share.Signature(stat.TwosAndThrees, teams, sel)
	second := share.Signature(stat.TwosAndThrees, teams, sel)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)
}

func TestSignatureTracksInputs(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))
	base := share.Signature(stat.TwosAndThrees, teams, sel)

	require.NotEqual(t, base, share.Signature(stat.OnesAndTwos, teams, sel))

	toggled := share.NewSelection(allIDs(teams))
	toggled.Toggle("B-3")
	require.NotEqual(t, base, share.Signature(stat.TwosAndThrees, teams, toggled))

	// A single stat increment moves the signature.
	teams[0].Players[0].Stats[stat.Assists]++
	require.NotEqual(t, base, share.Signature(stat.TwosAndThrees, teams, sel))
}

type scriptedRenderer struct {
	calls  int
	image  []byte
	err    error
	gotLen int
}

func (r *scriptedRenderer) Render(_ context.Context, _ stat.Mode, teams []game.Team) ([]byte, error) {
	r.calls++
	r.gotLen = len(teams)

	return r.image, r.err
}

func TestPreparerCachesBySignature(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))
	renderer := &scriptedRenderer{image: []byte("png")}
	prep := share.NewPreparer(renderer)

	job, needed := prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, needed)
	require.True(t, prep.Preparing())
	_, ready := prep.Image()
	require.False(t, ready)

	image, err := prep.Render(t.Context(), job)
	require.NoError(t, err)
	require.True(t, prep.Accept(job.Token, image, nil))

	got, ready := prep.Image()
	require.True(t, ready)
	require.Equal(t, []byte("png"), got)
	require.False(t, prep.Preparing())

	// Unchanged inputs hit the cache.
	_, needed = prep.Start(stat.TwosAndThrees, teams, sel)
	require.False(t, needed)
	require.Equal(t, 1, renderer.calls)

	// Any stat change misses.
	teams[0].Players[0].Stats[stat.Rebounds]++
	_, needed = prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, needed)
}

func TestPreparerRapidRetrigger(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))
	prep := share.NewPreparer(&scriptedRenderer{image: []byte("png")})

	first, needed := prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, needed)

	teams[0].Players[0].Stats[stat.Assists]++
	second, needed := prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, needed)
	require.Greater(t, second.Token, first.Token)

	// The superseded job's result is dropped even though it finished.
	require.False(t, prep.Accept(first.Token, []byte("stale"), nil))
	_, ready := prep.Image()
	require.False(t, ready)

	require.True(t, prep.Accept(second.Token, []byte("fresh"), nil))
	got, ready := prep.Image()
	require.True(t, ready)
	require.Equal(t, []byte("fresh"), got)
}

func TestPreparerFailureIsSticky(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))
	renderer := &scriptedRenderer{err: errors.New("chrome exploded")}
	prep := share.NewPreparer(renderer)

	job, needed := prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, needed)

	_, err := prep.Render(t.Context(), job)
	require.ErrorIs(t, err, share.ErrPrepare)
	require.True(t, prep.Accept(job.Token, nil, err))
	require.True(t, prep.Failed())
	_, ready := prep.Image()
	require.False(t, ready)

	// Recovery on the next successful attempt.
	teams[0].Players[0].Stats[stat.Blocks]++
	job, _ = prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, prep.Accept(job.Token, []byte("png"), nil))
	require.False(t, prep.Failed())
}

func TestPreparerInvalidate(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))
	prep := share.NewPreparer(&scriptedRenderer{image: []byte("png")})

	job, _ := prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, prep.Accept(job.Token, []byte("png"), nil))

	prep.Invalidate()
	_, ready := prep.Image()
	require.False(t, ready)
	require.False(t, prep.Preparing())

	// The invalidated job's token no longer matches.
	require.False(t, prep.Accept(job.Token, []byte("png"), nil))

	// Same inputs render again after invalidation.
	_, needed := prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, needed)
}

func TestPreparerJobExcludesDeselected(t *testing.T) {
	teams := rosterTeams(t)
	sel := share.NewSelection(allIDs(teams))
	for slot := 1; slot <= 5; slot++ {
		sel["B-"+strconv.Itoa(slot)] = false
	}
	renderer := &scriptedRenderer{image: []byte("png")}
	prep := share.NewPreparer(renderer)

	job, needed := prep.Start(stat.TwosAndThrees, teams, sel)
	require.True(t, needed)
	require.Len(t, job.Teams, 1)

	_, err := prep.Render(t.Context(), job)
	require.NoError(t, err)
	require.Equal(t, 1, renderer.gotLen)
}

func allIDs(teams []game.Team) []string {
	var ids []string
	for _, team := range teams {
		for _, player := range team.Players {
			ids = append(ids, player.ID)
		}
	}

	return ids
}
