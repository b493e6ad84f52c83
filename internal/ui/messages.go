package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/stat"
)

type statusMsg struct {
	Message string
	Err     bool
}

func setStatusMessage(msg string, err bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{Message: msg, Err: err}
	}
}

type clearStatusMessageMsg struct{}

func clearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearStatusMessageMsg{}
	})
}

// gameChangedMsg tells every page to re-read the reducer. Sent by the root
// after any mutation so page models never mutate state themselves.
type gameChangedMsg struct{}

func gameChanged() tea.Msg {
	return gameChangedMsg{}
}

type selectTargetMsg struct {
	team   game.TeamID
	player string
}

func selectTarget(team game.TeamID, player string) tea.Cmd {
	return func() tea.Msg {
		return selectTargetMsg{team: team, player: player}
	}
}

type logActionMsg struct {
	action stat.Action
}

func logAction(action stat.Action) tea.Cmd {
	return func() tea.Msg {
		return logActionMsg{action: action}
	}
}

type undoMsg struct{}

type setPageMsg struct {
	page page
}

func setPage(target page) tea.Cmd {
	return func() tea.Msg {
		return setPageMsg{page: target}
	}
}

// toggleShareMsg flips one player's inclusion in the share image.
type toggleShareMsg struct {
	playerID string
}

func toggleShare(playerID string) tea.Cmd {
	return func() tea.Msg {
		return toggleShareMsg{playerID: playerID}
	}
}

// sharePreparedMsg carries a finished render back into the event loop. The
// token decides whether the result is still wanted.
type sharePreparedMsg struct {
	token uint64
	image []byte
	err   error
}

type shareSavedMsg struct {
	path   string
	size   int
	shared bool
	err    error
}

// auditRowsMsg delivers the persisted action trail for the activity log page.
type auditRowsMsg struct {
	rows []persist.AuditRow
}
