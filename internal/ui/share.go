package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/share"
	"github.com/courtkeep/courtkeep/internal/ui/input"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
)

// shareModel is the share sheet: pick who appears on the box score image and
// watch the render status. The image itself is cached by the preparer, this
// model only displays its state.
type shareModel struct {
	game      *game.Game
	prep      *share.Preparer
	selection share.Selection
	cursor    int
	active    bool
	keyMap    input.Map
	width     int
}

func newShareModel(g *game.Game, prep *share.Preparer, selection share.Selection) shareModel {
	return shareModel{game: g, prep: prep, selection: selection, keyMap: input.Default}
}

func (m shareModel) Update(msg tea.Msg) (shareModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil
	case setPageMsg:
		m.active = msg.page == pageShare
		m.cursor = 0

		return m, nil
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}

		return m.handleKey(msg)
	case tea.MouseMsg:
		if !m.active || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for _, id := range m.game.PlayerIDs() {
			if zone.Get("share-" + id).InBounds(msg) {
				return m, toggleShare(id)
			}
		}
	}

	return m, nil
}

func (m shareModel) handleKey(msg tea.KeyMsg) (shareModel, tea.Cmd) {
	ids := m.game.PlayerIDs()
	if len(ids) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.cursor = (m.cursor - 1 + len(ids)) % len(ids)
	case key.Matches(msg, m.keyMap.Down):
		m.cursor = (m.cursor + 1) % len(ids)
	case key.Matches(msg, m.keyMap.Toggle):
		return m, toggleShare(ids[min(m.cursor, len(ids)-1)])
	}

	return m, nil
}

func (m shareModel) View() string {
	teams := m.game.Teams()
	if len(teams) == 0 {
		return styles.InfoMessage.Render("Nothing to share yet")
	}

	ids := m.game.PlayerIDs()
	cursorID := ""
	if len(ids) > 0 {
		cursorID = ids[min(m.cursor, len(ids)-1)]
	}

	var columns []string
	for _, team := range teams {
		rows := []string{styles.SideStyle(string(team.ID)).Render(team.Label)}
		for _, player := range team.Players {
			rows = append(rows, m.playerRow(player, cursorID))
		}
		columns = append(columns,
			lipgloss.NewStyle().Width(30).Padding(0, 2).Render(
				lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		"",
		m.renderStatus(),
		styles.InfoMessage.Render("space toggles · enter shares · w saves · esc closes"),
	}

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m shareModel) playerRow(player game.Player, cursorID string) string {
	mark := "[ ]"
	style := styles.ExcludedPlayerStyle
	if m.selection.Included(player.ID) {
		mark = "[x]"
		style = styles.TableRow
	}

	row := mark + " " + player.Name
	if player.ID == cursorID {
		row = "› " + row
		style = style.Bold(true)
	} else {
		row = "  " + row
	}

	return zone.Mark("share-"+player.ID, style.Render(row))
}

func (m shareModel) renderStatus() string {
	switch {
	case m.prep.Preparing():
		return styles.StatusPrepared.Render("Rendering image…")
	case m.prep.Failed():
		return styles.StatusError.Render("Render failed, enter retries")
	default:
		if image, ready := m.prep.Image(); ready {
			return styles.StatusPrepared.Render("Image ready · " + humanize.Bytes(uint64(len(image))))
		}

		return styles.StatusPrepared.Render("Nobody selected")
	}
}
