package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/stat"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
	zone "github.com/lrstanley/bubblezone"
)

// scoreboardModel renders the live game: one stat table per side and the
// action pad. All mutations travel as messages back to the root.
type scoreboardModel struct {
	game   *game.Game
	width  int
	height int
}

func newScoreboardModel(g *game.Game) scoreboardModel {
	return scoreboardModel{game: g}
}

func (m scoreboardModel) Update(msg tea.Msg) (scoreboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil
	case tea.MouseMsg:
		if m.game.Phase() != game.PhaseGame {
			return m, nil
		}
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}

		for _, team := range m.game.Teams() {
			for _, player := range team.Players {
				// Check each row to see if it's in bounds.
				if zone.Get("board-" + player.ID).InBounds(msg) {
					return m, selectTarget(team.ID, player.ID)
				}
			}
		}

		for _, action := range stat.Actions(m.game.Mode()) {
			if zone.Get("pad-" + action.Short).InBounds(msg) {
				return m, logAction(action)
			}
		}

		if zone.Get("pad-undo").InBounds(msg) {
			return m, func() tea.Msg { return undoMsg{} }
		}
	}

	return m, nil
}

func (m scoreboardModel) View() string {
	if len(m.game.Teams()) == 0 {
		return styles.InfoMessage.Render("No game running")
	}

	mode := m.game.Mode()
	_, selPlayer := m.game.Selected()

	var boards []string
	for _, team := range m.game.Teams() {
		boards = append(boards, m.teamBoard(team, mode, selPlayer))
	}

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, boards...),
		"",
		m.actionPad(mode),
		m.lastActionLine(),
	}

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m scoreboardModel) teamBoard(team game.Team, mode stat.Mode, selPlayer string) string {
	sideStyle := styles.SideStyle(string(team.ID))
	selectedStyle := styles.SelectedCellStyleA
	if team.ID == game.TeamB {
		selectedStyle = styles.SelectedCellStyleB
	}

	rows := make([][]string, 0, len(team.Players)+1)
	for _, player := range team.Players {
		rows = append(rows, []string{
			zone.Mark("board-"+player.ID, player.Name),
			strconv.Itoa(player.Points(mode)),
			stat.ShootingLine(player.Stats[stat.LowMade], player.Stats[stat.LowAttempted]),
			stat.ShootingLine(player.Stats[stat.HighMade], player.Stats[stat.HighAttempted]),
			strconv.Itoa(player.Stats[stat.Assists]),
			strconv.Itoa(player.Stats[stat.Rebounds]),
			strconv.Itoa(player.Stats[stat.Steals]),
			strconv.Itoa(player.Stats[stat.Blocks]),
			strconv.Itoa(player.Stats[stat.Turnovers]),
		})
	}
	rows = append(rows, []string{
		"Total",
		strconv.Itoa(team.Points(mode)),
		stat.ShootingLine(team.Total(stat.LowMade), team.Total(stat.LowAttempted)),
		stat.ShootingLine(team.Total(stat.HighMade), team.Total(stat.HighAttempted)),
		strconv.Itoa(team.Total(stat.Assists)),
		strconv.Itoa(team.Total(stat.Rebounds)),
		strconv.Itoa(team.Total(stat.Steals)),
		strconv.Itoa(team.Total(stat.Blocks)),
		strconv.Itoa(team.Total(stat.Turnovers)),
	})

	selectedRow := -1
	for i, player := range team.Players {
		if player.ID == selPlayer {
			selectedRow = i
		}
	}

	totalRow := len(rows) - 1
	board := newUnstyledTable("Player", "PTS", mode.LowLabel(), mode.HighLabel(), "AST", "REB", "STL", "BLK", "TO").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			width := 5
			if col == 0 {
				width = 14
			}

			switch {
			case row == table.HeaderRow:
				return styles.TableHeading.Width(width)
			case row == selectedRow:
				return selectedStyle.Width(width)
			case row == totalRow:
				return styles.TableTotalRow.Width(width)
			case row%2 == 0:
				return styles.TableRow.Width(width)
			default:
				return styles.TableRowOdd.Width(width)
			}
		})

	title := sideStyle.Render(fmt.Sprintf("%s  %d", team.Label, team.Points(mode)))

	return lipgloss.NewStyle().Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, board.Render()))
}

// actionPad lays out the loggable actions with their number keys. Buttons
// are zone marked so they work with the mouse too.
func (m scoreboardModel) actionPad(mode stat.Mode) string {
	var buttons []string
	for i, action := range stat.Actions(mode) {
		style := styles.ActionEvent
		switch action.Tone {
		case stat.ToneMake:
			style = styles.ActionMake
		case stat.ToneMiss:
			style = styles.ActionMiss
		case stat.ToneEvent:
		}

		button := styles.ActionKey.Render(strconv.Itoa(i+1)+" ") + style.Render(action.Label)
		buttons = append(buttons, zone.Mark("pad-"+action.Short, button))
	}

	undo := styles.ActionKey.Render("u ") + styles.ActionEvent.Render("Undo")
	buttons = append(buttons, zone.Mark("pad-undo", undo))

	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func (m scoreboardModel) lastActionLine() string {
	last := m.game.LastAction()
	if last == "" {
		return ""
	}

	return styles.StatusAction.Render(last)
}
