package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/ui/input"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
)

type statusBarModel struct {
	game        *game.Game
	width       int
	statusMsg   string
	statusError bool
	version     string
	keyMap      input.Map
}

func newStatusBarModel(g *game.Game, version string) statusBarModel {
	return statusBarModel{game: g, version: version, keyMap: input.Default}
}

func (m statusBarModel) Update(msg tea.Msg) (statusBarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case statusMsg:
		m.statusMsg = msg.Message
		m.statusError = msg.Err

		return m, clearErrorAfter(clearMessageTimeout)
	case clearStatusMessageMsg:
		m.statusError = false
		m.statusMsg = ""
	}

	return m, nil
}

func (m statusBarModel) View() string {
	var args []string

	if teamA, ok := m.game.Team(game.TeamA); ok {
		teamB, _ := m.game.Team(game.TeamB)
		mode := m.game.Mode()
		args = append(args,
			styles.StatusSideA.Render(fmt.Sprintf(" %s %d ", teamA.Label, teamA.Points(mode))),
			styles.StatusSideB.Render(fmt.Sprintf(" %d %s ", teamB.Points(mode), teamB.Label)),
			styles.StatusMode.Render(modeLabel(mode)))
	}

	args = append(args,
		styles.StatusVersion.Render(m.version),
		styles.StatusHelp.Render(fmt.Sprintf("%s %s", m.keyMap.Help.Help().Key, m.keyMap.Help.Help().Desc)),
		m.status())

	return lipgloss.NewStyle().Width(m.width).Background(styles.Black).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, args...))
}

func (m statusBarModel) status() string {
	if m.statusMsg != "" {
		if m.statusError {
			return styles.StatusError.Render(m.statusMsg)
		}

		return styles.StatusMessage.Render(m.statusMsg)
	}

	return styles.StatusAction.Render(m.game.LastAction())
}
