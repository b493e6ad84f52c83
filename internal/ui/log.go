package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
)

const logLabelWidth = 48

// logModel shows the durable action trail, newest first. Unlike the in-game
// history this includes undo rows, it is the full audit of the session.
type logModel struct {
	viewport viewport.Model
	rows     []persist.AuditRow
	active   bool
	width    int
}

func newLogModel() logModel {
	return logModel{viewport: viewport.New(80, 20)}
}

func (m logModel) Update(msg tea.Msg) (logModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 4)

		return m, nil
	case setPageMsg:
		m.active = msg.page == pageLog

		return m, nil
	case auditRowsMsg:
		m.rows = msg.rows
		m.viewport.SetContent(m.renderRows())
		m.viewport.GotoTop()

		return m, nil
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}
	}

	if !m.active {
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m logModel) renderRows() string {
	if len(m.rows) == 0 {
		return styles.InfoMessage.Render("No actions recorded yet")
	}

	var lines []string
	for _, row := range m.rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.LogTime.Render(humanize.Time(row.CreatedOn)),
			styles.LogLabel.Render(wordwrap.String(row.Label, logLabelWidth))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m logModel) View() string {
	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).
		Render(m.viewport.View())
}
