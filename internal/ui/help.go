package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/courtkeep/courtkeep/internal/config"
	"github.com/courtkeep/courtkeep/internal/ui/input"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
)

func newHelpModel(buildVersion string, buildDate string, buildCommit string, writer config.Writer) helpModel {
	configPath := ""
	if writer != nil {
		configPath = writer.Path()
	}

	return helpModel{
		keyMap:       input.Default,
		configPath:   configPath,
		dataPath:     config.PathData(config.DefaultDBName),
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

type helpModel struct {
	helpView     help.Model
	keyMap       input.Map
	configPath   string
	dataPath     string
	buildVersion string
	buildDate    string
	buildCommit  string
	width        int
}

func (m helpModel) Update(msg tea.Msg) (helpModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
	}

	return m, nil
}

func (m helpModel) View() string {
	left := m.helpView.FullHelpView([][]key.Binding{
		{
			m.keyMap.Action,
			m.keyMap.Undo,
			m.keyMap.Up,
			m.keyMap.Down,
			m.keyMap.Left,
			m.keyMap.Right,
		},
	})

	middle := m.helpView.FullHelpView([][]key.Binding{
		{
			m.keyMap.Share,
			m.keyMap.Log,
			m.keyMap.EditNames,
			m.keyMap.NewGame,
		},
	})

	right := m.helpView.FullHelpView([][]key.Binding{
		{
			m.keyMap.Config,
			m.keyMap.Help,
			m.keyMap.Back,
			m.keyMap.Quit,
		},
	})

	helpContent := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.HelpBox.Render(left), styles.HelpBox.Render(middle), styles.HelpBox.Render(right))

	commit := m.buildCommit
	if len(commit) > 8 {
		commit = m.buildCommit[0:8]
	}

	content := lipgloss.JoinVertical(lipgloss.Center, helpContent,
		styles.DetailRow("Version", m.buildVersion),
		styles.DetailRow("Commit", commit),
		styles.DetailRow("Date", m.buildDate),
		styles.DetailRow("Config Path", m.configPath),
		styles.DetailRow("Data Path", m.dataPath),
	)

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(content)
}
