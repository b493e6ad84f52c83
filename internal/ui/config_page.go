package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/courtkeep/courtkeep/internal/config"
	"github.com/courtkeep/courtkeep/internal/ui/input"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
)

type configIdx int

const (
	fieldChromeURL configIdx = iota
	fieldShareCommand
	fieldSaveDir
	fieldFPS
	fieldDebug
	fieldEphemeral
	fieldSave
)

// configModel edits and persists the app settings. Values only take effect
// once saved; the loader broadcasts the new config back into the UI.
type configModel struct {
	inputs     []textinput.Model
	focusIndex configIdx
	conf       config.Config
	writer     config.Writer
	active     bool
	keyMap     input.Map
	width      int
}

func newConfigModel(conf config.Config, writer config.Writer) configModel {
	return configModel{
		conf:   conf,
		writer: writer,
		keyMap: input.Default,
		inputs: []textinput.Model{
			newTextInputModel(conf.ChromeURL, "ws://127.0.0.1:9222 (empty launches local chrome)"),
			newTextInputModel(conf.ShareCommand, "program invoked with title and png path"),
			newTextInputModel(conf.SaveDir, "defaults to the download directory"),
			newTextInputModel(strconv.Itoa(conf.FPS), "30"),
		},
	}
}

func (m configModel) Update(msg tea.Msg) (configModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil
	case setPageMsg:
		m.active = msg.page == pageConfig

		return m, nil
	case focusFormMsg:
		if m.active {
			return m.reload(), nil
		}

		return m, nil
	case config.Config:
		m.conf = msg

		return m, nil
	case tea.KeyMsg:
		if !m.active {
			return m, nil
		}

		return m.handleKey(msg)
	}

	return m, nil
}

func (m configModel) handleKey(msg tea.KeyMsg) (configModel, tea.Cmd) {
	if m.focusIndex < fieldDebug && msg.Type == tea.KeyRunes {
		return m.updateFocusedInput(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Up):
		return m.setFocus(m.focusIndex - 1), nil
	case key.Matches(msg, m.keyMap.Down):
		return m.setFocus(m.focusIndex + 1), nil
	case key.Matches(msg, m.keyMap.Accept):
		switch m.focusIndex {
		case fieldDebug:
			m.conf.Debug = !m.conf.Debug

			return m, nil
		case fieldEphemeral:
			m.conf.Ephemeral = !m.conf.Ephemeral

			return m, nil
		case fieldSave:
			return m.save()
		default:
			return m.setFocus(m.focusIndex + 1), nil
		}
	case key.Matches(msg, m.keyMap.Toggle):
		switch m.focusIndex {
		case fieldDebug:
			m.conf.Debug = !m.conf.Debug

			return m, nil
		case fieldEphemeral:
			m.conf.Ephemeral = !m.conf.Ephemeral

			return m, nil
		case fieldChromeURL, fieldShareCommand, fieldSaveDir, fieldFPS, fieldSave:
		}
	}

	return m.updateFocusedInput(msg)
}

func (m configModel) updateFocusedInput(msg tea.KeyMsg) (configModel, tea.Cmd) {
	if m.focusIndex < 0 || int(m.focusIndex) >= len(m.inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)

	return m, cmd
}

func (m configModel) save() (configModel, tea.Cmd) {
	fps, errFPS := strconv.Atoi(m.inputs[fieldFPS].Value())
	if errFPS != nil || fps <= 0 || fps > 120 {
		return m, setStatusMessage("FPS must be a number between 1 and 120", true)
	}

	conf := m.conf
	conf.ChromeURL = m.inputs[fieldChromeURL].Value()
	conf.ShareCommand = m.inputs[fieldShareCommand].Value()
	conf.SaveDir = m.inputs[fieldSaveDir].Value()
	conf.FPS = fps

	if err := m.writer.Write(conf); err != nil {
		return m, setStatusMessage(err.Error(), true)
	}

	m.conf = conf

	return m, tea.Batch(
		func() tea.Msg { return conf },
		setStatusMessage("Saved config", false),
		setPage(pageNone))
}

// focusFirst returns a command that reloads the form from the saved config.
func (m configModel) focusFirst() tea.Cmd {
	return func() tea.Msg { return focusFormMsg{} }
}

func (m configModel) reload() configModel {
	m.inputs[fieldChromeURL].SetValue(m.conf.ChromeURL)
	m.inputs[fieldShareCommand].SetValue(m.conf.ShareCommand)
	m.inputs[fieldSaveDir].SetValue(m.conf.SaveDir)
	m.inputs[fieldFPS].SetValue(strconv.Itoa(m.conf.FPS))

	return m.setFocus(fieldChromeURL)
}

func (m configModel) setFocus(target configIdx) configModel {
	if target < fieldChromeURL {
		target = fieldChromeURL
	}
	if target > fieldSave {
		target = fieldSave
	}
	m.focusIndex = target

	for i := range m.inputs {
		if configIdx(i) == target {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}

	return m
}

func (m configModel) View() string {
	rows := []string{
		styles.DetailRow("Chrome URL", m.inputs[fieldChromeURL].View()),
		styles.DetailRow("Share command", m.inputs[fieldShareCommand].View()),
		styles.DetailRow("Save directory", m.inputs[fieldSaveDir].View()),
		styles.DetailRow("FPS", m.inputs[fieldFPS].View()),
		styles.DetailRow("Debug logging", m.checkbox(m.conf.Debug, fieldDebug)),
		styles.DetailRow("Ephemeral", m.checkbox(m.conf.Ephemeral, fieldEphemeral)),
	}

	if m.focusIndex == fieldSave {
		rows = append(rows, styles.FocusedSaveButton)
	} else {
		rows = append(rows, styles.BlurredSaveButton)
	}

	rows = append(rows, styles.InfoMessage.Render("Chrome URL and ephemeral take effect on restart"))

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, rows...))
}

func (m configModel) checkbox(value bool, idx configIdx) string {
	mark := "[ ]"
	if value {
		mark = "[x]"
	}

	if m.focusIndex == idx {
		return styles.FocusedStyle.Render(mark)
	}

	return styles.BlurredStyle.Render(mark)
}
