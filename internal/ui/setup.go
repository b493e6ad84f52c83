package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/stat"
	"github.com/courtkeep/courtkeep/internal/ui/input"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
)

// focusFormMsg tells a form to reload its values and focus its first field.
type focusFormMsg struct{}

// fieldKind says what a form row is. Text rows own a textinput, the rest are
// keyboard-only toggles and the submit button.
type fieldKind int

const (
	fieldLabelA fieldKind = iota
	fieldNameA
	fieldLabelB
	fieldNameB
	fieldCount
	fieldMode
	fieldSubmit
)

type formField struct {
	kind fieldKind
	slot int
}

// setupModel is the form behind both the new-game setup phase and the
// edit-names phase. It stages every edit straight into the reducer so typed
// names survive restarts.
type setupModel struct {
	game   *game.Game
	labels map[game.TeamID]textinput.Model
	names  map[game.TeamID][]textinput.Model
	focus  int
	keyMap input.Map
	width  int
}

func newSetupModel(g *game.Game) setupModel {
	model := setupModel{
		game:   g,
		labels: make(map[game.TeamID]textinput.Model, 2),
		names:  make(map[game.TeamID][]textinput.Model, 2),
		keyMap: input.Default,
	}

	for _, side := range game.SideOrder {
		staged := g.Setup(side)
		model.labels[side] = newTextInputModel(staged.Label, side.DefaultLabel())

		inputs := make([]textinput.Model, game.MaxPlayers)
		for slot := range game.MaxPlayers {
			inputs[slot] = newTextInputModel(staged.Names[slot], fmt.Sprintf("P%d", slot+1))
		}
		model.names[side] = inputs
	}

	return model.setFocus(0)
}

func (m setupModel) Init() tea.Cmd {
	return textinput.Blink
}

// fields is the current focus order. Name rows beyond the staged player
// count are hidden, so the order changes when the count toggles.
func (m setupModel) fields() []formField {
	count := m.game.PlayerCount()

	out := []formField{{kind: fieldLabelA}}
	for slot := range count {
		out = append(out, formField{kind: fieldNameA, slot: slot})
	}
	out = append(out, formField{kind: fieldLabelB})
	for slot := range count {
		out = append(out, formField{kind: fieldNameB, slot: slot})
	}

	if m.game.Phase() != game.PhaseEditNames {
		out = append(out, formField{kind: fieldCount}, formField{kind: fieldMode})
	}

	return append(out, formField{kind: fieldSubmit})
}

func (m setupModel) Update(msg tea.Msg) (setupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		return m, nil
	case focusFormMsg:
		return m.reload(), nil
	case tea.KeyMsg:
		phase := m.game.Phase()
		if phase != game.PhaseSetup && phase != game.PhaseEditNames {
			return m, nil
		}

		return m.handleKey(msg)
	}

	return m, nil
}

func (m setupModel) handleKey(msg tea.KeyMsg) (setupModel, tea.Cmd) {
	fields := m.fields()
	current := fields[min(m.focus, len(fields)-1)]

	// Plain runes always type into a focused text field, the hjkl aliases
	// only navigate on toggle rows.
	if isTextField(current.kind) && msg.Type == tea.KeyRunes {
		return m.updateFocusedInput(msg, current)
	}

	switch {
	case key.Matches(msg, m.keyMap.Back):
		if m.game.Phase() == game.PhaseEditNames {
			m.game.CancelEditNames()

			return m, tea.Batch(func() tea.Msg { return gameChanged() },
				setStatusMessage("Edit cancelled", false))
		}

		return m, nil
	case key.Matches(msg, m.keyMap.Up):
		return m.setFocus(m.focus - 1), nil
	case key.Matches(msg, m.keyMap.Down):
		return m.setFocus(m.focus + 1), nil
	case key.Matches(msg, m.keyMap.Accept):
		switch current.kind {
		case fieldSubmit:
			return m.submit()
		case fieldCount:
			m.toggleCount()

			return m, func() tea.Msg { return gameChanged() }
		case fieldMode:
			m.toggleMode()

			return m, func() tea.Msg { return gameChanged() }
		default:
			return m.setFocus(m.focus + 1), nil
		}
	case key.Matches(msg, m.keyMap.Left), key.Matches(msg, m.keyMap.Right):
		switch current.kind {
		case fieldCount:
			m.toggleCount()

			return m, func() tea.Msg { return gameChanged() }
		case fieldMode:
			m.toggleMode()

			return m, func() tea.Msg { return gameChanged() }
		}
	}

	return m.updateFocusedInput(msg, current)
}

// updateFocusedInput feeds the key to the focused text field and mirrors the
// new value into the reducer's staging area.
func (m setupModel) updateFocusedInput(msg tea.KeyMsg, current formField) (setupModel, tea.Cmd) {
	var cmd tea.Cmd

	switch current.kind {
	case fieldLabelA, fieldLabelB:
		side := sideForField(current.kind)
		field := m.labels[side]
		field, cmd = field.Update(msg)
		m.labels[side] = field
		m.game.SetSetupLabel(side, field.Value())
	case fieldNameA, fieldNameB:
		side := sideForField(current.kind)
		field := m.names[side][current.slot]
		field, cmd = field.Update(msg)
		m.names[side][current.slot] = field
		m.game.SetSetupName(side, current.slot, field.Value())
	case fieldCount, fieldMode, fieldSubmit:
	}

	return m, cmd
}

func isTextField(kind fieldKind) bool {
	switch kind {
	case fieldLabelA, fieldLabelB, fieldNameA, fieldNameB:
		return true
	case fieldCount, fieldMode, fieldSubmit:
	}

	return false
}

func sideForField(kind fieldKind) game.TeamID {
	if kind == fieldLabelB || kind == fieldNameB {
		return game.TeamB
	}

	return game.TeamA
}

func (m setupModel) submit() (setupModel, tea.Cmd) {
	if m.game.Phase() == game.PhaseEditNames {
		m.game.SaveEditedNames()

		return m, tea.Batch(func() tea.Msg { return gameChanged() },
			setStatusMessage("Names updated", false))
	}

	m.game.StartGame()

	return m, func() tea.Msg { return gameChanged() }
}

func (m setupModel) toggleCount() {
	if m.game.PlayerCount() == game.MaxPlayers {
		m.game.SetPlayerCount(4)
	} else {
		m.game.SetPlayerCount(game.MaxPlayers)
	}
}

func (m setupModel) toggleMode() {
	if m.game.SetupMode() == stat.TwosAndThrees {
		m.game.SetSetupMode(stat.OnesAndTwos)
	} else {
		m.game.SetSetupMode(stat.TwosAndThrees)
	}
}

// reload re-reads staged values, used when entering the form from another
// phase so stale input buffers never show.
func (m setupModel) reload() setupModel {
	for _, side := range game.SideOrder {
		staged := m.game.Setup(side)

		label := m.labels[side]
		label.SetValue(staged.Label)
		m.labels[side] = label

		for slot := range game.MaxPlayers {
			field := m.names[side][slot]
			field.SetValue(staged.Names[slot])
			m.names[side][slot] = field
		}
	}

	return m.setFocus(0)
}

func (m setupModel) setFocus(target int) setupModel {
	fields := m.fields()
	m.focus = (target + len(fields)) % len(fields)

	for _, side := range game.SideOrder {
		label := m.labels[side]
		label.Blur()
		m.labels[side] = label
		for slot := range game.MaxPlayers {
			field := m.names[side][slot]
			field.Blur()
			m.names[side][slot] = field
		}
	}

	current := fields[m.focus]
	switch current.kind {
	case fieldLabelA, fieldLabelB:
		side := sideForField(current.kind)
		field := m.labels[side]
		field.Focus()
		m.labels[side] = field
	case fieldNameA, fieldNameB:
		side := sideForField(current.kind)
		field := m.names[side][current.slot]
		field.Focus()
		m.names[side][current.slot] = field
	case fieldCount, fieldMode, fieldSubmit:
	}

	return m
}

// focusFirst returns a command that reloads and refocuses the form.
func (m setupModel) focusFirst() tea.Cmd {
	return func() tea.Msg { return focusFormMsg{} }
}

func (m setupModel) View() string {
	count := m.game.PlayerCount()
	editing := m.game.Phase() == game.PhaseEditNames
	fields := m.fields()
	current := fields[min(m.focus, len(fields)-1)]

	var columns []string
	for _, side := range game.SideOrder {
		rows := []string{
			styles.SideStyle(string(side)).Render("Team " + string(side)),
			m.labels[side].View(),
		}
		for slot := range count {
			rows = append(rows, m.names[side][slot].View())
		}
		columns = append(columns,
			lipgloss.NewStyle().Width(34).Padding(0, 2).Render(
				lipgloss.JoinVertical(lipgloss.Left, rows...)))
	}

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, columns...)}

	if !editing {
		sections = append(sections,
			m.toggleRow(fieldCount, current.kind, "Players per side", fmt.Sprintf("%d", count)),
			m.toggleRow(fieldMode, current.kind, "Scoring", modeLabel(m.game.SetupMode())))
	}

	submit := styles.BlurredSubmitButton
	focusedSubmit := styles.FocusedSubmitButton
	if editing {
		submit = styles.BlurredSaveButton
		focusedSubmit = styles.FocusedSaveButton
	}
	if current.kind == fieldSubmit {
		submit = focusedSubmit
	}
	sections = append(sections, "", submit)

	if editing {
		sections = append(sections, styles.InfoMessage.Render("esc cancels, stats are kept"))
	}

	return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m setupModel) toggleRow(kind fieldKind, focused fieldKind, label string, value string) string {
	style := styles.BlurredStyle
	if kind == focused {
		style = styles.FocusedStyle
	}

	return style.Render(fmt.Sprintf("%s  ‹ %s ›", label, value))
}

func modeLabel(mode stat.Mode) string {
	if mode == stat.OnesAndTwos {
		return "1s & 2s"
	}

	return "2s & 3s"
}
