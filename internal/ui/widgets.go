package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
)

func newTextInputModel(value string, placeholder string) textinput.Model {
	input := textinput.New()
	input.SetValue(value)
	input.CharLimit = 63
	input.Placeholder = placeholder
	input.PromptStyle = styles.NoStyle
	input.Cursor.Style = styles.FocusedStyle

	return input
}

func renderTitleBar(width int, value string) string {
	return lipgloss.
		NewStyle().
		Width(width - 2).
		Bold(false).
		Align(lipgloss.Center).
		Background(styles.Black).
		Foreground(styles.Accent).
		Render(value)
}

func newUnstyledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderHeader(false).
		Headers(headers...)
}
