package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Accent = lipgloss.Color("#f4722b")

	Black       = lipgloss.Color("#111111")
	Gray        = lipgloss.Color("#3e3e3e")
	GrayDark    = lipgloss.Color("#2f3030")
	GrayDarkAlt = lipgloss.Color("#0f0f0f")
	White       = lipgloss.Color("#cccccc")
	Whiter      = lipgloss.Color("#aaaaaa")

	// Side colours. A is warm, B is cool, matching the share image.
	SideA = lipgloss.Color("#B8383B")
	SideB = lipgloss.Color("#5885A2")

	ColourMake  = lipgloss.Color("#4d7455")
	ColourMiss  = lipgloss.Color("#B8383B")
	ColourEvent = lipgloss.Color("#476291")
	ColourMuted = lipgloss.Color("240")

	HeaderContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)
	ContentContainerStyle = lipgloss.NewStyle().Align(lipgloss.Center)
	FooterContainerStyle  = lipgloss.NewStyle().Align(lipgloss.Center)

	FocusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	BlurredStyle = lipgloss.NewStyle().Foreground(ColourMuted).Background(Black)
	NoStyle      = lipgloss.NewStyle()

	FocusedSubmitButton = lipgloss.NewStyle().Foreground(Accent).Render("[ Start Game ]")
	BlurredSubmitButton = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Start Game"))
	FocusedSaveButton   = lipgloss.NewStyle().Foreground(Accent).Render("[ Save ]")
	BlurredSaveButton   = fmt.Sprintf("[ %s ]", BlurredStyle.Render("Save"))

	Title = lipgloss.NewStyle().Bold(true).Foreground(Accent)

	HeaderStyleA = lipgloss.NewStyle().Foreground(SideA).Bold(true).Align(lipgloss.Left)
	HeaderStyleB = lipgloss.NewStyle().Foreground(SideB).Bold(true).Align(lipgloss.Left)

	TableRow            = lipgloss.NewStyle().Foreground(White)
	TableRowOdd         = lipgloss.NewStyle().Foreground(Whiter)
	SelectedCellStyleA  = lipgloss.NewStyle().Bold(true).Background(SideA).Foreground(Black)
	SelectedCellStyleB  = lipgloss.NewStyle().Bold(true).Background(SideB).Foreground(Black)
	TableTotalRow       = lipgloss.NewStyle().Bold(true).Foreground(White)
	TableHeading        = lipgloss.NewStyle().Foreground(ColourMuted)
	ExcludedPlayerStyle = lipgloss.NewStyle().Foreground(Gray).Strikethrough(true)

	ActionMake  = lipgloss.NewStyle().Foreground(ColourMake).Bold(true).PaddingLeft(1).PaddingRight(1)
	ActionMiss  = lipgloss.NewStyle().Foreground(ColourMiss).PaddingLeft(1).PaddingRight(1)
	ActionEvent = lipgloss.NewStyle().Foreground(ColourEvent).PaddingLeft(1).PaddingRight(1)
	ActionKey   = lipgloss.NewStyle().Foreground(ColourMuted)

	StatusSideA    = lipgloss.NewStyle().Foreground(SideA).Bold(true).Align(lipgloss.Center)
	StatusSideB    = lipgloss.NewStyle().Foreground(SideB).Bold(true).Align(lipgloss.Center)
	StatusMode     = lipgloss.NewStyle().Foreground(ColourEvent).PaddingLeft(2).PaddingRight(2)
	StatusError    = lipgloss.NewStyle().Foreground(SideA).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusMessage  = lipgloss.NewStyle().Foreground(ColourMake).Align(lipgloss.Right).Bold(true).PaddingRight(2)
	StatusAction   = lipgloss.NewStyle().Foreground(Accent).PaddingRight(2)
	StatusHelp     = lipgloss.NewStyle().Foreground(Gray).Bold(true).Align(lipgloss.Center)
	StatusVersion  = lipgloss.NewStyle().Foreground(ColourMake).Bold(true).Align(lipgloss.Center)
	StatusPrepared = lipgloss.NewStyle().Foreground(ColourEvent).Align(lipgloss.Right).PaddingRight(2)

	LogTime  = lipgloss.NewStyle().Width(16).Foreground(Gray)
	LogLabel = lipgloss.NewStyle()

	PanelLabel = lipgloss.NewStyle().Foreground(ColourMuted).Align(lipgloss.Right).Width(16)
	PanelValue = lipgloss.NewStyle().Width(60)

	TableRowValuesEven = lipgloss.NewStyle().Background(GrayDark)
	TableRowValuesOdd  = lipgloss.NewStyle().Background(GrayDarkAlt)

	InfoMessage = lipgloss.NewStyle().Align(lipgloss.Center).Padding(1)
	HelpBox     = lipgloss.NewStyle().Padding(3)
)

func DetailRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		PanelLabel.Render(label+" "),
		PanelValue.Render(value))
}

// SideStyle returns the accent style for a side id, A warm / B cool.
func SideStyle(id string) lipgloss.Style {
	if id == "B" {
		return HeaderStyleB
	}

	return HeaderStyleA
}

// WrapX wraps a centered string with the supplied character up to the length specified.
func WrapX(width int, value string, character string) string {
	all := width - lipgloss.Width(value)
	if all < 2 {
		return value
	}

	return strings.Repeat(character, all/2) + value + strings.Repeat(character, all/2)
}
