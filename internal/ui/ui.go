// Package ui is the bubbletea front end: one root model owning the reducer,
// page models for each phase and overlay, and message plumbing between them.
package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/courtkeep/courtkeep/internal/config"
	"github.com/courtkeep/courtkeep/internal/export"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/share"
	zone "github.com/lrstanley/bubblezone"
)

const (
	clearMessageTimeout = time.Second * 10
	defaultFPS          = 30
)

var ErrUIExit = errors.New("ui error returned")

// page is an overlay on top of whatever the game phase dictates. pageNone
// means the phase decides what is shown.
type page int

const (
	pageNone page = iota
	pageShare
	pageLog
	pageHelp
	pageConfig
)

// Deps carries everything the UI needs from the outside.
type Deps struct {
	Game     *game.Game
	Store    persist.Store
	Preparer *share.Preparer
	Exporter export.Exporter
	Writer   config.Writer

	BuildVersion string
	BuildDate    string
	BuildCommit  string
}

type UI struct {
	program *tea.Program
}

func New(ctx context.Context, userConfig config.Config, deps Deps) *UI {
	zone.NewGlobal()

	fps := userConfig.FPS
	if fps <= 0 {
		fps = defaultFPS
	}

	return &UI{
		program: tea.NewProgram(
			newRootModel(ctx, userConfig, deps),
			tea.WithMouseCellMotion(),
			tea.WithAltScreen(),
			tea.WithMouseAllMotion(),
			tea.WithContext(ctx),
			tea.WithFPS(fps)),
	}
}

func (t UI) Run() error {
	if _, err := t.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}

	return nil
}

func (t UI) Send(msg tea.Msg) {
	t.program.Send(msg)
}
