package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/courtkeep/courtkeep/internal/config"
	"github.com/courtkeep/courtkeep/internal/export"
	"github.com/courtkeep/courtkeep/internal/game"
	"github.com/courtkeep/courtkeep/internal/persist"
	"github.com/courtkeep/courtkeep/internal/share"
	"github.com/courtkeep/courtkeep/internal/stat"
	"github.com/courtkeep/courtkeep/internal/ui/input"
	"github.com/courtkeep/courtkeep/internal/ui/styles"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"
)

// rootModel is the top level model for the ui side of the app. It owns the
// reducer and the share cache; page models only read them and emit messages.
type rootModel struct {
	ctx       context.Context
	conf      config.Config
	game      *game.Game
	store     persist.Store
	prep      *share.Preparer
	exporter  export.Exporter
	selection share.Selection
	keyMap    input.Map

	overlay      page
	height       int
	width        int
	headerHeight int
	footerHeight int

	setupModel      setupModel
	scoreboardModel scoreboardModel
	shareModel      shareModel
	logModel        logModel
	helpModel       helpModel
	configModel     configModel
	statusModel     statusBarModel
}

func newRootModel(ctx context.Context, userConfig config.Config, deps Deps) *rootModel {
	selection := share.NewSelection(deps.Game.PlayerIDs())

	return &rootModel{
		ctx:             ctx,
		conf:            userConfig,
		game:            deps.Game,
		store:           deps.Store,
		prep:            deps.Preparer,
		exporter:        deps.Exporter,
		selection:       selection,
		keyMap:          input.Default,
		overlay:         pageNone,
		headerHeight:    1,
		footerHeight:    1,
		setupModel:      newSetupModel(deps.Game),
		scoreboardModel: newScoreboardModel(deps.Game),
		shareModel:      newShareModel(deps.Game, deps.Preparer, selection),
		logModel:        newLogModel(),
		helpModel:       newHelpModel(deps.BuildVersion, deps.BuildDate, deps.BuildCommit, deps.Writer),
		configModel:     newConfigModel(userConfig, deps.Writer),
		statusModel:     newStatusBarModel(deps.Game, deps.BuildVersion),
	}
}

func (m rootModel) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("courtkeep"),
		textinput.Blink,
		m.setupModel.Init(),
	)
}

func (m rootModel) Update(inMsg tea.Msg) (tea.Model, tea.Cmd) {
	logMsg(inMsg)

	if !m.isInitialized() {
		if _, ok := inMsg.(tea.WindowSizeMsg); !ok {
			return m, nil
		}
	}

	switch msg := inMsg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.width = msg.Width
	case tea.KeyMsg:
		if model, cmd, handled := m.handleKey(msg); handled {
			return model, cmd
		}
	case setPageMsg:
		return m.openOverlay(msg.page)
	case gameChangedMsg:
		return m.onGameChanged(inMsg)
	case selectTargetMsg:
		m.game.SelectTarget(msg.team, msg.player)

		return m.onGameChanged(inMsg)
	case logActionMsg:
		return m.applyAction(msg.action)
	case undoMsg:
		return m.applyUndo()
	case toggleShareMsg:
		m.selection.Toggle(msg.playerID)

		return m.propagate(inMsg, m.startPrepare())
	case sharePreparedMsg:
		if m.prep.Accept(msg.token, msg.image, msg.err) && msg.err != nil {
			return m.propagate(inMsg, setStatusMessage("Failed to render share image", true))
		}

		return m.propagate(inMsg)
	case shareSavedMsg:
		return m.propagate(inMsg, m.shareOutcomeStatus(msg))
	case config.Config:
		m.conf = msg
		m.exporter = export.New(msg.ShareCommand, msg.SaveDir)
	}

	return m.propagate(inMsg)
}

// handleKey owns the global keys. Pages with focused text inputs only see
// force-quit so typed names never trigger navigation.
func (m rootModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if key.Matches(msg, m.keyMap.ForceQuit) {
		return m, tea.Quit, true
	}

	if m.overlay != pageNone {
		return m.handleOverlayKey(msg)
	}

	switch m.game.Phase() {
	case game.PhaseSetup, game.PhaseEditNames:
		// The setup form consumes everything else.
		return m, nil, false
	case game.PhaseGame:
		return m.handleGameKey(msg)
	}

	return m, nil, false
}

func (m rootModel) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	typing := m.overlay == pageConfig

	switch {
	case key.Matches(msg, m.keyMap.Back):
		return m.closeOverlayKey()
	case !typing && key.Matches(msg, m.keyMap.Quit):
		return m.closeOverlayKey()
	case !typing && key.Matches(msg, m.keyMap.Help):
		if m.overlay == pageHelp {
			return m.closeOverlayKey()
		}
	case m.overlay == pageShare && key.Matches(msg, m.keyMap.Accept):
		model, cmd := m.propagate(msg, m.exportShare(true))

		return model, cmd, true
	case m.overlay == pageShare && key.Matches(msg, m.keyMap.Save):
		model, cmd := m.propagate(msg, m.exportShare(false))

		return model, cmd, true
	}

	return m, nil, false
}

func (m rootModel) closeOverlayKey() (tea.Model, tea.Cmd, bool) {
	model, cmd := m.openOverlay(pageNone)

	return model, cmd, true
}

func (m rootModel) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, m.keyMap.Help):
		model, cmd := m.openOverlay(pageHelp)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Config):
		model, cmd := m.openOverlay(pageConfig)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Share):
		model, cmd := m.openOverlay(pageShare)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Log):
		model, cmd := m.openOverlay(pageLog)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Undo):
		model, cmd := m.applyUndo()

		return model, cmd, true
	case key.Matches(msg, m.keyMap.EditNames):
		if m.game.BeginEditNames() {
			model, cmd := m.onGameChanged(gameChangedMsg{}, m.setupModel.focusFirst())

			return model, cmd, true
		}

		return m, nil, true
	case key.Matches(msg, m.keyMap.NewGame):
		m.game.BackToSetup()
		m.prep.Invalidate()
		model, cmd := m.onGameChanged(gameChangedMsg{}, m.setupModel.focusFirst())

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Left):
		model, cmd := m.moveSelection(0, -1)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Right):
		model, cmd := m.moveSelection(0, 1)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Up):
		model, cmd := m.moveSelection(-1, 0)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Down):
		model, cmd := m.moveSelection(1, 0)

		return model, cmd, true
	case key.Matches(msg, m.keyMap.Action):
		actions := stat.Actions(m.game.Mode())
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(actions) {
			model, cmd := m.applyAction(actions[idx])

			return model, cmd, true
		}

		return m, nil, true
	}

	return m, nil, false
}

// moveSelection steps the logging target. Rows move within a side wrapping
// around, columns jump across to the same slot on the other side.
func (m rootModel) moveSelection(rowDelta int, colDelta int) (tea.Model, tea.Cmd) {
	teams := m.game.Teams()
	if len(teams) == 0 {
		return m, nil
	}

	selTeam, selPlayer := m.game.Selected()
	teamIdx := 0
	for i, team := range teams {
		if team.ID == selTeam {
			teamIdx = i
		}
	}

	playerIdx := 0
	for i, player := range teams[teamIdx].Players {
		if player.ID == selPlayer {
			playerIdx = i
		}
	}

	if colDelta != 0 {
		teamIdx = (teamIdx + colDelta + len(teams)) % len(teams)
	}

	// A normalized snapshot can carry a team with no players; never step into it.
	count := len(teams[teamIdx].Players)
	if count == 0 {
		return m, nil
	}

	if rowDelta != 0 {
		playerIdx = (playerIdx + rowDelta + count) % count
	}

	playerIdx = min(playerIdx, count-1)
	m.game.SelectTarget(teams[teamIdx].ID, teams[teamIdx].Players[playerIdx].ID)

	return m.onGameChanged(gameChangedMsg{})
}

func (m rootModel) applyAction(action stat.Action) (tea.Model, tea.Cmd) {
	entry, ok := m.game.LogAction(action)
	if !ok {
		return m, setStatusMessage("Select a player first", true)
	}

	return m.onGameChanged(gameChangedMsg{}, m.appendAudit(entry, entry.Label))
}

func (m rootModel) applyUndo() (tea.Model, tea.Cmd) {
	entry, ok := m.game.Undo()
	if !ok {
		return m, setStatusMessage("Nothing to undo", false)
	}

	return m.onGameChanged(gameChangedMsg{}, m.appendAudit(entry, "Undo: "+entry.Label))
}

// appendAudit writes one row of the durable action trail. Best effort, a
// failed write never interrupts scorekeeping.
func (m rootModel) appendAudit(entry game.LoggedAction, label string) tea.Cmd {
	store := m.store
	ctx := m.ctx
	row := persist.AuditRow{
		TeamID:    string(entry.TeamID),
		PlayerID:  entry.PlayerID,
		Label:     label,
		CreatedOn: time.Now(),
	}

	return func() tea.Msg {
		if err := store.AppendAction(ctx, row); err != nil {
			slog.Warn("Failed to append audit row", slog.String("error", err.Error()))
		}

		return nil
	}
}

// onGameChanged runs after every reducer mutation: the share selection is
// reconciled with the roster and, when the share sheet is open, a stale
// image is regenerated immediately.
func (m rootModel) onGameChanged(inMsg tea.Msg, extra ...tea.Cmd) (tea.Model, tea.Cmd) {
	m.selection.Reconcile(m.game.PlayerIDs())

	cmds := extra
	if m.overlay == pageShare {
		cmds = append(cmds, m.startPrepare())
	}

	return m.propagate(inMsg, cmds...)
}

func (m rootModel) openOverlay(target page) (tea.Model, tea.Cmd) {
	if m.overlay == pageShare && target != pageShare {
		m.prep.Invalidate()
	}

	m.overlay = target

	var cmds []tea.Cmd
	switch target {
	case pageShare:
		m.selection.Reconcile(m.game.PlayerIDs())
		cmds = append(cmds, m.startPrepare())
	case pageLog:
		cmds = append(cmds, m.fetchAudit())
	case pageConfig:
		cmds = append(cmds, m.configModel.focusFirst())
	case pageHelp, pageNone:
	}

	model, cmd := m.propagate(setPageMsg{page: target}, cmds...)

	return model, cmd
}

// startPrepare kicks off an async render when the cached image no longer
// matches the current signature. The result comes back as sharePreparedMsg.
func (m rootModel) startPrepare() tea.Cmd {
	job, needed := m.prep.Start(m.game.Mode(), m.game.Teams(), m.selection)
	if !needed {
		return nil
	}

	prep := m.prep
	ctx := m.ctx

	return func() tea.Msg {
		image, err := prep.Render(ctx, job)

		return sharePreparedMsg{token: job.Token, image: image, err: err}
	}
}

// exportShare saves the prepared image, optionally handing it to the share
// command. Without a ready image it nudges the render along instead.
func (m rootModel) exportShare(doShare bool) tea.Cmd {
	image, ready := m.prep.Image()
	if !ready {
		if m.prep.Preparing() {
			return setStatusMessage("Image still rendering", false)
		}

		// Failed or never started: retry now, the user can mash the key.
		return tea.Batch(setStatusMessage("Rendering image", false), m.startPrepare())
	}

	var labels []string
	for _, team := range m.game.Teams() {
		labels = append(labels, team.Label)
	}
	title := strings.Join(labels, " vs ")

	exporter := m.exporter
	ctx := m.ctx
	useCommand := doShare && exporter.CanShare()

	return func() tea.Msg {
		if useCommand {
			path, err := exporter.Share(ctx, title, image, labels)

			return shareSavedMsg{path: path, size: len(image), shared: true, err: err}
		}

		path, err := exporter.Save(image, labels)

		return shareSavedMsg{path: path, size: len(image), shared: false, err: err}
	}
}

func (m rootModel) shareOutcomeStatus(msg shareSavedMsg) tea.Cmd {
	if msg.err != nil {
		slog.Error("Share failed", slog.String("error", msg.err.Error()))

		return setStatusMessage("Share failed: "+msg.err.Error(), true)
	}

	verb := "Saved"
	if msg.shared {
		verb = "Shared"
	}

	return setStatusMessage(verb+" "+msg.path+" ("+humanize.Bytes(uint64(msg.size))+")", false)
}

func (m rootModel) fetchAudit() tea.Cmd {
	store := m.store
	ctx := m.ctx

	return func() tea.Msg {
		rows, err := store.RecentActions(ctx, 100)
		if err != nil {
			slog.Warn("Failed to load audit rows", slog.String("error", err.Error()))

			return statusMsg{Message: "Failed to load activity log", Err: true}
		}

		return auditRowsMsg{rows: rows}
	}
}

func (m rootModel) View() string {
	hdr := styles.HeaderContainerStyle.Width(m.width).Render(renderTitleBar(m.width, m.title()))
	ftr := styles.FooterContainerStyle.Width(m.width).Render(m.statusModel.View())

	contentHeight := m.height - lipgloss.Height(hdr) - lipgloss.Height(ftr)

	var content string
	switch m.overlay {
	case pageShare:
		content = m.shareModel.View()
	case pageLog:
		content = m.logModel.View()
	case pageHelp:
		content = m.helpModel.View()
	case pageConfig:
		content = m.configModel.View()
	case pageNone:
		switch m.game.Phase() {
		case game.PhaseSetup, game.PhaseEditNames:
			content = m.setupModel.View()
		case game.PhaseGame:
			content = m.scoreboardModel.View()
		}
	}

	ctr := styles.ContentContainerStyle.Height(contentHeight).Render(content)

	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, hdr, ctr, ftr))
}

func (m rootModel) title() string {
	switch m.overlay {
	case pageShare:
		return "courtkeep · share box score"
	case pageLog:
		return "courtkeep · activity log"
	case pageHelp:
		return "courtkeep · help"
	case pageConfig:
		return "courtkeep · settings"
	case pageNone:
	}

	switch m.game.Phase() {
	case game.PhaseEditNames:
		return "courtkeep · edit names"
	case game.PhaseGame:
		return "courtkeep"
	case game.PhaseSetup:
	}

	return "courtkeep · new game"
}

func (m rootModel) isInitialized() bool {
	return m.height != 0 && m.width != 0
}

func (m rootModel) propagate(msg tea.Msg, extra ...tea.Cmd) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 7, 7+len(extra))

	m.setupModel, cmds[0] = m.setupModel.Update(msg)
	m.scoreboardModel, cmds[1] = m.scoreboardModel.Update(msg)
	m.shareModel, cmds[2] = m.shareModel.Update(msg)
	m.logModel, cmds[3] = m.logModel.Update(msg)
	m.helpModel, cmds[4] = m.helpModel.Update(msg)
	m.configModel, cmds[5] = m.configModel.Update(msg)
	m.statusModel, cmds[6] = m.statusModel.Update(msg)

	return m, tea.Batch(append(cmds, extra...)...)
}

// logMsg is useful for debugging events. Tail the log file ~/.config/courtkeep/courtkeep.log
func logMsg(inMsg tea.Msg) {
	// Filter out very noisy stuff
	switch inMsg.(type) {
	case sharePreparedMsg:
	case gameChangedMsg:
		break
	case tea.MouseMsg:
		break
	default:
		slog.Debug("tea.Msg", slog.Any("msg", inMsg))
	}
}
