package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// screen identifies the active view of a session.
type screen int

const (
	screenMenu screen = iota
	screenGame
	screenLeaderboard
)

// SessionModel manages the full session flow: menu -> game -> leaderboard.
// It is the top-level model for local play and SSH sessions.
type SessionModel struct {
	services Services
	config   core.RuntimeConfig
	player   string

	active      screen
	returnTo    screen // where the leaderboard goes back to
	menu        MenuModel
	gameModel   *GameModel
	leaderboard *LeaderboardModel
	quitting    bool
}

// NewSessionModel creates a session. If startMode names a registered mode the
// session opens straight into that game; otherwise it opens on the menu.
func NewSessionModel(services Services, cfg core.RuntimeConfig, player, startMode string) (SessionModel, error) {
	m := SessionModel{
		services: services,
		config:   cfg,
		player:   player,
		menu:     NewMenuModel(services.Store, cfg),
	}
	if startMode == "" {
		return m, nil
	}

	game, err := registry.Create(startMode)
	if err != nil {
		return m, fmt.Errorf("tui: %w", err)
	}
	gm := NewGameModel(game, services, cfg, player)
	m.gameModel = &gm
	m.active = screenGame
	return m, nil
}

// Init initializes the active screen.
func (m SessionModel) Init() tea.Cmd {
	if m.active == screenGame && m.gameModel != nil {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case TickMsg, submitResultMsg:
		// A paused game keeps ticking while the leaderboard is open
		if m.gameModel == nil {
			return m, nil
		}
		return m.forwardToGame(msg)
	}

	switch m.active {
	case screenGame:
		if m.gameModel != nil {
			return m.updateGame(msg)
		}
	case screenLeaderboard:
		if m.leaderboard != nil {
			return m.updateLeaderboard(msg)
		}
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}
	m.config = m.menu.Config()

	switch selected.Choice {
	case ChoicePlay:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			// Only registered modes are listed
			m.services.logger().Error("could not create game", "mode", selected.GameID, "error", err)
			m.menu = NewMenuModel(m.services.Store, m.config)
			return m, nil
		}
		gm := NewGameModel(game, m.services, m.config, m.player)
		m.gameModel = &gm
		m.active = screenGame
		return m, m.gameModel.Init()

	case ChoiceLeaderboard:
		return m.openLeaderboard(TabRemote, screenMenu)

	case ChoiceLocalScores:
		return m.openLeaderboard(TabLocal, screenMenu)
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	sm, cmd := m.forwardToGame(msg)
	gm := sm.gameModel

	if gm.IsQuitting() {
		sm.quitting = true
		return sm, tea.Quit
	}

	if gm.BackToMenu() {
		sm.player = gm.Player()
		sm.gameModel = nil
		sm.active = screenMenu
		sm.menu = NewMenuModel(sm.services.Store, sm.config)
		return sm, sm.menu.Init()
	}

	if gm.WantsScores() {
		sm.player = gm.Player()
		gm.resume()
		return sm.openLeaderboard(TabRemote, screenGame)
	}

	return sm, cmd
}

// forwardToGame passes a message to the game model regardless of the active
// screen.
func (m SessionModel) forwardToGame(msg tea.Msg) (SessionModel, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}
	return m, cmd
}

// updateLeaderboard handles updates when the leaderboard is shown.
func (m SessionModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.leaderboard.Update(msg)
	if lb, ok := newModel.(LeaderboardModel); ok {
		m.leaderboard = &lb
	}

	if m.leaderboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.leaderboard.IsGoingBack() {
		m.leaderboard = nil
		if m.returnTo == screenGame && m.gameModel != nil {
			m.active = screenGame
			// Pick up any resize that happened meanwhile
			return m.forwardToGame(tea.WindowSizeMsg{Width: m.config.ScreenW, Height: m.config.ScreenH})
		}
		m.active = screenMenu
		m.menu = NewMenuModel(m.services.Store, m.config)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) openLeaderboard(tab LeaderboardTab, returnTo screen) (tea.Model, tea.Cmd) {
	lb := NewLeaderboardModel(m.services.Leaderboard, m.services.Store, tab, m.config.ScreenW, m.config.ScreenH)
	m.leaderboard = &lb
	m.returnTo = returnTo
	m.active = screenLeaderboard
	return m, m.leaderboard.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.active {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenLeaderboard:
		if m.leaderboard != nil {
			return m.leaderboard.View()
		}
	}
	return m.menu.View()
}

// Player returns the most recent player name used in the session.
func (m SessionModel) Player() string {
	if m.gameModel != nil {
		return m.gameModel.Player()
	}
	return m.player
}

// Run plays the given mode in the local terminal. B returns to the menu, so a
// session started this way can continue with other modes.
func Run(services Services, cfg core.RuntimeConfig, mode, player string) error {
	model, err := NewSessionModel(services, cfg, player, mode)
	if err != nil {
		return err
	}
	return runProgram(model)
}

// RunMenu starts a local session on the menu.
func RunMenu(services Services, cfg core.RuntimeConfig, player string) error {
	model, err := NewSessionModel(services, cfg, player, "")
	if err != nil {
		return err
	}
	return runProgram(model)
}

func runProgram(model SessionModel) error {
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
