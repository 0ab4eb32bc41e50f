package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Services are the collaborators shared by every screen. Any of them may be
// nil; the UI degrades to playing without history or submission.
type Services struct {
	Store       *storage.Store
	Leaderboard *leaderboard.Client
	Logger      *log.Logger
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}

// submitState tracks the name prompt shown after game over.
type submitState int

const (
	submitNone     submitState = iota // still playing
	submitPrompt                      // waiting for a name
	submitInFlight                    // request sent
	submitDone                        // result shown
	submitSkipped                     // player pressed esc
)

const (
	statusBarHeight  = 1
	maxPlayerNameLen = 24
)

// submitResultMsg reports the outcome of an asynchronous score submission.
type submitResultMsg struct {
	gen     int
	runID   int64
	name    string
	message string
	err     error
}

// GameModel runs one game mode: ticks, input, the name prompt on game over,
// and score reporting. It never blocks the update loop.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	services   Services
	config     core.RuntimeConfig
	fixedSeed  bool
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	gen        int // tick loop generation

	player string
	prompt textinput.Model
	submit submitState
	runID  int64
	status string

	quitting    bool
	backToMenu  bool
	wantsScores bool
}

// NewGameModel creates a game model. player pre-fills the name prompt.
func NewGameModel(game registry.Game, services Services, cfg core.RuntimeConfig, player string) GameModel {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = maxPlayerNameLen
	ti.Prompt = "Name: "

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusBarHeight, 0)),
		services:   services,
		config:     cfg,
		fixedSeed:  fixed,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gen:        nextGeneration(),
		player:     player,
		prompt:     ti,
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submit == submitPrompt {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.keyMapper.MapMouse(msg) {
			m.inputFrame.Set(core.ActionFlap)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The world is resolution independent; only the buffer changes
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-statusBarHeight, 0))
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case submitResultMsg:
		return m.handleSubmitResult(msg)
	}

	if m.submit == submitPrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input outside the name prompt.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	playing := m.gameState.Phase == core.PhasePlaying && !m.gameState.Paused

	switch action {
	case core.ActionRestart:
		return m.restart()
	case core.ActionBack:
		if !playing {
			m.backToMenu = true
		}
		return m, nil
	case core.ActionScores:
		if !playing {
			m.wantsScores = true
		}
		return m, nil
	case core.ActionNone, core.ActionConfirm:
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handlePromptKey routes keys to the name prompt.
func (m GameModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.submit = submitSkipped
		m.prompt.Blur()
		m.status = "Submission skipped"
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.prompt.Value())
		if name == "" {
			m.status = "Name cannot be empty"
			return m, nil
		}
		m.player = name
		m.prompt.Blur()
		m.nameRun(name)
		if m.services.Leaderboard == nil {
			m.submit = submitDone
			m.status = "No leaderboard configured"
			if m.runID != 0 {
				m.status = "Saved locally"
			}
			return m, nil
		}
		m.submit = submitInFlight
		m.status = "Submitting..."
		return m, submitCmd(m.services.Leaderboard, m.gen, m.runID, name, m.gameState.Score)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// nameRun stores the confirmed name on the local record, whatever happens
// to the submission.
func (m GameModel) nameRun(name string) {
	if m.services.Store == nil || m.runID == 0 {
		return
	}
	if err := m.services.Store.RenameRun(m.runID, name); err != nil {
		m.services.logger().Warn("could not name run", "run", m.runID, "error", err)
	}
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	logger := m.services.logger()
	for _, ev := range result.Events {
		switch ev.Kind {
		case core.EventStarted:
			logger.Debug("run started", "mode", m.game.ID(), "seed", m.config.Seed)
		case core.EventScored:
			logger.Debug("scored", "mode", m.game.ID(), "score", ev.Score)
		case core.EventGameOver:
			logger.Info("game over", "mode", m.game.ID(), "score", ev.Score)
			return m.enterGameOver()
		}
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// enterGameOver records the run locally and opens the name prompt.
// The tick loop is not rescheduled.
func (m GameModel) enterGameOver() (tea.Model, tea.Cmd) {
	score := m.gameState.Score

	m.runID = 0
	if m.services.Store != nil && score > 0 {
		id, err := m.services.Store.SaveRun(m.player, m.game.ID(), score, false)
		if err != nil {
			m.services.logger().Warn("could not save run", "error", err)
		} else {
			m.runID = id
		}
	}

	m.submit = submitPrompt
	m.status = ""
	m.prompt.SetValue(m.player)
	m.prompt.CursorEnd()
	return m, m.prompt.Focus()
}

// handleSubmitResult shows the outcome and marks the local record.
func (m GameModel) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.submit = submitDone

	if msg.err != nil {
		var se *leaderboard.StatusError
		if errors.As(msg.err, &se) {
			m.status = fmt.Sprintf("Could not submit score (HTTP %d)", se.Status)
		} else {
			m.status = "Could not submit score"
		}
		return m, nil
	}

	m.status = "Score submitted"
	if msg.message != "" {
		m.status += ": " + msg.message
	}
	if m.services.Store != nil && msg.runID != 0 {
		if err := m.services.Store.MarkSubmitted(msg.runID, msg.name); err != nil {
			m.services.logger().Warn("could not mark run submitted", "run", msg.runID, "error", err)
		}
	}
	return m, nil
}

// restart resets the game in any phase and starts a fresh tick loop.
func (m GameModel) restart() (tea.Model, tea.Cmd) {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.inputFrame.Clear()
	m.submit = submitNone
	m.status = ""
	m.runID = 0
	m.prompt.Blur()
	m.gen = nextGeneration()
	return m, tickCmd(m.config.TickRate, m.gen)
}

func submitCmd(client *leaderboard.Client, gen int, runID int64, name string, score int) tea.Cmd {
	return func() tea.Msg {
		message, err := client.Submit(context.Background(), name, score)
		return submitResultMsg{gen: gen, runID: runID, name: name, message: message, err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.services.logger().Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.services.logger().Warn("could not save screenshot", "error", err)
		return
	}
	m.status = "Screenshot saved to " + path
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusBar()
}

func (m GameModel) statusBar() string {
	switch m.submit {
	case submitPrompt:
		hint := mutedStyle.Render("  enter submit · esc skip")
		if m.status != "" {
			hint = "  " + errorStyle.Render(m.status)
		}
		return m.prompt.View() + hint
	case submitInFlight:
		return mutedStyle.Render(m.status)
	case submitDone, submitSkipped:
		style := okStyle
		if strings.HasPrefix(m.status, "Could not") {
			style = errorStyle
		}
		return style.Render(m.status) + mutedStyle.Render("  ·  r restart · l leaderboard · b menu · q quit")
	}
	if m.status != "" {
		return mutedStyle.Render(m.status)
	}
	return mutedStyle.Render("space flap · p pause · r restart · b menu · q quit")
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Player returns the name the player last submitted under.
func (m GameModel) Player() string {
	return m.player
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsScores returns true if user asked for the leaderboard.
func (m GameModel) WantsScores() bool {
	return m.wantsScores
}

// resume clears pending navigation requests after the session returns to
// this model from another screen.
func (m *GameModel) resume() {
	m.backToMenu = false
	m.wantsScores = false
}
