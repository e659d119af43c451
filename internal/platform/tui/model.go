package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
	"github.com/vovakirdan/arcade-classics/internal/replay"
	"github.com/vovakirdan/arcade-classics/internal/storage"
)

// GameModel is the Bubble Tea model that runs one game.
// Its lifecycle follows core.Phase: rounds end in GameOver, R restarts,
// Q exits from any phase.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       GameKeyMap
	inputFrame core.InputFrame
	gameState  core.GameState
	phase      core.Phase
	recorder   *replay.Recorder
	backToMenu bool
	quitOnBack bool  // Standalone program: leaving the game ends it
	lastReplay int64 // ID of the last saved replay, 0 if none
	tickID     int64
}

// NewGameModel creates a model and starts the first round.
// store and logger may be nil.
func NewGameModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger.With("game", game.ID()),
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		inputFrame: core.NewInputFrame(),
		phase:      core.PhasePlaying,
		tickID:     nextTickID(),
	}
	m.startRound()
	return m
}

// startRound resets the game with a fresh seed unless one was given.
func (m *GameModel) startRound() {
	if m.config.Seed == 0 {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.game.Render(m.screen)
	m.recorder = replay.NewRecorder(m.game, m.config)
	m.inputFrame.Clear()
	m.logger.Debug("round started", "seed", m.config.Seed)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.tickID, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.phase == core.PhasePlaying {
			MapMouseToFrame(msg, &m.inputFrame)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.finishRound()
		m.phase = core.Transition(m.phase, core.EventQuit)
		return m, tea.Quit

	case core.ActionBack:
		m.finishRound()
		m.phase = core.Transition(m.phase, core.EventQuit)
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionRestart:
		if m.phase == core.PhaseGameOver {
			m.restart()
			return m, nil
		}
	}

	if m.phase == core.PhasePlaying {
		m.keys.MapKeyToFrame(msg, &m.inputFrame)
	}
	return m, nil
}

// restart walks GameOver -> Restarting -> Playing.
func (m *GameModel) restart() {
	m.phase = core.Transition(m.phase, core.EventRestart)
	if m.phase != core.PhaseRestarting {
		return
	}
	m.config.Seed = 0
	m.startRound()
	m.phase = core.Transition(m.phase, core.EventRestarted)
	m.logger.Info("restarted")
}

// handleResize processes window resize events.
// The round keeps running; games lay themselves out at render time.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Render(m.screen)
	if m.phase == core.PhasePlaying {
		m.recorder.Resize(msg.Width, msg.Height)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.phase == core.PhaseExiting {
		return m, nil
	}

	if m.phase == core.PhasePlaying {
		m.recorder.Record(m.inputFrame)
		m.gameState = m.game.Step(m.inputFrame).State
		m.game.Render(m.screen)

		if m.gameState.GameOver {
			m.phase = core.Transition(m.phase, core.EventGameEnded)
			m.logger.Info("game over", "result", m.gameState.Result, "score", m.gameState.Score)
			m.finishRound()
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.tickID, m.config.TickRate)
}

// finishRound saves the replay of the current round once. Rounds quit
// before the first tick are not worth keeping.
func (m *GameModel) finishRound() {
	if m.recorder == nil {
		return
	}
	rec := m.recorder.Finish(m.gameState)
	m.recorder = nil

	if m.store == nil || rec.Ticks == 0 {
		return
	}
	id, err := m.store.SaveReplay(rec)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.lastReplay = id
	m.logger.Info("replay saved", "id", id, "outcome", rec.Outcome, "ticks", rec.Ticks)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.phase == core.PhaseExiting {
		return ""
	}
	return RenderScreen(m.screen)
}

// Phase returns the session phase.
func (m GameModel) Phase() core.Phase {
	return m.phase
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.phase == core.PhaseExiting && !m.backToMenu
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastReplay returns the ID of the most recently saved replay, or 0.
func (m GameModel) LastReplay() int64 {
	return m.lastReplay
}

// Run starts a Bubble Tea program for a single game.
// It returns true if the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, store, logger, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Clicks place marks in Tic-Tac-Toe
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(GameModel); ok {
		return m.BackToMenu(), nil
	}
	return false, nil
}
