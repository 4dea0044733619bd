package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/platform/logging"
	"github.com/vovakirdan/tapcricket/internal/registry"
	"github.com/vovakirdan/tapcricket/internal/storage"
)

// ScoreSaver records finished games. *storage.Store implements it.
type ScoreSaver interface {
	SaveMatchScore(gameID, matchID string, score int) (int64, error)
}

// matchIdentifier is implemented by games that tag each match with an id.
type matchIdentifier interface {
	MatchID() string
}

// NewGame creates a registered game wired to the store and logger. A nil
// store leaves the game on in-memory persistence.
func NewGame(id string, store *storage.Store, logger *log.Logger) (registry.Game, error) {
	svc := registry.Services{Logger: logger}
	if store != nil {
		svc.Store = store
	}
	return registry.CreateWith(id, svc)
}

// GameModel runs one game: it maps keys into an input frame, steps the game
// on every tick and saves the score once per game over.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	scores     ScoreSaver
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // Back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	scoreSaved bool
}

// NewGameModel creates a model for game. scores may be nil.
func NewGameModel(game registry.Game, scores ScoreSaver, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		scores:     scores,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		// Games lay themselves out from the screen size, so a resize
		// never restarts the match.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	}
	return m, nil
}

// handleTick steps the game with the keys gathered since the last tick.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	// Save score once per game over
	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}
	return m, tickCmd(m.config.TickRate)
}

func (m GameModel) saveScore() {
	if m.scores == nil || m.gameState.Score <= 0 {
		return
	}
	matchID := ""
	if mi, ok := m.game.(matchIdentifier); ok {
		matchID = mi.MatchID()
	}
	if _, err := m.scores.SaveMatchScore(m.game.ID(), matchID, m.gameState.Score); err != nil {
		m.logger.Error("cannot save score", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot writes the current frame as plain text under
// ~/.tapcricket/screenshots.
func (m GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".tapcricket", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "err", err)
		return
	}

	// Render current frame
	m.screen.Clear()
	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting reports whether the user asked to exit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked for the game picker.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the alternate screen until the user quits.
func Run(game registry.Game, scores ScoreSaver, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, scores, cfg, logger)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
