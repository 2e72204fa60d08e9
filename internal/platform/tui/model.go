package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
)

// Model is the Bubble Tea model for running a game session.
type Model struct {
	session *breakout.Session
	screen  *core.Screen
	surface *CellSurface
	config  core.RuntimeConfig
	keys    KeyMap
	held    *heldKeys
	pending []core.Event // Events queued since the last tick
	logger  *log.Logger

	gameState core.GameState
	quitting  bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(session *breakout.Session, game config.BreakoutConfig, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = game.Window.FPS
	}
	if logger == nil {
		logger = log.Default()
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	return Model{
		session: session,
		screen:  screen,
		surface: NewCellSurface(screen, float64(game.Window.Width), float64(game.Window.Height)),
		config:  cfg,
		keys:    DefaultKeyMap(),
		held:    newHeldKeys(),
		logger:  logger,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.session.Reset(m.config)
	m.logger.Debug("session started", "seed", m.config.Seed, "fps", m.config.TickRate)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Coordinates are logical, so a resize only rescales the view
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey queues the key's events for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	events := m.held.Filter(m.keys.Events(msg), time.Now())
	m.pending = append(m.pending, events...)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	events := append(m.pending, m.held.Expire(now)...)
	m.pending = nil

	result := m.session.Step(events)
	m.gameState = result.State

	if result.Err != nil {
		m.logger.Error("score store failed", "error", result.Err)
	}
	if result.Events.Has(core.FrameGameOver) {
		m.logger.Info("game over", "score", result.State.Score, "level", result.State.Level, "won", m.session.Won())
	}
	if result.Events.Has(core.FrameLevelClear) {
		m.logger.Debug("level cleared", "level", result.State.Level)
	}

	if result.State.Terminated {
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.surface)

	dir := config.UserPath("screenshots")
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("breakout_%s.txt", timestamp))
	if err := os.WriteFile(path, screenshotText(m.screen), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// screenshotText returns the screen as plain text without trailing blanks.
func screenshotText(screen *core.Screen) []byte {
	var sb strings.Builder
	for y := 0; y < screen.Height(); y++ {
		sb.WriteString(strings.TrimRight(screen.Row(y), " "))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.surface)
	return RenderScreen(m.screen)
}

// State returns the session state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given session.
func Run(session *breakout.Session, game config.BreakoutConfig, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(session, game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
