package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/portalhop/internal/config"
	"github.com/vovakirdan/portalhop/internal/core"
	"github.com/vovakirdan/portalhop/internal/registry"
)

// ConfigChangedMsg reports a write to a watched config file.
type ConfigChangedMsg struct {
	Path string
}

// watcherClosedMsg is sent once the watcher's event channel closes.
type watcherClosedMsg struct{}

// Options tunes the play model. Zero values pick defaults.
type Options struct {
	// HoldWindow keeps left/right held after the last key event.
	HoldWindow time.Duration
	// Watcher, when set, triggers Reload on config writes.
	Watcher *config.Watcher
	// Reload applies a changed config to the running game.
	Reload func(game registry.Game) error
	// ScreenshotDir is where ctrl+s writes text screenshots.
	ScreenshotDir string
	Logger        *log.Logger
	// Now replaces time.Now for hold tracking.
	Now func() time.Time
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	mapper     *KeyMapper
	help       help.Model
	hold       *holdTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	opts       Options
	logger     *log.Logger
	showHelp   bool
	quitting   bool
	lastShot   string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	def := core.DefaultConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = filepath.Join(os.Getenv("HOME"), ".portalhop", "screenshots")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		mapper:     NewKeyMapper(),
		help:       h,
		hold:       newHoldTracker(opts.HoldWindow),
		inputFrame: core.NewInputFrame(),
		opts:       opts,
		logger:     logger,
	}
}

// Init starts the game, the tick loop and the config watch.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate), waitForConfig(m.opts.Watcher))
}

// waitForConfig blocks on the next watcher event.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-w.Events
		if !ok {
			return watcherClosedMsg{}
		}
		return ConfigChangedMsg{Path: path}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ConfigChangedMsg:
		m.reloadConfig(msg.Path)
		return m, waitForConfig(m.opts.Watcher)

	case watcherClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.mapper.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m.resizeScreen(), nil
	}

	action := m.mapper.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case IsHeld(action):
		m.hold.Press(action, m.opts.Now())
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize follows the terminal size. Games that can resize in place
// keep their session; others restart.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	return m.resizeScreen(), nil
}

func (m Model) resizeScreen() Model {
	w, h := m.config.ScreenW, m.playHeight()
	m.screen.Resize(w, h)
	if !registry.Resize(m.game, w, h) {
		cfg := m.config
		cfg.ScreenH = h
		m.game.Reset(cfg)
	}
	return m
}

// playHeight is the screen height left for the game below the help bar.
func (m Model) playHeight() int {
	if !m.showHelp {
		return m.config.ScreenH
	}
	return max(0, m.config.ScreenH-lipgloss.Height(m.help.View(m.mapper.Keys())))
}

// handleTick runs one simulation step with the held and latched actions.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if now.IsZero() {
		now = m.opts.Now()
	}
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight} {
		if m.hold.Active(a, now) {
			m.inputFrame.Set(a)
		}
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.gameState.Paused {
		m.hold.ReleaseAll()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// reloadConfig applies a changed config file to the running game.
func (m Model) reloadConfig(path string) {
	if m.opts.Reload == nil {
		return
	}
	if err := m.opts.Reload(m.game); err != nil {
		m.logger.Warn("config reload failed", "path", path, "error", err)
		return
	}
	m.logger.Info("config reloaded", "path", path)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	path, err := writeScreenshot(m.opts.ScreenshotDir, m.game.ID(), m.opts.Now(), m.screen)
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.lastShot = path
	m.logger.Info("screenshot saved", "path", path)
}

func writeScreenshot(dir, id string, now time.Time, s *core.Screen) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot dir: %w", err)
	}
	name := fmt.Sprintf("%s_%s.txt", id, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(s.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// GameState returns the state after the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// LastScreenshot returns the path of the last saved screenshot.
func (m Model) LastScreenshot() string {
	return m.lastShot
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.showHelp {
		out += "\n" + helpStyle.Render(m.help.View(m.mapper.Keys()))
	}
	return out
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
