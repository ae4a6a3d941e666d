package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/registry"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

// HoldFrames is how long a movement or fire key stays pressed after its
// last key event. Terminals report presses and repeats, never releases.
const HoldFrames = 8

// Resulter is implemented by stages that can summarize a run for storage.
type Resulter interface {
	RunRecord() storage.Run
}

// Model is the Bubble Tea model for running a stage.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	config   core.RuntimeConfig
	keys     KeyMap
	mapper   *KeyMapper
	help     help.Model
	held     map[core.Action]int // remaining frames per held action
	oneShot  core.InputFrame     // pause and restart, cleared every tick
	autoFire bool

	gameState core.GameState
	quitting  bool
	runSaved  bool // Whether the run has been saved for the current completion
}

// NewModel creates a new Bubble Tea model for the given stage.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	keys := DefaultKeyMap()
	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-1), // last row is the help bar
		store:   store,
		logger:  logger,
		config:  cfg,
		keys:    keys,
		mapper:  NewKeyMapper(keys),
		help:    help.New(),
		held:    make(map[core.Action]int),
		oneShot: core.NewInputFrame(),
	}
}

// Init starts the tick loop. The stage is already reset by its factory.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.mapper.IsAutoFire(msg) {
		m.autoFire = !m.autoFire
		return m, nil
	}

	switch a := m.mapper.MapKey(msg); a {
	case core.ActionQuit:
		m.quitting = true
		m.saveRun()
		return m, tea.Quit
	case core.ActionPause, core.ActionRestart:
		m.oneShot.Set(a)
	case core.ActionNone:
	default:
		m.held[a] = HoldFrames
	}
	return m, nil
}

// frameInput merges held keys, autofire and one-shot actions.
func (m *Model) frameInput() core.InputFrame {
	in := core.NewInputFrame()
	for a, frames := range m.held {
		if frames <= 0 {
			delete(m.held, a)
			continue
		}
		in.Set(a)
		m.held[a] = frames - 1
	}
	if m.autoFire {
		in.Set(core.ActionFire)
	}
	for a := range m.oneShot.Actions {
		in.Set(a)
	}
	return in
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.frameInput()
	m.oneShot.Clear()

	if in.Has(core.ActionRestart) && m.gameState.GameOver {
		if err := m.game.Reset(m.config); err != nil {
			m.logger.Error("restart failed", "err", err)
			m.quitting = true
			return m, tea.Quit
		}
		m.gameState = m.game.State()
		m.runSaved = false
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(in)
	m.gameState = result.State

	if m.gameState.GameOver {
		m.saveRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current run once per completion.
func (m *Model) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}
	m.runSaved = true

	r, ok := m.game.(Resulter)
	if !ok {
		return
	}
	run := r.RunRecord()
	if run.Frames == 0 {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("cannot save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".shmup", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, the stage continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	status := m.help.View(m.keys)
	if m.autoFire {
		status = "[autofire] " + status
	}
	return RenderScreen(m.screen) + "\n" + status
}

// Run starts the Bubble Tea program for a stage.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
