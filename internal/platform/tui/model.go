package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nya3jp/icfpc2015/internal/core"
	hexcore "github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

const submitTimeout = 30 * time.Second

// submittedMsg reports the outcome of a background submission.
type submittedMsg struct {
	res hexcore.Result
	err error
}

// GameModel runs one game: it maps keys to actions, steps the game on every
// tick and submits finished games in the background.
type GameModel struct {
	game       core.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	done       *Completions
	submit     SubmitFunc
	player     string
	status     string
	statusErr  bool
	quitting   bool
	backToMenu bool
	quitOnBack bool
	gen        uint64
}

// NewGameModel creates a model for game. Finished games queued on done are
// passed to submit; both may be nil.
func NewGameModel(game core.Game, cfg core.RuntimeConfig, done *Completions, submit SubmitFunc, player string) GameModel {
	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keyMapper:  NewKeyMapper(),
		done:       done,
		submit:     submit,
		player:     player,
		gen:        nextTickGen(),
	}
}

// Init starts the tick loop. The game is already running.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case submittedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("submit failed: %v", msg.err)
			m.statusErr = true
		} else {
			m.status = fmt.Sprintf("submitted %s points (%d moves)",
				humanize.Comma(int64(msg.res.Score)), len(msg.res.Solution))
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
		return m, nil
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleTick steps the game and starts submissions for finished games.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.gen)}
	if m.done != nil {
		for _, res := range m.done.Drain() {
			cmds = append(cmds, m.submitCmd(res))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m GameModel) submitCmd(res hexcore.Result) tea.Cmd {
	if m.submit == nil {
		return nil
	}
	submit, player := m.submit, m.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		return submittedMsg{res: res, err: submit(ctx, res, player)}
	}
}

// saveScreenshot writes the current screen as text to ~/.hexfall/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed: no home directory"
		return
	}
	dir := filepath.Join(home, ".hexfall", "screenshots")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405")))
	if err := os.MkdirAll(dir, 0o755); err == nil {
		err = os.WriteFile(path, []byte(m.screen.String()), 0o600)
	}
	if err != nil {
		m.status = fmt.Sprintf("screenshot failed: %v", err)
		return
	}
	m.status = "screenshot saved to " + path
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	color := core.ColorGreen
	if m.statusErr {
		color = core.ColorBrightRed
	}
	drawStatus(m.screen, m.status, color)
	return RenderScreen(m.screen)
}

// State returns the game state seen at the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// RunGame runs a single game until the user quits or goes back.
func RunGame(game core.Game, cfg core.RuntimeConfig, done *Completions, submit SubmitFunc, player string) error {
	model := NewGameModel(game, cfg, done, submit, player)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	// Games finished after the last tick are submitted here.
	if m, ok := final.(GameModel); ok && m.done != nil && submit != nil {
		for _, res := range m.done.Drain() {
			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			err := submit(ctx, res, player)
			cancel()
			if err != nil {
				return err
			}
		}
	}
	return nil
}
