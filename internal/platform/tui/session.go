package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nya3jp/icfpc2015/internal/core"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full session flow: menu, game or replay,
// scoreboard and back. It is the top-level model for both local and SSH
// sessions.
type SessionModel struct {
	env        Env
	config     core.RuntimeConfig
	player     string
	current    sessionScreen
	menu       MenuModel
	game       *GameModel
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session for player.
func NewSessionModel(env Env, player string) SessionModel {
	return SessionModel{
		env:    env,
		config: env.Config,
		player: player,
		menu:   NewMenuModel(env),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) envWithConfig() Env {
	env := m.env
	env.Config = m.config
	return env
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.menu.width = wsm.Width
		m.menu.height = wsm.Height
	}

	// Results of submissions started by a game that has since been left.
	if sm, ok := msg.(submittedMsg); ok && m.current != screenGame {
		if sm.err != nil {
			m.menu.message = fmt.Sprintf("submit failed: %v", sm.err)
		} else {
			m.menu.message = fmt.Sprintf("submitted %s points", humanize.Comma(int64(sm.res.Score)))
		}
		return m, nil
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.envWithConfig())
		m.scoreboard = &sb
		m.current = screenScoreboard
		m.menu.openScoreboard = false
		return m, sb.Init()

	case m.menu.Selected() != nil:
		return m.startSelected()
	}

	return m, cmd
}

// startSelected builds a game or replay for the menu selection.
func (m SessionModel) startSelected() (tea.Model, tea.Cmd) {
	item := *m.menu.Selected()
	replay := m.menu.WantsReplay()
	m.menu.selected = nil
	m.menu.replay = false

	env := m.envWithConfig()
	var (
		game core.Game
		done *Completions
		err  error
	)
	if replay {
		best, _ := item.Best()
		game, err = env.NewPlayback(item.Problem, item.SeedIndex, best.Solution)
	} else {
		done = &Completions{}
		game, err = env.NewGame(item.Problem, item.SeedIndex, done)
	}
	if err != nil {
		m.menu.message = err.Error()
		return m, nil
	}

	gm := NewGameModel(game, m.config, done, env.Submit, m.player)
	m.game = &gm
	m.current = screenGame
	return m, gm.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.current = screenMenu
		m.menu = NewMenuModel(m.envWithConfig())
		return m, tea.Batch(cmd, m.menu.Init())
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.current = screenMenu
		return m, nil
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs a full menu session in the local terminal.
func RunSession(env Env, player string) error {
	_, err := tea.NewProgram(NewSessionModel(env, player), tea.WithAltScreen()).Run()
	return err
}
