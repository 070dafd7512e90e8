// Package hexfall adapts the hexfall engine to the platform Game contract so
// the terminal front end can play and replay problems.
package hexfall

import (
	"errors"
	"fmt"

	platformcore "github.com/nya3jp/icfpc2015/internal/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
)

// Observer is notified after every change to the engine.
type Observer func(e *core.Engine)

// Option configures a Game or a Playback.
type Option func(*options)

type options struct {
	observers  []Observer
	onComplete func(core.Result)
	phrases    []string
	cfg        *platformcore.RuntimeConfig
}

// WithConfig sets the runtime config used before the first Reset.
func WithConfig(cfg platformcore.RuntimeConfig) Option {
	return func(o *options) {
		o.cfg = &cfg
	}
}

// WithObserver adds fn to the observers notified on every state change.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, fn)
	}
}

// WithCompletion registers fn to be called each time a game ends with a
// solution that has not been reported yet.
func WithCompletion(fn func(core.Result)) Option {
	return func(o *options) {
		o.onComplete = fn
	}
}

// WithPhrases enables phrase-of-power scoring in the displayed score.
func WithPhrases(phrases []string) Option {
	return func(o *options) {
		o.phrases = phrases
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) config() platformcore.RuntimeConfig {
	if o.cfg != nil {
		return *o.cfg
	}
	return platformcore.DefaultConfig()
}

var actionCommands = map[platformcore.Action]core.Command{
	platformcore.ActionMoveW:     core.CmdW,
	platformcore.ActionMoveE:     core.CmdE,
	platformcore.ActionMoveSW:    core.CmdSW,
	platformcore.ActionMoveSE:    core.CmdSE,
	platformcore.ActionRotateCW:  core.CmdCW,
	platformcore.ActionRotateCCW: core.CmdCCW,
}

// CommandFor returns the engine command bound to a movement action.
func CommandFor(a platformcore.Action) (core.Command, bool) {
	cmd, ok := actionCommands[a]
	return cmd, ok
}

// Game is an interactive hexfall session on one (problem, seed) pair.
type Game struct {
	problem   *problems.Problem
	seedIndex int
	opts      options
	cfg       platformcore.RuntimeConfig

	engine   *core.Engine
	message  string
	reported map[string]bool
}

// New creates a game for the seed at seedIndex of p.
func New(p *problems.Problem, seedIndex int, opts ...Option) (*Game, error) {
	if _, err := p.Setup(seedIndex); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	g := &Game{
		problem:   p,
		seedIndex: seedIndex,
		opts:      o,
		cfg:       o.config(),
	}
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) start() error {
	// The engine may report completion while it is being built.
	g.reported = make(map[string]bool)
	e, err := g.problem.NewEngine(g.seedIndex, core.WithCompletion(g.complete))
	if err != nil {
		return err
	}
	g.message = ""
	g.engine = e
	g.notify()
	return nil
}

func (g *Game) complete(res core.Result) {
	if g.reported[res.Solution] {
		return
	}
	g.reported[res.Solution] = true
	if g.opts.onComplete != nil {
		g.opts.onComplete(res)
	}
}

func (g *Game) notify() {
	for _, fn := range g.opts.observers {
		fn(g.engine)
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "hexfall"
}

// Title returns the problem and seed being played.
func (g *Game) Title() string {
	return fmt.Sprintf("Problem %d · seed %d", g.problem.ID, g.engine.Seed())
}

// Engine returns the underlying engine.
func (g *Game) Engine() *core.Engine {
	return g.engine
}

// Reset starts the same problem and seed over.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.cfg = cfg
	if err := g.start(); err != nil {
		g.message = "restart failed: " + err.Error()
	}
}

// Step applies the actions of one tick in order.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	changed := false
	for _, a := range in.Actions {
		switch {
		case a == platformcore.ActionRestart:
			g.Reset(g.cfg)
			if g.message == "" {
				g.message = "restarted"
			}
			return platformcore.StepResult{State: g.State(), Message: g.message}
		case a.IsMove():
			cmd, _ := CommandFor(a)
			out, err := g.engine.Apply(cmd)
			g.message = describe(cmd, out, err)
			changed = changed || err == nil
		case a == platformcore.ActionUndo:
			if err := g.engine.Undo(); err != nil {
				g.message = "nothing to undo"
			} else {
				g.message = "undone"
				changed = true
			}
		case a == platformcore.ActionRedo:
			if err := g.engine.Redo(); err != nil {
				g.message = "nothing to redo"
			} else {
				g.message = "redone"
				changed = true
			}
		case a == platformcore.ActionUndoAll:
			n := g.engine.UndoAll()
			g.message = fmt.Sprintf("rewound %d moves", n)
			changed = changed || n > 0
		}
	}
	if changed {
		g.notify()
	}
	return platformcore.StepResult{State: g.State(), Message: g.message}
}

func describe(cmd core.Command, out core.Outcome, err error) string {
	switch {
	case errors.Is(err, core.ErrRedundantMove):
		return fmt.Sprintf("%s would revisit a position", cmd)
	case errors.Is(err, core.ErrGameOver):
		return "game over, undo or restart"
	case err != nil:
		return err.Error()
	case out == core.OutcomeLocked:
		return "unit locked"
	default:
		return ""
	}
}

// PowerScore returns the phrase bonus of the current solution.
func (g *Game) PowerScore() int {
	if len(g.opts.phrases) == 0 {
		return 0
	}
	return core.PowerScore(g.engine.Solution(), g.opts.phrases)
}

// State returns the platform view of the game.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:    g.engine.Score() + g.PowerScore(),
		Moves:    g.engine.Moves(),
		GameOver: g.engine.Complete(),
	}
	if st.GameOver {
		st.Reason = g.engine.Reason().String()
	}
	return st
}

// Render draws the board, the side panel and the status line.
func (g *Game) Render(dst *platformcore.Screen) {
	v := view{
		title:    g.Title(),
		engine:   g.engine,
		upcoming: g.cfg.Upcoming,
		power:    g.PowerScore(),
		message:  g.message,
		controls: "←/a →/d z x move · w e rotate · u undo · ^r redo · home rewind · b back",
	}
	if g.engine.Complete() {
		v.overlay = []string{
			fmt.Sprintf("Game over: %s", g.engine.Reason()),
			fmt.Sprintf("Score %d", g.State().Score),
			"u undo · r restart · b back",
		}
	}
	v.render(dst)
}
