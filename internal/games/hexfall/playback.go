package hexfall

import (
	"errors"
	"fmt"

	platformcore "github.com/nya3jp/icfpc2015/internal/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
)

// Playback animates a recorded solution one symbol at a time. It is driven
// by the platform tick loop and can be paused and stepped.
type Playback struct {
	problem   *problems.Problem
	seedIndex int
	solution  string
	every     int
	opts      options
	cfg       platformcore.RuntimeConfig

	engine  *core.Engine
	pos     int   // next symbol of solution
	marks   []int // pos before each applied symbol
	tick    int
	paused  bool
	message string
}

// NewPlayback creates a playback of solution on the seed at seedIndex of p,
// advancing one symbol every `every` ticks.
func NewPlayback(p *problems.Problem, seedIndex int, solution string, every int, opts ...Option) (*Playback, error) {
	if _, err := p.Setup(seedIndex); err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	pb := &Playback{
		problem:   p,
		seedIndex: seedIndex,
		solution:  solution,
		every:     max(every, 1),
		opts:      o,
		cfg:       o.config(),
	}
	if err := pb.start(); err != nil {
		return nil, err
	}
	return pb, nil
}

func (pb *Playback) start() error {
	var engineOpts []core.Option
	if pb.opts.onComplete != nil {
		engineOpts = append(engineOpts, core.WithCompletion(pb.opts.onComplete))
	}
	e, err := pb.problem.NewEngine(pb.seedIndex, engineOpts...)
	if err != nil {
		return err
	}
	pb.engine = e
	pb.pos = 0
	pb.marks = pb.marks[:0]
	pb.tick = 0
	pb.message = ""
	pb.notify()
	return nil
}

func (pb *Playback) notify() {
	for _, fn := range pb.opts.observers {
		fn(pb.engine)
	}
}

// ID returns the game identifier.
func (pb *Playback) ID() string {
	return "hexfall-playback"
}

// Title returns the problem and seed being replayed.
func (pb *Playback) Title() string {
	return fmt.Sprintf("Replay · problem %d · seed %d", pb.problem.ID, pb.engine.Seed())
}

// Engine returns the underlying engine.
func (pb *Playback) Engine() *core.Engine {
	return pb.engine
}

// Done reports whether no symbols are left to play.
func (pb *Playback) Done() bool {
	return pb.pos >= len(pb.solution)
}

// Reset replays from the beginning.
func (pb *Playback) Reset(cfg platformcore.RuntimeConfig) {
	pb.cfg = cfg
	if err := pb.start(); err != nil {
		pb.message = "restart failed: " + err.Error()
	}
}

// Step handles pause, single stepping and the automatic advance.
func (pb *Playback) Step(in platformcore.InputFrame) platformcore.StepResult {
	for _, a := range in.Actions {
		switch a {
		case platformcore.ActionRestart:
			pb.Reset(pb.cfg)
			return platformcore.StepResult{State: pb.State(), Message: pb.message}
		case platformcore.ActionPause:
			pb.paused = !pb.paused
		case platformcore.ActionMoveE:
			if pb.paused {
				pb.advance()
			}
		case platformcore.ActionMoveW, platformcore.ActionUndo:
			if pb.paused {
				pb.back()
			}
		case platformcore.ActionUndoAll:
			pb.Reset(pb.cfg)
			pb.paused = true
		}
	}

	if !pb.paused && !pb.Done() {
		pb.tick++
		if pb.tick%pb.every == 0 {
			pb.advance()
		}
	}
	return platformcore.StepResult{State: pb.State(), Message: pb.message}
}

// advance consumes symbols until one changes the engine or the solution
// runs out. Ignored and rejected symbols are skipped.
func (pb *Playback) advance() {
	for !pb.Done() {
		ch := pb.solution[pb.pos]
		pos := pb.pos
		pb.pos++
		if core.IsIgnored(ch) {
			continue
		}
		if pb.engine.Complete() {
			pb.message = fmt.Sprintf("symbol %d %q after game over", pos, ch)
			pb.pos = len(pb.solution)
			return
		}
		_, err := pb.engine.ApplySymbol(ch)
		switch {
		case errors.Is(err, core.ErrInvalidCommand):
			pb.message = fmt.Sprintf("symbol %d %q is not a command", pos, ch)
			continue
		case err != nil:
			pb.message = fmt.Sprintf("symbol %d %q: %v", pos, ch, err)
			continue
		}
		pb.marks = append(pb.marks, pos)
		pb.message = ""
		pb.notify()
		return
	}
}

// back undoes the last applied symbol.
func (pb *Playback) back() {
	if len(pb.marks) == 0 || pb.engine.Undo() != nil {
		return
	}
	pb.pos = pb.marks[len(pb.marks)-1]
	pb.marks = pb.marks[:len(pb.marks)-1]
	pb.message = ""
	pb.notify()
}

// PowerScore returns the phrase bonus of what has been played so far.
func (pb *Playback) PowerScore() int {
	if len(pb.opts.phrases) == 0 {
		return 0
	}
	return core.PowerScore(pb.engine.Solution(), pb.opts.phrases)
}

// State returns the platform view of the playback.
func (pb *Playback) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:    pb.engine.Score() + pb.PowerScore(),
		Moves:    pb.engine.Moves(),
		GameOver: pb.Done(),
		Paused:   pb.paused,
	}
	if pb.engine.Complete() {
		st.Reason = pb.engine.Reason().String()
	}
	return st
}

// Render draws the current frame of the replay.
func (pb *Playback) Render(dst *platformcore.Screen) {
	progress := fmt.Sprintf("Step %d/%d", pb.pos, len(pb.solution))
	if pb.paused {
		progress += " [paused]"
	}
	v := view{
		title:    pb.Title(),
		engine:   pb.engine,
		upcoming: pb.cfg.Upcoming,
		power:    pb.PowerScore(),
		progress: progress,
		message:  pb.message,
		controls: "space pause · → step · ← back · r replay · b back",
	}
	if pb.Done() {
		v.overlay = []string{
			"Replay finished",
			fmt.Sprintf("Score %d · %s", pb.State().Score, pb.engine.Reason()),
			"r replay · b back",
		}
	}
	v.render(dst)
}
