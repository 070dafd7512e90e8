package core

import (
	"fmt"
	"maps"
	"slices"
)

// Phase is the lifecycle stage of a game.
type Phase int

const (
	PhaseAwaitingSpawn Phase = iota
	PhaseUnitActive
	PhaseLocking
	PhaseCleared
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingSpawn:
		return "awaiting_spawn"
	case PhaseUnitActive:
		return "unit_active"
	case PhaseLocking:
		return "locking"
	case PhaseCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// EndReason says why a game reached PhaseCleared.
type EndReason int

const (
	EndNone EndReason = iota
	EndExhausted
	EndConflict
)

// String returns the reason name.
func (r EndReason) String() string {
	switch r {
	case EndExhausted:
		return "exhausted"
	case EndConflict:
		return "conflict"
	default:
		return "none"
	}
}

// Err returns the sentinel error matching the reason, or nil.
func (r EndReason) Err() error {
	switch r {
	case EndExhausted:
		return ErrSequenceExhausted
	case EndConflict:
		return ErrSpawnConflict
	default:
		return nil
	}
}

// Outcome is the effect of a command.
type Outcome int

const (
	OutcomeRejected Outcome = iota // no state change
	OutcomeMoved                   // active unit moved or rotated
	OutcomeLocked                  // active unit locked, next unit spawned
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeLocked:
		return "locked"
	default:
		return "rejected"
	}
}

// Setup describes one game: the board, the unit templates and the seeded
// source sequence.
type Setup struct {
	ProblemID    int
	Width        int
	Height       int
	Filled       []Cell
	Units        []Unit
	Seed         uint32
	SourceLength int
}

func (s Setup) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrMalformedProblem, s.Width, s.Height)
	}
	if len(s.Units) == 0 {
		return fmt.Errorf("%w: no units", ErrMalformedProblem)
	}
	for i, u := range s.Units {
		if len(u.Members) == 0 {
			return fmt.Errorf("%w: unit %d has no members", ErrMalformedProblem, i)
		}
	}
	if s.SourceLength < 0 {
		return fmt.Errorf("%w: negative source length %d", ErrMalformedProblem, s.SourceLength)
	}
	for _, c := range s.Filled {
		if c.X < 0 || c.X >= s.Width || c.Y < 0 || c.Y >= s.Height {
			return fmt.Errorf("%w: filled cell %v out of bounds", ErrMalformedProblem, c)
		}
	}
	return nil
}

// State is the complete mutable state of a game at one point in time.
type State struct {
	Board        *Board
	Active       *Unit // nil when no unit is in play
	SourceIndex  int   // number of units taken from the sequence
	Score        int
	LinesLast    int // rows cleared by the previous lock
	Locked       int
	LinesCleared int
	Phase        Phase
	Reason       EndReason

	history *history
	visited map[Key]struct{}
}

func (s *State) clone() State {
	c := *s
	c.Board = s.Board.Clone()
	if s.Active != nil {
		u := s.Active.Clone()
		c.Active = &u
	}
	c.visited = maps.Clone(s.visited)
	return c
}

// Result summarizes a game for submission.
type Result struct {
	ProblemID    int
	Seed         uint32
	Score        int
	Solution     string
	Reason       EndReason
	Locked       int
	LinesCleared int
}

// Option configures an Engine.
type Option func(*Engine)

// WithCompletion registers fn to be called whenever the game reaches
// PhaseCleared.
func WithCompletion(fn func(Result)) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// Engine runs one game for a (problem, seed) pair. It is not safe for
// concurrent use; each session owns its own engine.
type Engine struct {
	setup      Setup
	templates  []Unit
	sequence   []int
	state      State
	undo       snapshots
	redo       snapshots
	onComplete func(Result)
}

// NewEngine validates setup, builds the board and spawns the first unit.
func NewEngine(setup Setup, opts ...Option) (*Engine, error) {
	if err := setup.validate(); err != nil {
		return nil, err
	}
	templates := make([]Unit, len(setup.Units))
	for i, u := range setup.Units {
		templates[i] = u.Clone()
	}
	setup.Units = templates
	setup.Filled = slices.Clone(setup.Filled)

	e := &Engine{
		setup:     setup,
		templates: templates,
		sequence:  Sequence(len(templates), setup.Seed, setup.SourceLength),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = State{
		Board: NewBoard(setup.Width, setup.Height, setup.Filled),
		Phase: PhaseAwaitingSpawn,
	}
	e.spawn()
	return e, nil
}

// spawn takes the next unit from the sequence and places it at the top.
func (e *Engine) spawn() {
	s := &e.state
	s.Phase = PhaseAwaitingSpawn
	s.Active = nil
	if s.SourceIndex >= len(e.sequence) {
		e.finish(EndExhausted)
		return
	}
	t := e.templates[e.sequence[s.SourceIndex]]
	s.SourceIndex++
	u := SpawnPosition(t, s.Board.Width())
	if !s.Board.Valid(u) {
		e.finish(EndConflict)
		return
	}
	s.Active = &u
	s.visited = map[Key]struct{}{u.Key(): {}}
	s.Phase = PhaseUnitActive
}

func (e *Engine) finish(reason EndReason) {
	s := &e.state
	s.Phase = PhaseCleared
	s.Reason = reason
	s.Active = nil
	s.visited = nil
	if e.onComplete != nil {
		e.onComplete(e.Result())
	}
}

// lock fills the active unit into the board, clears rows, scores and spawns.
func (e *Engine) lock() {
	s := &e.state
	u := *s.Active
	s.Phase = PhaseLocking
	s.Board.Place(u, false)
	ls := s.Board.ClearFullRows(u.Rows()...)
	s.Score += MoveScore(u.Size(), ls, s.LinesLast)
	s.LinesLast = ls
	s.Locked++
	s.LinesCleared += ls
	e.spawn()
}

// evaluate determines what cmd would do without changing anything.
func (e *Engine) evaluate(cmd Command) (Outcome, Unit, error) {
	if cmd < CmdW || cmd > CmdCCW {
		return OutcomeRejected, Unit{}, fmt.Errorf("%w: %d", ErrInvalidCommand, cmd)
	}
	s := &e.state
	if s.Phase == PhaseCleared || s.Active == nil {
		if err := s.Reason.Err(); err != nil {
			return OutcomeRejected, Unit{}, fmt.Errorf("%w: %w", ErrGameOver, err)
		}
		return OutcomeRejected, Unit{}, ErrGameOver
	}
	next := s.Active.Apply(cmd)
	if _, seen := s.visited[next.Key()]; seen {
		return OutcomeRejected, Unit{}, fmt.Errorf("%w: %s", ErrRedundantMove, cmd)
	}
	if !s.Board.Valid(next) {
		return OutcomeLocked, next, nil
	}
	return OutcomeMoved, next, nil
}

// Peek reports the outcome cmd would have without applying it.
func (e *Engine) Peek(cmd Command) (Outcome, error) {
	out, _, err := e.evaluate(cmd)
	return out, err
}

// Apply executes cmd and records its representative symbol.
func (e *Engine) Apply(cmd Command) (Outcome, error) {
	return e.apply(cmd, cmd.Symbol())
}

// ApplySymbol decodes ch and executes it, recording ch itself so that
// phrases in the input survive into the solution string.
func (e *Engine) ApplySymbol(ch byte) (Outcome, error) {
	cmd, ok := ParseCommand(ch)
	if !ok {
		return OutcomeRejected, fmt.Errorf("%w: %q", ErrInvalidCommand, ch)
	}
	return e.apply(cmd, ch)
}

func (e *Engine) apply(cmd Command, symbol byte) (Outcome, error) {
	out, next, err := e.evaluate(cmd)
	if err != nil {
		return out, err
	}
	e.undo.push(e.state.clone())
	e.redo = nil

	s := &e.state
	s.history = s.history.push(symbol)
	if out == OutcomeLocked {
		e.lock()
		return out, nil
	}
	s.Active = &next
	s.visited[next.Key()] = struct{}{}
	return out, nil
}

// Undo restores the state before the last applied command.
func (e *Engine) Undo() error {
	prev, ok := e.undo.pop()
	if !ok {
		return ErrNothingToUndo
	}
	e.redo.push(e.state)
	e.state = prev
	return nil
}

// Redo reapplies the most recently undone command.
func (e *Engine) Redo() error {
	next, ok := e.redo.pop()
	if !ok {
		return ErrNothingToRedo
	}
	e.undo.push(e.state)
	e.state = next
	return nil
}

// UndoAll rewinds to the state right after setup. Every rewound state goes
// onto the redo stack. It returns the number of commands undone.
func (e *Engine) UndoAll() int {
	n := 0
	for e.Undo() == nil {
		n++
	}
	return n
}

// CanUndo reports whether Undo would succeed.
func (e *Engine) CanUndo() bool {
	return len(e.undo) > 0
}

// CanRedo reports whether Redo would succeed.
func (e *Engine) CanRedo() bool {
	return len(e.redo) > 0
}

// Complete reports whether the game has ended.
func (e *Engine) Complete() bool {
	return e.state.Phase == PhaseCleared
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// Reason returns why the game ended, or EndNone.
func (e *Engine) Reason() EndReason {
	return e.state.Reason
}

// Score returns the accumulated move score.
func (e *Engine) Score() int {
	return e.state.Score
}

// Solution returns the applied command symbols as a string.
func (e *Engine) Solution() string {
	return e.state.history.String()
}

// Moves returns the number of applied commands.
func (e *Engine) Moves() int {
	return e.state.history.len()
}

// Active returns a copy of the active unit.
func (e *Engine) Active() (Unit, bool) {
	if e.state.Active == nil {
		return Unit{}, false
	}
	return e.state.Active.Clone(), true
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	return e.state.Board.Clone()
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state.clone()
}

// ProblemID returns the problem the engine was built for.
func (e *Engine) ProblemID() int {
	return e.setup.ProblemID
}

// Seed returns the seed of the source sequence.
func (e *Engine) Seed() uint32 {
	return e.setup.Seed
}

// Sequence returns the unit indices of the source sequence.
func (e *Engine) Sequence() []int {
	return slices.Clone(e.sequence)
}

// Remaining returns how many units are still to be spawned.
func (e *Engine) Remaining() int {
	return len(e.sequence) - e.state.SourceIndex
}

// Upcoming returns up to n templates that will spawn next.
func (e *Engine) Upcoming(n int) []Unit {
	start := e.state.SourceIndex
	end := min(start+n, len(e.sequence))
	if start >= end {
		return nil
	}
	units := make([]Unit, 0, end-start)
	for _, idx := range e.sequence[start:end] {
		units = append(units, e.templates[idx].Clone())
	}
	return units
}

// Result returns the summary of the game so far.
func (e *Engine) Result() Result {
	s := &e.state
	return Result{
		ProblemID:    e.setup.ProblemID,
		Seed:         e.setup.Seed,
		Score:        s.Score,
		Solution:     s.history.String(),
		Reason:       s.Reason,
		Locked:       s.Locked,
		LinesCleared: s.LinesCleared,
	}
}
