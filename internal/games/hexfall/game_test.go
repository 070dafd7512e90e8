package hexfall

import (
	"strings"
	"testing"

	platformcore "github.com/nya3jp/icfpc2015/internal/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems/formats"
)

// funnelProblem is a 5x5 board whose bottom row is full except column 2,
// played with a single-cell unit.
func funnelProblem(length int) *problems.Problem {
	return &problems.Problem{Problem: formats.Problem{
		ID:           7,
		Width:        5,
		Height:       5,
		Filled:       []core.Cell{core.C(0, 4), core.C(1, 4), core.C(3, 4), core.C(4, 4)},
		Units:        []core.Unit{core.NewUnit(core.C(0, 0), core.C(0, 0))},
		SourceSeeds:  []uint32{0},
		SourceLength: length,
	}}
}

// dropSequence moves the spawned unit down the gap and locks it,
// clearing the bottom row.
var dropSequence = []platformcore.Action{
	platformcore.ActionMoveSE,
	platformcore.ActionMoveSW,
	platformcore.ActionMoveSE,
	platformcore.ActionMoveSW,
	platformcore.ActionMoveSE,
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func mustGame(t *testing.T, p *problems.Problem, opts ...Option) *Game {
	t.Helper()
	g, err := New(p, 0, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

func TestGameStepAppliesMovesInOrder(t *testing.T) {
	g := mustGame(t, funnelProblem(3))

	res := g.Step(frame(dropSequence...))

	if res.State.Score != 101 {
		t.Errorf("Score = %d, expected 101", res.State.Score)
	}
	if res.State.Moves != 5 {
		t.Errorf("Moves = %d, expected 5", res.State.Moves)
	}
	if res.State.GameOver {
		t.Error("game should continue with units left")
	}
	if got := g.Engine().Solution(); got != "lalal" {
		t.Errorf("Solution() = %q, expected lalal", got)
	}
}

func TestGameRejectsRedundantMove(t *testing.T) {
	g := mustGame(t, funnelProblem(3))

	res := g.Step(frame(platformcore.ActionMoveE, platformcore.ActionMoveW))

	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", res.State.Moves)
	}
	if !strings.Contains(res.Message, "revisit") {
		t.Errorf("Message = %q, expected a revisit warning", res.Message)
	}
}

func TestGameUndoRedo(t *testing.T) {
	g := mustGame(t, funnelProblem(3))
	g.Step(frame(dropSequence...))

	res := g.Step(frame(platformcore.ActionUndo))
	if res.State.Score != 0 || res.State.Moves != 4 {
		t.Errorf("after undo: score %d moves %d, expected 0 and 4", res.State.Score, res.State.Moves)
	}

	res = g.Step(frame(platformcore.ActionRedo))
	if res.State.Score != 101 || res.State.Moves != 5 {
		t.Errorf("after redo: score %d moves %d, expected 101 and 5", res.State.Score, res.State.Moves)
	}

	res = g.Step(frame(platformcore.ActionUndoAll))
	if res.State.Moves != 0 || res.Message != "rewound 5 moves" {
		t.Errorf("after rewind: moves %d message %q", res.State.Moves, res.Message)
	}

	res = g.Step(frame(platformcore.ActionRedo, platformcore.ActionRestart))
	if res.State.Moves != 0 || g.Engine().CanRedo() {
		t.Error("restart should discard history")
	}
}

func TestGameCompletionReportedOnce(t *testing.T) {
	var results []core.Result
	g := mustGame(t, funnelProblem(1), WithCompletion(func(r core.Result) {
		results = append(results, r)
	}))

	res := g.Step(frame(dropSequence...))
	if !res.State.GameOver || res.State.Reason != "exhausted" {
		t.Fatalf("state = %+v, expected exhausted game over", res.State)
	}

	g.Step(frame(platformcore.ActionUndo))
	g.Step(frame(platformcore.ActionMoveSE))

	if len(results) != 1 {
		t.Fatalf("completion called %d times, expected 1", len(results))
	}
	if results[0].Score != 101 || results[0].Solution != "lalal" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestGameObserversAndPhrases(t *testing.T) {
	calls := 0
	g := mustGame(t, funnelProblem(3),
		WithObserver(func(*core.Engine) { calls++ }),
		WithPhrases([]string{"la"}),
	)
	if calls != 1 {
		t.Errorf("observer calls after New = %d, expected 1", calls)
	}

	res := g.Step(frame(dropSequence...))
	if calls != 2 {
		t.Errorf("observer calls after one step = %d, expected 2", calls)
	}
	// "lalal" holds "la" twice: 2*2*2 + 300.
	if g.PowerScore() != 308 || res.State.Score != 101+308 {
		t.Errorf("PowerScore() = %d, score = %d", g.PowerScore(), res.State.Score)
	}

	g.Step(frame(platformcore.ActionConfirm))
	if calls != 2 {
		t.Error("observers should not run when nothing changed")
	}
}

func TestGameRender(t *testing.T) {
	g := mustGame(t, funnelProblem(3))
	g.Reset(platformcore.DefaultConfig())

	s := platformcore.NewScreen(80, 24)
	g.Render(s)

	if !strings.Contains(s.Row(0), "Problem 7") {
		t.Errorf("title row = %q", s.Row(0))
	}
	if !strings.Contains(s.Row(1), "Left 2") {
		t.Errorf("status row = %q", s.Row(1))
	}
	// Board starts at (1, 4); the unit spawns at (2, 0) and is its own pivot.
	if c := s.GetCell(1+2*2, hudHeight+1); c.Rune != glyphCenter {
		t.Errorf("spawn cell = %+v, expected pivot member glyph", c)
	}
	// Row 4 is even so its first cell sits right after the border.
	if c := s.GetCell(1, hudHeight+1+4); c.Rune != glyphFilled || c.Color != platformcore.ColorBlue {
		t.Errorf("filled cell = %+v", c)
	}

	small := platformcore.NewScreen(20, 8)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Errorf("small screen = %q", small.String())
	}
}

func TestNewRejectsBadSeedIndex(t *testing.T) {
	if _, err := New(funnelProblem(3), 4); err == nil {
		t.Error("New() with seed index out of range expected error")
	}
}

func TestResetReportsFailure(t *testing.T) {
	p := funnelProblem(3)
	g := mustGame(t, p)
	g.Step(frame(platformcore.ActionMoveSE))
	before := g.Engine()

	p.SourceSeeds = nil
	res := g.Step(frame(platformcore.ActionRestart))

	if !strings.Contains(res.Message, "restart failed") {
		t.Errorf("Message = %q, expected a restart failure", res.Message)
	}
	if g.Engine() != before || g.Engine().Moves() != 1 {
		t.Error("failed restart should keep the running game")
	}
}
