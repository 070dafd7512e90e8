package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall"
	hexcore "github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
	"github.com/nya3jp/icfpc2015/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "hexfall.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// storeEnv returns an env whose submissions are saved to store.
func storeEnv(store *storage.Store) Env {
	return Env{
		Problems: []problems.Problem{funnelProblem()},
		Store:    store,
		Config:   testConfig(),
		Submit: func(_ context.Context, res hexcore.Result, player string) error {
			_, err := store.SaveSolution(storage.SolutionEntry{
				ProblemID: res.ProblemID,
				Seed:      res.Seed,
				Tag:       player,
				Solution:  res.Solution,
				Score:     res.Score,
				Reason:    res.Reason.String(),
			})
			return err
		},
		PlaybackEvery: 1,
	}
}

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected SessionModel", next)
	}
	return sm, cmd
}

func TestSessionPlayAndReturnToMenu(t *testing.T) {
	store := openTestStore(t)
	m := NewSessionModel(storeEnv(store), "bob")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.current != screenGame {
		t.Fatalf("current = %v, expected the game screen", m.current)
	}
	if _, ok := m.game.game.(*hexfall.Game); !ok {
		t.Fatalf("game = %T, expected *hexfall.Game", m.game.game)
	}

	for _, k := range dropKeys {
		m, _ = updateSession(t, m, k)
		var cmd tea.Cmd
		m, cmd = updateSession(t, m, TickMsg{Gen: m.game.gen})
		for _, msg := range runCmd(cmd) {
			if sm, ok := msg.(submittedMsg); ok {
				m, _ = updateSession(t, m, sm)
			}
		}
	}
	if !strings.Contains(m.game.status, "submitted 101 points") {
		t.Errorf("status = %q, expected the submission", m.game.status)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Fatalf("current = %v, expected the menu after back", m.current)
	}
	best, ok := m.menu.items[0].Best()
	if !ok {
		t.Fatal("Best() found nothing, expected the stored solution")
	}
	if best.Score != 101 || best.Tag != "bob" {
		t.Errorf("Best() = %+v, expected score 101 tagged bob", best)
	}
}

func TestSessionSeedSelection(t *testing.T) {
	m := NewSessionModel(storeEnv(openTestStore(t)), "bob")

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.menu.items[0].Seed(); got != 17 {
		t.Errorf("Seed() = %d, expected 17 (the last seed)", got)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	g := m.game.game.(*hexfall.Game)
	if g.Engine().Seed() != 17 {
		t.Errorf("engine seed = %d, expected 17", g.Engine().Seed())
	}
}

func TestSessionReplayNeedsStoredSolution(t *testing.T) {
	store := openTestStore(t)
	m := NewSessionModel(storeEnv(store), "bob")

	m, _ = updateSession(t, m, runeKey("v"))
	if m.current != screenMenu {
		t.Fatalf("current = %v, expected to stay on the menu", m.current)
	}
	if m.menu.message != "no stored solution for this seed" {
		t.Errorf("message = %q", m.menu.message)
	}

	if _, err := store.SaveSolution(storage.SolutionEntry{ProblemID: 7, Seed: 0, Solution: "lalal", Score: 101}); err != nil {
		t.Fatalf("SaveSolution() error = %v", err)
	}
	m = NewSessionModel(storeEnv(store), "bob")
	m, _ = updateSession(t, m, runeKey("v"))
	if m.current != screenGame {
		t.Fatalf("current = %v, expected the replay", m.current)
	}
	pb, ok := m.game.game.(*hexfall.Playback)
	if !ok {
		t.Fatalf("game = %T, expected *hexfall.Playback", m.game.game)
	}

	for i := 0; i < 5 && !pb.Done(); i++ {
		m, _ = updateSession(t, m, TickMsg{Gen: m.game.gen})
	}
	if !pb.Done() {
		t.Error("Done() = false, expected the replay to finish")
	}
	if m.game.State().Score != 101 {
		t.Errorf("Score = %d, expected 101", m.game.State().Score)
	}
}

func TestSessionScoreboard(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveSolution(storage.SolutionEntry{ProblemID: 7, Seed: 17, Solution: "lalal", Score: 1234, Tag: "run"}); err != nil {
		t.Fatalf("SaveSolution() error = %v", err)
	}
	m := NewSessionModel(storeEnv(store), "bob")

	m, _ = updateSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.current != screenScoreboard {
		t.Fatalf("current = %v, expected the scoreboard", m.current)
	}
	view := m.View()
	for _, want := range []string{"Problem 7", "1,234"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() does not contain %q:\n%s", want, view)
		}
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.current != screenMenu {
		t.Errorf("current = %v, expected the menu", m.current)
	}

	m, cmd := updateSession(t, m, runeKey("q"))
	if !m.quitting {
		t.Error("quitting = false, expected true")
	}
	if _, ok := runCmd(cmd)[0].(tea.QuitMsg); !ok {
		t.Error("quit did not stop the program")
	}
}
