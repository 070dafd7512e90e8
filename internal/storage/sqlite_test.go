package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, e SolutionEntry) int64 {
	t.Helper()
	id, err := store.SaveSolution(e)
	if err != nil {
		t.Fatalf("SaveSolution() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndTopSolutions(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 0, Tag: "a", Solution: "pal", Score: 100})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 17, Tag: "a", Solution: "bal", Score: 50})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 0, Tag: "b", Solution: "ei!", Score: 406, PowerScore: 306, Reason: "exhausted"})
	mustSave(t, store, SolutionEntry{ProblemID: 2, Seed: 0, Tag: "a", Solution: "l", Score: 500})

	entries, err := store.TopSolutions(1, 10)
	if err != nil {
		t.Fatalf("TopSolutions() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 solutions, got %d", len(entries))
	}
	if entries[0].Score != 406 || entries[1].Score != 100 || entries[2].Score != 50 {
		t.Errorf("Solutions not sorted by score: %d, %d, %d", entries[0].Score, entries[1].Score, entries[2].Score)
	}
	if entries[0].Solution != "ei!" || entries[0].PowerScore != 306 || entries[0].Reason != "exhausted" {
		t.Errorf("Top entry = %+v", entries[0])
	}
	if entries[1].Reason != "none" {
		t.Errorf("Default reason = %q, expected %q", entries[1].Reason, "none")
	}
	if entries[2].Seed != 17 {
		t.Errorf("Seed = %d, expected 17", entries[2].Seed)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	limited, err := store.TopSolutions(1, 1)
	if err != nil {
		t.Fatalf("TopSolutions() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 solution with limit, got %d", len(limited))
	}
}

func TestStoreLargeSeed(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, SolutionEntry{ProblemID: 3, Seed: 4294967295, Tag: "x", Solution: "p", Score: 1})

	best, err := store.BestSolution(3, 4294967295)
	if err != nil {
		t.Fatalf("BestSolution() failed: %v", err)
	}
	if best == nil || best.Seed != 4294967295 {
		t.Errorf("BestSolution() = %+v, expected max uint32 seed", best)
	}
}

func TestStoreBestPerSeed(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 17, Tag: "a", Solution: "x1", Score: 10})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 17, Tag: "a", Solution: "x2", Score: 30})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 0, Tag: "a", Solution: "y1", Score: 20})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 0, Tag: "b", Solution: "y2", Score: 20})

	best, err := store.BestPerSeed(1)
	if err != nil {
		t.Fatalf("BestPerSeed() failed: %v", err)
	}
	if len(best) != 2 {
		t.Fatalf("Expected 2 seeds, got %d", len(best))
	}
	if best[0].Seed != 0 || best[0].Solution != "y1" {
		t.Errorf("Seed 0 best = %+v, expected earliest of the tie", best[0])
	}
	if best[1].Seed != 17 || best[1].Solution != "x2" {
		t.Errorf("Seed 17 best = %+v", best[1])
	}

	none, err := store.BestSolution(1, 99)
	if err != nil {
		t.Fatalf("BestSolution() failed: %v", err)
	}
	if none != nil {
		t.Errorf("BestSolution() for unknown seed = %+v, expected nil", none)
	}
}

func TestStoreSolutionsByTag(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, SolutionEntry{ProblemID: 2, Seed: 0, Tag: "run-1", Solution: "a", Score: 1})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 0, Tag: "run-1", Solution: "b", Score: 2})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 0, Tag: "run-2", Solution: "c", Score: 3})

	entries, err := store.SolutionsByTag("run-1")
	if err != nil {
		t.Fatalf("SolutionsByTag() failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ProblemID != 1 || entries[1].ProblemID != 2 {
		t.Errorf("SolutionsByTag() = %+v", entries)
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore(1)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected 0 for empty store, got %d", score)
	}

	mustSave(t, store, SolutionEntry{ProblemID: 1, Tag: "a", Solution: "p", Score: 100})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Tag: "a", Solution: "b", Score: 300})

	score, err = store.HighScore(1)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 300 {
		t.Errorf("Expected high score 300, got %d", score)
	}

	if err := store.ClearSolutions(1); err != nil {
		t.Fatalf("ClearSolutions() failed: %v", err)
	}
	entries, err := store.TopSolutions(1, 10)
	if err != nil {
		t.Fatalf("TopSolutions() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected 0 solutions after clear, got %d", len(entries))
	}
}

func TestStoreProblemStats(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 0, Tag: "a", Solution: "p", Score: 100})
	mustSave(t, store, SolutionEntry{ProblemID: 1, Seed: 17, Tag: "a", Solution: "b", Score: 300})
	mustSave(t, store, SolutionEntry{ProblemID: 4, Seed: 0, Tag: "a", Solution: "l", Score: 7})

	stats, err := store.GetProblemStats(1)
	if err != nil {
		t.Fatalf("GetProblemStats() failed: %v", err)
	}
	if stats.Solutions != 2 || stats.Seeds != 2 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("GetProblemStats() = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not parsed")
	}

	empty, err := store.GetProblemStats(9)
	if err != nil {
		t.Fatalf("GetProblemStats() failed: %v", err)
	}
	if empty.Solutions != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetProblemStats() for unplayed problem = %+v", empty)
	}

	all, err := store.GetAllProblemStats()
	if err != nil {
		t.Fatalf("GetAllProblemStats() failed: %v", err)
	}
	if len(all) != 2 || all[4] == nil || all[4].HighScore != 7 {
		t.Errorf("GetAllProblemStats() = %v", all)
	}
}
