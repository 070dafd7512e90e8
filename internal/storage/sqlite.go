// Package storage provides SQLite-based persistence for hexfall solutions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for solution persistence.
type Store struct {
	db *sql.DB
}

// SolutionEntry is one stored solution with its scores.
type SolutionEntry struct {
	ID         int64
	ProblemID  int
	Seed       uint32
	Tag        string
	Solution   string
	Score      int    // move score plus power score
	PowerScore int    // phrase bonus included in Score
	Reason     string // why the game ended, "none" if it did not
	CreatedAt  time.Time
}

// ProblemStats contains aggregated statistics for a problem.
type ProblemStats struct {
	ProblemID  int
	Solutions  int
	Seeds      int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS solutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			problem_id INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			tag TEXT NOT NULL,
			solution TEXT NOT NULL,
			score INTEGER NOT NULL,
			power_score INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT 'none',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solutions_problem ON solutions(problem_id);
		CREATE INDEX IF NOT EXISTS idx_solutions_top ON solutions(problem_id, seed, score DESC);
		CREATE INDEX IF NOT EXISTS idx_solutions_tag ON solutions(tag);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSolution records a solution. Returns the ID of the inserted record.
func (s *Store) SaveSolution(e SolutionEntry) (int64, error) {
	reason := e.Reason
	if reason == "" {
		reason = "none"
	}
	result, err := s.db.Exec(
		`INSERT INTO solutions (problem_id, seed, tag, solution, score, power_score, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ProblemID, int64(e.Seed), e.Tag, e.Solution, e.Score, e.PowerScore, reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solution: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const solutionColumns = `id, problem_id, seed, tag, solution, score, power_score, end_reason, created_at`

// TopSolutions retrieves the top N solutions for a problem across all seeds.
// Results are ordered by score descending.
func (s *Store) TopSolutions(problemID int, limit int) ([]SolutionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySolutions(
		`SELECT `+solutionColumns+`
		 FROM solutions
		 WHERE problem_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		problemID, limit,
	)
}

// SolutionsByTag retrieves every solution stored under tag.
func (s *Store) SolutionsByTag(tag string) ([]SolutionEntry, error) {
	return s.querySolutions(
		`SELECT `+solutionColumns+`
		 FROM solutions
		 WHERE tag = ?
		 ORDER BY problem_id, seed, id`,
		tag,
	)
}

// BestPerSeed returns the highest scoring solution for every seed of a
// problem, ordered by seed. Ties keep the earliest solution.
func (s *Store) BestPerSeed(problemID int) ([]SolutionEntry, error) {
	return s.querySolutions(
		`SELECT `+solutionColumns+`
		 FROM solutions AS a
		 WHERE problem_id = ?
		   AND id = (
		     SELECT b.id FROM solutions AS b
		     WHERE b.problem_id = a.problem_id AND b.seed = a.seed
		     ORDER BY b.score DESC, b.id ASC
		     LIMIT 1
		   )
		 ORDER BY seed`,
		problemID,
	)
}

// BestSolution returns the highest scoring solution for a problem and seed,
// or nil if none is stored.
func (s *Store) BestSolution(problemID int, seed uint32) (*SolutionEntry, error) {
	entries, err := s.querySolutions(
		`SELECT `+solutionColumns+`
		 FROM solutions
		 WHERE problem_id = ? AND seed = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		problemID, int64(seed),
	)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func (s *Store) querySolutions(query string, args ...any) ([]SolutionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solutions: %w", err)
	}
	defer rows.Close()

	var entries []SolutionEntry
	for rows.Next() {
		var e SolutionEntry
		var seed int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.ProblemID, &seed, &e.Tag, &e.Solution,
			&e.Score, &e.PowerScore, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Seed = uint32(seed)
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given problem.
// Returns 0 if no solutions exist.
func (s *Store) HighScore(problemID int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM solutions WHERE problem_id = ?",
		problemID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearSolutions deletes all solutions for the given problem.
func (s *Store) ClearSolutions(problemID int) error {
	_, err := s.db.Exec("DELETE FROM solutions WHERE problem_id = ?", problemID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear solutions: %w", err)
	}
	return nil
}

// GetProblemStats retrieves aggregated statistics for a specific problem.
func (s *Store) GetProblemStats(problemID int) (*ProblemStats, error) {
	stats := &ProblemStats{ProblemID: problemID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT seed), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		 FROM solutions WHERE problem_id = ?`,
		problemID,
	).Scan(&stats.Solutions, &stats.Seeds, &stats.HighScore, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get problem stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM solutions WHERE problem_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		problemID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTimestamp(lastPlayed)
	}

	return stats, nil
}

// GetAllProblemStats retrieves statistics for every problem with solutions.
func (s *Store) GetAllProblemStats() (map[int]*ProblemStats, error) {
	rows, err := s.db.Query(
		`SELECT problem_id, COUNT(*), COUNT(DISTINCT seed), MAX(score), AVG(score), MAX(created_at)
		 FROM solutions
		 GROUP BY problem_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all problem stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]*ProblemStats)
	for rows.Next() {
		var ps ProblemStats
		var lastPlayed any
		if err := rows.Scan(&ps.ProblemID, &ps.Solutions, &ps.Seeds, &ps.HighScore, &ps.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTimestamp(lastPlayed)
		stats[ps.ProblemID] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTimestamp handles the driver returning either time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
