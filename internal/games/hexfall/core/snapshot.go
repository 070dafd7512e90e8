package core

import (
	"fmt"
	"hash/fnv"
)

// Snapshot is an immutable, serializable view of an engine. Renderers and
// spectators consume snapshots instead of touching the engine.
type Snapshot struct {
	ProblemID    int    `json:"problemId"`
	Seed         uint32 `json:"seed"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Filled       []Cell `json:"filled"`
	Active       *Unit  `json:"active,omitempty"`
	Upcoming     []Unit `json:"upcoming,omitempty"`
	Phase        string `json:"phase"`
	Reason       string `json:"reason"`
	Score        int    `json:"score"`
	LinesLast    int    `json:"linesLast"`
	LinesCleared int    `json:"linesCleared"`
	Locked       int    `json:"locked"`
	SourceIndex  int    `json:"sourceIndex"`
	SourceLength int    `json:"sourceLength"`
	Moves        int    `json:"moves"`
	Solution     string `json:"solution"`
	Fingerprint  uint64 `json:"fingerprint"`
}

// Snapshot captures the current state. upcoming limits how many queued
// templates are included.
func (e *Engine) Snapshot(upcoming int) Snapshot {
	s := &e.state
	snap := Snapshot{
		ProblemID:    e.setup.ProblemID,
		Seed:         e.setup.Seed,
		Width:        s.Board.Width(),
		Height:       s.Board.Height(),
		Filled:       s.Board.FilledCells(),
		Upcoming:     e.Upcoming(upcoming),
		Phase:        s.Phase.String(),
		Reason:       s.Reason.String(),
		Score:        s.Score,
		LinesLast:    s.LinesLast,
		LinesCleared: s.LinesCleared,
		Locked:       s.Locked,
		SourceIndex:  s.SourceIndex,
		SourceLength: len(e.sequence),
		Moves:        s.history.len(),
		Solution:     s.history.String(),
		Fingerprint:  e.Fingerprint(),
	}
	if s.Active != nil {
		u := s.Active.Clone()
		snap.Active = &u
	}
	return snap
}

// Fingerprint returns a hash of the board, active unit, score and
// sequence position. Equal games have equal fingerprints.
func (e *Engine) Fingerprint() uint64 {
	s := &e.state
	h := fnv.New64a()
	fmt.Fprintf(h, "B:%d;", s.Board.Hash())
	if s.Active != nil {
		fmt.Fprintf(h, "A:%d;", s.Active.Hash())
	}
	fmt.Fprintf(h, "S:%d:%d:%d;P:%d:%d", s.Score, s.LinesLast, s.SourceIndex, s.Phase, s.Reason)
	return h.Sum64()
}
