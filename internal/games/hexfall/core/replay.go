package core

import (
	"errors"
	"fmt"
)

// ReplayOptions controls Replay.
type ReplayOptions struct {
	// Strict makes any error fatal: unknown characters, redundant moves and
	// commands issued after the game ended. A failed strict replay scores 0.
	Strict bool
	// Phrases enables phrase scoring when non-empty.
	Phrases []string
	// Trace, if set, is called after every character is processed.
	Trace func(step int, ch byte, out Outcome, err error)
}

// ReplayResult is the outcome of replaying a solution string.
type ReplayResult struct {
	MoveScore  int
	PowerScore int
	Score      int // MoveScore + PowerScore, or 0 after a strict failure
	Applied    int // characters that moved or locked a unit
	Skipped    int // characters ignored or rejected
	Complete   bool
	Reason     EndReason
	Err        error
}

// Replay feeds solution into e one character at a time.
func Replay(e *Engine, solution string, opts ReplayOptions) ReplayResult {
	var res ReplayResult
	for i := 0; i < len(solution); i++ {
		ch := solution[i]
		if e.Complete() && opts.Strict {
			res.Err = fmt.Errorf("step %d: %w: trailing input %q", i, ErrGameOver, solution[i:])
			break
		}
		if IsIgnored(ch) {
			res.Skipped++
			if opts.Trace != nil {
				opts.Trace(i, ch, OutcomeRejected, nil)
			}
			continue
		}
		out, err := e.ApplySymbol(ch)
		if opts.Trace != nil {
			opts.Trace(i, ch, out, err)
		}
		if err != nil {
			res.Skipped++
			if opts.Strict {
				res.Err = fmt.Errorf("step %d: %w", i, err)
				break
			}
			continue
		}
		res.Applied++
	}

	res.Complete = e.Complete()
	res.Reason = e.Reason()
	if res.Err != nil {
		return res
	}
	res.MoveScore = e.Score()
	if len(opts.Phrases) > 0 {
		res.PowerScore = PowerScore(solution, opts.Phrases)
	}
	res.Score = res.MoveScore + res.PowerScore
	return res
}

// Failed reports whether the replay hit a strict error.
func (r ReplayResult) Failed() bool {
	return r.Err != nil
}

// Redundant reports whether the replay failed on a redundant move.
func (r ReplayResult) Redundant() bool {
	return errors.Is(r.Err, ErrRedundantMove)
}
