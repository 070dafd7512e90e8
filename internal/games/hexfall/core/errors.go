package core

import "errors"

var (
	// ErrMalformedProblem is returned when a problem cannot be turned into a game.
	ErrMalformedProblem = errors.New("malformed problem")
	// ErrSpawnConflict reports that a newly spawned unit overlapped the board.
	ErrSpawnConflict = errors.New("spawn conflict")
	// ErrInvalidCommand is returned for a character outside the command alphabet.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrRedundantMove is returned when a command would revisit a position
	// the active unit already occupied.
	ErrRedundantMove = errors.New("redundant move")
	// ErrSequenceExhausted reports that every unit in the source sequence was used.
	ErrSequenceExhausted = errors.New("sequence exhausted")
	// ErrGameOver is returned for commands issued after the game ended.
	ErrGameOver = errors.New("game over")
	// ErrNothingToUndo is returned by Undo when no snapshot is available.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when no snapshot is available.
	ErrNothingToRedo = errors.New("nothing to redo")
)
