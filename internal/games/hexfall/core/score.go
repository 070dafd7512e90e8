package core

import "strings"

// DefaultPhrases are the phrases of power recognized when phrase scoring is on.
var DefaultPhrases = []string{"ei!", "r'lyeh", "yuggoth", "ia! ia!", "necronomicon"}

// MoveScore returns the points for locking a unit of the given size that
// cleared ls rows, when the previous lock cleared lsOld rows.
func MoveScore(size, ls, lsOld int) int {
	points := size + 100*(1+ls)*ls/2
	lineBonus := 0
	if lsOld > 1 {
		lineBonus = (lsOld - 1) * points / 10
	}
	return points + lineBonus
}

// PhraseCount returns how many times phrase occurs in solution,
// counting overlapping occurrences.
func PhraseCount(solution, phrase string) int {
	if phrase == "" {
		return 0
	}
	reps := 0
	for pos := 0; ; pos++ {
		i := strings.Index(solution[pos:], phrase)
		if i < 0 {
			return reps
		}
		reps++
		pos += i
	}
}

// PowerScore returns the bonus for phrases of power in solution. Each phrase
// scores twice its length per occurrence, plus 300 if it occurs at all.
func PowerScore(solution string, phrases []string) int {
	total := 0
	for _, p := range phrases {
		reps := PhraseCount(solution, p)
		if reps > 0 {
			total += 2*len(p)*reps + 300
		}
	}
	return total
}
