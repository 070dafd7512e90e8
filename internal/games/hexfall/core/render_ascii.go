package core

import (
	"fmt"
	"strings"
)

// RenderText draws the board with an optional active unit as text.
//
// Format:
//   - one line per row, cells separated by spaces
//   - odd rows indented by one space to show the hex offset
//   - '.' empty, '*' filled, '#' active member, '@' pivot on an empty cell
func RenderText(b *Board, active *Unit) string {
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		if y&1 == 1 {
			sb.WriteByte(' ')
		}
		for x := 0; x < b.Width(); x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(cellChar(b, active, C(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func cellChar(b *Board, active *Unit, c Cell) byte {
	if active != nil {
		if active.Contains(c) {
			return '#'
		}
		if active.Pivot == c && !b.Filled(c) {
			return '@'
		}
	}
	if b.Filled(c) {
		return '*'
	}
	return '.'
}

// RenderASCII renders the engine state with a one-line header.
func RenderASCII(e *Engine) string {
	var sb strings.Builder
	s := &e.state
	fmt.Fprintf(&sb, "Problem: %d | Seed: %d | Score: %d | Units: %d/%d | Phase: %s\n",
		e.setup.ProblemID, e.setup.Seed, s.Score, s.SourceIndex, len(e.sequence), s.Phase)
	sb.WriteString(RenderText(s.Board, s.Active))
	return sb.String()
}
