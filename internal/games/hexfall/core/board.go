package core

import (
	"fmt"
	"hash/fnv"
)

// Board is the fixed-size hex grid of filled and empty cells.
//
// Rows are copy-on-write: a row slice is never modified once created, every
// write replaces the row with a fresh copy. Clone therefore only copies the
// row headers, and snapshots taken for undo share all unchanged rows.
type Board struct {
	width  int
	height int
	rows   [][]bool
	empty  []bool // shared all-empty row
}

// NewBoard creates a width x height board with the given cells pre-filled.
// Out-of-bounds cells are ignored.
func NewBoard(width, height int, filled []Cell) *Board {
	b := &Board{
		width:  width,
		height: height,
		rows:   make([][]bool, height),
		empty:  make([]bool, width),
	}
	for y := range b.rows {
		b.rows[y] = b.empty
	}
	for _, c := range filled {
		b.set(c, true)
	}
	return b
}

// Width returns the number of columns.
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows.
func (b *Board) Height() int {
	return b.height
}

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// Filled reports whether c is filled. Out-of-bounds cells are never filled.
func (b *Board) Filled(c Cell) bool {
	if !b.InBounds(c) {
		return false
	}
	return b.rows[c.Y][c.X]
}

func (b *Board) set(c Cell, v bool) {
	if !b.InBounds(c) || b.rows[c.Y][c.X] == v {
		return
	}
	row := make([]bool, b.width)
	copy(row, b.rows[c.Y])
	row[c.X] = v
	b.rows[c.Y] = row
}

// Valid reports whether every member of u is in bounds and unfilled.
// The pivot is not checked.
func (b *Board) Valid(u Unit) bool {
	for _, m := range u.Members {
		if !b.InBounds(m) || b.rows[m.Y][m.X] {
			return false
		}
	}
	return true
}

// Place fills the cells of u, and its pivot when includePivot is set.
// Out-of-bounds cells are ignored.
func (b *Board) Place(u Unit, includePivot bool) {
	for _, m := range u.Members {
		b.set(m, true)
	}
	if includePivot {
		b.set(u.Pivot, true)
	}
}

// RowFull reports whether every cell in row y is filled.
func (b *Board) RowFull(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, v := range b.rows[y] {
		if !v {
			return false
		}
	}
	return true
}

// ClearFullRows removes full rows, shifting the rows above them down and
// inserting empty rows at the top. When candidates are given only those rows
// are checked; otherwise every row is. It returns the number of rows cleared.
func (b *Board) ClearFullRows(candidates ...int) int {
	full := make(map[int]bool)
	if len(candidates) == 0 {
		for y := 0; y < b.height; y++ {
			if b.RowFull(y) {
				full[y] = true
			}
		}
	} else {
		for _, y := range candidates {
			if b.RowFull(y) {
				full[y] = true
			}
		}
	}
	if len(full) == 0 {
		return 0
	}

	rows := make([][]bool, b.height)
	dst := b.height - 1
	for y := b.height - 1; y >= 0; y-- {
		if full[y] {
			continue
		}
		rows[dst] = b.rows[y]
		dst--
	}
	for ; dst >= 0; dst-- {
		rows[dst] = b.empty
	}
	b.rows = rows
	return len(full)
}

// Clone returns an independent copy of the board. Row storage is shared.
func (b *Board) Clone() *Board {
	rows := make([][]bool, len(b.rows))
	copy(rows, b.rows)
	return &Board{
		width:  b.width,
		height: b.height,
		rows:   rows,
		empty:  b.empty,
	}
}

// Equal reports whether two boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for y := range b.rows {
		for x := range b.rows[y] {
			if b.rows[y][x] != other.rows[y][x] {
				return false
			}
		}
	}
	return true
}

// FilledCount returns the number of filled cells.
func (b *Board) FilledCount() int {
	n := 0
	for _, row := range b.rows {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Rows returns a copy of the board contents, one slice per row, top first.
func (b *Board) Rows() [][]bool {
	out := make([][]bool, len(b.rows))
	for y, row := range b.rows {
		out[y] = append([]bool(nil), row...)
	}
	return out
}

// FilledCells returns all filled cells in row-major order.
func (b *Board) FilledCells() []Cell {
	var cells []Cell
	for y, row := range b.rows {
		for x, v := range row {
			if v {
				cells = append(cells, C(x, y))
			}
		}
	}
	return cells
}

// Hash returns a fingerprint of the board contents.
func (b *Board) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%dx%d;", b.width, b.height)
	for _, row := range b.rows {
		for _, v := range row {
			if v {
				h.Write([]byte{'1'})
			} else {
				h.Write([]byte{'0'})
			}
		}
	}
	return h.Sum64()
}
