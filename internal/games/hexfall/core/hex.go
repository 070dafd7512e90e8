// Package core implements the deterministic hexfall simulation: hex geometry,
// the seeded unit sequence, the board, units, scoring and the game engine.
// It has no UI or I/O dependencies so it can be driven by the TUI, the replay
// command and tests alike.
package core

import "fmt"

// Cell is a position on the board in offset hex coordinates.
// X is the column and Y the row. Odd rows are shifted right by half a cell.
type Cell struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Less orders cells by row, then by column.
func (c Cell) Less(other Cell) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Direction is one of the four movement directions.
type Direction int

const (
	DirW Direction = iota
	DirE
	DirSW
	DirSE
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirW:
		return "W"
	case DirE:
		return "E"
	case DirSW:
		return "SW"
	case DirSE:
		return "SE"
	default:
		return "?"
	}
}

// Rotation is a clockwise or counter-clockwise turn by 60 degrees.
type Rotation int

const (
	RotCW Rotation = iota
	RotCCW
)

// String returns the rotation name.
func (r Rotation) String() string {
	if r == RotCW {
		return "CW"
	}
	return "CCW"
}

// Step returns the neighbouring cell in direction d.
// Diagonal steps depend on the parity of the source row.
func (c Cell) Step(d Direction) Cell {
	odd := c.Y&1 == 1
	switch d {
	case DirW:
		return Cell{X: c.X - 1, Y: c.Y}
	case DirE:
		return Cell{X: c.X + 1, Y: c.Y}
	case DirSW:
		if odd {
			return Cell{X: c.X, Y: c.Y + 1}
		}
		return Cell{X: c.X - 1, Y: c.Y + 1}
	case DirSE:
		if odd {
			return Cell{X: c.X + 1, Y: c.Y + 1}
		}
		return Cell{X: c.X, Y: c.Y + 1}
	}
	return c
}

// cube holds cube coordinates (x + y + z == 0).
type cube struct {
	x, y, z int
}

// toCube converts offset coordinates to cube coordinates.
// The y&1 form keeps the half-row correction exact for negative rows.
func (c Cell) toCube() cube {
	x := c.X - (c.Y-(c.Y&1))/2
	z := c.Y
	return cube{x: x, y: -x - z, z: z}
}

func (q cube) toCell() Cell {
	return Cell{X: q.x + (q.z-(q.z&1))/2, Y: q.z}
}

// RotateClockwise rotates the cell by 60 degrees clockwise around (0,0).
func (c Cell) RotateClockwise() Cell {
	q := c.toCube()
	return cube{x: -q.z, y: -q.x, z: -q.y}.toCell()
}

// RotateCounterClockwise rotates the cell by 60 degrees counter-clockwise around (0,0).
func (c Cell) RotateCounterClockwise() Cell {
	q := c.toCube()
	return cube{x: -q.y, y: -q.z, z: -q.x}.toCell()
}

// Rotate rotates the cell around (0,0).
func (c Cell) Rotate(r Rotation) Cell {
	if r == RotCW {
		return c.RotateClockwise()
	}
	return c.RotateCounterClockwise()
}

// TranslateToOrigin expresses c relative to origin, so that origin maps to (0,0).
// When origin sits on an odd row, odd target rows lose the half-cell shift.
func (c Cell) TranslateToOrigin(origin Cell) Cell {
	moved := Cell{X: c.X - origin.X, Y: c.Y - origin.Y}
	moved.X -= (origin.Y & moved.Y) & 1
	return moved
}

// TranslateFromOrigin is the inverse of TranslateToOrigin: it maps a cell
// relative to (0,0) back to a cell relative to origin.
func (c Cell) TranslateFromOrigin(origin Cell) Cell {
	moved := Cell{X: c.X + origin.X, Y: c.Y + origin.Y}
	moved.X += (origin.Y & c.Y) & 1
	return moved
}

// RotateAround rotates c by 60 degrees around origin.
func (c Cell) RotateAround(origin Cell, r Rotation) Cell {
	return c.TranslateToOrigin(origin).Rotate(r).TranslateFromOrigin(origin)
}
