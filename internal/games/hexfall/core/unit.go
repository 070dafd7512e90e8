package core

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
)

// Unit is a cluster of member cells with a pivot used as the rotation center.
// The pivot need not be a member and may lie outside the board.
// Units are values; every transform returns a fresh copy.
type Unit struct {
	Members []Cell `json:"members" yaml:"members"`
	Pivot   Cell   `json:"pivot" yaml:"pivot"`
}

// Key is a canonical identity for a unit position: sorted members plus pivot.
// Two units with the same member set and pivot share a key regardless of
// member order.
type Key string

// NewUnit creates a unit, copying members.
func NewUnit(pivot Cell, members ...Cell) Unit {
	return Unit{Members: slices.Clone(members), Pivot: pivot}
}

// Size returns the number of member cells.
func (u Unit) Size() int {
	return len(u.Members)
}

// Clone returns a deep copy of the unit.
func (u Unit) Clone() Unit {
	return Unit{Members: slices.Clone(u.Members), Pivot: u.Pivot}
}

// Transform applies f to every member and the pivot.
func (u Unit) Transform(f func(Cell) Cell) Unit {
	members := make([]Cell, len(u.Members))
	for i, m := range u.Members {
		members[i] = f(m)
	}
	return Unit{Members: members, Pivot: f(u.Pivot)}
}

// Move shifts the unit one step in direction d.
func (u Unit) Move(d Direction) Unit {
	return u.Transform(func(c Cell) Cell { return c.Step(d) })
}

// Rotate turns the members around the pivot. The pivot stays fixed.
func (u Unit) Rotate(r Rotation) Unit {
	members := make([]Cell, len(u.Members))
	for i, m := range u.Members {
		members[i] = m.RotateAround(u.Pivot, r)
	}
	return Unit{Members: members, Pivot: u.Pivot}
}

// Apply returns the unit after command cmd.
func (u Unit) Apply(cmd Command) Unit {
	switch cmd {
	case CmdW:
		return u.Move(DirW)
	case CmdE:
		return u.Move(DirE)
	case CmdSW:
		return u.Move(DirSW)
	case CmdSE:
		return u.Move(DirSE)
	case CmdCW:
		return u.Rotate(RotCW)
	case CmdCCW:
		return u.Rotate(RotCCW)
	}
	return u.Clone()
}

// Bounds is the bounding box of a unit's members, inclusive on all sides.
type Bounds struct {
	Left, Top, Right, Bottom int
}

// Width returns the number of columns spanned.
func (b Bounds) Width() int {
	return b.Right - b.Left + 1
}

// Height returns the number of rows spanned.
func (b Bounds) Height() int {
	return b.Bottom - b.Top + 1
}

// Bounds returns the bounding box of the members. The pivot is not included.
func (u Unit) Bounds() Bounds {
	if len(u.Members) == 0 {
		return Bounds{}
	}
	b := Bounds{Left: u.Members[0].X, Right: u.Members[0].X, Top: u.Members[0].Y, Bottom: u.Members[0].Y}
	for _, m := range u.Members[1:] {
		b.Left = min(b.Left, m.X)
		b.Right = max(b.Right, m.X)
		b.Top = min(b.Top, m.Y)
		b.Bottom = max(b.Bottom, m.Y)
	}
	return b
}

// Rows returns the distinct rows occupied by members, in ascending order.
func (u Unit) Rows() []int {
	rows := make([]int, 0, len(u.Members))
	for _, m := range u.Members {
		rows = append(rows, m.Y)
	}
	slices.Sort(rows)
	return slices.Compact(rows)
}

// Contains reports whether c is one of the members.
func (u Unit) Contains(c Cell) bool {
	return slices.Contains(u.Members, c)
}

func sortedMembers(members []Cell) []Cell {
	sorted := slices.Clone(members)
	slices.SortFunc(sorted, func(a, b Cell) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return sorted
}

// Key returns the canonical key of the unit's position.
func (u Unit) Key() Key {
	buf := make([]byte, 0, (len(u.Members)+1)*2*binary.MaxVarintLen64)
	buf = binary.AppendVarint(buf, int64(u.Pivot.X))
	buf = binary.AppendVarint(buf, int64(u.Pivot.Y))
	for _, m := range sortedMembers(u.Members) {
		buf = binary.AppendVarint(buf, int64(m.X))
		buf = binary.AppendVarint(buf, int64(m.Y))
	}
	return Key(buf)
}

// Hash returns a 64-bit fingerprint of the unit's canonical key.
func (u Unit) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(u.Key()))
	return h.Sum64()
}

// Equal reports whether two units have the same pivot and member set.
func (u Unit) Equal(other Unit) bool {
	return u.Key() == other.Key()
}

// Order returns how many distinct orientations the unit has under rotation:
// 1, 2, 3 or 6.
func (u Unit) Order() int {
	start := sortedMembers(u.Members)
	cur := u
	for i := 1; i <= 3; i++ {
		cur = cur.Rotate(RotCCW)
		if slices.Equal(sortedMembers(cur.Members), start) {
			return i
		}
	}
	return 6
}

// SpawnPosition places template t at the top of a board of the given width:
// its top row moves to row 0 and it is centered horizontally, with any odd
// slack column going to the right.
func SpawnPosition(t Unit, width int) Unit {
	b := t.Bounds()
	top := C(0, b.Top)
	u := t.Transform(func(c Cell) Cell { return c.TranslateToOrigin(top) })
	b = u.Bounds()
	dx := floorDiv(width-b.Width(), 2) - b.Left
	return u.Transform(func(c Cell) Cell { return Cell{X: c.X + dx, Y: c.Y} })
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
