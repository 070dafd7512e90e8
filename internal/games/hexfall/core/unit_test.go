package core_test

import (
	"slices"
	"testing"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

func TestUnitKeyIgnoresMemberOrder(t *testing.T) {
	a := core.NewUnit(core.C(1, 0), core.C(0, 0), core.C(1, 0), core.C(2, 1))
	b := core.NewUnit(core.C(1, 0), core.C(2, 1), core.C(0, 0), core.C(1, 0))
	c := core.NewUnit(core.C(0, 0), core.C(0, 0), core.C(1, 0), core.C(2, 1))

	if a.Key() != b.Key() {
		t.Error("units with the same members in different order should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("units with different pivots should not share a key")
	}
	if a.Hash() != b.Hash() {
		t.Error("Hash() should follow Key()")
	}
	if !a.Equal(b) {
		t.Error("Equal() should follow Key()")
	}
}

func TestUnitTransformsDoNotAlias(t *testing.T) {
	u := core.NewUnit(core.C(1, 1), core.C(1, 1), core.C(2, 1))
	moved := u.Move(core.DirE)

	if u.Members[0] != core.C(1, 1) {
		t.Error("Move() modified the original unit")
	}
	if moved.Pivot != core.C(2, 1) {
		t.Errorf("moved pivot = %v, expected (2,1)", moved.Pivot)
	}

	rotated := u.Rotate(core.RotCW)
	if rotated.Pivot != u.Pivot {
		t.Error("Rotate() should keep the pivot fixed")
	}
}

func TestUnitRotateSixTimes(t *testing.T) {
	u := core.NewUnit(core.C(2, 3), core.C(1, 1), core.C(2, 2), core.C(4, 5))
	r := u
	for i := 0; i < 6; i++ {
		r = r.Rotate(core.RotCCW)
	}
	if !r.Equal(u) {
		t.Errorf("six rotations = %v, expected %v", r, u)
	}
}

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		name          string
		unit          core.Unit
		width         int
		expectedCells []core.Cell
		expectedPivot core.Cell
	}{
		{"single cell", core.NewUnit(core.C(0, 0), core.C(0, 0)), 10,
			[]core.Cell{core.C(4, 0)}, core.C(4, 0)},
		{"even width on odd board", core.NewUnit(core.C(0, 0), core.C(0, 0), core.C(1, 0)), 5,
			[]core.Cell{core.C(1, 0), core.C(2, 0)}, core.C(1, 0)},
		{"pivot between members", core.NewUnit(core.C(1, 0), core.C(0, 0), core.C(2, 0)), 10,
			[]core.Cell{core.C(3, 0), core.C(5, 0)}, core.C(4, 0)},
		{"odd top row", core.NewUnit(core.C(1, 1), core.C(1, 1), core.C(1, 2)), 5,
			[]core.Cell{core.C(2, 0), core.C(1, 1)}, core.C(2, 0)},
		{"offset template", core.NewUnit(core.C(3, 3), core.C(3, 2), core.C(4, 2), core.C(3, 3)), 6,
			[]core.Cell{core.C(2, 0), core.C(3, 0), core.C(2, 1)}, core.C(2, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.SpawnPosition(tt.unit, tt.width)
			if !slices.Equal(got.Members, tt.expectedCells) {
				t.Errorf("members = %v, expected %v", got.Members, tt.expectedCells)
			}
			if got.Pivot != tt.expectedPivot {
				t.Errorf("pivot = %v, expected %v", got.Pivot, tt.expectedPivot)
			}
		})
	}
}

func TestUnitOrder(t *testing.T) {
	tests := []struct {
		name     string
		unit     core.Unit
		expected int
	}{
		{"single cell on pivot", core.NewUnit(core.C(0, 0), core.C(0, 0)), 1},
		{"ring around pivot", core.NewUnit(core.C(2, 2),
			core.C(1, 1), core.C(2, 1), core.C(3, 2), core.C(2, 3), core.C(1, 3), core.C(1, 2)), 1},
		{"bar through pivot", core.NewUnit(core.C(1, 0), core.C(0, 0), core.C(1, 0), core.C(2, 0)), 3},
		{"alternate neighbours", core.NewUnit(core.C(2, 2), core.C(1, 1), core.C(3, 2), core.C(1, 3)), 2},
		{"single neighbour", core.NewUnit(core.C(0, 0), core.C(1, 0)), 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.unit.Order(); got != tt.expected {
				t.Errorf("Order() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestUnitRows(t *testing.T) {
	u := core.NewUnit(core.C(0, 0), core.C(0, 3), core.C(1, 1), core.C(2, 3))
	if got := u.Rows(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("Rows() = %v, expected [1 3]", got)
	}
}
