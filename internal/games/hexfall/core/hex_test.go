package core_test

import (
	"testing"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

func TestRotateAroundOrigin(t *testing.T) {
	tests := []struct {
		name     string
		in       core.Cell
		rot      core.Rotation
		expected core.Cell
	}{
		{"cw even row", core.C(2, 0), core.RotCW, core.C(1, 2)},
		{"ccw back", core.C(1, 2), core.RotCCW, core.C(2, 0)},
		{"cw two rows down", core.C(2, 2), core.RotCW, core.C(-1, 3)},
		{"cw negative odd row", core.C(-1, -1), core.RotCW, core.C(0, -1)},
		{"origin is fixed", core.C(0, 0), core.RotCW, core.C(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Rotate(tt.rot)
			if got != tt.expected {
				t.Errorf("%v.Rotate(%v) = %v, expected %v", tt.in, tt.rot, got, tt.expected)
			}
		})
	}
}

func TestRotateAroundPivot(t *testing.T) {
	tests := []struct {
		name     string
		in       core.Cell
		pivot    core.Cell
		expected core.Cell
	}{
		{"even pivot", core.C(4, 5), core.C(2, 4), core.C(2, 7)},
		{"odd pivot", core.C(4, 5), core.C(2, 3), core.C(2, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.RotateAround(tt.pivot, core.RotCW)
			if got != tt.expected {
				t.Errorf("RotateAround(%v) = %v, expected %v", tt.pivot, got, tt.expected)
			}
		})
	}
}

func TestRotationRings(t *testing.T) {
	tests := []struct {
		name  string
		pivot core.Cell
		ring  []core.Cell
	}{
		{"even pivot distance 1", core.C(2, 2),
			[]core.Cell{core.C(1, 1), core.C(2, 1), core.C(3, 2), core.C(2, 3), core.C(1, 3), core.C(1, 2)}},
		{"even pivot distance 2 corners", core.C(2, 2),
			[]core.Cell{core.C(1, 0), core.C(3, 0), core.C(4, 2), core.C(3, 4), core.C(1, 4), core.C(0, 2)}},
		{"even pivot distance 2 edges", core.C(2, 2),
			[]core.Cell{core.C(2, 0), core.C(3, 1), core.C(3, 3), core.C(2, 4), core.C(0, 3), core.C(0, 1)}},
		{"odd pivot distance 1", core.C(2, 3),
			[]core.Cell{core.C(2, 2), core.C(3, 2), core.C(3, 3), core.C(3, 4), core.C(2, 4), core.C(1, 3)}},
		{"odd pivot distance 2 corners", core.C(2, 3),
			[]core.Cell{core.C(1, 1), core.C(3, 1), core.C(4, 3), core.C(3, 5), core.C(1, 5), core.C(0, 3)}},
		{"odd pivot distance 2 edges", core.C(2, 3),
			[]core.Cell{core.C(2, 1), core.C(4, 2), core.C(4, 4), core.C(2, 5), core.C(1, 4), core.C(1, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.ring)
			for i, c := range tt.ring {
				next := tt.ring[(i+1)%n]
				if got := c.RotateAround(tt.pivot, core.RotCW); got != next {
					t.Errorf("%v CW around %v = %v, expected %v", c, tt.pivot, got, next)
				}
				if got := next.RotateAround(tt.pivot, core.RotCCW); got != c {
					t.Errorf("%v CCW around %v = %v, expected %v", next, tt.pivot, got, c)
				}
			}
		})
	}
}

func TestRotationProperties(t *testing.T) {
	for px := -3; px <= 3; px++ {
		for py := -3; py <= 3; py++ {
			pivot := core.C(px, py)
			for x := -4; x <= 4; x++ {
				for y := -4; y <= 4; y++ {
					c := core.C(x, y)

					if got := c.TranslateToOrigin(pivot).TranslateFromOrigin(pivot); got != c {
						t.Fatalf("translate round trip of %v around %v = %v", c, pivot, got)
					}
					if got := c.RotateAround(pivot, core.RotCW).RotateAround(pivot, core.RotCCW); got != c {
						t.Fatalf("CW then CCW of %v around %v = %v", c, pivot, got)
					}

					r := c
					for i := 0; i < 6; i++ {
						r = r.RotateAround(pivot, core.RotCW)
					}
					if r != c {
						t.Fatalf("six CW rotations of %v around %v = %v", c, pivot, r)
					}
				}
			}
		}
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		name     string
		from     core.Cell
		dir      core.Direction
		expected core.Cell
	}{
		{"west", core.C(3, 2), core.DirW, core.C(2, 2)},
		{"east", core.C(3, 2), core.DirE, core.C(4, 2)},
		{"south-west even row", core.C(3, 2), core.DirSW, core.C(2, 3)},
		{"south-west odd row", core.C(3, 3), core.DirSW, core.C(3, 4)},
		{"south-east even row", core.C(3, 2), core.DirSE, core.C(3, 3)},
		{"south-east odd row", core.C(3, 3), core.DirSE, core.C(4, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Step(tt.dir); got != tt.expected {
				t.Errorf("%v.Step(%v) = %v, expected %v", tt.from, tt.dir, got, tt.expected)
			}
		})
	}
}
