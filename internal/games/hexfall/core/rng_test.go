package core_test

import (
	"slices"
	"testing"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

func TestSequence(t *testing.T) {
	tests := []struct {
		name     string
		units    int
		seed     uint32
		length   int
		expected []int
	}{
		{"seed 0 five units", 5, 0, 10, []int{0, 0, 3, 3, 2, 3, 2, 0, 1, 2}},
		{"seed 0 eighteen units", 18, 0, 12, []int{0, 0, 12, 16, 13, 6, 7, 7, 13, 8, 4, 3}},
		{"seed 12345 seven units", 7, 12345, 10, []int{0, 6, 6, 4, 5, 1, 1, 1, 5, 3}},
		{"zero length", 5, 0, 0, nil},
		{"no units", 0, 0, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.Sequence(tt.units, tt.seed, tt.length)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("Sequence(%d, %d, %d) = %v, expected %v", tt.units, tt.seed, tt.length, got, tt.expected)
			}
		})
	}
}

func TestGeneratorStream(t *testing.T) {
	expected := []int{0, 24107, 16552, 12125, 9427, 13152, 21440, 3383, 6873, 16117}

	g := core.NewGenerator(17)
	if g.Seed() != 17 {
		t.Errorf("Seed() = %d, expected 17", g.Seed())
	}
	for i, want := range expected {
		if got := g.Current(); got != want {
			t.Errorf("step %d: Current() = %d, expected %d", i, got, want)
		}
		g.Next()
	}
}

func TestSequenceIsDeterministic(t *testing.T) {
	a := core.Sequence(9, 42, 200)
	b := core.Sequence(9, 42, 200)
	if !slices.Equal(a, b) {
		t.Error("same seed produced different sequences")
	}
	for i, v := range a {
		if v < 0 || v >= 9 {
			t.Fatalf("index %d out of range: %d", i, v)
		}
	}
}

func TestFindSeedIndex(t *testing.T) {
	seeds := []uint32{0, 17, 42}
	if got := core.FindSeedIndex(seeds, 42); got != 2 {
		t.Errorf("FindSeedIndex(42) = %d, expected 2", got)
	}
	if got := core.FindSeedIndex(seeds, 5); got != -1 {
		t.Errorf("FindSeedIndex(5) = %d, expected -1", got)
	}
}
