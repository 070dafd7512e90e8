// Package problems loads hexfall problem definitions from disk or from the
// embedded sample set. This package depends on core but core does not
// depend on problems.
package problems

import (
	"errors"
	"fmt"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems/formats"
)

// ErrNotFound is returned when no problem matches a lookup.
var ErrNotFound = errors.New("problem not found")

// Problem is a problem definition together with where it came from.
type Problem struct {
	formats.Problem
	FilePath string
}

// Validate checks that the problem can be played.
func (p *Problem) Validate() error {
	if len(p.SourceSeeds) == 0 {
		return fmt.Errorf("%w: problem %d has no source seeds", core.ErrMalformedProblem, p.ID)
	}
	_, err := core.NewEngine(p.setup(p.SourceSeeds[0]))
	return err
}

func (p *Problem) setup(seed uint32) core.Setup {
	return core.Setup{
		ProblemID:    p.ID,
		Width:        p.Width,
		Height:       p.Height,
		Filled:       p.Filled,
		Units:        p.Units,
		Seed:         seed,
		SourceLength: p.SourceLength,
	}
}

// Setup returns the engine setup for the seed at seedIndex.
func (p *Problem) Setup(seedIndex int) (core.Setup, error) {
	if seedIndex < 0 || seedIndex >= len(p.SourceSeeds) {
		return core.Setup{}, fmt.Errorf("problems: seed index %d out of range for problem %d (%d seeds)",
			seedIndex, p.ID, len(p.SourceSeeds))
	}
	return p.setup(p.SourceSeeds[seedIndex]), nil
}

// SetupForSeed returns the engine setup for a seed value, which must be one
// of the problem's source seeds.
func (p *Problem) SetupForSeed(seed uint32) (core.Setup, error) {
	idx := core.FindSeedIndex(p.SourceSeeds, seed)
	if idx < 0 {
		return core.Setup{}, fmt.Errorf("problems: seed %d is not a source seed of problem %d", seed, p.ID)
	}
	return p.setup(seed), nil
}

// NewEngine builds an engine for the seed at seedIndex.
func (p *Problem) NewEngine(seedIndex int, opts ...core.Option) (*core.Engine, error) {
	setup, err := p.Setup(seedIndex)
	if err != nil {
		return nil, err
	}
	return core.NewEngine(setup, opts...)
}

// Templates returns copies of the unit templates.
func (p *Problem) Templates() []core.Unit {
	units := make([]core.Unit, len(p.Units))
	for i, u := range p.Units {
		units[i] = u.Clone()
	}
	return units
}
