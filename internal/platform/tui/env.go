package tui

import (
	"context"
	"sync"

	"github.com/nya3jp/icfpc2015/internal/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall"
	hexcore "github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
	"github.com/nya3jp/icfpc2015/internal/storage"
)

// SubmitFunc delivers a finished game played by player.
type SubmitFunc func(ctx context.Context, res hexcore.Result, player string) error

// Env is what sessions need to start games and record results.
type Env struct {
	Problems []problems.Problem
	Store    *storage.Store // may be nil
	Submit   SubmitFunc     // may be nil
	Phrases  []string
	Observer hexfall.Observer // may be nil
	Config   core.RuntimeConfig

	// PlaybackEvery is the number of ticks between replayed symbols.
	PlaybackEvery int
}

// Completions collects games reported by the engine during a step so the
// model can submit them outside the game loop.
type Completions struct {
	mu      sync.Mutex
	pending []hexcore.Result
}

// Push queues a finished game.
func (c *Completions) Push(res hexcore.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = append(c.pending, res)
}

// Drain returns and clears the queued games.
func (c *Completions) Drain() []hexcore.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}

func (env Env) gameOptions(done *Completions) []hexfall.Option {
	opts := []hexfall.Option{hexfall.WithPhrases(env.Phrases), hexfall.WithConfig(env.Config)}
	if done != nil {
		opts = append(opts, hexfall.WithCompletion(done.Push))
	}
	if env.Observer != nil {
		opts = append(opts, hexfall.WithObserver(env.Observer))
	}
	return opts
}

// NewGame builds an interactive game on the seed at seedIndex of p whose
// completions are queued on done.
func (env Env) NewGame(p *problems.Problem, seedIndex int, done *Completions) (*hexfall.Game, error) {
	return hexfall.New(p, seedIndex, env.gameOptions(done)...)
}

// NewPlayback builds a replay of solution. Replays never submit.
func (env Env) NewPlayback(p *problems.Problem, seedIndex int, solution string) (*hexfall.Playback, error) {
	return hexfall.NewPlayback(p, seedIndex, solution, env.PlaybackEvery, env.gameOptions(nil)...)
}

// FindProblem returns the problem with the given id.
func (env Env) FindProblem(id int) (*problems.Problem, bool) {
	for i := range env.Problems {
		if env.Problems[i].ID == id {
			return &env.Problems[i], true
		}
	}
	return nil, false
}
