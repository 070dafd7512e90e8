package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/nya3jp/icfpc2015/internal/core"
	hexcore "github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
	"github.com/nya3jp/icfpc2015/internal/platform/spectate"
	"github.com/nya3jp/icfpc2015/internal/platform/tui"
	"github.com/nya3jp/icfpc2015/internal/storage"
	"github.com/nya3jp/icfpc2015/internal/submit"
)

// loadProblems loads every problem from the configured directory, falling
// back to the built-in samples.
func loadProblems() []problems.Problem {
	list, err := problems.NewLoaderOrEmbedded(cfg.ProblemsDir).LoadAll()
	if err != nil {
		exitf("loading problems: %v", err)
	}
	logger.Debug("problems loaded", "count", len(list), "dir", cfg.ProblemsDir)
	return list
}

// problemArg parses a problem id argument and returns that problem.
func problemArg(list []problems.Problem, arg string) *problems.Problem {
	id, err := strconv.Atoi(arg)
	if err != nil {
		exitf("invalid problem id %q", arg)
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	fmt.Fprintf(os.Stderr, "Error: %v: %d\n", problems.ErrNotFound, id)
	fmt.Fprintln(os.Stderr, "Run 'hexfall list' to see available problems.")
	os.Exit(1)
	return nil
}

// openStore opens the solutions database. A failure is fatal only when the
// caller cannot work without it.
func openStore(required bool) *storage.Store {
	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		if required {
			exitf("opening solutions database: %v", err)
		}
		logger.Warn("could not open solutions database, results will not be stored", "err", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the screen to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = cfg.TUI.TickRate
	rc.Upcoming = cfg.TUI.Upcoming
	return rc
}

// playbackEvery converts the playback rate into ticks per replayed symbol.
func playbackEvery() int {
	return max(1, cfg.TUI.TickRate/max(1, cfg.TUI.PlaybackRate))
}

// scoringPhrases returns the phrases counted towards reported scores.
func scoringPhrases() []string {
	if !cfg.PhraseScore {
		return nil
	}
	return cfg.Phrases
}

// solutionTag returns the configured tag or a fresh one.
func solutionTag() string {
	if cfg.Tag != "" {
		return cfg.Tag
	}
	return submit.NewTag()
}

// submitTimeout bounds one submission.
func submitTimeout() time.Duration {
	return time.Duration(cfg.Submit.TimeoutSeconds) * time.Second
}

// submitter fans a submission out to the configured sink and, when the sink
// is not already the database, to the local store as well.
type submitter struct {
	tag     string
	phrases []string
	sinks   []submit.Sink
}

// newSubmitter creates the sinks for finished games. out receives what the
// stdout sink prints.
func newSubmitter(store *storage.Store, out io.Writer) (*submitter, error) {
	opts := submit.Options{
		Path:     cfg.Submit.Path,
		URL:      cfg.Submit.URL,
		APIToken: cfg.Submit.APIToken,
		TeamID:   cfg.Submit.TeamID,
		Timeout:  submitTimeout(),
		Store:    store,
		Writer:   out,
		Logger:   logger.WithPrefix("submit"),
	}

	s := &submitter{tag: solutionTag(), phrases: scoringPhrases()}
	sink, err := submit.Create(cfg.Submit.Sink, opts)
	if err != nil {
		return nil, err
	}
	s.sinks = append(s.sinks, sink)
	if store != nil && cfg.Submit.Sink != "sqlite" {
		local, err := submit.Create("sqlite", opts)
		if err != nil {
			sink.Close()
			return nil, err
		}
		s.sinks = append(s.sinks, local)
	}
	logger.Debug("submitting solutions", "sink", cfg.Submit.Sink, "tag", s.tag, "phrases", len(s.phrases))
	return s, nil
}

// Submit delivers res to every sink.
func (s *submitter) Submit(ctx context.Context, res hexcore.Result, player string) error {
	sub := submit.NewSubmission(res, s.tag, s.phrases)
	logger.Info("game finished", "problem", res.ProblemID, "seed", res.Seed, "score", sub.Score, "reason", sub.Reason, "player", player)
	return s.Deliver(ctx, sub)
}

// Deliver sends a prepared submission to every sink.
func (s *submitter) Deliver(ctx context.Context, sub submit.Submission) error {
	var errs []error
	for _, sink := range s.sinks {
		if err := sink.Submit(ctx, sub); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink.
func (s *submitter) Close() error {
	var errs []error
	for _, sink := range s.sinks {
		errs = append(errs, sink.Close())
	}
	return errors.Join(errs...)
}

// lockedBuffer holds stdout sink output while a full-screen program owns
// the terminal.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// flush copies the held output to w.
func (b *lockedBuffer) flush(w io.Writer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.WriteTo(w)
}

// logToFile sends log output to ~/.hexfall/hexfall.log while a full-screen
// program owns the terminal. The returned func restores stderr.
func logToFile() func() {
	home, err := os.UserHomeDir()
	if err != nil {
		return func() {}
	}
	dir := filepath.Join(home, ".hexfall")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "hexfall.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return func() {}
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		f.Close()
	}
}

// startSpectator serves the websocket stream on addr until ctx is done and
// returns an observer that publishes every engine change. It returns nil
// when addr is empty.
func startSpectator(ctx context.Context, addr string, upcoming int) (*spectate.Hub, func(*hexcore.Engine)) {
	if addr == "" {
		return nil, nil
	}
	hub := spectate.NewHub(logger.WithPrefix("spectate"))
	go func() {
		if err := hub.ListenAndServe(ctx, addr); err != nil {
			logger.Error("spectator server stopped", "addr", addr, "err", err)
		}
	}()
	logger.Info("spectators can connect", "url", "ws://"+addr+"/ws")
	return hub, func(e *hexcore.Engine) { hub.Observe(e, upcoming) }
}

// newEnv assembles what the TUI needs to run games.
func newEnv(list []problems.Problem, store *storage.Store, sub *submitter) tui.Env {
	env := tui.Env{
		Problems:      list,
		Store:         store,
		Phrases:       scoringPhrases(),
		Config:        runtimeConfig(),
		PlaybackEvery: playbackEvery(),
	}
	if sub != nil {
		env.Submit = sub.Submit
	}
	return env
}
