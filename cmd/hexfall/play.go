package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/nya3jp/icfpc2015/internal/games/hexfall"
	"github.com/nya3jp/icfpc2015/internal/platform/tui"
)

var (
	flagSeedIndex int
	flagSpectate  string
)

var playCmd = &cobra.Command{
	Use:   "play <problem>",
	Short: "Play a problem",
	Long: `Play a problem on one of its source seeds.

Every finished game is submitted to the configured sink (submit.sink) and
stored in the local database.

Controls:
  Left/A  Right/D     - Move west / east
  Z  Down/X           - Move south-west / south-east
  E  Up/W             - Rotate clockwise / counter-clockwise
  U/Ctrl+Z            - Undo
  Ctrl+R/Ctrl+Y       - Redo
  Home                - Undo everything
  R                   - Restart
  Ctrl+S              - Save a screenshot
  Q/Ctrl+C            - Quit

Examples:
  hexfall play 0
  hexfall play 3 --seed-index 4
  hexfall play 3 --spectate :8090`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSeedIndex, "seed-index", -1, "Index into the problem's source seeds (default: seed_index)")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator stream on this address (default: spectate.address)")
}

func runPlay(_ *cobra.Command, args []string) {
	if err := play(args); err != nil {
		exitf("%v", err)
	}
}

// play runs a single game. Deferred cleanup, including flushing held sink
// output, finishes before the caller exits on error.
func play(args []string) error {
	restoreLog := logToFile()
	defer restoreLog()

	list := loadProblems()
	p := problemArg(list, args[0])
	seedIndex := seedIndexFlag()

	store := openStore(false)
	if store != nil {
		defer store.Close()
	}

	var held lockedBuffer
	defer held.flush(os.Stdout)
	sub, err := newSubmitter(store, &held)
	if err != nil {
		return fmt.Errorf("creating submit sink: %w", err)
	}
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := newEnv(list, store, sub)
	hub, observer := startSpectator(ctx, spectateAddr(), env.Config.Upcoming)
	if hub != nil {
		defer hub.Close()
		env.Observer = observer
	}

	done := &tui.Completions{}
	game, err := env.NewGame(p, seedIndex, done)
	if err != nil {
		return fmt.Errorf("starting problem %d: %w", p.ID, err)
	}

	if err := tui.RunGame(game, env.Config, done, env.Submit, playerName()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	printSummary(game)
	return nil
}

// seedIndexFlag returns --seed-index, or the configured default.
func seedIndexFlag() int {
	if flagSeedIndex >= 0 {
		return flagSeedIndex
	}
	return cfg.SeedIndex
}

// spectateAddr returns --spectate, or the configured default.
func spectateAddr() string {
	if flagSpectate != "" {
		return flagSpectate
	}
	return cfg.Spectate.Address
}

// playerName identifies local games in the log.
func playerName() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "local"
}

func printSummary(game *hexfall.Game) {
	e := game.Engine()
	state := game.State()
	fmt.Fprintf(os.Stderr, "Problem %d seed %d: score %d (%d power), %d moves, %s\n",
		e.ProblemID(), e.Seed(), state.Score, game.PowerScore(), state.Moves, e.Reason())
}
