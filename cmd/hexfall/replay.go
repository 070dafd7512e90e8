package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	hexcore "github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
	"github.com/nya3jp/icfpc2015/internal/platform/tui"
	"github.com/nya3jp/icfpc2015/internal/submit"
)

var (
	flagReplayProblem  int
	flagReplaySeed     int64
	flagReplaySolution string
	flagReplayStrict   bool
	flagReplayTUI      bool
	flagReplayDump     bool
	flagReplaySubmit   bool
	flagReplayCanon    bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [solutions.json]",
	Short: "Score or animate solutions",
	Long: `Replay solutions and report their scores.

Solutions come from a JSON file of records
  [{"problemId": 0, "seed": 0, "tag": "...", "solution": "..."}]
or from --problem, --seed and --solution.

In strict mode (the default, see the strict config key) an unknown
command, a move that revisits a position or any command after the game
ended makes the solution score 0.

Examples:
  hexfall replay solutions.json
  hexfall replay --problem 0 --seed 0 --solution "palblap"
  hexfall replay --problem 0 --solution "palblap" --tui --spectate :8090
  hexfall replay solutions.json --submit`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagReplayProblem, "problem", -1, "Problem id")
	replayCmd.Flags().Int64Var(&flagReplaySeed, "seed", -1, "Seed value (default: the seed at --seed-index)")
	replayCmd.Flags().IntVar(&flagSeedIndex, "seed-index", -1, "Index into the problem's source seeds (default: seed_index)")
	replayCmd.Flags().StringVar(&flagReplaySolution, "solution", "", "Solution string")
	replayCmd.Flags().BoolVar(&flagReplayStrict, "strict", true, "Score failed solutions as 0 (overrides strict)")
	replayCmd.Flags().BoolVar(&flagReplayTUI, "tui", false, "Animate the solution in the terminal")
	replayCmd.Flags().BoolVar(&flagReplayDump, "dump", false, "Print the final board of every solution")
	replayCmd.Flags().BoolVar(&flagReplayCanon, "canonical", false, "Print every solution with one symbol per command")
	replayCmd.Flags().BoolVar(&flagReplaySubmit, "submit", false, "Forward verified solutions to the submit sink")
	replayCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator stream on this address (default: spectate.address)")
}

// replayed is the outcome of one record.
type replayed struct {
	record submit.Record
	moves  int
	result hexcore.ReplayResult
	err    error // setup failure
}

func runReplay(cmd *cobra.Command, args []string) {
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flagReplayStrict
	}
	list := loadProblems()
	records := replayRecords(list, args)

	if flagReplayTUI {
		if len(records) != 1 {
			exitf("--tui replays exactly one solution, got %d", len(records))
		}
		runPlaybackTUI(list, records[0])
		return
	}

	results := make([]replayed, 0, len(records))
	for _, rec := range records {
		results = append(results, replayRecord(list, rec))
	}
	failed := printReplayTable(results)

	if flagReplayCanon {
		fmt.Println()
		for _, r := range results {
			fmt.Printf("%d/%d: %s\n", r.record.ProblemID, r.record.Seed, hexcore.Encode(hexcore.Decode(r.record.Solution)))
		}
	}

	if flagReplaySubmit {
		submitReplayed(results)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

// replayRecords reads the records named on the command line.
func replayRecords(list []problems.Problem, args []string) []submit.Record {
	if len(args) == 1 {
		records, err := submit.ReadRecords(args[0])
		if err != nil {
			exitf("%v", err)
		}
		return records
	}
	if flagReplayProblem < 0 {
		exitf("give a solutions file or --problem and --solution")
	}
	p := problemArg(list, fmt.Sprint(flagReplayProblem))
	seed := uint32(flagReplaySeed)
	if flagReplaySeed < 0 {
		setup, err := p.Setup(seedIndexFlag())
		if err != nil {
			exitf("%v", err)
		}
		seed = setup.Seed
	}
	return []submit.Record{{
		ProblemID: p.ID,
		Seed:      seed,
		Tag:       cfg.Tag,
		Solution:  flagReplaySolution,
	}}
}

func findProblem(list []problems.Problem, id int) (*problems.Problem, error) {
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", problems.ErrNotFound, id)
}

// replayRecord scores one record on a fresh engine.
func replayRecord(list []problems.Problem, rec submit.Record) replayed {
	out := replayed{record: rec}
	p, err := findProblem(list, rec.ProblemID)
	if err != nil {
		out.err = err
		return out
	}
	setup, err := p.SetupForSeed(rec.Seed)
	if err != nil {
		out.err = err
		return out
	}
	e, err := hexcore.NewEngine(setup)
	if err != nil {
		out.err = err
		return out
	}

	log := logger.With("problem", rec.ProblemID, "seed", rec.Seed)
	out.result = hexcore.Replay(e, rec.Solution, hexcore.ReplayOptions{
		Strict:  cfg.Strict,
		Phrases: scoringPhrases(),
		Trace: func(step int, ch byte, o hexcore.Outcome, err error) {
			log.Debug("replay", "step", step, "char", string(ch), "outcome", o, "err", err)
		},
	})
	out.moves = e.Moves()
	if out.result.Failed() {
		log.Warn("solution rejected", "err", out.result.Err)
	}
	if flagReplayDump {
		fmt.Print(hexcore.RenderASCII(e))
		fmt.Println()
	}
	return out
}

// printReplayTable prints one row per record and returns how many failed.
func printReplayTable(results []replayed) int {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Problem\tSeed\tTag\tScore\tPower\tCommands\tMoves\tEnd\tStatus")
	fmt.Fprintln(w, "-------\t----\t---\t-----\t-----\t--------\t-----\t---\t------")

	failed := 0
	total := int64(0)
	for _, r := range results {
		status := "ok"
		switch {
		case r.err != nil:
			status = r.err.Error()
			failed++
		case r.result.Failed():
			status = r.result.Err.Error()
			failed++
		case !r.result.Complete:
			status = "unfinished"
		}
		total += int64(r.result.Score)
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.record.ProblemID, r.record.Seed, r.record.Tag,
			humanize.Comma(int64(r.result.Score)), humanize.Comma(int64(r.result.PowerScore)),
			len(hexcore.Decode(r.record.Solution)), r.moves, r.result.Reason, status)
	}
	w.Flush()

	fmt.Println()
	fmt.Printf("%s solutions, total score %s", humanize.Comma(int64(len(results))), humanize.Comma(total))
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
	return failed
}

// submitReplayed forwards every verified record with its replayed score.
func submitReplayed(results []replayed) {
	store := openStore(false)
	if store != nil {
		defer store.Close()
	}
	sub, err := newSubmitter(store, os.Stdout)
	if err != nil {
		exitf("creating submit sink: %v", err)
	}
	defer sub.Close()

	for _, r := range results {
		if r.err != nil || r.result.Failed() {
			continue
		}
		tag := r.record.Tag
		if tag == "" {
			tag = sub.tag
		}
		s := submit.Submission{
			Record:     submit.Record{ProblemID: r.record.ProblemID, Seed: r.record.Seed, Tag: tag, Solution: r.record.Solution},
			Score:      r.result.Score,
			PowerScore: r.result.PowerScore,
			Reason:     r.result.Reason.String(),
		}
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout())
		err := sub.Deliver(ctx, s)
		cancel()
		if err != nil {
			logger.Error("submit failed", "problem", s.ProblemID, "seed", s.Seed, "err", err)
		}
	}
}

// runPlaybackTUI animates one record.
func runPlaybackTUI(list []problems.Problem, rec submit.Record) {
	restoreLog := logToFile()
	defer restoreLog()

	p, err := findProblem(list, rec.ProblemID)
	if err != nil {
		exitf("%v", err)
	}
	seedIndex := hexcore.FindSeedIndex(p.SourceSeeds, rec.Seed)
	if seedIndex < 0 {
		exitf("seed %d is not a source seed of problem %d", rec.Seed, p.ID)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	env := newEnv(list, nil, nil)
	hub, observer := startSpectator(ctx, spectateAddr(), env.Config.Upcoming)
	if hub != nil {
		defer hub.Close()
		env.Observer = observer
	}

	pb, err := env.NewPlayback(p, seedIndex, rec.Solution)
	if err != nil {
		exitf("starting playback: %v", err)
	}
	if err := tui.RunGame(pb, env.Config, nil, nil, ""); err != nil {
		exitf("running playback: %v", err)
	}
}
