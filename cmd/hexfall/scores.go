package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nya3jp/icfpc2015/internal/platform/tui"
	"github.com/nya3jp/icfpc2015/internal/storage"
	"github.com/nya3jp/icfpc2015/internal/submit"
)

var (
	flagScoresLimit  int
	flagScoresTag    string
	flagScoresExport string
	flagScoresTUI    bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [problem]",
	Short: "Show stored solutions",
	Long: `Display stored solutions.

Without a problem id a summary of every problem is shown. With one, the
best solutions of that problem are listed.

--export writes the best solution of every problem and seed as a
solution file that 'hexfall replay' and the contest endpoint accept.

Examples:
  hexfall scores
  hexfall scores 3 --limit 20
  hexfall scores --tag hexfall-2b7e
  hexfall scores --export best.json
  hexfall scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of solutions to show")
	scoresCmd.Flags().StringVar(&flagScoresTag, "tag", "", "Show the solutions submitted under a tag")
	scoresCmd.Flags().StringVar(&flagScoresExport, "export", "", "Write the best solution per seed to this file")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the stored solutions of the problem")
}

func runScores(_ *cobra.Command, args []string) {
	store := openStore(true)
	defer store.Close()

	switch {
	case flagScoresTUI:
		restoreLog := logToFile()
		defer restoreLog()
		if err := tui.RunScoreboard(newEnv(loadProblems(), store, nil)); err != nil {
			exitf("running scoreboard: %v", err)
		}
	case flagScoresExport != "":
		exportBest(store, flagScoresExport)
	case flagScoresTag != "":
		entries, err := store.SolutionsByTag(flagScoresTag)
		if err != nil {
			exitf("retrieving solutions: %v", err)
		}
		fmt.Printf("Solutions tagged %s\n\n", flagScoresTag)
		printSolutions(entries)
	case len(args) == 1:
		id, err := strconv.Atoi(args[0])
		if err != nil {
			exitf("invalid problem id %q", args[0])
		}
		if flagScoresClear {
			if err := store.ClearSolutions(id); err != nil {
				exitf("clearing solutions: %v", err)
			}
			fmt.Printf("Cleared solutions of problem %d.\n", id)
			return
		}
		showProblemScores(store, id)
	default:
		showAllStats(store)
	}
}

func showProblemScores(store *storage.Store, id int) {
	entries, err := store.TopSolutions(id, flagScoresLimit)
	if err != nil {
		exitf("retrieving solutions: %v", err)
	}

	fmt.Printf("Best solutions - problem %d\n", id)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No solutions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'hexfall play %d' to record the first one!\n", id)
		return
	}
	printSolutions(entries)

	fmt.Println()
	if stats, err := store.GetProblemStats(id); err == nil {
		fmt.Printf("Best: %s  Average: %s  Seeds played: %d  Last played %s\n",
			humanize.Comma(int64(stats.HighScore)),
			humanize.CommafWithDigits(stats.AvgScore, 1),
			stats.Seeds,
			humanize.Time(stats.LastPlayed))
	}
}

func printSolutions(entries []storage.SolutionEntry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tProblem\tSeed\tScore\tPower\tLength\tEnd\tTag\tWhen")
	fmt.Fprintln(w, "  ----\t-------\t----\t-----\t-----\t------\t---\t---\t----")
	for i, e := range entries {
		fmt.Fprintf(w, "  %d\t%d\t%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			i+1, e.ProblemID, e.Seed,
			humanize.Comma(int64(e.Score)), humanize.Comma(int64(e.PowerScore)),
			len(e.Solution), e.Reason, e.Tag, humanize.Time(e.CreatedAt))
	}
	w.Flush()
}

func showAllStats(store *storage.Store) {
	all, err := store.GetAllProblemStats()
	if err != nil {
		exitf("retrieving statistics: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No solutions recorded yet.")
		return
	}

	ids := make([]int, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Problem\tSolutions\tSeeds\tBest\tAverage\tLast played")
	fmt.Fprintln(w, "  -------\t---------\t-----\t----\t-------\t-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Fprintf(w, "  %d\t%s\t%d\t%s\t%s\t%s\n",
			id, humanize.Comma(int64(s.Solutions)), s.Seeds,
			humanize.Comma(int64(s.HighScore)), humanize.CommafWithDigits(s.AvgScore, 1),
			humanize.Time(s.LastPlayed))
	}
	w.Flush()
}

// exportBest writes the best stored solution of every problem and seed.
func exportBest(store *storage.Store, path string) {
	all, err := store.GetAllProblemStats()
	if err != nil {
		exitf("retrieving statistics: %v", err)
	}
	ids := make([]int, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var records []submit.Record
	total := int64(0)
	for _, id := range ids {
		best, err := store.BestPerSeed(id)
		if err != nil {
			exitf("retrieving solutions of problem %d: %v", id, err)
		}
		for _, e := range best {
			records = append(records, submit.Record{ProblemID: e.ProblemID, Seed: e.Seed, Tag: e.Tag, Solution: e.Solution})
			total += int64(e.Score)
		}
	}

	data, err := submit.MarshalRecords(records)
	if err != nil {
		exitf("%v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		exitf("writing %s: %v", path, err)
	}
	fmt.Printf("Wrote %d solutions to %s (total score %s).\n", len(records), path, humanize.Comma(total))
}
