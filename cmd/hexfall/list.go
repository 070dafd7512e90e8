package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	hexcore "github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems"
	"github.com/nya3jp/icfpc2015/internal/games/hexfall/problems/formats"
	"github.com/nya3jp/icfpc2015/internal/submit"
)

var (
	flagListUnits bool
	flagListSinks bool
	flagListJSON  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded problems",
	Long: `Shows the problems found in problems_dir, or the built-in samples.

With --units every unit template is drawn at its spawn position together
with its rotation order (how many distinct orientations it has).
With --json every problem is printed in the JSON problem format, which
converts YAML problems for other tools. --sinks lists the submit sinks.`,
	Run: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListUnits, "units", false, "Draw every unit template")
	listCmd.Flags().BoolVar(&flagListSinks, "sinks", false, "List the available submit sinks")
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "Print every problem as JSON")
}

func runList(_ *cobra.Command, _ []string) {
	if flagListSinks {
		listSinks()
		return
	}

	list := loadProblems()
	if flagListJSON {
		for _, p := range list {
			data, err := formats.MarshalJSON(p.Problem)
			if err != nil {
				exitf("encoding problem %d: %v", p.ID, err)
			}
			fmt.Println(string(data))
		}
		return
	}
	if len(list) == 0 {
		fmt.Println("No problems available.")
		return
	}

	fmt.Println("Available problems:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tSize\tUnits\tSeeds\tLength\tFilled\tFile")
	fmt.Fprintln(w, "  --\t----\t-----\t-----\t------\t------\t----")
	for _, p := range list {
		fmt.Fprintf(w, "  %d\t%dx%d\t%d\t%d\t%d\t%d\t%s\n",
			p.ID, p.Width, p.Height, len(p.Units), len(p.SourceSeeds), p.SourceLength, len(p.Filled), filepath.Base(p.FilePath))
	}
	w.Flush()

	if flagListUnits {
		for i := range list {
			printUnits(&list[i])
		}
	}

	fmt.Println()
	fmt.Println("Run 'hexfall play <id>' to play a problem.")
}

func listSinks() {
	sinks := submit.List()

	fmt.Println("Available submit sinks:")
	fmt.Println()

	maxNameLen := 4 // "Name" header
	for _, s := range sinks {
		maxNameLen = max(maxNameLen, len(s.Name))
	}
	fmt.Printf("  %-*s  %s\n", maxNameLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "----", "-----------")
	for _, s := range sinks {
		marker := ""
		if s.Name == cfg.Submit.Sink {
			marker = " (configured)"
		}
		fmt.Printf("  %-*s  %s%s\n", maxNameLen, s.Name, s.Description, marker)
	}
}

func printUnits(p *problems.Problem) {
	fmt.Println()
	fmt.Printf("Problem %d units:\n", p.ID)
	for i, t := range p.Templates() {
		u := hexcore.SpawnPosition(t, p.Width)
		fmt.Printf("\n  unit %d: %d cells, order %d\n", i, u.Size(), u.Order())
		board := hexcore.NewBoard(p.Width, u.Bounds().Bottom+1, nil)
		for _, line := range strings.Split(strings.TrimSuffix(hexcore.RenderText(board, &u), "\n"), "\n") {
			fmt.Printf("    %s\n", line)
		}
	}
}
