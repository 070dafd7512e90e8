package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	hexcore "github.com/nya3jp/icfpc2015/internal/games/hexfall/core"
)

var (
	flagSeqSeed   int64
	flagSeqLength int
)

var seqCmd = &cobra.Command{
	Use:   "seq <problem>",
	Short: "Print the unit sequence of a seed",
	Long: `Prints the unit indices a seed spawns, in order.

Examples:
  hexfall seq 0
  hexfall seq 3 --seed-index 2
  hexfall seq 3 --seed 17 --length 10`,
	Args: cobra.ExactArgs(1),
	Run:  runSeq,
}

func init() {
	seqCmd.Flags().IntVar(&flagSeedIndex, "seed-index", -1, "Index into the problem's source seeds (default: seed_index)")
	seqCmd.Flags().Int64Var(&flagSeqSeed, "seed", -1, "Seed value, need not be a source seed")
	seqCmd.Flags().IntVar(&flagSeqLength, "length", 0, "Sequence length (default: the problem's source length)")
}

func runSeq(_ *cobra.Command, args []string) {
	p := problemArg(loadProblems(), args[0])

	seed := uint32(flagSeqSeed)
	if flagSeqSeed < 0 {
		setup, err := p.Setup(seedIndexFlag())
		if err != nil {
			exitf("%v", err)
		}
		seed = setup.Seed
	}
	length := p.SourceLength
	if flagSeqLength > 0 {
		length = flagSeqLength
	}

	seq := hexcore.Sequence(len(p.Units), seed, length)
	parts := make([]string, len(seq))
	for i, idx := range seq {
		parts[i] = fmt.Sprint(idx)
	}
	fmt.Printf("Problem %d seed %d (%d units):\n", p.ID, seed, len(seq))
	fmt.Println(strings.Join(parts, " "))
}
