package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nya3jp/icfpc2015/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick problems and seeds interactively",
	Long: `Start hexfall in interactive menu mode.

Pick a problem and a seed, play it, and return to the menu when you go
back. Stored solutions can be replayed and browsed on the scoreboard.

Controls:
  Up/Down/j/k     - Choose a problem
  Left/Right/h/l  - Choose a seed
  Enter/Space     - Play
  V               - Replay the best stored solution
  Tab             - Scoreboard
  Q               - Quit

Examples:
  hexfall menu
  hexfall menu --problems ./problems --fps 30`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := menu(); err != nil {
		exitf("%v", err)
	}
}

func menu() error {
	restoreLog := logToFile()
	defer restoreLog()

	list := loadProblems()
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

	if err := tui.RunSession(newEnv(list, store, sub), playerName()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
