package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fog/internal/platform/tui"
	"github.com/vovakirdan/tui-fog/internal/storage"
)

var flagBoardLevel string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse recorded runs interactively",
	Long: `Open a table of the best runs, one level at a time.

Controls:
  Up/Down        - Scroll
  Tab/Shift+Tab  - Next/previous level
  Q              - Quit`,
	Run: runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&flagBoardLevel, "level", "", "Level to show first")
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	cfg := runtimeConfig("")
	if err := tui.RunBoard(store, flagLevelsDir, flagBoardLevel, cfg.ScreenW, cfg.ScreenH); err != nil {
		fail("%v", err)
	}
}
