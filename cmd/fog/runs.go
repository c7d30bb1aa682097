package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fog/internal/levels"
	"github.com/vovakirdan/tui-fog/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs <level>",
	Short: "Show the best recorded runs of a level",
	Long: `Display the best runs for a level, ranked by explored coverage and
then by the fewest ticks.

Examples:
  fog runs maze
  fog runs halls --limit 25
  fog runs cavern --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every run of the level")
}

func runRuns(_ *cobra.Command, args []string) {
	lvl, err := levels.Find(flagLevelsDir, args[0])
	if err != nil {
		fail("%v (run 'fog list' to see available levels)", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening runs database: %v", err)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(lvl.ID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared runs for %s.\n", lvl.Name)
		return
	}

	runs, err := store.TopRuns(lvl.ID, flagRunsLimit)
	if err != nil {
		fail("retrieving runs: %v", err)
	}

	fmt.Printf("Runs - %s\n", lvl.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'fog play explore --level %s' to chart it!\n", lvl.ID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-7s  %-10s  %-8s  %s\n", "Rank", "Coverage", "Ticks", "Recomputes", "Scene", "Date")
	fmt.Printf("  %-4s  %-8s  %-7s  %-10s  %-8s  %s\n", "----", "--------", "-----", "----------", "-----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8s  %-7d  %-10d  %-8s  %s\n",
			i+1,
			fmt.Sprintf("%.1f%%", r.Coverage()*100),
			r.Ticks,
			r.Recomputes,
			r.SceneID,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.LevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	if ls, ok := stats[lvl.ID]; ok {
		fmt.Println()
		fmt.Printf("%d runs, best %.1f%%, average %.1f%%, %d ticks in total\n",
			ls.RunCount, float64(ls.BestPermille)/10, ls.AvgPermille/10, ls.TotalTicks)
	}
}
