package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/scenes/patrol"
	"github.com/vovakirdan/tui-fog/internal/sim"
	"github.com/vovakirdan/tui-fog/internal/storage"
	"github.com/vovakirdan/tui-fog/internal/trace"
)

var (
	flagBenchLevel string
	flagBenchTicks int
	flagTraceDir   string
	flagBenchSave  bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a headless patrol and report engine cost",
	Long: `Run one autopilot patrol as fast as possible without a terminal and
print engine counters. The simulated tick length still follows --fps.

With --trace, every tick is appended as a JSON line to
<dir>/ticks-YYYY-MM-DD-HH.jsonl.zst.

Examples:
  fog bench
  fog bench --level maze --ticks 5000 --quality ultra
  fog bench --trace ./traces --seed 42 --save`,
	Run: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&flagBenchLevel, "level", "", "Level ID (default: halls)")
	benchCmd.Flags().IntVar(&flagBenchTicks, "ticks", 0, "Ticks to run (0 = the patrol's default budget)")
	benchCmd.Flags().StringVar(&flagTraceDir, "trace", "", "Directory for zstd tick traces")
	benchCmd.Flags().BoolVar(&flagBenchSave, "save", false, "Record the run in the database")
}

func runBench(_ *cobra.Command, _ []string) {
	if err := bench(); err != nil {
		fail("%v", err)
	}
}

// bench returns errors instead of exiting so the trace and the database
// are always closed.
func bench() (err error) {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	logger := newLogger("fog-bench")

	var tw *trace.Writer
	traceErrs := 0
	if flagTraceDir != "" {
		tw = trace.NewWriter(flagTraceDir)
		defer func() {
			if cerr := tw.Close(); cerr != nil {
				logger.Warn("closing trace", "error", cerr)
				err = errors.Join(err, cerr)
			}
		}()
	}
	env.Observer = sim.ObserverFunc(func(ev sim.TickEvent) {
		if ev.Result.Skipped {
			logger.Debug("tick skipped", "tick", ev.Tick, "cause", ev.Result.Cause)
		}
		if tw == nil {
			return
		}
		if err := tw.Write(trace.FromResult(ev.SceneID, ev.LevelID, ev.Tick, ev.Result, ev.Explored)); err != nil {
			traceErrs++
			if traceErrs == 1 {
				logger.Warn("trace write failed", "error", err)
			}
		}
	})

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	cfg.LevelID = flagBenchLevel

	scene := patrol.New(env)
	if flagBenchTicks > 0 {
		scene.SetBudget(flagBenchTicks)
	}
	if err := scene.Reset(cfg); err != nil {
		return err
	}

	in := core.NewInputFrame()
	start := time.Now()
	for !scene.Finished() {
		scene.Step(in)
	}
	elapsed := time.Since(start)

	sess := scene.Session()
	stats := sess.Engine().Stats()
	st := scene.State()
	perTick := time.Duration(0)
	if stats.Ticks > 0 {
		perTick = elapsed / time.Duration(stats.Ticks)
	}

	fmt.Printf("Bench - %s (seed %d)\n", sess.Level().Name, cfg.Seed)
	fmt.Println()
	fmt.Printf("  %-14s %d\n", "Ticks", stats.Ticks)
	fmt.Printf("  %-14s %s (%s/tick)\n", "Elapsed", elapsed.Round(time.Microsecond), perTick)
	fmt.Printf("  %-14s %d (%.1f%%)\n", "Recomputes", stats.Recomputes, pct(stats.Recomputes, stats.Ticks))
	fmt.Printf("  %-14s %d\n", "Skipped", stats.Skipped)
	fmt.Printf("  %-14s %d\n", "Rays", stats.Rays)
	fmt.Printf("  %-14s %d\n", "Samples", stats.Samples)
	fmt.Printf("  %-14s %d in %d uploads\n", "Cells uploaded", stats.CellsUploaded, sess.Layer().Uploads())
	fmt.Printf("  %-14s %.1f%%\n", "Explored", st.Explored*100)
	if tw != nil {
		fmt.Printf("  %-14s %d records -> %s\n", "Trace", tw.Written(), tw.Path())
		if traceErrs > 0 {
			fmt.Printf("  %-14s %d\n", "Trace errors", traceErrs)
		}
	}

	if !flagBenchSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()
	_, err = store.SaveRun(storage.Run{
		SceneID:          scene.ID(),
		LevelID:          st.LevelID,
		Ticks:            st.Ticks,
		Recomputes:       st.Recomputes,
		ExploredPermille: storage.Permille(st.Explored),
	})
	return err
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}
