// fog is a fog-of-war visibility playground for the terminal.
//
// Usage:
//
//	fog list                 - List scenes and levels
//	fog play [scene]         - Explore a level (menu when no scene is given)
//	fog serve                - Start SSH server for remote sessions
//	fog stream               - Run a patrol and stream fog over WebSocket
//	fog bench                - Run a headless patrol and report engine cost
//	fog runs <level>         - Show the best recorded runs of a level
//	fog board                - Browse recorded runs interactively
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible patrols
//	--db <path>        - Set database path (default: ~/.fog/runs.db)
//	--config <path>    - Engine config YAML
//	--quality <name>   - Quality preset: low, medium, high, ultra
//	--levels <dir>     - Extra level directory
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fog/internal/config"
	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/registry"
	"github.com/vovakirdan/tui-fog/internal/storage"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-fog/internal/scenes/explore"
	_ "github.com/vovakirdan/tui-fog/internal/scenes/patrol"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagQuality   string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fog",
	Short: "Fog of war in your terminal",
	Long: `fog runs a grid visibility engine: a viewer walks a level, a vision
cone and placed lights reveal what is in sight, and everything once seen
stays remembered.

Available commands:
  list     - Show scenes and levels
  play     - Explore a level
  serve    - Start SSH server for remote sessions
  stream   - Stream a patrol over WebSocket
  bench    - Headless patrol with engine statistics
  runs     - Best recorded runs of a level
  board    - Interactive run board

Examples:
  fog list
  fog play explore --level maze
  fog play patrol --seed 7 --quality high
  fog bench --level cavern --ticks 3000 --trace ./traces
  fog stream --addr :8080`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fog/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagQuality, "quality", "", "Quality preset: low, medium, high, ultra")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(boardCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadEnv builds the scene environment from the global flags.
func loadEnv() (registry.Env, error) {
	engine, err := config.LoadEngine(flagConfig)
	if err != nil {
		return registry.Env{}, err
	}
	preset, err := config.ParseQuality(flagQuality)
	if err != nil {
		return registry.Env{}, err
	}
	config.ApplyQualityPreset(&engine, preset)
	engine.Validate()

	return registry.Env{Engine: engine, LevelsDir: flagLevelsDir}, nil
}

// runtimeConfig returns the runtime config for the current terminal.
func runtimeConfig(levelID string) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.LevelID = levelID
	return cfg
}

// openStoreOrWarn opens the runs database; failures only disable saving.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}
