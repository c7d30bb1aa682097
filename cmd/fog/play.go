package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fog/internal/platform/tui"
	"github.com/vovakirdan/tui-fog/internal/registry"
	"github.com/vovakirdan/tui-fog/internal/storage"
)

var flagPlayLevel string

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Explore a level",
	Long: `Start a scene in the terminal. Without a scene, a menu lets you pick
the scene and level.

Controls:
  W/S, Up/Down      - Walk forward/backward
  A/D, Left/Right   - Turn
  L                 - Place or pick up a light
  F                 - Vision boost
  M                 - Toggle full map reveal
  G                 - Toggle seeing through walls
  X                 - Forget explored cells
  P/Space           - Pause
  R                 - Restart
  Esc/B             - Back
  Ctrl+S            - Save a screenshot to ~/.fog/screenshots
  Q/Ctrl+C          - Quit

Examples:
  fog play
  fog play explore --level maze
  fog play patrol --level cavern --seed 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayLevel, "level", "", "Level ID (default: halls)")
}

func runPlay(cmd *cobra.Command, args []string) {
	env, err := loadEnv()
	if err != nil {
		fail("%v", err)
	}
	cfg := runtimeConfig(flagPlayLevel)

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	if len(args) == 0 {
		if err := tui.RunSession(store, cfg, env); err != nil {
			fail("%v", err)
		}
		return
	}

	sceneID := args[0]
	if !registry.Exists(sceneID) {
		fail("unknown scene %q (run 'fog list' to see available scenes)", sceneID)
	}
	scene, err := registry.Create(sceneID, env)
	if err != nil {
		fail("%v", err)
	}

	state, err := tui.Run(scene, store, cfg)
	if err != nil {
		fail("%v", err)
	}
	if state.Ticks > 0 {
		fmt.Printf("%s on %s: %.1f%% explored in %d ticks (%d recomputes)\n",
			scene.Title(), state.LevelID, float64(storage.Permille(state.Explored))/10, state.Ticks, state.Recomputes)
	}
}
