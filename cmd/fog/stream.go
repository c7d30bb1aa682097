package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fog/internal/core"
	"github.com/vovakirdan/tui-fog/internal/fog"
	"github.com/vovakirdan/tui-fog/internal/scenes/patrol"
	"github.com/vovakirdan/tui-fog/internal/sim"
	"github.com/vovakirdan/tui-fog/internal/storage"
	"github.com/vovakirdan/tui-fog/internal/transport/ws"
)

var (
	flagStreamAddr  string
	flagStreamLevel string
	flagStreamQueue int
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Run a patrol and stream its fog over WebSocket",
	Long: `Run an endless series of autopilot patrols and publish every fog
update over WebSocket. Clients connecting to /fog first receive the whole
grid as a "frame" message, then one "patch" message per changed region.
/status reports hub counters as JSON.

Each finished patrol is recorded and the next one starts with seed+1.

Examples:
  fog stream
  fog stream --addr :9000 --level cavern --quality high`,
	Run: runStream,
}

func init() {
	streamCmd.Flags().StringVar(&flagStreamAddr, "addr", ":8080", "HTTP listen address")
	streamCmd.Flags().StringVar(&flagStreamLevel, "level", "", "Level ID (default: halls)")
	streamCmd.Flags().IntVar(&flagStreamQueue, "queue", ws.DefaultQueueSize, "Per-client message queue size")
}

func runStream(_ *cobra.Command, _ []string) {
	env, err := loadEnv()
	if err != nil {
		fail("%v", err)
	}
	logger := newLogger("fog-stream")

	hub := ws.NewHub(ws.WithLogger(logger), ws.WithQueueSize(flagStreamQueue))
	env.Targets = []fog.RenderTarget{hub}
	env.Observer = sim.ObserverFunc(func(ev sim.TickEvent) {
		if ev.Result.Skipped {
			logger.Debug("tick skipped", "level", ev.LevelID, "cause", ev.Result.Cause)
		}
	})

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.LevelID = flagStreamLevel

	scene := patrol.New(env)
	if err := scene.Reset(cfg); err != nil {
		fail("%v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/fog", hub.Handler())
	mux.Handle("/status", hub.StatusHandler())
	srv := &http.Server{
		Addr:              flagStreamAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()
	logger.Info("streaming", "addr", flagStreamAddr, "level", scene.Config().LevelID, "seed", cfg.Seed)
	fmt.Printf("Connect a WebSocket client to ws://localhost%s/fog\n", flagStreamAddr)

	ticker := time.NewTicker(time.Second / time.Duration(max(flagFPS, 1)))
	defer ticker.Stop()

	in := core.NewInputFrame()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case err := <-serveErr:
			fail("http: %v", err)
		case <-ticker.C:
			res := scene.Step(in)
			if !res.State.Finished {
				continue
			}
			st := res.State
			logger.Info("patrol finished",
				"level", st.LevelID,
				"explored", fmt.Sprintf("%.1f%%", st.Explored*100),
				"ticks", st.Ticks,
				"clients", hub.Clients(),
				"dropped", hub.Dropped(),
			)
			if store != nil {
				if _, err := store.SaveRun(storage.Run{
					SceneID:          scene.ID(),
					LevelID:          st.LevelID,
					Ticks:            st.Ticks,
					Recomputes:       st.Recomputes,
					ExploredPermille: storage.Permille(st.Explored),
				}); err != nil {
					logger.Warn("could not save run", "error", err)
				}
			}
			cfg.Seed++
			if err := scene.Reset(cfg); err != nil {
				fail("%v", err)
			}
		}
	}

	logger.Info("shutting down...")
	hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
