package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/sim"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

var (
	flagSimVariant  string
	flagSimGames    int
	flagSimMoves    int
	flagSimStrategy string
	flagSimWatch    string
	flagSimSave     bool
	flagSimVerbose  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let a bot play headlessly",
	Long: `Play games with a simple bot and no terminal UI. Every move runs through
the same animated resolver as interactive play, frame by frame.

Strategies:
  greedy - Prefer merges, then free cells (default)
  cycle  - Rotate through the directions

With --watch, frames are paced at the configured frame rate and streamed to
WebSocket spectators, so the bot's game can be watched live.

Examples:
  t2048 sim
  t2048 sim --games 10 --moves 1000 --seed 1
  t2048 sim --variant 2048_strict --strategy cycle
  t2048 sim --watch :8080 --verbose`,
	Run: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimVariant, "variant", t2048.VariantClassic, "Variant whose spawn rule to use")
	simCmd.Flags().IntVar(&flagSimGames, "games", 1, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 0, "Stop each game after this many moves (0 = until lost)")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "greedy", "Bot strategy: greedy, cycle")
	simCmd.Flags().StringVar(&flagSimWatch, "watch", "", "Stream frames to WebSocket spectators on this address (e.g. :8080)")
	simCmd.Flags().BoolVar(&flagSimSave, "save", true, "Record finished games in the results database")
	simCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every move")
}

func runSim(_ *cobra.Command, _ []string) {
	requireVariant(flagSimVariant)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048-sim",
	})
	if flagSimVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	engine := loadEngine()
	if flagSimVariant == t2048.VariantStrict {
		engine.SpawnOnNoop = false
	}

	strategy, err := sim.NewStrategy(flagSimStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *storage.Store
	if flagSimSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open results database", "error", err)
			store = nil
		}
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	opts := sim.Options{
		Engine:   engine,
		MaxMoves: flagSimMoves,
		Strategy: strategy,
	}

	if flagSimWatch != "" {
		hub := websocket.NewHub()
		hub.SetLogger(logger.WithPrefix("t2048-watch"))
		go func() {
			if err := hub.ListenAndServe(ctx, flagSimWatch); err != nil {
				logger.Error("spectator stream stopped", "error", err)
			}
		}()

		pacer := t2048.NewTickerPacer(engine.FrameRate)
		defer pacer.Stop()

		opts.Pacer = pacer
		opts.Render = hub.Publish
		opts.OnMove = hub.PublishResult
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	best := 0
	for i := range flagSimGames {
		opts.Seed = seed + int64(i)

		sum, err := sim.Run(ctx, opts, logger)
		if errors.Is(err, context.Canceled) {
			logger.Info("interrupted", "game", i+1, "moves", sum.Moves, "max_tile", sum.MaxTile)
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		outcome := storage.OutcomeLimit
		if sum.Lost {
			outcome = storage.OutcomeLost
		}
		logger.Info("game finished",
			"game", i+1,
			"seed", sum.Seed,
			"outcome", outcome,
			"moves", sum.Moves,
			"max_tile", sum.MaxTile,
			"merges", sum.Merges,
			"frames", sum.Frames,
		)
		best = max(best, sum.MaxTile)

		if store != nil && sum.Moves > 0 {
			if _, err := store.SaveResult(storage.ResultEntry{
				GameID:  flagSimVariant,
				MaxTile: sum.MaxTile,
				Moves:   sum.Moves,
				Outcome: outcome,
				Seed:    sum.Seed,
			}); err != nil {
				logger.Warn("could not save result", "error", err)
			}
		}
	}

	if flagSimGames > 1 {
		logger.Info("done", "games", flagSimGames, "best_tile", best)
	}
}
