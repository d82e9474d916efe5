package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
	"github.com/vovakirdan/tui-2048/internal/transport/websocket"
)

var flagPlayWatch string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant. Without a variant, a menu lets you
pick one and brings you back after each game.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  P/Space           - Pause
  B/Esc             - Back to menu (when paused or game over)
  R                 - Restart
  Ctrl+S            - Save a screenshot to ~/.t2048/screenshots
  Q/Ctrl+C          - Quit

Examples:
  t2048 play
  t2048 play 2048
  t2048 play 2048_strict --seed 7
  t2048 play 2048 --watch :8080     # spectators connect to ws://host:8080/ws
  t2048 play 2048 --config ./my-t2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayWatch, "watch", "", "Stream frames to WebSocket spectators on this address (e.g. :8080)")
}

// observable is implemented by games that report every rendered frame.
type observable interface {
	SetObserver(fn t2048.RenderFunc)
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		requireVariant(args[0])
	}

	engine := loadEngine()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	var hub *websocket.Hub
	if flagPlayWatch != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		hub = startHub(ctx, flagPlayWatch)
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate(cmd, engine),
		Seed:     flagSeed,
	}

	if len(args) == 1 {
		if _, err := playOne(args[0], engine, store, hub, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runMenuLoop(engine, store, hub, cfg)
}

// runMenuLoop alternates between the variant menu, games, and the results screen.
func runMenuLoop(engine t2048.Config, store *storage.Store, hub *websocket.Hub, cfg core.RuntimeConfig) {
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsResults {
			goBack, rErr := tui.RunResults(store, cfg.ScreenW, cfg.ScreenH)
			if rErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", rErr)
			}
			if goBack {
				continue
			}
			return
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := playOne(menuResult.GameID, engine, store, hub, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if !backToMenu {
			return
		}
	}
}

// playOne runs a single game. It returns true if the player went back to the menu.
func playOne(id string, engine t2048.Config, store *storage.Store, hub *websocket.Hub, cfg core.RuntimeConfig) (bool, error) {
	game, err := tui.CreateGame(id, engine)
	if err != nil {
		return false, err
	}

	if hub != nil {
		if o, ok := game.(observable); ok {
			o.SetObserver(hub.Publish)
		}
	}

	return tui.Run(game, store, cfg)
}

// startHub serves spectators in the background. The hub logs nowhere so it
// cannot scribble over the game screen.
func startHub(ctx context.Context, addr string) *websocket.Hub {
	hub := websocket.NewHub()
	hub.SetLogger(log.New(io.Discard))

	go func() {
		if err := hub.ListenAndServe(ctx, addr); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: spectator stream stopped: %v\n", err)
		}
	}()

	fmt.Printf("Spectators can connect to ws://%s/ws\n", displayAddr(addr))
	return hub
}

// displayAddr fills in localhost for addresses like ":8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
