// t2048 plays the 2048 sliding-tile puzzle in the terminal, with animated
// moves, local and SSH play, a headless simulator, and a results database.
//
// Usage:
//
//	t2048 list               - List available variants
//	t2048 play [variant]     - Play a variant, or pick one from a menu
//	t2048 sim                - Let a bot play headlessly
//	t2048 results [variant]  - Browse finished games
//	t2048 serve              - Start SSH server for remote play
//	t2048 config             - Show or create the engine configuration
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: the configured frame rate)
//	--seed <value>    - Set RNG seed for reproducible games
//	--db <path>       - Set database path (default: ~/.t2048/results.db)
//	--config <path>   - Use a specific engine config file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfigPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal. Tiles glide
across the board frame by frame, equal tiles merge once per move, and a new
tile appears after every move.

Available commands:
  list     - Show all variants
  play     - Play a variant
  sim      - Let a bot play headlessly
  results  - Browse finished games
  serve    - Start SSH server for remote play
  config   - Show or create the engine configuration

Examples:
  t2048 play
  t2048 play 2048_strict --seed 42
  t2048 sim --moves 500 --watch :8080
  t2048 results 2048
  t2048 serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to engine config YAML")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEngine loads the engine configuration or exits.
func loadEngine() t2048.Config {
	cfg, err := config.LoadT2048(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg.Engine()
}

// tickRate returns --fps when given, otherwise the configured frame rate.
func tickRate(cmd *cobra.Command, engine t2048.Config) int {
	if cmd.Flags().Changed("fps") {
		return flagFPS
	}
	return engine.FrameRate
}

// terminalSize returns the size of stdout, falling back to 80x24.
func terminalSize() (width, height int) {
	width, height = 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
