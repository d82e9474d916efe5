package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsPlain bool
	flagResultsStats bool
	flagResultsClear bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [variant]",
	Short: "Browse finished games",
	Long: `Show the best finished games. On a terminal this opens an interactive
table; use --plain (or pipe the output) for plain text.

Examples:
  t2048 results
  t2048 results 2048 --plain --limit 5
  t2048 results --stats
  t2048 results 2048_strict --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Number of results per variant")
	resultsCmd.Flags().BoolVar(&flagResultsPlain, "plain", false, "Print plain text instead of the interactive table")
	resultsCmd.Flags().BoolVar(&flagResultsStats, "stats", false, "Print per-variant statistics")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete the recorded results of the variant")
}

func runResults(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		requireVariant(args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagResultsClear:
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a variant")
			os.Exit(1)
		}
		if err := store.ClearResults(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared results for %s.\n", args[0])

	case flagResultsStats:
		printStats(store)

	case !flagResultsPlain && term.IsTerminal(int(os.Stdout.Fd())):
		width, height := terminalSize()
		if _, err := tui.RunResults(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		variants := registry.List()
		if len(args) == 1 {
			variants = []registry.GameInfo{{ID: args[0], Title: args[0]}}
			for _, g := range registry.List() {
				if g.ID == args[0] {
					variants[0].Title = g.Title
				}
			}
		}
		for _, v := range variants {
			printResults(store, v)
		}
	}
}

// printResults prints the best results of one variant as plain text.
func printResults(store *storage.Store, v registry.GameInfo) {
	results, err := store.TopResults(v.ID, flagResultsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results - %s\n", v.Title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to record the first one!\n", v.ID)
		fmt.Println()
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %s\n", "Rank", "Max Tile", "Moves", "Outcome", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-7s  %s\n", "----", "--------", "-----", "-------", "----")

	for i, r := range results {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %-7s  %s\n", i+1, r.MaxTile, r.Moves, r.Outcome, dateStr)
	}
	fmt.Println()
}

// printStats prints aggregate statistics for every variant played so far.
func printStats(store *storage.Store) {
	stats, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving statistics: %v\n", err)
		os.Exit(1)
	}
	if len(stats) == 0 {
		fmt.Println("No games recorded yet.")
		return
	}

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-12s  %-5s  %-9s  %-9s  %-6s  %s\n", "Variant", "Games", "Best Tile", "Avg Moves", "Losses", "Last Played")
	fmt.Printf("  %-12s  %-5s  %-9s  %-9s  %-6s  %s\n", "-------", "-----", "---------", "---------", "------", "-----------")
	for _, id := range ids {
		s := stats[id]
		fmt.Printf("  %-12s  %-5d  %-9d  %-9.1f  %-6d  %s\n",
			id, s.GamesCount, s.BestTile, s.AvgMoves, s.Losses, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
