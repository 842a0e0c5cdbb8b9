package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/rank"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	flagDaily       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard: each player's total score (best run per
level, summed) and highest completed level.

Examples:
  memory scores
  memory scores --daily
  memory scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagDaily, "daily", false, "Rank today's runs only")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse the leaderboard in a TUI")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunLeaderboard(store, flagDaily, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running leaderboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var (
		records []rank.Record
		filter  = rank.All()
		scope   = "All Time"
	)
	if flagDaily {
		filter = rank.Today()
		scope = "Today (" + filter.DateKey + ")"
		records, err = store.ScoresOn(filter.DateKey)
	} else {
		records, err = store.AllScores()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	entries, err := rank.Aggregate(records, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error ranking scores: %v\n", err)
		os.Exit(1)
	}

	gameCfg, cfgErr := config.Load(flagConfigPath)
	limit := 10
	if cfgErr == nil && gameCfg.Leaderboard.Limit > 0 {
		limit = gameCfg.Leaderboard.Limit
	}

	fmt.Printf("Leaderboard - %s\n", scope)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'memory play --user <name>' to get on the board!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-9s  %s\n", "Rank", "Player", "Max Level", "Total Score")
	fmt.Printf("  %-4s  %-16s  %-9s  %s\n", "----", "------", "---------", "-----------")

	for i, e := range entries {
		if i >= limit {
			break
		}
		fmt.Printf("  %-4d  %-16s  %-9d  %d\n", i+1, e.Username, e.MaxLevel, e.TotalScore)
	}
}
