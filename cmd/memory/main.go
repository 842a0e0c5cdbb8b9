// memory is a terminal memory card-matching game with level progression,
// per-user scoring, and a shared leaderboard.
//
// Usage:
//
//	memory play              - Play in the local terminal
//	memory scores            - Show the leaderboard
//	memory serve             - Start SSH server for remote play
//	memory profile           - Manage player profiles
//	memory export / import   - Move score history between databases
//
// Global flags:
//
//	--db <path>     - Set database path (default: ~/.memory/scores.db)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--user <name>   - Play as the named profile
//	--config <path> - Path to custom game config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagDBPath     string
	flagSeed       int64
	flagUser       string
	flagConfigPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "memory",
	Short: "Memory Match - flip cards and clear levels in your terminal",
	Long: `Memory Match is a terminal card-matching game. Flip two cards per move,
clear every pair within the move budget, and climb through levels of
growing board size. Wins are scored and ranked on a shared leaderboard.

Available commands:
  play     - Play in the local terminal
  scores   - View the leaderboard
  serve    - Start SSH server for remote play
  profile  - Manage player profiles
  export   - Dump score history as JSON
  import   - Load score history from JSON

Examples:
  memory play --user alice
  memory scores --daily
  memory serve --ssh :2222
  memory export > scores.json`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.memory/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagUser, "user", "", "Profile name to play and record scores as")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to custom game config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
