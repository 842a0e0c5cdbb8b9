package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/config"
	"github.com/vovakirdan/tui-memory/internal/identity"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the local terminal",
	Long: `Start a play session in the current terminal.

Controls:
  Arrows/hjkl - Move the cursor
  Enter/Space - Flip the selected card
  n           - Next level (after a win)
  r           - Retry the level (after a win or loss)
  R           - Restart from level 1
  Tab         - Toggle daily/all-time leaderboard
  Q/Ctrl+C    - Quit

With --user, wins are recorded under that profile and the session
resumes one level above the profile's best. Without it the session is
anonymous and nothing is saved.

Examples:
  memory play
  memory play --user alice
  memory play --user alice --level 3
  memory play --seed 42 --config ./my-memory.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (0 = resume past the profile's best)")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early so the first frame lays out correctly
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works, unrecorded
		store = nil
	}

	ident, startLevel := resolvePlayer(store)
	if flagLevel > 0 {
		startLevel = flagLevel
	} else if gameCfg.Gameplay.StartLevel > 0 {
		startLevel = gameCfg.Gameplay.StartLevel
	}

	runErr := tui.RunPlay(store, ident, tui.PlayOptions{
		Game:       gameCfg,
		StartLevel: startLevel,
		Seed:       flagSeed,
		Width:      width,
		Height:     height,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolvePlayer maps --user to a profile and picks the resume level.
func resolvePlayer(store *storage.Store) (identity.Provider, int) {
	if flagUser == "" || store == nil {
		return identity.Anonymous{}, 1
	}

	id, err := store.EnsureProfile(flagUser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not resolve profile %q: %v\n", flagUser, err)
		return identity.Anonymous{}, 1
	}

	startLevel := 1
	if maxLevel, err := store.UserMaxLevel(flagUser); err == nil {
		startLevel = maxLevel + 1
	}

	return identity.Static{Identity: identity.Identity{ID: id, Username: flagUser}}, startLevel
}
