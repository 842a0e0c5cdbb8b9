package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage player profiles",
	Long: `Create and list player profiles.

Profiles are created automatically the first time a name plays, so
these commands are mostly for pre-registering names and inspecting
who is on the server.`,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a player profile",
	Long: `Create a profile with the given name.

Names are unique ignoring case: if "Alice" exists, "alice" is taken.

Examples:
  memory profile create alice`,
	Args: cobra.ExactArgs(1),
	Run:  runProfileCreate,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List player profiles",
	Args:  cobra.NoArgs,
	Run:   runProfileList,
}

func init() {
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileListCmd)
}

func runProfileCreate(_ *cobra.Command, args []string) {
	username := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	profile, err := store.CreateProfile(username)
	if err != nil {
		if errors.Is(err, storage.ErrProfileExists) {
			fmt.Fprintf(os.Stderr, "Error: profile %q already exists\n", username)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error creating profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created profile %s (%s)\n", profile.Username, profile.ID)
}

func runProfileList(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	profiles, err := store.Profiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing profiles: %v\n", err)
		os.Exit(1)
	}

	if len(profiles) == 0 {
		fmt.Println("No profiles yet.")
		return
	}

	fmt.Printf("  %-16s  %-19s  %s\n", "Player", "Created", "ID")
	for _, p := range profiles {
		fmt.Printf("  %-16s  %-19s  %s\n", p.Username, p.CreatedAt.Format("2006-01-02 15:04"), p.ID)
	}
}
