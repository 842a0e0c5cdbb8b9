package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump score history as JSON",
	Long: `Write the full score history to stdout as a JSON array, oldest run
first. The output round-trips through 'memory import'.

Examples:
  memory export > scores.json
  memory export --db ./old.db | memory import --db ./new.db`,
	Args: cobra.NoArgs,
	Run:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Load score history from JSON",
	Long: `Read a JSON score array from the given file, or stdin when no file
is given, and append every record to the database. Records from older
exports without a points field are accepted; their points are
recomputed when the leaderboard is built.

Import stops at the first malformed record and reports how many were
appended before it.

Examples:
  memory import scores.json
  cat scores.json | memory import`,
	Args: cobra.MaximumNArgs(1),
	Run:  runImport,
}

func runExport(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.ExportScores(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting scores: %v\n", err)
		os.Exit(1)
	}
}

func runImport(_ *cobra.Command, args []string) {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", args[0], err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	n, err := store.ImportScores(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing scores: %v (%d records imported)\n", err, n)
		os.Exit(1)
	}

	fmt.Printf("Imported %d score records\n", n)
}
