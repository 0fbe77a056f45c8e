package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worktally/internal/clock"
	"github.com/worktally/internal/storage"
)

var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in: open a new timesheet entry",
	Args:  cobra.NoArgs,
	RunE:  runIn,
}

func runIn(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, client, base, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	now := nowIn(cfg)

	person, err := client.Me(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Derive the clock state from the remote timesheet so a stale local
	// session cannot cause a double entry.
	today, err := client.EntriesForDay(ctx, person.ID, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	tracker := clock.FromEntries(today)
	if tracker.Open() {
		fmt.Fprintf(os.Stderr, "Already clocked in since %s.\n", tracker.Session().ClockedInAt)
		os.Exit(2)
	}

	entry, err := client.CreateEntry(ctx, person.ID, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := tracker.ClockIn(entry.ID, now); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := storage.SaveSession(base, tracker.Session()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Clocked in at %s\n", tracker.Session().ClockedInAt)
	return nil
}
