package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worktally/internal/clock"
	"github.com/worktally/internal/storage"
	"github.com/worktally/internal/timecalc"
)

var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out: close the open timesheet entry",
	Args:  cobra.NoArgs,
	RunE:  runOut,
}

func runOut(cmd *cobra.Command, args []string) error {
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
	today, err := client.EntriesForDay(ctx, person.ID, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	tracker := clock.FromEntries(today)
	startedAt := tracker.Session().ClockedInAt
	entryID, err := tracker.ClockOut(now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if _, err := client.CloseEntry(ctx, entryID, now); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := storage.SaveSession(base, tracker.Session()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Printf("Clocked out at %s", tracker.Session().ClockedOutAt)
	if h, m, err := timecalc.SinceClock(startedAt, now); err == nil {
		fmt.Printf(" (%s this session)", timecalc.FormatSignedHM(h, m))
	}
	fmt.Println()
	return nil
}
