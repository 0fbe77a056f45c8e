package cmd

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/worktally/internal/clock"
	"github.com/worktally/internal/config"
	"github.com/worktally/internal/engine"
	"github.com/worktally/internal/humaans"
	"github.com/worktally/internal/model"
	"github.com/worktally/internal/storage"
	"github.com/worktally/internal/timecalc"
	"github.com/worktally/internal/tui"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show clock state and today's progress",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Keep the status on screen with a live clock")
}

var (
	clockedInStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSuccess)).Bold(true)
	clockedOutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorWarning)).Bold(true)
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(tui.ColorSecondaryText))
)

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, client, base, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	now := nowIn(cfg)

	snap, reports, err := fetchCycle(ctx, client, cfg, now)
	if err != nil {
		log.Warn().Err(err).Msg("fetch failed, falling back to cached state")
		printCachedStatus(base)
		return nil
	}

	tracker := clock.FromEntries(snap.TodayEntries)
	if err := storage.SaveSession(base, tracker.Session()); err != nil {
		log.Warn().Err(err).Msg("could not persist clock session")
	}
	if err := storage.SaveReports(base, storage.CachedReports{ComputedAt: now, Reports: reports}); err != nil {
		log.Warn().Err(err).Msg("could not persist report cache")
	}

	if statusWatch {
		return tui.RunWatch(snap.Person.FullName(), snap.JobTitle, tracker.Session(), reports.Day, now)
	}

	who := snap.Person.FullName()
	if snap.JobTitle != "" {
		who += " · " + snap.JobTitle
	}
	fmt.Println(who)

	s := tracker.Session()
	if tracker.Open() {
		fmt.Println(clockedInStyle.Render("Clocked in") + mutedStyle.Render(" since "+s.ClockedInAt))
	} else if s.ClockedOutAt != "" {
		fmt.Println(clockedOutStyle.Render("Clocked out") + mutedStyle.Render(" at "+s.ClockedOutAt))
	} else {
		fmt.Println(clockedOutStyle.Render("Not clocked in today"))
	}

	fmt.Printf("Today: %s\n", describeReport(reports.Day))
	return nil
}

// printCachedStatus shows the last persisted session and reports when the
// API is unreachable.
func printCachedStatus(base string) {
	session, found, err := storage.LoadSession(base)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !found {
		fmt.Println("No cached state available.")
		return
	}
	if session.OpenEntryID != "" {
		fmt.Println(clockedInStyle.Render("Clocked in") + mutedStyle.Render(" since "+session.ClockedInAt+" (cached)"))
	} else if session.ClockedOutAt != "" {
		fmt.Println(clockedOutStyle.Render("Clocked out") + mutedStyle.Render(" at "+session.ClockedOutAt+" (cached)"))
	} else {
		fmt.Println(clockedOutStyle.Render("Not clocked in") + mutedStyle.Render(" (cached)"))
	}

	cached, found, err := storage.LoadReports(base)
	if err != nil || !found {
		return
	}
	fmt.Printf("Today: %s (as of %s)\n",
		describeReport(cached.Reports.Day), cached.ComputedAt.Format("2006-01-02 15:04"))
}

// describeReport formats one period report as a single line.
func describeReport(r model.PeriodReport) string {
	out := fmt.Sprintf("%s worked of %s needed",
		timecalc.FormatSignedHM(r.HoursWorked, r.MinutesWorked),
		timecalc.FormatHours(r.HoursNeeded))
	if p := formatPercent(r.PercentWorked); p != "" {
		out += fmt.Sprintf(" (%s)", p)
	}
	if r.OvertimeHours != 0 || r.OvertimeMinutes != 0 {
		out += fmt.Sprintf(", %s carried", timecalc.FormatSignedHM(r.OvertimeHours, r.OvertimeMinutes))
	}
	return out
}

// formatPercent renders a percentage with one decimal; non-finite values
// (no needed hours) render as empty.
func formatPercent(p float64) string {
	if math.IsInf(p, 0) || math.IsNaN(p) {
		return ""
	}
	return fmt.Sprintf("%.1f%%", p)
}

// fetchCycle fetches a snapshot and runs one full reporting cycle on it.
func fetchCycle(ctx context.Context, client *humaans.Client, cfg config.Config, now time.Time) (*humaans.Snapshot, engine.CycleReports, error) {
	snap, err := humaans.FetchSnapshot(ctx, client, now)
	if err != nil {
		return nil, engine.CycleReports{}, err
	}
	idx := engine.BuildIndex(snap.Entries)
	reports, err := engine.RunCycle(idx, snap.EngineContext(now, cfg.DailyHours), cfg.CarriesOvertime())
	if err != nil {
		return nil, engine.CycleReports{}, err
	}
	return snap, reports, nil
}
