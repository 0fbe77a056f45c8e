package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worktally/internal/model"
	"github.com/worktally/internal/timecalc"
)

var (
	entriesWeek   bool
	entriesFormat string
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List timesheet entries",
	Args:  cobra.NoArgs,
	RunE:  runEntries,
}

func init() {
	entriesCmd.Flags().BoolVar(&entriesWeek, "week", false, "Show this week's entries instead of today's")
	entriesCmd.Flags().StringVar(&entriesFormat, "format", "md", "Output format: md, csv, json")
}

func runEntries(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, client, _, err := setup(ctx)
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

	var entries []model.TimesheetEntry
	if entriesWeek {
		from, to := timecalc.WeekRange(now)
		entries, err = client.TimesheetEntries(ctx, person.ID, from, to)
	} else {
		entries, err = client.EntriesForDay(ctx, person.ID, now)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch entriesFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "csv":
		printCSV(entries)
	default: // md
		printEntries(entries)
	}

	return nil
}

// printEntries groups entries by date and prints them.
func printEntries(entries []model.TimesheetEntry) {
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return
	}

	var currentDay string
	for _, e := range entries {
		if e.Date != currentDay {
			fmt.Println(e.Date)
			currentDay = e.Date
		}

		endStr := "ongoing"
		durStr := ""
		if e.EndTime != nil {
			endStr = *e.EndTime
		}
		if e.Duration != nil {
			durStr = fmt.Sprintf(" (%s)", timecalc.FormatSignedHM(e.Duration.Hours, e.Duration.Minutes))
		}

		fmt.Printf("%s–%s%s\n", e.StartTime, endStr, durStr)
	}
}

func printCSV(entries []model.TimesheetEntry) {
	fmt.Println("date,start,end,duration_minutes")
	for _, e := range entries {
		endStr := ""
		if e.EndTime != nil {
			endStr = *e.EndTime
		}
		durMin := 0
		if e.Duration != nil {
			durMin = e.Duration.Hours*60 + e.Duration.Minutes
		}
		fmt.Printf("%s,%s,%s,%d\n",
			csvEscape(e.Date),
			csvEscape(e.StartTime),
			csvEscape(endStr),
			durMin,
		)
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
