package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/worktally/internal/model"
	"github.com/worktally/internal/storage"
	"github.com/worktally/internal/timecalc"
)

var reportFormat string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report worked, needed and overtime hours for day, week and month",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, json, yaml")
}

// periodReportOut is the serialized form of a period report. PercentWorked is
// a pointer because the ratio is undefined when no hours are needed, which
// JSON cannot represent as a number.
type periodReportOut struct {
	HoursWorked     int      `json:"hoursWorked" yaml:"hoursWorked"`
	MinutesWorked   int      `json:"minutesWorked" yaml:"minutesWorked"`
	HoursNeeded     float64  `json:"hoursNeeded" yaml:"hoursNeeded"`
	PercentWorked   *float64 `json:"percentWorked" yaml:"percentWorked"`
	OvertimeHours   int      `json:"overtimeHours" yaml:"overtimeHours"`
	OvertimeMinutes int      `json:"overtimeMinutes" yaml:"overtimeMinutes"`
}

type cycleReportsOut struct {
	Day   periodReportOut `json:"day" yaml:"day"`
	Week  periodReportOut `json:"week" yaml:"week"`
	Month periodReportOut `json:"month" yaml:"month"`
}

func reportOut(r model.PeriodReport) periodReportOut {
	out := periodReportOut{
		HoursWorked:     r.HoursWorked,
		MinutesWorked:   r.MinutesWorked,
		HoursNeeded:     r.HoursNeeded,
		OvertimeHours:   r.OvertimeHours,
		OvertimeMinutes: r.OvertimeMinutes,
	}
	if !math.IsInf(r.PercentWorked, 0) && !math.IsNaN(r.PercentWorked) {
		p := r.PercentWorked
		out.PercentWorked = &p
	}
	return out
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, client, base, err := setup(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	now := nowIn(cfg)

	_, reports, err := fetchCycle(ctx, client, cfg, now)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := storage.SaveReports(base, storage.CachedReports{ComputedAt: now, Reports: reports}); err != nil {
		log.Warn().Err(err).Msg("could not persist report cache")
	}

	out := cycleReportsOut{
		Day:   reportOut(reports.Day),
		Week:  reportOut(reports.Week),
		Month: reportOut(reports.Month),
	}

	switch reportFormat {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error encoding YAML:", err)
			os.Exit(2)
		}
		fmt.Print(string(data))
	default: // md
		fmt.Printf("Report for %s\n", timecalc.DateKey(now))
		fmt.Println("--------------------------------")
		fmt.Printf("%-8s%s\n", "Day", describeReport(reports.Day))
		fmt.Printf("%-8s%s\n", "Week", describeReport(reports.Week))
		fmt.Printf("%-8s%s\n", "Month", describeReport(reports.Month))
		if !cfg.CarriesOvertime() {
			fmt.Println("(overtime carry-forward disabled)")
		}
	}

	return nil
}
