package engine

import (
	"fmt"

	"github.com/worktally/internal/model"
	"github.com/worktally/internal/timecalc"
)

// CycleReports holds the three reports of one reporting cycle.
type CycleReports struct {
	Day   model.PeriodReport `json:"day" yaml:"day"`
	Week  model.PeriodReport `json:"week" yaml:"week"`
	Month model.PeriodReport `json:"month" yaml:"month"`
}

// RunCycle produces the month, week and day reports for the Context's "now".
// Each report folds in the overtime balance of the sub-period preceding it:
// the month carry always spans from year start, while the week and day
// carries span from year start when carryOvertime is set and only from the
// enclosing month/week start otherwise.
func RunCycle(idx Index, ctx *Context, carryOvertime bool) (CycleReports, error) {
	yearStart := timecalc.YearStart(ctx.Now)
	monthStart, monthEnd := timecalc.MonthRange(ctx.Now)
	weekStart, weekEnd := timecalc.WeekRange(ctx.Now)
	today := timecalc.StartOfDay(ctx.Now)

	monthCarry, err := Overtime(model.Period{Start: yearStart, End: monthStart.AddDate(0, 0, -1)}, idx, ctx)
	if err != nil {
		return CycleReports{}, fmt.Errorf("month carry: %w", err)
	}
	month, err := Aggregate(model.Period{Start: monthStart, End: monthEnd}, idx, ctx, monthCarry)
	if err != nil {
		return CycleReports{}, fmt.Errorf("month report: %w", err)
	}

	weekFrom := monthStart
	if carryOvertime {
		weekFrom = yearStart
	}
	weekCarry, err := Overtime(model.Period{Start: weekFrom, End: weekStart.AddDate(0, 0, -1)}, idx, ctx)
	if err != nil {
		return CycleReports{}, fmt.Errorf("week carry: %w", err)
	}
	week, err := Aggregate(model.Period{Start: weekStart, End: weekEnd}, idx, ctx, weekCarry)
	if err != nil {
		return CycleReports{}, fmt.Errorf("week report: %w", err)
	}

	dayFrom := weekStart
	if carryOvertime {
		dayFrom = yearStart
	}
	dayCarry, err := Overtime(model.Period{Start: dayFrom, End: today.AddDate(0, 0, -1)}, idx, ctx)
	if err != nil {
		return CycleReports{}, fmt.Errorf("day carry: %w", err)
	}
	day, err := Aggregate(model.Period{Start: today, End: today}, idx, ctx, dayCarry)
	if err != nil {
		return CycleReports{}, fmt.Errorf("day report: %w", err)
	}

	return CycleReports{Day: day, Week: week, Month: month}, nil
}
