package engine

import (
	"fmt"
	"math"

	"github.com/worktally/internal/model"
	"github.com/worktally/internal/timecalc"
)

// Aggregate walks every calendar day in the period, summing required hours
// (daily target scaled by each day's rate) and worked hours from the index.
// An open entry on the current day contributes its elapsed time since its
// start; an open entry on any other day is stale data and contributes
// nothing. The carry balance seeds the worked accumulators and is echoed
// unchanged in the report's overtime fields.
//
// An open entry dated today whose start time cannot be parsed is a hard
// error: its worked time cannot be derived.
func Aggregate(p model.Period, idx Index, ctx *Context, carry model.HoursMinutes) (model.PeriodReport, error) {
	hoursWorked := carry.Hours
	minutesWorked := carry.Minutes
	var hoursNeeded float64

	todayKey := timecalc.DateKey(ctx.Now)
	for day := range timecalc.Days(p.Start, p.End) {
		hoursNeeded += ctx.DailyHours * ctx.RateFor(day)

		key := timecalc.DateKey(day)
		for _, e := range idx[key] {
			switch {
			case e.Duration != nil:
				hoursWorked += e.Duration.Hours
				minutesWorked += e.Duration.Minutes
			case e.Open() && key == todayKey:
				h, m, err := timecalc.SinceClock(e.StartTime, ctx.Now)
				if err != nil {
					return model.PeriodReport{}, fmt.Errorf("open entry %s: %w", e.ID, err)
				}
				hoursWorked += h
				minutesWorked += m
			}
		}
	}

	// Normalize overflowing minutes into hours. The minutes sign follows the
	// running total, matching the display convention.
	if minutesWorked < 0 {
		hoursWorked += -minutesWorked / 60
	} else {
		hoursWorked += minutesWorked / 60
	}
	minutesWorked %= 60

	total := float64(hoursWorked) + float64(minutesWorked)/60
	var percent float64
	switch {
	case hoursNeeded != 0:
		percent = total / hoursNeeded * 100
	case total == 0:
		// Nothing owed and nothing worked: call it even.
		percent = 100
	case total > 0:
		percent = math.Inf(1)
	default:
		percent = math.Inf(-1)
	}

	return model.PeriodReport{
		HoursWorked:     hoursWorked,
		MinutesWorked:   minutesWorked,
		HoursNeeded:     hoursNeeded,
		PercentWorked:   percent,
		OvertimeHours:   carry.Hours,
		OvertimeMinutes: carry.Minutes,
	}, nil
}

// Overtime derives the signed overtime balance of a completed period: worked
// minus needed, in whole minutes, split into hours (truncated toward zero)
// and a signed minutes remainder. The balance is meant to be carried into
// the following period's Aggregate call.
func Overtime(p model.Period, idx Index, ctx *Context) (model.HoursMinutes, error) {
	r, err := Aggregate(p, idx, ctx, model.HoursMinutes{})
	if err != nil {
		return model.HoursMinutes{}, err
	}
	workedMinutes := r.HoursWorked*60 + r.MinutesWorked
	neededMinutes := int(math.Round(r.HoursNeeded * 60))
	diff := workedMinutes - neededMinutes
	return model.HoursMinutes{Hours: diff / 60, Minutes: diff % 60}, nil
}
