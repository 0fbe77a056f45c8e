package humaans

import (
	"context"
	"fmt"
	"time"

	"github.com/worktally/internal/engine"
	"github.com/worktally/internal/model"
	"github.com/worktally/internal/timecalc"
)

// Snapshot is the read-only input of one reporting cycle, fetched in a
// single pass. A failed fetch fails the whole cycle; there are no partial
// snapshots.
type Snapshot struct {
	Person       Person
	JobTitle     string
	TodayEntries []model.TimesheetEntry
	Entries      []model.TimesheetEntry
	Holidays     map[string]bool
	FullDaysAway map[string]bool
	HalfDaysAway map[string]bool
}

// FetchSnapshot collects everything a reporting cycle reads, in sequence:
// person, job title, today's entries, the year-to-date timesheet, time-away
// markers, and the person's holiday calendars. The fetch window spans from
// year start through the end of the current month.
func FetchSnapshot(ctx context.Context, c *Client, now time.Time) (*Snapshot, error) {
	person, err := c.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching person: %w", err)
	}
	title, err := c.JobTitle(ctx, person.ID)
	if err != nil {
		return nil, fmt.Errorf("fetching job title: %w", err)
	}
	today, err := c.EntriesForDay(ctx, person.ID, now)
	if err != nil {
		return nil, fmt.Errorf("fetching today's entries: %w", err)
	}

	from := timecalc.YearStart(now)
	_, monthEnd := timecalc.MonthRange(now)

	entries, err := c.TimesheetEntries(ctx, person.ID, from, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("fetching timesheet: %w", err)
	}
	full, half, err := c.TimeAway(ctx, person.ID, from, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("fetching time away: %w", err)
	}

	holidays := map[string]bool{}
	for _, cal := range person.HolidayCalendars() {
		dates, err := c.PublicHolidays(ctx, cal, from, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("fetching holiday calendar %s: %w", cal, err)
		}
		for _, d := range dates {
			holidays[d] = true
		}
	}

	return &Snapshot{
		Person:       person,
		JobTitle:     title,
		TodayEntries: today,
		Entries:      entries,
		Holidays:     holidays,
		FullDaysAway: full,
		HalfDaysAway: half,
	}, nil
}

// EngineContext assembles the classifier context for this snapshot.
func (s *Snapshot) EngineContext(now time.Time, dailyHours float64) *engine.Context {
	return &engine.Context{
		Now:             now,
		DailyHours:      dailyHours,
		Holidays:        s.Holidays,
		WorkingWeekdays: s.Person.Weekdays(),
		FullDaysAway:    s.FullDaysAway,
		HalfDaysAway:    s.HalfDaysAway,
	}
}
