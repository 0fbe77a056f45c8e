package engine

import "github.com/worktally/internal/model"

// Index groups timesheet entries by calendar-day key. It is built once per
// reporting cycle and never mutated afterwards.
type Index map[string][]model.TimesheetEntry

// BuildIndex groups a flat entry list by day, preserving the order entries
// appear in within each day.
func BuildIndex(entries []model.TimesheetEntry) Index {
	idx := make(Index, len(entries))
	for _, e := range entries {
		idx[e.Date] = append(idx[e.Date], e)
	}
	return idx
}
