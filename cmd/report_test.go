package cmd

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/worktally/internal/model"
)

func TestReportOutDropsNonFinitePercent(t *testing.T) {
	out := reportOut(model.PeriodReport{HoursWorked: 1, PercentWorked: math.Inf(1)})
	if out.PercentWorked != nil {
		t.Errorf("PercentWorked = %v, want nil for infinite ratio", *out.PercentWorked)
	}

	// The DTO must serialize even when the engine value does not.
	data, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"percentWorked":null`) {
		t.Errorf("serialized form = %s", data)
	}
}

func TestReportOutKeepsFinitePercent(t *testing.T) {
	out := reportOut(model.PeriodReport{HoursWorked: 8, MinutesWorked: 30, HoursNeeded: 8, PercentWorked: 106.25})
	if out.PercentWorked == nil || *out.PercentWorked != 106.25 {
		t.Errorf("PercentWorked = %v, want 106.25", out.PercentWorked)
	}
}
