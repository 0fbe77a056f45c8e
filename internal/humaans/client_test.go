package humaans_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/worktally/internal/humaans"
	"github.com/worktally/internal/model"
)

func TestPersonWeekdays(t *testing.T) {
	p := humaans.Person{
		WorkingDays: []humaans.WorkingDay{
			{Day: "monday"}, {Day: "tuesday"}, {Day: "Friday"}, {Day: "someday"},
		},
	}
	days := p.Weekdays()
	if !days[time.Monday] || !days[time.Tuesday] || !days[time.Friday] {
		t.Errorf("Weekdays = %v, missing expected days", days)
	}
	if days[time.Saturday] || days[time.Sunday] || len(days) != 3 {
		t.Errorf("Weekdays = %v, want exactly Mon/Tue/Fri", days)
	}
}

func TestPersonHolidayCalendars(t *testing.T) {
	tests := []struct {
		country, region string
		want            []string
	}{
		{"", "", nil},
		{"DE", "", []string{"DE"}},
		{"DE", "BY", []string{"DE", "DE-BY"}},
	}
	for _, tt := range tests {
		p := humaans.Person{RemoteCountryCode: tt.country, RemoteRegionCode: tt.region}
		got := p.HolidayCalendars()
		if len(got) != len(tt.want) {
			t.Errorf("HolidayCalendars(%q, %q) = %v, want %v", tt.country, tt.region, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("HolidayCalendars(%q, %q) = %v, want %v", tt.country, tt.region, got, tt.want)
			}
		}
	}
}

func TestTimesheetEntriesPagination(t *testing.T) {
	// Three entries served in pages of two.
	entries := []model.TimesheetEntry{
		{ID: "a", Date: "2026-02-23", StartTime: "08:00:00"},
		{ID: "b", Date: "2026-02-24", StartTime: "08:30:00"},
		{ID: "c", Date: "2026-02-25", StartTime: "09:00:00"},
	}

	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/api/timesheet-entries" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Error("missing X-Request-Id header")
		}

		skip := 0
		fmt.Sscanf(r.URL.Query().Get("$skip"), "%d", &skip)
		page := entries
		if skip >= len(entries) {
			page = nil
		} else if skip+2 < len(entries) {
			page = entries[skip : skip+2]
		} else {
			page = entries[skip:]
		}
		// The client asks for 250 per page; serve two to force pagination.
		if len(page) > 2 {
			page = page[:2]
		}
		json.NewEncoder(w).Encode(map[string]any{
			"total": len(entries),
			"skip":  skip,
			"data":  page,
		})
	}))
	defer srv.Close()

	c := humaans.NewClient(context.Background(), "test-token", srv.URL)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	got, err := c.TimesheetEntries(context.Background(), "person-1", from, to)
	if err != nil {
		t.Fatalf("TimesheetEntries: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if got[0].ID != "a" || got[2].ID != "c" {
		t.Errorf("entries out of order: %v", got)
	}
	if requests < 2 {
		t.Errorf("expected paginated fetch, got %d requests", requests)
	}
}

func TestTimeAwayBreakdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/time-away" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"breakdown": []map[string]string{
					{"date": "2026-02-23", "period": "full"},
					{"date": "2026-02-24", "period": "half"},
				}},
				{"breakdown": []map[string]string{
					{"date": "2026-03-02", "period": "full"},
				}},
			},
		})
	}))
	defer srv.Close()

	c := humaans.NewClient(context.Background(), "test-token", srv.URL)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	full, half, err := c.TimeAway(context.Background(), "person-1", from, to)
	if err != nil {
		t.Fatalf("TimeAway: %v", err)
	}
	if !full["2026-02-23"] || !full["2026-03-02"] || len(full) != 2 {
		t.Errorf("full = %v", full)
	}
	if !half["2026-02-24"] || len(half) != 1 {
		t.Errorf("half = %v", half)
	}
}

func TestPublicHolidays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("publicHolidayCalendarId"); got != "DE" {
			t.Errorf("calendar id = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]string{
				{"date": "2026-01-01"},
				{"date": "2026-04-03"},
			},
		})
	}))
	defer srv.Close()

	c := humaans.NewClient(context.Background(), "test-token", srv.URL)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	dates, err := c.PublicHolidays(context.Background(), "DE", from, to)
	if err != nil {
		t.Fatalf("PublicHolidays: %v", err)
	}
	if len(dates) != 2 || dates[0] != "2026-01-01" {
		t.Errorf("dates = %v", dates)
	}
}

func TestCreateAndCloseEntry(t *testing.T) {
	now := time.Date(2026, 2, 27, 9, 4, 30, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/timesheet-entries":
			if body["personId"] != "person-1" || body["date"] != "2026-02-27" || body["startTime"] != "09:04:30" {
				t.Errorf("create payload = %v", body)
			}
			json.NewEncoder(w).Encode(model.TimesheetEntry{ID: "new-entry", Date: body["date"], StartTime: body["startTime"]})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/timesheet-entries/new-entry":
			if body["endTime"] != "17:00:00" {
				t.Errorf("close payload = %v", body)
			}
			end := body["endTime"]
			json.NewEncoder(w).Encode(model.TimesheetEntry{ID: "new-entry", Date: "2026-02-27", StartTime: "09:04:30", EndTime: &end})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := humaans.NewClient(context.Background(), "test-token", srv.URL)

	entry, err := c.CreateEntry(context.Background(), "person-1", now)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if entry.ID != "new-entry" || !entry.Open() {
		t.Errorf("created entry = %+v", entry)
	}

	closed, err := c.CloseEntry(context.Background(), entry.ID, time.Date(2026, 2, 27, 17, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CloseEntry: %v", err)
	}
	if closed.Open() {
		t.Errorf("closed entry still open: %+v", closed)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid token"}`))
	}))
	defer srv.Close()

	c := humaans.NewClient(context.Background(), "bad-token", srv.URL)
	if _, err := c.Me(context.Background()); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestFetchSnapshotSequence(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/api/me":
			calls = append(calls, "me")
			json.NewEncoder(w).Encode(humaans.Person{
				ID:                "person-1",
				FirstName:         "Ada",
				LastName:          "Lovelace",
				RemoteCountryCode: "DE",
				RemoteRegionCode:  "BY",
				WorkingDays:       []humaans.WorkingDay{{Day: "monday"}},
			})
		case "/api/job-roles":
			calls = append(calls, "job-roles")
			json.NewEncoder(w).Encode(map[string]any{"data": []map[string]string{{"jobTitle": "Engineer"}}})
		case "/api/timesheet-entries":
			if q.Get("date") != "" {
				calls = append(calls, "today")
			} else {
				calls = append(calls, "timesheet")
			}
			json.NewEncoder(w).Encode(map[string]any{"total": 0, "skip": 0, "data": []model.TimesheetEntry{}})
		case "/api/time-away":
			calls = append(calls, "time-away")
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		case "/api/public-holidays":
			calls = append(calls, "holidays:"+q.Get("publicHolidayCalendarId"))
			json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := humaans.NewClient(context.Background(), "test-token", srv.URL)
	now := time.Date(2026, 2, 27, 11, 0, 0, 0, time.UTC)

	snap, err := humaans.FetchSnapshot(context.Background(), c, now)
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	if snap.JobTitle != "Engineer" || snap.Person.FullName() != "Ada Lovelace" {
		t.Errorf("snapshot = %+v", snap)
	}

	want := []string{"me", "job-roles", "today", "timesheet", "time-away", "holidays:DE", "holidays:DE-BY"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call order = %v, want %v", calls, want)
		}
	}
}
